package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/tempora-app/tempora/internal/config"
	"github.com/tempora-app/tempora/internal/engine"
	"github.com/tempora-app/tempora/internal/storage"
	"github.com/tempora-app/tempora/internal/web"
)

func main() {
	cfg := config.LoadOrExit()

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	db, err := storage.Open(cfg.Database.Path)
	if err != nil {
		logger.Error("failed to open database", "path", cfg.Database.Path, "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("database opened", "path", cfg.Database.Path)

	eng := engine.New(db, logger)
	server := web.NewServer(eng, logger, cfg.Timezone.Offset)

	logger.Info("listening", "addr", cfg.Listen)
	if err := http.ListenAndServe(cfg.Listen, server); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
