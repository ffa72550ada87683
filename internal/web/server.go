// Package web exposes the engine as a JSON API. The user identity comes
// from the X-User-ID header and the local-day offset from X-TZ-Offset
// (minutes east of UTC); session management lives outside this service.
package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/tempora-app/tempora/internal/domain"
	"github.com/tempora-app/tempora/internal/engine"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	engine        *engine.Engine
	router        *http.ServeMux
	validate      *validator.Validate
	log           *slog.Logger
	defaultOffset int
}

// NewServer creates and configures a new server. defaultOffset is the
// timezone offset assumed when a request carries no X-TZ-Offset header.
func NewServer(eng *engine.Engine, logger *slog.Logger, defaultOffset int) *Server {
	s := &Server{
		engine:        eng,
		router:        http.NewServeMux(),
		validate:      validator.New(),
		log:           logger,
		defaultOffset: defaultOffset,
	}
	s.routes()
	return s
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.HandleFunc("GET /api/today", s.handleToday)
	s.router.HandleFunc("POST /api/cycles/morning", s.handleStartMorning)
	s.router.HandleFunc("POST /api/cycles/midday", s.handleCompleteMidday)
	s.router.HandleFunc("POST /api/cycles/evening", s.handleCompleteEvening)
	s.router.HandleFunc("GET /api/history", s.handleHistory)
	s.router.HandleFunc("GET /api/grace", s.handleGracePeriod)

	s.router.HandleFunc("GET /api/destiny", s.handleDestinyScore)
	s.router.HandleFunc("GET /api/destiny/lowest", s.handleLowestAxes)

	s.router.HandleFunc("POST /api/axes", s.handleCreateAxis)
	s.router.HandleFunc("GET /api/axes", s.handleListAxes)
	s.router.HandleFunc("DELETE /api/axes/{id}", s.handleDeleteAxis)
	s.router.HandleFunc("POST /api/axes/{id}/calibrations", s.handleRecordCalibration)
	s.router.HandleFunc("GET /api/axes/{id}/calibrations", s.handleCalibrationHistory)

	s.router.HandleFunc("POST /api/flashcards", s.handleCreateFlashcard)
	s.router.HandleFunc("POST /api/flashcards/import", s.handleImportFlashcards)
	s.router.HandleFunc("GET /api/flashcards", s.handleListFlashcards)
	s.router.HandleFunc("GET /api/flashcards/due", s.handleDueFlashcards)
	s.router.HandleFunc("POST /api/flashcards/{id}/review", s.handleReviewFlashcard)
	s.router.HandleFunc("DELETE /api/flashcards/{id}", s.handleDeleteFlashcard)
}

// userID extracts the caller's identity. Empty means the request is
// rejected before any handler logic runs.
func (s *Server) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.Header.Get("X-User-ID")
	if id == "" {
		s.writeError(w, http.StatusBadRequest, "missing X-User-ID header")
		return "", false
	}
	return id, true
}

// tzOffset reads the caller's timezone offset in minutes east of UTC.
func (s *Server) tzOffset(r *http.Request) int {
	h := r.Header.Get("X-TZ-Offset")
	if h == "" {
		return s.defaultOffset
	}
	offset, err := strconv.Atoi(h)
	if err != nil {
		return s.defaultOffset
	}
	return offset
}

// decode parses and validates a JSON request body.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// writeEngineError maps the engine's error taxonomy onto HTTP statuses.
// Phase order violations are conflicts the user can correct; bad qualities
// and values are plain bad requests; unknown records are 404s.
func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	var phaseErr *domain.PhaseOrderError
	var qualityErr *domain.InvalidQualityError
	var notFound *domain.NotFoundError

	switch {
	case errors.As(err, &phaseErr):
		s.writeError(w, http.StatusConflict, phaseErr.Error())
	case errors.As(err, &qualityErr):
		s.writeError(w, http.StatusBadRequest, qualityErr.Error())
	case errors.As(err, &notFound):
		s.writeError(w, http.StatusNotFound, notFound.Error())
	default:
		s.log.Error("internal error", "error", err)
		s.writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
