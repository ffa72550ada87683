package web

import (
	"net/http"
	"strconv"
)

type createFlashcardRequest struct {
	Front string `json:"front" validate:"required"`
	Back  string `json:"back" validate:"required"`
	Deck  string `json:"deck,omitempty"`
}

func (s *Server) handleCreateFlashcard(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	var req createFlashcardRequest
	if !s.decode(w, r, &req) {
		return
	}

	card, err := s.engine.CreateFlashcard(userID, req.Front, req.Back, req.Deck, s.tzOffset(r))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, newFlashcardView(card))
}

// handleImportFlashcards accepts a plain-text body in the Q:/A:/D: line
// format and bulk-creates cards. Cards that already exist are skipped.
func (s *Server) handleImportFlashcards(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	cards, err := s.engine.ImportFlashcards(userID, r.Body, s.tzOffset(r))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, newFlashcardViews(cards))
}

func (s *Server) handleListFlashcards(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	cards, err := s.engine.ListFlashcards(userID, r.URL.Query().Get("deck"))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newFlashcardViews(cards))
}

func (s *Server) handleDueFlashcards(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			s.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	cards, err := s.engine.DueFlashcards(userID, limit, s.tzOffset(r))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newFlashcardViews(cards))
}

type reviewFlashcardRequest struct {
	Quality int `json:"quality" validate:"oneof=1 3 5 7"`
}

func (s *Server) handleReviewFlashcard(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	var req reviewFlashcardRequest
	if !s.decode(w, r, &req) {
		return
	}

	card, err := s.engine.ReviewFlashcard(userID, r.PathValue("id"), req.Quality, s.tzOffset(r))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newFlashcardView(card))
}

func (s *Server) handleDeleteFlashcard(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	if err := s.engine.DeleteFlashcard(userID, r.PathValue("id")); err != nil {
		s.writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
