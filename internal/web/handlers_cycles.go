package web

import (
	"net/http"
	"strconv"

	"github.com/tempora-app/tempora/internal/dayclock"
	"github.com/tempora-app/tempora/internal/engine"
)

// parseCycleDate resolves an optional explicit cycle date from a request
// body. A nil result means "today"; grace recovery names yesterday here.
func (s *Server) parseCycleDate(w http.ResponseWriter, raw string) (*dayclock.Date, bool) {
	if raw == "" {
		return nil, true
	}
	d, err := dayclock.ParseDate(raw)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid cycle_date, want YYYY-MM-DD")
		return nil, false
	}
	return &d, true
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	view, err := s.engine.Today(userID, s.tzOffset(r))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newDayView(view))
}

type startMorningRequest struct {
	Calibrations []struct {
		AxisID int64 `json:"axis_id" validate:"required"`
		Value  int   `json:"value" validate:"min=0,max=100"`
	} `json:"calibrations" validate:"dive"`
	CycleDate string `json:"cycle_date,omitempty"`
}

func (s *Server) handleStartMorning(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	var req startMorningRequest
	if !s.decode(w, r, &req) {
		return
	}
	date, ok := s.parseCycleDate(w, req.CycleDate)
	if !ok {
		return
	}

	calibrations := make([]engine.CalibrationInput, 0, len(req.Calibrations))
	for _, c := range req.Calibrations {
		calibrations = append(calibrations, engine.CalibrationInput{AxisID: c.AxisID, Value: c.Value})
	}

	cycle, err := s.engine.StartMorning(userID, s.tzOffset(r), calibrations, date)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newCycleView(cycle))
}

type completeMiddayRequest struct {
	IntendedAction string `json:"intended_action" validate:"required"`
	DecisivePrompt string `json:"decisive_prompt,omitempty"`
	CycleDate      string `json:"cycle_date,omitempty"`
}

func (s *Server) handleCompleteMidday(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	var req completeMiddayRequest
	if !s.decode(w, r, &req) {
		return
	}
	date, ok := s.parseCycleDate(w, req.CycleDate)
	if !ok {
		return
	}

	cycle, err := s.engine.CompleteMidday(userID, s.tzOffset(r), req.IntendedAction, req.DecisivePrompt, date)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newCycleView(cycle))
}

type completeEveningRequest struct {
	ActionTaken    string `json:"action_taken" validate:"required"`
	ObservedEffect string `json:"observed_effect" validate:"required"`
	Reflection     string `json:"reflection,omitempty"`
	CycleDate      string `json:"cycle_date,omitempty"`
}

func (s *Server) handleCompleteEvening(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	var req completeEveningRequest
	if !s.decode(w, r, &req) {
		return
	}
	date, ok := s.parseCycleDate(w, req.CycleDate)
	if !ok {
		return
	}

	cycle, err := s.engine.CompleteEvening(userID, s.tzOffset(r), req.ActionTaken, req.ObservedEffect, req.Reflection, date)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newCycleView(cycle))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	days := 30
	if v := r.URL.Query().Get("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			s.writeError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = parsed
	}

	cycles, err := s.engine.History(userID, s.tzOffset(r), days)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	views := make([]*cycleView, 0, len(cycles))
	for i := range cycles {
		views = append(views, newCycleView(&cycles[i]))
	}
	s.writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleGracePeriod(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	grace, err := s.engine.GracePeriod(userID, s.tzOffset(r))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newGraceView(grace))
}
