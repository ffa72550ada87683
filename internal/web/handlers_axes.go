package web

import (
	"net/http"
	"strconv"

	"github.com/tempora-app/tempora/internal/domain"
)

func (s *Server) handleDestinyScore(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	score, err := s.engine.DestinyScore(userID)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newScoreView(score))
}

func (s *Server) handleLowestAxes(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	n := 3
	if v := r.URL.Query().Get("n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			s.writeError(w, http.StatusBadRequest, "n must be a positive integer")
			return
		}
		n = parsed
	}

	lowest, err := s.engine.LowestAxes(userID, n)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newAxisValueViews(lowest))
}

type createAxisRequest struct {
	LeftLabel  string `json:"left_label" validate:"required"`
	RightLabel string `json:"right_label" validate:"required"`
	Emoji      string `json:"emoji,omitempty"`
	ColorStart string `json:"color_start,omitempty"`
	ColorEnd   string `json:"color_end,omitempty"`
}

func (s *Server) handleCreateAxis(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	var req createAxisRequest
	if !s.decode(w, r, &req) {
		return
	}

	axis, err := s.engine.CreateAxis(userID, req.LeftLabel, req.RightLabel, req.Emoji, req.ColorStart, req.ColorEnd)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, newAxisView(axis))
}

func (s *Server) handleListAxes(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	axes, err := s.engine.ListAxes(userID)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	views := make([]axisView, 0, len(axes))
	for i := range axes {
		views = append(views, newAxisView(&axes[i]))
	}
	s.writeJSON(w, http.StatusOK, views)
}

// axisID parses the {id} path segment.
func (s *Server) axisID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid axis id")
		return 0, false
	}
	return id, true
}

func (s *Server) handleDeleteAxis(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	id, ok := s.axisID(w, r)
	if !ok {
		return
	}
	if err := s.engine.DeleteAxis(userID, id); err != nil {
		s.writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type recordCalibrationRequest struct {
	Value           int    `json:"value" validate:"min=0,max=100"`
	CalibrationType string `json:"calibration_type" validate:"required,oneof=morning midday evening manual"`
}

func (s *Server) handleRecordCalibration(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	id, ok := s.axisID(w, r)
	if !ok {
		return
	}
	var req recordCalibrationRequest
	if !s.decode(w, r, &req) {
		return
	}

	cal, err := s.engine.RecordCalibration(userID, id, req.Value, domain.CalibrationType(req.CalibrationType))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, newCalibrationView(cal))
}

func (s *Server) handleCalibrationHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	id, ok := s.axisID(w, r)
	if !ok {
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			s.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	cals, err := s.engine.CalibrationHistory(userID, id, limit)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	views := make([]calibrationView, 0, len(cals))
	for i := range cals {
		views = append(views, newCalibrationView(&cals[i]))
	}
	s.writeJSON(w, http.StatusOK, views)
}
