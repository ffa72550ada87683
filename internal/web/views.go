package web

import (
	"time"

	"github.com/tempora-app/tempora/internal/destiny"
	"github.com/tempora-app/tempora/internal/domain"
	"github.com/tempora-app/tempora/internal/engine"
	"github.com/tempora-app/tempora/internal/streak"
)

type cycleView struct {
	Date               string     `json:"date"`
	MorningCompletedAt *time.Time `json:"morning_completed_at,omitempty"`
	MiddayCompletedAt  *time.Time `json:"midday_completed_at,omitempty"`
	EveningCompletedAt *time.Time `json:"evening_completed_at,omitempty"`
	IntendedAction     string     `json:"intended_action,omitempty"`
	DecisivePrompt     string     `json:"decisive_prompt,omitempty"`
	ActionTaken        string     `json:"action_taken,omitempty"`
	ObservedEffect     string     `json:"observed_effect,omitempty"`
	Reflection         string     `json:"reflection,omitempty"`
	IsComplete         bool       `json:"is_complete"`
}

func newCycleView(c *domain.DailyCycle) *cycleView {
	if c == nil {
		return nil
	}
	return &cycleView{
		Date:               c.CycleDate.String(),
		MorningCompletedAt: c.MorningCompletedAt,
		MiddayCompletedAt:  c.MiddayCompletedAt,
		EveningCompletedAt: c.EveningCompletedAt,
		IntendedAction:     c.IntendedAction,
		DecisivePrompt:     c.DecisivePrompt,
		ActionTaken:        c.ActionTaken,
		ObservedEffect:     c.ObservedEffect,
		Reflection:         c.Reflection,
		IsComplete:         c.IsComplete,
	}
}

type dayView struct {
	Date   string     `json:"date"`
	Phase  string     `json:"phase"`
	Cycle  *cycleView `json:"cycle"` // null until the day is started
	Streak int        `json:"streak"`
}

func newDayView(v *engine.DayView) dayView {
	return dayView{
		Date:   v.Date.String(),
		Phase:  string(v.Phase),
		Cycle:  newCycleView(v.Cycle),
		Streak: v.Streak,
	}
}

type graceView struct {
	Available bool       `json:"available"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func newGraceView(g streak.GracePeriod) graceView {
	v := graceView{Available: g.Available}
	if g.Available {
		v.ExpiresAt = &g.ExpiresAt
	}
	return v
}

type scoreView struct {
	Score           *int   `json:"score"` // null when no axis is calibrated
	CalibratedCount int    `json:"calibrated_count"`
	TotalAxes       int    `json:"total_axes"`
	Level           string `json:"level"`
}

func newScoreView(s destiny.Score) scoreView {
	return scoreView{
		Score:           s.Score,
		CalibratedCount: s.CalibratedCount,
		TotalAxes:       s.TotalAxes,
		Level:           string(s.Level),
	}
}

type axisValueView struct {
	AxisID       int64     `json:"axis_id"`
	LeftLabel    string    `json:"left_label"`
	RightLabel   string    `json:"right_label"`
	Value        int       `json:"value"`
	CalibratedAt time.Time `json:"calibrated_at"`
}

func newAxisValueViews(values []destiny.AxisValue) []axisValueView {
	views := make([]axisValueView, 0, len(values))
	for _, v := range values {
		views = append(views, axisValueView{
			AxisID:       v.AxisID,
			LeftLabel:    v.LeftLabel,
			RightLabel:   v.RightLabel,
			Value:        v.Value,
			CalibratedAt: v.CalibratedAt,
		})
	}
	return views
}

type axisView struct {
	ID         int64     `json:"id"`
	LeftLabel  string    `json:"left_label"`
	RightLabel string    `json:"right_label"`
	Emoji      string    `json:"emoji,omitempty"`
	ColorStart string    `json:"color_start,omitempty"`
	ColorEnd   string    `json:"color_end,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func newAxisView(a *domain.AxisDefinition) axisView {
	return axisView{
		ID:         a.ID,
		LeftLabel:  a.LeftLabel,
		RightLabel: a.RightLabel,
		Emoji:      a.Emoji,
		ColorStart: a.ColorStart,
		ColorEnd:   a.ColorEnd,
		CreatedAt:  a.CreatedAt,
	}
}

type calibrationView struct {
	ID              int64     `json:"id"`
	AxisID          int64     `json:"axis_id"`
	Value           int       `json:"value"`
	CalibrationType string    `json:"calibration_type"`
	ClientTimestamp time.Time `json:"client_timestamp"`
}

func newCalibrationView(c *domain.AxisCalibration) calibrationView {
	return calibrationView{
		ID:              c.ID,
		AxisID:          c.AxisID,
		Value:           c.Value,
		CalibrationType: string(c.CalibrationType),
		ClientTimestamp: c.ClientTimestamp,
	}
}

type flashcardView struct {
	ID             string    `json:"id"`
	Front          string    `json:"front"`
	Back           string    `json:"back"`
	Deck           string    `json:"deck,omitempty"`
	EaseFactor     float64   `json:"ease_factor"`
	IntervalDays   int       `json:"interval_days"`
	Repetitions    int       `json:"repetitions"`
	NextReviewDate string    `json:"next_review_date"`
	CreatedAt      time.Time `json:"created_at"`
}

func newFlashcardView(f *domain.Flashcard) flashcardView {
	return flashcardView{
		ID:             f.ID,
		Front:          f.Front,
		Back:           f.Back,
		Deck:           f.Deck,
		EaseFactor:     f.EaseFactor,
		IntervalDays:   f.IntervalDays,
		Repetitions:    f.Repetitions,
		NextReviewDate: f.NextReviewDate.String(),
		CreatedAt:      f.CreatedAt,
	}
}

func newFlashcardViews(cards []domain.Flashcard) []flashcardView {
	views := make([]flashcardView, 0, len(cards))
	for i := range cards {
		views = append(views, newFlashcardView(&cards[i]))
	}
	return views
}
