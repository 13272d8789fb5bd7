package store

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"brightsteps/backend/internal/models"
)

var validMarks = map[models.TrialMark]bool{
	models.MarkIndependent:     true,
	models.MarkIncorrect:       true,
	models.MarkVerbalPrompt:    true,
	models.MarkGesturalPrompt:  true,
	models.MarkModelPrompt:     true,
	models.MarkPartialPhysical: true,
	models.MarkFullPhysical:    true,
}

// IndependenceScore is the percentage of independent ('+') trials across
// all steps, rounded to the nearest whole number. It is recomputed from
// the trial marks every time a log is written, never trusted from input.
func IndependenceScore(steps []models.SessionStep) int {
	var independent, total int
	for _, step := range steps {
		for _, mark := range step.Trials {
			total++
			if mark == models.MarkIndependent {
				independent++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(independent) / float64(total) * 100))
}

type SessionLogInput struct {
	StudentID       string                `validate:"required"`
	Date            string                `validate:"required"`
	TargetBehavior  string                `validate:"required"`
	Method          models.ChainingMethod `validate:"required,oneof=Forward Backward 'Total Task'"`
	Steps           []models.SessionStep
	ProgramRequests []models.ProgramRequest
}

// AddSessionLog validates the trial grid and persists a clinical log with
// a freshly computed independence score. Logs are append-only.
func (s *Store) AddSessionLog(ctx context.Context, input SessionLogInput) (string, error) {
	user := s.CurrentUser()
	if user == nil {
		return "", ErrNotSignedIn
	}
	if err := s.validate.Struct(input); err != nil {
		return "", s.fail("session-log", "Session log is incomplete.", err)
	}
	for i, step := range input.Steps {
		if len(step.Trials) != models.TrialsPerStep {
			return "", s.fail("session-log", "Each step needs exactly 10 trials.",
				fmt.Errorf("step %d has %d trials", i+1, len(step.Trials)))
		}
		for _, mark := range step.Trials {
			if !validMarks[mark] {
				return "", s.fail("session-log", "Unknown prompt-level mark.",
					fmt.Errorf("step %d: invalid mark %q", i+1, mark))
			}
		}
	}

	entry := models.SessionLog{
		ID:                uuid.NewString(),
		StudentID:         input.StudentID,
		Date:              input.Date,
		TargetBehavior:    input.TargetBehavior,
		Method:            input.Method,
		Steps:             input.Steps,
		ProgramRequests:   input.ProgramRequests,
		IndependenceScore: IndependenceScore(input.Steps),
		StaffID:           user.ID,
		CreatedAt:         time.Now(),
	}
	if err := s.backend.Set(ctx, ColSessionLogs, entry.ID, entry); err != nil {
		return "", s.fail("session-log", "Could not save the session log.", err)
	}
	s.Notify(NotifySuccess, "Session log saved.")
	return entry.ID, nil
}
