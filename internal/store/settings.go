package store

import (
	"context"

	"brightsteps/backend/internal/models"
)

// SettingsPatch carries a partial settings update; nil fields are left
// untouched. Settings writes are always merges, never overwrites.
type SettingsPatch struct {
	Positions         *[]models.Position
	Classes           *[]string
	FeesAmount        *float64
	CurrentTerm       *string
	NextTermStartDate *string
	DefaultTaskSteps  *[]string
}

// UpdateSettings merges the patch into the singleton settings document.
// A change to the next term's start date additionally broadcasts a notice
// to all roles so families see the new date without checking settings.
func (s *Store) UpdateSettings(ctx context.Context, patch SettingsPatch) error {
	fields := map[string]any{}
	if patch.Positions != nil {
		fields["positions"] = *patch.Positions
	}
	if patch.Classes != nil {
		fields["classes"] = *patch.Classes
	}
	if patch.FeesAmount != nil {
		fields["feesAmount"] = *patch.FeesAmount
	}
	if patch.CurrentTerm != nil {
		fields["currentTerm"] = *patch.CurrentTerm
	}
	if patch.NextTermStartDate != nil {
		fields["nextTermStartDate"] = *patch.NextTermStartDate
	}
	if patch.DefaultTaskSteps != nil {
		fields["defaultTaskSteps"] = *patch.DefaultTaskSteps
	}
	if len(fields) == 0 {
		return nil
	}

	s.mu.RLock()
	previousTermDate := s.settings.NextTermStartDate
	s.mu.RUnlock()

	if err := s.backend.Merge(ctx, ColSettings, settingsDocID, fields); err != nil {
		return s.fail("settings", "Could not save settings.", err)
	}
	s.logAction(ctx, "settings.updated", map[string]string{})

	if patch.NextTermStartDate != nil && *patch.NextTermStartDate != previousTermDate {
		if _, err := s.PostNotice(ctx, NoticeInput{
			Title:   "Next term start date",
			Content: "The next term begins on " + *patch.NextTermStartDate + ".",
			Type:    "announcement",
			Target:  models.TargetAll,
		}); err != nil {
			return err
		}
	}

	s.Notify(NotifySuccess, "Settings saved.")
	return nil
}
