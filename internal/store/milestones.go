package store

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"brightsteps/backend/internal/models"
)

// OverallPercentage is the share of achieved checklist items across all
// sections, rounded. Red flags are tracked separately and do not count
// toward the percentage.
func OverallPercentage(sections []models.MilestoneResultSection) int {
	var achieved, total int
	for _, section := range sections {
		for _, item := range section.Items {
			total++
			if item.Achieved {
				achieved++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(achieved) / float64(total) * 100))
}

type MilestoneRecordInput struct {
	StudentID   string `validate:"required"`
	AgeCategory string `validate:"required"`
	Sections    []models.MilestoneResultSection
	RedFlags    []models.MilestoneResult
}

// AddMilestoneRecord stores one assessment snapshot. Records are never
// mutated afterwards; a new sitting produces a new record even when the
// template has since changed.
func (s *Store) AddMilestoneRecord(ctx context.Context, input MilestoneRecordInput) (string, error) {
	user := s.CurrentUser()
	if user == nil {
		return "", ErrNotSignedIn
	}
	if err := s.validate.Struct(input); err != nil {
		return "", s.fail("milestone", "Assessment is incomplete.", err)
	}

	record := models.MilestoneRecord{
		ID:                uuid.NewString(),
		StudentID:         input.StudentID,
		AgeCategory:       input.AgeCategory,
		Sections:          input.Sections,
		RedFlags:          input.RedFlags,
		OverallPercentage: OverallPercentage(input.Sections),
		RecordedBy:        user.ID,
		CreatedAt:         time.Now(),
	}
	if err := s.backend.Set(ctx, ColMilestoneRecords, record.ID, record); err != nil {
		return "", s.fail("milestone", "Could not save the assessment.", err)
	}
	s.Notify(NotifySuccess, "Milestone assessment saved.")
	return record.ID, nil
}

type MilestoneTemplateInput struct {
	ID       string
	Label    string `validate:"required"`
	MinAge   int    `validate:"gte=0"`
	MaxAge   int    `validate:"gtefield=MinAge"`
	Sections []models.MilestoneSection
	RedFlags []string
}

// SaveMilestoneTemplate creates or updates an admin-authored checklist
// definition. Existing records that used a prior version are unaffected.
func (s *Store) SaveMilestoneTemplate(ctx context.Context, input MilestoneTemplateInput) (string, error) {
	if err := s.validate.Struct(input); err != nil {
		return "", s.fail("milestone-template", "Template is incomplete.", err)
	}
	if input.ID == "" {
		input.ID = uuid.NewString()
	}
	template := models.MilestoneTemplate{
		ID:       input.ID,
		Label:    input.Label,
		MinAge:   input.MinAge,
		MaxAge:   input.MaxAge,
		Sections: input.Sections,
		RedFlags: input.RedFlags,
	}
	if err := s.backend.Set(ctx, ColMilestoneTemplates, template.ID, template); err != nil {
		return "", s.fail("milestone-template", "Could not save the template.", err)
	}
	s.logAction(ctx, "milestone_template.saved", map[string]string{"templateId": template.ID})
	return template.ID, nil
}

func (s *Store) DeleteMilestoneTemplate(ctx context.Context, templateID string) error {
	if err := s.backend.Delete(ctx, ColMilestoneTemplates, templateID); err != nil {
		return s.fail("milestone-template", "Could not delete the template.", err)
	}
	s.logAction(ctx, "milestone_template.deleted", map[string]string{"templateId": templateID})
	return nil
}
