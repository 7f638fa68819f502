package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/coppahp/planner/internal/domain"
	"github.com/coppahp/planner/internal/repository"
	"github.com/pmezard/go-difflib/difflib"
)

// loadOrNew returns the stored record, or an unsaved empty one when the
// pair has never been stored. Unlike RecordStore.Load it never writes.
func loadOrNew(ctx context.Context, records repository.RecordStore, project, team string) (*domain.ProjectRecord, error) {
	ok, err := records.Exists(ctx, project, team)
	if err != nil {
		return nil, err
	}
	if !ok {
		return domain.NewProjectRecord(project, time.Now().UTC()), nil
	}
	return records.Load(ctx, project, team)
}

// planView is the part of a record that diffs are taken over. Metadata
// timestamps change on every save and would drown the real changes.
type planView struct {
	Phases     []domain.Phase         `json:"phases"`
	Objectives []domain.Objective     `json:"objectives"`
	DPs        []domain.DecisivePoint `json:"dps"`
	Tasks      []domain.Task          `json:"tasks"`
}

func planJSON(rec *domain.ProjectRecord) (string, error) {
	data, err := json.MarshalIndent(planView{
		Phases:     rec.Phases,
		Objectives: rec.Objectives,
		DPs:        rec.DPs,
		Tasks:      rec.Tasks,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding plan: %w", err)
	}
	return string(data) + "\n", nil
}

// planDiff returns a unified diff of the two plans, empty when equal.
func planDiff(before, after *domain.ProjectRecord, fromFile, toFile string) (string, error) {
	a, err := planJSON(before)
	if err != nil {
		return "", err
	}
	b, err := planJSON(after)
	if err != nil {
		return "", err
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: fromFile,
		ToFile:   toFile,
		Context:  3,
	})
	if err != nil {
		return "", fmt.Errorf("diffing plan: %w", err)
	}
	return diff, nil
}

func validateTarget(t Target) error {
	var errs []error
	if err := domain.ValidateProjectName(t.Project); err != nil {
		errs = append(errs, err)
	}
	if len(t.Teams) == 0 {
		errs = append(errs, fmt.Errorf("at least one team is required"))
	}
	for _, team := range t.Teams {
		if err := domain.ValidateTeamName(team); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return formatValidationErrors(errs)
	}
	return nil
}

func formatValidationErrors(errs []error) error {
	if len(errs) == 1 {
		return errs[0]
	}
	msg := fmt.Sprintf("validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
