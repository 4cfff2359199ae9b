package service

import (
	"context"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/store"
	"github.com/MKhiriev/go-story-sync/internal/validators"
	"github.com/MKhiriev/go-story-sync/models"
)

type reconciliationEngine struct {
	local     store.LocalStore
	validator validators.Validator
	logger    *logger.Logger
}

// NewReconciliationEngine builds the engine on top of the local replica.
// Snapshot entries failing validation are skipped, never fatal.
func NewReconciliationEngine(local store.LocalStore, validator validators.Validator, logger *logger.Logger) ReconciliationEngine {
	return &reconciliationEngine{local: local, validator: validator, logger: logger}
}

func (e *reconciliationEngine) Reconcile(ctx context.Context, remote []models.Story, retain ...string) (models.ReconcileResult, error) {
	valid := make([]models.Story, 0, len(remote))
	skipped := 0
	for i, s := range remote {
		if err := e.validator.Validate(ctx, s); err != nil {
			e.logger.Warn().Err(err).
				Str("func", "reconciliationEngine.Reconcile").
				Int("index", i).
				Str("story_id", s.ID).
				Msg("skipping invalid story")
			skipped++
			continue
		}
		valid = append(valid, s)
	}

	result, err := e.local.ReconcileWith(ctx, valid, retain...)
	if err != nil {
		return models.ReconcileResult{}, err
	}

	result.Skipped += skipped
	e.logger.Debug().
		Str("func", "reconciliationEngine.Reconcile").
		Int("added", len(result.Added)).
		Int("updated", len(result.Updated)).
		Int("removed", len(result.Removed)).
		Int("unchanged", result.Unchanged).
		Int("skipped", result.Skipped).
		Msg("reconciled")

	return result, nil
}
