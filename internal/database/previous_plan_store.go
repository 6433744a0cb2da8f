package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/notdienst/scheduler/pkg/model"
)

// PreviousPlanStore persists one org's PreviousPlanContext per completed
// quarter as a JSON blob, keyed by (org_id, quarter_start), spec.md §6.
type PreviousPlanStore struct {
	db *DB
}

// NewPreviousPlanStore wraps db for previous-plan-context persistence.
func NewPreviousPlanStore(db *DB) *PreviousPlanStore {
	return &PreviousPlanStore{db: db}
}

// Schema is the DDL the store assumes has already been applied.
const Schema = `
CREATE TABLE IF NOT EXISTS previous_plan_context (
	org_id        UUID NOT NULL,
	quarter_start DATE NOT NULL,
	context       JSONB NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (org_id, quarter_start)
);
`

// Save upserts plan for orgID, keyed by its own QuarterStart.
func (s *PreviousPlanStore) Save(ctxParent context.Context, orgID uuid.UUID, plan *model.PreviousPlanContext) error {
	blob, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("previous plan store: marshal: %w", err)
	}

	_, err = s.db.ExecContext(ctxParent, `
		INSERT INTO previous_plan_context (org_id, quarter_start, context)
		VALUES ($1, $2, $3)
		ON CONFLICT (org_id, quarter_start) DO UPDATE SET context = EXCLUDED.context
	`, orgID, plan.QuarterStart, blob)
	if err != nil {
		return fmt.Errorf("previous plan store: save: %w", err)
	}
	return nil
}

// Load fetches the most recent context for orgID whose quarter_start lies
// before quarterStart. The stored quarter_end is not checked, so a gap
// between that quarter and quarterStart is not detected. Returns nil, nil
// if none exists — a brand-new org has no carry-forward history.
func (s *PreviousPlanStore) Load(ctxParent context.Context, orgID uuid.UUID, quarterStart string) (*model.PreviousPlanContext, error) {
	previousQuarterStartBound := model.AddDays(quarterStart, -1)

	row := s.db.QueryRowContext(ctxParent, `
		SELECT context FROM previous_plan_context
		WHERE org_id = $1 AND quarter_start <= $2
		ORDER BY quarter_start DESC
		LIMIT 1
	`, orgID, previousQuarterStartBound)

	var blob []byte
	if err := row.Scan(&blob); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("previous plan store: load: %w", err)
	}

	var plan model.PreviousPlanContext
	if err := json.Unmarshal(blob, &plan); err != nil {
		return nil, fmt.Errorf("previous plan store: unmarshal: %w", err)
	}
	return &plan, nil
}
