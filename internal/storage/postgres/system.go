package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	suretymodels "flightsurety/internal/surety/models"
	"flightsurety/pkg/domain"
	"flightsurety/pkg/platform/sentinel"
)

func (t *tx) LoadSystem(ctx context.Context) (*suretymodels.System, error) {
	var (
		owner string
		s     suretymodels.System
	)
	err := t.tx.QueryRowContext(ctx,
		`SELECT owner, operational, updated_at FROM system_state WHERE id = 1`,
	).Scan(&owner, &s.Operational, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("load system state: %w", err)
	}
	if s.Owner, err = domain.ParseAddress(owner); err != nil {
		return nil, fmt.Errorf("decode owner: %w", err)
	}
	return &s, nil
}

func (t *tx) SaveSystem(ctx context.Context, system *suretymodels.System) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO system_state (id, owner, operational, updated_at)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET owner = EXCLUDED.owner, operational = EXCLUDED.operational, updated_at = EXCLUDED.updated_at`,
		system.Owner.String(), system.Operational, system.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save system state: %w", err)
	}
	return nil
}
