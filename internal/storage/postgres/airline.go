package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	airlinemodels "flightsurety/internal/airline/models"
	"flightsurety/pkg/domain"
	"flightsurety/pkg/platform/sentinel"
)

func (t *tx) FindAirline(ctx context.Context, addr domain.Address) (*airlinemodels.Airline, error) {
	var (
		a        airlinemodels.Airline
		state    string
		funds    string
		fundedAt sql.NullTime
	)
	err := t.tx.QueryRowContext(ctx,
		`SELECT state, funds::text, registered_at, funded_at FROM airlines WHERE address = $1`,
		addr.String(),
	).Scan(&state, &funds, &a.RegisteredAt, &fundedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find airline: %w", err)
	}
	a.Address = addr
	a.State = airlinemodels.State(state)
	if a.Funds, err = domain.ParseAmount(funds); err != nil {
		return nil, fmt.Errorf("decode airline funds: %w", err)
	}
	a.FundedAt = timePtr(fundedAt)
	return &a, nil
}

func (t *tx) SaveAirline(ctx context.Context, airline *airlinemodels.Airline) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO airlines (address, state, funds, registered_at, funded_at)
		VALUES ($1, $2, $3::numeric, $4, $5)
		ON CONFLICT (address) DO UPDATE
		SET state = EXCLUDED.state, funds = EXCLUDED.funds, funded_at = EXCLUDED.funded_at`,
		airline.Address.String(), string(airline.State), airline.Funds.String(), airline.RegisteredAt, nullTime(airline.FundedAt),
	)
	if err != nil {
		return fmt.Errorf("save airline: %w", err)
	}
	return nil
}

func (t *tx) CountAirlines(ctx context.Context) (airlinemodels.Counts, error) {
	var c airlinemodels.Counts
	err := t.tx.QueryRowContext(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE state IN ($1, $2)),
			COUNT(*) FILTER (WHERE state = $2)
		FROM airlines`,
		string(airlinemodels.StateRegistered), string(airlinemodels.StateFunded),
	).Scan(&c.Registered, &c.Funded)
	if err != nil {
		return c, fmt.Errorf("count airlines: %w", err)
	}
	return c, nil
}

func (t *tx) ListVotes(ctx context.Context, candidate domain.Address) ([]domain.Address, error) {
	rows, err := t.tx.QueryContext(ctx,
		`SELECT voter FROM airline_votes WHERE candidate = $1 ORDER BY seq`,
		candidate.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("list votes: %w", err)
	}
	defer rows.Close()
	return scanAddresses(rows)
}

func (t *tx) AppendVote(ctx context.Context, candidate, voter domain.Address) error {
	res, err := t.tx.ExecContext(ctx,
		`INSERT INTO airline_votes (candidate, voter) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		candidate.String(), voter.String(),
	)
	if err != nil {
		return fmt.Errorf("append vote: %w", err)
	}
	return requireInserted(res)
}

func (t *tx) ClearVotes(ctx context.Context, candidate domain.Address) error {
	if _, err := t.tx.ExecContext(ctx, `DELETE FROM airline_votes WHERE candidate = $1`, candidate.String()); err != nil {
		return fmt.Errorf("clear votes: %w", err)
	}
	return nil
}

func scanAddresses(rows *sql.Rows) ([]domain.Address, error) {
	var out []domain.Address
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		addr, err := domain.ParseAddress(raw)
		if err != nil {
			return nil, fmt.Errorf("decode address: %w", err)
		}
		out = append(out, addr)
	}
	return out, rows.Err()
}

func requireInserted(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrAlreadyUsed
	}
	return nil
}

func requireUpdated(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
