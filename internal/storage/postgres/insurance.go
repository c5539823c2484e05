package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	insurancemodels "flightsurety/internal/insurance/models"
	"flightsurety/pkg/domain"
)

func (t *tx) ListClaims(ctx context.Context, key domain.FlightKey) ([]*insurancemodels.Claim, error) {
	rows, err := t.tx.QueryContext(ctx, `
		SELECT passenger, premium::text, payout_percentage, credited, purchased_at
		FROM claims WHERE flight_key = $1 ORDER BY seq`,
		key.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}
	defer rows.Close()

	var out []*insurancemodels.Claim
	for rows.Next() {
		var (
			c         insurancemodels.Claim
			passenger string
			premium   string
		)
		if err := rows.Scan(&passenger, &premium, &c.PayoutPercentage, &c.Credited, &c.PurchasedAt); err != nil {
			return nil, fmt.Errorf("scan claim: %w", err)
		}
		if c.Passenger, err = domain.ParseAddress(passenger); err != nil {
			return nil, fmt.Errorf("decode claim passenger: %w", err)
		}
		if c.Premium, err = domain.ParseAmount(premium); err != nil {
			return nil, fmt.Errorf("decode claim premium: %w", err)
		}
		c.FlightKey = key
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (t *tx) AppendClaim(ctx context.Context, claim *insurancemodels.Claim) error {
	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO claims (flight_key, passenger, premium, payout_percentage, credited, purchased_at)
		VALUES ($1, $2, $3::numeric, $4, $5, $6)
		ON CONFLICT (flight_key, passenger) DO NOTHING`,
		claim.FlightKey.String(), claim.Passenger.String(), claim.Premium.String(),
		claim.PayoutPercentage, claim.Credited, claim.PurchasedAt,
	)
	if err != nil {
		return fmt.Errorf("append claim: %w", err)
	}
	return requireInserted(res)
}

func (t *tx) MarkClaimCredited(ctx context.Context, key domain.FlightKey, passenger domain.Address) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE claims SET credited = TRUE WHERE flight_key = $1 AND passenger = $2`,
		key.String(), passenger.String(),
	)
	if err != nil {
		return fmt.Errorf("mark claim credited: %w", err)
	}
	return requireUpdated(res)
}

func (t *tx) Balance(ctx context.Context, addr domain.Address) (domain.Amount, error) {
	var raw string
	err := t.tx.QueryRowContext(ctx, `SELECT amount::text FROM balances WHERE address = $1`, addr.String()).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Amount{}, nil
		}
		return domain.Amount{}, fmt.Errorf("read balance: %w", err)
	}
	return domain.ParseAmount(raw)
}

func (t *tx) SetBalance(ctx context.Context, addr domain.Address, amount domain.Amount) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO balances (address, amount) VALUES ($1, $2::numeric)
		ON CONFLICT (address) DO UPDATE SET amount = EXCLUDED.amount`,
		addr.String(), amount.String(),
	)
	if err != nil {
		return fmt.Errorf("set balance: %w", err)
	}
	return nil
}

func (t *tx) Pool(ctx context.Context) (domain.Amount, error) {
	var raw string
	err := t.tx.QueryRowContext(ctx, `SELECT amount::text FROM pool WHERE id = 1`).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Amount{}, nil
		}
		return domain.Amount{}, fmt.Errorf("read pool: %w", err)
	}
	return domain.ParseAmount(raw)
}

func (t *tx) SetPool(ctx context.Context, amount domain.Amount) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO pool (id, amount) VALUES (1, $1::numeric)
		ON CONFLICT (id) DO UPDATE SET amount = EXCLUDED.amount`,
		amount.String(),
	)
	if err != nil {
		return fmt.Errorf("set pool: %w", err)
	}
	return nil
}
