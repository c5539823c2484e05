package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	oraclemodels "flightsurety/internal/oracle/models"
	"flightsurety/pkg/domain"
	"flightsurety/pkg/platform/sentinel"
)

func (t *tx) FindOracle(ctx context.Context, addr domain.Address) (*oraclemodels.Oracle, error) {
	var (
		o       oraclemodels.Oracle
		indices []int64
		fee     string
	)
	err := t.tx.QueryRowContext(ctx,
		`SELECT indices, fee::text, registered_at FROM oracles WHERE address = $1`,
		addr.String(),
	).Scan(pq.Array(&indices), &fee, &o.RegisteredAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find oracle: %w", err)
	}
	if len(indices) != oraclemodels.IndexCount {
		return nil, fmt.Errorf("oracle %s has %d indices", addr, len(indices))
	}
	for i, idx := range indices {
		o.Indices[i] = domain.Index(idx)
	}
	if o.Fee, err = domain.ParseAmount(fee); err != nil {
		return nil, fmt.Errorf("decode oracle fee: %w", err)
	}
	o.Address = addr
	return &o, nil
}

func (t *tx) CreateOracle(ctx context.Context, oracle *oraclemodels.Oracle) error {
	indices := make([]int64, 0, len(oracle.Indices))
	for _, idx := range oracle.Indices {
		indices = append(indices, int64(idx))
	}
	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO oracles (address, indices, fee, registered_at)
		VALUES ($1, $2, $3::numeric, $4)
		ON CONFLICT (address) DO NOTHING`,
		oracle.Address.String(), pq.Array(indices), oracle.Fee.String(), oracle.RegisteredAt,
	)
	if err != nil {
		return fmt.Errorf("create oracle: %w", err)
	}
	return requireInserted(res)
}

func (t *tx) FindRequest(ctx context.Context, key domain.RequestKey) (*oraclemodels.Request, error) {
	var (
		r                  oraclemodels.Request
		requester, airline string
		idx, settled       int
		closedAt           sql.NullTime
	)
	err := t.tx.QueryRowContext(ctx, `
		SELECT requester, idx, airline, flight, ts, open, settled_code, opened_at, closed_at
		FROM oracle_requests WHERE key = $1`,
		key.String(),
	).Scan(&requester, &idx, &airline, &r.Flight, &r.Timestamp, &r.Open, &settled, &r.OpenedAt, &closedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find request: %w", err)
	}
	if r.Requester, err = domain.ParseAddress(requester); err != nil {
		return nil, fmt.Errorf("decode requester: %w", err)
	}
	if r.Airline, err = domain.ParseAddress(airline); err != nil {
		return nil, fmt.Errorf("decode request airline: %w", err)
	}
	r.Key = key
	r.Index = domain.Index(idx)
	r.SettledCode = domain.StatusCode(settled)
	r.ClosedAt = timePtr(closedAt)

	rows, err := t.tx.QueryContext(ctx,
		`SELECT status_code, reporter FROM oracle_responses WHERE request_key = $1 ORDER BY seq`,
		key.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			code     int
			reporter string
		)
		if err := rows.Scan(&code, &reporter); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		addr, err := domain.ParseAddress(reporter)
		if err != nil {
			return nil, fmt.Errorf("decode reporter: %w", err)
		}
		slot := domain.StatusCode(code).Slot()
		if slot < 0 {
			return nil, fmt.Errorf("response with unknown status code %d", code)
		}
		r.Responses[slot] = append(r.Responses[slot], addr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate responses: %w", err)
	}
	return &r, nil
}

func (t *tx) CreateRequest(ctx context.Context, req *oraclemodels.Request) error {
	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO oracle_requests (key, requester, idx, airline, flight, ts, open, settled_code, opened_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (key) DO NOTHING`,
		req.Key.String(), req.Requester.String(), int(req.Index), req.Airline.String(),
		req.Flight, req.Timestamp, req.Open, int(req.SettledCode), req.OpenedAt,
	)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return requireInserted(res)
}

func (t *tx) AppendResponse(ctx context.Context, key domain.RequestKey, code domain.StatusCode, reporter domain.Address) error {
	if code.Slot() < 0 {
		return sentinel.ErrInvalidState
	}
	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO oracle_responses (request_key, status_code, reporter)
		VALUES ($1, $2, $3)
		ON CONFLICT (request_key, reporter) DO NOTHING`,
		key.String(), int(code), reporter.String(),
	)
	if err != nil {
		return fmt.Errorf("append response: %w", err)
	}
	return requireInserted(res)
}

func (t *tx) CloseRequest(ctx context.Context, req *oraclemodels.Request) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE oracle_requests SET open = $2, settled_code = $3, closed_at = $4 WHERE key = $1`,
		req.Key.String(), req.Open, int(req.SettledCode), nullTime(req.ClosedAt),
	)
	if err != nil {
		return fmt.Errorf("close request: %w", err)
	}
	return requireUpdated(res)
}
