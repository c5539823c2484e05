package storage

import (
	"context"
	"slices"
	"time"

	airlinemodels "flightsurety/internal/airline/models"
	flightmodels "flightsurety/internal/flight/models"
	insurancemodels "flightsurety/internal/insurance/models"
	oraclemodels "flightsurety/internal/oracle/models"
	suretymodels "flightsurety/internal/surety/models"
	"flightsurety/pkg/domain"
	dErrors "flightsurety/pkg/domain-errors"
	"flightsurety/pkg/platform/sentinel"
)

// defaultTxTimeout bounds how long a transaction waits for the ledger lock
// when the caller's context has no deadline.
const defaultTxTimeout = 5 * time.Second

// MemoryLedger keeps all state in process memory behind a one-slot lock that
// waiters can abandon when their context ends.
// Mutations inside a transaction record an undo step; a failed transaction
// replays the steps in reverse so no partial write survives.
type MemoryLedger struct {
	lock    chan struct{}
	state   *memoryState
	timeout time.Duration
}

type memoryState struct {
	system   *suretymodels.System
	airlines map[domain.Address]*airlinemodels.Airline
	votes    map[domain.Address][]domain.Address
	flights  map[domain.FlightKey]*flightmodels.Flight
	claims   map[domain.FlightKey][]*insurancemodels.Claim
	balances map[domain.Address]domain.Amount
	pool     domain.Amount
	oracles  map[domain.Address]*oraclemodels.Oracle
	requests map[domain.RequestKey]*oraclemodels.Request
}

// NewMemoryLedger returns an empty in-memory ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		lock:    make(chan struct{}, 1),
		timeout: defaultTxTimeout,
		state: &memoryState{
			airlines: make(map[domain.Address]*airlinemodels.Airline),
			votes:    make(map[domain.Address][]domain.Address),
			flights:  make(map[domain.FlightKey]*flightmodels.Flight),
			claims:   make(map[domain.FlightKey][]*insurancemodels.Claim),
			balances: make(map[domain.Address]domain.Amount),
			oracles:  make(map[domain.Address]*oraclemodels.Oracle),
			requests: make(map[domain.RequestKey]*oraclemodels.Request),
		},
	}
}

// RunInTx serializes fn against every other transaction.
func (l *MemoryLedger) RunInTx(ctx context.Context, fn func(tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline && l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	select {
	case l.lock <- struct{}{}:
	case <-ctx.Done():
		return dErrors.Wrap(ctx.Err(), dErrors.CodeTimeout, "transaction aborted: ledger lock not acquired")
	}
	defer func() { <-l.lock }()

	tx := &memoryTx{s: l.state}
	defer func() {
		if p := recover(); p != nil {
			tx.rollback()
			panic(p)
		}
	}()
	if err := fn(tx); err != nil {
		tx.rollback()
		return err
	}
	return nil
}

type memoryTx struct {
	s    *memoryState
	undo []func()
}

func (t *memoryTx) record(step func()) {
	t.undo = append(t.undo, step)
}

func (t *memoryTx) rollback() {
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}

// -----------------------------------------------------------------------------
// System
// -----------------------------------------------------------------------------

func (t *memoryTx) LoadSystem(_ context.Context) (*suretymodels.System, error) {
	if t.s.system == nil {
		return nil, sentinel.ErrNotFound
	}
	cp := *t.s.system
	return &cp, nil
}

func (t *memoryTx) SaveSystem(_ context.Context, system *suretymodels.System) error {
	prev := t.s.system
	t.record(func() { t.s.system = prev })
	cp := *system
	t.s.system = &cp
	return nil
}

// -----------------------------------------------------------------------------
// Airlines
// -----------------------------------------------------------------------------

func (t *memoryTx) FindAirline(_ context.Context, addr domain.Address) (*airlinemodels.Airline, error) {
	a, ok := t.s.airlines[addr]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (t *memoryTx) SaveAirline(_ context.Context, airline *airlinemodels.Airline) error {
	prev, existed := t.s.airlines[airline.Address]
	t.record(func() {
		if existed {
			t.s.airlines[airline.Address] = prev
		} else {
			delete(t.s.airlines, airline.Address)
		}
	})
	cp := *airline
	t.s.airlines[airline.Address] = &cp
	return nil
}

func (t *memoryTx) CountAirlines(_ context.Context) (airlinemodels.Counts, error) {
	var c airlinemodels.Counts
	for _, a := range t.s.airlines {
		if a.IsRegistered() {
			c.Registered++
		}
		if a.IsFunded() {
			c.Funded++
		}
	}
	return c, nil
}

func (t *memoryTx) ListVotes(_ context.Context, candidate domain.Address) ([]domain.Address, error) {
	return slices.Clone(t.s.votes[candidate]), nil
}

func (t *memoryTx) AppendVote(_ context.Context, candidate, voter domain.Address) error {
	prev := t.s.votes[candidate]
	if slices.Contains(prev, voter) {
		return sentinel.ErrAlreadyUsed
	}
	t.record(func() { t.restoreVotes(candidate, prev) })
	t.s.votes[candidate] = append(slices.Clone(prev), voter)
	return nil
}

func (t *memoryTx) ClearVotes(_ context.Context, candidate domain.Address) error {
	prev, ok := t.s.votes[candidate]
	if !ok {
		return nil
	}
	t.record(func() { t.restoreVotes(candidate, prev) })
	delete(t.s.votes, candidate)
	return nil
}

func (t *memoryTx) restoreVotes(candidate domain.Address, prev []domain.Address) {
	if prev == nil {
		delete(t.s.votes, candidate)
		return
	}
	t.s.votes[candidate] = prev
}

// -----------------------------------------------------------------------------
// Flights
// -----------------------------------------------------------------------------

func (t *memoryTx) FindFlight(_ context.Context, key domain.FlightKey) (*flightmodels.Flight, error) {
	f, ok := t.s.flights[key]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *f
	return &cp, nil
}

func (t *memoryTx) CreateFlight(_ context.Context, flight *flightmodels.Flight) error {
	if _, ok := t.s.flights[flight.Key]; ok {
		return sentinel.ErrAlreadyUsed
	}
	t.record(func() { delete(t.s.flights, flight.Key) })
	cp := *flight
	t.s.flights[flight.Key] = &cp
	return nil
}

func (t *memoryTx) UpdateFlightStatus(_ context.Context, flight *flightmodels.Flight) error {
	cur, ok := t.s.flights[flight.Key]
	if !ok {
		return sentinel.ErrNotFound
	}
	prevStatus, prevResolved := cur.Status, cur.ResolvedAt
	t.record(func() {
		cur.Status = prevStatus
		cur.ResolvedAt = prevResolved
	})
	cur.Status = flight.Status
	cur.ResolvedAt = flight.ResolvedAt
	return nil
}

// -----------------------------------------------------------------------------
// Insurance
// -----------------------------------------------------------------------------

func (t *memoryTx) ListClaims(_ context.Context, key domain.FlightKey) ([]*insurancemodels.Claim, error) {
	claims := t.s.claims[key]
	out := make([]*insurancemodels.Claim, 0, len(claims))
	for _, c := range claims {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (t *memoryTx) AppendClaim(_ context.Context, claim *insurancemodels.Claim) error {
	prev := t.s.claims[claim.FlightKey]
	for _, c := range prev {
		if c.Passenger == claim.Passenger {
			return sentinel.ErrAlreadyUsed
		}
	}
	t.record(func() {
		if prev == nil {
			delete(t.s.claims, claim.FlightKey)
			return
		}
		t.s.claims[claim.FlightKey] = prev
	})
	cp := *claim
	t.s.claims[claim.FlightKey] = append(slices.Clone(prev), &cp)
	return nil
}

func (t *memoryTx) MarkClaimCredited(_ context.Context, key domain.FlightKey, passenger domain.Address) error {
	for _, c := range t.s.claims[key] {
		if c.Passenger != passenger {
			continue
		}
		prev := c.Credited
		t.record(func() { c.Credited = prev })
		c.Credited = true
		return nil
	}
	return sentinel.ErrNotFound
}

func (t *memoryTx) Balance(_ context.Context, addr domain.Address) (domain.Amount, error) {
	return t.s.balances[addr], nil
}

func (t *memoryTx) SetBalance(_ context.Context, addr domain.Address, amount domain.Amount) error {
	prev, existed := t.s.balances[addr]
	t.record(func() {
		if existed {
			t.s.balances[addr] = prev
		} else {
			delete(t.s.balances, addr)
		}
	})
	t.s.balances[addr] = amount
	return nil
}

func (t *memoryTx) Pool(_ context.Context) (domain.Amount, error) {
	return t.s.pool, nil
}

func (t *memoryTx) SetPool(_ context.Context, amount domain.Amount) error {
	prev := t.s.pool
	t.record(func() { t.s.pool = prev })
	t.s.pool = amount
	return nil
}

// -----------------------------------------------------------------------------
// Oracles
// -----------------------------------------------------------------------------

func (t *memoryTx) FindOracle(_ context.Context, addr domain.Address) (*oraclemodels.Oracle, error) {
	o, ok := t.s.oracles[addr]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (t *memoryTx) CreateOracle(_ context.Context, oracle *oraclemodels.Oracle) error {
	if _, ok := t.s.oracles[oracle.Address]; ok {
		return sentinel.ErrAlreadyUsed
	}
	t.record(func() { delete(t.s.oracles, oracle.Address) })
	cp := *oracle
	t.s.oracles[oracle.Address] = &cp
	return nil
}

func (t *memoryTx) FindRequest(_ context.Context, key domain.RequestKey) (*oraclemodels.Request, error) {
	r, ok := t.s.requests[key]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneRequest(r), nil
}

func (t *memoryTx) CreateRequest(_ context.Context, req *oraclemodels.Request) error {
	if _, ok := t.s.requests[req.Key]; ok {
		return sentinel.ErrAlreadyUsed
	}
	t.record(func() { delete(t.s.requests, req.Key) })
	t.s.requests[req.Key] = cloneRequest(req)
	return nil
}

func (t *memoryTx) AppendResponse(_ context.Context, key domain.RequestKey, code domain.StatusCode, reporter domain.Address) error {
	r, ok := t.s.requests[key]
	if !ok {
		return sentinel.ErrNotFound
	}
	slot := code.Slot()
	if slot < 0 {
		return sentinel.ErrInvalidState
	}
	prev := r.Responses[slot]
	t.record(func() { r.Responses[slot] = prev })
	r.Responses[slot] = append(slices.Clone(prev), reporter)
	return nil
}

func (t *memoryTx) CloseRequest(_ context.Context, req *oraclemodels.Request) error {
	r, ok := t.s.requests[req.Key]
	if !ok {
		return sentinel.ErrNotFound
	}
	prevOpen, prevCode, prevClosed := r.Open, r.SettledCode, r.ClosedAt
	t.record(func() {
		r.Open = prevOpen
		r.SettledCode = prevCode
		r.ClosedAt = prevClosed
	})
	r.Open = req.Open
	r.SettledCode = req.SettledCode
	r.ClosedAt = req.ClosedAt
	return nil
}

func cloneRequest(r *oraclemodels.Request) *oraclemodels.Request {
	cp := *r
	for i := range cp.Responses {
		cp.Responses[i] = slices.Clone(r.Responses[i])
	}
	return &cp
}
