// Package reporter simulates a fleet of off-chain status reporters. Each
// reporter registers through the HTTP API, learns its indices, and answers
// status requests whose index it holds.
package reporter

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	oraclemodels "flightsurety/internal/oracle/models"
	"flightsurety/pkg/domain"
	dErrors "flightsurety/pkg/domain-errors"
)

const (
	roleReporter       = "reporter"
	defaultConcurrency = 8
)

// StatusRequested is the part of a status request event a reporter needs.
type StatusRequested struct {
	Index     domain.Index
	Airline   domain.Address
	Flight    string
	Timestamp int64
}

// Member is one registered reporter.
type Member struct {
	Address domain.Address
	Indices [oraclemodels.IndexCount]domain.Index
	token   string
}

func (m *Member) holds(idx domain.Index) bool {
	return slices.Contains(m.Indices[:], idx)
}

// Summary counts what happened to one status request.
type Summary struct {
	Submitted int
	Accepted  int
	Rejected  map[oraclemodels.RejectReason]int
	Settled   bool
	Code      domain.StatusCode
	Failed    int
}

// Fleet owns a set of simulated reporters.
type Fleet struct {
	api         API
	strategy    Strategy
	logger      *slog.Logger
	size        int
	seed        string
	fee         domain.Amount
	concurrency int

	mu      sync.RWMutex
	members []*Member
}

// Option configures a Fleet.
type Option func(*Fleet)

func WithLogger(logger *slog.Logger) Option {
	return func(f *Fleet) { f.logger = logger }
}

// WithConcurrency bounds in-flight submissions per request.
func WithConcurrency(n int) Option {
	return func(f *Fleet) {
		if n > 0 {
			f.concurrency = n
		}
	}
}

// WithSeed changes the seed reporter addresses are derived from.
func WithSeed(seed string) Option {
	return func(f *Fleet) { f.seed = seed }
}

// NewFleet creates a fleet of size reporters that each pay fee on registration.
func NewFleet(api API, strategy Strategy, size int, fee domain.Amount, opts ...Option) *Fleet {
	f := &Fleet{
		api:         api,
		strategy:    strategy,
		logger:      slog.Default(),
		size:        size,
		seed:        "flightsurety-reporter",
		fee:         fee,
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// AddressAt derives the i-th reporter address from the fleet seed, so a
// restarted fleet reuses its registrations.
func AddressAt(seed string, i int) domain.Address {
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], uint64(i))
	h := domain.Keccak256([]byte(seed), n[:])
	var addr domain.Address
	copy(addr[:], h[len(h)-domain.AddressLength:])
	return addr
}

// Setup registers every reporter. Reporters registered by an earlier run
// fetch their indices instead.
func (f *Fleet) Setup(ctx context.Context) error {
	members := make([]*Member, 0, f.size)
	for i := range f.size {
		addr := AddressAt(f.seed, i)
		m, err := f.enroll(ctx, addr)
		if err != nil {
			return fmt.Errorf("enroll reporter %d: %w", i, err)
		}
		members = append(members, m)
		f.logger.InfoContext(ctx, "reporter ready",
			"reporter", addr.String(),
			"indices", m.Indices,
		)
	}

	f.mu.Lock()
	f.members = members
	f.mu.Unlock()
	return nil
}

func (f *Fleet) enroll(ctx context.Context, addr domain.Address) (*Member, error) {
	token, err := f.api.IssueToken(ctx, addr, roleReporter)
	if err != nil {
		return nil, err
	}
	m := &Member{Address: addr, token: token}

	reg, err := f.api.RegisterReporter(ctx, token, f.fee)
	switch {
	case err == nil:
		m.Indices = reg.Indices
		return m, nil
	case isAlreadyRegistered(err):
		indices, err := f.api.Indices(ctx, token)
		if err != nil {
			return nil, err
		}
		m.Indices = indices
		return m, nil
	default:
		return nil, err
	}
}

func isAlreadyRegistered(err error) bool {
	return dErrors.HasCode(err, dErrors.CodePreconditionFailed) &&
		strings.Contains(dErrors.MessageOf(err), "already registered")
}

// Members returns the registered reporters.
func (f *Fleet) Members() []*Member {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.members)
}

// Handle has every reporter holding the requested index submit a report.
// Individual submission failures are logged and counted, not returned.
func (f *Fleet) Handle(ctx context.Context, req StatusRequested) (Summary, error) {
	summary := Summary{Rejected: make(map[oraclemodels.RejectReason]int)}
	if !req.Index.Valid() {
		return summary, dErrors.New(dErrors.CodeInvalidInput, "index out of range")
	}

	var holders []*Member
	for _, m := range f.Members() {
		if m.holds(req.Index) {
			holders = append(holders, m)
		}
	}
	if len(holders) == 0 {
		f.logger.DebugContext(ctx, "no reporter holds index", "index", int(req.Index))
		return summary, nil
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)
	for _, m := range holders {
		g.Go(func() error {
			report := oraclemodels.Report{
				Index:     req.Index,
				Airline:   req.Airline,
				Flight:    req.Flight,
				Timestamp: req.Timestamp,
				Status:    f.strategy.Choose(req, m.Address),
			}
			outcome, err := f.api.SubmitReport(gctx, m.token, report)

			mu.Lock()
			defer mu.Unlock()
			summary.Submitted++
			if err != nil {
				summary.Failed++
				f.logger.WarnContext(gctx, "report failed",
					"reporter", m.Address.String(),
					"error", err,
				)
				return nil
			}
			if !outcome.Accepted {
				summary.Rejected[outcome.Reason]++
				f.logger.DebugContext(gctx, "report rejected",
					"reporter", m.Address.String(),
					"reason", string(outcome.Reason),
				)
				return nil
			}
			summary.Accepted++
			if outcome.Settled {
				summary.Settled = true
				summary.Code = outcome.StatusCode
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return summary, err
	}
	if err := ctx.Err(); err != nil {
		return summary, err
	}

	f.logger.InfoContext(ctx, "status request answered",
		"index", int(req.Index),
		"flight", req.Flight,
		"submitted", summary.Submitted,
		"accepted", summary.Accepted,
		"settled", summary.Settled,
		"status", summary.Code.String(),
	)
	return summary, nil
}
