// Package payments moves value out of the escrow to an external account.
package payments

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"flightsurety/pkg/domain"
	"flightsurety/pkg/requestcontext"
)

// Transferer performs an outbound value transfer. It is invoked inside the
// ledger transaction after the payer's state has been settled, so an
// implementation that calls back into the app observes the post-debit state.
type Transferer interface {
	Transfer(ctx context.Context, to domain.Address, amount domain.Amount) error
}

// TransferFunc adapts a function to Transferer.
type TransferFunc func(ctx context.Context, to domain.Address, amount domain.Amount) error

func (f TransferFunc) Transfer(ctx context.Context, to domain.Address, amount domain.Amount) error {
	return f(ctx, to, amount)
}

// Transfer is one recorded outbound payment.
type Transfer struct {
	To        domain.Address `json:"to"`
	Amount    domain.Amount  `json:"amount"`
	RequestID string         `json:"request_id,omitempty"`
	At        time.Time      `json:"at"`
}

// Journal is the default Transferer: it records every transfer and logs it
// for downstream settlement.
type Journal struct {
	mu        sync.Mutex
	transfers []Transfer
	logger    *slog.Logger
}

func NewJournal(logger *slog.Logger) *Journal {
	if logger == nil {
		logger = slog.Default()
	}
	return &Journal{logger: logger}
}

func (j *Journal) Transfer(ctx context.Context, to domain.Address, amount domain.Amount) error {
	t := Transfer{
		To:        to,
		Amount:    amount,
		RequestID: requestcontext.RequestID(ctx),
		At:        requestcontext.Now(ctx),
	}
	j.mu.Lock()
	j.transfers = append(j.transfers, t)
	j.mu.Unlock()

	j.logger.InfoContext(ctx, "outbound transfer",
		"to", to.String(),
		"amount_wei", amount.String(),
		"request_id", t.RequestID,
	)
	return nil
}

// Transfers returns every transfer recorded so far.
func (j *Journal) Transfers() []Transfer {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]Transfer, len(j.transfers))
	copy(out, j.transfers)
	return out
}

// Total sums the transfers made to addr.
func (j *Journal) Total(addr domain.Address) domain.Amount {
	j.mu.Lock()
	defer j.mu.Unlock()
	var total domain.Amount
	for _, t := range j.transfers {
		if t.To == addr {
			total = total.Add(t.Amount)
		}
	}
	return total
}
