// Package tx carries an open ledger transaction through a context so that a
// call made while the transaction is running joins it instead of opening a
// second one.
package tx

import "context"

type ctxKey struct{}

var txKey = ctxKey{}

// WithTx stores an open transaction in context for downstream use.
func WithTx[T any](ctx context.Context, tx T) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// From extracts the transaction from context if present and of type T.
func From[T any](ctx context.Context) (T, bool) {
	tx, ok := ctx.Value(txKey).(T)
	return tx, ok
}
