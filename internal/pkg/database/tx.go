package database

import "context"

// TxManager runs a function inside a single database transaction. The
// transaction travels in the context so repositories pick it up through
// GetQuerier without changing their signatures. Services depend on this
// interface rather than the pool so business logic can be exercised
// without postgres.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
