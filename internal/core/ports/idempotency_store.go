package ports

import "context"

// IdempotencyStore remembers which expense a client-supplied key created.
// Keys are scoped by owner: the same key from two users never collides.
type IdempotencyStore interface {
	Lookup(ctx context.Context, ownerID, key string) (expenseID string, found bool, err error)
	Remember(ctx context.Context, ownerID, key, expenseID string) error
}
