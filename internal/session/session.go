package session

import "context"

// OrderedSet tracks which products a session has successfully ordered.
// The set only exists to disable re-ordering in the storefront UI; it is
// discarded when the session expires.
type OrderedSet interface {
	Add(ctx context.Context, sessionID, productID string) error
	Contains(ctx context.Context, sessionID, productID string) (bool, error)
	List(ctx context.Context, sessionID string) ([]string, error)
}
