// Package tokenstore keeps the access token of each UI browser session.
package tokenstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the session holds no token.
var ErrNotFound = errors.New("token not found")

// Store is keyed by the browser session id.
type Store interface {
	Get(ctx context.Context, session string) (string, error)
	Set(ctx context.Context, session, token string) error
	Remove(ctx context.Context, session string) error
}
