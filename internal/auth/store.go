package auth

import (
	"context"
	"time"

	"github.com/iliyamo/todo-auth/internal/model"
)

// UserStore is the narrow persistence contract the core needs for users.
// Lookups return (nil, nil) when no row matches; errors are reserved for
// storage failures. Insert must return ErrUsernameTaken when the name is
// already present and fill in the generated ID on success.
type UserStore interface {
	FindByName(ctx context.Context, name string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	Insert(ctx context.Context, u *model.User) error
}

// TokenStore is the persistence contract for refresh tokens.
//
// MarkConsumed sets token_child and clears the active flag on the row with
// the given value, but only while the row is still active with no child. It
// reports whether this call performed the transition; false means another
// rotation consumed the token first. That conditional write is what makes
// concurrent rotations on one token value safe across processes.
type TokenStore interface {
	Find(ctx context.Context, value string) (*model.RefreshToken, error)
	Insert(ctx context.Context, t *model.RefreshToken) error
	CountWithValue(ctx context.Context, value string) (int, error)
	MarkConsumed(ctx context.Context, value, child string) (bool, error)
	Deactivate(ctx context.Context, value string) error
}

// ReuseReport describes a detected refresh-token replay: a token that was
// already consumed or invalidated has been presented again.
type ReuseReport struct {
	UserID      int64
	Invalidated int
	DetectedAt  time.Time
}

// AuditSink receives security-relevant events from the core. Implementations
// must not block the request path; publishing failures are theirs to handle.
type AuditSink interface {
	TokenReuseDetected(ctx context.Context, report ReuseReport)
}
