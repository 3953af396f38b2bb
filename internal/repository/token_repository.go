package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/todo-auth/internal/model"
)

// TokenRepo persists refresh tokens in the `refresh_tokens` table, keyed by
// the token value itself. It satisfies auth.TokenStore.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// Find fetches a refresh token row by value, (nil, nil) when absent.
func (r *TokenRepo) Find(ctx context.Context, value string) (*model.RefreshToken, error) {
	var t model.RefreshToken
	var child sql.NullString
	err := r.DB.QueryRowContext(ctx,
		"SELECT token, user_id, token_child, not_after, active FROM refresh_tokens WHERE token=? LIMIT 1",
		value).Scan(&t.Token, &t.UserID, &child, &t.NotAfter, &t.Active)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if child.Valid {
		t.TokenChild = &child.String
	}
	return &t, nil
}

// Insert stores a fresh token row with no child.
func (r *TokenRepo) Insert(ctx context.Context, t *model.RefreshToken) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO refresh_tokens (token, user_id, token_child, not_after, active) VALUES (?,?,NULL,?,?)",
		t.Token, t.UserID, t.NotAfter, t.Active)
	return err
}

// CountWithValue reports how many rows carry the given token value. Used
// for collision checking at generation time.
func (r *TokenRepo) CountWithValue(ctx context.Context, value string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM refresh_tokens WHERE token=?", value).Scan(&n)
	return n, err
}

// MarkConsumed links child as the token's replacement and clears the active
// flag, conditioned on the row still being active with no child. The
// condition makes concurrent rotations on the same value resolve to exactly
// one winner. Reports whether this call performed the transition.
func (r *TokenRepo) MarkConsumed(ctx context.Context, value, child string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE refresh_tokens SET active=0, token_child=? WHERE token=? AND active=1 AND token_child IS NULL",
		child, value)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Deactivate clears the active flag unconditionally. Idempotent; used for
// family invalidation.
func (r *TokenRepo) Deactivate(ctx context.Context, value string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE refresh_tokens SET active=0 WHERE token=?", value)
	return err
}
