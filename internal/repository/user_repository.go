package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/todo-auth/internal/auth"
	"github.com/iliyamo/todo-auth/internal/model"
)

// UserRepo persists users in the `users` table. The permissions column is a
// comma-delimited string; conversion to the typed set happens here and
// nowhere else. UserRepo satisfies auth.UserStore.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Insert stores a new user and fills in the generated ID. A duplicate name
// maps to auth.ErrUsernameTaken, the sentinel the auth core understands.
func (r *UserRepo) Insert(ctx context.Context, u *model.User) error {
	u.Name = strings.TrimSpace(u.Name)
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, password, permissions) VALUES (?,?,?)",
		u.Name, u.Password, model.EncodePermissions(u.Permissions))
	if err != nil {
		if isDuplicateKey(err) {
			return auth.ErrUsernameTaken
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

// FindByName fetches a user by its unique name, (nil, nil) when absent.
func (r *UserRepo) FindByName(ctx context.Context, name string) (*model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT id, name, password, permissions FROM users WHERE name=? LIMIT 1", name))
}

// FindByID fetches a user by id, (nil, nil) when absent.
func (r *UserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT id, name, password, permissions FROM users WHERE id=? LIMIT 1", id))
}

// List returns a page of users ordered by id.
func (r *UserRepo) List(ctx context.Context, offset, limit int) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, password, permissions FROM users ORDER BY id LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		var perms string
		if err := rows.Scan(&u.ID, &u.Name, &u.Password, &perms); err != nil {
			return nil, err
		}
		if u.Permissions, err = model.ParsePermissions(perms); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update overwrites name, password hash and permissions of the user with
// u.ID. A duplicate name maps to auth.ErrUsernameTaken.
func (r *UserRepo) Update(ctx context.Context, u *model.User) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET name=?, password=?, permissions=? WHERE id=?",
		strings.TrimSpace(u.Name), u.Password, model.EncodePermissions(u.Permissions), u.ID)
	if err != nil && isDuplicateKey(err) {
		return auth.ErrUsernameTaken
	}
	return err
}

// Delete removes the user row and reports how many rows went away.
func (r *UserRepo) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanUser(row *sql.Row) (*model.User, error) {
	var u model.User
	var perms string
	err := row.Scan(&u.ID, &u.Name, &u.Password, &perms)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if u.Permissions, err = model.ParsePermissions(perms); err != nil {
		return nil, err
	}
	return &u, nil
}
