package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/todo-auth/internal/model"
)

// TodoRepo persists todo items. All reads and writes are scoped to the
// owning user; the `todos` table carries a unique key on (owner, name).
type TodoRepo struct{ DB *sql.DB }

func NewTodoRepo(db *sql.DB) *TodoRepo { return &TodoRepo{DB: db} }

// ListForUser returns a page of the user's todos ordered by id.
func (r *TodoRepo) ListForUser(ctx context.Context, userID int64, offset, limit int) ([]model.Todo, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, description, owner, done FROM todos WHERE owner=? ORDER BY id LIMIT ? OFFSET ?",
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := make([]model.Todo, 0)
	for rows.Next() {
		var t model.Todo
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.Owner, &t.Done); err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

// Insert stores a new todo and fills in the generated ID. A name collision
// within the owner's scope maps to ErrTodoNameTaken.
func (r *TodoRepo) Insert(ctx context.Context, t *model.Todo) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO todos (name, description, owner, done) VALUES (?,?,?,?)",
		t.Name, t.Description, t.Owner, t.Done)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrTodoNameTaken
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = id
	return nil
}

// FindByIDAndOwner fetches one todo scoped to its owner, (nil, nil) when
// absent or owned by someone else.
func (r *TodoRepo) FindByIDAndOwner(ctx context.Context, id, owner int64) (*model.Todo, error) {
	var t model.Todo
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, description, owner, done FROM todos WHERE id=? AND owner=? LIMIT 1",
		id, owner).Scan(&t.ID, &t.Name, &t.Description, &t.Owner, &t.Done)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Update overwrites name, description and done of the todo, scoped to its
// owner. A name collision maps to ErrTodoNameTaken.
func (r *TodoRepo) Update(ctx context.Context, t *model.Todo) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE todos SET name=?, description=?, done=? WHERE id=? AND owner=?",
		t.Name, t.Description, t.Done, t.ID, t.Owner)
	if err != nil && isDuplicateKey(err) {
		return ErrTodoNameTaken
	}
	return err
}

// DeleteByIDAndOwner removes the todo and reports how many rows went away.
func (r *TodoRepo) DeleteByIDAndOwner(ctx context.Context, id, owner int64) (int64, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM todos WHERE id=? AND owner=?", id, owner)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
