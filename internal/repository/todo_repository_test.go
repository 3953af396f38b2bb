package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/todo-auth/internal/model"
)

func newTodoRepoWithMock(t *testing.T) (*TodoRepo, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewTodoRepo(db), mock, db
}

func TestTodoInsert_Success(t *testing.T) {
	repo, mock, db := newTodoRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+todos\s+\(name,\s*description,\s*owner,\s*done\)\s+VALUES\s+\(\?,\?,\?,\?\)`

	mock.ExpectExec(q).
		WithArgs("groceries", "milk and eggs", int64(7), false).
		WillReturnResult(sqlmock.NewResult(3, 1))

	todo := &model.Todo{Name: "groceries", Description: "milk and eggs", Owner: 7}
	if err := repo.Insert(context.Background(), todo); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if todo.ID != 3 {
		t.Fatalf("want generated id 3, got %d", todo.ID)
	}
}

func TestTodoInsert_DuplicateName(t *testing.T) {
	repo, mock, db := newTodoRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT`).
		WithArgs("groceries", "", int64(7), false).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	err := repo.Insert(context.Background(), &model.Todo{Name: "groceries", Owner: 7})
	if !errors.Is(err, ErrTodoNameTaken) {
		t.Fatalf("want ErrTodoNameTaken, got %v", err)
	}
}

func TestTodoListForUser(t *testing.T) {
	repo, mock, db := newTodoRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*name,\s*description,\s*owner,\s*done\s+FROM\s+todos\s+WHERE\s+owner=\?\s+ORDER\s+BY\s+id\s+LIMIT\s+\?\s+OFFSET\s+\?`

	rows := sqlmock.NewRows([]string{"id", "name", "description", "owner", "done"}).
		AddRow(int64(1), "groceries", "", int64(7), false).
		AddRow(int64(2), "laundry", "whites", int64(7), true)

	mock.ExpectQuery(q).WithArgs(int64(7), 100, 0).WillReturnRows(rows)

	todos, err := repo.ListForUser(context.Background(), 7, 0, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(todos) != 2 {
		t.Fatalf("want 2 todos, got %d", len(todos))
	}
	if !todos[1].Done {
		t.Fatalf("unexpected row: %+v", todos[1])
	}
}

func TestTodoFindByIDAndOwner_NotFound(t *testing.T) {
	repo, mock, db := newTodoRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).WithArgs(int64(9), int64(7)).WillReturnError(sql.ErrNoRows)

	todo, err := repo.FindByIDAndOwner(context.Background(), 9, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if todo != nil {
		t.Fatalf("want nil for a row owned by someone else, got %+v", todo)
	}
}

func TestTodoDeleteByIDAndOwner(t *testing.T) {
	repo, mock, db := newTodoRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+todos\s+WHERE\s+id=\?\s+AND\s+owner=\?`

	mock.ExpectExec(q).WithArgs(int64(3), int64(7)).WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.DeleteByIDAndOwner(context.Background(), 3, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Fatalf("want 1 row deleted, got %d", n)
	}
}
