// Package repository implements the persistence layer on MySQL. Lookups
// return (nil, nil) when no row matches; sentinel errors cover the conflict
// cases handlers need to distinguish.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrTodoNameTaken is returned when creating a todo whose name already
// exists within the owner's scope. Handlers translate this into HTTP 400.
var ErrTodoNameTaken = errors.New("todo name exists in the user scope")

// isDuplicateKey reports whether err is a MySQL duplicate-entry violation
// (error 1062) on a unique key.
func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
