package model

// Todo is a single todo item owned by a user. Names are unique within one
// owner's scope, enforced by a composite unique key in the `todos` table.
type Todo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Owner       int64  `json:"owner"`
	Done        bool   `json:"done"`
}
