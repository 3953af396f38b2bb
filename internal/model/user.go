package model

// User represents an application user record as stored in the `users`
// table. The password column holds a bcrypt hash, never the raw password.
// Permissions are persisted as a comma-delimited string of integers; the
// repository converts between that column form and the typed set here, so
// the rest of the application only ever sees []Permission.
//
// Fields:
//  ID          – primary key identifier of the user.
//  Name        – unique username.
//  Password    – bcrypt hashed password.
//  Permissions – capability flags granted to the user.
type User struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Password    string       `json:"-"`
	Permissions []Permission `json:"permissions"`
}
