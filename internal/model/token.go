package model

import "time"

// RefreshToken models a row in the `refresh_tokens` table. The token value
// itself is the primary key. Tokens form a singly linked rotation chain:
// when a token is exchanged, the replacement's value is written into
// TokenChild and Active flips to false. TokenChild, once set, is never
// rewritten.
//
// Fields:
//  Token      – cryptographically random, URL-safe token value (primary key).
//  UserID     – owner of the token.
//  TokenChild – value of the direct replacement token (nil while unconsumed).
//  NotAfter   – absolute expiry.
//  Active     – false once consumed or invalidated.
type RefreshToken struct {
	Token      string
	UserID     int64
	TokenChild *string
	NotAfter   time.Time
	Active     bool
}

// TokenPair is the login/refresh response payload: a signed access token
// plus the raw refresh token. It is handed to the client and never stored
// as a unit.
type TokenPair struct {
	AuthToken    string `json:"auth_token"`
	RefreshToken string `json:"refresh_token"`
}
