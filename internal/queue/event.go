// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// SecurityQueueName is the durable queue carrying authentication security
// events.
const SecurityQueueName = "auth.token_reuse"

// TokenReuseDetectedEvent is published when an already-consumed refresh
// token is presented again and its descendant family is invalidated in
// response. The raw token value is deliberately absent from the payload.
type TokenReuseDetectedEvent struct {
	EventID     string `json:"event_id"`
	UserID      int64  `json:"user_id"`
	Invalidated int    `json:"invalidated"`
	DetectedAt  string `json:"detected_at"`
}
