// Package lock provides keyed mutual exclusion for the refresh-token
// rotation critical section. Rotation is a lookup→consume→insert sequence;
// two requests presenting the same token must not both observe it active.
package lock

import "context"

// Locker serializes work under a string key. Lock blocks until the key is
// held or ctx is done, then returns a release function. Releases must not
// be skipped; callers defer them immediately.
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}
