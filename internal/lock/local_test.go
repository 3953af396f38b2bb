package lock

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	km := NewKeyedMutex()

	const workers = 32
	var (
		wg      sync.WaitGroup
		counter int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := km.Lock(context.Background(), "shared")
			if err != nil {
				t.Error(err)
				return
			}
			counter++ // safe only if the lock actually excludes
			release()
		}()
	}
	wg.Wait()

	require.Equal(t, workers, counter)
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	km := NewKeyedMutex()

	releaseA, err := km.Lock(context.Background(), "a")
	require.NoError(t, err)
	defer releaseA()

	// A held lock on one key must not block another key.
	done := make(chan struct{})
	go func() {
		releaseB, err := km.Lock(context.Background(), "b")
		if err == nil {
			releaseB()
		}
		close(done)
	}()
	<-done
}

func TestKeyedMutexEntriesAreReclaimed(t *testing.T) {
	km := NewKeyedMutex()

	for _, key := range []string{"a", "b", "c"} {
		release, err := km.Lock(context.Background(), key)
		require.NoError(t, err)
		release()
	}

	km.mu.Lock()
	defer km.mu.Unlock()
	require.Empty(t, km.entries, "released keys must not linger in the map")
}
