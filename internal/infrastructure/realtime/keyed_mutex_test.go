package realtime

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	km := NewKeyedMutex()

	const goroutines = 16
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.Lock("k")
			v := counter
			time.Sleep(time.Millisecond)
			counter = v + 1
			km.Unlock("k")
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines, counter)
}

func TestKeyedMutexIndependentKeysDoNotContend(t *testing.T) {
	km := NewKeyedMutex()
	km.Lock("held")
	defer km.Unlock("held")

	done := make(chan struct{})
	go func() {
		km.Lock("other")
		km.Unlock("other")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("independent key blocked behind a held key")
	}
}

func TestKeyedMutexDropsReleasedEntries(t *testing.T) {
	km := NewKeyedMutex()
	km.Lock("k")
	km.Unlock("k")

	km.mu.Lock()
	defer km.mu.Unlock()
	assert.Empty(t, km.locks, "released keys must not leak")
}
