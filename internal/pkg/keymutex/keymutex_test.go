package keymutex

import (
	"sync"
	"testing"
)

func TestKeyMutex_SerializesSameKey(t *testing.T) {
	km := New()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.Lock("a")
			counter++
			km.Unlock("a")
		}()
	}
	wg.Wait()

	if counter != 100 {
		t.Errorf("counter = %d, want 100", counter)
	}
}

func TestKeyMutex_IndependentKeys(t *testing.T) {
	km := New()
	km.Lock("a")

	done := make(chan struct{})
	go func() {
		km.Lock("b")
		km.Unlock("b")
		close(done)
	}()

	// Key "b" must not be blocked by "a".
	<-done
	km.Unlock("a")
}

func TestKeyMutex_ReleasesEntries(t *testing.T) {
	km := New()
	km.Lock("a")
	km.Unlock("a")

	km.mu.Lock()
	defer km.mu.Unlock()
	if len(km.locks) != 0 {
		t.Errorf("locks map has %d entries after unlock, want 0", len(km.locks))
	}
}
