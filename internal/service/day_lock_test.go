package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayLocksSerializeSameKey(t *testing.T) {
	locks := newDayLocks()
	date := mustDate("2025-03-10")

	var (
		mu      sync.Mutex
		inside  int
		maxSeen int
		wg      sync.WaitGroup
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock(1, date)
			defer unlock()

			mu.Lock()
			inside++
			maxSeen = max(maxSeen, inside)
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Zero(t, locks.size())
}

func TestDayLocksDifferentKeysDoNotBlock(t *testing.T) {
	locks := newDayLocks()
	date := mustDate("2025-03-10")

	unlockA := locks.Lock(1, date)
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := locks.Lock(1, date.AddDays(1))
		unlockC := locks.Lock(2, date)
		unlockC()
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock for a different doctor or date blocked")
	}
	assert.Equal(t, 1, locks.size())
}
