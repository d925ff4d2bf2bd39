package utils

import (
	"sync"
	"testing"
	"time"
)

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	km := NewKeyedMutex()
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.Lock("session-1")
			counter++
			unlock()
		}()
	}
	wg.Wait()
	if counter != 100 {
		t.Fatalf("expected 100 increments, got %d", counter)
	}
	if km.Len() != 0 {
		t.Fatalf("expected released keys to be dropped, have %d", km.Len())
	}
}

func TestKeyedMutexDistinctKeysDoNotWait(t *testing.T) {
	km := NewKeyedMutex()
	unlockA := km.Lock("CA-A")
	defer unlockA()

	got := make(chan struct{})
	go func() {
		unlock := km.Lock("CA-B")
		unlock()
		close(got)
	}()
	select {
	case <-got:
	case <-time.After(time.Second):
		t.Fatalf("lock on CA-B waited for CA-A")
	}
}

func TestKeyedMutexSameKeyWaits(t *testing.T) {
	km := NewKeyedMutex()
	unlock := km.Lock("CA-A")

	got := make(chan struct{})
	go func() {
		u := km.Lock("CA-A")
		u()
		close(got)
	}()
	select {
	case <-got:
		t.Fatalf("second holder entered while the key was held")
	case <-time.After(50 * time.Millisecond):
	}
	unlock()
	<-got
}
