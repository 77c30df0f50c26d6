package recalc

import (
	"sync"
	"testing"
	"time"
)

func TestDebouncerBurstRunsLastOnce(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Close()

	var mu sync.Mutex
	var fired []int

	for i := 1; i <= 5; i++ {
		i := i
		d.Schedule(func() {
			mu.Lock()
			fired = append(fired, i)
			mu.Unlock()
		})
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(fired) != 1 {
		t.Fatalf("expected exactly one execution, got %d", len(fired))
	}
	if fired[0] != 5 {
		t.Fatalf("expected last scheduled function, got %d", fired[0])
	}
}

func TestDebouncerStaleTimerNeverFires(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	defer d.Close()

	var mu sync.Mutex
	count := 0

	// keep rescheduling faster than the quiet period
	for i := 0; i < 10; i++ {
		d.Schedule(func() {
			mu.Lock()
			count++
			mu.Unlock()
		})
		time.Sleep(3 * time.Millisecond)
	}

	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if count != 1 {
		t.Fatalf("expected one execution after the burst, got %d", count)
	}
}

func TestDebouncerFlushRunsPendingImmediately(t *testing.T) {
	d := NewDebouncer(time.Hour)
	defer d.Close()

	done := make(chan struct{})
	d.Schedule(func() { close(done) })
	d.Flush()

	select {
	case <-done:
	default:
		t.Fatalf("flush should have run the pending function")
	}

	// nothing left to run
	d.Flush()
}

func TestDebouncerCloseCancelsPending(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)

	fired := make(chan struct{}, 1)
	d.Schedule(func() { fired <- struct{}{} })
	d.Close()

	select {
	case <-fired:
		t.Fatalf("pending function fired after close")
	case <-time.After(50 * time.Millisecond):
	}

	// schedule after close is ignored
	d.Schedule(func() { fired <- struct{}{} })
	select {
	case <-fired:
		t.Fatalf("schedule after close should be ignored")
	case <-time.After(30 * time.Millisecond):
	}
}
