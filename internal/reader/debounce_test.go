package reader

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_ForwardsLastValue(t *testing.T) {
	var got atomic.Int64
	var calls atomic.Int64
	d := NewDebouncer(30*time.Millisecond, func(v int) {
		got.Store(int64(v))
		calls.Add(1)
	})

	// Simulate a continuous drag: only the final value may be forwarded.
	d.Submit(3)
	d.Submit(7)
	d.Submit(12)

	time.Sleep(120 * time.Millisecond)

	if calls.Load() != 1 {
		t.Fatalf("fn called %d times, want 1", calls.Load())
	}
	if got.Load() != 12 {
		t.Errorf("forwarded %d, want 12", got.Load())
	}
}

func TestDebouncer_Stop(t *testing.T) {
	var calls atomic.Int64
	d := NewDebouncer(20*time.Millisecond, func(int) { calls.Add(1) })

	d.Submit(5)
	d.Stop()

	time.Sleep(80 * time.Millisecond)
	if calls.Load() != 0 {
		t.Errorf("fn called %d times after Stop, want 0", calls.Load())
	}
}

func TestDebouncer_Flush(t *testing.T) {
	var got atomic.Int64
	var calls atomic.Int64
	d := NewDebouncer(time.Minute, func(v int) {
		got.Store(int64(v))
		calls.Add(1)
	})

	d.Submit(9)
	d.Flush()

	if calls.Load() != 1 {
		t.Fatalf("fn called %d times after Flush, want 1", calls.Load())
	}
	if got.Load() != 9 {
		t.Errorf("flushed %d, want 9", got.Load())
	}

	// Flushing again must not re-fire the stale value.
	d.Flush()
	if calls.Load() != 1 {
		t.Errorf("fn called %d times after second Flush, want 1", calls.Load())
	}
}
