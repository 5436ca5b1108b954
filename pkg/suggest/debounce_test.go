package suggest

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_Burst(t *testing.T) {
	var callCount atomic.Int32

	d := NewDebouncer(50*time.Millisecond, func() {
		callCount.Add(1)
	})

	for i := 0; i < 10; i++ {
		d.Call()
	}
	time.Sleep(100 * time.Millisecond)

	if callCount.Load() != 1 {
		t.Errorf("callCount = %d, want 1", callCount.Load())
	}
}

func TestDebouncer_SpacedCalls(t *testing.T) {
	var callCount atomic.Int32

	d := NewDebouncer(30*time.Millisecond, func() {
		callCount.Add(1)
	})

	for i := 0; i < 3; i++ {
		d.Call()
		time.Sleep(80 * time.Millisecond)
	}

	if callCount.Load() != 3 {
		t.Errorf("callCount = %d, want 3", callCount.Load())
	}
}

func TestDebouncer_Cancel(t *testing.T) {
	var callCount atomic.Int32

	d := NewDebouncer(50*time.Millisecond, func() {
		callCount.Add(1)
	})

	d.Call()
	d.Cancel()
	time.Sleep(100 * time.Millisecond)

	if callCount.Load() != 0 {
		t.Errorf("callCount = %d, want 0 (canceled)", callCount.Load())
	}
	if d.IsPending() {
		t.Error("should not be pending after Cancel")
	}
}

func TestDebouncer_CallImmediate(t *testing.T) {
	var callCount atomic.Int32

	d := NewDebouncer(100*time.Millisecond, func() {
		callCount.Add(1)
	})

	if d.CallImmediate() {
		t.Error("CallImmediate ran with nothing pending")
	}

	d.Call()
	if !d.CallImmediate() {
		t.Error("CallImmediate should run the pending call")
	}
	if callCount.Load() != 1 {
		t.Errorf("callCount = %d, want 1", callCount.Load())
	}

	time.Sleep(150 * time.Millisecond)
	if callCount.Load() != 1 {
		t.Errorf("callCount after wait = %d, want 1", callCount.Load())
	}
}

func TestDebouncer_IsPending(t *testing.T) {
	d := NewDebouncer(50*time.Millisecond, func() {})

	if d.IsPending() {
		t.Error("should not be pending initially")
	}
	d.Call()
	if !d.IsPending() {
		t.Error("should be pending after Call")
	}
	time.Sleep(100 * time.Millisecond)
	if d.IsPending() {
		t.Error("should not be pending after debounce")
	}
}
