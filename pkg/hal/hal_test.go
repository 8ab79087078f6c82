package hal

import (
	"sync"
	"testing"
	"time"
)

func TestSpinDelay(t *testing.T) {
	start := time.Now()
	SpinDelay{}.DelayMicros(2000)
	if elapsed := time.Since(start); elapsed < 2*time.Millisecond {
		t.Errorf("expected at least 2ms, got %v", elapsed)
	}

	start = time.Now()
	SpinDelay{}.DelayMicros(-5)
	if elapsed := time.Since(start); elapsed > 10*time.Millisecond {
		t.Errorf("negative delay should return immediately, took %v", elapsed)
	}
}

func TestSleepDelay(t *testing.T) {
	start := time.Now()
	SleepDelay{}.DelayMicros(1000)
	if elapsed := time.Since(start); elapsed < time.Millisecond {
		t.Errorf("expected at least 1ms, got %v", elapsed)
	}
}

func TestGoSpawner(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	ran := false
	GoSpawner{}.Go(func() {
		ran = true
		wg.Done()
	})
	wg.Wait()
	if !ran {
		t.Error("spawned function did not run")
	}
}

func TestFuncAdapters(t *testing.T) {
	total := 0
	var d Delayer = DelayFunc(func(us int) { total += us })
	d.DelayMicros(5)
	d.DelayMicros(7)
	if total != 12 {
		t.Errorf("expected 12, got %d", total)
	}

	calls := 0
	var s Spawner = SpawnFunc(func(fn func()) { calls++; fn() })
	s.Go(func() {})
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}
