package monitor

import (
	"errors"
	"testing"
	"time"
)

func TestCounter(t *testing.T) {
	counter := NewCounter("test_counter")

	if counter.Get() != 0 {
		t.Errorf("Expected initial value 0, got %d", counter.Get())
	}

	counter.Inc()
	if counter.Get() != 1 {
		t.Errorf("Expected value 1 after Inc(), got %d", counter.Get())
	}

	counter.Add(5)
	if counter.Get() != 6 {
		t.Errorf("Expected value 6 after Add(5), got %d", counter.Get())
	}

	if counter.Name() != "test_counter" {
		t.Errorf("Expected name 'test_counter', got %s", counter.Name())
	}
}

func TestTimer(t *testing.T) {
	timer := NewTimer("test_timer")

	if timer.Count() != 0 || timer.TotalTime() != 0 || timer.MinTime() != 0 || timer.AvgTime() != 0 {
		t.Error("Expected empty timer to report zero values")
	}

	timer.Record(100*time.Millisecond, false)
	timer.Record(200*time.Millisecond, true)
	timer.Record(300*time.Millisecond, false)

	if timer.Count() != 3 {
		t.Errorf("Expected count 3, got %d", timer.Count())
	}
	if timer.TotalTime() != 600*time.Millisecond {
		t.Errorf("Expected total 600ms, got %v", timer.TotalTime())
	}
	if timer.MinTime() != 100*time.Millisecond {
		t.Errorf("Expected min 100ms, got %v", timer.MinTime())
	}
	if timer.MaxTime() != 300*time.Millisecond {
		t.Errorf("Expected max 300ms, got %v", timer.MaxTime())
	}
	if timer.AvgTime() != 200*time.Millisecond {
		t.Errorf("Expected avg 200ms, got %v", timer.AvgTime())
	}
	if timer.LastTime() != 300*time.Millisecond {
		t.Errorf("Expected last 300ms, got %v", timer.LastTime())
	}

	m := timer.metrics()
	if m.Operation != "test_timer" {
		t.Errorf("Expected operation named after the timer, got %s", m.Operation)
	}
	if m.ErrorCount != 1 || m.SuccessCount != 2 {
		t.Errorf("Expected 1 error and 2 successes, got %d and %d", m.ErrorCount, m.SuccessCount)
	}
	if m.AvgTime != 200*time.Millisecond {
		t.Errorf("Expected avg 200ms in metrics, got %v", m.AvgTime)
	}
}

func TestTrackerTracksOperations(t *testing.T) {
	tracker := New()
	failure := errors.New("boom")

	_ = tracker.TrackOperationWithError(OperationSpawn, func() error { return nil })
	err := tracker.TrackOperationWithError(OperationCollect, func() error {
		time.Sleep(5 * time.Millisecond)
		return failure
	})
	if !errors.Is(err, failure) {
		t.Errorf("Expected operation error to be returned, got %v", err)
	}

	snapshot := tracker.Snapshot()
	if len(snapshot) != len(Operations) {
		t.Fatalf("Expected %d operations, got %d", len(Operations), len(snapshot))
	}
	for i, op := range Operations {
		if snapshot[i].Operation != op {
			t.Errorf("Expected operation %s at %d, got %s", op, i, snapshot[i].Operation)
		}
	}

	if snapshot[0].Count != 1 || snapshot[0].ErrorCount != 0 {
		t.Errorf("Unexpected spawn metrics %+v", snapshot[0])
	}
	if snapshot[1].ErrorCount != 1 || snapshot[1].LastTime < 5*time.Millisecond {
		t.Errorf("Unexpected collect metrics %+v", snapshot[1])
	}
	if snapshot[2].Count != 0 {
		t.Errorf("Expected page to be untouched, got %+v", snapshot[2])
	}
}

func TestTrackerRecordRun(t *testing.T) {
	tracker := New()

	tracker.RecordRun(3, 40)
	tracker.RecordRun(1, 12)

	if tracker.Runs() != 2 {
		t.Errorf("Expected 2 runs, got %d", tracker.Runs())
	}

	expected := map[string]int64{"runs": 2, "diagnostics": 4, "lines": 52}
	counters := tracker.Counters()
	if len(counters) != len(expected) {
		t.Fatalf("Expected %d counters, got %d", len(expected), len(counters))
	}
	for _, c := range counters {
		if c.Get() != expected[c.Name()] {
			t.Errorf("Expected %s = %d, got %d", c.Name(), expected[c.Name()], c.Get())
		}
	}
}
