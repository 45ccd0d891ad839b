package monitor

import (
	"sync/atomic"
	"time"
)

// OperationType names one phase of a cargo session
type OperationType string

const (
	OperationSpawn   OperationType = "spawn"
	OperationCollect OperationType = "collect"
	OperationPage    OperationType = "page"
	OperationDrain   OperationType = "drain"
	OperationWait    OperationType = "wait"
)

// Operations lists the session phases in execution order
var Operations = []OperationType{
	OperationSpawn, OperationCollect, OperationPage, OperationDrain, OperationWait,
}

// OperationMetrics holds the timings recorded for one phase
type OperationMetrics struct {
	Operation    OperationType `json:"operation"`
	Count        int64         `json:"count"`
	TotalTime    time.Duration `json:"total_time_ns"`
	MinTime      time.Duration `json:"min_time_ns"`
	MaxTime      time.Duration `json:"max_time_ns"`
	LastTime     time.Duration `json:"last_time_ns"`
	AvgTime      time.Duration `json:"avg_time_ns"`
	ErrorCount   int64         `json:"error_count"`
	SuccessCount int64         `json:"success_count"`
}

// Counter is a thread-safe counter metric
type Counter struct {
	value int64
	name  string
}

// NewCounter creates a new counter metric
func NewCounter(name string) *Counter {
	return &Counter{name: name}
}

// Inc increments the counter by 1
func (c *Counter) Inc() {
	atomic.AddInt64(&c.value, 1)
}

// Add adds the given value to the counter
func (c *Counter) Add(value int64) {
	atomic.AddInt64(&c.value, value)
}

// Get returns the current counter value
func (c *Counter) Get() int64 {
	return atomic.LoadInt64(&c.value)
}

// Name returns the counter name
func (c *Counter) Name() string {
	return c.name
}

const noMinimum = int64(^uint64(0) >> 1)

// Timer is a thread-safe timer for measuring operation durations
type Timer struct {
	count     int64
	errors    int64
	totalTime int64
	minTime   int64
	maxTime   int64
	lastTime  int64
	name      string
}

// NewTimer creates a new timer metric
func NewTimer(name string) *Timer {
	return &Timer{
		name:    name,
		minTime: noMinimum,
	}
}

// Record records a duration measurement
func (t *Timer) Record(duration time.Duration, failed bool) {
	nanos := duration.Nanoseconds()

	atomic.AddInt64(&t.count, 1)
	atomic.AddInt64(&t.totalTime, nanos)
	atomic.StoreInt64(&t.lastTime, nanos)
	if failed {
		atomic.AddInt64(&t.errors, 1)
	}

	for {
		current := atomic.LoadInt64(&t.minTime)
		if nanos >= current || atomic.CompareAndSwapInt64(&t.minTime, current, nanos) {
			break
		}
	}
	for {
		current := atomic.LoadInt64(&t.maxTime)
		if nanos <= current || atomic.CompareAndSwapInt64(&t.maxTime, current, nanos) {
			break
		}
	}
}

// Count returns the number of recorded measurements
func (t *Timer) Count() int64 {
	return atomic.LoadInt64(&t.count)
}

// TotalTime returns the total time of all measurements
func (t *Timer) TotalTime() time.Duration {
	return time.Duration(atomic.LoadInt64(&t.totalTime))
}

// MinTime returns the minimum recorded time
func (t *Timer) MinTime() time.Duration {
	minTime := atomic.LoadInt64(&t.minTime)
	if minTime == noMinimum {
		return 0
	}
	return time.Duration(minTime)
}

// MaxTime returns the maximum recorded time
func (t *Timer) MaxTime() time.Duration {
	return time.Duration(atomic.LoadInt64(&t.maxTime))
}

// LastTime returns the most recent measurement
func (t *Timer) LastTime() time.Duration {
	return time.Duration(atomic.LoadInt64(&t.lastTime))
}

// AvgTime returns the average time of all measurements
func (t *Timer) AvgTime() time.Duration {
	count := atomic.LoadInt64(&t.count)
	if count == 0 {
		return 0
	}
	return time.Duration(atomic.LoadInt64(&t.totalTime) / count)
}

// Name returns the timer name
func (t *Timer) Name() string {
	return t.name
}

func (t *Timer) metrics() OperationMetrics {
	count := t.Count()
	errs := atomic.LoadInt64(&t.errors)
	return OperationMetrics{
		Operation:    OperationType(t.Name()),
		Count:        count,
		TotalTime:    t.TotalTime(),
		MinTime:      t.MinTime(),
		MaxTime:      t.MaxTime(),
		LastTime:     t.LastTime(),
		AvgTime:      t.AvgTime(),
		ErrorCount:   errs,
		SuccessCount: count - errs,
	}
}
