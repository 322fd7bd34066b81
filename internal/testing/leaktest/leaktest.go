// Package leaktest holds goroutine and heap checks shared by concurrency tests.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// settle gives exiting goroutines a chance to finish before counting
func settle(d time.Duration) {
	runtime.Gosched()
	runtime.GC()
	time.Sleep(d)
}

// GoroutineChecker compares goroutine counts before and after a block of work
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker records the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	settle(10 * time.Millisecond)
	return &GoroutineChecker{before: runtime.NumGoroutine(), t: t}
}

// Check fails the test if more than tolerance goroutines are still running.
// Polls for up to a second so slow-exiting workers are not reported.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	deadline := time.Now().Add(time.Second)
	after := runtime.NumGoroutine()
	for after-g.before > tolerance && time.Now().Before(deadline) {
		settle(20 * time.Millisecond)
		after = runtime.NumGoroutine()
	}

	if leaked := after - g.before; leaked > tolerance {
		g.t.Errorf("Potential goroutine leak: before=%d, after=%d, leaked=%d (tolerance=%d)",
			g.before, after, leaked, tolerance)
	}
}

// CheckNoGoroutineLeak runs fn and fails if it leaves goroutines behind
func CheckNoGoroutineLeak(t testing.TB, fn func()) {
	t.Helper()
	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

// CheckHeapGrowth runs fn and fails if the live heap grew by more than maxGrowthMB
func CheckHeapGrowth(t testing.TB, maxGrowthMB float64, fn func()) {
	t.Helper()

	var before, after runtime.MemStats
	settle(10 * time.Millisecond)
	runtime.ReadMemStats(&before)

	fn()

	settle(50 * time.Millisecond)
	runtime.ReadMemStats(&after)

	growthMB := (float64(after.HeapAlloc) - float64(before.HeapAlloc)) / 1024 / 1024
	if growthMB > maxGrowthMB {
		t.Errorf("Potential memory leak: heap grew %.2fMB (max=%.2fMB)", growthMB, maxGrowthMB)
	}
}
