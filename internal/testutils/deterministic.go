// Package testutils provides deterministic generators and shared fixtures
// for toolkit tests.
package testutils

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

var (
	idCounter   atomic.Uint64
	timeCounter atomic.Int64
)

// testEpoch anchors deterministic timestamps.
var testEpoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// GenerateUUID returns a random v4 UUID in production and a counting one in
// test mode (00000001-0000-4000-8000-000000000001, then 00000002-..., and so
// on), keeping the v4 shape so format-sensitive consumers cannot tell the
// difference.
func GenerateUUID(testMode bool) string {
	if !testMode {
		return uuid.New().String()
	}
	n := idCounter.Add(1)
	return fmt.Sprintf("%08x-0000-4000-8000-%012x", n, n)
}

// GetCurrentTime returns time.Now in production. In test mode it returns the
// test epoch advanced by one second per call, so generated records still sort
// by creation order.
func GetCurrentTime(testMode bool) time.Time {
	if !testMode {
		return time.Now()
	}
	return testEpoch.Add(time.Duration(timeCounter.Add(1)) * time.Second)
}

// FormatDateForDisplay formats the current (or deterministic) time as
// YYYY-MM-DD.
func FormatDateForDisplay(testMode bool) string {
	return GetCurrentTime(testMode).Format("2006-01-02")
}

// ResetTestCounters rewinds the deterministic counters. Call from test setup
// when a test asserts concrete generated values.
func ResetTestCounters() {
	idCounter.Store(0)
	timeCounter.Store(0)
}
