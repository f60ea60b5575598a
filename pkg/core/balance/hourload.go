// Package balance tracks how shifts stack up across hour buckets so the
// scorer can penalize uneven rosters without rescanning every shift.
package balance

import (
	"math"
	"sync"
	"time"
)

// HourLoad maintains a running sum of squared per-hour shift counts over a
// mutable set of shifts. Each shift occupies the consecutive hour buckets
// it overlaps, starting at its start truncated to the hour. Updates cost
// one map operation per occupied bucket; LoadBalance is O(1).
//
// A single search loop performs the Increase/Decrease calls, but status
// readers may call LoadBalance concurrently, so mutation takes the write
// lock and reads the read lock. Aggregators are per-roster; no lock is
// shared across tenants.
type HourLoad struct {
	mu           sync.RWMutex
	buckets      map[int64]int64
	sumOfSquares int64
	unbalanced   int

	// MisuseReporter is called when a Decrease has no matching Increase.
	// Nil means misuse is only counted.
	MisuseReporter func(bucket time.Time)
}

// NewHourLoad returns an empty aggregator
func NewHourLoad() *HourLoad {
	return &HourLoad{buckets: make(map[int64]int64)}
}

// bucketKeys returns the unix-hour keys a shift occupies
func bucketKeys(start time.Time, lengthMinutes int) []int64 {
	if lengthMinutes <= 0 {
		return nil
	}
	first := start.Truncate(time.Hour).Unix() / 3600
	count := (lengthMinutes + 59) / 60
	keys := make([]int64, count)
	for i := range keys {
		keys[i] = first + int64(i)
	}
	return keys
}

// Increase registers the shift's occupied hour buckets. The running sum of
// squares is adjusted bucket by bucket (old count squared out, new count
// squared in), never recomputed from scratch.
func (hl *HourLoad) Increase(start time.Time, lengthMinutes int) {
	hl.mu.Lock()
	defer hl.mu.Unlock()
	for _, key := range bucketKeys(start, lengthMinutes) {
		old := hl.buckets[key]
		hl.buckets[key] = old + 1
		hl.sumOfSquares += (old+1)*(old+1) - old*old
	}
}

// Decrease is the exact inverse of Increase. Decreasing a bucket that was
// never increased is a caller bug: the bucket is left untouched, the misuse
// counter advances and the reporter (if any) fires. Counts never go negative.
func (hl *HourLoad) Decrease(start time.Time, lengthMinutes int) {
	hl.mu.Lock()
	defer hl.mu.Unlock()
	for _, key := range bucketKeys(start, lengthMinutes) {
		old, ok := hl.buckets[key]
		if !ok {
			hl.unbalanced++
			if hl.MisuseReporter != nil {
				hl.MisuseReporter(time.Unix(key*3600, 0).UTC())
			}
			continue
		}
		hl.sumOfSquares += (old-1)*(old-1) - old*old
		if old == 1 {
			delete(hl.buckets, key)
		} else {
			hl.buckets[key] = old - 1
		}
	}
}

// LoadBalance returns round(1000 * sqrt(sum of squared bucket counts))
func (hl *HourLoad) LoadBalance() int64 {
	hl.mu.RLock()
	defer hl.mu.RUnlock()
	return int64(math.Round(1000 * math.Sqrt(float64(hl.sumOfSquares))))
}

// Unbalanced reports how many Decrease calls touched unregistered buckets
func (hl *HourLoad) Unbalanced() int {
	hl.mu.RLock()
	defer hl.mu.RUnlock()
	return hl.unbalanced
}

// BucketCount reports how many hour buckets are currently occupied
func (hl *HourLoad) BucketCount() int {
	hl.mu.RLock()
	defer hl.mu.RUnlock()
	return len(hl.buckets)
}
