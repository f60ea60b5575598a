package balance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour int) time.Time {
	return time.Date(2024, 3, 4, hour, 0, 0, 0, time.UTC)
}

func TestHourLoad_Empty(t *testing.T) {
	hl := NewHourLoad()
	assert.Equal(t, int64(0), hl.LoadBalance())
	assert.Equal(t, 0, hl.BucketCount())
}

func TestHourLoad_SingleShift(t *testing.T) {
	hl := NewHourLoad()

	// 8 one-hour buckets, one shift each: sqrt(8) * 1000 = 2828
	hl.Increase(at(9), 480)
	assert.Equal(t, 8, hl.BucketCount())
	assert.Equal(t, int64(2828), hl.LoadBalance())
}

func TestHourLoad_StackedShifts(t *testing.T) {
	hl := NewHourLoad()

	// Two shifts over the same 2 buckets: counts 2,2 -> sqrt(8) * 1000
	hl.Increase(at(9), 120)
	hl.Increase(at(9), 120)
	assert.Equal(t, 2, hl.BucketCount())
	assert.Equal(t, int64(2828), hl.LoadBalance())
}

func TestHourLoad_PartialHourRoundsUp(t *testing.T) {
	hl := NewHourLoad()

	// 90 minutes starting at 9:30 occupies the 9:00 and 10:00 buckets
	hl.Increase(time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC), 90)
	assert.Equal(t, 2, hl.BucketCount())
}

func TestHourLoad_IncreaseDecreaseIsExactInverse(t *testing.T) {
	hl := NewHourLoad()
	hl.Increase(at(6), 480)
	hl.Increase(at(14), 480)

	before := hl.LoadBalance()
	buckets := hl.BucketCount()

	hl.Increase(at(10), 300)
	hl.Decrease(at(10), 300)

	assert.Equal(t, before, hl.LoadBalance())
	assert.Equal(t, buckets, hl.BucketCount())
	assert.Equal(t, 0, hl.Unbalanced())
}

func TestHourLoad_DecreaseToEmptyLeavesNoResidue(t *testing.T) {
	hl := NewHourLoad()
	hl.Increase(at(9), 480)
	hl.Decrease(at(9), 480)

	assert.Equal(t, int64(0), hl.LoadBalance())
	assert.Equal(t, 0, hl.BucketCount())
}

func TestHourLoad_UnbalancedDecreaseIsReportedNotApplied(t *testing.T) {
	hl := NewHourLoad()
	var reported []time.Time
	hl.MisuseReporter = func(bucket time.Time) {
		reported = append(reported, bucket)
	}

	hl.Decrease(at(9), 120)

	assert.Equal(t, 2, hl.Unbalanced())
	assert.Len(t, reported, 2)
	assert.Equal(t, int64(0), hl.LoadBalance())
	assert.Equal(t, 0, hl.BucketCount())
}

func TestHourLoad_MixedDecreaseOnlyCountsMissingBuckets(t *testing.T) {
	hl := NewHourLoad()
	hl.Increase(at(9), 60)

	// Decrease spans the registered 9:00 bucket and an unregistered 10:00 bucket
	hl.Decrease(at(9), 120)

	assert.Equal(t, 1, hl.Unbalanced())
	assert.Equal(t, 0, hl.BucketCount())
}

func TestHourLoad_RunningSumNeverRecomputed(t *testing.T) {
	hl := NewHourLoad()

	// Populate a wide calendar span, then verify a short shift's update
	// only touches its own buckets: the observable contract is that the
	// balance moves by exactly the delta of the touched buckets.
	for day := 0; day < 50; day++ {
		hl.Increase(time.Date(2024, 1, 1+day, 8, 0, 0, 0, time.UTC), 60)
	}
	assert.Equal(t, 50, hl.BucketCount())

	hl.Increase(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), 60)
	// 49 buckets at 1, one bucket at 2: sqrt(49 + 4) * 1000
	assert.Equal(t, int64(7280), hl.LoadBalance())
}
