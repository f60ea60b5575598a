package scorer

import (
	"fmt"
	"time"

	"github.com/rosterops/rosterd/pkg/core/model"
)

const minBreakMinutes = 600 // 10 hours between non-consecutive shifts

// NoOverlappingShiftsConstraint penalizes every pair of shifts assigned to
// the same employee whose intervals overlap. The magnitude is the full
// length of the later shift of the pair, "later" following the scorer's
// deterministic (start, end, id) ordering.
type NoOverlappingShiftsConstraint struct{}

func (c *NoOverlappingShiftsConstraint) ID() string   { return "no-overlapping-shifts" }
func (c *NoOverlappingShiftsConstraint) Name() string { return "No overlapping shifts" }

func (c *NoOverlappingShiftsConstraint) Apply(r *model.Roster, acc *Accumulator) {
	for employeeID, shifts := range shiftsByEmployee(r) {
		for i := 0; i < len(shifts); i++ {
			for j := i + 1; j < len(shifts); j++ {
				if shifts[i].Overlaps(shifts[j]) {
					later := shifts[j]
					acc.Penalize(LevelHard, r.Config.NoOverlappingShifts, int64(later.LengthMinutes()),
						later.ID, fmt.Sprintf("employee %s holds overlapping shifts %s and %s", employeeID, shifts[i].ID, later.ID))
				}
			}
		}
	}
}

// AtMostTwoConsecutiveConstraint penalizes the third shift of every chain of
// three shifts for the same employee where each shift starts exactly when
// the previous one ends. Exact end==start chaining is required; shifts that
// are merely close together are the break rule's business.
type AtMostTwoConsecutiveConstraint struct{}

func (c *AtMostTwoConsecutiveConstraint) ID() string   { return "at-most-two-consecutive" }
func (c *AtMostTwoConsecutiveConstraint) Name() string { return "No more than 2 consecutive shifts" }

func (c *AtMostTwoConsecutiveConstraint) Apply(r *model.Roster, acc *Accumulator) {
	for employeeID, shifts := range shiftsByEmployee(r) {
		for _, third := range shifts {
			for _, second := range shifts {
				if second == third || !second.End.Equal(third.Start) {
					continue
				}
				for _, first := range shifts {
					if first == second || first == third || !first.End.Equal(second.Start) {
						continue
					}
					acc.Penalize(LevelHard, r.Config.AtMostTwoConsecutive, int64(third.LengthMinutes()),
						third.ID, fmt.Sprintf("employee %s works a third consecutive shift", employeeID))
				}
			}
		}
	}
}

// BreakBetweenShiftsConstraint penalizes every pair of distinct shifts for
// the same employee whose gap (end of the earlier to start of the later) is
// positive but shorter than ten hours, by 600 minus the gap in minutes.
// Back-to-back shifts (gap zero) are the consecutive rule's business; both
// rules fire independently and add up where their evidence overlaps.
type BreakBetweenShiftsConstraint struct{}

func (c *BreakBetweenShiftsConstraint) ID() string { return "break-between-shifts" }
func (c *BreakBetweenShiftsConstraint) Name() string {
	return "Break between non-consecutive shifts is at least 10 hours"
}

func (c *BreakBetweenShiftsConstraint) Apply(r *model.Roster, acc *Accumulator) {
	for employeeID, shifts := range shiftsByEmployee(r) {
		for i := 0; i < len(shifts); i++ {
			for j := 0; j < len(shifts); j++ {
				if i == j {
					continue
				}
				gap := int(shifts[j].Start.Sub(shifts[i].End) / time.Minute)
				if gap > 0 && gap < minBreakMinutes {
					acc.Penalize(LevelHard, r.Config.BreakBetweenShifts, int64(minBreakMinutes-gap),
						shifts[j].ID, fmt.Sprintf("employee %s has only %d minutes of rest before the shift", employeeID, gap))
				}
			}
		}
	}
}
