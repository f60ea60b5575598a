package scorer

import (
	"fmt"

	"github.com/rosterops/rosterd/pkg/core/model"
)

// availabilityOverlaps walks every (availability, assigned shift) pair for
// the same employee in the requested state and hands the overlap in minutes
// to fn. Shared by the three time-slot rules and by replan's pre-clear.
func availabilityOverlaps(r *model.Roster, state model.AvailabilityState, fn func(av *model.EmployeeAvailability, shift *model.Shift, overlapMinutes int)) {
	byEmployee := shiftsByEmployee(r)
	for _, av := range r.Availabilities {
		if av.State != state {
			continue
		}
		for _, shift := range byEmployee[av.EmployeeID] {
			if overlap := shift.OverlapMinutes(av.Start, av.End); overlap > 0 {
				fn(av, shift, overlap)
			}
		}
	}
}

// UnavailableTimeSlotConstraint penalizes the overlap between an UNAVAILABLE
// availability record and an assigned shift for that employee
type UnavailableTimeSlotConstraint struct{}

func (c *UnavailableTimeSlotConstraint) ID() string { return "unavailable-time-slot" }
func (c *UnavailableTimeSlotConstraint) Name() string {
	return "Unavailable time slot for an employee"
}

func (c *UnavailableTimeSlotConstraint) Apply(r *model.Roster, acc *Accumulator) {
	availabilityOverlaps(r, model.AvailabilityUnavailable,
		func(av *model.EmployeeAvailability, shift *model.Shift, overlap int) {
			acc.Penalize(LevelHard, r.Config.UnavailableTimeSlot, int64(overlap),
				shift.ID, fmt.Sprintf("employee %s is unavailable for %d minutes of the shift", av.EmployeeID, overlap))
		})
}

// UnavailableViolations returns the shifts the unavailable-time-slot rule
// currently flags. Replan pre-clears the non-pinned ones before submission.
func UnavailableViolations(r *model.Roster) []*model.Shift {
	seen := make(map[string]bool)
	var flagged []*model.Shift
	availabilityOverlaps(r, model.AvailabilityUnavailable,
		func(av *model.EmployeeAvailability, shift *model.Shift, overlap int) {
			if !seen[shift.ID] {
				seen[shift.ID] = true
				flagged = append(flagged, shift)
			}
		})
	return flagged
}

// UndesiredTimeSlotConstraint penalizes the overlap between an UNDESIRED
// availability record and an assigned shift for that employee
type UndesiredTimeSlotConstraint struct{}

func (c *UndesiredTimeSlotConstraint) ID() string   { return "undesired-time-slot" }
func (c *UndesiredTimeSlotConstraint) Name() string { return "Undesired time slot for an employee" }

func (c *UndesiredTimeSlotConstraint) Apply(r *model.Roster, acc *Accumulator) {
	availabilityOverlaps(r, model.AvailabilityUndesired,
		func(av *model.EmployeeAvailability, shift *model.Shift, overlap int) {
			acc.Penalize(LevelSoft, r.Config.UndesiredTimeSlot, int64(overlap),
				shift.ID, fmt.Sprintf("employee %s would rather not work %d minutes of the shift", av.EmployeeID, overlap))
		})
}

// DesiredTimeSlotConstraint rewards the overlap between a DESIRED
// availability record and an assigned shift for that employee
type DesiredTimeSlotConstraint struct{}

func (c *DesiredTimeSlotConstraint) ID() string   { return "desired-time-slot" }
func (c *DesiredTimeSlotConstraint) Name() string { return "Desired time slot for an employee" }

func (c *DesiredTimeSlotConstraint) Apply(r *model.Roster, acc *Accumulator) {
	availabilityOverlaps(r, model.AvailabilityDesired,
		func(av *model.EmployeeAvailability, shift *model.Shift, overlap int) {
			acc.Reward(LevelSoft, r.Config.DesiredTimeSlot, int64(overlap),
				shift.ID, fmt.Sprintf("employee %s wants to work %d minutes of the shift", av.EmployeeID, overlap))
		})
}
