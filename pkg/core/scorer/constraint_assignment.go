package scorer

import (
	"fmt"

	"github.com/rosterops/rosterd/pkg/core/model"
)

// AssignEveryShiftConstraint applies a fixed medium penalty per shift with
// no assignee. Unlike the other rules it fires precisely on unassigned
// shifts, keeping "leave everything empty" from ever looking attractive.
type AssignEveryShiftConstraint struct{}

func (c *AssignEveryShiftConstraint) ID() string   { return "assign-every-shift" }
func (c *AssignEveryShiftConstraint) Name() string { return "Assign every shift" }

func (c *AssignEveryShiftConstraint) Apply(r *model.Roster, acc *Accumulator) {
	for _, shift := range r.Shifts {
		if !shift.Assigned() {
			acc.Penalize(LevelMedium, r.Config.AssignEveryShift, 1,
				shift.ID, "shift has no employee")
		}
	}
}

// NotOriginalEmployeeConstraint penalizes, per the shift length, assigning a
// shift to somebody other than the employee who held it before a re-plan
type NotOriginalEmployeeConstraint struct{}

func (c *NotOriginalEmployeeConstraint) ID() string   { return "not-original-employee" }
func (c *NotOriginalEmployeeConstraint) Name() string { return "Employee is not original employee" }

func (c *NotOriginalEmployeeConstraint) Apply(r *model.Roster, acc *Accumulator) {
	for _, shift := range r.Shifts {
		if shift.OriginalEmployeeID == "" || !shift.Assigned() {
			continue
		}
		if shift.EmployeeID != shift.OriginalEmployeeID {
			acc.Penalize(LevelSoft, r.Config.NotOriginalEmployee, int64(shift.LengthMinutes()),
				shift.ID, fmt.Sprintf("shift moved from employee %s to %s", shift.OriginalEmployeeID, shift.EmployeeID))
		}
	}
}

// NotRotationEmployeeConstraint penalizes, per the shift length, assigning a
// shift to somebody other than its nominal rotation employee
type NotRotationEmployeeConstraint struct{}

func (c *NotRotationEmployeeConstraint) ID() string   { return "not-rotation-employee" }
func (c *NotRotationEmployeeConstraint) Name() string { return "Employee is not rotation employee" }

func (c *NotRotationEmployeeConstraint) Apply(r *model.Roster, acc *Accumulator) {
	for _, shift := range r.Shifts {
		if shift.RotationEmployeeID == "" || !shift.Assigned() {
			continue
		}
		if shift.EmployeeID != shift.RotationEmployeeID {
			acc.Penalize(LevelSoft, r.Config.NotRotationEmployee, int64(shift.LengthMinutes()),
				shift.ID, fmt.Sprintf("shift deviates from rotation employee %s", shift.RotationEmployeeID))
		}
	}
}

// BalanceShiftLoadConstraint reads the roster's incremental hour-load
// aggregator and penalizes its current load-balance value, the soft
// objective that spreads shifts evenly across hours. Rosters without an
// attached aggregator skip the rule.
type BalanceShiftLoadConstraint struct{}

func (c *BalanceShiftLoadConstraint) ID() string   { return "balance-shift-load" }
func (c *BalanceShiftLoadConstraint) Name() string { return "Balance shift load across hours" }

func (c *BalanceShiftLoadConstraint) Apply(r *model.Roster, acc *Accumulator) {
	tracker := r.HourLoad()
	if tracker == nil {
		return
	}
	if lb := tracker.LoadBalance(); lb != 0 {
		acc.Penalize(LevelSoft, r.Config.BalanceShiftLoad, lb,
			"", fmt.Sprintf("hour-load balance is %d", lb))
	}
}
