package scorer

import (
	"fmt"
	"time"

	"github.com/rosterops/rosterd/pkg/core/model"
)

// Period is the bucketing granularity for contract working-time caps
type Period int

const (
	PeriodDay Period = iota
	PeriodWeek
	PeriodMonth
	PeriodYear
)

func (p Period) String() string {
	switch p {
	case PeriodDay:
		return "daily"
	case PeriodWeek:
		return "weekly"
	case PeriodMonth:
		return "monthly"
	default:
		return "yearly"
	}
}

// ContractMinutesConstraint penalizes, per employee and period bucket, the
// minutes worked beyond the contract cap for that period. One instance per
// period sits in the default rule list. Employees without a cap for the
// period are skipped; the rule does not apply to them.
type ContractMinutesConstraint struct {
	Period Period
}

func (c *ContractMinutesConstraint) ID() string {
	return c.Period.String() + "-minutes"
}

func (c *ContractMinutesConstraint) Name() string {
	switch c.Period {
	case PeriodDay:
		return "Daily minutes must not exceed contract maximum"
	case PeriodWeek:
		return "Weekly minutes must not exceed contract maximum"
	case PeriodMonth:
		return "Monthly minutes must not exceed contract maximum"
	default:
		return "Yearly minutes must not exceed contract maximum"
	}
}

func (c *ContractMinutesConstraint) cap(e *model.Employee) *int {
	switch c.Period {
	case PeriodDay:
		return e.Contract.MaxMinutesPerDay
	case PeriodWeek:
		return e.Contract.MaxMinutesPerWeek
	case PeriodMonth:
		return e.Contract.MaxMinutesPerMonth
	default:
		return e.Contract.MaxMinutesPerYear
	}
}

func (c *ContractMinutesConstraint) weight(cfg model.ConstraintConfiguration) int {
	switch c.Period {
	case PeriodDay:
		return cfg.DailyMinutes
	case PeriodWeek:
		return cfg.WeeklyMinutes
	case PeriodMonth:
		return cfg.MonthlyMinutes
	default:
		return cfg.YearlyMinutes
	}
}

// bucketKey maps a shift start to its period bucket in the tenant timezone.
// Weekly buckets start on the tenant's configured week-start day.
func (c *ContractMinutesConstraint) bucketKey(t time.Time, r *model.Roster) string {
	loc := time.UTC
	if r.State.Timezone != nil {
		loc = r.State.Timezone
	}
	local := t.In(loc)
	switch c.Period {
	case PeriodDay:
		return local.Format("2006-01-02")
	case PeriodWeek:
		daysBack := (int(local.Weekday()) - int(r.Config.WeekStartDay) + 7) % 7
		weekStart := local.AddDate(0, 0, -daysBack)
		return "w" + weekStart.Format("2006-01-02")
	case PeriodMonth:
		return local.Format("2006-01")
	default:
		return local.Format("2006")
	}
}

func (c *ContractMinutesConstraint) Apply(r *model.Roster, acc *Accumulator) {
	for employeeID, shifts := range shiftsByEmployee(r) {
		employee := r.EmployeeByID(employeeID)
		if employee == nil {
			continue
		}
		maxMinutes := c.cap(employee)
		if maxMinutes == nil {
			continue
		}
		perBucket := make(map[string]int)
		for _, shift := range shifts {
			perBucket[c.bucketKey(shift.Start, r)] += shift.LengthMinutes()
		}
		for bucket, actual := range perBucket {
			if actual > *maxMinutes {
				acc.Penalize(LevelHard, c.weight(r.Config), int64(actual-*maxMinutes),
					"", fmt.Sprintf("employee %s works %d of at most %d minutes in %s bucket %s",
						employeeID, actual, *maxMinutes, c.Period, bucket))
			}
		}
	}
}
