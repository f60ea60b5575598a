package model

import "time"

// ConstraintConfiguration holds the tenant-scoped weight for each constraint
// and the day the tenant's work week starts on. Each weight scales the raw
// magnitude the matching constraint contributes to the score.
type ConstraintConfiguration struct {
	TenantID string

	RequiredSkill        int
	UnavailableTimeSlot  int
	NoOverlappingShifts  int
	AtMostTwoConsecutive int
	BreakBetweenShifts   int
	DailyMinutes         int
	WeeklyMinutes        int
	MonthlyMinutes       int
	YearlyMinutes        int
	AssignEveryShift     int
	NotOriginalEmployee  int
	NotRotationEmployee  int
	UndesiredTimeSlot    int
	DesiredTimeSlot      int
	BalanceShiftLoad     int

	// WeekStartDay buckets the weekly contract cap
	WeekStartDay time.Weekday
}

// DefaultConstraintConfiguration returns a configuration with every weight
// at 1 and weeks starting on Monday
func DefaultConstraintConfiguration(tenantID string) ConstraintConfiguration {
	return ConstraintConfiguration{
		TenantID:             tenantID,
		RequiredSkill:        1,
		UnavailableTimeSlot:  1,
		NoOverlappingShifts:  1,
		AtMostTwoConsecutive: 1,
		BreakBetweenShifts:   1,
		DailyMinutes:         1,
		WeeklyMinutes:        1,
		MonthlyMinutes:       1,
		YearlyMinutes:        1,
		AssignEveryShift:     1,
		NotOriginalEmployee:  1,
		NotRotationEmployee:  1,
		UndesiredTimeSlot:    1,
		DesiredTimeSlot:      1,
		BalanceShiftLoad:     1,
		WeekStartDay:         time.Monday,
	}
}
