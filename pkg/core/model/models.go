package model

import "time"

// AvailabilityState classifies an employee's preference for a time interval
type AvailabilityState string

const (
	// AvailabilityUnavailable means the employee must not work during the interval (hard)
	AvailabilityUnavailable AvailabilityState = "UNAVAILABLE"

	// AvailabilityUndesired means the employee would rather not work during the interval (soft)
	AvailabilityUndesired AvailabilityState = "UNDESIRED"

	// AvailabilityDesired means the employee wants to work during the interval (soft reward)
	AvailabilityDesired AvailabilityState = "DESIRED"
)

// Shift is one time-bound work assignment at a spot.
// The search loop mutates EmployeeID only; Start, End and SpotID are fixed
// once the shift is created, and pinned shifts are never reassigned.
type Shift struct {
	ID     string
	SpotID string

	// Start and End bound the half-open interval [Start, End). Start < End always.
	Start time.Time
	End   time.Time

	// EmployeeID is the current assignee (empty = unassigned)
	EmployeeID string

	// RotationEmployeeID is the nominal/default assignee used as a soft anchor
	RotationEmployeeID string

	// OriginalEmployeeID is the assignee before a re-plan, used to penalize
	// unnecessary reassignment
	OriginalEmployeeID string

	// Pinned shifts keep their current assignee through a solve
	Pinned bool
}

// LengthMinutes returns the shift duration in whole minutes
func (s *Shift) LengthMinutes() int {
	return int(s.End.Sub(s.Start) / time.Minute)
}

// Assigned returns true if the shift currently has an employee
func (s *Shift) Assigned() bool {
	return s.EmployeeID != ""
}

// OverlapMinutes returns the length in minutes of the intersection between
// the shift and [start, end), or 0 if they do not intersect
func (s *Shift) OverlapMinutes(start, end time.Time) int {
	lo := s.Start
	if start.After(lo) {
		lo = start
	}
	hi := s.End
	if end.Before(hi) {
		hi = end
	}
	if !lo.Before(hi) {
		return 0
	}
	return int(hi.Sub(lo) / time.Minute)
}

// Overlaps returns true if the shift intersects the other shift's interval
func (s *Shift) Overlaps(other *Shift) bool {
	return s.Start.Before(other.End) && other.Start.Before(s.End)
}

// Contract holds an employee's working-time caps in minutes.
// A nil cap means the period is unbounded.
type Contract struct {
	MaxMinutesPerDay   *int
	MaxMinutesPerWeek  *int
	MaxMinutesPerMonth *int
	MaxMinutesPerYear  *int
}

// Employee is a worker with a skill set and a contract
type Employee struct {
	ID       string
	Name     string
	Skills   map[string]bool
	Contract Contract
}

// HasSkill returns true if the employee holds the named skill
func (e *Employee) HasSkill(skill string) bool {
	return e.Skills[skill]
}

// EmployeeAvailability expresses a preference for one employee over one interval
type EmployeeAvailability struct {
	ID         string
	EmployeeID string
	Start      time.Time
	End        time.Time
	State      AvailabilityState
}

// Spot is a work location with a required skill set
type Spot struct {
	ID             string
	Name           string
	RequiredSkills map[string]bool
}

// Roster is the full tenant dataset one solve operates on. It is a value
// owned exclusively by a single in-flight solve; the orchestrator never
// lets two solves for the same tenant hold overlapping working copies.
type Roster struct {
	TenantID string

	Shifts         []*Shift
	Employees      []*Employee
	Availabilities []*EmployeeAvailability
	Spots          []*Spot

	Config ConstraintConfiguration
	State  RosterState

	// NonDisruptive hints the search loop to minimize changes to
	// already-assigned, non-pinned shifts. Set by replan.
	NonDisruptive bool

	hourLoad HourLoadTracker

	employeesByID map[string]*Employee
	spotsByID     map[string]*Spot
}

// HourLoadTracker is the incremental aggregator the roster carries for the
// load-balance soft objective. Declared as a small interface so the model
// package does not depend on the aggregator implementation.
type HourLoadTracker interface {
	Increase(start time.Time, lengthMinutes int)
	Decrease(start time.Time, lengthMinutes int)
	LoadBalance() int64
}

// AttachHourLoad installs the aggregator and seeds it with every assigned shift
func (r *Roster) AttachHourLoad(t HourLoadTracker) {
	r.hourLoad = t
	for _, s := range r.Shifts {
		if s.Assigned() {
			t.Increase(s.Start, s.LengthMinutes())
		}
	}
}

// HourLoad returns the attached aggregator, or nil if none was attached
func (r *Roster) HourLoad() HourLoadTracker {
	return r.hourLoad
}

// EmployeeByID looks up an employee, building the index on first use
func (r *Roster) EmployeeByID(id string) *Employee {
	if r.employeesByID == nil {
		r.employeesByID = make(map[string]*Employee, len(r.Employees))
		for _, e := range r.Employees {
			r.employeesByID[e.ID] = e
		}
	}
	return r.employeesByID[id]
}

// SpotByID looks up a spot, building the index on first use
func (r *Roster) SpotByID(id string) *Spot {
	if r.spotsByID == nil {
		r.spotsByID = make(map[string]*Spot, len(r.Spots))
		for _, s := range r.Spots {
			r.spotsByID[s.ID] = s
		}
	}
	return r.spotsByID[id]
}

// Clone deep-copies everything a solve mutates. Employees, availabilities,
// spots and configuration are never mutated during a solve, so their
// backing values are shared; the shift slice and shift values are copied.
// The clone starts with no attached hour-load tracker.
func (r *Roster) Clone() *Roster {
	shifts := make([]*Shift, len(r.Shifts))
	for i, s := range r.Shifts {
		copied := *s
		shifts[i] = &copied
	}
	return &Roster{
		TenantID:       r.TenantID,
		Shifts:         shifts,
		Employees:      r.Employees,
		Availabilities: r.Availabilities,
		Spots:          r.Spots,
		Config:         r.Config,
		State:          r.State,
		NonDisruptive:  r.NonDisruptive,
	}
}
