package db

import "time"

// Employee represents an employee row
type Employee struct {
	ID                 string
	TenantID           string
	Name               string
	Skills             []string
	MaxMinutesPerDay   *int
	MaxMinutesPerWeek  *int
	MaxMinutesPerMonth *int
	MaxMinutesPerYear  *int
}

// Spot represents a spot row
type Spot struct {
	ID             string
	TenantID       string
	Name           string
	RequiredSkills []string
}

// Shift represents a shift row
type Shift struct {
	ID                 string
	TenantID           string
	SpotID             string
	Start              time.Time
	End                time.Time
	EmployeeID         string
	RotationEmployeeID string
	OriginalEmployeeID string
	Pinned             bool
}

// Availability represents an employee availability row
type Availability struct {
	ID         string
	TenantID   string
	EmployeeID string
	Start      time.Time
	End        time.Time
	State      string
}

// RosterState represents a tenant's roster state row
type RosterState struct {
	TenantID                string
	FirstDraftDate          time.Time
	PublishNotice           int
	PublishLength           int
	RotationLength          int
	UnplannedRotationOffset int
	Timezone                string
}

// ConstraintConfiguration represents a tenant's constraint weight row,
// one row per constraint id
type ConstraintConfiguration struct {
	TenantID     string
	ConstraintID string
	Weight       int
}
