package model

import (
	"errors"
	"time"
)

// ErrZeroTime is returned when a classification is asked for the zero time
var ErrZeroTime = errors.New("cannot classify the zero time value")

// RosterState holds a tenant's temporal anchors. FirstDraftDate is set once
// per tenant and advances only through an explicit publish, which happens
// outside this package. All day counts are non-negative.
type RosterState struct {
	TenantID string

	// FirstDraftDate is the first day of the draft window (midnight, tenant timezone)
	FirstDraftDate time.Time

	// PublishNotice is how many days before FirstDraftDate the publish deadline falls
	PublishNotice int

	// PublishLength is the length of the published window in days
	PublishLength int

	// RotationLength is the length of the draft window in days
	RotationLength int

	// UnplannedRotationOffset tracks where in the rotation pattern the tenant is
	UnplannedRotationOffset int

	// Timezone normalizes incoming timestamps before date comparison.
	// A nil location means UTC.
	Timezone *time.Location
}

// FirstPublishedDate is the first day of the published window
func (rs *RosterState) FirstPublishedDate() time.Time {
	return rs.FirstDraftDate.AddDate(0, 0, -rs.PublishLength)
}

// LastPublishedDate is the last day of the published window
func (rs *RosterState) LastPublishedDate() time.Time {
	return rs.FirstDraftDate.AddDate(0, 0, -1)
}

// LastDraftDate is the last day of the draft window
func (rs *RosterState) LastDraftDate() time.Time {
	return rs.FirstDraftDate.AddDate(0, 0, rs.RotationLength)
}

// PublishDeadline is the day by which the next publish must happen
func (rs *RosterState) PublishDeadline() time.Time {
	return rs.FirstDraftDate.AddDate(0, 0, -rs.PublishNotice)
}

// location returns the tenant timezone, defaulting to UTC
func (rs *RosterState) location() *time.Location {
	if rs.Timezone != nil {
		return rs.Timezone
	}
	return time.UTC
}

// normalize truncates t to midnight in the tenant timezone
func (rs *RosterState) normalize(t time.Time) time.Time {
	local := t.In(rs.location())
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, rs.location())
}

// IsHistoric returns true if t falls before the published window
func (rs *RosterState) IsHistoric(t time.Time) (bool, error) {
	if t.IsZero() {
		return false, ErrZeroTime
	}
	return rs.normalize(t).Before(rs.normalize(rs.FirstPublishedDate())), nil
}

// IsDraft returns true if t falls after the last published day
func (rs *RosterState) IsDraft(t time.Time) (bool, error) {
	if t.IsZero() {
		return false, ErrZeroTime
	}
	return rs.normalize(t).After(rs.normalize(rs.FirstDraftDate)), nil
}

// IsPublished returns true if t is neither historic nor draft
func (rs *RosterState) IsPublished(t time.Time) (bool, error) {
	historic, err := rs.IsHistoric(t)
	if err != nil {
		return false, err
	}
	draft, err := rs.IsDraft(t)
	if err != nil {
		return false, err
	}
	return !historic && !draft, nil
}
