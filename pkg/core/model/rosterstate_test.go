package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newState() *RosterState {
	return &RosterState{
		TenantID:       "tenant-a",
		FirstDraftDate: time.Date(2000, 1, 8, 0, 0, 0, 0, time.UTC),
		PublishNotice:  3,
		PublishLength:  7,
		RotationLength: 14,
	}
}

func TestRosterState_DerivedDates(t *testing.T) {
	rs := newState()

	assert.Equal(t, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), rs.FirstPublishedDate())
	assert.Equal(t, time.Date(2000, 1, 7, 0, 0, 0, 0, time.UTC), rs.LastPublishedDate())
	assert.Equal(t, time.Date(2000, 1, 22, 0, 0, 0, 0, time.UTC), rs.LastDraftDate())
	assert.Equal(t, time.Date(2000, 1, 5, 0, 0, 0, 0, time.UTC), rs.PublishDeadline())
}

func TestRosterState_ClassifiesPublishedWindow(t *testing.T) {
	rs := newState()

	// 2000-01-01 is the first published day: not historic, not draft
	day := time.Date(2000, 1, 1, 9, 0, 0, 0, time.UTC)
	historic, err := rs.IsHistoric(day)
	require.NoError(t, err)
	draft, err := rs.IsDraft(day)
	require.NoError(t, err)
	published, err := rs.IsPublished(day)
	require.NoError(t, err)

	assert.False(t, historic)
	assert.False(t, draft)
	assert.True(t, published)
}

func TestRosterState_ClassifiesDraft(t *testing.T) {
	rs := newState()

	draft, err := rs.IsDraft(time.Date(2000, 1, 9, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, draft)

	// The first draft date itself is not strictly after, so not draft
	draft, err = rs.IsDraft(time.Date(2000, 1, 8, 23, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, draft)
}

func TestRosterState_ClassifiesHistoric(t *testing.T) {
	rs := newState()

	historic, err := rs.IsHistoric(time.Date(1999, 12, 31, 23, 59, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, historic)

	published, err := rs.IsPublished(time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, published)
}

func TestRosterState_NormalizesToTenantTimezone(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	rs := newState()
	rs.Timezone = loc
	rs.FirstDraftDate = time.Date(2000, 1, 8, 0, 0, 0, 0, loc)

	// 2000-01-09 03:00 UTC is still 2000-01-08 in New York: not draft
	draft, err := rs.IsDraft(time.Date(2000, 1, 9, 3, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, draft)
}

func TestRosterState_RejectsZeroTime(t *testing.T) {
	rs := newState()

	_, err := rs.IsHistoric(time.Time{})
	assert.ErrorIs(t, err, ErrZeroTime)
	_, err = rs.IsDraft(time.Time{})
	assert.ErrorIs(t, err, ErrZeroTime)
	_, err = rs.IsPublished(time.Time{})
	assert.ErrorIs(t, err, ErrZeroTime)
}
