package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func shiftAt(startHour, endHour int) *Shift {
	return &Shift{
		ID:    "s1",
		Start: time.Date(2024, 3, 4, startHour, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 4, endHour, 0, 0, 0, time.UTC),
	}
}

func TestShift_LengthMinutes(t *testing.T) {
	assert.Equal(t, 480, shiftAt(9, 17).LengthMinutes())
}

func TestShift_OverlapMinutes(t *testing.T) {
	s := shiftAt(9, 17)

	full := s.OverlapMinutes(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 480, full)

	partial := s.OverlapMinutes(time.Date(2024, 3, 4, 16, 0, 0, 0, time.UTC), time.Date(2024, 3, 4, 20, 0, 0, 0, time.UTC))
	assert.Equal(t, 60, partial)

	// Half-open intervals: touching at the boundary is no overlap
	touching := s.OverlapMinutes(time.Date(2024, 3, 4, 17, 0, 0, 0, time.UTC), time.Date(2024, 3, 4, 20, 0, 0, 0, time.UTC))
	assert.Equal(t, 0, touching)
}

func TestShift_Overlaps(t *testing.T) {
	a := shiftAt(9, 17)
	b := shiftAt(16, 20)
	c := shiftAt(17, 20)

	assert.True(t, a.Overlaps(b))
	assert.True(t, b.Overlaps(a))
	assert.False(t, a.Overlaps(c))
}

func TestRoster_CloneIsolatesShiftMutation(t *testing.T) {
	original := &Roster{
		TenantID: "tenant-a",
		Shifts:   []*Shift{{ID: "s1", EmployeeID: "e1", Start: time.Now(), End: time.Now().Add(time.Hour)}},
	}

	clone := original.Clone()
	clone.Shifts[0].EmployeeID = "e2"

	assert.Equal(t, "e1", original.Shifts[0].EmployeeID)
	assert.Equal(t, "e2", clone.Shifts[0].EmployeeID)
}

func TestRoster_CloneDropsHourLoad(t *testing.T) {
	original := &Roster{TenantID: "tenant-a"}
	original.AttachHourLoad(fakeTracker{})

	assert.NotNil(t, original.HourLoad())
	assert.Nil(t, original.Clone().HourLoad())
}

type fakeTracker struct{}

func (fakeTracker) Increase(time.Time, int) {}
func (fakeTracker) Decrease(time.Time, int) {}
func (fakeTracker) LoadBalance() int64      { return 0 }

func TestRoster_EmployeeByID(t *testing.T) {
	r := &Roster{Employees: []*Employee{{ID: "e1", Name: "Ana"}, {ID: "e2", Name: "Bo"}}}

	assert.Equal(t, "Ana", r.EmployeeByID("e1").Name)
	assert.Nil(t, r.EmployeeByID("missing"))
}
