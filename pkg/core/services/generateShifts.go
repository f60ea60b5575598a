package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/rosterops/rosterd/internal/config"
	"github.com/rosterops/rosterd/pkg/db"
)

// GenerateShiftsStore defines the database operations needed to generate shifts
type GenerateShiftsStore interface {
	GetSpots(ctx context.Context, tenantID string) ([]db.Spot, error)
	GetRosterState(ctx context.Context, tenantID string) (*db.RosterState, error)
	InsertShifts(ctx context.Context, shifts []db.Shift) error
}

// GenerateShiftsResult contains the generation outcome
type GenerateShiftsResult struct {
	TenantID    string
	WindowStart time.Time
	WindowEnd   time.Time
	ShiftCount  int
}

// GenerateShifts expands the configured shift templates over the tenant's
// draft window and inserts the resulting shifts. Each template contributes
// one shift per rrule occurrence, anchored at the template's start clock
// time in the tenant timezone.
func GenerateShifts(
	ctx context.Context,
	store GenerateShiftsStore,
	cfg *config.Config,
	logger *zap.Logger,
	tenantID string,
) (*GenerateShiftsResult, error) {
	state, err := store.GetRosterState(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster state for tenant %s: %w", tenantID, err)
	}
	if state == nil {
		return nil, fmt.Errorf("tenant %s has no roster state", tenantID)
	}

	location := time.UTC
	if state.Timezone != "" {
		location, err = time.LoadLocation(state.Timezone)
		if err != nil {
			return nil, fmt.Errorf("tenant %s has invalid timezone %q: %w", tenantID, state.Timezone, err)
		}
	}

	spots, err := store.GetSpots(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load spots for tenant %s: %w", tenantID, err)
	}
	spotIDsByName := make(map[string]string, len(spots))
	for _, s := range spots {
		spotIDsByName[s.Name] = s.ID
	}

	windowStart := state.FirstDraftDate
	windowEnd := state.FirstDraftDate.AddDate(0, 0, state.RotationLength)

	var shifts []db.Shift
	for i, template := range cfg.ShiftTemplates {
		spotID, ok := spotIDsByName[template.Spot]
		if !ok {
			return nil, fmt.Errorf("shiftTemplates[%d] references unknown spot %q", i, template.Spot)
		}

		rule, err := rrule.StrToRRule(template.RRule)
		if err != nil {
			return nil, fmt.Errorf("invalid rrule in shiftTemplates[%d]: %w", i, err)
		}
		rule.DTStart(windowStart)

		clock, err := time.Parse("15:04", template.StartTime)
		if err != nil {
			return nil, fmt.Errorf("invalid startTime in shiftTemplates[%d]: %w", i, err)
		}

		for _, occurrence := range rule.Between(windowStart, windowEnd, true) {
			start := time.Date(occurrence.Year(), occurrence.Month(), occurrence.Day(),
				clock.Hour(), clock.Minute(), 0, 0, location)
			shifts = append(shifts, db.Shift{
				ID:                 uuid.New().String(),
				TenantID:           tenantID,
				SpotID:             spotID,
				Start:              start,
				End:                start.Add(time.Duration(template.DurationMinutes) * time.Minute),
				RotationEmployeeID: template.RotationEmployee,
			})
		}
	}

	if err := store.InsertShifts(ctx, shifts); err != nil {
		return nil, fmt.Errorf("failed to insert generated shifts: %w", err)
	}

	logger.Info("shifts generated",
		zap.String("tenant", tenantID),
		zap.Int("shift_count", len(shifts)),
		zap.Time("window_start", windowStart),
		zap.Time("window_end", windowEnd))

	return &GenerateShiftsResult{
		TenantID:    tenantID,
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
		ShiftCount:  len(shifts),
	}, nil
}
