package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/rosterops/rosterd/pkg/core/model"
	"github.com/rosterops/rosterd/pkg/db"
)

// GetEmployees retrieves all employee records for a tenant
func (d *DB) GetEmployees(ctx context.Context, tenantID string) ([]db.Employee, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, tenant_id, name, skills,
		       max_minutes_per_day, max_minutes_per_week,
		       max_minutes_per_month, max_minutes_per_year
		FROM employee
		WHERE tenant_id = $1
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []db.Employee
	for rows.Next() {
		var e db.Employee
		if err := rows.Scan(&e.ID, &e.TenantID, &e.Name, &e.Skills,
			&e.MaxMinutesPerDay, &e.MaxMinutesPerWeek,
			&e.MaxMinutesPerMonth, &e.MaxMinutesPerYear); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employees: %w", err)
	}

	return employees, nil
}

// GetSpots retrieves all spot records for a tenant
func (d *DB) GetSpots(ctx context.Context, tenantID string) ([]db.Spot, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, tenant_id, name, required_skills
		FROM spot
		WHERE tenant_id = $1
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query spots: %w", err)
	}
	defer rows.Close()

	var spots []db.Spot
	for rows.Next() {
		var s db.Spot
		if err := rows.Scan(&s.ID, &s.TenantID, &s.Name, &s.RequiredSkills); err != nil {
			return nil, fmt.Errorf("failed to scan spot: %w", err)
		}
		spots = append(spots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating spots: %w", err)
	}

	return spots, nil
}

// GetRosterState retrieves a tenant's roster state, or nil if none exists
func (d *DB) GetRosterState(ctx context.Context, tenantID string) (*db.RosterState, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT tenant_id, first_draft_date, publish_notice, publish_length,
		       rotation_length, unplanned_rotation_offset, timezone
		FROM roster_state
		WHERE tenant_id = $1
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster state: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var rs db.RosterState
	if err := rows.Scan(&rs.TenantID, &rs.FirstDraftDate, &rs.PublishNotice, &rs.PublishLength,
		&rs.RotationLength, &rs.UnplannedRotationOffset, &rs.Timezone); err != nil {
		return nil, fmt.Errorf("failed to scan roster state: %w", err)
	}
	return &rs, nil
}

// UpsertRosterState inserts or replaces a tenant's roster state
func (d *DB) UpsertRosterState(ctx context.Context, state *db.RosterState) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO roster_state (tenant_id, first_draft_date, publish_notice, publish_length,
		                          rotation_length, unplanned_rotation_offset, timezone)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (tenant_id) DO UPDATE SET
			first_draft_date = EXCLUDED.first_draft_date,
			publish_notice = EXCLUDED.publish_notice,
			publish_length = EXCLUDED.publish_length,
			rotation_length = EXCLUDED.rotation_length,
			unplanned_rotation_offset = EXCLUDED.unplanned_rotation_offset,
			timezone = EXCLUDED.timezone
	`, state.TenantID, state.FirstDraftDate, state.PublishNotice, state.PublishLength,
		state.RotationLength, state.UnplannedRotationOffset, state.Timezone)
	if err != nil {
		return fmt.Errorf("failed to upsert roster state: %w", err)
	}
	return nil
}

// InsertShifts inserts shift records into the database
func (d *DB) InsertShifts(ctx context.Context, shifts []db.Shift) error {
	if len(shifts) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, s := range shifts {
		_, err := tx.Exec(ctx, `
			INSERT INTO shift (id, tenant_id, spot_id, start_time, end_time,
			                   employee_id, rotation_employee_id, original_employee_id, pinned)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, s.ID, s.TenantID, s.SpotID, s.Start, s.End,
			nullable(s.EmployeeID), nullable(s.RotationEmployeeID), nullable(s.OriginalEmployeeID), s.Pinned)
		if err != nil {
			return fmt.Errorf("failed to insert shift %s: %w", s.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit shifts: %w", err)
	}
	return nil
}

// LoadRoster assembles a tenant's full roster snapshot as a solve input
func (d *DB) LoadRoster(ctx context.Context, tenantID string) (*model.Roster, error) {
	employees, err := d.GetEmployees(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	spots, err := d.GetSpots(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	stateRow, err := d.GetRosterState(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if stateRow == nil {
		return nil, fmt.Errorf("tenant %s has no roster state", tenantID)
	}

	roster := &model.Roster{
		TenantID: tenantID,
		Config:   model.DefaultConstraintConfiguration(tenantID),
	}

	location := time.UTC
	if stateRow.Timezone != "" {
		location, err = time.LoadLocation(stateRow.Timezone)
		if err != nil {
			return nil, fmt.Errorf("tenant %s has invalid timezone %q: %w", tenantID, stateRow.Timezone, err)
		}
	}
	roster.State = model.RosterState{
		TenantID:                tenantID,
		FirstDraftDate:          stateRow.FirstDraftDate,
		PublishNotice:           stateRow.PublishNotice,
		PublishLength:           stateRow.PublishLength,
		RotationLength:          stateRow.RotationLength,
		UnplannedRotationOffset: stateRow.UnplannedRotationOffset,
		Timezone:                location,
	}

	for _, e := range employees {
		skills := make(map[string]bool, len(e.Skills))
		for _, skill := range e.Skills {
			skills[skill] = true
		}
		roster.Employees = append(roster.Employees, &model.Employee{
			ID:     e.ID,
			Name:   e.Name,
			Skills: skills,
			Contract: model.Contract{
				MaxMinutesPerDay:   e.MaxMinutesPerDay,
				MaxMinutesPerWeek:  e.MaxMinutesPerWeek,
				MaxMinutesPerMonth: e.MaxMinutesPerMonth,
				MaxMinutesPerYear:  e.MaxMinutesPerYear,
			},
		})
	}

	for _, s := range spots {
		required := make(map[string]bool, len(s.RequiredSkills))
		for _, skill := range s.RequiredSkills {
			required[skill] = true
		}
		roster.Spots = append(roster.Spots, &model.Spot{ID: s.ID, Name: s.Name, RequiredSkills: required})
	}

	if err := d.loadShifts(ctx, tenantID, roster); err != nil {
		return nil, err
	}
	if err := d.loadAvailabilities(ctx, tenantID, roster); err != nil {
		return nil, err
	}
	if err := d.loadConstraintWeights(ctx, tenantID, roster); err != nil {
		return nil, err
	}

	return roster, nil
}

func (d *DB) loadShifts(ctx context.Context, tenantID string, roster *model.Roster) error {
	rows, err := d.pool.Query(ctx, `
		SELECT id, spot_id, start_time, end_time,
		       employee_id, rotation_employee_id, original_employee_id, pinned
		FROM shift
		WHERE tenant_id = $1
		ORDER BY start_time, end_time, id
	`, tenantID)
	if err != nil {
		return fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s model.Shift
		var employeeID, rotationID, originalID *string
		if err := rows.Scan(&s.ID, &s.SpotID, &s.Start, &s.End,
			&employeeID, &rotationID, &originalID, &s.Pinned); err != nil {
			return fmt.Errorf("failed to scan shift: %w", err)
		}
		if employeeID != nil {
			s.EmployeeID = *employeeID
		}
		if rotationID != nil {
			s.RotationEmployeeID = *rotationID
		}
		if originalID != nil {
			s.OriginalEmployeeID = *originalID
		}
		shift := s
		roster.Shifts = append(roster.Shifts, &shift)
	}

	return rows.Err()
}

func (d *DB) loadAvailabilities(ctx context.Context, tenantID string, roster *model.Roster) error {
	rows, err := d.pool.Query(ctx, `
		SELECT id, employee_id, start_time, end_time, state
		FROM employee_availability
		WHERE tenant_id = $1
	`, tenantID)
	if err != nil {
		return fmt.Errorf("failed to query availabilities: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a model.EmployeeAvailability
		var state string
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.Start, &a.End, &state); err != nil {
			return fmt.Errorf("failed to scan availability: %w", err)
		}
		a.State = model.AvailabilityState(state)
		av := a
		roster.Availabilities = append(roster.Availabilities, &av)
	}

	return rows.Err()
}

func (d *DB) loadConstraintWeights(ctx context.Context, tenantID string, roster *model.Roster) error {
	rows, err := d.pool.Query(ctx, `
		SELECT constraint_id, weight
		FROM constraint_configuration
		WHERE tenant_id = $1
	`, tenantID)
	if err != nil {
		return fmt.Errorf("failed to query constraint configuration: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var constraintID string
		var weight int
		if err := rows.Scan(&constraintID, &weight); err != nil {
			return fmt.Errorf("failed to scan constraint weight: %w", err)
		}
		applyWeight(&roster.Config, constraintID, weight)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	var weekStart *int
	weekRows, err := d.pool.Query(ctx, `
		SELECT week_start_day FROM tenant_week_start WHERE tenant_id = $1
	`, tenantID)
	if err != nil {
		return fmt.Errorf("failed to query week start: %w", err)
	}
	defer weekRows.Close()
	if weekRows.Next() {
		var day int
		if err := weekRows.Scan(&day); err != nil {
			return fmt.Errorf("failed to scan week start: %w", err)
		}
		weekStart = &day
	}
	if weekStart != nil {
		roster.Config.WeekStartDay = time.Weekday(*weekStart)
	}

	return weekRows.Err()
}

// applyWeight maps a stored constraint id onto the configuration field
func applyWeight(cfg *model.ConstraintConfiguration, constraintID string, weight int) {
	switch constraintID {
	case "required-skill":
		cfg.RequiredSkill = weight
	case "unavailable-time-slot":
		cfg.UnavailableTimeSlot = weight
	case "no-overlapping-shifts":
		cfg.NoOverlappingShifts = weight
	case "at-most-two-consecutive":
		cfg.AtMostTwoConsecutive = weight
	case "break-between-shifts":
		cfg.BreakBetweenShifts = weight
	case "daily-minutes":
		cfg.DailyMinutes = weight
	case "weekly-minutes":
		cfg.WeeklyMinutes = weight
	case "monthly-minutes":
		cfg.MonthlyMinutes = weight
	case "yearly-minutes":
		cfg.YearlyMinutes = weight
	case "assign-every-shift":
		cfg.AssignEveryShift = weight
	case "not-original-employee":
		cfg.NotOriginalEmployee = weight
	case "not-rotation-employee":
		cfg.NotRotationEmployee = weight
	case "undesired-time-slot":
		cfg.UndesiredTimeSlot = weight
	case "desired-time-slot":
		cfg.DesiredTimeSlot = weight
	case "balance-shift-load":
		cfg.BalanceShiftLoad = weight
	}
}

// PublishImprovedRoster persists the assignee of every shift in the improved
// roster inside a single transaction, so readers never observe a partially
// applied solution
func (d *DB) PublishImprovedRoster(ctx context.Context, r *model.Roster) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, s := range r.Shifts {
		_, err := tx.Exec(ctx, `
			UPDATE shift SET employee_id = $1 WHERE id = $2 AND tenant_id = $3
		`, nullable(s.EmployeeID), s.ID, r.TenantID)
		if err != nil {
			return fmt.Errorf("failed to update shift %s: %w", s.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit improved roster: %w", err)
	}
	return nil
}

// nullable converts an empty string to a SQL NULL
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
