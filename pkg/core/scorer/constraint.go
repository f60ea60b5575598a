package scorer

import (
	"fmt"
	"sort"

	"github.com/rosterops/rosterd/pkg/core/model"
)

// Level is the score component a constraint contributes to
type Level int

const (
	LevelHard Level = iota
	LevelMedium
	LevelSoft
)

func (l Level) String() string {
	switch l {
	case LevelHard:
		return "hard"
	case LevelMedium:
		return "medium"
	default:
		return "soft"
	}
}

// Constraint is one independently evaluated rule. Each rule scans the full
// roster and records its weighted contribution on the accumulator; rules
// never read each other's results.
type Constraint interface {
	// ID is the stable identifier the tenant configuration keys weights by
	ID() string

	// Name is a human-readable label for reports
	Name() string

	// Apply evaluates the rule over the roster and records every match
	Apply(r *model.Roster, acc *Accumulator)
}

// Match is one recorded constraint contribution, used by Explain
type Match struct {
	ConstraintID   string
	ConstraintName string
	Level          Level
	// Delta is the signed weighted contribution (negative = penalty)
	Delta int64
	// ShiftID identifies the shift the match fired on, when there is one
	ShiftID string
	Detail  string
}

// Accumulator gathers constraint contributions during one evaluation
type Accumulator struct {
	score   Score
	collect bool
	matches []Match
	current Constraint
}

// Penalize subtracts weight*magnitude from the given score component
func (a *Accumulator) Penalize(level Level, weight int, magnitude int64, shiftID, detail string) {
	a.add(level, -int64(weight)*magnitude, shiftID, detail)
}

// Reward adds weight*magnitude to the given score component
func (a *Accumulator) Reward(level Level, weight int, magnitude int64, shiftID, detail string) {
	a.add(level, int64(weight)*magnitude, shiftID, detail)
}

func (a *Accumulator) add(level Level, delta int64, shiftID, detail string) {
	switch level {
	case LevelHard:
		a.score.Hard += delta
	case LevelMedium:
		a.score.Medium += delta
	case LevelSoft:
		a.score.Soft += delta
	}
	if a.collect {
		a.matches = append(a.matches, Match{
			ConstraintID:   a.current.ID(),
			ConstraintName: a.current.Name(),
			Level:          level,
			Delta:          delta,
			ShiftID:        shiftID,
			Detail:         detail,
		})
	}
}

// Scorer evaluates a fixed ordered list of constraints over a roster
type Scorer struct {
	constraints []Constraint
}

// NewScorer creates a scorer over the given rules.
// Most callers want NewDefaultScorer.
func NewScorer(constraints []Constraint) *Scorer {
	return &Scorer{constraints: constraints}
}

// NewDefaultScorer creates a scorer with the full built-in rule set
func NewDefaultScorer() *Scorer {
	return NewScorer(DefaultConstraints())
}

// DefaultConstraints returns the built-in rules in their evaluation order
func DefaultConstraints() []Constraint {
	return []Constraint{
		&RequiredSkillConstraint{},
		&UnavailableTimeSlotConstraint{},
		&NoOverlappingShiftsConstraint{},
		&AtMostTwoConsecutiveConstraint{},
		&BreakBetweenShiftsConstraint{},
		&ContractMinutesConstraint{Period: PeriodDay},
		&ContractMinutesConstraint{Period: PeriodWeek},
		&ContractMinutesConstraint{Period: PeriodMonth},
		&ContractMinutesConstraint{Period: PeriodYear},
		&AssignEveryShiftConstraint{},
		&NotOriginalEmployeeConstraint{},
		&NotRotationEmployeeConstraint{},
		&UndesiredTimeSlotConstraint{},
		&DesiredTimeSlotConstraint{},
		&BalanceShiftLoadConstraint{},
	}
}

// Score evaluates every constraint and returns the aggregate. Malformed
// shifts (end not after start) fail the evaluation; absent optional data
// never does.
func (sc *Scorer) Score(r *model.Roster) (Score, error) {
	if err := validateShifts(r); err != nil {
		return Score{}, err
	}
	acc := &Accumulator{}
	for _, c := range sc.constraints {
		acc.current = c
		c.Apply(r, acc)
	}
	return acc.score, nil
}

// Explain evaluates every constraint and returns the individual matches
// alongside the aggregate score
func (sc *Scorer) Explain(r *model.Roster) (Score, []Match, error) {
	if err := validateShifts(r); err != nil {
		return Score{}, nil, err
	}
	acc := &Accumulator{collect: true}
	for _, c := range sc.constraints {
		acc.current = c
		c.Apply(r, acc)
	}
	return acc.score, acc.matches, nil
}

func validateShifts(r *model.Roster) error {
	for _, s := range r.Shifts {
		if !s.Start.Before(s.End) {
			return fmt.Errorf("shift %s is malformed: end %s is not after start %s",
				s.ID, s.End.Format("2006-01-02 15:04"), s.Start.Format("2006-01-02 15:04"))
		}
	}
	return nil
}

// shiftsByEmployee groups assigned shifts per employee, each slice ordered
// deterministically by start, then end, then id. The pairwise rules depend
// on this ordering to decide which shift of a pair is "later".
func shiftsByEmployee(r *model.Roster) map[string][]*model.Shift {
	grouped := make(map[string][]*model.Shift)
	for _, s := range r.Shifts {
		if s.Assigned() {
			grouped[s.EmployeeID] = append(grouped[s.EmployeeID], s)
		}
	}
	for _, shifts := range grouped {
		sort.Slice(shifts, func(i, j int) bool {
			a, b := shifts[i], shifts[j]
			if !a.Start.Equal(b.Start) {
				return a.Start.Before(b.Start)
			}
			if !a.End.Equal(b.End) {
				return a.End.Before(b.End)
			}
			return a.ID < b.ID
		})
	}
	return grouped
}
