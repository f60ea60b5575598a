package scorer

import (
	"fmt"

	"github.com/rosterops/rosterd/pkg/core/model"
)

// RequiredSkillConstraint penalizes, per the full shift length, any shift
// whose assignee lacks at least one of the spot's required skills
type RequiredSkillConstraint struct{}

func (c *RequiredSkillConstraint) ID() string   { return "required-skill" }
func (c *RequiredSkillConstraint) Name() string { return "Required skill for a shift" }

func (c *RequiredSkillConstraint) Apply(r *model.Roster, acc *Accumulator) {
	for _, shift := range r.Shifts {
		if !shift.Assigned() {
			continue
		}
		employee := r.EmployeeByID(shift.EmployeeID)
		spot := r.SpotByID(shift.SpotID)
		if employee == nil || spot == nil {
			continue
		}
		for skill := range spot.RequiredSkills {
			if !employee.HasSkill(skill) {
				acc.Penalize(LevelHard, r.Config.RequiredSkill, int64(shift.LengthMinutes()),
					shift.ID, fmt.Sprintf("employee %s lacks skill %q", employee.ID, skill))
				break
			}
		}
	}
}
