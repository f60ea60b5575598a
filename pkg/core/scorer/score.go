package scorer

import "fmt"

// Score is the weighted outcome of evaluating every constraint over a
// roster. A negative Hard component means the roster is infeasible and must
// never be preferred over any roster with a higher Hard value, regardless
// of the other components. Medium breaks Hard ties, Soft breaks Medium
// ties; rosters equal on all three are unordered here.
type Score struct {
	Hard   int64
	Medium int64
	Soft   int64
}

// Compare orders scores by Hard, then Medium, then Soft.
// Returns -1 if s is worse than other, 0 if equal, 1 if better.
func (s Score) Compare(other Score) int {
	if s.Hard != other.Hard {
		if s.Hard < other.Hard {
			return -1
		}
		return 1
	}
	if s.Medium != other.Medium {
		if s.Medium < other.Medium {
			return -1
		}
		return 1
	}
	if s.Soft != other.Soft {
		if s.Soft < other.Soft {
			return -1
		}
		return 1
	}
	return 0
}

// Better returns true if s is strictly preferred over other
func (s Score) Better(other Score) bool {
	return s.Compare(other) > 0
}

// Feasible returns true if no hard constraint is violated
func (s Score) Feasible() bool {
	return s.Hard >= 0
}

func (s Score) String() string {
	return fmt.Sprintf("%dhard/%dmedium/%dsoft", s.Hard, s.Medium, s.Soft)
}
