package builder

import (
	"math"

	"github.com/nextmv-io/sdk/mip"

	"github.com/notdienst/scheduler/pkg/model"
)

// Scaled-integer constants for the fairness objective, spec.md §4.4.3.
const (
	fairnessScale         = 400
	presenceScale         = 1000
	typeBalanceWeight     = 1.0
	fairnessVarBoundLarge = 1_000_000
)

// term is one (coefficient, variable) pair of a per-person linear
// expression feeding a group's max/min bounds.
type term struct {
	coef float64
	v    mip.Bool
}

// addFairnessObjective wires §4.4.3/§4.4.4: the per-person scaled,
// presence-normalized half-unit Notdienst expression, the paired_and_assigned
// auxiliary linkage, the per-group range hard cap, and the two-part
// min-max objective.
func addFairnessObjective(m mip.Model, idx *Index, byID map[string]*model.Staff, vacations []model.Vacation, prev *model.PreviousPlanContext, quarterStart, quarterEnd string, quarterDays int) {
	quarterRange := model.DateRange{Start: quarterStart, End: quarterEnd}
	for _, s := range idx.Staff {
		available := quarterDays - model.VacationDaysInRange(vacations, s.ID, quarterRange)
		if available <= 0 {
			available = 1
		}
		p := float64(available) * presenceScale / float64(quarterDays)
		if p < 1 {
			p = 1
		}
		idx.presence[s.ID] = p
	}

	addPairedAndAssigned(m, idx, byID)

	groups := map[model.Role][]*model.Staff{}
	for _, s := range idx.Staff {
		if s.Role == model.RoleIntern && !s.NightPossible {
			continue
		}
		groups[s.Role] = append(groups[s.Role], s)
	}

	for _, role := range []model.Role{model.RoleTFA, model.RoleAzubi, model.RoleIntern} {
		members := groups[role]
		if len(members) < 2 {
			continue
		}
		nightOnly := role == model.RoleIntern
		addGroupRange(m, idx, members, vacations, prev, quarterStart, quarterEnd, quarterDays, nightOnly, true)

		if role == model.RoleTFA || role == model.RoleAzubi {
			addGroupRange(m, idx, members, vacations, prev, quarterStart, quarterEnd, quarterDays, true, false)
		}
	}
}

// addPairedAndAssigned creates paired_and_assigned[s,d] = x[s,d,t_night] ∧
// paired[s,d] for every non-Azubi staff member's night variable, per
// §4.4.4. Azubi nights never reduce the half-unit expression, so no
// linkage is needed there.
func addPairedAndAssigned(m mip.Model, idx *Index, byID map[string]*model.Staff) {
	for _, staffID := range sortedStaffIDs(idx.Staff) {
		if byID[staffID].Role == model.RoleAzubi {
			continue
		}
		for _, sh := range idx.byStaff[staffID] {
			if !sh.IsNightShift() {
				continue
			}
			x, _ := idx.Var(staffID, sh.Date, sh.ShiftType)
			paired, ok := idx.Paired[dsKey{Staff: staffID, Date: sh.Date}]
			if !ok {
				continue
			}

			pa := m.NewBool()
			cA := m.NewConstraint(mip.LessThanOrEqual, 0.0)
			cA.NewTerm(1.0, pa)
			cA.NewTerm(-1.0, x)

			cB := m.NewConstraint(mip.LessThanOrEqual, 0.0)
			cB.NewTerm(1.0, pa)
			cB.NewTerm(-1.0, paired)

			cC := m.NewConstraint(mip.GreaterThanOrEqual, -1.0)
			cC.NewTerm(1.0, pa)
			cC.NewTerm(-1.0, x)
			cC.NewTerm(-1.0, paired)

			idx.PairedAndAssigned[dsKey{Staff: staffID, Date: sh.Date}] = pa
		}
	}
}

// addGroupRange introduces max_G/min_G for one role group's expression
// (full Notdienst or night-only) and minimizes their spread. When
// enforceThreshold is true a hard cap (§4.4.3) is also added — used for
// the primary objective but not the secondary night_range_G.
func addGroupRange(m mip.Model, idx *Index, members []*model.Staff, vacations []model.Vacation, prev *model.PreviousPlanContext, quarterStart, quarterEnd string, quarterDays int, nightOnly, enforceThreshold bool) {
	maxVar := m.NewInt(-fairnessVarBoundLarge, fairnessVarBoundLarge)
	minVar := m.NewInt(-fairnessVarBoundLarge, fairnessVarBoundLarge)

	var deltas []float64
	for _, s := range members {
		expr := personExpression(idx, s, nightOnly)
		cf := carryForwardOffset(prev, s.ID)
		deltas = append(deltas, prev.DeltaFor(s.ID))

		cMax := m.NewConstraint(mip.GreaterThanOrEqual, cf)
		cMax.NewTerm(1.0, maxVar)
		for _, t := range expr {
			cMax.NewTerm(-t.coef, t.v)
		}

		cMin := m.NewConstraint(mip.LessThanOrEqual, cf)
		cMin.NewTerm(1.0, minVar)
		for _, t := range expr {
			cMin.NewTerm(-t.coef, t.v)
		}
	}

	if enforceThreshold {
		threshold := fairnessThreshold(deltas)
		cRange := m.NewConstraint(mip.LessThanOrEqual, threshold)
		cRange.NewTerm(1.0, maxVar)
		cRange.NewTerm(-1.0, minVar)
	}

	weight := 1.0
	if !enforceThreshold {
		weight = typeBalanceWeight
	}
	m.Objective().NewTerm(weight, maxVar)
	m.Objective().NewTerm(-weight, minVar)
}

// personExpression returns the scaled, presence-normalized half-unit
// terms for s, restricted to night shifts only when nightOnly is true.
func personExpression(idx *Index, s *model.Staff, nightOnly bool) []term {
	mult := personMultiplier(idx, s)

	var terms []term
	for _, sh := range idx.byStaff[s.ID] {
		if sh.IsWeekendShift() {
			if nightOnly {
				continue
			}
			v, _ := idx.Var(s.ID, sh.Date, sh.ShiftType)
			terms = append(terms, term{coef: math.Round(2 * mult), v: v})
			continue
		}
		if !sh.IsNightShift() {
			continue
		}
		v, _ := idx.Var(s.ID, sh.Date, sh.ShiftType)
		terms = append(terms, term{coef: math.Round(2 * mult), v: v})
		if s.Role != model.RoleAzubi {
			if pa, ok := idx.PairedAndAssigned[dsKey{Staff: s.ID, Date: sh.Date}]; ok {
				terms = append(terms, term{coef: -math.Round(mult), v: pa})
			}
		}
	}
	return terms
}

// personMultiplier computes M(s) = (SCALE/hours(s)) · (10_000/P(s)) / 10,
// the FTE- and presence-normalization factor (the `available_days` input
// to P(s) does not vary with nightOnly — it is a property of the person,
// not of the expression).
func personMultiplier(idx *Index, s *model.Staff) float64 {
	hours := float64(s.WeeklyHours)
	if hours <= 0 {
		hours = 1
	}
	presence := idx.presenceFactor(s.ID)
	return (fairnessScale / hours) * (10_000 / presence) / 10
}

// presenceFactor computes P(s) = available_days(s) · 1000 / quarter_days
// (minimum 1).
func (idx *Index) presenceFactor(staffID string) float64 {
	p, ok := idx.presence[staffID]
	if !ok || p < 1 {
		return 1
	}
	return p
}

func carryForwardOffset(prev *model.PreviousPlanContext, staffID string) float64 {
	return math.Round(prev.DeltaFor(staffID) * 20)
}

// fairnessThreshold computes threshold_G = round(1.5 · 2·SCALE/40 ·
// PRESENCE_SCALE/100) + round(cf_spread(G) · 20).
func fairnessThreshold(deltas []float64) float64 {
	base := math.Round(1.5 * (2 * fairnessScale / 40) * (presenceScale / 100))
	if len(deltas) == 0 {
		return base
	}
	maxD, minD := deltas[0], deltas[0]
	for _, d := range deltas {
		if d > maxD {
			maxD = d
		}
		if d < minD {
			minD = d
		}
	}
	return base + math.Round((maxD-minD)*20)
}
