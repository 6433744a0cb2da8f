package model

// TrailingAssignment is an assignment from the last 21 days of the
// preceding quarter, carried forward so block-spacing and min/max
// consecutive-night constraints operate seamlessly across the quarter
// boundary (spec.md §9 design note).
type TrailingAssignment struct {
	StaffID   string    `json:"staff_id"`
	Date      string    `json:"date"`
	ShiftType ShiftType `json:"shift_type"`
}

// CarryForwardEntry is one staff member's computed carry-forward record
// from a completed quarter, per spec.md §4.3. Once emitted it is never
// mutated.
type CarryForwardEntry struct {
	StaffID         string  `json:"staff_id"`
	Role            Role    `json:"role"`
	Hours           int     `json:"hours"`
	EffectiveNights float64 `json:"effective_nights"`
	WeekendShifts   int     `json:"weekend_shifts"`
	TotalNotdienst  float64 `json:"total_notdienst"`
	Normalized40h   float64 `json:"normalized_40h"`
	GroupMean40h    float64 `json:"group_mean_40h"`
	CarryForwardDelta float64 `json:"carry_forward_delta"`
}

// PreviousPlanContext is the read-only summary of the immediately
// preceding quarter fed back into the next run of the constraint builder.
type PreviousPlanContext struct {
	QuarterStart string                `json:"quarter_start"`
	QuarterEnd   string                `json:"quarter_end"`
	Entries      []CarryForwardEntry   `json:"entries"`
	Trailing     []TrailingAssignment  `json:"trailing"`
}

// DeltaFor looks up a staff member's carry-forward delta, returning 0 if
// absent (e.g. a newly hired staff member with no history).
func (p *PreviousPlanContext) DeltaFor(staffID string) float64 {
	if p == nil {
		return 0
	}
	for _, e := range p.Entries {
		if e.StaffID == staffID {
			return e.CarryForwardDelta
		}
	}
	return 0
}

// LastNightOf returns the last date on which staffID worked any night
// shift among the trailing assignments, and whether one was found.
func (p *PreviousPlanContext) LastNightOf(staffID string) (string, bool) {
	if p == nil {
		return "", false
	}
	last := ""
	found := false
	for _, t := range p.Trailing {
		if t.StaffID != staffID || !t.ShiftType.IsNightShift() {
			continue
		}
		if !found || t.Date > last {
			last = t.Date
			found = true
		}
	}
	return last, found
}

// TrailingNightsFor returns the set of dates on which staffID worked a
// night shift among the trailing assignments.
func (p *PreviousPlanContext) TrailingNightsFor(staffID string) map[string]bool {
	out := make(map[string]bool)
	if p == nil {
		return out
	}
	for _, t := range p.Trailing {
		if t.StaffID == staffID && t.ShiftType.IsNightShift() {
			out[t.Date] = true
		}
	}
	return out
}

// TrailingWorkDaysFor returns the set of dates on which staffID worked any
// shift (night or weekend) among the trailing assignments — used for
// cross-quarter block-spacing (C7).
func (p *PreviousPlanContext) TrailingWorkDaysFor(staffID string) map[string]bool {
	out := make(map[string]bool)
	if p == nil {
		return out
	}
	for _, t := range p.Trailing {
		if t.StaffID == staffID {
			out[t.Date] = true
		}
	}
	return out
}
