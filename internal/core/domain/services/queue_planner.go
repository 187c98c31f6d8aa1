package services

import (
	"slices"
)

// Shift moves every entry of a day whose position lies in [From, To] by Delta.
type Shift struct {
	From  int
	To    int
	Delta int
}

// Placement is the outcome of planning: the position the entry takes and, when its
// neighbours have to make room, the shift to apply to them first.
type Placement struct {
	Position int
	Shift    *Shift
}

// QueuePlanner keeps the positions of one day unique and ascending.
//
// Insertion uses list semantics: taking an occupied slot pushes that entry and every
// entry after it one position down. Requested positions are clamped to the range that
// keeps the day dense, so a request for slot 40 in a day of 3 entries lands on slot 4.
type QueuePlanner struct{}

func NewQueuePlanner() QueuePlanner {
	return QueuePlanner{}
}

// PlanInsert places a new entry among the existing positions of its day. A nil
// requested position appends.
func (QueuePlanner) PlanInsert(existing []int, requested *int) Placement {
	last := maxPosition(existing)
	if requested == nil {
		return Placement{Position: last + 1}
	}

	pos := clamp(*requested, 1, last+1)
	if !slices.Contains(existing, pos) {
		return Placement{Position: pos}
	}
	return Placement{
		Position: pos,
		Shift:    &Shift{From: pos, To: last, Delta: 1},
	}
}

// PlanMove moves the entry at current to requested. existing includes current.
//
// Entries between the old and the new slot close the gap by shifting one step towards
// the vacated slot. Moving onto the entry's own slot is a no-op, and so is moving onto
// a free slot: nobody else is displaced.
func (QueuePlanner) PlanMove(existing []int, current, requested int) Placement {
	pos := clamp(requested, 1, max(maxPosition(existing), current))
	if pos == current || !slices.Contains(existing, pos) {
		return Placement{Position: pos}
	}
	if pos < current {
		return Placement{Position: pos, Shift: &Shift{From: pos, To: current - 1, Delta: 1}}
	}
	return Placement{Position: pos, Shift: &Shift{From: current + 1, To: pos, Delta: -1}}
}

func maxPosition(positions []int) int {
	if len(positions) == 0 {
		return 0
	}
	return slices.Max(positions)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
