// Package navigator tracks progress through an ordered, fixed list of
// tutorial steps.
//
// A Navigator owns two independent pieces of state: the index of the step
// currently shown, and the set of steps the user has marked complete.
// Every operation is total. Out-of-range indices are ignored rather than
// reported, so callers driven by key presses never need to check bounds.
package navigator

import (
	"errors"
	"sort"

	"github.com/muurk/offsite/internal/content"
)

// ErrNoSteps is returned by New when given an empty step list.
var ErrNoSteps = errors.New("navigator requires at least one step")

// Navigator is the step tracker. The zero value is not usable; create one
// with New.
type Navigator struct {
	steps     []content.Step
	current   int
	completed map[int]struct{}
}

// New creates a navigator positioned on the first step with nothing
// completed. The step slice is copied.
func New(steps []content.Step) (*Navigator, error) {
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}
	cp := make([]content.Step, len(steps))
	copy(cp, steps)
	return &Navigator{
		steps:     cp,
		completed: make(map[int]struct{}),
	}, nil
}

// Len returns the number of steps.
func (n *Navigator) Len() int {
	return len(n.steps)
}

// Steps returns a copy of the step list.
func (n *Navigator) Steps() []content.Step {
	cp := make([]content.Step, len(n.steps))
	copy(cp, n.steps)
	return cp
}

// Step returns the step at index i and whether i is in range.
func (n *Navigator) Step(i int) (content.Step, bool) {
	if !n.valid(i) {
		return content.Step{}, false
	}
	return n.steps[i], true
}

// Current returns the step currently shown.
func (n *Navigator) Current() content.Step {
	return n.steps[n.current]
}

// CurrentIndex returns the zero-based index of the current step.
func (n *Navigator) CurrentIndex() int {
	return n.current
}

// GoTo moves to step i. It returns false and leaves the position unchanged
// when i is out of range.
func (n *Navigator) GoTo(i int) bool {
	if !n.valid(i) {
		return false
	}
	n.current = i
	return true
}

// Next advances one step. It returns false on the last step.
func (n *Navigator) Next() bool {
	if !n.HasNext() {
		return false
	}
	n.current++
	return true
}

// Previous goes back one step. It returns false on the first step.
func (n *Navigator) Previous() bool {
	if !n.HasPrevious() {
		return false
	}
	n.current--
	return true
}

// HasNext reports whether Next would move.
func (n *Navigator) HasNext() bool {
	return n.current < len(n.steps)-1
}

// HasPrevious reports whether Previous would move.
func (n *Navigator) HasPrevious() bool {
	return n.current > 0
}

// ToggleComplete flips the completion mark of step i and returns the new
// state. Out-of-range indices are ignored and report false.
func (n *Navigator) ToggleComplete(i int) bool {
	if !n.valid(i) {
		return false
	}
	if _, ok := n.completed[i]; ok {
		delete(n.completed, i)
		return false
	}
	n.completed[i] = struct{}{}
	return true
}

// IsComplete reports whether step i is marked complete.
func (n *Navigator) IsComplete(i int) bool {
	_, ok := n.completed[i]
	return ok
}

// CompletedCount returns the number of completed steps.
func (n *Navigator) CompletedCount() int {
	return len(n.completed)
}

// CompletedIndices returns the completed step indices in ascending order.
func (n *Navigator) CompletedIndices() []int {
	out := make([]int, 0, len(n.completed))
	for i := range n.completed {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// ProgressFraction returns completed/total in [0, 1].
func (n *Navigator) ProgressFraction() float64 {
	return float64(len(n.completed)) / float64(len(n.steps))
}

// TotalMinutes sums the estimated time of all steps.
func (n *Navigator) TotalMinutes() int {
	total := 0
	for _, s := range n.steps {
		total += s.EstimatedTime
	}
	return total
}

// RemainingMinutes sums the estimated time of steps not yet completed.
func (n *Navigator) RemainingMinutes() int {
	total := 0
	for i, s := range n.steps {
		if !n.IsComplete(i) {
			total += s.EstimatedTime
		}
	}
	return total
}

func (n *Navigator) valid(i int) bool {
	return i >= 0 && i < len(n.steps)
}
