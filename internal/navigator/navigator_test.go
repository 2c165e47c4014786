package navigator

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"

	"github.com/muurk/offsite/internal/content"
)

func makeSteps(n int) []content.Step {
	steps := make([]content.Step, n)
	for i := range steps {
		steps[i] = content.Step{
			Title:         string(rune('A' + i%26)),
			EstimatedTime: 5 * (i + 1),
			Content:       "body",
		}
	}
	return steps
}

func mustNew(t *testing.T, n int) *Navigator {
	t.Helper()
	nav, err := New(makeSteps(n))
	if err != nil {
		t.Fatalf("New(%d) error = %v", n, err)
	}
	return nav
}

func TestNewEmpty(t *testing.T) {
	nav, err := New(nil)
	if !errors.Is(err, ErrNoSteps) {
		t.Errorf("New(nil) error = %v, want %v", err, ErrNoSteps)
	}
	if nav != nil {
		t.Errorf("New(nil) = %v, want nil", nav)
	}
}

func TestNewCopiesSteps(t *testing.T) {
	steps := makeSteps(2)
	nav, err := New(steps)
	if err != nil {
		t.Fatal(err)
	}
	steps[0].Title = "mutated"
	if got := nav.Current().Title; got != "A" {
		t.Errorf("Current().Title = %q, want %q", got, "A")
	}

	out := nav.Steps()
	out[1].Title = "mutated"
	if s, _ := nav.Step(1); s.Title != "B" {
		t.Errorf("Step(1).Title = %q, want %q", s.Title, "B")
	}
}

func TestInitialState(t *testing.T) {
	nav := mustNew(t, 4)
	if nav.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0", nav.CurrentIndex())
	}
	if nav.CompletedCount() != 0 {
		t.Errorf("CompletedCount() = %d, want 0", nav.CompletedCount())
	}
	if nav.ProgressFraction() != 0 {
		t.Errorf("ProgressFraction() = %v, want 0", nav.ProgressFraction())
	}
	if nav.HasPrevious() {
		t.Error("HasPrevious() = true on first step")
	}
	if !nav.HasNext() {
		t.Error("HasNext() = false on first of 4 steps")
	}
}

// Three steps, mark one complete, walk to the end.
func TestThreeStepWalkthrough(t *testing.T) {
	nav := mustNew(t, 3)

	nav.ToggleComplete(1)
	if got := nav.ProgressFraction(); math.Abs(got-1.0/3.0) > 1e-9 {
		t.Errorf("ProgressFraction() = %v, want 1/3", got)
	}

	if !nav.Next() || nav.CurrentIndex() != 1 {
		t.Errorf("Next() from 0: index = %d, want 1", nav.CurrentIndex())
	}
	nav.GoTo(2)
	if nav.Next() {
		t.Error("Next() on last step returned true")
	}
	if nav.CurrentIndex() != 2 {
		t.Errorf("CurrentIndex() = %d, want 2", nav.CurrentIndex())
	}
}

func TestGoTo(t *testing.T) {
	tests := []struct {
		name      string
		index     int
		wantOK    bool
		wantIndex int
	}{
		{"first", 0, true, 0},
		{"middle", 2, true, 2},
		{"last", 4, true, 4},
		{"negative", -1, false, 1},
		{"past end", 5, false, 1},
		{"far past end", 1 << 20, false, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nav := mustNew(t, 5)
			nav.GoTo(1)
			if got := nav.GoTo(tt.index); got != tt.wantOK {
				t.Errorf("GoTo(%d) = %v, want %v", tt.index, got, tt.wantOK)
			}
			if nav.CurrentIndex() != tt.wantIndex {
				t.Errorf("CurrentIndex() = %d, want %d", nav.CurrentIndex(), tt.wantIndex)
			}
		})
	}
}

func TestPreviousAtStart(t *testing.T) {
	nav := mustNew(t, 3)
	if nav.Previous() {
		t.Error("Previous() on first step returned true")
	}
	if nav.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0", nav.CurrentIndex())
	}
}

func TestSingleStep(t *testing.T) {
	nav := mustNew(t, 1)
	if nav.Next() || nav.Previous() {
		t.Error("single step navigator moved")
	}
	nav.ToggleComplete(0)
	if nav.ProgressFraction() != 1 {
		t.Errorf("ProgressFraction() = %v, want 1", nav.ProgressFraction())
	}
}

func TestToggleCompleteOutOfRange(t *testing.T) {
	nav := mustNew(t, 3)
	for _, i := range []int{-1, 3, 100} {
		if nav.ToggleComplete(i) {
			t.Errorf("ToggleComplete(%d) = true, want false", i)
		}
	}
	if nav.CompletedCount() != 0 {
		t.Errorf("CompletedCount() = %d, want 0", nav.CompletedCount())
	}
	if nav.IsComplete(3) {
		t.Error("IsComplete(3) = true for out-of-range index")
	}
}

func TestCompletedIndicesSorted(t *testing.T) {
	nav := mustNew(t, 6)
	for _, i := range []int{4, 0, 5, 2} {
		nav.ToggleComplete(i)
	}
	if diff := cmp.Diff([]int{0, 2, 4, 5}, nav.CompletedIndices()); diff != "" {
		t.Errorf("CompletedIndices() mismatch (-want +got):\n%s", diff)
	}
}

func TestMinutes(t *testing.T) {
	nav := mustNew(t, 3) // 5, 10, 15
	if nav.TotalMinutes() != 30 {
		t.Errorf("TotalMinutes() = %d, want 30", nav.TotalMinutes())
	}
	nav.ToggleComplete(1)
	if nav.RemainingMinutes() != 20 {
		t.Errorf("RemainingMinutes() = %d, want 20", nav.RemainingMinutes())
	}
	if nav.TotalMinutes() != 30 {
		t.Errorf("TotalMinutes() after toggle = %d, want 30", nav.TotalMinutes())
	}
}

func TestAllCompleteProgress(t *testing.T) {
	nav := mustNew(t, 7)
	for i := 0; i < nav.Len(); i++ {
		nav.ToggleComplete(i)
	}
	if nav.ProgressFraction() != 1 {
		t.Errorf("ProgressFraction() = %v, want 1", nav.ProgressFraction())
	}
	if nav.RemainingMinutes() != 0 {
		t.Errorf("RemainingMinutes() = %d, want 0", nav.RemainingMinutes())
	}
}

func TestPropGoToRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 50).Draw(t, "n")
		i := rapid.IntRange(0, n-1).Draw(t, "i")
		nav, err := New(makeSteps(n))
		if err != nil {
			t.Fatal(err)
		}
		nav.GoTo(i)
		if nav.CurrentIndex() != i {
			t.Fatalf("GoTo(%d) then CurrentIndex() = %d", i, nav.CurrentIndex())
		}
		got, _ := nav.Step(i)
		if nav.Current().Title != got.Title {
			t.Fatalf("Current() = %q, want %q", nav.Current().Title, got.Title)
		}
	})
}

func TestPropToggleInvolution(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 30).Draw(t, "n")
		nav, err := New(makeSteps(n))
		if err != nil {
			t.Fatal(err)
		}
		pre := rapid.SliceOf(rapid.IntRange(0, n-1)).Draw(t, "pre")
		for _, i := range pre {
			nav.ToggleComplete(i)
		}
		before := nav.CompletedIndices()

		i := rapid.IntRange(-5, n+5).Draw(t, "i")
		nav.ToggleComplete(i)
		nav.ToggleComplete(i)

		if diff := cmp.Diff(before, nav.CompletedIndices()); diff != "" {
			t.Fatalf("double toggle of %d changed completed set (-before +after):\n%s", i, diff)
		}
	})
}

// Random operation sequences keep the index in range and the completed set
// within valid indices.
func TestPropInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 20).Draw(t, "n")
		nav, err := New(makeSteps(n))
		if err != nil {
			t.Fatal(err)
		}
		ops := rapid.SliceOfN(rapid.IntRange(0, 3), 0, 100).Draw(t, "ops")
		for _, op := range ops {
			switch op {
			case 0:
				nav.Next()
			case 1:
				nav.Previous()
			case 2:
				nav.GoTo(rapid.IntRange(-3, n+3).Draw(t, "goto"))
			case 3:
				nav.ToggleComplete(rapid.IntRange(-3, n+3).Draw(t, "toggle"))
			}
			if idx := nav.CurrentIndex(); idx < 0 || idx >= n {
				t.Fatalf("CurrentIndex() = %d out of [0,%d)", idx, n)
			}
			for _, c := range nav.CompletedIndices() {
				if c < 0 || c >= n {
					t.Fatalf("completed index %d out of [0,%d)", c, n)
				}
			}
			if f := nav.ProgressFraction(); f < 0 || f > 1 {
				t.Fatalf("ProgressFraction() = %v out of [0,1]", f)
			}
		}
	})
}

func TestPropBoundaryIdempotence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 20).Draw(t, "n")
		nav, err := New(makeSteps(n))
		if err != nil {
			t.Fatal(err)
		}
		nav.GoTo(n - 1)
		extra := rapid.IntRange(1, 5).Draw(t, "extra")
		for range extra {
			nav.Next()
		}
		if nav.CurrentIndex() != n-1 {
			t.Fatalf("Next() past end moved to %d", nav.CurrentIndex())
		}
		nav.GoTo(0)
		for range extra {
			nav.Previous()
		}
		if nav.CurrentIndex() != 0 {
			t.Fatalf("Previous() before start moved to %d", nav.CurrentIndex())
		}
	})
}
