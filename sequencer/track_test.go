package sequencer

import (
	"testing"

	"ringseq/pattern"
)

func TestGetStepValueBothRingsEmpty(t *testing.T) {
	for _, op := range []string{"AND", "OR", "XOR", "garbage"} {
		tr := NewTrack("t", KindSynth, 1, 0)
		tr.Logic = op
		tr.Outer.Probability = 100
		tr.Inner.Probability = 100
		for step := 0; step < 32; step++ {
			if tr.GetStepValue(step) {
				t.Fatalf("fired with both rings empty (op %s, step %d)", op, step)
			}
		}
	}
}

func TestGetStepValueSingleRingIgnoresOperator(t *testing.T) {
	// Inner is empty, so the outer ring decides alone even under AND.
	tr := NewTrack("t", KindSynth, 1, 0)
	tr.Logic = pattern.OpAnd
	tr.Outer = pattern.New(16, 16)
	for step := 0; step < 16; step++ {
		if !tr.GetStepValue(step) {
			t.Fatalf("outer-only track should fire every step, missed %d", step)
		}
	}

	// And symmetric: outer empty, inner decides.
	tr2 := NewTrack("t2", KindSynth, 1, 0)
	tr2.Logic = pattern.OpAnd
	tr2.Inner = pattern.New(4, 4)
	for step := 0; step < 16; step++ {
		if !tr2.GetStepValue(step) {
			t.Fatalf("inner-only track should fire every step, missed %d", step)
		}
	}
}

func TestGetStepValueOperators(t *testing.T) {
	newTrack := func(op string) *Track {
		tr := NewTrack("t", KindSynth, 1, 0)
		tr.Logic = op
		tr.Outer = pattern.New(16, 16) // always active
		tr.Inner = pattern.New(2, 1)   // active on even steps only
		return tr
	}

	var tests = []struct {
		op         string
		even, odd  bool
	}{
		{"AND", true, false},
		{"OR", true, true},
		{"XOR", false, true},
		{"NONSENSE", true, true}, // unrecognized falls back to OR here
		{"and", true, false},     // case-insensitive
	}
	for _, tt := range tests {
		tr := newTrack(tt.op)
		if got := tr.GetStepValue(0); got != tt.even {
			t.Errorf("op %s even step: got %v, want %v", tt.op, got, tt.even)
		}
		if got := tr.GetStepValue(1); got != tt.odd {
			t.Errorf("op %s odd step: got %v, want %v", tt.op, got, tt.odd)
		}
	}
}

func TestGetStepValuePhases(t *testing.T) {
	tr := NewTrack("t", KindSynth, 1, 0)
	tr.Outer = pattern.New(16, 1)
	tr.Inner = pattern.New(6, 1)

	tr.GetStepValue(10)
	if tr.OuterPhase != 10 || tr.InnerPhase != 4 {
		t.Errorf("phases (%d, %d), want (10, 4)", tr.OuterPhase, tr.InnerPhase)
	}
	tr.GetStepValue(15)
	if tr.OuterPhase != 15 || tr.InnerPhase != 3 {
		t.Errorf("phases (%d, %d), want (15, 3)", tr.OuterPhase, tr.InnerPhase)
	}
}

func TestGetStepValueProbabilityZero(t *testing.T) {
	tr := NewTrack("t", KindSynth, 1, 0)
	tr.Outer = pattern.New(16, 16)
	tr.Outer.Probability = 0
	for step := 0; step < 64; step++ {
		if tr.GetStepValue(step) {
			t.Fatal("fired with probability 0")
		}
	}
}

func TestNextNoteAscendingRoundRobin(t *testing.T) {
	tr := NewTrack("t", KindSynth, 1, 0)
	// Insertion order deliberately scrambled.
	tr.SetNote(9, true)
	tr.SetNote(2, true)
	tr.SetNote(5, true)

	want := []int{2, 5, 9, 2, 5}
	for i, w := range want {
		got, ok := tr.NextNote()
		if !ok || got != w {
			t.Fatalf("note %d: got %d (ok=%v), want %d", i, got, ok, w)
		}
	}
}

func TestNextNoteEmpty(t *testing.T) {
	tr := NewTrack("t", KindSynth, 1, 0)
	if _, ok := tr.NextNote(); ok {
		t.Fatal("NextNote reported a note with empty selection")
	}
}

func TestSetNoteToggle(t *testing.T) {
	tr := NewTrack("t", KindSynth, 1, 0)
	tr.SetNote(3, true)
	tr.SetNote(3, true) // duplicate select is a no-op
	if len(tr.SelectedNotes) != 1 {
		t.Fatalf("selected %v, want one entry", tr.SelectedNotes)
	}
	tr.SetNote(3, false)
	if len(tr.SelectedNotes) != 0 {
		t.Fatalf("selected %v after deselect, want empty", tr.SelectedNotes)
	}
	tr.SetNote(3, false) // deselecting absent index is a no-op
}
