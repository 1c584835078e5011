package sequencer

import (
	"math/rand"
	"strings"

	"golang.org/x/exp/slices"

	"ringseq/pattern"
)

// Track kinds
const (
	KindSynth = "synth"
	KindDrum  = "drum"
)

// Track owns two independently-phased Euclidean rings and the note
// selection that pitched triggers cycle through. Tracks are created once at
// startup and live for the whole session.
type Track struct {
	ID      string
	Kind    string
	Channel uint8 // MIDI output channel (1-16)
	Note    uint8 // fixed note for drum tracks

	Outer pattern.Pattern
	Inner pattern.Pattern
	Logic string

	SelectedNotes []int // scale-degree grid indices, kept ascending
	NoteCursor    int   // round-robin position into SelectedNotes

	OuterPhase int // step position modulo Outer.Steps
	InnerPhase int // step position modulo Inner.Steps

	rng *rand.Rand
}

// NewTrack creates a track with two empty 16-step rings.
func NewTrack(id, kind string, channel, note uint8) *Track {
	return &Track{
		ID:      id,
		Kind:    kind,
		Channel: channel,
		Note:    note,
		Outer:   pattern.New(16, 0),
		Inner:   pattern.New(16, 0),
		Logic:   pattern.OpAnd,
		rng:     rand.New(rand.NewSource(rand.Int63())),
	}
}

// GetStepValue decides whether this track fires on the given global step.
// Each ring advances on its own modulus, an active cell rolls a fresh
// probability trial on every call, and a ring with zero pulses drops out of
// the combination entirely.
func (t *Track) GetStepValue(step int) bool {
	if t.Outer.Steps > 0 {
		t.OuterPhase = step % t.Outer.Steps
	}
	if t.Inner.Steps > 0 {
		t.InnerPhase = step % t.Inner.Steps
	}

	if t.Outer.Pulses == 0 && t.Inner.Pulses == 0 {
		return false
	}

	outer := t.trial(&t.Outer, t.OuterPhase)
	inner := t.trial(&t.Inner, t.InnerPhase)

	// A single empty ring hands the decision to the other one, ignoring
	// the operator.
	if t.Inner.Pulses == 0 {
		return outer
	}
	if t.Outer.Pulses == 0 {
		return inner
	}

	switch strings.ToUpper(t.Logic) {
	case pattern.OpAnd:
		return outer && inner
	case pattern.OpXor:
		return outer != inner
	default: // OR, and anything unrecognized
		return outer || inner
	}
}

// trial reads a ring cell and, if active, rolls its probability. The
// outcome is never cached: re-evaluating the same step can differ.
func (t *Track) trial(p *pattern.Pattern, phase int) bool {
	if !p.CellAt(phase) {
		return false
	}
	if p.Probability >= 100 {
		return true
	}
	if p.Probability <= 0 {
		return false
	}
	return t.rng.Intn(100) < p.Probability
}

// SetNote adds or removes a scale-degree index, keeping the set ascending.
func (t *Track) SetNote(index int, selected bool) {
	i, found := slices.BinarySearch(t.SelectedNotes, index)
	switch {
	case selected && !found:
		t.SelectedNotes = slices.Insert(t.SelectedNotes, i, index)
	case !selected && found:
		t.SelectedNotes = slices.Delete(t.SelectedNotes, i, i+1)
		if t.NoteCursor >= len(t.SelectedNotes) {
			t.NoteCursor = 0
		}
	}
}

// NextNote returns the next selected index in ascending round-robin order.
// ok is false when nothing is selected (silent trigger).
func (t *Track) NextNote() (index int, ok bool) {
	if len(t.SelectedNotes) == 0 {
		return 0, false
	}
	if t.NoteCursor >= len(t.SelectedNotes) {
		t.NoteCursor = 0
	}
	index = t.SelectedNotes[t.NoteCursor]
	t.NoteCursor = (t.NoteCursor + 1) % len(t.SelectedNotes)
	return index, true
}

// Snapshot copies the replicated portion of the track.
func (t *Track) Snapshot() *TrackState {
	return &TrackState{
		Outer:         t.Outer,
		Inner:         t.Inner,
		Logic:         t.Logic,
		SelectedNotes: slices.Clone(t.SelectedNotes),
	}
}

// Apply overwrites the replicated portion of the track from a snapshot.
func (t *Track) Apply(ts *TrackState) {
	t.Outer = ts.Outer
	t.Inner = ts.Inner
	t.Logic = ts.Logic
	t.SelectedNotes = slices.Clone(ts.SelectedNotes)
	slices.Sort(t.SelectedNotes)
	if t.NoteCursor >= len(t.SelectedNotes) {
		t.NoteCursor = 0
	}
}
