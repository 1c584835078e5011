package pattern

import (
	"encoding/json"
	"strings"
)

// Ring size limits. The global trigger grid is 16 steps; rings may be
// shorter and run their own period against it (polymeters).
const (
	MaxSteps    = 16
	MaxRotation = 31
)

// Logic operators for combining two rings.
const (
	OpAnd = "AND"
	OpOr  = "OR"
	OpXor = "XOR"
)

// Pattern is one Euclidean ring: Pulses onsets spread as evenly as possible
// across Steps positions. Rotation and Probability are applied when the ring
// is read, not baked into the stored cells.
type Pattern struct {
	Steps       int `json:"steps"`       // 1-16
	Pulses      int `json:"pulses"`      // 0-Steps
	Rotation    int `json:"rotation"`    // left rotation, mod Steps at read time
	Probability int `json:"probability"` // 0-100 percent chance an onset fires

	cells []bool // derived from (Steps, Pulses), unrotated
}

// New creates a ring and derives its cells.
func New(steps, pulses int) Pattern {
	p := Pattern{Steps: steps, Pulses: pulses, Probability: 100}
	p.rederive()
	return p
}

// SetSteps changes the ring length and rederives the cells.
func (p *Pattern) SetSteps(n int) {
	p.Steps = n
	p.rederive()
}

// SetPulses changes the onset count and rederives the cells.
func (p *Pattern) SetPulses(n int) {
	p.Pulses = n
	p.rederive()
}

func (p *Pattern) rederive() {
	p.cells = Generate(p.Steps, p.Pulses)
}

// CellAt reads the rotated ring at position i.
func (p *Pattern) CellAt(i int) bool {
	if p.Steps <= 0 || len(p.cells) == 0 {
		return false
	}
	return p.cells[(i+p.Rotation)%p.Steps]
}

// Cells returns the rotated cells for display.
func (p *Pattern) Cells() []bool {
	out := make([]bool, p.Steps)
	for i := range out {
		out[i] = p.CellAt(i)
	}
	return out
}

// UnmarshalJSON rederives the cells after decoding, so patterns arriving in
// sync snapshots are immediately readable.
func (p *Pattern) UnmarshalJSON(data []byte) error {
	type alias Pattern
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = Pattern(a)
	p.rederive()
	return nil
}

// Generate produces the Euclidean rhythm E(pulses, steps) via the Bjorklund
// construction: onsets are distributed as evenly as possible around the ring.
// Callers clamp pulses to [0, steps] and steps to MaxSteps before calling.
func Generate(steps, pulses int) []bool {
	if steps <= 0 {
		return nil
	}
	cells := make([]bool, steps)
	if pulses <= 0 {
		return cells
	}
	if pulses >= steps {
		for i := range cells {
			cells[i] = true
		}
		return cells
	}

	// Repeated integer division builds the count/remainder columns.
	divisor := steps - pulses
	remainders := []int{pulses}
	var counts []int
	level := 0
	for {
		counts = append(counts, divisor/remainders[level])
		remainders = append(remainders, divisor%remainders[level])
		divisor = remainders[level]
		level++
		if remainders[level] <= 1 {
			break
		}
	}
	counts = append(counts, divisor)

	seq := buildLevel(level, counts, remainders)

	// Normalize so the first onset lands on step 0.
	for i, on := range seq {
		if on {
			seq = append(seq[i:], seq[:i]...)
			break
		}
	}

	// Tile/truncate to exactly steps cells.
	for i := range cells {
		cells[i] = seq[i%len(seq)]
	}
	return cells
}

// buildLevel concatenates count copies of the previous level's group, then
// one copy of the group two levels back when that level's remainder is
// nonzero. Base groups are a lone rest and a lone onset.
func buildLevel(level int, counts, remainders []int) []bool {
	switch level {
	case -1:
		return []bool{false}
	case -2:
		return []bool{true}
	}
	var seq []bool
	for i := 0; i < counts[level]; i++ {
		seq = append(seq, buildLevel(level-1, counts, remainders)...)
	}
	if remainders[level] != 0 {
		seq = append(seq, buildLevel(level-2, counts, remainders)...)
	}
	return seq
}

// Rotate returns cells left-rotated by r. Rotation by r and r+len(cells)
// are equivalent.
func Rotate(cells []bool, r int) []bool {
	n := len(cells)
	if n == 0 {
		return nil
	}
	r = ((r % n) + n) % n
	out := make([]bool, n)
	for i := range out {
		out[i] = cells[(i+r)%n]
	}
	return out
}

// Combine merges two rings elementwise over max(len(a), len(b)) positions.
// Each ring cycles on its own length, so rings of different sizes drift
// against each other. Unrecognized operators combine as AND.
func Combine(a, b []bool, op string) []bool {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]bool, n)
	for i := range out {
		av := a[i%len(a)]
		bv := b[i%len(b)]
		switch strings.ToUpper(op) {
		case OpOr:
			out[i] = av || bv
		case OpXor:
			out[i] = av != bv
		default: // AND, and anything unrecognized
			out[i] = av && bv
		}
	}
	return out
}
