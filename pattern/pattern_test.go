package pattern

import (
	"testing"
)

func onsets(cells []bool) int {
	n := 0
	for _, c := range cells {
		if c {
			n++
		}
	}
	return n
}

func TestGenerateOnsetCount(t *testing.T) {
	for steps := 1; steps <= MaxSteps; steps++ {
		for pulses := 0; pulses <= steps; pulses++ {
			cells := Generate(steps, pulses)
			if len(cells) != steps {
				t.Errorf("Generate(%d, %d): length %d, want %d", steps, pulses, len(cells), steps)
			}
			if got := onsets(cells); got != pulses {
				t.Errorf("Generate(%d, %d): %d onsets, want %d", steps, pulses, got, pulses)
			}
		}
	}
}

func TestGenerateEdges(t *testing.T) {
	for _, c := range Generate(16, 0) {
		if c {
			t.Fatal("Generate(16, 0) produced an onset")
		}
	}
	for _, c := range Generate(16, 16) {
		if !c {
			t.Fatal("Generate(16, 16) produced a rest")
		}
	}
}

func TestGenerateCanonical(t *testing.T) {
	var tests = []struct {
		steps, pulses int
		want          []int // onset positions
	}{
		{8, 3, []int{0, 3, 6}},       // tresillo
		{8, 4, []int{0, 2, 4, 6}},    // four on the floor (halved)
		{16, 4, []int{0, 4, 8, 12}},  // four on the floor
		{4, 1, []int{0}},
		{12, 1, []int{0}},
	}
	for _, tt := range tests {
		cells := Generate(tt.steps, tt.pulses)
		var got []int
		for i, c := range cells {
			if c {
				got = append(got, i)
			}
		}
		if len(got) != len(tt.want) {
			t.Errorf("E(%d,%d): onsets at %v, want %v", tt.pulses, tt.steps, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("E(%d,%d): onsets at %v, want %v", tt.pulses, tt.steps, got, tt.want)
				break
			}
		}
	}
}

func TestRotateWraps(t *testing.T) {
	for steps := 1; steps <= MaxSteps; steps++ {
		cells := Generate(steps, steps/2)
		for r := 0; r < steps; r++ {
			a := Rotate(cells, r)
			b := Rotate(cells, r+steps)
			for i := range a {
				if a[i] != b[i] {
					t.Fatalf("rotate by %d and %d differ for %d-step ring", r, r+steps, steps)
				}
			}
		}
	}
}

func TestCombine(t *testing.T) {
	a := []bool{true, true, false, false}
	b := []bool{true, false, true, false}

	var tests = []struct {
		op   string
		want []bool
	}{
		{"AND", []bool{true, false, false, false}},
		{"OR", []bool{true, true, true, false}},
		{"XOR", []bool{false, true, true, false}},
		{"and", []bool{true, false, false, false}}, // case-insensitive
		{"NAND", []bool{true, false, false, false}}, // unknown falls back to AND
	}
	for _, tt := range tests {
		got := Combine(a, b, tt.op)
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("Combine %s: got %v, want %v", tt.op, got, tt.want)
				break
			}
		}
	}
}

func TestCombineXorCommutative(t *testing.T) {
	for pulses := 0; pulses <= 8; pulses++ {
		a := Generate(8, pulses)
		b := Generate(8, 8-pulses)
		ab := Combine(a, b, OpXor)
		ba := Combine(b, a, OpXor)
		for i := range ab {
			if ab[i] != ba[i] {
				t.Fatalf("XOR not commutative for E(%d,8) vs E(%d,8)", pulses, 8-pulses)
			}
		}
	}
}

func TestCombineCyclesOwnLength(t *testing.T) {
	a := []bool{true, false, false} // period 3
	b := []bool{true, false}        // period 2
	got := Combine(a, b, OpAnd)
	if len(got) != 3 {
		t.Fatalf("combined length %d, want 3", len(got))
	}
	// position 2 reads a[2] && b[0]
	if got[0] != true || got[1] != false || got[2] != false {
		t.Errorf("got %v, want [true false false]", got)
	}
}

func TestPatternCellAtAppliesRotation(t *testing.T) {
	p := New(8, 3) // onsets at 0, 3, 6
	p.Rotation = 3
	// left rotation by 3: onsets now at 0, 3, 5
	want := []int{0, 3, 5}
	var got []int
	for i := 0; i < p.Steps; i++ {
		if p.CellAt(i) {
			got = append(got, i)
		}
	}
	if len(got) != len(want) {
		t.Fatalf("rotated onsets %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("rotated onsets %v, want %v", got, want)
		}
	}
}
