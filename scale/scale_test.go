package scale

import "testing"

func TestOffsetsTable(t *testing.T) {
	var tests = []struct {
		name string
		want []int
	}{
		{"major", []int{0, 2, 4, 5, 7, 9, 11}},
		{"minor", []int{0, 2, 3, 5, 7, 8, 10}},
		{"pentatonic", []int{0, 2, 4, 7, 9}},
		{"dorian", []int{0, 2, 3, 5, 7, 9, 10}},
		{"phrygian", []int{0, 1, 3, 5, 7, 8, 10}},
		{"lydian", []int{0, 2, 4, 6, 7, 9, 11}},
		{"mixolydian", []int{0, 2, 4, 5, 7, 9, 10}},
	}
	for _, tt := range tests {
		offs, ok := Offsets(tt.name)
		if !ok {
			t.Fatalf("scale %q missing", tt.name)
		}
		if len(offs) != len(tt.want) {
			t.Fatalf("scale %q: %v, want %v", tt.name, offs, tt.want)
		}
		for i := range offs {
			if offs[i] != tt.want[i] {
				t.Errorf("scale %q: %v, want %v", tt.name, offs, tt.want)
				break
			}
		}
	}

	chrom, ok := Offsets("chromatic")
	if !ok || len(chrom) != 12 {
		t.Fatalf("chromatic scale should have 12 degrees, got %v", chrom)
	}
	for i, o := range chrom {
		if o != i {
			t.Fatalf("chromatic[%d] = %d", i, o)
		}
	}

	if _, ok := Offsets("klingon"); ok {
		t.Fatal("unknown scale reported as present")
	}
}

func TestMapIndexOctaves(t *testing.T) {
	major, _ := Offsets("major")
	root := 48 // C3

	// One full trip through the scale is exactly one octave up.
	lo := MapIndex(0, major, root)
	hi := MapIndex(7, major, root)
	if hi-lo != 12 {
		t.Errorf("index 7 - index 0 = %d semitones, want 12", hi-lo)
	}

	// Octave wraps at 9.
	penta, _ := Offsets("pentatonic")
	// index 45 = 9 full octaves of a 5-degree scale, wraps back to octave 0
	if got := MapIndex(45, penta, root); got != root {
		t.Errorf("index 45 pentatonic = %d, want root %d", got, root)
	}
}

func TestMapIndexDegrees(t *testing.T) {
	major, _ := Offsets("major")
	var tests = []struct {
		index int
		want  int
	}{
		{0, 48}, // C3
		{1, 50}, // D3
		{2, 52}, // E3
		{4, 55}, // G3
		{6, 59}, // B3
		{7, 60}, // C4
	}
	for _, tt := range tests {
		if got := MapIndex(tt.index, major, 48); got != tt.want {
			t.Errorf("MapIndex(%d) = %d, want %d", tt.index, got, tt.want)
		}
	}
}

func TestNoteName(t *testing.T) {
	var tests = []struct {
		midi int
		want string
	}{
		{60, "C4"},
		{48, "C3"},
		{61, "C#4"},
		{69, "A4"},
		{59, "B3"},
	}
	for _, tt := range tests {
		if got := NoteName(tt.midi); got != tt.want {
			t.Errorf("NoteName(%d) = %q, want %q", tt.midi, got, tt.want)
		}
	}
}
