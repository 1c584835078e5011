package scale

import "fmt"

// Names lists the available scales in menu order.
var Names = []string{
	"major", "minor", "pentatonic", "chromatic",
	"dorian", "phrygian", "lydian", "mixolydian",
}

// table maps scale name to semitone offsets within one octave.
var table = map[string][]int{
	"major":      {0, 2, 4, 5, 7, 9, 11},
	"minor":      {0, 2, 3, 5, 7, 8, 10},
	"pentatonic": {0, 2, 4, 7, 9},
	"chromatic":  {0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
	"dorian":     {0, 2, 3, 5, 7, 9, 10},
	"phrygian":   {0, 1, 3, 5, 7, 8, 10},
	"lydian":     {0, 2, 4, 6, 7, 9, 11},
	"mixolydian": {0, 2, 4, 5, 7, 9, 10},
}

// Offsets returns the semitone offsets for a scale name.
func Offsets(name string) ([]int, bool) {
	offs, ok := table[name]
	return offs, ok
}

var noteNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// MapIndex resolves a scale-degree grid index to a MIDI note. The octave
// wraps every len(offsets) indices and is kept within 0-8.
func MapIndex(index int, offsets []int, root int) int {
	if len(offsets) == 0 || index < 0 {
		return root
	}
	octave := (index / len(offsets)) % 9
	degree := index % len(offsets)
	return root + offsets[degree] + 12*octave
}

// NoteName renders a MIDI note as a pitch name, C4 = 60.
func NoteName(midi int) string {
	if midi < 0 {
		midi = 0
	}
	return fmt.Sprintf("%s%d", noteNames[midi%12], midi/12-1)
}
