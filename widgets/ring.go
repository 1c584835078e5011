package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RingGlyphs are the runes used for the four cell states of a ring.
type RingGlyphs struct {
	Empty    rune
	Active   rune
	Playhead rune
	Hit      rune
}

// RenderRing renders one pattern ring as a single line of cells. The playhead
// cell gets the head style and a distinct glyph depending on whether it lands
// on an onset.
func RenderRing(cells []bool, phase int, g RingGlyphs, on, off, head lipgloss.Style) string {
	var out strings.Builder
	for i, c := range cells {
		if i > 0 {
			out.WriteString(" ")
		}
		switch {
		case i == phase && c:
			out.WriteString(head.Render(string(g.Hit)))
		case i == phase:
			out.WriteString(head.Render(string(g.Playhead)))
		case c:
			out.WriteString(on.Render(string(g.Active)))
		default:
			out.WriteString(off.Render(string(g.Empty)))
		}
	}
	return out.String()
}

// NoteGlyphs are the runes used for note grid cells.
type NoteGlyphs struct {
	Off    rune
	On     rune
	Cursor rune
}

// RenderNoteGrid renders the note selection grid as rows of perRow cells.
// cursor < 0 hides the cursor.
func RenderNoteGrid(size, perRow int, selected []int, cursor int, g NoteGlyphs, on, off, cur lipgloss.Style) string {
	set := make(map[int]bool, len(selected))
	for _, n := range selected {
		set[n] = true
	}

	var lines []string
	var line strings.Builder
	for i := 0; i < size; i++ {
		if i%perRow == 0 && i > 0 {
			lines = append(lines, line.String())
			line.Reset()
		}
		if i%perRow > 0 {
			line.WriteString(" ")
		}
		switch {
		case i == cursor:
			line.WriteString(cur.Render(string(g.Cursor)))
		case set[i]:
			line.WriteString(on.Render(string(g.On)))
		default:
			line.WriteString(off.Render(string(g.Off)))
		}
	}
	lines = append(lines, line.String())
	return strings.Join(lines, "\n")
}
