package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ringseq/scale"
	"ringseq/sequencer"
	"ringseq/theme"
	"ringseq/widgets"
)

type focusArea int

const (
	focusRings focusArea = iota
	focusNotes
)

// knobOrder is the h/l cycle through a track's ring parameters.
var knobOrder = []struct {
	param string
	label string
}{
	{sequencer.ParamOuterSteps, "o.steps"},
	{sequencer.ParamOuterPulses, "o.pulses"},
	{sequencer.ParamOuterRotation, "o.rot"},
	{sequencer.ParamOuterProbability, "o.prob"},
	{sequencer.ParamInnerSteps, "i.steps"},
	{sequencer.ParamInnerPulses, "i.pulses"},
	{sequencer.ParamInnerRotation, "i.rot"},
	{sequencer.ParamInnerProbability, "i.prob"},
}

var logicCycle = []string{"AND", "OR", "XOR"}

type Model struct {
	Manager *sequencer.Manager
	Theme   *theme.Theme

	cursor     int // track index
	param      int // index into knobOrder
	focus      focusArea
	noteCursor int
	showHelp   bool
	quitting   bool
}

type UpdateMsg struct{}

func NewModel(manager *sequencer.Manager, th *theme.Theme) Model {
	return Model{
		Manager: manager,
		Theme:   th,
	}
}

func ListenForUpdates(manager *sequencer.Manager) tea.Cmd {
	return func() tea.Msg {
		<-manager.UpdateChan
		return UpdateMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return ListenForUpdates(m.Manager)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg.String())

	case UpdateMsg:
		return m, ListenForUpdates(m.Manager)
	}
	return m, nil
}

func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	views := m.Manager.TrackViews()
	if len(views) == 0 {
		if key == "q" || key == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}
	cur := views[m.cursor]

	switch key {
	case "q", "ctrl+c":
		m.quitting = true
		m.Manager.Dispatch(sequencer.TransportChange{Action: sequencer.ActionStop})
		return m, tea.Quit

	case "?":
		m.showHelp = !m.showHelp

	case "p":
		_, playing, _ := m.Manager.GetState()
		action := sequencer.ActionPlay
		if playing {
			action = sequencer.ActionStop
		}
		m.Manager.Dispatch(sequencer.TransportChange{Action: action})

	case "+", "=":
		_, _, tempo := m.Manager.GetState()
		m.Manager.Dispatch(sequencer.TransportChange{Action: sequencer.ActionTempo, Tempo: tempo + 5})

	case "-", "_":
		_, _, tempo := m.Manager.GetState()
		m.Manager.Dispatch(sequencer.TransportChange{Action: sequencer.ActionTempo, Tempo: tempo - 5})

	case "tab":
		if m.focus == focusRings {
			m.focus = focusNotes
		} else {
			m.focus = focusRings
		}

	case "j", "down":
		if m.focus == focusNotes {
			if m.noteCursor+16 < sequencer.NoteGridSize {
				m.noteCursor += 16
			}
		} else if m.cursor < len(views)-1 {
			m.cursor++
		}

	case "k", "up":
		if m.focus == focusNotes {
			if m.noteCursor-16 >= 0 {
				m.noteCursor -= 16
			}
		} else if m.cursor > 0 {
			m.cursor--
		}

	case "h", "left":
		if m.focus == focusNotes {
			if m.noteCursor > 0 {
				m.noteCursor--
			}
		} else if m.param > 0 {
			m.param--
		}

	case "l", "right":
		if m.focus == focusNotes {
			if m.noteCursor < sequencer.NoteGridSize-1 {
				m.noteCursor++
			}
		} else if m.param < len(knobOrder)-1 {
			m.param++
		}

	case "[":
		p := knobOrder[m.param].param
		m.Manager.Dispatch(sequencer.KnobChange{TrackID: cur.ID, Parameter: p, Value: knobValue(cur, p) - 1})

	case "]":
		p := knobOrder[m.param].param
		m.Manager.Dispatch(sequencer.KnobChange{TrackID: cur.ID, Parameter: p, Value: knobValue(cur, p) + 1})

	case "o":
		m.Manager.Dispatch(sequencer.LogicChange{TrackID: cur.ID, Operator: nextLogic(cur.Logic)})

	case "m":
		v := 1.0
		if cur.Muted {
			v = 0
		}
		m.Manager.Dispatch(sequencer.MixerChange{ChannelID: cur.ID, Parameter: "muted", Value: v})

	case " ":
		if m.focus == focusNotes {
			selected := false
			for _, n := range cur.SelectedNotes {
				if n == m.noteCursor {
					selected = true
					break
				}
			}
			m.Manager.Dispatch(sequencer.NoteSelectionChange{
				TrackID:   cur.ID,
				NoteIndex: m.noteCursor,
				Selected:  !selected,
			})
		}
	}

	return m, nil
}

// knobValue reads the current value of a ring parameter from a view.
func knobValue(v sequencer.TrackView, param string) int {
	ring := v.Outer
	if strings.HasPrefix(param, "inner") {
		ring = v.Inner
	}
	switch {
	case strings.HasSuffix(param, "Steps"):
		return ring.Steps
	case strings.HasSuffix(param, "Pulses"):
		return ring.Pulses
	case strings.HasSuffix(param, "Rotation"):
		return ring.Rotation
	default:
		return ring.Probability
	}
}

func nextLogic(op string) string {
	up := strings.ToUpper(op)
	for i, l := range logicCycle {
		if l == up {
			return logicCycle[(i+1)%len(logicCycle)]
		}
	}
	return logicCycle[0]
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	step, playing, tempo := m.Manager.GetState()
	scaleName, root := m.Manager.ScaleInfo()
	views := m.Manager.TrackViews()

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	activeStyle := lipgloss.NewStyle().Foreground(m.Theme.Active())
	cursorStyle := lipgloss.NewStyle().Foreground(m.Theme.Cursor()).Bold(true)
	fgStyle := lipgloss.NewStyle().Foreground(m.Theme.FG())
	warnStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())

	playState := "STOP"
	if playing {
		playState = "PLAY"
	}
	header := headerStyle.Render(fmt.Sprintf("ringseq  %s  %3dbpm  step:%02d  %s %s",
		playState, tempo, step, scaleName, scale.NoteName(root)))

	glyphs := widgets.RingGlyphs{
		Empty:    m.Theme.Symbols.CellEmpty,
		Active:   m.Theme.Symbols.CellActive,
		Playhead: m.Theme.Symbols.CellPlayhead,
		Hit:      m.Theme.Symbols.CellHit,
	}

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")

	for i, v := range views {
		nameStyle := fgStyle
		if i == m.cursor {
			nameStyle = cursorStyle
		}
		name := v.ID
		if v.Muted {
			name += " [M]"
		}
		out.WriteString(nameStyle.Render(fmt.Sprintf("%-10s", name)))
		out.WriteString(dimStyle.Render(strings.ToUpper(v.Logic)))
		out.WriteString("\n")

		out.WriteString(dimStyle.Render("  outer "))
		out.WriteString(widgets.RenderRing(v.OuterCells, v.OuterPhase, glyphs, activeStyle, dimStyle, cursorStyle))
		out.WriteString("  ")
		out.WriteString(m.renderKnobs(v, i, 0, dimStyle, cursorStyle))
		out.WriteString("\n")

		out.WriteString(dimStyle.Render("  inner "))
		out.WriteString(widgets.RenderRing(v.InnerCells, v.InnerPhase, glyphs, activeStyle, dimStyle, cursorStyle))
		out.WriteString("  ")
		out.WriteString(m.renderKnobs(v, i, 4, dimStyle, cursorStyle))
		out.WriteString("\n")
	}

	// Note grid for the focused track
	if len(views) > 0 {
		v := views[m.cursor]
		if v.Kind == sequencer.KindSynth {
			out.WriteString("\n")
			out.WriteString(dimStyle.Render(fmt.Sprintf("notes (%s)", m.noteNames(v))))
			out.WriteString("\n")
			noteCursor := -1
			if m.focus == focusNotes {
				noteCursor = m.noteCursor
			}
			noteGlyphs := widgets.NoteGlyphs{
				Off:    m.Theme.Symbols.NoteOff,
				On:     m.Theme.Symbols.NoteOn,
				Cursor: m.Theme.Symbols.Cursor,
			}
			out.WriteString(widgets.RenderNoteGrid(
				sequencer.NoteGridSize, 16, v.SelectedNotes, noteCursor,
				noteGlyphs, activeStyle, dimStyle, warnStyle))
			out.WriteString("\n")
		}
	}

	out.WriteString("\n")
	if m.showHelp {
		out.WriteString(dimStyle.Render(widgets.RenderKeyHelp(helpSections())))
	} else {
		out.WriteString(dimStyle.Render("j/k:track  h/l:param  [/]:adjust  o:logic  m:mute  tab:notes  p:play  +/-:tempo  ?:help  q:quit"))
	}

	return out.String()
}

// renderKnobs renders four knob readouts starting at knobOrder[base].
func (m Model) renderKnobs(v sequencer.TrackView, track, base int, dim, cur lipgloss.Style) string {
	var parts []string
	for i := base; i < base+4; i++ {
		k := knobOrder[i]
		s := fmt.Sprintf("%s:%d", k.label, knobValue(v, k.param))
		if track == m.cursor && i == m.param && m.focus == focusRings {
			parts = append(parts, cur.Render(s))
		} else {
			parts = append(parts, dim.Render(s))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) noteNames(v sequencer.TrackView) string {
	scaleName, root := m.Manager.ScaleInfo()
	offs, ok := scale.Offsets(scaleName)
	if !ok {
		return ""
	}
	var names []string
	for _, idx := range v.SelectedNotes {
		names = append(names, scale.NoteName(scale.MapIndex(idx, offs, root)))
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, " ")
}

func helpSections() []widgets.KeySection {
	return []widgets.KeySection{
		{Title: "transport", Keys: []widgets.KeyBinding{
			{Key: "p", Desc: "play / stop"},
			{Key: "+/-", Desc: "tempo up / down"},
		}},
		{Title: "tracks", Keys: []widgets.KeyBinding{
			{Key: "j/k", Desc: "select track"},
			{Key: "h/l", Desc: "select ring parameter"},
			{Key: "[ ]", Desc: "adjust parameter"},
			{Key: "o", Desc: "cycle logic operator"},
			{Key: "m", Desc: "mute / unmute"},
		}},
		{Title: "notes", Keys: []widgets.KeyBinding{
			{Key: "tab", Desc: "focus note grid"},
			{Key: "hjkl", Desc: "move note cursor"},
			{Key: "space", Desc: "toggle note"},
		}},
	}
}
