package sequencer

import (
	"strings"

	"ringseq/debug"
	"ringseq/pattern"
)

// Command is a typed state mutation. All mutations — local input and remote
// sync messages alike — flow through commands consumed by the manager's run
// loop, so a tick never observes a half-applied change.
type Command interface {
	apply(m *Manager)
}

// Knob parameter tokens.
const (
	ParamOuterSteps       = "outerSteps"
	ParamOuterPulses      = "outerPulses"
	ParamOuterRotation    = "outerRotation"
	ParamOuterProbability = "outerProbability"
	ParamInnerSteps       = "innerSteps"
	ParamInnerPulses      = "innerPulses"
	ParamInnerRotation    = "innerRotation"
	ParamInnerProbability = "innerProbability"
)

// Transport actions.
const (
	ActionPlay  = "play"
	ActionStop  = "stop"
	ActionTempo = "tempo"
)

// KnobChange sets one ring parameter on a track. Values are clamped here,
// at the mutation boundary, never inside the pure generator.
type KnobChange struct {
	TrackID   string
	Parameter string
	Value     int
}

func (c KnobChange) apply(m *Manager) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := m.byID[c.TrackID]
	if t == nil {
		debug.Log("cmd", "knob change for unknown track %q", c.TrackID)
		return
	}

	ring := &t.Outer
	if strings.HasPrefix(c.Parameter, "inner") {
		ring = &t.Inner
	}

	switch c.Parameter {
	case ParamOuterSteps, ParamInnerSteps:
		ring.SetSteps(clamp(c.Value, 1, pattern.MaxSteps))
		if ring.Pulses > ring.Steps {
			ring.SetPulses(ring.Steps)
		}
	case ParamOuterPulses, ParamInnerPulses:
		ring.SetPulses(clamp(c.Value, 0, ring.Steps))
	case ParamOuterRotation, ParamInnerRotation:
		ring.Rotation = clamp(c.Value, 0, pattern.MaxRotation)
	case ParamOuterProbability, ParamInnerProbability:
		ring.Probability = clamp(c.Value, 0, 100)
	default:
		debug.Log("cmd", "unknown knob parameter %q", c.Parameter)
	}
}

// LogicChange sets a track's ring-combination operator. The token is stored
// as-is; evaluation decides what an unrecognized token means.
type LogicChange struct {
	TrackID  string
	Operator string
}

func (c LogicChange) apply(m *Manager) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := m.byID[c.TrackID]
	if t == nil {
		debug.Log("cmd", "logic change for unknown track %q", c.TrackID)
		return
	}
	t.Logic = c.Operator
}

// NoteSelectionChange toggles one scale-degree index on a track.
type NoteSelectionChange struct {
	TrackID   string
	NoteIndex int
	Selected  bool
}

func (c NoteSelectionChange) apply(m *Manager) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := m.byID[c.TrackID]
	if t == nil {
		debug.Log("cmd", "note selection for unknown track %q", c.TrackID)
		return
	}
	if c.NoteIndex < 0 || c.NoteIndex >= NoteGridSize {
		debug.Log("cmd", "note index %d out of range", c.NoteIndex)
		return
	}
	t.SetNote(c.NoteIndex, c.Selected)
}

// TransportChange starts or stops playback, or changes tempo. The global
// step counter survives stop and resumes from its last value.
type TransportChange struct {
	Action string
	Tempo  int
}

func (c TransportChange) apply(m *Manager) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch c.Action {
	case ActionPlay:
		m.playing = true
	case ActionStop:
		m.playing = false
	case ActionTempo:
		m.tempo = clamp(c.Tempo, 20, 300)
	default:
		debug.Log("cmd", "unknown transport action %q", c.Action)
	}
}

// MixerChange sets one parameter on a mixer channel.
type MixerChange struct {
	ChannelID string
	Parameter string
	Value     float64
}

func (c MixerChange) apply(m *Manager) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := m.mixer[c.ChannelID]
	if ch == nil {
		debug.Log("cmd", "mixer change for unknown channel %q", c.ChannelID)
		return
	}
	switch c.Parameter {
	case "volume":
		ch.Volume = clampF(c.Value, 0, 1)
	case "pan":
		ch.Pan = clampF(c.Value, -1, 1)
	case "muted":
		ch.Muted = c.Value != 0
	default:
		debug.Log("cmd", "unknown mixer parameter %q", c.Parameter)
	}
}

// SynthParamChange sets one replicated synth parameter on a track. The
// engine does no DSP; the values are carried for the synthesizer collaborator
// and for replication.
type SynthParamChange struct {
	TrackID   string
	Parameter string
	Value     float64
}

func (c SynthParamChange) apply(m *Manager) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.byID[c.TrackID] == nil {
		debug.Log("cmd", "synth param for unknown track %q", c.TrackID)
		return
	}
	params := m.synthParams[c.TrackID]
	if params == nil {
		params = make(map[string]float64)
		m.synthParams[c.TrackID] = params
	}
	params[c.Parameter] = c.Value
}

// EffectChange sets one replicated effect parameter.
type EffectChange struct {
	Effect    string
	Parameter string
	Value     float64
}

func (c EffectChange) apply(m *Manager) {
	m.mu.Lock()
	defer m.mu.Unlock()

	params := m.effects[c.Effect]
	if params == nil {
		params = make(map[string]float64)
		m.effects[c.Effect] = params
	}
	params[c.Parameter] = c.Value
}

// StateUpdate replaces the whole session from a snapshot, applied
// unconditionally as the new baseline.
type StateUpdate struct {
	State *SessionState
}

func (c StateUpdate) apply(m *Manager) {
	if c.State == nil {
		debug.Log("cmd", "state update with no state")
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.applySnapshotLocked(c.State)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
