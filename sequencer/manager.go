package sequencer

import (
	"sync"
	"time"

	"github.com/bep/debounce"

	"ringseq/debug"
	"ringseq/pattern"
	"ringseq/scale"
)

// NoteGridSize is the number of scale-degree positions a track can select.
const NoteGridSize = 64

// TrackSpec declares one track in the session layout.
type TrackSpec struct {
	ID      string
	Kind    string // "synth" or "drum"
	Channel uint8  // MIDI output channel (1-16)
	Note    uint8  // fixed note for drum tracks
}

// Options configures a new Manager.
type Options struct {
	Tempo    int
	RootNote int    // MIDI note, C3 = 48
	Scale    string // name from the scale table
	Tracks   []TrackSpec
}

type queued struct {
	cmd   Command
	local bool
}

// Manager owns all session state and is the only driver of note triggering.
// The run loop consumes one inbound channel of typed commands and the
// transport ticker, so a tick always sees fully-applied state.
type Manager struct {
	mu sync.RWMutex

	tracks []*Track
	byID   map[string]*Track

	playing    bool
	tempo      int
	globalStep int // advances modulo GridSteps, survives stop
	lastTick   int64

	mixer       map[string]*MixerChannel
	synthParams map[string]map[string]float64
	effects     map[string]map[string]float64

	rootNote     int
	scaleName    string
	scaleOffsets []int

	synth   Synth
	onLocal func(Command)

	cmds     chan queued
	stopChan chan struct{}

	autosave func(func())

	// Notify TUI of updates
	UpdateChan chan struct{}
}

// NewManager creates a manager with the given session layout. Tracks start
// with two empty 16-step rings and are never destroyed during a session.
func NewManager(opts Options) *Manager {
	m := &Manager{
		byID:        make(map[string]*Track),
		tempo:       120,
		mixer:       make(map[string]*MixerChannel),
		synthParams: make(map[string]map[string]float64),
		effects:     make(map[string]map[string]float64),
		rootNote:    48,
		scaleName:   "major",
		autosave:    debounce.New(2 * time.Second),
		UpdateChan:  make(chan struct{}, 1),
	}
	if opts.Tempo != 0 {
		m.tempo = clamp(opts.Tempo, 20, 300)
	}
	if opts.RootNote != 0 {
		m.rootNote = opts.RootNote
	}
	if opts.Scale != "" {
		m.scaleName = opts.Scale
	}

	offs, ok := scale.Offsets(m.scaleName)
	if !ok {
		debug.Log("scale", "unknown scale %q, using major", m.scaleName)
		offs, _ = scale.Offsets("major")
	}
	m.scaleOffsets = offs

	for _, spec := range opts.Tracks {
		t := NewTrack(spec.ID, spec.Kind, spec.Channel, spec.Note)
		m.tracks = append(m.tracks, t)
		m.byID[t.ID] = t
		m.mixer[t.ID] = NewMixerChannel()
	}
	m.mixer["master"] = NewMixerChannel()

	return m
}

// StartRuntime starts the run loop (called once at startup).
func (m *Manager) StartRuntime() {
	m.cmds = make(chan queued, 64)
	m.stopChan = make(chan struct{})
	go m.runLoop()
}

// StopRuntime stops the run loop. In-flight triggers are not recalled.
func (m *Manager) StopRuntime() {
	close(m.stopChan)
}

func (m *Manager) runLoop() {
	ticker := time.NewTicker(m.stepInterval())
	defer ticker.Stop()

	for {
		select {
		case <-m.stopChan:
			return
		case q := <-m.cmds:
			q.cmd.apply(m)
			if _, ok := q.cmd.(TransportChange); ok {
				ticker.Reset(m.stepInterval())
			}
			if q.local && m.onLocal != nil {
				m.onLocal(q.cmd)
			}
			m.scheduleAutosave()
			m.notifyUpdate()
		case now := <-ticker.C:
			m.Tick(now.UnixMilli())
		}
	}
}

// stepInterval is the duration of one sixteenth note at the current tempo.
func (m *Manager) stepInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return time.Minute / time.Duration(m.tempo*4)
}

// Dispatch queues a locally-originated command. The run loop applies it and
// rebroadcasts it to sync peers.
func (m *Manager) Dispatch(cmd Command) {
	m.enqueue(cmd, true)
}

// ApplyRemote queues a command received from a sync peer. It is applied but
// not re-announced through the local broadcast hook.
func (m *Manager) ApplyRemote(cmd Command) {
	m.enqueue(cmd, false)
}

func (m *Manager) enqueue(cmd Command, local bool) {
	if m.cmds == nil {
		// Runtime not started (setup, tests): apply synchronously.
		cmd.apply(m)
		return
	}
	select {
	case m.cmds <- queued{cmd, local}:
	default:
		debug.Log("cmd", "command queue full, dropped %T", cmd)
	}
}

// Apply executes a command synchronously. Runtime traffic goes through
// Dispatch/ApplyRemote; Apply is for setup before the run loop starts.
func (m *Manager) Apply(cmd Command) {
	cmd.apply(m)
}

// Tick advances the transport by one sixteenth-note step: evaluate every
// track on the 16-step global grid, emit triggers, advance the counter.
// Ticks carrying an already-seen timestamp are ignored.
func (m *Manager) Tick(ts int64) {
	m.mu.Lock()
	if !m.playing {
		m.mu.Unlock()
		return
	}
	if ts == m.lastTick {
		debug.Log("tick", "duplicate tick at %d ignored", ts)
		m.mu.Unlock()
		return
	}
	m.lastTick = ts

	step := m.globalStep % GridSteps
	now := time.UnixMilli(ts)
	dur := time.Minute / time.Duration(m.tempo*4)

	var out []Trigger
	for _, t := range m.tracks {
		ch := m.mixer[t.ID]
		if ch != nil && ch.Muted {
			continue
		}
		if !t.GetStepValue(step) {
			continue
		}

		vel := uint8(100)
		if ch != nil {
			vel = uint8(ch.Volume * 127)
		}

		var notes []int
		switch t.Kind {
		case KindDrum:
			notes = []int{int(t.Note)}
		default:
			idx, ok := t.NextNote()
			if !ok {
				continue // nothing selected: silent trigger
			}
			notes = []int{scale.MapIndex(idx, m.scaleOffsets, m.rootNote)}
		}

		out = append(out, Trigger{
			Notes:    notes,
			Velocity: vel,
			Channel:  t.Channel,
			Dur:      dur,
			Time:     now,
		})
	}

	m.globalStep = (m.globalStep + 1) % GridSteps
	synth := m.synth
	m.mu.Unlock()

	// Fire-and-forget, after state is settled.
	if synth != nil {
		for _, tr := range out {
			synth.Trigger(tr)
		}
	}
	m.notifyUpdate()
}

// SetSynth sets the synthesizer collaborator.
func (m *Manager) SetSynth(s Synth) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.synth = s
}

// SetBroadcast sets the hook invoked for every locally-applied command.
func (m *Manager) SetBroadcast(fn func(Command)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onLocal = fn
}

// GetState returns the current transport state.
func (m *Manager) GetState() (step int, playing bool, tempo int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.globalStep % GridSteps, m.playing, m.tempo
}

// ScaleInfo returns the session scale name and root note.
func (m *Manager) ScaleInfo() (name string, root int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.scaleName, m.rootNote
}

// TrackView is the read-only slice of a track handed to presentation code.
type TrackView struct {
	ID            string
	Kind          string
	Outer         pattern.Pattern
	Inner         pattern.Pattern
	OuterCells    []bool
	InnerCells    []bool
	OuterPhase    int
	InnerPhase    int
	Logic         string
	SelectedNotes []int
	Muted         bool
}

// TrackViews snapshots every track for rendering.
func (m *Manager) TrackViews() []TrackView {
	m.mu.RLock()
	defer m.mu.RUnlock()

	views := make([]TrackView, 0, len(m.tracks))
	for _, t := range m.tracks {
		muted := false
		if ch := m.mixer[t.ID]; ch != nil {
			muted = ch.Muted
		}
		views = append(views, TrackView{
			ID:            t.ID,
			Kind:          t.Kind,
			Outer:         t.Outer,
			Inner:         t.Inner,
			OuterCells:    t.Outer.Cells(),
			InnerCells:    t.Inner.Cells(),
			OuterPhase:    t.OuterPhase,
			InnerPhase:    t.InnerPhase,
			Logic:         t.Logic,
			SelectedNotes: append([]int(nil), t.SelectedNotes...),
			Muted:         muted,
		})
	}
	return views
}

// TrackIDs returns the track ids in layout order.
func (m *Manager) TrackIDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, len(m.tracks))
	for i, t := range m.tracks {
		ids[i] = t.ID
	}
	return ids
}

// Snapshot deep-copies the replicated session state.
func (m *Manager) Snapshot() *SessionState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() *SessionState {
	s := &SessionState{
		Playing:     m.playing,
		Tempo:       m.tempo,
		Tracks:      make(map[string]*TrackState, len(m.tracks)),
		Mixer:       make(map[string]*MixerChannel, len(m.mixer)),
		SynthParams: make(map[string]map[string]float64, len(m.synthParams)),
		Effects:     make(map[string]map[string]float64, len(m.effects)),
	}
	for _, t := range m.tracks {
		s.Tracks[t.ID] = t.Snapshot()
	}
	for id, ch := range m.mixer {
		c := *ch
		s.Mixer[id] = &c
	}
	for id, params := range m.synthParams {
		s.SynthParams[id] = copyParams(params)
	}
	for id, params := range m.effects {
		s.Effects[id] = copyParams(params)
	}
	return s
}

func (m *Manager) applySnapshotLocked(s *SessionState) {
	m.playing = s.Playing
	if s.Tempo != 0 {
		m.tempo = clamp(s.Tempo, 20, 300)
	}
	for id, ts := range s.Tracks {
		t := m.byID[id]
		if t == nil {
			debug.Log("sync", "snapshot names unknown track %q", id)
			continue
		}
		t.Apply(ts)
	}
	for id, ch := range s.Mixer {
		mc := m.mixer[id]
		if mc == nil || ch == nil {
			debug.Log("sync", "snapshot names unknown mixer channel %q", id)
			continue
		}
		*mc = *ch
	}
	m.synthParams = make(map[string]map[string]float64, len(s.SynthParams))
	for id, params := range s.SynthParams {
		m.synthParams[id] = copyParams(params)
	}
	m.effects = make(map[string]map[string]float64, len(s.Effects))
	for id, params := range s.Effects {
		m.effects[id] = copyParams(params)
	}
}

func copyParams(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// notifyUpdate pokes the TUI without blocking.
func (m *Manager) notifyUpdate() {
	select {
	case m.UpdateChan <- struct{}{}:
	default:
	}
}

// scheduleAutosave writes the session to the autosave slot once mutations
// settle for a couple of seconds.
func (m *Manager) scheduleAutosave() {
	m.autosave(func() {
		if err := SaveSession(AutosaveName, m.Snapshot()); err != nil {
			debug.Log("save", "autosave failed: %v", err)
		}
	})
}
