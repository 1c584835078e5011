package sequencer

import (
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"

	"ringseq/debug"
)

// Trigger is one fire-and-forget note event for the synthesizer
// collaborator. Stopping the transport only prevents future ticks; an
// issued trigger is never recalled.
type Trigger struct {
	Notes    []int // MIDI notes; drum tracks carry their fixed note
	Velocity uint8
	Channel  uint8 // MIDI channel 1-16
	Dur      time.Duration
	Time     time.Time
}

// Synth receives triggers from the transport. Implementations must not
// block the caller.
type Synth interface {
	Trigger(t Trigger)
}

// NopSynth discards triggers. Used headless and in tests.
type NopSynth struct{}

func (NopSynth) Trigger(Trigger) {}

// MIDISynth sends triggers to a MIDI output port, opened lazily by name.
// An empty port name means the first available output.
type MIDISynth struct {
	portName string

	mu   sync.Mutex
	send func(gomidi.Message) error
}

// NewMIDISynth creates a MIDI synth for the named output port.
func NewMIDISynth(portName string) *MIDISynth {
	return &MIDISynth{portName: portName}
}

// sender returns the open port sender, opening it on first use.
func (s *MIDISynth) sender() func(gomidi.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.send != nil {
		return s.send
	}

	for _, port := range gomidi.GetOutPorts() {
		if s.portName != "" && port.String() != s.portName {
			continue
		}
		send, err := gomidi.SendTo(port)
		if err != nil {
			debug.Log("midi", "open %s: %v", port.String(), err)
			return nil
		}
		debug.Log("midi", "opened output %s", port.String())
		s.send = send
		return send
	}
	return nil
}

// Trigger sends note on/off pairs. The note off is scheduled on its own
// goroutine so the transport never waits on it.
func (s *MIDISynth) Trigger(t Trigger) {
	send := s.sender()
	if send == nil {
		return
	}

	ch := t.Channel
	if ch > 0 {
		ch--
	}
	for _, n := range t.Notes {
		if n < 0 || n > 127 {
			continue
		}
		note := uint8(n)
		send(gomidi.NoteOn(ch, note, t.Velocity))
		go func(note uint8) {
			time.Sleep(t.Dur)
			send(gomidi.NoteOff(ch, note))
		}(note)
	}
}

// Close releases the output port. Safe to call without an open port.
func (s *MIDISynth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.send = nil
}
