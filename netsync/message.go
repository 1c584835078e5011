package netsync

import (
	"ringseq/sequencer"
)

// Message types on the sync channel.
const (
	TypeInitState           = "INIT_STATE"
	TypeStateUpdate         = "STATE_UPDATE"
	TypeKnobChange          = "KNOB_CHANGE"
	TypeLogicChange         = "LOGIC_CHANGE"
	TypeMixerChange         = "MIXER_CHANGE"
	TypeTransportChange     = "TRANSPORT_CHANGE"
	TypeSynthParamChange    = "SYNTH_PARAM_CHANGE"
	TypeNoteSelectionChange = "NOTE_SELECTION_CHANGE"
	TypeEffectsChange       = "EFFECTS_CHANGE"
	TypeEffectParamChange   = "EFFECT_PARAM_CHANGE"
)

// Message is the typed JSON envelope exchanged on the sync channel. One
// struct covers every type; unused fields stay empty on the wire.
type Message struct {
	Type      string                  `json:"type"`
	State     *sequencer.SessionState `json:"state,omitempty"`
	TrackID   string                  `json:"trackId,omitempty"`
	ChannelID string                  `json:"channelId,omitempty"`
	Parameter string                  `json:"parameter,omitempty"`
	Value     float64                 `json:"value,omitempty"`
	Operator  string                  `json:"operator,omitempty"`
	Action    string                  `json:"action,omitempty"`
	Tempo     int                     `json:"tempo,omitempty"`
	Effect    string                  `json:"effect,omitempty"`
	NoteIndex int                     `json:"noteIndex"` // no omitempty: index 0 is valid
	Selected  bool                    `json:"selected"`
}

// ToCommand maps a recognized message to an engine command. ok is false for
// unknown types, which callers log and ignore.
func ToCommand(msg Message) (cmd sequencer.Command, ok bool) {
	switch msg.Type {
	case TypeInitState, TypeStateUpdate:
		return sequencer.StateUpdate{State: msg.State}, true
	case TypeKnobChange:
		return sequencer.KnobChange{TrackID: msg.TrackID, Parameter: msg.Parameter, Value: int(msg.Value)}, true
	case TypeLogicChange:
		return sequencer.LogicChange{TrackID: msg.TrackID, Operator: msg.Operator}, true
	case TypeMixerChange:
		return sequencer.MixerChange{ChannelID: msg.ChannelID, Parameter: msg.Parameter, Value: msg.Value}, true
	case TypeTransportChange:
		return sequencer.TransportChange{Action: msg.Action, Tempo: msg.Tempo}, true
	case TypeSynthParamChange:
		return sequencer.SynthParamChange{TrackID: msg.TrackID, Parameter: msg.Parameter, Value: msg.Value}, true
	case TypeNoteSelectionChange:
		return sequencer.NoteSelectionChange{TrackID: msg.TrackID, NoteIndex: msg.NoteIndex, Selected: msg.Selected}, true
	case TypeEffectsChange, TypeEffectParamChange:
		return sequencer.EffectChange{Effect: msg.Effect, Parameter: msg.Parameter, Value: msg.Value}, true
	}
	return nil, false
}

// FromCommand serializes an engine command into its wire envelope.
func FromCommand(cmd sequencer.Command) (msg Message, ok bool) {
	switch c := cmd.(type) {
	case sequencer.StateUpdate:
		return Message{Type: TypeStateUpdate, State: c.State}, true
	case sequencer.KnobChange:
		return Message{Type: TypeKnobChange, TrackID: c.TrackID, Parameter: c.Parameter, Value: float64(c.Value)}, true
	case sequencer.LogicChange:
		return Message{Type: TypeLogicChange, TrackID: c.TrackID, Operator: c.Operator}, true
	case sequencer.MixerChange:
		return Message{Type: TypeMixerChange, ChannelID: c.ChannelID, Parameter: c.Parameter, Value: c.Value}, true
	case sequencer.TransportChange:
		return Message{Type: TypeTransportChange, Action: c.Action, Tempo: c.Tempo}, true
	case sequencer.SynthParamChange:
		return Message{Type: TypeSynthParamChange, TrackID: c.TrackID, Parameter: c.Parameter, Value: c.Value}, true
	case sequencer.NoteSelectionChange:
		return Message{Type: TypeNoteSelectionChange, TrackID: c.TrackID, NoteIndex: c.NoteIndex, Selected: c.Selected}, true
	case sequencer.EffectChange:
		return Message{Type: TypeEffectParamChange, Effect: c.Effect, Parameter: c.Parameter, Value: c.Value}, true
	}
	return Message{}, false
}
