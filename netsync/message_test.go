package netsync

import (
	"encoding/json"
	"testing"

	"ringseq/sequencer"
)

func TestToCommandMapping(t *testing.T) {
	var tests = []struct {
		msg  Message
		want sequencer.Command
	}{
		{
			Message{Type: TypeKnobChange, TrackID: "lead", Parameter: "outerPulses", Value: 5},
			sequencer.KnobChange{TrackID: "lead", Parameter: "outerPulses", Value: 5},
		},
		{
			Message{Type: TypeLogicChange, TrackID: "lead", Operator: "XOR"},
			sequencer.LogicChange{TrackID: "lead", Operator: "XOR"},
		},
		{
			Message{Type: TypeMixerChange, ChannelID: "kick", Parameter: "volume", Value: 0.5},
			sequencer.MixerChange{ChannelID: "kick", Parameter: "volume", Value: 0.5},
		},
		{
			Message{Type: TypeTransportChange, Action: "tempo", Tempo: 140},
			sequencer.TransportChange{Action: "tempo", Tempo: 140},
		},
		{
			Message{Type: TypeSynthParamChange, TrackID: "lead", Parameter: "cutoff", Value: 0.7},
			sequencer.SynthParamChange{TrackID: "lead", Parameter: "cutoff", Value: 0.7},
		},
		{
			Message{Type: TypeNoteSelectionChange, TrackID: "lead", NoteIndex: 0, Selected: false},
			sequencer.NoteSelectionChange{TrackID: "lead", NoteIndex: 0, Selected: false},
		},
		{
			Message{Type: TypeEffectsChange, Effect: "delay", Parameter: "mix", Value: 0.2},
			sequencer.EffectChange{Effect: "delay", Parameter: "mix", Value: 0.2},
		},
		{
			Message{Type: TypeEffectParamChange, Effect: "reverb", Parameter: "size", Value: 0.9},
			sequencer.EffectChange{Effect: "reverb", Parameter: "size", Value: 0.9},
		},
	}
	for _, tt := range tests {
		got, ok := ToCommand(tt.msg)
		if !ok {
			t.Errorf("%s: not recognized", tt.msg.Type)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: got %#v, want %#v", tt.msg.Type, got, tt.want)
		}
	}
}

func TestToCommandUnknownType(t *testing.T) {
	if _, ok := ToCommand(Message{Type: "VIBE_CHANGE"}); ok {
		t.Fatal("unknown type recognized")
	}
	if _, ok := ToCommand(Message{}); ok {
		t.Fatal("empty type recognized")
	}
}

func TestFromCommandRoundTrip(t *testing.T) {
	cmds := []sequencer.Command{
		sequencer.KnobChange{TrackID: "lead", Parameter: "innerSteps", Value: 12},
		sequencer.LogicChange{TrackID: "kick", Operator: "AND"},
		sequencer.MixerChange{ChannelID: "master", Parameter: "pan", Value: -0.5},
		sequencer.TransportChange{Action: "play"},
		sequencer.SynthParamChange{TrackID: "lead", Parameter: "attack", Value: 0.01},
		sequencer.NoteSelectionChange{TrackID: "lead", NoteIndex: 0, Selected: true},
		sequencer.EffectChange{Effect: "delay", Parameter: "time", Value: 0.25},
	}
	for _, cmd := range cmds {
		msg, ok := FromCommand(cmd)
		if !ok {
			t.Errorf("%T: no wire form", cmd)
			continue
		}
		back, ok := ToCommand(msg)
		if !ok {
			t.Errorf("%T: wire form %q not recognized back", cmd, msg.Type)
			continue
		}
		if back != cmd {
			t.Errorf("%T: round trip changed %#v into %#v", cmd, cmd, back)
		}
	}
}

func TestNoteSelectionZeroValuesSurviveWire(t *testing.T) {
	msg := Message{Type: TypeNoteSelectionChange, TrackID: "lead", NoteIndex: 0, Selected: false}
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatal(err)
	}
	var back Message
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.NoteIndex != 0 || back.Selected != false || back.TrackID != "lead" {
		t.Fatalf("deselect of index 0 mangled on the wire: %#v", back)
	}
}
