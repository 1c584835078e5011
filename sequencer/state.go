package sequencer

import (
	"ringseq/pattern"
)

// The trigger grid is always 16 positions, independent of any ring's own
// length. Shorter rings phase against it (polymeters).
const GridSteps = 16

// SessionState is the full replication snapshot exchanged on sync connect.
// It is applied unconditionally as a baseline and never persisted by the
// sync layer itself (projects are saved separately).
type SessionState struct {
	Playing     bool                          `json:"playing"`
	Tempo       int                           `json:"tempo"`
	Tracks      map[string]*TrackState        `json:"tracks"`
	Mixer       map[string]*MixerChannel      `json:"mixer"`
	SynthParams map[string]map[string]float64 `json:"synthParams"`
	Effects     map[string]map[string]float64 `json:"effects"`
}

// TrackState is the replicated slice of a track: the two rings, the logic
// operator, and the selected scale-degree indices (ascending).
type TrackState struct {
	Outer         pattern.Pattern `json:"outer"`
	Inner         pattern.Pattern `json:"inner"`
	Logic         string          `json:"logicOperator"`
	SelectedNotes []int           `json:"selectedNotes"`
}

// MixerChannel holds replicated mixer parameters for one channel.
type MixerChannel struct {
	Volume float64 `json:"volume"` // 0-1, scales trigger velocity
	Pan    float64 `json:"pan"`    // -1..1
	Muted  bool    `json:"muted"`
}

// NewMixerChannel returns a channel at sensible defaults.
func NewMixerChannel() *MixerChannel {
	return &MixerChannel{Volume: 0.8}
}
