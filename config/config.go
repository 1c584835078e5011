package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// TrackKind identifies how a track resolves its trigger pitch.
type TrackKind string

const (
	TrackSynth TrackKind = "synth"
	TrackDrum  TrackKind = "drum"
)

// TrackConfig declares one track in the session layout.
type TrackConfig struct {
	ID      string    `json:"id"`
	Kind    TrackKind `json:"kind"`
	Channel uint8     `json:"channel"`        // MIDI output channel (1-16)
	Note    uint8     `json:"note,omitempty"` // fixed note for drum tracks
}

// SyncConfig stores the sync server settings.
type SyncConfig struct {
	ListenAddr string `json:"listenAddr,omitempty"`
	Enabled    bool   `json:"enabled"`
}

// Config is the main configuration structure.
type Config struct {
	MIDIPort string        `json:"midiPort,omitempty"` // empty = first available output
	Tempo    int           `json:"tempo,omitempty"`
	RootNote int           `json:"rootNote,omitempty"` // MIDI note, C3 = 48
	Scale    string        `json:"scale,omitempty"`
	Sync     SyncConfig    `json:"sync"`
	Tracks   []TrackConfig `json:"tracks,omitempty"`
}

// DefaultConfig returns a config with sensible defaults: two pitched tracks
// and a small drum section on channel 10.
func DefaultConfig() *Config {
	return &Config{
		Tempo:    120,
		RootNote: 48,
		Scale:    "major",
		Sync: SyncConfig{
			ListenAddr: ":8765",
			Enabled:    true,
		},
		Tracks: []TrackConfig{
			{ID: "lead", Kind: TrackSynth, Channel: 1},
			{ID: "bass", Kind: TrackSynth, Channel: 2},
			{ID: "kick", Kind: TrackDrum, Channel: 10, Note: 36},
			{ID: "snare", Kind: TrackDrum, Channel: 10, Note: 38},
			{ID: "hat", Kind: TrackDrum, Channel: 10, Note: 42},
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ringseq"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Tracks) == 0 {
		cfg.Tracks = DefaultConfig().Tracks
	}

	return &cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
