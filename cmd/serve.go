package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver

	"ringseq/config"
	"ringseq/debug"
	"ringseq/netsync"
	"ringseq/sequencer"
	"ringseq/theme"
	"ringseq/tui"
)

var (
	serveHeadless bool
	serveDebug    bool
	serveSession  string
	servePalette  string
)

func init() {
	serveCmd.Flags().BoolVar(&serveHeadless, "headless", false, "run without the TUI")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "write debug log to ~/.config/ringseq/debug.log")
	serveCmd.Flags().StringVar(&serveSession, "session", "", "load a saved session by name")
	serveCmd.Flags().StringVar(&servePalette, "palette", "", "path to a .gpl palette file")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the sequencer and sync server",
	Long:  `Runs the transport, the MIDI output, the sync server, and (unless --headless) the TUI.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := serve(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func serve() error {
	if serveDebug {
		debug.Enable()
		defer debug.Disable()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	opts := sequencer.Options{
		Tempo:    cfg.Tempo,
		RootNote: cfg.RootNote,
		Scale:    cfg.Scale,
	}
	for _, tc := range cfg.Tracks {
		opts.Tracks = append(opts.Tracks, sequencer.TrackSpec{
			ID:      tc.ID,
			Kind:    string(tc.Kind),
			Channel: tc.Channel,
			Note:    tc.Note,
		})
	}

	manager := sequencer.NewManager(opts)

	if serveSession != "" {
		state, err := sequencer.LoadSession(serveSession)
		if err != nil {
			return fmt.Errorf("load session %q: %w", serveSession, err)
		}
		manager.Apply(sequencer.StateUpdate{State: state})
	}

	synth := sequencer.NewMIDISynth(cfg.MIDIPort)
	defer synth.Close()
	manager.SetSynth(synth)

	manager.StartRuntime()
	defer manager.StopRuntime()

	if cfg.Sync.Enabled {
		srv := netsync.NewServer(cfg.Sync.ListenAddr, manager)
		go func() {
			if err := srv.ListenAndServe(); err != nil {
				debug.Log("sync", "server stopped: %v", err)
			}
		}()
	}

	if serveHeadless {
		fmt.Println("ringseq running headless, ctrl+c to quit")
		select {}
	}

	palette := theme.DefaultPalette()
	if servePalette != "" {
		palette, err = theme.LoadGPL(servePalette)
		if err != nil {
			return fmt.Errorf("load palette: %w", err)
		}
	}

	m := tui.NewModel(manager, theme.New(palette))
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
