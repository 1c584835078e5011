package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ringseq",
	Short: "Euclidean dual-ring step sequencer",
	Long: `ringseq is a polymetric step sequencer. Each track combines two
Euclidean rings with a logic operator and plays the result over MIDI.
Sessions can be edited live by multiple participants over websockets.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
