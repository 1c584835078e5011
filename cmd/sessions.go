package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ringseq/sequencer"
)

func init() {
	rootCmd.AddCommand(sessionsCmd)
}

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List saved sessions",
	Long:  `Lists session snapshots saved under the config directory, loadable with "serve --session".`,
	Run: func(cmd *cobra.Command, args []string) {
		names, err := sequencer.ListSessions()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(names) == 0 {
			fmt.Println("No saved sessions")
			return
		}
		for _, name := range names {
			fmt.Println(name)
		}
	},
}
