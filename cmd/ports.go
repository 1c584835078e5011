package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

func init() {
	rootCmd.AddCommand(portsCmd)
}

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List MIDI output ports",
	Long:  `Lists the MIDI output ports the sequencer can send to.`,
	Run: func(cmd *cobra.Command, args []string) {
		listPorts()
	},
}

func listPorts() {
	// Port enumeration can hang on a wedged MIDI backend, so give it a
	// deadline instead of trusting the driver.
	ch := make(chan []drivers.Out, 1)
	go func() {
		ch <- gomidi.GetOutPorts()
	}()

	select {
	case outs := <-ch:
		if len(outs) == 0 {
			fmt.Println("No MIDI output ports found")
			return
		}
		fmt.Println("MIDI output ports:")
		for i, p := range outs {
			fmt.Printf("  %d: %s\n", i, p.String())
		}
	case <-time.After(3 * time.Second):
		fmt.Println("Timed out enumerating MIDI ports")
	}
}
