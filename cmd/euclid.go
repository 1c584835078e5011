package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"ringseq/pattern"
)

var euclidRotation int

func init() {
	euclidCmd.Flags().IntVarP(&euclidRotation, "rotation", "r", 0, "rotate the pattern left")
	rootCmd.AddCommand(euclidCmd)
}

var euclidCmd = &cobra.Command{
	Use:   "euclid <pulses> <steps>",
	Short: "Print a Euclidean pattern",
	Long:  `Prints the Euclidean distribution of pulses over steps, e.g. "ringseq euclid 3 8".`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		pulses, err := strconv.Atoi(args[0])
		if err != nil || pulses < 0 {
			fmt.Println("pulses must be a non-negative number")
			return
		}
		steps, err := strconv.Atoi(args[1])
		if err != nil || steps < 1 || steps > pattern.MaxSteps {
			fmt.Printf("steps must be 1-%d\n", pattern.MaxSteps)
			return
		}
		if pulses > steps {
			fmt.Println("pulses must not exceed steps")
			return
		}

		cells := pattern.Generate(steps, pulses)
		if euclidRotation != 0 {
			cells = pattern.Rotate(cells, euclidRotation)
		}

		var out strings.Builder
		for _, c := range cells {
			if c {
				out.WriteString("x ")
			} else {
				out.WriteString(". ")
			}
		}
		fmt.Printf("E(%d,%d): %s\n", pulses, steps, strings.TrimSpace(out.String()))
	},
}
