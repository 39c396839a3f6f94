package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bmcmahen/panresponder/commands"
	"github.com/bmcmahen/panresponder/trace"
)

var replayCmd = &cobra.Command{
	Use:   "replay <trace.json>",
	Short: "Replay a recorded pointer trace",
	Long:  `Runs a recorded trace through the recognizers it defines, on a virtual clock, and prints every notification they fired.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := trace.Load(args[0])
		if err != nil {
			return err
		}

		if config.EnableMouse {
			for i := range tr.Recognizers {
				tr.Recognizers[i].EnableMouse = true
			}
		}

		response := commands.ReplayCommand(tr)
		if response.Status == "error" {
			return fmt.Errorf("%s", response.Error)
		}

		printJson(response.Data)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
}
