package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var gesturesCmd = &cobra.Command{
	Use:   "gestures",
	Short: "Query recent gestures from a running server",
	Long:  `Prints the server's most recent completed gestures, newest first. With --watch, subscribes and streams gesture notifications until interrupted.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serverAddr
		if addr == "" {
			addr = config.Listen
		}

		c, err := dialServer(addr)
		if err != nil {
			return err
		}
		defer c.Close()

		if !gesturesWatch {
			records, err := c.RecentGestures(gesturesLimit)
			if err != nil {
				return err
			}
			printJson(records)
			return nil
		}

		if err := c.Subscribe(); err != nil {
			return fmt.Errorf("failed to subscribe: %w", err)
		}

		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

		encoder := json.NewEncoder(os.Stdout)
		for {
			select {
			case n, ok := <-c.Notifications():
				if !ok {
					return nil
				}
				_ = encoder.Encode(n)
			case <-interrupt:
				return nil
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(gesturesCmd)
	gesturesCmd.Flags().StringVar(&serverAddr, "server", "", fmt.Sprintf("Address of the server to query (default: %s)", defaultServerAddress))
	gesturesCmd.Flags().IntVar(&gesturesLimit, "limit", 10, "Maximum number of gestures to return")
	gesturesCmd.Flags().BoolVar(&gesturesWatch, "watch", false, "Subscribe and stream gesture notifications")
}
