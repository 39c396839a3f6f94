package cli

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/zalando/go-keyring"

	"github.com/bmcmahen/panresponder/client"
	"github.com/bmcmahen/panresponder/trace"
	"github.com/bmcmahen/panresponder/types"
	"github.com/bmcmahen/panresponder/utils"
)

var feedCmd = &cobra.Command{
	Use:   "feed <trace.json>",
	Short: "Feed a recorded trace to a running server",
	Long:  `Creates the trace's recognizers on the server, streams its pointer actions with their recorded pacing, and prints the gesture notifications the server pushes back.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := trace.Load(args[0])
		if err != nil {
			return err
		}

		addr := serverAddr
		if addr == "" {
			addr = config.Listen
		}

		c, err := dialServer(addr)
		if err != nil {
			return err
		}
		defer c.Close()

		if config.EnableMouse {
			for i := range tr.Recognizers {
				tr.Recognizers[i].EnableMouse = true
			}
		}

		var created []string
		defer func() {
			for _, id := range created {
				if err := c.RemoveEngine(id); err != nil {
					utils.Verbose("Failed to remove engine %s: %v", id, err)
				}
			}
		}()

		for _, spec := range tr.Recognizers {
			id, err := c.CreateEngine(spec)
			if err != nil {
				return fmt.Errorf("failed to create engine %q: %w", spec.ID, err)
			}
			created = append(created, id)
		}

		if err := c.Subscribe(); err != nil {
			return fmt.Errorf("failed to subscribe: %w", err)
		}

		done := make(chan struct{})
		go func() {
			defer close(done)
			encoder := json.NewEncoder(os.Stdout)
			for n := range c.Notifications() {
				_ = encoder.Encode(n)
			}
		}()

		if err := feedActions(c, tr.Actions); err != nil {
			return err
		}

		// give in-flight notifications a moment to arrive
		time.Sleep(200 * time.Millisecond)
		c.Close()
		<-done
		return nil
	},
}

// feedActions streams the trace's actions with their recorded pacing.
// The server stamps arrival times, so kinematics reflect real delivery.
func feedActions(c *client.Client, actions []types.PointerAction) error {
	var x, y float64
	down := false

	for _, action := range actions {
		if action.Duration > 0 {
			time.Sleep(time.Duration(action.Duration) * time.Millisecond)
		}

		switch action.Type {
		case types.ActionPause:
			continue
		case types.ActionPointerMove:
			x, y = action.X, action.Y
			if !down {
				continue
			}
		case types.ActionPointerDown:
			down = true
		case types.ActionPointerUp:
			down = false
		}

		ev := types.PointerEvent{X: x, Y: y}
		switch action.Type {
		case types.ActionPointerDown:
			ev.Type = types.PointerDown
		case types.ActionPointerMove:
			ev.Type = types.PointerMove
		case types.ActionPointerUp:
			ev.Type = types.PointerUp
		}

		if _, err := c.Pointer(ev); err != nil {
			return fmt.Errorf("failed to send pointer event: %w", err)
		}
	}
	return nil
}

// dialServer parses a host:port address and verifies the server answers.
// A stored api key is sent as the bearer key, matching the server side.
func dialServer(addr string) (*client.Client, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid server address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid server port %q: %w", portStr, err)
	}

	c := client.NewClient(host, port)
	if key, err := keyring.Get(keyringService, keyringUser); err == nil {
		c.SetAPIKey(key)
	}
	if err := c.HealthCheck(); err != nil {
		return nil, fmt.Errorf("server is not running on %s: %w", addr, err)
	}
	return c, nil
}

func init() {
	rootCmd.AddCommand(feedCmd)
	feedCmd.Flags().StringVar(&serverAddr, "server", "", fmt.Sprintf("Address of the server to feed (default: %s)", defaultServerAddress))
}
