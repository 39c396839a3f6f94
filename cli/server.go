package cli

import (
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/zalando/go-keyring"

	"github.com/bmcmahen/panresponder/daemon"
	"github.com/bmcmahen/panresponder/server"
	"github.com/bmcmahen/panresponder/utils"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Server management commands",
	Long:  `Commands for managing the panresponder server.`,
}

var serverStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the panresponder server",
	Long:  `Starts the panresponder server.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		listenAddr := cmd.Flag("listen").Value.String()
		if listenAddr == "" {
			listenAddr = config.Listen
		}

		// GetBool cannot fail for defined flags
		enableCORS, _ := cmd.Flags().GetBool("cors")
		isDaemon, _ := cmd.Flags().GetBool("daemon")

		if !enableCORS {
			enableCORS = config.EnableCORS
		}

		if host, port, err := splitListenAddr(listenAddr); err == nil {
			if !utils.IsPortAvailable(host, port) {
				return fmt.Errorf("port %d is already in use on %s", port, host)
			}
		}

		if isDaemon && !daemon.IsChild() {
			_, err := daemon.Daemonize()
			if err != nil {
				return fmt.Errorf("failed to start daemon: %w", err)
			}

			fmt.Printf("Server daemon spawned, attempting to listen on %s\n", listenAddr)
			return nil
		}

		serverConfig := server.Config{
			EnableCORS:  enableCORS,
			HistorySize: config.HistorySize,
		}

		// a stored api key turns on bearer auth; no key means open server
		if key, err := keyring.Get(keyringService, keyringUser); err == nil {
			serverConfig.APIKey = key
			utils.Verbose("Using stored api key, bearer auth enabled")
		}

		return server.StartServer(listenAddr, serverConfig)
	},
}

var serverKillCmd = &cobra.Command{
	Use:   "kill",
	Short: "Stop the daemonized panresponder server",
	Long:  `Connects to the server and sends a shutdown command via JSON-RPC.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// GetString cannot fail for defined flags
		addr, _ := cmd.Flags().GetString("listen")
		if addr == "" {
			addr = config.Listen
		}

		apiKey, _ := keyring.Get(keyringService, keyringUser)
		err := daemon.KillServer(addr, apiKey)
		if err != nil {
			return err
		}

		fmt.Printf("Server shutdown command sent successfully\n")
		return nil
	},
}

// splitListenAddr turns "localhost:12700" or ":12700" into host and port
// for the availability probe
func splitListenAddr(addr string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, err
	}
	if host == "" || host == "localhost" {
		host = "127.0.0.1"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, err
	}
	return host, port, nil
}

func init() {
	rootCmd.AddCommand(serverCmd)

	// add server subcommands
	serverCmd.AddCommand(serverStartCmd)
	serverCmd.AddCommand(serverKillCmd)

	// server start flags
	serverStartCmd.Flags().String("listen", "", "Address to listen on (e.g., 'localhost:12700' or '0.0.0.0:13000')")
	serverStartCmd.Flags().Bool("cors", false, "Enable CORS support")
	serverStartCmd.Flags().BoolP("daemon", "d", false, "Run server in daemon mode (background)")

	// server kill flags
	serverKillCmd.Flags().String("listen", "", fmt.Sprintf("Address of server to kill (default: %s)", defaultServerAddress))
}
