package cli

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zalando/go-keyring"
)

const keyringService = "panresponder"
const keyringUser = "server-api-key"

var apikeyCmd = &cobra.Command{
	Use:   "apikey",
	Short: "API key commands",
	Long:  `Commands for managing the server API key. When a key is stored, the server requires bearer authentication on all RPC requests.`,
}

var apikeyGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate and store a new API key",
	Long:  `Generates a random API key, stores it in the system keyring, and prints it.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		keyBytes := make([]byte, 32)
		if _, err := rand.Read(keyBytes); err != nil {
			return fmt.Errorf("failed to generate api key: %w", err)
		}
		key := hex.EncodeToString(keyBytes)

		if err := keyring.Set(keyringService, keyringUser, key); err != nil {
			return fmt.Errorf("failed to store api key: %w", err)
		}

		fmt.Println(key)
		return nil
	},
}

var apikeyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the stored API key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := keyring.Get(keyringService, keyringUser)
		if err != nil {
			return fmt.Errorf("no api key stored")
		}

		fmt.Println(key)
		return nil
	},
}

var apikeyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored API key",
	Long:  `Removes the API key from the system keyring. The server runs unauthenticated afterwards.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := keyring.Delete(keyringService, keyringUser); err != nil {
			fmt.Println("no api key stored")
			return nil
		}

		fmt.Println("API key removed.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(apikeyCmd)
	apikeyCmd.AddCommand(apikeyGenerateCmd, apikeyShowCmd, apikeyClearCmd)
}
