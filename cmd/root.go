package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "fusion-gateway",
	Short: "Non-custodial cross-chain swap gateway",
	Long: `Gateway for hash-locked cross-chain swaps. Orders are prepared
server-side, authorized by a wallet signature over a deterministic
challenge message, and relayed to the upstream swap network. Funds
never touch the gateway; escrows release against revealed secrets.

Run 'serve' for the HTTP gateway, or use the swap/quote/status
commands for a one-off swap signed with a local private key.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	// Flags can be added here if needed
}
