package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/crosslock/fusion-gateway/internal/tokens"
	"github.com/crosslock/fusion-gateway/pkg/cache"
	"github.com/crosslock/fusion-gateway/pkg/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var tokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "List supported chains and token defaults",
	Long: `Without flags, prints the built-in default token address per
supported chain. With --chain, fetches the full token listing for that
chain from the upstream network.`,
	RunE: runTokens,
}

//nolint:gochecknoglobals // Cobra flag targets
var tokensChain int64

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().Int64VarP(&tokensChain, "chain", "c", 0, "Fetch the upstream token listing for this chain ID")
}

func runTokens(cmd *cobra.Command, args []string) error {
	// Load .env
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: .env file not found\n")
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := config.NewLogger()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if tokensChain == 0 {
		fmt.Printf("=== Default %s Addresses ===\n\n", cfg.DefaultTokenLabel)
		for _, chainID := range tokens.SupportedChains() {
			address, err := tokens.DefaultAddress(chainID, cfg.DefaultTokenLabel)
			if err != nil {
				continue
			}
			fmt.Printf("Chain %-6d %s\n", chainID, address)
		}
		return nil
	}

	tokenCache, err := cache.NewRistrettoCache(&cache.RistrettoConfig{
		NumCounters: 1000,
		MaxCost:     100,
		BufferItems: 64,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("create cache: %w", err)
	}
	defer tokenCache.Close()

	client := tokens.NewCachedClient(
		tokens.NewClient(cfg.RelayerBaseURL, cfg.RelayerAuthToken),
		tokenCache,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	list, err := client.Tokens(ctx, tokensChain)
	if err != nil {
		return fmt.Errorf("fetch tokens for chain %d: %w", tokensChain, err)
	}

	fmt.Printf("=== Tokens on Chain %d ===\n\n", tokensChain)
	for _, token := range list {
		fmt.Printf("%-10s %s (%d decimals)\n", token.Symbol, token.Address, token.Decimals)
	}
	fmt.Printf("\n%d tokens\n", len(list))

	return nil
}
