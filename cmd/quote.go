package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/crosslock/fusion-gateway/internal/relayer"
	"github.com/crosslock/fusion-gateway/internal/tokens"
	"github.com/crosslock/fusion-gateway/pkg/config"
	"github.com/crosslock/fusion-gateway/pkg/types"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Fetch a cross-chain swap quote",
	Long: `Fetches a price quote from the upstream swap network without
creating an order. Amounts are base units as decimal strings.

Example:
  fusion-gateway quote --amount 100000000 --src-chain 1 --dst-chain 137`,
	RunE: runQuote,
}

//nolint:gochecknoglobals // Cobra flag targets
var (
	quoteAmount   string
	quoteSrcChain int64
	quoteDstChain int64
	quoteSrcToken string
	quoteDstToken string
)

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(quoteCmd)

	quoteCmd.Flags().StringVarP(&quoteAmount, "amount", "a", "", "Amount in base units (decimal string)")
	quoteCmd.Flags().Int64Var(&quoteSrcChain, "src-chain", 0, "Source chain ID")
	quoteCmd.Flags().Int64Var(&quoteDstChain, "dst-chain", 0, "Destination chain ID")
	quoteCmd.Flags().StringVar(&quoteSrcToken, "src-token", "", "Source token address (default: USDC on the source chain)")
	quoteCmd.Flags().StringVar(&quoteDstToken, "dst-token", "", "Destination token address (default: USDC on the destination chain)")
}

func runQuote(cmd *cobra.Command, args []string) error {
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

	params := types.OrderParams{
		Amount:          quoteAmount,
		SrcChainID:      quoteSrcChain,
		DstChainID:      quoteDstChain,
		SrcTokenAddress: quoteSrcToken,
		DstTokenAddress: quoteDstToken,
	}
	if err := params.Validate(); err != nil {
		return err
	}

	resolved, err := tokens.ResolveOrderTokens(params, cfg.DefaultTokenLabel)
	if err != nil {
		return err
	}

	client := relayer.NewClient(&relayer.Config{
		BaseURL:   cfg.RelayerBaseURL,
		AuthToken: cfg.RelayerAuthToken,
		SourceTag: cfg.SourceTag,
		Timeout:   cfg.RelayerTimeout,
		Logger:    logger,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	quote, err := client.GetQuote(ctx, &relayer.QuoteRequest{
		Amount:          resolved.Amount,
		SrcChainID:      resolved.SrcChainID,
		DstChainID:      resolved.DstChainID,
		SrcTokenAddress: resolved.SrcTokenAddress,
		DstTokenAddress: resolved.DstTokenAddress,
	})
	if err != nil {
		return fmt.Errorf("fetch quote: %w", err)
	}

	fmt.Printf("=== Quote ===\n\n")
	fmt.Printf("Quote ID:      %s\n", quote.QuoteID)
	fmt.Printf("Preset:        %s\n", quote.PresetID)
	fmt.Printf("You pay:       %s (chain %d, %s)\n", quote.SrcTokenAmount, resolved.SrcChainID, resolved.SrcTokenAddress)
	fmt.Printf("You receive:   %s (chain %d, %s)\n", quote.DstTokenAmount, resolved.DstChainID, resolved.DstTokenAddress)
	fmt.Printf("Secrets:       %d\n", quote.RequiredSecretCount)

	return nil
}
