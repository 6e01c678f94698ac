package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/crosslock/fusion-gateway/internal/auth"
	"github.com/crosslock/fusion-gateway/internal/monitor"
	"github.com/crosslock/fusion-gateway/internal/prepared"
	"github.com/crosslock/fusion-gateway/internal/relayer"
	"github.com/crosslock/fusion-gateway/internal/storage"
	"github.com/crosslock/fusion-gateway/internal/swap"
	"github.com/crosslock/fusion-gateway/pkg/config"
	"github.com/crosslock/fusion-gateway/pkg/types"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var swapCmd = &cobra.Command{
	Use:   "swap",
	Short: "Perform a cross-chain swap signed with a local key",
	Long: `Runs the full swap flow against the upstream network:
1. Quote the swap and create a hash-locked order
2. Sign the authorization message with WALLET_PRIVATE_KEY from .env
3. Submit the signed order
4. With --watch, poll until the swap completes and reveal secrets

The private key signs an authorization message only. It is never sent
anywhere and no funds can be moved with that signature alone.

Example:
  fusion-gateway swap --amount 100000000 --src-chain 1 --dst-chain 137 --watch`,
	RunE: runLocalSwap,
}

//nolint:gochecknoglobals // Cobra flag targets
var (
	swapAmount   string
	swapSrcChain int64
	swapDstChain int64
	swapSrcToken string
	swapDstToken string
	swapWatch    bool
)

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(swapCmd)

	swapCmd.Flags().StringVarP(&swapAmount, "amount", "a", "", "Amount in base units (decimal string)")
	swapCmd.Flags().Int64Var(&swapSrcChain, "src-chain", 0, "Source chain ID")
	swapCmd.Flags().Int64Var(&swapDstChain, "dst-chain", 0, "Destination chain ID")
	swapCmd.Flags().StringVar(&swapSrcToken, "src-token", "", "Source token address (default: USDC on the source chain)")
	swapCmd.Flags().StringVar(&swapDstToken, "dst-token", "", "Destination token address (default: USDC on the destination chain)")
	swapCmd.Flags().BoolVarP(&swapWatch, "watch", "w", false, "Monitor the order until it completes")
}

func runLocalSwap(cmd *cobra.Command, args []string) error {
	// Load .env
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: .env file not found\n")
	}

	privateKeyHex := os.Getenv("WALLET_PRIVATE_KEY")
	if privateKeyHex == "" {
		return fmt.Errorf("WALLET_PRIVATE_KEY not set in .env")
	}

	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return fmt.Errorf("parse private key: %w", err)
	}
	walletAddress := crypto.PubkeyToAddress(privateKey.PublicKey).Hex()

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

	relayerClient := relayer.NewClient(&relayer.Config{
		BaseURL:   cfg.RelayerBaseURL,
		AuthToken: cfg.RelayerAuthToken,
		SourceTag: cfg.SourceTag,
		Timeout:   cfg.RelayerTimeout,
		Logger:    logger,
	})

	store := prepared.NewMemoryStore(cfg.PrepareTTL, logger)
	defer func() {
		_ = store.Close()
	}()

	service := swap.NewService(&swap.ServiceConfig{
		Relayer:     relayerClient,
		Store:       store,
		Verifier:    auth.NewVerifier(cfg.TimestampMaxAge, cfg.TimestampMaxSkew),
		Storage:     storage.NewConsoleStorage(logger),
		Logger:      logger,
		TokenSymbol: cfg.DefaultTokenLabel,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	fmt.Printf("=== Cross-Chain Swap ===\n\n")
	fmt.Printf("Wallet: %s\n\n", walletAddress)

	// Phase 1: prepare
	prep, err := service.PrepareOrder(ctx, walletAddress, types.OrderParams{
		Amount:          swapAmount,
		SrcChainID:      swapSrcChain,
		DstChainID:      swapDstChain,
		SrcTokenAddress: swapSrcToken,
		DstTokenAddress: swapDstToken,
	})
	if err != nil {
		return fmt.Errorf("prepare order: %w", err)
	}

	fmt.Printf("Quote %s: pay %s, receive %s\n",
		prep.Quote.QuoteID, prep.Quote.SrcTokenAmount, prep.Quote.DstTokenAmount)
	fmt.Printf("Preparation: %s\n\n", prep.PreparationHash)

	// Phase 2: sign the challenge and submit
	sig, err := crypto.Sign(accounts.TextHash([]byte(prep.MessageToSign)), privateKey)
	if err != nil {
		return fmt.Errorf("sign authorization message: %w", err)
	}
	sig[64] += 27 // recovery id to Ethereum V

	result, err := service.SubmitSignedOrder(ctx, &types.SignedOrderRequest{
		PreparationHash:   prep.PreparationHash,
		UserWalletAddress: walletAddress,
		Signature:         hexutil.Encode(sig),
		Timestamp:         prep.Timestamp,
		Nonce:             prep.Nonce,
	})
	if err != nil {
		return fmt.Errorf("submit order: %w", err)
	}

	fmt.Printf("Order submitted: %s\n", result.OrderHash)

	if !swapWatch {
		fmt.Printf("\nTrack completion with:\n")
		fmt.Printf("  fusion-gateway status %s\n", result.OrderHash)
		return nil
	}

	fmt.Printf("Watching for completion (Ctrl+C to stop)...\n\n")

	mon, err := monitor.New(&monitor.Config{
		Relayer:      relayerClient,
		Logger:       logger,
		PollInterval: cfg.MonitorPollInterval,
		OrderHash:    result.OrderHash,
		Secrets:      result.Secrets,
	})
	if err != nil {
		return fmt.Errorf("create monitor: %w", err)
	}

	status, err := mon.Run(ctx)
	if err != nil {
		return fmt.Errorf("monitor order: %w", err)
	}

	fmt.Printf("Swap finished: %s\n", status.Status)

	return nil
}
