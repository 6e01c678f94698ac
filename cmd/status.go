package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/crosslock/fusion-gateway/internal/relayer"
	"github.com/crosslock/fusion-gateway/pkg/config"
	json "github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var statusCmd = &cobra.Command{
	Use:   "status <order-hash>",
	Short: "Check the status of a submitted order",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
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

	client := relayer.NewClient(&relayer.Config{
		BaseURL:   cfg.RelayerBaseURL,
		AuthToken: cfg.RelayerAuthToken,
		SourceTag: cfg.SourceTag,
		Timeout:   cfg.RelayerTimeout,
		Logger:    logger,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	status, err := client.GetOrderStatus(ctx, args[0])
	if err != nil {
		return fmt.Errorf("fetch status: %w", err)
	}

	out, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return fmt.Errorf("encode status: %w", err)
	}

	fmt.Println(string(out))

	return nil
}
