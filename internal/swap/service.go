// Package swap orchestrates the two-phase non-custodial handshake: prepare
// builds a quote, hash lock, and challenge message; submit verifies the
// wallet signature and relays the prepared order upstream.
package swap

import (
	"context"
	"errors"
	"time"

	"github.com/crosslock/fusion-gateway/internal/auth"
	"github.com/crosslock/fusion-gateway/internal/hashlock"
	"github.com/crosslock/fusion-gateway/internal/prepared"
	"github.com/crosslock/fusion-gateway/internal/relayer"
	"github.com/crosslock/fusion-gateway/internal/storage"
	"github.com/crosslock/fusion-gateway/internal/tokens"
	"github.com/crosslock/fusion-gateway/pkg/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RelayerAPI is the slice of the upstream client the service needs.
type RelayerAPI interface {
	GetQuote(ctx context.Context, req *relayer.QuoteRequest) (*types.Quote, error)
	CreateOrder(ctx context.Context, req *relayer.CreateOrderRequest) (*relayer.CreateOrderResponse, error)
	SubmitOrder(ctx context.Context, req *relayer.SubmitOrderRequest) (*relayer.SubmitOrderResponse, error)
	GetOrderStatus(ctx context.Context, orderHash string) (*types.OrderStatus, error)
}

// MonitorStarter starts background completion monitoring for a submitted
// order. Implemented by monitor.Manager.
type MonitorStarter interface {
	Watch(orderHash string, secrets, secretHashes []string) error
}

// Service implements the gateway's swap operations.
type Service struct {
	relayer     RelayerAPI
	store       prepared.Store
	verifier    *auth.Verifier
	storage     storage.Storage
	monitors    MonitorStarter // nil when gateway-side monitoring is disabled
	logger      *zap.Logger
	tokenSymbol string
}

// ServiceConfig holds swap service configuration.
type ServiceConfig struct {
	Relayer     RelayerAPI
	Store       prepared.Store
	Verifier    *auth.Verifier
	Storage     storage.Storage
	Monitors    MonitorStarter
	Logger      *zap.Logger
	TokenSymbol string
}

// NewService creates the swap service.
func NewService(cfg *ServiceConfig) *Service {
	symbol := cfg.TokenSymbol
	if symbol == "" {
		symbol = "USDC"
	}

	return &Service{
		relayer:     cfg.Relayer,
		store:       cfg.Store,
		verifier:    cfg.Verifier,
		storage:     cfg.Storage,
		monitors:    cfg.Monitors,
		logger:      cfg.Logger,
		tokenSymbol: symbol,
	}
}

// PrepareResponse is the phase-1 result handed to the client for signing.
type PrepareResponse struct {
	PreparationHash string       `json:"preparationHash"`
	MessageToSign   string       `json:"messageToSign"`
	Timestamp       int64        `json:"timestamp"`
	Nonce           string       `json:"nonce"`
	Quote           *types.Quote `json:"quote"`
}

// SubmitResponse is the phase-2 result. Secrets are returned so a caller
// that monitors completion itself can reveal them; when gateway-side
// monitoring is enabled the caller may discard them.
type SubmitResponse struct {
	OrderHash string   `json:"orderHash"`
	Status    string   `json:"status"`
	Secrets   []string `json:"secrets"`
}

// PrepareOrder runs phase 1: quote the swap, derive the hash lock, create
// the order upstream, and store the preparation record under a hash that
// binds wallet, params, timestamp, and nonce. No funds move here.
func (s *Service) PrepareOrder(ctx context.Context, walletAddress string, params types.OrderParams) (*PrepareResponse, error) {
	if !common.IsHexAddress(walletAddress) {
		return nil, s.reject(types.NewError(types.KindValidation,
			"malformed wallet address %q", walletAddress))
	}
	if err := params.Validate(); err != nil {
		return nil, s.reject(err)
	}

	resolved, err := tokens.ResolveOrderTokens(params, s.tokenSymbol)
	if err != nil {
		return nil, s.reject(err)
	}

	quote, err := s.relayer.GetQuote(ctx, &relayer.QuoteRequest{
		Amount:          resolved.Amount,
		SrcChainID:      resolved.SrcChainID,
		DstChainID:      resolved.DstChainID,
		SrcTokenAddress: resolved.SrcTokenAddress,
		DstTokenAddress: resolved.DstTokenAddress,
		EnableEstimate:  true,
		WalletAddress:   walletAddress,
	})
	if err != nil {
		return nil, s.reject(err)
	}

	secretSet, err := hashlock.Build(quote.RequiredSecretCount)
	if err != nil {
		return nil, s.reject(err)
	}

	created, err := s.relayer.CreateOrder(ctx, &relayer.CreateOrderRequest{
		QuoteID:       quote.QuoteID,
		PresetID:      quote.PresetID,
		SrcChainID:    resolved.SrcChainID,
		WalletAddress: walletAddress,
		HashLock:      secretSet.Lock,
		SecretHashes:  secretSet.SecretHashes,
	})
	if err != nil {
		return nil, s.reject(err)
	}

	timestamp := auth.NowTimestamp()
	nonce, err := auth.NewNonce()
	if err != nil {
		return nil, err
	}

	preparationHash, err := auth.PreparationHash(walletAddress, params, timestamp, nonce)
	if err != nil {
		return nil, err
	}

	record := &types.PreparationRecord{
		PreparationHash:   preparationHash,
		OrderHash:         created.Hash,
		UserWalletAddress: walletAddress,
		Order:             created.Order,
		QuoteID:           quote.QuoteID,
		Secrets:           secretSet.Secrets,
		SecretHashes:      secretSet.SecretHashes,
		OrderParams:       params,
		Timestamp:         timestamp,
		Nonce:             nonce,
		CreatedAt:         time.Now().UTC(),
	}

	if err := s.store.Put(ctx, record); err != nil {
		return nil, err
	}

	PreparesTotal.Inc()
	s.logger.Info("order-prepared",
		zap.String("preparation-hash", preparationHash),
		zap.String("order-hash", created.Hash),
		zap.String("wallet", walletAddress),
		zap.String("quote-id", quote.QuoteID),
		zap.Int("secret-count", quote.RequiredSecretCount))

	return &PrepareResponse{
		PreparationHash: preparationHash,
		MessageToSign:   auth.BuildMessage(walletAddress, params, timestamp, nonce),
		Timestamp:       timestamp,
		Nonce:           nonce,
		Quote:           quote,
	}, nil
}

// SubmitSignedOrder runs phase 2: validate the replay window, consume the
// preparation record (at most once), verify the wallet signature over the
// recomputed challenge, and relay the order upstream.
//
// A preparation is spent by its first submission attempt, valid or not:
// the record is consumed before the signature is checked.
func (s *Service) SubmitSignedOrder(ctx context.Context, req *types.SignedOrderRequest) (*SubmitResponse, error) {
	if req.PreparationHash == "" || req.UserWalletAddress == "" || req.Signature == "" {
		return nil, s.reject(types.NewError(types.KindValidation,
			"preparationHash, userWalletAddress, and signature are required"))
	}

	if err := s.verifier.ValidateTimestamp(req.Timestamp); err != nil {
		return nil, s.reject(err)
	}

	record, err := s.store.Consume(ctx, req.PreparationHash)
	if err != nil {
		if errors.Is(err, prepared.ErrNotFound) {
			return nil, s.reject(types.NewError(types.KindReplay,
				"preparation %s not found or expired", req.PreparationHash))
		}
		return nil, err
	}

	if !addressesEqual(record.UserWalletAddress, req.UserWalletAddress) {
		return nil, s.reject(types.NewError(types.KindWalletMismatch,
			"submit wallet %s does not match prepare wallet %s",
			req.UserWalletAddress, record.UserWalletAddress))
	}

	if req.Timestamp != record.Timestamp || req.Nonce != record.Nonce {
		return nil, s.reject(types.NewError(types.KindReplay,
			"timestamp or nonce does not match preparation %s", req.PreparationHash))
	}

	message := auth.BuildMessage(record.UserWalletAddress, record.OrderParams, record.Timestamp, record.Nonce)
	if err := s.verifier.VerifySignature(message, req.Signature, record.UserWalletAddress); err != nil {
		return nil, s.reject(err)
	}

	_, err = s.relayer.SubmitOrder(ctx, &relayer.SubmitOrderRequest{
		Order:        record.Order,
		QuoteID:      record.QuoteID,
		SrcChainID:   record.OrderParams.SrcChainID,
		SecretHashes: record.SecretHashes,
	})
	if err != nil {
		return nil, s.reject(err)
	}

	now := time.Now().UTC()
	saveErr := s.storage.SaveSwap(ctx, &storage.SwapRecord{
		ID:              uuid.NewString(),
		OrderHash:       record.OrderHash,
		PreparationHash: record.PreparationHash,
		Wallet:          record.UserWalletAddress,
		QuoteID:         record.QuoteID,
		OrderParams:     record.OrderParams,
		Status:          types.PhasePending,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if saveErr != nil {
		// Submission already happened; losing the trace must not fail it.
		s.logger.Error("swap-save-failed",
			zap.String("order-hash", record.OrderHash),
			zap.Error(saveErr))
	}

	if s.monitors != nil {
		watchErr := s.monitors.Watch(record.OrderHash, record.Secrets, record.SecretHashes)
		if watchErr != nil {
			s.logger.Error("monitor-start-failed",
				zap.String("order-hash", record.OrderHash),
				zap.Error(watchErr))
		}
	}

	SubmitsTotal.Inc()
	s.logger.Info("order-submitted",
		zap.String("order-hash", record.OrderHash),
		zap.String("wallet", record.UserWalletAddress))

	return &SubmitResponse{
		OrderHash: record.OrderHash,
		Status:    "submitted",
		Secrets:   record.Secrets,
	}, nil
}

// OrderStatus proxies the upstream status view of a submitted order.
func (s *Service) OrderStatus(ctx context.Context, orderHash string) (*types.OrderStatus, error) {
	if orderHash == "" {
		return nil, types.NewError(types.KindValidation, "order hash is required")
	}

	return s.relayer.GetOrderStatus(ctx, orderHash)
}

func (s *Service) reject(err error) error {
	var se *types.SwapError
	if errors.As(err, &se) {
		RejectsTotal.WithLabelValues(string(se.Kind)).Inc()
	}

	return err
}

func addressesEqual(a, b string) bool {
	return common.IsHexAddress(a) && common.IsHexAddress(b) &&
		common.HexToAddress(a) == common.HexToAddress(b)
}
