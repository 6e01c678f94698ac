package relayer

import (
	"github.com/crosslock/fusion-gateway/pkg/types"
	json "github.com/goccy/go-json"
)

// QuoteRequest is the upstream quote call payload. Token addresses are
// already resolved; enableEstimate asks the network to run the full pricing
// estimate.
type QuoteRequest struct {
	Amount          string `json:"amount"`
	SrcChainID      int64  `json:"srcChainId"`
	DstChainID      int64  `json:"dstChainId"`
	SrcTokenAddress string `json:"srcTokenAddress"`
	DstTokenAddress string `json:"dstTokenAddress"`
	EnableEstimate  bool   `json:"enableEstimate"`
	WalletAddress   string `json:"walletAddress"`
}

type quotePreset struct {
	SecretsCount int `json:"secretsCount"`
}

type quoteResponse struct {
	QuoteID           string                 `json:"quoteId"`
	SrcTokenAmount    string                 `json:"srcTokenAmount"`
	DstTokenAmount    string                 `json:"dstTokenAmount"`
	RecommendedPreset string                 `json:"recommendedPreset"`
	Presets           map[string]quotePreset `json:"presets"`
}

// CreateOrderRequest asks the upstream network to construct an order bound
// to a quote and a hash lock.
type CreateOrderRequest struct {
	QuoteID       string         `json:"quoteId"`
	PresetID      string         `json:"preset"`
	SrcChainID    int64          `json:"srcChainId"`
	WalletAddress string         `json:"walletAddress"`
	HashLock      types.HashLock `json:"hashLock"`
	SecretHashes  []string       `json:"secretHashes"`
	SourceTag     string         `json:"source"`
}

// CreateOrderResponse carries the constructed order. Order is kept opaque:
// the gateway stores and echoes it at submission without interpreting it.
type CreateOrderResponse struct {
	Hash    string          `json:"hash"`
	QuoteID string          `json:"quoteId"`
	Order   json.RawMessage `json:"order"`
}

// SubmitOrderRequest relays a constructed order for execution.
type SubmitOrderRequest struct {
	Order        json.RawMessage `json:"order"`
	QuoteID      string          `json:"quoteId"`
	SrcChainID   int64           `json:"srcChainId"`
	SecretHashes []string        `json:"secretHashes"`
}

// SubmitOrderResponse acknowledges a submission.
type SubmitOrderResponse struct {
	Status string `json:"status"`
}

// ReadyFill identifies one escrow fill whose secret may now be revealed.
type ReadyFill struct {
	Idx int `json:"idx"`
}

type readyFillsResponse struct {
	Fills []ReadyFill `json:"fills"`
}

type submitSecretRequest struct {
	OrderHash string `json:"orderHash"`
	Secret    string `json:"secret"`
}
