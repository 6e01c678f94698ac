package types

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	json "github.com/goccy/go-json"
)

// OrderParams describes a cross-chain swap request as supplied by the user.
// Amounts cross this boundary as decimal strings of base units, never as
// native fixed-width numbers, to avoid precision loss.
type OrderParams struct {
	Amount          string `json:"amount"`
	SrcChainID      int64  `json:"srcChainId"`
	DstChainID      int64  `json:"dstChainId"`
	SrcTokenAddress string `json:"srcTokenAddress,omitempty"`
	DstTokenAddress string `json:"dstTokenAddress,omitempty"`
}

// Validate checks the structural invariants of the order parameters.
func (p *OrderParams) Validate() error {
	if p.SrcChainID == p.DstChainID {
		return NewError(KindValidation, "source and destination chains must differ (both %d)", p.SrcChainID)
	}
	if p.SrcChainID <= 0 || p.DstChainID <= 0 {
		return NewError(KindValidation, "chain ids must be positive")
	}

	amount, ok := new(big.Int).SetString(p.Amount, 10)
	if !ok || amount.Sign() <= 0 {
		return NewError(KindValidation, "amount %q must be a positive decimal string", p.Amount)
	}

	if p.SrcTokenAddress != "" && !common.IsHexAddress(p.SrcTokenAddress) {
		return NewError(KindValidation, "malformed source token address %q", p.SrcTokenAddress)
	}
	if p.DstTokenAddress != "" && !common.IsHexAddress(p.DstTokenAddress) {
		return NewError(KindValidation, "malformed destination token address %q", p.DstTokenAddress)
	}

	return nil
}

// Quote is an upstream price quote for an order. Immutable once returned.
type Quote struct {
	QuoteID             string `json:"quoteId"`
	SrcTokenAmount      string `json:"srcTokenAmount"`
	DstTokenAmount      string `json:"dstTokenAmount"`
	PresetID            string `json:"presetId"`
	RequiredSecretCount int    `json:"requiredSecretCount"`
}

// HashLockKind discriminates the two hash-lock variants.
type HashLockKind string

const (
	// HashLockSingleFill commits to one secret hash; the whole order is
	// claimable with a single secret.
	HashLockSingleFill HashLockKind = "single-fill"

	// HashLockMultiFill commits to a Merkle root over several secret
	// hashes; each leaf unlocks one partial fill.
	HashLockMultiFill HashLockKind = "multi-fill"
)

// HashLock is the cryptographic commitment escrows must satisfy to release
// funds. For single fill Value is the secret hash; for multi fill it is the
// Merkle root over the ordered secret hashes.
type HashLock struct {
	Kind  HashLockKind `json:"kind"`
	Value string       `json:"value"`
}

// SignedOrderRequest is the submit-phase payload: the client echoes the
// preparation handle back together with the wallet signature over the
// authorization message.
type SignedOrderRequest struct {
	PreparationHash   string `json:"preparationHash"`
	UserWalletAddress string `json:"userWalletAddress"`
	Signature         string `json:"signature"`
	Timestamp         int64  `json:"timestamp"`
	Nonce             string `json:"nonce"`
}

// PreparationRecord bridges the prepare and submit phases. It is held
// exclusively by the prepared-order store, consumed at most once, and
// evicted unconditionally after the store TTL.
type PreparationRecord struct {
	PreparationHash   string          `json:"preparationHash"`
	OrderHash         string          `json:"orderHash"`
	UserWalletAddress string          `json:"userWalletAddress"`
	Order             json.RawMessage `json:"order"`
	QuoteID           string          `json:"quoteId"`
	Secrets           []string        `json:"secrets"`
	SecretHashes      []string        `json:"secretHashes"`
	OrderParams       OrderParams     `json:"orderParams"`
	Timestamp         int64           `json:"timestamp"`
	Nonce             string          `json:"nonce"`
	CreatedAt         time.Time       `json:"createdAt"`
}
