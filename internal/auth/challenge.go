// Package auth implements the non-custodial authorization handshake: the
// deterministic challenge message a wallet signs, the preparation hash
// linking the prepare and submit phases, and signature verification.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/crosslock/fusion-gateway/pkg/types"
	json "github.com/goccy/go-json"
)

const nonceLen = 16

// DefaultTokenLabel is rendered in the challenge message when a token
// address was omitted and the per-chain default will be used.
const DefaultTokenLabel = "Default"

const disclaimer = "Signing this message authorizes order creation only. It does not grant access to your funds."

// BuildMessage produces the plaintext authorization challenge. It is a pure
// function of its inputs: the server recomputes it bit-for-bit at submit
// time, and a client can reconstruct it for display.
func BuildMessage(wallet string, params types.OrderParams, timestamp int64, nonce string) string {
	srcToken := params.SrcTokenAddress
	if srcToken == "" {
		srcToken = DefaultTokenLabel
	}
	dstToken := params.DstTokenAddress
	if dstToken == "" {
		dstToken = DefaultTokenLabel
	}

	lines := []string{
		"Authorize cross-chain swap order",
		fmt.Sprintf("Wallet: %s", wallet),
		fmt.Sprintf("Amount: %s", params.Amount),
		fmt.Sprintf("Source chain: %d", params.SrcChainID),
		fmt.Sprintf("Destination chain: %d", params.DstChainID),
		fmt.Sprintf("Source token: %s", srcToken),
		fmt.Sprintf("Destination token: %s", dstToken),
		fmt.Sprintf("Timestamp: %d", timestamp),
		fmt.Sprintf("Nonce: %s", nonce),
		disclaimer,
	}

	return strings.Join(lines, "\n")
}

// PreparationHash derives the deterministic digest keying the preparation
// record: SHA256 over the canonical JSON of the binding inputs. Map
// marshaling sorts object keys, so both phases produce identical bytes.
func PreparationHash(wallet string, params types.OrderParams, timestamp int64, nonce string) (string, error) {
	orderParams := map[string]any{
		"amount":     params.Amount,
		"srcChainId": params.SrcChainID,
		"dstChainId": params.DstChainID,
	}
	if params.SrcTokenAddress != "" {
		orderParams["srcTokenAddress"] = params.SrcTokenAddress
	}
	if params.DstTokenAddress != "" {
		orderParams["dstTokenAddress"] = params.DstTokenAddress
	}

	payload := map[string]any{
		"userWalletAddress": wallet,
		"orderParams":       orderParams,
		"timestamp":         timestamp,
		"nonce":             nonce,
	}

	canonical, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal preparation payload: %w", err)
	}

	sum := sha256.Sum256(canonical)

	return hex.EncodeToString(sum[:]), nil
}

// NewNonce returns 16 random bytes, hex-encoded.
func NewNonce() (string, error) {
	buf := make([]byte, nonceLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

// NowTimestamp returns the current challenge timestamp in milliseconds.
func NowTimestamp() int64 {
	return time.Now().UnixMilli()
}
