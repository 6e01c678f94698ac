package auth

import (
	"strings"
	"time"

	"github.com/crosslock/fusion-gateway/pkg/types"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Verifier checks wallet signatures over challenge messages and bounds the
// replay window via timestamp freshness.
//
// Nonces are generated but not tracked for prior use: replay protection
// rests on the timestamp window plus single consumption of the preparation
// hash.
type Verifier struct {
	maxAge  time.Duration
	maxSkew time.Duration

	now func() time.Time
}

// NewVerifier creates a verifier. maxAge bounds how old a challenge
// timestamp may be; maxSkew bounds how far in the future.
func NewVerifier(maxAge, maxSkew time.Duration) *Verifier {
	return &Verifier{
		maxAge:  maxAge,
		maxSkew: maxSkew,
		now:     time.Now,
	}
}

// VerifySignature recovers the signer of an EIP-191 personal message and
// checks it against the expected wallet, case-insensitively.
func (v *Verifier) VerifySignature(message, signature, expectedWallet string) error {
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return types.WrapError(types.KindSignature, err, "malformed signature")
	}
	if len(sig) != crypto.SignatureLength {
		return types.NewError(types.KindSignature,
			"signature must be %d bytes, got %d", crypto.SignatureLength, len(sig))
	}

	// Wallets produce V in {27, 28}; SigToPub expects {0, 1}.
	recoverSig := make([]byte, crypto.SignatureLength)
	copy(recoverSig, sig)
	if recoverSig[crypto.RecoveryIDOffset] >= 27 {
		recoverSig[crypto.RecoveryIDOffset] -= 27
	}

	pub, err := crypto.SigToPub(accounts.TextHash([]byte(message)), recoverSig)
	if err != nil {
		return types.WrapError(types.KindSignature, err, "recover signer")
	}

	recovered := crypto.PubkeyToAddress(*pub)
	if !strings.EqualFold(recovered.Hex(), expectedWallet) {
		return types.NewError(types.KindSignature,
			"recovered signer %s does not match wallet %s", recovered.Hex(), expectedWallet)
	}

	return nil
}

// ValidateTimestamp accepts t (milliseconds) iff now-maxAge < t <= now+maxSkew.
// Rejecting both stale and excessively future timestamps bounds the replay
// window in both directions.
func (v *Verifier) ValidateTimestamp(t int64) error {
	now := v.now()
	ts := time.UnixMilli(t)

	if now.Sub(ts) >= v.maxAge {
		return types.NewError(types.KindReplay,
			"challenge timestamp %d is older than %s", t, v.maxAge)
	}
	if ts.After(now.Add(v.maxSkew)) {
		return types.NewError(types.KindReplay,
			"challenge timestamp %d is more than %s in the future", t, v.maxSkew)
	}

	return nil
}
