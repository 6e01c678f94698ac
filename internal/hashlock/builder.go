// Package hashlock derives the cryptographic commitment for hash-locked
// escrow orders: random secrets, their hashes, and a single-fill or Merkle
// multi-fill lock over them.
//
// Secrets are the sole proof needed to unlock destination-chain funds.
// They are never logged and never leave the preparation record / submission
// flow; revealing one outside the completion monitor is equivalent to fund
// loss.
package hashlock

import (
	"crypto/rand"
	"fmt"

	"github.com/crosslock/fusion-gateway/pkg/types"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

const secretLen = 32

// SecretSet holds the ordered secrets for one order together with their
// hashes and the derived hash lock. secretHashes[i] corresponds to
// secrets[i] and to escrow fill index i; the ordering must be preserved
// through submission and revelation.
type SecretSet struct {
	Secrets      []string
	SecretHashes []string
	Lock         types.HashLock
}

// Build generates requiredSecretCount fresh random secrets and derives the
// hash lock. Secrets are never reused across orders; each call produces an
// independent set.
func Build(requiredSecretCount int) (*SecretSet, error) {
	if requiredSecretCount < 1 {
		return nil, types.NewError(types.KindValidation,
			"required secret count must be >= 1, got %d", requiredSecretCount)
	}

	secrets := make([]string, requiredSecretCount)
	hashes := make([]string, requiredSecretCount)
	rawHashes := make([][]byte, requiredSecretCount)

	for i := 0; i < requiredSecretCount; i++ {
		secret := make([]byte, secretLen)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("generate secret %d: %w", i, err)
		}

		hash := crypto.Keccak256(secret)
		secrets[i] = hexutil.Encode(secret)
		hashes[i] = hexutil.Encode(hash)
		rawHashes[i] = hash
	}

	set := &SecretSet{
		Secrets:      secrets,
		SecretHashes: hashes,
	}

	if requiredSecretCount == 1 {
		set.Lock = types.HashLock{
			Kind:  types.HashLockSingleFill,
			Value: hashes[0],
		}
		return set, nil
	}

	leaves := make([][]byte, requiredSecretCount)
	for i, hash := range rawHashes {
		leaves[i] = fillLeaf(uint64(i), hash)
	}

	set.Lock = types.HashLock{
		Kind:  types.HashLockMultiFill,
		Value: hexutil.Encode(merkleRoot(leaves)),
	}

	return set, nil
}
