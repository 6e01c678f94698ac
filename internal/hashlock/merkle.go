package hashlock

import "github.com/ethereum/go-ethereum/crypto"

// merkleRoot computes the root of an order-preserving binary Merkle tree
// over the given leaves. Pairs are hashed left-to-right with keccak256; an
// unpaired node at the end of a level is promoted unchanged. Leaf order is
// significant: leaf i commits escrow fill index i.
func merkleRoot(leaves [][]byte) []byte {
	if len(leaves) == 0 {
		return nil
	}

	level := make([][]byte, len(leaves))
	copy(level, leaves)

	for len(level) > 1 {
		next := make([][]byte, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 < len(level) {
				next = append(next, crypto.Keccak256(level[i], level[i+1]))
			} else {
				next = append(next, level[i])
			}
		}
		level = next
	}

	return level[0]
}

// fillLeaf derives the Merkle leaf for fill index i: keccak256 over the
// big-endian index and the secret hash, binding each hash to its position.
func fillLeaf(index uint64, secretHash []byte) []byte {
	var idx [8]byte
	for i := 7; i >= 0; i-- {
		idx[i] = byte(index)
		index >>= 8
	}

	return crypto.Keccak256(idx[:], secretHash)
}
