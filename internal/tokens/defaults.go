package tokens

import (
	"strings"

	"github.com/crosslock/fusion-gateway/pkg/types"
)

// usdcByChain maps chain id to the canonical USDC contract address on that
// chain. Used when the caller omits a token address from the order params.
//
//nolint:gochecknoglobals // static lookup table
var usdcByChain = map[int64]string{
	1:     "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", // Ethereum
	10:    "0x0b2C639c533813f4Aa9D7837CAf62653d097Ff85", // Optimism
	56:    "0x8AC76a51cc950d9822D68b83fE1Ad97B32Cd580d", // BNB Chain
	100:   "0xDDAfbb505ad214D7b80b1f830fcCc89B60fb7A83", // Gnosis
	137:   "0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359", // Polygon
	324:   "0x1d17CBcF0D6D143135aE902365D2E5e2A16538D4", // zkSync Era
	8453:  "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913", // Base
	42161: "0xaf88d065e77c8cC2239327C5EDb3A432268e5831", // Arbitrum One
	43114: "0xB97EF9Ef8734C71904D8002F8b6Bc66Dd9c48a6E", // Avalanche
	59144: "0x176211869cA2b568f2A7D4EE941E073a821EE1ff", // Linea
}

// DefaultAddress resolves the default token contract for a chain. Only USDC
// defaults are supported today.
func DefaultAddress(chainID int64, symbol string) (string, error) {
	if !strings.EqualFold(symbol, "USDC") {
		return "", types.NewError(types.KindUnresolvedToken,
			"no default %s token configured for chain %d", symbol, chainID)
	}

	address, ok := usdcByChain[chainID]
	if !ok {
		return "", types.NewError(types.KindUnresolvedToken,
			"no default token for chain %d", chainID)
	}

	return address, nil
}

// SupportedChains returns the chain ids with a configured default token,
// in ascending order.
func SupportedChains() []int64 {
	chains := make([]int64, 0, len(usdcByChain))
	for chainID := range usdcByChain {
		chains = append(chains, chainID)
	}

	for i := 1; i < len(chains); i++ {
		for j := i; j > 0 && chains[j-1] > chains[j]; j-- {
			chains[j-1], chains[j] = chains[j], chains[j-1]
		}
	}

	return chains
}

// ResolveOrderTokens returns a copy of the params with omitted token
// addresses substituted by the per-chain default.
func ResolveOrderTokens(params types.OrderParams, symbol string) (types.OrderParams, error) {
	resolved := params

	if resolved.SrcTokenAddress == "" {
		address, err := DefaultAddress(params.SrcChainID, symbol)
		if err != nil {
			return types.OrderParams{}, err
		}
		resolved.SrcTokenAddress = address
	}

	if resolved.DstTokenAddress == "" {
		address, err := DefaultAddress(params.DstChainID, symbol)
		if err != nil {
			return types.OrderParams{}, err
		}
		resolved.DstTokenAddress = address
	}

	return resolved, nil
}
