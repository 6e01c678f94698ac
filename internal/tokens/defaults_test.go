package tokens

import (
	"sort"
	"testing"

	"github.com/crosslock/fusion-gateway/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAddress(t *testing.T) {
	address, err := DefaultAddress(1, "USDC")
	require.NoError(t, err)
	assert.Equal(t, "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", address)

	// Symbol matching is case-insensitive.
	address, err = DefaultAddress(137, "usdc")
	require.NoError(t, err)
	assert.Equal(t, "0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359", address)
}

func TestDefaultAddress_Unresolved(t *testing.T) {
	_, err := DefaultAddress(999999, "USDC")
	require.Error(t, err)
	assert.True(t, types.IsKind(err, types.KindUnresolvedToken))

	_, err = DefaultAddress(1, "DAI")
	require.Error(t, err)
	assert.True(t, types.IsKind(err, types.KindUnresolvedToken))
}

func TestSupportedChains_SortedAscending(t *testing.T) {
	chains := SupportedChains()

	require.NotEmpty(t, chains)
	assert.True(t, sort.SliceIsSorted(chains, func(i, j int) bool {
		return chains[i] < chains[j]
	}))
	assert.Contains(t, chains, int64(1))
	assert.Contains(t, chains, int64(137))
}

func TestResolveOrderTokens(t *testing.T) {
	params := types.OrderParams{
		Amount:     "100000000",
		SrcChainID: 1,
		DstChainID: 137,
	}

	resolved, err := ResolveOrderTokens(params, "USDC")
	require.NoError(t, err)

	assert.Equal(t, "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", resolved.SrcTokenAddress)
	assert.Equal(t, "0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359", resolved.DstTokenAddress)

	// The input params are untouched.
	assert.Empty(t, params.SrcTokenAddress)
}

func TestResolveOrderTokens_ExplicitAddressesKept(t *testing.T) {
	params := types.OrderParams{
		Amount:          "100000000",
		SrcChainID:      1,
		DstChainID:      137,
		SrcTokenAddress: "0x1111111111111111111111111111111111111111",
	}

	resolved, err := ResolveOrderTokens(params, "USDC")
	require.NoError(t, err)

	assert.Equal(t, "0x1111111111111111111111111111111111111111", resolved.SrcTokenAddress)
	assert.Equal(t, "0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359", resolved.DstTokenAddress)
}

func TestResolveOrderTokens_UnknownChain(t *testing.T) {
	params := types.OrderParams{
		Amount:     "100000000",
		SrcChainID: 1,
		DstChainID: 999999,
	}

	_, err := ResolveOrderTokens(params, "USDC")
	require.Error(t, err)
	assert.True(t, types.IsKind(err, types.KindUnresolvedToken))
}
