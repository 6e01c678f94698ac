package auth

import (
	"strings"
	"testing"

	"github.com/crosslock/fusion-gateway/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWallet = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"

func testParams() types.OrderParams {
	return types.OrderParams{
		Amount:     "100000000",
		SrcChainID: 1,
		DstChainID: 137,
	}
}

func TestBuildMessage_Deterministic(t *testing.T) {
	params := testParams()

	first := BuildMessage(testWallet, params, 1700000000000, "abcd1234")
	second := BuildMessage(testWallet, params, 1700000000000, "abcd1234")

	assert.Equal(t, first, second)
}

func TestBuildMessage_Layout(t *testing.T) {
	params := testParams()
	params.SrcTokenAddress = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"

	msg := BuildMessage(testWallet, params, 1700000000000, "abcd1234")
	lines := strings.Split(msg, "\n")

	require.Len(t, lines, 10)
	assert.Equal(t, "Authorize cross-chain swap order", lines[0])
	assert.Equal(t, "Wallet: "+testWallet, lines[1])
	assert.Equal(t, "Amount: 100000000", lines[2])
	assert.Equal(t, "Source chain: 1", lines[3])
	assert.Equal(t, "Destination chain: 137", lines[4])
	assert.Equal(t, "Source token: 0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", lines[5])
	assert.Equal(t, "Destination token: Default", lines[6])
	assert.Equal(t, "Timestamp: 1700000000000", lines[7])
	assert.Equal(t, "Nonce: abcd1234", lines[8])
	assert.Contains(t, lines[9], "does not grant access to your funds")
}

func TestBuildMessage_DefaultTokenLabels(t *testing.T) {
	msg := BuildMessage(testWallet, testParams(), 1, "n")

	assert.Contains(t, msg, "Source token: Default")
	assert.Contains(t, msg, "Destination token: Default")
}

func TestPreparationHash_Deterministic(t *testing.T) {
	params := testParams()

	first, err := PreparationHash(testWallet, params, 1700000000000, "abcd1234")
	require.NoError(t, err)
	second, err := PreparationHash(testWallet, params, 1700000000000, "abcd1234")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 64) // hex-encoded SHA256
}

func TestPreparationHash_BindsEveryInput(t *testing.T) {
	base, err := PreparationHash(testWallet, testParams(), 1700000000000, "abcd1234")
	require.NoError(t, err)

	otherWallet, err := PreparationHash("0x0000000000000000000000000000000000000001", testParams(), 1700000000000, "abcd1234")
	require.NoError(t, err)
	assert.NotEqual(t, base, otherWallet)

	otherTime, err := PreparationHash(testWallet, testParams(), 1700000000001, "abcd1234")
	require.NoError(t, err)
	assert.NotEqual(t, base, otherTime)

	otherNonce, err := PreparationHash(testWallet, testParams(), 1700000000000, "abcd1235")
	require.NoError(t, err)
	assert.NotEqual(t, base, otherNonce)

	changed := testParams()
	changed.Amount = "100000001"
	otherParams, err := PreparationHash(testWallet, changed, 1700000000000, "abcd1234")
	require.NoError(t, err)
	assert.NotEqual(t, base, otherParams)

	withToken := testParams()
	withToken.DstTokenAddress = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
	otherToken, err := PreparationHash(testWallet, withToken, 1700000000000, "abcd1234")
	require.NoError(t, err)
	assert.NotEqual(t, base, otherToken)
}

func TestNewNonce(t *testing.T) {
	first, err := NewNonce()
	require.NoError(t, err)
	second, err := NewNonce()
	require.NoError(t, err)

	assert.Len(t, first, 32) // 16 bytes, hex-encoded
	assert.NotEqual(t, first, second)
}
