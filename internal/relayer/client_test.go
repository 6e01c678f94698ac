package relayer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/crosslock/fusion-gateway/pkg/types"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger, _ := zap.NewDevelopment()

	return NewClient(&Config{
		BaseURL:   server.URL,
		AuthToken: "test-token",
		SourceTag: "test-gateway",
		Timeout:   5 * time.Second,
		Logger:    logger,
	})
}

func TestGetQuote_RecommendedPreset(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/quote", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var req QuoteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "100000000", req.Amount)
		assert.True(t, req.EnableEstimate)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"quoteId":           "quote-1",
			"srcTokenAmount":    "100000000",
			"dstTokenAmount":    "99500000",
			"recommendedPreset": "fast",
			"presets": map[string]any{
				"fast":   map[string]int{"secretsCount": 1},
				"medium": map[string]int{"secretsCount": 4},
			},
		})
	})

	quote, err := client.GetQuote(context.Background(), &QuoteRequest{
		Amount:         "100000000",
		SrcChainID:     1,
		DstChainID:     137,
		EnableEstimate: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "quote-1", quote.QuoteID)
	assert.Equal(t, "fast", quote.PresetID)
	assert.Equal(t, 1, quote.RequiredSecretCount)
	assert.Equal(t, "99500000", quote.DstTokenAmount)
}

func TestGetQuote_SolePresetFallback(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"quoteId": "quote-2",
			"presets": map[string]any{
				"custom": map[string]int{"secretsCount": 4},
			},
		})
	})

	quote, err := client.GetQuote(context.Background(), &QuoteRequest{})
	require.NoError(t, err)

	assert.Equal(t, "custom", quote.PresetID)
	assert.Equal(t, 4, quote.RequiredSecretCount)
}

func TestGetQuote_NoUsablePreset(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"quoteId": "quote-3",
			"presets": map[string]any{
				"a": map[string]int{"secretsCount": 1},
				"b": map[string]int{"secretsCount": 2},
			},
		})
	})

	_, err := client.GetQuote(context.Background(), &QuoteRequest{})
	require.Error(t, err)
	assert.True(t, types.IsKind(err, types.KindQuoteFetch))
}

func TestGetQuote_MissingQuoteID(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{})
	})

	_, err := client.GetQuote(context.Background(), &QuoteRequest{})
	require.Error(t, err)
	assert.True(t, types.IsKind(err, types.KindQuoteFetch))
}

func TestGetQuote_UpstreamError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"rate limited"}`))
	})

	_, err := client.GetQuote(context.Background(), &QuoteRequest{})
	require.Error(t, err)

	var se *types.SwapError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, types.KindQuoteFetch, se.Kind)
	assert.Equal(t, http.StatusTooManyRequests, se.UpstreamStatus)
	assert.Contains(t, se.UpstreamBody, "rate limited")
}

func TestCreateOrder_DefaultsSourceTag(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/order", r.URL.Path)

		var req CreateOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-gateway", req.SourceTag)
		assert.Equal(t, "quote-1", req.QuoteID)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"hash":    "0xorderhash",
			"quoteId": "quote-1",
			"order":   map[string]string{"maker": "0xabc"},
		})
	})

	resp, err := client.CreateOrder(context.Background(), &CreateOrderRequest{
		QuoteID: "quote-1",
		HashLock: types.HashLock{
			Kind:  types.HashLockSingleFill,
			Value: "0xlock",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "0xorderhash", resp.Hash)
	assert.JSONEq(t, `{"maker":"0xabc"}`, string(resp.Order))
}

func TestCreateOrder_MissingHash(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"quoteId": "quote-1"})
	})

	_, err := client.CreateOrder(context.Background(), &CreateOrderRequest{})
	require.Error(t, err)
	assert.True(t, types.IsKind(err, types.KindSubmission))
}

func TestSubmitOrder(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/order/submit", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "accepted"})
	})

	resp, err := client.SubmitOrder(context.Background(), &SubmitOrderRequest{
		Order:   json.RawMessage(`{"maker":"0xabc"}`),
		QuoteID: "quote-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "accepted", resp.Status)
}

func TestGetOrderStatus(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/order/status/0xorderhash", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":    "executed",
			"orderHash": "0xorderhash",
			"fills": []map[string]string{
				{"txHash": "0xtx1", "status": "executed"},
			},
		})
	})

	status, err := client.GetOrderStatus(context.Background(), "0xorderhash")
	require.NoError(t, err)

	assert.Equal(t, types.PhaseExecuted, status.Status)
	assert.True(t, status.Status.Terminal())
	require.Len(t, status.Fills, 1)
	assert.Equal(t, "0xtx1", status.Fills[0].TxHash)
}

func TestGetReadyFills(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/order/0xorderhash/ready-to-accept-secret-fills", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"fills": []map[string]int{{"idx": 0}, {"idx": 2}},
		})
	})

	fills, err := client.GetReadyFills(context.Background(), "0xorderhash")
	require.NoError(t, err)

	assert.Equal(t, []ReadyFill{{Idx: 0}, {Idx: 2}}, fills)
}

func TestSubmitSecret(t *testing.T) {
	var got submitSecretRequest

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/order/secret", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	})

	err := client.SubmitSecret(context.Background(), "0xorderhash", "0xsecret")
	require.NoError(t, err)

	assert.Equal(t, "0xorderhash", got.OrderHash)
	assert.Equal(t, "0xsecret", got.Secret)
}
