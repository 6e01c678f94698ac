package tokens

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapCache is a minimal cache.Cache for tests; TTLs are ignored.
type mapCache struct {
	entries map[string]interface{}
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]interface{})}
}

func (m *mapCache) Get(key string) (interface{}, bool) {
	value, ok := m.entries[key]
	return value, ok
}

func (m *mapCache) Set(key string, value interface{}, _ time.Duration) bool {
	m.entries[key] = value
	return true
}

func (m *mapCache) Delete(key string) { delete(m.entries, key) }
func (m *mapCache) Clear()            { m.entries = make(map[string]interface{}) }
func (m *mapCache) Close()            {}

func TestFetchTokens(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tokens/1", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"tokens": []map[string]any{
				{"symbol": "USDC", "address": "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", "decimals": 6, "chainId": 1},
				{"symbol": "WETH", "address": "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", "decimals": 18, "chainId": 1},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")

	list, err := client.FetchTokens(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, list, 2)
	assert.Equal(t, "USDC", list[0].Symbol)
	assert.Equal(t, 6, list[0].Decimals)
}

func TestFetchTokens_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"bad token"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "wrong")

	_, err := client.FetchTokens(context.Background(), 1)
	assert.Error(t, err)
}

func TestCachedClient_SecondCallHitsCache(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"tokens": []map[string]any{
				{"symbol": "USDC", "address": "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", "decimals": 6, "chainId": 1},
			},
		})
	}))
	defer server.Close()

	cached := NewCachedClient(NewClient(server.URL, ""), newMapCache())

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		list, err := cached.Tokens(ctx, 1)
		require.NoError(t, err)
		require.Len(t, list, 1)
	}

	assert.Equal(t, int32(1), calls.Load())
}

func TestLookupSymbol_FromListing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"tokens": []map[string]any{
				{"symbol": "WETH", "address": "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", "decimals": 18, "chainId": 1},
			},
		})
	}))
	defer server.Close()

	cached := NewCachedClient(NewClient(server.URL, ""), nil)

	token, err := cached.LookupSymbol(context.Background(), 1, "weth")
	require.NoError(t, err)
	assert.Equal(t, "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", token.Address)
}

func TestLookupSymbol_FallsBackToDefaults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"tokens": []map[string]any{}})
	}))
	defer server.Close()

	cached := NewCachedClient(NewClient(server.URL, ""), nil)

	token, err := cached.LookupSymbol(context.Background(), 1, "USDC")
	require.NoError(t, err)
	assert.Equal(t, "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", token.Address)
}
