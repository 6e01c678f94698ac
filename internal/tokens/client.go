package tokens

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/crosslock/fusion-gateway/pkg/cache"
	"github.com/crosslock/fusion-gateway/pkg/types"
	json "github.com/goccy/go-json"
)

// TokenInfo is the upstream view of one supported token.
type TokenInfo struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Decimals int    `json:"decimals"`
	ChainID  int64  `json:"chainId"`
}

// Client fetches supported-token metadata from the upstream swap network.
type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
}

// NewClient creates a new token metadata client.
func NewClient(baseURL, authToken string) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		authToken: authToken,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// FetchTokens lists the tokens the upstream network supports on a chain.
func (c *Client) FetchTokens(ctx context.Context, chainID int64) ([]TokenInfo, error) {
	url := fmt.Sprintf("%s/tokens/%d", c.baseURL, chainID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, types.NewUpstreamError(types.KindQuoteFetch, resp.StatusCode, string(body),
			"list tokens for chain %d", chainID)
	}

	var data struct {
		Tokens []TokenInfo `json:"tokens"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode token list: %w", err)
	}

	return data.Tokens, nil
}

// CachedClient wraps Client with a TTL cache. Token listings change rarely,
// so a long TTL is fine.
type CachedClient struct {
	client *Client
	cache  cache.Cache
	ttl    time.Duration
}

// NewCachedClient creates a new cached token metadata client.
func NewCachedClient(client *Client, tokenCache cache.Cache) *CachedClient {
	return &CachedClient{
		client: client,
		cache:  tokenCache,
		ttl:    24 * time.Hour,
	}
}

// Tokens returns the supported tokens for a chain, consulting the cache
// first.
func (c *CachedClient) Tokens(ctx context.Context, chainID int64) ([]TokenInfo, error) {
	cacheKey := fmt.Sprintf("tokens:%d", chainID)

	if c.cache != nil {
		if cached, ok := c.cache.Get(cacheKey); ok {
			if list, ok := cached.([]TokenInfo); ok {
				return list, nil
			}
		}
	}

	list, err := c.client.FetchTokens(ctx, chainID)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.Set(cacheKey, list, c.ttl)
	}

	return list, nil
}

// LookupSymbol finds a token by symbol on a chain. Falls back to the static
// default table when the upstream listing does not contain the symbol.
func (c *CachedClient) LookupSymbol(ctx context.Context, chainID int64, symbol string) (TokenInfo, error) {
	list, err := c.Tokens(ctx, chainID)
	if err == nil {
		for _, token := range list {
			if strings.EqualFold(token.Symbol, symbol) {
				return token, nil
			}
		}
	}

	address, defErr := DefaultAddress(chainID, symbol)
	if defErr != nil {
		if err != nil {
			return TokenInfo{}, err
		}
		return TokenInfo{}, defErr
	}

	return TokenInfo{
		Symbol:  strings.ToUpper(symbol),
		Address: address,
		ChainID: chainID,
	}, nil
}
