package relayer

import (
	"context"
	"fmt"
	"net/http"

	"github.com/crosslock/fusion-gateway/pkg/types"
)

// CreateOrder asks the upstream network to construct an order for a quote,
// committing it to the given hash lock and secret hashes.
func (c *Client) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResponse, error) {
	if req.SourceTag == "" {
		req.SourceTag = c.sourceTag
	}

	var resp CreateOrderResponse
	err := c.doJSON(ctx, types.KindSubmission, http.MethodPost, "/order", req, &resp)
	if err != nil {
		return nil, err
	}

	if resp.Hash == "" {
		return nil, types.NewError(types.KindSubmission, "create order response missing hash")
	}

	OrdersCreatedTotal.Inc()

	return &resp, nil
}

// SubmitOrder relays a constructed order for execution. Failures are never
// retried here: the source amount may already be escrowed on-chain, so a
// blind retry risks double submission - ambiguity is fatal.
func (c *Client) SubmitOrder(ctx context.Context, req *SubmitOrderRequest) (*SubmitOrderResponse, error) {
	var resp SubmitOrderResponse
	err := c.doJSON(ctx, types.KindSubmission, http.MethodPost, "/order/submit", req, &resp)
	if err != nil {
		return nil, err
	}

	OrdersSubmittedTotal.Inc()

	return &resp, nil
}

// GetOrderStatus fetches the current upstream view of a submitted order.
func (c *Client) GetOrderStatus(ctx context.Context, orderHash string) (*types.OrderStatus, error) {
	var status types.OrderStatus
	path := fmt.Sprintf("/order/status/%s", orderHash)
	err := c.doJSON(ctx, types.KindStatusFetch, http.MethodGet, path, nil, &status)
	if err != nil {
		return nil, err
	}

	return &status, nil
}

// GetReadyFills lists the escrow fills whose secrets may now be revealed.
func (c *Client) GetReadyFills(ctx context.Context, orderHash string) ([]ReadyFill, error) {
	var resp readyFillsResponse
	path := fmt.Sprintf("/order/%s/ready-to-accept-secret-fills", orderHash)
	err := c.doJSON(ctx, types.KindStatusFetch, http.MethodGet, path, nil, &resp)
	if err != nil {
		return nil, err
	}

	return resp.Fills, nil
}

// SubmitSecret reveals one secret to the upstream network. Irreversible:
// any party holding the secret can claim the corresponding escrow.
func (c *Client) SubmitSecret(ctx context.Context, orderHash, secret string) error {
	req := submitSecretRequest{
		OrderHash: orderHash,
		Secret:    secret,
	}

	err := c.doJSON(ctx, types.KindSubmission, http.MethodPost, "/order/secret", req, nil)
	if err != nil {
		return err
	}

	SecretsSubmittedTotal.Inc()

	return nil
}
