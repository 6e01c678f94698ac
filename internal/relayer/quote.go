package relayer

import (
	"context"
	"net/http"

	"github.com/crosslock/fusion-gateway/pkg/types"
)

// GetQuote fetches a price quote for a resolved order. The returned quote
// is immutable; the caller picks up the preset the network recommends and
// the secret count that preset demands.
func (c *Client) GetQuote(ctx context.Context, req *QuoteRequest) (*types.Quote, error) {
	var resp quoteResponse
	err := c.doJSON(ctx, types.KindQuoteFetch, http.MethodPost, "/quote", req, &resp)
	if err != nil {
		return nil, err
	}

	if resp.QuoteID == "" {
		return nil, types.NewError(types.KindQuoteFetch, "quote response missing quoteId")
	}

	presetID := resp.RecommendedPreset
	preset, ok := resp.Presets[presetID]
	if !ok {
		// No recommendation: a single configured preset is unambiguous.
		if len(resp.Presets) != 1 {
			return nil, types.NewError(types.KindQuoteFetch,
				"quote %s has no usable preset (recommended %q, %d presets)",
				resp.QuoteID, resp.RecommendedPreset, len(resp.Presets))
		}
		for id, p := range resp.Presets {
			presetID, preset = id, p
		}
	}

	if preset.SecretsCount < 1 {
		return nil, types.NewError(types.KindQuoteFetch,
			"quote %s preset %s has invalid secrets count %d",
			resp.QuoteID, presetID, preset.SecretsCount)
	}

	QuotesTotal.Inc()

	return &types.Quote{
		QuoteID:             resp.QuoteID,
		SrcTokenAmount:      resp.SrcTokenAmount,
		DstTokenAmount:      resp.DstTokenAmount,
		PresetID:            presetID,
		RequiredSecretCount: preset.SecretsCount,
	}, nil
}
