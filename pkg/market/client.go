// Package market fetches coin prices from a CoinGecko-compatible API.
// Every call is a fresh round trip: no caching, no retries.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/xanadu-labs/coinbot/pkg/errs"
)

const requestTimeout = 10 * time.Second

// Snapshot is a transient read of a coin's market state. Percentage fields
// are pointers because the upstream omits them for thinly traded coins.
type Snapshot struct {
	Name     string
	Symbol   string
	PriceUSD float64
	Pct24h   *float64
	Pct7d    *float64
}

type Client struct {
	httpClient    *http.Client
	baseURL       string
	defaultCoinID string
}

func NewClient(baseURL, defaultCoinID string) *Client {
	return &Client{
		httpClient:    &http.Client{Timeout: requestTimeout},
		baseURL:       baseURL,
		defaultCoinID: defaultCoinID,
	}
}

// DefaultCoinID returns the bot's designated token identifier.
func (c *Client) DefaultCoinID() string {
	return c.defaultCoinID
}

type coinResponse struct {
	Name       string `json:"name"`
	Symbol     string `json:"symbol"`
	MarketData *struct {
		CurrentPrice struct {
			USD *float64 `json:"usd"`
		} `json:"current_price"`
		PriceChangePercentage24h *float64 `json:"price_change_percentage_24h"`
		PriceChangePercentage7d  *float64 `json:"price_change_percentage_7d"`
	} `json:"market_data"`
}

// GetSnapshot fetches the current market state of coinID. An empty coinID
// falls back to the default coin.
func (c *Client) GetSnapshot(ctx context.Context, coinID string) (*Snapshot, error) {
	if coinID == "" {
		coinID = c.defaultCoinID
	}

	endpoint := fmt.Sprintf("%s/coins/%s", c.baseURL, url.PathEscape(coinID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errs.Wrap(errs.KindUpstream, "build price request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errs.Wrap(errs.KindUpstream, "price service unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errs.New(errs.KindUnknownCoin, fmt.Sprintf("coin %q not found", coinID))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errs.New(errs.KindUpstream, fmt.Sprintf("price service returned status %d", resp.StatusCode))
	}

	var body coinResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errs.Wrap(errs.KindUpstream, "decode price response", err)
	}

	// The upstream signals an unrecognized id with a body lacking market
	// fields as often as with a 404.
	if body.MarketData == nil || body.MarketData.CurrentPrice.USD == nil {
		return nil, errs.New(errs.KindUnknownCoin, fmt.Sprintf("no market data for coin %q", coinID))
	}

	return &Snapshot{
		Name:     body.Name,
		Symbol:   body.Symbol,
		PriceUSD: *body.MarketData.CurrentPrice.USD,
		Pct24h:   body.MarketData.PriceChangePercentage24h,
		Pct7d:    body.MarketData.PriceChangePercentage7d,
	}, nil
}
