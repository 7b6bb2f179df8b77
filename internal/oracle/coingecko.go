package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL is the public CoinGecko API root. A query for the asset
// "ethereum" becomes {base}/simple/price?ids=ethereum&vs_currencies=usd.
const DefaultBaseURL = "https://api.coingecko.com/api/v3"

const requestTimeout = 10 * time.Second

// UnavailableError reports that the USD quote for a native asset could not
// be obtained. Scans that need USD figures cannot proceed without it.
type UnavailableError struct {
	AssetID string
	Err     error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("oracle: usd price for %q unavailable: %v", e.AssetID, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// Client fetches native asset spot prices from a CoinGecko style price API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient returns a price client for the given API root. An empty baseURL
// selects the public CoinGecko endpoint.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
}

// USDPrice returns the current USD spot price for the asset identified by
// assetID ("ethereum", "binancecoin", ...). Any transport, status or decode
// failure is returned as *UnavailableError.
func (c *Client) USDPrice(ctx context.Context, assetID string) (float64, error) {
	params := url.Values{}
	params.Set("ids", assetID)
	params.Set("vs_currencies", "usd")
	endpoint := fmt.Sprintf("%s/simple/price?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, &UnavailableError{AssetID: assetID, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &UnavailableError{AssetID: assetID, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, &UnavailableError{
			AssetID: assetID,
			Err:     fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	var quotes map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&quotes); err != nil {
		return 0, &UnavailableError{AssetID: assetID, Err: err}
	}

	asset, ok := quotes[assetID]
	if !ok {
		return 0, &UnavailableError{
			AssetID: assetID,
			Err:     fmt.Errorf("asset missing from response"),
		}
	}
	price, ok := asset["usd"]
	if !ok {
		return 0, &UnavailableError{
			AssetID: assetID,
			Err:     fmt.Errorf("usd quote missing from response"),
		}
	}

	c.logger.Debug("fetched native asset price",
		zap.String("asset", assetID),
		zap.Float64("usd", price),
	)
	return price, nil
}
