package stockx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/hcallahan/scoutdeck/internal/contracts"
	"github.com/hcallahan/scoutdeck/pkg/httputil"
	"github.com/hcallahan/scoutdeck/pkg/logger"
)

const platformName = "StockX"

// Client searches StockX trading card listings.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new StockX client.
func NewClient(httpClient *httputil.Client, log *logger.Logger, baseURL string) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
	}
}

// Platform returns the marketplace name.
func (c *Client) Platform() string {
	return platformName
}

type browseResponse struct {
	Products []browseProduct `json:"Products"`
}

type browseProduct struct {
	Title  string `json:"title"`
	URLKey string `json:"urlKey"`
	Market struct {
		LowestAsk float64 `json:"lowestAsk"`
	} `json:"market"`
}

// Search returns the lowest-ask listings for a player's cards.
func (c *Client) Search(ctx context.Context, playerName string) ([]contracts.MarketListing, error) {
	params := url.Values{}
	params.Set("_search", playerName)
	params.Set("productCategory", "trading cards")

	resp, err := c.httpClient.Get(ctx, c.baseURL+"/browse?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var apiResp browseResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	listings := make([]contracts.MarketListing, 0, len(apiResp.Products))
	skipped := 0
	for _, p := range apiResp.Products {
		if p.Title == "" || p.Market.LowestAsk <= 0 {
			skipped++
			continue
		}

		listings = append(listings, contracts.MarketListing{
			Title:    p.Title,
			Price:    p.Market.LowestAsk,
			URL:      "https://stockx.com/" + p.URLKey,
			Platform: platformName,
		})
	}

	c.logger.WithFields(map[string]interface{}{
		"player":  playerName,
		"count":   len(listings),
		"skipped": skipped,
	}).Debug("Fetched StockX listings")

	return listings, nil
}
