package ebay

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hcallahan/scoutdeck/internal/contracts"
	"github.com/hcallahan/scoutdeck/pkg/httputil"
	"github.com/hcallahan/scoutdeck/pkg/logger"
)

const platformName = "eBay"

// Client searches eBay listings through the Finding API.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	appID      string
}

// NewClient creates a new eBay client.
func NewClient(httpClient *httputil.Client, log *logger.Logger, baseURL, appID string) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
		appID:      appID,
	}
}

// Platform returns the marketplace name.
func (c *Client) Platform() string {
	return platformName
}

// Finding API wire shapes. Prices arrive as strings.
type findingResponse struct {
	SearchResult struct {
		Items []findingItem `json:"item"`
	} `json:"searchResult"`
}

type findingItem struct {
	Title         string `json:"title"`
	ViewItemURL   string `json:"viewItemURL"`
	SellingStatus struct {
		CurrentPrice struct {
			Value string `json:"__value__"`
		} `json:"currentPrice"`
	} `json:"sellingStatus"`
	Condition struct {
		ConditionDisplayName string `json:"conditionDisplayName"`
	} `json:"condition"`
	SellerInfo struct {
		PositiveFeedbackPercent string `json:"positiveFeedbackPercent"`
	} `json:"sellerInfo"`
}

// Search returns current card listings for a player.
func (c *Client) Search(ctx context.Context, playerName string) ([]contracts.MarketListing, error) {
	params := url.Values{}
	params.Set("OPERATION-NAME", "findItemsByKeywords")
	params.Set("RESPONSE-DATA-FORMAT", "JSON")
	params.Set("SECURITY-APPNAME", c.appID)
	params.Set("keywords", playerName+" card")

	resp, err := c.httpClient.Get(ctx, c.baseURL+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var apiResp findingResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	listings := make([]contracts.MarketListing, 0, len(apiResp.SearchResult.Items))
	skipped := 0
	for _, item := range apiResp.SearchResult.Items {
		price, err := strconv.ParseFloat(item.SellingStatus.CurrentPrice.Value, 64)
		if err != nil || price <= 0 || item.Title == "" {
			skipped++
			continue
		}

		rating := 0.0
		if pct, err := strconv.ParseFloat(item.SellerInfo.PositiveFeedbackPercent, 64); err == nil {
			// Feedback percent maps onto a 0-5 rating scale.
			rating = pct / 20
		}

		listings = append(listings, contracts.MarketListing{
			Title:        item.Title,
			Price:        price,
			URL:          item.ViewItemURL,
			Platform:     platformName,
			SellerRating: rating,
			Condition:    item.Condition.ConditionDisplayName,
		})
	}

	c.logger.WithFields(map[string]interface{}{
		"player":  playerName,
		"count":   len(listings),
		"skipped": skipped,
	}).Debug("Fetched eBay listings")

	return listings, nil
}
