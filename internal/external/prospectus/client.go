package prospectus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hcallahan/scoutdeck/internal/contracts"
	"github.com/hcallahan/scoutdeck/pkg/httputil"
	"github.com/hcallahan/scoutdeck/pkg/logger"
)

// Client fetches Baseball Prospectus rankings. BP is the only provider
// that reports explicit ceiling/floor/risk, which the scorer prefers over
// its derived band.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	apiKey     string
}

// NewClient creates a new Baseball Prospectus client.
func NewClient(httpClient *httputil.Client, log *logger.Logger, baseURL, apiKey string) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

type rankingItem struct {
	PlayerID int64    `json:"player_id"`
	Name     string   `json:"name"`
	Team     string   `json:"team"`
	Rank     int      `json:"rank"`
	Ceiling  *float64 `json:"ceiling"`
	Floor    *float64 `json:"floor"`
	Risk     string   `json:"risk"`
}

// FetchRankings fetches the current BP prospect rankings. Malformed rows
// are skipped and counted.
func (c *Client) FetchRankings(ctx context.Context) ([]contracts.RankingRecord, int, error) {
	url := fmt.Sprintf("%s/prospects/rankings", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, 0, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var items []rankingItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, 0, fmt.Errorf("decode response: %w", err)
	}

	records := make([]contracts.RankingRecord, 0, len(items))
	skipped := 0
	for _, item := range items {
		if item.PlayerID == 0 || item.Name == "" || item.Rank <= 0 {
			skipped++
			continue
		}

		records = append(records, contracts.RankingRecord{
			Provider:   contracts.ProviderProspectus,
			PlayerID:   item.PlayerID,
			PlayerName: item.Name,
			Team:       item.Team,
			Rank:       item.Rank,
			Ceiling:    item.Ceiling,
			Floor:      item.Floor,
			Risk:       parseRisk(item.Risk),
		})
	}

	c.logger.WithFields(map[string]interface{}{
		"count":   len(records),
		"skipped": skipped,
	}).Debug("Fetched Baseball Prospectus rankings")

	return records, skipped, nil
}

// parseRisk maps the provider's risk string onto the canonical tiers.
// Unknown values are dropped so the scorer derives its own tier.
func parseRisk(risk string) contracts.RiskTier {
	switch risk {
	case "Low":
		return contracts.RiskLow
	case "Medium":
		return contracts.RiskMedium
	case "High":
		return contracts.RiskHigh
	default:
		return ""
	}
}
