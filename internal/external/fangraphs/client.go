package fangraphs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hcallahan/scoutdeck/internal/contracts"
	"github.com/hcallahan/scoutdeck/pkg/httputil"
	"github.com/hcallahan/scoutdeck/pkg/logger"
)

// Client fetches the FanGraphs prospect board. FanGraphs is the primary
// ranking provider: its records carry the performance index (wRC+) the
// scorer falls back to when live stats are missing.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	apiKey     string
}

// NewClient creates a new FanGraphs client.
func NewClient(httpClient *httputil.Client, log *logger.Logger, baseURL, apiKey string) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// prospectItem is the provider wire shape. Field casing follows the
// FanGraphs payload.
type prospectItem struct {
	PlayerID   int64   `json:"PlayerId"`
	PlayerName string  `json:"PlayerName"`
	Team       string  `json:"Team"`
	Level      string  `json:"Level"`
	Rank       int     `json:"Rank"`
	WRCPlus    float64 `json:"wRCPlus"`
	Age        int     `json:"Age"`
	Position   string  `json:"Position"`
}

// FetchTopProspects fetches the current top prospect board, normalized
// into canonical ranking records. Malformed rows are skipped and counted,
// never fatal.
func (c *Client) FetchTopProspects(ctx context.Context, limit int) ([]contracts.RankingRecord, int, error) {
	url := fmt.Sprintf("%s/prospects/board?limit=%d", c.baseURL, limit)
	if c.apiKey != "" {
		url += "&apikey=" + c.apiKey
	}

	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return nil, 0, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var items []prospectItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, 0, fmt.Errorf("decode response: %w", err)
	}

	records := make([]contracts.RankingRecord, 0, len(items))
	skipped := 0
	for _, item := range items {
		if item.PlayerID == 0 || item.PlayerName == "" || item.Rank <= 0 {
			skipped++
			continue
		}

		records = append(records, contracts.RankingRecord{
			Provider:   contracts.ProviderFanGraphs,
			PlayerID:   item.PlayerID,
			PlayerName: item.PlayerName,
			Team:       item.Team,
			Level:      item.Level,
			Rank:       item.Rank,
			PerfIndex:  item.WRCPlus,
			Age:        item.Age,
			Position:   item.Position,
		})
	}

	c.logger.WithFields(map[string]interface{}{
		"count":   len(records),
		"skipped": skipped,
	}).Debug("Fetched FanGraphs prospect board")

	return records, skipped, nil
}
