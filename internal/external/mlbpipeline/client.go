package mlbpipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hcallahan/scoutdeck/internal/contracts"
	"github.com/hcallahan/scoutdeck/pkg/httputil"
	"github.com/hcallahan/scoutdeck/pkg/logger"
)

// Client fetches MLB Pipeline rankings, a secondary corroborating source.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new MLB Pipeline client.
func NewClient(httpClient *httputil.Client, log *logger.Logger, baseURL string) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
	}
}

type pipelineItem struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Team     string `json:"team"`
	Position string `json:"position"`
	Rank     int    `json:"rank"`
	ETA      string `json:"eta"`
	Grade    int    `json:"grade"`
}

type pipelineResponse struct {
	Prospects []pipelineItem `json:"prospects"`
}

// FetchRankings fetches the current Pipeline top list. Malformed rows are
// skipped and counted.
func (c *Client) FetchRankings(ctx context.Context) ([]contracts.RankingRecord, int, error) {
	url := fmt.Sprintf("%s/prospects/rankings", c.baseURL)

	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return nil, 0, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var apiResp pipelineResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, 0, fmt.Errorf("decode response: %w", err)
	}

	records := make([]contracts.RankingRecord, 0, len(apiResp.Prospects))
	skipped := 0
	for _, item := range apiResp.Prospects {
		if item.ID == 0 || item.Name == "" || item.Rank <= 0 {
			skipped++
			continue
		}

		records = append(records, contracts.RankingRecord{
			Provider:   contracts.ProviderMLBPipeline,
			PlayerID:   item.ID,
			PlayerName: item.Name,
			Team:       item.Team,
			Rank:       item.Rank,
			Position:   item.Position,
		})
	}

	c.logger.WithFields(map[string]interface{}{
		"count":   len(records),
		"skipped": skipped,
	}).Debug("Fetched MLB Pipeline rankings")

	return records, skipped, nil
}
