package statsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/hcallahan/scoutdeck/internal/contracts"
	"github.com/hcallahan/scoutdeck/pkg/httputil"
	"github.com/hcallahan/scoutdeck/pkg/logger"
	"github.com/hcallahan/scoutdeck/pkg/redis"
)

// Client fetches live minor-league statistics. Results are cached per
// player so repeated cycles inside the TTL window do not refetch.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	cache      *redis.Cache
	baseURL    string
}

// NewClient creates a new stats client.
func NewClient(httpClient *httputil.Client, log *logger.Logger, cache *redis.Cache, baseURL string) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		cache:      cache,
		baseURL:    baseURL,
	}
}

type statsItem struct {
	PlayerID    int64   `json:"player_id"`
	OPS         float64 `json:"ops"`
	KPercent    float64 `json:"k_percent"`
	BBPercent   float64 `json:"bb_percent"`
	ISO         float64 `json:"iso"`
	BABIP       float64 `json:"babip"`
	WRCPlus     float64 `json:"wrc_plus"`
	GamesPlayed int     `json:"games_played"`
}

type statsResponse struct {
	Stats []statsItem `json:"stats"`
}

// FetchStats returns current-season stats keyed by player id. Players
// without live stats are simply absent from the map. Safe to call with an
// empty id set: returns an empty map without touching the network.
func (c *Client) FetchStats(ctx context.Context, playerIDs []int64) (map[int64]contracts.StatsRecord, error) {
	result := make(map[int64]contracts.StatsRecord, len(playerIDs))
	if len(playerIDs) == 0 {
		return result, nil
	}

	missing := make([]int64, 0, len(playerIDs))
	for _, id := range playerIDs {
		var cached contracts.StatsRecord
		found, err := c.cache.Get(ctx, redis.PlayerStatsKey(id), &cached)
		if err == nil && found {
			result[id] = cached
			continue
		}
		missing = append(missing, id)
	}

	if len(missing) == 0 {
		return result, nil
	}

	fetched, err := c.fetchBatch(ctx, missing)
	if err != nil {
		return nil, err
	}

	for id, rec := range fetched {
		result[id] = rec
		if err := c.cache.Set(ctx, redis.PlayerStatsKey(id), rec, redis.TTLMedium); err != nil {
			c.logger.WithError(err).WithField("player_id", id).Warn("Failed to cache player stats")
		}
	}

	return result, nil
}

// fetchBatch fetches stats for a set of player ids in one request.
func (c *Client) fetchBatch(ctx context.Context, playerIDs []int64) (map[int64]contracts.StatsRecord, error) {
	idsParam := make([]string, len(playerIDs))
	for i, id := range playerIDs {
		idsParam[i] = strconv.FormatInt(id, 10)
	}

	url := fmt.Sprintf("%s/stats/players?ids=%s&group=hitting&season=current", c.baseURL, strings.Join(idsParam, ","))

	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var apiResp statsResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	records := make(map[int64]contracts.StatsRecord, len(apiResp.Stats))
	for _, item := range apiResp.Stats {
		if item.PlayerID == 0 {
			continue
		}
		records[item.PlayerID] = contracts.StatsRecord{
			PlayerID:    item.PlayerID,
			OPS:         item.OPS,
			KPercent:    item.KPercent,
			BBPercent:   item.BBPercent,
			ISO:         item.ISO,
			BABIP:       item.BABIP,
			WRCPlus:     item.WRCPlus,
			GamesPlayed: item.GamesPlayed,
		}
	}

	c.logger.WithFields(map[string]interface{}{
		"requested": len(playerIDs),
		"returned":  len(records),
	}).Debug("Fetched live player stats")

	return records, nil
}
