package contracts

import "time"

// Provider identifies a ranking data source.
type Provider string

const (
	ProviderFanGraphs   Provider = "fangraphs"
	ProviderMLBPipeline Provider = "mlb_pipeline"
	ProviderProspectus  Provider = "baseball_prospectus"
)

// RiskTier classifies the ceiling/floor spread of a prospect.
type RiskTier string

const (
	RiskLow    RiskTier = "Low"
	RiskMedium RiskTier = "Medium"
	RiskHigh   RiskTier = "High"
)

// RankingRecord is the canonical, provider-agnostic ranking row.
// Every connector normalizes its own payload shape into this type at the
// boundary, so the scorer never sees provider-specific fields.
type RankingRecord struct {
	Provider   Provider `json:"provider"`
	PlayerID   int64    `json:"player_id"`
	PlayerName string   `json:"player_name"`
	Team       string   `json:"team"`
	Level      string   `json:"level"` // A, A+, AA, AAA, MLB
	Rank       int      `json:"rank"`
	PerfIndex  float64  `json:"perf_index"` // provider-reported performance index (wRC+ style)
	Age        int      `json:"age"`
	Position   string   `json:"position"`

	// Optional outlook fields, only some providers report them.
	Ceiling *float64 `json:"ceiling,omitempty"`
	Floor   *float64 `json:"floor,omitempty"`
	Risk    RiskTier `json:"risk,omitempty"`
}

// StatsRecord holds live minor-league performance statistics for one player.
type StatsRecord struct {
	PlayerID    int64   `json:"player_id"`
	OPS         float64 `json:"ops"`
	KPercent    float64 `json:"k_percent"`
	BBPercent   float64 `json:"bb_percent"`
	ISO         float64 `json:"iso"`
	BABIP       float64 `json:"babip"`
	WRCPlus     float64 `json:"wrc_plus"`
	GamesPlayed int     `json:"games_played"`
}

// ScoredProspect is the fused evaluation of one prospect. It is recomputed
// from scratch every cycle and fully replaces the previous snapshot.
type ScoredProspect struct {
	PlayerID       int64    `json:"player_id"`
	PlayerName     string   `json:"player_name"`
	Team           string   `json:"team"`
	Position       string   `json:"position"`
	Level          string   `json:"level"`
	SourceRank     int      `json:"source_rank"`     // primary provider rank
	CompositeScore float64  `json:"composite_score"` // 0-100
	CeilingScore   float64  `json:"ceiling_score"`
	FloorScore     float64  `json:"floor_score"`
	RiskTier       RiskTier `json:"risk_tier"`
	CompositeRank  int      `json:"composite_rank"`
	Age            int      `json:"age"`
}

// WatchItem is an owner's watch entry for a player.
type WatchItem struct {
	ID         int64     `json:"id"`
	UserID     string    `json:"user_id"`
	PlayerName string    `json:"player_name"`
	Team       string    `json:"team"`
	Position   string    `json:"position"`
	Rank       int       `json:"prospect_rank"`
	AlertPrice float64   `json:"alert_price"`
	CreatedAt  time.Time `json:"created_at"`
}

// User is the minimal owner identity needed for write attribution.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AnalyzeSummary is the run summary returned by one scorer cycle.
type AnalyzeSummary struct {
	Processed   int            `json:"processed"`
	Updated     int            `json:"updated"`
	Inserted    int            `json:"inserted"`
	DataSources map[string]int `json:"data_sources"`
	Timestamp   time.Time      `json:"analysis_timestamp"`
}
