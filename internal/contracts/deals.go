package contracts

import "time"

// DealStatus is the lifecycle state of a discovered opportunity.
// The pipeline only ever creates deals as pending; accept/reject is a
// user decision handled elsewhere.
type DealStatus string

const (
	DealPending  DealStatus = "pending"
	DealAccepted DealStatus = "accepted"
	DealRejected DealStatus = "rejected"
)

// MarketListing is one live listing fetched from a marketplace connector.
// Ephemeral; it only exists for the duration of a scan.
type MarketListing struct {
	Title        string  `json:"title"`
	Price        float64 `json:"price"`
	URL          string  `json:"url"`
	Platform     string  `json:"platform"`
	SellerRating float64 `json:"seller_rating"`
	Condition    string  `json:"condition"`
	Grade        string  `json:"grade,omitempty"`
}

// Deal is a detected underpriced listing that cleared both profit
// thresholds. Immutable once created by the pipeline.
type Deal struct {
	ID           int64      `json:"id"`
	UserID       string     `json:"user_id"`
	CardName     string     `json:"card_name"`
	PlayerName   string     `json:"player_name"`
	AskingPrice  float64    `json:"asking_price"`
	MarketValue  float64    `json:"market_value"`
	Profit       float64    `json:"profit_potential"`
	ProfitPct    float64    `json:"profit_percentage"`
	Platform     string     `json:"platform"`
	URL          string     `json:"url"`
	Status       DealStatus `json:"status"`
	DiscoveredAt time.Time  `json:"discovered_at"`
}

// ScanSummary is the run summary returned by one market-scan cycle.
type ScanSummary struct {
	DealsFound    int       `json:"deals_found"`
	DealsInserted int       `json:"deals_inserted"`
	UsersScanned  int       `json:"users_scanned"`
	Timestamp     time.Time `json:"scan_timestamp"`
}
