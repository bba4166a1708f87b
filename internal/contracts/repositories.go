package contracts

import "context"

// WatchlistRepository is the persistence contract for users and their
// watch entries. The scorer upserts through it; the scanner only reads.
type WatchlistRepository interface {
	// ListUsers returns all owners eligible for scanning.
	ListUsers(ctx context.Context) ([]User, error)

	// ListWatchedPlayers returns the player names on one owner's watchlist.
	ListWatchedPlayers(ctx context.Context, userID string) ([]string, error)

	// FindByPlayer returns the first watch entry for a player name,
	// or (nil, nil) when none exists.
	FindByPlayer(ctx context.Context, playerName string) (*WatchItem, error)

	// Update refreshes team/position/rank on an existing entry.
	Update(ctx context.Context, item *WatchItem) error

	// Insert creates a new watch entry.
	Insert(ctx context.Context, item *WatchItem) error
}

// ProspectRepository stores the latest scored snapshot per prospect.
// Writes are full replacements keyed by player id.
type ProspectRepository interface {
	Upsert(ctx context.Context, prospect *ScoredProspect) error
	ListTop(ctx context.Context, limit int) ([]ScoredProspect, error)
}

// DealRepository is the persistence contract for discovered deals.
type DealRepository interface {
	// FindSimilar returns an existing deal for the same owner, platform and
	// card whose asking price is within tolerance of price, or (nil, nil).
	FindSimilar(ctx context.Context, userID, platform, cardName string, price, tolerance float64) (*Deal, error)

	// Insert stores a new deal. Stores that support it enforce a unique
	// owner/platform/card/price-bucket constraint so a concurrent duplicate
	// insert is dropped instead of doubled; inserted reports whether a row
	// was actually written.
	Insert(ctx context.Context, deal *Deal) (inserted bool, err error)

	// ListByUser returns stored deals for one owner, optionally filtered
	// by status ("" means all).
	ListByUser(ctx context.Context, userID string, status DealStatus) ([]Deal, error)
}
