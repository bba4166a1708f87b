package market

import (
	"context"

	"github.com/hcallahan/scoutdeck/internal/contracts"
)

// Connector is the contract every marketplace source implements. The
// scanner holds an injected slice of these; adding a marketplace means
// adding a connector, nothing else changes.
type Connector interface {
	// Platform returns the marketplace name used to tag listings and deals.
	Platform() string

	// Search returns current listings for a player. A single malformed
	// listing is skipped, not an error; an error means the whole
	// connector call failed and the scanner treats it as zero listings.
	Search(ctx context.Context, playerName string) ([]contracts.MarketListing, error)
}
