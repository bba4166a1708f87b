package deals

import (
	"context"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hcallahan/scoutdeck/internal/contracts"
)

// Repository handles discovered deal persistence. Inserts go through a
// unique owner/platform/card/price-bucket index so two concurrent scans
// finding the same listing produce one row.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new deal repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

var _ contracts.DealRepository = (*Repository)(nil)

// FindSimilar returns an existing deal for the same owner, platform and
// card within tolerance dollars of price, or (nil, nil).
func (r *Repository) FindSimilar(ctx context.Context, userID, platform, cardName string, price, tolerance float64) (*contracts.Deal, error) {
	query := `
		SELECT id, user_id, card_name, player_name, asking_price, market_value,
			profit_potential, profit_percentage, platform, url, status, discovered_at
		FROM deals
		WHERE user_id = $1 AND platform = $2 AND card_name = $3
			AND asking_price BETWEEN $4 AND $5
		ORDER BY discovered_at DESC
		LIMIT 1
	`

	var d contracts.Deal
	err := r.pool.QueryRow(ctx, query, userID, platform, cardName, price-tolerance, price+tolerance).Scan(
		&d.ID, &d.UserID, &d.CardName, &d.PlayerName, &d.AskingPrice, &d.MarketValue,
		&d.Profit, &d.ProfitPct, &d.Platform, &d.URL, &d.Status, &d.DiscoveredAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil // Not found, not an error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find similar deal: %w", err)
	}

	return &d, nil
}

// Insert stores a new deal. The price bucket collapses near-identical
// prices so the unique index can absorb a check-then-insert race.
func (r *Repository) Insert(ctx context.Context, deal *contracts.Deal) (bool, error) {
	query := `
		INSERT INTO deals (
			user_id, card_name, player_name, asking_price, market_value,
			profit_potential, profit_percentage, platform, url, status, price_bucket
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id, platform, card_name, price_bucket) DO NOTHING
		RETURNING id, discovered_at
	`

	err := r.pool.QueryRow(ctx, query,
		deal.UserID, deal.CardName, deal.PlayerName, deal.AskingPrice, deal.MarketValue,
		deal.Profit, deal.ProfitPct, deal.Platform, deal.URL, deal.Status,
		PriceBucket(deal.AskingPrice),
	).Scan(&deal.ID, &deal.DiscoveredAt)
	if err == pgx.ErrNoRows {
		return false, nil // Conflict, a concurrent scan already wrote this deal
	}
	if err != nil {
		return false, fmt.Errorf("failed to insert deal: %w", err)
	}

	return true, nil
}

// ListByUser returns stored deals for one owner, newest first. An empty
// status means all statuses.
func (r *Repository) ListByUser(ctx context.Context, userID string, status contracts.DealStatus) ([]contracts.Deal, error) {
	query := `
		SELECT id, user_id, card_name, player_name, asking_price, market_value,
			profit_potential, profit_percentage, platform, url, status, discovered_at
		FROM deals
		WHERE user_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY discovered_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to query deals: %w", err)
	}
	defer rows.Close()

	list := make([]contracts.Deal, 0)
	for rows.Next() {
		var d contracts.Deal
		err := rows.Scan(
			&d.ID, &d.UserID, &d.CardName, &d.PlayerName, &d.AskingPrice, &d.MarketValue,
			&d.Profit, &d.ProfitPct, &d.Platform, &d.URL, &d.Status, &d.DiscoveredAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deal: %w", err)
		}
		list = append(list, d)
	}

	return list, rows.Err()
}

// PriceBucket maps an asking price onto a $20 bucket, twice the dedup
// tolerance, so prices within tolerance of each other land in the same
// or adjacent buckets.
func PriceBucket(price float64) int64 {
	return int64(math.Floor(price / 20))
}
