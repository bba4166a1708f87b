package watchlist

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hcallahan/scoutdeck/internal/contracts"
)

// Repository handles user and watchlist persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new watchlist repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

var _ contracts.WatchlistRepository = (*Repository)(nil)

// ListUsers returns all owners eligible for scanning.
func (r *Repository) ListUsers(ctx context.Context) ([]contracts.User, error) {
	rows, err := r.pool.Query(ctx, "SELECT id, email FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make([]contracts.User, 0)
	for rows.Next() {
		var u contracts.User
		if err := rows.Scan(&u.ID, &u.Email); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// ListWatchedPlayers returns the player names on one owner's watchlist.
func (r *Repository) ListWatchedPlayers(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT player_name
		FROM watchlist
		WHERE user_id = $1
		ORDER BY prospect_rank
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query watched players: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan player name: %w", err)
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// FindByPlayer returns the first watch entry for a player name.
func (r *Repository) FindByPlayer(ctx context.Context, playerName string) (*contracts.WatchItem, error) {
	query := `
		SELECT id, user_id, player_name, team, position, prospect_rank, alert_price, created_at
		FROM watchlist
		WHERE player_name = $1
		ORDER BY id
		LIMIT 1
	`

	var item contracts.WatchItem
	err := r.pool.QueryRow(ctx, query, playerName).Scan(
		&item.ID, &item.UserID, &item.PlayerName, &item.Team,
		&item.Position, &item.Rank, &item.AlertPrice, &item.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil // Not found, not an error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find watch entry: %w", err)
	}

	return &item, nil
}

// Update refreshes team/position/rank on an existing entry.
func (r *Repository) Update(ctx context.Context, item *contracts.WatchItem) error {
	query := `
		UPDATE watchlist
		SET team = $1, position = $2, prospect_rank = $3, updated_at = NOW()
		WHERE id = $4
	`

	result, err := r.pool.Exec(ctx, query, item.Team, item.Position, item.Rank, item.ID)
	if err != nil {
		return fmt.Errorf("failed to update watch entry: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("watch entry not found: %d", item.ID)
	}

	return nil
}

// Insert creates a new watch entry.
func (r *Repository) Insert(ctx context.Context, item *contracts.WatchItem) error {
	query := `
		INSERT INTO watchlist (user_id, player_name, team, position, prospect_rank, alert_price)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, player_name) DO UPDATE SET
			team = EXCLUDED.team,
			position = EXCLUDED.position,
			prospect_rank = EXCLUDED.prospect_rank,
			alert_price = EXCLUDED.alert_price,
			updated_at = NOW()
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		item.UserID, item.PlayerName, item.Team, item.Position, item.Rank, item.AlertPrice,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert watch entry: %w", err)
	}

	return nil
}
