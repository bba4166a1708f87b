package prospects

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hcallahan/scoutdeck/internal/contracts"
)

// Repository stores the latest scored snapshot per prospect.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new prospect repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

var _ contracts.ProspectRepository = (*Repository)(nil)

// Upsert replaces the stored snapshot for one prospect. Keyed by player
// id so reruns within a cycle are idempotent.
func (r *Repository) Upsert(ctx context.Context, p *contracts.ScoredProspect) error {
	query := `
		INSERT INTO prospects (
			player_id, player_name, team, position, level, source_rank,
			composite_score, ceiling_score, floor_score, risk_tier, composite_rank, age, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		ON CONFLICT (player_id) DO UPDATE SET
			player_name = EXCLUDED.player_name,
			team = EXCLUDED.team,
			position = EXCLUDED.position,
			level = EXCLUDED.level,
			source_rank = EXCLUDED.source_rank,
			composite_score = EXCLUDED.composite_score,
			ceiling_score = EXCLUDED.ceiling_score,
			floor_score = EXCLUDED.floor_score,
			risk_tier = EXCLUDED.risk_tier,
			composite_rank = EXCLUDED.composite_rank,
			age = EXCLUDED.age,
			updated_at = NOW()
	`

	_, err := r.pool.Exec(ctx, query,
		p.PlayerID, p.PlayerName, p.Team, p.Position, p.Level, p.SourceRank,
		p.CompositeScore, p.CeilingScore, p.FloorScore, p.RiskTier, p.CompositeRank, p.Age,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert prospect: %w", err)
	}

	return nil
}

// ListTop returns the highest scored prospects in composite order.
func (r *Repository) ListTop(ctx context.Context, limit int) ([]contracts.ScoredProspect, error) {
	query := `
		SELECT player_id, player_name, team, position, level, source_rank,
			composite_score, ceiling_score, floor_score, risk_tier, composite_rank, age
		FROM prospects
		ORDER BY composite_score DESC, composite_rank ASC, player_id ASC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query prospects: %w", err)
	}
	defer rows.Close()

	list := make([]contracts.ScoredProspect, 0, limit)
	for rows.Next() {
		var p contracts.ScoredProspect
		err := rows.Scan(
			&p.PlayerID, &p.PlayerName, &p.Team, &p.Position, &p.Level, &p.SourceRank,
			&p.CompositeScore, &p.CeilingScore, &p.FloorScore, &p.RiskTier, &p.CompositeRank, &p.Age,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prospect: %w", err)
		}
		list = append(list, p)
	}

	return list, rows.Err()
}
