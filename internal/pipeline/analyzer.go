package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/hcallahan/scoutdeck/internal/contracts"
	"github.com/hcallahan/scoutdeck/internal/scoring"
	"github.com/hcallahan/scoutdeck/pkg/logger"
)

const (
	// providerFetchLimit is how deep the primary board is fetched.
	providerFetchLimit = 200

	// watchlistTopN is how many scored prospects flow into watchlists.
	watchlistTopN = 150
)

// ProspectBoard fetches the primary ranking board.
type ProspectBoard interface {
	FetchTopProspects(ctx context.Context, limit int) ([]contracts.RankingRecord, int, error)
}

// RankingProvider fetches a secondary corroborating ranking list.
type RankingProvider interface {
	FetchRankings(ctx context.Context) ([]contracts.RankingRecord, int, error)
}

// StatsProvider fetches live stats for a set of player ids.
type StatsProvider interface {
	FetchStats(ctx context.Context, playerIDs []int64) (map[int64]contracts.StatsRecord, error)
}

// Analyzer runs one full evaluation cycle: fetch rankings from every
// provider, enrich with live stats, score, and refresh watchlists.
type Analyzer struct {
	fangraphs  ProspectBoard
	pipeline   RankingProvider
	prospectus RankingProvider
	stats      StatsProvider

	watchRepo    contracts.WatchlistRepository
	prospectRepo contracts.ProspectRepository
	logger       *logger.Logger
}

// NewAnalyzer creates a new analyzer.
func NewAnalyzer(
	fangraphs ProspectBoard,
	mlbPipeline RankingProvider,
	prospectus RankingProvider,
	stats StatsProvider,
	watchRepo contracts.WatchlistRepository,
	prospectRepo contracts.ProspectRepository,
	log *logger.Logger,
) *Analyzer {
	return &Analyzer{
		fangraphs:    fangraphs,
		pipeline:     mlbPipeline,
		prospectus:   prospectus,
		stats:        stats,
		watchRepo:    watchRepo,
		prospectRepo: prospectRepo,
		logger:       log,
	}
}

// Run executes one evaluation cycle. Provider failures degrade that
// provider to an empty list; a cycle only fails outright when persistence
// setup is broken. All provider responses are gathered before scoring so
// a full cycle never mixes fresh and stale rankings.
func (a *Analyzer) Run(ctx context.Context) (*contracts.AnalyzeSummary, error) {
	startTime := time.Now()
	a.logger.Info("Prospect analysis cycle started")

	var (
		wg         sync.WaitGroup
		primary    []contracts.RankingRecord
		pipeline   []contracts.RankingRecord
		prospectus []contracts.RankingRecord
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		records, _, err := a.fangraphs.FetchTopProspects(ctx, providerFetchLimit)
		if err != nil {
			a.logger.WithError(err).Warn("FanGraphs fetch failed, continuing without it")
			return
		}
		primary = records
	}()
	go func() {
		defer wg.Done()
		records, _, err := a.pipeline.FetchRankings(ctx)
		if err != nil {
			a.logger.WithError(err).Warn("MLB Pipeline fetch failed, continuing without it")
			return
		}
		pipeline = records
	}()
	go func() {
		defer wg.Done()
		records, _, err := a.prospectus.FetchRankings(ctx)
		if err != nil {
			a.logger.WithError(err).Warn("Baseball Prospectus fetch failed, continuing without it")
			return
		}
		prospectus = records
	}()
	wg.Wait()

	secondaries := make(map[int64][]contracts.RankingRecord, len(pipeline)+len(prospectus))
	for _, rec := range pipeline {
		secondaries[rec.PlayerID] = append(secondaries[rec.PlayerID], rec)
	}
	for _, rec := range prospectus {
		secondaries[rec.PlayerID] = append(secondaries[rec.PlayerID], rec)
	}

	playerIDs := make([]int64, 0, len(primary))
	for _, rec := range primary {
		playerIDs = append(playerIDs, rec.PlayerID)
	}

	statsByID, err := a.stats.FetchStats(ctx, playerIDs)
	if err != nil {
		a.logger.WithError(err).Warn("Live stats fetch failed, falling back to provider indexes")
		statsByID = map[int64]contracts.StatsRecord{}
	}

	scored := make([]contracts.ScoredProspect, 0, len(primary))
	for _, rec := range primary {
		in := scoring.Input{
			Primary:     rec,
			Secondaries: secondaries[rec.PlayerID],
		}
		if s, ok := statsByID[rec.PlayerID]; ok {
			stats := s
			in.Stats = &stats
		}

		prospect, ok := scoring.Score(in)
		if !ok {
			continue
		}
		scored = append(scored, prospect)
	}

	scoring.SortProspects(scored)
	if len(scored) > watchlistTopN {
		scored = scored[:watchlistTopN]
	}

	summary := &contracts.AnalyzeSummary{
		Processed: len(scored),
		DataSources: map[string]int{
			"fangraphs":           len(primary),
			"mlb_pipeline":        len(pipeline),
			"baseball_prospectus": len(prospectus),
			"live_stats":          len(statsByID),
		},
		Timestamp: time.Now().UTC(),
	}

	owner, err := a.attributionOwner(ctx)
	if err != nil {
		return nil, err
	}

	for i := range scored {
		prospect := &scored[i]

		if err := a.prospectRepo.Upsert(ctx, prospect); err != nil {
			a.logger.WithError(err).WithField("player", prospect.PlayerName).Warn("Failed to store prospect snapshot")
		}

		updated, inserted, err := a.refreshWatchEntry(ctx, prospect, owner)
		if err != nil {
			a.logger.WithError(err).WithField("player", prospect.PlayerName).Warn("Failed to refresh watch entry, skipping")
			continue
		}
		if updated {
			summary.Updated++
		}
		if inserted {
			summary.Inserted++
		}
	}

	a.logger.WithFields(map[string]interface{}{
		"processed": summary.Processed,
		"updated":   summary.Updated,
		"inserted":  summary.Inserted,
		"duration":  time.Since(startTime),
	}).Info("Prospect analysis cycle completed")

	return summary, nil
}

// attributionOwner picks the owner new watch entries are attributed to.
// An unreachable user store is a setup failure and fails the cycle.
func (a *Analyzer) attributionOwner(ctx context.Context) (string, error) {
	users, err := a.watchRepo.ListUsers(ctx)
	if err != nil {
		return "", err
	}
	if len(users) == 0 {
		return "", nil
	}
	return users[0].ID, nil
}

// refreshWatchEntry updates an existing watch entry for the player or
// inserts a new one for the attribution owner.
func (a *Analyzer) refreshWatchEntry(ctx context.Context, p *contracts.ScoredProspect, owner string) (updated, inserted bool, err error) {
	existing, err := a.watchRepo.FindByPlayer(ctx, p.PlayerName)
	if err != nil {
		return false, false, err
	}

	if existing != nil {
		existing.Team = p.Team
		existing.Position = p.Position
		existing.Rank = p.CompositeRank
		if err := a.watchRepo.Update(ctx, existing); err != nil {
			return false, false, err
		}
		return true, false, nil
	}

	if owner == "" {
		a.logger.WithField("player", p.PlayerName).Debug("No owner to attribute new watch entry to, skipping insert")
		return false, false, nil
	}

	item := &contracts.WatchItem{
		UserID:     owner,
		PlayerName: p.PlayerName,
		Team:       p.Team,
		Position:   p.Position,
		Rank:       p.CompositeRank,
		AlertPrice: 50 + p.CompositeScore*5,
	}
	if err := a.watchRepo.Insert(ctx, item); err != nil {
		return false, false, err
	}
	return false, true, nil
}
