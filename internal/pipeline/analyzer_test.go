package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hcallahan/scoutdeck/internal/contracts"
	"github.com/hcallahan/scoutdeck/pkg/logger"
)

func rankingRecord(provider contracts.Provider, id int64, name string, rank int) contracts.RankingRecord {
	return contracts.RankingRecord{
		Provider:   provider,
		PlayerID:   id,
		PlayerName: name,
		Team:       "MIL",
		Level:      "AAA",
		Rank:       rank,
		PerfIndex:  120,
		Age:        21,
		Position:   "OF",
	}
}

func TestAnalyzerRunFullCycle(t *testing.T) {
	board := &fakeBoard{records: []contracts.RankingRecord{
		rankingRecord(contracts.ProviderFanGraphs, 101, "Jackson Chourio", 2),
		rankingRecord(contracts.ProviderFanGraphs, 102, "Junior Caminero", 5),
	}}
	mlb := &fakeRanking{records: []contracts.RankingRecord{
		rankingRecord(contracts.ProviderMLBPipeline, 101, "Jackson Chourio", 3),
	}}
	bp := &fakeRanking{records: []contracts.RankingRecord{
		rankingRecord(contracts.ProviderProspectus, 101, "Jackson Chourio", 4),
	}}
	stats := &fakeStats{stats: map[int64]contracts.StatsRecord{
		101: {PlayerID: 101, OPS: 0.950, KPercent: 20, BBPercent: 12, ISO: 0.220},
	}}

	watchRepo := newFakeWatchRepo(contracts.User{ID: "user-1"})
	prospectRepo := newFakeProspectRepo()

	analyzer := NewAnalyzer(board, mlb, bp, stats, watchRepo, prospectRepo, logger.NewNop())

	summary, err := analyzer.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 2, summary.Inserted)
	assert.Zero(t, summary.Updated)
	assert.Equal(t, 2, summary.DataSources["fangraphs"])
	assert.Equal(t, 1, summary.DataSources["mlb_pipeline"])
	assert.Equal(t, 1, summary.DataSources["baseball_prospectus"])
	assert.Equal(t, 1, summary.DataSources["live_stats"])

	// Snapshots stored for both subjects.
	assert.Len(t, prospectRepo.prospects, 2)

	// New watch entries carry the alert price derived from the score.
	item, err := watchRepo.FindByPlayer(context.Background(), "Jackson Chourio")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "user-1", item.UserID)

	stored := prospectRepo.prospects[101]
	assert.InDelta(t, 50+stored.CompositeScore*5, item.AlertPrice, 1e-9)
}

func TestAnalyzerUpdatesExistingEntries(t *testing.T) {
	board := &fakeBoard{records: []contracts.RankingRecord{
		rankingRecord(contracts.ProviderFanGraphs, 101, "Jackson Chourio", 2),
	}}

	watchRepo := newFakeWatchRepo(contracts.User{ID: "user-1"})
	require.NoError(t, watchRepo.Insert(context.Background(), &contracts.WatchItem{
		UserID:     "user-1",
		PlayerName: "Jackson Chourio",
		Team:       "OLD",
		Rank:       99,
	}))

	analyzer := NewAnalyzer(board, &fakeRanking{}, &fakeRanking{}, &fakeStats{}, watchRepo, newFakeProspectRepo(), logger.NewNop())

	summary, err := analyzer.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Updated)
	assert.Zero(t, summary.Inserted)

	item, err := watchRepo.FindByPlayer(context.Background(), "Jackson Chourio")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "MIL", item.Team)
	assert.Equal(t, 2, item.Rank)
}

func TestAnalyzerDegradesOnProviderFailure(t *testing.T) {
	board := &fakeBoard{records: []contracts.RankingRecord{
		rankingRecord(contracts.ProviderFanGraphs, 101, "Jackson Chourio", 2),
	}}
	mlb := &fakeRanking{err: errors.New("timeout")}
	bp := &fakeRanking{err: errors.New("503")}
	stats := &fakeStats{err: errors.New("unreachable")}

	analyzer := NewAnalyzer(board, mlb, bp, stats, newFakeWatchRepo(contracts.User{ID: "user-1"}), newFakeProspectRepo(), logger.NewNop())

	summary, err := analyzer.Run(context.Background())
	require.NoError(t, err)

	// Cycle survives on the primary board alone.
	assert.Equal(t, 1, summary.Processed)
	assert.Zero(t, summary.DataSources["mlb_pipeline"])
	assert.Zero(t, summary.DataSources["baseball_prospectus"])
	assert.Zero(t, summary.DataSources["live_stats"])
}

func TestAnalyzerFailsWhenUserStoreUnreachable(t *testing.T) {
	board := &fakeBoard{records: []contracts.RankingRecord{
		rankingRecord(contracts.ProviderFanGraphs, 101, "Jackson Chourio", 2),
	}}

	watchRepo := newFakeWatchRepo()
	watchRepo.listUsersErr = errors.New("db down")

	analyzer := NewAnalyzer(board, &fakeRanking{}, &fakeRanking{}, &fakeStats{}, watchRepo, newFakeProspectRepo(), logger.NewNop())

	_, err := analyzer.Run(context.Background())
	assert.Error(t, err)
}

func TestAnalyzerCapsWatchlistSize(t *testing.T) {
	records := make([]contracts.RankingRecord, 0, watchlistTopN+30)
	for i := 0; i < watchlistTopN+30; i++ {
		records = append(records, rankingRecord(
			contracts.ProviderFanGraphs,
			int64(1000+i),
			fmt.Sprintf("Prospect %d", i),
			i+1,
		))
	}
	board := &fakeBoard{records: records}

	analyzer := NewAnalyzer(board, &fakeRanking{}, &fakeRanking{}, &fakeStats{}, newFakeWatchRepo(contracts.User{ID: "user-1"}), newFakeProspectRepo(), logger.NewNop())

	summary, err := analyzer.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, watchlistTopN, summary.Processed)
	assert.Equal(t, watchlistTopN, summary.Inserted)
}

func TestAnalyzerSkipsSubjectsWithoutRanks(t *testing.T) {
	// Unknown provider weight means no usable rank, so the subject is
	// silently excluded rather than scored at zero.
	board := &fakeBoard{records: []contracts.RankingRecord{
		{Provider: "unknown_source", PlayerID: 101, PlayerName: "Mystery Player", Rank: 1, Level: "AA", Age: 20},
		rankingRecord(contracts.ProviderFanGraphs, 102, "Junior Caminero", 5),
	}}

	analyzer := NewAnalyzer(board, &fakeRanking{}, &fakeRanking{}, &fakeStats{}, newFakeWatchRepo(contracts.User{ID: "user-1"}), newFakeProspectRepo(), logger.NewNop())

	summary, err := analyzer.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Processed)
}
