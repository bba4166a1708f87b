package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/hcallahan/scoutdeck/internal/contracts"
)

// In-memory fakes shared by the analyzer and scanner tests. All of them
// are mutex-guarded so concurrent cycles can share one instance.

type fakeWatchRepo struct {
	mu      sync.Mutex
	users   []contracts.User
	watched map[string][]string
	items   map[string]*contracts.WatchItem // keyed by player name
	nextID  int64

	listUsersErr error
}

func newFakeWatchRepo(users ...contracts.User) *fakeWatchRepo {
	return &fakeWatchRepo{
		users:   users,
		watched: make(map[string][]string),
		items:   make(map[string]*contracts.WatchItem),
	}
}

func (f *fakeWatchRepo) ListUsers(ctx context.Context) ([]contracts.User, error) {
	if f.listUsersErr != nil {
		return nil, f.listUsersErr
	}
	return f.users, nil
}

func (f *fakeWatchRepo) ListWatchedPlayers(ctx context.Context, userID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.watched[userID], nil
}

func (f *fakeWatchRepo) FindByPlayer(ctx context.Context, playerName string) (*contracts.WatchItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if item, ok := f.items[playerName]; ok {
		copied := *item
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeWatchRepo) Update(ctx context.Context, item *contracts.WatchItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.items[item.PlayerName]
	if !ok {
		return errors.New("watch entry not found")
	}
	*existing = *item
	return nil
}

func (f *fakeWatchRepo) Insert(ctx context.Context, item *contracts.WatchItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	item.ID = f.nextID
	copied := *item
	f.items[item.PlayerName] = &copied
	f.watched[item.UserID] = append(f.watched[item.UserID], item.PlayerName)
	return nil
}

type fakeProspectRepo struct {
	mu        sync.Mutex
	prospects map[int64]contracts.ScoredProspect
	upsertErr map[int64]error
}

func newFakeProspectRepo() *fakeProspectRepo {
	return &fakeProspectRepo{
		prospects: make(map[int64]contracts.ScoredProspect),
		upsertErr: make(map[int64]error),
	}
}

func (f *fakeProspectRepo) Upsert(ctx context.Context, p *contracts.ScoredProspect) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.upsertErr[p.PlayerID]; err != nil {
		return err
	}
	f.prospects[p.PlayerID] = *p
	return nil
}

func (f *fakeProspectRepo) ListTop(ctx context.Context, limit int) ([]contracts.ScoredProspect, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]contracts.ScoredProspect, 0, len(f.prospects))
	for _, p := range f.prospects {
		out = append(out, p)
	}
	return out, nil
}

// fakeDealRepo mimics the store's unique price-bucket constraint so
// conditional-insert behavior is observable under concurrency.
type fakeDealRepo struct {
	mu      sync.Mutex
	deals   []contracts.Deal
	buckets map[string]bool
	nextID  int64
}

func newFakeDealRepo() *fakeDealRepo {
	return &fakeDealRepo{buckets: make(map[string]bool)}
}

func bucketKey(userID, platform, cardName string, price float64) string {
	return fmt.Sprintf("%s|%s|%s|%d", userID, platform, cardName, int64(math.Floor(price/20)))
}

func (f *fakeDealRepo) FindSimilar(ctx context.Context, userID, platform, cardName string, price, tolerance float64) (*contracts.Deal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.deals {
		d := &f.deals[i]
		if d.UserID == userID && d.Platform == platform && d.CardName == cardName &&
			math.Abs(d.AskingPrice-price) <= tolerance {
			copied := *d
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeDealRepo) Insert(ctx context.Context, deal *contracts.Deal) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := bucketKey(deal.UserID, deal.Platform, deal.CardName, deal.AskingPrice)
	if f.buckets[key] {
		return false, nil
	}
	f.buckets[key] = true
	f.nextID++
	deal.ID = f.nextID
	f.deals = append(f.deals, *deal)
	return true, nil
}

func (f *fakeDealRepo) ListByUser(ctx context.Context, userID string, status contracts.DealStatus) ([]contracts.Deal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]contracts.Deal, 0)
	for _, d := range f.deals {
		if d.UserID == userID && (status == "" || d.Status == status) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDealRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.deals)
}

type fakeConnector struct {
	platform string
	listings []contracts.MarketListing
	err      error
}

func (f *fakeConnector) Platform() string { return f.platform }

func (f *fakeConnector) Search(ctx context.Context, playerName string) ([]contracts.MarketListing, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.listings, nil
}

type fakeBoard struct {
	records []contracts.RankingRecord
	err     error
}

func (f *fakeBoard) FetchTopProspects(ctx context.Context, limit int) ([]contracts.RankingRecord, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.records, 0, nil
}

type fakeRanking struct {
	records []contracts.RankingRecord
	err     error
}

func (f *fakeRanking) FetchRankings(ctx context.Context) ([]contracts.RankingRecord, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.records, 0, nil
}

type fakeStats struct {
	stats map[int64]contracts.StatsRecord
	err   error
}

func (f *fakeStats) FetchStats(ctx context.Context, playerIDs []int64) (map[int64]contracts.StatsRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.stats == nil {
		return map[int64]contracts.StatsRecord{}, nil
	}
	return f.stats, nil
}
