package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/hcallahan/scoutdeck/internal/contracts"
	"github.com/hcallahan/scoutdeck/internal/market"
	"github.com/hcallahan/scoutdeck/internal/valuation"
	"github.com/hcallahan/scoutdeck/pkg/config"
	"github.com/hcallahan/scoutdeck/pkg/logger"
)

// Scanner runs one market-scan cycle: walk every owner's watchlist,
// search all marketplaces for each watched player, estimate fair value
// and store listings that clear both profit thresholds.
type Scanner struct {
	connectors []market.Connector
	estimator  *valuation.Estimator
	watchRepo  contracts.WatchlistRepository
	dealRepo   contracts.DealRepository
	cfg        config.ScannerConfig
	logger     *logger.Logger
}

// NewScanner creates a new scanner.
func NewScanner(
	connectors []market.Connector,
	estimator *valuation.Estimator,
	watchRepo contracts.WatchlistRepository,
	dealRepo contracts.DealRepository,
	cfg config.ScannerConfig,
	log *logger.Logger,
) *Scanner {
	return &Scanner{
		connectors: connectors,
		estimator:  estimator,
		watchRepo:  watchRepo,
		dealRepo:   dealRepo,
		cfg:        cfg,
		logger:     log,
	}
}

// subject is one (owner, player) pair to scan.
type subject struct {
	userID     string
	playerName string
}

// Run executes one scan cycle. An unreachable user store fails the cycle;
// every later failure is per-subject and the cycle keeps going.
func (s *Scanner) Run(ctx context.Context) (*contracts.ScanSummary, error) {
	startTime := time.Now()
	s.logger.Info("Market scan cycle started")

	users, err := s.watchRepo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	subjects := make([]subject, 0)
	for _, user := range users {
		players, err := s.watchRepo.ListWatchedPlayers(ctx, user.ID)
		if err != nil {
			s.logger.WithError(err).WithField("user_id", user.ID).Warn("Failed to load watchlist, skipping user")
			continue
		}
		for _, name := range players {
			subjects = append(subjects, subject{userID: user.ID, playerName: name})
		}
	}

	summary := &contracts.ScanSummary{
		UsersScanned: len(users),
		Timestamp:    time.Now().UTC(),
	}

	// Bounded worker pool with pacing between subjects so a big watchlist
	// does not hammer the marketplaces.
	limiter := rate.NewLimiter(rate.Limit(s.cfg.SubjectsPerSec), 1)
	jobs := make(chan subject)

	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < s.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sub := range jobs {
				if err := limiter.Wait(ctx); err != nil {
					return
				}

				found, inserted := s.scanSubject(ctx, sub)

				mu.Lock()
				summary.DealsFound += found
				summary.DealsInserted += inserted
				mu.Unlock()
			}
		}()
	}

	for _, sub := range subjects {
		select {
		case jobs <- sub:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
	}
	close(jobs)
	wg.Wait()

	s.logger.WithFields(map[string]interface{}{
		"users_scanned":  summary.UsersScanned,
		"deals_found":    summary.DealsFound,
		"deals_inserted": summary.DealsInserted,
		"duration":       time.Since(startTime),
	}).Info("Market scan cycle completed")

	return summary, nil
}

// scanSubject searches all marketplaces for one watched player and
// persists qualifying listings. Returns how many listings cleared the
// thresholds and how many were actually written.
func (s *Scanner) scanSubject(ctx context.Context, sub subject) (found, inserted int) {
	listings := s.collectListings(ctx, sub.playerName)

	for _, listing := range listings {
		marketValue := s.estimator.Estimate(sub.playerName, listing.Title)
		profit := marketValue - listing.Price
		profitPct := profit / listing.Price * 100

		// Both thresholds are strict: equal is not enough.
		if profitPct <= s.cfg.MinProfitPct || profit <= s.cfg.MinProfitAbs {
			continue
		}
		found++

		existing, err := s.dealRepo.FindSimilar(ctx, sub.userID, listing.Platform, listing.Title, listing.Price, s.cfg.DedupTolerance)
		if err != nil {
			s.logger.WithError(err).WithField("card", listing.Title).Warn("Dedup lookup failed, skipping listing")
			continue
		}
		if existing != nil {
			continue // first-seen wins
		}

		deal := &contracts.Deal{
			UserID:      sub.userID,
			CardName:    listing.Title,
			PlayerName:  sub.playerName,
			AskingPrice: listing.Price,
			MarketValue: marketValue,
			Profit:      profit,
			ProfitPct:   profitPct,
			Platform:    listing.Platform,
			URL:         listing.URL,
			Status:      contracts.DealPending,
		}

		ok, err := s.dealRepo.Insert(ctx, deal)
		if err != nil {
			s.logger.WithError(err).WithField("card", listing.Title).Warn("Failed to insert deal, skipping")
			continue
		}
		if ok {
			inserted++
		}
	}

	return found, inserted
}

// collectListings fans out to every connector concurrently. Each search
// gets its own timeout; a failed or timed out connector contributes zero
// listings and the rest still count.
func (s *Scanner) collectListings(ctx context.Context, playerName string) []contracts.MarketListing {
	results := make(chan []contracts.MarketListing, len(s.connectors))

	var wg sync.WaitGroup
	for _, conn := range s.connectors {
		wg.Add(1)
		go func(conn market.Connector) {
			defer wg.Done()

			searchCtx, cancel := context.WithTimeout(ctx, s.cfg.ConnectorTimeout)
			defer cancel()

			listings, err := conn.Search(searchCtx, playerName)
			if err != nil {
				s.logger.WithError(err).WithFields(map[string]interface{}{
					"platform": conn.Platform(),
					"player":   playerName,
				}).Warn("Marketplace search failed")
				return
			}
			results <- listings
		}(conn)
	}
	wg.Wait()
	close(results)

	var merged []contracts.MarketListing
	for listings := range results {
		merged = append(merged, listings...)
	}
	return merged
}
