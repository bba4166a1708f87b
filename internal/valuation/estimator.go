package valuation

import (
	"strings"

	"github.com/hcallahan/scoutdeck/pkg/config"
)

// keywordAdders are additive multiplier bumps applied per card attribute
// found in the listing title. Contract values, matched case-sensitively
// the way marketplaces print them.
var keywordAdders = []struct {
	keyword string
	adder   float64
}{
	{"PSA 10", 0.4},
	{"BGS 9.5", 0.3},
	{"Auto", 0.5},
	{"RC", 0.2},
	{"Chrome", 0.1},
}

// Estimator computes a deterministic fair value for a listing from its
// title keywords and the subject's demand profile.
type Estimator struct {
	baseValue        float64
	demandMultiplier float64
	highDemand       map[string]struct{}
}

// NewEstimator creates an estimator from config.
func NewEstimator(cfg config.ValuationConfig) *Estimator {
	highDemand := make(map[string]struct{}, len(cfg.HighDemand))
	for _, name := range cfg.HighDemand {
		highDemand[name] = struct{}{}
	}

	return &Estimator{
		baseValue:        cfg.BaseValue,
		demandMultiplier: cfg.DemandMultiplier,
		highDemand:       highDemand,
	}
}

// Estimate returns the fair market value for a listing:
// base * (1 + sum of keyword adders) * demand multiplier.
func (e *Estimator) Estimate(playerName, cardTitle string) float64 {
	multiplier := 1.0
	for _, ka := range keywordAdders {
		if strings.Contains(cardTitle, ka.keyword) {
			multiplier += ka.adder
		}
	}

	estimate := e.baseValue * multiplier
	if e.IsHighDemand(playerName) {
		estimate *= e.demandMultiplier
	}

	return estimate
}

// IsHighDemand reports whether the player is on the configured
// high-demand list.
func (e *Estimator) IsHighDemand(playerName string) bool {
	_, ok := e.highDemand[playerName]
	return ok
}
