package scoring

import (
	"math"
	"sort"

	"github.com/hcallahan/scoutdeck/internal/contracts"
)

// Component weights for the composite score. These are contract values:
// tests and downstream consumers depend on them, change them deliberately.
const (
	weightPerformance = 0.40
	weightRanking     = 0.35
	weightAgeLevel    = 0.15
	weightLevelBonus  = 0.10
)

// Per-provider weights for the ranking component, renormalized over the
// providers that actually reported a rank for a subject.
var providerRankWeights = map[contracts.Provider]float64{
	contracts.ProviderFanGraphs:   0.40,
	contracts.ProviderMLBPipeline: 0.35,
	contracts.ProviderProspectus:  0.25,
}

// levelOrdinals maps minor-league levels to development rungs.
var levelOrdinals = map[string]int{
	"A":   1,
	"A+":  2,
	"AA":  3,
	"AAA": 4,
	"MLB": 5,
}

// LevelOrdinal returns the development rung for a level string.
// Unknown levels map to the lowest rung.
func LevelOrdinal(level string) int {
	if ord, ok := levelOrdinals[level]; ok {
		return ord
	}
	return 1
}

// Input bundles everything known about one subject before scoring.
type Input struct {
	Primary     contracts.RankingRecord   // primary provider record (FanGraphs)
	Secondaries []contracts.RankingRecord // corroborating records, matched by player id
	Stats       *contracts.StatsRecord    // nil when the subject has no live stats
}

// Score fuses ranking and stats signals into a single ScoredProspect.
// Pure and deterministic: identical inputs always yield identical output.
// Returns ok=false when no provider reported a rank for the subject; such
// subjects are excluded from the cycle's output rather than erroring.
func Score(in Input) (contracts.ScoredProspect, bool) {
	ranking, hasRanks := rankingComponent(in.Primary, in.Secondaries)
	if !hasRanks {
		return contracts.ScoredProspect{}, false
	}

	performance := performanceComponent(in.Primary, in.Stats)

	actual := LevelOrdinal(in.Primary.Level)
	expected := in.Primary.Age - 18
	if expected < 1 {
		expected = 1
	}
	ageAdj := clamp(float64(actual-expected)*8, -25, 25)
	levelBonus := float64(actual) * 5

	raw := performance*weightPerformance +
		ranking*weightRanking +
		ageAdj*weightAgeLevel +
		levelBonus*weightLevelBonus

	score := round2(clamp(raw, 0, 100))

	ceiling, floor := outlookBand(score, in.Secondaries)
	risk := riskTier(ceiling, floor, in.Secondaries)

	return contracts.ScoredProspect{
		PlayerID:       in.Primary.PlayerID,
		PlayerName:     in.Primary.PlayerName,
		Team:           in.Primary.Team,
		Position:       in.Primary.Position,
		Level:          in.Primary.Level,
		SourceRank:     in.Primary.Rank,
		CompositeScore: score,
		CeilingScore:   ceiling,
		FloorScore:     floor,
		RiskTier:       risk,
		CompositeRank:  CompositeRank(in.Primary, in.Secondaries),
		Age:            in.Primary.Age,
	}, true
}

// performanceComponent blends live stats when present, otherwise falls
// back to the provider-reported performance index.
func performanceComponent(primary contracts.RankingRecord, stats *contracts.StatsRecord) float64 {
	if stats == nil {
		return clamp((primary.PerfIndex-80)*1.25, 0, 100)
	}

	opsScore := clamp((stats.OPS-0.600)*200, 0, 100)
	plateDiscScore := clamp(100-(stats.KPercent-stats.BBPercent)*2, 0, 100)
	powerScore := clamp(stats.ISO*500, 0, 100)

	return opsScore*0.5 + plateDiscScore*0.3 + powerScore*0.2
}

// rankingComponent combines provider ranks with fixed weights,
// renormalized over the providers that reported one. ok=false means no
// provider reported a rank at all.
func rankingComponent(primary contracts.RankingRecord, secondaries []contracts.RankingRecord) (float64, bool) {
	var weighted, totalWeight float64

	records := make([]contracts.RankingRecord, 0, 1+len(secondaries))
	records = append(records, primary)
	records = append(records, secondaries...)

	for _, rec := range records {
		if rec.Rank <= 0 {
			continue
		}
		w, ok := providerRankWeights[rec.Provider]
		if !ok {
			continue
		}
		weighted += math.Max(0, 100-float64(rec.Rank)) * w
		totalWeight += w
	}

	if totalWeight == 0 {
		return 0, false
	}
	return weighted / totalWeight, true
}

// outlookBand returns the ceiling/floor pair, preferring explicit provider
// values over the derived band.
func outlookBand(score float64, secondaries []contracts.RankingRecord) (ceiling, floor float64) {
	for _, rec := range secondaries {
		if rec.Ceiling != nil && rec.Floor != nil {
			return *rec.Ceiling, *rec.Floor
		}
	}
	return math.Min(100, score+20), math.Max(0, score-25)
}

// riskTier prefers an explicit provider tier, else derives one from the
// ceiling/floor spread.
func riskTier(ceiling, floor float64, secondaries []contracts.RankingRecord) contracts.RiskTier {
	for _, rec := range secondaries {
		if rec.Risk != "" {
			return rec.Risk
		}
	}

	variance := ceiling - floor
	switch {
	case variance > 40:
		return contracts.RiskHigh
	case variance < 20:
		return contracts.RiskLow
	default:
		return contracts.RiskMedium
	}
}

// CompositeRank is the weighted average of whichever provider ranks are
// present. The primary provider always carries at least half the weight.
func CompositeRank(primary contracts.RankingRecord, secondaries []contracts.RankingRecord) int {
	ranks := []int{primary.Rank}
	for _, rec := range secondaries {
		if rec.Rank > 0 {
			ranks = append(ranks, rec.Rank)
		}
	}

	switch len(ranks) {
	case 1:
		return ranks[0]
	case 2:
		return int(math.Round(float64(ranks[0])*0.6 + float64(ranks[1])*0.4))
	default:
		return int(math.Round(float64(ranks[0])*0.5 + float64(ranks[1])*0.3 + float64(ranks[2])*0.2))
	}
}

// SortProspects orders prospects for top-N selection: composite score
// descending, ties broken by lower composite rank, then by player id so
// the ordering is total and reproducible.
func SortProspects(prospects []contracts.ScoredProspect) {
	sort.Slice(prospects, func(i, j int) bool {
		a, b := prospects[i], prospects[j]
		if a.CompositeScore != b.CompositeScore {
			return a.CompositeScore > b.CompositeScore
		}
		if a.CompositeRank != b.CompositeRank {
			return a.CompositeRank < b.CompositeRank
		}
		return a.PlayerID < b.PlayerID
	})
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
