package valuation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hcallahan/scoutdeck/pkg/config"
)

func newTestEstimator() *Estimator {
	return NewEstimator(config.ValuationConfig{
		BaseValue:        200,
		DemandMultiplier: 1.3,
		HighDemand:       []string{"Jackson Holliday", "Paul Skenes"},
	})
}

func TestEstimateKeywordAdders(t *testing.T) {
	e := newTestEstimator()

	tests := []struct {
		title string
		want  float64
	}{
		{"2021 Topps base", 200},                         // no keywords
		{"2021 Topps Chrome", 200 * 1.1},                 // chrome only
		{"2021 Topps Chrome RC", 200 * 1.3},              // chrome + rookie
		{"2021 Topps Chrome RC PSA 10", 200 * 1.7},       // + grade
		{"2020 Bowman Chrome Auto BGS 9.5", 200 * 1.9},   // chrome + auto + grade
		{"2021 Topps Chrome RC PSA 10 Auto", 200 * 2.2},  // everything
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, e.Estimate("Colton Cowser", tt.title), 1e-9, "title %q", tt.title)
	}
}

func TestEstimateHighDemandMultiplier(t *testing.T) {
	e := newTestEstimator()

	// PSA 10 + Auto + RC + Chrome on a high-demand subject must clear
	// base*(1+0.4+0.5+0.2)*demand.
	title := "Jackson Holliday 2023 Topps Chrome RC PSA 10 Auto"
	got := e.Estimate("Jackson Holliday", title)

	assert.Greater(t, got, 200*2.1*1.3)
	assert.InDelta(t, 200*2.2*1.3, got, 1e-9)

	// Same card for an off-list subject gets no demand bump.
	assert.InDelta(t, 200*2.2, e.Estimate("Colton Cowser", title), 1e-9)
}

func TestEstimateDeterministic(t *testing.T) {
	e := newTestEstimator()
	title := "Paul Skenes 2023 Bowman Chrome RC BGS 9.5"

	first := e.Estimate("Paul Skenes", title)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, e.Estimate("Paul Skenes", title))
	}
}

func TestIsHighDemand(t *testing.T) {
	e := newTestEstimator()
	assert.True(t, e.IsHighDemand("Paul Skenes"))
	assert.False(t, e.IsHighDemand("Colton Cowser"))
}
