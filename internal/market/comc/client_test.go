package comc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hcallahan/scoutdeck/pkg/logger"
)

const sampleHTML = `
<html><body>
<div class="cardInfo">
	<a class="cardTitle" href="/Card/12345">2023 Bowman Chrome Jackson Chourio RC Auto</a>
	<span class="price">$1,250.00</span>
	<span class="condition">Near Mint</span>
</div>
<div class="cardInfo">
	<a class="cardTitle" href="/Card/12346">2023 Topps Junior Caminero</a>
	<span class="price">$45.50</span>
</div>
<div class="cardInfo">
	<a class="cardTitle" href="/Card/12347">Card With Bad Price</a>
	<span class="price">Make Offer</span>
</div>
<div class="cardInfo">
	<a class="cardTitle" href="/Card/12348"></a>
	<span class="price">$10.00</span>
</div>
</body></html>`

func TestParseListings(t *testing.T) {
	client := NewClient(nil, logger.NewNop(), "https://www.comc.com")

	listings, skipped, err := client.parseListings(strings.NewReader(sampleHTML))
	require.NoError(t, err)

	assert.Equal(t, 2, skipped)
	require.Len(t, listings, 2)

	assert.Equal(t, "2023 Bowman Chrome Jackson Chourio RC Auto", listings[0].Title)
	assert.Equal(t, 1250.00, listings[0].Price)
	assert.Equal(t, "https://www.comc.com/Card/12345", listings[0].URL)
	assert.Equal(t, "COMC", listings[0].Platform)
	assert.Equal(t, "Near Mint", listings[0].Condition)

	assert.Equal(t, 45.50, listings[1].Price)
	assert.Empty(t, listings[1].Condition)
}

func TestParseListingsEmptyPage(t *testing.T) {
	client := NewClient(nil, logger.NewNop(), "https://www.comc.com")

	listings, skipped, err := client.parseListings(strings.NewReader("<html><body></body></html>"))
	require.NoError(t, err)
	assert.Zero(t, skipped)
	assert.Empty(t, listings)
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		text  string
		want  float64
		valid bool
	}{
		{"$1,234.56", 1234.56, true},
		{"$45.50", 45.50, true},
		{" $9.99 ", 9.99, true},
		{"Make Offer", 0, false},
		{"$0.00", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := parsePrice(tt.text)
		assert.Equal(t, tt.valid, ok, "input %q", tt.text)
		if tt.valid {
			assert.Equal(t, tt.want, got, "input %q", tt.text)
		}
	}
}
