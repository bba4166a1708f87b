package comc

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/hcallahan/scoutdeck/internal/contracts"
	"github.com/hcallahan/scoutdeck/pkg/httputil"
	"github.com/hcallahan/scoutdeck/pkg/logger"
)

const platformName = "COMC"

// Client scrapes COMC search result pages. COMC has no public API, so
// listings come from the HTML search grid.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new COMC client.
func NewClient(httpClient *httputil.Client, log *logger.Logger, baseURL string) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
	}
}

// Platform returns the marketplace name.
func (c *Client) Platform() string {
	return platformName
}

// Search scrapes the search results page for a player.
func (c *Client) Search(ctx context.Context, playerName string) ([]contracts.MarketListing, error) {
	searchURL := fmt.Sprintf("%s/Cards,sq,%s", c.baseURL, url.PathEscape(playerName))

	resp, err := c.httpClient.Get(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	listings, skipped, err := c.parseListings(resp.Body)
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(map[string]interface{}{
		"player":  playerName,
		"count":   len(listings),
		"skipped": skipped,
	}).Debug("Scraped COMC listings")

	return listings, nil
}

// parseListings extracts listings from a search results document. Cards
// missing a title or a parseable price are skipped and counted.
func (c *Client) parseListings(body io.Reader) ([]contracts.MarketListing, int, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, 0, fmt.Errorf("parse HTML: %w", err)
	}

	var listings []contracts.MarketListing
	skipped := 0

	doc.Find("div.cardInfo").Each(func(_ int, sel *goquery.Selection) {
		title := strings.TrimSpace(sel.Find("a.cardTitle").Text())
		priceText := strings.TrimSpace(sel.Find("span.price").Text())

		price, ok := parsePrice(priceText)
		if title == "" || !ok {
			skipped++
			return
		}

		href, _ := sel.Find("a.cardTitle").Attr("href")
		if href != "" && !strings.HasPrefix(href, "http") {
			href = c.baseURL + href
		}

		listings = append(listings, contracts.MarketListing{
			Title:     title,
			Price:     price,
			URL:       href,
			Platform:  platformName,
			Condition: strings.TrimSpace(sel.Find("span.condition").Text()),
		})
	})

	return listings, skipped, nil
}

// parsePrice handles prices like "$1,234.56".
func parsePrice(text string) (float64, bool) {
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(text)
	price, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
	if err != nil || price <= 0 {
		return 0, false
	}
	return price, true
}
