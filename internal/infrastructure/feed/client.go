// Package feed is the HTTP client for the upstream product feed.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/freshmarket/market-api/internal/application/feedsync"
)

var _ feedsync.Client = (*Client)(nil)

// Client fetches the products and product-sales feeds.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a feed client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Products fetches the full product list.
func (c *Client) Products(ctx context.Context) ([]feedsync.FeedProduct, error) {
	var out []feedsync.FeedProduct
	if err := c.getJSON(ctx, c.baseURL+"/products", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProductSales fetches the sale rows of one product.
func (c *Client) ProductSales(ctx context.Context, feedID int64) ([]feedsync.FeedSale, error) {
	var out []feedsync.FeedSale
	url := c.baseURL + "/product-sales?id=" + strconv.FormatInt(feedID, 10)
	if err := c.getJSON(ctx, url, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("feed: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("feed: GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("feed: GET %s: unexpected status %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("feed: decode %s: %w", url, err)
	}
	return nil
}
