/**
 * @description
 * HTTP client for the lottery operator's public game pages.
 * Fetches a page and hands back a parsed goquery document.
 *
 * @dependencies
 * - github.com/go-resty/resty/v2
 * - github.com/PuerkitoBio/goquery
 */

package lottery

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const (
	DefaultTimeout = 10 * time.Second

	// The operator serves a slimmed-down page to unknown clients, so the
	// fetcher identifies as a desktop browser.
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

type Client struct {
	http *resty.Client
}

func NewClient() *Client {
	return &Client{
		http: resty.New().
			SetTimeout(DefaultTimeout).
			SetHeader("User-Agent", browserUserAgent),
	}
}

// FetchPage downloads the game page at url and parses it into a document
func (c *Client) FetchPage(ctx context.Context, url string) (*goquery.Document, error) {
	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return doc, nil
}

// Scrape fetches the page at url and extracts a snapshot from it
func (c *Client) Scrape(ctx context.Context, url string) (*Snapshot, error) {
	doc, err := c.FetchPage(ctx, url)
	if err != nil {
		return nil, err
	}
	return ParseSnapshot(doc, url)
}
