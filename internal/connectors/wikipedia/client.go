package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/semdex/internal/core/domain"
	"github.com/custodia-labs/semdex/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.DocumentSource = (*Client)(nil)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// maxLinks caps the disambiguation options collected from one page.
	maxLinks = 500
)

// Config holds configuration for the Wikipedia client.
type Config struct {
	// BaseURL is the Action API endpoint (default: domain.DefaultSourceURL).
	BaseURL string

	// UserAgent is sent with every request (default: domain.DefaultUserAgent).
	UserAgent string

	// RequestsPerSecond limits the request rate.
	RequestsPerSecond float64

	// Timeout is the HTTP client timeout (default: 30s).
	Timeout time.Duration
}

// Client talks to the MediaWiki Action API.
type Client struct {
	http        *http.Client
	baseURL     string
	userAgent   string
	rateLimiter *RateLimiter
}

// NewClient creates a Wikipedia client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = domain.DefaultSourceURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = domain.DefaultUserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		http:        &http.Client{Timeout: cfg.Timeout},
		baseURL:     cfg.BaseURL,
		userAgent:   cfg.UserAgent,
		rateLimiter: NewRateLimiter(cfg.RequestsPerSecond),
	}
}

// apiError is the error envelope returned with HTTP 200.
type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

type searchResponse struct {
	Error *apiError `json:"error"`
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

type page struct {
	Title     string            `json:"title"`
	Missing   bool              `json:"missing"`
	Invalid   bool              `json:"invalid"`
	Extract   string            `json:"extract"`
	FullURL   string            `json:"fullurl"`
	PageProps map[string]string `json:"pageprops"`
	Links     []struct {
		Title string `json:"title"`
	} `json:"links"`
}

type pagesResponse struct {
	Error    *apiError `json:"error"`
	Continue struct {
		PLContinue string `json:"plcontinue"`
	} `json:"continue"`
	Query struct {
		Pages []page `json:"pages"`
	} `json:"query"`
}

// Search returns up to limit page titles matching query, best first.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, nil
	}
	params := url.Values{
		"list":     {"search"},
		"srsearch": {query},
		"srlimit":  {strconv.Itoa(limit)},
		"srprop":   {""},
	}

	var resp searchResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("search %q: wikipedia error: %s: %s", query, resp.Error.Code, resp.Error.Info)
	}

	titles := make([]string, 0, len(resp.Query.Search))
	for _, r := range resp.Query.Search {
		titles = append(titles, r.Title)
	}
	return titles, nil
}

// Page fetches the plain-text introduction of the article titled title.
// Redirects are followed.
func (c *Client) Page(ctx context.Context, title string) (domain.Article, error) {
	params := url.Values{
		"prop":        {"extracts|info|pageprops"},
		"exintro":     {"1"},
		"explaintext": {"1"},
		"inprop":      {"url"},
		"ppprop":      {"disambiguation"},
		"redirects":   {"1"},
		"titles":      {title},
	}

	var resp pagesResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return domain.Article{}, fmt.Errorf("page %q: %w", title, err)
	}
	if resp.Error != nil {
		return domain.Article{}, fmt.Errorf("page %q: wikipedia error: %s: %s", title, resp.Error.Code, resp.Error.Info)
	}
	if len(resp.Query.Pages) == 0 {
		return domain.Article{}, fmt.Errorf("page %q: %w", title, domain.ErrNotFound)
	}

	p := resp.Query.Pages[0]
	if p.Missing || p.Invalid {
		return domain.Article{}, fmt.Errorf("page %q: %w", title, domain.ErrNotFound)
	}
	if _, ok := p.PageProps["disambiguation"]; ok {
		options, err := c.links(ctx, p.Title)
		if err != nil {
			return domain.Article{}, fmt.Errorf("page %q: disambiguation options: %w", title, err)
		}
		return domain.Article{}, &domain.DisambiguationError{Title: p.Title, Options: options}
	}

	return domain.Article{
		Title:   p.Title,
		Content: strings.TrimSpace(p.Extract),
		URL:     p.FullURL,
	}, nil
}

// links returns the article-namespace links of title in API order.
func (c *Client) links(ctx context.Context, title string) ([]string, error) {
	params := url.Values{
		"prop":        {"links"},
		"plnamespace": {"0"},
		"pllimit":     {"max"},
		"titles":      {title},
	}

	var options []string
	for {
		var resp pagesResponse
		if err := c.get(ctx, params, &resp); err != nil {
			return nil, err
		}
		if resp.Error != nil {
			return nil, fmt.Errorf("wikipedia error: %s: %s", resp.Error.Code, resp.Error.Info)
		}
		for _, p := range resp.Query.Pages {
			for _, l := range p.Links {
				options = append(options, l.Title)
			}
		}
		if resp.Continue.PLContinue == "" || len(options) >= maxLinks {
			break
		}
		params.Set("plcontinue", resp.Continue.PLContinue)
	}
	return options, nil
}

// get issues a rate-limited GET against the API and decodes the JSON body.
func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("formatversion", "2")

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		seconds, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		c.rateLimiter.Backoff(time.Duration(seconds) * time.Second)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("wikipedia error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
