// Package pagespeed wraps the Google PageSpeed Insights v5 API.
package pagespeed

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://www.googleapis.com/pagespeedonline/v5"

// categories are the Lighthouse categories requested on every call.
var categories = []string{"performance", "accessibility", "best-practices", "seo"}

// Scores holds the per-category scores scaled to 0-100. A nil entry means
// the service did not report that category.
type Scores struct {
	Performance   *int
	Accessibility *int
	BestPractices *int
	SEO           *int
}

// Client performs PageSpeed Insights API operations.
type Client interface {
	FetchScores(ctx context.Context, siteURL string) (*Scores, error)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithStrategy overrides the analysis strategy (default "mobile").
func WithStrategy(s string) Option {
	return func(c *httpClient) {
		c.strategy = s
	}
}

type httpClient struct {
	apiKey   string
	baseURL  string
	strategy string
	http     *http.Client
}

// NewClient creates a PageSpeed Insights client. An empty API key is a
// construction-time error: nothing should start a batch without credentials.
func NewClient(apiKey string, opts ...Option) (Client, error) {
	if apiKey == "" {
		return nil, eris.New("pagespeed: missing api key")
	}
	c := &httpClient{
		apiKey:   apiKey,
		baseURL:  defaultBaseURL,
		strategy: "mobile",
		http: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

type runPagespeedResponse struct {
	LighthouseResult struct {
		Categories struct {
			Performance   category `json:"performance"`
			Accessibility category `json:"accessibility"`
			BestPractices category `json:"best-practices"`
			SEO           category `json:"seo"`
		} `json:"categories"`
	} `json:"lighthouseResult"`
}

type category struct {
	Score *float64 `json:"score"`
}

// FetchScores runs a PageSpeed analysis for one URL. Exactly one attempt is
// made; errors and timeouts propagate to the caller without retry.
func (c *httpClient) FetchScores(ctx context.Context, siteURL string) (*Scores, error) {
	q := url.Values{}
	q.Set("url", siteURL)
	q.Set("strategy", c.strategy)
	for _, cat := range categories {
		q.Add("category", cat)
	}
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/runPagespeed?"+q.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "pagespeed: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "pagespeed: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "pagespeed: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("pagespeed: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var result runPagespeedResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, eris.Wrap(err, "pagespeed: unmarshal response")
	}

	cats := result.LighthouseResult.Categories
	return &Scores{
		Performance:   scaleScore(cats.Performance.Score),
		Accessibility: scaleScore(cats.Accessibility.Score),
		BestPractices: scaleScore(cats.BestPractices.Score),
		SEO:           scaleScore(cats.SEO.Score),
	}, nil
}

// scaleScore converts a raw fractional score in [0,1] to an integer 0-100.
// A missing raw value stays nil, never zero.
func scaleScore(raw *float64) *int {
	if raw == nil {
		return nil
	}
	v := int(math.Round(*raw * 100))
	return &v
}
