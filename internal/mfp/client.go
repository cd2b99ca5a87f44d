// Package mfp implements the nutrition.Upstream port against MyFitnessPal's
// private JSON API, authenticated with browser session cookies: the session
// cookie jar is exchanged for a short-lived bearer token, which then reads
// the diary from the api host.
package mfp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/ai-mcp-garage/mcp-myfitnesspal/internal/credential"
	"github.com/ai-mcp-garage/mcp-myfitnesspal/internal/nutrition"
)

// Compile-time interface satisfaction check.
var _ nutrition.Upstream = (*Client)(nil)

const (
	// DefaultSiteURL serves the session-cookie endpoints.
	DefaultSiteURL = "https://www.myfitnesspal.com"
	// DefaultAPIURL serves the bearer-token diary endpoints.
	DefaultAPIURL = "https://api.myfitnesspal.com"

	mfpClientID = "mfp-main-js"
	userAgent   = "mcp-myfitnesspal/1.0"

	diaryTypes = "food_entry,exercise_entry,water"
)

// Client is the upstream MyFitnessPal client. One HTTP round trip per
// endpoint, no retries: the upstream's anti-automation defenses make blind
// retries unsafe.
type Client struct {
	http    *http.Client
	siteURL string
	apiURL  string

	mu    sync.Mutex
	token *authToken
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURLs overrides the site and API hosts; intended for httptest
// servers.
func WithBaseURLs(siteURL, apiURL string) Option {
	return func(c *Client) {
		c.siteURL = siteURL
		c.apiURL = apiURL
	}
}

// WithHTTPTimeout overrides the default 30s request timeout.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// New builds a client whose cookie jar is seeded from the credential.
func New(cred *credential.Credential, opts ...Option) (*Client, error) {
	c := &Client{
		siteURL: DefaultSiteURL,
		apiURL:  DefaultAPIURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}

	jar, err := cred.Jar(c.siteURL)
	if err != nil {
		return nil, fmt.Errorf("building cookie jar: %w", err)
	}
	c.http.Jar = jar
	return c, nil
}

type authToken struct {
	TokenType   string `json:"token_type"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	UserID      string `json:"user_id"`

	fetchedAt time.Time
}

func (t *authToken) expired() bool {
	if t == nil || t.AccessToken == "" {
		return true
	}
	ttl := time.Duration(t.ExpiresIn) * time.Second
	if ttl <= 0 {
		ttl = time.Hour
	}
	return time.Since(t.fetchedAt) > ttl-time.Minute
}

// Authenticate validates the session by exchanging the cookies for a bearer
// token. A failure here means the cookies are missing, expired or revoked.
func (c *Client) Authenticate(ctx context.Context) error {
	_, err := c.ensureToken(ctx)
	return err
}

func (c *Client) ensureToken(ctx context.Context) (*authToken, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.token.expired() {
		return c.token, nil
	}

	var tok authToken
	if err := c.getJSON(ctx, c.siteURL+"/user/auth_token?refresh=true", nil, &tok); err != nil {
		return nil, &nutrition.Error{
			Kind:    nutrition.KindAuth,
			Message: "session cookies were not accepted by MyFitnessPal",
			Err:     err,
		}
	}
	if tok.AccessToken == "" || tok.UserID == "" {
		return nil, &nutrition.Error{
			Kind:    nutrition.KindAuth,
			Message: "MyFitnessPal returned an empty auth token",
		}
	}
	tok.fetchedAt = time.Now()
	c.token = &tok
	return c.token, nil
}

// Day fetches and assembles one diary date.
func (c *Client) Day(ctx context.Context, date nutrition.Date) (*nutrition.Day, error) {
	tok, err := c.ensureToken(ctx)
	if err != nil {
		return nil, err
	}
	authHeader := map[string]string{
		"Authorization": "Bearer " + tok.AccessToken,
		"mfp-client-id": mfpClientID,
		"mfp-user-id":   tok.UserID,
	}

	var diary diaryResponse
	diaryURL := c.apiURL + "/v2/diary?" + url.Values{
		"entry_date": {date.String()},
		"types":      {diaryTypes},
	}.Encode()
	if err := c.getJSON(ctx, diaryURL, authHeader, &diary); err != nil {
		return nil, fmt.Errorf("diary request: %w", err)
	}

	var goals goalsResponse
	goalsURL := c.apiURL + "/v2/nutrient-goals?" + url.Values{"date": {date.String()}}.Encode()
	if err := c.getJSON(ctx, goalsURL, authHeader, &goals); err != nil {
		return nil, fmt.Errorf("nutrient goals request: %w", err)
	}

	return assembleDay(date, diary, goals), nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// Drain a little of the body for diagnostics; never the whole page.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("GET %s: HTTP %d: %s", req.URL.Path, resp.StatusCode, string(snippet))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("GET %s: decoding response: %w", req.URL.Path, err)
	}
	return nil
}
