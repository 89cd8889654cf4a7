package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/oauth2/clientcredentials"
)

const tokenURL = "https://www.reddit.com/api/v1/access_token"

// API is the read surface the service needs from the Reddit wire client.
type API interface {
	SubredditListing(ctx context.Context, subreddit, sort string, limit int, timeFilter string) (json.RawMessage, error)
	PostWithComments(ctx context.Context, postID string, commentLimit int) (json.RawMessage, error)
	Search(ctx context.Context, query, sort, timeFilter string, limit int) (json.RawMessage, error)
	SubredditAbout(ctx context.Context, subreddit string) (json.RawMessage, error)
}

type ClientConfig struct {
	BaseURL      string
	UserAgent    string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// Client talks to the Reddit JSON API. With app credentials configured it
// authenticates via the client-credentials grant against oauth.reddit.com;
// otherwise it reads the public listing endpoints.
type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
}

func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("reddit user agent is required")
	}
	base := cfg.BaseURL
	if base == "" {
		base = "https://www.reddit.com"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	httpClient := &http.Client{Timeout: timeout}
	if cfg.ClientID != "" && cfg.ClientSecret != "" {
		cc := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     tokenURL,
		}
		httpClient = cc.Client(context.Background())
		httpClient.Timeout = timeout
		base = "https://oauth.reddit.com"
	}

	return &Client{http: httpClient, baseURL: base, userAgent: cfg.UserAgent}, nil
}

func (c *Client) SubredditListing(ctx context.Context, subreddit, sort string, limit int, timeFilter string) (json.RawMessage, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if sort == "top" && timeFilter != "" {
		params.Set("t", timeFilter)
	}
	return c.get(ctx, fmt.Sprintf("/r/%s/%s.json", url.PathEscape(subreddit), sort), params)
}

func (c *Client) PostWithComments(ctx context.Context, postID string, commentLimit int) (json.RawMessage, error) {
	params := url.Values{}
	if commentLimit > 0 {
		params.Set("limit", strconv.Itoa(commentLimit))
	}
	return c.get(ctx, fmt.Sprintf("/comments/%s.json", url.PathEscape(postID)), params)
}

func (c *Client) Search(ctx context.Context, query, sort, timeFilter string, limit int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("q", query)
	if sort != "" {
		params.Set("sort", sort)
	}
	if timeFilter != "" {
		params.Set("t", timeFilter)
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	return c.get(ctx, "/search.json", params)
}

func (c *Client) SubredditAbout(ctx context.Context, subreddit string) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/r/%s/about.json", url.PathEscape(subreddit)), nil)
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("raw_json", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reddit request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if msg := gjson.GetBytes(body, "message").String(); msg != "" {
			return nil, fmt.Errorf("reddit API returned %d: %s", resp.StatusCode, msg)
		}
		return nil, fmt.Errorf("reddit API returned %d", resp.StatusCode)
	}
	return body, nil
}
