package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/Arylite/nephtys/models"
)

// APIError is a non 2xx answer of the catalog API.
type APIError struct {
	StatusCode int
	Message    string
	Code       int
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("catalog api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("catalog api: status %d: %s", e.StatusCode, e.Message)
}

// ListParams selects a page of the catalog. Zero values are left to the server defaults.
type ListParams struct {
	Page   int
	Limit  int
	Latest bool
}

// Page is one list response with the pagination headers decoded.
type Page struct {
	Webtoons    []models.Webtoon
	TotalCount  int
	TotalPages  int
	CurrentPage int
}

// CreateWebtoonRequest is the body of the create endpoint. CoverImage is an optional data URI.
type CreateWebtoonRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Author      string  `json:"author"`
	Status      string  `json:"status"`
	CoverImage  *string `json:"coverImage,omitempty"`
}

// Client talks to the catalog API.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  oauth2.TokenSource
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default 15s timeout client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTokenSource authenticates every request with a token from ts.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithToken sends a fixed bearer token on every request.
func WithToken(token string) Option {
	return WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListWebtoons fetches one page of the catalog.
func (c *Client) ListWebtoons(ctx context.Context, p ListParams) (*Page, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/webtoon"+listQuery(p), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var items []models.Webtoon
	if err := decode(resp, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Webtoon{}
	}
	page := &Page{
		Webtoons:    items,
		TotalCount:  headerInt(resp.Header, "X-Total-Count"),
		TotalPages:  headerInt(resp.Header, "X-Total-Pages"),
		CurrentPage: headerInt(resp.Header, "X-Current-Page"),
	}
	if page.CurrentPage == 0 {
		page.CurrentPage = max(p.Page, 1)
	}
	return page, nil
}

// GetWebtoon fetches a single webtoon.
func (c *Client) GetWebtoon(ctx context.Context, id string) (*models.Webtoon, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/webtoon/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var w models.Webtoon
	if err := decode(resp, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// CreateWebtoon submits a new webtoon and returns the stored record.
func (c *Client) CreateWebtoon(ctx context.Context, req CreateWebtoonRequest) (*models.Webtoon, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/webtoon", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var w models.Webtoon
	if err := decode(resp, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// Search queries the catalog search endpoint.
func (c *Client) Search(ctx context.Context, q string) ([]models.Webtoon, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/search?q="+url.QueryEscape(q), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var items []models.Webtoon
	if err := decode(resp, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		tok, err := c.tokens.Token()
		if err != nil {
			return nil, fmt.Errorf("obtain bearer token: %w", err)
		}
		tok.SetAuthHeader(req)
	}
	return c.http.Do(req)
}

func decode(resp *http.Response, out any) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var body struct {
			Error string `json:"error"`
			Code  int    `json:"code"`
		}
		if json.Unmarshal(data, &body) == nil {
			apiErr.Message = body.Error
			apiErr.Code = body.Code
		}
		return apiErr
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode catalog response: %w", err)
	}
	return nil
}

func listQuery(p ListParams) string {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Latest {
		v.Set("latest", "true")
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

func headerInt(h http.Header, key string) int {
	n, err := strconv.Atoi(h.Get(key))
	if err != nil {
		return 0
	}
	return n
}
