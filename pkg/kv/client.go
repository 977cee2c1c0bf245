// Package kv is a thin client for an Upstash-style Redis REST API.
// The dashboard uses it as a best-effort remote store for small
// preference blobs; it is never the sole source of truth.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// ErrNotConfigured is returned when the REST URL or token is absent.
// Callers treat it as "feature disabled", not a failure.
var ErrNotConfigured = errors.New("kv: store not configured")

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: http.DefaultClient,
	}
}

// Configured reports whether connection settings are present.
func (c *Client) Configured() bool {
	return c.baseURL != "" && c.token != ""
}

type restResult struct {
	Result *string `json:"result"`
}

// Get returns the raw stored string for key, or ("", false, nil) when the
// key is absent.
func (c *Client) Get(ctx context.Context, key string) (string, bool, error) {
	if !c.Configured() {
		return "", false, ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/get/"+url.PathEscape(key), nil)
	if err != nil {
		return "", false, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("kv get %s: %w", key, err)
	}
	defer resp.Body.Close()

	var body restResult
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", false, fmt.Errorf("kv get %s: decode: %w", key, err)
	}
	if body.Result == nil {
		return "", false, nil
	}
	return *body.Result, true, nil
}

// Set stores value under key. The REST API acknowledges a successful
// write with result "OK"; anything else reports false.
func (c *Client) Set(ctx context.Context, key, value string) (bool, error) {
	if !c.Configured() {
		return false, ErrNotConfigured
	}

	endpoint := c.baseURL + "/set/" + url.PathEscape(key) + "/" + url.PathEscape(value)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("kv set %s: %w", key, err)
	}
	defer resp.Body.Close()

	var body restResult
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("kv set %s: decode: %w", key, err)
	}
	return body.Result != nil && *body.Result == "OK", nil
}
