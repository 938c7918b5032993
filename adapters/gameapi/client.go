package gameapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/tidwall/gjson"
)

const apiPrefix = "/api"

// Client talks to the ZetaFrog game backend.
// Every call is a fresh round trip; there are no retries and no caching.
type Client struct {
	baseURL string
	http    *http.Client
	logger  watermill.LoggerAdapter
}

// NewClient creates a client for baseURL. A nil httpClient uses http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client, logger watermill.LoggerAdapter) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger.With(watermill.LogFields{"component": "gameapi"}),
	}
}

// BaseURL returns the configured backend URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// apiPath prefixes endpoint with /api unless it already has it
func apiPath(endpoint string) string {
	if strings.HasPrefix(endpoint, apiPrefix) {
		return endpoint
	}
	if strings.HasPrefix(endpoint, "/") {
		return apiPrefix + endpoint
	}
	return apiPrefix + "/" + endpoint
}

// Do sends a request and normalizes the response. It never returns an error;
// failures are reported in the envelope.
func (c *Client) Do(ctx context.Context, method, endpoint string, query url.Values, body any) Envelope {
	target := c.baseURL + apiPath(endpoint)
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return Failure(fmt.Sprintf("failed to encode request: %v", err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return Failure(fmt.Sprintf("failed to build request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	fields := watermill.LogFields{"method": method, "url": target}
	c.logger.Debug("API request", fields)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("API request failed", err, fields)
		return Failure(err.Error())
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("Failed to read API response", err, fields)
		return Failure(fmt.Sprintf("failed to read response: %v", err))
	}

	c.logger.Debug("API response", fields.Add(watermill.LogFields{"status": resp.StatusCode}))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := fmt.Sprintf("%d %s for url: %s", resp.StatusCode, http.StatusText(resp.StatusCode), target)
		if reason := gjson.GetBytes(payload, "error"); reason.Exists() && reason.String() != "" {
			msg += ": " + reason.String()
		}
		return Failure(msg)
	}

	return Normalize(payload)
}

// Get sends a GET request with query parameters
func (c *Client) Get(ctx context.Context, endpoint string, query url.Values) Envelope {
	return c.Do(ctx, http.MethodGet, endpoint, query, nil)
}

// Post sends a POST request with a JSON body
func (c *Client) Post(ctx context.Context, endpoint string, body any) Envelope {
	return c.Do(ctx, http.MethodPost, endpoint, nil, body)
}

// Put sends a PUT request with a JSON body
func (c *Client) Put(ctx context.Context, endpoint string, body any) Envelope {
	return c.Do(ctx, http.MethodPut, endpoint, nil, body)
}

// Delete sends a DELETE request
func (c *Client) Delete(ctx context.Context, endpoint string) Envelope {
	return c.Do(ctx, http.MethodDelete, endpoint, nil, nil)
}

// decodeList returns the envelope data as a list, or an empty list on failure
func decodeList[T any](c *Client, env Envelope) []T {
	out := []T{}
	if !env.Success || len(env.Data) == 0 {
		return out
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		c.logger.Error("Failed to decode API list", err, nil)
		return []T{}
	}
	return out
}

// decodeOne returns the envelope data as a value, or nil on failure
func decodeOne[T any](c *Client, env Envelope) *T {
	if !env.Success || len(env.Data) == 0 || gjson.ParseBytes(env.Data).Type == gjson.Null {
		return nil
	}
	var out T
	if err := json.Unmarshal(env.Data, &out); err != nil {
		c.logger.Error("Failed to decode API object", err, nil)
		return nil
	}
	return &out
}
