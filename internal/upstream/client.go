// Package upstream is a typed client for the prediction and routing API the
// dashboard consumes.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	ErrUpstream  = errors.New("upstream request failed")
	ErrBadStatus = errors.New("upstream returned non-2xx status")
	ErrDecode    = errors.New("upstream returned an undecodable body")
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Predict fetches the prediction bundle for a city.
func (c *Client) Predict(ctx context.Context, city string) (*Prediction, error) {
	var out Prediction
	q := url.Values{"city": {city}}
	if err := c.do(ctx, http.MethodGet, "/api/predict", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Locations(ctx context.Context) ([]string, error) {
	var out LocationsResponse
	if err := c.do(ctx, http.MethodGet, "/api/locations", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Locations, nil
}

func (c *Client) Route(ctx context.Context, req RouteRequest) (*RoutesResponse, error) {
	var out RoutesResponse
	if err := c.do(ctx, http.MethodPost, "/api/route", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AnalyzeRoutes(ctx context.Context, req AnalyzeRoutesRequest) (*RoutesResponse, error) {
	var q url.Values
	if req.UserPreference != "" {
		q = url.Values{"user_preference": {req.UserPreference}}
	}
	var out RoutesResponse
	if err := c.do(ctx, http.MethodPost, "/api/analyze_routes", q, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Simulate(ctx context.Context, req SimulateRequest) (*SimulateResponse, error) {
	var out SimulateResponse
	if err := c.do(ctx, http.MethodPost, "/api/simulate", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Stations(ctx context.Context, req StationsRequest) (*StationsResponse, error) {
	var out StationsResponse
	if err := c.do(ctx, http.MethodPost, "/api/stations", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CommunityFeed(ctx context.Context, location string) (*CommunityFeed, error) {
	var q url.Values
	if location != "" {
		q = url.Values{"location": {location}}
	}
	var out CommunityFeed
	if err := c.do(ctx, http.MethodGet, "/api/community/feed", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SubmitCommunityReport(ctx context.Context, req CommunityReportRequest) (*CommunityReportResponse, error) {
	var out CommunityReportResponse
	if err := c.do(ctx, http.MethodPost, "/api/community/report", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do sends the request and decodes a JSON response into out. An empty body
// leaves out at its zero value.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrUpstream, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", ErrUpstream, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s %s: %d", ErrBadStatus, method, path, resp.StatusCode)
	}
	if len(bytes.TrimSpace(data)) == 0 || out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}
	return nil
}
