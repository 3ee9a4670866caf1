// Package sepush provides the live and mock gateways to the EskomSePush
// API. The two are interchangeable behind ports.PushAPI.
package sepush

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"SePushMonitor/internal/domain"
	"SePushMonitor/internal/ports"
	"SePushMonitor/internal/storage"
)

const tokenHeader = "Token"

// Client is the live HTTP gateway. The credential is read from the
// persisted settings entry on every request; a missing key fails fast
// without a network round-trip.
type Client struct {
	baseURL string
	store   *storage.Store
	http    *http.Client
	logger  *slog.Logger
}

var _ ports.PushAPI = (*Client)(nil)

// NewClient creates a reusable gateway against baseURL.
func NewClient(baseURL string, store *storage.Store, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		store:   store,
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

// GetStatus fetches the national outage status.
func (c *Client) GetStatus(ctx context.Context) domain.Result[domain.StatusResponse] {
	return getJSON[domain.StatusResponse](c, ctx, "/status", nil)
}

// GetAreaInformation fetches the schedule for one area.
func (c *Client) GetAreaInformation(ctx context.Context, areaID string) domain.Result[domain.AreaInfoResponse] {
	return getJSON[domain.AreaInfoResponse](c, ctx, "/area", url.Values{"id": {areaID}})
}

// GetAreasNearby fetches areas close to a position.
func (c *Client) GetAreasNearby(ctx context.Context, lat, long float64) domain.Result[domain.AreasNearbyResponse] {
	return getJSON[domain.AreasNearbyResponse](c, ctx, "/areas_nearby", coordinateQuery(lat, long))
}

// SearchArea fetches areas partially matching a name.
func (c *Client) SearchArea(ctx context.Context, name string) domain.Result[domain.AreaSearchResponse] {
	return getJSON[domain.AreaSearchResponse](c, ctx, "/areas_search", url.Values{"text": {name}})
}

// GetTopicsNearby fetches the crowd-sourced feed around a position.
func (c *Client) GetTopicsNearby(ctx context.Context, lat, long float64) domain.Result[domain.TopicsNearbyResponse] {
	return getJSON[domain.TopicsNearbyResponse](c, ctx, "/topics_nearby", coordinateQuery(lat, long))
}

// GetAllowance fetches the remaining quota; this call is not quota-counted.
func (c *Client) GetAllowance(ctx context.Context) domain.Result[domain.AllowanceResponse] {
	return getJSON[domain.AllowanceResponse](c, ctx, "/api_allowance", nil)
}

// ValidateAPIKey confirms a candidate credential by hitting the allowance
// endpoint with it; the body is discarded.
func (c *Client) ValidateAPIKey(ctx context.Context, apiKey string) domain.ResultBase {
	req, err := c.newRequest(ctx, "/api_allowance", nil, apiKey)
	if err != nil {
		return domain.FailBase(err.Error())
	}
	if _, errs := c.do(req); errs != nil {
		return domain.FailBase(errs...)
	}
	return domain.OkBase()
}

func getJSON[T any](c *Client, ctx context.Context, path string, query url.Values) domain.Result[T] {
	token, res := c.currentToken()
	if !res.IsSuccess {
		return domain.FailFrom[T](res)
	}

	req, err := c.newRequest(ctx, path, query, token)
	if err != nil {
		return domain.Fail[T](err.Error())
	}

	body, errs := c.do(req)
	if errs != nil {
		return domain.Fail[T](errs...)
	}

	var payload T
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.Fail[T](fmt.Sprintf("parsing response for [%s]: %v", path, err))
	}

	c.logger.Debug("request succeeded", "path", path)
	return domain.Ok(payload)
}

func (c *Client) currentToken() (string, domain.ResultBase) {
	settings := storage.Get[domain.UserSettings](c.store, storage.KeyUserSettings)
	if !settings.IsSuccess || settings.Data.APIKey == "" {
		err := "API key: no EskomSePush API key has been registered yet"
		c.logger.Warn(err)
		return "", domain.FailBase(err)
	}
	return settings.Data.APIKey, domain.OkBase()
}

func (c *Client) newRequest(ctx context.Context, path string, query url.Values, token string) (*http.Request, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(tokenHeader, token)
	return req, nil
}

// do executes the request and normalizes every failure mode into messages.
// A server-supplied structured error takes precedence over the generic
// transport text.
func (c *Client) do(req *http.Request) ([]byte, []string) {
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("request failed", "url", req.URL.Path, "error", err)
		return nil, []string{err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, []string{fmt.Sprintf("reading response for [%s]: %v", req.URL.Path, err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var serverErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &serverErr) == nil && serverErr.Error != "" {
			c.logger.Error("server rejected request", "url", req.URL.Path, "error", serverErr.Error)
			return nil, []string{serverErr.Error}
		}
		c.logger.Error("unexpected status", "url", req.URL.Path, "status", resp.Status)
		return nil, []string{fmt.Sprintf("unexpected status %s for [%s]", resp.Status, req.URL.Path)}
	}

	return body, nil
}

func coordinateQuery(lat, long float64) url.Values {
	return url.Values{
		"lat": {fmt.Sprintf("%g", lat)},
		"lon": {fmt.Sprintf("%g", long)},
	}
}
