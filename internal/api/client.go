// Package api is the HTTP client for the dashboard backend. Every endpoint
// returns a {success, error, ...} envelope; a transport failure and a
// success:false envelope surface the same way so callers can apply the
// keep-stale-view policy uniformly.
package api

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
)

// Control defaults applied when a query value is absent.
const (
	DefaultDensity = 100
	DefaultType    = "all"
	DefaultRange   = "7d"
)

// BackendError is a success:false envelope.
type BackendError struct {
	Endpoint string
	Message  string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return e.Endpoint + ": backend reported failure"
	}
	return e.Endpoint + ": " + e.Message
}

// Client talks to the dashboard backend.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for the given base URL, e.g. "http://127.0.0.1:8080".
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// BuildingsQuery carries the map controls. Density -1 and an empty Type mean
// "control absent" and resolve to the documented defaults.
type BuildingsQuery struct {
	Density int
	Type    string
}

// Values renders the query string; defaults are applied here so every caller
// builds identical URLs.
func (q BuildingsQuery) Values() url.Values {
	density := q.Density
	if density < 0 {
		density = DefaultDensity
	}
	if density > 100 {
		density = 100
	}
	typ := q.Type
	if typ == "" {
		typ = DefaultType
	}
	v := url.Values{}
	v.Set("density", strconv.Itoa(density))
	v.Set("type", typ)
	return v
}

// ConsumptionQuery carries the consumption-chart controls.
type ConsumptionQuery struct {
	Range string
	Type  string
}

func (q ConsumptionQuery) Values() url.Values {
	r := q.Range
	if r == "" {
		r = DefaultRange
	}
	typ := q.Type
	if typ == "" {
		typ = DefaultType
	}
	v := url.Values{}
	v.Set("range", r)
	v.Set("type", typ)
	return v
}

// LoadData triggers server-side ingestion.
func (c *Client) LoadData(ctx context.Context) (DataInfo, error) {
	var out struct {
		Envelope
		DataInfo DataInfo `json:"data_info"`
	}
	if err := c.post(ctx, "/api/data/load", nil, &out); err != nil {
		return DataInfo{}, err
	}
	return out.DataInfo, nil
}

// Summary fetches the aggregate counts.
func (c *Client) Summary(ctx context.Context) (Summary, error) {
	var out struct {
		Envelope
		Summary Summary `json:"summary"`
	}
	if err := c.get(ctx, "/api/data/summary", nil, &out); err != nil {
		return Summary{}, err
	}
	return out.Summary, nil
}

// OverviewCharts fetches the overview chart specs keyed by chart id.
func (c *Client) OverviewCharts(ctx context.Context) (map[string]ChartSpec, error) {
	var out struct {
		Envelope
		Charts map[string]ChartSpec `json:"charts"`
	}
	if err := c.get(ctx, "/api/charts/overview", nil, &out); err != nil {
		return nil, err
	}
	return out.Charts, nil
}

// ConsumptionCharts fetches the consumption chart specs for a range/type pair.
func (c *Client) ConsumptionCharts(ctx context.Context, q ConsumptionQuery) (map[string]ChartSpec, error) {
	var out struct {
		Envelope
		Charts map[string]ChartSpec `json:"charts"`
	}
	if err := c.get(ctx, "/api/charts/consumption", q.Values(), &out); err != nil {
		return nil, err
	}
	return out.Charts, nil
}

// Buildings fetches map markers for the current density/type controls.
func (c *Client) Buildings(ctx context.Context, q BuildingsQuery) (MapData, error) {
	var out struct {
		Envelope
		MapData MapData `json:"map_data"`
	}
	if err := c.get(ctx, "/api/map/buildings", q.Values(), &out); err != nil {
		return MapData{}, err
	}
	return out.MapData, nil
}

// ConsumptionHeatmap fetches the weighted heatmap points.
func (c *Client) ConsumptionHeatmap(ctx context.Context) (HeatmapData, error) {
	var out struct {
		Envelope
		HeatmapData HeatmapData `json:"heatmap_data"`
	}
	if err := c.get(ctx, "/api/map/consumption-heatmap", nil, &out); err != nil {
		return HeatmapData{}, err
	}
	return out.HeatmapData, nil
}

// MapZones fetches the density-zone breakdown.
func (c *Client) MapZones(ctx context.Context) (ZoneData, error) {
	var out struct {
		Envelope
		ZonesData ZoneData `json:"zones_data"`
	}
	if err := c.get(ctx, "/api/map/zones", nil, &out); err != nil {
		return ZoneData{}, err
	}
	return out.ZonesData, nil
}

// MapStatistics fetches coordinate-coverage statistics.
func (c *Client) MapStatistics(ctx context.Context) (MapStats, error) {
	var out struct {
		Envelope
		Statistics MapStats `json:"statistics"`
	}
	if err := c.get(ctx, "/api/map/statistics", nil, &out); err != nil {
		return MapStats{}, err
	}
	return out.Statistics, nil
}

// Analyze asks the AI backend a question over HTTP.
func (c *Client) Analyze(ctx context.Context, question string) (AnalysisResult, error) {
	body := map[string]string{"question": question}
	var out struct {
		Envelope
		Analysis    Analysis `json:"analysis"`
		ContextUsed bool     `json:"context_used"`
	}
	if err := c.post(ctx, "/api/llm/analyze", body, &out); err != nil {
		return AnalysisResult{}, err
	}
	return AnalysisResult{Analysis: out.Analysis, ContextUsed: out.ContextUsed}, nil
}

// ProbeAnalyzer reports whether the AI backend answers at all. Any HTTP
// response counts as available; only transport failure means down.
func (c *Client) ProbeAnalyzer(ctx context.Context) bool {
	payload, _ := json.Marshal(map[string]string{"question": "ping"})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/llm/analyze", bytes.NewReader(payload))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return true
}

// UpdateRAG reindexes the knowledge base.
func (c *Client) UpdateRAG(ctx context.Context) (RAGUpdate, error) {
	var out struct {
		Envelope
		RAGUpdate
	}
	if err := c.post(ctx, "/api/rag/update", nil, &out); err != nil {
		return RAGUpdate{}, err
	}
	return out.RAGUpdate, nil
}

type enveloped interface {
	envelope() Envelope
}

func (e Envelope) envelope() Envelope { return e }

func (c *Client) get(ctx context.Context, path string, query url.Values, out enveloped) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return c.do(req, path, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out enveloped) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, path, out)
}

func (c *Client) do(req *http.Request, path string, out enveloped) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return fmt.Errorf("%s: read body: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		// Non-JSON error pages still need a useful message.
		if resp.StatusCode >= 400 {
			return fmt.Errorf("%s: http %d", path, resp.StatusCode)
		}
		return fmt.Errorf("%s: decode: %w", path, err)
	}
	if env := out.envelope(); !env.Success {
		return &BackendError{Endpoint: path, Message: env.Error}
	}
	return nil
}
