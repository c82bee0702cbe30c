package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestBuildingsQueryDefaults(t *testing.T) {
	v := BuildingsQuery{Density: -1}.Values()
	if got := v.Get("density"); got != "100" {
		t.Fatalf("default density = %s", got)
	}
	if got := v.Get("type"); got != "all" {
		t.Fatalf("default type = %s", got)
	}
}

func TestBuildingsQueryPreservesTypeAcrossDensityChange(t *testing.T) {
	// Slider moved from 100 to 50 with the type filter untouched: the next
	// URL must carry density=50 and the previously selected type.
	q := BuildingsQuery{Density: 100, Type: "commercial"}
	q.Density = 50
	v := q.Values()
	if got := v.Get("density"); got != "50" {
		t.Fatalf("density = %s, want 50", got)
	}
	if got := v.Get("type"); got != "commercial" {
		t.Fatalf("type = %s, want commercial", got)
	}
}

func TestBuildingsQueryClampsDensity(t *testing.T) {
	v := BuildingsQuery{Density: 250, Type: "office"}.Values()
	if got := v.Get("density"); got != "100" {
		t.Fatalf("clamped density = %s", got)
	}
}

func TestConsumptionQueryDefaults(t *testing.T) {
	v := ConsumptionQuery{}.Values()
	if v.Get("range") != "7d" || v.Get("type") != "all" {
		t.Fatalf("defaults = %s/%s", v.Get("range"), v.Get("type"))
	}
}

func TestBuildingsRequestAndDecode(t *testing.T) {
	var gotURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"map_data": map[string]any{
				"markers": []map[string]any{
					{"lat": 3.14, "lng": 101.69, "color": "#007bff", "popup": "Tower A"},
				},
				"center": []float64{4.2105, 101.9758},
				"zoom":   6,
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	data, err := c.Buildings(context.Background(), BuildingsQuery{Density: 50, Type: "commercial"})
	if err != nil {
		t.Fatalf("Buildings: %v", err)
	}
	if len(data.Markers) != 1 || data.Markers[0].Popup != "Tower A" {
		t.Fatalf("markers = %+v", data.Markers)
	}
	if data.Zoom != 6 {
		t.Fatalf("zoom = %d", data.Zoom)
	}
	wantURL := "/api/map/buildings?density=50&type=commercial"
	if gotURL != wantURL {
		t.Fatalf("request URL = %s, want %s", gotURL, wantURL)
	}
}

func TestEnvelopeFailureBecomesBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "Aucune donnée chargée"})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.Summary(context.Background())
	var be *BackendError
	if !errors.As(err, &be) {
		t.Fatalf("want BackendError, got %v", err)
	}
	if be.Message != "Aucune donnée chargée" {
		t.Fatalf("message = %s", be.Message)
	}
}

func TestNonJSONErrorPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	if _, err := c.Summary(context.Background()); err == nil {
		t.Fatal("want error for HTML error page")
	}
}

func TestAnalysisAcceptsStringAndObject(t *testing.T) {
	var a Analysis
	if err := json.Unmarshal([]byte(`"plain answer"`), &a); err != nil {
		t.Fatalf("string form: %v", err)
	}
	if a.FullResponse != "plain answer" {
		t.Fatalf("string form response = %q", a.FullResponse)
	}
	if err := json.Unmarshal([]byte(`{"full_response":"rich answer","model":"llama3"}`), &a); err != nil {
		t.Fatalf("object form: %v", err)
	}
	if a.FullResponse != "rich answer" || a.Model != "llama3" {
		t.Fatalf("object form = %+v", a)
	}
}

func TestProbeAnalyzer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A 500 still means the backend is reachable.
		w.WriteHeader(http.StatusInternalServerError)
	}))
	c := New(srv.URL, time.Second)
	if !c.ProbeAnalyzer(context.Background()) {
		t.Fatal("reachable backend should probe available")
	}
	srv.Close()
	if c.ProbeAnalyzer(context.Background()) {
		t.Fatal("closed backend should probe unavailable")
	}
}

func TestLoadDataPostsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success":   true,
			"data_info": map[string]any{"buildings": 1200, "consumption_rows": 84000},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	info, err := c.LoadData(context.Background())
	if err != nil {
		t.Fatalf("LoadData: %v", err)
	}
	if info.Buildings != 1200 || info.Consumption != 84000 {
		t.Fatalf("info = %+v", info)
	}
}
