package api

import (
	"encoding/json"
	"strings"
)

// Envelope is the {success, error} wrapper every backend response carries.
type Envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// DataInfo describes a completed server-side ingestion.
type DataInfo struct {
	Buildings   int    `json:"buildings"`
	Consumption int    `json:"consumption_rows"`
	WaterRows   int    `json:"water_rows"`
	Source      string `json:"source"`
	GeneratedAt string `json:"generated_at"`
}

// GeographicCoverage is the bounding box of the loaded dataset.
type GeographicCoverage struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// Summary holds the aggregate counts shown on the overview tab.
type Summary struct {
	TotalBuildings     int                `json:"total_buildings"`
	TotalConsumption   float64            `json:"total_consumption"`
	AvgConsumption     float64            `json:"avg_consumption"`
	TotalDataPoints    int                `json:"total_data_points"`
	GeographicCoverage GeographicCoverage `json:"geographic_coverage"`
}

// Marker is one building pin on the map.
type Marker struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Color string  `json:"color"`
	Popup string  `json:"popup"`
}

// MapData is the buildings-map payload.
type MapData struct {
	Markers []Marker   `json:"markers"`
	Center  [2]float64 `json:"center"`
	Zoom    int        `json:"zoom"`
}

// HeatPoint is one weighted point of the consumption heatmap.
type HeatPoint struct {
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Intensity float64 `json:"intensity"`
}

// HeatmapData is the consumption-heatmap payload.
type HeatmapData struct {
	Points []HeatPoint `json:"heatmap_points"`
	Center [2]float64  `json:"center"`
	Zoom   int         `json:"zoom"`
}

// Zone is one density cluster in the zone analysis.
type Zone struct {
	Name             string  `json:"name"`
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	BuildingCount    int     `json:"building_count"`
	TotalConsumption float64 `json:"total_consumption"`
	DensityLevel     string  `json:"density_level"`
}

// ZoneData is the zone-analysis payload.
type ZoneData struct {
	Zones      []Zone             `json:"zones"`
	Statistics map[string]float64 `json:"statistics"`
}

// MapStats summarizes coordinate coverage by building type.
type MapStats struct {
	TotalBuildings   int            `json:"total_buildings"`
	ValidCoordinates int            `json:"valid_coordinates"`
	CoveragePercent  float64        `json:"coverage_percent"`
	ByType           map[string]int `json:"by_type"`
}

// Trace is one series of a chart spec.
type Trace struct {
	Type string    `json:"type"`
	Name string    `json:"name"`
	X    []string  `json:"x"`
	Y    []float64 `json:"y"`
}

// Axis labels one chart axis.
type Axis struct {
	Title string `json:"title"`
}

// Layout carries chart titling.
type Layout struct {
	Title string `json:"title"`
	XAxis Axis   `json:"xaxis"`
	YAxis Axis   `json:"yaxis"`
}

// ChartSpec is the {data, layout} chart description the backend emits.
type ChartSpec struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Analysis is the answer of /api/llm/analyze. The backend has emitted both a
// bare string and an object with full_response over time, so accept either.
type Analysis struct {
	FullResponse string `json:"full_response"`
	Model        string `json:"model,omitempty"`
	DurationMS   int64  `json:"duration_ms,omitempty"`
}

func (a *Analysis) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "\"") {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Analysis{FullResponse: s}
		return nil
	}
	type alias Analysis
	var out alias
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*a = Analysis(out)
	return nil
}

// AnalysisResult pairs the answer with whether RAG context informed it.
type AnalysisResult struct {
	Analysis    Analysis `json:"analysis"`
	ContextUsed bool     `json:"context_used"`
}

// RAGUpdate reports a knowledge-base reindex.
type RAGUpdate struct {
	Indexed int    `json:"indexed"`
	Message string `json:"message"`
}
