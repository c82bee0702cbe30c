// Package format holds pure display-formatting helpers shared by tabs and
// widgets. Nothing in here touches the terminal or the network.
package format

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Number renders a value with k/M suffixes for display. Boundaries sit at
// 1,000 and 1,000,000; one decimal by default. An optional unit is appended
// with a space.
func Number(v float64, unit string, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "N/A"
	}
	if decimals < 0 {
		decimals = 1
	}
	var s string
	switch {
	case math.Abs(v) >= 1_000_000:
		s = fmt.Sprintf("%.*fM", decimals, v/1_000_000)
	case math.Abs(v) >= 1_000:
		s = fmt.Sprintf("%.*fk", decimals, v/1_000)
	default:
		s = fmt.Sprintf("%.*f", decimals, v)
	}
	return strings.TrimSpace(s + " " + unit)
}

// Percentage formats a ratio or a percentage. Values in [0,1] are treated as
// ratios and scaled by 100.
func Percentage(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "N/A"
	}
	if decimals < 0 {
		decimals = 1
	}
	if v >= 0 && v <= 1 {
		v *= 100
	}
	return fmt.Sprintf("%.*f%%", decimals, v)
}

// Datetime styles mirror the display variants the backend UI uses.
const (
	DatetimeDefault  = "2006-01-02 15:04"
	DatetimeShort    = "02/01/2006"
	DatetimeTimeOnly = "15:04"
	DatetimeISO      = "2006-01-02T15:04:05"
)

// Datetime formats t with the given layout, falling back to the default
// layout for an empty one. The zero time renders as "N/A".
func Datetime(t time.Time, layout string) string {
	if t.IsZero() {
		return "N/A"
	}
	if layout == "" {
		layout = DatetimeDefault
	}
	return t.Format(layout)
}

// TimeRange resolves a range token (7d, 30d, 90d, 1y and the short aliases
// 1h, 24h, 1w, 1m) into start and end instants relative to now. Unknown
// tokens fall back to seven days.
func TimeRange(token string, now time.Time) (time.Time, time.Time) {
	spans := map[string]time.Duration{
		"7d":  7 * 24 * time.Hour,
		"30d": 30 * 24 * time.Hour,
		"90d": 90 * 24 * time.Hour,
		"1y":  365 * 24 * time.Hour,
		"1h":  time.Hour,
		"24h": 24 * time.Hour,
		"1w":  7 * 24 * time.Hour,
		"1m":  30 * 24 * time.Hour,
	}
	span, ok := spans[token]
	if !ok {
		span = 7 * 24 * time.Hour
	}
	return now.Add(-span), now
}

// Efficiency bands in kWh/m², matching the server-side categorization.
func CategorizeEfficiency(kwhPerSqm float64) string {
	switch {
	case kwhPerSqm <= 50:
		return "excellent"
	case kwhPerSqm <= 100:
		return "good"
	case kwhPerSqm <= 150:
		return "average"
	case kwhPerSqm <= 200:
		return "poor"
	default:
		return "very_poor"
	}
}

// BuildingEfficiency returns consumption per square meter. A non-positive
// area yields +Inf, which CategorizeEfficiency maps to very_poor.
func BuildingEfficiency(consumption, surfaceArea float64) float64 {
	if surfaceArea <= 0 {
		return math.Inf(1)
	}
	return consumption / surfaceArea
}

// Malaysia coverage bounds used to drop bogus coordinates before plotting.
const (
	LatMin = 0.5
	LatMax = 7.5
	LngMin = 99.0
	LngMax = 120.0
)

// ValidCoordinates reports whether a lat/lng pair falls inside the service
// coverage area.
func ValidCoordinates(lat, lng float64) bool {
	return lat >= LatMin && lat <= LatMax && lng >= LngMin && lng <= LngMax
}
