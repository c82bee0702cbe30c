package format

import (
	"math"
	"testing"
	"time"
)

func TestNumberBoundaries(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{999, "999.0"},
		{1500, "1.5k"},
		{2_500_000, "2.5M"},
		{0, "0.0"},
		{1000, "1.0k"},
		{1_000_000, "1.0M"},
		{-1500, "-1.5k"},
	}
	for _, c := range cases {
		if got := Number(c.in, "", 1); got != c.want {
			t.Errorf("Number(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNumberUnitAndNaN(t *testing.T) {
	if got := Number(1500, "kWh", 1); got != "1.5k kWh" {
		t.Fatalf("unit suffix: %q", got)
	}
	if got := Number(math.NaN(), "", 1); got != "N/A" {
		t.Fatalf("NaN: %q", got)
	}
}

func TestPercentageScalesRatios(t *testing.T) {
	if got := Percentage(0.153, 1); got != "15.3%" {
		t.Fatalf("ratio: %q", got)
	}
	if got := Percentage(42.0, 0); got != "42%" {
		t.Fatalf("already-scaled: %q", got)
	}
}

func TestTimeRangeTokens(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	start, end := TimeRange("30d", now)
	if end != now {
		t.Fatalf("end should be now")
	}
	if got := end.Sub(start); got != 30*24*time.Hour {
		t.Fatalf("30d span = %v", got)
	}
	start, _ = TimeRange("bogus", now)
	if got := now.Sub(start); got != 7*24*time.Hour {
		t.Fatalf("unknown token should fall back to 7d, got %v", got)
	}
}

func TestCategorizeEfficiency(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{10, "excellent"},
		{50, "excellent"},
		{100, "good"},
		{150, "average"},
		{200, "poor"},
		{500, "very_poor"},
	}
	for _, c := range cases {
		if got := CategorizeEfficiency(c.in); got != c.want {
			t.Errorf("CategorizeEfficiency(%v) = %q, want %q", c.in, got, c.want)
		}
	}
	if got := CategorizeEfficiency(BuildingEfficiency(1000, 0)); got != "very_poor" {
		t.Fatalf("zero area should be very_poor, got %q", got)
	}
}

func TestValidCoordinates(t *testing.T) {
	if !ValidCoordinates(4.2105, 101.9758) {
		t.Fatal("center of coverage should be valid")
	}
	if ValidCoordinates(52.5, 13.4) {
		t.Fatal("out-of-coverage point should be invalid")
	}
}

func TestDatetimeZero(t *testing.T) {
	if got := Datetime(time.Time{}, DatetimeShort); got != "N/A" {
		t.Fatalf("zero time: %q", got)
	}
	ts := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	if got := Datetime(ts, DatetimeTimeOnly); got != "09:30" {
		t.Fatalf("time only: %q", got)
	}
}
