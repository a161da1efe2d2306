package geo

import (
	"testing"

	"github.com/kisan-depin/dmrv/pkg/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		coord   Coordinate
		wantErr bool
	}{
		{"delhi", Coordinate{Lat: 28.6139, Lon: 77.2090}, false},
		{"equator origin", Coordinate{}, false},
		{"lat max", Coordinate{Lat: 90, Lon: 0}, false},
		{"lat min", Coordinate{Lat: -90, Lon: 0}, false},
		{"lon max", Coordinate{Lat: 0, Lon: 180}, false},
		{"lon min", Coordinate{Lat: 0, Lon: -180}, false},
		{"lat too high", Coordinate{Lat: 90.1, Lon: 0}, true},
		{"lat too low", Coordinate{Lat: -91, Lon: 0}, true},
		{"lon too high", Coordinate{Lat: 0, Lon: 180.5}, true},
		{"lon too low", Coordinate{Lat: 0, Lon: -181}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.coord.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidCoordinate) {
				t.Errorf("error code = %v, want INVALID_COORDINATE", errors.GetCode(err))
			}
		})
	}
}

func TestKey(t *testing.T) {
	c := Coordinate{Lat: 28.6139, Lon: 77.2090}
	if got := c.Key(); got != "28.6139,77.2090" {
		t.Errorf("Key() = %q", got)
	}

	// Coordinates that agree at 4 decimals share a key.
	c2 := Coordinate{Lat: 28.61391, Lon: 77.20899}
	if c.Key() != c2.Key() {
		t.Errorf("keys differ: %q vs %q", c.Key(), c2.Key())
	}
}

func TestSeedDeterminism(t *testing.T) {
	c := Coordinate{Lat: 28.6139, Lon: 77.2090}
	if c.Seed() != c.Seed() {
		t.Error("Seed should be deterministic")
	}

	// 5th decimal is below key precision: same seed.
	close := Coordinate{Lat: 28.61394, Lon: 77.20901}
	if c.Seed() != close.Seed() {
		t.Error("coordinates equal at 4 decimals should share a seed")
	}

	other := Coordinate{Lat: 30.9010, Lon: 75.8573}
	if c.Seed() == other.Seed() {
		t.Error("distinct coordinates should produce distinct seeds")
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		coord Coordinate
		want  string
	}{
		{Coordinate{Lat: 28.6139, Lon: 77.2090}, "28.6139°N, 77.2090°E"},
		{Coordinate{Lat: -33.8688, Lon: 151.2093}, "33.8688°S, 151.2093°E"},
		{Coordinate{Lat: 40.7128, Lon: -74.0060}, "40.7128°N, 74.0060°W"},
		{Coordinate{Lat: -13.1631, Lon: -72.5450}, "13.1631°S, 72.5450°W"},
	}

	for _, tt := range tests {
		if got := tt.coord.Label(); got != tt.want {
			t.Errorf("Label() = %q, want %q", got, tt.want)
		}
	}
}

func TestBBox(t *testing.T) {
	c := Coordinate{Lat: 28.6139, Lon: 77.2090}
	west, south, east, north := c.BBox(0.01)

	if west >= east || south >= north {
		t.Fatalf("degenerate bbox: %f %f %f %f", west, south, east, north)
	}
	if got := east - west; got < 0.0199 || got > 0.0201 {
		t.Errorf("bbox width = %f, want 0.02", got)
	}
	if got := north - south; got < 0.0199 || got > 0.0201 {
		t.Errorf("bbox height = %f, want 0.02", got)
	}
}
