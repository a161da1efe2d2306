package raster

import (
	"bytes"
	"testing"

	"github.com/kisan-depin/dmrv/pkg/geo"
)

var delhi = geo.Coordinate{Lat: 28.6139, Lon: 77.2090}

func TestGenerateTerrainDeterminism(t *testing.T) {
	a, _ := GenerateTerrain(delhi, 128, 128)
	b, _ := GenerateTerrain(delhi, 128, 128)

	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("same coordinate and size should produce byte-identical terrain")
	}
}

func TestGenerateTerrainDistinctCoordinates(t *testing.T) {
	a, _ := GenerateTerrain(delhi, 64, 64)
	b, _ := GenerateTerrain(geo.Coordinate{Lat: 30.9010, Lon: 75.8573}, 64, 64)

	if bytes.Equal(a.Pix, b.Pix) {
		t.Error("distinct coordinates should produce distinct terrain")
	}
}

func TestGenerateTerrainChannelBounds(t *testing.T) {
	r, _ := GenerateTerrain(delhi, 128, 128)

	bounds := []struct {
		ch     int
		lo, hi uint8
	}{
		{chR, 30, 130},
		{chG, 50, 170},
		{chB, 20, 100},
	}

	for _, b := range bounds {
		for i := b.ch; i < len(r.Pix); i += 3 {
			if r.Pix[i] < b.lo || r.Pix[i] > b.hi {
				t.Fatalf("channel %d value %d outside [%d, %d]", b.ch, r.Pix[i], b.lo, b.hi)
			}
		}
	}
}

func TestGenerateTerrainChannelMeans(t *testing.T) {
	// With 512² samples per channel the sample mean sits within a fraction
	// of a unit of the distribution mean.
	r, _ := GenerateTerrain(delhi, 512, 512)

	means := []struct {
		ch   int
		want float64
	}{
		{chR, 80},
		{chG, 110},
		{chB, 60},
	}

	for _, m := range means {
		sum := 0.0
		n := 0
		for i := m.ch; i < len(r.Pix); i += 3 {
			sum += float64(r.Pix[i])
			n++
		}
		mean := sum / float64(n)
		if mean < m.want-3 || mean > m.want+3 {
			t.Errorf("channel %d mean = %.1f, want ≈ %.0f", m.ch, mean, m.want)
		}
	}
}

func TestApplyFieldPatternsDeterminism(t *testing.T) {
	a, rngA := GenerateTerrain(delhi, 128, 128)
	ApplyFieldPatterns(a, rngA)

	b, rngB := GenerateTerrain(delhi, 128, 128)
	ApplyFieldPatterns(b, rngB)

	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("full tile construction should be byte-identical across runs")
	}
}

func TestApplyFieldPatternsModifiesRaster(t *testing.T) {
	r, rng := GenerateTerrain(delhi, 128, 128)
	before := r.Clone()
	ApplyFieldPatterns(r, rng)

	if bytes.Equal(before.Pix, r.Pix) {
		t.Error("field patterns should modify the raster")
	}
}

func TestApplyFieldPatternsSmallRaster(t *testing.T) {
	r := New(32, 32)
	before := append([]uint8(nil), r.Pix...)

	ApplyFieldPatterns(r, NewRNG(1))
	if !bytes.Equal(before, r.Pix) {
		t.Error("rasters below the minimum plot footprint should be unchanged")
	}
}

func TestApplyFieldPatternsBounds(t *testing.T) {
	r, rng := GenerateTerrain(delhi, 256, 256)
	ApplyFieldPatterns(r, rng)

	// Biases clip each channel; nothing may escape 8-bit range semantics.
	for i := chG; i < len(r.Pix); i += 3 {
		if r.Pix[i] > 200 {
			t.Fatalf("green value %d exceeds overlay ceiling 200", r.Pix[i])
		}
	}
}

func TestImageRoundTrip(t *testing.T) {
	r, _ := GenerateTerrain(delhi, 32, 32)

	back := FromImage(r.Image())
	if !bytes.Equal(r.Pix, back.Pix) {
		t.Error("Image/FromImage should round-trip raster bytes")
	}
}

func TestNewRNGDeterminism(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 10; i++ {
		if a.Uint64() != b.Uint64() {
			t.Fatal("same seed should produce identical streams")
		}
	}
}
