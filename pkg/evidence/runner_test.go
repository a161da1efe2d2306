package evidence

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kisan-depin/dmrv/pkg/cache"
	dmrverrors "github.com/kisan-depin/dmrv/pkg/errors"
	"github.com/kisan-depin/dmrv/pkg/geo"
	"github.com/kisan-depin/dmrv/pkg/sentinel"
	"github.com/kisan-depin/dmrv/pkg/verify"
)

var delhi = geo.Coordinate{Lat: 28.6139, Lon: 77.2090}

func testOptions(t *testing.T, verdict verify.Verdict) Options {
	t.Helper()
	return Options{
		Coordinate: delhi,
		Verdict:    verdict,
		Size:       128,
		OutputDir:  t.TempDir(),
	}
}

func TestRenderWritesArtifacts(t *testing.T) {
	runner := NewRunner(nil, nil, nil)

	opts := testOptions(t, verify.Violation)
	result, err := runner.Render(context.Background(), opts)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	paths := []string{
		result.SatellitePath,
		result.HeatmapPath,
		result.SuperResPath,
		result.ComparisonPath,
	}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			t.Fatalf("artifact missing: %v", err)
		}
		if info.Size() == 0 {
			t.Errorf("artifact %s is empty", p)
		}
	}

	if filepath.Base(result.SatellitePath) != "satellite_28.6139_77.2090.png" {
		t.Errorf("satellite name = %s", filepath.Base(result.SatellitePath))
	}
	if result.TileSource != "synthetic" {
		t.Errorf("tile source = %s, want synthetic", result.TileSource)
	}

	// No temp files may survive a successful render.
	entries, err := os.ReadDir(opts.OutputDir)
	if err != nil {
		t.Fatalf("ReadDir error: %v", err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp") {
			t.Errorf("leftover temp file: %s", e.Name())
		}
	}
}

func TestRenderSatelliteIndependentOfVerdict(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	ctx := context.Background()

	compliant, err := runner.Render(ctx, testOptions(t, verify.Compliant))
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	violation, err := runner.Render(ctx, testOptions(t, verify.Violation))
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	a, _ := os.ReadFile(compliant.SatellitePath)
	b, _ := os.ReadFile(violation.SatellitePath)
	if !bytes.Equal(a, b) {
		t.Error("base tile should not depend on the verdict")
	}

	ha, _ := os.ReadFile(compliant.HeatmapPath)
	hb, _ := os.ReadFile(violation.HeatmapPath)
	if bytes.Equal(ha, hb) {
		t.Error("heatmaps should differ between verdicts")
	}
}

func TestRenderDeterminism(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	ctx := context.Background()

	first, err := runner.Render(ctx, testOptions(t, verify.Violation))
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	second, err := runner.Render(ctx, testOptions(t, verify.Violation))
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	a, _ := os.ReadFile(first.HeatmapPath)
	b, _ := os.ReadFile(second.HeatmapPath)
	if !bytes.Equal(a, b) {
		t.Error("identical options should produce byte-identical heatmaps")
	}
}

func TestRenderCacheHit(t *testing.T) {
	runner := NewRunner(cache.NewMemoryCache(), nil, nil)
	ctx := context.Background()
	outputDir := t.TempDir()

	opts := Options{Coordinate: delhi, Verdict: verify.Compliant, Size: 128, OutputDir: outputDir}
	first, err := runner.Render(ctx, opts)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if first.CacheInfo.TileHit {
		t.Error("first render should not hit the cache")
	}

	opts = Options{Coordinate: delhi, Verdict: verify.Compliant, Size: 128, OutputDir: outputDir}
	second, err := runner.Render(ctx, opts)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if !second.CacheInfo.TileHit {
		t.Error("second render should hit the tile cache")
	}
	if !second.CacheInfo.HeatmapHit {
		t.Error("second render should hit the heatmap cache")
	}
	if second.TileSource != "cache" {
		t.Errorf("tile source = %s, want cache", second.TileSource)
	}
}

func TestRenderQualifiedNames(t *testing.T) {
	runner := NewRunner(nil, nil, nil)

	opts := testOptions(t, verify.Compliant)
	opts.QualifyNames = true
	result, err := runner.Render(context.Background(), opts)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	if filepath.Base(result.HeatmapPath) != "28.6139_77.2090_thermal_heatmap.png" {
		t.Errorf("heatmap name = %s", filepath.Base(result.HeatmapPath))
	}
}

func TestRenderInvalidCoordinate(t *testing.T) {
	runner := NewRunner(nil, nil, nil)

	_, err := runner.Render(context.Background(), Options{
		Coordinate: geo.Coordinate{Lat: 99, Lon: 0},
		OutputDir:  t.TempDir(),
	})
	if !dmrverrors.Is(err, dmrverrors.ErrCodeInvalidCoordinate) {
		t.Errorf("error = %v, want INVALID_COORDINATE", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Coordinate: delhi}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults error: %v", err)
	}

	if opts.Size != DefaultSize {
		t.Errorf("size = %d", opts.Size)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("scale = %d", opts.Scale)
	}
	if opts.OutputDir != DefaultOutputDir {
		t.Errorf("output dir = %s", opts.OutputDir)
	}
	if opts.Alpha != DefaultAlpha {
		t.Errorf("alpha = %g", opts.Alpha)
	}
	if opts.ThermalSeed != delhi.Seed() {
		t.Error("thermal seed should default to the coordinate seed")
	}
	if opts.Logger == nil {
		t.Error("logger should get a discard default")
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code dmrverrors.Code
	}{
		{"bad size", Options{Coordinate: delhi, Size: MaxSize + 1}, dmrverrors.ErrCodeInvalidSize},
		{"bad scale", Options{Coordinate: delhi, Scale: MaxScale + 1}, dmrverrors.ErrCodeInvalidSize},
		{"bad alpha", Options{Coordinate: delhi, Alpha: 1.5}, dmrverrors.ErrCodeInvalidInput},
		{"traversal output", Options{Coordinate: delhi, OutputDir: "../escape"}, dmrverrors.ErrCodeInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !dmrverrors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

// stubFetcher implements sentinel.Fetcher for fallback tests.
type stubFetcher struct {
	img image.Image
	err error
}

func (f stubFetcher) FetchTile(ctx context.Context, coord geo.Coordinate, dates sentinel.DateRange) (image.Image, error) {
	return f.img, f.err
}

func TestRenderUpstreamFallback(t *testing.T) {
	runner := NewRunner(nil, nil, stubFetcher{err: errors.New("network down")})

	result, err := runner.Render(context.Background(), testOptions(t, verify.Compliant))
	if err != nil {
		t.Fatalf("upstream failure should not fail the render: %v", err)
	}
	if result.TileSource != "synthetic" {
		t.Errorf("tile source = %s, want synthetic", result.TileSource)
	}
}

func TestRenderUpstreamTile(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 200, 200))
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 40, G: 90, B: 30, A: 255})
		}
	}
	runner := NewRunner(nil, nil, stubFetcher{img: img})

	result, err := runner.Render(context.Background(), testOptions(t, verify.Compliant))
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if result.TileSource != "upstream" {
		t.Errorf("tile source = %s, want upstream", result.TileSource)
	}
}
