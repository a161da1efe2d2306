// Package evidence implements the satellite evidence pipeline.
//
// This package builds the complete tile → thermal → super-resolve →
// comparison pipeline used by both the CLI and the API server. Centralizing
// it keeps artifact bytes identical regardless of the entry point.
//
// # Architecture
//
// A render has four stages:
//
//  1. Tile: fetch real Sentinel-2 imagery when an upstream is configured,
//     otherwise generate a deterministic synthetic tile from the coordinate
//  2. Thermal: synthesize an intensity field from the verdict and blend a
//     heat-colored rendering over the tile
//  3. Super-resolve: upscale the tile with a sharpening pass
//  4. Compare: compose the side-by-side tile/heatmap panel
//
// Every artifact is written atomically; partially written files are never
// visible at the final paths.
//
// # Usage
//
// Create a Runner and render:
//
//	runner := evidence.NewRunner(cache, nil, nil)
//	opts := evidence.Options{
//	    Coordinate: geo.Coordinate{Lat: 28.6139, Lon: 77.2090},
//	    Verdict:    verify.Violation,
//	}
//	result, err := runner.Render(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.ComparisonPath)
package evidence

import (
	"bytes"
	"context"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"

	"github.com/kisan-depin/dmrv/pkg/cache"
	"github.com/kisan-depin/dmrv/pkg/errors"
	"github.com/kisan-depin/dmrv/pkg/observability"
	"github.com/kisan-depin/dmrv/pkg/raster"
	"github.com/kisan-depin/dmrv/pkg/sentinel"
	"github.com/kisan-depin/dmrv/pkg/thermal"
)

// DefaultAlpha is the heat-layer blend weight.
const DefaultAlpha = thermal.DefaultAlpha

// Artifact kind identifiers used for cache keys and hooks.
const (
	kindHeatmap    = "heatmap"
	kindSuperRes   = "superres"
	kindComparison = "comparison"
)

// Runner executes the evidence pipeline with injected collaborators.
type Runner struct {
	cache   cache.Cache
	keyer   cache.Keyer
	fetcher sentinel.Fetcher
}

// NewRunner creates a pipeline runner. A nil cache disables caching; a nil
// keyer uses the default; a nil fetcher skips the upstream and always
// generates synthetic tiles.
func NewRunner(c cache.Cache, keyer cache.Keyer, fetcher sentinel.Fetcher) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &Runner{cache: c, keyer: keyer, fetcher: fetcher}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// SatellitePath is the annotated base tile.
	SatellitePath string `json:"satellite_path"`

	// HeatmapPath is the thermal overlay artifact.
	HeatmapPath string `json:"heatmap_path"`

	// SuperResPath is the upscaled tile artifact.
	SuperResPath string `json:"super_res_path"`

	// ComparisonPath is the side-by-side panel.
	ComparisonPath string `json:"comparison_path"`

	// TileSource records where the base tile came from: "upstream",
	// "synthetic", or "cache".
	TileSource string `json:"tile_source"`

	// ThermalMax is the peak intensity of the synthesized field.
	ThermalMax float64 `json:"thermal_max"`

	// Stats contains timing information.
	Stats Stats `json:"stats"`

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo `json:"cache_info"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TileTime    time.Duration `json:"tile_time"`
	ThermalTime time.Duration `json:"thermal_time"`
	RenderTime  time.Duration `json:"render_time"`
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	TileHit    bool `json:"tile_hit"`    // Base tile bytes came from cache
	HeatmapHit bool `json:"heatmap_hit"` // Heatmap artifact came from cache
}

// Render executes the full pipeline and writes the four artifacts.
func (r *Runner) Render(ctx context.Context, opts Options) (Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return Result{}, err
	}
	logger := opts.Logger

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return Result{}, errors.Wrap(errors.ErrCodeIO, err,
			"create output directory %s", opts.OutputDir)
	}

	var result Result

	// Stage 1: base satellite tile.
	tileStart := time.Now()
	observability.Pipeline().OnTileStart(ctx, opts.Coordinate.Key())

	tileBytes, source, hit, err := r.tile(ctx, opts)
	result.Stats.TileTime = time.Since(tileStart)
	observability.Pipeline().OnTileComplete(ctx, opts.Coordinate.Key(), source, result.Stats.TileTime, err)
	if err != nil {
		return Result{}, err
	}
	result.TileSource = source
	result.CacheInfo.TileHit = hit
	logger.Debug("tile ready", "source", source, "bytes", len(tileBytes), "duration", result.Stats.TileTime)

	result.SatellitePath = filepath.Join(opts.OutputDir, opts.satelliteName())
	if err := writeAtomic(result.SatellitePath, tileBytes); err != nil {
		return Result{}, err
	}

	tileImg, err := imaging.Decode(bytes.NewReader(tileBytes))
	if err != nil {
		return Result{}, errors.Wrap(errors.ErrCodeInternal, err, "decode rendered tile")
	}
	tileHash := cache.Hash(tileBytes)

	// Stage 2: thermal field and heatmap overlay.
	thermalStart := time.Now()
	observability.Pipeline().OnThermalStart(ctx, opts.Verdict.String())

	heatBytes, heatHit, maxIntensity, err := r.heatmap(ctx, opts, tileImg, tileHash)
	result.Stats.ThermalTime = time.Since(thermalStart)
	observability.Pipeline().OnThermalComplete(ctx, opts.Verdict.String(), result.Stats.ThermalTime, err)
	if err != nil {
		return Result{}, err
	}
	result.CacheInfo.HeatmapHit = heatHit
	result.ThermalMax = maxIntensity
	logger.Debug("heatmap ready", "verdict", opts.Verdict, "max_intensity", maxIntensity, "duration", result.Stats.ThermalTime)

	result.HeatmapPath = filepath.Join(opts.OutputDir, opts.artifactName(heatmapName))
	if err := writeAtomic(result.HeatmapPath, heatBytes); err != nil {
		return Result{}, err
	}

	// Stages 3+4: derived render artifacts.
	renderStart := time.Now()
	artifacts := []string{kindSuperRes, kindComparison}
	observability.Pipeline().OnRenderStart(ctx, artifacts)

	superImg := superResolve(tileImg, opts.Scale)
	superBytes, err := encodePNG(superImg)
	if err == nil {
		result.SuperResPath = filepath.Join(opts.OutputDir, opts.artifactName(superResName))
		err = writeAtomic(result.SuperResPath, superBytes)
	}
	if err == nil {
		var heatImg image.Image
		heatImg, err = imaging.Decode(bytes.NewReader(heatBytes))
		if err == nil {
			var cmpBytes []byte
			cmpBytes, err = encodePNG(composeComparison(tileImg, heatImg))
			if err == nil {
				result.ComparisonPath = filepath.Join(opts.OutputDir, opts.artifactName(comparisonName))
				err = writeAtomic(result.ComparisonPath, cmpBytes)
			}
		}
	}
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, artifacts, result.Stats.RenderTime, err)
	if err != nil {
		return Result{}, err
	}

	logger.Info("evidence rendered",
		"coordinate", opts.Coordinate.Key(),
		"verdict", opts.Verdict,
		"output", opts.OutputDir)
	return result, nil
}

// tile produces the annotated base tile PNG. The upstream fetcher is tried
// first; any upstream failure falls back to synthetic generation and is
// never surfaced to the caller.
func (r *Runner) tile(ctx context.Context, opts Options) (data []byte, source string, hit bool, err error) {
	key := r.keyer.TileKey(opts.Coordinate.Key(), opts.TileKeyOpts())
	if cached, ok, cerr := r.cache.Get(ctx, key); cerr == nil && ok {
		observability.Cache().OnCacheHit(ctx, "tile")
		return cached, "cache", true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "tile")

	var base image.Image
	source = "synthetic"

	if r.fetcher != nil {
		img, ferr := r.fetcher.FetchTile(ctx, opts.Coordinate, opts.Dates)
		if ferr != nil {
			opts.Logger.Debug("upstream fetch failed, using synthetic tile", "err", ferr)
		} else {
			base = imaging.Fill(img, opts.Size, opts.Size, imaging.Center, imaging.Lanczos)
			source = "upstream"
		}
	}
	if base == nil {
		terrain, rng := raster.GenerateTerrain(opts.Coordinate, opts.Size, opts.Size)
		base = raster.ApplyFieldPatterns(terrain, rng).Image()
	}

	annotated := annotateTile(base, opts.Coordinate)
	data, err = encodePNG(annotated)
	if err != nil {
		return nil, "", false, err
	}

	if cerr := r.cache.Set(ctx, key, data, cache.TTLTile); cerr == nil {
		observability.Cache().OnCacheSet(ctx, "tile", len(data))
	}
	return data, source, false, nil
}

// heatmap produces the annotated thermal overlay PNG and reports the peak
// field intensity.
func (r *Runner) heatmap(ctx context.Context, opts Options, tileImg image.Image, tileHash string) (data []byte, hit bool, maxIntensity float64, err error) {
	field := thermal.Synthesize(opts.Size, opts.Size, opts.Verdict, opts.ThermalSeed)
	maxIntensity = field.Max()

	key := r.keyer.ArtifactKey(tileHash, opts.ArtifactKeyOpts(kindHeatmap))
	if cached, ok, cerr := r.cache.Get(ctx, key); cerr == nil && ok {
		observability.Cache().OnCacheHit(ctx, kindHeatmap)
		return cached, true, maxIntensity, nil
	}
	observability.Cache().OnCacheMiss(ctx, kindHeatmap)

	base := raster.FromImage(tileImg)
	blended := thermal.Blend(base, thermal.Heatmap(field), opts.Alpha)
	annotated := annotateHeatmap(blended.Image(), opts.Verdict)

	data, err = encodePNG(annotated)
	if err != nil {
		return nil, false, 0, err
	}

	if cerr := r.cache.Set(ctx, key, data, cache.TTLArtifact); cerr == nil {
		observability.Cache().OnCacheSet(ctx, kindHeatmap, len(data))
	}
	return data, false, maxIntensity, nil
}
