package evidence

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/kisan-depin/dmrv/pkg/cache"
	"github.com/kisan-depin/dmrv/pkg/errors"
	"github.com/kisan-depin/dmrv/pkg/geo"
	"github.com/kisan-depin/dmrv/pkg/sentinel"
	"github.com/kisan-depin/dmrv/pkg/verify"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultSize is the square tile edge in pixels.
	DefaultSize = 512

	// DefaultScale is the super-resolution upscale factor.
	DefaultScale = 2

	// DefaultOutputDir is where artifacts land when none is configured.
	DefaultOutputDir = "output"

	// MaxSize bounds tile size; per-pixel passes are O(size²).
	MaxSize = 4096

	// MaxScale bounds the super-resolution factor.
	MaxScale = 8
)

// Artifact base filenames. Without Options.QualifyNames these match the
// demo layout, where successive renders overwrite the shared names.
const (
	heatmapName    = "thermal_heatmap.png"
	superResName   = "super_resolved.png"
	comparisonName = "dmrv_comparison.png"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one evidence render.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Location of the monitored field.
	Coordinate geo.Coordinate `json:"coordinate"`

	// Verdict drives the thermal signature of the heatmap artifacts.
	Verdict verify.Verdict `json:"verdict"`

	// Size is the square tile edge in pixels (default 512).
	Size int `json:"size,omitempty"`

	// Scale is the super-resolution factor (default 2).
	Scale int `json:"scale,omitempty"`

	// OutputDir receives the four artifact files (default "output").
	OutputDir string `json:"output_dir,omitempty"`

	// Alpha is the heat-layer blend weight (default 0.4).
	Alpha float64 `json:"alpha,omitempty"`

	// ThermalSeed seeds hotspot geometry. Zero derives the seed from the
	// coordinate; thermal.DemoSeed pins it for stable demo visuals.
	ThermalSeed uint64 `json:"thermal_seed,omitempty"`

	// QualifyNames prefixes heatmap/super-res/comparison filenames with
	// the coordinate key so concurrent renders do not overwrite each other.
	QualifyNames bool `json:"qualify_names,omitempty"`

	// Dates bounds the acquisition window for upstream imagery.
	Dates sentinel.DateRange `json:"dates,omitempty"`

	// Logger receives pipeline progress (not serialized).
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if err := o.Coordinate.Validate(); err != nil {
		return err
	}

	if o.Size == 0 {
		o.Size = DefaultSize
	}
	if o.Size < 1 || o.Size > MaxSize {
		return errors.New(errors.ErrCodeInvalidSize,
			"size must be in [1, %d], got %d", MaxSize, o.Size)
	}

	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 1 || o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidSize,
			"scale must be in [1, %d], got %d", MaxScale, o.Scale)
	}

	if o.OutputDir == "" {
		o.OutputDir = DefaultOutputDir
	}
	if err := errors.ValidateOutputDir(o.OutputDir); err != nil {
		return err
	}

	if o.Alpha == 0 {
		o.Alpha = DefaultAlpha
	}
	if o.Alpha < 0 || o.Alpha > 1 {
		return errors.New(errors.ErrCodeInvalidInput,
			"alpha must be in [0, 1], got %g", o.Alpha)
	}

	if o.ThermalSeed == 0 {
		o.ThermalSeed = o.Coordinate.Seed()
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// TileKeyOpts returns cache key options for the base satellite tile.
func (o *Options) TileKeyOpts() cache.TileKeyOpts {
	return cache.TileKeyOpts{Width: o.Size, Height: o.Size}
}

// ArtifactKeyOpts returns cache key options for a derived artifact.
func (o *Options) ArtifactKeyOpts(kind string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Kind:        kind,
		Verdict:     o.Verdict.String(),
		ThermalSeed: o.ThermalSeed,
		Scale:       o.Scale,
		Alpha:       o.Alpha,
	}
}

// satelliteName returns the coordinate-qualified tile filename.
func (o *Options) satelliteName() string {
	return fmt.Sprintf("satellite_%.4f_%.4f.png", o.Coordinate.Lat, o.Coordinate.Lon)
}

// artifactName qualifies a shared artifact filename when requested.
func (o *Options) artifactName(base string) string {
	if !o.QualifyNames {
		return base
	}
	return fmt.Sprintf("%.4f_%.4f_%s", o.Coordinate.Lat, o.Coordinate.Lon, base)
}
