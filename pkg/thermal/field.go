// Package thermal synthesizes per-pixel thermal intensity fields and their
// heat-colored renderings.
//
// In a real system the field would come from Sentinel-2 SWIR bands via a
// Normalized Burn Ratio computation. Here the field is mocked: compliant
// verdicts get a uniformly cool signature capped below the hot threshold,
// violation verdicts get Gaussian-falloff hotspots injected on a cool base,
// so the two cases are always visually distinguishable.
package thermal

import (
	"math"

	"github.com/kisan-depin/dmrv/pkg/raster"
	"github.com/kisan-depin/dmrv/pkg/verify"
)

// DemoSeed reproduces the reference demo behavior of seeding every thermal
// render with the same constant, which makes all violation heatmaps share
// identical hotspot geometry. Pass it explicitly when stable demo visuals
// across coordinates are wanted; otherwise derive the seed per coordinate.
const DemoSeed uint64 = 42

// CompliantCeiling is the maximum intensity a compliant field may carry.
// Violation hotspots are guaranteed to exceed it.
const CompliantCeiling = 0.4

// Field is a W×H grid of thermal intensities in [0, 1].
type Field struct {
	W, H int
	V    []float64
}

// At returns the intensity at (x, y).
func (f *Field) At(x, y int) float64 {
	return f.V[y*f.W+x]
}

// Max returns the highest intensity in the field.
func (f *Field) Max() float64 {
	m := 0.0
	for _, v := range f.V {
		if v > m {
			m = v
		}
	}
	return m
}

// Synthesize produces a thermal intensity field consistent with the verdict.
//
// The seed is an explicit parameter rather than an implicit constant: the
// caller decides whether renders share geometry ([DemoSeed]) or vary per
// coordinate. The same (size, verdict, seed) triple always yields an
// identical field.
//
// Compliant fields sample N(0.2, 0.05) clipped to [0, 0.4]. Violation
// fields sample N(0.15, 0.05), then inject 2–4 hotspots at random centers
// with radius in [20, 60) and peak amplitude in [0.5, 0.9), each a 2D
// Gaussian bump summed onto the base, with a final clip to [0, 1].
func Synthesize(w, h int, v verify.Verdict, seed uint64) *Field {
	rng := raster.NewRNG(seed)
	f := &Field{W: w, H: h, V: make([]float64, w*h)}

	if !v.IsViolation() {
		for i := range f.V {
			f.V[i] = clip(0.2+0.05*rng.NormFloat64(), 0, CompliantCeiling)
		}
		return f
	}

	for i := range f.V {
		f.V[i] = 0.15 + 0.05*rng.NormFloat64()
	}

	// Hotspot centers stay 50px off the edges; fields too small for that
	// margin place centers anywhere.
	mx, my := 50, 50
	if w <= 2*mx {
		mx = 0
	}
	if h <= 2*my {
		my = 0
	}

	hotspots := 2 + rng.IntN(3)
	for range hotspots {
		cx := float64(mx + rng.IntN(w-2*mx))
		cy := float64(my + rng.IntN(h-2*my))
		radius := float64(20 + rng.IntN(40))
		peak := 0.5 + 0.4*rng.Float64()

		denom := 2 * radius * radius
		for y := 0; y < h; y++ {
			dy := float64(y) - cy
			for x := 0; x < w; x++ {
				dx := float64(x) - cx
				f.V[y*w+x] += peak * math.Exp(-(dx*dx+dy*dy)/denom)
			}
		}
	}

	for i := range f.V {
		f.V[i] = clip(f.V[i], 0, 1)
	}
	return f
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
