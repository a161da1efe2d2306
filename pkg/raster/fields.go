package raster

import "math/rand/v2"

// FieldPattern is the class of a rectangular field plot.
type FieldPattern int

// Field plot classes. Each applies a fixed per-channel bias.
const (
	PatternCrop FieldPattern = iota
	PatternTilled
	PatternFallow
)

var patterns = [...]FieldPattern{PatternCrop, PatternTilled, PatternFallow}

// String returns the lowercase class name.
func (p FieldPattern) String() string {
	switch p {
	case PatternCrop:
		return "crop"
	case PatternTilled:
		return "tilled"
	default:
		return "fallow"
	}
}

// ApplyFieldPatterns overlays rectangular field plots onto the raster
// in place and returns it.
//
// Between 4 and 8 axis-aligned rectangles are drawn with randomized
// position and size, each assigned a uniformly chosen pattern class:
//
//   - crop:   green +40, clipped to [0, 200]
//   - tilled: red +30 clipped to [0, 180], green −20 clipped to [30, 170]
//   - fallow: red +10 clipped to [0, 150], blue +10 clipped to [0, 120]
//
// Rectangles may overlap; later plots simply overwrite earlier ones.
// rng must be the generator returned by [GenerateTerrain]: the overlay
// continues the terrain stream, and that sequencing is what makes the
// finished tile reproducible.
//
// Rasters smaller than the minimum plot footprint are returned unchanged.
func ApplyFieldPatterns(r *Raster, rng *rand.Rand) *Raster {
	const minFootprint = 51 // plot origin needs headroom of 50px on each axis
	if r.W < minFootprint || r.H < minFootprint {
		return r
	}

	count := randInt(rng, 4, 8)
	for range count {
		x1 := randInt(rng, 0, r.W-50)
		y1 := randInt(rng, 0, r.H-50)
		x2 := min(x1+randInt(rng, 40, 150), r.W)
		y2 := min(y1+randInt(rng, 40, 150), r.H)

		switch patterns[rng.IntN(len(patterns))] {
		case PatternCrop:
			applyBias(r, x1, y1, x2, y2, chG, +40, 0, 200)
		case PatternTilled:
			applyBias(r, x1, y1, x2, y2, chR, +30, 0, 180)
			applyBias(r, x1, y1, x2, y2, chG, -20, 30, 170)
		case PatternFallow:
			applyBias(r, x1, y1, x2, y2, chR, +10, 0, 150)
			applyBias(r, x1, y1, x2, y2, chB, +10, 0, 120)
		}
	}
	return r
}

// applyBias shifts one channel by delta inside the rectangle, clipping
// after the modification.
func applyBias(r *Raster, x1, y1, x2, y2, ch, delta, lo, hi int) {
	for y := y1; y < y2; y++ {
		row := (y*r.W)*3 + ch
		for x := x1; x < x2; x++ {
			i := row + x*3
			r.Pix[i] = clampAdd(r.Pix[i], delta, lo, hi)
		}
	}
}

// randInt draws uniformly from the half-open interval [lo, hi).
func randInt(rng *rand.Rand, lo, hi int) int {
	return lo + rng.IntN(hi-lo)
}
