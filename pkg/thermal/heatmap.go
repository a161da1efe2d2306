package thermal

import (
	"math"

	"github.com/kisan-depin/dmrv/pkg/raster"
)

// DefaultAlpha is the heat-layer weight used when blending a heatmap over
// the satellite base.
const DefaultAlpha = 0.4

// RampRGB maps a thermal intensity t ∈ [0, 1] through the three-segment
// blue(cool) → green → yellow → red(hot) transfer function:
//
//	R = clip(3t − 1,        0, 1)
//	G = clip(1 − |3t − 1.5|·2, 0, 1)
//	B = clip(1 − 3t,        0, 1)
//
// This exact ramp is part of the artifact contract; the temperature scale
// bar drawn on heatmap artifacts uses the same function.
func RampRGB(t float64) (uint8, uint8, uint8) {
	r := clip(3*t-1, 0, 1)
	g := clip(1-math.Abs(3*t-1.5)*2, 0, 1)
	b := clip(1-3*t, 0, 1)
	return uint8(r * 255), uint8(g * 255), uint8(b * 255)
}

// Heatmap renders the field as a heat-colored raster of the same size.
func Heatmap(f *Field) *raster.Raster {
	out := raster.New(f.W, f.H)
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			r, g, b := RampRGB(f.At(x, y))
			out.Set(x, y, r, g, b)
		}
	}
	return out
}

// Blend linearly interpolates the heat layer over the base raster with the
// given alpha weight on the heat layer. Both rasters must share dimensions;
// the result is a new raster.
func Blend(base, heat *raster.Raster, alpha float64) *raster.Raster {
	out := raster.New(base.W, base.H)
	for i := range out.Pix {
		v := float64(base.Pix[i])*(1-alpha) + float64(heat.Pix[i])*alpha
		out.Pix[i] = uint8(math.Round(v))
	}
	return out
}
