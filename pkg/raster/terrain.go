package raster

import (
	"math/rand/v2"

	"github.com/kisan-depin/dmrv/pkg/geo"
)

// Per-channel Gaussian parameters for the agricultural terrain base.
// The means land on a muted green-brown palette; the clips keep every
// channel well inside 8-bit range before field overlays are applied.
const (
	redMean, redSigma     = 80, 20
	redLo, redHi          = 30, 130
	greenMean, greenSigma = 110, 25
	greenLo, greenHi      = 50, 170
	blueMean, blueSigma   = 60, 15
	blueLo, blueHi        = 20, 100
)

// NewRNG creates the pseudo-random generator for a given seed.
// Every seeded stream in the pipeline goes through this constructor so
// that seed → stream mapping is identical everywhere.
func NewRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// GenerateTerrain builds the base synthetic terrain raster for a coordinate.
//
// The generator is seeded from the coordinate's canonical key, then samples
// three independent per-pixel Gaussian channels in a fixed channel order
// (red, green, blue). The same coordinate at 4-decimal precision and the
// same size always produce a byte-identical raster.
//
// The returned generator has consumed exactly the terrain draws; callers
// must pass it on to [ApplyFieldPatterns] so the overlay pass continues
// the same stream. The caller is responsible for validating the coordinate
// and size beforehand.
func GenerateTerrain(coord geo.Coordinate, w, h int) (*Raster, *rand.Rand) {
	rng := NewRNG(coord.Seed())
	r := New(w, h)

	fillChannel(r, rng, chR, redMean, redSigma, redLo, redHi)
	fillChannel(r, rng, chG, greenMean, greenSigma, greenLo, greenHi)
	fillChannel(r, rng, chB, blueMean, blueSigma, blueLo, blueHi)

	return r, rng
}

// fillChannel samples one Gaussian value per pixel for a single channel.
// Sampling is channel-at-a-time, not pixel-at-a-time; the draw order is
// part of the determinism contract.
func fillChannel(r *Raster, rng *rand.Rand, ch int, mean, sigma, lo, hi float64) {
	for i := ch; i < len(r.Pix); i += 3 {
		v := mean + sigma*rng.NormFloat64()
		if v < lo {
			v = lo
		}
		if v > hi {
			v = hi
		}
		r.Pix[i] = uint8(v)
	}
}
