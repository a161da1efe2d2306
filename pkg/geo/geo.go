// Package geo provides geographic coordinate handling for the D-MRV pipeline.
//
// A Coordinate carries no persistent identity; it exists to be validated at
// the boundary, formatted into labels, and reduced to a deterministic seed
// that drives synthetic tile generation. Two coordinates that agree at four
// decimal places (roughly 11 m at the equator) produce the same seed and
// therefore the same synthetic imagery.
package geo

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/kisan-depin/dmrv/pkg/errors"
)

// Coordinate is a WGS84 geographic point.
type Coordinate struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

// Validate checks that the coordinate is within valid WGS84 bounds.
func (c Coordinate) Validate() error {
	if err := errors.ValidateLatitude(c.Lat); err != nil {
		return err
	}
	return errors.ValidateLongitude(c.Lon)
}

// Key returns the canonical 4-decimal string form used for seeding and
// artifact naming: "28.6139,77.2090". Coordinates that agree at this
// precision are treated as identical by the whole pipeline.
func (c Coordinate) Key() string {
	return fmt.Sprintf("%.4f,%.4f", c.Lat, c.Lon)
}

// Seed derives a deterministic generator seed from the canonical key.
// The seed is the first 8 hex digits of md5(Key) parsed as an unsigned
// integer, so identical coordinates always yield identical rasters.
func (c Coordinate) Seed() uint64 {
	sum := md5.Sum([]byte(c.Key()))
	digest := hex.EncodeToString(sum[:])
	seed, _ := strconv.ParseUint(digest[:8], 16, 64)
	return seed
}

// Label formats the coordinate for human display with hemisphere suffixes,
// e.g. "28.6139°N, 77.2090°E".
func (c Coordinate) Label() string {
	ns := "N"
	if c.Lat < 0 {
		ns = "S"
	}
	ew := "E"
	if c.Lon < 0 {
		ew = "W"
	}
	return fmt.Sprintf("%.4f°%s, %.4f°%s", abs(c.Lat), ns, abs(c.Lon), ew)
}

// BBox returns a bounding box of sizeDeg degrees around the coordinate
// as (west, south, east, north). Used when requesting real imagery from
// an upstream satellite service.
func (c Coordinate) BBox(sizeDeg float64) (west, south, east, north float64) {
	return c.Lon - sizeDeg, c.Lat - sizeDeg, c.Lon + sizeDeg, c.Lat + sizeDeg
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
