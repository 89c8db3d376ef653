package footprint

import (
	"fmt"
	"math"
	"strings"

	"github.com/venicegeo/geojson-go/geojson"
)

// Strategy selects how a footprint crossing the antimeridian is repaired
type Strategy string

const (
	// Split cuts the footprint at +/-180 into a two part MultiPolygon
	Split Strategy = "split"
	// Normalize keeps one polygon whose longitudes all share a sign
	Normalize Strategy = "normalize"
)

// ParseStrategy reads a strategy name case-insensitively
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(name))) {
	case Split:
		return Split, nil
	case Normalize:
		return Normalize, nil
	}
	return "", fmt.Errorf("unknown antimeridian strategy: %q", name)
}

// CrossesAntimeridian reports whether consecutive longitudes of the ring jump by more than 180 degrees
func CrossesAntimeridian(ring [][]float64) bool {
	for i := 1; i < len(ring); i++ {
		if math.Abs(ring[i][0]-ring[i-1][0]) > 180 {
			return true
		}
	}
	return false
}

// FixAntimeridian applies the strategy to a closed lon/lat ring. The result is a
// *geojson.Polygon, or a *geojson.MultiPolygon when a crossing ring is split.
// A ring that does not cross is returned unchanged as a Polygon.
func FixAntimeridian(ring [][]float64, strategy Strategy) interface{} {
	if !CrossesAntimeridian(ring) {
		return geojson.NewPolygon([][][]float64{ring})
	}

	unwrapped := unwrap(ring)
	if strategy == Normalize {
		return geojson.NewPolygon([][][]float64{unwrapped})
	}

	var east, west [][]float64
	if maxLon(unwrapped) > 180 {
		east = clip(unwrapped, 180, true)
		west = clip(shift(unwrapped, -360), -180, false)
	} else {
		east = clip(shift(unwrapped, 360), 180, true)
		west = clip(unwrapped, -180, false)
	}

	switch {
	case len(east) < 4:
		return geojson.NewPolygon([][][]float64{west})
	case len(west) < 4:
		return geojson.NewPolygon([][][]float64{east})
	}
	return geojson.NewMultiPolygon([][][][]float64{{east}, {west}})
}

// unwrap removes longitude jumps so the ring is continuous, starting from its first point
func unwrap(ring [][]float64) [][]float64 {
	out := copyRing(ring)
	for i := 1; i < len(out); i++ {
		delta := out[i][0] - out[i-1][0]
		for delta > 180 {
			out[i][0] -= 360
			delta -= 360
		}
		for delta < -180 {
			out[i][0] += 360
			delta += 360
		}
	}
	return out
}

func shift(ring [][]float64, offset float64) [][]float64 {
	out := copyRing(ring)
	for _, p := range out {
		p[0] += offset
	}
	return out
}

func maxLon(ring [][]float64) float64 {
	max := math.Inf(-1)
	for _, p := range ring {
		max = math.Max(max, p[0])
	}
	return max
}

// clip keeps the part of a closed ring on one side of the meridian lon
// (west of it when keepWest, east of it otherwise), Sutherland-Hodgman style
func clip(ring [][]float64, lon float64, keepWest bool) [][]float64 {
	inside := func(p []float64) bool {
		if keepWest {
			return p[0] <= lon
		}
		return p[0] >= lon
	}
	intersect := func(a, b []float64) []float64 {
		frac := (lon - a[0]) / (b[0] - a[0])
		return []float64{lon, a[1] + (b[1]-a[1])*frac}
	}

	var out [][]float64
	add := func(p []float64) {
		if n := len(out); n > 0 && out[n-1][0] == p[0] && out[n-1][1] == p[1] {
			return
		}
		out = append(out, []float64{p[0], p[1]})
	}
	for i := 0; i < len(ring)-1; i++ {
		current, next := ring[i], ring[i+1]
		switch {
		case inside(current) && inside(next):
			add(current)
		case inside(current):
			add(current)
			add(intersect(current, next))
		case inside(next):
			add(intersect(current, next))
		}
	}
	if len(out) == 0 {
		return nil
	}
	return append(out, []float64{out[0][0], out[0][1]})
}
