package export

import (
	"github.com/twpayne/go-polyline"

	"routekit.transitlab.org/internal/geom"
)

// EncodePolylines renders each line of a geographic route geometry as a
// Google encoded polyline string. Projected geometries are not encodable
// and yield nil.
func EncodePolylines(g geom.RouteGeometry) []string {
	if g.Projected {
		return nil
	}
	encoded := make([]string, 0, len(g.Lines))
	for _, line := range g.Lines {
		coords := make([][]float64, len(line))
		for i, p := range line {
			coords[i] = []float64{p.Y, p.X} // polylines are lat-first
		}
		encoded = append(encoded, string(polyline.EncodeCoords(coords)))
	}
	return encoded
}
