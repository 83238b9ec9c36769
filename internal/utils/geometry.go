package utils

import "math"

const earthRadiusMeters = 6371010.0

const degToRad = math.Pi / 180

// CoordinateBounds is a latitude/longitude bounding box.
type CoordinateBounds struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Distance returns the meters between two coordinates. Below 0.2 degrees of
// separation (~22 km, which covers nearly all stop-to-stop and shape-segment
// hops) an equirectangular approximation avoids the trig of the exact
// formula; beyond that it computes the true great-circle distance.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	if math.Abs(lat2-lat1) < 0.2 && math.Abs(lon2-lon1) < 0.2 {
		x := (lon2 - lon1) * degToRad * math.Cos((lat1+lat2)/2*degToRad)
		y := (lat2 - lat1) * degToRad
		return earthRadiusMeters * math.Hypot(x, y)
	}

	phi1 := lat1 * degToRad
	phi2 := lat2 * degToRad
	dLambda := (lon2 - lon1) * degToRad

	y := math.Hypot(
		math.Cos(phi2)*math.Sin(dLambda),
		math.Cos(phi1)*math.Sin(phi2)-math.Sin(phi1)*math.Cos(phi2)*math.Cos(dLambda),
	)
	x := math.Sin(phi1)*math.Sin(phi2) + math.Cos(phi1)*math.Cos(phi2)*math.Cos(dLambda)
	return earthRadiusMeters * math.Atan2(y, x)
}

// LineLength sums the great-circle distances along an ordered sequence of
// (lat, lon) points. Returns 0 for sequences shorter than two points.
func LineLength(points [][2]float64) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += Distance(points[i-1][0], points[i-1][1], points[i][0], points[i][1])
	}
	return total
}

// CalculateBounds returns the bounding box containing every point within
// radius meters of the center, for seeding spatial-index searches.
func CalculateBounds(lat, lon, radius float64) CoordinateBounds {
	latOffset := radius / earthRadiusMeters / degToRad
	lonOffset := radius / (earthRadiusMeters * math.Cos(lat*degToRad)) / degToRad

	return CoordinateBounds{
		MinLat: lat - latOffset,
		MaxLat: lat + latOffset,
		MinLon: lon - lonOffset,
		MaxLon: lon + lonOffset,
	}
}
