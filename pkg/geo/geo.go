// Package geo has the distance helpers behind the nearby stray search.
package geo

import "math"

const earthRadiusKm = 6371.0

type Point struct {
	Lat float64
	Lng float64
}

func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// DistanceKm is the great-circle (Haversine) distance between a and b.
func DistanceKm(a, b Point) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// Box is a lat/lng rectangle used as a cheap SQL prefilter. MinLng/MaxLng
// may run past ±180 when the box crosses the antimeridian; use LngRanges
// for the query.
type Box struct {
	Center         Point
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// LngRange is a closed longitude interval within [-180, 180].
type LngRange struct {
	Min, Max float64
}

// BoundingBox returns a box containing every point within radiusKm of center.
// Near the poles the longitude span is widened to the full range.
func BoundingBox(center Point, radiusKm float64) Box {
	dLat := radiusKm / earthRadiusKm * 180 / math.Pi
	box := Box{
		Center: center,
		MinLat: math.Max(center.Lat-dLat, -90),
		MaxLat: math.Min(center.Lat+dLat, 90),
		MinLng: -180,
		MaxLng: 180,
	}
	cosLat := math.Cos(radians(center.Lat))
	if cosLat > 1e-6 {
		dLng := dLat / cosLat
		if dLng < 180 {
			box.MinLng = center.Lng - dLng
			box.MaxLng = center.Lng + dLng
		}
	}
	return box
}

// LngRanges 跨越 ±180 经线时拆成两段
func (b Box) LngRanges() []LngRange {
	switch {
	case b.MinLng < -180:
		return []LngRange{{Min: b.MinLng + 360, Max: 180}, {Min: -180, Max: b.MaxLng}}
	case b.MaxLng > 180:
		return []LngRange{{Min: b.MinLng, Max: 180}, {Min: -180, Max: b.MaxLng - 360}}
	default:
		return []LngRange{{Min: b.MinLng, Max: b.MaxLng}}
	}
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
