package streetgraph

import (
	"math"

	"github.com/paulmach/orb"
)

const earthRadius = 6378137.0

// Projection maps longitude/latitude to planar metres with a Mercator
// projection scaled to be true at RefLat, which keeps distances close to
// ground distances within a city.
type Projection struct {
	RefLat float64
}

func (p Projection) Project(lng, lat float64) orb.Point {
	if lat > 89.5 {
		lat = 89.5
	}
	if lat < -89.5 {
		lat = -89.5
	}
	k := math.Cos(p.RefLat * math.Pi / 180)
	latRad, lngRad := lat*math.Pi/180, lng*math.Pi/180
	x := earthRadius * lngRad * k
	y := earthRadius * math.Log(math.Tan(math.Pi/4+latRad/2)) * k
	return orb.Point{x, y}
}

// Unproject is the inverse of Project.
func (p Projection) Unproject(pt orb.Point) (lng, lat float64) {
	k := math.Cos(p.RefLat * math.Pi / 180)
	lngRad := pt.X() / (earthRadius * k)
	latRad := 2*math.Atan(math.Exp(pt.Y()/(earthRadius*k))) - math.Pi/2
	return lngRad * 180 / math.Pi, latRad * 180 / math.Pi
}
