package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// Bearing returns the initial great-circle bearing in degrees [0, 360)
// from a to b.
func Bearing(a, b orb.Point) float64 {
	phi1 := a.Lat() * math.Pi / 180
	phi2 := b.Lat() * math.Pi / 180
	deltaLon := (b.Lon() - a.Lon()) * math.Pi / 180

	y := math.Sin(deltaLon) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(deltaLon)

	return math.Mod(math.Atan2(y, x)*180/math.Pi+360, 360)
}

// BearingToCompass converts a bearing to an 8-point compass direction.
func BearingToCompass(bearing float64) string {
	directions := []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}
	index := int((bearing+22.5)/45.0) % 8
	return directions[index]
}

// CompassDirection is BearingToCompass(Bearing(a, b)).
func CompassDirection(a, b orb.Point) string {
	return BearingToCompass(Bearing(a, b))
}
