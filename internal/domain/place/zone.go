package place

import "math"

const earthRadiusKm = 6371.0

// Circle is a disc on the map, radius in kilometres.
type Circle struct {
	Lat float64
	Lon float64
	Km  float64
}

func (c Circle) Contains(lat, lon float64) bool {
	return Haversine(c.Lat, c.Lon, lat, lon) <= c.Km
}

// Zone is a named area made of one or more circles.
type Zone struct {
	Name string
	Area []Circle
}

func (z Zone) Contains(lat, lon float64) bool {
	for _, c := range z.Area {
		if c.Contains(lat, lon) {
			return true
		}
	}
	return false
}

// Haversine returns the great-circle distance in kilometres.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(d float64) float64 { return d * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
