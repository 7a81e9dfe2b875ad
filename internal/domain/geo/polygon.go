package geo

// Point is a geographic coordinate pair.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Polygon is an ordered sequence of vertices forming a closed loop; the
// last vertex implicitly connects back to the first. Vertex order may be
// clockwise or counter-clockwise, but the polygon must be simple
// (non-self-intersecting) for containment results to be meaningful.
type Polygon []Point

// Contains reports whether p lies inside the polygon, using the
// ray-casting (crossing number) algorithm with latitude as the vertical
// axis and longitude as the horizontal axis. A point exactly on the
// boundary may be reported either way. Polygons with fewer than 3
// vertices contain nothing.
func (poly Polygon) Contains(p Point) bool {
	n := len(poly)
	if n < 3 {
		return false
	}

	inside := false

	v1 := poly[0]
	for i := 1; i <= n; i++ {
		v2 := poly[i%n]

		// Edges at constant latitude never cross the ray.
		if v1.Latitude != v2.Latitude {
			straddles := p.Latitude > min(v1.Latitude, v2.Latitude) &&
				p.Latitude <= max(v1.Latitude, v2.Latitude)
			if straddles && p.Longitude <= max(v1.Longitude, v2.Longitude) {
				if v1.Longitude == v2.Longitude {
					// Edge at constant longitude: the straddle check
					// alone guarantees a crossing.
					inside = !inside
				} else {
					crossing := (p.Latitude-v1.Latitude)*
						(v2.Longitude-v1.Longitude)/(v2.Latitude-v1.Latitude) +
						v1.Longitude
					if p.Longitude <= crossing {
						inside = !inside
					}
				}
			}
		}
		v1 = v2
	}

	return inside
}
