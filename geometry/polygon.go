package geometry

import "math"

// PolygonArea computes the area of a closed polygon using the shoelace
// formula. The absolute value of the signed area is returned, so point
// winding order does not matter. A boundary with fewer than 3 points is
// unmeasurable and returns ok=false; this is distinct from a true zero
// area so reports can show "unavailable" instead of 0.
func PolygonArea(pts []Point) (float64, bool) {
	if len(pts) < 3 {
		return 0, false
	}
	sum := 0.0
	for i := range pts {
		j := (i + 1) % len(pts)
		sum += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return math.Abs(sum) / 2, true
}

// PolygonPerimeter computes the perimeter of a closed polygon, including
// the closing edge back to the first point. Fewer than 3 points returns
// ok=false.
func PolygonPerimeter(pts []Point) (float64, bool) {
	if len(pts) < 3 {
		return 0, false
	}
	sum := 0.0
	for i := range pts {
		j := (i + 1) % len(pts)
		sum += math.Hypot(pts[j].X-pts[i].X, pts[j].Y-pts[i].Y)
	}
	return sum, true
}
