package region

import "math"

// Grid converts between micrometers and database units.
type Grid struct {
	// DBU is the size of one database unit in micrometers.
	DBU float64
}

// Length converts micrometers to database units rounded to the grid.
func (g Grid) Length(um float64) float64 {
	return math.Round(um / g.DBU)
}

// Point converts a point in micrometers to the grid.
func (g Grid) Point(xUm, yUm float64) Point {
	return Point{X: g.Length(xUm), Y: g.Length(yUm)}
}

// Um converts database units to micrometers.
func (g Grid) Um(v float64) float64 {
	return v * g.DBU
}

// PointUm converts a grid point to micrometers.
func (g Grid) PointUm(p Point) [2]float64 {
	return [2]float64{g.Um(p.X), g.Um(p.Y)}
}

// Box converts a box given in micrometers.
func (g Grid) Box(x1, y1, x2, y2 float64) Box {
	return NewBox(g.Point(x1, y1), g.Point(x2, y2))
}

// Polygon converts a ring of [x, y] micrometer pairs into a region.
func (g Grid) Polygon(points [][2]float64) Region {
	ring := make([]Point, len(points))
	for i, p := range points {
		ring[i] = g.Point(p[0], p[1])
	}
	return FromPolygon(ring)
}

// Magnified returns grid with database unit 10^-order times smaller.
func (g Grid) Magnified(order int) Grid {
	return Grid{DBU: g.DBU / math.Pow(10, float64(order))}
}

// RingsUm returns outlines of r in micrometers.
func (g Grid) RingsUm(r Region) [][][2]float64 {
	rings := r.Rings()
	out := make([][][2]float64, len(rings))
	for i, ring := range rings {
		out[i] = make([][2]float64, len(ring))
		for j, p := range ring {
			out[i][j] = g.PointUm(p)
		}
	}
	return out
}
