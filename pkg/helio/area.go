package helio

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/abworrall/helioflux/pkg/emath"
)

// Area works out how much of the solar surface each pixel covers. Pixels near
// the limb are foreshortened, and cover far more surface than those near disk
// centre.
//
// The four pixel corners are projected onto the sphere, and the solid angle
// (at sun centre) of the quadrilateral they form is summed from two
// triangles. Area is in cm^2; pixels off the disk are NaN.
type Area struct {
	ctx *Context
}

func (c *Context) Area() Area { return Area{ctx: c} }

func (a Area) Name() string { return "area" }

// SolidAngle is the signed solid angle of the spherical quadrilateral with
// the given corners, split into triangles (1,2,3) and (3,4,1).
func (a Area) SolidAngle(corners [4]Coord) float64 {
	var r [4]r3.Vec
	for i, hc := range corners {
		r[i] = hc.Vector()
	}
	return triangleSolidAngle(r[0], r[1], r[2]) + triangleSolidAngle(r[2], r[3], r[0])
}

// triangleSolidAngle is Van Oosterom & Strackee's formula, for unit vectors.
func triangleSolidAngle(ri, rj, rk r3.Vec) float64 {
	numerator := r3.Dot(r3.Cross(ri, rj), rk)
	denominator := 1 + r3.Dot(ri, rj) + r3.Dot(rj, rk) + r3.Dot(rk, ri)
	return 2 * math.Atan2(numerator, denominator)
}

func (a Area) fromSolidAngle(omega float64) float64 {
	return math.Abs(omega) * RsunCm * RsunCm
}

func (a Area) offDisk(radial float64) bool { return radial > a.ctx.RsunPixels }

// Point returns the area of the pixel at (row, col).
func (a Area) Point(row, col int) float64 {
	p := a.ctx.Projector()
	if !a.ctx.data.In(col, row) || a.offDisk(p.RadialDistance(float64(row), float64(col))) {
		return math.NaN()
	}
	return a.fromSolidAngle(a.SolidAngle(p.Corners(float64(row), float64(col))))
}

// Grid returns the area of every pixel, cached.
func (a Area) Grid() emath.FloatGrid {
	c := a.ctx
	c.cache.areaOnce.Do(func() {
		p := c.Projector()
		radial := p.RadialDistanceGrid()

		var lons, lats [4]emath.FloatGrid
		for i, off := range cornerOffsets {
			lons[i], lats[i] = p.GridOffset(off[0], off[1])
		}

		g := c.data.NewFromThis()
		c.eachRow(func(y int) {
			for x := 0; x < g.Dx(); x++ {
				if a.offDisk(radial.Get(x, y)) {
					g.Set(x, y, math.NaN())
					continue
				}
				var corners [4]Coord
				for i := range corners {
					corners[i] = Coord{Lon: lons[i].Get(x, y), Lat: lats[i].Get(x, y)}
				}
				g.Set(x, y, a.fromSolidAngle(a.SolidAngle(corners)))
			}
		})
		c.cache.area = g
	})
	return *c.cache.area.Copy()
}
