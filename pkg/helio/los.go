package helio

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/abworrall/helioflux/pkg/emath"
)

// LineOfSight rescales the measured (line of sight) field at each pixel to
// the field along the local surface normal. Near the limb the normal is
// nearly perpendicular to the sight line, and the result blows up; that is
// left for the caller to deal with.
type LineOfSight struct {
	ctx *Context
}

func (c *Context) LineOfSight() LineOfSight { return LineOfSight{ctx: c} }

func (los LineOfSight) Name() string { return "los" }

// Factor is the cosine of the angle between the surface normal at hc and the
// direction to the observer.
func (los LineOfSight) Factor(hc Coord) float64 {
	return r3.Dot(hc.Vector(), los.ctx.observer)
}

// Point returns the corrected field at (row, col); NaN outside the image.
func (los LineOfSight) Point(row, col int) float64 {
	raw := los.ctx.Intensity(row, col)
	hc := los.ctx.Projector().Point(float64(row), float64(col))
	return raw / los.Factor(hc)
}

// Grid returns the corrected field for the whole image, cached.
func (los LineOfSight) Grid() emath.FloatGrid {
	c := los.ctx
	c.cache.losOnce.Do(func() {
		lon, lat := c.Projector().Grid()
		g := c.data.NewFromThis()
		c.eachRow(func(y int) {
			for x := 0; x < g.Dx(); x++ {
				hc := Coord{Lon: lon.Get(x, y), Lat: lat.Get(x, y)}
				g.Set(x, y, c.data.Get(x, y)/los.Factor(hc))
			}
		})
		c.cache.los = g
	})
	return *c.cache.los.Copy()
}
