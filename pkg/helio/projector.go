package helio

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/abworrall/helioflux/pkg/emath"
)

// A Coord is a heliographic longitude/latitude, in degrees, in the frame
// centred on the sub-observer point. OffDisk is set when the pixel lay beyond
// the limb; Lon and Lat then hold the values for the nearest limb point.
type Coord struct {
	Lon     float64
	Lat     float64
	OffDisk bool
}

func (hc Coord) String() string {
	str := fmt.Sprintf("(lon %.4f, lat %.4f)", hc.Lon, hc.Lat)
	if hc.OffDisk {
		str += " offdisk"
	}
	return str
}

// Vector is the point on the unit sphere at this coordinate.
func (hc Coord) Vector() r3.Vec {
	lat := emath.Deg2Rad(hc.Lat)
	lon := emath.Deg2Rad(hc.Lon)
	return r3.Vec{
		X: math.Cos(lat) * math.Cos(lon),
		Y: math.Cos(lat) * math.Sin(lon),
		Z: math.Sin(lat),
	}
}

// The sub-pixel offsets (dRow, dCol) of the four pixel corners, in the order
// the area integrator walks them.
var cornerOffsets = [4][2]float64{
	{-0.5, -0.5},
	{0.5, -0.5},
	{0.5, 0.5},
	{-0.5, 0.5},
}

// A Projector maps pixel positions onto the solar surface.
type Projector struct {
	ctx *Context
}

func (c *Context) Projector() Projector { return Projector{ctx: c} }

// Point projects a single position. Row and column may be fractional, and
// may lie anywhere; points off the disk land on the limb in their direction.
func (p Projector) Point(row, col float64) Coord {
	return p.ctx.heliographic(p.ctx.arcminOffset(row, col))
}

// Corners projects the four corners of the pixel at (row, col).
func (p Projector) Corners(row, col float64) [4]Coord {
	var corners [4]Coord
	for i, off := range cornerOffsets {
		corners[i] = p.Point(row+off[0], col+off[1])
	}
	return corners
}

// Grid returns the longitude and latitude of every pixel centre. The result
// is computed once per Context; each call gets its own copy.
func (p Projector) Grid() (lon, lat emath.FloatGrid) {
	c := p.ctx
	c.cache.lonLatOnce.Do(func() {
		c.cache.lon, c.cache.lat = p.GridOffset(0, 0)
	})
	return *c.cache.lon.Copy(), *c.cache.lat.Copy()
}

// GridOffset is Grid with every pixel shifted by (dRow, dCol). It always
// recomputes.
func (p Projector) GridOffset(dRow, dCol float64) (lon, lat emath.FloatGrid) {
	c := p.ctx
	lon = c.data.NewFromThis()
	lat = c.data.NewFromThis()

	c.eachRow(func(y int) {
		for x := 0; x < c.data.Dx(); x++ {
			hc := p.Point(float64(y)+dRow, float64(x)+dCol)
			lon.Set(x, y, hc.Lon)
			lat.Set(x, y, hc.Lat)
		}
	})

	return lon, lat
}

// RadialDistance is the distance of (row, col) from disk centre, in pixels
// of ScaleX size.
func (p Projector) RadialDistance(row, col float64) float64 {
	c := p.ctx
	dx := (col - c.X0) * c.ScaleX
	dy := (row - c.Y0) * c.ScaleY
	return math.Hypot(dx, dy) / c.ScaleX
}

// RadialDistanceGrid is RadialDistance for every pixel, cached.
func (p Projector) RadialDistanceGrid() emath.FloatGrid {
	c := p.ctx
	c.cache.radialOnce.Do(func() {
		g := c.data.NewFromThis()
		c.eachRow(func(y int) {
			for x := 0; x < c.data.Dx(); x++ {
				g.Set(x, y, p.RadialDistance(float64(y), float64(x)))
			}
		})
		c.cache.radial = g
	})
	return *c.cache.radial.Copy()
}

// arcminOffset converts a pixel position into the angular offset from disk
// centre, in arcmin. Image rows run downwards, so y is flipped to point up.
func (c *Context) arcminOffset(row, col float64) (x, y float64) {
	x = emath.ArcsecToArcmin((col - c.X0) * c.ScaleX)
	y = emath.ArcsecToArcmin((c.Y0 - row) * c.ScaleY)
	return x, y
}

// heliographic does the actual projection, for an angular offset (arcmin)
// from disk centre. The sight line from the observer is intersected with
// the unit sphere; offsets beyond the limb are pulled in onto it.
func (c *Context) heliographic(x, y float64) Coord {
	hc := Coord{}

	ax, ay := emath.ArcminToDeg(x), emath.ArcminToDeg(y)
	if m := math.Max(math.Abs(ax), math.Abs(ay)); m > maxOffsetDeg {
		ax, ay = ax*maxOffsetDeg/m, ay*maxOffsetDeg/m
	}

	xxat := math.Tan(emath.Deg2Rad(ax))
	yyat := math.Tan(emath.Deg2Rad(ay))
	rat2 := xxat*xxat + yyat*yyat

	onAxis := rat2 <= zeroTolerance

	phi := 0.0
	if !onAxis {
		phi = math.Atan2(xxat, yyat)
	}

	if rat2 > c.maxRat2 {
		rat2 = c.maxRat2
		hc.OffDisk = true
	}

	// ras2 is sin^2 of the angle between the sight line and the sun centre
	ras2 := 0.0
	if !onAxis {
		ras2 = 1.0 / (1.0 + 1.0/rat2)
	}

	d1 := 1.0 - ras2
	d2 := math.Max(0, 1.0-c.robs*c.robs*ras2) // only negative through rounding, at the limb

	// Components of the surface point: towards the observer, then the
	// transverse distance from the sun-observer axis.
	xComp := ras2*c.robs + math.Sqrt(d1)*math.Sqrt(d2)
	rr := math.Sqrt(ras2) * (c.robs*math.Sqrt(d1) - math.Sqrt(d2))

	t1 := math.Sin(phi) * rr
	t2 := math.Cos(phi) * rr

	hc.Lat = emath.Rad2Deg(math.Asin(emath.Clamp1(t2)))
	hc.Lon = emath.Rad2Deg(math.Atan2(t1, xComp))

	return hc
}
