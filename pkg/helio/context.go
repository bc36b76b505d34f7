package helio

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/abworrall/helioflux/pkg/emath"
)

// RsunCm is the solar radius, used to turn solid angles into surface area.
const RsunCm = 6.957e10

// maxOffsetDeg caps the angular offset from disk centre fed to the
// projection. Anything this far out is well off the disk, and past 90
// degrees tan wraps round to the opposite side.
const maxOffsetDeg = 45.0

// zeroTolerance is the threshold under which rat2 is treated as zero, i.e. the
// pixel sits on the disk centre. It corresponds to ~2e-7 arcsec.
const zeroTolerance = 1e-24

// An Observation holds the observer geometry for a magnetogram, as pulled out
// of the image metadata.
type Observation struct {
	B0         float64 // Heliographic latitude of the observer (deg)
	L0         float64 // Central meridian longitude (deg)
	X0         float64 // Disk centre, column (pixels)
	Y0         float64 // Disk centre, row (pixels)
	ScaleX     float64 // arcsec/pixel
	ScaleY     float64 // arcsec/pixel
	RsunPixels float64 // Apparent solar radius (pixels, in ScaleX units)
}

func (o Observation) String() string {
	return fmt.Sprintf("B0=%.4f L0=%.4f center=(%.2f,%.2f) scale=(%.4f,%.4f)\"/px rsun=%.2fpx",
		o.B0, o.L0, o.X0, o.Y0, o.ScaleX, o.ScaleY, o.RsunPixels)
}

func (o Observation) Validate() error {
	for name, v := range map[string]float64{"B0": o.B0, "L0": o.L0, "X0": o.X0, "Y0": o.Y0} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s is not finite (%v)", name, v)
		}
	}
	if !(o.ScaleX > 0) || !(o.ScaleY > 0) || math.IsInf(o.ScaleX, 0) || math.IsInf(o.ScaleY, 0) {
		return fmt.Errorf("pixel scale must be > 0, got (%v,%v)", o.ScaleX, o.ScaleY)
	}
	if !(o.RsunPixels > 0) || math.IsInf(o.RsunPixels, 0) {
		return fmt.Errorf("solar radius must be > 0 pixels, got %v", o.RsunPixels)
	}
	return nil
}

// RsunArcsec is the apparent angular radius of the sun.
func (o Observation) RsunArcsec() float64 { return o.RsunPixels * o.ScaleX }

// A Context ties an Observation to the intensity grid it describes. It is
// immutable once built; the derived grids are computed on first use and
// then cached for the life of the Context. To work on a different image,
// build a new Context.
type Context struct {
	Observation

	data emath.FloatGrid

	robs     float64 // Observer distance, in solar radii
	maxRat2  float64 // rat2 at the limb; anything bigger is off-disk
	observer r3.Vec  // Unit vector towards the observer, from B0 & L0

	cache gridCache
}

// gridCache holds the zero-offset grids. Each slot is filled at most once.
// Grids computed at a sub-pixel offset (pixel corners) are never cached.
type gridCache struct {
	lonLatOnce sync.Once
	lon, lat   emath.FloatGrid

	radialOnce sync.Once
	radial     emath.FloatGrid

	losOnce sync.Once
	los     emath.FloatGrid

	areaOnce sync.Once
	area     emath.FloatGrid

	fluxOnce sync.Once
	flux     emath.FloatGrid
}

func NewContext(obs Observation, data emath.FloatGrid) (*Context, error) {
	if err := obs.Validate(); err != nil {
		return nil, fmt.Errorf("observation: %v", err)
	}
	if data.Empty() {
		return nil, fmt.Errorf("observation: empty intensity grid")
	}

	rsunDeg := emath.ArcminToDeg(emath.ArcsecToArcmin(obs.RsunArcsec()))
	if rsunDeg >= maxOffsetDeg {
		return nil, fmt.Errorf("observation: solar radius %.1f arcsec is not a plausible apparent size", obs.RsunArcsec())
	}
	robs := 1.0 / math.Tan(emath.Deg2Rad(rsunDeg))
	maxRa := math.Asin(emath.Clamp1(1.0 / robs))

	b0 := emath.Deg2Rad(obs.B0)
	l0 := emath.Deg2Rad(obs.L0)

	return &Context{
		Observation: obs,
		data:        *data.Copy(),
		robs:        robs,
		maxRat2:     math.Tan(maxRa) * math.Tan(maxRa),
		observer: r3.Vec{
			X: math.Cos(b0) * math.Cos(l0),
			Y: math.Cos(b0) * math.Sin(l0),
			Z: math.Sin(b0),
		},
	}, nil
}

func (c *Context) String() string {
	return fmt.Sprintf("Context[%dx%d, %s, Robs=%.3f]", c.data.Dx(), c.data.Dy(), c.Observation, c.robs)
}

func (c *Context) Dx() int { return c.data.Dx() }
func (c *Context) Dy() int { return c.data.Dy() }

// ObserverDistance is the observer's distance from sun centre, in solar radii,
// implied by the apparent radius.
func (c *Context) ObserverDistance() float64 { return c.robs }

// Observer is the unit vector pointing at the observer.
func (c *Context) Observer() r3.Vec { return c.observer }

// Intensity returns the raw value at (row, col), or NaN if that is outside
// the image.
func (c *Context) Intensity(row, col int) float64 {
	if !c.data.In(col, row) {
		return math.NaN()
	}
	return c.data.Get(col, row)
}

// Data returns a copy of the raw intensity grid.
func (c *Context) Data() emath.FloatGrid { return *c.data.Copy() }
