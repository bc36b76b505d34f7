package helio

import (
	"github.com/abworrall/helioflux/pkg/emath"
)

// Flux is the magnetic flux through each pixel: its area times its line of
// sight corrected field. Off-disk pixels come through as NaN.
type Flux struct {
	ctx *Context
}

func (c *Context) Flux() Flux { return Flux{ctx: c} }

func (f Flux) Name() string { return "flux" }

func (f Flux) Point(row, col int) float64 {
	return f.ctx.Area().Point(row, col) * f.ctx.LineOfSight().Point(row, col)
}

// Grid returns the flux of every pixel, cached.
func (f Flux) Grid() emath.FloatGrid {
	c := f.ctx
	c.cache.fluxOnce.Do(func() {
		area := c.Area().Grid()
		field := c.LineOfSight().Grid()
		// Both come from this context's grid, so shapes always match
		c.cache.flux, _ = area.Mul(field)
	})
	return *c.cache.flux.Copy()
}
