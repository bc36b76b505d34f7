package helio

import (
	"fmt"
	"sort"

	"github.com/abworrall/helioflux/pkg/emath"
)

// A Quantity is a per-pixel value that can be asked for at a single pixel,
// or for the whole image at once.
type Quantity interface {
	Name() string
	Point(row, col int) float64
	Grid() emath.FloatGrid
}

// Quantities lists the Quantity names understood by Context.Quantity.
func Quantities() []string {
	names := []string{}
	for name := range quantityMakers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var quantityMakers = map[string]func(*Context) Quantity{
	"los":  func(c *Context) Quantity { return c.LineOfSight() },
	"area": func(c *Context) Quantity { return c.Area() },
	"flux": func(c *Context) Quantity { return c.Flux() },
}

func (c *Context) Quantity(name string) (Quantity, error) {
	if mk, exists := quantityMakers[name]; exists {
		return mk(c), nil
	}
	return nil, fmt.Errorf("no quantity named '%s' (want one of %v)", name, Quantities())
}
