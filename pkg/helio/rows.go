package helio

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// eachRow runs fn once per image row, spread across GOMAXPROCS workers. Every
// pixel is independent, so fn must only write to cells in its own row.
func (c *Context) eachRow(fn func(y int)) {
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for y := 0; y < c.data.Dy(); y++ {
		g.Go(func() error {
			fn(y)
			return nil
		})
	}

	_ = g.Wait() // fn can't fail
}
