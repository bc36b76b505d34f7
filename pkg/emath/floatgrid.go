package emath

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// A FloatGrid is a grid of floats, stored row-major. (x,y) is (column,row),
// and row 0 is the top of the image.
type FloatGrid struct {
	stride int
	values []float64
}

func NewFloatGrid(w, h int) FloatGrid {
	return FloatGrid{
		stride: w,
		values: make([]float64, w*h),
	}
}

// NewFloatGridFromRows builds a grid from a slice of rows; all rows must be
// the same length.
func NewFloatGridFromRows(rows [][]float64) (FloatGrid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return FloatGrid{}, fmt.Errorf("empty grid")
	}
	g := NewFloatGrid(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != g.stride {
			return FloatGrid{}, fmt.Errorf("row %d has %d values, want %d", y, len(row), g.stride)
		}
		copy(g.values[y*g.stride:], row)
	}
	return g, nil
}

func (g1 *FloatGrid) NewFromThis() FloatGrid  { return NewFloatGrid(g1.Dx(), g1.Dy()) }
func (fg *FloatGrid) Set(x, y int, v float64) { fg.values[fg.stride*y+x] = v }
func (fg *FloatGrid) Get(x, y int) float64    { return fg.values[fg.stride*y+x] }
func (fg *FloatGrid) Dx() int                 { return fg.stride }

func (fg *FloatGrid) Dy() int {
	if fg.stride == 0 {
		return 0
	}
	return len(fg.values) / fg.stride
}

func (fg *FloatGrid) Empty() bool      { return len(fg.values) == 0 }
func (fg *FloatGrid) In(x, y int) bool { return x >= 0 && y >= 0 && x < fg.Dx() && y < fg.Dy() }

func (fg *FloatGrid) SameShape(g2 FloatGrid) bool {
	return fg.stride == g2.stride && len(fg.values) == len(g2.values)
}

// Values exposes the backing slice, row-major.
func (fg *FloatGrid) Values() []float64 { return fg.values }

func (g1 *FloatGrid) Copy() *FloatGrid {
	g2 := FloatGrid{stride: g1.stride, values: make([]float64, len(g1.values))}
	copy(g2.values, g1.values)
	return &g2
}

// Fill sets every value in the grid to v.
func (fg *FloatGrid) Fill(v float64) {
	for i := range fg.values {
		fg.values[i] = v
	}
}

// Mul returns the element-wise product of two grids of the same shape.
func (g1 *FloatGrid) Mul(g2 FloatGrid) (FloatGrid, error) {
	if !g1.SameShape(g2) {
		return FloatGrid{}, fmt.Errorf("shape mismatch: %dx%d vs %dx%d", g1.Dx(), g1.Dy(), g2.Dx(), g2.Dy())
	}
	g3 := g1.NewFromThis()
	floats.MulTo(g3.values, g1.values, g2.values)
	return g3, nil
}

// Finite returns the values that are neither NaN nor infinite.
func (fg *FloatGrid) Finite() []float64 {
	vals := make([]float64, 0, len(fg.values))
	for _, v := range fg.values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			vals = append(vals, v)
		}
	}
	return vals
}

// Stats ignores NaN and infinite values, which mark off-disk pixels.
func (fg *FloatGrid) Stats() string {
	vals := fg.Finite()
	if len(vals) == 0 {
		return fmt.Sprintf("fg[%dx%d, no finite vals]", fg.Dx(), fg.Dy())
	}
	return fmt.Sprintf("fg[%dx%d, vals{%g,%g}, %d/%d finite]", fg.Dx(), fg.Dy(),
		floats.Min(vals), floats.Max(vals), len(vals), len(fg.values))
}
