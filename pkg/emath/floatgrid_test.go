package emath

import (
	"math"
	"strings"
	"testing"
)

func TestNewFloatGridFromRows(t *testing.T) {
	g, err := NewFloatGridFromRows([][]float64{
		{1, 2, 3},
		{4, 5, 6},
	})
	if err != nil {
		t.Fatalf("NewFloatGridFromRows: %v", err)
	}
	if g.Dx() != 3 || g.Dy() != 2 {
		t.Fatalf("shape = %dx%d, want 3x2", g.Dx(), g.Dy())
	}
	// (x,y) is (column,row)
	if got := g.Get(2, 1); got != 6 {
		t.Errorf("Get(2,1) = %v, want 6", got)
	}
	if got := g.Get(0, 1); got != 4 {
		t.Errorf("Get(0,1) = %v, want 4", got)
	}
}

func TestNewFloatGridFromRows_Ragged(t *testing.T) {
	if _, err := NewFloatGridFromRows([][]float64{{1, 2}, {3}}); err == nil {
		t.Error("expected error for ragged rows")
	}
	if _, err := NewFloatGridFromRows(nil); err == nil {
		t.Error("expected error for empty rows")
	}
}

func TestFloatGridMul(t *testing.T) {
	a := NewFloatGrid(2, 2)
	a.Fill(3)
	b := NewFloatGrid(2, 2)
	b.Fill(2)
	b.Set(1, 1, math.NaN())

	c, err := a.Mul(b)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	if got := c.Get(0, 0); got != 6 {
		t.Errorf("c(0,0) = %v, want 6", got)
	}
	if got := c.Get(1, 1); !math.IsNaN(got) {
		t.Errorf("c(1,1) = %v, want NaN", got)
	}

	if _, err := a.Mul(NewFloatGrid(3, 1)); err == nil {
		t.Error("expected shape mismatch error")
	}
}

func TestFloatGridCopyIsDeep(t *testing.T) {
	a := NewFloatGrid(2, 1)
	b := a.Copy()
	b.Set(0, 0, 42)
	if a.Get(0, 0) != 0 {
		t.Error("Copy shares storage with the original")
	}
}

func TestFloatGridStatsSkipsNaN(t *testing.T) {
	g := NewFloatGrid(3, 1)
	g.Set(0, 0, 1)
	g.Set(1, 0, math.NaN())
	g.Set(2, 0, 5)

	if n := len(g.Finite()); n != 2 {
		t.Errorf("Finite() has %d values, want 2", n)
	}
	if s := g.Stats(); !strings.Contains(s, "2/3 finite") {
		t.Errorf("Stats() = %q, want it to report 2/3 finite", s)
	}
}

func TestClamp1(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{1.0000000001, 1},
		{-1.5, -1},
		{0.25, 0.25},
	}
	for _, tt := range tests {
		if got := Clamp1(tt.in); got != tt.want {
			t.Errorf("Clamp1(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
