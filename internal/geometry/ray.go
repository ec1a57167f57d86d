package geometry

import (
	"math"

	"github.com/golang/geo/r2"
)

// BorderIntersection finds where the forward ray from bottom through tip
// first leaves the image rectangle [0, width-1] x [0, height-1]. The ray is
// bottom + t*(tip-bottom) with t >= 0; for each of the four border lines the
// candidate is kept only when its perpendicular coordinate stays inside the
// image, and the smallest t wins. Returns false when the direction vector is
// zero, any coordinate is NaN, or no forward intersection is in bounds.
func BorderIntersection(bottom, tip r2.Point, width, height float64) (r2.Point, bool) {
	d := tip.Sub(bottom)

	best := r2.Point{}
	bestT := math.Inf(1)
	found := false

	consider := func(t float64, p r2.Point) {
		if t >= 0 && t < bestT {
			best = p
			bestT = t
			found = true
		}
	}

	// Vertical borders x=0 and x=width-1
	if d.X != 0 {
		for _, bx := range []float64{0, width - 1} {
			t := (bx - bottom.X) / d.X
			y := bottom.Y + t*d.Y
			if y >= 0 && y <= height-1 {
				consider(t, r2.Point{X: bx, Y: y})
			}
		}
	}

	// Horizontal borders y=0 and y=height-1
	if d.Y != 0 {
		for _, by := range []float64{0, height - 1} {
			t := (by - bottom.Y) / d.Y
			x := bottom.X + t*d.X
			if x >= 0 && x <= width-1 {
				consider(t, r2.Point{X: x, Y: by})
			}
		}
	}

	if !found {
		return r2.Point{}, false
	}
	best.X = Round1(best.X)
	return best, true
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
