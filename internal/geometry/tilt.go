package geometry

import (
	"math"

	"github.com/golang/geo/r2"
)

// DefaultTiltMargin is the horizontal tolerance, in pixels, under which the
// head counts as upright.
const DefaultTiltMargin = 2.0

// TiltAngle computes the signed head tilt from vertical given the tip and
// bottom nose landmarks. Image y grows downward, so dy is flipped to get a
// conventional up axis. Within the margin the head is upright (0 degrees);
// otherwise the angle is degrees(atan(dx/dy)) rounded to one decimal,
// negative when tilted left. A level tip/bottom pair (dy = 0) is a full
// sideways tilt of +-90. Total: NaN input reports upright rather than a
// NaN angle.
func TiltAngle(tip, bottom r2.Point, margin float64) (angle float64, isStraight bool) {
	dx := tip.X - bottom.X
	dy := bottom.Y - tip.Y

	if math.IsNaN(dx) || math.IsNaN(dy) {
		return 0.0, true
	}
	if math.Abs(dx) <= margin {
		return 0.0, true
	}

	if dy == 0 {
		if dx > 0 {
			return 90.0, false
		}
		return -90.0, false
	}

	return Round1(math.Atan(dx/dy) * 180 / math.Pi), false
}
