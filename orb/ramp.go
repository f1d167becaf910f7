package orb

import (
	"math"
)

// Ramp maps a velocity to Base + min(v*Gain, Cap).
//
// Output is always in [Base, Base+Cap] and non-decreasing in v
// as long as Gain and Cap are not negative.
type Ramp struct {
	Base float64
	Gain float64
	Cap  float64
}

func (r Ramp) At(v float64) float64 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return r.Base
	case math.IsInf(v, 1):
		return r.Base + r.Cap
	}
	return r.Base + min(v*r.Gain, r.Cap)
}

func (r Ramp) Min() float64 {
	return r.Base
}

func (r Ramp) Max() float64 {
	return r.Base + r.Cap
}
