package orb

import (
	"math"
)

// classic 4D gradient noise with a mod 289 permutation polynomial,
// so the lattice repeats every 289 units on each axis.

const noisePeriod = 289.0

func permute(x float64) float64 {
	return mod((x*34+1)*x, noisePeriod)
}

func taylorInvSqrt(r float64) float64 {
	return 1.79284291400159 - 0.85373472095314*r
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func step(edge, x float64) float64 {
	if x < edge {
		return 0
	}
	return 1
}

// gradient at a lattice corner, already normalized
func gradient4(hash float64) [4]float64 {
	gx := hash / 7
	gy := math.Floor(gx) / 7
	gz := math.Floor(gy) / 6
	gx = fract(gx) - 0.5
	gy = fract(gy) - 0.5
	gz = fract(gz) - 0.5
	gw := 0.75 - math.Abs(gx) - math.Abs(gy) - math.Abs(gz)

	sw := step(gw, 0)
	gx -= sw * (step(0, gx) - 0.5)
	gy -= sw * (step(0, gy) - 0.5)

	norm := taylorInvSqrt(gx*gx + gy*gy + gz*gz + gw*gw)

	return [4]float64{gx * norm, gy * norm, gz * norm, gw * norm}
}

// Perlin4D returns smooth noise in roughly [-1, 1].
//
// Any NaN or infinite coordinate yields 0.
func Perlin4D(x, y, z, w float64) float64 {
	if !isFinite(x) || !isFinite(y) || !isFinite(z) || !isFinite(w) {
		return 0
	}

	p := [4]float64{x, y, z, w}

	var pi0, pi1, pf0, pf1, f [4]float64

	for i := range 4 {
		fl := math.Floor(p[i])
		pi0[i] = mod(fl, noisePeriod)
		pi1[i] = mod(fl+1, noisePeriod)
		pf0[i] = p[i] - fl
		pf1[i] = pf0[i] - 1
		f[i] = fade(pf0[i])
	}

	// contribution of every corner of the 4D cell, indexed by bit mask
	// (bit 0 = x, bit 1 = y, bit 2 = z, bit 3 = w)
	var n [16]float64

	for corner := range 16 {
		var idx, off [4]float64
		for axis := range 4 {
			if corner&(1<<axis) == 0 {
				idx[axis] = pi0[axis]
				off[axis] = pf0[axis]
			} else {
				idx[axis] = pi1[axis]
				off[axis] = pf1[axis]
			}
		}

		hash := permute(permute(permute(permute(idx[0])+idx[1])+idx[2]) + idx[3])
		g := gradient4(hash)

		n[corner] = g[0]*off[0] + g[1]*off[1] + g[2]*off[2] + g[3]*off[3]
	}

	// collapse w, then z, then y, then x
	for axis := 3; axis >= 0; axis-- {
		half := 1 << axis
		for i := range half {
			n[i] = Lerp(n[i], n[i+half], f[axis])
		}
	}

	return 2.2 * n[0]
}
