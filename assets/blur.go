//go:build ignore

//kage:unit pixels

package main

const Taps = 12

// Uniform variables.
var Direction vec2
var Radius float

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	if Radius < 0.5 {
		return imageSrc0At(srcPos)
	}

	sigma := Radius * 0.5

	sum := vec4(0)
	total := 0.0

	for i := -Taps; i <= Taps; i++ {
		x := float(i) / Taps * Radius
		w := exp(-(x * x) / (2 * sigma * sigma))
		sum += imageSrc0At(srcPos+Direction*x) * w
		total += w
	}

	return sum / total
}
