//go:build ignore

//kage:unit pixels

package main

// Uniform variables.
var Threshold float
var Smoothing float

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	c := imageSrc0At(srcPos)

	// Rec. 709 luminance
	lum := dot(c.rgb, vec3(0.2126, 0.7152, 0.0722))

	return c * smoothstep(Threshold, Threshold+Smoothing, lum)
}
