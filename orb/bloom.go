package orb

// Bloom configures the glow post process.
type Bloom struct {
	Threshold float64 // luminance where bloom starts
	Smoothing float64 // width of the soft knee above Threshold
	Intensity float64
	Radius    float64 // blur radius, relative to the orb size
}

const (
	BloomIntensityIdle    = 0.5
	BloomIntensityFocused = 1.0
)

// BloomFor returns the bloom used while state is active.
// Any non idle state glows harder.
func BloomFor(state FocusState) Bloom {
	b := Bloom{
		Threshold: 0.6,
		Smoothing: 0.7,
		Intensity: BloomIntensityIdle,
		Radius:    0.4,
	}
	if state.Valid() && state != FocusIdle {
		b.Intensity = BloomIntensityFocused
	}
	return b
}

// Weight is how much of a pixel with luminance lum goes into the bloom.
// The bright pass shader uses the same curve.
func (b Bloom) Weight(lum float64) float64 {
	return Smoothstep(b.Threshold, b.Threshold+b.Smoothing, lum)
}
