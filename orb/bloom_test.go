package orb

import "testing"

func TestBloomFor(t *testing.T) {
	tests := []struct {
		state FocusState
		want  float64
	}{
		{FocusIdle, BloomIntensityIdle},
		{FocusSocialX, BloomIntensityFocused},
		{FocusSocialGithub, BloomIntensityFocused},
		{FocusEmail, BloomIntensityFocused},
		{FocusWork, BloomIntensityFocused},
		{FocusLocation, BloomIntensityFocused},
		{FocusState(-3), BloomIntensityIdle},
		{FocusStateSize, BloomIntensityIdle},
	}

	for _, tt := range tests {
		b := BloomFor(tt.state)
		if b.Intensity != tt.want {
			t.Errorf("BloomFor(%v).Intensity = %v, want %v", tt.state, b.Intensity, tt.want)
		}
		if b.Threshold != 0.6 || b.Smoothing != 0.7 || b.Radius != 0.4 {
			t.Errorf("BloomFor(%v) = %+v, unexpected shape", tt.state, b)
		}
	}
}

func TestBloomWeight(t *testing.T) {
	b := BloomFor(FocusIdle)

	if w := b.Weight(0.5); w != 0 {
		t.Errorf("below threshold weight = %v, want 0", w)
	}
	if w := b.Weight(1.3); w != 1 {
		t.Errorf("above the knee weight = %v, want 1", w)
	}
	if w := b.Weight(0.95); w <= 0.4 || w >= 0.6 {
		t.Errorf("middle of the knee weight = %v, want about 0.5", w)
	}

	prev := 0.0
	for lum := 0.0; lum <= 1.5; lum += 0.01 {
		w := b.Weight(lum)
		if w < prev {
			t.Fatalf("weight decreased at %v", lum)
		}
		prev = w
	}
}
