package orb

import (
	"math"
	"math/rand"
	"testing"
	"time"
)

const tick = time.Second / 60

func TestRampStaysInRange(t *testing.T) {
	cfg := DefaultAnimatorConfig()

	ramps := map[string]Ramp{
		"time speed":             cfg.TimeSpeed,
		"displacement strength":  cfg.DisplacementStrength,
		"displacement frequency": cfg.DisplacementFrequency,
		"distortion strength":    cfg.DistortionStrength,
		"distortion frequency":   cfg.DistortionFrequency,
		"light A intensity":      cfg.LightAIntensity,
		"light B intensity":      cfg.LightBIntensity,
	}

	velocities := []float64{
		math.Inf(-1), -100, -1, 0, 0.001, 0.5, 1, 2, 5, 10, 20, 50, 100, 1e6, 1e300, math.Inf(1),
	}

	for name, r := range ramps {
		t.Run(name, func(t *testing.T) {
			prev := math.Inf(-1)
			for _, v := range velocities {
				got := r.At(v)
				if got < r.Min() || got > r.Max() {
					t.Errorf("At(%v) = %v, outside [%v, %v]", v, got, r.Min(), r.Max())
				}
				if got < prev {
					t.Errorf("At(%v) = %v decreased from %v", v, got, prev)
				}
				prev = got
			}

			if got := r.At(math.NaN()); got != r.Base {
				t.Errorf("At(NaN) = %v, want base %v", got, r.Base)
			}
			if got := r.At(math.Inf(1)); got != r.Max() {
				t.Errorf("At(+Inf) = %v, want cap %v", got, r.Max())
			}
		})
	}
}

func TestRippleProgress(t *testing.T) {
	const d = time.Millisecond * 800

	tests := []struct {
		name    string
		elapsed time.Duration
		want    float64
	}{
		{"at click", 0, 0},
		{"before click", -time.Second, 0},
		{"half way", d / 2, math.Pow(0.5, 0.6)},
		{"quarter", d / 4, math.Pow(0.25, 0.6)},
		{"finished", d, 0},
		{"long after", d * 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RippleProgress(tt.elapsed, d, 0.6)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("RippleProgress(%v) = %v, want %v", tt.elapsed, got, tt.want)
			}
		})
	}

	if got := RippleProgress(d/2, d, 0.6); got < 0.65 || got > 0.67 {
		t.Errorf("half way ripple = %v, want about 0.66", got)
	}

	prev := 0.0
	for e := time.Millisecond; e < d; e += time.Millisecond * 10 {
		got := RippleProgress(e, d, 0.6)
		if got <= prev || got >= 1 {
			t.Fatalf("ripple not increasing in (0, 1) at %v: %v after %v", e, got, prev)
		}
		prev = got
	}
}

func idleColors() FocusColors {
	return DefaultPalette.Lookup(FocusIdle)
}

func TestNoRippleBeforeFirstClick(t *testing.T) {
	cfg := DefaultAnimatorConfig()
	s := NewAnimatorState(cfg, idleColors())

	for i := 1; i <= 60; i++ {
		s = NextUniforms(s, FrameInput{Now: tick * time.Duration(i), Pointer: FPt(50, 50), Colors: idleColors()}, cfg)
		if s.Uniforms.Ripple != 0 {
			t.Fatalf("ripple %v at tick %d without any click", s.Uniforms.Ripple, i)
		}
	}
}

func TestRippleRestartsOnNewClick(t *testing.T) {
	cfg := DefaultAnimatorConfig()
	s := NewAnimatorState(cfg, idleColors())

	in := func(now, click time.Duration) FrameInput {
		return FrameInput{Now: now, Pointer: FPt(50, 50), Colors: idleColors(), Click: click}
	}

	s = NextUniforms(s, in(time.Millisecond*100, time.Millisecond*100), cfg)
	if !s.RippleActive || s.RippleStart != time.Millisecond*100 {
		t.Fatalf("first click not registered: %+v", s)
	}
	if s.Uniforms.Ripple != 0 {
		t.Errorf("ripple at the click tick = %v, want 0", s.Uniforms.Ripple)
	}

	s = NextUniforms(s, in(time.Millisecond*300, time.Millisecond*100), cfg)
	if s.Uniforms.Ripple <= 0 || s.Uniforms.Ripple >= 1 {
		t.Fatalf("ripple in progress = %v, want in (0, 1)", s.Uniforms.Ripple)
	}

	// second click while the first ripple runs
	s = NextUniforms(s, in(time.Millisecond*400, time.Millisecond*400), cfg)
	if s.RippleStart != time.Millisecond*400 {
		t.Fatalf("ripple start = %v, want restart at 400ms", s.RippleStart)
	}
	if s.Uniforms.Ripple != 0 {
		t.Errorf("restarted ripple = %v, want 0", s.Uniforms.Ripple)
	}

	s = NextUniforms(s, in(time.Millisecond*800, time.Millisecond*400), cfg)
	want := math.Pow(0.5, 0.6)
	if math.Abs(s.Uniforms.Ripple-want) > 1e-9 {
		t.Errorf("ripple 400ms after restart = %v, want %v", s.Uniforms.Ripple, want)
	}

	// same click again is not a new click
	s = NextUniforms(s, in(time.Millisecond*1300, time.Millisecond*400), cfg)
	if s.Uniforms.Ripple != 0 || s.RippleActive {
		t.Errorf("ripple should have decayed, got %v active %v", s.Uniforms.Ripple, s.RippleActive)
	}
}

func TestColorConvergesWithoutOvershoot(t *testing.T) {
	cfg := DefaultAnimatorConfig()
	s := NewAnimatorState(cfg, idleColors())

	target := DefaultPalette.Lookup(FocusWork)
	start := s.Uniforms

	for i := 1; i <= 60; i++ {
		prev := s.Uniforms
		s = NextUniforms(s, FrameInput{Now: tick * time.Duration(i), Pointer: FPt(50, 50), Colors: target}, cfg)

		for _, pair := range []struct{ prev, cur, target RGB }{
			{prev.LightAColor, s.Uniforms.LightAColor, target.LightA},
			{prev.LightBColor, s.Uniforms.LightBColor, target.LightB},
		} {
			if pair.cur.Distance(pair.target) > pair.prev.Distance(pair.target)+1e-12 {
				t.Fatalf("tick %d: color moved away from target", i)
			}
			checkNoOvershoot(t, pair.prev.R, pair.cur.R, pair.target.R)
			checkNoOvershoot(t, pair.prev.G, pair.cur.G, pair.target.G)
			checkNoOvershoot(t, pair.prev.B, pair.cur.B, pair.target.B)
		}
	}

	factor := math.Pow(0.95, 60)

	if got, max := s.Uniforms.LightAColor.Distance(target.LightA), start.LightAColor.Distance(target.LightA)*factor; got > max+1e-9 {
		t.Errorf("light A remaining distance %v, want <= %v", got, max)
	}
	if got, max := s.Uniforms.LightBColor.Distance(target.LightB), start.LightBColor.Distance(target.LightB)*factor; got > max+1e-9 {
		t.Errorf("light B remaining distance %v, want <= %v", got, max)
	}

	for i := 61; i <= 1000; i++ {
		s = NextUniforms(s, FrameInput{Now: tick * time.Duration(i), Pointer: FPt(50, 50), Colors: target}, cfg)
	}
	if d := s.Uniforms.LightAColor.Distance(target.LightA); d > 1e-6 {
		t.Errorf("light A did not converge, distance %v", d)
	}
}

func checkNoOvershoot(t *testing.T, prev, cur, target float64) {
	t.Helper()
	if (prev <= target && cur > target+1e-12) || (prev >= target && cur < target-1e-12) {
		t.Fatalf("channel overshot: %v -> %v, target %v", prev, cur, target)
	}
}

func TestMouseVelocityDecaysSmoothly(t *testing.T) {
	cfg := DefaultAnimatorConfig()
	s := NewAnimatorState(cfg, idleColors())

	now := time.Duration(0)
	pointer := FPt(50, 50)

	for range 20 {
		now += tick
		pointer = pointer.Add(FPt(2, -1))
		s = NextUniforms(s, FrameInput{Now: now, Pointer: pointer, Colors: idleColors()}, cfg)
	}

	if s.Uniforms.MouseVelocity.Len() == 0 {
		t.Fatal("moving pointer produced no velocity vector")
	}

	for i := range 30 {
		prev := s.Uniforms.MouseVelocity.Len()
		now += tick
		s = NextUniforms(s, FrameInput{Now: now, Pointer: pointer, Colors: idleColors()}, cfg)
		cur := s.Uniforms.MouseVelocity.Len()

		if cur == 0 {
			t.Fatalf("tick %d: velocity vector snapped to zero", i)
		}
		if cur >= prev {
			t.Fatalf("tick %d: velocity vector did not decay: %v -> %v", i, prev, cur)
		}
		if math.Abs(cur-prev*(1-cfg.VelocityVectorBlend)) > 1e-9 {
			t.Fatalf("tick %d: decay %v -> %v is not a smooth blend", i, prev, cur)
		}
	}
}

func TestStationaryPointerKeepsBaseValues(t *testing.T) {
	cfg := DefaultAnimatorConfig()
	s := NewAnimatorState(cfg, idleColors())

	for i := 1; i <= 5*60; i++ {
		s = NextUniforms(s, FrameInput{Now: tick * time.Duration(i), Pointer: FPt(50, 50), Colors: idleColors()}, cfg)
	}

	u := s.Uniforms

	checks := []struct {
		name      string
		got, want float64
	}{
		{"displacement strength", u.DisplacementStrength, cfg.DisplacementStrength.Base},
		{"displacement frequency", u.DisplacementFrequency, cfg.DisplacementFrequency.Base},
		{"distortion strength", u.DistortionStrength, cfg.DistortionStrength.Base},
		{"distortion frequency", u.DistortionFrequency, cfg.DistortionFrequency.Base},
		{"light A intensity", u.LightAIntensity, cfg.LightAIntensity.Base},
		{"light B intensity", u.LightBIntensity, cfg.LightBIntensity.Base},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want base %v", c.name, c.got, c.want)
		}
	}

	if u.LightAColor != idleColors().LightA || u.LightBColor != idleColors().LightB {
		t.Errorf("colors = %v %v, want idle pair", u.LightAColor, u.LightBColor)
	}

	// 1/60s doesn't divide into whole nanoseconds, go by the same clock
	wantTime := (5 * 60 * tick).Seconds() * cfg.TimeSpeed.Base
	if math.Abs(u.Time-wantTime) > 1e-9 {
		t.Errorf("time = %v, want %v", u.Time, wantTime)
	}
}

func TestErraticPointerStaysClamped(t *testing.T) {
	cfg := DefaultAnimatorConfig()
	s := NewAnimatorState(cfg, idleColors())
	rng := rand.New(rand.NewSource(7))

	prevTime := 0.0

	for i := 1; i <= 2000; i++ {
		var p FPoint
		switch i % 4 {
		case 0:
			p = FPt(0, 0)
		case 1:
			p = FPt(100, 100)
		case 2:
			p = FPt(rng.Float64()*1e6, -rng.Float64()*1e6)
		case 3:
			p = FPt(math.NaN(), math.Inf(1))
		}

		s = NextUniforms(s, FrameInput{Now: tick * time.Duration(i), Pointer: p, Colors: idleColors()}, cfg)
		u := s.Uniforms

		ranged := []struct {
			name string
			v    float64
			r    Ramp
		}{
			{"displacement strength", u.DisplacementStrength, cfg.DisplacementStrength},
			{"displacement frequency", u.DisplacementFrequency, cfg.DisplacementFrequency},
			{"distortion strength", u.DistortionStrength, cfg.DistortionStrength},
			{"distortion frequency", u.DistortionFrequency, cfg.DistortionFrequency},
			{"light A intensity", u.LightAIntensity, cfg.LightAIntensity},
			{"light B intensity", u.LightBIntensity, cfg.LightBIntensity},
		}
		for _, r := range ranged {
			if r.v < r.r.Min() || r.v > r.r.Max() {
				t.Fatalf("tick %d: %s = %v outside [%v, %v]", i, r.name, r.v, r.r.Min(), r.r.Max())
			}
		}

		if u.Time < prevTime {
			t.Fatalf("tick %d: time went backwards %v -> %v", i, prevTime, u.Time)
		}
		prevTime = u.Time

		if !vecFinite(u.LightAPosition) || !vecFinite(u.LightBPosition) {
			t.Fatalf("tick %d: light position not finite", i)
		}
	}
}

func TestTimeNeverRunsBackwards(t *testing.T) {
	cfg := DefaultAnimatorConfig()
	s := NewAnimatorState(cfg, idleColors())

	s = NextUniforms(s, FrameInput{Now: time.Second, Pointer: FPt(50, 50), Colors: idleColors()}, cfg)
	before := s.Uniforms.Time

	s = NextUniforms(s, FrameInput{Now: time.Millisecond * 500, Pointer: FPt(50, 50), Colors: idleColors()}, cfg)
	if s.Uniforms.Time != before {
		t.Errorf("time changed on a stale tick: %v -> %v", before, s.Uniforms.Time)
	}
	if s.LastTick != time.Second {
		t.Errorf("last tick = %v, want 1s", s.LastTick)
	}
}

func TestAnimatorConfigValidate(t *testing.T) {
	if err := DefaultAnimatorConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	bad := DefaultAnimatorConfig()
	bad.ColorBlend = 0
	bad.RippleDuration = 0
	bad.DistortionStrength.Gain = -1

	if err := bad.Validate(); err == nil {
		t.Error("expected an error for a broken config")
	}
}
