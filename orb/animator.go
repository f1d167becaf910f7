package orb

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// UniformSet is everything the surface shader reads for one frame.
type UniformSet struct {
	Time   float64
	Ripple float64 // eased ripple progress, 0 when no ripple is running

	MouseVelocity mgl64.Vec2

	DisplacementStrength  float64
	DisplacementFrequency float64
	DistortionStrength    float64
	DistortionFrequency   float64

	LightAColor     RGB
	LightAPosition  mgl64.Vec3
	LightAIntensity float64

	LightBColor     RGB
	LightBPosition  mgl64.Vec3
	LightBIntensity float64
}

func (u UniformSet) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "time: %.4f\n", u.Time)
	fmt.Fprintf(&b, "ripple: %.4f\n", u.Ripple)
	fmt.Fprintf(&b, "mouseVelocity: (%.4f, %.4f)\n", u.MouseVelocity[0], u.MouseVelocity[1])
	fmt.Fprintf(&b, "displacement: strength %.4f frequency %.4f\n", u.DisplacementStrength, u.DisplacementFrequency)
	fmt.Fprintf(&b, "distortion: strength %.4f frequency %.4f\n", u.DistortionStrength, u.DistortionFrequency)
	fmt.Fprintf(&b, "lightA: %s intensity %.4f position (%.3f, %.3f, %.3f)\n",
		u.LightAColor.Hex(), u.LightAIntensity, u.LightAPosition[0], u.LightAPosition[1], u.LightAPosition[2])
	fmt.Fprintf(&b, "lightB: %s intensity %.4f position (%.3f, %.3f, %.3f)",
		u.LightBColor.Hex(), u.LightBIntensity, u.LightBPosition[0], u.LightBPosition[1], u.LightBPosition[2])

	return b.String()
}

type AnimatorConfig struct {
	TimeSpeed Ramp

	DisplacementStrength  Ramp
	DisplacementFrequency Ramp
	DistortionStrength    Ramp
	DistortionFrequency   Ramp

	LightAIntensity Ramp
	LightBIntensity Ramp

	RippleDuration time.Duration
	RippleEase     float64 // exponent applied to linear progress

	// blend factors, per tick
	VelocitySmoothing   float64
	VelocityVectorBlend float64
	ColorBlend          float64

	VelocityDeadzone    float64
	VelocityVectorScale float64

	LightOrbitSpeed float64
	WiggleGain      float64
	WiggleCap       float64
}

func DefaultAnimatorConfig() AnimatorConfig {
	return AnimatorConfig{
		TimeSpeed: Ramp{Base: 0.3, Gain: 0.01, Cap: 0.15},

		DisplacementStrength:  Ramp{Base: 0.08, Gain: 0.04, Cap: 0.14},
		DisplacementFrequency: Ramp{Base: 1.5, Gain: 0.06, Cap: 0.8},
		DistortionStrength:    Ramp{Base: 0.2, Gain: 0.06, Cap: 0.25},
		DistortionFrequency:   Ramp{Base: 1.0, Gain: 0.03, Cap: 0.4},

		LightAIntensity: Ramp{Base: 1.8, Gain: 0.02, Cap: 0.4},
		LightBIntensity: Ramp{Base: 1.4, Gain: 0.02 * 0.8, Cap: 0.4 * 0.8},

		RippleDuration: time.Millisecond * 800,
		RippleEase:     0.6,

		VelocitySmoothing:   0.08,
		VelocityVectorBlend: 0.15,
		ColorBlend:          0.05,

		VelocityDeadzone:    0.01,
		VelocityVectorScale: 0.5,

		LightOrbitSpeed: 0.2,
		WiggleGain:      0.01,
		WiggleCap:       0.5,
	}
}

func (c AnimatorConfig) Validate() error {
	var errs []error

	blend := func(name string, v float64) {
		if !(v > 0 && v <= 1) {
			errs = append(errs, fmt.Errorf("%s must be in (0, 1], got %v", name, v))
		}
	}
	blend("velocity smoothing", c.VelocitySmoothing)
	blend("velocity vector blend", c.VelocityVectorBlend)
	blend("color blend", c.ColorBlend)

	ramps := []struct {
		name string
		r    Ramp
	}{
		{"time speed", c.TimeSpeed},
		{"displacement strength", c.DisplacementStrength},
		{"displacement frequency", c.DisplacementFrequency},
		{"distortion strength", c.DistortionStrength},
		{"distortion frequency", c.DistortionFrequency},
		{"light A intensity", c.LightAIntensity},
		{"light B intensity", c.LightBIntensity},
	}
	for _, r := range ramps {
		if r.r.Gain < 0 || r.r.Cap < 0 {
			errs = append(errs, fmt.Errorf("%s ramp must not decrease", r.name))
		}
	}

	if c.RippleDuration <= 0 {
		errs = append(errs, errors.New("ripple duration must be positive"))
	}
	if c.RippleEase <= 0 {
		errs = append(errs, errors.New("ripple ease must be positive"))
	}

	return errors.Join(errs...)
}

// AnimatorState is the uniform set plus what the next tick needs to remember.
type AnimatorState struct {
	Uniforms UniformSet

	LastTick    time.Duration
	LastPointer FPoint
	Velocity    float64 // smoothed pointer speed, percent of viewport per tick

	LastClick    time.Duration
	RippleStart  time.Duration
	RippleActive bool
}

// FrameInput is what the outside world looks like at one tick.
type FrameInput struct {
	Now     time.Duration // since the loop started
	Pointer FPoint        // displayed pointer position, [0, 100]
	Colors  FocusColors   // target colors of the current focus state
	Click   time.Duration // most recent click, 0 if there was none
}

func NewAnimatorState(cfg AnimatorConfig, colors FocusColors) AnimatorState {
	return AnimatorState{
		Uniforms: UniformSet{
			DisplacementStrength:  cfg.DisplacementStrength.Base,
			DisplacementFrequency: cfg.DisplacementFrequency.Base,
			DistortionStrength:    cfg.DistortionStrength.Base,
			DistortionFrequency:   cfg.DistortionFrequency.Base,

			LightAColor:     colors.LightA,
			LightAPosition:  mgl64.Vec3{1, 1, 0},
			LightAIntensity: cfg.LightAIntensity.Base,

			LightBColor:     colors.LightB,
			LightBPosition:  mgl64.Vec3{-1, -1, 0},
			LightBIntensity: cfg.LightBIntensity.Base,
		},
		LastPointer: FPt(50, 50),
	}
}

// RippleProgress maps time since the click to the eased ripple value.
// It is 0 at the moment of the click and 0 again once duration has passed.
func RippleProgress(elapsed, duration time.Duration, ease float64) float64 {
	if duration <= 0 || elapsed <= 0 {
		return 0
	}
	p := Clamp(float64(elapsed)/float64(duration), 0, 1)
	if p >= 1 {
		return 0
	}
	return math.Pow(p, ease)
}

// NextUniforms advances the animation by one tick. prev is not modified.
func NextUniforms(prev AnimatorState, in FrameInput, cfg AnimatorConfig) AnimatorState {
	next := prev
	u := &next.Uniforms

	dt := max(in.Now-prev.LastTick, 0)
	next.LastTick = max(in.Now, prev.LastTick)

	now := next.LastTick.Seconds()

	// =========================
	// pointer velocity
	// =========================
	pointer := in.Pointer
	if !isFinite(pointer.X) || !isFinite(pointer.Y) {
		pointer = prev.LastPointer
	}
	delta := pointer.Sub(prev.LastPointer)
	next.LastPointer = pointer

	speed := delta.Length()
	next.Velocity = prev.Velocity + (speed-prev.Velocity)*cfg.VelocitySmoothing
	v := next.Velocity

	target := mgl64.Vec2{delta.X, delta.Y}
	if speed > cfg.VelocityDeadzone {
		target = target.Mul(v * cfg.VelocityVectorScale / speed)
	}
	u.MouseVelocity = prev.Uniforms.MouseVelocity.Add(
		target.Sub(prev.Uniforms.MouseVelocity).Mul(cfg.VelocityVectorBlend))

	// =========================
	// time
	// =========================
	u.Time = prev.Uniforms.Time + dt.Seconds()*cfg.TimeSpeed.At(v)

	// =========================
	// ripple
	// =========================
	if in.Click > prev.LastClick {
		next.LastClick = in.Click
		next.RippleStart = next.LastTick
		next.RippleActive = true
	}

	u.Ripple = 0
	if next.RippleActive {
		elapsed := next.LastTick - next.RippleStart
		u.Ripple = RippleProgress(elapsed, cfg.RippleDuration, cfg.RippleEase)
		if elapsed >= cfg.RippleDuration {
			next.RippleActive = false
		}
	}

	// =========================
	// velocity driven parameters
	// =========================
	u.DisplacementStrength = cfg.DisplacementStrength.At(v)
	u.DisplacementFrequency = cfg.DisplacementFrequency.At(v)
	u.DistortionStrength = cfg.DistortionStrength.At(v)
	u.DistortionFrequency = cfg.DistortionFrequency.At(v)

	u.LightAIntensity = cfg.LightAIntensity.At(v)
	u.LightBIntensity = cfg.LightBIntensity.At(v)

	// =========================
	// colors
	// =========================
	u.LightAColor = prev.Uniforms.LightAColor.Lerp(in.Colors.LightA, cfg.ColorBlend)
	u.LightBColor = prev.Uniforms.LightBColor.Lerp(in.Colors.LightB, cfg.ColorBlend)

	// =========================
	// light orbits
	// =========================
	t := now * cfg.LightOrbitSpeed
	wiggle := min(v*cfg.WiggleGain, cfg.WiggleCap)

	u.LightAPosition = mgl64.Vec3{
		math.Sin(t)*0.5 + 1 + math.Sin(t*3)*wiggle,
		math.Cos(t*0.7)*0.3 + 1 + math.Cos(t*2.5)*wiggle,
		math.Sin(t*0.3) * 0.3,
	}
	u.LightBPosition = mgl64.Vec3{
		math.Cos(t*0.8)*0.5 - 1 + math.Cos(t*2.7)*wiggle,
		math.Sin(t*0.6)*0.3 - 1 + math.Sin(t*3.1)*wiggle,
		math.Cos(t*0.4) * 0.3,
	}

	return next
}

// Animator keeps the running state for the render loop.
type Animator struct {
	Config AnimatorConfig
	state  AnimatorState
}

func NewAnimator(cfg AnimatorConfig, colors FocusColors) *Animator {
	return &Animator{
		Config: cfg,
		state:  NewAnimatorState(cfg, colors),
	}
}

func (a *Animator) Tick(in FrameInput) UniformSet {
	a.state = NextUniforms(a.state, in, a.Config)
	return a.state.Uniforms
}

func (a *Animator) State() AnimatorState {
	return a.state
}
