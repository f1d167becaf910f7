package orb

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// PointerSample is the pointer in viewport percent, [0, 100] on both axes.
type PointerSample struct {
	X, Y float64

	Velocity  float64 // smoothed velocity strength, [0, 1]
	Proximity float64 // 1 on the target's center, 0 at ProximityRadius and beyond
}

type TrackerConfig struct {
	// pointer moves closer together than this are dropped
	SampleInterval time.Duration

	// px/ms that counts as full velocity strength
	VelocityFullSpeed float64
	VelocitySmoothing float64

	// px
	ProximityRadius float64

	JitterGain float64

	DriftAmplitude  float64
	DriftFrequencyX float64 // per ms
	DriftFrequencyY float64 // per ms

	// fraction of the remaining distance covered every Step
	Ease float64
}

func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		SampleInterval: time.Millisecond * 16,

		VelocityFullSpeed: 0.1,
		VelocitySmoothing: 0.5,

		ProximityRadius: 500,

		JitterGain: 3,

		DriftAmplitude:  10,
		DriftFrequencyX: 0.001,
		DriftFrequencyY: 0.0012,

		Ease: 0.08,
	}
}

// Tracker turns raw pointer events into a smoothed, slightly wandering
// position. OnPointerMove and Step may be called from different goroutines.
type Tracker struct {
	cfg TrackerConfig

	mu sync.Mutex

	rng *rand.Rand

	viewportW, viewportH float64
	targetRect           FRectangle

	hasRaw   bool
	lastRaw  FPoint
	lastTime time.Duration

	sample PointerSample

	target    FPoint
	displayed FPoint
}

func NewTracker(cfg TrackerConfig, seed int64) *Tracker {
	return &Tracker{
		cfg:       cfg,
		rng:       rand.New(rand.NewSource(seed)),
		sample:    PointerSample{X: 50, Y: 50},
		target:    FPt(50, 50),
		displayed: FPt(50, 50),
	}
}

func (t *Tracker) SetViewport(width, height float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.viewportW = width
	t.viewportH = height
}

// SetTargetRect sets the element, in viewport pixels, proximity is measured against.
func (t *Tracker) SetTargetRect(rect FRectangle) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.targetRect = rect
}

// OnPointerMove feeds a raw pointer position in viewport pixels.
func (t *Tracker) OnPointerMove(x, y float64, now time.Duration) {
	if !isFinite(x) || !isFinite(y) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.viewportW <= 0 || t.viewportH <= 0 {
		return
	}

	if t.hasRaw && now-t.lastTime < t.cfg.SampleInterval {
		return
	}

	raw := FPt(x, y)

	// =========================
	// velocity
	// =========================
	if t.hasRaw {
		elapsedMs := float64(now-t.lastTime) / float64(time.Millisecond)
		if elapsedMs > 0 {
			velocity := raw.Sub(t.lastRaw).Length() / elapsedMs
			strength := min(velocity/t.cfg.VelocityFullSpeed, 1)
			t.sample.Velocity += (strength - t.sample.Velocity) * t.cfg.VelocitySmoothing
		}
	}

	// =========================
	// proximity
	// =========================
	if !t.targetRect.Empty() {
		center := FRectangleCenter(t.targetRect)
		dist := raw.Sub(center).Length()
		t.sample.Proximity = Clamp(1-dist/t.cfg.ProximityRadius, 0, 1)
	}

	// =========================
	// position
	// =========================
	norm := FPt(x/t.viewportW*100, y/t.viewportH*100)

	var delta FPoint
	if t.hasRaw {
		prevNorm := FPt(t.sample.X, t.sample.Y)
		delta = norm.Sub(prevNorm)
	}

	t.sample.X = Clamp(norm.X, 0, 100)
	t.sample.Y = Clamp(norm.Y, 0, 100)

	ms := float64(now) / float64(time.Millisecond)

	jitterX := (t.rng.Float64() - 0.5) * math.Abs(delta.X) * t.cfg.JitterGain
	jitterY := (t.rng.Float64() - 0.5) * math.Abs(delta.Y) * t.cfg.JitterGain

	t.target = FPt(
		norm.X+jitterX+math.Sin(ms*t.cfg.DriftFrequencyX)*t.cfg.DriftAmplitude,
		norm.Y+jitterY+math.Cos(ms*t.cfg.DriftFrequencyY)*t.cfg.DriftAmplitude,
	)

	t.hasRaw = true
	t.lastRaw = raw
	t.lastTime = now
}

// Step eases the displayed position toward the target and returns it.
// Call it once per animation tick.
func (t *Tracker) Step() FPoint {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.displayed = t.displayed.Add(t.target.Sub(t.displayed).Scale(t.cfg.Ease))
	t.displayed.X = Clamp(t.displayed.X, 0, 100)
	t.displayed.Y = Clamp(t.displayed.Y, 0, 100)

	return t.displayed
}

func (t *Tracker) Displayed() FPoint {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.displayed
}

func (t *Tracker) Sample() PointerSample {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sample
}
