package orb

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

type LoopConfig struct {
	WidthSegments  int
	HeightSegments int

	Seed int64

	Camera   Camera
	Palette  Palette
	Animator AnimatorConfig
	Tracker  TrackerConfig

	// 0 means GOMAXPROCS
	ShaderWorkers int
}

func DefaultLoopConfig() LoopConfig {
	return LoopConfig{
		WidthSegments:  64,
		HeightSegments: 64,
		Camera:         DefaultCamera(),
		Palette:        DefaultPalette,
		Animator:       DefaultAnimatorConfig(),
		Tracker:        DefaultTrackerConfig(),
	}
}

// Frame is everything needed to draw one tick.
//
// Vertices and Indices are owned by the loop and only valid until the next Tick.
type Frame struct {
	Now      time.Duration
	Uniforms UniformSet
	Pointer  PointerSample
	Focus    FocusState
	Glow     RGB
	Bloom    Bloom

	Vertices []ShadedVertex
	Indices  []uint16
}

var ErrLoopStopped = errors.New("orb loop is stopped")

// Loop wires tracker, selector, animator and shader together.
//
// Pointer, click and focus events may arrive from any goroutine.
// Tick must not be called concurrently with itself.
type Loop struct {
	Tracker  *Tracker
	Selector *FocusSelector

	animator *Animator
	shader   *Shader

	mu        sync.Mutex
	lastClick time.Duration
	stopped   bool

	viewW, viewH float64

	frame   Frame
	indices []uint16
}

func NewLoop(cfg LoopConfig) (*Loop, error) {
	if err := cfg.Animator.Validate(); err != nil {
		return nil, fmt.Errorf("invalid animator config: %w", err)
	}

	mesh, err := NewSphereMesh(cfg.WidthSegments, cfg.HeightSegments)
	if err != nil {
		return nil, err
	}

	l := &Loop{
		Tracker:  NewTracker(cfg.Tracker, cfg.Seed),
		Selector: NewFocusSelector(cfg.Palette),
		shader:   NewShader(mesh, cfg.Camera),
	}
	l.shader.Workers = cfg.ShaderWorkers
	l.animator = NewAnimator(cfg.Animator, l.Selector.Colors())

	l.frame = Frame{
		Uniforms: l.animator.State().Uniforms,
		Pointer:  l.Tracker.Sample(),
		Bloom:    BloomFor(FocusIdle),
		Glow:     l.Selector.Colors().Glow,
	}

	return l, nil
}

func (l *Loop) Mesh() *Mesh {
	return l.shader.Mesh
}

// SetViewport sets both the pointer normalization size and the render size.
func (l *Loop) SetViewport(pointerW, pointerH, renderW, renderH float64) {
	l.Tracker.SetViewport(pointerW, pointerH)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.viewW = renderW
	l.viewH = renderH
}

func (l *Loop) OnPointerMove(x, y float64, now time.Duration) error {
	if l.Stopped() {
		return ErrLoopStopped
	}
	l.Tracker.OnPointerMove(x, y, now)
	return nil
}

// OnClick records a click. Timestamps are forced to be strictly increasing
// so every call starts a new ripple.
func (l *Loop) OnClick(at time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.stopped {
		return ErrLoopStopped
	}

	l.lastClick = max(at, l.lastClick+1)
	return nil
}

// SetFocus returns true if the focus state changed.
func (l *Loop) SetFocus(state FocusState) (bool, error) {
	if l.Stopped() {
		return false, ErrLoopStopped
	}
	return l.Selector.Set(state), nil
}

// Tick advances the animation to now and shades the mesh.
// After Stop it keeps returning the last frame.
func (l *Loop) Tick(now time.Duration) Frame {
	l.mu.Lock()
	stopped := l.stopped
	click := l.lastClick
	viewW, viewH := l.viewW, l.viewH
	l.mu.Unlock()

	if stopped {
		return l.frame
	}

	pointer := l.Tracker.Step()
	focus := l.Selector.State()
	colors := l.Selector.Colors()

	u := l.animator.Tick(FrameInput{
		Now:     now,
		Pointer: pointer,
		Colors:  colors,
		Click:   click,
	})

	verts := l.shader.Shade(&u, viewW, viewH)
	l.indices = l.shader.AppendVisibleTriangles(l.indices[:0], verts)

	l.frame = Frame{
		Now:      now,
		Uniforms: u,
		Pointer:  l.Tracker.Sample(),
		Focus:    focus,
		Glow:     colors.Glow,
		Bloom:    BloomFor(focus),
		Vertices: verts,
		Indices:  l.indices,
	}

	return l.frame
}

func (l *Loop) LastFrame() Frame {
	return l.frame
}

func (l *Loop) AnimatorState() AnimatorState {
	return l.animator.State()
}

// Stop detaches the loop from its inputs. It is safe to call more than once.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopped = true
}

func (l *Loop) Stopped() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stopped
}
