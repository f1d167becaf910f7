package orb

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"
)

func newTestLoop(t *testing.T) *Loop {
	t.Helper()

	cfg := DefaultLoopConfig()
	cfg.WidthSegments = 16
	cfg.HeightSegments = 16
	cfg.ShaderWorkers = 2

	l, err := NewLoop(cfg)
	if err != nil {
		t.Fatalf("NewLoop: %v", err)
	}
	l.SetViewport(800, 600, 800, 600)
	return l
}

func TestNewLoopRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*LoopConfig)
	}{
		{"mesh too coarse", func(c *LoopConfig) { c.WidthSegments = 2 }},
		{"mesh too fine", func(c *LoopConfig) { c.WidthSegments, c.HeightSegments = 400, 400 }},
		{"zero color blend", func(c *LoopConfig) { c.Animator.ColorBlend = 0 }},
		{"no ripple duration", func(c *LoopConfig) { c.Animator.RippleDuration = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultLoopConfig()
			tt.modify(&cfg)
			if _, err := NewLoop(cfg); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoopFrame(t *testing.T) {
	l := newTestLoop(t)

	f := l.Tick(time.Millisecond * 16)

	if len(f.Vertices) != l.Mesh().VertexCount() {
		t.Errorf("%d vertices, want %d", len(f.Vertices), l.Mesh().VertexCount())
	}
	if len(f.Indices) == 0 || len(f.Indices)%3 != 0 {
		t.Errorf("bad index count %d", len(f.Indices))
	}
	if f.Focus != FocusIdle || f.Bloom.Intensity != BloomIntensityIdle {
		t.Errorf("fresh loop frame = focus %v bloom %v, want idle", f.Focus, f.Bloom.Intensity)
	}
	if f.Glow != DefaultPalette[FocusIdle].Glow {
		t.Errorf("glow = %v, want idle glow", f.Glow)
	}
	if f.Uniforms.Ripple != 0 {
		t.Errorf("ripple without a click: %v", f.Uniforms.Ripple)
	}
}

func TestLoopClickRipple(t *testing.T) {
	l := newTestLoop(t)

	if err := l.OnClick(0); err != nil {
		t.Fatal(err)
	}

	if f := l.Tick(0); f.Uniforms.Ripple != 0 {
		t.Errorf("ripple at the click = %v, want 0", f.Uniforms.Ripple)
	}

	f := l.Tick(time.Millisecond * 400)
	if math.Abs(f.Uniforms.Ripple-0.66) > 0.005 {
		t.Errorf("ripple half way = %v, want about 0.66", f.Uniforms.Ripple)
	}

	if f := l.Tick(time.Millisecond * 800); f.Uniforms.Ripple != 0 {
		t.Errorf("ripple after it finished = %v, want 0", f.Uniforms.Ripple)
	}

	// a second click at the same instant still counts
	l.OnClick(0)
	l.Tick(time.Millisecond * 900)
	if f := l.Tick(time.Millisecond * 1300); f.Uniforms.Ripple <= 0 {
		t.Errorf("repeated click did not start a ripple")
	}
}

func TestLoopFocus(t *testing.T) {
	l := newTestLoop(t)

	changed, err := l.SetFocus(FocusWork)
	if err != nil || !changed {
		t.Fatalf("SetFocus(work) = %v, %v", changed, err)
	}

	f := l.Tick(time.Millisecond * 16)
	if f.Focus != FocusWork {
		t.Errorf("frame focus = %v, want work", f.Focus)
	}
	if f.Bloom.Intensity != BloomIntensityFocused {
		t.Errorf("bloom = %v, want %v", f.Bloom.Intensity, BloomIntensityFocused)
	}
	if f.Glow != DefaultPalette[FocusWork].Glow {
		t.Errorf("glow = %v, want work glow", f.Glow)
	}

	// colors move toward the work palette a little each tick
	start := f.Uniforms.LightAColor.Distance(DefaultPalette[FocusWork].LightA)
	for i := 2; i <= 30; i++ {
		f = l.Tick(time.Millisecond * 16 * time.Duration(i))
	}
	if d := f.Uniforms.LightAColor.Distance(DefaultPalette[FocusWork].LightA); d >= start {
		t.Errorf("light A did not approach work color: %v -> %v", start, d)
	}

	changed, _ = l.SetFocus(FocusWork)
	if changed {
		t.Error("same focus reported a change")
	}

	l.SetFocus(FocusIdle)
	if f := l.Tick(time.Second); f.Bloom.Intensity != BloomIntensityIdle {
		t.Errorf("bloom back at idle = %v", f.Bloom.Intensity)
	}
}

func TestLoopPointer(t *testing.T) {
	l := newTestLoop(t)

	if err := l.OnPointerMove(800, 0, 0); err != nil {
		t.Fatal(err)
	}

	f := l.Tick(time.Millisecond * 16)
	if f.Pointer.X != 100 || f.Pointer.Y != 0 {
		t.Errorf("frame pointer = %+v, want (100, 0)", f.Pointer)
	}

	st := l.AnimatorState()
	if st.LastPointer.X <= 50 {
		t.Errorf("animator did not see the pointer move right: %v", st.LastPointer)
	}
}

func TestLoopStop(t *testing.T) {
	l := newTestLoop(t)

	before := l.Tick(time.Millisecond * 16)
	l.Stop()
	l.Stop()

	if !l.Stopped() {
		t.Fatal("loop not stopped")
	}

	if err := l.OnClick(time.Second); !errors.Is(err, ErrLoopStopped) {
		t.Errorf("OnClick after stop = %v", err)
	}
	if err := l.OnPointerMove(1, 1, time.Second); !errors.Is(err, ErrLoopStopped) {
		t.Errorf("OnPointerMove after stop = %v", err)
	}
	if _, err := l.SetFocus(FocusEmail); !errors.Is(err, ErrLoopStopped) {
		t.Errorf("SetFocus after stop = %v", err)
	}

	after := l.Tick(time.Second)
	if after.Now != before.Now || after.Uniforms != before.Uniforms {
		t.Errorf("tick after stop advanced the frame")
	}
	if l.LastFrame().Now != before.Now {
		t.Errorf("LastFrame changed after stop")
	}
}

func TestLoopConcurrentEvents(t *testing.T) {
	l := newTestLoop(t)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range 200 {
			at := time.Duration(i) * time.Millisecond * 16
			l.OnPointerMove(float64(i*4%800), float64(i*3%600), at)
			if i%20 == 0 {
				l.OnClick(at)
			}
			l.SetFocus(FocusState(i % int(FocusStateSize)))
		}
	}()

	for i := 1; i <= 100; i++ {
		f := l.Tick(time.Duration(i) * time.Millisecond * 16)
		if f.Uniforms.Ripple < 0 || f.Uniforms.Ripple >= 1 {
			t.Fatalf("ripple out of range: %v", f.Uniforms.Ripple)
		}
	}

	wg.Wait()
}
