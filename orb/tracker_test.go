package orb

import (
	"math"
	"sync"
	"testing"
	"time"
)

func newTestTracker() *Tracker {
	tr := NewTracker(DefaultTrackerConfig(), 1)
	tr.SetViewport(800, 600)
	return tr
}

func TestTrackerStartsCentered(t *testing.T) {
	tr := NewTracker(DefaultTrackerConfig(), 1)

	s := tr.Sample()
	if s.X != 50 || s.Y != 50 || s.Velocity != 0 || s.Proximity != 0 {
		t.Errorf("initial sample = %+v, want centered and still", s)
	}
	if p := tr.Step(); p != FPt(50, 50) {
		t.Errorf("initial step = %v, want (50, 50)", p)
	}
}

func TestTrackerNormalizesToPercent(t *testing.T) {
	tests := []struct {
		name  string
		x, y  float64
		wantX float64
		wantY float64
	}{
		{"center", 400, 300, 50, 50},
		{"upper middle", 400, 150, 50, 25},
		{"top left", 0, 0, 0, 0},
		{"bottom right", 800, 600, 100, 100},
		{"outside left", -200, 300, 0, 50},
		{"outside below", 400, 6000, 50, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTestTracker()
			tr.OnPointerMove(tt.x, tt.y, 0)

			s := tr.Sample()
			if math.Abs(s.X-tt.wantX) > 1e-9 || math.Abs(s.Y-tt.wantY) > 1e-9 {
				t.Errorf("sample = (%v, %v), want (%v, %v)", s.X, s.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestTrackerIgnoresBadInput(t *testing.T) {
	t.Run("no viewport", func(t *testing.T) {
		tr := NewTracker(DefaultTrackerConfig(), 1)
		tr.OnPointerMove(10, 10, 0)
		if s := tr.Sample(); s.X != 50 || s.Y != 50 {
			t.Errorf("sample = %+v, want unchanged", s)
		}
	})

	t.Run("zero viewport", func(t *testing.T) {
		tr := NewTracker(DefaultTrackerConfig(), 1)
		tr.SetViewport(0, 600)
		tr.OnPointerMove(10, 10, 0)
		if s := tr.Sample(); s.X != 50 || s.Y != 50 {
			t.Errorf("sample = %+v, want unchanged", s)
		}
	})

	t.Run("non finite", func(t *testing.T) {
		tr := newTestTracker()
		tr.OnPointerMove(math.NaN(), 10, 0)
		tr.OnPointerMove(10, math.Inf(1), time.Second)
		if s := tr.Sample(); s.X != 50 || s.Y != 50 {
			t.Errorf("sample = %+v, want unchanged", s)
		}
	})
}

func TestTrackerThrottlesMoves(t *testing.T) {
	tr := newTestTracker()

	tr.OnPointerMove(400, 300, 0)
	tr.OnPointerMove(0, 0, time.Millisecond*10)

	if s := tr.Sample(); s.X != 50 || s.Y != 50 {
		t.Errorf("move inside the sample interval was not dropped: %+v", s)
	}

	tr.OnPointerMove(0, 0, time.Millisecond*16)
	if s := tr.Sample(); s.X != 0 || s.Y != 0 {
		t.Errorf("move after the sample interval was dropped: %+v", s)
	}
}

func TestTrackerProximity(t *testing.T) {
	tr := newTestTracker()
	tr.SetTargetRect(FRect(0, 0, 200, 200))

	tests := []struct {
		x, y float64
		want float64
	}{
		{100, 100, 1},
		{350, 100, 0.5},
		{100, 475, 0.25},
		{700, 100, 0},
		{800, 600, 0},
	}

	now := time.Duration(0)
	for _, tt := range tests {
		now += time.Millisecond * 20
		tr.OnPointerMove(tt.x, tt.y, now)

		if got := tr.Sample().Proximity; math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("proximity at (%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestTrackerVelocityBounded(t *testing.T) {
	tr := newTestTracker()

	now := time.Duration(0)
	prev := 0.0

	// big jumps every 20ms drive velocity toward 1
	for i := range 40 {
		now += time.Millisecond * 20
		x := 0.0
		if i%2 == 0 {
			x = 800
		}
		tr.OnPointerMove(x, 300, now)

		v := tr.Sample().Velocity
		if v < 0 || v > 1 {
			t.Fatalf("velocity %v outside [0, 1]", v)
		}
		if v < prev {
			t.Fatalf("velocity fell while moving fast: %v -> %v", prev, v)
		}
		prev = v
	}
	if prev < 0.99 {
		t.Errorf("velocity after fast movement = %v, want close to 1", prev)
	}

	// holding still lets it settle
	for range 40 {
		now += time.Millisecond * 20
		tr.OnPointerMove(0, 300, now)
	}
	if v := tr.Sample().Velocity; v > 0.01 {
		t.Errorf("velocity after holding still = %v, want close to 0", v)
	}
}

func TestTrackerStepEasesTowardTarget(t *testing.T) {
	tr := newTestTracker()

	// at t=0 drift is (0, +10), so the target is (50, 35)
	tr.OnPointerMove(400, 150, 0)

	p := tr.Step()
	if math.Abs(p.X-50) > 1e-9 || math.Abs(p.Y-48.8) > 1e-9 {
		t.Errorf("first step = %v, want (50, 48.8)", p)
	}

	prevDist := math.Abs(p.Y - 35)
	for range 200 {
		p = tr.Step()
		d := math.Abs(p.Y - 35)
		if d > prevDist {
			t.Fatalf("step moved away from target: %v", p)
		}
		prevDist = d
	}

	if prevDist > 1e-3 {
		t.Errorf("displayed pointer did not converge, %v away", prevDist)
	}
	if tr.Displayed() != p {
		t.Errorf("Displayed() = %v, want last step %v", tr.Displayed(), p)
	}
}

func TestTrackerDisplayedStaysInRange(t *testing.T) {
	tr := newTestTracker()

	now := time.Duration(0)
	for i := range 500 {
		now += time.Millisecond * 17
		x, y := -1000.0, 5000.0
		if i%3 == 0 {
			x, y = 5000, -1000
		}
		tr.OnPointerMove(x, y, now)

		p := tr.Step()
		if p.X < 0 || p.X > 100 || p.Y < 0 || p.Y > 100 {
			t.Fatalf("displayed pointer %v outside [0, 100]", p)
		}
	}
}

func TestTrackerConcurrentUse(t *testing.T) {
	tr := newTestTracker()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range 1000 {
			tr.OnPointerMove(float64(i%800), float64(i%600), time.Duration(i)*time.Millisecond*16)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 1000 {
			p := tr.Step()
			if p.X < 0 || p.X > 100 || p.Y < 0 || p.Y > 100 {
				t.Errorf("displayed pointer %v outside [0, 100]", p)
				return
			}
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range 100 {
			tr.SetViewport(float64(800+i), 600)
			tr.SetTargetRect(FRect(0, 0, 100, float64(100+i)))
		}
	}()

	wg.Wait()
}
