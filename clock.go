package main

import (
	"time"

	eb "github.com/hajimehoshi/ebiten/v2"

	"shaderorb/orb"
)

// the loop clock advances by a fixed step every Update,
// so animation speed follows the tick rate and not the wall clock
var globalTimer time.Duration

func UpdateDelta() time.Duration {
	tps := eb.TPS()
	if tps <= 0 {
		tps = eb.DefaultTPS
	}
	return time.Second / time.Duration(tps)
}

func UpdateGlobalTimer() {
	globalTimer += UpdateDelta()
}

func GlobalTimerNow() time.Duration {
	return globalTimer
}

type Timer struct {
	Duration time.Duration
	Current  time.Duration
}

func (t *Timer) TickUp() {
	t.Current += UpdateDelta()
}

func (t *Timer) TickDown() {
	t.Current -= UpdateDelta()
}

func (t *Timer) ClampCurrent() {
	t.Current = orb.Clamp(t.Current, 0, t.Duration)
}

func (t *Timer) Normalize() float64 {
	if t.Duration <= 0 {
		return 1
	}
	return orb.Clamp(float64(t.Current)/float64(t.Duration), 0, 1)
}

// Timer for profiling.
// Usage :
//
//	{
//		timer := NewProfTimer("shade")
//		defer timer.Report()
//	}
type ProfTimer struct {
	Start time.Time
	Name  string
}

func NewProfTimer(name string) ProfTimer {
	return ProfTimer{
		Start: time.Now(),
		Name:  name,
	}
}

func (p ProfTimer) Elapsed() time.Duration {
	return time.Since(p.Start)
}

func (p ProfTimer) Report() {
	DebugPrint(p.Name, p.Elapsed())
}
