package main

import (
	eb "github.com/hajimehoshi/ebiten/v2"
	ebi "github.com/hajimehoshi/ebiten/v2/inpututil"

	"shaderorb/orb"
)

func CursorFPt() FPoint {
	mx, my := eb.CursorPosition()
	return FPt(f64(mx), f64(my))
}

func IsMouseButtonPressed(button eb.MouseButton) bool {
	return eb.IsMouseButtonPressed(button)
}

func IsMouseButtonJustPressed(button eb.MouseButton) bool {
	return ebi.IsMouseButtonJustPressed(button)
}

func IsMouseButtonJustReleased(button eb.MouseButton) bool {
	return ebi.IsMouseButtonJustReleased(button)
}

func IsKeyJustPressed(key eb.Key) bool {
	return ebi.IsKeyJustPressed(key)
}

func IsAnyKeyJustPressed(keys ...eb.Key) bool {
	for _, key := range keys {
		if ebi.IsKeyJustPressed(key) {
			return true
		}
	}
	return false
}

// JustPressedFocusKey returns the focus state whose key went down this tick.
func JustPressedFocusKey() (orb.FocusState, bool) {
	for state, keys := range FocusKeys {
		if IsAnyKeyJustPressed(keys...) {
			return orb.FocusState(state), true
		}
	}
	return orb.FocusIdle, false
}

// PointerTracker reports cursor moves and primary button presses.
// Touches count as a pointer too.
type PointerTracker struct {
	hasPos bool
	pos    FPoint

	touchBuf []eb.TouchID
}

// Update returns the pointer position, whether it moved since the last
// call and whether the primary button or a touch just went down.
func (pt *PointerTracker) Update() (pos FPoint, moved bool, pressed bool) {
	pos = CursorFPt()
	pressed = IsMouseButtonJustPressed(eb.MouseButtonLeft)

	pt.touchBuf = ebi.AppendJustPressedTouchIDs(pt.touchBuf[:0])
	if len(pt.touchBuf) > 0 {
		x, y := eb.TouchPosition(pt.touchBuf[0])
		pos = FPt(f64(x), f64(y))
		pressed = true
	}

	moved = !pt.hasPos || pos != pt.pos
	pt.hasPos = true
	pt.pos = pos

	return pos, moved, pressed
}
