package main

import (
	"image/color"
	"time"

	eb "github.com/hajimehoshi/ebiten/v2"
	ebt "github.com/hajimehoshi/ebiten/v2/text/v2"

	"shaderorb/orb"
)

type ButtonState int

const (
	ButtonStateNormal ButtonState = iota
	ButtonStateHover
	ButtonStateDown
)

type BaseButton struct {
	Rect FRectangle

	Disabled bool

	OnPress   func()
	OnRelease func()

	State ButtonState

	readyToCallOnRelease bool
}

func (b *BaseButton) Update(cursor FPoint) {
	if b.Disabled {
		b.State = ButtonStateNormal
		b.readyToCallOnRelease = false
		return
	}

	inRect := cursor.In(b.Rect)

	if inRect { // if mouse in rect
		if IsMouseButtonJustPressed(eb.MouseButtonLeft) {
			b.State = ButtonStateDown
			b.readyToCallOnRelease = true
			if b.OnPress != nil {
				b.OnPress()
			}
		}

		if b.readyToCallOnRelease && IsMouseButtonJustReleased(eb.MouseButtonLeft) {
			if b.OnRelease != nil {
				b.OnRelease()
			}
			b.readyToCallOnRelease = false
		}
	}

	if inRect {
		if b.State != ButtonStateDown || !IsMouseButtonPressed(eb.MouseButtonLeft) {
			b.State = ButtonStateHover
		}
	} else {
		b.State = ButtonStateNormal
		b.readyToCallOnRelease = false
	}
}

// LabelButton is one entry of the label row under the orb.
// Hovering or clicking it focuses the orb on its state.
type LabelButton struct {
	BaseButton

	Focus orb.FocusState
	Text  string

	// fades the highlight in and out
	highlight Timer
}

var (
	labelBgColor     = MustParseColor("#1b1f24")
	labelBorderColor = MustParseColor("#2f3640")
	labelTextColor   = MustParseColor("#c9d1d9")
)

func NewLabelButton(state orb.FocusState, text string) *LabelButton {
	b := &LabelButton{
		Focus: state,
		Text:  text,
	}
	b.highlight.Duration = time.Millisecond * 150
	return b
}

func (b *LabelButton) Update(cursor FPoint) {
	b.BaseButton.Update(cursor)

	if b.State != ButtonStateNormal {
		b.highlight.TickUp()
	} else {
		b.highlight.TickDown()
	}
	b.highlight.ClampCurrent()
}

func (b *LabelButton) Draw(dst *eb.Image, palette *orb.Palette) {
	glow := palette.Lookup(b.Focus).Glow.NRGBA()
	t := b.highlight.Normalize()

	FillRect(dst, b.Rect, LerpColorRGBA(labelBgColor, ColorFade(glow, 0.35), t))
	StrokeRect(dst, b.Rect, 1.5, LerpColorRGBA(labelBorderColor, glow, t))

	if len(b.Text) > 0 {
		lineSpacing := FontLineSpacing(ClearFace)
		textW, textH := ebt.Measure(b.Text, ClearFace, lineSpacing)

		scale := min(b.Rect.Dx()*0.8/textW, b.Rect.Dy()*0.6/textH)

		op := &DrawTextOptions{}
		op.ColorScale.ScaleWithColor(LerpColorRGBA(labelTextColor, color.NRGBA{255, 255, 255, 255}, t))
		op.LayoutOptions.LineSpacing = lineSpacing

		op.GeoM.Translate(-textW*0.5, -textH*0.5)
		op.GeoM.Scale(scale, scale)
		center := FRectangleCenter(b.Rect)
		op.GeoM.Translate(center.X, center.Y)

		DrawText(dst, b.Text, ClearFace, op)
	}
}

// LabelRow lays the labels out in a row along the bottom of the window.
type LabelRow struct {
	Labels []*LabelButton
}

var labelTexts = [orb.FocusStateSize]string{
	orb.FocusSocialX:      "1 X",
	orb.FocusSocialGithub: "2 GitHub",
	orb.FocusEmail:        "3 Email",
	orb.FocusWork:         "4 Work",
	orb.FocusLocation:     "5 Location",
}

func NewLabelRow() *LabelRow {
	row := new(LabelRow)
	for s := orb.FocusState(0); s < orb.FocusStateSize; s++ {
		if s == orb.FocusIdle {
			continue
		}
		row.Labels = append(row.Labels, NewLabelButton(s, labelTexts[s]))
	}
	return row
}

func (row *LabelRow) Layout(screenW, screenH float64) {
	const margin = 12
	const gap = 8

	n := f64(len(row.Labels))
	if n == 0 {
		return
	}

	height := orb.Clamp(screenH*0.07, 24, 44)
	width := orb.Clamp((screenW-margin*2-gap*(n-1))/n, 40, 160)
	total := width*n + gap*(n-1)

	x := (screenW - total) * 0.5
	y := screenH - margin - height

	for _, l := range row.Labels {
		l.Rect = FRect(x, y, x+width, y+height)
		x += width + gap
	}
}

// Bounds is the rectangle covering every label.
func (row *LabelRow) Bounds() FRectangle {
	if len(row.Labels) == 0 {
		return FRectangle{}
	}
	r := row.Labels[0].Rect
	for _, l := range row.Labels[1:] {
		r.Min.X = min(r.Min.X, l.Rect.Min.X)
		r.Min.Y = min(r.Min.Y, l.Rect.Min.Y)
		r.Max.X = max(r.Max.X, l.Rect.Max.X)
		r.Max.Y = max(r.Max.Y, l.Rect.Max.Y)
	}
	return r
}

func (row *LabelRow) Update(cursor FPoint) {
	for _, l := range row.Labels {
		l.Update(cursor)
	}
}

// Hovered returns the focus state of the label under the cursor.
func (row *LabelRow) Hovered() (orb.FocusState, bool) {
	for _, l := range row.Labels {
		if l.State != ButtonStateNormal {
			return l.Focus, true
		}
	}
	return orb.FocusIdle, false
}

func (row *LabelRow) Draw(dst *eb.Image, palette *orb.Palette) {
	for _, l := range row.Labels {
		l.Draw(dst, palette)
	}
}
