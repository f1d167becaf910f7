package main

import (
	"image/color"

	eb "github.com/hajimehoshi/ebiten/v2"
	ebv "github.com/hajimehoshi/ebiten/v2/vector"

	"shaderorb/orb"
)

func FillRect(
	dst *eb.Image,
	rect FRectangle,
	clr color.Color,
) {
	ebv.DrawFilledRect(
		dst,
		f32(rect.Min.X), f32(rect.Min.Y), f32(rect.Dx()), f32(rect.Dy()),
		clr,
		TheGraphicsContext.AntiAlias,
	)
}

func StrokeRect(
	dst *eb.Image,
	rect FRectangle,
	strokeWidth float64,
	clr color.Color,
) {
	ebv.StrokeRect(
		dst,
		f32(rect.Min.X), f32(rect.Min.Y), f32(rect.Dx()), f32(rect.Dy()),
		f32(strokeWidth),
		clr,
		TheGraphicsContext.AntiAlias,
	)
}

func StrokeCircle(
	dst *eb.Image,
	x, y, r float64,
	strokeWidth float64,
	clr color.Color,
) {
	ebv.StrokeCircle(
		dst, f32(x), f32(y), f32(r), f32(strokeWidth), clr, TheGraphicsContext.AntiAlias)
}

// OrbDrawer turns a shaded orb frame into vertex colored triangles.
type OrbDrawer struct {
	vertices []eb.Vertex
}

func (od *OrbDrawer) Draw(dst *eb.Image, frame *orb.Frame) {
	if len(frame.Indices) == 0 {
		return
	}

	if cap(od.vertices) < len(frame.Vertices) {
		od.vertices = make([]eb.Vertex, len(frame.Vertices))
	}
	od.vertices = od.vertices[:len(frame.Vertices)]

	// WhiteImage is a 1x1 sub image at (1, 1)
	for i, v := range frame.Vertices {
		od.vertices[i] = eb.Vertex{
			DstX:   f32(v.ScreenX),
			DstY:   f32(v.ScreenY),
			SrcX:   1.5,
			SrcY:   1.5,
			ColorR: f32(v.Color.R),
			ColorG: f32(v.Color.G),
			ColorB: f32(v.Color.B),
			ColorA: 1,
		}
	}

	DrawTriangles(dst, od.vertices, frame.Indices, WhiteImage, nil)
}

// DrawGlowRing draws the proximity ring around the orb.
// It is invisible when the pointer is far away.
func DrawGlowRing(dst *eb.Image, center FPoint, radius float64, frame *orb.Frame) {
	alpha := orb.Clamp(frame.Pointer.Proximity, 0, 1)
	if alpha <= 0 {
		return
	}

	glow := frame.Glow.NRGBA()

	const rings = 4
	for i := 0; i < rings; i++ {
		t := float64(i) / rings
		StrokeCircle(
			dst,
			center.X, center.Y,
			radius*(1.04+t*0.08),
			radius*0.02*(1+t),
			ColorFade(glow, alpha*(1-t)*0.6),
		)
	}
}
