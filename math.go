package main

import (
	"image"

	"shaderorb/orb"
)

// the app works in the same float geometry as the orb package
type (
	FPoint     = orb.FPoint
	FRectangle = orb.FRectangle
)

var (
	FPt              = orb.FPt
	FRect            = orb.FRect
	FRectWH          = orb.FRectWH
	FRectangleCenter = orb.FRectangleCenter
	CenterFRectangle = orb.CenterFRectangle
)

func f64(n int) float64 {
	return float64(n)
}

func f32(n float64) float32 {
	return float32(n)
}

func RectWH(w, h int) image.Rectangle {
	return image.Rectangle{
		Min: image.Point{0, 0},
		Max: image.Point{w, h},
	}
}
