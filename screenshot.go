package main

import (
	"bytes"
	"image"
	"image/png"
	"time"

	eb "github.com/hajimehoshi/ebiten/v2"

	"shaderorb/misc"
)

func ImageImageFromEbImage(img *eb.Image) *image.RGBA {
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	img.ReadPixels(rgba.Pix)
	return rgba
}

// TakeScreenshot saves img as a png in dir and returns the file path.
func TakeScreenshot(img *eb.Image, dir string) (string, error) {
	path, err := misc.TimestampedPath(dir, "orb", "png", time.Now())
	if err != nil {
		return "", err
	}

	buffer := &bytes.Buffer{}
	if err := png.Encode(buffer, ImageImageFromEbImage(img)); err != nil {
		return "", err
	}

	if err := misc.WriteFileAtomic(path, buffer.Bytes(), 0644); err != nil {
		return "", err
	}

	return path, nil
}
