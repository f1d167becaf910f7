package main

import (
	eb "github.com/hajimehoshi/ebiten/v2"

	"shaderorb/orb"
)

// Compositor renders the orb into an offscreen scene and adds bloom on top
// when drawing it to the screen.
//
// Bloom runs at half resolution: bright pass, horizontal blur, vertical blur,
// then the result is added back with BlendLighter.
type Compositor struct {
	Enabled bool

	scene *eb.Image

	// half resolution buffers
	down    *eb.Image
	bright  *eb.Image
	blurred *eb.Image

	width, height int
}

func NewCompositor(enabled bool) *Compositor {
	return &Compositor{Enabled: enabled}
}

const maxBloomBlur = 48

func (c *Compositor) deallocateBuffers() {
	for _, img := range []*eb.Image{c.scene, c.down, c.bright, c.blurred} {
		if img != nil {
			img.Deallocate()
		}
	}
	c.scene, c.down, c.bright, c.blurred = nil, nil, nil, nil
}

func (c *Compositor) ensureBuffers(width, height int) {
	if c.scene != nil && c.width == width && c.height == height {
		return
	}

	c.deallocateBuffers()

	c.width, c.height = width, height

	halfW, halfH := max(width/2, 1), max(height/2, 1)

	c.scene = eb.NewImage(width, height)
	c.down = eb.NewImage(halfW, halfH)
	c.bright = eb.NewImage(halfW, halfH)
	c.blurred = eb.NewImage(halfW, halfH)
}

// BeginScene returns a cleared image of the given size to draw the orb into.
func (c *Compositor) BeginScene(width, height int) *eb.Image {
	c.ensureBuffers(max(width, 1), max(height, 1))
	c.scene.Clear()
	return c.scene
}

func (c *Compositor) BloomReady() bool {
	return c.Enabled && BrightPassShader != nil && BlurShader != nil && c.scene != nil
}

// Composite draws the scene and its bloom to dst.
// orbRadius is the orb's on screen radius in pixels, bloom.Radius is relative to it.
func (c *Compositor) Composite(dst *eb.Image, bloom orb.Bloom, orbRadius float64) {
	if c.scene == nil {
		return
	}

	DrawImage(dst, c.scene, nil)

	if !c.BloomReady() {
		return
	}

	halfW, halfH := c.down.Bounds().Dx(), c.down.Bounds().Dy()

	// =========================
	// downsample
	// =========================
	{
		c.down.Clear()

		op := &DrawImageOptions{}
		op.GeoM.Scale(f64(halfW)/f64(c.width), f64(halfH)/f64(c.height))

		BeginBlend(eb.BlendCopy)
		BeginFilter(eb.FilterLinear)
		DrawImage(c.down, c.scene, op)
		EndFilter()
		EndBlend()
	}

	// =========================
	// bright pass
	// =========================
	{
		c.bright.Clear()

		op := &DrawRectShaderOptions{}
		op.Images[0] = c.down
		op.Uniforms = map[string]any{
			"Threshold": f32(bloom.Threshold),
			"Smoothing": f32(bloom.Smoothing),
		}

		BeginBlend(eb.BlendCopy)
		DrawRectShader(c.bright, halfW, halfH, BrightPassShader, op)
		EndBlend()
	}

	// =========================
	// blur
	// =========================
	radius := orb.Clamp(bloom.Radius*orbRadius*0.5, 0, maxBloomBlur)

	blurPass := func(dst, src *eb.Image, dir [2]float32) {
		dst.Clear()

		op := &DrawRectShaderOptions{}
		op.Images[0] = src
		op.Uniforms = map[string]any{
			"Direction": dir[:],
			"Radius":    f32(radius),
		}

		BeginBlend(eb.BlendCopy)
		DrawRectShader(dst, halfW, halfH, BlurShader, op)
		EndBlend()
	}

	blurPass(c.blurred, c.bright, [2]float32{1, 0})
	blurPass(c.bright, c.blurred, [2]float32{0, 1})

	// =========================
	// add it back
	// =========================
	{
		op := &DrawImageOptions{}
		op.GeoM.Scale(f64(c.width)/f64(halfW), f64(c.height)/f64(halfH))
		op.ColorScale.ScaleAlpha(f32(bloom.Intensity))

		BeginBlend(eb.BlendLighter)
		DrawImage(dst, c.bright, op)
		EndBlend()
	}
}

func (c *Compositor) Deallocate() {
	c.deallocateBuffers()
}
