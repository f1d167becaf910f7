package main

import (
	"bytes"
	_ "embed"
	"image"
	"image/color"
	"os"
	"path/filepath"

	eb "github.com/hajimehoshi/ebiten/v2"
	ebt "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	//go:embed assets/bright_pass.go
	brightPassShaderSrc []byte
	//go:embed assets/blur.go
	blurShaderSrc []byte
)

var (
	BrightPassShader *eb.Shader
	BlurShader       *eb.Shader
)

var ClearFace *ebt.GoTextFace

var WhiteImage *eb.Image

func init() {
	whiteImg := image.NewNRGBA(RectWH(3, 3))
	for x := range 3 {
		for y := range 3 {
			whiteImg.Set(x, y, color.NRGBA{255, 255, 255, 255})
		}
	}
	wholeWhiteImage := eb.NewImageFromImage(whiteImg)
	WhiteImage = wholeWhiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*eb.Image)
}

// shaderSource returns the file under assets/ when hot reloading,
// the embedded copy otherwise or when the file can't be read.
func shaderSource(name string, embedded []byte) []byte {
	if !FlagHotReload {
		return embedded
	}

	src, err := os.ReadFile(filepath.Join("assets", name))
	if err != nil {
		WarnLogger.Printf("hot reload: %v, using the embedded %s", err, name)
		return embedded
	}
	return src
}

func loadShader(name string, embedded []byte) *eb.Shader {
	shader, err := eb.NewShader(shaderSource(name, embedded))
	if err != nil {
		WarnLogger.Printf("failed to compile %s : %v", name, err)
		return nil
	}
	return shader
}

// LoadAssets loads fonts and shaders. A shader that fails to compile
// is left nil and the features using it are skipped.
func LoadAssets() {
	// load fonts
	if ClearFace == nil {
		faceSource, err := ebt.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			ErrLogger.Fatalf("failed to load font : %v", err)
		}

		ClearFace = &ebt.GoTextFace{
			Source: faceSource,
			Size:   64,
		}
	}

	// load shaders
	{
		bright := loadShader("bright_pass.go", brightPassShaderSrc)
		blur := loadShader("blur.go", blurShaderSrc)

		if bright == nil || blur == nil {
			for _, s := range []*eb.Shader{bright, blur} {
				if s != nil {
					s.Deallocate()
				}
			}
			// keep whatever compiled last time
			if BrightPassShader == nil || BlurShader == nil {
				WarnLogger.Print("bloom is disabled")
			}
			return
		}

		if BrightPassShader != nil {
			BrightPassShader.Deallocate()
		}
		if BlurShader != nil {
			BlurShader.Deallocate()
		}

		BrightPassShader = bright
		BlurShader = blur
	}
}

func FontSize(face *ebt.GoTextFace) float64 {
	return face.Size
}

func FontLineSpacing(face *ebt.GoTextFace) float64 {
	m := face.Metrics()
	return m.HLineGap + m.HAscent + m.HDescent
}
