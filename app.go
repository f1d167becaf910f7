package main

import (
	"fmt"
	"image/color"

	eb "github.com/hajimehoshi/ebiten/v2"

	"shaderorb/config"
	"shaderorb/misc"
	"shaderorb/orb"
)

var backgroundColor = MustParseColor("#0d1117")

type App struct {
	Config config.Config

	Loop       *orb.Loop
	Compositor *Compositor
	OrbDrawer  OrbDrawer
	Labels     *LabelRow
	Pointer    PointerTracker
	ShadeStats *misc.FrameStats

	ShowDebugConsole bool

	// focus chosen with a number key or a label click,
	// hovering a label overrides it until the cursor leaves
	pinnedFocus orb.FocusState

	frame orb.Frame

	screenW, screenH int

	orbCenter FPoint
	orbRadius float64

	wantScreenshot bool
	closed         bool
}

func NewApp(cfg config.Config, palette orb.Palette) (*App, error) {
	loopCfg := cfg.LoopConfig()
	loopCfg.Palette = palette

	loop, err := orb.NewLoop(loopCfg)
	if err != nil {
		return nil, fmt.Errorf("couldn't create orb: %w", err)
	}

	a := &App{
		Config:      cfg,
		Loop:        loop,
		Compositor:  NewCompositor(cfg.Bloom),
		Labels:      NewLabelRow(),
		ShadeStats:  misc.NewFrameStats(60),
		pinnedFocus: cfg.Focus,
		screenW:     cfg.Width,
		screenH:     cfg.Height,
	}

	for _, l := range a.Labels.Labels {
		l.OnPress = func() {
			// clicking the pinned label again unpins it
			if a.pinnedFocus == l.Focus {
				a.pinnedFocus = orb.FocusIdle
			} else {
				a.pinnedFocus = l.Focus
			}
		}
	}

	if _, err := a.Loop.SetFocus(a.pinnedFocus); err != nil {
		return nil, err
	}
	a.frame = a.Loop.LastFrame()

	return a, nil
}

func (a *App) layoutOrb() {
	w, h := f64(a.screenW), f64(a.screenH)

	a.Loop.SetViewport(w, h, w, h)

	a.orbCenter = FPt(w*0.5, h*0.5)
	a.orbRadius = a.Config.LoopConfig().Camera.SphereScreenRadius(1, h)

	a.Loop.Tracker.SetTargetRect(CenterFRectangle(
		FRectWH(a.orbRadius*2, a.orbRadius*2), a.orbCenter.X, a.orbCenter.Y,
	))

	a.Labels.Layout(w, h)
}

func (a *App) Update() error {
	ClearDebugMsgs()
	defer NewProfTimer("update").Report()

	UpdateGlobalTimer()
	UpdateSound()

	now := GlobalTimerNow()

	fpsStr := fmt.Sprintf("%.2f", eb.ActualFPS())
	tpsStr := fmt.Sprintf("%.2f", eb.ActualTPS())

	DebugPrint("FPS", fpsStr)
	DebugPrint("TPS", tpsStr)

	if IsKeyJustPressed(QuitKey) {
		return eb.Termination
	}

	// ==========================
	// hotkeys
	// ==========================
	if IsKeyJustPressed(ShowDebugConsoleKey) {
		a.ShowDebugConsole = !a.ShowDebugConsole
	}

	if IsKeyJustPressed(ReloadAssetsKey) {
		LoadAssets()
		a.reloadPalette()
	}

	if IsKeyJustPressed(SaveAssetsKey) {
		if err := SavePalette(a.Config.PalettePath, a.Loop.Selector.Palette()); err != nil {
			ErrLogger.Printf("failed to save palette : %v", err)
		} else {
			InfoLogger.Printf("saved palette to %s", a.Config.PalettePath)
		}
	}

	if IsKeyJustPressed(CopyUniformsKey) {
		if ClipboardWriteText(a.frame.Uniforms.String()) {
			InfoLogger.Print("copied uniforms to clipboard")
		} else {
			WarnLogger.Print("clipboard is not available")
		}
	}

	if IsKeyJustPressed(PastePaletteKey) {
		a.pastePalette()
	}

	if IsKeyJustPressed(ToggleBloomKey) {
		a.Compositor.Enabled = !a.Compositor.Enabled
	}

	if IsKeyJustPressed(ScreenshotKey) {
		a.wantScreenshot = true
	}

	// ==========================
	// input
	// ==========================
	a.layoutOrb()

	cursor := CursorFPt()
	a.Labels.Update(cursor)

	if state, ok := JustPressedFocusKey(); ok {
		a.pinnedFocus = state
	}

	focus := a.pinnedFocus
	if hovered, ok := a.Labels.Hovered(); ok {
		focus = hovered
	}

	if changed, err := a.Loop.SetFocus(focus); err != nil {
		return err
	} else if changed {
		PlaySoundBytes(SoundClick, 1)
	}

	pos, moved, pressed := a.Pointer.Update()
	if moved {
		if err := a.Loop.OnPointerMove(pos.X, pos.Y, now); err != nil {
			return err
		}
	}
	if pressed && !pos.In(a.Labels.Bounds()) {
		if err := a.Loop.OnClick(now); err != nil {
			return err
		}
	}

	// ==========================
	// tick
	// ==========================
	shadeTimer := NewProfTimer("shade")
	a.frame = a.Loop.Tick(now)
	a.ShadeStats.Add(shadeTimer.Elapsed())
	DebugPrintf("shade", "avg %v max %v", a.ShadeStats.Average(), a.ShadeStats.Max())

	DebugPrint("focus", a.frame.Focus)
	DebugPrintf("pointer", "%.1f, %.1f", a.frame.Pointer.X, a.frame.Pointer.Y)
	DebugPrintf("proximity", "%.2f", a.frame.Pointer.Proximity)
	DebugPrintf("velocity", "%.2f", a.frame.Pointer.Velocity)
	DebugPrintf("ripple", "%.2f", a.frame.Uniforms.Ripple)
	DebugPrint("triangles", len(a.frame.Indices)/3)
	DebugPrint("bloom", a.Compositor.Enabled)

	return nil
}

func (a *App) reloadPalette() {
	palette, err := LoadPalette(a.Config.PalettePath)
	if err != nil {
		ErrLogger.Printf("failed to load palette : %v", err)
		return
	}
	a.Loop.Selector.SetPalette(palette)
	InfoLogger.Printf("reloaded palette from %s", a.Config.PalettePath)
}

func (a *App) pastePalette() {
	str := ClipboardReadText()
	if str == "" {
		WarnLogger.Print("clipboard is empty")
		return
	}

	palette, err := orb.PaletteFromJson(a.Loop.Selector.Palette(), []byte(str))
	if err != nil {
		ErrLogger.Printf("failed to paste palette : %v", err)
		return
	}
	a.Loop.Selector.SetPalette(palette)
	InfoLogger.Print("pasted palette from clipboard")
}

func (a *App) drawScene(dst *eb.Image) {
	dst.Fill(backgroundColor)

	scene := a.Compositor.BeginScene(a.screenW, a.screenH)
	a.OrbDrawer.Draw(scene, &a.frame)
	a.Compositor.Composite(dst, a.frame.Bloom, a.orbRadius)

	DrawGlowRing(dst, a.orbCenter, a.orbRadius, &a.frame)

	palette := a.Loop.Selector.Palette()
	a.Labels.Draw(dst, &palette)
}

func (a *App) Draw(dst *eb.Image) {
	a.drawScene(dst)

	// the screen can't be read back, so the shot gets its own render
	if a.wantScreenshot {
		a.wantScreenshot = false

		shot := eb.NewImage(a.screenW, a.screenH)
		a.drawScene(shot)

		if path, err := TakeScreenshot(shot, "."); err != nil {
			ErrLogger.Printf("failed to take screenshot : %v", err)
		} else {
			InfoLogger.Printf("saved screenshot to %s", path)
		}

		shot.Deallocate()
	}

	if a.ShowDebugConsole {
		DrawDebugMsgs(dst)
		StrokeCircle(dst, a.orbCenter.X, a.orbCenter.Y, a.orbRadius, 1, color.NRGBA{255, 0, 0, 255})
	}
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.screenW = max(outsideWidth, 1)
	a.screenH = max(outsideHeight, 1)

	return a.screenW, a.screenH
}

// Close stops the orb and releases GPU and audio resources.
// It is safe to call more than once.
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true

	a.Loop.Stop()
	a.Compositor.Deallocate()
	ReleaseDebugMsgs()
	CloseSound()
}
