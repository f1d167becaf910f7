package main

import (
	"errors"
	"flag"
	"os"

	_ "github.com/silbinarywolf/preferdiscretegpu"

	eb "github.com/hajimehoshi/ebiten/v2"

	"shaderorb/config"
	"shaderorb/misc"
)

var (
	ErrLogger  = misc.ErrLogger
	WarnLogger = misc.WarnLogger
	InfoLogger = misc.InfoLogger
)

var FlagHotReload bool

func run() error {
	cfg, err := config.Load(os.Args[1:], ".env")
	if err != nil {
		return err
	}

	FlagHotReload = cfg.HotReload

	if cfg.PProf {
		StartPprof()
	}

	InitClipboardManager()

	LoadAssets()

	if err := InitSound(cfg.Volume); err != nil {
		WarnLogger.Print(err)
	} else {
		LoadClickSound(cfg.ClickSound)
	}

	palette, err := LoadPalette(cfg.PalettePath)
	if err != nil {
		WarnLogger.Printf("%v, using the built-in palette", err)
	}

	app, err := NewApp(cfg, palette)
	if err != nil {
		return err
	}
	defer app.Close()

	eb.SetVsyncEnabled(cfg.VSync)
	eb.SetRunnableOnUnfocused(true)
	eb.SetWindowSize(cfg.Width, cfg.Height)
	eb.SetWindowResizingMode(eb.WindowResizingModeEnabled)
	eb.SetWindowTitle("orb")

	// returning eb.Termination from Update makes RunGame return nil
	return eb.RunGame(app)
}

func main() {
	if err := run(); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		ErrLogger.Fatal(err)
	}
}
