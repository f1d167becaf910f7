package main

import (
	eb "github.com/hajimehoshi/ebiten/v2"

	"shaderorb/orb"
)

const (
	ReloadAssetsKey eb.Key = eb.KeyF5
	SaveAssetsKey   eb.Key = eb.KeyF10

	ShowDebugConsoleKey eb.Key = eb.KeyF1
	CopyUniformsKey     eb.Key = eb.KeyF2
	PastePaletteKey     eb.Key = eb.KeyF3
	ToggleBloomKey      eb.Key = eb.KeyB

	ScreenshotKey eb.Key = eb.KeyP

	QuitKey eb.Key = eb.KeyEscape
)

// FocusKeys pins a focus state, index is the state.
var FocusKeys = [orb.FocusStateSize][]eb.Key{
	orb.FocusIdle:         {eb.Key0, eb.KeyNumpad0},
	orb.FocusSocialX:      {eb.Key1, eb.KeyNumpad1},
	orb.FocusSocialGithub: {eb.Key2, eb.KeyNumpad2},
	orb.FocusEmail:        {eb.Key3, eb.KeyNumpad3},
	orb.FocusWork:         {eb.Key4, eb.KeyNumpad4},
	orb.FocusLocation:     {eb.Key5, eb.KeyNumpad5},
}
