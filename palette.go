package main

import (
	"fmt"

	"shaderorb/misc"
	"shaderorb/orb"
)

// LoadPalette reads the palette json at path on top of the built-in palette.
// A missing file is not an error.
func LoadPalette(path string) (orb.Palette, error) {
	if path == "" {
		return orb.DefaultPalette, nil
	}

	paletteJson, err := misc.ReadOptionalFile(path)
	if err != nil {
		return orb.DefaultPalette, fmt.Errorf("read palette: %w", err)
	}
	if paletteJson == nil {
		return orb.DefaultPalette, nil
	}

	return orb.PaletteFromJson(orb.DefaultPalette, paletteJson)
}

func SavePalette(path string, palette orb.Palette) error {
	if path == "" {
		return fmt.Errorf("no palette path")
	}

	paletteJson, err := orb.PaletteToJson(palette)
	if err != nil {
		return err
	}

	if err := misc.WriteFileAtomic(path, paletteJson, 0644); err != nil {
		return fmt.Errorf("save palette: %w", err)
	}

	return nil
}
