package orb

import (
	"encoding/json"
	"fmt"
)

// FocusColors are the target colors of one focus state.
// LightA and LightB drive the shader, Glow tints the proximity ring.
type FocusColors struct {
	LightA RGB
	LightB RGB
	Glow   RGB
}

type Palette [FocusStateSize]FocusColors

var DefaultPalette Palette

func init() {
	set := func(s FocusState, a, b, glow string) {
		DefaultPalette[s] = FocusColors{
			LightA: MustParseRGB(a),
			LightB: MustParseRGB(b),
			Glow:   MustParseRGB(glow),
		}
	}

	// teal to blue
	set(FocusIdle, "#A5F3E8", "#7DD3FC", "#7BE0D4")

	set(FocusSocialX, "#1DA1F2", "#0088cc", "#1DA1F2")
	set(FocusSocialGithub, "#8b5cf6", "#6e5494", "#6e5494")
	set(FocusEmail, "#5DD5C3", "#3b9e8c", "#5DD5C3")
	set(FocusWork, "#ff7e5f", "#feb47b", "#FF9F66")
	set(FocusLocation, "#22c55e", "#16a34a", "#22c55e")
}

// Lookup never fails, unknown states get the idle colors.
func (p *Palette) Lookup(s FocusState) FocusColors {
	if !s.Valid() {
		s = FocusIdle
	}
	return p[s]
}

type paletteEntryJson struct {
	LightA string `json:"lightA"`
	LightB string `json:"lightB"`
	Glow   string `json:"glow"`
}

func PaletteToJson(p Palette) ([]byte, error) {
	tableMap := make(map[string]paletteEntryJson)

	for s := FocusState(0); s < FocusStateSize; s++ {
		tableMap[s.String()] = paletteEntryJson{
			LightA: p[s].LightA.Hex(),
			LightB: p[s].LightB.Hex(),
			Glow:   p[s].Glow.Hex(),
		}
	}

	jsonBytes, err := json.MarshalIndent(tableMap, "", "    ")
	if err != nil {
		return nil, err
	}

	return jsonBytes, nil
}

// PaletteFromJson starts from base and overrides whatever the json mentions.
// Unknown state names are ignored, empty colors keep the base color.
func PaletteFromJson(base Palette, paletteJson []byte) (Palette, error) {
	var tableMap map[string]paletteEntryJson

	if err := json.Unmarshal(paletteJson, &tableMap); err != nil {
		return base, fmt.Errorf("decode palette: %w", err)
	}

	p := base

	for k, v := range tableMap {
		s, err := ParseFocusState(k)
		if err != nil {
			continue
		}

		fields := []struct {
			str string
			dst *RGB
		}{
			{v.LightA, &p[s].LightA},
			{v.LightB, &p[s].LightB},
			{v.Glow, &p[s].Glow},
		}

		for _, f := range fields {
			if f.str == "" {
				continue
			}
			c, err := ParseRGB(f.str)
			if err != nil {
				return base, fmt.Errorf("palette entry %q: %w", k, err)
			}
			*f.dst = c
		}
	}

	return p, nil
}
