package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"shaderorb/orb"
)

const EnvPrefix = "ORB_"

// Config is the startup configuration of the orb program.
//
// Values are resolved in this order, later ones win:
// defaults, .env file, process environment, command line flags.
type Config struct {
	Width  int
	Height int

	Segments int
	Workers  int
	Seed     int64

	Focus orb.FocusState

	Bloom     bool
	VSync     bool
	HotReload bool
	PProf     bool

	ClickSound string
	Volume     float64

	PalettePath string
}

func Default() Config {
	return Config{
		Width:    600,
		Height:   600,
		Segments: 64,
		Seed:     1,
		Focus:    orb.FocusIdle,
		Bloom:    true,
		VSync:    true,
		Volume:   0.3,

		PalettePath: "palette.json",
	}
}

func (c Config) Validate() error {
	var errs []error

	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Width, c.Height))
	}
	// (segments+1)^2 vertices have to fit in 16 bit indices
	if c.Segments < 3 || c.Segments > 255 {
		errs = append(errs, fmt.Errorf("segments must be in [3, 255], got %d", c.Segments))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if c.Volume < 0 || c.Volume > 1 {
		errs = append(errs, fmt.Errorf("volume must be in [0, 1], got %v", c.Volume))
	}
	if !c.Focus.Valid() {
		errs = append(errs, fmt.Errorf("invalid focus state %d", int(c.Focus)))
	}

	return errors.Join(errs...)
}

// LoopConfig translates the configuration into what orb.NewLoop needs.
func (c Config) LoopConfig() orb.LoopConfig {
	lc := orb.DefaultLoopConfig()
	lc.WidthSegments = c.Segments
	lc.HeightSegments = c.Segments
	lc.Seed = c.Seed
	lc.ShaderWorkers = c.Workers
	return lc
}

// Load reads the configuration. args are the command line arguments
// without the program name. envFiles are optional, missing ones are skipped.
func Load(args []string, envFiles ...string) (Config, error) {
	return load(args, os.LookupEnv, os.Stderr, envFiles...)
}

type lookupFunc func(key string) (string, bool)

func load(args []string, lookupEnv lookupFunc, flagOutput io.Writer, envFiles ...string) (Config, error) {
	cfg := Default()

	dotEnv, err := readEnvFiles(envFiles)
	if err != nil {
		return cfg, err
	}

	lookup := func(key string) (string, bool) {
		key = EnvPrefix + key
		if v, ok := lookupEnv(key); ok {
			return v, true
		}
		v, ok := dotEnv[key]
		return v, ok
	}

	if err := applyEnv(&cfg, lookup); err != nil {
		return cfg, err
	}

	if err := applyFlags(&cfg, args, flagOutput); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func readEnvFiles(paths []string) (map[string]string, error) {
	merged := make(map[string]string)

	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}

		m, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		// first file wins, same as godotenv.Load
		for k, v := range m {
			if _, ok := merged[k]; !ok {
				merged[k] = v
			}
		}
	}

	return merged, nil
}

func applyEnv(cfg *Config, lookup lookupFunc) error {
	var errs []error

	intVar := func(key string, dst *int) {
		if v, ok := lookup(key); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = n
		}
	}
	boolVar := func(key string, dst *bool) {
		if v, ok := lookup(key); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = b
		}
	}
	floatVar := func(key string, dst *float64) {
		if v, ok := lookup(key); ok {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = f
		}
	}
	stringVar := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	intVar("WIDTH", &cfg.Width)
	intVar("HEIGHT", &cfg.Height)
	intVar("SEGMENTS", &cfg.Segments)
	intVar("WORKERS", &cfg.Workers)

	if v, ok := lookup("SEED"); ok {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sSEED: %w", EnvPrefix, err))
		} else {
			cfg.Seed = n
		}
	}

	if v, ok := lookup("FOCUS"); ok {
		s, err := orb.ParseFocusState(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sFOCUS: %w", EnvPrefix, err))
		} else {
			cfg.Focus = s
		}
	}

	boolVar("BLOOM", &cfg.Bloom)
	boolVar("VSYNC", &cfg.VSync)
	boolVar("HOT", &cfg.HotReload)
	boolVar("PPROF", &cfg.PProf)

	stringVar("CLICK_SOUND", &cfg.ClickSound)
	floatVar("VOLUME", &cfg.Volume)
	stringVar("PALETTE", &cfg.PalettePath)

	return errors.Join(errs...)
}

// focusFlag lets the focus state be given by name.
type focusFlag struct {
	dst *orb.FocusState
}

func (f focusFlag) String() string {
	if f.dst == nil {
		return ""
	}
	return f.dst.String()
}

func (f focusFlag) Set(s string) error {
	state, err := orb.ParseFocusState(s)
	if err != nil {
		return err
	}
	*f.dst = state
	return nil
}

func applyFlags(cfg *Config, args []string, output io.Writer) error {
	fs := flag.NewFlagSet("shaderorb", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.IntVar(&cfg.Width, "width", cfg.Width, "window width")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "window height")
	fs.IntVar(&cfg.Segments, "segments", cfg.Segments, "sphere segments on both axes")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "vertex shading goroutines, 0 for GOMAXPROCS")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "pointer jitter seed")
	fs.Var(focusFlag{&cfg.Focus}, "focus", "initial focus state ("+strings.Join(orb.FocusStateStrs[:], ", ")+")")

	fs.BoolVar(&cfg.Bloom, "bloom", cfg.Bloom, "enable bloom")
	fs.BoolVar(&cfg.VSync, "vsync", cfg.VSync, "enable vsync")
	fs.BoolVar(&cfg.HotReload, "hot", cfg.HotReload, "enable hot reloading")
	fs.BoolVar(&cfg.PProf, "pprof", cfg.PProf, "enable pprof (needs the orbpprof build tag)")

	fs.StringVar(&cfg.ClickSound, "click-sound", cfg.ClickSound, "sound file played on focus change, empty for the built-in click")
	fs.Float64Var(&cfg.Volume, "volume", cfg.Volume, "click volume in [0, 1]")
	fs.StringVar(&cfg.PalettePath, "palette", cfg.PalettePath, "palette json path")

	return fs.Parse(args)
}
