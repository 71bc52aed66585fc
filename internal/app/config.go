package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"typewriter/internal/engine"
	"typewriter/internal/layout"
	"typewriter/internal/render"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

const EnvPrefix = "TYPEWRITER_"

// Config controls runtime behavior for the presenter.
type Config struct {
	DeckPath string       `toml:"deck" env:"DECK"`
	LogPath  string       `toml:"log_path" env:"LOG_PATH"`
	LogLevel string       `toml:"log_level" env:"LOG_LEVEL"`
	Watch    bool         `toml:"watch" env:"WATCH"`
	Timing   TimingConfig `toml:"timing" envPrefix:"TIMING_"`
	Layout   LayoutConfig `toml:"layout" envPrefix:"LAYOUT_"`
	UI       UIConfig     `toml:"ui" envPrefix:"UI_"`
}

type TimingConfig struct {
	MinCharMS int `toml:"min_char_ms" env:"MIN_CHAR_MS"`
	MaxCharMS int `toml:"max_char_ms" env:"MAX_CHAR_MS"`
	ShortMS   int `toml:"short_ms" env:"SHORT_MS"`
	MediumMS  int `toml:"medium_ms" env:"MEDIUM_MS"`
	LongMS    int `toml:"long_ms" env:"LONG_MS"`
}

type LayoutConfig struct {
	MinCharsPerLine  int  `toml:"min_chars_per_line" env:"MIN_CHARS_PER_LINE"`
	MinLinesPerSlide int  `toml:"min_lines_per_slide" env:"MIN_LINES_PER_SLIDE"`
	Wrap             bool `toml:"wrap" env:"WRAP"`
}

type UIConfig struct {
	StyleVariant string `toml:"style_variant" env:"STYLE_VARIANT"`
	MouseScope   string `toml:"mouse_scope" env:"MOUSE_SCOPE"`
	BlinkMS      int    `toml:"blink_ms" env:"BLINK_MS"`
	StatusBar    bool   `toml:"status_bar" env:"STATUS_BAR"`
}

func DefaultConfig() Config {
	t := engine.DefaultTiming()
	return Config{
		LogLevel: "info",
		Timing: TimingConfig{
			MinCharMS: int(t.MinChar / time.Millisecond),
			MaxCharMS: int(t.MaxChar / time.Millisecond),
			ShortMS:   int(t.Short / time.Millisecond),
			MediumMS:  int(t.Medium / time.Millisecond),
			LongMS:    int(t.Long / time.Millisecond),
		},
		Layout: LayoutConfig{
			MinCharsPerLine:  layout.DefaultMinCharsPerLine,
			MinLinesPerSlide: layout.DefaultMinLinesPerSlide,
		},
		UI: UIConfig{
			StyleVariant: "modern_arcade",
			MouseScope:   "full",
			BlinkMS:      530,
			StatusBar:    true,
		},
	}
}

// DefaultConfigPath is $XDG_CONFIG_HOME/typewriter/config.toml, falling back
// to ~/.config.
func DefaultConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "typewriter", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "typewriter", "config.toml")
	}
	return filepath.Join(home, ".config", "typewriter", "config.toml")
}

// LoadConfig layers the TOML file at path and TYPEWRITER_* environment
// variables over the defaults. An empty path reads DefaultConfigPath and
// tolerates its absence; an explicit path must exist.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	if c.Timing == (TimingConfig{}) {
		return fmt.Errorf("timing is all zero; set max_char_ms or a delay marker pause")
	}
	if err := c.Timing.Timing().Validate(); err != nil {
		return err
	}

	if c.Layout.MinCharsPerLine <= 0 {
		c.Layout.MinCharsPerLine = layout.DefaultMinCharsPerLine
	}
	if c.Layout.MinLinesPerSlide == 0 {
		c.Layout.MinLinesPerSlide = layout.DefaultMinLinesPerSlide
	}
	if c.Layout.MinLinesPerSlide < render.MinLinesPerPage {
		return fmt.Errorf("min lines per slide must be at least %d, got %d", render.MinLinesPerPage, c.Layout.MinLinesPerSlide)
	}

	switch c.UI.StyleVariant {
	case "", "modern_arcade", "cozy_clean", "retro_terminal":
	default:
		return fmt.Errorf("invalid ui style variant %q", c.UI.StyleVariant)
	}
	if c.UI.StyleVariant == "" {
		c.UI.StyleVariant = "modern_arcade"
	}
	switch c.UI.MouseScope {
	case "", "off", "full":
	default:
		return fmt.Errorf("invalid ui mouse scope %q", c.UI.MouseScope)
	}
	if c.UI.MouseScope == "" {
		c.UI.MouseScope = "full"
	}
	if c.UI.BlinkMS < 0 {
		return fmt.Errorf("invalid ui blink interval %dms", c.UI.BlinkMS)
	}
	return nil
}

func (t TimingConfig) Timing() engine.Timing {
	return engine.Timing{
		MinChar: time.Duration(t.MinCharMS) * time.Millisecond,
		MaxChar: time.Duration(t.MaxCharMS) * time.Millisecond,
		Short:   time.Duration(t.ShortMS) * time.Millisecond,
		Medium:  time.Duration(t.MediumMS) * time.Millisecond,
		Long:    time.Duration(t.LongMS) * time.Millisecond,
	}
}

func (u UIConfig) Blink() time.Duration {
	return time.Duration(u.BlinkMS) * time.Millisecond
}
