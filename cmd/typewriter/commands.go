package main

import (
	"errors"
	"fmt"

	"typewriter/internal/app"
	"typewriter/internal/engine"
	"typewriter/internal/slides"

	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	logPath    string
	logLevel   string
	watch      bool
	style      string
	mouse      string
	wrap       bool
	noStatus   bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "typewriter [deck]",
		Short: "Present a slide deck as a typewriter animation",
		Long: `Present a JSON or YAML slide deck in the terminal, one character at a time.

Navigate with the arrow keys or by clicking the left or right half of the
window. Navigation is ignored while a slide is still being typed.

Slide text markers:
  \n   line break        \~   toggle highlight
  \ds  short pause       \dm  medium pause       \dl  long pause`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags, args)
			if err != nil {
				return err
			}
			a, err := app.New(cfg)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.Run(cmd.Context())
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/typewriter/config.toml)")
	pf.StringVar(&flags.logPath, "log", "", "write JSON logs to this file")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&flags.style, "style", "", "style variant: modern_arcade, cozy_clean, retro_terminal")
	pf.BoolVar(&flags.wrap, "wrap", false, "hard-wrap slide text at the window width")
	cmd.Flags().BoolVar(&flags.watch, "watch", false, "reload the deck when the file changes")
	cmd.Flags().StringVar(&flags.mouse, "mouse", "", "mouse input: full or off")
	cmd.Flags().BoolVar(&flags.noStatus, "no-status", false, "hide the status bar")

	cmd.AddCommand(newFramesCmd(flags), newPlayCmd(flags), newValidateCmd(flags))
	return cmd
}

func newFramesCmd(flags *rootFlags) *cobra.Command {
	var slide, lines, cols int
	var plain bool
	cmd := &cobra.Command{
		Use:   "frames [deck]",
		Short: "Print every frame of one slide without waiting",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags, args)
			if err != nil {
				return err
			}
			return app.Play(cmd.Context(), cfg, slides.NewLoader(), app.PlayOptions{
				Slide:   slide - 1,
				Lines:   lines,
				Columns: cols,
				Plain:   plain,
				Mode:    app.PlayFrames,
				Clock:   engine.NopClock{},
				Out:     cmd.OutOrStdout(),
			})
		},
	}
	cmd.Flags().IntVar(&slide, "slide", 1, "slide number, starting at 1")
	cmd.Flags().IntVar(&lines, "lines", 6, "lines per frame including the footer")
	cmd.Flags().IntVar(&cols, "cols", 80, "characters per line")
	cmd.Flags().BoolVar(&plain, "plain", false, "mark highlights with [brackets] instead of colors")
	return cmd
}

func newPlayCmd(flags *rootFlags) *cobra.Command {
	var slide, lines, cols int
	var plain bool
	cmd := &cobra.Command{
		Use:   "play [deck]",
		Short: "Animate one slide in real time on stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags, args)
			if err != nil {
				return err
			}
			err = app.Play(cmd.Context(), cfg, slides.NewLoader(), app.PlayOptions{
				Slide:   slide - 1,
				Lines:   lines,
				Columns: cols,
				Plain:   plain,
				Mode:    app.PlayLive,
				Clock:   engine.RealClock{},
				Out:     cmd.OutOrStdout(),
			})
			fmt.Fprintln(cmd.OutOrStdout())
			if err != nil && cmd.Context().Err() != nil {
				// Interrupted by the user.
				return nil
			}
			return err
		},
	}
	cmd.Flags().IntVar(&slide, "slide", 1, "slide number, starting at 1")
	cmd.Flags().IntVar(&lines, "lines", 12, "lines per frame including the footer")
	cmd.Flags().IntVar(&cols, "cols", 80, "characters per line")
	cmd.Flags().BoolVar(&plain, "plain", false, "mark highlights with [brackets] instead of colors")
	return cmd
}

func newValidateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [deck]",
		Short: "Check a deck and print per-slide statistics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags, args)
			if err != nil {
				return err
			}
			deck, err := slides.NewLoader().LoadDeck(cmd.Context(), cfg.DeckPath)
			if err != nil {
				return err
			}
			reports := app.BuildReport(deck, cfg.Timing.Timing())
			if err := app.WriteReport(cmd.OutOrStdout(), deck, reports); err != nil {
				return err
			}
			return deck.Validate()
		},
	}
}

// loadConfig applies flags the user set over the file and environment
// layers. A positional deck argument wins over every other source.
func loadConfig(cmd *cobra.Command, flags *rootFlags, args []string) (app.Config, error) {
	cfg, err := app.LoadConfig(flags.configPath)
	if err != nil {
		return app.Config{}, err
	}
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}

	if len(args) == 1 {
		cfg.DeckPath = args[0]
	}
	if changed("log") {
		cfg.LogPath = flags.logPath
	}
	if changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if changed("style") {
		cfg.UI.StyleVariant = flags.style
	}
	if changed("wrap") {
		cfg.Layout.Wrap = flags.wrap
	}
	if changed("watch") {
		cfg.Watch = flags.watch
	}
	if changed("mouse") {
		cfg.UI.MouseScope = flags.mouse
	}
	if changed("no-status") {
		cfg.UI.StatusBar = !flags.noStatus
	}

	if cfg.DeckPath == "" {
		return app.Config{}, errors.New("no deck given; pass a path or set deck in the config")
	}
	if err := cfg.Validate(); err != nil {
		return app.Config{}, err
	}
	return cfg, nil
}
