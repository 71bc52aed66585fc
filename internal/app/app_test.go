package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"typewriter/internal/engine"
	"typewriter/internal/markup"
	"typewriter/internal/presenter"
	"typewriter/internal/slides"
	"typewriter/internal/telemetry"
)

const sampleDeck = `[
  {"slide_name": "intro", "text": "hi\\~yo\\~"},
  {"slide_name": "outro", "text": "a\\dlb\nc"}
]`

func writeDeck(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

type fakeView struct {
	once    sync.Once
	stop    chan struct{}
	started chan struct{}

	mu      sync.Mutex
	title   string
	flashes []string
	runs    int
}

func newFakeView() *fakeView {
	return &fakeView{stop: make(chan struct{}), started: make(chan struct{}, 1)}
}

func (v *fakeView) Run() error {
	v.mu.Lock()
	v.runs++
	v.mu.Unlock()
	v.started <- struct{}{}
	<-v.stop
	return nil
}

func (v *fakeView) Stop() { v.once.Do(func() { close(v.stop) }) }

func (v *fakeView) SetDeck(title, _ string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.title = title
}

func (v *fakeView) FlashStatus(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.flashes = append(v.flashes, msg)
}

type fakeNav struct {
	mu     sync.Mutex
	source presenter.SlideSource
}

func (n *fakeNav) SetSource(source presenter.SlideSource) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.source = source
}

func (n *fakeNav) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.source == nil {
		return 0
	}
	return n.source.Len()
}

func testApp(cfg Config, view *fakeView, nav *fakeNav) *App {
	return &App{
		cfg:    cfg,
		logger: telemetry.Discard(),
		loader: slides.NewLoader(),
		nav:    nav,
		view:   view,
	}
}

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if got := cfg.Timing.Timing(); got != engine.DefaultTiming() {
		t.Fatalf("default timing mismatch: %+v", got)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]func(*Config){
		"min lines":   func(c *Config) { c.Layout.MinLinesPerSlide = 1 },
		"style":       func(c *Config) { c.UI.StyleVariant = "neon" },
		"mouse":       func(c *Config) { c.UI.MouseScope = "scoped" },
		"log level":   func(c *Config) { c.LogLevel = "chatty" },
		"timing":      func(c *Config) { c.Timing.MinCharMS, c.Timing.MaxCharMS = 50, 10 },
		"blink":       func(c *Config) { c.UI.BlinkMS = -1 },
		"zero timing": func(c *Config) { c.Timing = TimingConfig{} },
	}
	for name, mutate := range cases {
		cfg := DefaultConfig()
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestValidateFillsBlanks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UI.StyleVariant = ""
	cfg.UI.MouseScope = ""
	cfg.Layout.MinLinesPerSlide = 0
	cfg.LogLevel = ""
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.UI.StyleVariant != "modern_arcade" || cfg.UI.MouseScope != "full" || cfg.Layout.MinLinesPerSlide != 2 || cfg.LogLevel != "info" {
		t.Fatalf("unexpected filled config %+v", cfg)
	}
}

func TestLoadConfigLayersFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
deck = "talk.yaml"
watch = true

[timing]
min_char_ms = 5
max_char_ms = 15

[ui]
style_variant = "cozy_clean"
blink_ms = 0
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TYPEWRITER_UI_STYLE_VARIANT", "retro_terminal")
	t.Setenv("TYPEWRITER_LAYOUT_WRAP", "true")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DeckPath != "talk.yaml" || !cfg.Watch {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Timing.MinCharMS != 5 || cfg.Timing.MaxCharMS != 15 || cfg.Timing.LongMS != 600 {
		t.Fatalf("unexpected timing %+v", cfg.Timing)
	}
	if cfg.UI.StyleVariant != "retro_terminal" {
		t.Fatalf("expected env to override file, got %q", cfg.UI.StyleVariant)
	}
	if !cfg.Layout.Wrap {
		t.Fatalf("expected wrap from env")
	}
	if cfg.UI.BlinkMS != 0 || !cfg.UI.StatusBar {
		t.Fatalf("unexpected ui config %+v", cfg.UI)
	}
}

func TestLoadConfigMissingFiles(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if _, err := LoadConfig(""); err != nil {
		t.Fatalf("missing default config should be tolerated: %v", err)
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("this is not valid TOML {{{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestDefaultConfigPathHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/xdg")
	if got := DefaultConfigPath(); got != filepath.Join("/custom/xdg", "typewriter", "config.toml") {
		t.Fatalf("unexpected path %q", got)
	}
}

func TestPlayFramesPlain(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DeckPath = writeDeck(t, sampleDeck)
	var out bytes.Buffer

	err := Play(context.Background(), cfg, slides.NewLoader(), PlayOptions{
		Slide: 0,
		Lines: 3,
		Plain: true,
		Clock: engine.NopClock{},
		Out:   &out,
	})
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	text := out.String()
	if got := strings.Count(text, "--- frame "); got != 5 {
		t.Fatalf("expected cursor frame plus one per char, got %d:\n%s", got, text)
	}
	last := "hi[y][o][" + markup.NonBreakingSpace + "]\n~\n[intro [+] 1,5 All]"
	if !strings.Contains(text, last) {
		t.Fatalf("missing final frame %q in:\n%s", last, text)
	}
}

func TestPlayRejectsOutOfRangeSlide(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DeckPath = writeDeck(t, sampleDeck)
	err := Play(context.Background(), cfg, slides.NewLoader(), PlayOptions{Slide: 9, Plain: true, Clock: engine.NopClock{}, Out: &bytes.Buffer{}})
	if err == nil {
		t.Fatalf("expected out of range error")
	}
}

func TestBuildReport(t *testing.T) {
	deck := slides.Deck{Slides: []slides.Slide{
		{Name: "intro", Text: "hi\\~yo\\~"},
		{Name: "outro", Text: "a\\dlb\nc"},
	}}
	timing := engine.DefaultTiming()
	reports := BuildReport(deck, timing)
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
	if reports[0].Stats.Chars != 4 || reports[0].Estimate != 4*20*time.Millisecond {
		t.Fatalf("unexpected first report %+v", reports[0])
	}
	// 3 chars + 1 line break at the mean pause, plus one long delay.
	if want := 4*20*time.Millisecond + 600*time.Millisecond; reports[1].Estimate != want {
		t.Fatalf("expected %v, got %v", want, reports[1].Estimate)
	}

	var out bytes.Buffer
	if err := WriteReport(&out, deck, reports); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "outro") || !strings.Contains(out.String(), "2 slides") {
		t.Fatalf("unexpected report:\n%s", out.String())
	}
}

func TestRunPresentsDeckUntilCancelled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DeckPath = writeDeck(t, sampleDeck)
	view := newFakeView()
	nav := &fakeNav{}
	a := testApp(cfg, view, nav)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	select {
	case <-view.started:
	case <-time.After(2 * time.Second):
		t.Fatalf("view never started")
	}
	if nav.count() != 2 {
		t.Fatalf("expected deck handed to navigation, got %d slides", nav.count())
	}
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("run did not stop after cancel")
	}
	if view.title != "intro" {
		t.Fatalf("expected title fallback to first slide, got %q", view.title)
	}
}

func TestRunFailsWithoutDeck(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DeckPath = filepath.Join(t.TempDir(), "missing.json")
	view := newFakeView()
	a := testApp(cfg, view, &fakeNav{})

	err := a.Run(context.Background())
	if err == nil {
		t.Fatalf("expected load error")
	}
	if view.runs != 0 {
		t.Fatalf("view must not start without a deck")
	}
}

func TestOnReload(t *testing.T) {
	view := newFakeView()
	nav := &fakeNav{}
	a := testApp(DefaultConfig(), view, nav)

	a.onReload(slides.Deck{}, errors.New("boom"))
	if nav.count() != 0 || len(view.flashes) != 1 {
		t.Fatalf("failed reload must keep the old deck and flash")
	}

	a.onReload(slides.Deck{Title: "New", Slides: []slides.Slide{{Name: "a", Text: "x"}}}, nil)
	if nav.count() != 1 || view.title != "New" {
		t.Fatalf("expected reloaded deck applied")
	}
}

func TestRunWatchReloadsOnWrite(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DeckPath = writeDeck(t, sampleDeck)
	cfg.Watch = true
	view := newFakeView()
	nav := &fakeNav{}
	a := testApp(cfg, view, nav)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()
	<-view.started

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(cfg.DeckPath, []byte(`[{"slide_name": "only", "text": "x"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(3 * time.Second)
	for nav.count() != 1 {
		if time.Now().After(deadline) {
			t.Fatalf("deck was not reloaded")
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("run: %v", err)
	}
}
