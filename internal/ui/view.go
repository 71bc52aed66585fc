package ui

import (
	"errors"
	"fmt"
	"io"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"typewriter/internal/engine"
	"typewriter/internal/presenter"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/progress"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	clog "github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"
)

const DefaultBlink = 530 * time.Millisecond

type applyMsg struct {
	fn func(*Root)
}

type startMsg struct{}

// stepMsg advances the animation of the given run. Messages from an older
// run are ignored.
type stepMsg struct {
	run int
}

type blinkMsg struct{}

type deckKeyMap struct {
	Prev   key.Binding
	Next   key.Binding
	First  key.Binding
	Last   key.Binding
	Replay key.Binding
	Info   key.Binding
	Quit   key.Binding
}

func (k deckKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Info, k.Quit}
}

func (k deckKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.First, k.Last},
		{k.Replay, k.Info, k.Quit},
	}
}

type Options struct {
	Navigator    Navigator
	Title        string
	Description  string
	StyleVariant string
	MouseScope   string
	// Blink is the idle cursor period. Zero keeps the cursor solid.
	Blink      time.Duration
	ShowStatus bool
	Logger     *clog.Logger
}

// Root is the presenter screen. It owns the running animation and drives
// it from the update loop, one atom per step message.
type Root struct {
	mu      sync.Mutex
	program *tea.Program
	running bool
	stopped bool

	nav        Navigator
	theme      Theme
	mouseScope string
	blink      time.Duration
	showStatus bool
	logger     *clog.Logger

	cols   int
	rows   int
	layout LayoutMode

	title       string
	description string
	infoText    string
	infoOpen    bool
	statusFlash string

	anim      *engine.Animation
	run       int
	animating bool
	frame     engine.Frame
	hasFrame  bool
	cursorOn  bool
	err       error

	help     help.Model
	keymap   deckKeyMap
	position progress.Model
	spin     spinner.Model
	markdown *glamour.TermRenderer

	lastInputEvent string
}

func New(opts Options) *Root {
	logger := opts.Logger
	if logger == nil {
		logger = clog.New(io.Discard)
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(78),
	)
	if err != nil {
		renderer = nil
	}

	h := help.New()
	h.Styles = help.DefaultDarkStyles()
	theme := ThemeForVariant(normalizeStyleVariant(opts.StyleVariant))
	position := progress.New(
		progress.WithWidth(20),
		progress.WithColors(lipgloss.Color("#5EC2FF"), lipgloss.Color("#79E6A6"), lipgloss.Color("#F2D16B")),
		progress.WithScaled(true),
	)
	spin := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(theme.Accent),
	)

	r := &Root{
		nav:        opts.Navigator,
		theme:      theme,
		mouseScope: normalizeMouseScope(opts.MouseScope),
		blink:      opts.Blink,
		showStatus: opts.ShowStatus,
		logger:     logger,
		cols:       80,
		rows:       24,
		layout:     LayoutFull,
		cursorOn:   true,
		help:       h,
		position:   position,
		spin:       spin,
		markdown:   renderer,
	}
	r.keymap = deckKeyMap{
		Prev:   key.NewBinding(key.WithKeys("left", "h", "pgup", "backspace"), key.WithHelp("←", "prev")),
		Next:   key.NewBinding(key.WithKeys("right", "l", "pgdown", "space", "enter"), key.WithHelp("→", "next")),
		First:  key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home", "first")),
		Last:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end", "last")),
		Replay: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "replay")),
		Info:   key.NewBinding(key.WithKeys("?", "i"), key.WithHelp("?", "deck info")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
	r.setDeck(opts.Title, opts.Description)
	return r
}

// Theme exposes the active theme so the engine can share its highlight style.
func (r *Root) Theme() Theme { return r.theme }

func (r *Root) Init() tea.Cmd {
	cmds := []tea.Cmd{func() tea.Msg { return startMsg{} }}
	if r.blink > 0 {
		cmds = append(cmds, blinkTickCmd(r.blink))
	}
	return tea.Batch(cmds...)
}

func (r *Root) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	defer func() {
		if rec := recover(); rec != nil {
			r.onModelPanic("update", rec, msg)
			model = r
			cmd = nil
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return r.handleResize(msg.Width, msg.Height)
	case applyMsg:
		if msg.fn != nil {
			msg.fn(r)
		}
		return r, nil
	case startMsg:
		if r.nav == nil {
			return r, nil
		}
		return r.begin(r.nav.Start())
	case stepMsg:
		if msg.run != r.run || !r.animating {
			return r, nil
		}
		return r.step()
	case blinkMsg:
		r.toggleCursor()
		return r, blinkTickCmd(r.blink)
	case spinner.TickMsg:
		if !r.animating {
			return r, nil
		}
		var cmd tea.Cmd
		r.spin, cmd = r.spin.Update(msg)
		return r, cmd
	case tea.MouseClickMsg:
		return r.handleMouseClick(msg)
	case tea.KeyPressMsg:
		return r.handleKey(msg)
	}
	return r, nil
}

func (r *Root) View() (view tea.View) {
	defer func() {
		if rec := recover(); rec != nil {
			r.onModelPanic("view", rec, nil)
			width := max(1, r.cols)
			msg := "UI recovered from a rendering panic. Check logs."
			view = tea.NewView(r.theme.Fail.Width(width).Render(trimForWidth(msg, max(1, width-1))))
		}
	}()

	v := tea.NewView(r.screen())
	v.AltScreen = true
	v.MouseMode = r.currentMouseMode()
	return v
}

func (r *Root) screen() string {
	switch {
	case r.layout == LayoutTooSmall:
		return r.theme.Fail.Render(trimForWidth(fmt.Sprintf("%dx%d too small", r.cols, r.rows), max(1, r.cols)))
	case r.infoOpen:
		return r.renderInfo()
	default:
		return r.renderSlide()
	}
}

func (r *Root) Run() error {
	r.mu.Lock()
	if r.running || r.stopped {
		r.mu.Unlock()
		return nil
	}
	p := tea.NewProgram(r)
	r.program = p
	r.running = true
	r.mu.Unlock()

	_, err := p.Run()

	r.mu.Lock()
	r.program = nil
	r.running = false
	r.mu.Unlock()
	if r.anim != nil {
		r.anim.Release()
	}
	if err != nil {
		return err
	}
	return r.Err()
}

// Stop quits the running program. A Stop that arrives before Run makes the
// next Run return immediately.
func (r *Root) Stop() {
	r.mu.Lock()
	p := r.program
	if p == nil {
		r.stopped = true
	}
	r.mu.Unlock()
	if p != nil {
		p.Quit()
	}
}

// SetDeck refreshes the title and description after a reload.
func (r *Root) SetDeck(title, descriptionMD string) {
	r.apply(func(m *Root) {
		m.setDeck(title, descriptionMD)
	})
}

func (r *Root) FlashStatus(msg string) {
	r.apply(func(m *Root) {
		m.statusFlash = msg
	})
}

// Err returns the failure that ended the program, if any.
func (r *Root) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Show records frame as the current screen. It satisfies engine.Sink.
func (r *Root) Show(frame engine.Frame) {
	r.frame = frame
	r.hasFrame = true
}

func (r *Root) apply(fn func(*Root)) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	p := r.program
	running := r.running
	if !running || p == nil {
		r.mu.Unlock()
		fn(r)
		return
	}
	r.mu.Unlock()
	p.Send(applyMsg{fn: fn})
}

func (r *Root) setDeck(title, descriptionMD string) {
	r.title = strings.TrimSpace(title)
	r.description = descriptionMD
	r.infoText = r.renderMarkdown()
}

// begin adopts the animation returned by the navigator. A nil animation
// means the request was dropped and the current screen stays.
func (r *Root) begin(anim *engine.Animation, err error) (tea.Model, tea.Cmd) {
	if err != nil {
		return r.fail(err)
	}
	if anim == nil {
		return r, nil
	}
	r.run++
	r.anim = anim
	r.animating = true
	r.cursorOn = true
	r.statusFlash = ""

	frame, err := anim.Start()
	if err != nil {
		return r.fail(err)
	}
	r.Show(frame)
	run := r.run
	return r, tea.Batch(
		func() tea.Msg { return stepMsg{run: run} },
		spinnerTickCmd(r.spin),
	)
}

func (r *Root) step() (tea.Model, tea.Cmd) {
	st, err := r.anim.Next()
	if err != nil {
		return r.fail(err)
	}
	if st.Done {
		r.animating = false
		return r, nil
	}
	if st.Frame != nil {
		r.Show(*st.Frame)
	}
	run := r.run
	return r, tea.Tick(st.Wait, func(time.Time) tea.Msg { return stepMsg{run: run} })
}

func (r *Root) fail(err error) (tea.Model, tea.Cmd) {
	if r.anim != nil {
		r.anim.Release()
	}
	r.animating = false
	r.logger.Error("anim.failed", "err", err)
	r.mu.Lock()
	r.err = err
	r.mu.Unlock()
	return r, tea.Quit
}

func (r *Root) handleResize(cols, rows int) (tea.Model, tea.Cmd) {
	r.recordInputEvent(fmt.Sprintf("resize:%dx%d", cols, rows))
	r.cols = cols
	r.rows = rows
	r.layout = DetermineLayoutMode(cols, rows)
	r.position.SetWidth(max(10, min(30, cols/4)))
	if r.layout == LayoutTooSmall || r.nav == nil {
		return r, nil
	}

	viewport := ContainerViewport(cols, rows, r.layout, r.showStatus)
	if _, err := r.nav.Dispatch(presenter.Resize(viewport)); err != nil {
		return r.fail(err)
	}
	if r.anim != nil && !r.animating {
		r.redraw()
	}
	return r, nil
}

func (r *Root) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	r.recordInputEvent(fmt.Sprintf("key:%v mod:%v text:%q", msg.Code, msg.Mod, msg.Text))

	if r.infoOpen {
		switch {
		case msg.Code == tea.KeyEsc, key.Matches(msg, r.keymap.Info):
			r.infoOpen = false
			return r, nil
		case key.Matches(msg, r.keymap.Quit):
			return r, tea.Quit
		}
		return r, nil
	}

	switch {
	case key.Matches(msg, r.keymap.Quit):
		return r, tea.Quit
	case key.Matches(msg, r.keymap.Info):
		r.infoOpen = true
		return r, nil
	case key.Matches(msg, r.keymap.Prev):
		return r.navigate(presenter.KeyPrev())
	case key.Matches(msg, r.keymap.Next):
		return r.navigate(presenter.KeyNext())
	case key.Matches(msg, r.keymap.First):
		return r.navigate(presenter.Event{Kind: presenter.EventFirst})
	case key.Matches(msg, r.keymap.Last):
		return r.navigate(presenter.Event{Kind: presenter.EventLast})
	case key.Matches(msg, r.keymap.Replay):
		return r.navigate(presenter.Event{Kind: presenter.EventReplay})
	}
	return r, nil
}

func (r *Root) handleMouseClick(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	mouse := msg.Mouse()
	r.recordInputEvent(fmt.Sprintf("mouse_click:%d,%d button:%v", mouse.X, mouse.Y, mouse.Button))
	if r.mouseScope == "off" || mouse.Button != tea.MouseLeft {
		return r, nil
	}
	if r.infoOpen {
		r.infoOpen = false
		return r, nil
	}
	return r.navigate(presenter.Pointer(float64(mouse.X), 0, float64(r.cols)))
}

func (r *Root) navigate(ev presenter.Event) (tea.Model, tea.Cmd) {
	if r.nav == nil {
		return r, nil
	}
	return r.begin(r.nav.Dispatch(ev))
}

// toggleCursor blinks the cursor once the current run has finished.
func (r *Root) toggleCursor() {
	if r.anim == nil || r.animating {
		return
	}
	r.cursorOn = !r.cursorOn
	r.redraw()
}

func (r *Root) redraw() {
	frame, err := r.anim.Frame(r.cursorOn)
	if err != nil {
		if !errors.Is(err, engine.ErrMissingSlideName) {
			r.logger.Warn("ui.redraw_failed", "err", err)
		}
		return
	}
	r.Show(frame)
}

func (r *Root) renderSlide() string {
	body := ""
	if r.hasFrame {
		body = r.frame.Text
	}
	if r.layout != LayoutFull || !r.showStatus {
		return body
	}
	lines := strings.Split(body, "\n")
	for len(lines) < r.rows-1 {
		lines = append(lines, "")
	}
	if len(lines) > r.rows-1 {
		lines = lines[:max(0, r.rows-1)]
	}
	return strings.Join(append(lines, r.statusText()), "\n")
}

func (r *Root) statusText() string {
	width := max(1, r.cols)
	st := presenter.State{}
	if r.nav != nil {
		st = r.nav.State()
	}

	left := ""
	if r.animating {
		left = r.spin.View() + " "
	}
	left += r.titleText()
	if st.Count > 0 {
		pct := float64(st.Current+1) / float64(st.Count)
		left += fmt.Sprintf("  %s %d/%d", r.position.ViewAs(pct), st.Current+1, st.Count)
	}
	if r.statusFlash != "" {
		left += "  " + r.theme.Accent.Render(r.statusFlash)
	}

	right := r.help.View(r.keymap)
	gap := width - ansi.StringWidth(left) - ansi.StringWidth(right)
	line := left
	if gap >= 2 {
		line += strings.Repeat(" ", gap) + right
	}
	return r.theme.Status.Width(width).Render(ansi.Truncate(line, width, "…"))
}

func (r *Root) titleText() string {
	if r.title == "" {
		return "typewriter"
	}
	return r.title
}

func (r *Root) renderInfo() string {
	title := r.theme.OverlayTitle.Render(r.titleText())
	body := r.infoText
	if strings.TrimSpace(body) == "" {
		body = r.theme.Muted.Render("No description.")
	}
	keys := r.help.FullHelpView(r.keymap.FullHelp())
	content := strings.Join([]string{title, "", strings.TrimRight(body, "\n"), "", keys}, "\n")
	return r.theme.Overlay.MaxWidth(max(1, r.cols)).Render(content)
}

func (r *Root) renderMarkdown() string {
	if strings.TrimSpace(r.description) == "" {
		return ""
	}
	if r.markdown == nil {
		return r.description
	}
	out, err := r.markdown.Render(r.description)
	if err != nil {
		r.logger.Warn("ui.markdown_failed", "err", err)
		return r.description
	}
	return out
}

func blinkTickCmd(d time.Duration) tea.Cmd {
	if d <= 0 {
		return nil
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return blinkMsg{} })
}

func spinnerTickCmd(model spinner.Model) tea.Cmd {
	return func() tea.Msg {
		return model.Tick()
	}
}

func trimForWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(strings.ReplaceAll(ansi.Strip(s), "\n", " "))
	if len(r) <= width {
		return string(r)
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

func (r *Root) currentMouseMode() tea.MouseMode {
	if r.mouseScope == "off" {
		return tea.MouseModeNone
	}
	return tea.MouseModeCellMotion
}

func normalizeStyleVariant(v string) string {
	switch strings.TrimSpace(v) {
	case "cozy_clean", "retro_terminal", "modern_arcade":
		return strings.TrimSpace(v)
	default:
		return "modern_arcade"
	}
}

func normalizeMouseScope(v string) string {
	switch strings.TrimSpace(v) {
	case "off", "full":
		return strings.TrimSpace(v)
	default:
		return "full"
	}
}

func (r *Root) recordInputEvent(event string) {
	r.lastInputEvent = trimForWidth(strings.TrimSpace(event), 160)
}

func (r *Root) onModelPanic(where string, recovered any, msg tea.Msg) {
	if r.statusFlash == "" {
		r.statusFlash = "Recovered UI panic"
	}

	msgType := ""
	if msg != nil {
		msgType = fmt.Sprintf("%T", msg)
	}
	r.logger.Error("ui.panic_recovered",
		"where", where,
		"panic", fmt.Sprintf("%v", recovered),
		"message_type", msgType,
		"layout", r.layout,
		"cols", r.cols,
		"rows", r.rows,
		"run", r.run,
		"last_input", r.lastInputEvent,
		"stack", string(debug.Stack()),
	)
}

var _ tea.Model = (*Root)(nil)
var _ View = (*Root)(nil)
var _ engine.Sink = (*Root)(nil)
