package tui

import (
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/engine"
	"github.com/vovakirdan/tui-pong/internal/registry"
	"github.com/vovakirdan/tui-pong/internal/storage"
	"github.com/vovakirdan/tui-pong/internal/telemetry"
	"github.com/vovakirdan/tui-pong/internal/view"
)

// Options configures a match session.
type Options struct {
	Preset   registry.Preset // Engine geometry; Preset.ID is stored with the result
	FPS      int
	Hold     time.Duration // How long one key press keeps a paddle moving
	ShowHelp bool
	Width    int
	Height   int
	Player   string // Session user, stored with the result

	Store   *storage.Store       // Optional match history
	Metrics *telemetry.Collector // Optional
	Logger  *log.Logger          // Optional; defaults to stderr
}

// Model is the Bubble Tea model for one match. It owns its engine and talks
// to it only through actions; the screen is drawn from a mirror fed by the
// engine's events.
type Model struct {
	engine  *engine.Engine
	mirror  *view.Mirror
	sink    engine.Sink
	opts    Options
	keys    KeyMap
	help    help.Model
	holds   holds
	canvas  *view.Canvas
	logger  *log.Logger
	started time.Time // Wall time of the first frame; engine time 0
	last    time.Time // Wall time of the latest frame
	opened  time.Time
	saved   *sync.Once // Shared by every copy of the model

	quitting bool
}

// NewModel creates a model and initializes its engine.
func NewModel(opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Hold <= 0 {
		opts.Hold = 150 * time.Millisecond
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "pong"})
	}

	mirror := view.NewMirror()
	m := Model{
		engine: engine.New(opts.Preset.Engine),
		mirror: mirror,
		sink:   opts.Metrics.Wrap(mirror.Apply),
		opts:   opts,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		holds:  newHolds(opts.Hold),
		canvas: view.NewCanvas(opts.Width, fieldHeight(opts.Height, opts.ShowHelp)),
		logger: logger,
		opened: time.Now(),
		saved:  new(sync.Once),
	}
	m.help.Width = opts.Width
	m.process(engine.InitializeAction{})
	return m
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.FPS)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey turns key presses into engine actions.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.Save()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.opts.ShowHelp = !m.opts.ShowHelp
		m.canvas = view.NewCanvas(m.opts.Width, fieldHeight(m.opts.Height, m.opts.ShowHelp))
		return m, nil

	case key.Matches(msg, m.keys.Serve):
		if m.engine.State() != engine.StateRunning {
			m.process(engine.StartAction{})
		}
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		m.holds.clear()
		m.process(engine.MoveAction{Player: engine.Left, Direction: engine.Neutral})
		m.process(engine.MoveAction{Player: engine.Right, Direction: engine.Neutral})
		m.process(engine.ResetAction{Seed: int64(m.mirror.Rallies())})
		return m, nil
	}

	if p, d, ok := m.keys.Paddle(msg); ok {
		now := m.last
		if now.IsZero() {
			now = time.Now()
		}
		if m.holds.press(p, d, now) {
			m.process(engine.MoveAction{Player: p, Direction: d})
		}
	}
	return m, nil
}

// handleResize keeps the canvas in step with the terminal. The engine is
// unaffected; only the mapping to cells changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.opts.Width = msg.Width
	m.opts.Height = msg.Height
	m.canvas = view.NewCanvas(msg.Width, fieldHeight(msg.Height, m.opts.ShowHelp))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick releases lapsed holds and advances the engine to the frame's
// wall time.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.started.IsZero() {
		m.started = now
	}
	m.last = now

	for _, p := range m.holds.expire(now) {
		m.process(engine.MoveAction{Player: p, Direction: engine.Neutral})
	}

	elapsed := now.Sub(m.started)
	if elapsed > 0 {
		m.process(engine.TimeAction{T: uint64(elapsed.Microseconds())}) //#nosec G115 -- elapsed is positive
	}

	return m, tickCmd(m.opts.FPS)
}

// process sends one action to the engine. Errors are logged; the match
// carries on.
func (m *Model) process(a engine.Action) {
	err := m.opts.Metrics.Process(m.engine, a, m.sink)
	if err != nil {
		m.logger.Error("engine rejected action", "action", a.Name(), "err", err)
	}
}

// Save stores the session result. Copies of a model share one result, so
// only the first call that finds a rally records anything; sessions without
// a single rally are not recorded. Save must not run concurrently with
// Update.
func (m Model) Save() {
	if m.opts.Store == nil || m.mirror.Rallies() == 0 {
		return
	}
	m.saved.Do(m.saveMatch)
}

func (m Model) saveMatch() {
	rec := storage.MatchRecord{
		Preset:     m.opts.Preset.ID,
		Player:     m.opts.Player,
		LeftScore:  int(m.mirror.Score(engine.Left)),
		RightScore: int(m.mirror.Score(engine.Right)),
		Rallies:    m.mirror.Rallies(),
		StartedAt:  m.opened,
		EndedAt:    time.Now(),
	}
	for i, g := range m.mirror.Goals() {
		rec.Goals = append(rec.Goals, storage.Goal{
			Seq:    i + 1,
			Player: g.Player.String(),
			Score:  int(g.Score),
		})
	}

	id, err := m.opts.Store.SaveMatch(rec)
	if err != nil {
		m.logger.Error("could not save match", "err", err)
		return
	}
	m.logger.Debug("match saved", "id", id, "left", rec.LeftScore, "right", rec.RightScore)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.mirror.Draw(m.canvas, m.engine.Config())
	out := RenderCanvas(m.canvas)
	if m.opts.ShowHelp {
		out += "\n" + m.help.FullHelpView(m.keys.FullHelp())
	}
	return out
}

// Engine exposes the session's engine for inspection.
func (m Model) Engine() *engine.Engine {
	return m.engine
}

// Mirror exposes the session's view of the match.
func (m Model) Mirror() *view.Mirror {
	return m.mirror
}

// helpRows is the height of the full help view.
const helpRows = 2

func fieldHeight(height int, showHelp bool) int {
	if showHelp {
		height -= helpRows
	}
	return max(height, 0)
}

// Run starts the Bubble Tea program for a local match.
func Run(opts Options) error {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if m, ok := final.(Model); ok {
		m.Save()
	}
	return err
}
