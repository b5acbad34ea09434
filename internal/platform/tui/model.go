package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/msorokin/robolab/internal/core"
	"github.com/msorokin/robolab/internal/executor"
	"github.com/msorokin/robolab/internal/script"
	"github.com/msorokin/robolab/internal/sim"
	"github.com/msorokin/robolab/internal/storage"
)

// Model is the Bubble Tea model for the live simulation dashboard.
type Model struct {
	state  *sim.State
	loop   *sim.Loop
	clock  sim.Clock
	params sim.Params

	cmds       []script.Command
	scriptName string
	store      *storage.Store

	screen *core.Screen
	keys   DashboardKeyMap
	help   help.Model

	cancel   context.CancelFunc
	runDone  chan error
	runStart time.Time

	paused   bool
	quitting bool
	width    int
	height   int
}

// NewModel creates a dashboard model over the shared simulation state.
// The store may be nil; run records are then not persisted.
func NewModel(state *sim.State, loop *sim.Loop, params sim.Params,
	cmds []script.Command, scriptName string, store *storage.Store) Model {
	h := help.New()
	h.ShowAll = false

	return Model{
		state:      state,
		loop:       loop,
		clock:      sim.NewWallClock(params.TickRate),
		params:     params,
		cmds:       cmds,
		scriptName: scriptName,
		store:      store,
		screen:     core.NewScreen(80, 24),
		keys:       DefaultDashboardKeyMap(),
		help:       h,
	}
}

// Init starts the frame loop and kicks off the command sequence.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.params.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.stopRun()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Rerun):
		m.stopRun()
		return m.startRun()

	case key.Matches(msg, m.keys.Reset):
		m.stopRun()
		m.state.Reset()
		return m, nil

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		return m, nil
	}

	return m, nil
}

// handleTick advances the simulation by one frame. The first tick also
// starts the initial run so the sequence begins against a live loop.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.cancel == nil && m.runDone == nil && len(m.cmds) > 0 {
		next, _ := m.startRun()
		m = next.(Model)
	}

	if !m.paused {
		m.loop.Tick(now)
	}

	// Reap a finished run and persist its record.
	if m.runDone != nil {
		select {
		case err := <-m.runDone:
			m.saveRun(err)
			m.runDone = nil
			m.cancel = nil
		default:
		}
	}

	return m, tickCmd(m.params.TickRate)
}

// startRun launches the command sequence in the background.
func (m Model) startRun() (tea.Model, tea.Cmd) {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.runDone = make(chan error, 1)
	m.runStart = time.Now()

	exec := executor.New(m.state, m.clock,
		executor.WithTrajectorySteps(m.params.TrajectorySteps))
	done := m.runDone
	cmds := m.cmds
	go func() {
		done <- exec.Run(ctx, cmds)
	}()

	return m, nil
}

// stopRun cancels any in-flight command sequence.
func (m *Model) stopRun() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// saveRun records the finished run, best effort.
func (m *Model) saveRun(runErr error) {
	if m.store == nil {
		return
	}

	snap := m.state.Snapshot()
	reason := "completed"
	executed := len(m.cmds)
	if runErr != nil {
		reason = "cancelled"
		executed = snap.CommandIndex
	}

	//nolint:errcheck // Best-effort save, dashboard continues regardless
	m.store.SaveRun(storage.RunRecord{
		Robot:     snap.Robot.String(),
		Script:    m.scriptName,
		Commands:  len(m.cmds),
		Executed:  executed,
		Duration:  int(time.Since(m.runStart).Milliseconds()),
		EndReason: reason,
	})
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.state.Snapshot()
	drawDashboard(m.screen, snap, m.scriptName, m.paused)

	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Run starts the Bubble Tea program with the given model.
func Run(state *sim.State, loop *sim.Loop, params sim.Params,
	cmds []script.Command, scriptName string, store *storage.Store) error {
	model := NewModel(state, loop, params, cmds, scriptName, store)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
