// Package tui shows a live progress view while a Monte Carlo simulation runs,
// followed by a summary of the outcome distribution.
package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/tui/components"
)

// ErrAborted is returned when the user quits before the simulation finishes
var ErrAborted = errors.New("simulation aborted")

// Runner executes a simulation. CalculationEngine.RunMonteCarlo satisfies it.
type Runner func(ctx context.Context, p calculation.MonteCarloParams) (*calculation.MonteCarloResult, error)

type keyMap struct {
	Quit key.Binding
	Help key.Binding
}

func (k keyMap) ShortHelp() []key.Binding { return []key.Binding{k.Help, k.Quit} }

func (k keyMap) FullHelp() [][]key.Binding { return [][]key.Binding{{k.Help, k.Quit}} }

func defaultKeys() keyMap {
	return keyMap{
		Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c", "enter"), key.WithHelp("q", "quit")),
		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
	}
}

// Model is the progress-then-results view state
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc
	params calculation.MonteCarloParams
	run    Runner
	events chan tea.Msg

	progress components.TrialProgress
	keys     keyMap
	help     help.Model

	result   *calculation.MonteCarloResult
	err      error
	finished bool
	aborted  bool

	width  int
	height int
}

// NewModel prepares a view that runs p through run when started
func NewModel(ctx context.Context, p calculation.MonteCarloParams, run Runner) Model {
	ctx, cancel := context.WithCancel(ctx)
	return Model{
		ctx:      ctx,
		cancel:   cancel,
		params:   p,
		run:      run,
		events:   make(chan tea.Msg, 64),
		progress: components.NewTrialProgress(p.Trials).WithLabel("Simulating wealth paths"),
		keys:     defaultKeys(),
		help:     help.New(),
		width:    80,
		height:   24,
	}
}

// Init starts the simulation and begins listening for progress
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.simulate(), waitForEvent(m.events))
}

// simulate runs the simulation on the command goroutine, publishing progress to the
// events channel. Progress messages are dropped rather than stalling the workers
// when the view falls behind.
func (m Model) simulate() tea.Cmd {
	p := m.params
	events := m.events
	ctx := m.ctx
	run := m.run
	return func() tea.Msg {
		defer close(events)
		p.Progress = func(done, total int) {
			select {
			case events <- ProgressMsg{Done: done, Total: total}:
			default:
			}
		}
		res, err := run(ctx, p)
		return ResultMsg{Result: res, Err: err}
	}
}

// waitForEvent blocks for the next progress message
func waitForEvent(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return msg
	}
}

// Result returns the finished simulation, or the error that ended it
func (m Model) Result() (*calculation.MonteCarloResult, error) {
	switch {
	case m.err != nil:
		return nil, m.err
	case m.result != nil:
		return m.result, nil
	default:
		return nil, ErrAborted
	}
}

// Run drives the view to completion and returns the simulation outcome
func Run(ctx context.Context, p calculation.MonteCarloParams, run Runner, opts ...tea.ProgramOption) (*calculation.MonteCarloResult, error) {
	final, err := tea.NewProgram(NewModel(ctx, p, run), opts...).Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(Model)
	if !ok {
		return nil, errors.New("unexpected model type")
	}
	m.cancel()
	return m.Result()
}
