package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/finplan/internal/calculation"
)

func testParams() calculation.MonteCarloParams {
	return calculation.MonteCarloParams{
		Initial:             1000000,
		MonthlyContribution: 25000,
		Years:               20,
		MeanReturnPct:       12,
		VolatilityPct:       15,
		TargetCorpus:        30000000,
		Trials:              512,
		Seed:                42,
	}
}

func TestSimulatePublishesProgressAndResult(t *testing.T) {
	run := func(ctx context.Context, p calculation.MonteCarloParams) (*calculation.MonteCarloResult, error) {
		require.NotNil(t, p.Progress)
		p.Progress(256, 512)
		p.Progress(512, 512)
		return &calculation.MonteCarloResult{Median: 1, Trials: 512, Seed: 42}, nil
	}
	m := NewModel(context.Background(), testParams(), run)

	msg := m.simulate()()
	res, ok := msg.(ResultMsg)
	require.True(t, ok)
	require.NoError(t, res.Err)
	assert.Equal(t, 512, res.Result.Trials)

	assert.Equal(t, ProgressMsg{Done: 256, Total: 512}, waitForEvent(m.events)())
	assert.Equal(t, ProgressMsg{Done: 512, Total: 512}, waitForEvent(m.events)())
	assert.Equal(t, eventsClosedMsg{}, waitForEvent(m.events)())
}

func TestSimulateWithRealEngine(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	m := NewModel(context.Background(), testParams(), engine.RunMonteCarlo)

	res, ok := m.simulate()().(ResultMsg)
	require.True(t, ok)
	require.NoError(t, res.Err)
	assert.Equal(t, 512, res.Result.Trials)
	assert.Len(t, res.Result.SortedResults, 512)
}

func TestUpdateProgress(t *testing.T) {
	m := NewModel(context.Background(), testParams(), nil)

	next, cmd := m.Update(ProgressMsg{Done: 256, Total: 512})
	m = next.(Model)
	assert.NotNil(t, cmd)
	assert.Equal(t, 256, m.progress.Done)
	assert.InDelta(t, 0.5, m.progress.Fraction(), 1e-9)
	assert.False(t, m.progress.IsComplete())
	assert.Contains(t, m.View(), "256/512 trials")
}

func TestUpdateResult(t *testing.T) {
	m := NewModel(context.Background(), testParams(), nil)
	sorted := make([]float64, 100)
	for i := range sorted {
		sorted[i] = float64(i+1) * 500000
	}
	result := &calculation.MonteCarloResult{
		Median: 25000000, P10: 5000000, P90: 45000000, Probability: 41,
		SortedResults: sorted, Trials: 100, Seed: 42,
	}

	next, _ := m.Update(ResultMsg{Result: result})
	m = next.(Model)
	assert.True(t, m.finished)
	assert.True(t, m.progress.IsComplete())

	got, err := m.Result()
	require.NoError(t, err)
	assert.Same(t, result, got)

	view := m.View()
	assert.Contains(t, view, "Median")
	assert.Contains(t, view, "₹2.50 Cr")
	assert.Contains(t, view, "41.0%")
	assert.Contains(t, view, "Outcome by percentile")
	assert.Contains(t, view, "Distribution")
}

func TestUpdateResultError(t *testing.T) {
	m := NewModel(context.Background(), testParams(), nil)
	boom := errors.New("boom")

	next, cmd := m.Update(ResultMsg{Err: boom})
	m = next.(Model)
	assert.NotNil(t, cmd)
	_, err := m.Result()
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, m.View(), "Error: boom")
}

func TestQuitBeforeFinishCancels(t *testing.T) {
	m := NewModel(context.Background(), testParams(), nil)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.ErrorIs(t, m.ctx.Err(), context.Canceled)

	_, err := m.Result()
	assert.ErrorIs(t, err, ErrAborted)
	assert.Contains(t, m.View(), "Simulation aborted")
}

func TestQuitAfterFinishKeepsResult(t *testing.T) {
	m := NewModel(context.Background(), testParams(), nil)
	next, _ := m.Update(ResultMsg{Result: &calculation.MonteCarloResult{Trials: 1}})
	m = next.(Model)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	assert.NoError(t, m.ctx.Err())
	_, err := m.Result()
	assert.NoError(t, err)
}

func TestHelpToggle(t *testing.T) {
	m := NewModel(context.Background(), testParams(), nil)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	m = next.(Model)
	assert.True(t, m.help.ShowAll)
}

func TestWindowResize(t *testing.T) {
	m := NewModel(context.Background(), testParams(), nil)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	m = next.(Model)
	assert.Equal(t, 140, m.width)
	assert.Equal(t, 140, m.help.Width)
}
