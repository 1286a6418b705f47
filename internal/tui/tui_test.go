package tui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/varint/internal/dynamo"
)

type shift struct{ failAt float64 }

func (shift) Name() string { return "shift" }

func (s shift) Step(t float64, x dynamo.Pair, dt float64) (dynamo.Pair, error) {
	if s.failAt > 0 && t+dt > s.failAt {
		return dynamo.Pair{}, errors.New("boom")
	}
	return dynamo.Pair{P: x.P, Q: x.Q + dt}, nil
}

func testRun(st shift) Run {
	return Run{
		Name:       "test",
		Model:      "free",
		Stepper:    st,
		Init:       dynamo.Pair{P: 1},
		Span:       dynamo.Span{Start: 0, End: 1},
		Dt:         0.25,
		Observable: func(p, q float64) float64 { return p*p/2 + q },
	}
}

func press(m model, key string) model {
	var msg tea.KeyMsg
	if key == " " {
		msg = tea.KeyMsg{Type: tea.KeySpace}
	} else {
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(model)
}

func TestStepsUntilDone(t *testing.T) {
	m := newModel(testRun(shift{}))
	for i := 0; i < 10; i++ {
		next, _ := m.Update(tickMsg{})
		m = next.(model)
	}
	if !m.done {
		t.Fatal("expected run to finish")
	}
	if m.k != 4 {
		t.Errorf("expected 4 steps, got %d", m.k)
	}
	if m.x.Q != 1 {
		t.Errorf("expected q=1, got %f", m.x.Q)
	}
	if !strings.Contains(m.View(), "done") {
		t.Error("expected done status in view")
	}
}

func TestPauseAndSingleStep(t *testing.T) {
	m := newModel(testRun(shift{}))
	m = press(m, " ")
	if !m.paused {
		t.Fatal("expected paused")
	}
	next, _ := m.Update(tickMsg{})
	m = next.(model)
	if m.k != 0 {
		t.Errorf("expected no progress while paused, got %d", m.k)
	}
	m = press(m, "n")
	if m.k != 1 {
		t.Errorf("expected a single step, got %d", m.k)
	}
	m = press(m, "r")
	if m.k != 0 || m.x != m.run.Init {
		t.Error("expected reset to the initial pair")
	}
}

func TestSpeed(t *testing.T) {
	m := newModel(testRun(shift{}))
	m = press(m, "+")
	m = press(m, "+")
	if m.speed != 4 {
		t.Errorf("expected speed 4, got %f", m.speed)
	}
	next, _ := m.Update(tickMsg{})
	if next.(model).k != 4 {
		t.Errorf("expected 4 steps in one tick, got %d", next.(model).k)
	}
	m = press(m, "0")
	if m.speed != 1 {
		t.Error("expected speed reset")
	}
}

func TestStepFailure(t *testing.T) {
	m := newModel(testRun(shift{failAt: 0.6}))
	for i := 0; i < 5; i++ {
		next, _ := m.Update(tickMsg{})
		m = next.(model)
	}
	if !errors.Is(m.err, dynamo.ErrConvergence) {
		t.Fatalf("expected convergence error, got %v", m.err)
	}
	if m.k != 2 {
		t.Errorf("expected to stop after 2 steps, got %d", m.k)
	}
	if !strings.Contains(m.View(), "failed") {
		t.Error("expected failure in view")
	}
}

func TestLiveRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, "pendulum", 1000)
	r.Start()
	r.OnStep(0, 0, dynamo.Pair{Q: 0.3}, 1)
	r.Stop()

	out := buf.String()
	if !strings.Contains(out, "pendulum") || !strings.Contains(out, "q=0.3000") {
		t.Errorf("unexpected frame %q", out)
	}
}
