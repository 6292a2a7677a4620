package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/avshek/oscilab/internal/integrators"
	"github.com/avshek/oscilab/internal/osc"
)

func referenceScenario() Scenario {
	return Scenario{
		Masses: []float64{1, 1, 1},
		Stiffness: [][]float64{
			{2, 1, 0},
			{1, 3, 1},
			{0, 1, 2},
		},
		InitDisplacements: []float64{-1, 0, 1},
		InitVelocities:    []float64{0, 1, 0},
		Start:             0,
		End:               20,
		Points:            1000,
	}
}

func TestRun_TrajectoryShape(t *testing.T) {
	s := New(integrators.NewRK4())
	sc := referenceScenario()

	result, err := s.Run(context.Background(), sc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.States) != sc.Points {
		t.Fatalf("trajectory length %d != grid length %d", len(result.States), sc.Points)
	}
	if len(result.Times) != sc.Points {
		t.Fatalf("times length %d != grid length %d", len(result.Times), sc.Points)
	}
	for i, state := range result.States {
		if len(state) != 6 {
			t.Fatalf("state %d has length %d, want 6", i, len(state))
		}
	}

	want := osc.State{-1, 0, 1, 0, 1, 0}
	for i, v := range result.States[0] {
		if v != want[i] {
			t.Errorf("row 0 entry %d = %f, want exactly %f", i, result.States[0][i], want[i])
		}
	}
}

func TestRun_ReferenceScenario(t *testing.T) {
	s := New(integrators.NewRK4())

	result, err := s.Run(context.Background(), referenceScenario())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.MaxAmplitude <= 0 {
		t.Errorf("expected positive max amplitude, got %f", result.MaxAmplitude)
	}
	if result.Spacing < 2*result.MaxAmplitude-1e-12 {
		t.Errorf("spacing %f below 2*maxAmp %f", result.Spacing, 2*result.MaxAmplitude)
	}
	for _, state := range result.States {
		if !state.IsValid() {
			t.Fatal("trajectory contains NaN/Inf")
		}
	}
	// RK4 at dt≈0.02 on a linear system holds energy tightly.
	if result.EnergyDrift > 1e-3 {
		t.Errorf("energy drift %e unexpectedly large", result.EnergyDrift)
	}
}

func TestRun_DegenerateGrid(t *testing.T) {
	s := New(integrators.NewRK4())
	sc := referenceScenario()
	sc.Points = 1

	result, err := s.Run(context.Background(), sc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.States) != 1 {
		t.Fatalf("expected single-row trajectory, got %d rows", len(result.States))
	}
	want := sc.InitialState()
	for i, v := range result.States[0] {
		if v != want[i] {
			t.Errorf("entry %d = %f, want %f", i, v, want[i])
		}
	}
}

func TestRun_ExplicitNonUniformGrid(t *testing.T) {
	s := New(integrators.NewRK4())
	sc := referenceScenario()
	sc.Grid = osc.TimeGrid{0, 0.1, 0.3, 0.7, 1.5}

	result, err := s.Run(context.Background(), sc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.States) != 5 {
		t.Errorf("expected 5 rows, got %d", len(result.States))
	}
	if result.Times[4] != 1.5 {
		t.Errorf("expected final time 1.5, got %f", result.Times[4])
	}
}

func TestRun_ZeroTrajectory(t *testing.T) {
	s := New(integrators.NewRK4())
	sc := referenceScenario()
	sc.InitDisplacements = []float64{0, 0, 0}
	sc.InitVelocities = []float64{0, 0, 0}
	sc.Points = 50

	result, err := s.Run(context.Background(), sc)
	if !errors.Is(err, osc.ErrZeroTrajectory) {
		t.Fatalf("expected ErrZeroTrajectory, got %v", err)
	}

	// The trajectory must still be fully available to the caller.
	if result == nil || len(result.States) != 50 {
		t.Fatal("full trajectory should accompany ErrZeroTrajectory")
	}
	for _, state := range result.States {
		for _, v := range state {
			if v != 0 {
				t.Fatal("trajectory of a rest system should stay exactly zero")
			}
		}
	}
	if result.Spacing != MinSpacing {
		t.Errorf("expected minimum spacing %f, got %f", MinSpacing, result.Spacing)
	}
}

func TestRun_InvalidInput(t *testing.T) {
	s := New(integrators.NewRK4())

	cases := []struct {
		name   string
		mutate func(*Scenario)
		want   error
	}{
		{"non-square stiffness", func(sc *Scenario) { sc.Stiffness = [][]float64{{1, 2}, {3, 4}, {5, 6}} }, osc.ErrNotSquare},
		{"missing stiffness row", func(sc *Scenario) { sc.Stiffness = sc.Stiffness[:2] }, osc.ErrNotSquare},
		{"zero mass", func(sc *Scenario) { sc.Masses = []float64{1, 0, 1} }, osc.ErrNonPositiveMass},
		{"negative mass", func(sc *Scenario) { sc.Masses = []float64{1, -2, 1} }, osc.ErrNonPositiveMass},
		{"short displacements", func(sc *Scenario) { sc.InitDisplacements = []float64{1} }, osc.ErrDimensionMismatch},
		{"long velocities", func(sc *Scenario) { sc.InitVelocities = []float64{0, 0, 0, 0} }, osc.ErrDimensionMismatch},
		{"no oscillators", func(sc *Scenario) { sc.Masses = nil }, osc.ErrDimensionMismatch},
		{"bad explicit grid", func(sc *Scenario) { sc.Grid = osc.TimeGrid{0, 1, 0.5} }, osc.ErrBadGrid},
		{"empty interval", func(sc *Scenario) { sc.Start, sc.End = 5, 5 }, osc.ErrBadGrid},
		{"zero points", func(sc *Scenario) { sc.Points = 0 }, osc.ErrBadGrid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sc := referenceScenario()
			tc.mutate(&sc)

			result, err := s.Run(context.Background(), sc)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
			if result != nil {
				t.Error("no partial result should be exposed on invalid input")
			}
		})
	}
}

func TestRun_ConditioningStabilizes(t *testing.T) {
	// Raw matrix is indefinite; without eigenvalue clamping the dynamics
	// diverge exponentially.
	s := New(integrators.NewRK4())
	sc := Scenario{
		Masses:            []float64{1, 1},
		Stiffness:         [][]float64{{1, 3}, {3, 1}},
		InitDisplacements: []float64{0.1, -0.1},
		InitVelocities:    []float64{0, 0},
		Start:             0,
		End:               20,
		Points:            1000,
	}

	result, err := s.Run(context.Background(), sc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, state := range result.States {
		for _, v := range state {
			if math.Abs(v) > 100 {
				t.Fatalf("conditioned system should not diverge, saw %f", v)
			}
		}
	}
}

func TestRun_ContextCanceled(t *testing.T) {
	s := New(integrators.NewRK4())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Run(ctx, referenceScenario())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRun_Metrics(t *testing.T) {
	s := New(integrators.NewRK4())
	m := &countingMetric{}
	s.AddMetric(m)

	sc := referenceScenario()
	sc.Points = 10

	result, err := s.Run(context.Background(), sc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.observations != 10 {
		t.Errorf("metric should see every grid point, got %d", m.observations)
	}
	if result.Metrics["count"] != 10 {
		t.Errorf("expected recorded metric value 10, got %f", result.Metrics["count"])
	}
	if !m.wasReset {
		t.Error("metrics should be reset at the start of a run")
	}
}

type countingMetric struct {
	observations int
	wasReset     bool
}

func (c *countingMetric) Name() string { return "count" }

func (c *countingMetric) Observe(x osc.State, t float64) { c.observations++ }

func (c *countingMetric) Value() float64 { return float64(c.observations) }

func (c *countingMetric) Reset() { c.wasReset = true; c.observations = 0 }
