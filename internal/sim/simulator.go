package sim

import (
	"context"
	"math"

	"github.com/avshek/oscilab/internal/osc"
	"github.com/avshek/oscilab/internal/stiffness"
)

// MinSpacing is the smallest block spacing handed to renderers.
const MinSpacing = 0.5

// Result is the outcome of one run. On ErrZeroTrajectory the trajectory is
// still fully populated; only rendering is meaningless.
type Result struct {
	States       []osc.State
	Times        []float64
	Chain        *osc.Chain
	MaxAmplitude float64
	Spacing      float64
	EnergyDrift  float64
	Metrics      map[string]float64
}

// Simulator runs scenarios through a fixed integrator, feeding any attached
// metrics along the way. Not safe for concurrent use; each run owns its
// buffers exclusively.
type Simulator struct {
	integrator osc.Integrator
	metrics    []osc.Metric
}

func New(integrator osc.Integrator) *Simulator {
	return &Simulator{
		integrator: integrator,
		metrics:    make([]osc.Metric, 0),
	}
}

func (s *Simulator) AddMetric(m osc.Metric) { s.metrics = append(s.metrics, m) }

// Run validates the scenario, conditions the stiffness matrix, builds the
// oscillator chain and integrates it over the scenario's grid.
//
// Invalid input fails fast with a nil Result. A trajectory whose
// displacements are zero everywhere returns the complete Result together
// with osc.ErrZeroTrajectory so the caller can skip rendering.
func (s *Simulator) Run(ctx context.Context, sc Scenario) (*Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	conditioned, err := stiffness.Condition(sc.Stiffness, sc.Floor)
	if err != nil {
		return nil, err
	}

	chain, err := osc.NewChain(sc.Masses, stiffness.Rows(conditioned))
	if err != nil {
		return nil, err
	}

	grid := sc.TimeGrid()
	y0 := sc.InitialState()

	for _, m := range s.metrics {
		m.Reset()
	}

	result := &Result{
		States:  make([]osc.State, 0, len(grid)),
		Times:   make([]float64, 0, len(grid)),
		Chain:   chain,
		Metrics: make(map[string]float64),
	}

	x := y0.Clone()
	result.States = append(result.States, x)
	result.Times = append(result.Times, grid[0])
	s.observe(x, grid[0])

	initialEnergy := chain.Energy(x)

	for i := 0; i+1 < len(grid); i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		h := grid[i+1] - grid[i]
		x = s.integrator.Step(chain, x, grid[i], h)

		result.States = append(result.States, x)
		result.Times = append(result.Times, grid[i+1])
		s.observe(x, grid[i+1])
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	if initialEnergy != 0 {
		finalEnergy := chain.Energy(x)
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	result.MaxAmplitude = osc.MaxDisplacement(result.States, chain.Size())
	result.Spacing = math.Max(MinSpacing, 2*result.MaxAmplitude)

	if result.MaxAmplitude == 0 {
		return result, osc.ErrZeroTrajectory
	}

	return result, nil
}

func (s *Simulator) observe(x osc.State, t float64) {
	for _, m := range s.metrics {
		m.Observe(x, t)
	}
}
