package config

// Two-pendulum preset constants: equal pendulums of mass m and length l
// joined by a spring of constant k, linearized about the hanging position.
const (
	pendulumMass    = 1.0
	pendulumLength  = 1.0
	pendulumSpring  = 50.0
	pendulumGravity = 9.8
)

var Presets = map[string]*Config{
	"chain3": {
		Integrator: "rk4",
		Masses:     []float64{1, 1, 1},
		Stiffness: [][]float64{
			{2, 1, 0},
			{1, 3, 1},
			{0, 1, 2},
		},
		InitDisplacements: []float64{-1, 0, 1},
		InitVelocities:    []float64{0, 1, 0},
		Start:             DefaultStart,
		End:               DefaultEnd,
		Points:            DefaultPoints,
		FrameRate:         30,
	},
	"pendulums": {
		Integrator: "rk4",
		Masses:     []float64{pendulumMass, pendulumMass},
		Stiffness: [][]float64{
			{pendulumSpring/pendulumMass + pendulumGravity/pendulumLength, -pendulumSpring / pendulumMass},
			{-pendulumSpring / pendulumMass, pendulumSpring/pendulumMass + pendulumGravity/pendulumLength},
		},
		InitDisplacements: []float64{0.1, -0.1},
		InitVelocities:    []float64{0, 0},
		Start:             DefaultStart,
		End:               DefaultEnd,
		Points:            DefaultPoints,
		FrameRate:         30,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
