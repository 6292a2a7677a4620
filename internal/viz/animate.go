package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avshek/oscilab/internal/osc"
)

const canvasWidth = 80

type TickMsg time.Time

// Model replays a finished trajectory: each frame places block i at
// i*spacing + x_i(t) in world coordinates and draws the springs between
// neighbors.
type Model struct {
	states  []osc.State
	times   []float64
	n       int
	spacing float64
	fps     int
	frame   int
	playing bool
}

func NewModel(states []osc.State, times []float64, n int, spacing float64, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	return Model{
		states:  states,
		times:   times,
		n:       n,
		spacing: spacing,
		fps:     fps,
		playing: true,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.playing = !m.playing
		case "r":
			m.frame = 0
			m.playing = true
		case "[", "left":
			m.playing = false
			m.frame = (m.frame + len(m.states) - 1) % len(m.states)
		case "]", "right":
			m.playing = false
			m.frame = (m.frame + 1) % len(m.states)
		}
	case TickMsg:
		if m.playing {
			m.frame = (m.frame + 1) % len(m.states)
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	if len(m.states) == 0 {
		return "no trajectory"
	}
	state := m.states[m.frame]

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("oscillator chain  n=%d", m.n)))
	b.WriteString("\n")
	b.WriteString(canvasStyle.Render(m.renderChain(state)))
	b.WriteString("\n")

	status := "playing"
	line := fmt.Sprintf("t = %7.3f   frame %d/%d", m.times[m.frame], m.frame+1, len(m.states))
	if !m.playing {
		status = pausedStyle.Render("paused")
	}
	b.WriteString(labelStyle.Render("status") + valueStyle.Render(status) + "\n")
	b.WriteString(labelStyle.Render("time") + valueStyle.Render(line) + "\n")
	b.WriteString(helpStyle.Render("space pause · r restart · [/] scrub · q quit"))
	return b.String()
}

// renderChain maps world coordinates onto a fixed-width rune row. The
// world window matches the reference view: [-2, 2 + spacing*(n-1)].
func (m Model) renderChain(state osc.State) string {
	lo := -2.0
	hi := 2.0 + m.spacing*float64(m.n-1)
	span := hi - lo

	cols := make([]int, m.n)
	for i := 0; i < m.n; i++ {
		world := m.spacing*float64(i) + state[i]
		c := int((world - lo) / span * float64(canvasWidth-1))
		if c < 0 {
			c = 0
		}
		if c > canvasWidth-1 {
			c = canvasWidth - 1
		}
		cols[i] = c
	}

	row := make([]rune, canvasWidth)
	kind := make([]int, canvasWidth) // 0 empty, 1 spring, 2 block
	for i := range row {
		row[i] = ' '
	}
	for i := 0; i+1 < m.n; i++ {
		left, right := cols[i], cols[i+1]
		if right < left {
			left, right = right, left
		}
		for c := left + 1; c < right; c++ {
			row[c] = '~'
			kind[c] = 1
		}
	}
	for _, c := range cols {
		row[c] = '█'
		kind[c] = 2
	}

	var b strings.Builder
	b.WriteString(wallStyle.Render("|"))
	for i, r := range row {
		switch kind[i] {
		case 2:
			b.WriteString(blockStyle.Render(string(r)))
		case 1:
			b.WriteString(springStyle.Render(string(r)))
		default:
			b.WriteRune(r)
		}
	}
	b.WriteString(wallStyle.Render("|"))
	return b.String()
}

// Animate runs the playback loop until the user quits.
func Animate(states []osc.State, times []float64, n int, spacing float64, fps int) error {
	p := tea.NewProgram(NewModel(states, times, n, spacing, fps))
	_, err := p.Run()
	return err
}
