package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/moran/internal/experiment"
	"github.com/san-kum/moran/internal/moran"
)

const (
	historyLen      = 120
	maxStepsPerTick = 1 << 16
)

type tickMsg time.Time

// Model is the Bubble Tea model of the live view.
type Model struct {
	cfg   experiment.Config
	fps   int
	speed int

	rng     moran.Rand
	counts  moran.Composition
	pop     *moran.Population
	step    int
	history []float64

	lastLifetime int
	lifetimeSum  int64

	paused bool
	err    error
	width  int
}

// NewModel validates cfg and prepares a process at its initial state.
func NewModel(cfg experiment.Config, fps, stepsPerFrame int) (Model, error) {
	if err := cfg.Params().Validate(); err != nil {
		return Model{}, err
	}
	switch cfg.Variant {
	case experiment.VariantNeutral, experiment.VariantMutation, experiment.VariantLifetime:
	default:
		return Model{}, fmt.Errorf("unknown variant: %s", cfg.Variant)
	}
	if fps <= 0 {
		fps = 30
	}
	if stepsPerFrame <= 0 {
		stepsPerFrame = 1
	}

	m := Model{cfg: cfg, fps: fps, speed: stepsPerFrame, width: 80}
	m.reset()
	return m, nil
}

func (m *Model) reset() {
	m.rng = experiment.NewRand(m.cfg.Seed)
	m.step = 0
	m.history = m.history[:0]
	m.lastLifetime = 0
	m.lifetimeSum = 0
	m.err = nil

	if m.cfg.Variant == experiment.VariantLifetime {
		m.pop = moran.NewPopulation(m.cfg.FreqA, m.cfg.Size)
		m.counts = m.pop.Composition()
	} else {
		m.pop = nil
		m.counts = moran.InitialComposition(m.cfg.FreqA, m.cfg.Size)
	}
	m.history = append(m.history, m.counts.FrequencyA())
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			m.reset()
		case "+", "=":
			if m.speed < maxStepsPerTick {
				m.speed *= 2
			}
		case "-", "_":
			if m.speed > 1 {
				m.speed /= 2
			}
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tickMsg:
		if !m.paused && !m.Done() {
			m.advance(m.speed)
		}
		return m, m.tick()
	}
	return m, nil
}

// Done reports whether the configured iteration count was reached or a step
// failed.
func (m Model) Done() bool {
	return m.err != nil || m.step >= m.cfg.Iterations
}

func (m *Model) advance(n int) {
	for i := 0; i < n && !m.Done(); i++ {
		switch m.cfg.Variant {
		case experiment.VariantLifetime:
			var lt int
			lt, m.err = moran.LifetimeStep(m.rng, m.pop, m.step)
			if m.err == nil {
				m.lastLifetime = lt
				m.lifetimeSum += int64(lt)
				m.counts = m.pop.Composition()
			}
		case experiment.VariantMutation:
			m.counts, m.err = moran.MutantStep(m.rng, m.counts, m.cfg.Advantage)
		default:
			m.counts, m.err = moran.NeutralStep(m.rng, m.counts)
		}
		if m.err != nil {
			return
		}
		m.step++
	}

	m.history = append(m.history, m.counts.FrequencyA())
	if len(m.history) > historyLen {
		m.history = m.history[len(m.history)-historyLen:]
	}
}

func (m Model) Step() int                 { return m.step }
func (m Model) Counts() moran.Composition { return m.counts }
func (m Model) Speed() int                { return m.speed }
func (m Model) Paused() bool              { return m.paused }

func (m Model) MeanLifetime() float64 {
	if m.step == 0 {
		return 0
	}
	return float64(m.lifetimeSum) / float64(m.step)
}

func (m Model) View() string {
	inner := m.width - 8
	if inner < 20 {
		inner = 20
	}
	if inner > historyLen {
		inner = historyLen
	}

	var b strings.Builder
	b.WriteString(Title.Render(fmt.Sprintf("moran · %s", m.cfg.Variant)))
	b.WriteString("  ")
	b.WriteString(m.status())
	b.WriteString("\n\n")

	b.WriteString(metric("step", fmt.Sprintf("%d / %d", m.step, m.cfg.Iterations)))
	b.WriteString(metric("N", fmt.Sprintf("%d", m.cfg.Size)))
	b.WriteString(metric("speed", fmt.Sprintf("%d/frame", m.speed)))
	b.WriteString("\n")
	b.WriteString(GenotypeA.Render(fmt.Sprintf("A %-8d", m.counts.A)))
	b.WriteString(GenotypeB.Render(fmt.Sprintf("B %-8d", m.counts.B)))
	b.WriteString(metric("freq A", fmt.Sprintf("%.4f", m.counts.FrequencyA())))
	if m.cfg.Variant == experiment.VariantMutation {
		b.WriteString(metric("advantage", fmt.Sprintf("%.3f", m.cfg.Advantage)))
	}
	if m.cfg.Variant == experiment.VariantLifetime {
		b.WriteString("\n")
		b.WriteString(metric("last lifetime", fmt.Sprintf("%d", m.lastLifetime)))
		b.WriteString(metric("mean lifetime", fmt.Sprintf("%.2f", m.MeanLifetime())))
	}
	b.WriteString("\n\n")

	b.WriteString(FrequencyBar(m.counts.FrequencyA(), inner))
	b.WriteString("\n")
	b.WriteString(Sparkline(m.history, inner, 0, 1))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(StatusFixed.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(KeyHint.Render("space pause · r reset · +/- speed · q quit"))

	return Panel.Render(b.String())
}

func (m Model) status() string {
	if g, fixed := m.counts.Fixed(); fixed {
		return StatusFixed.Render("fixed " + g.String())
	}
	switch {
	case m.Done():
		return Subtle.Render("done")
	case m.paused:
		return StatusPaused.Render("paused")
	}
	return StatusRunning.Render("running")
}

func metric(label, value string) string {
	return MetricLabel.Render(label+" ") + MetricValue.Render(value) + "   "
}
