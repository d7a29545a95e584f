package tui

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/skarn/linectl/internal/drive"
	"github.com/skarn/linectl/internal/track"
)

const (
	canvasWidth     = 72
	canvasHeight    = 20
	historyCapacity = 300
)

var (
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	pausedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	blockedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type TickMsg time.Time

// Model drives the live terminal view: it advances the control loop a few
// cycles per frame and renders the course, the robot trail, and the error
// history.
type Model struct {
	course     *track.Course
	robot      *track.Robot
	controller drive.Controller
	params     track.Params

	dt      float64
	t       float64
	running bool
	fps     int
	cycles  int

	reading drive.SensorPair
	command drive.Command

	canvas       *Canvas
	trail        []track.Point
	errorHistory []float64

	tunableKeys []string
	selected    int

	width  int
	height int
}

func NewModel(course *track.Course, robot *track.Robot, controller drive.Controller, params track.Params, fps int) Model {
	canvas := NewCanvas(canvasWidth, canvasHeight)

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range course.Waypoints {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	canvas.Frame(minX, minY, maxX, maxY)

	var keys []string
	if tun, ok := controller.(drive.Tunable); ok {
		for k := range tun.GetParams() {
			keys = append(keys, k)
		}
		sort.Strings(keys)
	}

	if fps <= 0 {
		fps = 30
	}

	return Model{
		course:       course,
		robot:        robot,
		controller:   controller,
		params:       params,
		dt:           params.Dt,
		running:      true,
		fps:          fps,
		canvas:       canvas,
		trail:        make([]track.Point, 0, historyCapacity),
		errorHistory: make([]float64, 0, historyCapacity),
		tunableKeys:  keys,
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "tab":
			m.cycleParam()
		case "up", "k":
			m.adjustParam(1.1)
		case "down", "j":
			m.adjustParam(0.9)
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case TickMsg:
		if m.running {
			// A few control cycles per frame keeps sim time ahead of
			// wall-clock at the default dt.
			for i := 0; i < 2; i++ {
				m.step()
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	m.reading = m.robot.Read()
	m.command = m.controller.Compute(m.reading, m.t)
	m.robot.Drive(m.command)
	m.t += m.dt
	m.cycles++

	m.trail = append(m.trail, track.Point{X: m.robot.X, Y: m.robot.Y})
	if len(m.trail) > historyCapacity {
		m.trail = m.trail[1:]
	}

	m.errorHistory = append(m.errorHistory, float64(m.reading.Error()))
	if len(m.errorHistory) > historyCapacity {
		m.errorHistory = m.errorHistory[1:]
	}
}

func (m *Model) reset() {
	robot := track.NewRobot(m.course, m.params)
	m.robot = robot
	m.t = 0
	m.cycles = 0
	m.trail = m.trail[:0]
	m.errorHistory = m.errorHistory[:0]
	if r, ok := m.controller.(interface{ Reset() }); ok {
		r.Reset()
	}
}

func (m *Model) cycleParam() {
	if len(m.tunableKeys) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.tunableKeys)
}

func (m *Model) adjustParam(factor float64) {
	tun, ok := m.controller.(drive.Tunable)
	if !ok || len(m.tunableKeys) == 0 {
		return
	}
	key := m.tunableKeys[m.selected]
	val := tun.GetParams()[key]
	if val == 0 {
		val = 1
	}
	tun.SetParam(key, val*factor)
}

func (m Model) View() string {
	m.canvas.Clear()

	segs := m.course.Waypoints
	for i := 0; i < len(segs)-1; i++ {
		m.canvas.Line(segs[i].X, segs[i].Y, segs[i+1].X, segs[i+1].Y, '.')
	}
	if m.course.Closed && len(segs) > 2 {
		last := segs[len(segs)-1]
		m.canvas.Line(last.X, last.Y, segs[0].X, segs[0].Y, '.')
	}

	for _, p := range m.trail {
		m.canvas.Set(p.X, p.Y, 'o')
	}

	// Heading marker one wheelbase ahead of the robot.
	hx := m.robot.X + m.params.Wheelbase*math.Cos(m.robot.Heading)
	hy := m.robot.Y + m.params.Wheelbase*math.Sin(m.robot.Heading)
	m.canvas.Set(hx, hy, '>')
	m.canvas.Set(m.robot.X, m.robot.Y, '@')

	var b strings.Builder

	status := headerStyle.Render(fmt.Sprintf("linectl live  %s", m.course.Name))
	if !m.running {
		status += "  " + pausedStyle.Render("[paused]")
	}
	if m.robot.Distance() < track.MaxRange {
		status += "  " + blockedStyle.Render(fmt.Sprintf("obstacle %.0fcm", m.robot.Distance()))
	}
	b.WriteString(status + "\n\n")

	b.WriteString(m.canvas.String())
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("t=") + valueStyle.Render(fmt.Sprintf("%-8.2fs", m.t)))
	b.WriteString(labelStyle.Render(" sensors=") + valueStyle.Render(fmt.Sprintf("%4d/%-4d", m.reading.Left, m.reading.Right)))
	b.WriteString(labelStyle.Render(" cmd=") + valueStyle.Render(fmt.Sprintf("%4d/%-4d", m.command.Left, m.command.Right)))
	b.WriteString(labelStyle.Render(" offset=") + valueStyle.Render(fmt.Sprintf("%+.1fcm", m.robot.Offset())))
	b.WriteString("\n")

	if tun, ok := m.controller.(drive.Tunable); ok {
		params := tun.GetParams()
		parts := make([]string, 0, len(m.tunableKeys))
		for i, k := range m.tunableKeys {
			s := fmt.Sprintf("%s=%.3g", k, params[k])
			if i == m.selected {
				parts = append(parts, activeParamStyle.Render(s))
			} else {
				parts = append(parts, labelStyle.Render(s))
			}
		}
		b.WriteString(strings.Join(parts, "  ") + "\n")
	}

	if len(m.errorHistory) > 2 {
		graph := asciigraph.Plot(m.errorHistory,
			asciigraph.Height(6),
			asciigraph.Width(canvasWidth),
			asciigraph.Caption("error (left - right)"),
		)
		b.WriteString("\n" + graph + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("space pause  tab param  up/down adjust  r reset  q quit"))

	return b.String()
}
