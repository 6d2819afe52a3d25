// Package globe renders a slowly rotating globe with location markers as a
// Bubble Tea component.
package globe

import (
	"math"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	DefaultTheta    = 0.3
	DefaultSpeed    = 0.005
	DefaultInterval = 16 * time.Millisecond
	// DefaultDamping divides horizontal drag distance, in cells, before it is
	// applied as rotation.
	DefaultDamping = 40.0
	// keyStep is the rotation applied by one arrow key press.
	keyStep = 0.1
)

// Marker is a point on the globe. Lat and Long are degrees; Size is the
// relative marker size in [0, 1].
type Marker struct {
	Lat, Long float64
	Size      float64
}

// DefaultMarkers returns the marketplace's city markers.
func DefaultMarkers() []Marker {
	return []Marker{
		{Lat: 14.5995, Long: 120.9842, Size: 0.03},
		{Lat: 19.076, Long: 72.8777, Size: 0.1},
		{Lat: 23.8103, Long: 90.4125, Size: 0.05},
		{Lat: 30.0444, Long: 31.2357, Size: 0.07},
		{Lat: 39.9042, Long: 116.4074, Size: 0.08},
		{Lat: -23.5505, Long: -46.6333, Size: 0.1},
		{Lat: 19.4326, Long: -99.1332, Size: 0.1},
		{Lat: 40.7128, Long: -74.006, Size: 0.1},
		{Lat: 34.6937, Long: 135.5022, Size: 0.05},
		{Lat: 41.0082, Long: 28.9784, Size: 0.06},
	}
}

type Config struct {
	// Markers defaults to DefaultMarkers when nil. Use an empty non-nil slice
	// for a bare globe.
	Markers []Marker
	// Theta tilts the globe toward the viewer. Zero means DefaultTheta.
	Theta float64
	// Speed is the auto-rotation per tick in radians. Zero means
	// DefaultSpeed; negative disables auto-rotation.
	Speed    float64
	Interval time.Duration
	Damping  float64
	KeyMap   KeyMap
	Style    Style
}

type KeyMap struct {
	Left, Right key.Binding
	Pause       key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "rotate west")),
		Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "rotate east")),
		Pause: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause")),
	}
}

type Style struct {
	Sphere lipgloss.Style
	Grid   lipgloss.Style
	Marker lipgloss.Style
}

func DefaultStyle() Style {
	return Style{
		Sphere: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Grid:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Marker: lipgloss.NewStyle().Foreground(lipgloss.Color("#FB6415")).Bold(true),
	}
}

func normalizeConfig(cfg Config) Config {
	if cfg.Markers == nil {
		cfg.Markers = DefaultMarkers()
	}
	if cfg.Theta == 0 {
		cfg.Theta = DefaultTheta
	}
	switch {
	case cfg.Speed == 0:
		cfg.Speed = DefaultSpeed
	case cfg.Speed < 0:
		cfg.Speed = 0
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Damping <= 0 {
		cfg.Damping = DefaultDamping
	}
	if len(cfg.KeyMap.Left.Keys()) == 0 && len(cfg.KeyMap.Right.Keys()) == 0 {
		cfg.KeyMap = DefaultKeyMap()
	}
	return cfg
}

var lastID atomic.Int64

// TickMsg advances the auto-rotation of the Model that scheduled it. A tick
// whose tag is stale belongs to a stopped loop and is dropped.
type TickMsg struct {
	Time time.Time
	id   int64
	tag  int
}

type Model struct {
	cfg Config
	id  int64
	tag int

	width, height int

	// phi is the accumulated auto and keyboard rotation, drag the
	// accumulated pointer rotation.
	phi    float64
	drag   float64
	paused bool

	dragging bool
	dragX    int
}

func New(cfg Config) Model {
	return Model{cfg: normalizeConfig(cfg), id: lastID.Add(1)}
}

// Init starts the tick loop unless auto-rotation is disabled.
func (m Model) Init() tea.Cmd {
	if !m.rotating() {
		return nil
	}
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	id, tag := m.id, m.tag
	return tea.Tick(m.cfg.Interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, id: id, tag: tag}
	})
}

// rotating reports whether auto-rotation is running. The tick loop stops
// while it is not.
func (m Model) rotating() bool {
	return m.cfg.Speed > 0 && !m.paused && !m.dragging
}

// resume starts a fresh tick loop. Bumping the tag drops a tick still in
// flight from the previous loop.
func (m *Model) resume() tea.Cmd {
	m.tag++
	if !m.rotating() {
		return nil
	}
	return m.tick()
}

func (m Model) SetSize(width, height int) Model {
	m.width = max(width, 0)
	m.height = max(height, 0)
	return m
}

// Rotation returns the current rotation about the polar axis in radians.
func (m Model) Rotation() float64 { return m.phi + m.drag }

func (m Model) Paused() bool { return m.paused }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case TickMsg:
		if msg.id != m.id || msg.tag != m.tag || !m.rotating() {
			return m, nil
		}
		m.phi += m.cfg.Speed
		return m, m.tick()
	case tea.KeyMsg:
		km := m.cfg.KeyMap
		switch {
		case key.Matches(msg, km.Left):
			m.phi -= keyStep
		case key.Matches(msg, km.Right):
			m.phi += keyStep
		case key.Matches(msg, km.Pause):
			m.paused = !m.paused
			return m, m.resume()
		}
	case tea.MouseMsg:
		return m, m.updateMouse(msg)
	}
	return m, nil
}

func (m *Model) updateMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.dragging = true
			m.dragX = msg.X
		}
	case tea.MouseActionMotion:
		if m.dragging {
			m.drag += float64(msg.X-m.dragX) / m.cfg.Damping
			m.dragX = msg.X
		}
	case tea.MouseActionRelease:
		if m.dragging {
			m.dragging = false
			return m.resume()
		}
	}
	return nil
}

// shades runs from the darkest to the brightest lit surface.
const shades = ".,:-=+*%#"

const (
	gridStep  = 30.0
	gridWidth = 2.0
)

var light = r3.Unit(r3.Vec{X: -0.4, Y: 0.5, Z: 1})

func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	// Terminal cells are about twice as tall as wide.
	ry := float64(m.height) / 2
	rx := min(ry*2, float64(m.width)/2)
	ry = rx / 2
	cx, cy := float64(m.width)/2, float64(m.height)/2

	markers := m.projectMarkers(cx, cy, rx, ry)

	// Screen space to globe space undoes tilt, then spin.
	untilt := r3.NewRotation(-m.cfg.Theta, r3.Vec{X: 1})
	unspin := r3.NewRotation(-m.Rotation(), r3.Vec{Y: 1})

	st := m.cfg.Style
	var sb strings.Builder
	for row := 0; row < m.height; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < m.width; col++ {
			if mk, ok := markers[[2]int{col, row}]; ok {
				sb.WriteString(st.Marker.Render(mk))
				continue
			}
			x := (float64(col) + 0.5 - cx) / rx
			y := (cy - float64(row) - 0.5) / ry
			d := x*x + y*y
			if d > 1 {
				sb.WriteByte(' ')
				continue
			}
			n := r3.Vec{X: x, Y: y, Z: math.Sqrt(1 - d)}
			if onGrid(unspin.Rotate(untilt.Rotate(n))) {
				sb.WriteString(st.Grid.Render("·"))
				continue
			}
			sb.WriteString(st.Sphere.Render(string(shade(n))))
		}
	}
	return sb.String()
}

// projectMarkers maps visible markers to cells. Larger markers win shared
// cells.
func (m Model) projectMarkers(cx, cy, rx, ry float64) map[[2]int]string {
	spin := r3.NewRotation(m.Rotation(), r3.Vec{Y: 1})
	tilt := r3.NewRotation(m.cfg.Theta, r3.Vec{X: 1})

	out := make(map[[2]int]string)
	sizes := make(map[[2]int]float64)
	for _, mk := range m.cfg.Markers {
		p := tilt.Rotate(spin.Rotate(sphere(mk.Lat, mk.Long)))
		if p.Z <= 0 {
			continue
		}
		cell := [2]int{int(math.Floor(cx + p.X*rx)), int(math.Floor(cy - p.Y*ry))}
		if s, ok := sizes[cell]; ok && s >= mk.Size {
			continue
		}
		sizes[cell] = mk.Size
		glyph := "•"
		if mk.Size >= 0.07 {
			glyph = "●"
		}
		out[cell] = glyph
	}
	return out
}

// sphere converts degrees to a unit vector with Y through the north pole and
// Z toward the viewer at zero rotation.
func sphere(lat, long float64) r3.Vec {
	la, lo := lat*math.Pi/180, long*math.Pi/180
	return r3.Vec{
		X: math.Cos(la) * math.Sin(lo),
		Y: math.Sin(la),
		Z: math.Cos(la) * math.Cos(lo),
	}
}

func onGrid(p r3.Vec) bool {
	lat := math.Asin(max(-1, min(1, p.Y))) * 180 / math.Pi
	long := math.Atan2(p.X, p.Z) * 180 / math.Pi
	if math.Abs(lat) > 80 {
		return false
	}
	return nearMultiple(lat, gridStep, gridWidth) || nearMultiple(long, gridStep, gridWidth*1.5)
}

func nearMultiple(v, step, tol float64) bool {
	r := math.Mod(math.Abs(v), step)
	return r < tol || step-r < tol
}

func shade(n r3.Vec) byte {
	l := max(0, r3.Dot(n, light))
	i := int(l * float64(len(shades)-1))
	return shades[min(i, len(shades)-1)]
}
