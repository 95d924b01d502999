package main

import (
	"fmt"
	"image"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rook-computer/shelf/internal/buttons"
	"github.com/rook-computer/shelf/internal/render"
)

const (
	// Terminal columns used for the 480 px wide screen; each cell covers two pixel rows.
	screenColumns = 60
	longHold      = 1200 * time.Millisecond
	pageHold      = 800 * time.Millisecond
)

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type frameMsg struct{}

type statusMsg string

type keyAction struct {
	button buttons.Button
	hold   time.Duration
}

var keymap = map[string]keyAction{
	"up":         {buttons.Up, 0},
	"k":          {buttons.Up, 0},
	"down":       {buttons.Down, 0},
	"j":          {buttons.Down, 0},
	"left":       {buttons.Left, 0},
	"h":          {buttons.Left, 0},
	"right":      {buttons.Right, 0},
	"l":          {buttons.Right, 0},
	"enter":      {buttons.Confirm, 0},
	" ":          {buttons.Confirm, 0},
	"esc":        {buttons.Back, 0},
	"backspace":  {buttons.Back, 0},
	"B":          {buttons.Back, longHold},
	"shift+up":   {buttons.Up, pageHold},
	"K":          {buttons.Up, pageHold},
	"shift+down": {buttons.Down, pageHold},
	"J":          {buttons.Down, pageHold},
}

type model struct {
	display *render.MemoryDisplay
	src     *buttons.ChanSource
	frame   string
	status  string
}

func newModel(display *render.MemoryDisplay, src *buttons.ChanSource) *model {
	return &model{display: display, src: src}
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		if key == "q" || key == "ctrl+c" {
			return m, tea.Quit
		}
		if action, ok := keymap[key]; ok {
			m.src.Tap(action.button, time.Now(), action.hold)
		}
	case frameMsg:
		if frame := m.display.Frame(); frame != nil {
			m.frame = renderFrame(frame, screenColumns)
		}
	case statusMsg:
		m.status = string(msg)
	}
	return m, nil
}

func (m *model) View() string {
	var b strings.Builder
	b.WriteString(m.frame)
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("arrows/hjkl move  enter open  esc back  B long back  J/K page  q quit"))
	return b.String()
}

// renderFrame draws frame with upper-half-block cells, cols cells wide.
func renderFrame(frame *image.Gray, cols int) string {
	bounds := frame.Bounds()
	if cols <= 0 || bounds.Empty() {
		return ""
	}
	cell := bounds.Dx() / cols
	if cell < 1 {
		cell = 1
		cols = bounds.Dx()
	}
	rows := bounds.Dy() / (cell * 2)
	styles := map[[2]uint8]lipgloss.Style{}
	var b strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x := bounds.Min.X + c*cell
			y := bounds.Min.Y + r*cell*2
			top := quantize(average(frame, image.Rect(x, y, x+cell, y+cell)))
			bottom := quantize(average(frame, image.Rect(x, y+cell, x+cell, y+2*cell)))
			key := [2]uint8{top, bottom}
			style, ok := styles[key]
			if !ok {
				style = lipgloss.NewStyle().
					Foreground(lipgloss.Color(grayHex(top))).
					Background(lipgloss.Color(grayHex(bottom)))
				styles[key] = style
			}
			b.WriteString(style.Render("▀"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func average(frame *image.Gray, rect image.Rectangle) uint8 {
	rect = rect.Intersect(frame.Bounds())
	if rect.Empty() {
		return 0xFF
	}
	var sum, n int
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			sum += int(frame.GrayAt(x, y).Y)
			n++
		}
	}
	return uint8(sum / n)
}

// quantize maps to the four grey levels of the panel.
func quantize(v uint8) uint8 {
	return (v / 64) * 85
}

func grayHex(v uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", v, v, v)
}
