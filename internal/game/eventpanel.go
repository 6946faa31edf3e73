package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/ricochet-arena/internal/arena"
)

const (
	logPanelWidth = 320
	logMaxEntries = 60
	logLineHeight = 11
)

// PanelEntry is a single line in the event panel.
type PanelEntry struct {
	Tick     int
	Label    string // e.g. "P", "E3", "B12"
	Category string
	Message  string
}

// EventPanel is a ring buffer of simulation events rendered on-screen.
type EventPanel struct {
	entries []PanelEntry
	head    int
	count   int
}

func NewEventPanel() *EventPanel {
	return &EventPanel{
		entries: make([]PanelEntry, logMaxEntries),
	}
}

// Add appends an entry to the panel.
func (ep *EventPanel) Add(tick int, label, category, msg string) {
	ep.entries[ep.head] = PanelEntry{
		Tick:     tick,
		Label:    label,
		Category: category,
		Message:  msg,
	}
	ep.head = (ep.head + 1) % logMaxEntries
	if ep.count < logMaxEntries {
		ep.count++
	}
}

// Observe adds the log entries worth showing. Bullet spawns are too
// frequent to be useful here.
func (ep *EventPanel) Observe(entries []arena.SimLogEntry) {
	for _, e := range entries {
		if e.Category == arena.CatBullet && e.Key == arena.KeySpawn {
			continue
		}
		if e.Category == arena.CatMove {
			continue
		}
		msg := e.Key
		if e.Value != "" {
			msg += " " + e.Value
		}
		ep.Add(e.Tick, e.Actor, e.Category, msg)
	}
}

// Recent returns entries in chronological order (oldest first).
func (ep *EventPanel) Recent() []PanelEntry {
	result := make([]PanelEntry, ep.count)
	for i := 0; i < ep.count; i++ {
		idx := (ep.head - ep.count + i + logMaxEntries) % logMaxEntries
		result[i] = ep.entries[idx]
	}
	return result
}

func categoryColor(cat string) color.RGBA {
	switch cat {
	case arena.CatActor:
		return color.RGBA{R: 230, G: 80, B: 60, A: 255}
	case arena.CatState:
		return color.RGBA{R: 240, G: 210, B: 80, A: 255}
	case arena.CatLevel:
		return color.RGBA{R: 90, G: 200, B: 120, A: 255}
	default:
		return color.RGBA{R: 150, G: 160, B: 190, A: 255}
	}
}

// Draw renders the event panel on the right side of the screen.
func (ep *EventPanel) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), color.RGBA{R: 10, G: 12, B: 14, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 60, B: 80, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), 16, color.RGBA{R: 20, G: 24, B: 34, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EVENTS", panelX+8, 2)
	vector.StrokeLine(screen, float32(panelX), 16, float32(panelX+logPanelWidth), 16, 1.0, color.RGBA{R: 50, G: 60, B: 90, A: 200}, false)

	entries := ep.Recent()

	// Newest at the bottom.
	maxVisible := (panelH - 24) / logLineHeight
	startIdx := 0
	if len(entries) > maxVisible {
		startIdx = len(entries) - maxVisible
	}
	visible := entries[startIdx:]
	recent := 3

	y := 20
	for i, e := range visible {
		if i >= len(visible)-recent {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(logPanelWidth-4), float32(logLineHeight), color.RGBA{R: 30, G: 34, B: 44, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+3), 3, 5, categoryColor(e.Category), false)
		line := fmt.Sprintf("%4d [%s] %s", e.Tick, e.Label, e.Message)
		ebitenutil.DebugPrintAt(screen, line, panelX+12, y)
		y += logLineHeight
	}
}
