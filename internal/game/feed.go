package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	feedPanelWidth = 300
	feedMaxEntries = 60
	feedLineHeight = 14
)

// FeedEntry is a single line in the event feed.
type FeedEntry struct {
	Tick     int
	Label    string // e.g. "P", "Z3", "B7"
	Category string
	Message  string
}

// EventFeed is a ring buffer of notable level events rendered on-screen.
type EventFeed struct {
	entries []FeedEntry
	head    int
	count   int
}

// NewEventFeed creates a feed with a fixed capacity.
func NewEventFeed() *EventFeed {
	return &EventFeed{entries: make([]FeedEntry, feedMaxEntries)}
}

// Add appends an entry, overwriting the oldest once full.
func (f *EventFeed) Add(tick int, label, category, msg string) {
	f.entries[f.head] = FeedEntry{Tick: tick, Label: label, Category: category, Message: msg}
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// Len returns the number of stored entries.
func (f *EventFeed) Len() int { return f.count }

// Recent returns entries in chronological order (oldest first).
func (f *EventFeed) Recent() []FeedEntry {
	result := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = f.entries[idx]
	}
	return result
}

func feedColour(category string) color.RGBA {
	switch category {
	case "spawn":
		return color.RGBA{R: 110, G: 200, B: 90, A: 255}
	case "state":
		return color.RGBA{R: 220, G: 80, B: 70, A: 255}
	case "block":
		return color.RGBA{R: 200, G: 150, B: 80, A: 255}
	case "cycle":
		return color.RGBA{R: 120, G: 140, B: 230, A: 255}
	default:
		return color.RGBA{R: 170, G: 170, B: 170, A: 255}
	}
}

// Draw renders the feed panel at panelX, newest entry at the bottom.
func (f *EventFeed) Draw(screen *ebiten.Image, panelX, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, feedPanelWidth, float32(panelH), color.RGBA{R: 10, G: 12, B: 10, A: 230}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1, color.RGBA{R: 50, G: 70, B: 50, A: 255}, false)
	vector.FillRect(screen, float32(panelX), 0, feedPanelWidth, 18, color.RGBA{R: 20, G: 30, B: 20, A: 255}, false)
	drawText(screen, "EVENTS", panelX+8, 3, 12, color.RGBA{R: 220, G: 220, B: 220, A: 255})

	entries := f.Recent()
	maxVisible := (panelH - 24) / feedLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	y := 22
	for i, e := range entries {
		alpha := uint8(150)
		if i >= len(entries)-3 {
			alpha = 255
			vector.FillRect(screen, float32(panelX+2), float32(y), feedPanelWidth-4, feedLineHeight, color.RGBA{R: 30, G: 40, B: 30, A: 160}, false)
		}
		dot := feedColour(e.Category)
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 6, dot, false)
		line := fmt.Sprintf("%5d [%s] %s", e.Tick, e.Label, e.Message)
		drawText(screen, line, panelX+12, y, 11, color.RGBA{R: 210, G: 210, B: 210, A: alpha})
		y += feedLineHeight
	}
}
