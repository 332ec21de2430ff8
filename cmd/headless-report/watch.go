package main

import (
	"fmt"
	"time"

	"github.com/Garsondee/last-light/internal/game"
	"github.com/gdamore/tcell/v2"
)

const watchFrame = time.Second / 30

var watchStyles = map[rune]tcell.Style{
	'#': tcell.StyleDefault.Foreground(tcell.ColorGray),
	'b': tcell.StyleDefault.Foreground(tcell.ColorOlive),
	'@': tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
	'Z': tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true),
	'z': tcell.StyleDefault.Foreground(tcell.ColorDarkGreen),
	'$': tcell.StyleDefault.Foreground(tcell.ColorGold),
	'.': tcell.StyleDefault.Foreground(tcell.ColorDimGray),
}

// watchRun renders one survival run in the terminal. Space pauses, +/-
// change speed, q or Esc quits. Input is read on its own goroutine and
// forwarded over a channel; the simulation stays on this goroutine.
func watchRun(settings game.Settings, seed int64, nights, ruins int) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer screen.Fini()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ts := newSim(settings, seed, ruins)
	lv := ts.Level
	ticksPerFrame := 2
	paused := false
	ticker := time.NewTicker(watchFrame)
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape, ev.Rune() == 'q':
					return nil
				case ev.Rune() == ' ':
					paused = !paused
				case ev.Rune() == '+', ev.Rune() == '=':
					ticksPerFrame = min(ticksPerFrame*2, 64)
				case ev.Rune() == '-':
					ticksPerFrame = max(ticksPerFrame/2, 1)
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
			if !paused && !finished(lv, nights) {
				ts.RunTicks(ticksPerFrame)
			}
			drawWatch(screen, lv, nights, ticksPerFrame, paused)
		}
	}
}

func drawWatch(screen tcell.Screen, lv *game.Level, nights, speed int, paused bool) {
	screen.Clear()
	for y, row := range game.ASCIIMap(lv) {
		for x, r := range row {
			screen.SetContent(x, y, r, nil, watchStyles[r])
		}
	}

	h := lv.Config.Height
	hp := 0.0
	if p := lv.Player(); p != nil {
		hp = p.Health
	}
	s := lv.Settings()
	lines := []string{
		fmt.Sprintf("T=%d  %s %d/%d  %.0fs left  x%d", lv.Tick, lv.Cycle.Phase(), lv.Cycle.Night(), nights, lv.Cycle.Remaining(s), speed),
		fmt.Sprintf("hp=%.0f coins=%d zombies=%d kills=%d retreated=%d", hp, lv.Wallet.Coins(), lv.Registry.CountKind(game.KindZombie), lv.Stats.Kills, lv.Stats.Retreated),
	}
	switch {
	case lv.GameOver:
		lines = append(lines, "player died - q to quit")
	case finished(lv, nights):
		lines = append(lines, "survived - q to quit")
	case paused:
		lines = append(lines, "paused - space to resume")
	default:
		lines = append(lines, "space pause  +/- speed  q quit")
	}
	for i, l := range lines {
		putString(screen, 0, h+1+i, l, tcell.StyleDefault)
	}
	screen.Show()
}

func putString(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
