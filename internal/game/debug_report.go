package game

import (
	"fmt"
	"strings"
)

// ASCIIMap renders the current grid one rune per tile:
//
//	#  level geometry      b  placed block
//	@  player              Z  zombie (active)
//	z  zombie (waiting)    $  coin
//	.  open ground
//
// Entities are drawn at the tile containing their centre; a later entity
// overwrites an earlier one in the same tile except over the player.
func ASCIIMap(lv *Level) [][]rune {
	cfg := lv.Config
	rows := make([][]rune, cfg.Height)
	for y := range rows {
		rows[y] = []rune(strings.Repeat(".", cfg.Width))
	}
	put := func(p WorldPos, r rune) {
		tp := cfg.WorldToGrid(p)
		if !cfg.IsInside(tp) || rows[tp.Y][tp.X] == '@' {
			return
		}
		rows[tp.Y][tp.X] = r
	}
	for _, e := range lv.Registry.Snapshot() {
		switch v := e.(type) {
		case *Block:
			if v.Permanent {
				put(v.Pos, '#')
			} else {
				put(v.Pos, 'b')
			}
		case *Collectable:
			put(v.Pos, '$')
		}
	}
	for _, z := range lv.Registry.Zombies() {
		if z.State() == ZombieWaitingForNight {
			put(z.Pos, 'z')
		} else {
			put(z.Pos, 'Z')
		}
	}
	if p := lv.Player(); p != nil {
		put(p.Pos, '@')
	}
	return rows
}

// DebugReport is a plain-text dump of the level: header, map, zombie table
// and the tail of the event log. lastEvents <= 0 defaults to 40.
func DebugReport(lv *Level, lastEvents int) string {
	if lastEvents <= 0 {
		lastEvents = 40
	}
	var b strings.Builder
	fmt.Fprintf(&b, "--- Last Light debug report ---\n")
	fmt.Fprintf(&b, "session=%s tick=%d time=%.1fs grid=%dx%d tile=%d\n",
		lv.SessionID, lv.Tick, lv.Time, lv.Config.Width, lv.Config.Height, lv.Config.TileSize)
	b.WriteString(lv.Log.Summary(lv))
	b.WriteByte('\n')

	for _, row := range ASCIIMap(lv) {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	zs := lv.Registry.Zombies()
	if len(zs) > 0 {
		b.WriteString("zombies:\n")
		for _, z := range zs {
			tp := lv.Config.WorldToGrid(z.Pos)
			dist := "-"
			if lv.PlayerField != nil && lv.PlayerField.Reached(tp) {
				dist = fmt.Sprint(lv.PlayerField.Distance(tp))
			}
			fmt.Fprintf(&b, "  %-4s %-10s hp=%5.1f tile=(%d,%d) field=%s cooldown=%.2f\n",
				z.Label(), z.State(), z.Health, tp.X, tp.Y, dist, z.Cooldown())
		}
		b.WriteByte('\n')
	}

	entries := lv.Log.Entries()
	if len(entries) > lastEvents {
		entries = entries[len(entries)-lastEvents:]
	}
	b.WriteString("events:\n")
	for _, e := range entries {
		b.WriteString("  ")
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}
