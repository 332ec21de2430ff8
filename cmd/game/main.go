package main

import (
	"flag"
	"log"
	"time"

	"github.com/Garsondee/last-light/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var settingsPath string
	var writeSettings string
	var seed int64
	var muted bool

	flag.StringVar(&settingsPath, "settings", "", "YAML settings file (defaults are used when empty)")
	flag.StringVar(&writeSettings, "write-settings", "", "write the default settings to this path and exit")
	flag.Int64Var(&seed, "seed", 0, "layout seed (0 = time based)")
	flag.BoolVar(&muted, "mute", false, "start with audio muted")
	flag.Parse()

	if writeSettings != "" {
		if err := game.WriteSettings(writeSettings, game.DefaultSettings()); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote default settings to %s", writeSettings)
		return
	}

	settings := game.DefaultSettings()
	if settingsPath != "" {
		s, err := game.LoadSettings(settingsPath)
		if err != nil {
			log.Fatal(err)
		}
		settings = s
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g, err := game.New(game.GameOptions{
		Settings: &game.StaticSettings{S: settings},
		Seed:     seed,
		Muted:    muted,
	})
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowTitle("Last Light")
	ebiten.SetWindowSize(g.WindowSize())
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
