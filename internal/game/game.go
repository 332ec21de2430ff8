package game

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	// borderWidth is the pixel gap between the window edge and the viewport.
	borderWidth = 24
	viewWidth   = 960
	viewHeight  = 640

	tickDT = 1.0 / 60
)

var simSpeeds = []float64{0, 0.5, 1, 2, 4}

// GameOptions configures New.
type GameOptions struct {
	Settings SettingsProvider
	Seed     int64
	Muted    bool
}

// Game is the ebiten front end around a Level.
type Game struct {
	width, height int
	viewW, viewH  int
	offX, offY    int

	settings SettingsProvider
	seed     int64
	level    *Level

	cam     *Camera
	input   *KeyboardInput
	feed    *EventFeed
	effects *EffectLayer
	audio   *AudioNotifier

	// Offscreen buffer for the whole world; camera transform applied on blit.
	worldBuf *ebiten.Image
	// Viewport-sized buffer so the world never bleeds into the feed panel.
	viewBuf *ebiten.Image
	patches []terrainPatch

	showGrid    bool
	showFlow    bool
	retreatView int // index into RetreatFields, -1 = hidden
	showHelp    bool

	simSpeed  float64
	tickAccum float64

	status      string
	statusTimer float64
}

// terrainPatch is a subtle ground colour variation.
type terrainPatch struct {
	x, y  float32
	w, h  float32
	shade uint8
}

// New creates the game and loads the first level.
func New(opts GameOptions) (*Game, error) {
	if opts.Settings == nil {
		opts.Settings = &StaticSettings{S: DefaultSettings()}
	}
	if err := opts.Settings.Settings().Validate(); err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	g := &Game{
		viewW:       viewWidth,
		viewH:       viewHeight,
		offX:        borderWidth,
		offY:        borderWidth,
		width:       borderWidth + viewWidth + borderWidth + feedPanelWidth,
		height:      borderWidth + viewHeight + borderWidth,
		settings:    opts.Settings,
		seed:        opts.Seed,
		effects:     &EffectLayer{},
		audio:       NewAudioNotifier(),
		retreatView: -1,
		showHelp:    true,
		simSpeed:    1,
	}
	g.audio.Muted = opts.Muted
	g.viewBuf = ebiten.NewImage(g.viewW, g.viewH)
	if err := g.restart(); err != nil {
		return nil, err
	}
	return g, nil
}

// restart builds a fresh level from the current settings. Each restart
// advances the seed so layouts differ between runs.
func (g *Game) restart() error {
	s := g.settings.Settings()
	cfg := s.GridConfig()
	rng := rand.New(rand.NewSource(g.seed)) // #nosec G404 -- layout only
	start := GridPos{X: cfg.Width / 2, Y: cfg.Height / 2}

	g.feed = NewEventFeed()
	g.effects.Clear()
	g.cam = NewCamera(g.viewW, g.viewH, cfg.WorldWidth(), cfg.WorldHeight())
	g.input = NewKeyboardInput(g.cam, g.offX, g.offY)

	lv, err := NewLevel(LevelOptions{
		Settings:    g.settings,
		Blocked:     GenerateLayout(cfg, rng, start, cfg.Width*cfg.Height/120),
		PlayerStart: &start,
		Input:       g.input,
		Notify:      Notifiers{g.effects, g.audio},
		Feed:        g.feed,
		Seed:        g.seed,
	})
	if err != nil {
		return err
	}
	g.level = lv
	if p := lv.Player(); p != nil {
		g.cam.X, g.cam.Y = p.Pos.X, p.Pos.Y
		g.cam.clamp()
	}

	ww, wh := int(math.Ceil(cfg.WorldWidth())), int(math.Ceil(cfg.WorldHeight()))
	if g.worldBuf == nil || g.worldBuf.Bounds().Dx() != ww || g.worldBuf.Bounds().Dy() != wh {
		g.worldBuf = ebiten.NewImage(ww, wh)
	}
	g.initTerrainPatches(rng, ww, wh)
	g.seed++
	return nil
}

func (g *Game) initTerrainPatches(rng *rand.Rand, w, h int) {
	g.patches = g.patches[:0]
	for i := 0; i < w*h/4000; i++ {
		g.patches = append(g.patches, terrainPatch{
			x:     float32(rng.Intn(w)),
			y:     float32(rng.Intn(h)),
			w:     float32(20 + rng.Intn(60)),
			h:     float32(20 + rng.Intn(60)),
			shade: uint8(rng.Intn(8)),
		})
	}
}

func (g *Game) Update() error {
	g.handleInput()
	if g.statusTimer > 0 {
		g.statusTimer -= tickDT
	}

	if g.simSpeed > 0 && !g.level.GameOver {
		g.tickAccum += g.simSpeed
		for g.tickAccum >= 1 {
			g.tickAccum--
			g.level.Step(tickDT)
			g.effects.Update(tickDT)
		}
	} else {
		// Still fade effects so tracers do not freeze on screen.
		g.effects.Update(tickDT)
	}

	if p := g.level.Player(); p != nil {
		g.cam.Follow(p.Pos, tickDT)
	}
	return nil
}

func (g *Game) flash(msg string) {
	g.status = msg
	g.statusTimer = 2
}

// handleInput processes the debug and UI keys (edge-triggered).
func (g *Game) handleInput() {
	lv := g.level
	if lv.GameOver && inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		if err := g.restart(); err != nil {
			g.flash(err.Error())
		}
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		if g.simSpeed > 0 {
			g.simSpeed = 0
		} else {
			g.simSpeed = 1
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyComma) {
		for i := len(simSpeeds) - 1; i > 0; i-- {
			if simSpeeds[i] <= g.simSpeed {
				g.simSpeed = simSpeeds[i-1]
				break
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPeriod) {
		for _, s := range simSpeeds {
			if s > g.simSpeed {
				g.simSpeed = s
				break
			}
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.showGrid = !g.showGrid
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.showFlow = !g.showFlow
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		// Cycle through retreat fields, then hide.
		g.retreatView++
		if g.retreatView >= len(lv.RetreatFields) {
			g.retreatView = -1
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHelp = !g.showHelp
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		next := PhaseNight
		if !lv.IsDay() {
			next = PhaseDay
		}
		lv.Cycle.SetPhase(lv, next)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.audio.Muted = !g.audio.Muted
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if err := setClipboardText(DebugReport(lv, 80)); err != nil {
			g.flash("copy failed: " + err.Error())
		} else {
			g.flash("debug report copied")
		}
	}

	zoom := g.cam.Zoom
	if _, wy := ebiten.Wheel(); wy != 0 {
		zoom *= math.Pow(1.12, wy)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		zoom *= 1.25
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		zoom /= 1.25
	}
	if zoom != g.cam.Zoom {
		g.cam.SetZoom(zoom)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 14, B: 12, A: 255})

	g.worldBuf.Clear()
	g.drawWorld(g.worldBuf)

	g.viewBuf.Clear()
	op := &ebiten.DrawImageOptions{GeoM: g.cam.GeoM()}
	g.viewBuf.DrawImage(g.worldBuf, op)

	var blit ebiten.DrawImageOptions
	blit.GeoM.Translate(float64(g.offX), float64(g.offY))
	screen.DrawImage(g.viewBuf, &blit)
	drawVignette(screen, g.offX, g.offY, g.viewW, g.viewH)

	ox, oy := float32(g.offX), float32(g.offY)
	vw, vh := float32(g.viewW), float32(g.viewH)
	vector.StrokeRect(screen, ox-1, oy-1, vw+2, vh+2, 2, color.RGBA{R: 65, G: 90, B: 65, A: 255}, false)
	vector.StrokeRect(screen, ox-3, oy-3, vw+6, vh+6, 1, color.RGBA{R: 40, G: 65, B: 40, A: 100}, false)

	g.feed.Draw(screen, g.offX+g.viewW+g.offX, g.height)
	g.drawHUD(screen)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// WindowSize returns the window size the layout is designed for.
func (g *Game) WindowSize() (int, int) {
	return g.width, g.height
}
