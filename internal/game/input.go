package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// KeyboardInput reads WASD/arrows for movement and the mouse for aim. Left
// button fires while held; right button or B places a block.
type KeyboardInput struct {
	cam        *Camera
	offX, offY int // viewport origin in window pixels
}

// NewKeyboardInput creates input that resolves the cursor through cam.
func NewKeyboardInput(cam *Camera, offX, offY int) *KeyboardInput {
	return &KeyboardInput{cam: cam, offX: offX, offY: offY}
}

func (k *KeyboardInput) Poll(_ *Level, p *Player) Command {
	var cmd Command
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		cmd.MoveY--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		cmd.MoveY++
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		cmd.MoveX--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		cmd.MoveX++
	}

	mx, my := ebiten.CursorPosition()
	aim := k.cam.ScreenToWorld(float64(mx-k.offX), float64(my-k.offY))
	if aim.DistanceTo(p.Pos) > 1 {
		cmd.Aim = p.Pos.AngleTo(aim)
		cmd.HasAim = true
	}

	cmd.Fire = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	cmd.Build = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) ||
		inpututil.IsKeyJustPressed(ebiten.KeyB)
	return cmd
}
