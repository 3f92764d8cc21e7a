package game

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/valentine/internal/scene"
)

func (g *Game) handleInput() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.handlePointer()
	g.handleTouches()
	g.handleKeys()
	return nil
}

func (g *Game) accepted() bool {
	return g.scene.State().Accepted
}

// hit returns the topmost control under (x, y).
func (g *Game) hit(x, y float64) scene.Control {
	switch {
	case g.frame.audio.contains(x, y):
		return scene.AudioControl
	case g.accepted():
		return scene.NoControl
	case g.frame.reject.contains(x, y):
		return scene.RejectControl
	case g.frame.accept.contains(x, y):
		return scene.AcceptControl
	}
	return scene.NoControl
}

func (g *Game) handlePointer() {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	g.hovered = g.hit(x, y)
	g.scene.PointerOver(g.hovered)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.activate(g.hit(x, y))
	}
}

func (g *Game) handleTouches() {
	g.touchIDs = inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		tx, ty := ebiten.TouchPosition(id)
		c := g.hit(float64(tx), float64(ty))
		if g.scene.Touch(c) {
			g.activate(c)
		}
	}
}

func (g *Game) handleKeys() {
	order := g.scene.Focusable()
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		delta := 1
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			delta = -1
		}
		g.focus = scene.NextFocus(order, g.focus, delta)
		g.log.Debug("focus", "control", g.focus)
	}
	if !slices.Contains(order, g.focus) {
		g.focus = scene.NoControl
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.activate(g.focus)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.activate(scene.AudioControl)
	}
}

func (g *Game) activate(c scene.Control) {
	if c == scene.AudioControl {
		on := g.audio.Toggle()
		g.log.Info("audio toggled", "enabled", on)
		return
	}
	g.scene.Activate(c)
}
