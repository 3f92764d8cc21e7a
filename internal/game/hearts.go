package game

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/valentine/internal/config"
)

// heart floats from below the window to above it, forever.
type heart struct {
	x        float64 // 0-1 of the viewport width
	size     float64
	duration float64 // seconds per trip
	delay    float64
}

type random interface {
	Float64() float64
}

func newHearts(rnd random) []heart {
	hs := make([]heart, config.HeartCount)
	for i := range hs {
		hs[i] = heart{
			x:        rnd.Float64(),
			size:     rnd.Float64()*30 + 20,
			duration: rnd.Float64()*10 + 10,
			delay:    rnd.Float64() * 10,
		}
	}
	return hs
}

func (g *Game) drawHearts(screen *ebiten.Image) {
	for i, h := range g.hearts {
		t := g.time - h.delay
		if t < 0 {
			continue
		}
		p := math.Mod(t, h.duration) / h.duration

		y := g.height*1.1 - p*g.height*1.2
		scale := 0.5 + p
		hue := 330 + 15*math.Sin(g.colorPhase*2*math.Pi+float64(i))
		drawHeart(screen, h.x*g.width, y, h.size*scale, p*2*math.Pi, hsv(hue, 0.32, 0.98, 51))
	}
}
