package game

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/valentine/internal/scene"
)

var (
	pink100 = color.NRGBA{R: 0xfc, G: 0xe7, B: 0xf3, A: 0xff}
	red100  = color.NRGBA{R: 0xfe, G: 0xe2, B: 0xe2, A: 0xff}
	pink500 = color.NRGBA{R: 0xec, G: 0x48, B: 0x99, A: 0xff}
	pink600 = color.NRGBA{R: 0xdb, G: 0x27, B: 0x77, A: 0xff}
	rose500 = color.NRGBA{R: 0xf4, G: 0x3f, B: 0x5e, A: 0xff}
	rose600 = color.NRGBA{R: 0xe1, G: 0x1d, B: 0x48, A: 0xff}
	gray200 = color.NRGBA{R: 0xe5, G: 0xe7, B: 0xeb, A: 0xff}
	gray300 = color.NRGBA{R: 0xd1, G: 0xd5, B: 0xdb, A: 0xff}
	gray600 = color.NRGBA{R: 0x4b, G: 0x55, B: 0x63, A: 0xff}
	white   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

const appearTime = 400 * time.Millisecond

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawBackground(screen)
	g.drawHearts(screen)

	if g.accepted() {
		g.drawSuccess(screen)
	} else {
		g.drawQuestion(screen)
	}

	g.drawConfetti(screen)
	g.drawAudioToggle(screen)

	help := "Tab: focus  Enter: choose  M: sound  Esc/Q: quit"
	ebitenutil.DebugPrintAt(screen, help, 12, int(g.height)-20)
}

func (g *Game) drawBackground(screen *ebiten.Image) {
	const band = 4
	for y := 0.0; y < g.height; y += band {
		ratio := y / g.height
		shimmer := 0.04 * math.Sin(g.time*0.5+ratio*math.Pi)
		c := mix(pink100, red100, ratio+shimmer)
		vector.DrawFilledRect(screen, 0, float32(y), float32(g.width), band, c, false)
	}
}

func (g *Game) drawQuestion(screen *ebiten.Image) {
	f := g.frame
	d := g.scene.Display()

	drawText(screen, g.cfg.Prompt.Question, questionSize, f.question.x, f.question.y, pink600)

	accept := f.accept
	left, right := pink500, rose500
	if g.hovered == scene.AcceptControl {
		accept = accept.scaled(1.05)
		left, right = pink600, rose600
	}
	fillPill(screen, accept, left, right)
	cx, cy := accept.center()
	drawText(screen, "Yes", d.AcceptFontSize, cx, cy, white)

	reject := f.reject
	fill := gray200
	if g.hovered == scene.RejectControl {
		fill = gray300
	}
	fillPill(screen, reject, fill, fill)
	cx, cy = reject.center()
	drawText(screen, d.RejectMessage, rejectFontSize, cx, cy, gray600)

	switch g.focus {
	case scene.AcceptControl:
		strokePill(screen, accept.scaled(1.08), 3, pink600)
	case scene.RejectControl:
		strokePill(screen, reject.scaled(1.12), 3, pink600)
	}
}

func (g *Game) drawSuccess(screen *ebiten.Image) {
	since := g.scene.AcceptedFor()
	appear := clamp01(float64(since) / float64(appearTime))
	k := 0.5 + 0.5*appear
	cx, cy := g.width/2, g.height/2

	// one beat every two seconds, peaking at 1.2x
	beat := 1 + 0.2*(0.5-0.5*math.Cos(since.Seconds()*math.Pi))
	drawHeart(screen, cx, cy-110*k, 100*k*beat, 0, withAlpha(pink500, appear))

	drawText(screen, scene.CelebrationMessage, 48*k, cx, cy+10*k, withAlpha(pink600, appear))
	drawText(screen, "I knew you'd say yes! <3", 20*k, cx, cy+60*k, withAlpha(gray600, appear))
	drawText(screen, formatDuration(since), 16*k, cx, cy+95*k, withAlpha(gray600, appear*0.7))
}

func (g *Game) drawConfetti(screen *ebiten.Image) {
	g.particles = g.confetti.Snapshot(g.particles[:0])
	for i := range g.particles {
		p := &g.particles[i]
		c := p.Corners()
		clr := color.NRGBA{R: p.Color.R, G: p.Color.G, B: p.Color.B, A: uint8(255 * (1 - p.Progress()))}
		fillConvex(screen, []vec{
			{c[0][0], c[0][1]},
			{c[1][0], c[1][1]},
			{c[2][0], c[2][1]},
			{c[3][0], c[3][1]},
		}, []color.Color{clr})
	}
}

func (g *Game) drawAudioToggle(screen *ebiten.Image) {
	r := g.frame.audio
	cx, cy := r.center()

	bg := withAlpha(white, 0.5)
	if g.hovered == scene.AudioControl {
		bg = withAlpha(white, 0.8)
	}
	vector.DrawFilledCircle(screen, float32(cx), float32(cy), float32(r.w/2), bg, true)
	if g.focus == scene.AudioControl {
		vector.StrokeCircle(screen, float32(cx), float32(cy), float32(r.w/2+4), 3, pink600, true)
	}

	// speaker
	x := cx - 10
	vector.DrawFilledRect(screen, float32(x-2), float32(cy-4), 5, 8, pink600, true)
	fillConvex(screen, []vec{
		{x + 3, cy - 4}, {x + 9, cy - 10}, {x + 9, cy + 10}, {x + 3, cy + 4},
	}, []color.Color{pink600})

	if !g.audio.Enabled() {
		vector.StrokeLine(screen, float32(cx+3), float32(cy-5), float32(cx+13), float32(cy+5), 2, pink600, true)
		vector.StrokeLine(screen, float32(cx+3), float32(cy+5), float32(cx+13), float32(cy-5), 2, pink600, true)
		return
	}

	// level meter
	for i := 0; i < 3; i++ {
		h := 4 + 14*clamp01(g.level*(1.4-0.3*float64(i)))
		bx := cx + 3 + float64(i)*4
		vector.DrawFilledRect(screen, float32(bx), float32(cy-h/2), 2.5, float32(h), pink600, true)
	}
}
