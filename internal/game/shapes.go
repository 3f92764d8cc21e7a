package game

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

type rect struct {
	x, y, w, h float64
}

func centered(cx, cy, w, h float64) rect {
	return rect{x: cx - w/2, y: cy - h/2, w: w, h: h}
}

func (r rect) contains(x, y float64) bool {
	return x >= r.x && x <= r.x+r.w && y >= r.y && y <= r.y+r.h
}

func (r rect) center() (float64, float64) {
	return r.x + r.w/2, r.y + r.h/2
}

// scaled grows r about its centre.
func (r rect) scaled(k float64) rect {
	cx, cy := r.center()
	return centered(cx, cy, r.w*k, r.h*k)
}

type vec struct{ x, y float64 }

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

func vertex(p vec, clr color.Color) ebiten.Vertex {
	r, g, b, a := clr.RGBA()
	return ebiten.Vertex{
		DstX:   float32(p.x),
		DstY:   float32(p.y),
		SrcX:   1,
		SrcY:   1,
		ColorR: float32(r) / 0xffff,
		ColorG: float32(g) / 0xffff,
		ColorB: float32(b) / 0xffff,
		ColorA: float32(a) / 0xffff,
	}
}

// fillConvex fills a convex polygon, one color per vertex.
func fillConvex(dst *ebiten.Image, pts []vec, colors []color.Color) {
	if len(pts) < 3 {
		return
	}
	vs := make([]ebiten.Vertex, len(pts))
	for i, p := range pts {
		vs[i] = vertex(p, colors[i%len(colors)])
	}
	is := make([]uint16, 0, 3*(len(pts)-2))
	for i := 1; i < len(pts)-1; i++ {
		is = append(is, 0, uint16(i), uint16(i+1))
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	dst.DrawTriangles(vs, is, whiteSubImage, op)
}

// fillPill draws a fully rounded button with a horizontal gradient.
func fillPill(dst *ebiten.Image, r rect, left, right color.Color) {
	rad := r.h / 2
	if r.w < r.h {
		rad = r.w / 2
	}
	vector.DrawFilledCircle(dst, float32(r.x+rad), float32(r.y+r.h/2), float32(rad), left, true)
	vector.DrawFilledCircle(dst, float32(r.x+r.w-rad), float32(r.y+r.h/2), float32(rad), right, true)
	fillConvex(dst, []vec{
		{r.x + rad, r.y},
		{r.x + r.w - rad, r.y},
		{r.x + r.w - rad, r.y + r.h},
		{r.x + rad, r.y + r.h},
	}, []color.Color{left, right, right, left})
}

// strokePill outlines a pill, used for the keyboard focus ring.
func strokePill(dst *ebiten.Image, r rect, width float32, clr color.Color) {
	rad := float32(r.h / 2)
	x0, x1 := float32(r.x)+rad, float32(r.x+r.w)-rad
	y0, y1 := float32(r.y), float32(r.y+r.h)

	var p vector.Path
	p.MoveTo(x0, y0)
	p.LineTo(x1, y0)
	p.Arc(x1, y0+rad, rad, -math.Pi/2, math.Pi/2, vector.Clockwise)
	p.LineTo(x0, y1)
	p.Arc(x0, y0+rad, rad, math.Pi/2, 3*math.Pi/2, vector.Clockwise)
	p.Close()

	vs, is := p.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{Width: width})
	cr, cg, cb, ca := clr.RGBA()
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(cr) / 0xffff
		vs[i].ColorG = float32(cg) / 0xffff
		vs[i].ColorB = float32(cb) / 0xffff
		vs[i].ColorA = float32(ca) / 0xffff
	}
	dst.DrawTriangles(vs, is, whiteSubImage, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// drawHeart draws a filled heart of the given width centred on (cx, cy),
// rotated by rot radians.
func drawHeart(dst *ebiten.Image, cx, cy, width, rot float64, clr color.Color) {
	r := width / 4
	sin, cos := math.Sincos(rot)
	at := func(x, y float64) vec {
		y -= 0.6 * r
		return vec{cx + x*cos - y*sin, cy + x*sin + y*cos}
	}
	for _, x := range []float64{-r, r} {
		c := at(x, 0)
		vector.DrawFilledCircle(dst, float32(c.x), float32(c.y), float32(r), clr, true)
	}
	fillConvex(dst, []vec{at(-1.95*r, 0.3*r), at(1.95*r, 0.3*r), at(0, 2.2*r)}, []color.Color{clr})
}
