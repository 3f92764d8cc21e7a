package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// basicfont is a 13px bitmap face; larger sizes are drawn scaled.
const faceHeight = 13

var face = text.NewGoXFace(basicfont.Face7x13)

// measure returns the size of s rendered at size px.
func measure(s string, size float64) (w, h float64) {
	w, h = text.Measure(s, face, 0)
	k := size / faceHeight
	return w * k, h * k
}

// drawText draws s centred on (cx, cy).
func drawText(dst *ebiten.Image, s string, size, cx, cy float64, clr color.Color) {
	k := size / faceHeight
	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.GeoM.Scale(k, k)
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(clr)
	op.Filter = ebiten.FilterLinear
	text.Draw(dst, s, face, op)
}
