// SPDX-License-Identifier: MPL-2.0

package iconsynth

import (
	"image"
	"image/color"

	"golang.org/x/image/vector"

	"github.com/colorit/colorit/pkg/tint"
)

const (
	// masterSize is the resolution the glyph geometry is authored in.
	masterSize = 256

	darkenFactor  = 0.3
	lightenFactor = 0.2

	// kappa places cubic control points so a Bezier approximates a quarter circle.
	kappa = 0.5522847
)

// Glyph geometry in master-size units.
const (
	frontLeft   = 15
	frontTop    = 75
	frontRight  = 240
	frontBottom = 220
	frontRadius = 15
	borderWidth = 2

	highlightLeft  = 30
	highlightRight = 225
	highlightY     = 85
	highlightWidth = 3
)

var highlightColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 100}

type point struct{ x, y float32 }

// pen scales master-size coordinates onto a rasterizer.
type pen struct {
	z     *vector.Rasterizer
	scale float32
}

func (p pen) moveTo(pt point) { p.z.MoveTo(pt.x*p.scale, pt.y*p.scale) }
func (p pen) lineTo(pt point) { p.z.LineTo(pt.x*p.scale, pt.y*p.scale) }

// arc draws a quarter circle from the current point `from` to `to`, bending
// around the corner point c.
func (p pen) arc(from, c, to point) {
	c1 := point{from.x + kappa*(c.x-from.x), from.y + kappa*(c.y-from.y)}
	c2 := point{to.x + kappa*(c.x-to.x), to.y + kappa*(c.y-to.y)}
	p.z.CubeTo(c1.x*p.scale, c1.y*p.scale, c2.x*p.scale, c2.y*p.scale, to.x*p.scale, to.y*p.scale)
}

// roundedRect adds a closed rounded rectangle. reverse flips the winding so
// the rectangle cuts a hole out of an enclosing one.
func (p pen) roundedRect(l, t, r, b, rad float32, reverse bool) {
	corners := [4]struct{ c, from, to point }{
		{point{r, t}, point{r - rad, t}, point{r, t + rad}},
		{point{r, b}, point{r, b - rad}, point{r - rad, b}},
		{point{l, b}, point{l + rad, b}, point{l, b - rad}},
		{point{l, t}, point{l, t + rad}, point{l + rad, t}},
	}
	if !reverse {
		p.moveTo(corners[3].to)
		for _, k := range corners {
			p.lineTo(k.from)
			p.arc(k.from, k.c, k.to)
		}
	} else {
		p.moveTo(corners[0].from)
		for i := len(corners) - 1; i >= 0; i-- {
			k := corners[i]
			p.lineTo(k.to)
			p.arc(k.to, k.c, k.from)
		}
	}
	p.z.ClosePath()
}

// Render draws the folder glyph for c at the master resolution.
func Render(c tint.ColorSpec) *image.RGBA {
	dark := tint.Darken(c, darkenFactor)
	light := tint.Lighten(c, lightenFactor)

	dst := image.NewRGBA(image.Rect(0, 0, masterSize, masterSize))
	z := vector.NewRasterizer(masterSize, masterSize)
	p := pen{z: z, scale: float32(masterSize) / 256}

	// Back tab.
	p.moveTo(point{20, 55})
	p.arc(point{20, 55}, point{20, 40}, point{35, 40})
	p.lineTo(point{80, 40})
	p.lineTo(point{100, 60})
	p.lineTo(point{230, 60})
	p.arc(point{230, 60}, point{240, 60}, point{240, 70})
	p.lineTo(point{240, 80})
	p.lineTo(point{20, 80})
	z.ClosePath()
	z.Draw(dst, dst.Bounds(), image.NewUniform(dark.NRGBA()), image.Point{})

	// Front face with a top-to-bottom gradient.
	z.Reset(masterSize, masterSize)
	p.roundedRect(frontLeft, frontTop, frontRight, frontBottom, frontRadius, false)
	grad := &verticalGradient{
		rect:   dst.Bounds(),
		top:    float64(frontTop) * float64(p.scale),
		bottom: float64(frontBottom) * float64(p.scale),
		from:   light,
		to:     c,
	}
	z.Draw(dst, dst.Bounds(), grad, image.Point{})

	// Border: a ring centered on the front face outline.
	z.Reset(masterSize, masterSize)
	half := float32(borderWidth) / 2
	p.roundedRect(frontLeft-half, frontTop-half, frontRight+half, frontBottom+half, frontRadius+half, false)
	p.roundedRect(frontLeft+half, frontTop+half, frontRight-half, frontBottom-half, frontRadius-half, true)
	z.Draw(dst, dst.Bounds(), image.NewUniform(dark.NRGBA()), image.Point{})

	// Translucent highlight stroke near the top edge.
	z.Reset(masterSize, masterSize)
	hw := float32(highlightWidth) / 2
	p.moveTo(point{highlightLeft, highlightY - hw})
	p.lineTo(point{highlightRight, highlightY - hw})
	p.lineTo(point{highlightRight, highlightY + hw})
	p.lineTo(point{highlightLeft, highlightY + hw})
	z.ClosePath()
	z.Draw(dst, dst.Bounds(), image.NewUniform(highlightColor), image.Point{})

	return dst
}

// verticalGradient blends from `from` at y=top to `to` at y=bottom and
// clamps outside that band.
type verticalGradient struct {
	rect        image.Rectangle
	top, bottom float64
	from, to    tint.ColorSpec
}

func (g *verticalGradient) ColorModel() color.Model { return color.NRGBAModel }
func (g *verticalGradient) Bounds() image.Rectangle { return g.rect }

func (g *verticalGradient) At(_, y int) color.Color {
	t := (float64(y) + 0.5 - g.top) / (g.bottom - g.top)
	return tint.Blend(g.from, g.to, t).NRGBA()
}
