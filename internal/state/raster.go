package state

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/gogpu/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Raster is the live pixel grid. Drawing goes through a gg software context;
// erasing and text write straight into the context's pixmap. The background
// is expected to be opaque, which keeps every pixel opaque.
type Raster struct {
	dc         *gg.Context
	background color.Color
}

func NewRaster(width, height int, background color.Color) *Raster {
	r := &Raster{
		dc:         gg.NewContext(width, height),
		background: background,
	}
	r.fill()
	return r
}

func (r *Raster) Size() (int, int) {
	return r.dc.Width(), r.dc.Height()
}

func (r *Raster) fill() {
	r.dc.ClearPath()
	r.dc.ClearWithColor(gg.FromColor(r.background))
}

// Reset reallocates the raster at the given size and fills it with the
// background. Prior content is discarded.
func (r *Raster) Reset(width, height int) error {
	if err := r.dc.Resize(width, height); err != nil {
		return err
	}
	r.fill()
	return nil
}

// view aliases the pixmap as an *image.RGBA. It is invalidated by Reset and
// by Restore of a snapshot with other dimensions.
func (r *Raster) view() *image.RGBA {
	pm := r.dc.ResizeTarget()
	return &image.RGBA{
		Pix:    pm.Data(),
		Stride: 4 * pm.Width(),
		Rect:   image.Rect(0, 0, pm.Width(), pm.Height()),
	}
}

// Image returns a copy of the current pixels.
func (r *Raster) Image() *image.RGBA {
	return r.dc.ResizeTarget().ToImage()
}

func (r *Raster) Snapshot() Snapshot {
	pm := r.dc.ResizeTarget()
	pix := make([]uint8, len(pm.Data()))
	copy(pix, pm.Data())
	return Snapshot{
		ID:     nextSnapshotID(),
		width:  pm.Width(),
		height: pm.Height(),
		pix:    pix,
	}
}

// Restore replaces the raster content, and size if it differs, with s.
func (r *Raster) Restore(s Snapshot) error {
	if err := r.dc.Resize(s.width, s.height); err != nil {
		return err
	}
	r.dc.ClearPath()
	copy(r.dc.ResizeTarget().Data(), s.pix)
	return nil
}

func (r *Raster) stroke(col color.Color, width float64, join gg.LineJoin) {
	r.dc.SetColor(col)
	r.dc.SetLineWidth(width)
	r.dc.SetLineCap(gg.LineCapRound)
	r.dc.SetLineJoin(join)
	if err := r.dc.Stroke(); err != nil {
		gg.Logger().Warn("stroke", "err", err)
	}
}

func (r *Raster) StrokeLine(a, b Point, col color.Color, width float64) {
	r.dc.DrawLine(a.X, a.Y, b.X, b.Y)
	r.stroke(col, width, gg.LineJoinRound)
}

func (r *Raster) StrokeRect(x, y, w, h float64, col color.Color, width float64) {
	r.dc.DrawRectangle(x, y, w, h)
	r.stroke(col, width, gg.LineJoinMiter)
}

func (r *Raster) StrokeCircle(center Point, radius float64, col color.Color, width float64) {
	if radius <= 0 {
		return
	}
	r.dc.DrawCircle(center.X, center.Y, radius)
	r.stroke(col, width, gg.LineJoinRound)
}

// ClearSquare paints a side×side square centered at p with the background.
// The square starts at the rounded top-left corner and spans the rounded
// side, so odd widths stay exact.
func (r *Raster) ClearSquare(p Point, side float64) {
	n := max(int(math.Round(side)), 1)
	x0 := int(math.Round(p.X - side/2))
	y0 := int(math.Round(p.Y - side/2))
	rect := image.Rect(x0, y0, x0+n, y0+n)
	dst := r.view()
	draw.Draw(dst, rect.Intersect(dst.Rect), image.NewUniform(r.background), image.Point{}, draw.Src)
}

// DrawText stamps s with its baseline origin at p.
func (r *Raster) DrawText(p Point, s string, col color.Color) {
	d := font.Drawer{
		Dst:  r.view(),
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(math.Round(p.X)), int(math.Round(p.Y))),
	}
	d.DrawString(s)
}

func (r *Raster) EncodePNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
