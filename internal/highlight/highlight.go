// Package highlight draws the resolved element's rectangle onto a screen
// capture, the still-image counterpart of the on-screen overlay.
package highlight

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"unicode/utf8"

	"github.com/mj1618/grabtext/internal/model"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Overlay colors.
var (
	BorderColor = color.NRGBA{R: 0, G: 255, B: 71, A: 128}
	FillColor   = color.NRGBA{R: 0, G: 255, B: 71, A: 50}
	textColor   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	labelColor  = color.RGBA{R: 0, G: 0, B: 0, A: 200}
)

// maxLabelRunes keeps the label on a single short line.
const maxLabelRunes = 40

// Annotate returns a copy of img with rect filled, outlined and labelled.
// img and rect share global desktop coordinates.
func Annotate(img image.Image, rect model.Rect, label string) *image.RGBA {
	rgba := toRGBA(img)
	if rect.IsZero() {
		return rgba
	}

	box := image.Rect(rect.X, rect.Y, rect.X+rect.Width, rect.Y+rect.Height).Intersect(rgba.Bounds())
	if box.Empty() {
		return rgba
	}
	draw.Draw(rgba, box, image.NewUniform(FillColor), image.Point{}, draw.Over)
	drawRectangle(rgba, box, BorderColor)

	if label != "" {
		drawLabel(rgba, shorten(label), box)
	}
	return rgba
}

// Capturer grabs screen pixels. engine.Engine satisfies it.
type Capturer interface {
	Capture(r model.Rect) (image.Image, error)
}

// Snapshot captures res.Rect grown by padding pixels and annotates it with
// res.Text.
func Snapshot(c Capturer, res model.ResolvedText, padding int) (*image.RGBA, error) {
	if res.IsEmpty() {
		return nil, errors.New("nothing to snapshot: no text at point")
	}
	if padding < 0 {
		padding = 0
	}
	img, err := c.Capture(res.Rect.Inset(padding))
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return Annotate(img, res.Rect, res.Text), nil
}

// EncodePNG returns img as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func toRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}

// drawRectangle blends a 1px outline along the inside edge of r.
func drawRectangle(img *image.RGBA, r image.Rectangle, c color.Color) {
	src := image.NewUniform(c)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1),
		image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y+1, r.Min.X+1, r.Max.Y-1),
		image.Rect(r.Max.X-1, r.Min.Y+1, r.Max.X, r.Max.Y-1),
	}
	for _, e := range edges {
		if e.Empty() {
			continue
		}
		draw.Draw(img, e, src, image.Point{}, draw.Over)
	}
}

// drawLabel writes text on a dark strip just above box, or inside its top
// edge when there is no room above.
func drawLabel(img *image.RGBA, text string, box image.Rectangle) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil() + 4
	height := face.Height + 2

	top := box.Min.Y - height
	if top < img.Bounds().Min.Y {
		top = box.Min.Y
	}
	strip := image.Rect(box.Min.X, top, box.Min.X+width, top+height).Intersect(img.Bounds())
	if strip.Empty() {
		return
	}
	draw.Draw(img, strip, image.NewUniform(labelColor), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(textColor),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(strip.Min.X + 2),
			Y: fixed.I(strip.Min.Y + face.Ascent + 1),
		},
	}
	d.DrawString(text)
}

func shorten(s string) string {
	if utf8.RuneCountInString(s) <= maxLabelRunes {
		return s
	}
	r := []rune(s)
	return string(r[:maxLabelRunes-1]) + "…"
}
