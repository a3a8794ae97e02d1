package imaging

import (
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// TextOptions describes a text overlay.
type TextOptions struct {
	Text string

	// FontFile is a TrueType or OpenType font. Empty selects the embedded
	// Go Regular font.
	FontFile string

	// Size is the font size in pixels.
	Size int

	Color  RGB
	Anchor Anchor
	Margin int

	// Shadow, when set, is drawn first at the text position shifted by
	// ShadowOffsetX/ShadowOffsetY.
	Shadow        *RGB
	ShadowOffsetX int
	ShadowOffsetY int
}

// LoadFont parses a font file, or returns the embedded Go Regular font when
// path is empty.
func LoadFont(path string) (*opentype.Font, error) {
	data := goregular.TTF
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: read font %s: %w", ErrIO, path, err)
		}
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: parse font %q: %v", ErrInvalidArgument, path, err)
	}
	return f, nil
}

// MeasureText returns the pixel width and height of the inked area of text
// rendered with face.
func MeasureText(face font.Face, text string) (int, int) {
	bounds, _ := font.BoundString(face, text)
	return (bounds.Max.X - bounds.Min.X).Ceil(), (bounds.Max.Y - bounds.Min.Y).Ceil()
}

// DrawText renders opts.Text onto a copy of img at the anchored baseline
// position (see TextPosition).
func DrawText(img image.Image, opts TextOptions) (*image.NRGBA, error) {
	if opts.Size <= 0 {
		return nil, fmt.Errorf("%w: font size %d", ErrInvalidArgument, opts.Size)
	}

	otf, err := LoadFont(opts.FontFile)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(otf, &opentype.FaceOptions{
		Size:    float64(opts.Size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: font face: %v", ErrInvalidArgument, err)
	}
	defer face.Close()

	tw, th := MeasureText(face, opts.Text)
	bounds := img.Bounds()
	p := TextPosition(opts.Anchor, bounds.Dx(), bounds.Dy(), tw, th, opts.Size, opts.Margin)

	dc := gg.NewContextForImage(img)
	dc.SetFontFace(face)

	if opts.Shadow != nil {
		dc.SetColor(opts.Shadow.NRGBA())
		dc.DrawString(opts.Text, float64(p.X+opts.ShadowOffsetX), float64(p.Y+opts.ShadowOffsetY))
	}
	dc.SetColor(opts.Color.NRGBA())
	dc.DrawString(opts.Text, float64(p.X), float64(p.Y))

	return imaging.Clone(dc.Image()), nil
}
