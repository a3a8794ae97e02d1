package editor

import (
	"fmt"
	"image"

	"github.com/ironsheep/image-edit-mcp/internal/detection"
	"github.com/ironsheep/image-edit-mcp/internal/imaging"
)

// trimQuality is the quality an in-place trim saves with when none is given.
const trimQuality = 100

func (e *Editor) canvas(opts ResizeOptions) imaging.CanvasOptions {
	co := imaging.CanvasOptions{Resample: e.resample(opts.Resample)}
	if opts.WhiteBackground {
		white := imaging.White
		co.Background = &white
	}
	return co
}

// Resize scales src to exactly width x height.
func (e *Editor) Resize(src, dest string, width, height int, opts ResizeOptions) (*Result, error) {
	return e.apply("resize", src, dest, opts.SaveOptions, func(img image.Image, _ imaging.Metadata) (image.Image, error) {
		return imaging.Resize(img, width, height, e.canvas(opts))
	})
}

// ResizeToWidth scales src to width, keeping the aspect ratio.
func (e *Editor) ResizeToWidth(src, dest string, width int, opts ResizeOptions) (*Result, error) {
	return e.apply("resize to width", src, dest, opts.SaveOptions, func(img image.Image, _ imaging.Metadata) (image.Image, error) {
		return imaging.ResizeToWidth(img, width, e.canvas(opts))
	})
}

// ResizeToHeight scales src to height, keeping the aspect ratio.
func (e *Editor) ResizeToHeight(src, dest string, height int, opts ResizeOptions) (*Result, error) {
	return e.apply("resize to height", src, dest, opts.SaveOptions, func(img image.Image, _ imaging.Metadata) (image.Image, error) {
		return imaging.ResizeToHeight(img, height, e.canvas(opts))
	})
}

// ShrinkToFit scales src down to fit inside maxWidth x maxHeight. Images
// that already fit keep their size.
func (e *Editor) ShrinkToFit(src, dest string, maxWidth, maxHeight int, opts ResizeOptions) (*Result, error) {
	return e.apply("shrink to fit", src, dest, opts.SaveOptions, func(img image.Image, _ imaging.Metadata) (image.Image, error) {
		return imaging.ShrinkToFit(img, maxWidth, maxHeight, e.canvas(opts))
	})
}

// ShrinkToSquare fits src into a size x size square padded with
// opts.BackgroundColor. Without WhiteBackground the image's own
// transparency replaces the padding color where the two overlap.
func (e *Editor) ShrinkToSquare(src, dest string, size int, opts ResizeOptions) (*Result, error) {
	bg, err := e.background(opts.BackgroundColor)
	if err != nil {
		return nil, fmt.Errorf("shrink to square: %w", err)
	}
	co := imaging.CanvasOptions{
		Resample:      e.resample(opts.Resample),
		Background:    &bg,
		PreserveAlpha: !opts.WhiteBackground,
	}
	return e.apply("shrink to square", src, dest, opts.SaveOptions, func(img image.Image, _ imaging.Metadata) (image.Image, error) {
		return imaging.ShrinkToSquare(img, size, co)
	})
}

// ShrinkToNonBackground trims the border around src's content and writes
// the result back to src. The border color is bgColor, or the top-left
// pixel when bgColor is empty. A nil quality saves at 100.
func (e *Editor) ShrinkToNonBackground(src string, quality *int, bgColor string) (*Result, detection.TrimBox, error) {
	const op = "shrink to non-background"

	bg, err := imaging.ParseOptionalHexColor(bgColor)
	if err != nil {
		return nil, detection.TrimBox{}, fmt.Errorf("%s: %w", op, err)
	}
	img, meta, err := imaging.Load(src)
	if err != nil {
		return nil, detection.TrimBox{}, fmt.Errorf("%s: %w", op, err)
	}

	out, box := imaging.ShrinkToNonBackground(img, bg)
	q := imaging.WithQuality(trimQuality)
	if quality != nil {
		q = imaging.WithQuality(*quality)
	}
	res, err := e.save(op, out, src, meta.Format, q)
	if err != nil {
		return nil, box, err
	}
	return res, box, nil
}

// ShrinkToSquareNonBackground trims src in place, then fits the trimmed
// image into a size x size square written to dest. src is modified even if
// the second step fails.
func (e *Editor) ShrinkToSquareNonBackground(src, dest string, size int, opts ResizeOptions) (*Result, error) {
	if _, _, err := e.ShrinkToNonBackground(src, nil, ""); err != nil {
		return nil, err
	}
	return e.ShrinkToSquare(src, dest, size, opts)
}
