package editor

import (
	"fmt"
	"image"

	"github.com/ironsheep/image-edit-mcp/internal/imaging"
)

// Convert re-encodes src in the format named by dest's extension.
func (e *Editor) Convert(src, dest string, quality *int) (*Result, error) {
	f, err := imaging.FormatFromPath(dest)
	if err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}
	img, _, err := imaging.Load(src)
	if err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}
	return e.save("convert", img, dest, f, e.quality(f, quality))
}

// Flip mirrors src along direction ("vertical", "v", "y", "horizontal",
// "h" or "x").
func (e *Editor) Flip(src, dest, direction string, so SaveOptions) (*Result, error) {
	axis, err := imaging.ParseFlipAxis(direction)
	if err != nil {
		return nil, fmt.Errorf("flip: %w", err)
	}
	return e.apply("flip", src, dest, so, func(img image.Image, _ imaging.Metadata) (image.Image, error) {
		return imaging.Flip(img, axis), nil
	})
}

// Rotate turns src counter-clockwise by angle (see imaging.ParseAngle).
// Uncovered corners are filled with bgColor, or the configured background
// when bgColor is empty.
func (e *Editor) Rotate(src, dest, angle, bgColor string, so SaveOptions) (*Result, error) {
	deg, err := imaging.ParseAngle(angle)
	if err != nil {
		return nil, fmt.Errorf("rotate: %w", err)
	}
	bg, err := e.background(bgColor)
	if err != nil {
		return nil, fmt.Errorf("rotate: %w", err)
	}
	return e.apply("rotate", src, dest, so, func(img image.Image, _ imaging.Metadata) (image.Image, error) {
		return imaging.Rotate(img, deg, bg), nil
	})
}

// Filter applies one named filter to src.
func (e *Editor) Filter(src, dest string, spec imaging.FilterSpec, so SaveOptions) (*Result, error) {
	return e.apply("filter "+spec.Name, src, dest, so, func(img image.Image, _ imaging.Metadata) (image.Image, error) {
		return imaging.ApplyFilter(img, spec)
	})
}

// background parses s, falling back to the configured background color.
func (e *Editor) background(s string) (imaging.RGB, error) {
	if s == "" {
		return e.cfg.Background(), nil
	}
	return imaging.ParseHexColor(s)
}
