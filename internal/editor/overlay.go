package editor

import (
	"fmt"
	"image"

	"github.com/ironsheep/image-edit-mcp/internal/imaging"
)

// WatermarkOptions places an overlay image. Nil fields use the config.
type WatermarkOptions struct {
	SaveOptions

	// Anchor is an anchor name; empty means center.
	Anchor  string
	Opacity *int
	Margin  *int
}

// Watermark composites the image at mark onto src.
func (e *Editor) Watermark(src, dest, mark string, opts WatermarkOptions) (*Result, error) {
	anchor, err := imaging.ParseAnchor(opts.Anchor)
	if err != nil {
		return nil, fmt.Errorf("watermark: %w", err)
	}
	overlay, _, err := imaging.Load(mark)
	if err != nil {
		return nil, fmt.Errorf("watermark: %w", err)
	}
	opacity := intOr(opts.Opacity, e.cfg.WatermarkOpacity)
	margin := intOr(opts.Margin, e.cfg.Margin)

	return e.apply("watermark", src, dest, opts.SaveOptions, func(img image.Image, _ imaging.Metadata) (image.Image, error) {
		return imaging.Watermark(img, overlay, anchor, opacity, margin), nil
	})
}

// TextOptions describes a text overlay. Zero or empty fields use the config.
type TextOptions struct {
	SaveOptions

	Text     string
	FontFile string
	Size     int
	Color    string
	Anchor   string
	Margin   *int

	// ShadowColor enables a shadow drawn ShadowOffsetX/Y pixels away.
	ShadowColor   string
	ShadowOffsetX int
	ShadowOffsetY int
}

// Text draws opts.Text onto src.
func (e *Editor) Text(src, dest string, opts TextOptions) (*Result, error) {
	to, err := e.textOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("text: %w", err)
	}
	return e.apply("text", src, dest, opts.SaveOptions, func(img image.Image, _ imaging.Metadata) (image.Image, error) {
		return imaging.DrawText(img, to)
	})
}

func (e *Editor) textOptions(opts TextOptions) (imaging.TextOptions, error) {
	anchor, err := imaging.ParseAnchor(opts.Anchor)
	if err != nil {
		return imaging.TextOptions{}, err
	}
	color := e.cfg.Text()
	if opts.Color != "" {
		if color, err = imaging.ParseHexColor(opts.Color); err != nil {
			return imaging.TextOptions{}, err
		}
	}
	shadow, err := imaging.ParseOptionalHexColor(opts.ShadowColor)
	if err != nil {
		return imaging.TextOptions{}, err
	}

	to := imaging.TextOptions{
		Text:          opts.Text,
		FontFile:      opts.FontFile,
		Size:          opts.Size,
		Color:         color,
		Anchor:        anchor,
		Margin:        intOr(opts.Margin, e.cfg.Margin),
		Shadow:        shadow,
		ShadowOffsetX: opts.ShadowOffsetX,
		ShadowOffsetY: opts.ShadowOffsetY,
	}
	if to.FontFile == "" {
		to.FontFile = e.cfg.FontFile
	}
	if to.Size == 0 {
		to.Size = e.cfg.FontSize
	}
	return to, nil
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
