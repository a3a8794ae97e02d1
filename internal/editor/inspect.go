package editor

import (
	"fmt"

	"github.com/ironsheep/image-edit-mcp/internal/detection"
	"github.com/ironsheep/image-edit-mcp/internal/imaging"
)

// Info reports dimensions, format and file size of src.
func (e *Editor) Info(src string) (*imaging.ImageInfo, error) {
	return imaging.LoadImageInfo(src)
}

// ColorAt samples the pixel at (x, y) of src.
func (e *Editor) ColorAt(src string, x, y int) (*imaging.ColorResult, error) {
	img, _, err := imaging.Load(src)
	if err != nil {
		return nil, fmt.Errorf("color at: %w", err)
	}
	return imaging.ColorAt(img, x, y)
}

// TrimBox reports the box around src's content without modifying it. The
// border color is bgColor, or the top-left pixel when bgColor is empty.
func (e *Editor) TrimBox(src, bgColor string) (detection.TrimBox, error) {
	bg, err := imaging.ParseOptionalHexColor(bgColor)
	if err != nil {
		return detection.TrimBox{}, fmt.Errorf("trim box: %w", err)
	}
	img, _, err := imaging.Load(src)
	if err != nil {
		return detection.TrimBox{}, fmt.Errorf("trim box: %w", err)
	}
	if bg == nil {
		return detection.ScanTrimBox(img, nil), nil
	}
	return detection.ScanTrimBox(img, bg.NRGBA()), nil
}
