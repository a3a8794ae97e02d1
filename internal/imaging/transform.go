package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	"github.com/ironsheep/image-edit-mcp/internal/detection"
)

// CanvasOptions controls how a scaled image is laid onto its output canvas.
type CanvasOptions struct {
	// Resample selects smooth (Catmull-Rom) scaling. When false pixels are
	// copied nearest-neighbor.
	Resample bool

	// Background fills the canvas before the image is drawn over it. nil
	// leaves the canvas transparent and copies source pixels, alpha
	// included, without blending.
	Background *RGB

	// PreserveAlpha applies to ShrinkToSquare only: the image is copied onto
	// the background without blending, so its transparent pixels replace
	// the background instead of showing it.
	PreserveAlpha bool
}

func scaler(resample bool) draw.Interpolator {
	if resample {
		return draw.CatmullRom
	}
	return draw.NearestNeighbor
}

// MaxPixels caps the area of any canvas an operation allocates.
const MaxPixels = 1 << 28

// checkCanvas rejects canvas sizes that are empty or larger than MaxPixels.
func checkCanvas(w, h int) error {
	if w <= 0 || h <= 0 || w > MaxPixels/h {
		return fmt.Errorf("%w: canvas %dx%d", ErrInvalidDimensions, w, h)
	}
	return nil
}

func newCanvas(w, h int, bg *RGB) *image.NRGBA {
	if bg == nil {
		return image.NewNRGBA(image.Rect(0, 0, w, h))
	}
	return imaging.New(w, h, bg.NRGBA())
}

// scaleOnto scales img into dr of canvas.
func scaleOnto(canvas *image.NRGBA, dr image.Rectangle, img image.Image, resample, blend bool) {
	op := draw.Src
	if blend {
		op = draw.Over
	}
	scaler(resample).Scale(canvas, dr, img, img.Bounds(), op, nil)
}

// Crop cuts the rectangle between (x1,y1) and (x2,y2) out of img and scales
// it to newW x newH. Corners may be given in any order. newW or newH <= 0
// keeps the cropped size on that axis. Coordinates are relative to the
// image's top-left corner; parts of the rectangle outside the image stay
// transparent.
func Crop(img image.Image, x1, y1, x2, y2, newW, newH int, resample bool) (*image.NRGBA, error) {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}

	r := image.Rect(x1, y1, x2, y2)
	if r.Empty() {
		return nil, fmt.Errorf("%w: crop region (%d,%d)-(%d,%d) is empty", ErrInvalidDimensions, x1, y1, x2, y2)
	}

	if newW <= 0 {
		newW = r.Dx()
	}
	if newH <= 0 {
		newH = r.Dy()
	}
	if err := checkCanvas(newW, newH); err != nil {
		return nil, err
	}

	dst := image.NewNRGBA(image.Rect(0, 0, newW, newH))
	bounds := img.Bounds()
	visible := r.Add(bounds.Min).Intersect(bounds).Sub(bounds.Min)
	if visible.Empty() {
		return dst, nil
	}

	// visible part of r, mapped into output coordinates
	dr := image.Rect(
		scaleCoord(visible.Min.X-r.Min.X, r.Dx(), newW),
		scaleCoord(visible.Min.Y-r.Min.Y, r.Dy(), newH),
		scaleCoord(visible.Max.X-r.Min.X, r.Dx(), newW),
		scaleCoord(visible.Max.Y-r.Min.Y, r.Dy(), newH),
	)
	scaler(resample).Scale(dst, dr, img, visible.Add(bounds.Min), draw.Src, nil)
	return dst, nil
}

// scaleCoord maps v on a span of length from onto a span of length to.
func scaleCoord(v, from, to int) int {
	return int(math.Round(float64(v) * float64(to) / float64(from)))
}

// RegionRect returns the rectangle for a named region of a w x h image.
//
// Supported regions:
//   - "top-left", "top-right", "bottom-left", "bottom-right": quadrants
//   - "top-half", "bottom-half", "left-half", "right-half": halves
//   - "center": the middle 50% on both axes
func RegionRect(region string, w, h int) (image.Rectangle, error) {
	midX := w / 2
	midY := h / 2

	switch strings.ToLower(region) {
	case "top-left":
		return image.Rect(0, 0, midX, midY), nil
	case "top-right":
		return image.Rect(midX, 0, w, midY), nil
	case "bottom-left":
		return image.Rect(0, midY, midX, h), nil
	case "bottom-right":
		return image.Rect(midX, midY, w, h), nil
	case "top-half":
		return image.Rect(0, 0, w, midY), nil
	case "bottom-half":
		return image.Rect(0, midY, w, h), nil
	case "left-half":
		return image.Rect(0, 0, midX, h), nil
	case "right-half":
		return image.Rect(midX, 0, w, h), nil
	case "center":
		qW := w / 4
		qH := h / 4
		return image.Rect(qW, qH, w-qW, h-qH), nil
	}
	return image.Rectangle{}, fmt.Errorf("%w: unknown region %q", ErrInvalidArgument, region)
}

// SquareCrop cuts the largest centered square out of img, trimming the longer
// axis equally on both sides, and scales it to newSize. newSize <= 0 keeps
// the square's own side length.
func SquareCrop(img image.Image, newSize int) (*image.NRGBA, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	var x, y, side int
	if w > h {
		x = (w - h) / 2
		side = h
	} else {
		y = (h - w) / 2
		side = w
	}
	return Crop(img, x, y, x+side, y+side, newSize, newSize, true)
}

// FlipAxis selects the mirror axis for Flip.
type FlipAxis int

const (
	// FlipVertical mirrors rows: the top row becomes the bottom row.
	FlipVertical FlipAxis = iota

	// FlipHorizontal mirrors columns: the left column becomes the right column.
	FlipHorizontal
)

// ParseFlipAxis accepts "vertical", "v" or "y" and "horizontal", "h" or "x".
func ParseFlipAxis(s string) (FlipAxis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vertical", "v", "y":
		return FlipVertical, nil
	case "horizontal", "h", "x":
		return FlipHorizontal, nil
	}
	return 0, fmt.Errorf("%w: unknown flip direction %q", ErrInvalidArgument, s)
}

func (a FlipAxis) String() string {
	if a == FlipHorizontal {
		return "horizontal"
	}
	return "vertical"
}

// Flip mirrors img along axis into a new image.
func Flip(img image.Image, axis FlipAxis) *image.NRGBA {
	if axis == FlipHorizontal {
		return imaging.FlipH(img)
	}
	return imaging.FlipV(img)
}

// Resize scales img to exactly w x h, ignoring aspect ratio.
func Resize(img image.Image, w, h int, opts CanvasOptions) (*image.NRGBA, error) {
	if err := checkCanvas(w, h); err != nil {
		return nil, fmt.Errorf("resize: %w", err)
	}
	canvas := newCanvas(w, h, opts.Background)
	scaleOnto(canvas, canvas.Bounds(), img, opts.Resample, opts.Background != nil)
	return canvas, nil
}

// ResizeToWidth scales img to width w, deriving the height from the aspect
// ratio (see FitWidth).
func ResizeToWidth(img image.Image, w int, opts CanvasOptions) (*image.NRGBA, error) {
	if err := checkCanvas(w, 1); err != nil {
		return nil, fmt.Errorf("resize to width: %w", err)
	}
	bounds := img.Bounds()
	return Resize(img, w, FitWidth(bounds.Dx(), bounds.Dy(), w), opts)
}

// ResizeToHeight scales img to height h, deriving the width from the aspect
// ratio (see FitHeight).
func ResizeToHeight(img image.Image, h int, opts CanvasOptions) (*image.NRGBA, error) {
	if err := checkCanvas(1, h); err != nil {
		return nil, fmt.Errorf("resize to height: %w", err)
	}
	bounds := img.Bounds()
	return Resize(img, FitHeight(bounds.Dx(), bounds.Dy(), h), h, opts)
}

// ShrinkToFit scales img down, if needed, to fit inside maxW x maxH while
// keeping its aspect ratio (see FitWithin). Smaller images keep their size.
func ShrinkToFit(img image.Image, maxW, maxH int, opts CanvasOptions) (*image.NRGBA, error) {
	if maxW <= 0 || maxH <= 0 {
		return nil, fmt.Errorf("%w: bounds %dx%d", ErrInvalidDimensions, maxW, maxH)
	}
	bounds := img.Bounds()
	w, h := FitWithin(bounds.Dx(), bounds.Dy(), maxW, maxH)
	return Resize(img, w, h, opts)
}

// ShrinkToSquare fits img into a size x size canvas filled with
// opts.Background (white when nil), placed at the offsets FitSquare
// computes. The bands around a non-square image show the background.
func ShrinkToSquare(img image.Image, size int, opts CanvasOptions) (*image.NRGBA, error) {
	if err := checkCanvas(size, size); err != nil {
		return nil, fmt.Errorf("shrink to square: %w", err)
	}
	bg := White
	if opts.Background != nil {
		bg = *opts.Background
	}

	bounds := img.Bounds()
	fit := FitSquare(bounds.Dx(), bounds.Dy(), size)

	canvas := imaging.New(size, size, bg.NRGBA())
	if fit.Width <= 0 || fit.Height <= 0 {
		return canvas, nil
	}
	dr := image.Rect(fit.OffsetX, fit.OffsetY, fit.OffsetX+fit.Width, fit.OffsetY+fit.Height)
	scaleOnto(canvas, dr, img, opts.Resample, !opts.PreserveAlpha)
	return canvas, nil
}

// ShrinkToNonBackground crops img to the box around every pixel that differs
// from bg, or from the top-left pixel when bg is nil. A uniform image comes
// back whole.
func ShrinkToNonBackground(img image.Image, bg *RGB) (*image.NRGBA, detection.TrimBox) {
	var want color.Color
	if bg != nil {
		want = bg.NRGBA()
	}
	box := detection.ScanTrimBox(img, want)
	if box.Result == detection.AllTrim {
		return imaging.Clone(img), box
	}
	return imaging.Crop(img, box.Rect().Add(img.Bounds().Min)), box
}

// Watermark composites mark onto img at the anchored position with the given
// opacity percent (see MergeAlpha).
func Watermark(img, mark image.Image, anchor Anchor, opacity, margin int) *image.NRGBA {
	ib, mb := img.Bounds(), mark.Bounds()
	at := Position(anchor, ib.Dx(), ib.Dy(), mb.Dx(), mb.Dy(), margin)
	return MergeAlpha(img, mark, at, opacity)
}
