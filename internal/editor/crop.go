package editor

import (
	"image"

	"github.com/ironsheep/image-edit-mcp/internal/imaging"
)

// CropOptions selects the crop rectangle and output size.
type CropOptions struct {
	SaveOptions

	X1, Y1, X2, Y2 int

	// Region, when set, replaces the coordinates with a named part of the
	// image (see imaging.RegionRect).
	Region string

	// NewWidth and NewHeight scale the cropped area. Zero keeps the crop size.
	NewWidth, NewHeight int

	Resample *bool
}

// Crop cuts a rectangle out of src.
func (e *Editor) Crop(src, dest string, opts CropOptions) (*Result, error) {
	return e.apply("crop", src, dest, opts.SaveOptions, func(img image.Image, _ imaging.Metadata) (image.Image, error) {
		x1, y1, x2, y2 := opts.X1, opts.Y1, opts.X2, opts.Y2
		if opts.Region != "" {
			b := img.Bounds()
			r, err := imaging.RegionRect(opts.Region, b.Dx(), b.Dy())
			if err != nil {
				return nil, err
			}
			x1, y1, x2, y2 = r.Min.X, r.Min.Y, r.Max.X, r.Max.Y
		}
		return imaging.Crop(img, x1, y1, x2, y2, opts.NewWidth, opts.NewHeight, e.resample(opts.Resample))
	})
}

// SquareCrop trims the longer axis of src to make it square, then scales it
// to newSize. Zero keeps the square's side length.
func (e *Editor) SquareCrop(src, dest string, newSize int, so SaveOptions) (*Result, error) {
	return e.apply("square crop", src, dest, so, func(img image.Image, _ imaging.Metadata) (image.Image, error) {
		return imaging.SquareCrop(img, newSize)
	})
}
