package imaging

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/anthonynsimon/bild/convolution"
	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// FilterSpec names a filter and carries its parameters. Fields a filter
// does not use are ignored.
type FilterSpec struct {
	Name string `json:"name"`

	// Level is the brightness shift (-255..255), contrast change
	// (-100..100, negative increases contrast), smoothing weight, or the
	// number of blur or sketch passes.
	Level int `json:"level,omitempty"`

	// Red, Green, Blue and Alpha are the colorize shifts. Alpha runs from
	// 0 (opaque) to 127 (transparent).
	Red   int `json:"red,omitempty"`
	Green int `json:"green,omitempty"`
	Blue  int `json:"blue,omitempty"`
	Alpha int `json:"alpha,omitempty"`

	// BlockSize and Advanced configure pixelate.
	BlockSize int  `json:"block_size,omitempty"`
	Advanced  bool `json:"advanced,omitempty"`
}

// FilterNames lists the names accepted by ApplyFilter.
func FilterNames() []string {
	return []string{
		"grayscale", "invert", "brightness", "contrast", "colorize",
		"edgedetect", "emboss", "blur", "sketch", "smooth", "pixelate", "sepia",
	}
}

// ApplyFilter runs the filter named by spec.
func ApplyFilter(img image.Image, spec FilterSpec) (*image.NRGBA, error) {
	switch strings.ToLower(strings.TrimSpace(spec.Name)) {
	case "grayscale", "greyscale":
		return Grayscale(img), nil
	case "invert", "negate":
		return Invert(img), nil
	case "brightness":
		return Brightness(img, spec.Level), nil
	case "contrast":
		return Contrast(img, spec.Level), nil
	case "colorize":
		return Colorize(img, spec.Red, spec.Green, spec.Blue, spec.Alpha), nil
	case "edgedetect":
		return EdgeDetect(img), nil
	case "emboss":
		return Emboss(img), nil
	case "blur":
		return Blur(img, spec.Level), nil
	case "sketch":
		return Sketch(img, spec.Level), nil
	case "smooth":
		return Smooth(img, spec.Level), nil
	case "pixelate":
		return Pixelate(img, spec.BlockSize, spec.Advanced)
	case "sepia":
		return Sepia(img), nil
	}
	return nil, fmt.Errorf("%w: unknown filter %q", ErrInvalidArgument, spec.Name)
}

// Grayscale removes color, keeping alpha.
func Grayscale(img image.Image) *image.NRGBA {
	return imaging.Grayscale(img)
}

// Invert reverses every color channel, keeping alpha.
func Invert(img image.Image) *image.NRGBA {
	return imaging.Invert(img)
}

// Brightness adds level (-255..255) to every color channel.
func Brightness(img image.Image, level int) *image.NRGBA {
	level = clamp(level, -255, 255)
	return imaging.AdjustBrightness(img, float64(level)*100/255)
}

// Contrast changes contrast by level percent (-100..100). Negative levels
// increase contrast and positive levels reduce it.
func Contrast(img image.Image, level int) *image.NRGBA {
	return imaging.AdjustContrast(img, float64(-clamp(level, -100, 100)))
}

// Colorize shifts each channel by r, g and b (-255..255) and lowers opacity
// by alpha/127.
func Colorize(img image.Image, r, g, b, alpha int) *image.NRGBA {
	r, g, b = clamp(r, -255, 255), clamp(g, -255, 255), clamp(b, -255, 255)
	keep := 127 - clamp(alpha, 0, 127)
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{
			R: uint8(clamp(int(c.R)+r, 0, 255)),
			G: uint8(clamp(int(c.G)+g, 0, 255)),
			B: uint8(clamp(int(c.B)+b, 0, 255)),
			A: uint8(int(c.A) * keep / 127),
		}
	})
}

// EdgeDetect highlights edges.
func EdgeDetect(img image.Image) *image.NRGBA {
	return imaging.Clone(effect.EdgeDetection(img, 1.0))
}

// Emboss gives the image a raised relief look.
func Emboss(img image.Image) *image.NRGBA {
	return imaging.Clone(effect.Emboss(img))
}

// Blur applies a Gaussian blur the given number of times (at least once).
func Blur(img image.Image, passes int) *image.NRGBA {
	out := imaging.Clone(img)
	for i := 0; i < max(passes, 1); i++ {
		out = imaging.Blur(out, 1.0)
	}
	return out
}

var meanRemoval = &convolution.Kernel{
	Matrix: []float64{
		-1, -1, -1,
		-1, 9, -1,
		-1, -1, -1,
	},
	Width:  3,
	Height: 3,
}

// Sketch sharpens edges with a mean-removal kernel, the given number of
// times (at least once).
func Sketch(img image.Image, passes int) *image.NRGBA {
	var out image.Image = img
	for i := 0; i < max(passes, 1); i++ {
		out = convolution.Convolve(out, meanRemoval, &convolution.Options{KeepAlpha: true})
	}
	return imaging.Clone(out)
}

// Smooth averages each pixel with its eight neighbours, weighting the pixel
// itself by weight.
func Smooth(img image.Image, weight int) *image.NRGBA {
	div := float64(weight + 8)
	if div == 0 {
		div = 1
	}
	n := 1 / div
	k := &convolution.Kernel{
		Matrix: []float64{
			n, n, n,
			n, float64(weight) * n, n,
			n, n, n,
		},
		Width:  3,
		Height: 3,
	}
	return imaging.Clone(convolution.Convolve(img, k, &convolution.Options{KeepAlpha: true}))
}

// Pixelate replaces each blockSize x blockSize tile with one color: the
// tile's top-left pixel, or the tile average when advanced is set.
func Pixelate(img image.Image, blockSize int, advanced bool) (*image.NRGBA, error) {
	if blockSize <= 0 {
		return nil, fmt.Errorf("%w: block size %d", ErrInvalidDimensions, blockSize)
	}

	src := imaging.Clone(img)
	out := image.NewNRGBA(src.Bounds())
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += blockSize {
		for x := b.Min.X; x < b.Max.X; x += blockSize {
			tile := image.Rect(x, y, x+blockSize, y+blockSize).Intersect(b)
			c := src.NRGBAAt(x, y)
			if advanced {
				c = imaging.Resize(imaging.Crop(src, tile), 1, 1, imaging.Box).NRGBAAt(0, 0)
			}
			draw.Draw(out, tile, image.NewUniform(c), image.Point{}, draw.Src)
		}
	}
	return out, nil
}

// Sepia tones the image brown: grayscale followed by a warm colorize.
func Sepia(img image.Image) *image.NRGBA {
	return Colorize(Grayscale(img), 90, 60, 30, 0)
}
