package imaging

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB represents an opaque color with 8-bit components.
type RGB struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// White is the default background for canvases that need one.
var White = RGB{R: 255, G: 255, B: 255}

// NRGBA returns c as a fully opaque color.NRGBA.
func (c RGB) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Hex formats c as "#RRGGBB".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ParseHexColor parses "#RRGGBB" or "#RGB" (the '#' is optional, digits are
// case-insensitive). The three-digit form duplicates each digit, so "#F80"
// equals "#FF8800". Any other length is rejected with ErrInvalidColor.
func ParseHexColor(s string) (RGB, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 3 && len(hex) != 6 {
		return RGB{}, fmt.Errorf("%w: %q must have 3 or 6 hex digits", ErrInvalidColor, s)
	}
	if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
		return RGB{}, fmt.Errorf("%w: %q is not hexadecimal", ErrInvalidColor, s)
	}

	c, err := colorful.Hex("#" + strings.ToLower(hex))
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// ParseOptionalHexColor is ParseHexColor for optional parameters: an empty
// string yields nil.
func ParseOptionalHexColor(s string) (*RGB, error) {
	if s == "" {
		return nil, nil
	}
	c, err := ParseHexColor(s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// HSLColor represents a color in HSL space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult describes the color of a single pixel.
type ColorResult struct {
	Hex   string   `json:"hex"`   // "#RRGGBB", alpha excluded
	RGB   RGB      `json:"rgb"`   // 8-bit components
	Alpha uint8    `json:"alpha"` // 0 = transparent, 255 = opaque
	HSL   HSLColor `json:"hsl"`   // zero for fully transparent pixels
}

// ColorAt returns the color of the pixel at (x, y), relative to the image's
// top-left corner.
//
// The components are non-premultiplied, so a half-transparent red pixel
// reports #FF0000 with Alpha 128.
func ColorAt(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	px, py := bounds.Min.X+x, bounds.Min.Y+y
	if x < 0 || y < 0 || px >= bounds.Max.X || py >= bounds.Max.Y {
		return nil, fmt.Errorf("%w: coordinates (%d,%d) outside image bounds %dx%d",
			ErrInvalidArgument, x, y, bounds.Dx(), bounds.Dy())
	}

	c := color.NRGBAModel.Convert(img.At(px, py)).(color.NRGBA)
	rgb := RGB{R: c.R, G: c.G, B: c.B}

	result := &ColorResult{
		Hex:   rgb.Hex(),
		RGB:   rgb,
		Alpha: c.A,
	}
	if cf, ok := colorful.MakeColor(rgb.NRGBA()); ok && c.A > 0 {
		h, s, l := cf.Hsl()
		result.HSL = HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)}
	}
	return result, nil
}
