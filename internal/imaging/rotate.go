package imaging

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
)

// DefaultRotation turns an image a quarter turn clockwise.
const DefaultRotation = 270

// ParseAngle converts a rotation argument into counter-clockwise degrees.
// "cw" and "clockwise" mean 270; "ccw", "counterclockwise" and
// "counter-clockwise" mean 90. Anything else must be a number.
func ParseAngle(s string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cw", "clockwise":
		return 270, nil
	case "ccw", "counterclockwise", "counter-clockwise":
		return 90, nil
	case "":
		return DefaultRotation, nil
	}
	angle, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: rotation angle %q", ErrInvalidArgument, s)
	}
	return angle, nil
}

// Rotate turns img counter-clockwise by angle degrees. The canvas grows to
// hold the rotated image and uncovered corners are filled with bg.
func Rotate(img image.Image, angle float64, bg RGB) *image.NRGBA {
	return imaging.Rotate(img, angle, bg.NRGBA())
}
