// Package imaging implements the pixel-level editing operations behind the
// image editor: color parsing and sampling, decoding and encoding, fit
// geometry, anchoring, alpha compositing, and the resize, crop, flip, rotate,
// filter, watermark and text transforms.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner,
// X increasing rightward and Y increasing downward. Regions are given as
// (x1,y1) inclusive and (x2,y2) exclusive.
//
// # Images
//
// Transforms accept any image.Image and return a fresh *image.NRGBA whose
// bounds start at (0,0). Inputs are never modified, so operations are safe to
// call concurrently on shared images.
//
// # Colors
//
// Colors are written as hex strings "#RGB" or "#RRGGBB" (the "#" is
// optional). ColorAt reports the sampled pixel as hex, 8-bit RGB, alpha and
// HSL (hue 0-360, saturation and lightness 0-100).
//
// # Errors
//
// Failures wrap one of the sentinel errors in errors.go so callers can
// classify them with errors.Is:
//   - ErrUnsupportedFormat for files that are not GIF, JPEG or PNG
//   - ErrInvalidColor, ErrInvalidAnchor and ErrInvalidDimensions for bad arguments
//   - ErrIO and ErrEncode for filesystem and encoder failures
//
// Save writes through a temporary file and renames it into place, so a failed
// encode never leaves a truncated destination behind.
package imaging
