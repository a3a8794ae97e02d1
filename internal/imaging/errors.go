package imaging

import "errors"

// Error categories returned by this package. Errors are wrapped with context
// using fmt.Errorf("...: %w", ...); test for a category with errors.Is.
var (
	// ErrUnsupportedFormat reports input that is not a decodable GIF, JPEG or PNG,
	// or an output path whose extension names none of those formats.
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrInvalidColor reports a malformed hex color string.
	ErrInvalidColor = errors.New("invalid color")

	// ErrEncode reports a codec failure while writing an image.
	ErrEncode = errors.New("encode failed")

	// ErrIO reports a filesystem failure while reading, writing or renaming.
	ErrIO = errors.New("i/o failure")

	// ErrInvalidAnchor reports an unknown anchor name.
	ErrInvalidAnchor = errors.New("invalid anchor")

	// ErrInvalidDimensions reports a zero or negative target size.
	ErrInvalidDimensions = errors.New("invalid dimensions")

	// ErrInvalidArgument reports any other malformed parameter (flip axis,
	// rotation angle, filter name).
	ErrInvalidArgument = errors.New("invalid argument")
)
