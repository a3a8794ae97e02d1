package imaging

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// Format identifies one of the supported file formats.
type Format string

const (
	FormatGIF  Format = "gif"
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
)

// MimeType returns the IANA media type for f.
func (f Format) MimeType() string {
	switch f {
	case FormatGIF:
		return "image/gif"
	case FormatJPEG:
		return "image/jpeg"
	case FormatPNG:
		return "image/png"
	}
	return "application/octet-stream"
}

// SupportsAlpha reports whether f can store transparency.
func (f Format) SupportsAlpha() bool {
	return f == FormatPNG || f == FormatGIF
}

// ParseFormat accepts a format name ("png", "jpg", "jpeg", "gif") or a MIME
// type ("image/png", ...), case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gif", "image/gif":
		return FormatGIF, nil
	case "jpg", "jpeg", "image/jpeg":
		return FormatJPEG, nil
	case "png", "image/png":
		return FormatPNG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatFromPath determines the output format from a file extension.
//
// The extension match is case-insensitive:
//   - ".png" -> FormatPNG
//   - ".jpg", ".jpeg" -> FormatJPEG
//   - ".gif" -> FormatGIF
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no file extension", ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext)
}

// Metadata describes a decoded image. Quality is not part of it; it is
// chosen per encode call.
type Metadata struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format Format `json:"format"`
}

// Quality selects the encoder setting for a single Encode call.
//
// The zero value means "use the format default". Values outside the valid
// range are clamped, never rejected:
//
//	format  default  range
//	JPEG    85       0-100 (quality)
//	PNG     9        0-9   (compression level)
//	GIF     -        ignored
type Quality struct {
	Value int
	Set   bool
}

// WithQuality returns an explicit Quality.
func WithQuality(v int) Quality {
	return Quality{Value: v, Set: true}
}

// QualityFromPtr converts an optional parameter into a Quality.
func QualityFromPtr(v *int) Quality {
	if v == nil {
		return Quality{}
	}
	return WithQuality(*v)
}

// Format defaults used when a Quality is unset.
const (
	DefaultJPEGQuality    = 85
	DefaultPNGCompression = 9
)

// EffectiveQuality resolves q against f's default and valid range.
// GIF has no quality setting and always reports 0.
func EffectiveQuality(f Format, q Quality) int {
	switch f {
	case FormatJPEG:
		if !q.Set {
			return DefaultJPEGQuality
		}
		return clamp(q.Value, 0, 100)
	case FormatPNG:
		if !q.Set {
			return DefaultPNGCompression
		}
		return clamp(q.Value, 0, 9)
	}
	return 0
}

// pngCompression maps a zlib-style level onto the encoder's presets.
func pngCompression(level int) png.CompressionLevel {
	switch {
	case level <= 0:
		return png.NoCompression
	case level <= 3:
		return png.BestSpeed
	case level <= 6:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}

// Decode decodes GIF, JPEG or PNG data, detecting the format from the file
// signature rather than any name. Everything else, including formats other
// packages may have registered with the image package, is rejected with
// ErrUnsupportedFormat.
func Decode(data []byte) (image.Image, Metadata, error) {
	img, name, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, Metadata{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	var f Format
	switch name {
	case "gif":
		f = FormatGIF
	case "jpeg":
		f = FormatJPEG
	case "png":
		f = FormatPNG
	default:
		return nil, Metadata{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}

	bounds := img.Bounds()
	return img, Metadata{Width: bounds.Dx(), Height: bounds.Dy(), Format: f}, nil
}

// Encode writes img to w in format f. Codec failures wrap ErrEncode.
func Encode(w io.Writer, img image.Image, f Format, q Quality) error {
	var err error
	switch f {
	case FormatJPEG:
		err = imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(EffectiveQuality(f, q)))
	case FormatPNG:
		err = imaging.Encode(w, img, imaging.PNG, imaging.PNGCompressionLevel(pngCompression(EffectiveQuality(f, q))))
	case FormatGIF:
		err = imaging.Encode(w, img, imaging.GIF)
	default:
		return fmt.Errorf("%w: cannot encode %q", ErrUnsupportedFormat, f)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrEncode, f, err)
	}
	return nil
}

// Load reads and decodes the image file at path.
func Load(path string) (image.Image, Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Metadata{}, fmt.Errorf("%w: read %s: %w", ErrIO, path, err)
	}
	img, meta, err := Decode(data)
	if err != nil {
		return nil, Metadata{}, fmt.Errorf("load %s: %w", path, err)
	}
	return img, meta, nil
}

// Save encodes img and atomically replaces path with the result.
//
// The image is written to a temporary file in the destination directory and
// renamed into place only after encoding, flushing and syncing succeed. On any
// failure the temporary file is removed and an existing file at path is left
// untouched, so it is safe to save over the file an image was loaded from.
func Save(img image.Image, path string, f Format, q Quality) (err error) {
	perm := os.FileMode(0o644)
	if st, statErr := os.Stat(path); statErr == nil {
		perm = st.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file for %s: %w", ErrIO, path, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err = Encode(bw, img, f, q); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err = bw.Flush(); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrIO, tmpName, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("%w: sync %s: %w", ErrIO, tmpName, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrIO, tmpName, err)
	}
	if err = os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("%w: chmod %s: %w", ErrIO, tmpName, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: rename %s to %s: %w", ErrIO, tmpName, path, err)
	}
	return nil
}

// ImageInfo contains metadata about an image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is detected from the file contents: "png", "jpeg" or "gif".
	Format Format `json:"format"`

	// MimeType is the media type matching Format.
	MimeType string `json:"mime_type"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the decoded pixel type carries transparency.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image and returns metadata about it.
//
// # Color Depth Detection
//
// Color depth is determined by the decoded Go image type:
//   - *image.RGBA64, *image.NRGBA64, *image.Gray16 -> "16-bit"
//   - All other types -> "8-bit"
//
// Paletted images (GIF, palette PNG) report HasAlpha when the palette
// contains a non-opaque entry.
func LoadImageInfo(path string) (*ImageInfo, error) {
	img, meta, err := Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: stat %s: %w", ErrIO, path, err)
	}

	hasAlpha := false
	colorDepth := "8-bit"
	switch m := img.(type) {
	case *image.RGBA, *image.NRGBA:
		hasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
		colorDepth = "16-bit"
	case *image.Gray16:
		colorDepth = "16-bit"
	case *image.Paletted:
		for _, c := range m.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				hasAlpha = true
				break
			}
		}
	}

	return &ImageInfo{
		Width:         meta.Width,
		Height:        meta.Height,
		Format:        meta.Format,
		MimeType:      meta.Format.MimeType(),
		ColorDepth:    colorDepth,
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}, nil
}
