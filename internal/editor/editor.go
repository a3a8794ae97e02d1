// Package editor implements file-level image edits: each operation loads a
// source file, applies one transform from package imaging and saves the
// result atomically.
package editor

import (
	"fmt"
	"image"
	"io"
	"log"

	"github.com/ironsheep/image-edit-mcp/internal/config"
	"github.com/ironsheep/image-edit-mcp/internal/imaging"
)

// Editor runs file operations with defaults taken from a config.Config.
// An Editor holds no per-call state and may be shared.
type Editor struct {
	cfg config.Config
	log *log.Logger
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sends debug output to l. Editors log nothing by default.
func WithLogger(l *log.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.log = l
		}
	}
}

// New creates an Editor.
func New(cfg config.Config, opts ...Option) *Editor {
	e := &Editor{
		cfg: cfg,
		log: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the defaults the editor was created with.
func (e *Editor) Config() config.Config {
	return e.cfg
}

// SaveOptions controls how a result is written.
type SaveOptions struct {
	// Quality overrides the configured quality for the output format.
	Quality *int

	// NewType overrides the output format ("png", "jpeg", "gif" or a MIME
	// type). Empty keeps the source format.
	NewType string
}

// ResizeOptions are shared by the resize family.
type ResizeOptions struct {
	SaveOptions

	// Resample selects smooth interpolation. Nil uses the configured default.
	Resample *bool

	// WhiteBackground flattens the result onto white instead of keeping
	// transparency.
	WhiteBackground bool

	// BackgroundColor fills the padding added by ShrinkToSquare. Empty uses
	// the configured background color.
	BackgroundColor string
}

// Result reports what an operation wrote.
type Result struct {
	Path    string         `json:"path"`
	Width   int            `json:"width"`
	Height  int            `json:"height"`
	Format  imaging.Format `json:"format"`
	Quality int            `json:"quality"`
}

func (e *Editor) resample(p *bool) bool {
	if p == nil {
		return e.cfg.Resample
	}
	return *p
}

// quality resolves an explicit quality or falls back to the config.
func (e *Editor) quality(f imaging.Format, q *int) imaging.Quality {
	if q == nil {
		return e.cfg.Quality(f)
	}
	return imaging.QualityFromPtr(q)
}

// outputFormat picks the format to write: an explicit override, else the
// source format.
func outputFormat(src imaging.Format, newType string) (imaging.Format, error) {
	if newType == "" {
		return src, nil
	}
	return imaging.ParseFormat(newType)
}

// save writes img to dest. Formats without alpha get img flattened onto the
// configured background first.
func (e *Editor) save(op string, img image.Image, dest string, f imaging.Format, q imaging.Quality) (*Result, error) {
	if !f.SupportsAlpha() {
		img = imaging.Flatten(img, e.cfg.Background())
	}
	if err := imaging.Save(img, dest, f, q); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	b := img.Bounds()
	res := &Result{
		Path:    dest,
		Width:   b.Dx(),
		Height:  b.Dy(),
		Format:  f,
		Quality: imaging.EffectiveQuality(f, q),
	}
	e.log.Printf("[DEBUG] %s -> %s (%dx%d %s q=%d)", op, dest, res.Width, res.Height, f, res.Quality)
	return res, nil
}

// apply is the common load, transform, save sequence.
func (e *Editor) apply(op, src, dest string, so SaveOptions, fn func(image.Image, imaging.Metadata) (image.Image, error)) (*Result, error) {
	img, meta, err := imaging.Load(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	f, err := outputFormat(meta.Format, so.NewType)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out, err := fn(img, meta)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return e.save(op, out, dest, f, e.quality(f, so.Quality))
}
