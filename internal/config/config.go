// Package config loads the editor's default settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ironsheep/image-edit-mcp/internal/imaging"
	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable consulted when no --config flag is
// given.
const EnvPath = "IMAGE_EDIT_CONFIG"

// Config holds defaults applied when a request leaves a value unset.
type Config struct {
	// Encoding
	JPEGQuality    int `yaml:"jpeg_quality"`
	PNGCompression int `yaml:"png_compression"`

	// Canvas
	BackgroundColor string `yaml:"background_color"`
	Resample        bool   `yaml:"resample"`

	// Text
	FontFile  string `yaml:"font_file"`
	FontSize  int    `yaml:"font_size"`
	TextColor string `yaml:"text_color"`

	// Overlays
	WatermarkOpacity int `yaml:"watermark_opacity"`
	Margin           int `yaml:"margin"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		JPEGQuality:      imaging.DefaultJPEGQuality,
		PNGCompression:   imaging.DefaultPNGCompression,
		BackgroundColor:  "#FFFFFF",
		Resample:         true,
		FontSize:         12,
		TextColor:        "#000000",
		WatermarkOpacity: 50,
	}
}

// Path picks the config file location: flagValue when set, otherwise the
// IMAGE_EDIT_CONFIG environment variable. It returns "" when neither is set.
func Path(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(EnvPath)
}

// Load reads a YAML file over Defaults and validates the result. An empty
// path or a file that does not exist yields the defaults.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges and color strings.
func (c Config) Validate() error {
	var errs []error
	if c.JPEGQuality < 0 || c.JPEGQuality > 100 {
		errs = append(errs, fmt.Errorf("%w: jpeg_quality %d outside 0-100", imaging.ErrInvalidArgument, c.JPEGQuality))
	}
	if c.PNGCompression < 0 || c.PNGCompression > 9 {
		errs = append(errs, fmt.Errorf("%w: png_compression %d outside 0-9", imaging.ErrInvalidArgument, c.PNGCompression))
	}
	if _, err := imaging.ParseHexColor(c.BackgroundColor); err != nil {
		errs = append(errs, fmt.Errorf("background_color: %w", err))
	}
	if _, err := imaging.ParseHexColor(c.TextColor); err != nil {
		errs = append(errs, fmt.Errorf("text_color: %w", err))
	}
	if c.FontSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: font_size must be positive", imaging.ErrInvalidArgument))
	}
	if c.WatermarkOpacity < 0 || c.WatermarkOpacity > 100 {
		errs = append(errs, fmt.Errorf("%w: watermark_opacity %d outside 0-100", imaging.ErrInvalidArgument, c.WatermarkOpacity))
	}
	if c.Margin < 0 {
		errs = append(errs, fmt.Errorf("%w: margin must not be negative", imaging.ErrInvalidArgument))
	}
	return errors.Join(errs...)
}

// Background returns the parsed background color, or white when it is
// unparseable.
func (c Config) Background() imaging.RGB {
	rgb, err := imaging.ParseHexColor(c.BackgroundColor)
	if err != nil {
		return imaging.White
	}
	return rgb
}

// Text returns the parsed text color, or black when it is unparseable.
func (c Config) Text() imaging.RGB {
	rgb, err := imaging.ParseHexColor(c.TextColor)
	if err != nil {
		return imaging.RGB{}
	}
	return rgb
}

// Quality returns the configured quality for f.
func (c Config) Quality(f imaging.Format) imaging.Quality {
	switch f {
	case imaging.FormatJPEG:
		return imaging.WithQuality(c.JPEGQuality)
	case imaging.FormatPNG:
		return imaging.WithQuality(c.PNGCompression)
	}
	return imaging.Quality{}
}
