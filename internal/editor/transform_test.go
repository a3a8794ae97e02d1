package editor

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/image-edit-mcp/internal/config"
	"github.com/ironsheep/image-edit-mcp/internal/detection"
	"github.com/ironsheep/image-edit-mcp/internal/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResizeFamily(t *testing.T) {
	dir := t.TempDir()
	src := writeImage(t, dir, "in.png", solid(200, 100, red))
	e := newEditor()

	tests := []struct {
		name  string
		run   func(dest string) (*Result, error)
		wantW int
		wantH int
	}{
		{"resize", func(d string) (*Result, error) { return e.Resize(src, d, 40, 70, ResizeOptions{}) }, 40, 70},
		{"to width", func(d string) (*Result, error) { return e.ResizeToWidth(src, d, 50, ResizeOptions{}) }, 50, 25},
		{"to height", func(d string) (*Result, error) { return e.ResizeToHeight(src, d, 30, ResizeOptions{}) }, 60, 30},
		{"fit width bound", func(d string) (*Result, error) { return e.ShrinkToFit(src, d, 100, 100, ResizeOptions{}) }, 100, 50},
		{"fit height bound", func(d string) (*Result, error) { return e.ShrinkToFit(src, d, 190, 20, ResizeOptions{}) }, 40, 20},
		{"fit roomy", func(d string) (*Result, error) { return e.ShrinkToFit(src, d, 500, 500, ResizeOptions{}) }, 200, 100},
		{"square", func(d string) (*Result, error) { return e.ShrinkToSquare(src, d, 64, ResizeOptions{}) }, 64, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dest := filepath.Join(dir, tt.name+".png")
			res, err := tt.run(dest)
			require.NoError(t, err)
			assert.Equal(t, tt.wantW, res.Width)
			assert.Equal(t, tt.wantH, res.Height)

			_, meta := readImage(t, dest)
			assert.Equal(t, tt.wantW, meta.Width)
			assert.Equal(t, tt.wantH, meta.Height)
		})
	}
}

func TestResize_InvalidDimensions(t *testing.T) {
	dir := t.TempDir()
	src := writeImage(t, dir, "in.png", solid(10, 10, red))
	dest := filepath.Join(dir, "out.png")

	_, err := newEditor().Resize(src, dest, 0, 10, ResizeOptions{})
	assert.ErrorIs(t, err, imaging.ErrInvalidDimensions)

	_, err = os.Stat(dest)
	assert.True(t, os.IsNotExist(err), "failed operation must not create dest")
}

func TestResize_WhiteBackground(t *testing.T) {
	dir := t.TempDir()
	img := solid(10, 10, color.NRGBA{})
	src := writeImage(t, dir, "in.png", img)

	dest := filepath.Join(dir, "keep.png")
	_, err := newEditor().ShrinkToFit(src, dest, 5, 5, ResizeOptions{Resample: boolPtr(false)})
	require.NoError(t, err)
	out, _ := readImage(t, dest)
	assert.Equal(t, uint8(0), out.NRGBAAt(2, 2).A, "transparency kept by default")

	dest = filepath.Join(dir, "flat.png")
	_, err = newEditor().ShrinkToFit(src, dest, 5, 5, ResizeOptions{Resample: boolPtr(false), WhiteBackground: true})
	require.NoError(t, err)
	out, _ = readImage(t, dest)
	assert.Equal(t, white, out.NRGBAAt(2, 2))
}

func TestShrinkToSquare_Pillarbox(t *testing.T) {
	dir := t.TempDir()
	src := writeImage(t, dir, "in.png", solid(300, 150, black))
	dest := filepath.Join(dir, "out.png")

	_, err := newEditor().ShrinkToSquare(src, dest, 100, ResizeOptions{Resample: boolPtr(false), WhiteBackground: true})
	require.NoError(t, err)

	out, _ := readImage(t, dest)
	assert.Equal(t, white, out.NRGBAAt(50, 0))
	assert.Equal(t, white, out.NRGBAAt(50, 24))
	assert.Equal(t, black, out.NRGBAAt(50, 25))
	assert.Equal(t, black, out.NRGBAAt(50, 74))
	assert.Equal(t, white, out.NRGBAAt(50, 75))
	assert.Equal(t, white, out.NRGBAAt(50, 99))
}

func TestShrinkToSquare_BackgroundColor(t *testing.T) {
	dir := t.TempDir()
	src := writeImage(t, dir, "in.png", solid(40, 20, black))
	dest := filepath.Join(dir, "out.png")

	_, err := newEditor().ShrinkToSquare(src, dest, 40, ResizeOptions{BackgroundColor: "#F00"})
	require.NoError(t, err)
	out, _ := readImage(t, dest)
	assert.Equal(t, red, out.NRGBAAt(20, 2))

	cfg := config.Defaults()
	cfg.BackgroundColor = "#0000FF"
	_, err = New(cfg).ShrinkToSquare(src, dest, 40, ResizeOptions{})
	require.NoError(t, err)
	out, _ = readImage(t, dest)
	assert.Equal(t, color.NRGBA{0, 0, 255, 255}, out.NRGBAAt(20, 2))

	_, err = newEditor().ShrinkToSquare(src, dest, 40, ResizeOptions{BackgroundColor: "#1234"})
	assert.ErrorIs(t, err, imaging.ErrInvalidColor)
}

func TestShrinkToNonBackground(t *testing.T) {
	dir := t.TempDir()
	img := solid(100, 100, white)
	for y := 25; y < 75; y++ {
		for x := 25; x < 75; x++ {
			img.Set(x, y, black)
		}
	}
	src := writeImage(t, dir, "in.png", img)

	res, box, err := newEditor().ShrinkToNonBackground(src, nil, "")
	require.NoError(t, err)
	assert.Equal(t, detection.PartialTrim, box.Result)
	assert.Equal(t, src, res.Path)
	assert.Equal(t, 50, res.Width)
	assert.Equal(t, 50, res.Height)
	assert.Equal(t, 9, res.Quality, "quality 100 clamps to the PNG maximum")

	out, _ := readImage(t, src)
	assert.Equal(t, 50, out.Bounds().Dx())
	assert.Equal(t, black, out.NRGBAAt(0, 0))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestShrinkToNonBackground_Uniform(t *testing.T) {
	dir := t.TempDir()
	src := writeImage(t, dir, "in.png", solid(30, 20, white))

	res, box, err := newEditor().ShrinkToNonBackground(src, nil, "#FFFFFF")
	require.NoError(t, err)
	assert.Equal(t, detection.AllTrim, box.Result)
	assert.Equal(t, 30, res.Width)
	assert.Equal(t, 20, res.Height)
}

func TestShrinkToSquareNonBackground(t *testing.T) {
	dir := t.TempDir()
	img := solid(100, 100, white)
	for y := 40; y < 60; y++ {
		for x := 10; x < 90; x++ {
			img.Set(x, y, black)
		}
	}
	src := writeImage(t, dir, "in.png", img)
	dest := filepath.Join(dir, "square.png")

	res, err := newEditor().ShrinkToSquareNonBackground(src, dest, 40, ResizeOptions{Resample: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, 40, res.Width)

	trimmed, _ := readImage(t, src)
	assert.Equal(t, 80, trimmed.Bounds().Dx())
	assert.Equal(t, 20, trimmed.Bounds().Dy())

	// 80x20 fits as 40x10, centered vertically at y=15
	out, _ := readImage(t, dest)
	assert.Equal(t, white, out.NRGBAAt(20, 5))
	assert.Equal(t, black, out.NRGBAAt(20, 20))
}

func TestCrop(t *testing.T) {
	dir := t.TempDir()
	img := solid(40, 40, white)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			img.Set(x, y, red)
		}
	}
	src := writeImage(t, dir, "in.png", img)
	e := newEditor()

	dest := filepath.Join(dir, "coords.png")
	res, err := e.Crop(src, dest, CropOptions{X1: 20, Y1: 20, X2: 0, Y2: 0})
	require.NoError(t, err)
	assert.Equal(t, 20, res.Width)
	out, _ := readImage(t, dest)
	assert.Equal(t, red, out.NRGBAAt(10, 10))

	dest = filepath.Join(dir, "region.png")
	res, err = e.Crop(src, dest, CropOptions{Region: "bottom-right", NewWidth: 10, NewHeight: 10, Resample: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, 10, res.Width)
	out, _ = readImage(t, dest)
	assert.Equal(t, white, out.NRGBAAt(5, 5))

	_, err = e.Crop(src, dest, CropOptions{Region: "middle-ish"})
	assert.ErrorIs(t, err, imaging.ErrInvalidArgument)

	_, err = e.Crop(src, dest, CropOptions{X1: 5, Y1: 5, X2: 5, Y2: 30})
	assert.ErrorIs(t, err, imaging.ErrInvalidDimensions)
}

func TestSquareCrop(t *testing.T) {
	dir := t.TempDir()
	src := writeImage(t, dir, "in.png", solid(60, 30, red))

	dest := filepath.Join(dir, "out.png")
	res, err := newEditor().SquareCrop(src, dest, 0, SaveOptions{})
	require.NoError(t, err)
	assert.Equal(t, 30, res.Width)
	assert.Equal(t, 30, res.Height)

	res, err = newEditor().SquareCrop(src, dest, 12, SaveOptions{})
	require.NoError(t, err)
	assert.Equal(t, 12, res.Width)
}

func TestWatermark(t *testing.T) {
	dir := t.TempDir()
	src := writeImage(t, dir, "in.png", solid(50, 50, white))
	mark := writeImage(t, dir, "mark.png", solid(10, 10, red))
	dest := filepath.Join(dir, "out.png")

	_, err := newEditor().Watermark(src, dest, mark, WatermarkOptions{
		Anchor:  "bottom-right",
		Opacity: intPtr(100),
		Margin:  intPtr(5),
	})
	require.NoError(t, err)
	out, _ := readImage(t, dest)
	assert.Equal(t, red, out.NRGBAAt(40, 40))
	assert.Equal(t, white, out.NRGBAAt(45, 45))

	// defaults: center, 50% opacity
	_, err = newEditor().Watermark(src, dest, mark, WatermarkOptions{})
	require.NoError(t, err)
	out, _ = readImage(t, dest)
	mid := out.NRGBAAt(25, 25)
	assert.Equal(t, uint8(255), mid.R)
	assert.InDelta(t, 128, int(mid.G), 2)

	_, err = newEditor().Watermark(src, dest, mark, WatermarkOptions{Anchor: "somewhere"})
	assert.ErrorIs(t, err, imaging.ErrInvalidAnchor)

	_, err = newEditor().Watermark(src, dest, filepath.Join(dir, "none.png"), WatermarkOptions{})
	assert.ErrorIs(t, err, imaging.ErrIO)
}

func TestText(t *testing.T) {
	dir := t.TempDir()
	src := writeImage(t, dir, "in.png", solid(120, 60, white))
	dest := filepath.Join(dir, "out.png")

	_, err := newEditor().Text(src, dest, TextOptions{Text: "Hi", Size: 24, Anchor: "top-left"})
	require.NoError(t, err)

	out, _ := readImage(t, dest)
	ink := 0
	for y := 0; y < 30; y++ {
		for x := 0; x < 60; x++ {
			if out.NRGBAAt(x, y).R < 128 {
				ink++
			}
		}
	}
	assert.Positive(t, ink, "text drawn near the anchor in the configured color")

	_, err = newEditor().Text(src, dest, TextOptions{Text: "Hi", ShadowColor: "#12345"})
	assert.ErrorIs(t, err, imaging.ErrInvalidColor)

	_, err = newEditor().Text(src, dest, TextOptions{Text: "Hi", FontFile: filepath.Join(dir, "none.ttf")})
	assert.ErrorIs(t, err, imaging.ErrIO)
}

func TestTextOptions_Defaults(t *testing.T) {
	cfg := config.Defaults()
	cfg.FontSize = 30
	cfg.TextColor = "#FF0000"
	cfg.Margin = 7
	e := New(cfg)

	to, err := e.textOptions(TextOptions{Text: "x"})
	require.NoError(t, err)
	assert.Equal(t, 30, to.Size)
	assert.Equal(t, imaging.RGB{R: 255}, to.Color)
	assert.Equal(t, 7, to.Margin)
	assert.Equal(t, imaging.Center, to.Anchor)
	assert.Nil(t, to.Shadow)

	to, err = e.textOptions(TextOptions{Text: "x", Size: 10, Color: "#00F", Margin: intPtr(0), ShadowColor: "#000"})
	require.NoError(t, err)
	assert.Equal(t, 10, to.Size)
	assert.Equal(t, imaging.RGB{B: 255}, to.Color)
	assert.Equal(t, 0, to.Margin)
	require.NotNil(t, to.Shadow)
}
