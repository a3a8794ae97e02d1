package detection

import (
	"image"
	"image/color"
)

// TrimResult classifies a trim box.
type TrimResult int

const (
	// NoTrim means no border pixels were found; the box is the whole image.
	NoTrim TrimResult = 0

	// PartialTrim means at least one edge moved inward.
	PartialTrim TrimResult = 1

	// AllTrim means every pixel matched the background. The box is then the
	// whole image rather than an empty one.
	AllTrim TrimResult = 2
)

func (r TrimResult) String() string {
	switch r {
	case NoTrim:
		return "none"
	case PartialTrim:
		return "partial"
	case AllTrim:
		return "all"
	}
	return "unknown"
}

// TrimBox is the smallest rectangle containing every non-background pixel.
//
// Left/Top are inclusive and Right/Bottom exclusive, all relative to the
// image's top-left corner.
type TrimBox struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`

	// Width and Height are Right-Left and Bottom-Top, except under AllTrim
	// where they equal the original dimensions.
	Width  int `json:"width"`
	Height int `json:"height"`

	OriginalWidth  int `json:"original_width"`
	OriginalHeight int `json:"original_height"`

	Result TrimResult `json:"result"`
}

// Rect returns the box as an image.Rectangle relative to the image origin.
func (b TrimBox) Rect() image.Rectangle {
	return image.Rect(b.Left, b.Top, b.Left+b.Width, b.Top+b.Height)
}

// ScanTrimBox finds the box around all pixels that differ from bg.
//
// When bg is nil the color of the top-left pixel is used. Matching is exact
// (non-premultiplied RGBA equality), so anti-aliased or lossy-compressed
// borders that are merely close to bg are not trimmed.
//
// The scan runs four sweeps in order: rows downward for Top, rows upward for
// Bottom, then columns rightward and leftward for Left and Right, the column
// sweeps limited to rows [Top, Bottom). If the first sweep finds nothing the
// image is uniform and the remaining sweeps are skipped.
func ScanTrimBox(img image.Image, bg color.Color) TrimBox {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	box := TrimBox{
		Right:          w,
		Bottom:         h,
		Width:          w,
		Height:         h,
		OriginalWidth:  w,
		OriginalHeight: h,
	}
	if w == 0 || h == 0 {
		box.Result = AllTrim
		return box
	}

	var want color.NRGBA
	if bg == nil {
		want = nrgbaAt(img, bounds.Min.X, bounds.Min.Y)
	} else {
		want = color.NRGBAModel.Convert(bg).(color.NRGBA)
	}
	isBackground := func(x, y int) bool {
		return nrgbaAt(img, bounds.Min.X+x, bounds.Min.Y+y) == want
	}
	rowClear := func(y int) bool {
		for x := 0; x < w; x++ {
			if !isBackground(x, y) {
				return false
			}
		}
		return true
	}
	colClear := func(x int) bool {
		for y := box.Top; y < box.Bottom; y++ {
			if !isBackground(x, y) {
				return false
			}
		}
		return true
	}

	for box.Top < h && rowClear(box.Top) {
		box.Top++
	}
	if box.Top == box.Bottom {
		box.Top = 0
		box.Result = AllTrim
		return box
	}

	for box.Bottom > 0 && rowClear(box.Bottom-1) {
		box.Bottom--
	}
	for box.Left < w && colClear(box.Left) {
		box.Left++
	}
	for box.Right > 0 && colClear(box.Right-1) {
		box.Right--
	}

	box.Width = box.Right - box.Left
	box.Height = box.Bottom - box.Top
	if box.Width < w || box.Height < h {
		box.Result = PartialTrim
	}
	return box
}

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	if m, ok := img.(*image.NRGBA); ok {
		return m.NRGBAAt(x, y)
	}
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}
