package imaging

// Fit is the outcome of a fit calculation: the scaled image size and, for
// square canvases, where the scaled image sits on the canvas.
type Fit struct {
	Width   int `json:"width"`
	Height  int `json:"height"`
	OffsetX int `json:"offset_x"`
	OffsetY int `json:"offset_y"`
}

// FitWidth returns the height that keeps origW:origH when the width
// becomes newW, truncated toward zero. A zero-width original yields 0.
func FitWidth(origW, origH, newW int) int {
	if origW <= 0 {
		return 0
	}
	return newW * origH / origW
}

// FitHeight returns the width that keeps origW:origH when the height
// becomes newH, truncated toward zero. A zero-height original yields 0.
func FitHeight(origW, origH, newH int) int {
	if origH <= 0 {
		return 0
	}
	return newH * origW / origH
}

// FitWithin scales origW x origH down, preserving aspect ratio, until it fits
// inside maxW x maxH. Images already inside the bounds are returned unchanged;
// this never enlarges.
//
// The clamp runs in two passes: width first, then height if the height
// derived from the first pass still exceeds maxH.
func FitWithin(origW, origH, maxW, maxH int) (int, int) {
	newW, newH := origW, origH
	if origW > maxW {
		newW = maxW
		newH = FitWidth(origW, origH, newW)
	}
	if newH > maxH {
		newH = maxH
		newW = FitHeight(origW, origH, newH)
	}
	return newW, newH
}

// FitSquare fits origW x origH inside a size x size square and computes
// the offset that centers it.
//
// Only one axis is centered: vertical centering wins whenever the fitted
// height is short of size, and horizontal centering applies only otherwise.
// When both original dimensions are smaller than size, OffsetX is recomputed
// from the original width regardless of that choice. Callers rely on this
// exact layout.
func FitSquare(origW, origH, size int) Fit {
	w, h := FitWithin(origW, origH, size, size)
	fit := Fit{Width: w, Height: h}

	if size > h {
		fit.OffsetY = (size - h) / 2
	} else if size > w {
		fit.OffsetX = (size - w) / 2
	}

	if origW < size && origH < size {
		fit.OffsetX = (size - origW) / 2
	}
	return fit
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
