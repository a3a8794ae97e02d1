package imaging

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// MergeAlpha blends src onto a copy of dst with its top-left corner at `at`,
// at opacity percent (0-100, clamped). dst is not modified.
//
// The region of dst under src is copied into a scratch buffer, src is
// composited onto the scratch buffer, and the scratch buffer is merged back
// at the requested opacity. The merge mixes "dst with src on top" against
// "dst", so dst's alpha survives: transparent areas under transparent parts
// of src stay transparent and opaque areas stay opaque.
func MergeAlpha(dst, src image.Image, at image.Point, opacity int) *image.NRGBA {
	out := imaging.Clone(dst)

	sb := src.Bounds()
	region := image.Rectangle{Min: at, Max: at.Add(sb.Size())}.Intersect(out.Bounds())
	if region.Empty() {
		return out
	}

	// 1. destination pixels under the overlay
	scratch := imaging.Crop(out, region)

	// 2. overlay composited onto them
	sp := sb.Min.Add(region.Min.Sub(at))
	draw.Draw(scratch, scratch.Bounds(), src, sp, draw.Over)

	// 3. merged back at the requested opacity
	alpha := uint8(clamp(opacity, 0, 100) * 255 / 100)
	mask := image.NewUniform(color.Alpha{A: alpha})
	draw.DrawMask(out, region, scratch, image.Point{}, mask, image.Point{}, draw.Over)

	return out
}

// Flatten composites img over an opaque bg canvas of the same size, for
// formats that cannot store transparency.
func Flatten(img image.Image, bg RGB) *image.NRGBA {
	b := img.Bounds()
	canvas := imaging.New(b.Dx(), b.Dy(), bg.NRGBA())
	return imaging.Overlay(canvas, img, image.Point{}, 1.0)
}
