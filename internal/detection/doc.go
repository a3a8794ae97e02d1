// Package detection finds content inside an image by scanning its pixels.
//
// ScanTrimBox locates the smallest rectangle holding every pixel that
// differs from a background color. It sweeps inward from each edge and stops
// at the first differing row or column, so images with little border are
// cheap to scan.
//
// # Coordinate System
//
// Boxes are reported relative to the image's top-left corner, with Left and
// Top inclusive and Right and Bottom exclusive.
//
// # Matching
//
// Pixels are compared as exact non-premultiplied RGBA values. A pixel whose
// alpha differs from the background counts as content even when its color
// channels match.
package detection
