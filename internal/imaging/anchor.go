package imaging

import (
	"fmt"
	"image"
	"strings"
)

// Anchor names one of nine positions inside a container.
type Anchor int

const (
	Center Anchor = iota
	TopLeft
	Top
	TopRight
	CenterLeft
	CenterRight
	BottomLeft
	Bottom
	BottomRight
)

var anchorNames = map[string]Anchor{
	"":              Center,
	"center":        Center,
	"top-left":      TopLeft,
	"left-top":      TopLeft,
	"top":           Top,
	"top-center":    Top,
	"center-top":    Top,
	"top-right":     TopRight,
	"right-top":     TopRight,
	"left":          CenterLeft,
	"center-left":   CenterLeft,
	"left-center":   CenterLeft,
	"right":         CenterRight,
	"center-right":  CenterRight,
	"right-center":  CenterRight,
	"bottom-left":   BottomLeft,
	"left-bottom":   BottomLeft,
	"bottom":        Bottom,
	"bottom-center": Bottom,
	"center-bottom": Bottom,
	"bottom-right":  BottomRight,
	"right-bottom":  BottomRight,
}

// ParseAnchor resolves an anchor name or alias, case-insensitively.
// The empty string means Center.
func ParseAnchor(name string) (Anchor, error) {
	a, ok := anchorNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Center, fmt.Errorf("%w: %q", ErrInvalidAnchor, name)
	}
	return a, nil
}

// AnchorNames lists the canonical anchor names.
func AnchorNames() []string {
	return []string{
		"top-left", "top", "top-right",
		"left", "center", "right",
		"bottom-left", "bottom", "bottom-right",
	}
}

func (a Anchor) String() string {
	switch a {
	case TopLeft:
		return "top-left"
	case Top:
		return "top"
	case TopRight:
		return "top-right"
	case CenterLeft:
		return "left"
	case CenterRight:
		return "right"
	case BottomLeft:
		return "bottom-left"
	case Bottom:
		return "bottom"
	case BottomRight:
		return "bottom-right"
	}
	return "center"
}

func (a Anchor) column() int {
	switch a {
	case TopLeft, CenterLeft, BottomLeft:
		return -1
	case TopRight, CenterRight, BottomRight:
		return 1
	}
	return 0
}

func (a Anchor) row() int {
	switch a {
	case TopLeft, Top, TopRight:
		return -1
	case BottomLeft, Bottom, BottomRight:
		return 1
	}
	return 0
}

// Position returns the top-left corner for an ow x oh overlay anchored inside
// a cw x ch container, kept margin pixels away from the anchored edges.
// Centered axes ignore the margin. Results may be negative when the overlay
// is larger than the container.
func Position(a Anchor, cw, ch, ow, oh, margin int) image.Point {
	return image.Point{
		X: axisOffset(a.column(), cw, ow, margin),
		Y: axisOffset(a.row(), ch, oh, margin),
	}
}

// TextPosition is Position for text, whose vertical coordinate is the
// baseline rather than the top edge: every row is shifted down by the font
// size, giving size+margin for top anchors, ch-th-margin+size for bottom
// anchors and (ch-th)/2+size for the center row.
func TextPosition(a Anchor, cw, ch, tw, th, size, margin int) image.Point {
	p := Position(a, cw, ch, tw, th, margin)
	p.Y += size
	return p
}

func axisOffset(side, container, overlay, margin int) int {
	switch side {
	case -1:
		return margin
	case 1:
		return container - overlay - margin
	}
	return (container - overlay) / 2
}
