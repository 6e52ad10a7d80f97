// Defines the uniform document model produced by the
// format decoders (SVG, PDF, AI) and consumed by the
// flattening and meshing stages.
package vecdoc

import (
	"image/color"
	"path/filepath"
	"strings"

	"golang.org/x/image/math/fixed"
)

// Format identifies a supported vector-graphics file format.
type Format uint8

const (
	FormatSVG Format = iota
	FormatPDF
	FormatAI
)

func (f Format) String() string {
	switch f {
	case FormatSVG:
		return "svg"
	case FormatPDF:
		return "pdf"
	case FormatAI:
		return "ai"
	}
	return "unknown"
}

// FormatFromPath infers the format from a file extension.
// The bool is false when the extension is not recognized.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return FormatSVG, true
	case ".pdf":
		return FormatPDF, true
	case ".ai", ".eps":
		return FormatAI, true
	}
	return 0, false
}

// SegmentKind distinguishes the two primitives kept after
// parsing: straight lines and cubic Bezier curves. Quadratics
// and elliptical arcs are converted at parse time.
type SegmentKind uint8

const (
	KindLine SegmentKind = iota
	KindCubic
)

// Segment is one piece of a subpath. C1 and C2 are only
// meaningful for KindCubic.
type Segment struct {
	Kind       SegmentKind
	Start, End fixed.Point26_6
	C1, C2     fixed.Point26_6
}

// Subpath is a chain of segments where each segment starts at
// the previous segment's end point.
type Subpath struct {
	Segments []Segment
	// Closed subpaths enclose area; an explicit closing line
	// back to the first point is already present in Segments
	// when the end point differs from the start.
	Closed bool
}

// Start returns the first point of the subpath.
func (s *Subpath) Start() fixed.Point26_6 {
	if len(s.Segments) == 0 {
		return fixed.Point26_6{}
	}
	return s.Segments[0].Start
}

// FillStyle describes how a path is painted.
type FillStyle struct {
	Color    color.RGBA
	HasColor bool
	// Filled is false for stroke-only paths.
	Filled bool
	// UseNonZeroWinding selects the nonzero rule; the default
	// (false) is even-odd, matching SVG fill-rule="evenodd"
	// and the PDF f* operator.
	UseNonZeroWinding bool
}

// Path groups the subpaths sharing one fill style.
type Path struct {
	Subpaths []Subpath
	Style    FillStyle
}

// Document is the parsed content of one vector-graphics file,
// with paths in declaration order.
type Document struct {
	Paths []Path
}

// IsEmpty reports whether no path carries any segment.
func (d *Document) IsEmpty() bool {
	for _, p := range d.Paths {
		for _, sp := range p.Subpaths {
			if len(sp.Segments) != 0 {
				return false
			}
		}
	}
	return true
}
