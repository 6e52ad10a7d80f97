// Package vecmesh converts vector graphics files (SVG, PDF and
// Adobe Illustrator) into polygonal 3D meshes. Paths are parsed into
// cubic-curve outlines, flattened under a configurable subdivision
// policy, resolved into filled regions with holes, triangulated, and
// optionally extruded and beveled.
//
// The subpackages expose each stage on its own; this package wires
// them into the one-shot import pipeline.
package vecmesh

import (
	"errors"
	"fmt"
	"log"

	"github.com/benoitkugler/vecmesh/vecdoc"
	"github.com/benoitkugler/vecmesh/vecfill"
	"github.com/benoitkugler/vecmesh/vecflat"
	"github.com/benoitkugler/vecmesh/vecmodel"
	"github.com/benoitkugler/vecmesh/vecoffset"
	"github.com/benoitkugler/vecmesh/vecpdf"
	"github.com/benoitkugler/vecmesh/vecsvg"
)

// ErrNoShapes is returned when a well-formed document yields no
// filled region at all, for instance when every path was stroke-only
// or filtered out as white background.
var ErrNoShapes = errors.New("vecmesh: no visible filled shapes in document")

// ImportOptions configures one import run. The zero value is not
// usable; start from DefaultOptions.
type ImportOptions struct {
	// Policy selects the curve subdivision policy.
	Policy vecflat.Policy
	// Smoothness drives the subdivision amount, see vecflat.
	Smoothness int
	// Scale is the target size of the longest bounding dimension
	// of the final mesh. Zero disables scaling and centering.
	Scale float64

	FilledOnly  bool
	IgnoreWhite bool
	Combine     bool
	UseColors   bool

	// ExtrudeDepth lifts the filled faces to this height, walling
	// in the boundary. Zero keeps the mesh flat.
	ExtrudeDepth float64
	// CapBack closes the back of an extruded solid.
	CapBack bool

	// BevelAmount insets the front face rim by this distance.
	// Zero disables beveling.
	BevelAmount float64
	// BevelPitch is the rim slope in degrees, in [0, 90).
	BevelPitch float64

	// ErrorMode controls recovery on malformed input constructs.
	ErrorMode vecdoc.ErrorMode
}

// DefaultOptions mirrors the historical importer defaults.
func DefaultOptions() ImportOptions {
	return ImportOptions{
		Policy:      vecflat.Uniform,
		Smoothness:  1,
		Scale:       4,
		FilledOnly:  true,
		IgnoreWhite: true,
		BevelPitch:  45,
		ErrorMode:   vecdoc.WarnErrorMode,
	}
}

// Validate rejects option combinations the pipeline cannot honor.
func (o ImportOptions) Validate() error {
	switch {
	case o.Scale < 0:
		return &vecdoc.ConfigurationError{Option: "scale", Detail: "must not be negative"}
	case o.Smoothness < 0:
		return &vecdoc.ConfigurationError{Option: "smoothness", Detail: "must not be negative"}
	case o.ExtrudeDepth < 0:
		return &vecdoc.ConfigurationError{Option: "extrude_depth", Detail: "must not be negative"}
	case o.BevelAmount < 0:
		return &vecdoc.ConfigurationError{Option: "bevel_amount", Detail: "must not be negative"}
	case o.BevelPitch < 0 || o.BevelPitch >= 90:
		return &vecdoc.ConfigurationError{Option: "bevel_pitch", Detail: "must be in [0, 90) degrees"}
	case o.Policy > vecflat.Even:
		return &vecdoc.ConfigurationError{Option: "subdivision_policy", Detail: "unknown policy"}
	}
	return nil
}

func (o ImportOptions) fill() vecfill.Options {
	return vecfill.Options{
		FilledOnly:  o.FilledOnly,
		IgnoreWhite: o.IgnoreWhite,
		Combine:     o.Combine,
		UseColors:   o.UseColors,
	}
}

// Summary reports what one import produced.
type Summary struct {
	Vertices, Faces, Regions int
	// Warnings lists the shapes that were skipped or truncated.
	Warnings []vecdoc.GeometryWarning
}

// ReadFile imports the vector file at path. The format is chosen
// from the file extension: .svg, .pdf, and .ai or .eps.
func ReadFile(path string, o ImportOptions) (*vecmodel.Mesh, *Summary, error) {
	if err := o.Validate(); err != nil {
		return nil, nil, err
	}
	format, ok := vecdoc.FormatFromPath(path)
	if !ok {
		return nil, nil, fmt.Errorf("vecmesh: unsupported file extension in %q", path)
	}
	var (
		doc *vecdoc.Document
		err error
	)
	if format == vecdoc.FormatSVG {
		doc, err = vecsvg.ReadFile(path, o.ErrorMode)
	} else {
		doc, err = vecpdf.ReadFile(path, o.ErrorMode)
	}
	if err != nil {
		return nil, nil, err
	}
	return ReadDocument(doc, o)
}

// ReadDocument runs the geometry pipeline on an already parsed
// document: flatten, resolve fills, triangulate, scale, extrude,
// bevel. Geometry problems below the parser never abort; they are
// collected in the summary.
func ReadDocument(doc *vecdoc.Document, o ImportOptions) (*vecmodel.Mesh, *Summary, error) {
	if err := o.Validate(); err != nil {
		return nil, nil, err
	}

	// The even target length is left unset here; Resolve derives
	// it from the paths surviving its filters.
	flat := vecflat.Options{Policy: o.Policy, Smoothness: o.Smoothness}

	areas, warnings := vecfill.Resolve(doc, o.fill(), flat)
	if len(areas) == 0 {
		return nil, nil, ErrNoShapes
	}

	mesh, buildWarns := vecmodel.Build(areas, o.UseColors)
	warnings = append(warnings, buildWarns...)
	if len(mesh.Faces) == 0 {
		return nil, nil, ErrNoShapes
	}

	if o.Scale > 0 {
		mesh.ScaleAndCenter(o.Scale)
	}
	if o.ExtrudeDepth > 0 {
		mesh.Extrude(o.ExtrudeDepth, o.CapBack)
	}
	if o.BevelAmount > 0 {
		res := vecoffset.Apply(mesh, o.BevelAmount, o.BevelPitch)
		warnings = append(warnings, res.Warnings...)
	}

	if o.ErrorMode == vecdoc.WarnErrorMode {
		for _, w := range warnings {
			log.Printf("vecmesh: %s (path %d)", w.Detail, w.PathIndex)
		}
	}

	return mesh, &Summary{
		Vertices: mesh.VertexCount(),
		Faces:    mesh.FaceCount(),
		Regions:  len(mesh.Regions),
		Warnings: warnings,
	}, nil
}
