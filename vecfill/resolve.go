// Resolves filled subpaths into regions: outer boundaries
// with their holes, ready for triangulation.
package vecfill

import (
	"github.com/benoitkugler/vecmesh/vecdoc"
	"github.com/benoitkugler/vecmesh/vecflat"
	"github.com/benoitkugler/vecmesh/vecgeom"
)

// Options selects which paths take part in the conversion and
// how their fill topology is resolved.
type Options struct {
	// FilledOnly drops stroke-only paths.
	FilledOnly bool
	// IgnoreWhite drops near-white fills, typically page
	// background rectangles.
	IgnoreWhite bool
	// Combine resolves containment across all paths instead
	// of treating each subpath independently. Quadratic in
	// the number of subpaths.
	Combine bool
	// UseColors assigns material identities from fill colors.
	UseColors bool
}

// channel threshold above which a fill counts as white
const whiteThreshold = 250

func isWhite(s vecdoc.FillStyle) bool {
	return s.HasColor &&
		s.Color.R >= whiteThreshold &&
		s.Color.G >= whiteThreshold &&
		s.Color.B >= whiteThreshold
}

// Resolve converts the document's paths to regions under the
// given flattening options. Degenerate subpaths are reported
// as warnings and skipped.
func Resolve(doc *vecdoc.Document, o Options, flat vecflat.Options) ([]*vecgeom.PolyArea, []vecdoc.GeometryWarning) {
	var warnings []vecdoc.GeometryWarning

	type flatPath struct {
		index int // in doc.Paths
		style vecdoc.FillStyle
		subs  []vecdoc.Subpath
	}
	var kept []flatPath
	for i, p := range doc.Paths {
		if o.FilledOnly && !p.Style.Filled {
			continue
		}
		if o.IgnoreWhite && isWhite(p.Style) {
			continue
		}
		kept = append(kept, flatPath{i, p.Style, p.Subpaths})
	}

	// The even target length is derived from the paths that
	// survive the filters, so a discarded page background does
	// not inflate it.
	if flat.Policy == vecflat.Even && flat.EvenLength <= 0 {
		bounds := vecgeom.EmptyRect()
		for _, fp := range kept {
			bounds.Union(vecflat.PathBounds(vecdoc.Path{Subpaths: fp.subs}))
		}
		flat.EvenLength = vecflat.EvenLengthFor(bounds, flat.Smoothness)
	}

	var simple []*vecgeom.PolyArea
	for _, fp := range kept {
		for _, sp := range fp.subs {
			pa, ok := subpathToPolyArea(sp, flat, fp.style, fp.index)
			if !ok {
				warnings = append(warnings, vecdoc.GeometryWarning{
					PathIndex: fp.index,
					Detail:    "degenerate subpath with fewer than 3 points dropped",
				})
				continue
			}
			simple = append(simple, pa)
		}
	}

	if o.Combine {
		return combineSimplePolyAreas(simple), warnings
	}
	// independent mode: every subpath is its own boundary
	return simple, warnings
}

// subpathToPolyArea flattens one subpath into a CCW simple
// polygon. Consecutive near-equal points are merged; the bool
// is false when fewer than 3 distinct points remain.
func subpathToPolyArea(sp vecdoc.Subpath, flat vecflat.Options, style vecdoc.FillStyle, pathIndex int) (*vecgeom.PolyArea, bool) {
	fs := vecflat.FlattenSubpath(sp, flat)
	pa := &vecgeom.PolyArea{
		Points:    vecgeom.NewPoints(),
		Color:     style.Color,
		HasColor:  style.HasColor,
		PathIndex: pathIndex,
	}
	prev := -1
	for i, p := range fs.Pts {
		vi := pa.Points.AddPoint(p)
		if vi == prev {
			continue
		}
		if i == len(fs.Pts)-1 && len(pa.Poly) > 0 && vi == pa.Poly[0] {
			continue
		}
		pa.Poly = append(pa.Poly, vi)
		prev = vi
	}
	if len(pa.Poly) < 3 {
		return nil, false
	}
	if vecgeom.SignedArea(pa.Poly, pa.Points) < 0 {
		vecgeom.Reverse(pa.Poly)
	}
	return pa, true
}
