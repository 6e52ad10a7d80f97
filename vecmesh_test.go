package vecmesh

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/benoitkugler/vecmesh/vecdoc"
	"github.com/benoitkugler/vecmesh/vecflat"
	"github.com/benoitkugler/vecmesh/vecsvg"
)

const squareSVG = `<svg xmlns="http://www.w3.org/2000/svg">
	<path d="M0 0 L10 0 L10 10 L0 10 Z"/>
</svg>`

func importSVG(t *testing.T, svg string, o ImportOptions) (*Summary, error) {
	t.Helper()
	doc, err := vecsvg.Decode([]byte(svg))
	if err != nil {
		t.Fatal(err)
	}
	_, sum, err := ReadDocument(doc, o)
	return sum, err
}

func TestImportSquare(t *testing.T) {
	doc, err := vecsvg.Decode([]byte(squareSVG))
	if err != nil {
		t.Fatal(err)
	}
	o := DefaultOptions()
	o.ErrorMode = vecdoc.IgnoreErrorMode
	mesh, sum, err := ReadDocument(doc, o)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Vertices != 4 || sum.Faces != 2 || sum.Regions != 1 {
		t.Errorf("summary = %+v, want 4 vertices, 2 faces, 1 region", sum)
	}
	b := mesh.Points.Bounds()
	if math.Abs(b.Max.X-2) > 1e-9 || math.Abs(b.Min.X+2) > 1e-9 {
		t.Errorf("longest side spans [%g, %g], want [-2, 2]", b.Min.X, b.Max.X)
	}
}

func TestImportExtruded(t *testing.T) {
	o := DefaultOptions()
	o.ErrorMode = vecdoc.IgnoreErrorMode
	o.ExtrudeDepth = 1

	sum, err := importSVG(t, squareSVG, o)
	if err != nil {
		t.Fatal(err)
	}
	// front cap (2 triangles) and 4 side quads, no back cap
	if sum.Faces != 6 || sum.Vertices != 8 {
		t.Errorf("summary = %+v, want 6 faces and 8 vertices", sum)
	}

	o.CapBack = true
	sum, err = importSVG(t, squareSVG, o)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Faces != 8 {
		t.Errorf("with back cap: %d faces, want 8", sum.Faces)
	}
}

func TestImportBeveled(t *testing.T) {
	o := DefaultOptions()
	o.ErrorMode = vecdoc.IgnoreErrorMode
	o.ExtrudeDepth = 1
	o.BevelAmount = 0.05
	o.BevelPitch = 30

	sum, err := importSVG(t, squareSVG, o)
	if err != nil {
		t.Fatal(err)
	}
	if len(sum.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", sum.Warnings)
	}
	// 4 sides, 4 rim quads, 2 inset cap triangles
	if sum.Faces != 10 {
		t.Errorf("face count = %d, want 10", sum.Faces)
	}
}

func TestImportWhiteBackground(t *testing.T) {
	const svg = `<svg xmlns="http://www.w3.org/2000/svg">
		<rect x="0" y="0" width="100" height="100" fill="#ffffff"/>
		<rect x="10" y="10" width="20" height="20" fill="#ff0000"/>
	</svg>`
	o := DefaultOptions()
	o.ErrorMode = vecdoc.IgnoreErrorMode

	sum, err := importSVG(t, svg, o)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Regions != 1 {
		t.Errorf("regions = %d, want the white background dropped", sum.Regions)
	}

	o.IgnoreWhite = false
	sum, err = importSVG(t, svg, o)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Regions != 2 {
		t.Errorf("regions = %d, want 2 with ignore_white_fill off", sum.Regions)
	}
}

func TestImportEvenWithWhiteBackground(t *testing.T) {
	const svg = `<svg xmlns="http://www.w3.org/2000/svg">
		<rect x="0" y="0" width="100" height="100" fill="#ffffff"/>
		<rect x="20" y="20" width="10" height="10" fill="#ff0000"/>
	</svg>`
	o := DefaultOptions()
	o.ErrorMode = vecdoc.IgnoreErrorMode
	o.Policy = vecflat.Even
	o.Smoothness = 0

	sum, err := importSVG(t, svg, o)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Regions != 1 {
		t.Fatalf("regions = %d, want the white background dropped", sum.Regions)
	}
	// the even target length comes from the 10x10 square, not
	// from the dropped 100x100 background
	if sum.Vertices != 16 {
		t.Errorf("vertices = %d, want 16 (4 per side)", sum.Vertices)
	}
}

func TestImportNoShapes(t *testing.T) {
	const svg = `<svg xmlns="http://www.w3.org/2000/svg">
		<path d="M0 0 L10 0 L10 10 Z" fill="none"/>
	</svg>`
	o := DefaultOptions()
	o.ErrorMode = vecdoc.IgnoreErrorMode
	if _, err := importSVG(t, svg, o); err != ErrNoShapes {
		t.Errorf("got %v, want ErrNoShapes", err)
	}
}

func TestOptionValidation(t *testing.T) {
	for _, tc := range []struct {
		option string
		tweak  func(*ImportOptions)
	}{
		{"scale", func(o *ImportOptions) { o.Scale = -1 }},
		{"smoothness", func(o *ImportOptions) { o.Smoothness = -1 }},
		{"extrude_depth", func(o *ImportOptions) { o.ExtrudeDepth = -0.5 }},
		{"bevel_amount", func(o *ImportOptions) { o.BevelAmount = -0.1 }},
		{"bevel_pitch", func(o *ImportOptions) { o.BevelPitch = 90 }},
	} {
		o := DefaultOptions()
		tc.tweak(&o)
		err := o.Validate()
		ce, ok := err.(*vecdoc.ConfigurationError)
		if !ok {
			t.Fatalf("%s: got %v, want a configuration error", tc.option, err)
		}
		if ce.Option != tc.option {
			t.Errorf("got option %q, want %q", ce.Option, tc.option)
		}
	}
	if err := DefaultOptions().Validate(); err != nil {
		t.Errorf("default options rejected: %v", err)
	}
}

func TestReadFileDispatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shape.svg")
	if err := os.WriteFile(path, []byte(squareSVG), 0o666); err != nil {
		t.Fatal(err)
	}
	o := DefaultOptions()
	o.ErrorMode = vecdoc.IgnoreErrorMode
	mesh, sum, err := ReadFile(path, o)
	if err != nil {
		t.Fatal(err)
	}
	if mesh == nil || sum.Faces != 2 {
		t.Errorf("summary = %+v, want 2 faces", sum)
	}

	if _, _, err := ReadFile(filepath.Join(dir, "shape.txt"), o); err == nil {
		t.Error("unknown extension accepted")
	}
}
