package vecsvg

import (
	"image/color"
	"strings"
	"testing"

	"github.com/benoitkugler/vecmesh/vecdoc"
	"github.com/benoitkugler/vecmesh/vecflat"
)

func read(t *testing.T, svg string, mode vecdoc.ErrorMode) *vecdoc.Document {
	t.Helper()
	doc, err := ReadStream(strings.NewReader(svg), mode)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return doc
}

func TestPathSquare(t *testing.T) {
	doc := read(t, `<svg xmlns="http://www.w3.org/2000/svg">
		<path d="M 0 0 L 10 0 L 10 10 L 0 10 Z" fill="#ff0000"/>
	</svg>`, vecdoc.IgnoreErrorMode)

	if len(doc.Paths) != 1 {
		t.Fatalf("%d paths, want 1", len(doc.Paths))
	}
	p := doc.Paths[0]
	if !p.Style.Filled || !p.Style.HasColor {
		t.Error("path should be filled with a color")
	}
	if p.Style.Color != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("fill color = %v, want red", p.Style.Color)
	}
	if len(p.Subpaths) != 1 || !p.Subpaths[0].Closed {
		t.Fatal("expected one closed subpath")
	}
	// three lines plus the closing line added by Z
	if got := len(p.Subpaths[0].Segments); got != 4 {
		t.Errorf("%d segments, want 4", got)
	}
}

func TestYAxisFlip(t *testing.T) {
	doc := read(t, `<svg><rect x="0" y="0" width="10" height="5" fill="black"/></svg>`,
		vecdoc.IgnoreErrorMode)
	b := vecflat.PathBounds(doc.Paths[0])
	if b.MinY != -5 || b.MaxY != 0 {
		t.Errorf("flipped bounds Y = [%g, %g], want [-5, 0]", b.MinY, b.MaxY)
	}
}

func TestRelativeAndImplicitCommands(t *testing.T) {
	doc := read(t, `<svg><path d="m 1 1 l 4 0 0 4 h -4 z" fill="blue"/></svg>`,
		vecdoc.IgnoreErrorMode)
	sp := doc.Paths[0].Subpaths[0]
	if !sp.Closed {
		t.Fatal("subpath should be closed")
	}
	// m, l, implicit l, h, plus the closing line from (1,5)
	// back to (1,1)
	if len(sp.Segments) != 4 {
		t.Errorf("%d segments, want 4", len(sp.Segments))
	}
	b := vecflat.PathBounds(doc.Paths[0])
	if b.MinX != 1 || b.MaxX != 5 {
		t.Errorf("bounds X = [%g, %g], want [1, 5]", b.MinX, b.MaxX)
	}
}

func TestCurveCommands(t *testing.T) {
	doc := read(t, `<svg><path d="M0 0 C 1 2 3 2 4 0 S 7 -2 8 0 Q 9 1 10 0 T 12 0" fill="green"/></svg>`,
		vecdoc.IgnoreErrorMode)
	segs := doc.Paths[0].Subpaths[0].Segments
	if len(segs) != 4 {
		t.Fatalf("%d segments, want 4", len(segs))
	}
	for i, seg := range segs {
		if seg.Kind != vecdoc.KindCubic {
			t.Errorf("segment %d: kind %v, want cubic", i, seg.Kind)
		}
	}
}

func TestCircleElement(t *testing.T) {
	doc := read(t, `<svg><circle cx="5" cy="5" r="3" fill="#00f"/></svg>`,
		vecdoc.IgnoreErrorMode)
	sp := doc.Paths[0].Subpaths[0]
	if len(sp.Segments) != 4 {
		t.Errorf("circle: %d segments, want 4 cubic quadrants", len(sp.Segments))
	}
	if !sp.Closed {
		t.Error("circle should be closed")
	}
}

func TestArcCommand(t *testing.T) {
	doc := read(t, `<svg><path d="M 0 0 A 5 5 0 0 1 10 0 Z" fill="black"/></svg>`,
		vecdoc.IgnoreErrorMode)
	segs := doc.Paths[0].Subpaths[0].Segments
	if len(segs) < 2 {
		t.Fatalf("arc produced %d segments, want several cubics", len(segs))
	}
	// the last arc spline ends exactly at the arc end point
	// (before the closing line back to the start)
	last := segs[len(segs)-2]
	if got := vecdoc.ToFixed(10, 0); last.End.X != got.X {
		t.Errorf("arc end X = %v, want %v", last.End.X, got.X)
	}
}

func TestGroupInheritance(t *testing.T) {
	doc := read(t, `<svg>
		<g fill="#00ff00" transform="translate(10, 0)">
			<rect x="0" y="0" width="2" height="2"/>
			<rect x="4" y="0" width="2" height="2" fill="rgb(255, 0, 0)"/>
		</g>
	</svg>`, vecdoc.IgnoreErrorMode)
	if len(doc.Paths) != 2 {
		t.Fatalf("%d paths, want 2", len(doc.Paths))
	}
	if doc.Paths[0].Style.Color != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("inherited fill = %v, want green", doc.Paths[0].Style.Color)
	}
	if doc.Paths[1].Style.Color != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("overridden fill = %v, want red", doc.Paths[1].Style.Color)
	}
	b := vecflat.PathBounds(doc.Paths[0])
	b.Union(vecflat.PathBounds(doc.Paths[1]))
	if b.MinX != 10 || b.MaxX != 16 {
		t.Errorf("translated bounds X = [%g, %g], want [10, 16]", b.MinX, b.MaxX)
	}
}

func TestFillRule(t *testing.T) {
	doc := read(t, `<svg>
		<path d="M0 0 h4 v4 h-4 z" fill="black" fill-rule="nonzero"/>
		<path d="M10 0 h4 v4 h-4 z" fill="black" fill-rule="evenodd"/>
		<path d="M20 0 h4 v4 h-4 z" fill="black"/>
	</svg>`, vecdoc.IgnoreErrorMode)
	if !doc.Paths[0].Style.UseNonZeroWinding {
		t.Error("explicit nonzero not honored")
	}
	if doc.Paths[1].Style.UseNonZeroWinding {
		t.Error("explicit evenodd not honored")
	}
	if doc.Paths[2].Style.UseNonZeroWinding {
		t.Error("default winding should be even-odd")
	}
}

func TestFillNone(t *testing.T) {
	doc := read(t, `<svg>
		<rect x="0" y="0" width="2" height="2" fill="none" stroke="black"/>
		<rect x="4" y="0" width="2" height="2" fill="black"/>
	</svg>`, vecdoc.IgnoreErrorMode)
	if len(doc.Paths) != 2 {
		t.Fatalf("%d paths, want 2", len(doc.Paths))
	}
	if doc.Paths[0].Style.Filled {
		t.Error("fill=none should not be filled")
	}
	if !doc.Paths[1].Style.Filled {
		t.Error("second rect should be filled")
	}
}

func TestDefsSkipped(t *testing.T) {
	doc := read(t, `<svg>
		<defs><rect x="0" y="0" width="100" height="100"/></defs>
		<rect x="0" y="0" width="2" height="2" fill="black"/>
	</svg>`, vecdoc.IgnoreErrorMode)
	if len(doc.Paths) != 1 {
		t.Errorf("%d paths, want 1 (defs content not drawn)", len(doc.Paths))
	}
}

func TestNamedColors(t *testing.T) {
	doc := read(t, `<svg><rect x="0" y="0" width="1" height="1" fill="mediumseagreen"/></svg>`,
		vecdoc.IgnoreErrorMode)
	want := color.RGBA{R: 0x3c, G: 0xb3, B: 0x71, A: 255}
	if doc.Paths[0].Style.Color != want {
		t.Errorf("named color = %v, want %v", doc.Paths[0].Style.Color, want)
	}
}

func TestUnknownElementModes(t *testing.T) {
	const svg = `<svg>
		<text x="0" y="0">hello</text>
		<rect x="0" y="0" width="1" height="1" fill="black"/>
	</svg>`
	if _, err := ReadStream(strings.NewReader(svg), vecdoc.StrictErrorMode); err == nil {
		t.Error("strict mode should fail on text element")
	}
	doc := read(t, svg, vecdoc.IgnoreErrorMode)
	if len(doc.Paths) != 1 {
		t.Errorf("ignore mode: %d paths, want 1", len(doc.Paths))
	}
}

func TestNoShapes(t *testing.T) {
	_, err := ReadStream(strings.NewReader(`<svg></svg>`), vecdoc.IgnoreErrorMode)
	pe, ok := err.(*vecdoc.ParseError)
	if !ok || pe.Kind != vecdoc.NoShapesFound {
		t.Errorf("expected no-shapes parse error, got %v", err)
	}
}

func TestNotXML(t *testing.T) {
	_, err := ReadStream(strings.NewReader("not xml at all"), vecdoc.IgnoreErrorMode)
	pe, ok := err.(*vecdoc.ParseError)
	if !ok || pe.Kind != vecdoc.MalformedStructure {
		t.Errorf("expected malformed-structure parse error, got %v", err)
	}
}
