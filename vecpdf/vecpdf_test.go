package vecpdf

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/benoitkugler/vecmesh/vecdoc"
	"github.com/benoitkugler/vecmesh/vecflat"
	"github.com/jung-kurt/gofpdf"
)

// wrap embeds a content stream in a minimal uncompressed PDF
func wrap(content string) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n1 0 obj\n<< /Length ")
	buf.WriteString("0")
	buf.WriteString(" >>\nstream\n")
	buf.WriteString(content)
	buf.WriteString("\nendstream\nendobj\n%%EOF\n")
	return buf.Bytes()
}

func decode(t *testing.T, content string) *vecdoc.Document {
	t.Helper()
	doc, err := Decode(wrap(content))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	return doc
}

func TestRectangleFill(t *testing.T) {
	doc := decode(t, "1 0 0 rg 10 10 100 50 re f")
	if len(doc.Paths) != 1 {
		t.Fatalf("%d paths, want 1", len(doc.Paths))
	}
	p := doc.Paths[0]
	if !p.Style.Filled || p.Style.Color != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("style = %+v, want filled red", p.Style)
	}
	if !p.Style.UseNonZeroWinding {
		t.Error("f uses the nonzero rule")
	}
	if len(p.Subpaths) != 1 || !p.Subpaths[0].Closed {
		t.Fatal("re should yield one closed subpath")
	}
	b := vecflat.PathBounds(doc.Paths[0])
	if b.MinX != 10 || b.MaxX != 110 || b.MinY != 10 || b.MaxY != 60 {
		t.Errorf("bounds = %+v", b)
	}
}

func TestEvenOddFill(t *testing.T) {
	doc := decode(t, "0 0 m 10 0 l 5 8 l h f*")
	if doc.Paths[0].Style.UseNonZeroWinding {
		t.Error("f* uses the even-odd rule")
	}
}

func TestCurveOperators(t *testing.T) {
	doc := decode(t, "0 0 m 1 2 3 2 4 0 c 5 -2 6 0 v 8 2 9 0 y h f")
	segs := doc.Paths[0].Subpaths[0].Segments
	if len(segs) != 4 {
		t.Fatalf("%d segments, want 4 (3 curves + closing line)", len(segs))
	}
	for i := 0; i < 3; i++ {
		if segs[i].Kind != vecdoc.KindCubic {
			t.Errorf("segment %d should be cubic", i)
		}
	}
	// v: first control point is the previous current point
	if segs[1].C1 != segs[0].End {
		t.Error("v operator control point mismatch")
	}
	// y: second control point is the end point
	if segs[2].C2 != segs[2].End {
		t.Error("y operator control point mismatch")
	}
}

func TestTransformAndStateStack(t *testing.T) {
	doc := decode(t, `
		q 2 0 0 2 0 0 cm 0 0 m 5 0 l 5 5 l h f Q
		0 0 m 5 0 l 5 5 l h f
	`)
	if len(doc.Paths) != 2 {
		t.Fatalf("%d paths, want 2", len(doc.Paths))
	}
	b0 := vecflat.PathBounds(doc.Paths[0])
	if b0.MaxX != 10 || b0.MaxY != 10 {
		t.Errorf("scaled path bounds = %+v, want 10x10", b0)
	}
	b1 := vecflat.PathBounds(doc.Paths[1])
	if b1.MaxX != 5 || b1.MaxY != 5 {
		t.Errorf("restored path bounds = %+v, want 5x5", b1)
	}
}

func TestCMYKColor(t *testing.T) {
	doc := decode(t, "1 0 1 0 k 0 0 10 10 re f")
	want := color.RGBA{G: 255, A: 255}
	if doc.Paths[0].Style.Color != want {
		t.Errorf("cmyk fill = %v, want %v", doc.Paths[0].Style.Color, want)
	}
}

func TestClipPathDiscarded(t *testing.T) {
	doc := decode(t, "0 0 50 50 re W n 1 0 0 rg 5 5 10 10 re f")
	if len(doc.Paths) != 1 {
		t.Fatalf("%d paths, want 1 (clip path dropped)", len(doc.Paths))
	}
}

func TestStrokeOnlyPath(t *testing.T) {
	doc := decode(t, "0 0 m 10 10 l S 0 0 5 5 re f")
	if len(doc.Paths) != 2 {
		t.Fatalf("%d paths, want 2", len(doc.Paths))
	}
	if doc.Paths[0].Style.Filled {
		t.Error("stroked path should not be filled")
	}
}

func TestTextSkipped(t *testing.T) {
	doc := decode(t, "BT /F1 12 Tf (hello (world)) Tj ET 0 0 5 5 re f")
	if len(doc.Paths) != 1 {
		t.Errorf("%d paths, want 1 (text block skipped)", len(doc.Paths))
	}
}

func TestMissingHeader(t *testing.T) {
	_, err := Decode([]byte("garbage"))
	pe, ok := err.(*vecdoc.ParseError)
	if !ok || pe.Kind != vecdoc.MalformedStructure {
		t.Errorf("expected malformed-structure error, got %v", err)
	}
}

func TestNoShapes(t *testing.T) {
	_, err := Decode(wrap("BT (just text) Tj ET"))
	pe, ok := err.(*vecdoc.ParseError)
	if !ok || pe.Kind != vecdoc.NoShapesFound {
		t.Errorf("expected no-shapes error, got %v", err)
	}
}

func TestClassicAI(t *testing.T) {
	src := []byte(`%!PS-Adobe-3.0
%%Creator: Adobe Illustrator
%%EndComments
0 0 0 1 k
0 0 m
20 0 l
20 20 l
0 20 l
f
`)
	doc, err := DecodeAI(src)
	if err != nil {
		t.Fatalf("classic AI decode failed: %v", err)
	}
	if len(doc.Paths) != 1 {
		t.Fatalf("%d paths, want 1", len(doc.Paths))
	}
	if doc.Paths[0].Style.Color != (color.RGBA{A: 255}) {
		t.Errorf("fill = %v, want black", doc.Paths[0].Style.Color)
	}
}

func TestAIUnsupportedHeader(t *testing.T) {
	_, err := DecodeAI([]byte("BINARYJUNK"))
	pe, ok := err.(*vecdoc.ParseError)
	if !ok || pe.Kind != vecdoc.UnsupportedVersion {
		t.Errorf("expected unsupported-version error, got %v", err)
	}
}

// round trip through a real, Flate compressed PDF
func TestGofpdfRoundTrip(t *testing.T) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.AddPage()
	pdf.SetFillColor(255, 0, 0)
	pdf.Rect(100, 100, 200, 100, "F")
	pdf.SetFillColor(0, 0, 255)
	pdf.Circle(300, 400, 50, "F")
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("building fixture: %v", err)
	}

	doc, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("decoding generated pdf: %v", err)
	}
	var sawRed, sawBlue bool
	for _, p := range doc.Paths {
		if !p.Style.Filled {
			continue
		}
		switch p.Style.Color {
		case color.RGBA{R: 255, A: 255}:
			sawRed = true
		case color.RGBA{B: 255, A: 255}:
			sawBlue = true
		}
	}
	if !sawRed || !sawBlue {
		t.Errorf("missing fills: red=%v blue=%v in %d paths", sawRed, sawBlue, len(doc.Paths))
	}
}
