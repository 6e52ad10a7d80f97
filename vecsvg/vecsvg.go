// Parses SVG files into the uniform document model.
// Only the geometry and fill subset needed for mesh
// conversion is interpreted; presentation features such as
// gradients, text and filters are skipped according to the
// error mode.
package vecsvg

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"os"

	"github.com/benoitkugler/vecmesh/vecdoc"
	"golang.org/x/net/html/charset"
)

// svgStyle is the inheritable state accumulated while walking
// the element tree.
type svgStyle struct {
	fill              rgba
	hasFill           bool
	stroked           bool
	useNonZeroWinding bool
	transform         vecdoc.Matrix2D
}

// defaultStyle fills black, even-odd, no stroke. The root
// transform flips the Y axis so shapes come out upright in the
// mesh's coordinate system.
var defaultStyle = svgStyle{
	fill:      rgba{0, 0, 0, 0xff},
	hasFill:   true,
	transform: vecdoc.Identity.Scale(1, -1),
}

// svgCursor is the parse state threaded through element
// handlers.
type svgCursor struct {
	doc        *vecdoc.Document
	styleStack []svgStyle
	builder    vecdoc.PathBuilder
	points     []float64 // scratch for number lists
	errorMode  vecdoc.ErrorMode
	inDefs     bool
}

func (c *svgCursor) style() *svgStyle { return &c.styleStack[len(c.styleStack)-1] }

// ReadStream decodes an SVG document from stream. errMode
// determines whether unknown elements are ignored, logged, or
// abort the parse.
func ReadStream(stream io.Reader, errMode vecdoc.ErrorMode) (*vecdoc.Document, error) {
	doc := &vecdoc.Document{}
	cursor := &svgCursor{doc: doc, styleStack: []svgStyle{defaultStyle}, errorMode: errMode}
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	seenTag := false
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				if !seenTag {
					return nil, parseError(0, "not an svg document")
				}
				break
			}
			return nil, parseError(decoder.InputOffset(), err.Error())
		}
		switch se := t.(type) {
		case xml.StartElement:
			seenTag = true
			if err = cursor.pushStyle(se.Attr); err != nil {
				return nil, parseError(decoder.InputOffset(), err.Error())
			}
			if err = cursor.readStartElement(se); err != nil {
				return nil, parseError(decoder.InputOffset(), err.Error())
			}
		case xml.EndElement:
			cursor.styleStack = cursor.styleStack[:len(cursor.styleStack)-1]
			if se.Name.Local == "defs" {
				cursor.inDefs = false
			}
		}
	}
	if doc.IsEmpty() {
		return nil, &vecdoc.ParseError{Format: vecdoc.FormatSVG, Kind: vecdoc.NoShapesFound}
	}
	return doc, nil
}

// Decode decodes an SVG document from raw bytes.
func Decode(data []byte) (*vecdoc.Document, error) {
	return ReadStream(bytes.NewReader(data), vecdoc.IgnoreErrorMode)
}

// ReadFile decodes the named SVG file.
func ReadFile(path string, errMode vecdoc.ErrorMode) (*vecdoc.Document, error) {
	fin, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	return ReadStream(fin, errMode)
}

func parseError(offset int64, detail string) *vecdoc.ParseError {
	return &vecdoc.ParseError{
		Format: vecdoc.FormatSVG,
		Kind:   vecdoc.MalformedStructure,
		Offset: offset,
		Detail: detail,
	}
}

func (c *svgCursor) readStartElement(se xml.StartElement) error {
	if c.inDefs {
		// referenced content is out of scope; geometry inside
		// defs is not drawn directly
		return nil
	}
	df, ok := drawFuncs[se.Name.Local]
	if !ok {
		return c.unsupported("svg element " + se.Name.Local)
	}
	if err := df(c, se.Attr); err != nil {
		return err
	}
	c.flushPath()
	return nil
}

// unsupported applies the error mode to an element or value the
// decoder does not handle.
func (c *svgCursor) unsupported(what string) error {
	switch c.errorMode {
	case vecdoc.StrictErrorMode:
		return errors.New("cannot process " + what)
	case vecdoc.WarnErrorMode:
		warnf("skipping %s", what)
	}
	return nil
}

// flushPath transfers the geometry accumulated by the current
// element to the document, transformed and bound to its style.
func (c *svgCursor) flushPath() {
	subs := c.builder.Finish()
	if len(subs) == 0 {
		return
	}
	st := c.style()
	if !st.hasFill && !st.stroked {
		return
	}
	for si := range subs {
		segs := subs[si].Segments
		for i := range segs {
			segs[i].Start = st.transform.TransformFixed(segs[i].Start)
			segs[i].End = st.transform.TransformFixed(segs[i].End)
			segs[i].C1 = st.transform.TransformFixed(segs[i].C1)
			segs[i].C2 = st.transform.TransformFixed(segs[i].C2)
		}
	}
	c.doc.Paths = append(c.doc.Paths, vecdoc.Path{
		Subpaths: subs,
		Style: vecdoc.FillStyle{
			Color:             st.fill.toColor(),
			HasColor:          st.hasFill,
			Filled:            st.hasFill,
			UseNonZeroWinding: st.useNonZeroWinding,
		},
	})
}
