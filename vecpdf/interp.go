package vecpdf

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/benoitkugler/vecmesh/vecdoc"
)

// graphics state saved and restored by q / Q
type gstate struct {
	ctm      vecdoc.Matrix2D
	fill     color.RGBA
	hasFill  bool
	filledEO bool // remembered winding of the last paint op
}

// interpreter executes the path subset of the content stream
// language, appending completed paths to the document.
type interpreter struct {
	doc *vecdoc.Document

	state      gstate
	stateStack []gstate

	builder vecdoc.PathBuilder
	px, py  float64 // current point, user space

	stack  []float64 // numeric operands
	offset int64     // last token position, for error reports
}

func newInterpreter(doc *vecdoc.Document) *interpreter {
	return &interpreter{
		doc: doc,
		state: gstate{
			ctm:     vecdoc.Identity,
			fill:    color.RGBA{A: 255}, // black
			hasFill: true,
		},
	}
}

func (in *interpreter) run(content []byte) error {
	tk := &tokenizer{data: content}
	for {
		tok, err := tk.next()
		if err != nil {
			return err
		}
		in.offset = int64(tk.pos)
		switch tok.kind {
		case tokEOF:
			return nil
		case tokNumber:
			in.stack = append(in.stack, tok.value)
		case tokName, tokString, tokArrayOpen, tokArrayClose, tokDictOpen, tokDictClose:
			// operands we carry no meaning for; they will be
			// cleared by the next operator
		case tokOperator:
			if err := in.exec(tok.op, tk); err != nil {
				return err
			}
			in.stack = in.stack[:0]
		}
	}
}

// pop returns the last n operands, or false when the stack is
// too short (a malformed or foreign operator sequence).
func (in *interpreter) pop(n int) ([]float64, bool) {
	if len(in.stack) < n {
		return nil, false
	}
	return in.stack[len(in.stack)-n:], true
}

func (in *interpreter) moveTo(x, y float64) { in.px, in.py = x, y }

// user space point through the CTM
func (in *interpreter) toDevice(x, y float64) (float64, float64) {
	return in.state.ctm.Transform(x, y)
}

func (in *interpreter) start(x, y float64) {
	dx, dy := in.toDevice(x, y)
	in.builder.Start(vecdoc.ToFixed(dx, dy))
	in.moveTo(x, y)
}

func (in *interpreter) line(x, y float64) {
	dx, dy := in.toDevice(x, y)
	in.builder.Line(vecdoc.ToFixed(dx, dy))
	in.moveTo(x, y)
}

func (in *interpreter) cubic(x1, y1, x2, y2, x3, y3 float64) {
	dx1, dy1 := in.toDevice(x1, y1)
	dx2, dy2 := in.toDevice(x2, y2)
	dx3, dy3 := in.toDevice(x3, y3)
	in.builder.CubeBezier(vecdoc.ToFixed(dx1, dy1), vecdoc.ToFixed(dx2, dy2), vecdoc.ToFixed(dx3, dy3))
	in.moveTo(x3, y3)
}

func (in *interpreter) exec(op string, tk *tokenizer) error {
	switch op {
	case "q":
		in.stateStack = append(in.stateStack, in.state)
	case "Q":
		if n := len(in.stateStack); n > 0 {
			in.state = in.stateStack[n-1]
			in.stateStack = in.stateStack[:n-1]
		}
	case "cm":
		args, ok := in.pop(6)
		if !ok {
			return fmt.Errorf("cm needs 6 operands")
		}
		in.state.ctm = in.state.ctm.Mult(vecdoc.Matrix2D{
			A: args[0], B: args[1], C: args[2],
			D: args[3], E: args[4], F: args[5],
		})

	case "m":
		args, ok := in.pop(2)
		if !ok {
			return fmt.Errorf("m needs 2 operands")
		}
		in.start(args[0], args[1])
	case "l":
		args, ok := in.pop(2)
		if !ok {
			return fmt.Errorf("l needs 2 operands")
		}
		in.line(args[0], args[1])
	case "c":
		args, ok := in.pop(6)
		if !ok {
			return fmt.Errorf("c needs 6 operands")
		}
		in.cubic(args[0], args[1], args[2], args[3], args[4], args[5])
	case "v":
		// first control point coincides with the current point
		args, ok := in.pop(4)
		if !ok {
			return fmt.Errorf("v needs 4 operands")
		}
		in.cubic(in.px, in.py, args[0], args[1], args[2], args[3])
	case "y":
		// second control point coincides with the end point
		args, ok := in.pop(4)
		if !ok {
			return fmt.Errorf("y needs 4 operands")
		}
		in.cubic(args[0], args[1], args[2], args[3], args[2], args[3])
	case "h":
		in.builder.Stop(true)
	case "re":
		args, ok := in.pop(4)
		if !ok {
			return fmt.Errorf("re needs 4 operands")
		}
		x, y, w, h := args[0], args[1], args[2], args[3]
		in.start(x, y)
		in.line(x+w, y)
		in.line(x+w, y+h)
		in.line(x, y+h)
		in.builder.Stop(true)

	// painting operators
	case "f", "F", "B":
		in.paint(true, true)
	case "f*", "B*":
		in.paint(true, false)
	case "b":
		in.builder.Stop(true)
		in.paint(true, true)
	case "b*":
		in.builder.Stop(true)
		in.paint(true, false)
	case "S":
		in.paint(false, false)
	case "s":
		in.builder.Stop(true)
		in.paint(false, false)
	case "n":
		in.discard()

	case "W", "W*":
		// the current path doubles as a clip path; we do not
		// clip, and the following 'n' throws the geometry away

	// fill color
	case "rg":
		args, ok := in.pop(3)
		if !ok {
			return fmt.Errorf("rg needs 3 operands")
		}
		in.setFillRGB(args[0], args[1], args[2])
	case "g":
		args, ok := in.pop(1)
		if !ok {
			return fmt.Errorf("g needs 1 operand")
		}
		in.setFillRGB(args[0], args[0], args[0])
	case "k":
		args, ok := in.pop(4)
		if !ok {
			return fmt.Errorf("k needs 4 operands")
		}
		r, g, b := cmykToRGB(args[0], args[1], args[2], args[3])
		in.setFillRGB(r, g, b)

	case "BT":
		return tk.skipTo("ET")
	case "BI":
		return skipInlineImage(tk)

	default:
		// stroke colors, line state, text state, XObjects,
		// shading, marked content... all irrelevant here
	}
	return nil
}

func (in *interpreter) setFillRGB(r, g, b float64) {
	in.state.fill = color.RGBA{
		R: uint8(clamp01(r)*255 + 0.5),
		G: uint8(clamp01(g)*255 + 0.5),
		B: uint8(clamp01(b)*255 + 0.5),
		A: 255,
	}
	in.state.hasFill = true
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func cmykToRGB(c, m, y, k float64) (r, g, b float64) {
	return (1 - c) * (1 - k), (1 - m) * (1 - k), (1 - y) * (1 - k)
}

// paint finishes the current path and appends it to the
// document. nonZero is the winding of the fill operator.
func (in *interpreter) paint(filled, nonZero bool) {
	subs := in.builder.Finish()
	if len(subs) == 0 {
		return
	}
	in.doc.Paths = append(in.doc.Paths, vecdoc.Path{
		Subpaths: subs,
		Style: vecdoc.FillStyle{
			Color:             in.state.fill,
			HasColor:          filled && in.state.hasFill,
			Filled:            filled,
			UseNonZeroWinding: nonZero,
		},
	})
}

// discard drops the current path (the n operator).
func (in *interpreter) discard() {
	in.builder.Finish()
}

// skipInlineImage resynchronizes after binary inline image
// data, which the tokenizer cannot scan.
func skipInlineImage(tk *tokenizer) error {
	idx := bytes.Index(tk.data[tk.pos:], []byte("EI"))
	if idx < 0 {
		return fmt.Errorf("unterminated inline image")
	}
	tk.pos += idx + 2
	return nil
}
