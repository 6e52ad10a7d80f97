package vecsvg

import (
	"encoding/xml"
	"errors"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/benoitkugler/vecmesh/vecdoc"
)

var errParamMismatch = errors.New("parameter mismatch")

func warnf(format string, args ...interface{}) {
	log.Printf("svg: "+format, args...)
}

// pushStyle reads the recognized style attributes of an element
// (direct attributes plus the content of a style attribute) and
// pushes the resulting style onto the stack.
func (c *svgCursor) pushStyle(attrs []xml.Attr) error {
	var pairs []string
	for _, attr := range attrs {
		switch strings.ToLower(attr.Name.Local) {
		case "style":
			pairs = append(pairs, strings.Split(attr.Value, ";")...)
		default:
			pairs = append(pairs, attr.Name.Local+":"+attr.Value)
		}
	}
	// copy of the top style, to inherit from
	curStyle := c.styleStack[len(c.styleStack)-1]
	for _, pair := range pairs {
		kv := strings.SplitN(pair, ":", 2)
		if len(kv) != 2 {
			continue
		}
		k := strings.ToLower(strings.TrimSpace(kv[0]))
		v := strings.TrimSpace(kv[1])
		if err := c.readStyleAttr(&curStyle, k, v); err != nil {
			return err
		}
	}
	c.styleStack = append(c.styleStack, curStyle)
	return nil
}

func (c *svgCursor) readStyleAttr(curStyle *svgStyle, k, v string) error {
	switch k {
	case "fill":
		if strings.HasPrefix(v, "url(") {
			// gradient or pattern reference: keep the shape,
			// lose the paint
			if err := c.unsupported("fill " + v); err != nil {
				return err
			}
			curStyle.hasFill = false
			return nil
		}
		col, has, err := parseSVGColor(v)
		if err != nil {
			return err
		}
		curStyle.fill, curStyle.hasFill = col, has
	case "stroke":
		if strings.HasPrefix(v, "url(") {
			curStyle.stroked = false
			return nil
		}
		_, has, err := parseSVGColor(v)
		if err != nil {
			return err
		}
		curStyle.stroked = has
	case "fill-rule":
		switch v {
		case "nonzero":
			curStyle.useNonZeroWinding = true
		case "evenodd":
			curStyle.useNonZeroWinding = false
		}
	case "transform":
		m, err := c.parseTransform(curStyle.transform, v)
		if err != nil {
			return err
		}
		curStyle.transform = m
	}
	return nil
}

func (c *svgCursor) readTransformAttr(m1 vecdoc.Matrix2D, k string) (vecdoc.Matrix2D, error) {
	ln := len(c.points)
	switch k {
	case "rotate":
		if ln == 1 {
			m1 = m1.Rotate(c.points[0] * math.Pi / 180)
		} else if ln == 3 {
			m1 = m1.Translate(c.points[1], c.points[2]).
				Rotate(c.points[0]*math.Pi/180).
				Translate(-c.points[1], -c.points[2])
		} else {
			return m1, errParamMismatch
		}
	case "translate":
		if ln == 1 {
			m1 = m1.Translate(c.points[0], 0)
		} else if ln == 2 {
			m1 = m1.Translate(c.points[0], c.points[1])
		} else {
			return m1, errParamMismatch
		}
	case "skewx":
		if ln != 1 {
			return m1, errParamMismatch
		}
		m1 = m1.SkewX(c.points[0] * math.Pi / 180)
	case "skewy":
		if ln != 1 {
			return m1, errParamMismatch
		}
		m1 = m1.SkewY(c.points[0] * math.Pi / 180)
	case "scale":
		if ln == 1 {
			m1 = m1.Scale(c.points[0], c.points[0])
		} else if ln == 2 {
			m1 = m1.Scale(c.points[0], c.points[1])
		} else {
			return m1, errParamMismatch
		}
	case "matrix":
		if ln != 6 {
			return m1, errParamMismatch
		}
		m1 = m1.Mult(vecdoc.Matrix2D{
			A: c.points[0], B: c.points[1],
			C: c.points[2], D: c.points[3],
			E: c.points[4], F: c.points[5],
		})
	default:
		return m1, errParamMismatch
	}
	return m1, nil
}

func (c *svgCursor) parseTransform(base vecdoc.Matrix2D, v string) (vecdoc.Matrix2D, error) {
	ts := strings.Split(v, ")")
	m1 := base
	for _, t := range ts {
		t = strings.TrimSpace(t)
		if len(t) == 0 {
			continue
		}
		d := strings.Split(t, "(")
		if len(d) != 2 || len(d[1]) < 1 {
			return m1, errParamMismatch
		}
		if err := c.getPoints(d[1]); err != nil {
			return m1, err
		}
		var err error
		m1, err = c.readTransformAttr(m1, strings.ToLower(strings.TrimSpace(d[0])))
		if err != nil {
			return m1, err
		}
	}
	return m1, nil
}

// getPoints parses a whitespace or comma separated list of
// numbers into the scratch slice.
func (c *svgCursor) getPoints(s string) error {
	c.points = c.points[:0]
	for _, f := range splitOnCommaOrSpace(s) {
		v, err := parseBasicFloat(f)
		if err != nil {
			return err
		}
		c.points = append(c.points, v)
	}
	return nil
}

func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}

func parseBasicFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// parseUnit reads a length attribute. Only unitless and px
// values carry geometry we can use directly.
func (c *svgCursor) parseUnit(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasSuffix(s, "px"):
		s = strings.TrimSuffix(s, "px")
	case strings.HasSuffix(s, "%"):
		return 0, errors.New("percentage lengths are not supported")
	}
	return parseBasicFloat(s)
}
