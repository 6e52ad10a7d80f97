package vecsvg

import (
	"encoding/xml"
	"errors"

	"github.com/benoitkugler/vecmesh/vecdoc"
)

type svgFunc func(c *svgCursor, attrs []xml.Attr) error

var drawFuncs = map[string]svgFunc{
	"svg":      svgF,
	"g":        gF,
	"line":     lineF,
	"rect":     rectF,
	"circle":   circleF,
	"ellipse":  circleF, // circleF handles ellipse also
	"polyline": polylineF,
	"polygon":  polygonF,
	"path":     pathF,
	"desc":     skipF,
	"title":    skipF,
	"metadata": skipF,
	"defs":     defsF,
	"style":    skipF,
}

func svgF(c *svgCursor, attrs []xml.Attr) error {
	// viewport size is irrelevant here: the mesh is rescaled
	// from its own bounds later
	return nil
}

// g only pushes the style, which pushStyle already did
func gF(*svgCursor, []xml.Attr) error { return nil }

func skipF(*svgCursor, []xml.Attr) error { return nil }

func defsF(c *svgCursor, attrs []xml.Attr) error {
	c.inDefs = true
	return nil
}

func rectF(c *svgCursor, attrs []xml.Attr) error {
	var x, y, w, h, rx, ry float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "x":
			x, err = c.parseUnit(attr.Value)
		case "y":
			y, err = c.parseUnit(attr.Value)
		case "width":
			w, err = c.parseUnit(attr.Value)
		case "height":
			h, err = c.parseUnit(attr.Value)
		case "rx":
			rx, err = c.parseUnit(attr.Value)
		case "ry":
			ry, err = c.parseUnit(attr.Value)
		}
		if err != nil {
			return err
		}
	}
	if w == 0 || h == 0 {
		return nil
	}
	if rx == 0 {
		rx = ry
	}
	if ry == 0 {
		ry = rx
	}
	addRoundRect(&c.builder, x, y, x+w, y+h, rx, ry)
	return nil
}

func circleF(c *svgCursor, attrs []xml.Attr) error {
	var cx, cy, rx, ry float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "cx":
			cx, err = c.parseUnit(attr.Value)
		case "cy":
			cy, err = c.parseUnit(attr.Value)
		case "r":
			rx, err = c.parseUnit(attr.Value)
			ry = rx
		case "rx":
			rx, err = c.parseUnit(attr.Value)
		case "ry":
			ry, err = c.parseUnit(attr.Value)
		}
		if err != nil {
			return err
		}
	}
	if rx == 0 || ry == 0 { // not drawn, but not an error
		return nil
	}
	addEllipse(&c.builder, cx, cy, rx, ry)
	return nil
}

func lineF(c *svgCursor, attrs []xml.Attr) error {
	var x1, y1, x2, y2 float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "x1":
			x1, err = c.parseUnit(attr.Value)
		case "y1":
			y1, err = c.parseUnit(attr.Value)
		case "x2":
			x2, err = c.parseUnit(attr.Value)
		case "y2":
			y2, err = c.parseUnit(attr.Value)
		}
		if err != nil {
			return err
		}
	}
	c.builder.Start(vecdoc.ToFixed(x1, y1))
	c.builder.Line(vecdoc.ToFixed(x2, y2))
	c.builder.Stop(false)
	return nil
}

func polylineF(c *svgCursor, attrs []xml.Attr) error {
	for _, attr := range attrs {
		if attr.Name.Local != "points" {
			continue
		}
		if err := c.getPoints(attr.Value); err != nil {
			return err
		}
		if len(c.points)%2 != 0 {
			return errors.New("polyline has odd number of coordinates")
		}
	}
	if len(c.points) >= 4 {
		c.builder.Start(vecdoc.ToFixed(c.points[0], c.points[1]))
		for i := 2; i < len(c.points)-1; i += 2 {
			c.builder.Line(vecdoc.ToFixed(c.points[i], c.points[i+1]))
		}
	}
	return nil
}

func polygonF(c *svgCursor, attrs []xml.Attr) error {
	err := polylineF(c, attrs)
	if err == nil && len(c.points) >= 4 {
		c.builder.Stop(true)
	}
	return err
}

func pathF(c *svgCursor, attrs []xml.Attr) error {
	for _, attr := range attrs {
		if attr.Name.Local == "d" {
			if err := c.compilePath(attr.Value); err != nil {
				return err
			}
		}
	}
	return nil
}
