package vecsvg

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

type rgba struct{ r, g, b, a uint8 }

func (c rgba) toColor() color.RGBA {
	return color.RGBA{R: c.r, G: c.g, B: c.b, A: c.a}
}

// parseSVGColor reads a paint value. The bool is false for
// "none" and fully transparent paints.
func parseSVGColor(v string) (rgba, bool, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	switch v {
	case "none", "transparent":
		return rgba{}, false, nil
	case "currentcolor", "inherit":
		// no context to resolve these; fall back to black
		return rgba{0, 0, 0, 0xff}, true, nil
	}
	if strings.HasPrefix(v, "#") {
		c, err := parseHexColor(v[1:])
		return c, err == nil, err
	}
	if strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")") {
		c, err := parseRGBColor(v[4 : len(v)-1])
		return c, err == nil, err
	}
	if cn, ok := colornames.Map[v]; ok {
		return rgba{cn.R, cn.G, cn.B, cn.A}, true, nil
	}
	return rgba{}, false, fmt.Errorf("unknown color %q", v)
}

func parseHexColor(hex string) (rgba, error) {
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		fallthrough
	case 6:
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return rgba{}, err
		}
		return rgba{uint8(n >> 16), uint8(n >> 8), uint8(n), 0xff}, nil
	}
	return rgba{}, errors.New("invalid hex color length")
}

func parseRGBColor(args string) (rgba, error) {
	parts := strings.Split(args, ",")
	if len(parts) != 3 {
		return rgba{}, errors.New("rgb() needs 3 components")
	}
	var chans [3]uint8
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if strings.HasSuffix(p, "%") {
			f, err := parseBasicFloat(strings.TrimSuffix(p, "%"))
			if err != nil {
				return rgba{}, err
			}
			chans[i] = uint8(clampChannel(f * 255 / 100))
		} else {
			n, err := strconv.Atoi(p)
			if err != nil {
				return rgba{}, err
			}
			chans[i] = uint8(clampChannel(float64(n)))
		}
	}
	return rgba{chans[0], chans[1], chans[2], 0xff}, nil
}

func clampChannel(f float64) int {
	if f < 0 {
		return 0
	}
	if f > 255 {
		return 255
	}
	return int(f + 0.5)
}
