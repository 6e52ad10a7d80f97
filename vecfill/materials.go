package vecfill

import "image/color"

// per-channel tolerance under which two fill colors share
// one material
const colorTolerance = 2

// MaterialSet deduplicates fill colors into material indices.
// The zero value is ready to use.
type MaterialSet struct {
	Colors []color.RGBA
}

func channelNear(a, b uint8) bool {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	return d <= colorTolerance
}

// IndexFor returns the material index for c, registering a new
// material when no existing one matches within tolerance.
// Regions without color get -1.
func (m *MaterialSet) IndexFor(c color.RGBA, hasColor bool) int {
	if !hasColor {
		return -1
	}
	for i, existing := range m.Colors {
		if channelNear(existing.R, c.R) && channelNear(existing.G, c.G) && channelNear(existing.B, c.B) {
			return i
		}
	}
	m.Colors = append(m.Colors, c)
	return len(m.Colors) - 1
}
