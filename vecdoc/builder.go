package vecdoc

import "golang.org/x/image/math/fixed"

// PathBuilder accumulates decoder output into subpaths,
// tracking the current point. Quadratic segments are degree
// elevated to cubics so that later stages only see two kinds.
type PathBuilder struct {
	subpaths []Subpath
	current  Subpath
	at       fixed.Point26_6
	started  bool
}

// Start begins a new subpath at the given point, flushing
// the previous one.
func (b *PathBuilder) Start(a fixed.Point26_6) {
	b.flush(false)
	b.at = a
	b.started = true
}

// Line adds a linear segment to the current subpath.
func (b *PathBuilder) Line(p fixed.Point26_6) {
	if !b.started {
		return
	}
	b.current.Segments = append(b.current.Segments, Segment{
		Kind: KindLine, Start: b.at, End: p,
	})
	b.at = p
}

// CubeBezier adds a cubic segment to the current subpath.
func (b *PathBuilder) CubeBezier(c1, c2, p fixed.Point26_6) {
	if !b.started {
		return
	}
	b.current.Segments = append(b.current.Segments, Segment{
		Kind: KindCubic, Start: b.at, End: p, C1: c1, C2: c2,
	})
	b.at = p
}

// QuadBezier adds a quadratic segment, stored as the
// equivalent cubic (control points at 1/3 and 2/3 along
// the quadratic hull).
func (b *PathBuilder) QuadBezier(c, p fixed.Point26_6) {
	if !b.started {
		return
	}
	c1 := fixed.Point26_6{
		X: b.at.X + (c.X-b.at.X)*2/3,
		Y: b.at.Y + (c.Y-b.at.Y)*2/3,
	}
	c2 := fixed.Point26_6{
		X: p.X + (c.X-p.X)*2/3,
		Y: p.Y + (c.Y-p.Y)*2/3,
	}
	b.CubeBezier(c1, c2, p)
}

// Stop ends the current subpath. With closeLoop, a closing
// line back to the start point is added when needed and the
// subpath is marked closed.
func (b *PathBuilder) Stop(closeLoop bool) {
	b.flush(closeLoop)
}

func (b *PathBuilder) flush(closed bool) {
	if len(b.current.Segments) != 0 {
		if closed {
			start := b.current.Segments[0].Start
			if b.at != start {
				b.current.Segments = append(b.current.Segments, Segment{
					Kind: KindLine, Start: b.at, End: start,
				})
				b.at = start
			}
			b.current.Closed = true
		}
		b.subpaths = append(b.subpaths, b.current)
	}
	b.current = Subpath{}
	b.started = b.started && closed
}

// Finish flushes the pending subpath and returns everything
// accumulated since the last call, resetting the builder.
func (b *PathBuilder) Finish() []Subpath {
	b.flush(false)
	out := b.subpaths
	b.subpaths = nil
	b.started = false
	return out
}
