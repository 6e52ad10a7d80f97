package vecsvg

import (
	"errors"
	"fmt"

	"github.com/benoitkugler/vecmesh/vecdoc"
)

// The path data grammar packs numbers tightly ("10-5.3.2"),
// so d attributes get a real scanner instead of the
// field-splitting used for the other number lists.
type pathScanner struct {
	data string
	pos  int
}

func (s *pathScanner) skipSeparators() {
	for s.pos < len(s.data) {
		switch s.data[s.pos] {
		case ' ', '\t', '\n', '\r', ',':
			s.pos++
		default:
			return
		}
	}
}

func (s *pathScanner) done() bool {
	s.skipSeparators()
	return s.pos >= len(s.data)
}

func (s *pathScanner) peekCommand() (byte, bool) {
	s.skipSeparators()
	if s.pos >= len(s.data) {
		return 0, false
	}
	b := s.data[s.pos]
	if b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z' {
		s.pos++
		return b, true
	}
	return 0, false
}

func (s *pathScanner) nextFloat() (float64, error) {
	s.skipSeparators()
	start := s.pos
	seenDot, seenExp := false, false
	for s.pos < len(s.data) {
		b := s.data[s.pos]
		switch {
		case b >= '0' && b <= '9':
		case b == '.' && !seenDot:
			seenDot = true
		case (b == 'e' || b == 'E') && !seenExp:
			seenExp = true
		case (b == '+' || b == '-') &&
			(s.pos == start || s.data[s.pos-1] == 'e' || s.data[s.pos-1] == 'E'):
		default:
			goto parse
		}
		s.pos++
	}
parse:
	if s.pos == start {
		return 0, fmt.Errorf("expected number at offset %d of path data", s.pos)
	}
	return parseBasicFloat(s.data[start:s.pos])
}

// nextFlag reads an arc flag, which may be glued to the next
// number ("1 1" or "11").
func (s *pathScanner) nextFlag() (bool, error) {
	s.skipSeparators()
	if s.pos >= len(s.data) {
		return false, errors.New("expected arc flag")
	}
	switch s.data[s.pos] {
	case '0':
		s.pos++
		return false, nil
	case '1':
		s.pos++
		return true, nil
	}
	return false, fmt.Errorf("invalid arc flag %q", s.data[s.pos])
}

// compilePath parses a path d attribute into the cursor's
// builder, in element-local coordinates.
func (c *svgCursor) compilePath(d string) error {
	s := &pathScanner{data: d}
	b := &c.builder

	var (
		px, py         float64 // current point
		startX, startY float64 // subpath start, for Z
		ctlX, ctlY     float64 // last control point, for S and T
		lastCmd        byte
	)
	isCubic := func(cmd byte) bool { return cmd == 'C' || cmd == 'c' || cmd == 'S' || cmd == 's' }
	isQuad := func(cmd byte) bool { return cmd == 'Q' || cmd == 'q' || cmd == 'T' || cmd == 't' }

	for !s.done() {
		cmd, ok := s.peekCommand()
		if !ok {
			// bare numbers repeat the previous command;
			// a moveto repeats as lineto
			switch lastCmd {
			case 0:
				return errors.New("path data must start with a moveto")
			case 'M':
				cmd = 'L'
			case 'm':
				cmd = 'l'
			default:
				cmd = lastCmd
			}
		}
		rel := cmd >= 'a'
		// relative offsets apply from the current point
		dx, dy := 0.0, 0.0
		if rel {
			dx, dy = px, py
		}
		switch cmd {
		case 'M', 'm':
			x, err := s.nextFloat()
			if err != nil {
				return err
			}
			y, err := s.nextFloat()
			if err != nil {
				return err
			}
			px, py = dx+x, dy+y
			startX, startY = px, py
			b.Start(vecdoc.ToFixed(px, py))
		case 'L', 'l':
			x, err := s.nextFloat()
			if err != nil {
				return err
			}
			y, err := s.nextFloat()
			if err != nil {
				return err
			}
			px, py = dx+x, dy+y
			b.Line(vecdoc.ToFixed(px, py))
		case 'H', 'h':
			x, err := s.nextFloat()
			if err != nil {
				return err
			}
			px = dx + x
			b.Line(vecdoc.ToFixed(px, py))
		case 'V', 'v':
			y, err := s.nextFloat()
			if err != nil {
				return err
			}
			py = dy + y
			b.Line(vecdoc.ToFixed(px, py))
		case 'C', 'c', 'S', 's':
			var x1, y1 float64
			if cmd == 'C' || cmd == 'c' {
				var err error
				if x1, err = s.nextFloat(); err != nil {
					return err
				}
				if y1, err = s.nextFloat(); err != nil {
					return err
				}
				x1, y1 = dx+x1, dy+y1
			} else {
				// reflect the previous control point
				x1, y1 = px, py
				if isCubic(lastCmd) {
					x1, y1 = 2*px-ctlX, 2*py-ctlY
				}
			}
			x2, err := s.nextFloat()
			if err != nil {
				return err
			}
			y2, err := s.nextFloat()
			if err != nil {
				return err
			}
			x, err := s.nextFloat()
			if err != nil {
				return err
			}
			y, err := s.nextFloat()
			if err != nil {
				return err
			}
			x2, y2 = dx+x2, dy+y2
			x, y = dx+x, dy+y
			b.CubeBezier(vecdoc.ToFixed(x1, y1), vecdoc.ToFixed(x2, y2), vecdoc.ToFixed(x, y))
			ctlX, ctlY = x2, y2
			px, py = x, y
		case 'Q', 'q', 'T', 't':
			var x1, y1 float64
			if cmd == 'Q' || cmd == 'q' {
				var err error
				if x1, err = s.nextFloat(); err != nil {
					return err
				}
				if y1, err = s.nextFloat(); err != nil {
					return err
				}
				x1, y1 = dx+x1, dy+y1
			} else {
				x1, y1 = px, py
				if isQuad(lastCmd) {
					x1, y1 = 2*px-ctlX, 2*py-ctlY
				}
			}
			x, err := s.nextFloat()
			if err != nil {
				return err
			}
			y, err := s.nextFloat()
			if err != nil {
				return err
			}
			x, y = dx+x, dy+y
			b.QuadBezier(vecdoc.ToFixed(x1, y1), vecdoc.ToFixed(x, y))
			ctlX, ctlY = x1, y1
			px, py = x, y
		case 'A', 'a':
			rx, err := s.nextFloat()
			if err != nil {
				return err
			}
			ry, err := s.nextFloat()
			if err != nil {
				return err
			}
			rot, err := s.nextFloat()
			if err != nil {
				return err
			}
			largeArc, err := s.nextFlag()
			if err != nil {
				return err
			}
			sweep, err := s.nextFlag()
			if err != nil {
				return err
			}
			x, err := s.nextFloat()
			if err != nil {
				return err
			}
			y, err := s.nextFloat()
			if err != nil {
				return err
			}
			x, y = dx+x, dy+y
			px, py = addArc(b, rx, ry, rot, largeArc, sweep, px, py, x, y)
		case 'Z', 'z':
			b.Stop(true)
			px, py = startX, startY
		default:
			return fmt.Errorf("unknown path command %q", cmd)
		}
		lastCmd = cmd
	}
	b.Stop(false)
	return nil
}
