// Flattens the cubic curves of parsed subpaths into
// polylines, under one of three subdivision policies.
package vecflat

import (
	"fmt"
	"strings"

	"github.com/benoitkugler/vecmesh/vecgeom"
)

// Policy selects how curves are converted to line segments.
type Policy uint8

const (
	// Uniform bisects every curve exactly Smoothness times,
	// yielding 2^Smoothness segments regardless of curvature.
	Uniform Policy = iota
	// Adaptive bisects only while the curve deviates from its
	// chord by more than a tolerance derived from Smoothness.
	Adaptive
	// Even resamples every flattened segment, straight lines
	// included, to an even target length derived from
	// Smoothness and the document bounds.
	Even
)

func (p Policy) String() string {
	switch p {
	case Uniform:
		return "uniform"
	case Adaptive:
		return "adaptive"
	case Even:
		return "even"
	}
	return "unknown"
}

// PolicyFromString parses a policy name (case insensitive).
func PolicyFromString(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case "uniform":
		return Uniform, nil
	case "adaptive":
		return Adaptive, nil
	case "even":
		return Even, nil
	}
	return 0, fmt.Errorf("unknown subdivision policy %q", s)
}

// baseTolerance is the adaptive flatness tolerance at
// smoothness 0, in document units; each smoothness step
// halves it.
const baseTolerance = 0.5

// hard bound on bisection depth, so degenerate or cusp
// curves still terminate
const maxDepth = 16

// Options configures flattening. It is immutable once the
// pipeline starts; EvenLength is derived from the document
// bounds before any subpath is flattened.
type Options struct {
	Policy     Policy
	Smoothness int
	// EvenLength is the target segment length of the Even
	// policy. Ignored by the other policies.
	EvenLength float64
}

// Tolerance returns the adaptive flatness tolerance for the
// configured smoothness.
func (o Options) Tolerance() float64 {
	tol := baseTolerance
	for i := 0; i < o.Smoothness; i++ {
		tol /= 2
	}
	return tol
}

// EvenLengthFor derives the Even target length from the
// document bounds: a quarter of the longest side at
// smoothness 0, shrinking with smoothness.
func EvenLengthFor(bounds vecgeom.Rect, smoothness int) float64 {
	if bounds.IsEmpty() {
		return 1
	}
	side := bounds.LongestSide()
	if side <= 0 {
		return 1
	}
	return side / (4 * float64(smoothness+1))
}
