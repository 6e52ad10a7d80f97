package vecdoc

import "fmt"

// ErrorMode controls how decoders react to unsupported or
// malformed elements that do not compromise the document
// structure.
type ErrorMode uint8

const (
	// IgnoreErrorMode skips such elements silently.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode skips them with a log message.
	WarnErrorMode
	// StrictErrorMode aborts the parse.
	StrictErrorMode
)

// ParseErrorKind classifies fatal decoder failures.
type ParseErrorKind uint8

const (
	// MalformedStructure: the file cannot be read as its format.
	MalformedStructure ParseErrorKind = iota
	// UnsupportedVersion: recognized format, unsupported variant.
	UnsupportedVersion
	// NoShapesFound: structurally valid but without usable paths.
	NoShapesFound
)

func (k ParseErrorKind) String() string {
	switch k {
	case MalformedStructure:
		return "malformed structure"
	case UnsupportedVersion:
		return "unsupported version"
	case NoShapesFound:
		return "no shapes found"
	}
	return "parse error"
}

// ParseError is a fatal decoding failure. Offset locates the
// error in the input when known (byte offset, or 0).
type ParseError struct {
	Format Format
	Kind   ParseErrorKind
	Offset int64
	Detail string
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Format, e.Kind)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Offset > 0 {
		msg += fmt.Sprintf(" (at byte %d)", e.Offset)
	}
	return msg
}

// GeometryWarning records a shape dropped or degraded during
// the geometry stages. Warnings never abort a conversion.
type GeometryWarning struct {
	// PathIndex locates the source path in the document,
	// or -1 when not applicable.
	PathIndex int
	Detail    string
}

func (w GeometryWarning) String() string {
	if w.PathIndex >= 0 {
		return fmt.Sprintf("path %d: %s", w.PathIndex, w.Detail)
	}
	return w.Detail
}

// ConfigurationError reports an invalid option value, detected
// before any processing starts.
type ConfigurationError struct {
	Option string
	Detail string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid option %s: %s", e.Option, e.Detail)
}
