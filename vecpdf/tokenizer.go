package vecpdf

import (
	"fmt"
	"strconv"
)

// tokenKind covers the lexical classes of the content stream
// language. Strings, names and structure delimiters are
// recognized so they can be skipped soundly, but only numbers
// and operators drive the interpreter.
type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokNumber
	tokOperator
	tokName
	tokString
	tokArrayOpen
	tokArrayClose
	tokDictOpen
	tokDictClose
)

type token struct {
	kind  tokenKind
	value float64 // for tokNumber
	op    string  // for tokOperator and tokName
}

type tokenizer struct {
	data []byte
	pos  int
}

func isWhitespace(b byte) bool {
	switch b {
	case 0, '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func isDelimiter(b byte) bool {
	switch b {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func (t *tokenizer) skipBlank() {
	for t.pos < len(t.data) {
		b := t.data[t.pos]
		if isWhitespace(b) {
			t.pos++
			continue
		}
		if b == '%' {
			// comment to end of line; this also disposes of
			// the DSC lines of classic Illustrator files
			for t.pos < len(t.data) && t.data[t.pos] != '\n' && t.data[t.pos] != '\r' {
				t.pos++
			}
			continue
		}
		return
	}
}

func (t *tokenizer) next() (token, error) {
	t.skipBlank()
	if t.pos >= len(t.data) {
		return token{kind: tokEOF}, nil
	}
	b := t.data[t.pos]
	switch {
	case b == '(':
		return t.literalString()
	case b == '<':
		if t.pos+1 < len(t.data) && t.data[t.pos+1] == '<' {
			t.pos += 2
			return token{kind: tokDictOpen}, nil
		}
		return t.hexString()
	case b == '>':
		if t.pos+1 < len(t.data) && t.data[t.pos+1] == '>' {
			t.pos += 2
			return token{kind: tokDictClose}, nil
		}
		return token{}, fmt.Errorf("unexpected '>' at %d", t.pos)
	case b == '[':
		t.pos++
		return token{kind: tokArrayOpen}, nil
	case b == ']':
		t.pos++
		return token{kind: tokArrayClose}, nil
	case b == '{' || b == '}':
		// procedure braces appear in classic Illustrator files
		t.pos++
		return token{kind: tokOperator, op: string(b)}, nil
	case b == '/':
		t.pos++
		start := t.pos
		for t.pos < len(t.data) && !isWhitespace(t.data[t.pos]) && !isDelimiter(t.data[t.pos]) {
			t.pos++
		}
		return token{kind: tokName, op: string(t.data[start:t.pos])}, nil
	case b == '+' || b == '-' || b == '.' || (b >= '0' && b <= '9'):
		return t.number()
	case b == ')':
		return token{}, fmt.Errorf("unbalanced ')' at %d", t.pos)
	default:
		start := t.pos
		for t.pos < len(t.data) && !isWhitespace(t.data[t.pos]) && !isDelimiter(t.data[t.pos]) {
			t.pos++
		}
		return token{kind: tokOperator, op: string(t.data[start:t.pos])}, nil
	}
}

func (t *tokenizer) number() (token, error) {
	start := t.pos
	for t.pos < len(t.data) {
		b := t.data[t.pos]
		if b == '+' || b == '-' || b == '.' || b == 'e' || b == 'E' || (b >= '0' && b <= '9') {
			t.pos++
			continue
		}
		break
	}
	v, err := strconv.ParseFloat(string(t.data[start:t.pos]), 64)
	if err != nil {
		return token{}, fmt.Errorf("invalid number at %d: %v", start, err)
	}
	return token{kind: tokNumber, value: v}, nil
}

func (t *tokenizer) literalString() (token, error) {
	t.pos++ // opening paren
	depth := 1
	for t.pos < len(t.data) {
		switch t.data[t.pos] {
		case '\\':
			t.pos++ // escaped char
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				t.pos++
				return token{kind: tokString}, nil
			}
		}
		t.pos++
	}
	return token{}, fmt.Errorf("unterminated string")
}

func (t *tokenizer) hexString() (token, error) {
	t.pos++ // '<'
	for t.pos < len(t.data) {
		if t.data[t.pos] == '>' {
			t.pos++
			return token{kind: tokString}, nil
		}
		t.pos++
	}
	return token{}, fmt.Errorf("unterminated hex string")
}

// skipTo advances past the named operator, for the regions the
// interpreter does not look into (text blocks, inline images).
func (t *tokenizer) skipTo(op string) error {
	for {
		tok, err := t.next()
		if err != nil {
			// inline image data is binary: resynchronize on
			// the raw bytes instead
			return err
		}
		if tok.kind == tokEOF {
			return fmt.Errorf("missing %s operator", op)
		}
		if tok.kind == tokOperator && tok.op == op {
			return nil
		}
	}
}
