// Parses PDF and Adobe Illustrator files into the uniform
// document model. Only the path construction and filling
// subset of the content stream language is interpreted;
// text, images and shading are skipped.
//
// Illustrator files come in two flavors: PDF-compatible ones
// (the default since version 9) are handled by the PDF
// decoder, while classic files carry the same path operators
// in a PostScript-flavored body that the content stream
// interpreter reads directly.
package vecpdf

import (
	"bytes"
	"compress/zlib"
	"io"
	"log"
	"os"

	"github.com/benoitkugler/vecmesh/vecdoc"
)

var (
	pdfHeader = []byte("%PDF")
	psHeader  = []byte("%!PS")

	streamKeyword    = []byte("stream")
	endstreamKeyword = []byte("endstream")
)

// Decode decodes a PDF document from raw bytes.
func Decode(data []byte) (*vecdoc.Document, error) {
	return decodePDF(data, vecdoc.FormatPDF, vecdoc.IgnoreErrorMode)
}

// DecodeAI decodes an Adobe Illustrator (or EPS) document.
func DecodeAI(data []byte) (*vecdoc.Document, error) {
	return decodeAI(data, vecdoc.IgnoreErrorMode)
}

// ReadFile decodes the named PDF, AI or EPS file.
func ReadFile(path string, errMode vecdoc.ErrorMode) (*vecdoc.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	format, ok := vecdoc.FormatFromPath(path)
	if !ok || format == vecdoc.FormatPDF {
		return decodePDF(data, vecdoc.FormatPDF, errMode)
	}
	return decodeAI(data, errMode)
}

func decodeAI(data []byte, errMode vecdoc.ErrorMode) (*vecdoc.Document, error) {
	switch {
	case bytes.HasPrefix(data, pdfHeader):
		// PDF-compatible Illustrator file
		return decodePDF(data, vecdoc.FormatAI, errMode)
	case bytes.HasPrefix(data, psHeader):
		doc := &vecdoc.Document{}
		interp := newInterpreter(doc)
		// DSC comments are skipped by the tokenizer itself
		if err := interp.run(data); err != nil {
			return nil, &vecdoc.ParseError{
				Format: vecdoc.FormatAI, Kind: vecdoc.MalformedStructure,
				Offset: interp.offset, Detail: err.Error(),
			}
		}
		if doc.IsEmpty() {
			return nil, &vecdoc.ParseError{Format: vecdoc.FormatAI, Kind: vecdoc.NoShapesFound}
		}
		return doc, nil
	}
	return nil, &vecdoc.ParseError{
		Format: vecdoc.FormatAI, Kind: vecdoc.UnsupportedVersion,
		Detail: "missing %PDF or %!PS header",
	}
}

func decodePDF(data []byte, format vecdoc.Format, errMode vecdoc.ErrorMode) (*vecdoc.Document, error) {
	if !bytes.HasPrefix(data, pdfHeader) {
		return nil, &vecdoc.ParseError{
			Format: format, Kind: vecdoc.MalformedStructure,
			Detail: "missing %PDF header",
		}
	}
	doc := &vecdoc.Document{}
	found := false
	for _, s := range extractStreams(data) {
		content, ok := s.decoded()
		if !ok {
			continue
		}
		interp := newInterpreter(doc)
		if err := interp.run(content); err != nil {
			// not a content stream (fonts, metadata...):
			// skip it, unless the caller wants strictness
			if errMode == vecdoc.StrictErrorMode {
				return nil, &vecdoc.ParseError{
					Format: format, Kind: vecdoc.MalformedStructure,
					Offset: int64(s.offset), Detail: err.Error(),
				}
			}
			if errMode == vecdoc.WarnErrorMode {
				log.Printf("pdf: skipping stream at byte %d: %v", s.offset, err)
			}
			continue
		}
		found = true
	}
	if !found || doc.IsEmpty() {
		return nil, &vecdoc.ParseError{Format: format, Kind: vecdoc.NoShapesFound}
	}
	return doc, nil
}

// rawStream is one stream object, with the portion of its
// dictionary needed to decode it.
type rawStream struct {
	dict   []byte
	data   []byte
	offset int // of the stream keyword in the file
}

func (s rawStream) decoded() ([]byte, bool) {
	if bytes.Contains(s.dict, []byte("/Image")) ||
		bytes.Contains(s.dict, []byte("/FontFile")) ||
		bytes.Contains(s.dict, []byte("/Metadata")) {
		return nil, false
	}
	if !bytes.Contains(s.dict, []byte("/FlateDecode")) {
		if bytes.Contains(s.dict, []byte("/Filter")) {
			// some other, unsupported filter
			return nil, false
		}
		return s.data, true
	}
	zr, err := zlib.NewReader(bytes.NewReader(s.data))
	if err != nil {
		return nil, false
	}
	defer zr.Close()
	content, err := io.ReadAll(zr)
	if err != nil {
		return nil, false
	}
	return content, true
}

// extractStreams scans the raw file for stream objects. The
// cross reference table is not needed: every candidate stream
// is offered to the interpreter, which rejects non-content.
func extractStreams(data []byte) []rawStream {
	var out []rawStream
	pos := 0
	for {
		rel := bytes.Index(data[pos:], streamKeyword)
		if rel < 0 {
			return out
		}
		at := pos + rel
		pos = at + len(streamKeyword)
		// skip matches inside an endstream keyword
		if at >= 3 && bytes.Equal(data[at-3:at], []byte("end")) {
			continue
		}
		// the keyword is followed by CRLF or LF
		body := at + len(streamKeyword)
		if body < len(data) && data[body] == '\r' {
			body++
		}
		if body < len(data) && data[body] == '\n' {
			body++
		}
		endRel := bytes.Index(data[body:], endstreamKeyword)
		if endRel < 0 {
			return out
		}
		end := body + endRel
		// the enclosing dictionary directly precedes the keyword
		dictStart := at - 512
		if dictStart < 0 {
			dictStart = 0
		}
		out = append(out, rawStream{
			dict:   data[dictStart:at],
			data:   trimEOL(data[body:end]),
			offset: at,
		})
		pos = end + len(endstreamKeyword)
	}
}

func trimEOL(b []byte) []byte {
	return bytes.TrimRight(b, "\r\n")
}
