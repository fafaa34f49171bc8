package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/tailscale/hujson"
)

// ErrSyntax is returned (wrapped) for any text that is not a single valid
// JSON value.
var ErrSyntax = errors.New("invalid json")

var errTrailingData = errors.New("unexpected data after top-level value")

// Parse parses text as strict JSON. Duplicate object keys are allowed; the
// last occurrence wins. Empty input is a syntax error.
func Parse(text string) (Document, error) {
	return ParseBytes([]byte(text))
}

// ParseBytes is like [Parse] but takes a byte slice.
func ParseBytes(data []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any

	err := dec.Decode(&v)
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}

		return Document{}, fmt.Errorf("%w: %w", ErrSyntax, err)
	}

	_, err = dec.Token()
	if !errors.Is(err, io.EOF) {
		return Document{}, fmt.Errorf("%w: %w at offset %d", ErrSyntax, errTrailingData, dec.InputOffset())
	}

	return Document{v: v}, nil
}

// ParseJSONC parses JSON with comments and trailing commas (HuJSON). The
// input is standardized to plain JSON before decoding.
func ParseJSONC(data []byte) (Document, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrSyntax, err)
	}

	return ParseBytes(standardized)
}

// Indent returns d encoded by [Document.Encode] with one member or element
// per line and a two-space indent.
func Indent(d Document) ([]byte, error) {
	data, err := d.Encode()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	err = json.Indent(&buf, data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("indenting document: %w", err)
	}

	return buf.Bytes(), nil
}
