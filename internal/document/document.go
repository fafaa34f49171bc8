// Package document provides an immutable JSON value type.
//
// A [Document] is one of null, bool, number, string, array or object. The
// zero value is null. Documents are produced by [Parse], by the From*
// constructors, or by the merge and extract operations in confdoc; no
// method mutates a Document after it has been built.
//
// Objects serialize with keys in ascending order and without insignificant
// whitespace:
//
//	doc, _ := document.Parse(`{"b": 2, "a": "x"}`)
//	doc.String()          // {"a":"x","b":2}
//	doc.Get("a").String() // "x"
//	doc.Get("zz").String() // null
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Kind identifies the shape of a [Document].
type Kind uint8

// Document kinds.
const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

var kindNames = [...]string{"null", "bool", "number", "string", "array", "object"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "unknown"
}

// Document is an immutable JSON value.
//
// The underlying value is one of nil, bool, [json.Number], string, []any or
// map[string]any, matching what encoding/json produces with UseNumber.
type Document struct {
	v any
}

// Member is a single name/value pair of an object document.
type Member struct {
	Name  string
	Value Document
}

// Kind returns the shape of d.
func (d Document) Kind() Kind {
	switch d.v.(type) {
	case nil:
		return Null
	case bool:
		return Bool
	case json.Number:
		return Number
	case string:
		return String
	case []any:
		return Array
	case map[string]any:
		return Object
	default:
		// Constructors only store the types above.
		return Null
	}
}

// IsNull reports whether d is the null document.
func (d Document) IsNull() bool { return d.Kind() == Null }

// IsObject reports whether d is object-shaped.
func (d Document) IsObject() bool { return d.Kind() == Object }

// IsArray reports whether d is array-shaped.
func (d Document) IsArray() bool { return d.Kind() == Array }

// Len returns the number of members of an object or elements of an array.
// Scalars have length 0.
func (d Document) Len() int {
	switch v := d.v.(type) {
	case []any:
		return len(v)
	case map[string]any:
		return len(v)
	default:
		return 0
	}
}

// Get returns the value stored under key. It returns null when d is not an
// object or the key is absent.
func (d Document) Get(key string) Document {
	m, ok := d.v.(map[string]any)
	if !ok {
		return Document{}
	}

	return Document{v: m[key]}
}

// Has reports whether d is an object with a member named key.
func (d Document) Has(key string) bool {
	m, ok := d.v.(map[string]any)
	if !ok {
		return false
	}

	_, found := m[key]

	return found
}

// Index returns the i-th element of an array, or null when d is not an array
// or i is out of range.
func (d Document) Index(i int) Document {
	a, ok := d.v.([]any)
	if !ok || i < 0 || i >= len(a) {
		return Document{}
	}

	return Document{v: a[i]}
}

// Items returns the elements of an array document. Non-arrays yield nil.
func (d Document) Items() []Document {
	a, ok := d.v.([]any)
	if !ok {
		return nil
	}

	items := make([]Document, len(a))
	for i, v := range a {
		items[i] = Document{v: v}
	}

	return items
}

// Keys returns the member names of an object document in ascending order.
// Non-objects yield nil.
func (d Document) Keys() []string {
	m, ok := d.v.(map[string]any)
	if !ok {
		return nil
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// Members returns the members of an object document ordered by name.
// Non-objects yield nil.
func (d Document) Members() []Member {
	keys := d.Keys()
	if keys == nil {
		return nil
	}

	m := d.v.(map[string]any)

	members := make([]Member, len(keys))
	for i, k := range keys {
		members[i] = Member{Name: k, Value: Document{v: m[k]}}
	}

	return members
}

// StringValue returns the native string of a string document.
func (d Document) StringValue() (string, bool) {
	s, ok := d.v.(string)

	return s, ok
}

// NumberValue returns the literal text of a number document.
func (d Document) NumberValue() (json.Number, bool) {
	n, ok := d.v.(json.Number)

	return n, ok
}

// Text returns the native string for string documents and the serialized
// form for everything else.
func (d Document) Text() string {
	if s, ok := d.v.(string); ok {
		return s
	}

	return d.String()
}

// String serializes d as compact JSON. Object keys are sorted and HTML
// characters are not escaped.
func (d Document) String() string {
	return string(d.Bytes())
}

// Bytes is like [Document.String] but returns a byte slice. Invalid UTF-8
// in strings is replaced with U+FFFD; use [Document.Encode] where that must
// be an error.
func (d Document) Bytes() []byte {
	data, err := marshal(d.v)
	if err != nil {
		// Constructors only store JSON-native values.
		return []byte("null")
	}

	return data
}

// ErrInvalidUTF8 is returned by [Document.Encode] for a string or object key
// that is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid utf-8")

// Encode serializes d like [Document.Bytes] but fails instead of replacing
// invalid UTF-8, so the output always parses back to an equal document.
func (d Document) Encode() ([]byte, error) {
	err := checkUTF8(d.v)
	if err != nil {
		return nil, err
	}

	return marshal(d.v)
}

func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	err := enc.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func checkUTF8(v any) error {
	switch t := v.(type) {
	case string:
		if !utf8.ValidString(t) {
			return fmt.Errorf("%w in string %q", ErrInvalidUTF8, t)
		}
	case []any:
		for _, item := range t {
			err := checkUTF8(item)
			if err != nil {
				return err
			}
		}
	case map[string]any:
		for k, item := range t {
			if !utf8.ValidString(k) {
				return fmt.Errorf("%w in key %q", ErrInvalidUTF8, k)
			}

			err := checkUTF8(item)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// equateOpts treats nil and empty containers alike; both serialize the same.
var equateOpts = cmp.Options{cmpopts.EquateEmpty()}

// Equal reports whether a and b hold deep-equal values. Numbers compare by
// their literal text.
func Equal(a, b Document) bool {
	return cmp.Equal(a.v, b.v, equateOpts)
}

// Diff returns a human-readable report of the differences between a and b,
// or the empty string when they are equal.
func Diff(a, b Document) string {
	return cmp.Diff(a.v, b.v, equateOpts)
}

// --- Constructors ---

// FromString returns a string document.
func FromString(s string) Document { return Document{v: s} }

// FromBool returns a bool document.
func FromBool(b bool) Document { return Document{v: b} }

// ErrInvalidNumber is returned by [FromNumber] for text that is not a JSON
// number literal.
var ErrInvalidNumber = errors.New("invalid number literal")

// FromNumber returns a number document for the literal n.
func FromNumber(n json.Number) (Document, error) {
	d, err := Parse(string(n))
	if err != nil || d.Kind() != Number {
		return Document{}, fmt.Errorf("%w %q", ErrInvalidNumber, string(n))
	}

	return d, nil
}

// FromStrings returns an array document of strings.
func FromStrings(values []string) Document {
	a := make([]any, len(values))
	for i, s := range values {
		a[i] = s
	}

	return Document{v: a}
}

// FromMap returns an object document with string members.
func FromMap(m map[string]string) Document {
	return Document{v: stringMap(m)}
}

// FromMembers returns an object document. Later members overwrite earlier
// members with the same name.
func FromMembers(members []Member) Document {
	obj := make(map[string]any, len(members))
	for _, mem := range members {
		obj[mem.Name] = mem.Value.v
	}

	return Document{v: obj}
}

// FromRows returns an array of objects, one per row, in row order.
func FromRows(rows []map[string]string) Document {
	a := make([]any, len(rows))
	for i, row := range rows {
		a[i] = stringMap(row)
	}

	return Document{v: a}
}

// FromCollection returns an object mapping each name to its rows.
func FromCollection(c map[string][]map[string]string) Document {
	obj := make(map[string]any, len(c))
	for name, rows := range c {
		obj[name] = FromRows(rows).v
	}

	return Document{v: obj}
}

func stringMap(m map[string]string) map[string]any {
	obj := make(map[string]any, len(m))
	for k, v := range m {
		obj[k] = v
	}

	return obj
}

// GoString renders d for %#v, which keeps test failure output readable.
func (d Document) GoString() string {
	var sb strings.Builder

	sb.WriteString("document.Document(")
	sb.Write(d.Bytes())
	sb.WriteString(")")

	return sb.String()
}
