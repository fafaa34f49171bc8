package confdoc

import "github.com/calvinalkan/confdoc/internal/document"

// GetKey returns the serialized value of doc[key] with surrounding quotes
// removed by [Unquote]. A missing key, or a doc that is not an object,
// yields "null".
func (s *Session) GetKey(key string, doc document.Document) string {
	value := Unquote(doc.Get(key).String())
	s.trace("get key", "key", key, "value", value)

	return value
}

// GetKeyArray flattens doc[key], an array of objects, into an array of
// strings. Every member of every object contributes its serialized value
// passed through [Unquote], whatever the member's name; members of one
// object are visited in ascending name order. Elements that are not objects
// contribute nothing. When doc[key] is absent or not an array the result is
// an empty array and 0.
func (s *Session) GetKeyArray(key string, doc document.Document) (document.Document, int) {
	var values []string

	for _, row := range doc.Get(key).Items() {
		for _, member := range row.Members() {
			values = append(values, Unquote(member.Value.String()))
		}
	}

	s.trace("get key array", "key", key, "count", len(values))

	return document.FromStrings(values), len(values)
}

// PrintArray logs every member of every object in doc[key] at trace level
// and returns how many members were logged.
func (s *Session) PrintArray(key string, doc document.Document) int {
	count := 0

	for _, row := range doc.Get(key).Items() {
		for _, member := range row.Members() {
			s.trace("array member", "key", member.Name, "value", member.Value.String())
			count++
		}
	}

	return count
}
