package confdoc

import (
	"sort"

	"github.com/calvinalkan/confdoc/internal/document"
)

// KeyValue maps string keys to string values. Keys are unique; once set, a
// key keeps its first value.
type KeyValue map[string]string

// Document converts kv to an object document.
func (kv KeyValue) Document() document.Document {
	return document.FromMap(kv)
}

// InsertKeyValue adds key=value to target unless key is already present.
// Returns false, leaving the existing value, on a duplicate key.
func (s *Session) InsertKeyValue(key, value string, target KeyValue) bool {
	_, exists := target[key]
	if !exists {
		target[key] = value
	}

	s.trace("insert", "key", key, "ok", !exists)

	return !exists
}

// InsertJSON parses text as a JSON object and inserts each member into
// target. Member values are stored as their JSON text, so a string member
// keeps its quotes and an array is stored as e.g. [1,2,3]. Members are
// inserted in ascending key order.
//
// Returns false if text is not valid JSON or any member was a duplicate;
// the other members are still inserted.
func (s *Session) InsertJSON(text string, target KeyValue) bool {
	s.trace("insert json", "text", text)

	doc, err := document.Parse(text)
	if err != nil {
		s.log.Warn("insert json: parse error", "error", err)

		return false
	}

	ok := true

	for _, member := range doc.Members() {
		value := member.Value.String()
		s.trace("insert json member", "key", member.Name, "value", value)

		if !s.InsertKeyValue(member.Name, value, target) {
			ok = false
		}
	}

	return ok
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
