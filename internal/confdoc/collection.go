package confdoc

import "github.com/calvinalkan/confdoc/internal/document"

// NamedCollection maps a name to a [RowArray]. Names are unique.
type NamedCollection map[string]RowArray

// Names returns the collection's names in ascending order.
func (c NamedCollection) Names() []string {
	return sortedKeys(c)
}

// Document converts c to an object mapping each name to its rows.
func (c NamedCollection) Document() document.Document {
	out := make(map[string][]map[string]string, len(c))
	for name, rows := range c {
		out[name] = rows.maps()
	}

	return document.FromCollection(out)
}

// InsertRows stores rows under name unless name is already present.
// Returns false, leaving the existing rows, on a duplicate name.
func (s *Session) InsertRows(name string, rows RowArray, target NamedCollection) bool {
	_, exists := target[name]
	if !exists {
		target[name] = rows
	}

	s.trace("insert rows", "key", name, "rows", len(rows), "ok", !exists)

	return !exists
}
