package confdoc

import "github.com/calvinalkan/confdoc/internal/document"

// RowArray is an ordered list of rows. Order is significant.
type RowArray []KeyValue

// Append adds row as the last element. It never fails.
func (r *RowArray) Append(row KeyValue) {
	*r = append(*r, row)
}

// Document converts r to an array of objects in row order.
func (r RowArray) Document() document.Document {
	return document.FromRows(r.maps())
}

func (r RowArray) maps() []map[string]string {
	rows := make([]map[string]string, len(r))
	for i, row := range r {
		rows[i] = row
	}

	return rows
}

// AppendRow appends row to rows and logs the new length.
func (s *Session) AppendRow(rows *RowArray, row KeyValue) {
	rows.Append(row)
	s.trace("append row", "fields", len(row), "rows", len(*rows))
}
