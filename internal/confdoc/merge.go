package confdoc

import (
	"fmt"

	"github.com/calvinalkan/confdoc/internal/document"
)

// Merge combines two object documents into one. Members of b are applied
// after members of a, so b wins on a key collision. The result is a new
// document; a and b are unchanged.
//
// Both inputs must be objects with at least one member. Otherwise the
// returned error wraps [ErrMerge] together with the diagnostic for the text
// obtained by joining a and b at the brace, e.g. {,"b":"2"} when a is {}.
func Merge(a, b document.Document) (document.Document, error) {
	if a.IsObject() && b.IsObject() && a.Len() > 0 && b.Len() > 0 {
		members := make([]document.Member, 0, a.Len()+b.Len())
		members = append(members, a.Members()...)
		members = append(members, b.Members()...)

		return document.FromMembers(members), nil
	}

	spliced, ok := splice(a.String(), b.String())
	if !ok {
		return document.Document{}, fmt.Errorf("%w: %w", ErrMerge, ErrMergeNotObject)
	}

	_, err := document.Parse(spliced)
	if err == nil {
		// Joining two arrays or two strings can still parse.
		err = ErrMergeNotObject
	}

	return document.Document{}, fmt.Errorf("%w: %w", ErrMerge, err)
}

// splice drops the last byte of a and the first byte of b and joins the
// rest with a comma. It reports false when either side is empty.
func splice(a, b string) (string, bool) {
	if a == "" || b == "" {
		return "", false
	}

	return a[:len(a)-1] + "," + b[1:], true
}

// Merge is [Merge] with trace logging of the inputs and outcome.
func (s *Session) Merge(a, b document.Document) (document.Document, error) {
	s.trace("merge", "left", a.Len(), "right", b.Len())

	merged, err := Merge(a, b)
	if err != nil {
		s.log.Warn("merge failed", "error", err)

		return merged, err
	}

	s.trace("merge done", "members", merged.Len())

	return merged, nil
}
