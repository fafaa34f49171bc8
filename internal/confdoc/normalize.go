package confdoc

import "strings"

// Unquote removes one leading and one trailing double quote from s, each
// only if present. It does not look at the value's type or unescape
// anything: `"x"` becomes x, `"a\"b"` becomes a\"b and 42 stays 42.
func Unquote(s string) string {
	s = strings.TrimPrefix(s, `"`)

	return strings.TrimSuffix(s, `"`)
}
