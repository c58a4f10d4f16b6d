package keystash

import "strconv"

// Typed readers for raw entries. A Stash[[]byte] with codec.Bytes returns
// whatever the store holds; these convert the way the store itself coerces
// scalars (decimal text for numbers, UTF-8 for text).

// AsString interprets raw entry bytes as UTF-8 text.
func AsString(b []byte) string { return string(b) }

// AsInt parses raw entry bytes as a base-10 integer.
func AsInt(b []byte) (int64, error) {
	return strconv.ParseInt(string(b), 10, 64)
}

// AsFloat parses raw entry bytes as a decimal floating-point number.
func AsFloat(b []byte) (float64, error) {
	return strconv.ParseFloat(string(b), 64)
}
