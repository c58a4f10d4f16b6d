package codec

import "strconv"

// Bytes is an identity codec for []byte values. Encode/Decode return the
// input unchanged. This is the codec to use when callers hand you opaque
// binary and only want a fresh key back.
type Bytes struct{}

func (Bytes) Encode(b []byte) ([]byte, error) { return b, nil }
func (Bytes) Decode(b []byte) ([]byte, error) { return b, nil }

// String is a trivial codec for Go string values. Encode converts to []byte,
// and Decode converts back to string. By convention this assumes UTF-8 and
// performs no validation.
type String struct{}

func (String) Encode(s string) ([]byte, error) { return []byte(s), nil }
func (String) Decode(b []byte) (string, error) { return string(b), nil }

// Int64 stores integers as base-10 text, the form the external store itself
// uses for numbers: an entry written as 42 reads back as "42" from any
// plain client.
type Int64 struct{}

func (Int64) Encode(v int64) ([]byte, error) {
	return strconv.AppendInt(nil, v, 10), nil
}

func (Int64) Decode(b []byte) (int64, error) {
	return strconv.ParseInt(string(b), 10, 64)
}

// Float64 stores floats as shortest-form decimal text ('g' format, full
// precision), round-trippable via ParseFloat.
type Float64 struct{}

func (Float64) Encode(v float64) ([]byte, error) {
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

func (Float64) Decode(b []byte) (float64, error) {
	return strconv.ParseFloat(string(b), 64)
}
