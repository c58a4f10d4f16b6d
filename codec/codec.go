// Package codec defines how values are serialized for storage.
//
// Scalar codecs (Bytes, String, Int64, Float64) write the external store's
// native representations: entries they produce can be read back by any plain
// client of the store. Structured codecs (JSON, CBOR, Msgpack, Protobuf)
// trade that transparency for richer value types.
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
