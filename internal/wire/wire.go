// Package wire frames call-history records for list storage. Records live in
// a shared store next to plain entries, so every record is validated by a
// magic prefix and strict length checks; anything foreign decodes as corrupt
// instead of garbage.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const version byte = 1

var (
	ErrCorrupt = errors.New("keystash: corrupt history record")
	magic4     = [...]byte{'K', 'S', 'T', 'H'}
)

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// Record: magic(4) | ver(1) | ts(u64 be, unix nanos) | ilen(u32 be) | input(ilen) | olen(u32 be) | output(olen)
func EncodeRecord(ts uint64, input, output []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(4 + 1 + 8 + 4 + len(input) + 4 + len(output))

	buf.Write(magic4[:])
	buf.WriteByte(version)

	var u8 [8]byte
	var u4 [4]byte

	binary.BigEndian.PutUint64(u8[:], ts)
	buf.Write(u8[:])

	binary.BigEndian.PutUint32(u4[:], uint32(len(input)))
	buf.Write(u4[:])
	buf.Write(input)

	binary.BigEndian.PutUint32(u4[:], uint32(len(output)))
	buf.Write(u4[:])
	buf.Write(output)

	return buf.Bytes()
}

func DecodeRecord(b []byte) (ts uint64, input, output []byte, err error) {
	const hdr = 4 + 1 + 8 + 4
	if len(b) < hdr || !hasMagic(b) || b[4] != version {
		return 0, nil, nil, ErrCorrupt
	}

	off := 5

	// ts
	ts = binary.BigEndian.Uint64(b[off : off+8])
	off += 8

	// ilen
	ilen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	if ilen < 0 || ilen > len(b)-off { // overflow-safe bound check
		return 0, nil, nil, ErrCorrupt
	}
	input = b[off : off+ilen]
	off += ilen

	// olen
	if off+4 > len(b) {
		return 0, nil, nil, ErrCorrupt
	}
	olen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	if olen < 0 || olen != len(b)-off { // strict: no trailing bytes
		return 0, nil, nil, ErrCorrupt
	}
	output = b[off : off+olen]

	return ts, input, output, nil
}
