package wire

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

func mustDecodeRecord(t *testing.T, b []byte) (uint64, []byte, []byte) {
	t.Helper()
	ts, in, out, err := DecodeRecord(b)
	if err != nil {
		t.Fatalf("DecodeRecord error: %v", err)
	}
	return ts, in, out
}

func TestRecordRTEmptyAndNonEmpty(t *testing.T) {
	cases := []struct {
		ts     uint64
		input  []byte
		output []byte
	}{
		{0, nil, nil},
		{42, []byte("hello"), []byte("3a8aa1f1-71cd-4c51-9c9b-9a0e2b3f8f30")},
		{math.MaxUint64, []byte{0, 1, 2, 3, 4}, nil},
		{7, nil, []byte("k")},
	}
	for _, tc := range cases {
		enc := EncodeRecord(tc.ts, tc.input, tc.output)
		ts, in, out := mustDecodeRecord(t, enc)
		if ts != tc.ts {
			t.Fatalf("ts mismatch: got %d want %d", ts, tc.ts)
		}
		if !bytes.Equal(in, tc.input) {
			t.Fatalf("input mismatch: got %x want %x", in, tc.input)
		}
		if !bytes.Equal(out, tc.output) {
			t.Fatalf("output mismatch: got %x want %x", out, tc.output)
		}
	}
}

func TestRecordRejectsTrailingBytes(t *testing.T) {
	enc := EncodeRecord(7, []byte("x"), []byte("k"))
	enc = append(enc, 0xDE, 0xAD) // add junk
	if _, _, _, err := DecodeRecord(enc); err == nil {
		t.Fatalf("expected error on trailing bytes")
	}
}

func TestRecordCorruptHeadersAndLengths(t *testing.T) {
	enc := EncodeRecord(1, []byte("abc"), []byte("key"))

	// bad magic
	badMagic := append([]byte(nil), enc...)
	badMagic[0] = 'X'
	if _, _, _, err := DecodeRecord(badMagic); err == nil {
		t.Fatalf("expected error on bad magic")
	}

	// wrong version
	badVer := append([]byte(nil), enc...)
	badVer[4] = version + 1
	if _, _, _, err := DecodeRecord(badVer); err == nil {
		t.Fatalf("expected error on bad version")
	}

	// ilen too large (announce more than available)
	tooLong := append([]byte(nil), enc...)
	// ilen is at offset 13..16 (4 magic +1 ver +8 ts)
	binary.BigEndian.PutUint32(tooLong[13:17], uint32(len(enc))) // way past the end
	if _, _, _, err := DecodeRecord(tooLong); err == nil {
		t.Fatalf("expected error on ilen beyond buffer")
	}

	// truncated buffer
	trunc := enc[:len(enc)-1]
	if _, _, _, err := DecodeRecord(trunc); err == nil {
		t.Fatalf("expected error on truncated buffer")
	}

	// foreign bytes (plain entry payload, no framing)
	if _, _, _, err := DecodeRecord([]byte("hello world")); err == nil {
		t.Fatalf("expected error on unframed bytes")
	}
}

func TestRecordZeroCopySlices(t *testing.T) {
	enc := EncodeRecord(1, []byte("Z"), []byte("K"))
	_, in, _ := mustDecodeRecord(t, enc)
	if len(in) != 1 {
		t.Fatalf("unexpected input len")
	}
	// mutate input slice. should mutate underlying enc bytes (zero-copy)
	in[0] = 'Q'
	_, in2, _ := mustDecodeRecord(t, enc)
	if in2[0] != 'Q' {
		t.Fatalf("expected zero-copy slice into enc buffer")
	}
}
