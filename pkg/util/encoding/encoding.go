// Copyright 2017 The Crate Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

// Package encoding exposes the primitive wire codecs shared by all
// stream-transported metadata values. Encoders append to the supplied
// buffer and return the final buffer; decoders consume from the front of
// the buffer and return the remainder first. Varints use Go's
// encoding/binary unsigned/signed varint format; fixed-width values are
// big-endian.
package encoding

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
)

// ErrTruncated is the sentinel marking decode failures caused by a byte
// source that ended before the value was complete. Test for it with
// IsTruncated, not equality.
var ErrTruncated = errors.New("truncated wire data")

// IsTruncated reports whether err was caused by a short buffer.
func IsTruncated(err error) bool {
	return errors.Is(err, ErrTruncated)
}

func errTruncated(what string) error {
	return errors.Mark(errors.Newf("insufficient bytes to decode %s", what), ErrTruncated)
}

// EncodeUvarint encodes v as an unsigned varint. The bytes are appended
// to the supplied buffer and the final buffer is returned.
func EncodeUvarint(b []byte, v uint64) []byte {
	return binary.AppendUvarint(b, v)
}

// DecodeUvarint decodes an unsigned varint from the front of b. The
// remainder of the buffer and the decoded value are returned.
func DecodeUvarint(b []byte) ([]byte, uint64, error) {
	v, n := binary.Uvarint(b)
	if n == 0 {
		return nil, 0, errTruncated("uvarint")
	}
	if n < 0 {
		return nil, 0, errors.New("uvarint overflows 64 bits")
	}
	return b[n:], v, nil
}

// EncodeVarint encodes v as a zig-zag signed varint.
func EncodeVarint(b []byte, v int64) []byte {
	return binary.AppendVarint(b, v)
}

// DecodeVarint decodes a zig-zag signed varint from the front of b.
func DecodeVarint(b []byte) ([]byte, int64, error) {
	v, n := binary.Varint(b)
	if n == 0 {
		return nil, 0, errTruncated("varint")
	}
	if n < 0 {
		return nil, 0, errors.New("varint overflows 64 bits")
	}
	return b[n:], v, nil
}

// EncodeBool encodes v as a single byte, 1 for true and 0 for false.
func EncodeBool(b []byte, v bool) []byte {
	if v {
		return append(b, 1)
	}
	return append(b, 0)
}

// DecodeBool decodes a single boolean byte. Any byte other than 0 or 1
// indicates a corrupt stream.
func DecodeBool(b []byte) ([]byte, bool, error) {
	if len(b) < 1 {
		return nil, false, errTruncated("bool")
	}
	switch b[0] {
	case 0:
		return b[1:], false, nil
	case 1:
		return b[1:], true, nil
	default:
		return nil, false, errors.Newf("invalid bool byte 0x%02x", b[0])
	}
}

// EncodeUint64 encodes v using a big-endian 8 byte representation.
func EncodeUint64(b []byte, v uint64) []byte {
	return append(b,
		byte(v>>56), byte(v>>48), byte(v>>40), byte(v>>32),
		byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

// DecodeUint64 decodes a big-endian 8 byte uint64 from the front of b.
func DecodeUint64(b []byte) ([]byte, uint64, error) {
	if len(b) < 8 {
		return nil, 0, errTruncated("uint64")
	}
	v := uint64(b[0])<<56 | uint64(b[1])<<48 | uint64(b[2])<<40 | uint64(b[3])<<32 |
		uint64(b[4])<<24 | uint64(b[5])<<16 | uint64(b[6])<<8 | uint64(b[7])
	return b[8:], v, nil
}

// EncodeString encodes s as a uvarint byte length followed by the raw
// bytes.
func EncodeString(b []byte, s string) []byte {
	b = EncodeUvarint(b, uint64(len(s)))
	return append(b, s...)
}

// DecodeString decodes a length-prefixed string from the front of b.
func DecodeString(b []byte) ([]byte, string, error) {
	b, n, err := DecodeUvarint(b)
	if err != nil {
		return nil, "", errors.Wrap(err, "string length")
	}
	if uint64(len(b)) < n {
		return nil, "", errTruncated("string")
	}
	return b[n:], string(b[:n]), nil
}

// EncodeStrings encodes ss as a uvarint count followed by each string.
func EncodeStrings(b []byte, ss []string) []byte {
	b = EncodeUvarint(b, uint64(len(ss)))
	for _, s := range ss {
		b = EncodeString(b, s)
	}
	return b
}

// DecodeStrings decodes a counted string slice from the front of b. An
// empty slice decodes as nil.
func DecodeStrings(b []byte) ([]byte, []string, error) {
	b, n, err := DecodeUvarint(b)
	if err != nil {
		return nil, nil, errors.Wrap(err, "string count")
	}
	if n == 0 {
		return b, nil, nil
	}
	if n > uint64(len(b)) {
		// Each element takes at least one length byte; reject early rather
		// than attempting a huge allocation on a corrupt count.
		return nil, nil, errTruncated("string slice")
	}
	ss := make([]string, n)
	for i := range ss {
		b, ss[i], err = DecodeString(b)
		if err != nil {
			return nil, nil, err
		}
	}
	return b, ss, nil
}
