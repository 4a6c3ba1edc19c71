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

package symbol

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/eagle518/crate/pkg/sql/metadata"
	"github.com/eagle518/crate/pkg/sql/types"
	"github.com/eagle518/crate/pkg/util/encoding"
	"github.com/stretchr/testify/require"
)

func TestSymbolRoundTrip(t *testing.T) {
	table := metadata.NewTableIdent("doc", "mytable")
	symbols := []Symbol{
		testRef(),
		NewReferenceFull(
			table,
			metadata.NewColumnIdent("address", "zip"),
			metadata.GranularityPartition,
			types.Object,
			metadata.ColumnPolicyStrict,
			metadata.IndexTypeNo,
			false,
		),
		NewDynamicReference(table, metadata.NewColumnIdent("payload", "extra")),
		NewLiteral(types.String, "foo"),
		NewLiteral(types.Long, int64(42)),
		Null(types.Boolean),
		NewLiteral(types.Array(types.String), []interface{}{"a", nil}),
		NewInputColumn(3, types.Double),
	}
	for _, s := range symbols {
		b, err := Encode(nil, s)
		require.NoError(t, err, s.String())
		rest, decoded, err := Decode(b)
		require.NoError(t, err, s.String())
		require.Empty(t, rest)
		require.Equal(t, s.Kind(), decoded.Kind())
		require.Truef(t, Equal(s, decoded), "%s round-tripped to %s", s, decoded)
	}
}

// The first byte of an encoded Reference is its registered wire tag.
// This is persisted format; the assertion guards against accidental
// renumbering.
func TestReferenceWireTag(t *testing.T) {
	b, err := Encode(nil, testRef())
	require.NoError(t, err)
	require.Equal(t, byte(KindReference), b[0])
	require.Equal(t, byte(1), b[0])
}

func TestDecodeUnknownTag(t *testing.T) {
	for _, tag := range []uint64{0, 5, 99} {
		b := encoding.EncodeUvarint(nil, tag)
		_, sym, err := Decode(b)
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrUnknownSymbolKind), "tag %d", tag)
		require.Nil(t, sym)
	}
}

func TestDecodeTruncated(t *testing.T) {
	b, err := Encode(nil, testRef())
	require.NoError(t, err)
	// Every proper prefix must fail without producing a symbol.
	for i := 0; i < len(b); i++ {
		_, sym, err := Decode(b[:i])
		require.Errorf(t, err, "prefix of length %d", i)
		require.Nil(t, sym)
	}
}

func TestDecodeStaleEnumOrdinal(t *testing.T) {
	r := testRef()
	b := metadata.EncodeTableIdent(nil, r.Table())
	b = metadata.EncodeColumnIdent(b, r.Column())
	b = types.EncodeType(b, r.ValueType())
	b = metadata.EncodeRowGranularity(b, r.Granularity())
	b = encoding.EncodeUvarint(b, 99) // column policy from the future
	b = encoding.EncodeUvarint(b, uint64(r.IndexType()))
	b = encoding.EncodeBool(b, r.Nullable())
	full := append(encoding.EncodeUvarint(nil, uint64(KindReference)), b...)

	_, sym, err := Decode(full)
	require.Error(t, err)
	require.True(t, errors.Is(err, metadata.ErrStaleWireOrdinal))
	require.Nil(t, sym)
}

// Timestamps travel as UTC milliseconds; a literal built from a zoned,
// nanosecond-precision time must still compare equal to its own codec
// round trip.
func TestTimestampLiteralRoundTrip(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	lit := NewLiteral(types.Timestamp, time.Date(2026, 8, 24, 12, 0, 0, 123456789, loc))

	b, err := Encode(nil, lit)
	require.NoError(t, err)
	rest, decoded, err := Decode(b)
	require.NoError(t, err)
	require.Empty(t, rest)
	require.Truef(t, Equal(lit, decoded), "%s round-tripped to %s", lit, decoded)

	want := time.Date(2026, 8, 24, 11, 0, 0, 123000000, time.UTC)
	require.Equal(t, want, decoded.(*Literal).Value())

	arr := NewLiteral(types.Array(types.Timestamp),
		[]interface{}{time.Date(2026, 8, 24, 12, 0, 0, 999999999, loc), nil})
	b, err = Encode(nil, arr)
	require.NoError(t, err)
	_, decoded, err = Decode(b)
	require.NoError(t, err)
	require.True(t, Equal(arr, decoded))
}

func TestDecodeConsumesExactly(t *testing.T) {
	// Two symbols back to back decode independently.
	b, err := Encode(nil, testRef())
	require.NoError(t, err)
	b, err = Encode(b, NewLiteral(types.Long, int64(7)))
	require.NoError(t, err)

	rest, first, err := Decode(b)
	require.NoError(t, err)
	require.Equal(t, KindReference, first.Kind())

	rest, second, err := Decode(rest)
	require.NoError(t, err)
	require.Equal(t, KindLiteral, second.Kind())
	require.Empty(t, rest)
}

func TestDynamicReferenceRoundTripKeepsKind(t *testing.T) {
	d := NewDynamicReference(
		metadata.NewTableIdent("doc", "mytable"), metadata.NewColumnIdent("p", "x"))
	b, err := Encode(nil, d)
	require.NoError(t, err)
	require.Equal(t, byte(KindDynamicReference), b[0])

	_, decoded, err := Decode(b)
	require.NoError(t, err)
	dd, ok := decoded.(*DynamicReference)
	require.True(t, ok)
	require.True(t, dd.Reference.Equal(&d.Reference))
}
