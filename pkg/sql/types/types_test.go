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

package types

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestTypeIDsAreFrozen(t *testing.T) {
	require.Equal(t, TypeID(0), Undefined.ID())
	require.Equal(t, TypeID(3), Boolean.ID())
	require.Equal(t, TypeID(4), String.ID())
	require.Equal(t, TypeID(6), Double.ID())
	require.Equal(t, TypeID(9), Integer.ID())
	require.Equal(t, TypeID(10), Long.ID())
	require.Equal(t, TypeID(11), Timestamp.ID())
	require.Equal(t, TypeID(12), Object.ID())
	require.Equal(t, TypeID(100), Array(String).ID())
}

func TestTypeWireRoundTrip(t *testing.T) {
	for _, typ := range []DataType{
		Undefined, Boolean, String, Double, Integer, Long, Timestamp, Object,
		Array(String), Array(Array(Long)),
	} {
		rest, got, err := DecodeType(EncodeType(nil, typ))
		require.NoError(t, err, typ.Name())
		require.True(t, Equal(typ, got), typ.Name())
		require.Empty(t, rest)
	}
}

func TestDecodeUnknownTypeID(t *testing.T) {
	_, _, err := DecodeType([]byte{42})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnknownTypeID))
}

func TestTypeEqual(t *testing.T) {
	require.True(t, Equal(String, String))
	require.False(t, Equal(String, Long))
	require.True(t, Equal(Array(String), Array(String)))
	require.False(t, Equal(Array(String), Array(Long)))
	require.False(t, Equal(Array(String), String))
}

// foreignArrayType implements DataType outside this package's variant
// set while reporting the array wire ID.
type foreignArrayType struct{}

func (foreignArrayType) ID() TypeID     { return ArrayID }
func (foreignArrayType) Name() string   { return "foreign_array" }
func (foreignArrayType) String() string { return "foreign_array" }
func (foreignArrayType) EncodeValue(b []byte, v interface{}) ([]byte, error) {
	return b, nil
}
func (foreignArrayType) DecodeValue(b []byte) ([]byte, interface{}, error) {
	return b, nil, nil
}

func TestTypeEqualForeignImplementation(t *testing.T) {
	foreign := foreignArrayType{}
	require.False(t, Equal(Array(String), foreign))
	require.False(t, Equal(foreign, Array(String)))
}

func TestCanonical(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	ts := time.Date(2026, 8, 24, 12, 0, 0, 123456789, loc)
	want := time.UnixMilli(ts.UnixMilli()).UTC()

	require.Equal(t, want, Canonical(Timestamp, ts))
	require.Equal(t,
		[]interface{}{want, nil},
		Canonical(Array(Timestamp), []interface{}{ts, nil}))

	// Values already in wire representation pass through unchanged.
	require.Equal(t, "foo", Canonical(String, "foo"))
	require.Equal(t, want, Canonical(Timestamp, want))
	require.Nil(t, Canonical(Timestamp, nil))
}

func TestIsComposite(t *testing.T) {
	require.True(t, IsComposite(Object))
	require.False(t, IsComposite(String))
	require.False(t, IsComposite(Array(Object)))
}

func TestValueRoundTrip(t *testing.T) {
	ts := time.Date(2017, 6, 1, 12, 30, 0, 0, time.UTC)
	testCases := []struct {
		typ DataType
		v   interface{}
	}{
		{Boolean, true},
		{Boolean, false},
		{Boolean, nil},
		{String, "foo"},
		{String, ""},
		{String, nil},
		{Double, 3.25},
		{Integer, int32(-7)},
		{Long, int64(1) << 40},
		{Timestamp, ts},
		{Undefined, nil},
		{Object, nil},
		{Array(String), []interface{}{"a", nil, "c"}},
		{Array(Long), nil},
	}
	for _, tc := range testCases {
		b, err := tc.typ.EncodeValue(nil, tc.v)
		require.NoError(t, err, tc.typ.Name())
		rest, got, err := tc.typ.DecodeValue(b)
		require.NoError(t, err, tc.typ.Name())
		require.Equal(t, tc.v, got, tc.typ.Name())
		require.Empty(t, rest)
	}
}

func TestValueTypeMismatch(t *testing.T) {
	_, err := Boolean.EncodeValue(nil, "not a bool")
	require.Error(t, err)
	_, err = Long.EncodeValue(nil, int32(1))
	require.Error(t, err)
	_, err = Object.EncodeValue(nil, map[string]interface{}{"a": 1})
	require.Error(t, err)
}

func TestArrayNames(t *testing.T) {
	require.Equal(t, "string_array", Array(String).Name())
	require.Equal(t, "long_array_array", Array(Array(Long)).Name())
}

func TestIntegerOutOfRange(t *testing.T) {
	// A long on the wire where an integer is expected.
	b, err := Long.EncodeValue(nil, int64(1)<<40)
	require.NoError(t, err)
	_, _, err = Integer.DecodeValue(b)
	require.Error(t, err)
}
