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

// Package types describes the value domains of columns and carries
// their wire codecs. Type descriptors are immutable; the scalar types
// are shared singletons.
package types

import (
	"math"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/eagle518/crate/pkg/util/encoding"
)

// TypeID identifies a data type on the wire. IDs are frozen: they are
// never reordered or reused, and new types take fresh IDs.
type TypeID uint32

const (
	UndefinedID TypeID = 0
	BooleanID   TypeID = 3
	StringID    TypeID = 4
	DoubleID    TypeID = 6
	IntegerID   TypeID = 9
	LongID      TypeID = 10
	TimestampID TypeID = 11
	ObjectID    TypeID = 12
	ArrayID     TypeID = 100
)

// ErrUnknownTypeID marks decode failures caused by a wire type ID that
// is not in the registry.
var ErrUnknownTypeID = errors.New("unknown data type id")

// DataType is a polymorphic value-domain descriptor. Implementations
// also carry the codec for single values of the type, used by literal
// symbols; both sides are self-delimiting.
type DataType interface {
	ID() TypeID
	Name() string
	String() string

	// EncodeValue appends the wire form of v, prefixed by a null-flag
	// byte. A nil v encodes as null for every type.
	EncodeValue(b []byte, v interface{}) ([]byte, error)
	// DecodeValue decodes one value from the front of b, returning the
	// remainder first. Null decodes as nil.
	DecodeValue(b []byte) ([]byte, interface{}, error)
}

// The scalar singletons.
var (
	Undefined DataType = undefinedType{}
	Boolean   DataType = booleanType{}
	String    DataType = stringType{}
	Double    DataType = doubleType{}
	Integer   DataType = integerType{}
	Long      DataType = longType{}
	Timestamp DataType = timestampType{}
	Object    DataType = objectType{}
)

// byID is the closed decode registry for non-parameterized types. The
// array type is handled separately because it carries an inner type.
var byID = map[TypeID]DataType{
	UndefinedID: Undefined,
	BooleanID:   Boolean,
	StringID:    String,
	DoubleID:    Double,
	IntegerID:   Integer,
	LongID:      Long,
	TimestampID: Timestamp,
	ObjectID:    Object,
}

// Equal reports structural equality of two type descriptors.
func Equal(a, b DataType) bool {
	if a.ID() != b.ID() {
		return false
	}
	aa, aok := a.(ArrayType)
	bb, bok := b.(ArrayType)
	if aok != bok {
		return false
	}
	if aok {
		return Equal(aa.inner, bb.inner)
	}
	return true
}

// IsComposite reports whether t is the object (composite) type.
func IsComposite(t DataType) bool {
	return t.ID() == ObjectID
}

// Canonical returns v in the representation DecodeValue produces for t.
// Most values already are; timestamps are truncated to UTC millisecond
// precision, the granularity the wire form carries, and arrays are
// canonicalized element-wise.
func Canonical(t DataType, v interface{}) interface{} {
	if v == nil {
		return nil
	}
	switch tt := t.(type) {
	case timestampType:
		if ts, ok := v.(time.Time); ok {
			return time.UnixMilli(ts.UnixMilli()).UTC()
		}
	case ArrayType:
		if vs, ok := v.([]interface{}); ok {
			out := make([]interface{}, len(vs))
			for i, elem := range vs {
				out[i] = Canonical(tt.inner, elem)
			}
			return out
		}
	}
	return v
}

// EncodeType appends the wire form of t: the uvarint type ID followed
// by any nested type info.
func EncodeType(b []byte, t DataType) []byte {
	b = encoding.EncodeUvarint(b, uint64(t.ID()))
	if a, ok := t.(ArrayType); ok {
		b = EncodeType(b, a.inner)
	}
	return b
}

// DecodeType decodes a type descriptor from the front of b. An ID
// absent from the registry fails with ErrUnknownTypeID.
func DecodeType(b []byte) ([]byte, DataType, error) {
	b, id, err := encoding.DecodeUvarint(b)
	if err != nil {
		return nil, nil, errors.Wrap(err, "type id")
	}
	if TypeID(id) == ArrayID {
		b, inner, err := DecodeType(b)
		if err != nil {
			return nil, nil, err
		}
		return b, Array(inner), nil
	}
	t, ok := byID[TypeID(id)]
	if !ok {
		return nil, nil, errors.Mark(
			errors.Newf("data type id %d is not registered", id), ErrUnknownTypeID)
	}
	return b, t, nil
}

func encodeNullFlag(b []byte, null bool) []byte {
	return encoding.EncodeBool(b, !null)
}

// decodeNullFlag returns present=false for a null value.
func decodeNullFlag(b []byte) ([]byte, bool, error) {
	b, present, err := encoding.DecodeBool(b)
	if err != nil {
		return nil, false, errors.Wrap(err, "null flag")
	}
	return b, present, nil
}

func errValueType(t DataType, v interface{}) error {
	return errors.Newf("cannot encode %T as %s", v, t.Name())
}

type undefinedType struct{}

func (undefinedType) ID() TypeID     { return UndefinedID }
func (undefinedType) Name() string   { return "undefined" }
func (undefinedType) String() string { return "undefined" }

func (t undefinedType) EncodeValue(b []byte, v interface{}) ([]byte, error) {
	if v != nil {
		return nil, errValueType(t, v)
	}
	return encodeNullFlag(b, true), nil
}

func (undefinedType) DecodeValue(b []byte) ([]byte, interface{}, error) {
	b, present, err := decodeNullFlag(b)
	if err != nil {
		return nil, nil, err
	}
	if present {
		return nil, nil, errors.New("non-null value for undefined type")
	}
	return b, nil, nil
}

type booleanType struct{}

func (booleanType) ID() TypeID     { return BooleanID }
func (booleanType) Name() string   { return "boolean" }
func (booleanType) String() string { return "boolean" }

func (t booleanType) EncodeValue(b []byte, v interface{}) ([]byte, error) {
	if v == nil {
		return encodeNullFlag(b, true), nil
	}
	bv, ok := v.(bool)
	if !ok {
		return nil, errValueType(t, v)
	}
	b = encodeNullFlag(b, false)
	return encoding.EncodeBool(b, bv), nil
}

func (booleanType) DecodeValue(b []byte) ([]byte, interface{}, error) {
	b, present, err := decodeNullFlag(b)
	if err != nil || !present {
		return b, nil, err
	}
	b, v, err := encoding.DecodeBool(b)
	if err != nil {
		return nil, nil, err
	}
	return b, v, nil
}

type stringType struct{}

func (stringType) ID() TypeID     { return StringID }
func (stringType) Name() string   { return "string" }
func (stringType) String() string { return "string" }

func (t stringType) EncodeValue(b []byte, v interface{}) ([]byte, error) {
	if v == nil {
		return encodeNullFlag(b, true), nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, errValueType(t, v)
	}
	b = encodeNullFlag(b, false)
	return encoding.EncodeString(b, s), nil
}

func (stringType) DecodeValue(b []byte) ([]byte, interface{}, error) {
	b, present, err := decodeNullFlag(b)
	if err != nil || !present {
		return b, nil, err
	}
	b, s, err := encoding.DecodeString(b)
	if err != nil {
		return nil, nil, err
	}
	return b, s, nil
}

type doubleType struct{}

func (doubleType) ID() TypeID     { return DoubleID }
func (doubleType) Name() string   { return "double" }
func (doubleType) String() string { return "double" }

func (t doubleType) EncodeValue(b []byte, v interface{}) ([]byte, error) {
	if v == nil {
		return encodeNullFlag(b, true), nil
	}
	f, ok := v.(float64)
	if !ok {
		return nil, errValueType(t, v)
	}
	b = encodeNullFlag(b, false)
	return encoding.EncodeUint64(b, math.Float64bits(f)), nil
}

func (doubleType) DecodeValue(b []byte) ([]byte, interface{}, error) {
	b, present, err := decodeNullFlag(b)
	if err != nil || !present {
		return b, nil, err
	}
	b, bits, err := encoding.DecodeUint64(b)
	if err != nil {
		return nil, nil, err
	}
	return b, math.Float64frombits(bits), nil
}

type integerType struct{}

func (integerType) ID() TypeID     { return IntegerID }
func (integerType) Name() string   { return "integer" }
func (integerType) String() string { return "integer" }

func (t integerType) EncodeValue(b []byte, v interface{}) ([]byte, error) {
	if v == nil {
		return encodeNullFlag(b, true), nil
	}
	i, ok := v.(int32)
	if !ok {
		return nil, errValueType(t, v)
	}
	b = encodeNullFlag(b, false)
	return encoding.EncodeVarint(b, int64(i)), nil
}

func (integerType) DecodeValue(b []byte) ([]byte, interface{}, error) {
	b, present, err := decodeNullFlag(b)
	if err != nil || !present {
		return b, nil, err
	}
	b, i, err := encoding.DecodeVarint(b)
	if err != nil {
		return nil, nil, err
	}
	if i < math.MinInt32 || i > math.MaxInt32 {
		return nil, nil, errors.Newf("integer value %d out of range", i)
	}
	return b, int32(i), nil
}

type longType struct{}

func (longType) ID() TypeID     { return LongID }
func (longType) Name() string   { return "long" }
func (longType) String() string { return "long" }

func (t longType) EncodeValue(b []byte, v interface{}) ([]byte, error) {
	if v == nil {
		return encodeNullFlag(b, true), nil
	}
	i, ok := v.(int64)
	if !ok {
		return nil, errValueType(t, v)
	}
	b = encodeNullFlag(b, false)
	return encoding.EncodeVarint(b, i), nil
}

func (longType) DecodeValue(b []byte) ([]byte, interface{}, error) {
	b, present, err := decodeNullFlag(b)
	if err != nil || !present {
		return b, nil, err
	}
	b, i, err := encoding.DecodeVarint(b)
	if err != nil {
		return nil, nil, err
	}
	return b, i, nil
}

type timestampType struct{}

func (timestampType) ID() TypeID     { return TimestampID }
func (timestampType) Name() string   { return "timestamp" }
func (timestampType) String() string { return "timestamp" }

// Timestamps travel as varint milliseconds since the Unix epoch, UTC.
func (t timestampType) EncodeValue(b []byte, v interface{}) ([]byte, error) {
	if v == nil {
		return encodeNullFlag(b, true), nil
	}
	ts, ok := v.(time.Time)
	if !ok {
		return nil, errValueType(t, v)
	}
	b = encodeNullFlag(b, false)
	return encoding.EncodeVarint(b, ts.UnixMilli()), nil
}

func (timestampType) DecodeValue(b []byte) ([]byte, interface{}, error) {
	b, present, err := decodeNullFlag(b)
	if err != nil || !present {
		return b, nil, err
	}
	b, millis, err := encoding.DecodeVarint(b)
	if err != nil {
		return nil, nil, err
	}
	return b, time.UnixMilli(millis).UTC(), nil
}

type objectType struct{}

func (objectType) ID() TypeID     { return ObjectID }
func (objectType) Name() string   { return "object" }
func (objectType) String() string { return "object" }

// Object values never travel through the symbol codec; only the column
// type does. Attempting to encode one is a caller bug.
func (t objectType) EncodeValue(b []byte, v interface{}) ([]byte, error) {
	if v == nil {
		return encodeNullFlag(b, true), nil
	}
	return nil, errors.Newf("object values are not wire-encodable")
}

func (objectType) DecodeValue(b []byte) ([]byte, interface{}, error) {
	b, present, err := decodeNullFlag(b)
	if err != nil {
		return nil, nil, err
	}
	if present {
		return nil, nil, errors.Newf("object values are not wire-decodable")
	}
	return b, nil, nil
}

// ArrayType is the type of a homogeneous collection of inner values.
type ArrayType struct {
	inner DataType
}

// Array returns the array type over inner.
func Array(inner DataType) DataType {
	return ArrayType{inner: inner}
}

func (a ArrayType) ID() TypeID { return ArrayID }

// Inner returns the element type.
func (a ArrayType) Inner() DataType { return a.inner }

func (a ArrayType) Name() string   { return a.inner.Name() + "_array" }
func (a ArrayType) String() string { return a.Name() }

func (a ArrayType) EncodeValue(b []byte, v interface{}) ([]byte, error) {
	if v == nil {
		return encodeNullFlag(b, true), nil
	}
	vs, ok := v.([]interface{})
	if !ok {
		return nil, errValueType(a, v)
	}
	b = encodeNullFlag(b, false)
	b = encoding.EncodeUvarint(b, uint64(len(vs)))
	var err error
	for _, elem := range vs {
		if b, err = a.inner.EncodeValue(b, elem); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (a ArrayType) DecodeValue(b []byte) ([]byte, interface{}, error) {
	b, present, err := decodeNullFlag(b)
	if err != nil || !present {
		return b, nil, err
	}
	b, n, err := encoding.DecodeUvarint(b)
	if err != nil {
		return nil, nil, errors.Wrap(err, "array length")
	}
	if n > uint64(len(b)) {
		// At least the null flag byte per element.
		return nil, nil, errors.Newf("array length %d exceeds remaining buffer", n)
	}
	vs := make([]interface{}, n)
	for i := range vs {
		if b, vs[i], err = a.inner.DecodeValue(b); err != nil {
			return nil, nil, err
		}
	}
	return b, vs, nil
}
