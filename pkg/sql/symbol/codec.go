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
	"github.com/cockroachdb/errors"
	"github.com/eagle518/crate/pkg/sql/metadata"
	"github.com/eagle518/crate/pkg/sql/types"
	"github.com/eagle518/crate/pkg/util/encoding"
)

// decoders is the symbol tag catalog: the closed mapping from wire tag
// to the variant's field decoder. Tags in this table are frozen; see
// the Kind constants.
//
// Each decoder accumulates every field into locals and only then builds
// the immutable symbol through the regular constructors, so a
// half-populated value never exists, let alone escapes.
var decoders = map[Kind]func([]byte) ([]byte, Symbol, error){
	KindReference:        decodeReference,
	KindLiteral:          decodeLiteral,
	KindInputColumn:      decodeInputColumn,
	KindDynamicReference: decodeDynamicReference,
}

// Encode appends the wire form of s: the uvarint kind tag, then the
// variant's fields in their fixed order.
func Encode(b []byte, s Symbol) ([]byte, error) {
	b = encoding.EncodeUvarint(b, uint64(s.Kind()))
	switch t := s.(type) {
	case *Reference:
		return encodeReferenceFields(b, t), nil
	case *DynamicReference:
		return encodeReferenceFields(b, &t.Reference), nil
	case *Literal:
		return encodeLiteralFields(b, t)
	case *InputColumn:
		return encodeInputColumnFields(b, t), nil
	default:
		return nil, errors.AssertionFailedf("unhandled symbol kind %v", s.Kind())
	}
}

// Decode decodes one symbol from the front of b, returning the
// remainder first. A tag absent from the catalog fails with
// ErrUnknownSymbolKind; a short buffer fails with a truncation error.
// In both cases no partially constructed symbol is observable.
func Decode(b []byte) ([]byte, Symbol, error) {
	b, tag, err := encoding.DecodeUvarint(b)
	if err != nil {
		return nil, nil, errors.Wrap(err, "symbol tag")
	}
	dec, ok := decoders[Kind(tag)]
	if !ok {
		return nil, nil, errors.Mark(
			errors.Newf("symbol kind tag %d is not registered", tag), ErrUnknownSymbolKind)
	}
	return dec(b)
}

// Reference wire layout, in order: table ident, column ident, value
// type, row granularity, column policy ordinal (uvarint), index type
// ordinal (uvarint), nullable byte.
func encodeReferenceFields(b []byte, r *Reference) []byte {
	b = metadata.EncodeTableIdent(b, r.table)
	b = metadata.EncodeColumnIdent(b, r.column)
	b = types.EncodeType(b, r.valueType)
	b = metadata.EncodeRowGranularity(b, r.granularity)
	b = encoding.EncodeUvarint(b, uint64(r.columnPolicy))
	b = encoding.EncodeUvarint(b, uint64(r.indexType))
	return encoding.EncodeBool(b, r.nullable)
}

func decodeReferenceFields(b []byte) ([]byte, *Reference, error) {
	b, table, err := metadata.DecodeTableIdent(b)
	if err != nil {
		return nil, nil, err
	}
	b, column, err := metadata.DecodeColumnIdent(b)
	if err != nil {
		return nil, nil, err
	}
	b, valueType, err := types.DecodeType(b)
	if err != nil {
		return nil, nil, err
	}
	b, granularity, err := metadata.DecodeRowGranularity(b)
	if err != nil {
		return nil, nil, err
	}
	b, policyOrdinal, err := encoding.DecodeUvarint(b)
	if err != nil {
		return nil, nil, errors.Wrap(err, "column policy")
	}
	columnPolicy, err := metadata.ColumnPolicyFromWire(policyOrdinal)
	if err != nil {
		return nil, nil, err
	}
	b, indexOrdinal, err := encoding.DecodeUvarint(b)
	if err != nil {
		return nil, nil, errors.Wrap(err, "index type")
	}
	indexType, err := metadata.IndexTypeFromWire(indexOrdinal)
	if err != nil {
		return nil, nil, err
	}
	b, nullable, err := encoding.DecodeBool(b)
	if err != nil {
		return nil, nil, errors.Wrap(err, "nullable")
	}
	ref := NewReferenceFull(
		table, column, granularity, valueType, columnPolicy, indexType, nullable)
	return b, ref, nil
}

func decodeReference(b []byte) ([]byte, Symbol, error) {
	b, ref, err := decodeReferenceFields(b)
	if err != nil {
		return nil, nil, err
	}
	return b, ref, nil
}

func decodeDynamicReference(b []byte) ([]byte, Symbol, error) {
	b, ref, err := decodeReferenceFields(b)
	if err != nil {
		return nil, nil, err
	}
	return b, newDynamicReference(ref), nil
}

// Literal wire layout: value type, then the value through the type's
// own codec.
func encodeLiteralFields(b []byte, l *Literal) ([]byte, error) {
	b = types.EncodeType(b, l.valueType)
	return l.valueType.EncodeValue(b, l.value)
}

func decodeLiteral(b []byte) ([]byte, Symbol, error) {
	b, valueType, err := types.DecodeType(b)
	if err != nil {
		return nil, nil, err
	}
	b, value, err := valueType.DecodeValue(b)
	if err != nil {
		return nil, nil, err
	}
	return b, NewLiteral(valueType, value), nil
}

// InputColumn wire layout: uvarint index, then the value type.
func encodeInputColumnFields(b []byte, c *InputColumn) []byte {
	b = encoding.EncodeUvarint(b, uint64(c.index))
	return types.EncodeType(b, c.valueType)
}

func decodeInputColumn(b []byte) ([]byte, Symbol, error) {
	b, index, err := encoding.DecodeUvarint(b)
	if err != nil {
		return nil, nil, errors.Wrap(err, "input column index")
	}
	b, valueType, err := types.DecodeType(b)
	if err != nil {
		return nil, nil, err
	}
	return b, NewInputColumn(int(index), valueType), nil
}
