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

// Package symbol holds the typed, polymorphic expression nodes produced
// by query analysis and carried through planning, together with their
// tag-prefixed wire codec.
//
// The variant set is closed: every Symbol implementation lives in this
// package, sealed by the unexported marker method. Symbols are immutable
// value objects; once constructed they are safe for unsynchronized
// concurrent reads.
package symbol

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/eagle518/crate/pkg/sql/types"
)

// Kind identifies a symbol variant on the wire. Tags are part of the
// wire format: they are never reassigned or reordered once released.
// Tag 0 is reserved and never assigned to a variant.
type Kind uint32

const (
	// KindReference tags a column reference.
	KindReference Kind = 1
	// KindLiteral tags a constant value.
	KindLiteral Kind = 2
	// KindInputColumn tags a positional input column.
	KindInputColumn Kind = 3
	// KindDynamicReference tags a reference to a not-yet-known child of
	// a dynamic object column.
	KindDynamicReference Kind = 4
)

var kindNames = map[Kind]string{
	KindReference:        "reference",
	KindLiteral:          "literal",
	KindInputColumn:      "input_column",
	KindDynamicReference: "dynamic_reference",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "invalid"
}

// SafeValue implements redact.SafeValue.
func (k Kind) SafeValue() {}

var _ redact.SafeValue = Kind(0)

// ErrUnknownSymbolKind marks decode failures caused by a wire tag that
// is not in the catalog. Test for it with errors.Is.
var ErrUnknownSymbolKind = errors.New("unknown symbol kind")

// Symbol is a node of the analyzed expression tree: a column reference,
// a constant, or a positional input. Variant-agnostic processing goes
// through Accept; the wire codec through Encode and Decode.
type Symbol interface {
	// Kind returns the variant's stable wire tag.
	Kind() Kind
	// ValueType returns the type of the value the symbol evaluates to.
	ValueType() types.DataType
	String() string

	// sym seals the variant set to this package.
	sym()
}

// Equal reports structural equality of two symbols. Symbols of
// different kinds are never equal.
func Equal(a, b Symbol) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch t := a.(type) {
	case *Reference:
		return t.Equal(b.(*Reference))
	case *DynamicReference:
		return t.Reference.Equal(&b.(*DynamicReference).Reference)
	case *Literal:
		return t.Equal(b.(*Literal))
	case *InputColumn:
		return t.Equal(b.(*InputColumn))
	default:
		panic(errors.AssertionFailedf("unhandled symbol kind %v", a.Kind()))
	}
}
