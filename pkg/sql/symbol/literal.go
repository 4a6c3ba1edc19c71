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
	"fmt"
	"reflect"

	"github.com/eagle518/crate/pkg/sql/types"
)

// Literal is a constant value with its data type. The value must be of
// the Go representation the type's value codec accepts (bool, string,
// int32, int64, float64, time.Time, []interface{} for arrays) or nil.
type Literal struct {
	valueType types.DataType
	value     interface{}
}

// NewLiteral returns the literal for value of type t. The value is
// canonicalized to its decoded wire representation so that a literal
// compares Equal to its own codec round trip.
func NewLiteral(t types.DataType, value interface{}) *Literal {
	return &Literal{valueType: t, value: types.Canonical(t, value)}
}

// Null returns the null literal of type t.
func Null(t types.DataType) *Literal {
	return &Literal{valueType: t}
}

// Kind implements Symbol.
func (l *Literal) Kind() Kind { return KindLiteral }

// ValueType implements Symbol.
func (l *Literal) ValueType() types.DataType { return l.valueType }

// Value returns the constant value, nil for null.
func (l *Literal) Value() interface{} { return l.value }

// Equal reports structural equality over type and value.
func (l *Literal) Equal(other *Literal) bool {
	if l == other {
		return true
	}
	if l == nil || other == nil {
		return false
	}
	return types.Equal(l.valueType, other.valueType) &&
		reflect.DeepEqual(l.value, other.value)
}

func (l *Literal) String() string {
	if l.value == nil {
		return "NULL"
	}
	if l.valueType.ID() == types.StringID {
		return fmt.Sprintf("'%v'", l.value)
	}
	return fmt.Sprintf("%v", l.value)
}

func (l *Literal) sym() {}
