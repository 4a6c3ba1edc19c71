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

	"github.com/eagle518/crate/pkg/sql/types"
)

// InputColumn refers to a column of the incoming row by position,
// independent of any table. Execution nodes use it to address their
// upstream's output.
type InputColumn struct {
	index     int
	valueType types.DataType
}

// NewInputColumn returns the input column at index with the given type.
func NewInputColumn(index int, valueType types.DataType) *InputColumn {
	return &InputColumn{index: index, valueType: valueType}
}

// Kind implements Symbol.
func (c *InputColumn) Kind() Kind { return KindInputColumn }

// ValueType implements Symbol.
func (c *InputColumn) ValueType() types.DataType { return c.valueType }

// Index returns the zero-based position in the input row.
func (c *InputColumn) Index() int { return c.index }

// Equal reports structural equality.
func (c *InputColumn) Equal(other *InputColumn) bool {
	if c == other {
		return true
	}
	if c == nil || other == nil {
		return false
	}
	return c.index == other.index && types.Equal(c.valueType, other.valueType)
}

func (c *InputColumn) String() string {
	return fmt.Sprintf("INPUT(%d)", c.index)
}

func (c *InputColumn) sym() {}
