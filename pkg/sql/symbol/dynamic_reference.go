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
	"github.com/eagle518/crate/pkg/sql/metadata"
	"github.com/eagle518/crate/pkg/sql/types"
)

// DynamicReference is a Reference to a child column of a dynamic object
// column that does not exist in the schema yet. It starts out with the
// undefined value type; the analysis layer replaces it once a concrete
// type is known. On the wire it carries the same payload as Reference
// under its own tag.
type DynamicReference struct {
	Reference
}

// NewDynamicReference returns a dynamic reference for the given column,
// typed undefined at row granularity.
func NewDynamicReference(
	table metadata.TableIdent, column metadata.ColumnIdent,
) *DynamicReference {
	return newDynamicReference(NewReference(
		table, column, metadata.GranularityDoc, types.Undefined))
}

func newDynamicReference(ref *Reference) *DynamicReference {
	return &DynamicReference{Reference: *ref}
}

// Kind implements Symbol, shadowing the embedded Reference tag.
func (d *DynamicReference) Kind() Kind { return KindDynamicReference }

func (d *DynamicReference) String() string {
	return "Dynamic" + d.Reference.String()
}
