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
	"hash/fnv"
	"sort"
	"strings"

	"github.com/eagle518/crate/pkg/sql/metadata"
	"github.com/eagle518/crate/pkg/sql/types"
)

// Reference denotes a concrete column of a concrete table, together
// with the storage and indexing attributes resolved for it. A Reference
// is immutable; plan rewrites that move a column to a different
// table/column identity go through Relocate, which copies the remaining
// attributes into a fresh value.
type Reference struct {
	table        metadata.TableIdent
	column       metadata.ColumnIdent
	valueType    types.DataType
	granularity  metadata.RowGranularity
	columnPolicy metadata.ColumnPolicy
	indexType    metadata.IndexType
	nullable     bool
}

// NewReference returns a Reference with the default attributes:
// dynamic column policy, not-analyzed index type, nullable.
func NewReference(
	table metadata.TableIdent,
	column metadata.ColumnIdent,
	granularity metadata.RowGranularity,
	valueType types.DataType,
) *Reference {
	return NewReferenceFull(
		table, column, granularity, valueType,
		metadata.ColumnPolicyDynamic, metadata.IndexTypeNotAnalyzed, true /* nullable */)
}

// NewReferenceFull returns a Reference with every attribute given
// explicitly.
func NewReferenceFull(
	table metadata.TableIdent,
	column metadata.ColumnIdent,
	granularity metadata.RowGranularity,
	valueType types.DataType,
	columnPolicy metadata.ColumnPolicy,
	indexType metadata.IndexType,
	nullable bool,
) *Reference {
	return &Reference{
		table:        table,
		column:       column,
		valueType:    valueType,
		granularity:  granularity,
		columnPolicy: columnPolicy,
		indexType:    indexType,
		nullable:     nullable,
	}
}

// Kind implements Symbol.
func (r *Reference) Kind() Kind { return KindReference }

// ValueType implements Symbol.
func (r *Reference) ValueType() types.DataType { return r.valueType }

// Table returns the table the column belongs to.
func (r *Reference) Table() metadata.TableIdent { return r.table }

// Column returns the column ident.
func (r *Reference) Column() metadata.ColumnIdent { return r.column }

// Granularity returns the row granularity of the column.
func (r *Reference) Granularity() metadata.RowGranularity { return r.granularity }

// ColumnPolicy returns the schema-evolution policy; only meaningful for
// object columns.
func (r *Reference) ColumnPolicy() metadata.ColumnPolicy { return r.columnPolicy }

// IndexType returns the indexing treatment of the column.
func (r *Reference) IndexType() metadata.IndexType { return r.indexType }

// Nullable reports whether the column admits null values.
func (r *Reference) Nullable() bool { return r.nullable }

// Relocate returns a new Reference with the given table/column identity
// and all remaining attributes copied from r. Used when a plan is
// rewritten (view or alias substitution) without re-deriving storage
// metadata.
func (r *Reference) Relocate(
	table metadata.TableIdent, column metadata.ColumnIdent,
) *Reference {
	return NewReferenceFull(
		table, column, r.granularity, r.valueType, r.columnPolicy, r.indexType, r.nullable)
}

// Equal reports structural equality over all seven fields.
func (r *Reference) Equal(other *Reference) bool {
	if r == other {
		return true
	}
	if r == nil || other == nil {
		return false
	}
	return r.table.Equal(other.table) &&
		r.column.Equal(other.column) &&
		types.Equal(r.valueType, other.valueType) &&
		r.granularity == other.granularity &&
		r.columnPolicy == other.columnPolicy &&
		r.indexType == other.indexType &&
		r.nullable == other.nullable
}

// Hash returns a hash consistent with Equal: equal References hash to
// the same value. The wire encoding is canonical over all seven fields,
// so hashing it is sufficient.
func (r *Reference) Hash() uint64 {
	h := fnv.New64a()
	h.Write(encodeReferenceFields(nil, r))
	return h.Sum64()
}

// String renders the reference for plans and error messages. The column
// policy only matters for object columns and is omitted for scalar ones.
func (r *Reference) String() string {
	var sb strings.Builder
	sb.WriteString("Reference{table=")
	sb.WriteString(r.table.FQN())
	sb.WriteString(", column=")
	sb.WriteString(r.column.SQLFQN())
	fmt.Fprintf(&sb, ", granularity=%s, type=%s", r.granularity, r.valueType)
	if types.IsComposite(r.valueType) {
		fmt.Fprintf(&sb, ", column policy=%s", r.columnPolicy)
	}
	fmt.Fprintf(&sb, ", index type=%s, nullable=%t}", r.indexType, r.nullable)
	return sb.String()
}

func (r *Reference) sym() {}

// CompareByColumn is the total order over References by column ident
// alone, used for stable presentation of reference collections. It is
// unrelated to any execution ordering.
func CompareByColumn(a, b *Reference) int {
	return a.Column().Compare(b.Column())
}

// SortByColumn sorts refs in place by CompareByColumn.
func SortByColumn(refs []*Reference) {
	sort.SliceStable(refs, func(i, j int) bool {
		return CompareByColumn(refs[i], refs[j]) < 0
	})
}
