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
	"math/rand"
	"strings"
	"testing"

	"github.com/eagle518/crate/pkg/sql/metadata"
	"github.com/eagle518/crate/pkg/sql/types"
	"github.com/stretchr/testify/require"
)

func testRef() *Reference {
	return NewReference(
		metadata.NewTableIdent("doc", "mytable"),
		metadata.NewColumnIdent("name"),
		metadata.GranularityDoc,
		types.String,
	)
}

func TestReferenceDefaults(t *testing.T) {
	r := testRef()
	require.Equal(t, metadata.ColumnPolicyDynamic, r.ColumnPolicy())
	require.Equal(t, metadata.IndexTypeNotAnalyzed, r.IndexType())
	require.True(t, r.Nullable())
}

func TestReferenceEqualityFieldSensitivity(t *testing.T) {
	base := NewReferenceFull(
		metadata.NewTableIdent("doc", "mytable"),
		metadata.NewColumnIdent("name"),
		metadata.GranularityDoc,
		types.String,
		metadata.ColumnPolicyDynamic,
		metadata.IndexTypeNotAnalyzed,
		true,
	)
	require.True(t, base.Equal(testRef()))
	require.Equal(t, base.Hash(), testRef().Hash())

	mutations := map[string]*Reference{
		"table": NewReferenceFull(
			metadata.NewTableIdent("doc", "other"), base.Column(), base.Granularity(),
			base.ValueType(), base.ColumnPolicy(), base.IndexType(), base.Nullable()),
		"column": NewReferenceFull(
			base.Table(), metadata.NewColumnIdent("other"), base.Granularity(),
			base.ValueType(), base.ColumnPolicy(), base.IndexType(), base.Nullable()),
		"type": NewReferenceFull(
			base.Table(), base.Column(), base.Granularity(),
			types.Long, base.ColumnPolicy(), base.IndexType(), base.Nullable()),
		"granularity": NewReferenceFull(
			base.Table(), base.Column(), metadata.GranularityShard,
			base.ValueType(), base.ColumnPolicy(), base.IndexType(), base.Nullable()),
		"columnPolicy": NewReferenceFull(
			base.Table(), base.Column(), base.Granularity(),
			base.ValueType(), metadata.ColumnPolicyStrict, base.IndexType(), base.Nullable()),
		"indexType": NewReferenceFull(
			base.Table(), base.Column(), base.Granularity(),
			base.ValueType(), base.ColumnPolicy(), metadata.IndexTypeNo, base.Nullable()),
		"nullable": NewReferenceFull(
			base.Table(), base.Column(), base.Granularity(),
			base.ValueType(), base.ColumnPolicy(), base.IndexType(), false),
	}
	for field, mutated := range mutations {
		require.Falsef(t, base.Equal(mutated), "mutating %s must break equality", field)
	}
}

func TestReferenceRelocate(t *testing.T) {
	orig := NewReferenceFull(
		metadata.NewTableIdent("doc", "mytable"),
		metadata.NewColumnIdent("name"),
		metadata.GranularityShard,
		types.Long,
		metadata.ColumnPolicyStrict,
		metadata.IndexTypeNo,
		false,
	)
	newTable := metadata.NewTableIdent("doc", "renamed")
	newColumn := metadata.NewColumnIdent("alias")
	moved := orig.Relocate(newTable, newColumn)

	expected := NewReferenceFull(
		newTable, newColumn, metadata.GranularityShard, types.Long,
		metadata.ColumnPolicyStrict, metadata.IndexTypeNo, false)
	require.True(t, moved.Equal(expected))
	// The original is untouched.
	require.Equal(t, "doc.mytable", orig.Table().FQN())
	require.Equal(t, "name", orig.Column().SQLFQN())
}

func TestReferenceStringOmitsPolicyForScalars(t *testing.T) {
	scalar := testRef()
	require.NotContains(t, scalar.String(), "column policy")
	for _, field := range []string{"table=doc.mytable", "column=name", "granularity=doc",
		"type=string", "index type=not_analyzed", "nullable=true"} {
		require.Contains(t, scalar.String(), field)
	}

	object := NewReference(
		metadata.NewTableIdent("doc", "mytable"),
		metadata.NewColumnIdent("address"),
		metadata.GranularityDoc,
		types.Object,
	)
	require.Contains(t, object.String(), "column policy=dynamic")
}

func TestSortByColumnIsInsertionOrderIndependent(t *testing.T) {
	table := metadata.NewTableIdent("doc", "mytable")
	mkRef := func(name string, path ...string) *Reference {
		return NewReference(
			table, metadata.NewColumnIdent(name, path...), metadata.GranularityDoc, types.String)
	}
	expected := []string{"a", "a.x", "a.y", "b", "c.q", "d"}
	refs := []*Reference{
		mkRef("d"), mkRef("a", "y"), mkRef("b"), mkRef("a"), mkRef("c", "q"), mkRef("a", "x"),
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		rng.Shuffle(len(refs), func(i, j int) { refs[i], refs[j] = refs[j], refs[i] })
		SortByColumn(refs)
		var got []string
		for _, r := range refs {
			got = append(got, r.Column().SQLFQN())
		}
		require.Equal(t, expected, got)
	}
}

func TestReferenceHashConsistency(t *testing.T) {
	seen := map[uint64]bool{}
	for _, name := range []string{"a", "b", "c"} {
		r := NewReference(
			metadata.NewTableIdent("doc", "mytable"),
			metadata.NewColumnIdent(name),
			metadata.GranularityDoc,
			types.String,
		)
		require.Equal(t, r.Hash(), r.Relocate(r.Table(), r.Column()).Hash())
		seen[r.Hash()] = true
	}
	// Not a strong guarantee, but these three must not all collide.
	require.True(t, len(seen) > 1)
}

func TestDynamicReference(t *testing.T) {
	d := NewDynamicReference(
		metadata.NewTableIdent("doc", "mytable"),
		metadata.NewColumnIdent("payload", "extra"),
	)
	require.Equal(t, KindDynamicReference, d.Kind())
	require.Equal(t, types.UndefinedID, d.ValueType().ID())
	require.Equal(t, metadata.GranularityDoc, d.Granularity())
	require.True(t, strings.HasPrefix(d.String(), "DynamicReference{"))
}
