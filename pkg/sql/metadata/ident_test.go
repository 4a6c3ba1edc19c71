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

package metadata

import (
	"testing"

	"github.com/eagle518/crate/pkg/util/encoding"
	"github.com/stretchr/testify/require"
)

func TestColumnIdentSQLFQN(t *testing.T) {
	require.Equal(t, "name", NewColumnIdent("name").SQLFQN())
	require.Equal(t, "address.zip", NewColumnIdent("address", "zip").SQLFQN())
	require.Equal(t, "a.b.c", NewColumnIdent("a", "b", "c").SQLFQN())
}

func TestColumnIdentCompare(t *testing.T) {
	testCases := []struct {
		a, b     ColumnIdent
		expected int
	}{
		{NewColumnIdent("a"), NewColumnIdent("a"), 0},
		{NewColumnIdent("a"), NewColumnIdent("b"), -1},
		{NewColumnIdent("b"), NewColumnIdent("a"), 1},
		{NewColumnIdent("a"), NewColumnIdent("a", "x"), -1},
		{NewColumnIdent("a", "x"), NewColumnIdent("a"), 1},
		{NewColumnIdent("a", "x"), NewColumnIdent("a", "x"), 0},
		{NewColumnIdent("a", "x"), NewColumnIdent("a", "y"), -1},
		{NewColumnIdent("a", "x", "1"), NewColumnIdent("a", "x"), 1},
	}
	for _, tc := range testCases {
		require.Equalf(t, tc.expected, tc.a.Compare(tc.b), "%s vs %s", tc.a, tc.b)
	}
}

func TestColumnIdentChild(t *testing.T) {
	parent := NewColumnIdent("address")
	child := parent.Child("zip")
	require.Equal(t, "address.zip", child.SQLFQN())
	require.True(t, parent.IsTopLevel())
	require.False(t, child.IsTopLevel())
	// The parent is unchanged.
	require.Equal(t, "address", parent.SQLFQN())
}

func TestColumnIdentWireRoundTrip(t *testing.T) {
	for _, c := range []ColumnIdent{
		NewColumnIdent("name"),
		NewColumnIdent("address", "zip"),
		NewColumnIdent("a", "b", "c"),
	} {
		rest, got, err := DecodeColumnIdent(EncodeColumnIdent(nil, c))
		require.NoError(t, err)
		require.True(t, c.Equal(got))
		require.Empty(t, rest)
	}
}

func TestColumnIdentTruncated(t *testing.T) {
	b := EncodeColumnIdent(nil, NewColumnIdent("address", "zip"))
	_, _, err := DecodeColumnIdent(b[:len(b)-2])
	require.Error(t, err)
	require.True(t, encoding.IsTruncated(err))
}

func TestTableIdentDefaults(t *testing.T) {
	ti := NewTableIdent("", "users")
	require.Equal(t, DefaultSchema, ti.Schema())
	require.Equal(t, "doc.users", ti.FQN())

	ti = NewTableIdent("custom", "users")
	require.Equal(t, "custom.users", ti.FQN())
}

func TestTableIdentWireRoundTrip(t *testing.T) {
	ti := NewTableIdent("custom", "users")
	rest, got, err := DecodeTableIdent(EncodeTableIdent(nil, ti))
	require.NoError(t, err)
	require.True(t, ti.Equal(got))
	require.Empty(t, rest)
}

func TestTableIdentCompare(t *testing.T) {
	require.Equal(t, 0, NewTableIdent("doc", "a").Compare(NewTableIdent("doc", "a")))
	require.Equal(t, -1, NewTableIdent("doc", "a").Compare(NewTableIdent("doc", "b")))
	require.Equal(t, 1, NewTableIdent("sys", "a").Compare(NewTableIdent("doc", "z")))
}
