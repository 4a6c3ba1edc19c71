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

// Package metadata holds the identifiers and enumerated column
// attributes shared between analysis, planning and the wire codec.
// All values in this package are immutable once constructed and safe
// for unsynchronized concurrent reads.
package metadata

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/eagle518/crate/pkg/util/encoding"
)

// ColumnIdent names a column as a dotted path: a top-level name plus the
// path segments leading into nested object columns.
type ColumnIdent struct {
	name string
	path []string
}

// NewColumnIdent returns the ident for the given top-level name and
// optional nested path segments.
func NewColumnIdent(name string, path ...string) ColumnIdent {
	if len(path) == 0 {
		return ColumnIdent{name: name}
	}
	p := make([]string, len(path))
	copy(p, path)
	return ColumnIdent{name: name, path: p}
}

// Name returns the top-level column name.
func (c ColumnIdent) Name() string { return c.name }

// Path returns the nested path segments below the top-level name. The
// returned slice must not be modified.
func (c ColumnIdent) Path() []string { return c.path }

// IsTopLevel reports whether the ident names a top-level column rather
// than a child of an object column.
func (c ColumnIdent) IsTopLevel() bool { return len(c.path) == 0 }

// Child returns the ident for a child column below c.
func (c ColumnIdent) Child(segment string) ColumnIdent {
	p := make([]string, 0, len(c.path)+1)
	p = append(p, c.path...)
	p = append(p, segment)
	return ColumnIdent{name: c.name, path: p}
}

// SQLFQN returns the dotted form of the ident, e.g. "address.zip".
func (c ColumnIdent) SQLFQN() string {
	if len(c.path) == 0 {
		return c.name
	}
	return c.name + "." + strings.Join(c.path, ".")
}

func (c ColumnIdent) String() string { return c.SQLFQN() }

// Compare orders idents lexicographically over the full segment
// sequence, a shorter prefix ordering before its extensions.
func (c ColumnIdent) Compare(other ColumnIdent) int {
	if cmp := strings.Compare(c.name, other.name); cmp != 0 {
		return cmp
	}
	for i := 0; i < len(c.path) && i < len(other.path); i++ {
		if cmp := strings.Compare(c.path[i], other.path[i]); cmp != 0 {
			return cmp
		}
	}
	switch {
	case len(c.path) < len(other.path):
		return -1
	case len(c.path) > len(other.path):
		return 1
	default:
		return 0
	}
}

// Equal reports structural equality.
func (c ColumnIdent) Equal(other ColumnIdent) bool {
	return c.Compare(other) == 0
}

// EncodeColumnIdent appends the wire form of c: the name, then the path
// as a counted string slice.
func EncodeColumnIdent(b []byte, c ColumnIdent) []byte {
	b = encoding.EncodeString(b, c.name)
	return encoding.EncodeStrings(b, c.path)
}

// DecodeColumnIdent decodes a ColumnIdent from the front of b.
func DecodeColumnIdent(b []byte) ([]byte, ColumnIdent, error) {
	b, name, err := encoding.DecodeString(b)
	if err != nil {
		return nil, ColumnIdent{}, errors.Wrap(err, "column name")
	}
	b, path, err := encoding.DecodeStrings(b)
	if err != nil {
		return nil, ColumnIdent{}, errors.Wrap(err, "column path")
	}
	return b, ColumnIdent{name: name, path: path}, nil
}
