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
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/eagle518/crate/pkg/util/encoding"
)

// DefaultSchema is the schema tables belong to when none is given.
const DefaultSchema = "doc"

// TableIdent is the qualified name of a table.
type TableIdent struct {
	schema string
	name   string
}

// NewTableIdent returns the ident for schema.name. An empty schema maps
// to DefaultSchema.
func NewTableIdent(schema, name string) TableIdent {
	if schema == "" {
		schema = DefaultSchema
	}
	return TableIdent{schema: schema, name: name}
}

// Schema returns the schema (namespace) part.
func (t TableIdent) Schema() string { return t.schema }

// Name returns the table name.
func (t TableIdent) Name() string { return t.name }

// FQN returns the fully qualified "schema.name" form.
func (t TableIdent) FQN() string { return t.schema + "." + t.name }

func (t TableIdent) String() string { return t.FQN() }

// Compare orders idents by schema, then name.
func (t TableIdent) Compare(other TableIdent) int {
	if cmp := strings.Compare(t.schema, other.schema); cmp != 0 {
		return cmp
	}
	return strings.Compare(t.name, other.name)
}

// Equal reports structural equality.
func (t TableIdent) Equal(other TableIdent) bool {
	return t == other
}

// EncodeTableIdent appends the wire form of t: schema, then name.
func EncodeTableIdent(b []byte, t TableIdent) []byte {
	b = encoding.EncodeString(b, t.schema)
	return encoding.EncodeString(b, t.name)
}

// DecodeTableIdent decodes a TableIdent from the front of b.
func DecodeTableIdent(b []byte) ([]byte, TableIdent, error) {
	b, schema, err := encoding.DecodeString(b)
	if err != nil {
		return nil, TableIdent{}, errors.Wrap(err, "table schema")
	}
	b, name, err := encoding.DecodeString(b)
	if err != nil {
		return nil, TableIdent{}, errors.Wrap(err, "table name")
	}
	return b, TableIdent{schema: schema, name: name}, nil
}
