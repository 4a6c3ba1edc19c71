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
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/eagle518/crate/pkg/util/encoding"
)

// The enum values carry no user data and may appear unredacted in logs.
var (
	_ redact.SafeValue = RowGranularity(0)
	_ redact.SafeValue = ColumnPolicy(0)
	_ redact.SafeValue = IndexType(0)
)

// ErrStaleWireOrdinal marks decode failures caused by an enum ordinal
// outside the known range, i.e. data written by a newer version. Such
// ordinals are a compatibility failure and are never silently defaulted.
var ErrStaleWireOrdinal = errors.New("stale wire ordinal")

// The ordinals below are part of the wire format. They are assigned
// explicitly, never derived from declaration order; a retired member's
// ordinal is retired with it and new members take fresh ordinals.

// RowGranularity describes at which level a column's value is
// determined.
type RowGranularity int

const (
	// GranularityCluster values are fixed for the whole cluster.
	GranularityCluster RowGranularity = 0
	// GranularityPartition values are fixed per partition.
	GranularityPartition RowGranularity = 1
	// GranularityNode values are fixed per node.
	GranularityNode RowGranularity = 2
	// GranularityShard values are fixed per shard.
	GranularityShard RowGranularity = 3
	// GranularityDoc values vary per row.
	GranularityDoc RowGranularity = 4
)

var granularityNames = map[RowGranularity]string{
	GranularityCluster:   "cluster",
	GranularityPartition: "partition",
	GranularityNode:      "node",
	GranularityShard:     "shard",
	GranularityDoc:       "doc",
}

func (g RowGranularity) String() string {
	if s, ok := granularityNames[g]; ok {
		return s
	}
	return "invalid"
}

// SafeValue implements redact.SafeValue.
func (g RowGranularity) SafeValue() {}

// FinerThan reports whether g is determined at a finer level than other.
func (g RowGranularity) FinerThan(other RowGranularity) bool {
	return g > other
}

// MaxGranularity returns the finer of the two granularities.
func MaxGranularity(a, b RowGranularity) RowGranularity {
	if a.FinerThan(b) {
		return a
	}
	return b
}

// RowGranularityFromWire validates a decoded ordinal.
func RowGranularityFromWire(v uint64) (RowGranularity, error) {
	g := RowGranularity(v)
	if _, ok := granularityNames[g]; !ok {
		return 0, errors.Mark(
			errors.Newf("row granularity ordinal %d out of range", v), ErrStaleWireOrdinal)
	}
	return g, nil
}

// EncodeRowGranularity appends the wire form of g.
func EncodeRowGranularity(b []byte, g RowGranularity) []byte {
	return encoding.EncodeUvarint(b, uint64(g))
}

// DecodeRowGranularity decodes a RowGranularity from the front of b.
func DecodeRowGranularity(b []byte) ([]byte, RowGranularity, error) {
	b, v, err := encoding.DecodeUvarint(b)
	if err != nil {
		return nil, 0, errors.Wrap(err, "row granularity")
	}
	g, err := RowGranularityFromWire(v)
	if err != nil {
		return nil, 0, err
	}
	return b, g, nil
}

// ColumnPolicy governs whether an object column's schema may grow
// dynamically or is fixed.
type ColumnPolicy int

const (
	// ColumnPolicyDynamic allows new child columns to appear on insert.
	ColumnPolicyDynamic ColumnPolicy = 0
	// ColumnPolicyStrict rejects values for undeclared child columns.
	ColumnPolicyStrict ColumnPolicy = 1
	// ColumnPolicyIgnored stores undeclared values without indexing them.
	ColumnPolicyIgnored ColumnPolicy = 2
)

var columnPolicyNames = map[ColumnPolicy]string{
	ColumnPolicyDynamic: "dynamic",
	ColumnPolicyStrict:  "strict",
	ColumnPolicyIgnored: "ignored",
}

func (p ColumnPolicy) String() string {
	if s, ok := columnPolicyNames[p]; ok {
		return s
	}
	return "invalid"
}

// SafeValue implements redact.SafeValue.
func (p ColumnPolicy) SafeValue() {}

// ColumnPolicyFromWire validates a decoded ordinal.
func ColumnPolicyFromWire(v uint64) (ColumnPolicy, error) {
	p := ColumnPolicy(v)
	if _, ok := columnPolicyNames[p]; !ok {
		return 0, errors.Mark(
			errors.Newf("column policy ordinal %d out of range", v), ErrStaleWireOrdinal)
	}
	return p, nil
}

// IndexType is the indexing treatment applied to a column's values.
type IndexType int

const (
	// IndexTypeAnalyzed runs values through an analyzer before indexing.
	IndexTypeAnalyzed IndexType = 0
	// IndexTypeNotAnalyzed indexes values verbatim.
	IndexTypeNotAnalyzed IndexType = 1
	// IndexTypeNo disables indexing for the column.
	IndexTypeNo IndexType = 2
)

var indexTypeNames = map[IndexType]string{
	IndexTypeAnalyzed:    "analyzed",
	IndexTypeNotAnalyzed: "not_analyzed",
	IndexTypeNo:          "no",
}

func (t IndexType) String() string {
	if s, ok := indexTypeNames[t]; ok {
		return s
	}
	return "invalid"
}

// SafeValue implements redact.SafeValue.
func (t IndexType) SafeValue() {}

// IndexTypeFromWire validates a decoded ordinal.
func IndexTypeFromWire(v uint64) (IndexType, error) {
	t := IndexType(v)
	if _, ok := indexTypeNames[t]; !ok {
		return 0, errors.Mark(
			errors.Newf("index type ordinal %d out of range", v), ErrStaleWireOrdinal)
	}
	return t, nil
}
