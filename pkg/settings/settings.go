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

// Package settings provides the typed configuration surface consumed by
// the host runtime. Settings are defined once at init time via the
// Register* helpers; values are read from an immutable Values snapshot
// the host hands to each component.
package settings

import (
	"fmt"
	"sort"
	"strconv"
)

// registry contains all defined settings. It should never be mutated
// after init, as it is read concurrently by different callers.
var registry = map[string]Setting{}

// Setting is the common interface of all setting kinds.
type Setting interface {
	Key() string
	Description() string
	// DefaultString returns the raw (unparsed) default, for display.
	DefaultString() string
}

func register(s Setting) {
	if _, ok := registry[s.Key()]; ok {
		panic(fmt.Sprintf("setting already defined: %s", s.Key()))
	}
	registry[s.Key()] = s
}

// Keys returns a sorted list of all registered setting keys.
func Keys() []string {
	res := make([]string, 0, len(registry))
	for k := range registry {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}

// Lookup returns the setting registered under key, if any.
func Lookup(key string) (Setting, bool) {
	s, ok := registry[key]
	return s, ok
}

// Values is an immutable snapshot of raw setting values, keyed by
// setting key. A missing key reads as the setting's default. The host
// supplies one snapshot per scope (node-wide or per index).
type Values struct {
	raw map[string]string
}

// NewValues returns a snapshot over raw. The map is copied.
func NewValues(raw map[string]string) *Values {
	m := make(map[string]string, len(raw))
	for k, v := range raw {
		m[k] = v
	}
	return &Values{raw: m}
}

// EmptyValues is a snapshot where every setting reads as its default.
func EmptyValues() *Values {
	return &Values{}
}

func (v *Values) lookup(key string) (string, bool) {
	if v == nil || v.raw == nil {
		return "", false
	}
	s, ok := v.raw[key]
	return s, ok
}

// BoolSetting is a setting holding a boolean.
type BoolSetting struct {
	key  string
	desc string
	def  bool
}

// RegisterBoolSetting defines a new boolean setting.
func RegisterBoolSetting(key, desc string, def bool) *BoolSetting {
	s := &BoolSetting{key: key, desc: desc, def: def}
	register(s)
	return s
}

// Key implements Setting.
func (b *BoolSetting) Key() string { return b.key }

// Description implements Setting.
func (b *BoolSetting) Description() string { return b.desc }

// DefaultString implements Setting.
func (b *BoolSetting) DefaultString() string { return strconv.FormatBool(b.def) }

// Default returns the default value.
func (b *BoolSetting) Default() bool { return b.def }

// Get reads the setting from sv, falling back to the default for a
// missing or unparsable raw value.
func (b *BoolSetting) Get(sv *Values) bool {
	raw, ok := sv.lookup(b.key)
	if !ok {
		return b.def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return b.def
	}
	return v
}

// StringSetting is a setting holding an arbitrary string.
type StringSetting struct {
	key  string
	desc string
	def  string
}

// RegisterStringSetting defines a new string setting.
func RegisterStringSetting(key, desc, def string) *StringSetting {
	s := &StringSetting{key: key, desc: desc, def: def}
	register(s)
	return s
}

// Key implements Setting.
func (s *StringSetting) Key() string { return s.key }

// Description implements Setting.
func (s *StringSetting) Description() string { return s.desc }

// DefaultString implements Setting.
func (s *StringSetting) DefaultString() string { return s.def }

// Default returns the default value.
func (s *StringSetting) Default() string { return s.def }

// Get reads the setting from sv, falling back to the default.
func (s *StringSetting) Get(sv *Values) string {
	raw, ok := sv.lookup(s.key)
	if !ok {
		return s.def
	}
	return raw
}
