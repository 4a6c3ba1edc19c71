// Copyright 2018 The Crate Authors.
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

package blob

import (
	"github.com/eagle518/crate/pkg/settings"
)

// The blob module's configuration surface. PathSetting is node-wide;
// the index.* settings are read from each index's settings snapshot.
var (
	// PathSetting is the node-wide directory blob data is stored under
	// when an index does not override it. Empty disables blob storage.
	PathSetting = settings.RegisterStringSetting(
		"blobs.path",
		"node-wide base directory for blob-enabled indices",
		"",
	)

	// IndexEnabledSetting controls whether an index stores blob columns.
	IndexEnabledSetting = settings.RegisterBoolSetting(
		"index.blobs.enabled",
		"whether the index stores blob data",
		false,
	)

	// IndexPathSetting overrides the storage directory for one index.
	IndexPathSetting = settings.RegisterStringSetting(
		"index.blobs.path",
		"per-index override for the blob storage directory",
		"",
	)
)

// Settings lists the module's settings for host registration.
func Settings() []settings.Setting {
	return []settings.Setting{PathSetting, IndexEnabledSetting, IndexPathSetting}
}
