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
	"context"
	"path/filepath"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/eagle518/crate/pkg/settings"
	"github.com/eagle518/crate/pkg/util/log"
)

// Service owns the blob storages of all blob-enabled indices on this
// node. The host runtime starts it once and then drives it through the
// per-index lifecycle callbacks (AfterIndexCreated/BeforeIndexRemoved);
// the plugin only attaches it to indices whose settings enable blobs.
type Service struct {
	nodeSettings *settings.Values

	mu struct {
		sync.Mutex
		started bool
		indices map[string]*LocalStorage
	}
}

// NewService returns a stopped service reading node-wide configuration
// from sv.
func NewService(sv *settings.Values) *Service {
	s := &Service{nodeSettings: sv}
	s.mu.indices = make(map[string]*LocalStorage)
	return s
}

// Start makes the service ready to accept per-index callbacks.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mu.started {
		return errors.New("blob service already started")
	}
	s.mu.started = true
	log.Infof(ctx, "blob service started, base path %q", PathSetting.Get(s.nodeSettings))
	return nil
}

// Stop drops all per-index state. Stored blobs stay on disk.
func (s *Service) Stop(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mu.started = false
	s.mu.indices = make(map[string]*LocalStorage)
	log.Infof(ctx, "blob service stopped")
}

// indexDir resolves the storage directory for an index: the per-index
// override if set, otherwise a subdirectory of the node-wide path.
func (s *Service) indexDir(index string, indexSettings *settings.Values) string {
	if p := IndexPathSetting.Get(indexSettings); p != "" {
		return filepath.Join(p, index)
	}
	if p := PathSetting.Get(s.nodeSettings); p != "" {
		return filepath.Join(p, index)
	}
	return ""
}

// AfterIndexCreated is the host's per-index lifecycle callback. It is
// invoked once per blob-enabled index with that index's settings
// snapshot and creates the index's storage. State is validated before
// anything touches the file system, so a rejected callback leaves no
// directory behind.
func (s *Service) AfterIndexCreated(index string, indexSettings *settings.Values) error {
	dir := s.indexDir(index, indexSettings)
	if dir == "" {
		return errors.Newf("no blob path configured for index %q", index)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.mu.started {
		return errors.New("blob service not started")
	}
	if _, ok := s.mu.indices[index]; ok {
		return errors.Newf("blob storage for index %q already exists", index)
	}
	storage, err := NewLocalStorage(dir)
	if err != nil {
		return errors.Wrapf(err, "creating blob storage for index %q", index)
	}
	s.mu.indices[index] = storage
	log.Infof(context.Background(), "blob storage for index %q at %q", index, dir)
	return nil
}

// BeforeIndexRemoved detaches the index's storage. Blob files are left
// for the host's data cleanup to collect.
func (s *Service) BeforeIndexRemoved(index string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.mu.indices, index)
}

// IndexStorage returns the storage of a blob-enabled index.
func (s *Service) IndexStorage(index string) (*LocalStorage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	storage, ok := s.mu.indices[index]
	if !ok {
		return nil, errors.Newf("index %q has no blob storage", index)
	}
	return storage, nil
}
