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

// Package blob stores the payloads of blob columns outside the row
// store, addressed by content digest, and exposes the lifecycle hooks
// the host runtime drives per index.
package blob

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrDigestMismatch marks writes whose content does not hash to the
// digest it was addressed with.
var ErrDigestMismatch = errors.New("blob digest mismatch")

// ErrBlobNotFound marks reads of a digest that is not stored.
var ErrBlobNotFound = errors.New("blob not found")

// ErrInvalidDigest marks operations addressed with something other than
// a lower-case hex SHA-256 digest.
var ErrInvalidDigest = errors.New("invalid blob digest")

// LocalStorage wraps all operations against the local file system that
// one blob-enabled index performs. Blobs are stored content-addressed
// under root/<first two digest chars>/<digest>.
type LocalStorage struct {
	rootDir string
}

// NewLocalStorage creates the storage rooted at rootDir, creating the
// directory if needed. An empty rootDir disables blob storage; a nil
// *LocalStorage is returned and every operation on it fails cleanly.
func NewLocalStorage(rootDir string) (*LocalStorage, error) {
	if rootDir == "" {
		return nil, nil
	}
	absPath, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, errors.Wrap(err, "creating blob storage")
	}
	if err := os.MkdirAll(absPath, 0755); err != nil {
		return nil, errors.Wrapf(err, "creating blob directory %q", absPath)
	}
	return &LocalStorage{rootDir: absPath}, nil
}

// validDigest reports whether d is a lower-case hex SHA-256 digest.
// Restricting names to digests also rules out path traversal.
func validDigest(d string) bool {
	if len(d) != sha256.Size*2 {
		return false
	}
	for i := 0; i < len(d); i++ {
		c := d[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func (l *LocalStorage) blobPath(digest string) (string, error) {
	if l == nil {
		return "", errors.Errorf("blob storage is disabled")
	}
	if !validDigest(digest) {
		return "", errors.Mark(errors.Newf("invalid blob digest %q", digest), ErrInvalidDigest)
	}
	return filepath.Join(l.rootDir, digest[:2], digest), nil
}

// Put stores the content read from r under digest. The content is
// hashed while spooling to a temporary file in the target directory and
// only renamed into place once the digest is verified, so a partial or
// corrupt upload is never visible under its final name.
func (l *LocalStorage) Put(digest string, r io.Reader) (err error) {
	fullPath, err := l.blobPath(digest)
	if err != nil {
		return err
	}
	targetDir := filepath.Dir(fullPath)
	if err = os.MkdirAll(targetDir, 0755); err != nil {
		return errors.Wrapf(err, "creating blob directory %q", targetDir)
	}

	tmpFile, err := os.CreateTemp(targetDir, filepath.Base(fullPath)+"*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temporary blob file")
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmpFile.Name())
		}
	}()

	hasher := sha256.New()
	if _, err = io.Copy(io.MultiWriter(tmpFile, hasher), r); err != nil {
		tmpFile.Close()
		return errors.Wrap(err, "writing blob content")
	}
	if err = tmpFile.Close(); err != nil {
		return errors.Wrap(err, "closing temporary blob file")
	}
	if actual := hex.EncodeToString(hasher.Sum(nil)); actual != digest {
		return errors.Mark(
			errors.Newf("expected digest %s, got %s", digest, actual), ErrDigestMismatch)
	}
	return errors.Wrap(os.Rename(tmpFile.Name(), fullPath), "renaming blob file")
}

// Open returns a reader over the stored blob.
func (l *LocalStorage) Open(digest string) (io.ReadCloser, error) {
	fullPath, err := l.blobPath(digest)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(fullPath)
	if os.IsNotExist(err) {
		return nil, errors.Mark(errors.Newf("blob %s not found", digest), ErrBlobNotFound)
	}
	return f, errors.Wrap(err, "opening blob")
}

// Stat returns the stored blob's size in bytes.
func (l *LocalStorage) Stat(digest string) (int64, error) {
	fullPath, err := l.blobPath(digest)
	if err != nil {
		return 0, err
	}
	fi, err := os.Stat(fullPath)
	if os.IsNotExist(err) {
		return 0, errors.Mark(errors.Newf("blob %s not found", digest), ErrBlobNotFound)
	}
	if err != nil {
		return 0, errors.Wrap(err, "statting blob")
	}
	return fi.Size(), nil
}

// Delete removes the stored blob.
func (l *LocalStorage) Delete(digest string) error {
	fullPath, err := l.blobPath(digest)
	if err != nil {
		return err
	}
	err = os.Remove(fullPath)
	if os.IsNotExist(err) {
		return errors.Mark(errors.Newf("blob %s not found", digest), ErrBlobNotFound)
	}
	return errors.Wrap(err, "deleting blob")
}

// List returns the digests of all stored blobs, sorted.
func (l *LocalStorage) List() ([]string, error) {
	if l == nil {
		return nil, errors.Errorf("blob storage is disabled")
	}
	var digests []string
	err := filepath.WalkDir(l.rootDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasSuffix(path, ".tmp") {
			return nil
		}
		if name := filepath.Base(path); validDigest(name) {
			digests = append(digests, name)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "listing blobs")
	}
	sort.Strings(digests)
	return digests, nil
}
