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

// Package transport serves blob payloads over HTTP. The handler is
// registered with the host's network layer under the Name key.
package transport

import (
	"io"
	"net/http"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/mux"

	"github.com/eagle518/crate/pkg/blob"
	"github.com/eagle518/crate/pkg/util/log"
)

// Name is the key the handler is registered under with the host.
const Name = "crate"

// Handler routes /_blobs/{index}/{digest} to the blob service.
type Handler struct {
	svc    *blob.Service
	router *mux.Router
}

// NewHandler returns the HTTP handler for svc.
func NewHandler(svc *blob.Service) *Handler {
	h := &Handler{svc: svc, router: mux.NewRouter()}
	const path = "/_blobs/{index}/{digest}"
	h.router.HandleFunc(path, h.put).Methods(http.MethodPut)
	h.router.HandleFunc(path, h.get).Methods(http.MethodGet)
	h.router.HandleFunc(path, h.head).Methods(http.MethodHead)
	h.router.HandleFunc(path, h.delete).Methods(http.MethodDelete)
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) storage(w http.ResponseWriter, r *http.Request) (*blob.LocalStorage, string, bool) {
	vars := mux.Vars(r)
	storage, err := h.svc.IndexStorage(vars["index"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return nil, "", false
	}
	return storage, vars["digest"], true
}

func (h *Handler) put(w http.ResponseWriter, r *http.Request) {
	storage, digest, ok := h.storage(w, r)
	if !ok {
		return
	}
	switch err := storage.Put(digest, r.Body); {
	case err == nil:
		w.WriteHeader(http.StatusCreated)
	case errors.Is(err, blob.ErrInvalidDigest):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, blob.ErrDigestMismatch):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		log.Errorf(r.Context(), "blob put %s failed: %v", digest, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	storage, digest, ok := h.storage(w, r)
	if !ok {
		return
	}
	rc, err := storage.Open(digest)
	if err != nil {
		h.readError(w, r, digest, err)
		return
	}
	defer rc.Close()
	if _, err := io.Copy(w, rc); err != nil {
		// The response is already underway; all we can do is log.
		log.Errorf(r.Context(), "blob get %s aborted: %v", digest, err)
	}
}

func (h *Handler) head(w http.ResponseWriter, r *http.Request) {
	storage, digest, ok := h.storage(w, r)
	if !ok {
		return
	}
	size, err := storage.Stat(digest)
	if err != nil {
		h.readError(w, r, digest, err)
		return
	}
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	storage, digest, ok := h.storage(w, r)
	if !ok {
		return
	}
	if err := storage.Delete(digest); err != nil {
		h.readError(w, r, digest, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) readError(w http.ResponseWriter, r *http.Request, digest string, err error) {
	if errors.Is(err, blob.ErrInvalidDigest) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if errors.Is(err, blob.ErrBlobNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	log.Errorf(r.Context(), "blob access %s failed: %v", digest, err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
