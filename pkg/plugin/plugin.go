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

// Package plugin is the collaboration surface between this module and
// the host runtime. The host's internals are opaque here: the module
// only supplies and consumes the callback contracts below, once at
// registration time and once per index.
package plugin

import (
	"net/http"

	"github.com/eagle518/crate/pkg/blob"
	"github.com/eagle518/crate/pkg/blob/transport"
	"github.com/eagle518/crate/pkg/settings"
)

// IndexEventListener receives per-index lifecycle events from the host.
type IndexEventListener interface {
	AfterIndexCreated(index string, indexSettings *settings.Values) error
	BeforeIndexRemoved(index string)
}

// IndexModule is the host-side view of one index during its setup. The
// host invokes OnIndexModule exactly once per index with this handle.
type IndexModule interface {
	Name() string
	Settings() *settings.Values
	AddIndexEventListener(IndexEventListener)
}

// TransportRegistry is the host's registry of named HTTP transports.
type TransportRegistry interface {
	RegisterHTTPTransport(name string, h http.Handler)
}

var _ IndexEventListener = (*blob.Service)(nil)

// Plugin wires the blob module into the host at startup.
type Plugin struct {
	svc *blob.Service
}

// New builds the plugin and its service from the node-wide settings
// snapshot.
func New(nodeSettings *settings.Values) *Plugin {
	return &Plugin{svc: blob.NewService(nodeSettings)}
}

// Name identifies the plugin to the host.
func (p *Plugin) Name() string { return "blob" }

// Description is shown in the host's plugin listing.
func (p *Plugin) Description() string {
	return "adds blob column storage"
}

// Settings returns the configuration keys the plugin contributes.
func (p *Plugin) Settings() []settings.Setting {
	return blob.Settings()
}

// Service returns the lifecycle component the host must start and stop
// with the node.
func (p *Plugin) Service() *blob.Service {
	return p.svc
}

// OnIndexModule is invoked by the host once per index. The blob
// listener is only attached to indices that enable blob storage.
func (p *Plugin) OnIndexModule(m IndexModule) {
	if blob.IndexEnabledSetting.Get(m.Settings()) {
		m.AddIndexEventListener(p.svc)
	}
}

// RegisterHTTPTransport binds the blob HTTP transport to the host's
// network layer under the module's transport key.
func (p *Plugin) RegisterHTTPTransport(r TransportRegistry) {
	r.RegisterHTTPTransport(transport.Name, transport.NewHandler(p.svc))
}
