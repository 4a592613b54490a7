// Copyright 2024 The schemaforge Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package yang

import (
	"fmt"
	"strings"
	"sync"
)

// This file implements extension plugin dispatch. An extension
// statement (RFC 7950 Sec. 7.19) attached to a node is opaque to the
// compiler itself; a plugin interprets it. The registry is process-wide
// (like typeDict/identities above it), matching the design note that a
// plugin installs itself once per process rather than once per
// Context, while which plugins a given Context actually dispatches to
// is controlled per-Context via CompileOptions.Plugins.

// ExtensionPlugin interprets one extension statement kind, identified
// by its prefixed keyword (e.g. "nacm:default-deny-write"). Apply is
// called once for every Entry that carries a matching extension
// statement, after grouping/augment/deviation/feature resolution so
// the plugin always sees the final compiled shape of e.
type ExtensionPlugin interface {
	// Keyword is the prefix:name this plugin handles.
	Keyword() string
	// Apply processes the extension statement ext found on e. It may
	// mutate e.Extra to record its own derived state (the compiler
	// places no constraints on what a plugin annotates), and returns
	// a KindExtension-classified error to fail the compile.
	Apply(e *Entry, ext *Statement) error
}

var (
	pluginRegistryMu sync.Mutex
	pluginRegistry   = map[string]ExtensionPlugin{}
)

// RegisterPlugin installs p process-wide under its Keyword. Re-
// registering the same keyword replaces the previous plugin; this
// mirrors the teacher's typeDict/identities pattern of a single
// long-lived dictionary rather than a stack of scopes.
func RegisterPlugin(p ExtensionPlugin) {
	pluginRegistryMu.Lock()
	defer pluginRegistryMu.Unlock()
	pluginRegistry[p.Keyword()] = p
}

func lookupPlugin(keyword string) (ExtensionPlugin, bool) {
	pluginRegistryMu.Lock()
	defer pluginRegistryMu.Unlock()
	p, ok := pluginRegistry[keyword]
	return p, ok
}

// dispatchExtensions walks every compiled Entry and, for each
// extension statement it carries, dispatches to the registered plugin
// for that keyword if the plugin is active for this Context (named in
// CompileOptions.Plugins). An extension naming a plugin that is
// registered but not activated for this Context is left untouched
// (not an error): spec.md's non-goal is evaluating extensions the
// compiler doesn't know about, not refusing to compile modules that
// use them.
func (c *Context) dispatchExtensions(entries map[string]*Entry) []error {
	active := make(map[string]bool, len(c.Options.Plugins))
	for _, name := range c.Options.Plugins {
		active[name] = true
	}
	var errs []error
	for _, e := range entries {
		errs = append(errs, dispatchExtensionsEntry(e, active)...)
	}
	return errs
}

func dispatchExtensionsEntry(e *Entry, active map[string]bool) []error {
	if e.Deleted {
		return nil
	}
	var errs []error
	for _, ext := range e.Exts {
		p, ok := lookupPlugin(ext.Keyword)
		if !ok || !(active[pluginName(ext.Keyword)] || active[ext.Keyword]) {
			continue
		}
		if err := p.Apply(e, ext); err != nil {
			errs = append(errs, fmt.Errorf("%s: extension %s: %w", e.Path(), ext.Keyword, err))
		}
	}
	for _, ch := range e.Dir {
		errs = append(errs, dispatchExtensionsEntry(ch, active)...)
	}
	return errs
}

// pluginName strips the module prefix off an extension keyword so a
// CompileOptions.Plugins entry can name either "nacm" (the module) or
// the fully prefixed keyword; dispatchExtensionsEntry activates a
// plugin when either form is listed.
func pluginName(keyword string) string {
	if i := strings.IndexByte(keyword, ':'); i >= 0 {
		return keyword[:i]
	}
	return keyword
}
