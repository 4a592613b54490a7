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

// Package compiler is the single high-level entry point for compiling
// a set of YANG module files: it wraps pkg/yang.Context construction,
// search-path wiring, and Context.Compile behind one call, the same
// convenience-wrapper role the teacher split three ways across
// util.ProcessModules, pkg/util.Parse, and pkg/yangentry.Parse. Those
// three did near-identical work (yang.NewModules, Read each file,
// Process, ToEntry each module) around the teacher's ad hoc global
// state; this package does the equivalent around an explicit Context
// so a caller gets independent compiles rather than shared globals.
package compiler

import (
	"github.com/rs/zerolog"

	"github.com/schemaforge/yangc/pkg/yang"
)

// Result is everything a caller gets back from a Compile call: the
// compiled per-module Entry trees, keyed by module name, and any
// diagnostics produced along the way (empty on success).
type Result struct {
	Entries     map[string]*yang.Entry
	Diagnostics []*yang.Diagnostic
}

// Option configures a Compile call before it runs.
type Option func(*yang.Context)

// WithSearchPaths adds directories Context.Compile searches for
// imported/included modules, same semantics as yang.Modules.AddPath.
func WithSearchPaths(paths ...string) Option {
	return func(c *yang.Context) {
		c.Options.SearchPaths = append(c.Options.SearchPaths, paths...)
	}
}

// WithFeatureOverrides forces named features, keyed by the feature
// reference exactly as written in if-feature expressions, to a
// fixed tri-state value for this compile, bypassing their if-feature
// condition.
func WithFeatureOverrides(overrides map[string]yang.TriState) Option {
	return func(c *yang.Context) {
		if c.Options.FeatureOverrides == nil {
			c.Options.FeatureOverrides = map[string]yang.TriState{}
		}
		for k, v := range overrides {
			c.Options.FeatureOverrides[k] = v
		}
	}
}

// WithDeviationModules lists modules carrying deviation statements to
// apply to the target modules before compilation finishes.
func WithDeviationModules(names ...string) Option {
	return func(c *yang.Context) {
		c.Options.DeviationModules = append(c.Options.DeviationModules, names...)
	}
}

// WithPlugins activates the named extension plugins (already installed
// process-wide via yang.RegisterPlugin) for this compile's dispatch.
func WithPlugins(names ...string) Option {
	return func(c *yang.Context) {
		c.Options.Plugins = append(c.Options.Plugins, names...)
	}
}

// WithLogger attaches a logger the Context uses for optional progress
// output; the compiler itself stays silent unless this is set.
func WithLogger(l zerolog.Logger) Option {
	return func(c *yang.Context) {
		c.WithLogger(l)
	}
}

// Compile parses and fully compiles the named module files/names,
// applying every Option in order before running Context.Compile.
func Compile(names []string, opts ...Option) Result {
	c := yang.NewContext(yang.CompileOptions{})
	for _, opt := range opts {
		opt(c)
	}
	entries, diags := c.Compile(names)
	return Result{Entries: entries, Diagnostics: diags}
}

// CompileString compiles a single module given as in-memory text rather
// than a file name, convenient for tests and for hosts that already
// have module source loaded (mirrors yang.Modules.Parse).
func CompileString(source, name string, opts ...Option) Result {
	c := yang.NewContext(yang.CompileOptions{})
	for _, opt := range opts {
		opt(c)
	}
	if err := c.Modules.Parse(source, name); err != nil {
		d := []*yang.Diagnostic{{Kind: yang.KindSyntax, Message: err.Error()}}
		return Result{Diagnostics: d}
	}
	entries, diags := c.Compile(nil)
	return Result{Entries: entries, Diagnostics: diags}
}
