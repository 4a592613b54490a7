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
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// A Context is one independent compilation: a module set, the feature
// and deviation overrides a caller wants applied to it, and the
// diagnostics accumulated while compiling it. Each Context gets its own
// Modules set, but, like the rest of this package, shares the
// process-wide type/identity dictionaries, extension registry, and
// (per file.go's own long-standing TODO) the package-global Path used
// to search for imported/included modules.
//
// The zero Context is not usable; create one with NewContext.
type Context struct {
	// ID distinguishes Contexts in logs when a host runs several
	// compiles concurrently.
	ID uuid.UUID

	Modules *Modules

	// Options controls feature overrides, deviation modules, and
	// plugin registrations for this Context. See CompileOptions.
	Options CompileOptions

	// Log is used for optional progress output. It is the zero
	// zerolog.Logger (a no-op) unless the caller sets one via
	// WithLogger.
	Log zerolog.Logger

	mu          sync.Mutex
	diagnostics []*Diagnostic

	// xpath is the compiler must/when expressions are handed to.
	// Access it through XPath(), which lazily installs the default.
	xpath XPathCompiler
}

// CompileOptions configures a single compile: which features are force
// enabled/disabled, which modules carry deviations to apply, and which
// extension plugins are registered for this Context's dispatch.
type CompileOptions struct {
	// SearchPaths are directories searched for imported/included
	// modules, applied via the package-level AddPath (file.go). Like
	// AddPath itself, these land in the process-wide Path/pathMap
	// rather than per-Context state; file.go's own TODO already
	// flags this as a pre-existing limitation of findFile, not
	// something this Context layer changes.
	SearchPaths []string

	// FeatureOverrides forces named features to a fixed tri-state
	// value, bypassing their if-feature expression. Keys are the
	// feature references exactly as written in if-feature expressions
	// (a bare name, or prefix:name where the expression uses a prefix).
	// An empty map means every feature resolves from its own
	// if-feature condition (see feature.go).
	FeatureOverrides map[string]TriState

	// DeviationModules lists modules that should be parsed and whose
	// top-level "deviation" statements should be applied to the
	// target modules before compilation finishes (see deviate.go).
	DeviationModules []string

	// Plugins lists the extension plugins this Context should
	// dispatch to during C8. Plugins are also registered process-wide
	// via RegisterPlugin; listing one here additionally activates it
	// for this Context (see plugin.go).
	Plugins []string
}

// NewContext creates an independent compilation context. Each call gets
// its own Modules set and its own ID; the process-wide type, identity,
// and plugin dictionaries are shared, exactly as entry.go/types.go/
// identity.go already intern those across the package.
func NewContext(opts CompileOptions) *Context {
	return &Context{
		ID:      uuid.New(),
		Modules: NewModules(),
		Options: opts,
	}
}

// WithLogger attaches a logger a host can use to observe compile
// progress (module loaded, pass started, pass finished). The compiler
// itself never logs; callers that want visibility wire this in.
func (c *Context) WithLogger(l zerolog.Logger) *Context {
	c.Log = l.With().Str("context", c.ID.String()).Logger()
	return c
}

// AddDiagnostic records a Diagnostic produced while compiling this
// Context. Safe for concurrent use in case a host parallelizes reads of
// independent module sets across Contexts (each Context serializes its
// own compile internally, per the single-threaded-per-compile model).
func (c *Context) AddDiagnostic(d *Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diagnostics = append(c.diagnostics, d)
}

// Diagnostics returns every Diagnostic recorded so far, in the order
// they were added.
func (c *Context) Diagnostics() []*Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Diagnostic, len(c.diagnostics))
	copy(out, c.diagnostics)
	return out
}

// Compile parses and fully compiles the named modules/files: read,
// two-phase process (types/identities), grouping/uses expansion,
// augment application, deviation application, feature evaluation,
// extension dispatch, and the final validation pass. It returns the
// compiled top-level Entry for each requested module, or the
// diagnostics produced along the way.
//
// Compilation is all-or-nothing: every requested module is read first,
// and any failure in any stage returns a nil map together with the
// diagnostics. No partial result is returned; modules that would have
// compiled cleanly are not made available when another module fails.
func (c *Context) Compile(names []string) (map[string]*Entry, []*Diagnostic) {
	for _, p := range c.Options.SearchPaths {
		AddPath(p + "/...")
	}

	for _, name := range names {
		if err := c.Modules.Read(name); err != nil {
			c.AddDiagnostic(newDiagnostic(KindSyntax, err.Error()))
		}
	}
	if len(c.diagnostics) > 0 {
		return nil, c.Diagnostics()
	}

	for _, name := range c.Options.DeviationModules {
		if err := c.Modules.Read(name); err != nil {
			c.AddDiagnostic(newDiagnostic(KindNotFound, err.Error()))
		}
	}
	if len(c.diagnostics) > 0 {
		return nil, c.Diagnostics()
	}

	// Process runs C2-C6: include/import resolution, type and identity
	// resolution, grouping expansion, augment application, and
	// (since every deviation module requested above has now been
	// read in) deviation application.
	if errs := c.Modules.Process(); len(errs) > 0 {
		for _, err := range errs {
			c.AddDiagnostic(diagnosticFromError(err))
		}
		return nil, c.Diagnostics()
	}

	entries := make(map[string]*Entry, len(c.Modules.Modules))
	for _, m := range c.Modules.Modules {
		e := ToEntry(m)
		entries[e.Name] = e
	}

	if errs := c.evaluateFeatures(entries); len(errs) > 0 {
		for _, err := range errs {
			c.AddDiagnostic(diagnosticFromError(err))
		}
		return nil, c.Diagnostics()
	}

	if errs := c.dispatchExtensions(entries); len(errs) > 0 {
		for _, err := range errs {
			c.AddDiagnostic(diagnosticFromError(err))
		}
		return nil, c.Diagnostics()
	}

	if errs := c.Validate(entries); len(errs) > 0 {
		for _, err := range errs {
			c.AddDiagnostic(diagnosticFromError(err))
		}
		return nil, c.Diagnostics()
	}

	return entries, nil
}
