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
)

// This file implements the final validation pass (C9) run once grouping
// expansion, augment/deviation application, and feature evaluation have
// all settled: leafref target resolution, unique-tag resolution,
// key/config consistency, status monotonicity (RFC 7950 Sec. 7.21.2),
// and handing must/when expression text to the Context's XPathCompiler.
// Grounded on the sdcio-yang-parser reference-status assertion
// (assertReferenceStatus walks a resolved reference and compares its
// status against the referencing node's) and on find.go's existing
// Entry.Find for path-relative lookups.

// Validate runs every C9 check over entries, the already-compiled,
// augmented, deviated, and feature-trimmed module set. It returns every
// error found rather than stopping at the first, consistent with the
// accumulate-then-report style the rest of the package uses.
func (c *Context) Validate(entries map[string]*Entry) []error {
	var errs []error
	for _, e := range entries {
		errs = append(errs, c.validateEntry(e, e)...)
	}
	return errs
}

// validateEntry checks e (part of module root's tree) and recurses into
// e.Dir. root is passed through for leafref/unique resolution that must
// search from the top of the tree for an absolute path.
func (c *Context) validateEntry(root, e *Entry) []error {
	if e.Deleted {
		return nil
	}
	var errs []error

	if err := validateStatus(e); err != nil {
		errs = append(errs, err)
	}
	if err := c.validateLeafref(root, e); err != nil {
		errs = append(errs, err)
	}
	errs = append(errs, c.validateUnique(root, e)...)
	if err := validateConfigConsistency(e); err != nil {
		errs = append(errs, err)
	}
	errs = append(errs, c.validateConstraints(e)...)

	for _, ch := range e.Dir {
		errs = append(errs, c.validateEntry(root, ch)...)
	}
	return errs
}

// validateStatus enforces RFC 7950 Sec. 7.21.2: a "current" node may not
// be contained by a "deprecated" or "obsolete" one, and a "deprecated"
// node may not be contained by an "obsolete" one - status may only get
// stricter as you descend, never looser.
func validateStatus(e *Entry) error {
	if e.Parent == nil || e.Status == "" || e.Parent.Status == "" {
		return nil
	}
	rank := map[string]int{"current": 0, "deprecated": 1, "obsolete": 2}
	child, ok1 := rank[e.Status]
	parent, ok2 := rank[e.Parent.Status]
	if !ok1 || !ok2 {
		return nil
	}
	if child < parent {
		return fmt.Errorf("%s: status %q is less restrictive than parent %s's status %q",
			e.Path(), e.Status, e.Parent.Path(), e.Parent.Status)
	}
	return nil
}

// validateLeafref resolves a leafref's path argument to its target Entry
// and checks that the target carries a type (a leaf or leaf-list). The
// target's type is not compared with anything; a target of any type is
// accepted.
func (c *Context) validateLeafref(root, e *Entry) error {
	if e.Type == nil || e.Type.Kind != Yleafref || e.Type.Path == "" {
		return nil
	}
	p, err := CompileDataPath(e.Type.Path)
	if err != nil {
		return fmt.Errorf("%s: leafref path %q: %v", e.Path(), e.Type.Path, err)
	}
	target, err := resolvePathEntry(root, e, p)
	if err != nil {
		return fmt.Errorf("%s: leafref %q: %v", e.Path(), e.Type.Path, err)
	}
	if target.Type == nil {
		return fmt.Errorf("%s: leafref %q resolves to %s, which is not a leaf", e.Path(), e.Type.Path, target.Path())
	}
	return nil
}

// resolvePathEntry walks a compiled Path from context relative to e
// (current()-relative and ".."-relative) or from root (absolute),
// returning the Entry the path designates.
func resolvePathEntry(root, e *Entry, p *Path) (*Entry, error) {
	cur := e
	if p.Absolute {
		cur = root
		for cur.Parent != nil {
			cur = cur.Parent
		}
	}
	for _, step := range p.Steps {
		switch {
		case step.Current:
			cur = e
		case step.Up:
			if cur.Parent == nil {
				return nil, fmt.Errorf("'..' above the root of the tree")
			}
			cur = cur.Parent
		default:
			next, ok := cur.Dir[step.Name]
			if !ok {
				return nil, fmt.Errorf("no such node %q under %s", step.Name, cur.Path())
			}
			cur = next
		}
	}
	return cur, nil
}

// validateUnique resolves each space-separated schema node-id in a
// list's "unique" argument to a descendant leaf, erroring if any
// component does not resolve. Deviate-added/replaced unique arguments
// land in e.Extra["unique"] (see deviate.go), same as ones read
// directly off the list statement by entry.go's field loop.
func (c *Context) validateUnique(root, e *Entry) []error {
	vals, ok := e.Extra["unique"]
	if !ok || e.ListAttr == nil {
		return nil
	}
	var errs []error
	for _, iv := range vals {
		v, ok := iv.(*Value)
		if !ok || v == nil {
			continue
		}
		for _, arg := range strings.Fields(v.Name) {
			p, err := CompileSchemaPath(arg)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: unique %q: %v", e.Path(), v.Name, err))
				continue
			}
			if _, err := resolvePathEntry(root, e, p); err != nil {
				errs = append(errs, fmt.Errorf("%s: unique %q: %v", e.Path(), arg, err))
			}
		}
	}
	return errs
}

// validateConfigConsistency enforces that a config-true node cannot be a
// descendant of a config-false node (RFC 7950 Sec. 7.21.1), and that a
// list's key leafs cannot individually be config-false while the list
// itself is config-true.
func validateConfigConsistency(e *Entry) error {
	if e.Parent == nil {
		return nil
	}
	if e.Parent.Config == TSFalse && e.Config == TSTrue {
		return fmt.Errorf("%s: config true is not valid under config false parent %s", e.Path(), e.Parent.Path())
	}
	if e.Key != "" && !e.ReadOnly() {
		for _, name := range strings.Fields(e.Key) {
			k, ok := e.Dir[name]
			if !ok {
				continue
			}
			if k.Config == TSFalse {
				return fmt.Errorf("%s: key leaf %q cannot be config false in a config true list", e.Path(), name)
			}
		}
	}
	return nil
}

// validateConstraints compiles must/when expression text through the
// Context's XPathCompiler, surfacing a syntactic failure (e.g. an empty
// expression left by a malformed deviate) as a validation error. It
// never evaluates the expression; see xpath.go.
func (c *Context) validateConstraints(e *Entry) []error {
	var errs []error
	for _, expr := range mustOf(e.Node) {
		if _, err := c.XPath().Compile(expr, e.Node); err != nil {
			errs = append(errs, fmt.Errorf("%s: must: %v", e.Path(), err))
		}
	}
	if w := whenOf(e.Node); w != "" {
		if _, err := c.XPath().Compile(w, e.Node); err != nil {
			errs = append(errs, fmt.Errorf("%s: when: %v", e.Path(), err))
		}
	}
	return errs
}

// mustOf returns the must expression text declared directly on n.
func mustOf(n Node) []string {
	var musts []*Must
	switch s := n.(type) {
	case *Leaf:
		musts = s.Must
	case *LeafList:
		musts = s.Must
	case *Container:
		musts = s.Must
	case *List:
		musts = s.Must
	case *AnyXML:
		musts = s.Must
	case *AnyData:
		musts = s.Must
	default:
		return nil
	}
	out := make([]string, 0, len(musts))
	for _, m := range musts {
		out = append(out, m.Name)
	}
	return out
}

// whenOf returns the when expression text declared directly on n, if any.
func whenOf(n Node) string {
	var w *Value
	switch s := n.(type) {
	case *Leaf:
		w = s.When
	case *LeafList:
		w = s.When
	case *Container:
		w = s.When
	case *List:
		w = s.When
	case *AnyXML:
		w = s.When
	case *AnyData:
		w = s.When
	case *Choice:
		w = s.When
	case *Case:
		w = s.When
	case *Uses:
		w = s.When
	case *Augment:
		w = s.When
	default:
		return ""
	}
	if w == nil {
		return ""
	}
	return w.Name
}
