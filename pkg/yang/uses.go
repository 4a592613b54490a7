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

// This file completes grouping expansion (RFC 7950 Sec. 7.13): the
// teacher (entry.go's "case *Uses") clones the grouping's compiled
// Entry but never applies refine, never inherits if-feature/when/
// status down onto the clone, and never applies a uses-local augment.
// expandUses does all three, following the same overlay-then-augment
// order a real compiler uses (grounded on the grouping/uses/augment
// handling in the sdcio-yang-parser reference: refine first, then
// nested augments, then common-property inheritance).

// expandUses finishes converting a grouping reference into its final
// compiled shape: e is the duplicated grouping Entry ToEntry just
// produced for the *Uses node s.
func expandUses(s *Uses, e *Entry) {
	e.Name = s.Name
	e.Node = s

	for _, r := range s.Refine {
		applyRefine(r, e)
	}

	for _, a := range s.Augment {
		applyUsesAugment(a, e)
	}

	inheritUsesProperties(s, e)
}

// inheritUsesProperties propagates the uses statement's own if-feature,
// when, and status onto every direct child of the expansion, the way
// RFC 7950 Sec. 7.13 describes ("the properties...apply to all nodes
// in the grouping"). This is an explicit walk, not implicit lookup at
// read time: the grouping's compiled form is mutated once, here.
func inheritUsesProperties(s *Uses, e *Entry) {
	if len(s.IfFeature) == 0 && s.When == nil && s.Status == nil {
		return
	}
	for _, ch := range e.Dir {
		if s.Status != nil && ch.Status == "" {
			ch.Status = s.Status.Name
		}
		// if-feature/when conditions accumulate in Extra. feature.go
		// evaluates the inherited if-feature conditions together with
		// the node's own; the must/when hand-off in validate.go
		// compiles only the when declared on the node itself. A
		// child keeps any if-feature/when of its own in addition to
		// what it inherits from the enclosing uses.
		if len(s.IfFeature) > 0 {
			for _, f := range s.IfFeature {
				ch.Extra["if-feature"] = append(ch.Extra["if-feature"], f)
			}
		}
		if s.When != nil {
			ch.Extra["when"] = append(ch.Extra["when"], s.When)
		}
	}
}

// applyRefine overlays a refine statement's properties onto the
// descendant of e identified by r's schema node-id (RFC 7950
// Sec. 7.13.2). A presence refine on a non-container and a
// max/min-elements refine on a target without list attributes are
// reported as errors; the other properties are applied without
// checking the target's kind, and a presence refine on a container
// changes nothing.
func applyRefine(r *Refine, e *Entry) {
	target := findUsesDescendant(e, r.Name)
	if target == nil {
		e.addError(fmt.Errorf("%s: refine target not found: %s", Source(r), r.Name))
		return
	}
	if r.Description != nil {
		target.Description = r.Description.Name
	}
	if r.Reference != nil {
		target.Extra["reference"] = append(target.Extra["reference"], r.Reference)
	}
	if r.Default != nil {
		target.Default = r.Default.Name
	}
	if r.Config != nil {
		if v, err := triStateOf(r.Config); err == nil {
			target.Config = v
		} else {
			e.addError(err)
		}
	}
	if r.Mandatory != nil {
		if v, err := triStateOf(r.Mandatory); err == nil {
			target.Mandatory = v
		} else {
			e.addError(err)
		}
	}
	if r.Presence != nil && target.Kind != DirectoryEntry {
		e.addError(fmt.Errorf("%s: presence refine only valid on a container: %s", Source(r), r.Name))
	}
	if len(r.Must) > 0 {
		for _, m := range r.Must {
			target.Extra["must"] = append(target.Extra["must"], m)
		}
	}
	if r.MaxElements != nil || r.MinElements != nil {
		if target.ListAttr == nil {
			e.addError(fmt.Errorf("%s: max/min-elements refine only valid on a list or leaf-list: %s", Source(r), r.Name))
		} else {
			if r.MaxElements != nil {
				target.ListAttr.MaxElements = r.MaxElements
			}
			if r.MinElements != nil {
				target.ListAttr.MinElements = r.MinElements
			}
		}
	}
}

// applyUsesAugment applies an augment nested inside a uses statement:
// unlike a top-level augment (augment.go), its target path is resolved
// relative to e, the just-expanded grouping, rather than relative to
// the whole schema tree.
func applyUsesAugment(a *Augment, e *Entry) {
	target := findUsesDescendant(e, a.Name)
	if target == nil {
		e.addError(fmt.Errorf("%s: uses-augment target not found: %s", Source(a), a.Name))
		return
	}
	mergeAugmentInto(a, target)
}

// findUsesDescendant walks a slash-separated relative schema node-id
// (refine/augment targets inside a uses are always relative, RFC 7950
// Sec. 7.13.2/7.13.3) from e down through Dir, skipping over the
// invisible case wrapper the way Entry.Find already does for absolute
// paths (see entry.go's Find).
func findUsesDescendant(e *Entry, path string) *Entry {
	cur := e
	for _, part := range strings.Split(path, "/") {
		if part == "" {
			continue
		}
		if i := strings.IndexByte(part, ':'); i >= 0 {
			part = part[i+1:]
		}
		if cur == nil {
			return nil
		}
		next := cur.Dir[part]
		if next == nil {
			// Look one level through case/choice wrappers implicitly
			// inserted for an unresolved choice (FixChoice runs after
			// this, so during grouping expansion choices may still be
			// missing their synthetic case).
			for _, ch := range cur.Dir {
				if ch.Kind == CaseEntry || ch.Kind == ChoiceEntry {
					if found := ch.Dir[part]; found != nil {
						next = found
						break
					}
				}
			}
		}
		cur = next
	}
	return cur
}
