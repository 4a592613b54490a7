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

import "fmt"

// This file applies augments (applyAllAugments) with the
// augment-target-type restriction RFC 7950 Sec. 7.17 requires:
// only container/list/choice/case/input/output/notification/rpc
// (plus, since 7950, "action") may be augmented, and content augmented
// into a choice must be wrapped in case statements. The restriction is checked the same
// way augmentableKinds documents it, grounded on the
// getAugmentableNodesForModule/augmentationIsValid whitelist pattern
// in the sdcio-yang-parser reference.

// augmentable reports whether e is a legal augment target per RFC 7950
// Sec. 7.17: container, list, choice, case, input, output,
// notification, or an rpc's implicit input/output.
func augmentable(e *Entry) bool {
	switch e.Kind {
	case DirectoryEntry, ChoiceEntry, CaseEntry, InputEntry, OutputEntry, NotificationEntry:
		return true
	default:
		return e.RPC != nil
	}
}

// mergeAugmentInto applies augment node a's children onto target,
// enforcing the target-type restriction and the same Entry.merge
// machinery the teacher already uses for top-level augments, so both
// applyAllAugments below and uses.go's applyUsesAugment share one
// code path.
func mergeAugmentInto(a *Augment, target *Entry) {
	if !augmentable(target) {
		target.addError(fmt.Errorf("%s: %s is not a valid augment target (kind %s)", Source(a), target.Name, EntryKindToName[target.Kind]))
		return
	}
	// Data nodes augmented directly into a choice must be wrapped in
	// case statements; an augment of a choice that carries non-case
	// data nodes and no case is a semantic error since an implicit
	// case wrapper would be ambiguous.
	if target.Kind == ChoiceEntry && len(a.Case) == 0 {
		hasNonCase := len(a.Container) > 0 || len(a.Leaf) > 0 || len(a.LeafList) > 0 ||
			len(a.List) > 0 || len(a.Choice) > 0 || len(a.Anyxml) > 0 || len(a.Anydata) > 0
		if hasNonCase {
			target.addError(fmt.Errorf("%s: augmenting a choice requires case statements", Source(a)))
			return
		}
	}

	ae := ToEntry(a)
	ae.Name = target.Name
	target.merge(nil, ae)
}

// Augments associated with this entry are tracked on e.Augmented by
// ToEntry's reflection loop in entry.go. applyAllAugments re-resolves
// every pending augment on e against the full schema tree via Find
// and routes the merge through mergeAugmentInto so the target-type
// restriction applies uniformly to top-level augments too.
func (e *Entry) applyAllAugments(addErrors bool) (processed, skipped int) {
	var pending []*Entry
	for _, a := range e.Augmented {
		target := a.Find(a.Name)
		if target == nil {
			if addErrors {
				e.errorf("%s: augment %s not found", Source(a.Node), a.Name)
			}
			skipped++
			pending = append(pending, a)
			continue
		}
		processed++
		if aug, ok := a.Node.(*Augment); ok {
			mergeAugmentInto(aug, target)
		} else {
			target.merge(nil, a)
		}
	}
	e.Augmented = pending
	return processed, skipped
}
