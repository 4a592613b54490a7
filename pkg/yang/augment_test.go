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

import "testing"

const augmentTestModule = `
module augment-test {
  namespace "urn:augment-test";
  prefix "at";

  container top {
    choice mode {
      case a {
        leaf x { type string; }
      }
    }
  }

  augment "/top" {
    leaf y { type string; }
  }

  augment "/top/mode" {
    case b {
      leaf z { type string; }
    }
  }
}
`

func TestApplyAllAugments(t *testing.T) {
	ms := NewModules()
	if err := ms.Parse(augmentTestModule, "augment-test"); err != nil {
		t.Fatalf("could not parse module: %v", err)
	}
	if errs := ms.Process(); len(errs) > 0 {
		t.Fatalf("could not process modules: %v", errs)
	}
	mod, err := ms.GetModule("augment-test")
	if err != nil {
		t.Fatalf("could not find module: %v", err)
	}

	e := ToEntry(mod)
	if errs := e.GetErrors(); len(errs) > 0 {
		t.Fatalf("ToEntry: unexpected errors: %v", errs)
	}

	top := e.Dir["top"]
	if top == nil {
		t.Fatalf("missing top container")
	}
	if top.Dir["y"] == nil {
		t.Errorf("top-level augment of /top did not add leaf y")
	}
	mode := top.Dir["mode"]
	if mode == nil {
		t.Fatalf("missing choice mode")
	}
	if mode.Dir["b"] == nil {
		t.Errorf("augment of /top/mode did not add case b")
	}
}

func TestAugmentableRejectsLeaf(t *testing.T) {
	leaf := &Entry{Name: "leaf", Kind: LeafEntry, Extra: map[string][]interface{}{}}
	if augmentable(leaf) {
		t.Errorf("augmentable(leaf) = true, want false")
	}
	cont := &Entry{Name: "c", Kind: DirectoryEntry, Extra: map[string][]interface{}{}}
	if !augmentable(cont) {
		t.Errorf("augmentable(container) = false, want true")
	}
}
