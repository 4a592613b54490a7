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

const usesTestModule = `
module uses-test {
  namespace "urn:uses-test";
  prefix "ut";

  grouping g {
    leaf name {
      type string;
      mandatory false;
    }
    container inner {
      leaf depth {
        type uint8;
      }
    }
  }

  container top {
    uses g {
      refine "name" {
        mandatory true;
        description "overridden";
      }
      augment "inner" {
        leaf extra {
          type string;
        }
      }
    }
  }
}
`

func TestExpandUsesRefineAndAugment(t *testing.T) {
	ms := NewModules()
	if err := ms.Parse(usesTestModule, "uses-test"); err != nil {
		t.Fatalf("could not parse module: %v", err)
	}
	if errs := ms.Process(); len(errs) > 0 {
		t.Fatalf("could not process modules: %v", errs)
	}
	mod, err := ms.GetModule("uses-test")
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
	name := top.Dir["name"]
	if name == nil {
		t.Fatalf("missing expanded name leaf")
	}
	if name.Mandatory != TSTrue {
		t.Errorf("refine did not apply mandatory true, got %v", name.Mandatory)
	}
	if name.Description != "overridden" {
		t.Errorf("refine did not apply description, got %q", name.Description)
	}

	inner := top.Dir["inner"]
	if inner == nil {
		t.Fatalf("missing expanded inner container")
	}
	if inner.Dir["extra"] == nil {
		t.Errorf("uses-local augment did not add leaf extra under inner")
	}
	if inner.Dir["depth"] == nil {
		t.Errorf("uses-local augment should not remove existing grouping children")
	}
}
