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

package pathconv

import (
	"testing"

	"github.com/schemaforge/yangc/pkg/yang"
)

func TestToGNMI(t *testing.T) {
	p, err := yang.CompileDataPath("/if:interfaces/if:interface[name=eth0]/if:state")
	if err != nil {
		t.Fatalf("CompileDataPath: unexpected error: %v", err)
	}
	gp, err := ToGNMI(p)
	if err != nil {
		t.Fatalf("ToGNMI: unexpected error: %v", err)
	}
	if len(gp.Elem) != 3 {
		t.Fatalf("ToGNMI: got %d elems, want 3", len(gp.Elem))
	}
	if gp.Elem[0].Name != "interfaces" || gp.Elem[1].Name != "interface" || gp.Elem[2].Name != "state" {
		t.Errorf("ToGNMI: unexpected element names: %+v", gp.Elem)
	}
	if gp.Elem[1].Key["name"] != "eth0" {
		t.Errorf("ToGNMI: predicate not converted to key, got %+v", gp.Elem[1].Key)
	}
}

func TestToGNMIRejectsRelativeSteps(t *testing.T) {
	p, err := yang.CompileDataPath("current()/../name")
	if err != nil {
		t.Fatalf("CompileDataPath: unexpected error: %v", err)
	}
	if _, err := ToGNMI(p); err == nil {
		t.Errorf("ToGNMI should reject a path containing current()/.. steps")
	}
}

func TestFromGNMIRoundTrip(t *testing.T) {
	p, err := yang.CompileDataPath("/interfaces/interface[name=eth0]")
	if err != nil {
		t.Fatalf("CompileDataPath: unexpected error: %v", err)
	}
	gp, err := ToGNMI(p)
	if err != nil {
		t.Fatalf("ToGNMI: unexpected error: %v", err)
	}
	back, err := FromGNMI(gp)
	if err != nil {
		t.Fatalf("FromGNMI: unexpected error: %v", err)
	}
	if len(back.Steps) != 2 || back.Steps[1].Predicates[0].Value != "eth0" {
		t.Errorf("FromGNMI round trip mismatch: %+v", back.Steps)
	}
}
