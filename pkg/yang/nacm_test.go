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

func TestNACMDenyPluginMarksDescendants(t *testing.T) {
	child := &Entry{Name: "child", Extra: map[string][]interface{}{}}
	parent := &Entry{Name: "parent", Extra: map[string][]interface{}{}, Dir: map[string]*Entry{"child": child}}
	child.Parent = parent

	p, ok := lookupPlugin(nacmDenyWriteKeyword)
	if !ok {
		t.Fatalf("nacm default-deny-write plugin not registered")
	}
	if err := p.Apply(parent, &Statement{Keyword: nacmDenyWriteKeyword}); err != nil {
		t.Fatalf("Apply: unexpected error: %v", err)
	}

	if len(parent.Extra["nacm-deny-write"]) == 0 {
		t.Errorf("parent was not annotated with nacm-deny-write")
	}
	if len(child.Extra["nacm-deny-write"]) == 0 {
		t.Errorf("child was not annotated with nacm-deny-write (inheritance walk failed)")
	}
}
