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

func TestParseFeatureExprPrecedence(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{name: "single", in: "foo"},
		{name: "not", in: "not foo"},
		{name: "and-or precedence", in: "a and b or c"},
		{name: "parens", in: "(a or b) and c"},
		{name: "double not", in: "not not a"},
		{name: "empty", in: "", wantErr: true},
		{name: "dangling and", in: "a and", wantErr: true},
		{name: "unmatched paren", in: "(a or b", wantErr: true},
		{name: "trailing token", in: "a b", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFeatureExpr(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseFeatureExpr(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}

const featureTestModule = `
module features {
  namespace "urn:features";
  prefix "f";

  feature alpha;
  feature beta;
  feature gamma {
    if-feature "alpha and not beta";
  }

  container c {
    leaf on-alpha {
      if-feature "alpha";
      type string;
    }
    leaf on-beta {
      if-feature "beta";
      type string;
    }
    leaf on-gamma {
      if-feature "gamma";
      type string;
    }
  }
}
`

func TestContextEvaluateFeatures(t *testing.T) {
	ms := NewModules()
	if err := ms.Parse(featureTestModule, "features"); err != nil {
		t.Fatalf("could not parse module: %v", err)
	}
	if errs := ms.Process(); len(errs) > 0 {
		t.Fatalf("could not process modules: %v", errs)
	}
	mod, err := ms.GetModule("features")
	if err != nil {
		t.Fatalf("could not find module: %v", err)
	}

	c := NewContext(CompileOptions{
		FeatureOverrides: map[string]TriState{
			"alpha": TSTrue,
			"beta":  TSFalse,
		},
	})
	e := ToEntry(mod)
	if errs := c.evaluateFeaturesEntry(e); len(errs) > 0 {
		t.Fatalf("evaluateFeaturesEntry: unexpected errors: %v", errs)
	}

	cont := e.Dir["c"]
	if cont.Dir["on-alpha"].Deleted {
		t.Errorf("on-alpha should survive (alpha=true)")
	}
	if !cont.Dir["on-beta"].Deleted {
		t.Errorf("on-beta should be deleted (beta=false)")
	}
	if cont.Dir["on-gamma"].Deleted {
		t.Errorf("on-gamma should survive (alpha and not beta = true)")
	}
}
