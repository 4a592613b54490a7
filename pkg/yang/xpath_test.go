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

func TestDefaultXPathCompiler(t *testing.T) {
	c := NewContext(CompileOptions{})

	expr, err := c.XPath().Compile("../condition = 'x'", nil)
	if err != nil {
		t.Fatalf("Compile: unexpected error: %v", err)
	}
	if expr.String() != "../condition = 'x'" {
		t.Errorf("String() = %q, want source text preserved", expr.String())
	}

	if _, err := c.XPath().Compile("", nil); err == nil {
		t.Errorf("Compile(\"\", ...) should error")
	}
}

type stubCompiler struct{ seen []string }

func (s *stubCompiler) Compile(expr string, context Node) (XPathExpr, error) {
	s.seen = append(s.seen, expr)
	return &stubXPathExpr{text: expr, ctx: context}, nil
}

func TestWithXPathCompilerOverride(t *testing.T) {
	stub := &stubCompiler{}
	c := NewContext(CompileOptions{}).WithXPathCompiler(stub)

	if _, err := c.XPath().Compile("a/b", nil); err != nil {
		t.Fatalf("Compile: unexpected error: %v", err)
	}
	if len(stub.seen) != 1 || stub.seen[0] != "a/b" {
		t.Errorf("override compiler was not used, seen = %v", stub.seen)
	}
}
