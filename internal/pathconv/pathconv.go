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

// Package pathconv converts a compiled yang.Path (see pkg/yang/path.go)
// to and from a gnmi.Path, giving the compiled data-path-with-predicates
// structure an interchange format consumers already expect. Grounded on
// the stringToStructuredPath/extractKV conversion in the ygot reference
// (util/pathstrings.go), adapted here to convert from an already-
// compiled yang.Path rather than re-parsing path text.
package pathconv

import (
	"fmt"

	gnmipb "github.com/openconfig/gnmi/proto/gnmi"

	"github.com/schemaforge/yangc/pkg/yang"
)

// ToGNMI converts a compiled data path into its gnmi.Path representation.
// A "current()" or ".." step has no gNMI equivalent (gNMI paths are
// always absolute element sequences) and is rejected.
func ToGNMI(p *yang.Path) (*gnmipb.Path, error) {
	if p == nil {
		return nil, fmt.Errorf("nil path")
	}
	out := &gnmipb.Path{}
	for _, step := range p.Steps {
		if step.Current || step.Up {
			return nil, fmt.Errorf("path step %q has no gNMI representation", p)
		}
		elem := &gnmipb.PathElem{Name: step.Name}
		if len(step.Predicates) > 0 {
			elem.Key = make(map[string]string, len(step.Predicates))
			for _, pr := range step.Predicates {
				elem.Key[pr.Key] = pr.Value
			}
		}
		out.Elem = append(out.Elem, elem)
	}
	return out, nil
}

// FromGNMI converts a gnmi.Path back into a compiled yang.Path. The
// result is always absolute, as gNMI paths carry no relative-path
// concept; module qualification (yang.PathStep.Module) is not
// recoverable from a gnmi.Path and is left empty.
func FromGNMI(gp *gnmipb.Path) (*yang.Path, error) {
	if gp == nil {
		return nil, fmt.Errorf("nil gnmi path")
	}
	p := &yang.Path{Absolute: true}
	for _, elem := range gp.Elem {
		if elem.Name == "" {
			return nil, fmt.Errorf("gnmi path element with empty name")
		}
		step := yang.PathStep{Name: elem.Name}
		for k, v := range elem.Key {
			step.Predicates = append(step.Predicates, yang.PathPredicate{Key: k, Value: v})
		}
		p.Steps = append(p.Steps, step)
	}
	return p, nil
}
