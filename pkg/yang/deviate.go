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

// This file implements deviation application (RFC 7950 Sec. 7.20.3).
// modules.go's Process already walks every module/submodule and calls
// e.ApplyDeviate() once per (deduplicated) module name; that method
// does not exist anywhere in the teacher's retrieved source even
// though it is called, so everything here is new.

// deviationRecord tracks, per deviated target, the modules that have
// applied a "replace" deviate so a second disagreeing replace can be
// reported as a conflict rather than silently overwriting the first
// (the Open Question spec.md raises; resolved here as a hard
// KindConflict error, per spec.md's own tentative lean).
type deviationRecord struct {
	module string
	value  string
}

var deviateReplaceLog = map[string][]deviationRecord{}

// ApplyDeviate walks every top-level "deviation" statement declared in
// e's own module, in source order, and applies each "deviate"
// sub-statement to its target (which e.Find may locate in any module,
// per RFC 7950 Sec. 7.20.3). Within one deviation statement,
// not-supported is applied first (it removes the node entirely, so any
// add/replace/delete naming the same target after it is moot); the
// remaining deviate sub-statements keep their source order.
func (e *Entry) ApplyDeviate() []error {
	return e.applyDeviateWithOptions(Options{})
}

// applyDeviateWithOptions is ApplyDeviate with access to the owning
// Modules' ParseOptions, so DeviateOptions.IgnoreDeviateNotSupported
// can suppress node removal for hosts that want to keep interacting
// with a schema as if the deviation were absent.
func (e *Entry) applyDeviateWithOptions(opts Options) []error {
	m, ok := e.Node.(*Module)
	if !ok {
		return nil
	}
	var errs []error
	for _, d := range m.Deviation {
		target := e.Find(d.Name)
		if target == nil {
			errs = append(errs, fmt.Errorf("%s: cannot find target node to deviate: %s", Source(d), d.Name))
			continue
		}
		errs = append(errs, applyDeviation(m.Name, d, target, opts)...)
	}
	return errs
}

func applyDeviation(module string, d *Deviation, target *Entry, opts Options) []error {
	var errs []error
	ordered := orderDeviates(d.Deviate)
	for _, dv := range ordered {
		switch dv.Name {
		case "not-supported":
			if !opts.DeviateOptions.IgnoreDeviateNotSupported {
				target.Deleted = true
			}
			return errs
		case "add":
			errs = append(errs, applyDeviateAdd(dv, target)...)
		case "replace":
			if err := checkReplaceConflict(module, target, dv); err != nil {
				errs = append(errs, err)
				continue
			}
			errs = append(errs, applyDeviateReplace(dv, target)...)
		case "delete":
			errs = append(errs, applyDeviateDelete(dv, target)...)
		default:
			errs = append(errs, fmt.Errorf("%s: unknown deviation type: %s", Source(dv), dv.Name))
		}
	}
	return errs
}

// orderDeviates puts not-supported first; the rest keep their source
// order, which is what RFC 7950 expects when a single deviation
// statement carries several deviate sub-statements against the same
// target.
func orderDeviates(ds []*Deviate) []*Deviate {
	out := make([]*Deviate, 0, len(ds))
	var rest []*Deviate
	for _, dv := range ds {
		if dv.Name == "not-supported" {
			out = append(out, dv)
		} else {
			rest = append(rest, dv)
		}
	}
	return append(out, rest...)
}

// checkReplaceConflict reports a KindConflict-classified error (via the
// "conflict" vocabulary classifyMessage recognizes) if two different
// modules each deviate-replace the same property of the same target
// with disagreeing values.
func checkReplaceConflict(module string, target *Entry, dv *Deviate) error {
	key := target.Path()
	val := deviateReplaceSignature(dv)
	for _, rec := range deviateReplaceLog[key] {
		if rec.value != val {
			return fmt.Errorf("%s: conflicting deviate replace on %s: %q (from %s) disagrees with %q (from %s)",
				Source(dv), key, val, module, rec.value, rec.module)
		}
	}
	deviateReplaceLog[key] = append(deviateReplaceLog[key], deviationRecord{module: module, value: val})
	return nil
}

func deviateReplaceSignature(dv *Deviate) string {
	s := ""
	if dv.Type != nil {
		s += "type=" + dv.Type.Name + ";"
	}
	if dv.Default != nil {
		s += "default=" + dv.Default.Name + ";"
	}
	if dv.Config != nil {
		s += "config=" + dv.Config.Name + ";"
	}
	if dv.Mandatory != nil {
		s += "mandatory=" + dv.Mandatory.Name + ";"
	}
	if dv.MinElements != nil {
		s += "min-elements=" + dv.MinElements.Name + ";"
	}
	if dv.MaxElements != nil {
		s += "max-elements=" + dv.MaxElements.Name + ";"
	}
	return s
}

func applyDeviateAdd(dv *Deviate, target *Entry) []error {
	var errs []error
	if dv.Config != nil {
		if target.Config != TSUnset {
			errs = append(errs, fmt.Errorf("%s: deviate add config on %s but config already set", Source(dv), target.Name))
		} else if v, err := triStateOf(dv.Config); err == nil {
			target.Config = v
		} else {
			errs = append(errs, err)
		}
	}
	if dv.Default != nil {
		if target.Default != "" {
			errs = append(errs, fmt.Errorf("%s: %s already has a default value", Source(dv), target.Name))
		} else {
			target.Default = dv.Default.Name
		}
	}
	if dv.Mandatory != nil {
		if v, err := triStateOf(dv.Mandatory); err == nil {
			target.Mandatory = v
		} else {
			errs = append(errs, err)
		}
	}
	if dv.MaxElements != nil {
		if target.ListAttr == nil {
			errs = append(errs, fmt.Errorf("%s: tried to deviate max-elements on a non-list type", Source(dv)))
		} else {
			target.ListAttr.MaxElements = dv.MaxElements
		}
	}
	if dv.MinElements != nil {
		if target.ListAttr == nil {
			errs = append(errs, fmt.Errorf("%s: tried to deviate min-elements on a non-list type", Source(dv)))
		} else {
			target.ListAttr.MinElements = dv.MinElements
		}
	}
	if dv.Units != nil && target.Units == "" {
		target.Units = dv.Units.Name
	}
	for _, m := range dv.Must {
		target.Extra["must"] = append(target.Extra["must"], m)
	}
	for _, u := range dv.Unique {
		target.Extra["unique"] = append(target.Extra["unique"], u)
	}
	return errs
}

func applyDeviateReplace(dv *Deviate, target *Entry) []error {
	var errs []error
	if dv.Type != nil {
		if errs2 := dv.Type.resolve(); errs2 != nil {
			errs = append(errs, errs2...)
		} else {
			target.Type = dv.Type.YangType
		}
	}
	if dv.Default != nil {
		target.Default = dv.Default.Name
	}
	if dv.Units != nil {
		target.Units = dv.Units.Name
	}
	if dv.Config != nil {
		if v, err := triStateOf(dv.Config); err == nil {
			target.Config = v
		} else {
			errs = append(errs, err)
		}
	}
	if dv.Mandatory != nil {
		if v, err := triStateOf(dv.Mandatory); err == nil {
			target.Mandatory = v
		} else {
			errs = append(errs, err)
		}
	}
	if target.ListAttr != nil {
		if dv.MaxElements != nil {
			target.ListAttr.MaxElements = dv.MaxElements
		}
		if dv.MinElements != nil {
			target.ListAttr.MinElements = dv.MinElements
		}
	}
	return errs
}

func applyDeviateDelete(dv *Deviate, target *Entry) []error {
	var errs []error
	if dv.Default != nil {
		switch {
		case target.Dir == nil && target.ListAttr != nil:
			errs = append(errs, fmt.Errorf("%s: deviate delete on default statements unsupported for leaf-lists", Source(dv)))
		case target.Default == "":
			errs = append(errs, fmt.Errorf("%s: deviate delete of a default statement that doesn't exist on %s", Source(dv), target.Name))
		case target.Default != dv.Default.Name:
			errs = append(errs, fmt.Errorf("%s: non-matching keyword value on deviate delete of default: %q vs %q", Source(dv), dv.Default.Name, target.Default))
		default:
			target.Default = ""
		}
	}
	if dv.MaxElements != nil {
		if target.ListAttr == nil {
			errs = append(errs, fmt.Errorf("%s: tried to deviate max-elements on a non-list type", Source(dv)))
		} else if target.ListAttr.MaxElements == nil || target.ListAttr.MaxElements.Name != dv.MaxElements.Name {
			errs = append(errs, fmt.Errorf("%s: target's max-element value differs from deviation's max-element value", Source(dv)))
		} else {
			target.ListAttr.MaxElements = nil
		}
	}
	if dv.MinElements != nil {
		if target.ListAttr == nil {
			errs = append(errs, fmt.Errorf("%s: tried to deviate min-elements on a non-list type", Source(dv)))
		} else if target.ListAttr.MinElements == nil || target.ListAttr.MinElements.Name != dv.MinElements.Name {
			errs = append(errs, fmt.Errorf("%s: target's min-element value differs from deviation's min-element value", Source(dv)))
		} else {
			target.ListAttr.MinElements = nil
		}
	}
	if len(dv.Must) > 0 {
		target.Extra["must"] = nil
	}
	if len(dv.Unique) > 0 {
		target.Extra["unique"] = nil
	}
	return errs
}
