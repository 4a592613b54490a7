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

// This file implements the two path languages spec.md's external
// interfaces describe: the schema node-id (no predicates, used by
// augment/refine/deviation targets - RFC 7950 Sec. 6.5) and the
// data-path-with-predicates (used by leafref/instance-identifier path
// arguments - RFC 7950 Sec. 9.9.3/9.13), compiling each into a
// PathStep sequence a caller (or the leafref resolution in validate.go)
// can walk without re-parsing the string. Grounded on the path-walking
// conventions in the hellt-yangform path helper in the corpus (segment
// by segment, carrying module-qualification and predicates per step),
// adapted here into a standalone compiled structure rather than a
// recursive Entry-tree printer.

// PathStep is one "/"-separated segment of a compiled path.
type PathStep struct {
	// Module is the step's explicit prefix, if any (unqualified when
	// empty, meaning "the context module").
	Module string
	Name   string

	// Predicates holds "[key=value]" predicate pairs following a list
	// step in a data-path-with-predicates; always empty for a schema
	// node-id, which RFC 7950 forbids predicates on.
	Predicates []PathPredicate

	// Up is true for a ".." step (instance-identifier parent axis is
	// not legal in YANG paths, but "current()/../foo" forms appear in
	// leafref path arguments).
	Up bool

	// Current marks a leading "current()" call, valid only as the
	// first step of a leafref path.
	Current bool
}

// PathPredicate is one "[key=value]" clause following a list step.
type PathPredicate struct {
	Key   string
	Value string // literal value, or a ".."-relative path expression
}

// Path is a fully compiled path: the step sequence plus whether it was
// written as an absolute ("/a/b") or relative ("a/b", "../a") path.
type Path struct {
	Absolute bool
	Steps    []PathStep
}

func (p *Path) String() string {
	var b strings.Builder
	if p.Absolute {
		b.WriteByte('/')
	}
	for i, s := range p.Steps {
		if i > 0 {
			b.WriteByte('/')
		}
		switch {
		case s.Current:
			b.WriteString("current()")
			continue
		case s.Up:
			b.WriteString("..")
			continue
		}
		if s.Module != "" {
			b.WriteString(s.Module)
			b.WriteByte(':')
		}
		b.WriteString(s.Name)
		for _, pr := range s.Predicates {
			b.WriteByte('[')
			b.WriteString(pr.Key)
			b.WriteByte('=')
			b.WriteString(pr.Value)
			b.WriteByte(']')
		}
	}
	return b.String()
}

// CompileSchemaPath compiles a schema node-id (RFC 7950 Sec. 6.5): a
// "/"-separated sequence of optionally prefixed identifiers, no
// predicates, no "..".
func CompileSchemaPath(s string) (*Path, error) {
	p := &Path{}
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "/") {
		p.Absolute = true
		s = s[1:]
	}
	if s == "" {
		return nil, fmt.Errorf("empty schema node-id")
	}
	for _, part := range strings.Split(s, "/") {
		if part == "" {
			return nil, fmt.Errorf("empty path segment in schema node-id %q", s)
		}
		if strings.ContainsAny(part, "[]") {
			return nil, fmt.Errorf("predicates are not allowed in a schema node-id: %q", s)
		}
		mod, name := getPrefix(part)
		if !isIdentifier(name) {
			return nil, fmt.Errorf("invalid identifier %q in schema node-id %q", name, s)
		}
		p.Steps = append(p.Steps, PathStep{Module: mod, Name: name})
	}
	return p, nil
}

// CompileDataPath compiles a data-path-with-predicates: the same
// segment grammar as a schema node-id but each step may carry one or
// more "[key=value]" predicates, and a leading "current()/" followed
// by one or more ".." steps is accepted at the start of a relative
// path (the leafref path grammar's relative-path form).
func CompileDataPath(s string) (*Path, error) {
	s = strings.TrimSpace(s)
	p := &Path{}
	rest := s
	if strings.HasPrefix(rest, "/") {
		p.Absolute = true
		rest = rest[1:]
	} else if strings.HasPrefix(rest, "current()") {
		rest = strings.TrimPrefix(rest, "current()")
		rest = strings.TrimPrefix(rest, "/")
		p.Steps = append(p.Steps, PathStep{Current: true})
	}
	if rest == "" {
		if len(p.Steps) > 0 {
			return p, nil
		}
		return nil, fmt.Errorf("empty data path")
	}
	// Split on "/" outside predicates only, so a predicate value may
	// itself be a path such as current()/../name.
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case '[':
			depth++
		case ']':
			depth--
		case '/':
			if depth == 0 {
				parts = append(parts, rest[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, rest[start:])
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("empty path segment in data path %q", s)
		}
		if part == ".." {
			p.Steps = append(p.Steps, PathStep{Up: true})
			continue
		}
		name, preds, err := splitPredicates(part)
		if err != nil {
			return nil, fmt.Errorf("%s: %v", s, err)
		}
		mod, localName := getPrefix(name)
		if !isIdentifier(localName) {
			return nil, fmt.Errorf("invalid identifier %q in data path %q", localName, s)
		}
		p.Steps = append(p.Steps, PathStep{Module: mod, Name: localName, Predicates: preds})
	}
	return p, nil
}

func splitPredicates(part string) (name string, preds []PathPredicate, err error) {
	i := strings.IndexByte(part, '[')
	if i < 0 {
		return part, nil, nil
	}
	name = part[:i]
	rest := part[i:]
	for len(rest) > 0 {
		if rest[0] != '[' {
			return "", nil, fmt.Errorf("malformed predicate near %q", rest)
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return "", nil, fmt.Errorf("unterminated predicate in %q", part)
		}
		clause := rest[1:end]
		eq := strings.IndexByte(clause, '=')
		if eq < 0 {
			return "", nil, fmt.Errorf("predicate missing '=': %q", clause)
		}
		key := strings.TrimSpace(clause[:eq])
		val := strings.TrimSpace(clause[eq+1:])
		val = strings.Trim(val, `"'`)
		preds = append(preds, PathPredicate{Key: key, Value: val})
		rest = rest[end+1:]
	}
	return name, preds, nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9', r == '-', r == '.':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
