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
	"strings"

	errbuilder "github.com/ZanzyTHEbar/errbuilder-go"
)

// Kind classifies a Diagnostic into the compiler's closed error
// taxonomy. Every Diagnostic has exactly one Kind; callers that branch
// on error category should switch on Kind rather than string-match
// messages.
type Kind int

// The closed set of diagnostic kinds the compiler can produce.
const (
	KindSyntax Kind = iota
	KindReference
	KindDenied
	KindExists
	KindNotFound
	KindSemantic
	KindCycle
	KindConflict
	KindExtension
	KindMemory
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "syntax"
	case KindReference:
		return "reference"
	case KindDenied:
		return "denied"
	case KindExists:
		return "exists"
	case KindNotFound:
		return "not-found"
	case KindSemantic:
		return "semantic"
	case KindCycle:
		return "cycle"
	case KindConflict:
		return "conflict"
	case KindExtension:
		return "extension"
	case KindMemory:
		return "memory"
	default:
		return "internal"
	}
}

// errbuilderCode maps a Kind onto the errbuilder-go code used to build
// the underlying error value.
func (k Kind) errbuilderCode() errbuilder.ErrCode {
	switch k {
	case KindSyntax:
		return errbuilder.CodeInvalidArgument
	case KindReference:
		return errbuilder.CodeNotFound
	case KindDenied:
		return errbuilder.CodePermissionDenied
	case KindExists:
		return errbuilder.CodeAlreadyExists
	case KindNotFound:
		return errbuilder.CodeNotFound
	case KindSemantic:
		return errbuilder.CodeInvalidArgument
	case KindCycle:
		return errbuilder.CodeInvalidArgument
	case KindConflict:
		return errbuilder.CodeAborted
	case KindExtension:
		return errbuilder.CodeUnimplemented
	case KindMemory:
		return errbuilder.CodeResourceExhausted
	default:
		return errbuilder.CodeInternal
	}
}

// Diagnostic is the compiler's public error/warning value, per the
// external interface design: a Kind from the closed taxonomy, the
// schema location the problem was found at, and a human message.
type Diagnostic struct {
	Kind     Kind
	Location string
	Message  string

	err error
}

// Error satisfies the error interface so a Diagnostic can be returned
// and wrapped anywhere a plain error is expected.
func (d *Diagnostic) Error() string {
	if d.Location == "" {
		return d.Message
	}
	return d.Location + ": " + d.Message
}

// Unwrap exposes the underlying errbuilder-go error for callers that
// want to use errors.Is/errors.As against errbuilder codes.
func (d *Diagnostic) Unwrap() error { return d.err }

func newDiagnostic(kind Kind, msg string) *Diagnostic {
	built := errbuilder.New().WithCode(kind.errbuilderCode()).WithMsg(msg)
	return &Diagnostic{Kind: kind, Message: msg, err: built}
}

func newDiagnosticAt(kind Kind, location, msg string) *Diagnostic {
	d := newDiagnostic(kind, msg)
	d.Location = location
	return d
}

// diagnosticFromError classifies a plain error produced deeper in the
// compiler (entry.go/types.go/identity.go return plain errors, per the
// teacher's existing style) into a Diagnostic. Errors produced by this
// package are matched by message shape; anything unrecognized is
// reported as KindSemantic (see classifyMessage), so a caller never
// silently drops a failure.
func diagnosticFromError(err error) *Diagnostic {
	if d, ok := err.(*Diagnostic); ok {
		return d
	}
	msg := err.Error()
	kind := classifyMessage(msg)
	return newDiagnostic(kind, msg)
}

// classifyMessage maps the teacher's existing ad hoc error strings
// (entry.go/types.go/identity.go/modules.go all build plain
// fmt.Errorf values) onto the closed taxonomy by the vocabulary they
// already use, so compiling with the teacher's original code paths
// still yields a classified Diagnostic rather than a bucket of
// internal errors.
func classifyMessage(msg string) Kind {
	switch {
	case containsAny(msg, "duplicate", "already defined", "already has"):
		return KindExists
	case containsAny(msg, "not found", "no such", "unknown", "can't resolve", "can't find", "undefined"):
		return KindReference
	case containsAny(msg, "cycle", "circular", "loop"):
		return KindCycle
	case containsAny(msg, "conflict", "disagree"):
		return KindConflict
	case containsAny(msg, "permission", "denied", "not permitted"):
		return KindDenied
	case containsAny(msg, "out of memory", "too large", "exceeds"):
		return KindMemory
	case containsAny(msg, "extension"):
		return KindExtension
	case containsAny(msg, "invalid", "expected", "malformed", "syntax"):
		return KindSyntax
	default:
		return KindSemantic
	}
}

func containsAny(s string, subs ...string) bool {
	low := strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(low, sub) {
			return true
		}
	}
	return false
}
