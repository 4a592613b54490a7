// Copyright 2015 Google Inc.
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

// Package indent implements an io.Writer that inserts a prefix at the
// beginning of every line written to it, for pretty-printing nested
// schema trees (see Entry.Print and PrintNode in package yang).
package indent

import (
	"bytes"
	"io"
)

// String returns s with prefix inserted at the beginning of every line.
func String(prefix, s string) string {
	return string(Bytes([]byte(prefix), []byte(s)))
}

// Bytes returns b with prefix inserted at the beginning of every line.
func Bytes(prefix, b []byte) []byte {
	var buf bytes.Buffer
	NewWriter(&buf, string(prefix)).Write(b)
	return buf.Bytes()
}

// NewWriter returns a Writer that inserts prefix at the beginning of
// every line written to it before forwarding the result to w. No
// prefix is written for a line that has not yet received any bytes
// (in particular, nothing follows a trailing newline until more data
// arrives).
func NewWriter(w io.Writer, prefix string) io.Writer {
	return &writer{w: w, prefix: []byte(prefix), atBOL: true}
}

type writer struct {
	w      io.Writer
	prefix []byte
	atBOL  bool // true if the next byte written starts a new line
}

// Write indents p and passes the result to the underlying Writer in a
// single call, then translates however many bytes the underlying
// Writer accepted back into the equivalent count of bytes of p, so a
// short or failed underlying write is reported accurately rather than
// as a success or as the full indented length.
func (iw *writer) Write(p []byte) (int, error) {
	out := make([]byte, 0, len(p)+len(iw.prefix))
	// orig[i] is the index into p that out[i] came from, or -1 if
	// out[i] belongs to an inserted prefix rather than p itself.
	orig := make([]int, 0, cap(out))

	atBOL := iw.atBOL
	for i, c := range p {
		if atBOL {
			out = append(out, iw.prefix...)
			for range iw.prefix {
				orig = append(orig, -1)
			}
			atBOL = false
		}
		out = append(out, c)
		orig = append(orig, i)
		if c == '\n' {
			atBOL = true
		}
	}

	n, err := iw.w.Write(out)
	if n > len(out) {
		n = len(out)
	}
	iw.atBOL = atBOL

	consumed := 0
	for _, oi := range orig[:n] {
		if oi >= 0 {
			consumed = oi + 1
		}
	}
	return consumed, err
}
