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

// This file is a built-in pair of extension plugins demonstrating
// dispatch (plugin.go): the ietf-netconf-acm "default-deny-write" and
// "default-deny-all" extensions (RFC 8341 Sec. 3.2.4/3.2.5). Per the
// design note that extension inheritance is an explicit walk rather
// than implicit lookup at read time, applying one of these extensions
// annotates every descendant Entry's Extra map at compile time instead
// of leaving descendants to discover their ancestor's annotation by
// walking Parent at query time.

const (
	nacmDenyWriteKeyword = "nacm:default-deny-write"
	nacmDenyAllKeyword   = "nacm:default-deny-all"
)

func init() {
	RegisterPlugin(nacmDenyPlugin{keyword: nacmDenyWriteKeyword, extra: "nacm-deny-write"})
	RegisterPlugin(nacmDenyPlugin{keyword: nacmDenyAllKeyword, extra: "nacm-deny-all"})
}

// nacmDenyPlugin marks e and every descendant of e as subject to the
// access denial its keyword names.
type nacmDenyPlugin struct {
	keyword string
	extra   string
}

func (p nacmDenyPlugin) Keyword() string { return p.keyword }

func (p nacmDenyPlugin) Apply(e *Entry, ext *Statement) error {
	markNACMDeny(e, p.extra)
	return nil
}

func markNACMDeny(e *Entry, extra string) {
	if e.Extra == nil {
		e.Extra = map[string][]interface{}{}
	}
	e.Extra[extra] = append(e.Extra[extra], true)
	for _, ch := range e.Dir {
		markNACMDeny(ch, extra)
	}
}
