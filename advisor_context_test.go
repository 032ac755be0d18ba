// Copyright 2026 肖其顿 (XIAO QI DUN)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package advisor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestContextMapCaseInsensitive verifies lookups ignore case.
func TestContextMapCaseInsensitive(t *testing.T) {
	intro := &Topic{id: 0}
	m := NewContextMap()
	m.Put("Intro", intro)

	for _, key := range []string{"Intro", "INTRO", "intro", "iNtRo"} {
		got, ok := m.Get(key)
		if !ok || got != intro {
			t.Errorf("Get(%q) = %v, %v; want intro topic", key, got, ok)
		}
	}
	if _, ok := m.Get("Index"); ok {
		t.Error("Get(Index) should miss")
	}
}

// TestContextMapLaterWins verifies colliding keys keep the last topic without failing.
func TestContextMapLaterWins(t *testing.T) {
	first, second := &Topic{id: 1}, &Topic{id: 2}
	m := NewContextMap()
	m.Put("topic", first)
	m.Put("TOPIC", second)

	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Len())
	}
	if got, _ := m.Get("Topic"); got != second {
		t.Errorf("Get returned topic %d, want 2", got.ID())
	}
}

// TestContextMapEntriesOrder verifies entries sort by topic then identifier.
func TestContextMapEntriesOrder(t *testing.T) {
	a, b := &Topic{id: 0}, &Topic{id: 1}
	m := NewContextMap()
	m.Put("zeta", a)
	m.Put("Beta", b)
	m.Put("alpha", b)
	m.Put("Alpha", a)

	var got []string
	for _, e := range m.Entries() {
		got = append(got, e.ID)
	}
	want := []string{"Alpha", "zeta", "Beta"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

// TestFoldKeyLocaleIndependent verifies folding ignores locale-specific rules.
func TestFoldKeyLocaleIndependent(t *testing.T) {
	tests := map[string]string{
		"INTRO":     "intro",
		"Index_I":   "index_i",
		"ÉCRAN":     "écran",
		"already":   "already",
		"MiXeD.123": "mixed.123",
	}
	for in, want := range tests {
		if got := FoldKey(in); got != want {
			t.Errorf("FoldKey(%q) = %q, want %q", in, got, want)
		}
	}
}
