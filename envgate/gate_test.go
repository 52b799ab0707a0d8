/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package envgate

import (
	"sync"
	"sync/atomic"
	"testing"

	"golang.org/x/sync/errgroup"
)

// env is a mutable fake environment that counts lookups.
type env struct {
	mu    sync.Mutex
	vals  map[string]string
	calls atomic.Int32
}

func (e *env) lookup(key string) (string, bool) {
	e.calls.Add(1)
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.vals[key]
	return v, ok
}

func (e *env) set(key, val string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vals[key] = val
}

func newEnv(kv map[string]string) *env {
	if kv == nil {
		kv = map[string]string{}
	}
	return &env{vals: kv}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		value string
		ok    bool
		want  bool
	}{
		{"unset", "", false, false},
		{"zero", "0", true, false},
		{"one", "1", true, true},
		{"full", "full", true, true},
		{"empty but set", "", true, true},
		{"zero with space", " 0", true, true},
		{"double zero", "00", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.value, tt.ok); got != tt.want {
				t.Fatalf("Parse(%q, %v) = %v, want %v", tt.value, tt.ok, got, tt.want)
			}
		})
	}
}

func TestGate_Enabled(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want Decision
	}{
		{"unset", nil, Disabled},
		{"zero", map[string]string{"X_TRACE": "0"}, Disabled},
		{"one", map[string]string{"X_TRACE": "1"}, Enabled},
		{"other variable only", map[string]string{"Y_TRACE": "1"}, Disabled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithLookup("X_TRACE", newEnv(tt.env).lookup)
			if d := g.Decision(); d != Unknown {
				t.Fatalf("decision before first call = %s, want unknown", d)
			}
			if got := g.Enabled(); got != (tt.want == Enabled) {
				t.Fatalf("Enabled() = %v, want %v", got, tt.want == Enabled)
			}
			if d := g.Decision(); d != tt.want {
				t.Fatalf("Decision() = %s, want %s", d, tt.want)
			}
		})
	}
}

func TestGate_ReadsOnce(t *testing.T) {
	e := newEnv(map[string]string{"X_TRACE": "1"})
	g := NewWithLookup("X_TRACE", e.lookup)

	for i := 0; i < 10; i++ {
		if !g.Enabled() {
			t.Fatal("gate must be enabled")
		}
	}
	if n := e.calls.Load(); n != 1 {
		t.Fatalf("lookup calls = %d, want 1", n)
	}
}

func TestGate_StableAfterEnvChange(t *testing.T) {
	e := newEnv(nil)
	g := NewWithLookup("X_TRACE", e.lookup)
	if g.Enabled() {
		t.Fatal("gate must start disabled")
	}

	e.set("X_TRACE", "1")
	if g.Enabled() {
		t.Fatal("decision changed after environment mutation")
	}

	e2 := newEnv(map[string]string{"X_TRACE": "yes"})
	g2 := NewWithLookup("X_TRACE", e2.lookup)
	if !g2.Enabled() {
		t.Fatal("gate must start enabled")
	}
	e2.set("X_TRACE", "0")
	if !g2.Enabled() {
		t.Fatal("decision changed after environment mutation")
	}
}

func TestGate_ConcurrentFirstUse(t *testing.T) {
	e := newEnv(map[string]string{"X_TRACE": "1"})
	g := NewWithLookup("X_TRACE", e.lookup)

	var (
		eg      errgroup.Group
		enabled atomic.Int32
	)
	for i := 0; i < 50; i++ {
		eg.Go(func() error {
			if g.Enabled() {
				enabled.Add(1)
			}
			return nil
		})
	}
	_ = eg.Wait()

	if n := enabled.Load(); n != 50 {
		t.Fatalf("%d of 50 callers saw enabled", n)
	}
	if n := e.calls.Load(); n != 1 {
		t.Fatalf("lookup calls = %d, want 1", n)
	}
}

func TestGate_OSEnvironment(t *testing.T) {
	t.Setenv("DIRPX_ENVGATE_TEST", "0")
	g := New("DIRPX_ENVGATE_TEST")
	if g.Enabled() {
		t.Fatal(`"0" must disable the gate`)
	}
	if g.Name() != "DIRPX_ENVGATE_TEST" {
		t.Fatalf("Name() = %q", g.Name())
	}

	t.Setenv("DIRPX_ENVGATE_TEST", "1")
	if g.Enabled() {
		t.Fatal("decision changed after environment mutation")
	}
	if !New("DIRPX_ENVGATE_TEST").Enabled() {
		t.Fatal("fresh gate must observe the new value")
	}
}

func TestGate_NilLookup(t *testing.T) {
	if NewWithLookup("X_TRACE", nil).Enabled() {
		t.Fatal("nil lookup must behave like an unset variable")
	}
}

func TestDecision_String(t *testing.T) {
	for d, want := range map[Decision]string{
		Unknown:     "unknown",
		Disabled:    "disabled",
		Enabled:     "enabled",
		Decision(9): "invalid",
	} {
		if got := d.String(); got != want {
			t.Fatalf("Decision(%d).String() = %q, want %q", int32(d), got, want)
		}
	}
}
