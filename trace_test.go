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

package backtrace

import (
	"fmt"
	"strings"
	"testing"
)

func TestFrame_ShortFunction(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"dirpx.dev/backtrace.New", "backtrace.New"},
		{"main.main", "main.main"},
		{"dirpx.dev/app/store.(*Store).Get", "store.(*Store).Get"},
		{"dirpx.dev/app.Map[...]", "app.Map"},
		{"dirpx.dev/app.Map[...].func1", "app.Map.func1"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := (Frame{Function: tt.in}).ShortFunction(); got != tt.want {
				t.Fatalf("ShortFunction(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFrame_StringUnknown(t *testing.T) {
	if got := (Frame{}).String(); got != "unknown()\n\t:0" {
		t.Fatalf("String() = %q", got)
	}
}

func TestTrace_Nil(t *testing.T) {
	var tr *Trace
	if tr.Resolved() || tr.Len() != 0 || tr.PCs() != nil || tr.Frames() != nil ||
		tr.StackTrace() != nil || tr.String() != "" {
		t.Fatal("nil trace must behave as empty")
	}
}

func TestTrace_ResolveWithoutSymbolizer(t *testing.T) {
	tr := &Trace{pcs: []uintptr{1, 2}}
	tr.resolve()
	if !tr.Resolved() || tr.Frames() != nil || tr.Len() != 2 {
		t.Fatal("missing symbolizer must degrade to an empty resolved trace")
	}
}

func TestTrace_PCsIsCopy(t *testing.T) {
	tr := &Trace{pcs: []uintptr{1, 2, 3}}
	pcs := tr.PCs()
	pcs[0] = 42
	if tr.PCs()[0] != 1 {
		t.Fatal("PCs must return a copy")
	}
}

func TestTrace_StackTrace(t *testing.T) {
	tr := &Trace{pcs: callers(1, DefaultDepth), symbolize: symbolizeRuntime}
	st := tr.StackTrace()
	if len(st) != tr.Len() {
		t.Fatalf("len(StackTrace()) = %d, want %d", len(st), tr.Len())
	}
	if s := fmt.Sprintf("%+v", st); !strings.Contains(s, "TestTrace_StackTrace") {
		t.Fatalf("pkg/errors rendering missing caller:\n%s", s)
	}
}

func TestSymbolizeRuntime_Empty(t *testing.T) {
	if got := symbolizeRuntime(nil); got != nil {
		t.Fatalf("symbolizeRuntime(nil) = %v", got)
	}
}
