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
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
)

// Frame is a single symbolized stack frame.
type Frame struct {
	// Function is the fully qualified function name, e.g.
	// "dirpx.dev/backtrace.New". Empty when the PC could not be symbolized.
	Function string

	// File and Line locate the call site. File is empty for unknown frames.
	File string
	Line int

	// PC is the program counter of the call site.
	PC uintptr
}

// ShortFunction returns Function without the module path and without generic
// type parameter markers, e.g. "backtrace.New".
func (f Frame) ShortFunction() string {
	name := f.Function
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	const params = "[...]"
	if idx := strings.Index(name, params); idx >= 0 {
		name = name[:idx] + name[idx+len(params):]
	}
	return name
}

// String renders the frame as "function()\n\tfile:line".
func (f Frame) String() string {
	fn := f.ShortFunction()
	if fn == "" {
		fn = "unknown"
	}
	return fn + "()\n\t" + f.File + ":" + strconv.Itoa(f.Line)
}

// symbolizer turns raw program counters into frames.
type symbolizer func(pcs []uintptr) []Frame

// Trace is a captured call stack.
//
// The raw program counters are recorded once at construction and never
// replaced. Symbol resolution fills in Frames exactly once, the first time
// the owning Holder is asked for its backtrace. A *Trace handed out by
// Holder.Backtrace is always resolved and read-only.
type Trace struct {
	pcs []uintptr

	symbolize symbolizer
	once      sync.Once
	frames    []Frame
	done      atomic.Bool
}

// resolve symbolizes t in place. Only the first call does any work; callers
// racing with it block until it completes.
func (t *Trace) resolve() {
	t.once.Do(func() {
		if t.symbolize != nil {
			t.frames = t.symbolize(t.pcs)
		}
		t.done.Store(true)
	})
}

// Resolved reports whether symbol resolution has completed. Traces obtained
// through Holder.Backtrace are always resolved.
func (t *Trace) Resolved() bool {
	return t != nil && t.done.Load()
}

// Len returns the number of captured program counters.
func (t *Trace) Len() int {
	if t == nil {
		return 0
	}
	return len(t.pcs)
}

// PCs returns a copy of the raw program counters.
func (t *Trace) PCs() []uintptr {
	if t == nil || len(t.pcs) == 0 {
		return nil
	}
	out := make([]uintptr, len(t.pcs))
	copy(out, t.pcs)
	return out
}

// Frames returns the resolved frames, innermost first. The returned slice is
// shared and must not be modified. It is nil for an unresolved trace.
func (t *Trace) Frames() []Frame {
	if t == nil {
		return nil
	}
	return t.frames
}

// StackTrace exposes the raw capture as a github.com/pkg/errors stack trace so
// that tooling which looks for that method (error reporters, %+v printers)
// can consume it.
func (t *Trace) StackTrace() errors.StackTrace {
	if t == nil || len(t.pcs) == 0 {
		return nil
	}
	st := make(errors.StackTrace, len(t.pcs))
	for i, pc := range t.pcs {
		st[i] = errors.Frame(pc)
	}
	return st
}

// String renders one entry per frame:
//
//	pkg.function()
//		/path/to/file.go:42
func (t *Trace) String() string {
	frames := t.Frames()
	if len(frames) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(64 * len(frames))
	for _, f := range frames {
		b.WriteString(f.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// callers records up to depth program counters, skipping skip frames in the
// same way runtime.Callers does.
func callers(skip, depth int) []uintptr {
	pcs := make([]uintptr, depth)
	n := runtime.Callers(skip, pcs)
	return pcs[:n:n]
}

// symbolizeRuntime resolves pcs through runtime.CallersFrames. Unknown PCs
// degrade to frames with empty function and file rather than failing.
func symbolizeRuntime(pcs []uintptr) []Frame {
	if len(pcs) == 0 {
		return nil
	}
	frames := make([]Frame, 0, len(pcs))
	iter := runtime.CallersFrames(pcs)
	for {
		f, more := iter.Next()
		frames = append(frames, Frame{
			Function: f.Function,
			File:     f.File,
			Line:     f.Line,
			PC:       f.PC,
		})
		if !more {
			break
		}
	}
	return frames
}
