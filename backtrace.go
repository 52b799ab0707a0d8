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
	"dirpx.dev/backtrace/envgate"
)

// EnvVar is the environment variable that turns backtrace capture on.
//
// Capture is enabled when the variable is set to any value other than "0".
// The variable is read once per process, on first use.
const EnvVar = "DIRPX_BACKTRACE"

// DefaultDepth is the maximum number of frames recorded when no WithDepth
// option is given.
const DefaultDepth = 32

// gate is the process-wide switch behind Enabled and New.
var gate = envgate.New(EnvVar)

// std is the capturer used by New: the process gate, runtime stack walking
// and runtime symbolization.
var std = &capturer{
	enabled:   gate.Enabled,
	callers:   callers,
	symbolize: symbolizeRuntime,
}

// Enabled reports whether backtrace capture is switched on for this process.
// The answer is fixed after the first call.
func Enabled() bool { return gate.Enabled() }

// Holder owns at most one lazily resolved backtrace.
//
// A Holder is meant to be embedded in an error value and created alongside
// it. The zero value holds no backtrace and is equivalent to None().
// Holders are safe for concurrent use.
type Holder struct {
	trace *Trace
}

// New captures the call stack of its caller if capture is enabled for the
// process, and returns an empty Holder otherwise.
//
// Capture only records program counters; symbol resolution is deferred until
// Backtrace is first called.
func New(opts ...Option) Holder {
	return std.holder(opts)
}

// None returns a Holder without a backtrace, regardless of the process
// setting. Use it on paths that must never pay for a capture.
func None() Holder { return Holder{} }

// Captured reports whether h holds a backtrace. It does not resolve symbols.
func (h Holder) Captured() bool { return h.trace != nil }

// Backtrace returns the resolved backtrace, or nil if none was captured.
//
// The first call symbolizes the trace; concurrent callers wait for it to
// finish. Every call on the same Holder returns the same *Trace.
func (h Holder) Backtrace() *Trace {
	if h.trace == nil {
		return nil
	}
	h.trace.resolve()
	return h.trace
}

// String renders the resolved backtrace, or "<no backtrace>".
// Rendering resolves the trace if it has not been resolved yet.
func (h Holder) String() string {
	t := h.Backtrace()
	if t == nil {
		return "<no backtrace>"
	}
	return t.String()
}

// GoString implements fmt.GoStringer for %#v. Like String, it resolves the
// trace.
func (h Holder) GoString() string {
	t := h.Backtrace()
	if t == nil {
		return "backtrace.Holder{backtrace: nil}"
	}
	return "backtrace.Holder{backtrace: [\n" + t.String() + "]}"
}

// capturer binds the gate, the stack walker and the symbolizer together.
type capturer struct {
	enabled   func() bool
	callers   func(skip, depth int) []uintptr
	symbolize symbolizer
}

// holderSkip drops runtime.Callers, callers, capturer.holder and the exported
// constructor, so the first recorded frame is the constructor's caller.
const holderSkip = 4

func (c *capturer) holder(opts []Option) Holder {
	if !c.enabled() {
		return Holder{}
	}
	cfg := config{depth: DefaultDepth}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.depth <= 0 {
		cfg.depth = DefaultDepth
	}
	if cfg.skip < 0 {
		cfg.skip = 0
	}
	return Holder{trace: &Trace{
		pcs:       c.callers(holderSkip+cfg.skip, cfg.depth),
		symbolize: c.symbolize,
	}}
}
