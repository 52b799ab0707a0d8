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

package adapter

import (
	"errors"
	"strconv"

	"google.golang.org/genproto/googleapis/rpc/errdetails"

	"dirpx.dev/backtrace"
	"dirpx.dev/backtrace/apis"
)

// FromError walks the wrap chain of err and returns the first non-nil
// backtrace carried by an apis.TracedError. It returns nil when no error in
// the chain has one.
//
// Calling FromError resolves the backtrace it returns.
func FromError(err error) *backtrace.Trace {
	for err != nil {
		var te apis.TracedError
		if !errors.As(err, &te) {
			return nil
		}
		if t := te.Backtrace(); t != nil {
			return t
		}
		err = errors.Unwrap(te)
	}
	return nil
}

// ToView converts a resolved trace into a public TraceView. A nil trace yields
// an empty view.
func ToView(t *backtrace.Trace) apis.TraceView {
	frames := t.Frames()
	if len(frames) == 0 {
		return apis.TraceView{}
	}
	v := apis.TraceView{Frames: make([]apis.FrameView, len(frames))}
	for i, f := range frames {
		v.Frames[i] = apis.FrameView{
			Function: f.Function,
			File:     f.File,
			Line:     f.Line,
		}
	}
	return v
}

// ToDebugInfo converts a resolved trace into a google.rpc.DebugInfo detail.
//
// Each stack entry has the form "<function> <file>:<line>", innermost first.
// detail is copied into DebugInfo.Detail as-is. A nil trace yields a
// DebugInfo with only the detail set.
func ToDebugInfo(t *backtrace.Trace, detail string) *errdetails.DebugInfo {
	frames := t.Frames()
	di := &errdetails.DebugInfo{Detail: detail}
	if len(frames) == 0 {
		return di
	}
	di.StackEntries = make([]string, len(frames))
	for i, f := range frames {
		di.StackEntries[i] = f.Function + " " + f.File + ":" + strconv.Itoa(f.Line)
	}
	return di
}
