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

// Package backtrace captures call stacks for error values cheaply and
// resolves them lazily.
//
// An error type embeds a Holder and fills it with New when the error is
// created:
//
//	type Error struct {
//	    backtrace.Holder
//	    msg string
//	}
//
//	func Errorf(format string, args ...any) *Error {
//	    return &Error{Holder: backtrace.New(backtrace.WithSkip(1)), msg: fmt.Sprintf(format, args...)}
//	}
//
// Capture is off unless the DIRPX_BACKTRACE environment variable is set to a
// value other than "0". The variable is read once per process. When capture
// is off, New costs a single atomic load.
//
// When capture is on, New records raw program counters only. Turning them
// into function, file and line information is deferred until the first call
// to Holder.Backtrace (or to String/GoString, which call it) and happens at
// most once per Holder, even under concurrent access.
package backtrace
