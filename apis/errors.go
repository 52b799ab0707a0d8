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

package apis

import "dirpx.dev/backtrace"

// TracedError represents an error that may carry the call stack captured
// when it was created.
//
// Error types get this method for free by embedding backtrace.Holder:
//
//	type Error struct {
//	    backtrace.Holder
//	    msg string
//	}
//
// Backtrace returns nil when capture was disabled for the process or skipped
// for this error. The first call pays the symbol resolution cost; later calls
// return the same resolved trace.
type TracedError interface {
	error

	// Backtrace returns the resolved call stack, or nil.
	Backtrace() *backtrace.Trace
}

// Ensure the holder provides the method TracedError relies on.
var _ interface{ Backtrace() *backtrace.Trace } = backtrace.Holder{}
