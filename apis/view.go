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

// TraceView is a serializable snapshot of a resolved backtrace.
//
// This is *not* the internal trace type: it is the shape that is safe to log
// or to send over the wire, with frames ordered innermost first.
type TraceView struct {
	// Frames lists the call stack, innermost call first.
	Frames []FrameView `json:"frames,omitempty"`
}

// FrameView is a single frame of a TraceView.
type FrameView struct {
	// Function is the fully qualified function name. It is empty when the
	// program counter could not be symbolized.
	Function string `json:"function,omitempty"`
	// File is the absolute source path of the call site.
	File string `json:"file,omitempty"`
	// Line is the source line of the call site.
	Line int `json:"line,omitempty"`
}
