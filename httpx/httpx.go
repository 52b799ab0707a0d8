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

package httpx

import (
	"net/http"

	"google.golang.org/protobuf/encoding/protojson"

	"dirpx.dev/backtrace/adapter"
)

// Writer is a thin adapter that exposes the backtrace of an error over HTTP,
// typically from a debug-only error handler.
type Writer struct {
	// Status is the HTTP status to write. Zero means 500.
	Status int
}

// Write serializes the backtrace carried by err as a google.rpc.DebugInfo
// JSON document:
//
//	{"stackEntries": ["<function> <file>:<line>", ...], "detail": "<err.Error()>"}
//
// Errors without a backtrace produce a document with only the detail set.
// Nothing is written for a nil error.
//
// No redaction is performed here: file paths and function names are exposed
// as-is. Do not mount this on public endpoints.
func (w Writer) Write(rw http.ResponseWriter, err error) {
	if err == nil {
		return
	}

	status := w.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}

	di := adapter.ToDebugInfo(adapter.FromError(err), err.Error())

	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)

	// protojson keeps the well-known google.rpc field names (json_name).
	b, _ := (protojson.MarshalOptions{
		EmitUnpopulated: false,
		UseProtoNames:   false,
	}).Marshal(di)
	_, _ = rw.Write(b)
}
