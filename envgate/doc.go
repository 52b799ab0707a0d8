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

// Package envgate provides a process-lifetime boolean switch backed by a
// single environment variable.
//
// A Gate reads its variable at most once, on the first call to Enabled, and
// caches the decision for the remainder of the process:
//
//   - unset variable: disabled;
//   - variable set to the exact string "0": disabled;
//   - variable set to anything else (including the empty string): enabled.
//
// Later changes to the environment have no effect on a Gate that has already
// decided. Concurrent first callers are serialized: exactly one of them
// performs the lookup and commits the decision, all others observe it.
package envgate
