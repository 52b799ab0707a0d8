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

// config collects capture settings for a single New call.
type config struct {
	skip  int
	depth int
}

// Option is a functional option for New.
type Option func(*config)

// WithSkip drops n additional caller frames from the top of the capture.
// Error constructors that wrap New use it to hide their own frames.
// Negative values are treated as zero.
func WithSkip(n int) Option {
	return func(c *config) { c.skip = n }
}

// WithDepth caps the number of recorded frames. Values <= 0 select
// DefaultDepth.
func WithDepth(n int) Option {
	return func(c *config) { c.depth = n }
}
