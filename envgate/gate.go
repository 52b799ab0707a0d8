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

package envgate

import (
	"os"
	"sync"
	"sync/atomic"
)

// Decision is the cached state of a Gate.
type Decision int32

const (
	// Unknown means the variable has not been read yet.
	Unknown Decision = iota
	// Disabled means the variable was unset or "0".
	Disabled
	// Enabled means the variable was set to anything but "0".
	Enabled
)

// String returns a lowercase name of the decision.
func (d Decision) String() string {
	switch d {
	case Unknown:
		return "unknown"
	case Disabled:
		return "disabled"
	case Enabled:
		return "enabled"
	default:
		return "invalid"
	}
}

// LookupFunc has the shape of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Gate is a once-evaluated, environment-driven switch.
//
// The zero value is not usable; construct gates with New or NewWithLookup.
// A Gate is safe for concurrent use.
type Gate struct {
	name   string
	lookup LookupFunc

	once  sync.Once
	state atomic.Int32
}

// New returns a Gate reading the named variable from the process environment.
func New(name string) *Gate {
	return NewWithLookup(name, os.LookupEnv)
}

// NewWithLookup returns a Gate that resolves the named variable through lookup.
// A nil lookup behaves like an always-unset environment.
func NewWithLookup(name string, lookup LookupFunc) *Gate {
	if lookup == nil {
		lookup = func(string) (string, bool) { return "", false }
	}
	return &Gate{name: name, lookup: lookup}
}

// Name returns the environment variable consulted by g.
func (g *Gate) Name() string { return g.name }

// Enabled reports whether the gate is open.
//
// The first call performs the lookup; every call after it is a single atomic
// load. Callers racing on the first call wait for the winner and return the
// decision it committed.
func (g *Gate) Enabled() bool {
	if d := g.Decision(); d != Unknown {
		return d == Enabled
	}
	g.once.Do(func() {
		d := Disabled
		if Parse(g.lookup(g.name)) {
			d = Enabled
		}
		g.state.Store(int32(d))
	})
	return g.Decision() == Enabled
}

// Decision returns the cached decision without forcing evaluation.
func (g *Gate) Decision() Decision {
	return Decision(g.state.Load())
}

// Parse applies the gate rule to a raw lookup result: enabled iff the variable
// is present and its value is not exactly "0".
func Parse(value string, ok bool) bool {
	return ok && value != "0"
}
