package lua

import (
	"fmt"

	glua "github.com/yuin/gopher-lua"
)

// State wraps a sandboxed Lua interpreter for filter scripts.
//
// gopher-lua states are not goroutine safe. A State follows the
// engine's single-threaded contract: create, use and close it on one
// goroutine.
type State struct {
	L      *glua.LState
	closed bool
}

// NewState creates a Lua state with only the safe standard libraries
// loaded. Filesystem, process and module loading facilities are not
// available to scripts.
func NewState() *State {
	L := glua.NewState(glua.Options{SkipOpenLibs: true})

	glua.OpenBase(L)
	glua.OpenTable(L)
	glua.OpenString(L)
	glua.OpenMath(L)

	s := &State{L: L}
	s.installSandbox()
	return s
}

// installSandbox removes the escape hatches the base library carries.
// io, os and debug are never opened, so the only routes to the host
// are the loader functions and require.
func (s *State) installSandbox() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		s.L.SetGlobal(name, glua.LNil)
	}

	// string, table and math are already globals; there is nothing
	// left for require to load.
	s.L.SetGlobal("require", s.L.NewFunction(func(L *glua.LState) int {
		L.RaiseError("module %q is not available to filter scripts", L.CheckString(1))
		return 0
	}))
}

// DoFile loads and executes a script file.
func (s *State) DoFile(path string) error {
	if s.closed {
		return ErrStateClosed
	}
	return s.protect(func() error { return s.L.DoFile(path) })
}

// DoString executes a script held in a string.
func (s *State) DoString(code string) error {
	if s.closed {
		return ErrStateClosed
	}
	return s.protect(func() error { return s.L.DoString(code) })
}

// protect converts Lua panics into errors.
func (s *State) protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// Global returns the value of a global variable.
func (s *State) Global(name string) glua.LValue {
	if s.closed {
		return glua.LNil
	}
	return s.L.GetGlobal(name)
}

// IsClosed reports whether Close has been called.
func (s *State) IsClosed() bool {
	return s.closed
}

// Close releases the interpreter. Closing twice is a no-op.
func (s *State) Close() {
	if s.closed {
		return
	}
	s.L.Close()
	s.closed = true
}
