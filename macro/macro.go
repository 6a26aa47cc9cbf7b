// This file is part of Gopher64.
//
// Gopher64 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher64 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher64.  If not, see <https://www.gnu.org/licenses/>.

package macro

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/jetsetilly/gopher64/hardware/input"
	"github.com/jetsetilly/gopher64/hardware/vic"
	"github.com/jetsetilly/gopher64/logger"
	lua "github.com/yuin/gopher-lua"
)

// Emulation is the part of the emulation that a macro controls. The functions
// will be called from the macro goroutine.
type Emulation interface {
	KeyPress(input.Key) error
	KeyRelease(input.Key) error
	Restore() error
	Joystick(port int, state input.Joystick) error
}

// Macro is a type that allows control of an emulation from a Lua script.
type Macro struct {
	emulation Emulation

	filename string
	script   string

	// called when the script calls quit()
	onQuit func()

	frameNum chan int

	crit   sync.Mutex
	cancel context.CancelFunc
	last   int

	done chan struct{}
	err  error
}

const headerID = "-- gopher64macro"

// the number of frames to wait after an input function
const inputDelay = 2

// ErrNotMacro is returned by NewMacro if the file does not start with the
// macro header.
var ErrNotMacro = errors.New("macro: not a macro file")

// NewMacro is the preferred method of initialisation for the Macro type. The
// onQuit function may be nil.
func NewMacro(filename string, emulation Emulation, onQuit func()) (*Macro, error) {
	buffer, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("macro: %w", err)
	}

	script := string(buffer)
	header, _, _ := strings.Cut(script, "\n")
	if strings.TrimSpace(header) != headerID {
		return nil, fmt.Errorf("%w: %s", ErrNotMacro, filename)
	}

	mcr := &Macro{
		emulation: emulation,
		filename:  filename,
		script:    script,
		onQuit:    onQuit,
		frameNum:  make(chan int),
		done:      make(chan struct{}),
	}

	return mcr, nil
}

// Run the macro in a new goroutine. The Done() channel is closed when the
// macro ends.
func (mcr *Macro) Run() {
	ctx, cancel := context.WithCancel(context.Background())

	mcr.crit.Lock()
	mcr.cancel = cancel
	mcr.crit.Unlock()

	go func() {
		defer close(mcr.done)
		defer cancel()

		err := mcr.run(ctx)
		if err != nil && ctx.Err() == nil {
			mcr.err = fmt.Errorf("macro: %s: %w", mcr.filename, err)
			logger.Log(logger.Allow, "macro", mcr.err)
		}
	}()
}

// Done returns a channel that is closed when the macro has ended.
func (mcr *Macro) Done() <-chan struct{} {
	return mcr.done
}

// Err returns the error that ended the macro. Only valid once the Done()
// channel has been closed.
func (mcr *Macro) Err() error {
	return mcr.err
}

// Quit forces a running macro to end. Does nothing if the macro is not
// currently running.
func (mcr *Macro) Quit() {
	mcr.crit.Lock()
	defer mcr.crit.Unlock()
	if mcr.cancel != nil {
		mcr.cancel()
	}
}

// NewFrame implements the vic.FrameSink interface.
func (mcr *Macro) NewFrame(f *vic.Frame) {
	mcr.crit.Lock()
	mcr.last = f.Number
	mcr.crit.Unlock()

	// drain any frameNum channel before pushing a new value
	select {
	case <-mcr.frameNum:
	default:
	}
	select {
	case mcr.frameNum <- f.Number:
	default:
	}
}

func (mcr *Macro) run(ctx context.Context) error {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.LoadLibName, lua.OpenPackage},
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}

	L.SetContext(ctx)

	// wait is used by the wait() function but also by the input functions
	// to give the emulation the chance to see the change
	wait := func(L *lua.LState, w int) {
		var target int
		select {
		case fn := <-mcr.frameNum:
			target = fn + w
		case <-ctx.Done():
			L.RaiseError("quit")
		}

		for {
			select {
			case fn := <-mcr.frameNum:
				if fn >= target {
					return
				}
			case <-ctx.Done():
				L.RaiseError("quit")
			}
		}
	}

	check := func(L *lua.LState, err error) {
		if err != nil {
			L.RaiseError("%s", err.Error())
		}
	}

	key := func(L *lua.LState) input.Key {
		k, err := input.Lookup(L.CheckString(1))
		check(L, err)
		return k
	}

	funcs := map[string]lua.LGFunction{
		"press": func(L *lua.LState) int {
			check(L, mcr.emulation.KeyPress(key(L)))
			wait(L, inputDelay)
			return 0
		},
		"release": func(L *lua.LState) int {
			check(L, mcr.emulation.KeyRelease(key(L)))
			wait(L, inputDelay)
			return 0
		},
		"type": func(L *lua.LState) int {
			for _, r := range strings.ToUpper(L.CheckString(1)) {
				keys, err := input.KeysForRune(r)
				check(L, err)
				for _, k := range keys {
					check(L, mcr.emulation.KeyPress(k))
				}
				wait(L, inputDelay)
				for _, k := range keys {
					check(L, mcr.emulation.KeyRelease(k))
				}
				wait(L, inputDelay)
			}
			return 0
		},
		"joystick": func(L *lua.LState) int {
			port := L.CheckInt(1)
			state := input.ParseJoystick(L.OptString(2, ""))
			check(L, mcr.emulation.Joystick(port, state))
			wait(L, inputDelay)
			return 0
		},
		"restore": func(L *lua.LState) int {
			check(L, mcr.emulation.Restore())
			wait(L, inputDelay)
			return 0
		},
		"wait": func(L *lua.LState) int {
			wait(L, L.OptInt(1, 60))
			return 0
		},
		"frame": func(L *lua.LState) int {
			mcr.crit.Lock()
			defer mcr.crit.Unlock()
			L.Push(lua.LNumber(mcr.last))
			return 1
		},
		"quit": func(L *lua.LState) int {
			if mcr.onQuit != nil {
				mcr.onQuit()
			}
			mcr.Quit()
			L.RaiseError("quit")
			return 0
		},
		"print": func(L *lua.LState) int {
			var s []string
			for i := 1; i <= L.GetTop(); i++ {
				s = append(s, L.ToStringMeta(L.Get(i)).String())
			}
			logger.Log(logger.Allow, "macro", strings.Join(s, " "))
			return 0
		},
	}
	for n, fn := range funcs {
		L.SetGlobal(n, L.NewFunction(fn))
	}

	return L.DoString(mcr.script)
}
