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

package sdlwindow

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/jetsetilly/gopher64/hardware/input"
	"github.com/jetsetilly/gopher64/hardware/vic"
	"github.com/jetsetilly/gopher64/logger"
	"github.com/jetsetilly/gopher64/version"

	"github.com/veandco/go-sdl2/sdl"
)

// Emulation is the part of the emulation that receives input from the window.
type Emulation interface {
	KeyPress(input.Key) error
	KeyRelease(input.Key) error
	Restore() error
	Joystick(port int, state input.Joystick) error
}

// the window is serviced at this rate regardless of the speed of the
// emulation
const serviceRate = time.Second / 60

// Window is an SDL window showing the text screen of the emulation.
//
// MUST ONLY be used from the main thread, with the exception of NewFrame().
type Window struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	pixels   []uint8

	chargen []uint8
	kb      *keyboard

	// the most recent frame from the emulation
	crit  sync.Mutex
	frame vic.Frame
	dirty bool
}

// NewWindow is the preferred method of initialisation for the Window type.
// The scale is the size of each C64 pixel in host pixels.
//
// MUST ONLY be called from the main thread.
func NewWindow(chargen []uint8, scale int, emu Emulation) (*Window, error) {
	// the SDL package calls LockOSThread() but we call it here too. it can't
	// hurt and it makes the requirement explicit
	runtime.LockOSThread()

	if scale < 1 {
		scale = 1
	}

	wnd := &Window{
		pixels:  make([]uint8, Width*Height*pixelDepth),
		chargen: chargen,
		kb:      newKeyboard(emu),
	}

	err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS)
	if err != nil {
		return nil, fmt.Errorf("sdlwindow: %w", err)
	}

	wnd.window, err = sdl.CreateWindow(version.ApplicationName,
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		int32(Width*scale), int32(Height*scale),
		uint32(sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE))
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdlwindow: %w", err)
	}

	wnd.renderer, err = sdl.CreateRenderer(wnd.window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		wnd.window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("sdlwindow: %w", err)
	}

	// the image is scaled to fit the window
	err = wnd.renderer.SetLogicalSize(Width, Height)
	if err != nil {
		wnd.Destroy()
		return nil, fmt.Errorf("sdlwindow: %w", err)
	}

	wnd.texture, err = wnd.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888), int(sdl.TEXTUREACCESS_STREAMING), Width, Height)
	if err != nil {
		wnd.Destroy()
		return nil, fmt.Errorf("sdlwindow: %w", err)
	}

	// MOUSEMOTION events fill up the event queue and are of no use to us
	sdl.EventState(sdl.MOUSEMOTION, sdl.IGNORE)

	return wnd, nil
}

// Destroy the window.
//
// MUST ONLY be called from the main thread.
func (wnd *Window) Destroy() {
	if wnd.texture != nil {
		if err := wnd.texture.Destroy(); err != nil {
			logger.Log(logger.Allow, "sdlwindow", err)
		}
	}
	if wnd.renderer != nil {
		if err := wnd.renderer.Destroy(); err != nil {
			logger.Log(logger.Allow, "sdlwindow", err)
		}
	}
	if wnd.window != nil {
		if err := wnd.window.Destroy(); err != nil {
			logger.Log(logger.Allow, "sdlwindow", err)
		}
	}
	sdl.Quit()
}

// NewFrame implements the vic.FrameSink interface. Safe to call from any
// goroutine.
func (wnd *Window) NewFrame(f *vic.Frame) {
	wnd.crit.Lock()
	defer wnd.crit.Unlock()
	wnd.frame = *f
	wnd.dirty = true
}

// Service handles events and draws the most recent frame. It returns false
// if the window has been closed.
//
// MUST ONLY be called from the main thread.
func (wnd *Window) Service() bool {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			return false

		case *sdl.KeyboardEvent:
			if ev.Repeat != 0 {
				continue
			}
			err := wnd.kb.event(sdl.GetKeyName(ev.Keysym.Sym), ev.Type == sdl.KEYDOWN)
			if err != nil {
				logger.Log(logger.Allow, "sdlwindow", err)
			}
		}
	}

	wnd.crit.Lock()
	dirty := wnd.dirty
	if dirty {
		Render(wnd.pixels, &wnd.frame, wnd.chargen)
		wnd.dirty = false
	}
	wnd.crit.Unlock()

	if !dirty {
		return true
	}

	if err := wnd.texture.Update(nil, wnd.pixels, Width*pixelDepth); err != nil {
		logger.Log(logger.Allow, "sdlwindow", err)
		return true
	}
	if err := wnd.renderer.Clear(); err != nil {
		logger.Log(logger.Allow, "sdlwindow", err)
	}
	if err := wnd.renderer.Copy(wnd.texture, nil, nil); err != nil {
		logger.Log(logger.Allow, "sdlwindow", err)
	}
	wnd.renderer.Present()

	return true
}

// Loop services the window until the emulation ends. The done channel
// receives the result of the emulation. The onClose function is called when
// the window is closed and should cause the emulation to end.
//
// MUST ONLY be called from the main thread.
func (wnd *Window) Loop(done <-chan error, onClose func()) error {
	tck := time.NewTicker(serviceRate)
	defer tck.Stop()

	for {
		select {
		case err := <-done:
			return err
		case <-tck.C:
			if !wnd.Service() {
				onClose()
				return <-done
			}
		}
	}
}
