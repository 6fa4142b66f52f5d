/* Copyright (c) 2017 Jeffrey Massung
 *
 * This software is provided 'as-is', without any express or implied
 * warranty.  In no event will the authors be held liable for any damages
 * arising from the use of this software.
 *
 * Permission is granted to anyone to use this software for any purpose,
 * including commercial applications, and to alter it and redistribute it
 * freely, subject to the following restrictions:
 *
 * 1. The origin of this software must not be misrepresented; you must not
 *    claim that you wrote the original software. If you use this software
 *    in a product, an acknowledgment in the product documentation would be
 *    appreciated but is not required.
 *
 * 2. Altered source versions must be plainly marked as such, and must not be
 *    misrepresented as being the original software.
 *
 * 3. This notice may not be removed or altered from any source distribution.
 */

package main

import (
	"fmt"
	"image/color"

	"github.com/chip8vm/chip8vm/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

/// Screen is an SDL window showing the CHIP-8 display and reading the
/// host keyboard.
///
type Screen struct {
	window   *sdl.Window
	renderer *sdl.Renderer

	keys   KeyMap
	fg, bg color.RGBA

	// last frame rendered
	frame chip8.Framebuffer
	drawn bool
}

/// NewScreen opens a window where each display pixel is scale by scale
/// window pixels. SDL must be called from the main thread.
///
func NewScreen(title string, scale int, keys KeyMap, fg, bg color.RGBA) (*Screen, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("initializing SDL: %w", err)
	}

	s := &Screen{
		keys: keys,
		fg:   fg,
		bg:   bg,
	}

	var err error

	// create the main window and renderer
	w, h := int32(chip8.Width*scale), int32(chip8.Height*scale)
	flags := sdl.WINDOW_OPENGL | sdl.WINDOWPOS_CENTERED
	if s.window, s.renderer, err = sdl.CreateWindowAndRenderer(w, h, uint32(flags)); err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("creating window: %w", err)
	}

	s.window.SetTitle(title)

	// draw in display pixels
	if err = s.renderer.SetScale(float32(scale), float32(scale)); err != nil {
		s.Close()
		return nil, fmt.Errorf("scaling renderer: %w", err)
	}

	return s, nil
}

/// Close the window and shut down SDL.
///
func (s *Screen) Close() {
	s.renderer.Destroy()
	s.window.Destroy()

	sdl.Quit()
}

/// Poll drains the SDL event queue into the keypad. Closing the window
/// or pressing escape halts the machine.
///
func (s *Screen) Poll(keys *chip8.Keypad) bool {
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch ev := e.(type) {
		case *sdl.QuitEvent:
			return true
		case *sdl.WindowEvent:
			if ev.Event == sdl.WINDOWEVENT_EXPOSED {
				s.drawn = false
			}
		case *sdl.KeyboardEvent:
			if ev.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
				return true
			}

			key, ok := s.keys.Lookup(rune(ev.Keysym.Sym))
			if !ok {
				continue
			}

			if ev.Type == sdl.KEYDOWN {
				keys.Press(key)
			} else {
				keys.Release(key)
			}
		}
	}

	return false
}

/// Present renders the display if it changed since the last frame.
///
func (s *Screen) Present(video *chip8.Framebuffer) {
	if s.drawn && s.frame.Equal(video) {
		return
	}

	s.frame = *video
	s.drawn = true

	s.renderer.SetDrawColor(s.bg.R, s.bg.G, s.bg.B, 255)
	s.renderer.Clear()

	// set the pixel color
	s.renderer.SetDrawColor(s.fg.R, s.fg.G, s.fg.B, 255)

	for p, on := range video {
		if on {
			x := int32(p % chip8.Width)
			y := int32(p / chip8.Width)

			s.renderer.DrawPoint(x, y)
		}
	}

	s.renderer.Present()
}
