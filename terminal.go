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
	"time"

	"github.com/chip8vm/chip8vm/chip8"
	"github.com/gdamore/tcell/v2"
)

/// pixels is the glyph for one cell: the upper half is drawn with the
/// foreground colour and the lower half with the background.
///
const pixels = '▀'

/// Terminal shows the CHIP-8 display in a terminal, two display rows
/// per text row.
///
/// Terminals only report key presses, so a key stays down for the
/// release window after its last press (or auto-repeat).
///
type Terminal struct {
	screen  tcell.Screen
	keys    KeyMap
	release time.Duration
	fg, bg  tcell.Color

	events chan tcell.Event
	quit   chan struct{}

	// time each keypad key was last pressed
	held [16]time.Time
	now  func() time.Time

	frame chip8.Framebuffer
	drawn bool
}

/// NewTerminal takes over screen until Close is called.
///
func NewTerminal(screen tcell.Screen, keys KeyMap, release time.Duration, fg, bg color.RGBA) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}

	t := &Terminal{
		screen:  screen,
		keys:    keys,
		release: release,
		fg:      tcell.NewRGBColor(int32(fg.R), int32(fg.G), int32(fg.B)),
		bg:      tcell.NewRGBColor(int32(bg.R), int32(bg.G), int32(bg.B)),
		events:  make(chan tcell.Event, 64),
		quit:    make(chan struct{}),
		now:     time.Now,
	}

	screen.HideCursor()
	screen.Clear()

	go t.pump()

	return t, nil
}

/// pump forwards terminal events until the screen is finalized.
///
func (t *Terminal) pump() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}

		select {
		case t.events <- ev:
		case <-t.quit:
			return
		}
	}
}

/// Close restores the terminal.
///
func (t *Terminal) Close() {
	close(t.quit)
	t.screen.Fini()
}

/// Poll applies pending key presses and expires held keys. Escape or
/// Ctrl-C halts the machine.
///
func (t *Terminal) Poll(keys *chip8.Keypad) bool {
	now := t.now()

	for pending := true; pending; {
		select {
		case e := <-t.events:
			if t.handle(e, now) {
				return true
			}
		default:
			pending = false
		}
	}

	for i, at := range t.held {
		if !at.IsZero() && now.Sub(at) < t.release {
			keys.Press(uint8(i))
		} else {
			t.held[i] = time.Time{}
			keys.Release(uint8(i))
		}
	}

	return false
}

/// handle a single event, returning true on a quit request.
///
func (t *Terminal) handle(e tcell.Event, now time.Time) bool {
	switch ev := e.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			if key, ok := t.keys.Lookup(ev.Rune()); ok {
				t.held[key] = now
			}
		}
	case *tcell.EventResize:
		t.screen.Sync()
		t.drawn = false
	}

	return false
}

/// Present draws the display if it changed since the last frame.
///
func (t *Terminal) Present(video *chip8.Framebuffer) {
	if t.drawn && t.frame.Equal(video) {
		return
	}

	t.frame = *video
	t.drawn = true

	for y := 0; y < chip8.Height; y += 2 {
		for x := 0; x < chip8.Width; x++ {
			style := tcell.StyleDefault.
				Foreground(t.color(video.At(x, y))).
				Background(t.color(video.At(x, y+1)))

			t.screen.SetContent(x, y/2, pixels, nil, style)
		}
	}

	t.screen.Show()
}

func (t *Terminal) color(on bool) tcell.Color {
	if on {
		return t.fg
	}
	return t.bg
}
