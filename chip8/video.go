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

package chip8

const (
	/// Width of the display in pixels.
	///
	Width = 64

	/// Height of the display in pixels.
	///
	Height = 32
)

/// Framebuffer is the monochrome display, stored row-major. Pixel
/// <x,y> is at index y*Width+x.
///
type Framebuffer [Width * Height]bool

/// index returns the offset of <x,y> or false if off screen.
///
func index(x, y int) (int, bool) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return 0, false
	}

	return y*Width + x, true
}

/// At returns true if the pixel at <x,y> is on. Off-screen pixels are
/// always off.
///
func (fb *Framebuffer) At(x, y int) bool {
	if i, ok := index(x, y); ok {
		return fb[i]
	}

	return false
}

/// Set turns the pixel at <x,y> on or off. Off-screen writes are dropped.
///
func (fb *Framebuffer) Set(x, y int, on bool) {
	if i, ok := index(x, y); ok {
		fb[i] = on
	}
}

/// Flip toggles the pixel at <x,y> and returns true if it was on.
///
func (fb *Framebuffer) Flip(x, y int) bool {
	i, ok := index(x, y)
	if !ok {
		return false
	}

	was := fb[i]
	fb[i] = !was

	return was
}

/// Clear turns every pixel off.
///
func (fb *Framebuffer) Clear() {
	*fb = Framebuffer{}
}

/// Row returns the pixels of scan line y.
///
func (fb *Framebuffer) Row(y int) []bool {
	if y < 0 || y >= Height {
		return nil
	}

	return fb[y*Width : (y+1)*Width]
}

/// Equal returns true if both framebuffers show the same image.
///
func (fb *Framebuffer) Equal(other *Framebuffer) bool {
	return *fb == *other
}
