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

/// Keypad holds the pressed state of the 16 hex keys.
///
type Keypad [16]bool

/// Press marks key as held. Keys outside 0x0-0xF are ignored.
///
func (k *Keypad) Press(key uint8) {
	if int(key) < len(k) {
		k[key] = true
	}
}

/// Release marks key as up.
///
func (k *Keypad) Release(key uint8) {
	if int(key) < len(k) {
		k[key] = false
	}
}

/// Pressed returns true if key is held.
///
func (k *Keypad) Pressed(key uint8) bool {
	return int(key) < len(k) && k[key]
}

/// Lowest returns the lowest-indexed key held, if any.
///
func (k *Keypad) Lowest() (uint8, bool) {
	for i, down := range k {
		if down {
			return uint8(i), true
		}
	}

	return 0, false
}
