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
	"unicode"
	"unicode/utf8"
)

/// DefaultLayout maps keypad keys 0-F, in order, to the left side of a
/// QWERTY keyboard:
///
///   1 2 3 4      1 2 3 C
///   Q W E R  ->  4 5 6 D
///   A S D F      7 8 9 E
///   Z X C V      A 0 B F
///
const DefaultLayout = "x123qweasdzc4rfv"

/// KeyMap is a mapping of host keyboard runes to CHIP-8 keys.
///
type KeyMap map[rune]uint8

/// NewKeyMap builds a KeyMap from a layout of 16 distinct characters,
/// where the i-th character presses key i.
///
func NewKeyMap(layout string) (KeyMap, error) {
	if n := utf8.RuneCountInString(layout); n != 16 {
		return nil, fmt.Errorf("key layout needs 16 characters, got %d", n)
	}

	keys := make(KeyMap, 16)
	key := uint8(0)

	for _, r := range layout {
		r = unicode.ToLower(r)

		if _, dup := keys[r]; dup {
			return nil, fmt.Errorf("key layout repeats %q", r)
		}

		keys[r] = key
		key++
	}

	return keys, nil
}

/// Lookup returns the CHIP-8 key bound to r. Case is ignored.
///
func (m KeyMap) Lookup(r rune) (uint8, bool) {
	key, ok := m[unicode.ToLower(r)]
	return key, ok
}
