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

import "fmt"

const (
	/// MemorySize is the number of addressable bytes.
	///
	MemorySize = 0x1000

	/// MaxAddress is the last addressable byte.
	///
	MaxAddress = MemorySize - 1

	/// ProgramStart is where programs are loaded and begin executing.
	///
	ProgramStart = 0x200

	/// MaxProgramSize is the largest image Load accepts.
	///
	MaxProgramSize = MemorySize - ProgramStart

	/// FontStart is the address of glyph 0 of the built-in font.
	///
	FontStart = 0x50

	/// GlyphSize is the number of bytes (rows) in each font glyph.
	///
	GlyphSize = 5
)

/// Font holds the 4x5 hexadecimal digit sprites 0-F.
///
var Font = [16 * GlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

/// Memory is the flat address space of the machine. Everything below
/// ProgramStart is reserved for the interpreter and the font.
///
type Memory [MemorySize]byte

/// newMemory returns a zeroed memory image with the font installed.
///
func newMemory() Memory {
	var m Memory

	copy(m[FontStart:], Font[:])

	return m
}

/// span validates an n byte access starting at addr.
///
func span(addr uint16, n int) error {
	if int(addr)+n > MemorySize {
		return fmt.Errorf("%w: %d bytes at %04X", ErrAddress, n, addr)
	}

	return nil
}

/// Read returns n bytes starting at addr. The slice aliases memory.
///
func (m *Memory) Read(addr uint16, n int) ([]byte, error) {
	if err := span(addr, n); err != nil {
		return nil, err
	}

	return m[addr : int(addr)+n], nil
}

/// Write copies data to memory at addr. Nothing is written unless
/// the whole span is writable.
///
func (m *Memory) Write(addr uint16, data ...byte) error {
	if err := span(addr, len(data)); err != nil {
		return err
	}

	if addr < ProgramStart && len(data) > 0 {
		return fmt.Errorf("%w: %04X", ErrReadOnly, addr)
	}

	copy(m[addr:], data)

	return nil
}

/// Word reads the big-endian 16-bit value at addr.
///
func (m *Memory) Word(addr uint16) (uint16, error) {
	b, err := m.Read(addr, 2)
	if err != nil {
		return 0, err
	}

	return uint16(b[0])<<8 | uint16(b[1]), nil
}
