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

import (
	"errors"
	"fmt"
)

var (
	/// ErrProgramTooLarge is returned by Load when a program image does
	/// not fit between ProgramStart and the end of memory.
	///
	ErrProgramTooLarge = errors.New("program too large to fit in memory")

	/// ErrInvalidOpcode is returned when a fetched word decodes to no
	/// known instruction.
	///
	ErrInvalidOpcode = errors.New("invalid opcode")

	/// ErrStackOverflow is returned by CALL with all 16 stack slots in use.
	///
	ErrStackOverflow = errors.New("stack overflow")

	/// ErrStackUnderflow is returned by RET with an empty stack.
	///
	ErrStackUnderflow = errors.New("stack underflow")

	/// ErrAddress is returned for any memory access past MaxAddress.
	///
	ErrAddress = errors.New("memory address out of range")

	/// ErrReadOnly is returned for a write into the interpreter area,
	/// which holds the font.
	///
	ErrReadOnly = errors.New("write to read-only memory")

	/// ErrInvalidKey is returned when a key instruction names a key
	/// outside of 0x0-0xF.
	///
	ErrInvalidKey = errors.New("invalid key")
)

/// Fault is a machine error raised while executing a single cycle.
///
type Fault struct {
	/// PC is the address the faulting instruction was fetched from.
	///
	PC uint16

	/// Word is the instruction word, 0 if the fetch itself failed.
	///
	Word uint16

	/// Err is one of the sentinel errors above.
	///
	Err error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%04X: %04X: %v", f.PC, f.Word, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
