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

/// String returns the assembly mnemonic and operands of the instruction.
///
func (i Instruction) String() string {
	x, y := i.X(), i.Y()

	switch i.Op {
	case OpCls:
		return "CLS"
	case OpRet:
		return "RET"
	case OpSys:
		return fmt.Sprintf("SYS    #%03X", i.NNN())
	case OpJump:
		return fmt.Sprintf("JP     #%03X", i.NNN())
	case OpCall:
		return fmt.Sprintf("CALL   #%03X", i.NNN())
	case OpSkipIf:
		return fmt.Sprintf("SE     V%X, #%02X", x, i.KK())
	case OpSkipIfNot:
		return fmt.Sprintf("SNE    V%X, #%02X", x, i.KK())
	case OpSkipIfXY:
		return fmt.Sprintf("SE     V%X, V%X", x, y)
	case OpLoadX:
		return fmt.Sprintf("LD     V%X, #%02X", x, i.KK())
	case OpAddX:
		return fmt.Sprintf("ADD    V%X, #%02X", x, i.KK())
	case OpLoadXY:
		return fmt.Sprintf("LD     V%X, V%X", x, y)
	case OpOr:
		return fmt.Sprintf("OR     V%X, V%X", x, y)
	case OpAnd:
		return fmt.Sprintf("AND    V%X, V%X", x, y)
	case OpXor:
		return fmt.Sprintf("XOR    V%X, V%X", x, y)
	case OpAddXY:
		return fmt.Sprintf("ADD    V%X, V%X", x, y)
	case OpSubXY:
		return fmt.Sprintf("SUB    V%X, V%X", x, y)
	case OpShr:
		return fmt.Sprintf("SHR    V%X", x)
	case OpSubYX:
		return fmt.Sprintf("SUBN   V%X, V%X", x, y)
	case OpShl:
		return fmt.Sprintf("SHL    V%X", x)
	case OpSkipIfNotXY:
		return fmt.Sprintf("SNE    V%X, V%X", x, y)
	case OpLoadI:
		return fmt.Sprintf("LD     I, #%03X", i.NNN())
	case OpJumpV0:
		return fmt.Sprintf("JP     V0, #%03X", i.NNN())
	case OpRnd:
		return fmt.Sprintf("RND    V%X, #%02X", x, i.KK())
	case OpDrw:
		return fmt.Sprintf("DRW    V%X, V%X, %d", x, y, i.N())
	case OpSkipIfPressed:
		return fmt.Sprintf("SKP    V%X", x)
	case OpSkipIfNotPressed:
		return fmt.Sprintf("SKNP   V%X", x)
	case OpLoadXDT:
		return fmt.Sprintf("LD     V%X, DT", x)
	case OpLoadXK:
		return fmt.Sprintf("LD     V%X, K", x)
	case OpLoadDTX:
		return fmt.Sprintf("LD     DT, V%X", x)
	case OpLoadSTX:
		return fmt.Sprintf("LD     ST, V%X", x)
	case OpAddIX:
		return fmt.Sprintf("ADD    I, V%X", x)
	case OpLoadF:
		return fmt.Sprintf("LD     F, V%X", x)
	case OpLoadB:
		return fmt.Sprintf("LD     B, V%X", x)
	case OpSaveRegs:
		return fmt.Sprintf("LD     [I], V%X", x)
	case OpLoadRegs:
		return fmt.Sprintf("LD     V%X, [I]", x)
	}

	// unknown instruction
	return fmt.Sprintf("??     #%04X", i.Word)
}

/// Disassemble the instruction at address in memory.
///
func (vm *Machine) Disassemble(address uint16) string {
	word, err := vm.Memory.Word(address)
	if err != nil {
		return ""
	}

	inst, _ := Decode(word)

	return fmt.Sprintf("%04X - %s", address, inst)
}

/// Disassemble a program image as it would be laid out once loaded. A
/// trailing odd byte is listed as data.
///
func Disassemble(program []byte) []string {
	lines := make([]string, 0, len(program)/2+1)

	for i := 0; i+1 < len(program); i += 2 {
		inst, _ := Decode(uint16(program[i])<<8 | uint16(program[i+1]))

		lines = append(lines, fmt.Sprintf("%04X - %s", ProgramStart+i, inst))
	}

	if len(program)%2 == 1 {
		lines = append(lines, fmt.Sprintf("%04X - DB     #%02X", ProgramStart+len(program)-1, program[len(program)-1]))
	}

	return lines
}
