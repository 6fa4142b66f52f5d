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

/// Op identifies a single instruction.
///
type Op uint8

/// Instruction tags produced by Decode.
///
const (
	OpInvalid Op = iota
	OpSys              // 0nnn
	OpCls              // 00E0
	OpRet              // 00EE
	OpJump             // 1nnn
	OpCall             // 2nnn
	OpSkipIf           // 3xkk
	OpSkipIfNot        // 4xkk
	OpSkipIfXY         // 5xy0
	OpLoadX            // 6xkk
	OpAddX             // 7xkk
	OpLoadXY           // 8xy0
	OpOr               // 8xy1
	OpAnd              // 8xy2
	OpXor              // 8xy3
	OpAddXY            // 8xy4
	OpSubXY            // 8xy5
	OpShr              // 8xy6
	OpSubYX            // 8xy7
	OpShl              // 8xyE
	OpSkipIfNotXY      // 9xy0
	OpLoadI            // Annn
	OpJumpV0           // Bnnn
	OpRnd              // Cxkk
	OpDrw              // Dxyn
	OpSkipIfPressed    // Ex9E
	OpSkipIfNotPressed // ExA1
	OpLoadXDT          // Fx07
	OpLoadXK           // Fx0A
	OpLoadDTX          // Fx15
	OpLoadSTX          // Fx18
	OpAddIX            // Fx1E
	OpLoadF            // Fx29
	OpLoadB            // Fx33
	OpSaveRegs         // Fx55
	OpLoadRegs         // Fx65
)

/// pattern matches an instruction word when word&mask == value.
///
type pattern struct {
	mask  uint16
	value uint16
	op    Op
}

/// patterns are grouped by the top nibble of the word. Within a group
/// the first match wins, so exact words come before catch-alls.
///
var patterns = [16][]pattern{
	0x0: {
		{0xFFFF, 0x00E0, OpCls},
		{0xFFFF, 0x00EE, OpRet},
		{0xF000, 0x0000, OpSys},
	},
	0x1: {{0xF000, 0x1000, OpJump}},
	0x2: {{0xF000, 0x2000, OpCall}},
	0x3: {{0xF000, 0x3000, OpSkipIf}},
	0x4: {{0xF000, 0x4000, OpSkipIfNot}},
	0x5: {{0xF00F, 0x5000, OpSkipIfXY}},
	0x6: {{0xF000, 0x6000, OpLoadX}},
	0x7: {{0xF000, 0x7000, OpAddX}},
	0x8: {
		{0xF00F, 0x8000, OpLoadXY},
		{0xF00F, 0x8001, OpOr},
		{0xF00F, 0x8002, OpAnd},
		{0xF00F, 0x8003, OpXor},
		{0xF00F, 0x8004, OpAddXY},
		{0xF00F, 0x8005, OpSubXY},
		{0xF00F, 0x8006, OpShr},
		{0xF00F, 0x8007, OpSubYX},
		{0xF00F, 0x800E, OpShl},
	},
	0x9: {{0xF00F, 0x9000, OpSkipIfNotXY}},
	0xA: {{0xF000, 0xA000, OpLoadI}},
	0xB: {{0xF000, 0xB000, OpJumpV0}},
	0xC: {{0xF000, 0xC000, OpRnd}},
	0xD: {{0xF000, 0xD000, OpDrw}},
	0xE: {
		{0xF0FF, 0xE09E, OpSkipIfPressed},
		{0xF0FF, 0xE0A1, OpSkipIfNotPressed},
	},
	0xF: {
		{0xF0FF, 0xF007, OpLoadXDT},
		{0xF0FF, 0xF00A, OpLoadXK},
		{0xF0FF, 0xF015, OpLoadDTX},
		{0xF0FF, 0xF018, OpLoadSTX},
		{0xF0FF, 0xF01E, OpAddIX},
		{0xF0FF, 0xF029, OpLoadF},
		{0xF0FF, 0xF033, OpLoadB},
		{0xF0FF, 0xF055, OpSaveRegs},
		{0xF0FF, 0xF065, OpLoadRegs},
	},
}

/// Instruction is a decoded instruction word.
///
type Instruction struct {
	Op   Op
	Word uint16
}

/// Decode maps an instruction word to its instruction. Words that match
/// nothing return an OpInvalid instruction and ErrInvalidOpcode.
///
func Decode(word uint16) (Instruction, error) {
	for _, p := range patterns[word>>12] {
		if word&p.mask == p.value {
			return Instruction{Op: p.op, Word: word}, nil
		}
	}

	return Instruction{Op: OpInvalid, Word: word}, ErrInvalidOpcode
}

/// X is the register operand in bits 8-11.
///
func (i Instruction) X() uint8 {
	return uint8(i.Word >> 8 & 0xF)
}

/// Y is the register operand in bits 4-7.
///
func (i Instruction) Y() uint8 {
	return uint8(i.Word >> 4 & 0xF)
}

/// N is the 4-bit literal in bits 0-3.
///
func (i Instruction) N() uint8 {
	return uint8(i.Word & 0xF)
}

/// KK is the 8-bit literal in bits 0-7.
///
func (i Instruction) KK() byte {
	return byte(i.Word & 0xFF)
}

/// NNN is the 12-bit address in bits 0-11.
///
func (i Instruction) NNN() uint16 {
	return i.Word & 0xFFF
}
