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

/// execute a decoded instruction. The PC already points past it.
///
func (vm *Machine) execute(inst Instruction) error {
	x, y := inst.X(), inst.Y()

	switch inst.Op {
	case OpCls:
		vm.cls()
	case OpRet:
		return vm.ret()
	case OpSys:
		vm.sys(inst.NNN())
	case OpJump:
		vm.jump(inst.NNN())
	case OpCall:
		return vm.call(inst.NNN())
	case OpSkipIf:
		vm.skipIf(x, inst.KK())
	case OpSkipIfNot:
		vm.skipIfNot(x, inst.KK())
	case OpSkipIfXY:
		vm.skipIfXY(x, y)
	case OpLoadX:
		vm.loadX(x, inst.KK())
	case OpAddX:
		vm.addX(x, inst.KK())
	case OpLoadXY:
		vm.loadXY(x, y)
	case OpOr:
		vm.or(x, y)
	case OpAnd:
		vm.and(x, y)
	case OpXor:
		vm.xor(x, y)
	case OpAddXY:
		vm.addXY(x, y)
	case OpSubXY:
		vm.subXY(x, y)
	case OpShr:
		vm.shr(x)
	case OpSubYX:
		vm.subYX(x, y)
	case OpShl:
		vm.shl(x)
	case OpSkipIfNotXY:
		vm.skipIfNotXY(x, y)
	case OpLoadI:
		vm.loadI(inst.NNN())
	case OpJumpV0:
		vm.jumpV0(inst.NNN())
	case OpRnd:
		vm.rnd(x, inst.KK())
	case OpDrw:
		return vm.drw(x, y, inst.N())
	case OpSkipIfPressed:
		return vm.skipIfPressed(x)
	case OpSkipIfNotPressed:
		return vm.skipIfNotPressed(x)
	case OpLoadXDT:
		vm.loadXDT(x)
	case OpLoadXK:
		vm.loadXK(x)
	case OpLoadDTX:
		vm.loadDTX(x)
	case OpLoadSTX:
		vm.loadSTX(x)
	case OpAddIX:
		vm.addIX(x)
	case OpLoadF:
		vm.loadF(x)
	case OpLoadB:
		return vm.loadB(x)
	case OpSaveRegs:
		return vm.saveRegs(x)
	case OpLoadRegs:
		return vm.loadRegs(x)
	default:
		return ErrInvalidOpcode
	}

	return nil
}

/// Clear the video display memory.
///
func (vm *Machine) cls() {
	vm.Video.Clear()
}

/// system call; there is no RCA 1802 to call into, so it is a jump.
///
func (vm *Machine) sys(address uint16) {
	vm.PC = address
}

/// call a subroutine at address.
///
func (vm *Machine) call(address uint16) error {
	if int(vm.SP) >= len(vm.Stack) {
		return ErrStackOverflow
	}

	// push the return address, already past the call
	vm.Stack[vm.SP] = vm.PC
	vm.SP++

	vm.PC = address

	return nil
}

/// return from subroutine.
///
func (vm *Machine) ret() error {
	if vm.SP == 0 {
		return ErrStackUnderflow
	}

	vm.SP--
	vm.PC = vm.Stack[vm.SP]

	return nil
}

/// jump to address.
///
func (vm *Machine) jump(address uint16) {
	vm.PC = address
}

/// jump to address + v0.
///
func (vm *Machine) jumpV0(address uint16) {
	vm.PC = address + uint16(vm.V[0])
}

/// skip next instruction if vx == n.
///
func (vm *Machine) skipIf(x uint8, b byte) {
	if vm.V[x] == b {
		vm.PC += 2
	}
}

/// skip next instruction if vx != n.
///
func (vm *Machine) skipIfNot(x uint8, b byte) {
	if vm.V[x] != b {
		vm.PC += 2
	}
}

/// skip next instruction if vx == vy.
///
func (vm *Machine) skipIfXY(x, y uint8) {
	if vm.V[x] == vm.V[y] {
		vm.PC += 2
	}
}

/// skip next instruction if vx != vy.
///
func (vm *Machine) skipIfNotXY(x, y uint8) {
	if vm.V[x] != vm.V[y] {
		vm.PC += 2
	}
}

/// key returns the keypad key named by vx.
///
func (vm *Machine) key(x uint8) (uint8, error) {
	k := vm.V[x]
	if int(k) >= len(vm.Keys) {
		return 0, fmt.Errorf("%w: V%X = #%02X", ErrInvalidKey, x, k)
	}

	return k, nil
}

/// skip next instruction if key(vx) is pressed.
///
func (vm *Machine) skipIfPressed(x uint8) error {
	k, err := vm.key(x)
	if err != nil {
		return err
	}

	if vm.Keys.Pressed(k) {
		vm.PC += 2
	}

	return nil
}

/// skip next instruction if key(vx) is not pressed.
///
func (vm *Machine) skipIfNotPressed(x uint8) error {
	k, err := vm.key(x)
	if err != nil {
		return err
	}

	if !vm.Keys.Pressed(k) {
		vm.PC += 2
	}

	return nil
}

/// load n into vx.
///
func (vm *Machine) loadX(x uint8, b byte) {
	vm.V[x] = b
}

/// load y into vx.
///
func (vm *Machine) loadXY(x, y uint8) {
	vm.V[x] = vm.V[y]
}

/// load delay timer into vx.
///
func (vm *Machine) loadXDT(x uint8) {
	vm.V[x] = vm.Timers.Delay()
}

/// load vx into delay timer.
///
func (vm *Machine) loadDTX(x uint8) {
	vm.Timers.SetDelay(vm.V[x])
}

/// load vx into sound timer.
///
func (vm *Machine) loadSTX(x uint8) {
	vm.Timers.SetSound(vm.V[x])
}

/// load vx with the lowest key held. With no key held the instruction
/// is rewound so it runs again next cycle.
///
func (vm *Machine) loadXK(x uint8) {
	if k, ok := vm.Keys.Lowest(); ok {
		vm.V[x] = k
	} else {
		vm.PC -= 2
	}
}

/// load address register.
///
func (vm *Machine) loadI(address uint16) {
	vm.I = address
}

/// load address with BCD of vx.
///
func (vm *Machine) loadB(x uint8) error {
	n := uint16(vm.V[x])
	b := uint16(0)

	// perform 8 shifts
	for i := uint(0); i < 8; i++ {
		if (b>>0)&0xF >= 5 {
			b += 3
		}
		if (b>>4)&0xF >= 5 {
			b += 3 << 4
		}
		if (b>>8)&0xF >= 5 {
			b += 3 << 8
		}

		// apply shift, pull next bit
		b = (b << 1) | (n >> (7 - i) & 1)
	}

	// hundreds, tens, ones
	return vm.Memory.Write(vm.I, byte(b>>8)&0xF, byte(b>>4)&0xF, byte(b)&0xF)
}

/// load font sprite for vx into I.
///
func (vm *Machine) loadF(x uint8) {
	vm.I = FontStart + uint16(vm.V[x])*GlyphSize
}

/// or vx with vy into vx.
///
func (vm *Machine) or(x, y uint8) {
	vm.V[x] |= vm.V[y]
}

/// and vx with vy into vx.
///
func (vm *Machine) and(x, y uint8) {
	vm.V[x] &= vm.V[y]
}

/// xor vx with vy into vx.
///
func (vm *Machine) xor(x, y uint8) {
	vm.V[x] ^= vm.V[y]
}

/// shl vx 1 bit, set carry to MSB of vx before shift.
///
func (vm *Machine) shl(x uint8) {
	v := vm.V[x]

	vm.V[x] = v << 1
	vm.V[0xF] = v >> 7
}

/// shr vx 1 bit, set carry to LSB of vx before shift.
///
func (vm *Machine) shr(x uint8) {
	v := vm.V[x]

	vm.V[x] = v >> 1
	vm.V[0xF] = v & 1
}

/// add n to vx, no carry.
///
func (vm *Machine) addX(x uint8, b byte) {
	vm.V[x] += b
}

/// add vy to vx and set carry.
///
func (vm *Machine) addXY(x, y uint8) {
	sum := uint16(vm.V[x]) + uint16(vm.V[y])

	vm.V[x] = byte(sum)
	vm.V[0xF] = byte(sum >> 8)
}

/// add vx to i. The result is not masked to 12 bits.
///
func (vm *Machine) addIX(x uint8) {
	vm.I += uint16(vm.V[x])
}

/// subtract vy from vx, set carry if vx > vy.
///
func (vm *Machine) subXY(x, y uint8) {
	vx, vy := vm.V[x], vm.V[y]

	vm.V[x] = vx - vy
	vm.V[0xF] = flag(vx > vy)
}

/// subtract vx from vy and store in vx, set carry if vy > vx.
///
func (vm *Machine) subYX(x, y uint8) {
	vx, vy := vm.V[x], vm.V[y]

	vm.V[x] = vy - vx
	vm.V[0xF] = flag(vy > vx)
}

/// load a random number & n into vx.
///
func (vm *Machine) rnd(x uint8, b byte) {
	vm.V[x] = vm.random() & b
}

/// draw a sprite at I to video memory at vx, vy. Sprites wrap around
/// both edges of the screen.
///
func (vm *Machine) drw(x, y, n uint8) error {
	sprite, err := vm.Memory.Read(vm.I, int(n))
	if err != nil {
		return err
	}

	// origin, read before vf is cleared
	ox := int(vm.V[x])
	oy := int(vm.V[y])

	vm.V[0xF] = 0

	for r, s := range sprite {
		py := (oy + r) % Height

		for c := 0; c < 8; c++ {
			if s&(0x80>>c) == 0 {
				continue
			}

			// collision if a lit pixel was turned off
			if vm.Video.Flip((ox+c)%Width, py) {
				vm.V[0xF] = 1
			}
		}
	}

	return nil
}

/// save registers v0..vx to I.
///
func (vm *Machine) saveRegs(x uint8) error {
	return vm.Memory.Write(vm.I, vm.V[:x+1]...)
}

/// load registers v0..vx from I.
///
func (vm *Machine) loadRegs(x uint8) error {
	regs, err := vm.Memory.Read(vm.I, int(x)+1)
	if err != nil {
		return err
	}

	copy(vm.V[:], regs)

	return nil
}

func flag(b bool) byte {
	if b {
		return 1
	}

	return 0
}
