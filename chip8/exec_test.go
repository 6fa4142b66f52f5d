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
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// exec runs a single instruction word placed at the program start.
func exec(vm *Machine, word uint16) error {
	vm.PC = ProgramStart
	vm.Memory[ProgramStart] = byte(word >> 8)
	vm.Memory[ProgramStart+1] = byte(word)
	return vm.Step()
}

func TestAddXY(t *testing.T) {
	vm := newTestMachine(t)

	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			vm.V[1], vm.V[2] = byte(a), byte(b)
			assert.NoError(t, exec(vm, 0x8124))

			assert.Equal(t, byte((a+b)%256), vm.V[1])
			assert.Equal(t, flag(a+b > 255), vm.V[0xF])
		}
	}
}

func TestSubXY(t *testing.T) {
	vm := newTestMachine(t)

	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			vm.V[1], vm.V[2] = byte(a), byte(b)
			assert.NoError(t, exec(vm, 0x8125))

			assert.Equal(t, byte(a-b), vm.V[1])
			assert.Equal(t, flag(a > b), vm.V[0xF])
		}
	}

	// equal operands do not set the flag
	vm.V[1], vm.V[2] = 9, 9
	assert.NoError(t, exec(vm, 0x8125))
	assert.Equal(t, byte(0), vm.V[0xF])

	vm.V[1], vm.V[2] = 5, 10
	assert.NoError(t, exec(vm, 0x8125))
	assert.Equal(t, byte(251), vm.V[1])
	assert.Equal(t, byte(0), vm.V[0xF])
}

func TestSubXYScenario(t *testing.T) {
	vm := newTestMachine(t,
		0x6A03, // LD VA, #03
		0x6B0A, // LD VB, #0A
		0x8AB5, // SUB VA, VB
	)
	steps(t, vm, 3)

	assert.Equal(t, byte(249), vm.V[0xA])
	assert.Equal(t, byte(0), vm.V[0xF])
}

func TestSubYX(t *testing.T) {
	vm := newTestMachine(t)

	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			vm.V[1], vm.V[2] = byte(a), byte(b)
			assert.NoError(t, exec(vm, 0x8127))

			assert.Equal(t, byte(b-a), vm.V[1])
			assert.Equal(t, flag(b > a), vm.V[0xF])
		}
	}
}

func TestShift(t *testing.T) {
	vm := newTestMachine(t)

	for v := 0; v < 256; v++ {
		vm.V[3] = byte(v)
		assert.NoError(t, exec(vm, 0x8306))
		assert.Equal(t, byte(v>>1), vm.V[3])
		assert.Equal(t, byte(v&1), vm.V[0xF])

		vm.V[3] = byte(v)
		assert.NoError(t, exec(vm, 0x830E))
		assert.Equal(t, byte(v<<1), vm.V[3])
		assert.Equal(t, byte(v>>7), vm.V[0xF])
	}
}

func TestFlagOverwritesDestination(t *testing.T) {
	tests := []struct {
		name string
		word uint16
		vf   byte
		v1   byte
		want byte
	}{
		{"add with carry", 0x8F14, 0xFF, 0x01, 1},
		{"add without carry", 0x8F14, 0x01, 0x01, 0},
		{"sub without borrow", 0x8F15, 0x0A, 0x05, 1},
		{"sub with borrow", 0x8F15, 0x05, 0x0A, 0},
		{"subn without borrow", 0x8F17, 0x05, 0x0A, 1},
		{"subn with borrow", 0x8F17, 0x0A, 0x05, 0},
		{"shr odd", 0x8F06, 0x03, 0, 1},
		{"shr even", 0x8F06, 0x02, 0, 0},
		{"shl high", 0x8F0E, 0x80, 0, 1},
		{"shl low", 0x8F0E, 0x7F, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := newTestMachine(t)
			vm.V[0xF], vm.V[1] = tt.vf, tt.v1

			assert.NoError(t, exec(vm, tt.word))
			assert.Equal(t, tt.want, vm.V[0xF])
		})
	}
}

func TestBitwise(t *testing.T) {
	tests := []struct {
		name string
		word uint16
		want byte
	}{
		{"load", 0x8120, 0x0F},
		{"or", 0x8121, 0x3F},
		{"and", 0x8122, 0x0C},
		{"xor", 0x8123, 0x33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := newTestMachine(t)
			vm.V[1], vm.V[2], vm.V[0xF] = 0x3C, 0x0F, 0x42

			assert.NoError(t, exec(vm, tt.word))
			assert.Equal(t, tt.want, vm.V[1])
			assert.Equal(t, byte(0x42), vm.V[0xF])
		})
	}
}

func TestAddByteWraps(t *testing.T) {
	vm := newTestMachine(t)
	vm.V[4], vm.V[0xF] = 0xFE, 0

	assert.NoError(t, exec(vm, 0x7403))
	assert.Equal(t, byte(0x01), vm.V[4])
	assert.Equal(t, byte(0), vm.V[0xF])
}

func TestSkips(t *testing.T) {
	tests := []struct {
		name string
		word uint16
		skip bool
	}{
		{"SE byte equal", 0x3112, true},
		{"SE byte different", 0x3113, false},
		{"SNE byte equal", 0x4112, false},
		{"SNE byte different", 0x4113, true},
		{"SE reg equal", 0x5120, true},
		{"SE reg different", 0x5130, false},
		{"SNE reg equal", 0x9120, false},
		{"SNE reg different", 0x9130, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := newTestMachine(t)
			vm.V[1], vm.V[2], vm.V[3] = 0x12, 0x12, 0x34

			assert.NoError(t, exec(vm, tt.word))

			want := uint16(ProgramStart + 2)
			if tt.skip {
				want += 2
			}
			assert.Equal(t, want, vm.PC)
		})
	}
}

func TestJumps(t *testing.T) {
	vm := newTestMachine(t)

	assert.NoError(t, exec(vm, 0x1ABC))
	assert.Equal(t, uint16(0xABC), vm.PC)

	// machine code calls are plain jumps
	assert.NoError(t, exec(vm, 0x0345))
	assert.Equal(t, uint16(0x345), vm.PC)

	vm.V[0] = 0x10
	assert.NoError(t, exec(vm, 0xB300))
	assert.Equal(t, uint16(0x310), vm.PC)
}

func TestCallReturn(t *testing.T) {
	vm := newTestMachine(t,
		0x2206, // 200: CALL #206
		0x6101, // 202: LD V1, #01
		0x1204, // 204: JP #204
		0x6202, // 206: LD V2, #02
		0x00EE, // 208: RET
	)

	assert.NoError(t, vm.Step())
	assert.Equal(t, uint16(0x206), vm.PC)
	assert.Equal(t, uint8(1), vm.SP)
	assert.Equal(t, uint16(0x202), vm.Stack[0])

	steps(t, vm, 2)
	assert.Equal(t, uint16(0x202), vm.PC)
	assert.Equal(t, uint8(0), vm.SP)

	steps(t, vm, 2)
	assert.Equal(t, byte(1), vm.V[1])
	assert.Equal(t, byte(2), vm.V[2])
	assert.Equal(t, uint16(0x204), vm.PC)
}

func TestIndex(t *testing.T) {
	vm := newTestMachine(t)

	assert.NoError(t, exec(vm, 0xAFFF))
	assert.Equal(t, uint16(0xFFF), vm.I)

	// not masked to 12 bits
	vm.V[5] = 0x10
	assert.NoError(t, exec(vm, 0xF51E))
	assert.Equal(t, uint16(0x100F), vm.I)

	vm.V[5] = 0xA
	assert.NoError(t, exec(vm, 0xF529))
	assert.Equal(t, uint16(FontStart+0xA*GlyphSize), vm.I)
}

func TestRnd(t *testing.T) {
	var draws int
	vm := New(Config{
		Logger: testLogger(),
		Random: func() byte {
			draws++
			return 0xA5
		},
	})

	assert.NoError(t, exec(vm, 0xC00F))
	assert.Equal(t, byte(0x05), vm.V[0])

	assert.NoError(t, exec(vm, 0xC1F0))
	assert.Equal(t, byte(0xA0), vm.V[1])
	assert.Equal(t, 2, draws)
}

func TestDrawGlyph(t *testing.T) {
	vm := newTestMachine(t,
		0x00E0, // CLS
		0xA050, // LD I, #050
		0xD005, // DRW V0, V0, 5
	)
	steps(t, vm, 3)

	assert.Equal(t, byte(0), vm.V[0xF])

	for r := 0; r < GlyphSize; r++ {
		for c := 0; c < 8; c++ {
			want := Font[r]&(0x80>>c) != 0
			assert.Equal(t, want, vm.Video.At(c, r))
		}
	}
	for c := 0; c < Width; c++ {
		assert.False(t, vm.Video.At(c, GlyphSize))
	}
}

func TestDrawCollision(t *testing.T) {
	vm := newTestMachine(t,
		0xA050, // LD I, #050
		0xD005, // DRW V0, V0, 5
		0xD005, // DRW V0, V0, 5
	)
	steps(t, vm, 2)
	assert.Equal(t, byte(0), vm.V[0xF])

	assert.NoError(t, vm.Step())
	assert.Equal(t, byte(1), vm.V[0xF])
	assert.Equal(t, Framebuffer{}, vm.Video)
}

func TestDrawCollisionIsSticky(t *testing.T) {
	vm := newTestMachine(t)
	assert.NoError(t, vm.Memory.Write(0x300, 0x80, 0x40, 0x20))
	vm.I = 0x300

	// light only the pixel under the first row
	vm.Video.Set(0, 0, true)

	assert.NoError(t, exec(vm, 0xD013))
	assert.Equal(t, byte(1), vm.V[0xF])
	assert.False(t, vm.Video.At(0, 0))
	assert.True(t, vm.Video.At(1, 1))
	assert.True(t, vm.Video.At(2, 2))
}

func TestDrawWraps(t *testing.T) {
	vm := newTestMachine(t)
	assert.NoError(t, vm.Memory.Write(0x300, 0xFF, 0xFF, 0xFF, 0xFF))
	vm.I = 0x300
	vm.V[1], vm.V[2] = 62, 30

	assert.NoError(t, exec(vm, 0xD124))
	assert.Equal(t, byte(0), vm.V[0xF])

	for _, y := range []int{30, 31, 0, 1} {
		for _, x := range []int{62, 63, 0, 1, 2, 3, 4, 5} {
			assert.True(t, vm.Video.At(x, y))
		}
		assert.False(t, vm.Video.At(6, y))
		assert.False(t, vm.Video.At(61, y))
	}
	assert.False(t, vm.Video.At(0, 2))

	// origins past the screen wrap as well
	vm.Video.Clear()
	vm.V[1], vm.V[2] = 64+3, 32+1
	assert.NoError(t, exec(vm, 0xD121))
	assert.True(t, vm.Video.At(3, 1))
}

func TestDrawVFOrigin(t *testing.T) {
	vm := newTestMachine(t)
	vm.I = FontStart + 1*GlyphSize
	vm.V[0xF], vm.V[0] = 10, 0

	// the origin is read before vf is cleared
	assert.NoError(t, exec(vm, 0xDF01))
	assert.True(t, vm.Video.At(12, 0))
	assert.Equal(t, byte(0), vm.V[0xF])
}

func TestDrawOutOfRange(t *testing.T) {
	vm := newTestMachine(t)
	vm.I = 0xFFE
	vm.V[0xF] = 0x42

	err := exec(vm, 0xD005)
	assert.True(t, errors.Is(err, ErrAddress))
	assert.Equal(t, Framebuffer{}, vm.Video)
	assert.Equal(t, byte(0x42), vm.V[0xF])

	// the last byte of memory is drawable
	assert.NoError(t, vm.Memory.Write(0xFFF, 0x80))
	vm.I = 0xFFF
	assert.NoError(t, exec(vm, 0xD001))
	assert.True(t, vm.Video.At(0, 0))
}

func TestKeySkips(t *testing.T) {
	vm := newTestMachine(t)
	vm.V[1] = 0xC
	vm.Keys.Press(0xC)

	assert.NoError(t, exec(vm, 0xE19E))
	assert.Equal(t, uint16(ProgramStart+4), vm.PC)
	assert.NoError(t, exec(vm, 0xE1A1))
	assert.Equal(t, uint16(ProgramStart+2), vm.PC)

	vm.Keys.Release(0xC)
	assert.NoError(t, exec(vm, 0xE19E))
	assert.Equal(t, uint16(ProgramStart+2), vm.PC)
	assert.NoError(t, exec(vm, 0xE1A1))
	assert.Equal(t, uint16(ProgramStart+4), vm.PC)
}

func TestKeySkipInvalidKey(t *testing.T) {
	vm := newTestMachine(t)
	vm.V[1] = 0x10

	for _, word := range []uint16{0xE19E, 0xE1A1} {
		err := exec(vm, word)
		assert.True(t, errors.Is(err, ErrInvalidKey))
		assert.Equal(t, uint16(ProgramStart+2), vm.PC)
	}
}

func TestWaitKey(t *testing.T) {
	vm := newTestMachine(t,
		0xF30A, // LD V3, K
		0x6001, // LD V0, #01
	)

	// nothing held, the instruction repeats
	steps(t, vm, 3)
	assert.Equal(t, uint16(ProgramStart), vm.PC)
	assert.Equal(t, byte(0), vm.V[3])

	vm.Keys.Press(3)
	assert.NoError(t, vm.Step())
	assert.Equal(t, byte(3), vm.V[3])
	assert.Equal(t, uint16(ProgramStart+2), vm.PC)

	assert.NoError(t, vm.Step())
	assert.Equal(t, byte(1), vm.V[0])
}

func TestWaitKeyLowestWins(t *testing.T) {
	vm := newTestMachine(t, 0xF30A)
	vm.Keys.Press(9)
	vm.Keys.Press(5)
	vm.Keys.Press(0xE)

	assert.NoError(t, vm.Step())
	assert.Equal(t, byte(5), vm.V[3])
}

func TestTimerInstructions(t *testing.T) {
	vm := newTestMachine(t,
		0x6030, // LD V0, #30
		0xF015, // LD DT, V0
		0x6120, // LD V1, #20
		0xF118, // LD ST, V1
		0xF207, // LD V2, DT
	)
	steps(t, vm, 5)

	// executing instructions never counts the timers down
	assert.Equal(t, byte(0x30), vm.Timers.Delay())
	assert.Equal(t, byte(0x20), vm.Timers.Sound())
	assert.Equal(t, byte(0x30), vm.V[2])

	vm.Timers.Tick()
	assert.NoError(t, exec(vm, 0xF207))
	assert.Equal(t, byte(0x2F), vm.V[2])
}

func TestLoadB(t *testing.T) {
	tests := []struct {
		value byte
		want  []byte
	}{
		{0, []byte{0, 0, 0}},
		{9, []byte{0, 0, 9}},
		{10, []byte{0, 1, 0}},
		{99, []byte{0, 9, 9}},
		{100, []byte{1, 0, 0}},
		{137, []byte{1, 3, 7}},
		{255, []byte{2, 5, 5}},
	}

	for _, tt := range tests {
		vm := newTestMachine(t)
		vm.I = 0x300
		vm.V[7] = tt.value

		assert.NoError(t, exec(vm, 0xF733))
		assert.Equal(t, tt.want, vm.Memory[0x300:0x303])
	}
}

func TestLoadBOutOfRange(t *testing.T) {
	vm := newTestMachine(t)
	vm.I = 0xFFE
	vm.V[7] = 255

	assert.True(t, errors.Is(exec(vm, 0xF733), ErrAddress))
	assert.Equal(t, byte(0), vm.Memory[0xFFE])
	assert.Equal(t, byte(0), vm.Memory[0xFFF])
}

func TestSaveLoadRegs(t *testing.T) {
	vm := newTestMachine(t)
	vm.I = 0x300
	vm.V = [16]byte{1, 2, 3, 4, 5}

	assert.NoError(t, exec(vm, 0xF355))
	assert.Equal(t, []byte{1, 2, 3, 4, 0}, vm.Memory[0x300:0x305])
	assert.Equal(t, uint16(0x300), vm.I)

	vm.V = [16]byte{}
	vm.V[4] = 0x42
	assert.NoError(t, exec(vm, 0xF365))
	assert.Equal(t, [16]byte{1, 2, 3, 4, 0x42}, vm.V)

	// all registers fit in the last 16 bytes
	vm.I = MaxAddress - 15
	assert.NoError(t, exec(vm, 0xFF55))
	assert.NoError(t, exec(vm, 0xFF65))
}

func TestSaveLoadRegsFaults(t *testing.T) {
	vm := newTestMachine(t)
	vm.V = [16]byte{1, 2, 3, 4}

	vm.I = MaxAddress - 2
	assert.True(t, errors.Is(exec(vm, 0xF355), ErrAddress))
	assert.Equal(t, []byte{0, 0, 0}, vm.Memory[MaxAddress-2:])

	assert.True(t, errors.Is(exec(vm, 0xF365), ErrAddress))
	assert.Equal(t, [16]byte{1, 2, 3, 4}, vm.V)

	// the font is not writable
	vm.I = FontStart
	assert.True(t, errors.Is(exec(vm, 0xF355), ErrReadOnly))
	assert.Equal(t, Font[:4], vm.Memory[FontStart:FontStart+4])
}
