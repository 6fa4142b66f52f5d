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
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/retroenv/retrogolib/log"
)

/// StackSize is the number of nested subroutine calls allowed.
///
const StackSize = 16

/// FaultPolicy selects what Run does when a cycle faults.
///
type FaultPolicy int

const (
	/// Halt stops Run and returns the fault.
	///
	Halt FaultPolicy = iota

	/// Continue logs the fault and keeps executing.
	///
	Continue
)

/// Config is fixed at construction and never re-read per cycle.
///
type Config struct {
	/// CycleDelay is the time between instructions. Zero runs as fast
	/// as the host allows.
	///
	CycleDelay time.Duration

	/// Policy applied by Run to cycle faults.
	///
	Policy FaultPolicy

	/// Trace logs every executed instruction at debug level.
	///
	Trace bool

	/// Logger receives machine events. A default logger is created
	/// when nil.
	///
	Logger *log.Logger

	/// Random returns one uniformly distributed byte per call for RND.
	/// Defaults to the process-wide generator.
	///
	Random func() byte
}

/// DefaultConfig returns a configuration of roughly 500 instructions per
/// second that halts on the first fault.
///
func DefaultConfig() Config {
	return Config{
		CycleDelay: 2 * time.Millisecond,
		Policy:     Halt,
	}
}

/// Machine is the CHIP-8 virtual machine. All state except the timers
/// belongs to the goroutine calling Step or Run.
///
type Machine struct {
	/// ROM is the pristine image (font and program) that Memory is
	/// restored from on Reset.
	///
	ROM Memory

	/// Memory addressable by programs.
	///
	Memory Memory

	/// Video is the 64x32 display.
	///
	Video Framebuffer

	/// PC is the program counter. All programs begin at 0x200.
	///
	PC uint16

	/// SP is the number of return addresses on the stack.
	///
	SP uint8

	/// Stack holds return addresses for CALL.
	///
	Stack [StackSize]uint16

	/// I is the address register. Only 12 bits are addressable, but the
	/// upper bits are kept.
	///
	I uint16

	/// V are the 16 virtual registers. VF doubles as the flag register.
	///
	V [16]byte

	/// Timers are the delay and sound timers.
	///
	Timers Timers

	/// Keys hold the current state of the keypad. Written by the input
	/// port between cycles.
	///
	Keys Keypad

	/// Cycles is how many instructions have been executed since reset.
	///
	Cycles int64

	config Config
	logger *log.Logger
	random func() byte
}

/// New creates a machine with the font loaded and no program.
///
func New(cfg Config) *Machine {
	vm := &Machine{
		ROM:    newMemory(),
		config: cfg,
		logger: cfg.Logger,
		random: cfg.Random,
	}

	if vm.logger == nil {
		vm.logger = log.NewWithConfig(log.DefaultConfig())
	}
	if vm.random == nil {
		vm.random = func() byte { return byte(rand.Uint32()) }
	}

	vm.Reset()

	return vm
}

/// Load copies a program image to ProgramStart and resets the machine.
/// Images larger than MaxProgramSize are rejected and leave the machine
/// untouched.
///
func (vm *Machine) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrProgramTooLarge, len(program), MaxProgramSize)
	}

	rom := newMemory()
	copy(rom[ProgramStart:], program)

	vm.ROM = rom
	vm.Reset()

	vm.logger.Debug("program loaded",
		log.Int("size", len(program)),
		log.Hex("start", uint16(ProgramStart)))

	return nil
}

/// Reset the machine back to the freshly loaded image.
///
func (vm *Machine) Reset() {
	vm.Memory = vm.ROM

	// a blank screen is the same as a cleared one
	vm.cls()

	vm.PC = ProgramStart
	vm.SP = 0
	vm.Stack = [StackSize]uint16{}
	vm.I = 0
	vm.V = [16]byte{}

	vm.Timers.Reset()
	vm.Keys = Keypad{}

	vm.Cycles = 0
}

/// Step the machine a single instruction. Any error is a *Fault; the
/// machine is left as it was after the fetch advanced the PC.
///
func (vm *Machine) Step() error {
	pc := vm.PC

	word, err := vm.fetch()
	if err != nil {
		return &Fault{PC: pc, Err: err}
	}

	inst, err := Decode(word)
	if err != nil {
		return &Fault{PC: pc, Word: word, Err: err}
	}

	if vm.config.Trace {
		vm.logger.Debug("exec",
			log.Hex("pc", pc),
			log.String("inst", inst.String()))
	}

	if err := vm.execute(inst); err != nil {
		return &Fault{PC: pc, Word: word, Err: err}
	}

	vm.Cycles++

	return nil
}

/// Fetch the next 16-bit instruction and advance the program counter.
///
func (vm *Machine) fetch() (uint16, error) {
	word, err := vm.Memory.Word(vm.PC)
	if err != nil {
		return 0, err
	}

	vm.PC += 2

	return word, nil
}
