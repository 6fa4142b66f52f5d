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
	"context"
	"errors"
	"runtime"
	"time"

	"github.com/retroenv/retrogolib/log"
	"golang.org/x/sync/errgroup"
)

/// Port is the display and input device driving the machine.
///
type Port interface {
	/// Poll drains pending input into keys without blocking and returns
	/// true if the user asked to quit.
	///
	Poll(keys *Keypad) bool

	/// Present shows the current display.
	///
	Present(video *Framebuffer)
}

/// Run executes instructions every CycleDelay until the port asks to
/// halt, ctx is done, or a cycle faults under the Halt policy. The
/// timers count down on their own goroutine while it runs.
///
/// Run must be called from the goroutine that owns the port; windowing
/// libraries usually require that to be the main thread.
///
func (vm *Machine) Run(ctx context.Context, port Port) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return vm.Timers.Run(gctx)
	})

	err := vm.loop(gctx, port)

	// stop the timers
	cancel()

	if werr := g.Wait(); err == nil {
		err = werr
	}

	return err
}

/// loop is the cooperative CPU loop.
///
func (vm *Machine) loop(ctx context.Context, port Port) error {
	var clock <-chan time.Time

	if vm.config.CycleDelay > 0 {
		ticker := time.NewTicker(vm.config.CycleDelay)
		defer ticker.Stop()

		clock = ticker.C
	}

	for {
		if port.Poll(&vm.Keys) {
			vm.logger.Info("halt requested", log.Int("cycles", int(vm.Cycles)))
			return nil
		}

		if clock != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-clock:
			}
		} else {
			if err := ctx.Err(); err != nil {
				return err
			}

			runtime.Gosched()
		}

		if err := vm.cycle(port); err != nil {
			return err
		}
	}
}

/// cycle steps once, applies the fault policy and presents the display.
///
func (vm *Machine) cycle(port Port) error {
	err := vm.Step()

	port.Present(&vm.Video)

	if err == nil {
		return nil
	}

	var fault *Fault
	if errors.As(err, &fault) && vm.config.Policy == Continue {
		vm.logger.Warn("machine fault",
			log.Hex("pc", fault.PC),
			log.Hex("opcode", fault.Word),
			log.Err(fault.Err))
		return nil
	}

	vm.logger.Error("machine fault", log.Err(err))

	return err
}
