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
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"

	"github.com/chip8vm/chip8vm/chip8"
	"github.com/gdamore/tcell/v2"
	"github.com/retroenv/retrogolib/log"
	"github.com/sqweek/dialog"
)

/// display is a port that owns a host resource.
///
type display interface {
	chip8.Port

	Close()
}

func init() {
	runtime.LockOSThread()
}

func main() {
	opts, err := parseOptions(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}

		createLogger(false, false).Fatal(err.Error())
	}

	logger := createLogger(opts.Debug, opts.Quiet)

	if err := run(logger, opts); err != nil {
		logger.Fatal(err.Error())
	}
}

/// run loads the program and runs it until the user quits, the
/// process is interrupted or the machine halts on a fault.
///
func run(logger *log.Logger, opts Options) error {
	path := opts.ROM
	if path == "" {
		var err error

		path, err = dialog.File().Filter("CHIP-8 ROM", "ch8", "c8").Title("Load ROM").Load()
		if errors.Is(err, dialog.ErrCancelled) {
			logger.Info("No program selected")
			return nil
		}
		if err != nil {
			return fmt.Errorf("selecting program: %w", err)
		}
	}

	program, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading program: %w", err)
	}

	if opts.Disasm {
		for _, line := range chip8.Disassemble(program) {
			fmt.Println(line)
		}
		return nil
	}

	vm := chip8.New(opts.machineConfig(logger))
	if err := vm.Load(program); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	port, err := openDisplay(opts, filepath.Base(path))
	if err != nil {
		return err
	}
	defer port.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("Running",
		log.String("program", path),
		log.String("frontend", opts.Frontend))

	err = vm.Run(ctx, port)

	// Ctrl+C outside the terminal frontend
	if errors.Is(err, context.Canceled) {
		logger.Info("Interrupted")
		return nil
	}

	return err
}

/// openDisplay creates the frontend port selected by the options.
///
func openDisplay(opts Options, title string) (display, error) {
	if opts.Frontend == FrontendTerminal {
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("opening terminal: %w", err)
		}

		return NewTerminal(screen, opts.Keys, opts.Release, opts.Foreground, opts.Background)
	}

	return NewScreen("CHIP-8 - "+title, opts.Scale, opts.Keys, opts.Foreground, opts.Background)
}
