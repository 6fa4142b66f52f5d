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
	"flag"
	"fmt"
	"image/color"
	"io"
	"strings"
	"time"

	"github.com/chip8vm/chip8vm/chip8"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/image/colornames"
)

const (
	/// FrontendSDL opens a native window.
	///
	FrontendSDL = "sdl"

	/// FrontendTerminal draws inside the controlling terminal.
	///
	FrontendTerminal = "terminal"
)

/// Options are everything configurable from the command line.
///
type Options struct {
	ROM      string
	Scale    int
	Delay    time.Duration
	Frontend string
	Layout   string
	FG, BG   string
	Release  time.Duration
	Continue bool
	Trace    bool
	Debug    bool
	Quiet    bool
	Disasm   bool

	// resolved by validate
	Keys       KeyMap
	Foreground color.RGBA
	Background color.RGBA
}

/// parseOptions reads the command line arguments (without the program
/// name). Usage and flag errors are written to output.
///
func parseOptions(args []string, output io.Writer) (Options, error) {
	var opts Options
	var delay int

	flags := flag.NewFlagSet("chip8vm", flag.ContinueOnError)
	flags.SetOutput(output)
	flags.Usage = func() {
		fmt.Fprintf(output, "usage: chip8vm [options] [rom]\n\n")
		flags.PrintDefaults()
	}

	flags.IntVar(&opts.Scale, "scale", 10, "size in window pixels of one display pixel")
	flags.IntVar(&delay, "delay", 2, "milliseconds between instructions, 0 runs unthrottled")
	flags.StringVar(&opts.Frontend, "frontend", FrontendSDL, "display to run in (sdl/terminal)")
	flags.StringVar(&opts.Layout, "keys", DefaultLayout, "16 host keys bound to keypad 0-F")
	flags.StringVar(&opts.FG, "fg", "white", "colour name of lit pixels")
	flags.StringVar(&opts.BG, "bg", "black", "colour name of unlit pixels")
	flags.DurationVar(&opts.Release, "release", 150*time.Millisecond, "how long a terminal key stays held after it is pressed")
	flags.BoolVar(&opts.Continue, "continue", false, "log faulting instructions and keep running")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, needs -debug")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.Quiet, "q", false, "only log errors")
	flags.BoolVar(&opts.Disasm, "disasm", false, "print a listing of the program and exit")

	if err := flags.Parse(args); err != nil {
		return opts, err
	}

	switch flags.NArg() {
	case 0:
	case 1:
		opts.ROM = flags.Arg(0)
	default:
		flags.Usage()
		return opts, fmt.Errorf("expected at most one program, got %d", flags.NArg())
	}

	opts.Delay = time.Duration(delay) * time.Millisecond

	if err := opts.validate(); err != nil {
		return opts, err
	}

	return opts, nil
}

/// validate checks option ranges and resolves the key layout and palette.
///
func (opts *Options) validate() error {
	var err error

	if opts.Scale < 1 {
		return fmt.Errorf("invalid scale %d", opts.Scale)
	}
	if opts.Delay < 0 {
		return fmt.Errorf("invalid delay %v", opts.Delay)
	}
	if opts.Release <= 0 {
		return fmt.Errorf("invalid release window %v", opts.Release)
	}

	opts.Frontend = strings.ToLower(opts.Frontend)
	if opts.Frontend != FrontendSDL && opts.Frontend != FrontendTerminal {
		return fmt.Errorf("unsupported frontend: %s. Valid options: %s, %s",
			opts.Frontend, FrontendSDL, FrontendTerminal)
	}

	if opts.Keys, err = NewKeyMap(opts.Layout); err != nil {
		return err
	}
	if opts.Foreground, err = colorByName(opts.FG); err != nil {
		return err
	}
	if opts.Background, err = colorByName(opts.BG); err != nil {
		return err
	}

	return nil
}

/// machineConfig maps the options onto a machine configuration.
///
func (opts *Options) machineConfig(logger *log.Logger) chip8.Config {
	cfg := chip8.DefaultConfig()
	cfg.CycleDelay = opts.Delay
	cfg.Trace = opts.Trace
	cfg.Logger = logger

	if opts.Continue {
		cfg.Policy = chip8.Continue
	}

	return cfg
}

/// colorByName looks up an SVG 1.1 colour keyword.
///
func colorByName(name string) (color.RGBA, error) {
	c, ok := colornames.Map[strings.ToLower(name)]
	if !ok {
		return color.RGBA{}, fmt.Errorf("unknown colour %q", name)
	}

	return c, nil
}
