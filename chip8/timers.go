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
	"sync"
	"time"
)

/// TimerRate is how often the delay and sound timers count down.
///
const TimerRate = time.Second / 60

/// Timers are the delay and sound countdown registers. They are the only
/// state shared with the timer goroutine, so they carry their own lock.
///
type Timers struct {
	mu sync.Mutex

	delay byte
	sound byte
}

/// Delay returns the delay timer.
///
func (t *Timers) Delay() byte {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.delay
}

/// Sound returns the sound timer. A tone should play while it is > 0.
///
func (t *Timers) Sound() byte {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.sound
}

/// SetDelay loads the delay timer.
///
func (t *Timers) SetDelay(v byte) {
	t.mu.Lock()
	t.delay = v
	t.mu.Unlock()
}

/// SetSound loads the sound timer.
///
func (t *Timers) SetSound(v byte) {
	t.mu.Lock()
	t.sound = v
	t.mu.Unlock()
}

/// Tick counts both timers down by one, stopping at zero.
///
func (t *Timers) Tick() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.delay > 0 {
		t.delay--
	}
	if t.sound > 0 {
		t.sound--
	}
}

/// Reset zeroes both timers.
///
func (t *Timers) Reset() {
	t.mu.Lock()
	t.delay, t.sound = 0, 0
	t.mu.Unlock()
}

/// Run ticks the timers at TimerRate until ctx is done.
///
func (t *Timers) Run(ctx context.Context) error {
	clock := time.NewTicker(TimerRate)
	defer clock.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-clock.C:
			t.Tick()
		}
	}
}
