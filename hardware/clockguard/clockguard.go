// This file is part of Gopher1541.
//
// Gopher1541 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher1541 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher1541.  If not, see <https://www.gnu.org/licenses/>.

// Package clockguard prevents a clock counter from growing without bound.
//
// Every processor in the emulation has a clock counter and a guard watching
// it. When the counter passes the high-water mark the guard subtracts a fixed
// chunk from the counter and tells every registered callback how much was
// subtracted. The callbacks subtract the same amount from every stored clock
// value that is relative to the counter, so the differences between clock
// values are preserved.
package clockguard

import (
	"fmt"
)

// Default values for the high-water mark and the chunk subtracted on rebase.
const (
	DefaultHighWater = 1 << 62
	DefaultChunk     = 1 << 61
)

// Guard watches a single clock counter.
type Guard struct {
	clk       *uint64
	highWater uint64
	chunk     uint64
	callbacks []func(sub uint64)
}

// New is the preferred method of initialisation for the Guard type. The chunk
// is half the high-water mark.
func New(clk *uint64, highWater uint64) *Guard {
	return NewWithChunk(clk, highWater, highWater/2)
}

// NewWithChunk creates a Guard with a specific rebase chunk. The chunk must be
// greater than zero and no larger than the high-water mark.
func NewWithChunk(clk *uint64, highWater uint64, chunk uint64) *Guard {
	if chunk == 0 || chunk > highWater {
		panic(fmt.Sprintf("clockguard: illegal chunk (%d) for high-water (%d)", chunk, highWater))
	}
	return &Guard{
		clk:       clk,
		highWater: highWater,
		chunk:     chunk,
	}
}

// Register a callback. Callbacks are called in order of registration.
func (g *Guard) Register(f func(sub uint64)) {
	g.callbacks = append(g.callbacks, f)
}

// Chunk returns the amount subtracted from the clock on every rebase.
func (g *Guard) Chunk() uint64 {
	return g.chunk
}

// HighWater returns the clock value above which a rebase happens.
func (g *Guard) HighWater() uint64 {
	return g.highWater
}

// SetHighWater changes the high-water mark. The chunk becomes half the new
// mark.
func (g *Guard) SetHighWater(highWater uint64) {
	if highWater < 2 {
		panic(fmt.Sprintf("clockguard: illegal high-water (%d)", highWater))
	}
	g.highWater = highWater
	g.chunk = highWater / 2
}

// MaybeRebase checks the clock and rebases it if it is beyond the high-water
// mark. Returns the amount subtracted, which is zero if no rebase happened.
func (g *Guard) MaybeRebase() uint64 {
	if *g.clk <= g.highWater {
		return 0
	}

	sub := g.chunk
	*g.clk -= sub
	for _, f := range g.callbacks {
		f(sub)
	}

	return sub
}
