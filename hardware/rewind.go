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

package hardware

import (
	"bytes"
	"fmt"

	"github.com/jetsetilly/gopher1541/curated"
	"github.com/jetsetilly/gopher1541/snapshot"
)

// Rewind keeps a bounded history of machine snapshots. The oldest snapshot is
// forgotten when a new snapshot is recorded and the history is full.
type Rewind struct {
	m     *Machine
	steps []rewindStep
	max   int
}

type rewindStep struct {
	clk  uint64
	data []byte
}

// DefaultRewindSteps is the number of snapshots kept by the history if no
// other value is given to NewRewind().
const DefaultRewindSteps = 100

// NewRewind is the preferred method of initialisation for the Rewind type. A
// max value of zero or less means DefaultRewindSteps.
func NewRewind(m *Machine, max int) *Rewind {
	if max <= 0 {
		max = DefaultRewindSteps
	}
	return &Rewind{
		m:     m,
		steps: make([]rewindStep, 0, max),
		max:   max,
	}
}

func (r *Rewind) String() string {
	if len(r.steps) == 0 {
		return "no history"
	}
	return fmt.Sprintf("%d steps [%d to %d]", len(r.steps), r.steps[0].clk, r.steps[len(r.steps)-1].clk)
}

// Reset forgets every snapshot.
func (r *Rewind) Reset() {
	r.steps = r.steps[:0]
}

// Len returns the number of snapshots in the history.
func (r *Rewind) Len() int {
	return len(r.steps)
}

// Record a snapshot of the machine.
func (r *Rewind) Record() {
	w := snapshot.NewWriter()
	r.m.Snapshot(w)

	if len(r.steps) >= r.max {
		copy(r.steps, r.steps[1:])
		r.steps = r.steps[:len(r.steps)-1]
	}
	r.steps = append(r.steps, rewindStep{clk: r.m.clk, data: w.Bytes()})
}

// Clock returns the host clock of the snapshot at index i. Index zero is the
// oldest snapshot.
func (r *Rewind) Clock(i int) uint64 {
	return r.steps[i].clk
}

// GotoLast restores the most recent snapshot. Snapshots recorded after the
// restored snapshot are forgotten, which for GotoLast() means none.
func (r *Rewind) GotoLast() error {
	return r.Goto(len(r.steps) - 1)
}

// Goto restores the snapshot at index i. Index zero is the oldest snapshot.
// Snapshots more recent than i are forgotten.
func (r *Rewind) Goto(i int) error {
	if i < 0 || i >= len(r.steps) {
		return curated.Errorf("rewind: no snapshot at index %d", i)
	}

	rd, err := snapshot.NewReader(bytes.NewReader(r.steps[i].data))
	if err != nil {
		return curated.Errorf("rewind: %v", err)
	}
	if err := r.m.Restore(rd); err != nil {
		return curated.Errorf("rewind: %v", err)
	}

	r.steps = r.steps[:i+1]

	return nil
}
