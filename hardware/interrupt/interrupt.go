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

// Package interrupt records the interrupt lines of a single processor.
//
// Any number of sources can be connected to the IRQ and NMI lines. The IRQ line
// is level triggered and is asserted while at least one source asserts it.
// The NMI line is edge triggered and a new NMI is only pending when the line
// goes from released to asserted.
//
// The clock at which a line was asserted is recorded. A processor only
// services an interrupt once Delay cycles have passed since the assertion.
package interrupt

import (
	"fmt"

	"github.com/jetsetilly/gopher1541/curated"
	"github.com/jetsetilly/gopher1541/snapshot"
)

// Delay is the number of cycles between the assertion of an interrupt line and
// the earliest point at which the processor will service it.
const Delay = 2

// Kind is a bit field of pending interrupt types.
type Kind uint8

// List of valid Kind bits.
const (
	NMI Kind = 1 << iota
	IRQ
	Reset
	Trap
	Monitor
)

func (k Kind) String() string {
	s := ""
	for _, n := range []struct {
		k    Kind
		name string
	}{{NMI, "NMI"}, {IRQ, "IRQ"}, {Reset, "RESET"}, {Trap, "TRAP"}, {Monitor, "MONITOR"}} {
		if k&n.k == n.k {
			if s != "" {
				s += "|"
			}
			s += n.name
		}
	}
	if s == "" {
		return "none"
	}
	return s
}

// line state for a single source
const (
	sourceIRQ uint8 = 0x01
	sourceNMI uint8 = 0x02
)

// Status is the interrupt status of a processor.
type Status struct {
	names   []string
	sources []uint8

	// number of sources currently asserting each line
	nirq int
	nnmi int

	// clock at which each line was last asserted
	irqClk uint64
	nmiClk uint64

	global Kind
}

// NewStatus is the preferred method of initialisation for the Status type.
func NewStatus() *Status {
	return &Status{}
}

func (s *Status) String() string {
	return fmt.Sprintf("pending: %s irq: %d nmi: %d", s.global, s.nirq, s.nnmi)
}

// NewSource adds an interrupt source. The returned value identifies the source
// in calls to SetIRQ() and SetNMI().
func (s *Status) NewSource(name string) int {
	s.names = append(s.names, name)
	s.sources = append(s.sources, 0)
	return len(s.sources) - 1
}

// SetIRQ changes the state of the IRQ line for a source.
func (s *Status) SetIRQ(source int, asserted bool, clk uint64) {
	if asserted {
		if s.sources[source]&sourceIRQ == 0 {
			s.sources[source] |= sourceIRQ
			s.nirq++
			if s.nirq == 1 {
				s.global |= IRQ
				s.irqClk = clk
			}
		}
	} else {
		if s.sources[source]&sourceIRQ != 0 {
			s.sources[source] &^= sourceIRQ
			s.nirq--
			if s.nirq == 0 {
				s.global &^= IRQ
			}
		}
	}
}

// SetNMI changes the state of the NMI line for a source.
func (s *Status) SetNMI(source int, asserted bool, clk uint64) {
	if asserted {
		if s.sources[source]&sourceNMI == 0 {
			s.sources[source] |= sourceNMI
			s.nnmi++
			if s.nnmi == 1 {
				s.global |= NMI
				s.nmiClk = clk
			}
		}
	} else {
		if s.sources[source]&sourceNMI != 0 {
			s.sources[source] &^= sourceNMI
			s.nnmi--
		}
	}
}

// CheckIRQ returns true if an IRQ should be serviced at the clock. The
// delayed argument is true if the previous instruction delays the
// recognition of an IRQ by one instruction (CLI and PLP).
func (s *Status) CheckIRQ(clk uint64, delayed bool) bool {
	return s.global&IRQ == IRQ && !delayed && clk >= s.irqClk+Delay
}

// CheckNMI returns true if an NMI should be serviced at the clock.
func (s *Status) CheckNMI(clk uint64) bool {
	return s.global&NMI == NMI && clk >= s.nmiClk+Delay
}

// AckNMI acknowledges the pending NMI. The line must be released and asserted
// again before another NMI is pending.
func (s *Status) AckNMI() {
	s.global &^= NMI
}

// TriggerReset makes a reset pending.
func (s *Status) TriggerReset() {
	s.global |= Reset
}

// ResetPending returns true if a reset is pending.
func (s *Status) ResetPending() bool {
	return s.global&Reset == Reset
}

// AckReset acknowledges the pending reset.
func (s *Status) AckReset() {
	s.global &^= Reset
}

// SetMonitor sets or clears the monitor request.
func (s *Status) SetMonitor(set bool) {
	if set {
		s.global |= Monitor
	} else {
		s.global &^= Monitor
	}
}

// Monitor returns true if the monitor has been requested.
func (s *Status) Monitor() bool {
	return s.global&Monitor == Monitor
}

// Pending returns the pending interrupt kinds.
func (s *Status) Pending() Kind {
	return s.global
}

// Reset releases every line. The monitor request survives the reset.
func (s *Status) Reset() {
	for i := range s.sources {
		s.sources[i] = 0
	}
	s.nirq = 0
	s.nnmi = 0
	s.irqClk = 0
	s.nmiClk = 0
	s.global &= Monitor
}

// Copy returns a deep copy of the status.
func (s *Status) Copy() *Status {
	c := *s
	c.names = append([]string(nil), s.names...)
	c.sources = append([]uint8(nil), s.sources...)
	return &c
}

// Rebase subtracts sub from the recorded assertion clocks.
func (s *Status) Rebase(sub uint64) {
	if s.irqClk > sub {
		s.irqClk -= sub
	} else {
		s.irqClk = 0
	}
	if s.nmiClk > sub {
		s.nmiClk -= sub
	} else {
		s.nmiClk = 0
	}
}

// Snapshot writes the interrupt status to the module.
func (s *Status) Snapshot(m *snapshot.Module) {
	m.B(uint8(s.global))
	m.DW(uint32(s.nirq))
	m.QW(s.irqClk)
	m.DW(uint32(s.nnmi))
	m.QW(s.nmiClk)
	m.B(uint8(len(s.sources)))
	m.BA(s.sources)
}

// Restore reads the interrupt status from the module. The status is only
// changed if the entire block is read without error. The number of sources in
// the snapshot must match the number of sources registered.
func (s *Status) Restore(m *snapshot.Module) error {
	global := Kind(m.ReadB())
	nirq := int(m.ReadDW())
	irqClk := m.ReadQW()
	nnmi := int(m.ReadDW())
	nmiClk := m.ReadQW()
	n := int(m.ReadB())
	sources := m.ReadBA(n)
	if err := m.Err(); err != nil {
		return err
	}

	if n != len(s.sources) {
		return curated.Errorf("interrupt: snapshot has %d sources, processor has %d", n, len(s.sources))
	}

	s.global = global
	s.nirq = nirq
	s.irqClk = irqClk
	s.nnmi = nnmi
	s.nmiClk = nmiClk
	copy(s.sources, sources)

	return nil
}
