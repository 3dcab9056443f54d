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

package serialbus

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jetsetilly/gopher1541/hardware/preferences"
	"github.com/jetsetilly/gopher1541/hardware/via"
	"github.com/jetsetilly/gopher1541/logger"
)

// MaxParticipants is the number of drive slots on the bus.
const MaxParticipants = preferences.MaxDrives

// Participant is a drive attached to the bus.
type Participant interface {
	// Execute brings the participant up to date with the host clock. It must
	// return immediately if the participant is already executing.
	Execute(target uint64) error

	// SerialChip is the chip whose CA1 line is connected to ATN and whose
	// shift register receives fast transfers.
	SerialChip() *via.Chip
}

// Variant selects the formula used to combine a participant's output with the
// bus.
type Variant int

// List of valid Variant values.
const (
	// the drive acknowledges ATN in hardware. DATA is pulled whenever the
	// drive's ATN acknowledge output differs from the ATN line
	ATNAcknowledge Variant = iota

	// the drive can only pull CLK and DATA
	PullOnly
)

func (v Variant) String() string {
	switch v {
	case ATNAcknowledge:
		return "ATN acknowledge"
	case PullOnly:
		return "pull only"
	}
	return "unknown variant"
}

// ParseVariant converts a bus variant preference value. The auto value is
// converted to the supplied default.
func ParseVariant(s string, auto Variant) Variant {
	switch s {
	case preferences.BusATNAck:
		return ATNAcknowledge
	case preferences.BusPullOnly:
		return PullOnly
	}
	return auto
}

// Misconfigured is reported for a pull-only participant whose output tries to
// drive the ATN acknowledge line.
var Misconfigured = errors.New("serialbus: participant misconfigured")

// bit of the participant's output that drives the ATN acknowledge line
const atnAck = 0x10

type slot struct {
	p       Participant
	variant Variant

	// the value of the port as written by the participant and the lines that
	// value pulls low
	output uint8
	data   uint8

	// contribution to the bus
	bus uint8

	misconfigured bool
}

// Bus is the IEC serial bus.
type Bus struct {
	perm  logger.Permission
	slots [MaxParticipants]slot

	// the host's contribution. bit 4 is ATN, bit 6 is CLK and bit 7 is DATA.
	// a set bit is a released line
	cpuBus uint8

	// the resolved value as seen by the host and as seen by the drives
	cpuPort   uint8
	drivePort uint8

	// the level of ATN most recently delivered to the participants
	atn bool

	// the first error returned by a participant during a catch-up
	err error
}

// NewBus is the preferred method of initialisation for the Bus type. All lines
// start released.
func NewBus(perm logger.Permission) *Bus {
	b := &Bus{perm: perm}
	b.Reset()
	return b
}

func (b *Bus) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("cpu bus=%02x cpu port=%02x drive port=%02x atn=%v", b.cpuBus, b.cpuPort, b.drivePort, b.atn))
	for i := range b.slots {
		if b.slots[i].p != nil {
			s.WriteString(fmt.Sprintf(" [%d: %02x]", preferences.FirstDevice+i, b.slots[i].bus))
		}
	}
	return s.String()
}

// Reset releases every line. Attached participants stay attached but their
// outputs are forgotten.
func (b *Bus) Reset() {
	b.cpuBus = 0xd0
	b.atn = false
	for i := range b.slots {
		b.slots[i].output = 0x00
		b.slots[i].data = 0xff
		b.slots[i].misconfigured = false
		b.slots[i].bus = 0xff
	}
	for i := range b.slots {
		if b.slots[i].p != nil {
			b.slots[i].bus = b.lines(&b.slots[i])
		}
	}
	b.resolve()
}

func checkSlot(n int) {
	if n < 0 || n >= MaxParticipants {
		panic(fmt.Sprintf("serialbus: slot %d out of range", n))
	}
}

// Attach a participant to a slot. The participant releases every line until it
// first writes its port.
func (b *Bus) Attach(n int, p Participant, variant Variant) {
	checkSlot(n)
	s := &b.slots[n]
	s.p = p
	s.variant = variant
	s.output = 0x00
	s.data = 0xff
	s.misconfigured = false
	s.bus = b.lines(s)
	b.resolve()
}

// Detach the participant from the slot. The slot no longer contributes to the
// bus.
func (b *Bus) Detach(n int) {
	checkSlot(n)
	b.slots[n] = slot{data: 0xff, bus: 0xff}
	b.resolve()
}

// Attached returns true if a participant is attached to the slot.
func (b *Bus) Attached(n int) bool {
	checkSlot(n)
	return b.slots[n].p != nil
}

// SetVariant changes the bus formula used for the participant in the slot.
func (b *Bus) SetVariant(n int, variant Variant) {
	checkSlot(n)
	s := &b.slots[n]
	s.variant = variant
	s.misconfigured = false
	if s.p != nil {
		s.bus = b.lines(s)
		b.resolve()
	}
}

// Variant returns the bus formula used for the participant in the slot.
func (b *Bus) Variant(n int) Variant {
	checkSlot(n)
	return b.slots[n].variant
}

// Misconfigured returns true if the participant in the slot has been clamped to
// the pull-only formula.
func (b *Bus) Misconfigured(n int) bool {
	checkSlot(n)
	return b.slots[n].misconfigured
}

// lines returns the contribution of a participant to the bus
func (b *Bus) lines(s *slot) uint8 {
	data := s.data
	bus := (data << 3) & 0x40
	switch s.variant {
	case ATNAcknowledge:
		bus |= (data << 6) & ((^data ^ b.cpuBus) << 3) & 0x80
	default:
		bus |= (data << 6) & 0x80
	}
	return bus
}

func (b *Bus) resolve() {
	b.cpuPort = b.cpuBus
	for i := range b.slots {
		if b.slots[i].p != nil {
			b.cpuPort &= b.slots[i].bus
		}
	}
	b.drivePort = ((b.cpuPort >> 4) & 0x04) | (b.cpuPort >> 7) | ((b.cpuBus << 3) & 0x80)
}

// catchUp runs every attached participant, except the one in the slot
// indicated, up to the clock
func (b *Bus) catchUp(at uint64, except int) {
	for i := range b.slots {
		if i == except || b.slots[i].p == nil {
			continue
		}
		if err := b.slots[i].p.Execute(at); err != nil && b.err == nil {
			b.err = err
		}
	}
}

// deliverATN signals the change of the ATN level to every attached participant.
// the level is only delivered once no matter how many times the bus is resolved
func (b *Bus) deliverATN() {
	atn := b.cpuBus&0x10 == 0x00
	if atn == b.atn {
		return
	}
	b.atn = atn

	edge := via.Fall
	if atn {
		edge = via.Rise
	}
	for i := range b.slots {
		if b.slots[i].p != nil {
			b.slots[i].p.SerialChip().Signal(via.CA1, edge)
		}
	}
}

// Err returns the first error encountered by a participant while it was being
// brought up to date by the bus. The error is cleared.
func (b *Bus) Err() error {
	err := b.err
	b.err = nil
	return err
}

// OnOutputChanged is called by a participant when the value of the port
// connected to the bus has been written. The clock is the host clock at which
// the write happened.
//
// Writing the same value more than once has no effect on the resolved bus.
func (b *Bus) OnOutputChanged(n int, output uint8, at uint64) {
	checkSlot(n)
	b.catchUp(at, n)

	s := &b.slots[n]
	s.output = output
	s.data = ^output

	if s.variant == PullOnly && s.output&atnAck == atnAck && !s.misconfigured {
		s.misconfigured = true
		logger.Logf(b.perm, "iecbus", "drive %d: %v: clamped to pull-only", preferences.FirstDevice+n, Misconfigured)
	}

	s.bus = b.lines(s)
	b.resolve()
	b.deliverATN()
}

// HostWrite changes the host's contribution to the bus. Each set bit of the
// value is a released line: bit 3 is ATN, bit 4 is CLK and bit 5 is DATA.
//
// Every attached drive is brought up to the clock first.
func (b *Bus) HostWrite(v uint8, at uint64) error {
	b.catchUp(at, -1)

	b.cpuBus = ((v << 2) & 0x80) | ((v << 2) & 0x40) | ((v << 1) & 0x10)

	// the ATN acknowledge term depends on the host's contribution
	for i := range b.slots {
		if b.slots[i].p != nil {
			b.slots[i].bus = b.lines(&b.slots[i])
		}
	}

	b.resolve()
	b.deliverATN()

	return b.Err()
}

// HostRead returns the resolved bus as seen by the host after every attached
// drive has been brought up to the clock. Bit 6 is CLK and bit 7 is DATA. A set
// bit is a released line.
func (b *Bus) HostRead(at uint64) (uint8, error) {
	b.catchUp(at, -1)
	return b.cpuPort, b.Err()
}

// CPUPort returns the resolved bus as seen by the host without bringing any
// drive up to date.
func (b *Bus) CPUPort() uint8 {
	return b.cpuPort
}

// DrivePort returns the resolved bus as seen by a drive. Bit 0 is DATA, bit 2
// is CLK and bit 7 is ATN. A set bit is a released line.
func (b *Bus) DrivePort() uint8 {
	return b.drivePort
}

// ATN returns true if the ATN line is asserted.
func (b *Bus) ATN() bool {
	return b.atn
}

// ReadPB returns the value of the bus interface port of the drive in the slot.
// The pb argument is the value written to the port by the drive.
func (b *Bus) ReadPB(n int, pb uint8) uint8 {
	checkSlot(n)
	return (((pb & 0x1a) | b.drivePort) ^ 0x85) | uint8(n<<5)
}
