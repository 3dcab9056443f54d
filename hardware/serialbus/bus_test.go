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

package serialbus_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/gopher1541/hardware/alarm"
	"github.com/jetsetilly/gopher1541/hardware/preferences"
	"github.com/jetsetilly/gopher1541/hardware/serialbus"
	"github.com/jetsetilly/gopher1541/hardware/via"
	"github.com/jetsetilly/gopher1541/logger"
	"github.com/jetsetilly/gopher1541/test"
)

type host struct {
	clk uint64
	irq bool
}

func (h *host) Clock() uint64                    { return h.clk }
func (h *host) RMW() bool                        { return false }
func (h *host) ClearRMW()                        {}
func (h *host) SetIRQ(asserted bool, clk uint64) { h.irq = asserted }

// ports counts the number of times port A is latched
type ports struct {
	latches int
}

func (p *ports) StorePA(value uint8, old uint8) {}
func (p *ports) StorePB(value uint8, old uint8) {}
func (p *ports) ReadPA() uint8 {
	p.latches++
	return 0xff
}
func (p *ports) ReadPB() uint8     { return 0xff }
func (p *ports) SetCA2(level bool) {}
func (p *ports) SetCB2(level bool) {}

type participant struct {
	host     *host
	ports    *ports
	chip     *via.Chip
	executed []uint64

	executing bool

	// called during Execute() when set
	onExecute func(target uint64)
}

func newParticipant(name string) *participant {
	p := &participant{
		host:  &host{},
		ports: &ports{},
	}
	p.chip = via.New(name, p.host, p.ports, alarm.NewContext(name))

	// latch port A on a falling CA1 edge so that every delivered edge can be
	// counted
	p.chip.Store(via.ACR, 0x01)
	p.chip.Store(via.PCR, 0x00)
	return p
}

func (p *participant) Execute(target uint64) error {
	if p.executing {
		return nil
	}
	p.executing = true
	defer func() { p.executing = false }()

	p.executed = append(p.executed, target)
	if target > p.host.clk {
		p.host.clk = target
	}
	if p.onExecute != nil {
		p.onExecute(target)
	}
	return nil
}

func (p *participant) SerialChip() *via.Chip {
	return p.chip
}

func TestReleased(t *testing.T) {
	bus := serialbus.NewBus(logger.Allow)
	test.ExpectEquality(t, bus.CPUPort(), uint8(0xd0))
	test.ExpectFailure(t, bus.ATN())

	a := newParticipant("VIA1D8")
	bus.Attach(0, a, serialbus.ATNAcknowledge)
	test.ExpectSuccess(t, bus.Attached(0))
	test.ExpectFailure(t, bus.Attached(1))

	// a newly attached drive releases every line
	test.ExpectEquality(t, bus.CPUPort(), uint8(0xc0))
	test.ExpectEquality(t, bus.DrivePort(), uint8(0x85))
	test.ExpectEquality(t, bus.ReadPB(0, 0x00), uint8(0x00))
	test.ExpectEquality(t, bus.ReadPB(1, 0x00), uint8(0x20))

	// the output of a drive with PB1, PB3 and PB4 set as output and low
	bus.OnOutputChanged(0, 0xe5, 1)
	test.ExpectEquality(t, bus.CPUPort(), uint8(0xc0))
	test.ExpectEquality(t, bus.DrivePort(), uint8(0x85))
}

func TestPullLines(t *testing.T) {
	bus := serialbus.NewBus(logger.Allow)
	a := newParticipant("VIA1D8")
	bus.Attach(0, a, serialbus.ATNAcknowledge)

	// PB1 pulls DATA
	bus.OnOutputChanged(0, 0xe7, 10)
	test.ExpectEquality(t, bus.CPUPort(), uint8(0x40))
	test.ExpectEquality(t, bus.DrivePort()&0x01, uint8(0x00))
	test.ExpectEquality(t, bus.ReadPB(0, 0x02)&0x01, uint8(0x01))

	// PB3 pulls CLK
	bus.OnOutputChanged(0, 0xed, 11)
	test.ExpectEquality(t, bus.CPUPort(), uint8(0x80))
	test.ExpectEquality(t, bus.DrivePort()&0x04, uint8(0x00))
	test.ExpectEquality(t, bus.ReadPB(0, 0x08)&0x04, uint8(0x04))

	bus.OnOutputChanged(0, 0xe5, 12)
	test.ExpectEquality(t, bus.CPUPort(), uint8(0xc0))

	// the host pulls DATA
	test.ExpectSuccess(t, bus.HostWrite(0x18, 13))
	test.ExpectEquality(t, bus.CPUPort(), uint8(0x40))
	test.ExpectEquality(t, bus.DrivePort()&0x01, uint8(0x00))

	// and the drive pulls CLK
	bus.OnOutputChanged(0, 0xed, 14)
	test.ExpectEquality(t, bus.CPUPort(), uint8(0x00))

	// detached drives do not contribute
	bus.Detach(0)
	test.ExpectEquality(t, bus.CPUPort(), uint8(0x50))
}

func TestATNAcknowledge(t *testing.T) {
	bus := serialbus.NewBus(logger.Allow)
	a := newParticipant("VIA1D8")
	bus.Attach(0, a, serialbus.ATNAcknowledge)
	bus.OnOutputChanged(0, 0xe5, 1)

	// with ATNA low the drive pulls DATA when ATN is asserted
	test.ExpectSuccess(t, bus.HostWrite(0x30, 2))
	test.ExpectSuccess(t, bus.ATN())
	test.ExpectEquality(t, bus.CPUPort(), uint8(0x40))
	test.ExpectEquality(t, bus.DrivePort()&0x80, uint8(0x00))

	// setting ATNA (PB4) releases DATA again
	bus.OnOutputChanged(0, 0xf5, 3)
	test.ExpectEquality(t, bus.CPUPort(), uint8(0xc0))

	// and releasing ATN with ATNA set pulls DATA
	test.ExpectSuccess(t, bus.HostWrite(0x38, 4))
	test.ExpectFailure(t, bus.ATN())
	test.ExpectEquality(t, bus.CPUPort(), uint8(0x40))
	test.ExpectEquality(t, bus.DrivePort()&0x80, uint8(0x80))

	// a pull-only drive ignores ATN
	bus.SetVariant(0, serialbus.PullOnly)
	bus.OnOutputChanged(0, 0xe5, 5)
	test.ExpectEquality(t, bus.CPUPort(), uint8(0xc0))
	test.ExpectSuccess(t, bus.HostWrite(0x30, 6))
	test.ExpectEquality(t, bus.CPUPort(), uint8(0xc0))
}

func TestIdempotence(t *testing.T) {
	bus := serialbus.NewBus(logger.Allow)
	a := newParticipant("VIA1D8")
	b := newParticipant("VIA1D9")
	bus.Attach(0, a, serialbus.ATNAcknowledge)
	bus.Attach(1, b, serialbus.ATNAcknowledge)

	test.ExpectSuccess(t, bus.HostWrite(0x30, 5))
	bus.OnOutputChanged(0, 0xe5, 10)
	cpuPort := bus.CPUPort()
	drivePort := bus.DrivePort()
	latches := b.ports.latches

	for clk := uint64(11); clk < 15; clk++ {
		bus.OnOutputChanged(0, 0xe5, clk)
		test.ExpectEquality(t, bus.CPUPort(), cpuPort, clk)
		test.ExpectEquality(t, bus.DrivePort(), drivePort, clk)
		test.ExpectEquality(t, b.ports.latches, latches, clk)
	}

	for clk := uint64(15); clk < 20; clk++ {
		test.ExpectSuccess(t, bus.HostWrite(0x30, clk))
		test.ExpectEquality(t, bus.CPUPort(), cpuPort, clk)
		test.ExpectEquality(t, b.ports.latches, latches, clk)
	}
}

func TestATNSingleEdge(t *testing.T) {
	bus := serialbus.NewBus(logger.Allow)
	a := newParticipant("VIA1D8")
	b := newParticipant("VIA1D9")
	bus.Attach(0, a, serialbus.ATNAcknowledge)
	bus.Attach(1, b, serialbus.ATNAcknowledge)

	test.ExpectSuccess(t, bus.HostWrite(0x30, 100))
	test.ExpectSuccess(t, bus.ATN())

	// the catch-up of each drive changes its output, which resolves the bus
	// again before the host's write is complete
	a.onExecute = func(target uint64) {
		bus.OnOutputChanged(0, 0xef, target)
	}
	b.onExecute = func(target uint64) {
		bus.OnOutputChanged(1, 0xef, target)
	}

	test.ExpectSuccess(t, bus.HostWrite(0x38, 200))
	test.ExpectFailure(t, bus.ATN())
	test.ExpectEquality(t, a.ports.latches, 1)
	test.ExpectEquality(t, b.ports.latches, 1)
	test.ExpectEquality(t, a.chip.Peek(via.IFR)&via.IntCA1, uint8(via.IntCA1))
	test.ExpectEquality(t, b.chip.Peek(via.IFR)&via.IntCA1, uint8(via.IntCA1))

	// writing the same value again delivers nothing
	test.ExpectSuccess(t, bus.HostWrite(0x38, 300))
	test.ExpectEquality(t, a.ports.latches, 1)
	test.ExpectEquality(t, b.ports.latches, 1)
}

func TestCatchUp(t *testing.T) {
	bus := serialbus.NewBus(logger.Allow)
	a := newParticipant("VIA1D8")
	b := newParticipant("VIA1D9")
	bus.Attach(0, a, serialbus.ATNAcknowledge)
	bus.Attach(2, b, serialbus.ATNAcknowledge)

	test.ExpectSuccess(t, bus.HostWrite(0x38, 1000))
	test.ExpectEquality(t, len(a.executed), 1)
	test.ExpectEquality(t, len(b.executed), 1)
	test.ExpectEquality(t, a.executed[0], uint64(1000))
	test.ExpectEquality(t, b.executed[0], uint64(1000))

	// the drive that writes its port is not caught up by the bus
	bus.OnOutputChanged(0, 0xe5, 1010)
	test.ExpectEquality(t, len(a.executed), 1)
	test.ExpectEquality(t, len(b.executed), 2)
	test.ExpectEquality(t, b.executed[1], uint64(1010))

	v, err := bus.HostRead(1050)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0xc0))
	test.ExpectEquality(t, a.executed[len(a.executed)-1], uint64(1050))
	test.ExpectEquality(t, b.executed[len(b.executed)-1], uint64(1050))
}

func TestMisconfigured(t *testing.T) {
	logger.Clear()

	bus := serialbus.NewBus(logger.Allow)
	a := newParticipant("VIA1D8")
	bus.Attach(0, a, serialbus.PullOnly)

	bus.OnOutputChanged(0, 0xe5, 1)
	test.ExpectFailure(t, bus.Misconfigured(0))

	// PB4 drives the ATN acknowledge line, which a pull-only drive does not
	// have
	bus.OnOutputChanged(0, 0xf5, 2)
	test.ExpectSuccess(t, bus.Misconfigured(0))
	test.ExpectEquality(t, bus.CPUPort(), uint8(0xc0))

	// the condition is only logged once
	bus.OnOutputChanged(0, 0xf7, 3)
	test.ExpectEquality(t, bus.CPUPort(), uint8(0x40))

	w := &strings.Builder{}
	logger.Write(w)
	test.ExpectEquality(t, strings.Count(w.String(), "clamped to pull-only"), 1)

	bus.SetVariant(0, serialbus.ATNAcknowledge)
	test.ExpectFailure(t, bus.Misconfigured(0))
}

func TestSlotRange(t *testing.T) {
	bus := serialbus.NewBus(logger.Allow)

	for _, n := range []int{-1, serialbus.MaxParticipants} {
		func() {
			defer func() {
				test.ExpectSuccess(t, recover() != nil, n)
			}()
			bus.OnOutputChanged(n, 0xff, 0)
		}()
	}
}

func TestParseVariant(t *testing.T) {
	test.ExpectEquality(t, serialbus.ParseVariant(preferences.BusATNAck, serialbus.PullOnly), serialbus.ATNAcknowledge)
	test.ExpectEquality(t, serialbus.ParseVariant(preferences.BusPullOnly, serialbus.ATNAcknowledge), serialbus.PullOnly)
	test.ExpectEquality(t, serialbus.ParseVariant(preferences.BusAuto, serialbus.PullOnly), serialbus.PullOnly)
	test.ExpectEquality(t, serialbus.ParseVariant(preferences.BusAuto, serialbus.ATNAcknowledge), serialbus.ATNAcknowledge)
}
