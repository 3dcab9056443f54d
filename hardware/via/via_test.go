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

package via_test

import (
	"fmt"
	"testing"

	"github.com/jetsetilly/gopher1541/hardware/alarm"
	"github.com/jetsetilly/gopher1541/hardware/via"
	"github.com/jetsetilly/gopher1541/test"
)

type host struct {
	clk    uint64
	rmw    bool
	irq    bool
	irqClk uint64
}

func (h *host) Clock() uint64 {
	return h.clk
}

func (h *host) RMW() bool {
	return h.rmw
}

func (h *host) ClearRMW() {
	h.rmw = false
}

func (h *host) SetIRQ(asserted bool, clk uint64) {
	if asserted && !h.irq {
		h.irqClk = clk
	}
	h.irq = asserted
}

type ports struct {
	events []string
	pa     uint8
	pb     uint8
	ca2    bool
	cb2    bool
}

func (p *ports) StorePA(value uint8, old uint8) {
	p.events = append(p.events, fmt.Sprintf("PA=%02x", value))
}

func (p *ports) StorePB(value uint8, old uint8) {
	p.events = append(p.events, fmt.Sprintf("PB=%02x", value))
}

func (p *ports) ReadPA() uint8 {
	return p.pa
}

func (p *ports) ReadPB() uint8 {
	return p.pb
}

func (p *ports) SetCA2(level bool) {
	p.ca2 = level
	p.events = append(p.events, fmt.Sprintf("CA2=%v", level))
}

func (p *ports) SetCB2(level bool) {
	p.cb2 = level
	p.events = append(p.events, fmt.Sprintf("CB2=%v", level))
}

type fixture struct {
	host  *host
	ports *ports
	ctx   *alarm.Context
	chip  *via.Chip
}

func newFixture(name string) *fixture {
	f := &fixture{
		host:  &host{},
		ports: &ports{},
		ctx:   alarm.NewContext("test"),
	}
	f.chip = via.New(name, f.host, f.ports, f.ctx)
	f.ports.events = f.ports.events[:0]
	return f
}

func (f *fixture) store(clk uint64, reg uint8, v uint8) {
	f.host.clk = clk
	f.chip.Store(reg, v)
}

func (f *fixture) read(clk uint64, reg uint8) uint8 {
	f.host.clk = clk
	return f.chip.Read(reg)
}

func (f *fixture) peekT1(clk uint64) uint16 {
	f.host.clk = clk
	return uint16(f.chip.Peek(via.T1CL)) | uint16(f.chip.Peek(via.T1CH))<<8
}

func (f *fixture) peekT2(clk uint64) uint16 {
	f.host.clk = clk
	return uint16(f.chip.Peek(via.T2CL)) | uint16(f.chip.Peek(via.T2CH))<<8
}

func TestReset(t *testing.T) {
	f := newFixture("VIA1D8")
	test.ExpectEquality(t, f.chip.Peek(via.DDRA), uint8(0x00))
	test.ExpectEquality(t, f.chip.Peek(via.T1LL), uint8(0xff))
	test.ExpectEquality(t, f.chip.Peek(via.IER), uint8(0x80))
	test.ExpectEquality(t, f.chip.Peek(via.IFR), uint8(0x00))
	test.ExpectSuccess(t, f.ports.ca2)
	test.ExpectSuccess(t, f.ports.cb2)
	test.ExpectFailure(t, f.chip.IRQ())
	test.ExpectEquality(t, f.ctx.NextPending(), uint64(alarm.Never))
}

func TestTimer1OneShot(t *testing.T) {
	f := newFixture("VIA1D8")

	f.store(100, via.IER, 0x80|via.IntT1)
	f.store(100, via.T1CL, 0x10)
	f.store(101, via.T1CH, 0x00)
	test.ExpectEquality(t, f.ctx.NextPending(), uint64(119))

	test.ExpectEquality(t, f.peekT1(102), uint16(0x10))
	test.ExpectEquality(t, f.peekT1(117), uint16(0x01))
	test.ExpectEquality(t, f.peekT1(118), uint16(0x00))

	// no interrupt until the counter passes zero
	test.ExpectEquality(t, f.read(118, via.IFR), uint8(0x00))
	test.ExpectFailure(t, f.host.irq)

	test.ExpectEquality(t, f.peekT1(119), uint16(0xffff))
	test.ExpectEquality(t, f.read(119, via.IFR), uint8(0x80|via.IntT1))
	test.ExpectSuccess(t, f.host.irq)
	test.ExpectEquality(t, f.host.irqClk, uint64(119))

	// counter reloads from the latch
	test.ExpectEquality(t, f.peekT1(120), uint16(0x10))

	// one-shot mode does not interrupt again
	test.ExpectEquality(t, f.ctx.NextPending(), uint64(alarm.Never))

	// reading the low counter clears the flag
	f.read(121, via.T1CL)
	test.ExpectEquality(t, f.read(122, via.IFR), uint8(0x00))
	test.ExpectFailure(t, f.host.irq)
}

func TestTimer1FreeRunning(t *testing.T) {
	f := newFixture("VIA1D8")

	f.store(1, via.ACR, 0x40)
	f.store(2, via.T1CL, 0x10)
	f.store(3, via.T1CH, 0x00)
	test.ExpectEquality(t, f.ctx.NextPending(), uint64(21))

	// alarms are dispatched by the processor between instructions
	f.host.clk = 21
	f.ctx.Dispatch(21)
	test.ExpectEquality(t, f.chip.Peek(via.IFR)&via.IntT1, via.IntT1)
	test.ExpectEquality(t, f.ctx.NextPending(), uint64(21+0x12))

	// the period is latch+2
	for i := uint64(0); i < 3; i++ {
		clk := 22 + i*0x12
		test.ExpectEquality(t, f.peekT1(clk), uint16(0x10), clk)
	}
}

func TestTimer2(t *testing.T) {
	f := newFixture("VIA1D8")

	f.store(10, via.T2LL, 0x20)
	f.store(11, via.T2CH, 0x00)
	test.ExpectEquality(t, f.ctx.NextPending(), uint64(45))

	test.ExpectEquality(t, f.peekT2(12), uint16(0x20))
	test.ExpectEquality(t, f.peekT2(44), uint16(0x00))
	test.ExpectEquality(t, f.read(44, via.IFR), uint8(0x00))

	test.ExpectEquality(t, f.peekT2(45), uint16(0xffff))
	test.ExpectEquality(t, f.read(45, via.IFR), via.IntT2)

	// timer 2 keeps counting without reloading
	test.ExpectEquality(t, f.peekT2(46), uint16(0xfffe))
	test.ExpectEquality(t, f.ctx.NextPending(), uint64(alarm.Never))

	f.read(47, via.T2CL)
	test.ExpectEquality(t, f.read(48, via.IFR), uint8(0x00))
}

func TestInterruptRegisters(t *testing.T) {
	f := newFixture("VIA1D8")

	f.store(1, via.IER, 0x80|via.IntCA1|via.IntCB1)
	test.ExpectEquality(t, f.read(2, via.IER), uint8(0x80|via.IntCA1|via.IntCB1))

	// bit 7 clear disables the bits that are set
	f.store(3, via.IER, via.IntCB1)
	test.ExpectEquality(t, f.read(4, via.IER), uint8(0x80|via.IntCA1))

	// CA1 is active on the falling edge when PCR bit 0 is clear
	f.host.clk = 5
	f.chip.Signal(via.CA1, via.Rise)
	test.ExpectFailure(t, f.host.irq)
	f.chip.Signal(via.CA1, via.Fall)
	test.ExpectSuccess(t, f.host.irq)
	test.ExpectEquality(t, f.host.irqClk, uint64(5))

	// the value read has bit 7 set. the control line flags are cleared by the
	// read
	test.ExpectEquality(t, f.read(6, via.IFR), uint8(0x80|via.IntCA1))
	test.ExpectEquality(t, f.read(7, via.IFR), uint8(0x00))
	test.ExpectFailure(t, f.host.irq)

	// flags are set even when the interrupt is disabled
	f.host.clk = 8
	f.chip.Signal(via.CB1, via.Fall)
	test.ExpectEquality(t, f.chip.Peek(via.IFR), via.IntCB1)
	test.ExpectFailure(t, f.host.irq)

	// writing to IFR clears the bits that are set
	f.store(9, via.T2LL, 0x01)
	f.store(9, via.T2CH, 0x00)
	f.host.clk = 20
	f.ctx.Dispatch(20)
	test.ExpectEquality(t, f.chip.Peek(via.IFR), via.IntCB1|via.IntT2)
	f.store(21, via.IFR, via.IntT2)
	test.ExpectEquality(t, f.chip.Peek(via.IFR), via.IntCB1)
}

func TestPortAccessClearsFlags(t *testing.T) {
	f := newFixture("VIA1D8")

	f.store(1, via.IER, 0x80|via.IntCA1|via.IntCB1)
	f.host.clk = 2
	f.chip.Signal(via.CA1, via.Fall)
	f.chip.Signal(via.CB1, via.Fall)
	test.ExpectSuccess(t, f.host.irq)

	// the no-handshake register leaves the flags alone
	f.read(3, via.PRANoHandshake)
	test.ExpectEquality(t, f.chip.Peek(via.IFR), uint8(0x80|via.IntCA1|via.IntCB1))

	f.read(4, via.PRA)
	test.ExpectEquality(t, f.chip.Peek(via.IFR), uint8(0x80|via.IntCB1))

	f.store(5, via.PRB, 0x00)
	test.ExpectEquality(t, f.chip.Peek(via.IFR), uint8(0x00))
	test.ExpectFailure(t, f.host.irq)
}

func TestPortOutput(t *testing.T) {
	f := newFixture("VIA1D8")

	// input bits read as set in the output value
	f.store(1, via.DDRB, 0x1a)
	f.store(2, via.PRB, 0x02)
	test.ExpectEquality(t, len(f.ports.events), 2)
	test.ExpectEquality(t, f.ports.events[0], "PB=e5")
	test.ExpectEquality(t, f.ports.events[1], "PB=e7")

	// output bits read from the register, input bits from the port
	f.ports.pb = 0x85
	test.ExpectEquality(t, f.read(3, via.PRB), uint8(0x87))
}

func TestReadModifyWrite(t *testing.T) {
	f := newFixture("VIA1D8")

	f.store(1, via.DDRA, 0xff)
	test.ExpectEquality(t, f.read(2, via.DDRA), uint8(0xff))
	f.store(3, via.PRANoHandshake, 0x00)
	f.ports.events = f.ports.events[:0]

	// the dummy write of a read-modify-write instruction writes the value
	// that was read
	f.read(4, via.DDRA)
	f.host.rmw = true
	f.store(5, via.PRANoHandshake, 0x0f)
	test.ExpectFailure(t, f.host.rmw)
	test.ExpectEquality(t, len(f.ports.events), 2)
	test.ExpectEquality(t, f.ports.events[0], "PA=ff")
	test.ExpectEquality(t, f.ports.events[1], "PA=0f")
}

func TestCA2Handshake(t *testing.T) {
	f := newFixture("VIA1D8")

	// pulse mode. data is stored before the pulse
	f.store(1, via.PCR, 0x0a)
	f.ports.events = f.ports.events[:0]
	f.store(2, via.PRA, 0x55)
	test.ExpectEquality(t, len(f.ports.events), 3)
	test.ExpectEquality(t, f.ports.events[0], "PA=ff")
	test.ExpectEquality(t, f.ports.events[1], "CA2=false")
	test.ExpectEquality(t, f.ports.events[2], "CA2=true")

	// handshake mode. CA2 stays low until the active edge of CA1
	f.store(3, via.PCR, 0x08)
	f.read(4, via.PRA)
	test.ExpectFailure(t, f.ports.ca2)
	f.host.clk = 5
	f.chip.Signal(via.CA1, via.Fall)
	test.ExpectSuccess(t, f.ports.ca2)

	// manual output
	f.store(6, via.PCR, 0x0c)
	test.ExpectFailure(t, f.ports.ca2)
	f.store(7, via.PCR, 0x0e)
	test.ExpectSuccess(t, f.ports.ca2)
}

func TestCA2Input(t *testing.T) {
	f := newFixture("VIA1D8")

	// positive active edge
	f.store(1, via.PCR, 0x04)
	f.host.clk = 2
	f.chip.Signal(via.CA2, via.Fall)
	test.ExpectEquality(t, f.chip.Peek(via.IFR), uint8(0x00))
	f.chip.Signal(via.CA2, via.Rise)
	test.ExpectEquality(t, f.chip.Peek(via.IFR), via.IntCA2)

	// independent interrupt input is not cleared by port access
	f.store(3, via.PCR, 0x06)
	f.read(4, via.PRA)
	test.ExpectEquality(t, f.chip.Peek(via.IFR), via.IntCA2)
	f.store(5, via.PCR, 0x04)
	f.read(6, via.PRA)
	test.ExpectEquality(t, f.chip.Peek(via.IFR), uint8(0x00))
}

func TestInputLatch(t *testing.T) {
	f := newFixture("VIA1D8")

	f.ports.pa = 0x11
	f.store(1, via.ACR, 0x01)
	f.ports.pa = 0x22
	test.ExpectEquality(t, f.read(2, via.PRA), uint8(0x11))

	// the active edge of CA1 latches the port
	f.host.clk = 3
	f.chip.Signal(via.CA1, via.Fall)
	test.ExpectEquality(t, f.read(4, via.PRA), uint8(0x22))
}

func TestPB7(t *testing.T) {
	f := newFixture("VIA1D8")

	f.store(1, via.ACR, 0xc0)
	f.store(2, via.T1LL, 0x04)
	f.store(10, via.T1CH, 0x00)

	// PB7 goes low when the counter is loaded and toggles each time the
	// counter passes zero
	expected := []struct {
		clk uint64
		pb7 uint8
	}{
		{11, 0x00},
		{16, 0x80},
		{17, 0x80},
		{22, 0x00},
		{23, 0x00},
		{28, 0x80},
	}

	for _, e := range expected {
		test.ExpectEquality(t, f.read(e.clk, via.PRB)&0x80, e.pb7, e.clk)
	}
}

func TestShiftRegister(t *testing.T) {
	clocked := newFixture("VIA1D8")
	latched := newFixture("VIA1D8")

	clocked.store(1, via.ACR, 0x0c)
	clocked.store(1, via.IER, 0x80|via.IntSR|via.IntCB1|via.IntCB2)
	latched.store(1, via.ACR, 0x0c)
	latched.store(1, via.IER, 0x80|via.IntSR|via.IntCB1|via.IntCB2)

	const b = 0xa5

	clocked.host.clk = 10
	for i := 7; i >= 0; i-- {
		if b&(1<<i) != 0 {
			clocked.chip.Signal(via.CB2, via.Rise)
		} else {
			clocked.chip.Signal(via.CB2, via.Fall)
		}
		clocked.chip.Signal(via.CB1, via.Fall)
		if i > 0 {
			test.ExpectFailure(t, clocked.host.irq, i)
		}
		clocked.chip.Signal(via.CB1, via.Rise)
	}

	latched.host.clk = 10
	test.ExpectSuccess(t, latched.chip.ShiftIn(b))

	test.ExpectEquality(t, clocked.chip.ShiftRegister(), uint8(b))
	test.ExpectEquality(t, latched.chip.ShiftRegister(), uint8(b))
	test.ExpectEquality(t, clocked.chip.Peek(via.IFR), uint8(0x80|via.IntSR))
	test.ExpectEquality(t, latched.chip.Peek(via.IFR), uint8(0x80|via.IntSR))
	test.ExpectSuccess(t, clocked.host.irq)
	test.ExpectSuccess(t, latched.host.irq)

	// reading the shift register clears the flag
	test.ExpectEquality(t, clocked.read(11, via.SR), uint8(b))
	test.ExpectFailure(t, clocked.host.irq)
}

// a byte is only shifted in when the shift register is clocked by CB1
func TestShiftInMode(t *testing.T) {
	f := newFixture("VIA1D8")
	f.store(1, via.IER, 0x80|via.IntSR)

	for _, acr := range []uint8{0x00, 0x04, 0x08, 0x10, 0x14, 0x18, 0x1c} {
		f.store(2, via.ACR, acr)
		test.ExpectFailure(t, f.chip.ShiftIn(0x5a), acr)
		test.ExpectEquality(t, f.chip.ShiftRegister(), uint8(0x00), acr)
		test.ExpectEquality(t, f.chip.Peek(via.IFR)&via.IntSR, uint8(0x00), acr)
	}
	test.ExpectFailure(t, f.host.irq)

	f.store(3, via.ACR, 0x0c)
	test.ExpectSuccess(t, f.chip.ShiftIn(0x5a))
	test.ExpectEquality(t, f.chip.ShiftRegister(), uint8(0x5a))
}

func TestRebase(t *testing.T) {
	f := newFixture("VIA1D8")

	f.store(1, via.ACR, 0x40)
	f.store(5, via.T1CL, 100)
	f.store(10, via.T1CH, 0x00)
	f.store(20, via.T2LL, 0x34)
	f.store(20, via.T2CH, 0x12)

	const sub = 1 << 20
	clk := uint64(sub + 1000)

	// bring the free running timer alarm up to date. the processor would
	// have done this between instructions
	f.ctx.Dispatch(clk)
	f.ctx.UnsetAll()

	t1 := f.peekT1(clk)
	t2 := f.peekT2(clk)

	f.host.clk = clk - sub
	f.chip.Rebase(sub)

	test.ExpectEquality(t, f.peekT1(clk-sub), t1)
	test.ExpectEquality(t, f.peekT2(clk-sub), t2)
	test.ExpectEquality(t, f.peekT1(clk-sub+77), f.peekT1(clk-sub+77+102))
}
