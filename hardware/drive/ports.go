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

package drive

// serialPorts connects the bus interface chip to the serial bus and to the
// parallel cable
type serialPorts struct {
	d  *Drive
	pa uint8
	pb uint8
}

func (p *serialPorts) parallel() bool {
	return p.d.parallel != nil && p.d.enabled && p.d.parallel.Enabled(p.d.slot)
}

func (p *serialPorts) StorePA(value uint8, old uint8) {
	p.pa = value
	if p.parallel() {
		p.d.parallel.DriveWrite(p.d.slot, value)
	}
}

func (p *serialPorts) ReadPA() uint8 {
	if p.parallel() {
		return p.d.parallel.Value()
	}
	return p.pa
}

func (p *serialPorts) StorePB(value uint8, old uint8) {
	p.pb = value
	if value != old && p.d.bus != nil && p.d.enabled {
		p.d.bus.OnOutputChanged(p.d.slot, value, p.d.DrivingClock())
	}
}

func (p *serialPorts) ReadPB() uint8 {
	if p.d.bus != nil && p.d.enabled {
		return p.d.bus.ReadPB(p.d.slot, p.pb)
	}
	return p.pb
}

// CA2 is the handshake line of the parallel cable. in pulse mode every access
// to port A signals the host
func (p *serialPorts) SetCA2(level bool) {
	if !level && p.d.VIA1 != nil && p.d.VIA1.CA2Pulse() && p.parallel() {
		p.d.parallel.DriveHandshake(p.d.slot)
	}
}

func (p *serialPorts) SetCB2(level bool) {
}

// latchPorts are ports with nothing connected. the pins follow the output
type latchPorts struct {
	pa uint8
	pb uint8
}

func (p *latchPorts) StorePA(value uint8, old uint8) {
	p.pa = value
}

func (p *latchPorts) StorePB(value uint8, old uint8) {
	p.pb = value
}

func (p *latchPorts) ReadPA() uint8 {
	return p.pa
}

func (p *latchPorts) ReadPB() uint8 {
	return p.pb
}

func (p *latchPorts) SetCA2(level bool) {
}

func (p *latchPorts) SetCB2(level bool) {
}
