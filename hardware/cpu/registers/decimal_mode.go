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

package registers

// AddDecimal adds value to the register as though both are binary coded
// decimal. Returns the new carry, zero, overflow and sign states.
//
// The zero flag is taken from the binary sum. The sign and overflow flags are
// taken after the low nibble has been adjusted but before the high nibble is
// adjusted.
func (r *Register) AddDecimal(val uint8, carry bool) (bool, bool, bool, bool) {
	a := int(r.value)
	v := int(val)
	c := 0
	if carry {
		c = 1
	}

	zero := (a+v+c)&0xff == 0

	t := (a & 0x0f) + (v & 0x0f) + c
	if t > 0x09 {
		t += 0x06
	}
	if t <= 0x0f {
		t = (t & 0x0f) + (a & 0xf0) + (v & 0xf0)
	} else {
		t = (t & 0x0f) + (a & 0xf0) + (v & 0xf0) + 0x10
	}

	sign := t&0x80 == 0x80
	overflow := (a^t)&0x80 == 0x80 && (a^v)&0x80 == 0

	if t&0x1f0 > 0x90 {
		t += 0x60
	}

	r.value = uint8(t)

	return t&0xff0 > 0xf0, zero, overflow, sign
}

// SubtractDecimal subtracts value from the register as though both are binary
// coded decimal. Returns the new carry, zero, overflow and sign states.
//
// All flags are the same as for a binary subtraction.
func (r *Register) SubtractDecimal(val uint8, carry bool) (bool, bool, bool, bool) {
	a := int(r.value)
	v := int(val)
	borrow := 1
	if carry {
		borrow = 0
	}

	bin := a - v - borrow

	t := (a & 0x0f) - (v & 0x0f) - borrow
	if t&0x10 == 0x10 {
		t = ((t - 6) & 0x0f) | ((a & 0xf0) - (v & 0xf0) - 0x10)
	} else {
		t = (t & 0x0f) | ((a & 0xf0) - (v & 0xf0))
	}
	if t&0x100 == 0x100 {
		t -= 0x60
	}

	r.value = uint8(t)

	zero := bin&0xff == 0
	sign := bin&0x80 == 0x80
	overflow := (a^bin)&0x80 == 0x80 && (a^v)&0x80 == 0x80

	return bin >= 0, zero, overflow, sign
}
