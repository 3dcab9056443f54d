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

package via

// Register addresses. The chip decodes the lowest four bits of an address.
const (
	PRB uint8 = iota
	PRA
	DDRB
	DDRA
	T1CL
	T1CH
	T1LL
	T1LH
	T2CL
	T2CH
	SR
	ACR
	PCR
	IFR
	IER

	// PRANoHandshake is port A without the effect on CA1/CA2.
	PRANoHandshake
)

// T2LL is the write address of the T2 low latch.
const T2LL = T2CL

// NumRegisters is the number of registers decoded by the chip.
const NumRegisters = 16

// Interrupt flag bits as they appear in the IFR and IER registers.
const (
	IntCA2 uint8 = 0x01
	IntCA1 uint8 = 0x02
	IntSR  uint8 = 0x04
	IntCB2 uint8 = 0x08
	IntCB1 uint8 = 0x10
	IntT2  uint8 = 0x20
	IntT1  uint8 = 0x40
	IntIRQ uint8 = 0x80
)

// the four edge sensitive flags cleared by a read of IFR
const controlLineFlags = IntCA1 | IntCA2 | IntCB1 | IntCB2

// auxiliary control register bits
const (
	acrLatchPA    = 0x01
	acrLatchPB    = 0x02
	acrSRMask     = 0x1c
	acrT2Count    = 0x20
	acrT1FreeRun  = 0x40
	acrT1PB7      = 0x80
	acrSRInCB1    = 0x0c
	acrSRExtClock = 0x0c
)

// peripheral control register bits
const (
	pcrCA1Rise   = 0x01
	pcrCA2Mask   = 0x0e
	pcrCA2Output = 0x08
	pcrCB1Rise   = 0x10
	pcrCB2Mask   = 0xe0
	pcrCB2Output = 0x80
)

var registerNames = [NumRegisters]string{
	"PRB", "PRA", "DDRB", "DDRA",
	"T1CL", "T1CH", "T1LL", "T1LH",
	"T2CL", "T2CH", "SR", "ACR",
	"PCR", "IFR", "IER", "PRA_NHS",
}

// RegisterName returns the conventional name of the register.
func RegisterName(reg uint8) string {
	return registerNames[reg&0x0f]
}
