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

package memory

import (
	"fmt"
	"strings"
)

// NumPages is the number of pages in the address space.
const NumPages = 256

// Area is a region of the address space.
type Area interface {
	Read(address uint16) uint8
	Write(address uint16, data uint8)
}

// Peeker is implemented by areas that can be read without side effects.
type Peeker interface {
	Peek(address uint16) uint8
}

// unmapped is the area used for pages that have not been mapped.
type unmapped struct{}

func (unmapped) Read(address uint16) uint8 {
	return uint8(address >> 8)
}

func (unmapped) Write(address uint16, data uint8) {
}

func (unmapped) Peek(address uint16) uint8 {
	return uint8(address >> 8)
}

// Bus dispatches reads and writes to the area mapped to the page of the
// address.
type Bus struct {
	pages  [NumPages]Area
	labels [NumPages]string
}

// NewBus is the preferred method of initialisation for the Bus type. All
// pages are initially unmapped.
func NewBus() *Bus {
	bus := &Bus{}
	bus.Clear()
	return bus
}

// Clear unmaps all pages.
func (bus *Bus) Clear() {
	for i := range bus.pages {
		bus.pages[i] = unmapped{}
		bus.labels[i] = ""
	}
}

// Map area to every page from origin to memtop inclusive. The label is used
// when describing the memory map.
func (bus *Bus) Map(origin uint16, memtop uint16, area Area, label string) {
	if memtop < origin {
		panic(fmt.Sprintf("memory: memtop (%#04x) is before origin (%#04x)", memtop, origin))
	}
	for p := origin >> 8; p <= memtop>>8; p++ {
		bus.pages[p] = area
		bus.labels[p] = label
	}
}

// Area returns the area mapped to the page of the address.
func (bus *Bus) Area(address uint16) Area {
	return bus.pages[address>>8]
}

// Read implements the cpu.Memory interface.
func (bus *Bus) Read(address uint16) uint8 {
	return bus.pages[address>>8].Read(address)
}

// Write implements the cpu.Memory interface.
func (bus *Bus) Write(address uint16, data uint8) {
	bus.pages[address>>8].Write(address, data)
}

// Peek reads the address without side effects. Areas that do not implement
// the Peeker interface are read as though they were unmapped.
func (bus *Bus) Peek(address uint16) uint8 {
	if p, ok := bus.pages[address>>8].(Peeker); ok {
		return p.Peek(address)
	}
	return unmapped{}.Peek(address)
}

// String returns a summary of the memory map. Consecutive pages with the same
// label are collapsed.
func (bus *Bus) String() string {
	s := strings.Builder{}
	start := 0
	for p := 1; p <= NumPages; p++ {
		if p < NumPages && bus.labels[p] == bus.labels[start] {
			continue
		}
		if bus.labels[start] != "" {
			s.WriteString(fmt.Sprintf("%04x-%04x %s\n", start<<8, p<<8-1, bus.labels[start]))
		}
		start = p
	}
	return strings.TrimSuffix(s.String(), "\n")
}
