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

package memory_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gopher1541/hardware/memory"
	"github.com/jetsetilly/gopher1541/test"
)

func TestUnmapped(t *testing.T) {
	bus := memory.NewBus()
	test.ExpectEquality(t, bus.Read(0x1234), uint8(0x12))
	bus.Write(0x1234, 0xff)
	test.ExpectEquality(t, bus.Read(0x1234), uint8(0x12))
	test.ExpectEquality(t, bus.Peek(0xfe00), uint8(0xfe))
	test.ExpectEquality(t, bus.String(), "")
}

func TestRAMMirror(t *testing.T) {
	bus := memory.NewBus()
	ram := memory.NewRAM(0x800)
	bus.Map(0x0000, 0x17ff, ram, "RAM")

	bus.Write(0x0010, 0x42)
	test.ExpectEquality(t, bus.Read(0x0010), uint8(0x42))
	test.ExpectEquality(t, bus.Read(0x0810), uint8(0x42))
	test.ExpectEquality(t, bus.Read(0x1010), uint8(0x42))
	test.ExpectEquality(t, bus.Read(0x1810), uint8(0x18))

	test.ExpectEquality(t, bus.String(), "0000-17ff RAM")

	d := ram.Data()
	test.ExpectEquality(t, len(d), 0x800)
	test.ExpectEquality(t, d[0x10], uint8(0x42))

	ram.Clear()
	test.ExpectEquality(t, bus.Read(0x0010), uint8(0x00))

	test.ExpectSuccess(t, ram.Load(d))
	test.ExpectEquality(t, bus.Read(0x0010), uint8(0x42))
	test.ExpectFailure(t, ram.Load(d[:0x10]))
}

func TestROM(t *testing.T) {
	data := make([]uint8, 0x4000)
	data[0x3ffc] = 0xa0
	data[0x3ffd] = 0xea

	rom, err := memory.NewROM(data)
	test.DemandSuccess(t, err)

	bus := memory.NewBus()
	bus.Map(0x8000, 0xffff, rom, "ROM")
	bus.Map(0x0000, 0x07ff, memory.NewRAM(0x800), "RAM")
	test.ExpectEquality(t, bus.String(), "0000-07ff RAM\n8000-ffff ROM")

	test.ExpectEquality(t, bus.Read(0xfffc), uint8(0xa0))
	test.ExpectEquality(t, bus.Read(0xbffd), uint8(0xea))

	// writes are ignored
	bus.Write(0xfffc, 0x00)
	test.ExpectEquality(t, bus.Read(0xfffc), uint8(0xa0))

	// patching changes the checksum
	sum := rom.Checksum()
	old := rom.Patch(0xfffc, 0x00)
	test.ExpectEquality(t, old, uint8(0xa0))
	test.ExpectEquality(t, bus.Peek(0xfffc), uint8(0x00))
	test.ExpectInequality(t, rom.Checksum(), sum)

	_, err = memory.NewROM(make([]uint8, 0x3000))
	test.ExpectFailure(t, err)
}

func TestLoadROM(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "dos.bin")
	test.DemandSuccess(t, os.WriteFile(fn, make([]uint8, 0x4000), 0o644))

	rom, err := memory.LoadROM(fn, 0x4000)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, rom.Size(), 0x4000)

	_, err = memory.LoadROM(fn, 0x8000)
	test.ExpectFailure(t, err)

	_, err = memory.LoadROM(filepath.Join(dir, "missing.bin"), 0x4000)
	test.ExpectFailure(t, err)
}
