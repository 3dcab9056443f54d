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

import (
	"fmt"

	"github.com/jetsetilly/gopher1541/curated"
	"github.com/jetsetilly/gopher1541/hardware/alarm"
	"github.com/jetsetilly/gopher1541/hardware/clockguard"
	"github.com/jetsetilly/gopher1541/hardware/clocks"
	"github.com/jetsetilly/gopher1541/hardware/cpu"
	"github.com/jetsetilly/gopher1541/hardware/instance"
	"github.com/jetsetilly/gopher1541/hardware/interrupt"
	"github.com/jetsetilly/gopher1541/hardware/memory"
	"github.com/jetsetilly/gopher1541/hardware/preferences"
	"github.com/jetsetilly/gopher1541/hardware/serialbus"
	"github.com/jetsetilly/gopher1541/hardware/via"
	"github.com/jetsetilly/gopher1541/logger"
)

// HostClock is the source of the host clock.
type HostClock interface {
	Clock() uint64
}

// Drive is a single disk drive. A Drive implements the serialbus.Participant
// interface.
type Drive struct {
	instance *instance.Instance

	slot int
	name string

	model         Model
	enabled       bool
	turbo         bool
	parallelCable bool
	busVariant    string
	idleMethod    string
	wakeThreshold uint64

	// the drive clock. the index of the current cycle
	clk uint64

	// the host clock the drive has been run up to
	lastClk uint64

	// fractional drive cycles carried between chunks, in units of 1/65536
	cycleAccum uint64

	// number of cycles the previous chunk ran past its stop clock
	lastExcCycles uint64

	// the drive clock the current chunk runs to
	stopClk uint64

	table *ConversionTable

	// a sync factor of zero means the factor is derived from the video
	// standard and the model
	syncFactor uint64

	CPU        *cpu.CPU
	Mem        *memory.Bus
	RAM        *memory.RAM
	ROM        *memory.ROM
	Interrupts *interrupt.Status
	Alarms     *alarm.Context
	Guard      *clockguard.Guard

	// the bus interface chip and the disk controller chip
	VIA1 *via.Chip
	VIA2 *via.Chip

	// the ROM image as loaded. the ROM is rebuilt from this whenever the idle
	// traps need to be applied or removed
	romData []uint8

	host     HostClock
	bus      *serialbus.Bus
	parallel *serialbus.Parallel
	fast     *serialbus.Fast

	serial *serialPorts
	disk   *latchPorts

	jammed bool

	// the pending reset was requested when recovering from a jam
	jamRestart bool

	// the current instruction hit the idle loop trap
	idle bool

	// the drive clock at the most recent idle trap and the number of cycles
	// between the two most recent traps. zero if unknown
	idleClk    uint64
	idlePeriod uint64
	idleValid  bool

	// Execute() is running. the fields that follow are only valid while it
	// is
	executing  bool
	execTarget uint64
	chunkHost  uint64
	chunkClk   uint64
}

// chipHost connects a chip to the drive's processor
type chipHost struct {
	d      *Drive
	source int
}

func (h chipHost) Clock() uint64 {
	return h.d.clk
}

func (h chipHost) RMW() bool {
	return h.d.CPU != nil && h.d.CPU.RMW()
}

func (h chipHost) ClearRMW() {
	h.d.CPU.ClearRMW()
}

func (h chipHost) SetIRQ(asserted bool, clk uint64) {
	h.d.Interrupts.SetIRQ(h.source, asserted, clk)
}

// chipArea maps the sixteen registers of a chip across the pages the chip is
// mapped to
type chipArea struct {
	chip *via.Chip
}

func (a chipArea) Read(address uint16) uint8 {
	return a.chip.Read(uint8(address & 0x0f))
}

func (a chipArea) Write(address uint16, data uint8) {
	a.chip.Store(uint8(address&0x0f), data)
}

func (a chipArea) Peek(address uint16) uint8 {
	return a.chip.Peek(uint8(address & 0x0f))
}

// NewDrive is the preferred method of initialisation for the Drive type. The
// slot is the index of the drive on the bus, the device number is the slot
// plus preferences.FirstDevice.
//
// The drive is created disabled and with the model given by the instance's
// preferences. It has no ROM until AttachROM() is called.
func NewDrive(ins *instance.Instance, slot int, host HostClock) (*Drive, error) {
	if slot < 0 || slot >= preferences.MaxDrives {
		return nil, curated.Errorf("drive: slot %d out of range", slot)
	}

	d := &Drive{
		instance:      ins,
		slot:          slot,
		name:          fmt.Sprintf("drive %d", preferences.FirstDevice+slot),
		host:          host,
		busVariant:    preferences.BusAuto,
		idleMethod:    preferences.IdleNone,
		wakeThreshold: preferences.DefaultWakeThreshold,
	}

	d.Mem = memory.NewBus()
	d.Interrupts = interrupt.NewStatus()
	d.Alarms = alarm.NewContext(d.name)
	d.Guard = clockguard.New(&d.clk, preferences.DefaultGuardHighWater)
	d.Guard.Register(d.rebase)

	d.serial = &serialPorts{d: d, pa: 0xff, pb: 0xff}
	d.disk = &latchPorts{pa: 0xff, pb: 0xff}

	dev := preferences.FirstDevice + slot
	d.VIA1 = via.New(fmt.Sprintf("VIA1D%d", dev), chipHost{d: d, source: d.Interrupts.NewSource("VIA1")}, d.serial, d.Alarms)
	d.VIA2 = via.New(fmt.Sprintf("VIA2D%d", dev), chipHost{d: d, source: d.Interrupts.NewSource("VIA2")}, d.disk, d.Alarms)

	d.CPU = cpu.NewCPU(ins, d.Mem, d.Interrupts)
	d.CPU.Traps = d.trap

	drv := &ins.Prefs.Drives[slot]
	if err := d.SetModel(drv.Model.String()); err != nil {
		return nil, err
	}
	d.turbo = drv.Turbo.Get().(bool)
	d.parallelCable = drv.ParallelCable.Get().(bool)
	d.busVariant = drv.BusVariant.String()
	d.idleMethod = ins.Prefs.IdleMethod.String()
	d.wakeThreshold = uint64(ins.Prefs.WakeThreshold.Get().(int))
	d.Guard.SetHighWater(uint64(ins.Prefs.GuardHighWater.Get().(int)))
	d.UpdateSyncFactor()

	return d, nil
}

func (d *Drive) String() string {
	state := "disabled"
	if d.enabled {
		state = "enabled"
		if d.jammed {
			state = "jammed"
		}
	}
	return fmt.Sprintf("%s: %s (%s) clk=%d last=%d %s", d.name, d.model.Name, state, d.clk, d.lastClk, d.CPU)
}

// Name returns the name of the drive. For example, "drive 8".
func (d *Drive) Name() string {
	return d.name
}

// Slot returns the index of the drive on the bus.
func (d *Drive) Slot() int {
	return d.slot
}

// Model returns the current drive model.
func (d *Drive) Model() Model {
	return d.model
}

// Plumb connects the drive to the bus and the side channels. Any of the
// arguments can be nil.
func (d *Drive) Plumb(bus *serialbus.Bus, parallel *serialbus.Parallel, fast *serialbus.Fast) {
	d.bus = bus
	d.parallel = parallel
	d.fast = fast
	if d.enabled {
		d.attach()
	}
}

func (d *Drive) attach() {
	if d.bus != nil {
		d.bus.Attach(d.slot, d, d.variant())
	}
	if d.parallel != nil {
		d.parallel.Enable(d.slot, d.parallelCable && d.model.ParallelCable)
	}
}

func (d *Drive) detach() {
	if d.bus != nil {
		d.bus.Detach(d.slot)
	}
	if d.parallel != nil {
		d.parallel.Enable(d.slot, false)
	}
	if d.fast != nil {
		d.fast.Negotiate(d.slot, false)
	}
}

func (d *Drive) variant() serialbus.Variant {
	return serialbus.ParseVariant(d.busVariant, d.model.BusVariant)
}

// Enabled returns true if the drive is switched on.
func (d *Drive) Enabled() bool {
	return d.enabled
}

// Enable switches the drive on. The drive is attached to the bus and reset.
// It starts running from the current host clock.
func (d *Drive) Enable() {
	if d.enabled {
		return
	}
	d.enabled = true
	d.attach()
	d.Reset()
}

// Disable switches the drive off. It is detached from the bus and no longer
// runs.
func (d *Drive) Disable() {
	if !d.enabled {
		return
	}
	d.enabled = false
	d.jammed = false
	d.detach()
}

// SetModel changes the model of the drive. The memory map, RAM and conversion
// table are rebuilt. A ROM of the wrong size for the new model is removed.
func (d *Drive) SetModel(name string) error {
	model, err := LookupModel(name)
	if err != nil {
		return err
	}
	d.model = model

	if d.RAM == nil || d.RAM.Size() != model.RAMSize {
		d.RAM = memory.NewRAM(model.RAMSize)
	}

	if d.romData != nil && len(d.romData) != model.ROMSize {
		logger.Logf(d.instance, d.name, "ROM removed: %s needs a %dK ROM", model.Name, model.ROMSize/1024)
		d.romData = nil
		d.ROM = nil
	}
	d.buildROM()
	d.mapMemory()
	d.UpdateSyncFactor()

	if d.enabled {
		d.attach()
	}

	return nil
}

func (d *Drive) mapMemory() {
	d.Mem.Clear()
	d.Mem.Map(0x0000, uint16(d.model.RAMSize-1), d.RAM, "RAM")
	d.Mem.Map(d.model.SerialBase, d.model.SerialBase+0x03ff, chipArea{chip: d.VIA1}, d.VIA1.Name())
	if d.model.DiskBase != 0 {
		d.Mem.Map(d.model.DiskBase, d.model.DiskBase+0x03ff, chipArea{chip: d.VIA2}, d.VIA2.Name())
	}
	if d.ROM != nil {
		d.Mem.Map(d.model.ROMBase, 0xffff, d.ROM, "ROM")
	}
}

// AttachROM loads the ROM image. The image must be the size expected by the
// model. The idle traps are applied to a copy of the image if required by the
// idle method.
func (d *Drive) AttachROM(data []uint8) error {
	if len(data) != d.model.ROMSize {
		return curated.Errorf("drive: %s ROM must be %d bytes (not %d)", d.model.Name, d.model.ROMSize, len(data))
	}
	d.romData = make([]uint8, len(data))
	copy(d.romData, data)
	d.buildROM()
	d.mapMemory()
	logger.Logf(d.instance, d.name, "ROM attached: %s", d.ROM)
	return nil
}

// rebuild the ROM from the pristine image
func (d *Drive) buildROM() {
	if d.romData == nil {
		d.ROM = nil
		return
	}
	rom, err := memory.NewROM(d.romData)
	if err != nil {
		// the size has been checked by AttachROM()
		panic(err)
	}
	PatchIdleTraps(rom, d.model, d.idleMethod)
	d.ROM = rom
}

// SetTurbo switches turbo mode on or off. Only has an effect on models that
// support it.
func (d *Drive) SetTurbo(turbo bool) {
	d.turbo = turbo
	d.UpdateSyncFactor()
}

// SetSyncFactor sets the sync factor explicitly, overriding the factor derived
// from the video standard and the model. A factor of zero restores the derived
// factor.
func (d *Drive) SetSyncFactor(factor uint64) {
	d.syncFactor = factor
	d.UpdateSyncFactor()
}

// UpdateSyncFactor rebuilds the conversion table. Called when the video
// standard changes.
func (d *Drive) UpdateSyncFactor() {
	factor := d.syncFactor
	if factor == 0 {
		multiplier := d.model.Multiplier
		if d.turbo && d.model.TurboCapable {
			multiplier = 2
		}
		factor = SyncFactor(clocks.Host(d.instance.Prefs.VideoStandard.String()), multiplier)
	}
	if d.table == nil || d.table.Factor != factor {
		d.table = NewConversionTable(factor)
	}
}

// SyncTable returns the conversion table currently in use.
func (d *Drive) SyncTable() *ConversionTable {
	return d.table
}

// SetIdleMethod changes how the drive behaves in the ROM's idle loop. The ROM
// is rebuilt.
func (d *Drive) SetIdleMethod(method string) {
	d.idleMethod = method
	d.idleValid = false
	d.buildROM()
	d.mapMemory()
}

// IdleMethod returns the current idle method.
func (d *Drive) IdleMethod() string {
	return d.idleMethod
}

// SetWakeThreshold changes the number of host cycles a drive can fall behind
// before the missing cycles are skipped rather than run.
func (d *Drive) SetWakeThreshold(threshold uint64) {
	d.wakeThreshold = threshold
}

// SetBusVariant changes the formula used to combine the drive's output with
// the bus. The value is one of the preferences.Bus* values.
func (d *Drive) SetBusVariant(variant string) {
	d.busVariant = variant
	if d.enabled && d.bus != nil {
		d.bus.SetVariant(d.slot, d.variant())
	}
}

// SetParallelCable connects or disconnects the parallel cable.
func (d *Drive) SetParallelCable(connected bool) {
	d.parallelCable = connected
	if d.enabled {
		d.attach()
	}
}

// SetFastSerial tells the bus that the drive is ready to use the fast serial
// side channel. Drives that have no fast serial hardware are never ready.
func (d *Drive) SetFastSerial(ready bool) {
	if d.fast != nil && d.enabled {
		d.fast.Negotiate(d.slot, ready && d.model.FastSerial)
	}
}

// FastSend transfers a byte to the host over the fast serial side channel.
func (d *Drive) FastSend(b uint8) error {
	if d.fast == nil {
		return serialbus.ErrFastNotNegotiated
	}
	return d.fast.FastTransfer(d.slot, b, serialbus.ToHost, d.DrivingClock())
}

// Reset the drive. The reset is performed the next time the drive runs. The
// drive clock restarts from zero and the drive runs from the current host
// clock.
func (d *Drive) Reset() {
	d.clk = 0
	d.lastClk = d.host.Clock()
	d.lastExcCycles = 0
	d.cycleAccum = 0
	d.jammed = false
	d.jamRestart = false
	d.CPU.Unjam()
	d.Interrupts.Reset()
	d.Interrupts.TriggerReset()
}

// HardReset is the same as Reset() but the RAM is cleared too, or filled with
// random values if the RandomState preference is set.
func (d *Drive) HardReset() {
	if d.instance.Prefs.RandomState.Get().(bool) {
		d.RAM.Randomise(d.instance.Random)
	} else {
		d.RAM.Clear()
	}
	d.Reset()
}

// the reset pending in the interrupt status is performed at the start of the
// next instruction
func (d *Drive) cpuReset() {
	d.Interrupts.Reset()
	d.clk = 6
	d.idleValid = false
	d.serial.pa, d.serial.pb = 0xff, 0xff
	d.disk.pa, d.disk.pb = 0xff, 0xff
	d.VIA1.Reset()
	d.VIA2.Reset()
	d.release()
	d.CPU.Reset()
	if d.jamRestart {
		d.jamRestart = false
		d.CPU.LoadPC(jamResetAddress)
	}
	logger.Log(d.instance, d.name, "reset")
}

// after a reset every line driven by the drive is released
func (d *Drive) release() {
	if d.bus != nil && d.enabled {
		d.bus.OnOutputChanged(d.slot, 0x00, d.DrivingClock())
	}
	if d.parallel != nil {
		d.parallel.DriveWrite(d.slot, 0xff)
	}
}

// Clock returns the drive clock.
func (d *Drive) Clock() uint64 {
	return d.clk
}

// LastClock returns the host clock the drive has been run up to.
func (d *Drive) LastClock() uint64 {
	return d.lastClk
}

// SerialChip implements the serialbus.Participant interface.
func (d *Drive) SerialChip() *via.Chip {
	return d.VIA1
}

// the drive's own clock guard subtracted sub from the drive clock
func (d *Drive) rebase(sub uint64) {
	d.Alarms.Rebase(sub)
	d.Interrupts.Rebase(sub)
	d.VIA1.Rebase(sub)
	d.VIA2.Rebase(sub)
	if d.idleClk >= sub {
		d.idleClk -= sub
	} else {
		d.idleValid = false
	}
	if d.stopClk >= sub {
		d.stopClk -= sub
	} else {
		d.stopClk = 0
	}
	if d.chunkClk >= sub {
		d.chunkClk -= sub
	} else {
		d.chunkClk = 0
	}
	logger.Logf(d.instance, d.name, "clock rebased by %d", sub)
}
