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

package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/gopher1541/curated"
	"github.com/jetsetilly/gopher1541/govern"
	"github.com/jetsetilly/gopher1541/hardware"
	"github.com/jetsetilly/gopher1541/hardware/clocks"
	"github.com/jetsetilly/gopher1541/hardware/drive"
	"github.com/jetsetilly/gopher1541/hardware/instance"
	"github.com/jetsetilly/gopher1541/hardware/preferences"
	"github.com/jetsetilly/gopher1541/logger"
	"github.com/jetsetilly/gopher1541/modalflag"
	"github.com/jetsetilly/gopher1541/performance"
	"github.com/jetsetilly/gopher1541/resources"
	"github.com/jetsetilly/gopher1541/setup"
	"github.com/jetsetilly/gopher1541/snapshot"
	"github.com/jetsetilly/gopher1541/statsview"
	"github.com/jetsetilly/gopher1541/terminal"
	"github.com/jetsetilly/gopher1541/version"
)

// the host clock is not connected to anything that needs real randomness
type seedClock struct {
	m *hardware.Machine
}

func (c *seedClock) Clock() uint64 {
	if c.m == nil {
		return 0
	}
	return c.m.Clock()
}

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "PERFORMANCE", "DUMP", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)

	case "PERFORMANCE":
		err = perform(md)

	case "DUMP":
		err = dump(md)

	case "VERSION":
		v, r, _ := version.Version()
		fmt.Printf("%s %s (%s)\n", version.ApplicationName, v, r)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		os.Exit(20)
	}
}

// machineArgs are the arguments common to every mode that creates a machine.
// zero values leave the preference unchanged
type machineArgs struct {
	prefsFile *string
	drives    *int
	model     *string
	tv        *string
	idle      *string
	bus       *string
	turbo     *bool
	parallel  *bool
	rom       *string
	log       *bool
}

func addMachineArgs(md *modalflag.Modes) *machineArgs {
	return &machineArgs{
		prefsFile: md.AddString("prefs", "", "hardware preferences file"),
		drives:    md.AddInt("drives", 0, "number of drives (1 to 4)"),
		model:     md.AddString("model", "", "drive model for every drive"),
		tv:        md.AddString("tv", "", "video standard of the host: PAL, NTSC"),
		idle:      md.AddString("idle", "", "idle method: none, trap, skip"),
		bus:       md.AddString("bus", "", "serial bus variant: auto, ack, pull"),
		turbo:     md.AddBool("turbo", false, "run drives that support it at double speed"),
		parallel:  md.AddBool("parallel", false, "connect the parallel cable to drives that support it"),
		rom:       md.AddString("rom", "", "ROM file to use for every drive"),
		log:       md.AddBool("log", false, "echo debugging log to stdout"),
	}
}

// hardwarePrefs loads the preferences file and then changes the values given
// by the arguments
func (a *machineArgs) hardwarePrefs() (*preferences.Preferences, error) {
	prefs, err := preferences.NewPreferences(*a.prefsFile)
	if err != nil {
		return nil, err
	}

	if *a.tv != "" {
		if err := prefs.VideoStandard.Set(*a.tv); err != nil {
			return nil, err
		}
	}
	if *a.idle != "" {
		if err := prefs.IdleMethod.Set(*a.idle); err != nil {
			return nil, err
		}
	}

	if *a.drives < 0 || *a.drives > preferences.MaxDrives {
		return nil, curated.Errorf("number of drives must be between 1 and %d", preferences.MaxDrives)
	}

	for i := range prefs.Drives {
		d := &prefs.Drives[i]
		if *a.drives > 0 {
			if err := d.Enabled.Set(i < *a.drives); err != nil {
				return nil, err
			}
		}
		if *a.model != "" {
			if err := d.Model.Set(*a.model); err != nil {
				return nil, err
			}
		}
		if *a.bus != "" {
			if err := d.BusVariant.Set(*a.bus); err != nil {
				return nil, err
			}
		}
		if *a.turbo {
			if err := d.Turbo.Set(true); err != nil {
				return nil, err
			}
		}
		if *a.parallel {
			if err := d.ParallelCable.Set(true); err != nil {
				return nil, err
			}
		}
	}

	return prefs, nil
}

// machine creates a machine with the ROMs attached. If the snapshot reader is
// not nil the drive configuration is taken from the snapshot and the snapshot
// is restored.
func (a *machineArgs) machine(r *snapshot.Reader) (*hardware.Machine, error) {
	if *a.log {
		logger.SetEcho(os.Stdout, false)
	}

	prefs, err := a.hardwarePrefs()
	if err != nil {
		return nil, err
	}

	if r != nil {
		if err := hardware.Configure(prefs, r); err != nil {
			return nil, err
		}
	}

	clk := &seedClock{}
	ins, err := instance.NewInstance(clk, prefs)
	if err != nil {
		return nil, err
	}

	m, err := hardware.NewMachine(ins)
	if err != nil {
		return nil, err
	}
	clk.m = m

	if err := setup.AttachROMs(m, *a.rom); err != nil {
		return nil, err
	}

	if r != nil {
		if err := m.Restore(r); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func readSnapshot(filename string) (*snapshot.Reader, error) {
	if filename == "" {
		return nil, nil
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return snapshot.NewReader(f)
}

func writeSnapshot(m *hardware.Machine) (string, error) {
	pth, err := resources.JoinPath("snapshots", resources.UniqueFilename("snapshot", ""))
	if err != nil {
		return "", err
	}

	f, err := os.Create(pth)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := snapshot.NewWriter()
	m.Snapshot(w)
	if _, err := w.WriteTo(f); err != nil {
		return "", err
	}

	return pth, nil
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	args := addMachineArgs(md)
	cycles := md.AddUint64("cycles", 0, "number of host cycles to run for (zero runs until interrupted)")
	snapshotFile := md.AddString("snapshot", "", "snapshot to restore before running")
	save := md.AddBool("save", false, "save a snapshot when the run ends")
	rewindSteps := md.AddInt("rewind", hardware.DefaultRewindSteps, "number of snapshots kept for recovery from a jam")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsviewState()))

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}
	if len(md.RemainingArgs()) > 0 {
		return curated.Errorf("too many arguments for %s mode", md)
	}

	if *stats {
		statsview.Launch(os.Stdout)
	}

	r, err := readSnapshot(*snapshotFile)
	if err != nil {
		return err
	}

	m, err := args.machine(r)
	if err != nil {
		return err
	}

	var term terminal.Terminal
	if err := term.Initialise(os.Stdin, os.Stdout); err != nil {
		return err
	}

	rewind := hardware.NewRewind(m, *rewindSteps)

	standard := m.Instance.Prefs.VideoStandard.Get().(string)
	frame := clocks.Frame(standard)

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Stop(intChan)

	// a snapshot is recorded for the rewind history every 50 host frames
	const framesPerRecord = 50
	var frames int

	start := m.Clock()
	nextFrame := start + frame

	continueCheck := func() (govern.State, error) {
		select {
		case <-intChan:
			return govern.Ending, nil
		default:
		}

		if *cycles > 0 && m.Clock()-start >= *cycles {
			return govern.Ending, nil
		}

		if m.Clock() >= nextFrame {
			nextFrame += frame
			frames++
			if frames%framesPerRecord == 0 {
				rewind.Record()
			}
		}

		return govern.Running, nil
	}

	rewind.Record()

	for done := false; !done; {
		err := m.Run(continueCheck)
		if err == nil {
			break
		}

		var jam *drive.JamError
		if !errors.As(err, &jam) {
			return err
		}

		choice, err := term.JamPrompt(jam, rewind.Len() > 0)
		if err != nil {
			return err
		}

		switch choice {
		case terminal.ChoiceQuit:
			done = true
		case terminal.ChoiceRewind:
			if err := rewind.GotoLast(); err != nil {
				return err
			}
			nextFrame = m.Clock() + frame
		default:
			action, _ := choice.Action()
			if err := m.Recover(jam.Device-preferences.FirstDevice, action); err != nil {
				return err
			}
		}
	}

	fmt.Println(m)

	if *save {
		pth, err := writeSnapshot(m)
		if err != nil {
			return err
		}
		fmt.Printf("! snapshot saved to %s\n", pth)
	}

	return nil
}

func statsviewState() string {
	if statsview.Available() {
		return "available"
	}
	return "not available in this build"
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	args := addMachineArgs(md)
	duration := md.AddString("duration", "5s", "run duration (with an additional 500ms leadtime)")
	profile := md.AddString("profile", "none", "create profile: CPU, MEM, TRACE, BLOCK, MUTEX, NONE")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsviewState()))

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}
	if len(md.RemainingArgs()) > 0 {
		return curated.Errorf("too many arguments for %s mode", md)
	}

	prf, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	if *stats {
		statsview.Launch(os.Stdout)
	}

	m, err := args.machine(nil)
	if err != nil {
		return err
	}

	return performance.Check(os.Stdout, prf, m, *duration)
}

func dump(md *modalflag.Modes) error {
	md.NewMode()
	md.AdditionalHelp("dump the contents of a snapshot file")

	args := addMachineArgs(md)
	device := md.AddInt("device", preferences.FirstDevice, "drive to dump")
	dot := md.AddString("dot", "", "write graph of the drive's serial bus chip to file in DOT format")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return curated.Errorf("snapshot file required for %s mode", md)
	case 1:
	default:
		return curated.Errorf("too many arguments for %s mode", md)
	}

	r, err := readSnapshot(md.GetArg(0))
	if err != nil {
		return err
	}

	fmt.Println("modules:")
	for _, n := range r.Modules() {
		fmt.Printf("  %s\n", n)
	}

	m, err := args.machine(r)
	if err != nil {
		return err
	}
	fmt.Println(m)

	d := m.Drive(*device)
	if d == nil || !d.Enabled() {
		return curated.Errorf("drive %d is not in the snapshot", *device)
	}
	fmt.Println(d.Mem)
	fmt.Println(d.VIA1)
	fmt.Println(d.VIA2)

	if *dot != "" {
		f, err := os.Create(*dot)
		if err != nil {
			return err
		}
		defer f.Close()
		memviz.Map(f, d.VIA1)
	}

	return nil
}
