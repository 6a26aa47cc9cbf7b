// This file is part of Gopher64.
//
// Gopher64 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher64 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher64.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alecthomas/kong"
	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/gopher64/audioplayer"
	"github.com/jetsetilly/gopher64/cartridgeloader"
	"github.com/jetsetilly/gopher64/digest"
	"github.com/jetsetilly/gopher64/diskimage"
	"github.com/jetsetilly/gopher64/environment"
	"github.com/jetsetilly/gopher64/hardware"
	"github.com/jetsetilly/gopher64/hardware/preferences"
	"github.com/jetsetilly/gopher64/hostterm"
	"github.com/jetsetilly/gopher64/logger"
	"github.com/jetsetilly/gopher64/macro"
	"github.com/jetsetilly/gopher64/notifications"
	"github.com/jetsetilly/gopher64/paths"
	"github.com/jetsetilly/gopher64/performance"
	"github.com/jetsetilly/gopher64/performance/limiter"
	"github.com/jetsetilly/gopher64/prefs"
	"github.com/jetsetilly/gopher64/prgloader"
	"github.com/jetsetilly/gopher64/recorder"
	"github.com/jetsetilly/gopher64/sdlwindow"
	"github.com/jetsetilly/gopher64/statsview"
	"github.com/jetsetilly/gopher64/tapeloader"
	"github.com/jetsetilly/gopher64/version"
	"github.com/jetsetilly/gopher64/wavwriter"
)

// the sub-directory of the resource path containing the system ROMs
const romDir = "roms"

// default ROM filenames
const (
	defaultBasic    = "basic.bin"
	defaultKernal   = "kernal.bin"
	defaultChargen  = "chargen.bin"
	defaultDriveROM = "1541.bin"
)

var cli struct {
	Run     runCmd     `cmd default:"1" help:"run the emulation"`
	Perform performCmd `cmd help:"check the performance of the emulation"`
	Graph   graphCmd   `cmd help:"write a graph of the emulation structure in dot format"`
	Version versionCmd `cmd help:"print version information"`
}

// globals are bound to the Run() function of every command.
type globals struct {
	output io.Writer
}

// SDL must be serviced from the main thread
func init() {
	runtime.LockOSThread()
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name(strings.ToLower(version.ApplicationName)),
		kong.Description("a cycle accurate C64 and 1541 emulator"),
	)
	err := ctx.Run(&globals{output: os.Stdout})
	ctx.FatalIfErrorf(err)
}

// machine is the description of the emulation shared by the commands that
// create one.
type machine struct {
	tv       string
	noDrive  bool
	cable    bool
	basic    string
	kernal   string
	chargen  string
	driveROM string
	prefs    string
	mapping  string
	log      bool
}

func (m machine) create() (*hardware.Ensemble, error) {
	if m.log {
		logger.SetEcho(os.Stderr, false)
	} else {
		logger.SetEcho(nil, false)
	}

	if m.prefs != "" {
		prefs.PushCommandLineStack(m.prefs)
		defer func() {
			if unused := prefs.PopCommandLineStack(); unused != "" {
				logger.Logf(logger.Allow, "gopher64", "unused preferences: %s", unused)
			}
		}()
	}

	p, err := preferences.NewPreferences()
	if err != nil {
		return nil, err
	}
	if m.tv != "" {
		if err := p.Clock.Set(strings.ToUpper(m.tv)); err != nil {
			return nil, err
		}
	}
	if m.noDrive {
		_ = p.Drive.Enabled.Set(false)
	}
	if m.cable {
		_ = p.Drive.ParallelCable.Set(true)
	}

	env, err := environment.NewEnvironment(nil, p)
	if err != nil {
		return nil, err
	}
	env.Notifications = notifications.NotifyFunc(logNotice)

	ens, err := hardware.NewEnsemble(env)
	if err != nil {
		return nil, err
	}

	basic, err := loadROM(m.basic, defaultBasic, true)
	if err != nil {
		return nil, err
	}
	kernal, err := loadROM(m.kernal, defaultKernal, true)
	if err != nil {
		return nil, err
	}
	chargen, err := loadROM(m.chargen, defaultChargen, true)
	if err != nil {
		return nil, err
	}
	driveROM, err := loadROM(m.driveROM, defaultDriveROM, false)
	if err != nil {
		return nil, err
	}
	if driveROM == nil && p.Drive.Enabled.Get().(bool) {
		logger.Log(logger.Allow, "gopher64", "no drive ROM. drive is switched off")
	}

	if err := ens.SetROMs(basic, kernal, chargen, driveROM); err != nil {
		return nil, err
	}

	return ens, nil
}

// notices from the hardware are written to the log
func logNotice(notice notifications.Notice) error {
	logger.Log(logger.Allow, "notice", strings.TrimPrefix(string(notice), "Notify"))
	return nil
}

// loadROM reads the ROM file. An empty filename means the default file in the
// resource directory. A missing default file is only an error if the ROM is
// required.
func loadROM(filename string, defaultName string, required bool) ([]uint8, error) {
	if filename != "" {
		return os.ReadFile(filename)
	}

	pth, err := paths.ResourcePath(romDir, defaultName)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(pth)
	if err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// media is the kind of file that can be given to the emulation.
type media int

const (
	mediaUnknown media = iota
	mediaProgram
	mediaDisk
	mediaTape
	mediaCartridge
)

func mediaKind(filename string) media {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".prg":
		return mediaProgram
	case ".d64":
		return mediaDisk
	case ".tap", ".wav", ".mp3":
		return mediaTape
	case ".crt", ".bin", ".rom":
		return mediaCartridge
	}

	// PC64 files have the extension .Pnn
	if len(ext) == 4 && ext[1] == 'p' && ext[2] >= '0' && ext[2] <= '9' && ext[3] >= '0' && ext[3] <= '9' {
		return mediaProgram
	}

	return mediaUnknown
}

// attach the file to the emulation and reset. the name of the program, if
// any, is returned
func attach(ens *hardware.Ensemble, filename string, mapping string) (string, error) {
	if filename == "" {
		ens.Reset()
		return "", nil
	}

	switch mediaKind(filename) {
	case mediaProgram:
		p, err := prgloader.Load(filename)
		if err != nil {
			return "", err
		}
		if err := ens.LoadProgram(p); err != nil {
			return "", err
		}
		ens.Reset()
		return p.Name, nil

	case mediaDisk:
		img, err := diskimage.Load(filename)
		if err != nil {
			return "", err
		}
		if err := ens.InsertDisk(img); err != nil {
			return "", err
		}
		ens.Reset()
		return "", nil

	case mediaTape:
		pulses, err := tapeloader.Load(filename, ens.C64().Sched.CyclesPerSecond())
		if err != nil {
			return "", err
		}

		// the datasette is stopped by the reset so play is pressed after
		ens.Reset()
		ens.InsertTape(pulses)
		return "", ens.C64().Tape.Play()

	case mediaCartridge:
		cl := cartridgeloader.NewLoader(filename, mapping)
		if err := cl.Load(); err != nil {
			return "", err
		}
		cart, err := cl.Cartridge()
		if err != nil {
			return "", err
		}
		// attaching a cartridge resets the machine
		ens.AttachCartridge(cart)
		return cl.ShortName(), nil
	}

	return "", fmt.Errorf("unrecognised file type: %s", filepath.Base(filename))
}

type runCmd struct {
	File string `arg:"" optional:"" help:"program, disk image, tape image or cartridge to attach"`

	TV       string `name:"tv" help:"video standard: PAL or NTSC"`
	NoDrive  bool   `name:"nodrive" help:"switch off the disk drive"`
	Cable    bool   `name:"cable" help:"connect the parallel cable between the user port and the drive"`
	Basic    string `name:"basic" help:"BASIC ROM file"`
	Kernal   string `name:"kernal" help:"KERNAL ROM file"`
	Chargen  string `name:"chargen" help:"character ROM file"`
	DriveROM string `name:"driverom" help:"1541 ROM file"`
	Mapping  string `name:"mapping" default:"AUTO" help:"force cartridge mapping: AUTO, 8K, 16K, ULTIMAX"`
	Prefs    string `name:"prefs" help:"preferences for this session, eg. \"drive.device::9; hardware.falloff::200000\""`
	Log      bool   `name:"log" help:"echo the log to stderr"`

	Cycles   uint64 `name:"cycles" help:"stop after the number of cycles. zero runs until interrupted"`
	Uncapped bool   `name:"uncapped" help:"run as quickly as possible"`
	Screen   bool   `name:"screen" help:"draw the text screen to the terminal"`
	Keyboard bool   `name:"keyboard" help:"type on the C64 keyboard from the terminal"`
	Wav      string `name:"wav" help:"record audio to wav file"`
	Audio    bool   `name:"audio" help:"play audio through the sound device"`
	Macro    string `name:"macro" help:"macro script to run"`
	Record   string `name:"record" help:"record input events to file"`
	Playback string `name:"playback" help:"play back input events from file"`
	TapeOut  string `name:"tapeout" help:"press record on the datasette and save the tape to file on exit"`
	Stats    bool   `name:"stats" help:"launch the statistics server"`
	Digest   bool   `name:"digest" help:"print the video and audio digests on exit"`
	Window   bool   `name:"window" help:"open a window showing the screen"`
	Scale    int    `name:"scale" default:"2" help:"size of the window as a multiple of the screen size"`
}

func (r *runCmd) machine() machine {
	return machine{
		tv:       r.TV,
		noDrive:  r.NoDrive,
		cable:    r.Cable,
		basic:    r.Basic,
		kernal:   r.Kernal,
		chargen:  r.Chargen,
		driveROM: r.DriveROM,
		prefs:    r.Prefs,
		mapping:  r.Mapping,
		log:      r.Log,
	}
}

func (r *runCmd) Run(g *globals) (rerr error) {
	if r.Stats {
		if !statsview.Available() {
			return fmt.Errorf("statistics server not available in this build")
		}
		statsview.Launch(g.output)
	}

	ens, err := r.machine().create()
	if err != nil {
		return err
	}
	defer ens.Shutdown()

	c64 := ens.C64()

	program, err := attach(ens, r.File, r.Mapping)
	if err != nil {
		return err
	}

	if r.TapeOut != "" {
		if err := c64.Tape.Record(); err != nil {
			return err
		}
		defer func() {
			err := tapeloader.Save(r.TapeOut, c64.Tape.Pulses())
			if err != nil && rerr == nil {
				rerr = err
			}
		}()
	}

	if r.Record != "" && r.Playback != "" {
		return fmt.Errorf("cannot record and playback at the same time")
	}
	if r.Record != "" {
		rec, err := recorder.NewRecorder(r.Record, c64.Sched.CyclesPerSecond().String(), program)
		if err != nil {
			return err
		}
		defer func() {
			err := rec.End()
			if err != nil && rerr == nil {
				rerr = err
			}
		}()
		if err := c64.Input.AttachRecorder(rec); err != nil {
			return err
		}
	}
	if r.Playback != "" {
		plb, err := recorder.NewPlayback(r.Playback)
		if err != nil {
			return err
		}
		if err := plb.Validate(c64.Sched.CyclesPerSecond()); err != nil {
			return err
		}
		if err := c64.Input.AttachPlayback(plb); err != nil {
			return err
		}
	}

	if r.Wav != "" {
		aw, err := wavwriter.New(r.Wav, c64.SID.SampleRate())
		if err != nil {
			return err
		}
		c64.SID.AddSampleSink(aw)
		defer func() {
			err := aw.Close()
			if err != nil && rerr == nil {
				rerr = err
			}
		}()
	}

	if r.Audio {
		ap, err := audioplayer.New(c64.SID.SampleRate())
		if err != nil {
			return err
		}
		c64.SID.AddSampleSink(ap)
		ap.Start()
		defer ap.Close()
	}

	if !r.Uncapped {
		c64.VIC.AddFrameSink(limiter.NewFPSLimiter(c64.VIC.Geometry().RefreshRate))
	}

	if r.Screen || r.Keyboard {
		var in *os.File
		if r.Keyboard {
			in = os.Stdin
		}
		var out io.Writer
		if r.Screen {
			out = g.output
		}
		trm := hostterm.New(in, out, ens)
		if err := trm.Start(); err != nil {
			return err
		}
		defer trm.Stop()
		c64.VIC.AddFrameSink(trm)
	}

	if r.Digest {
		vd := digest.NewVideo()
		ad := digest.NewAudio()
		c64.VIC.AddFrameSink(vd)
		c64.SID.AddSampleSink(ad)
		defer func() {
			fmt.Fprintf(g.output, "video: %s (%d frames)\n", vd.Hash(), vd.Frames())
			fmt.Fprintf(g.output, "audio: %s\n", ad.Hash())
		}()
	}

	var quit atomic.Bool

	if r.Macro != "" {
		mcr, err := macro.NewMacro(r.Macro, ens, func() { quit.Store(true) })
		if err != nil {
			return err
		}
		c64.VIC.AddFrameSink(mcr)
		mcr.Run()
		defer mcr.Quit()
	}

	var wnd *sdlwindow.Window
	if r.Window {
		wnd, err = sdlwindow.NewWindow(c64.PLA.CharacterROM(), r.Scale, ens)
		if err != nil {
			return err
		}
		defer wnd.Destroy()
		c64.VIC.AddFrameSink(wnd)
	}

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Stop(intChan)

	target := c64.Sched.Cycles() + r.Cycles

	run := func() error {
		return ens.Run(func() (bool, error) {
			select {
			case <-intChan:
				return false, nil
			default:
			}
			if quit.Load() {
				return false, nil
			}
			if r.Cycles > 0 && c64.Sched.Cycles() >= target {
				return false, nil
			}
			return true, ens.LastError()
		})
	}

	// the emulation runs in its own goroutine when the window is open
	if wnd != nil {
		done := make(chan error, 1)
		go func() {
			done <- run()
		}()
		return wnd.Loop(done, func() { quit.Store(true) })
	}

	return run()
}

type performCmd struct {
	File string `arg:"" optional:"" help:"program, disk image, tape image or cartridge to attach"`

	TV       string `name:"tv" help:"video standard: PAL or NTSC"`
	NoDrive  bool   `name:"nodrive" help:"switch off the disk drive"`
	Mapping  string `name:"mapping" default:"AUTO" help:"force cartridge mapping: AUTO, 8K, 16K, ULTIMAX"`
	Duration string `name:"duration" default:"5s" help:"run performance check for duration"`
	Profile  string `name:"profile" default:"none" help:"create profile reports: none, cpu, mem or cpu,mem"`
	Log      bool   `name:"log" help:"echo the log to stderr"`
}

func (p *performCmd) Run(g *globals) error {
	duration, err := time.ParseDuration(p.Duration)
	if err != nil {
		return err
	}
	profile, err := performance.ParseProfile(p.Profile)
	if err != nil {
		return err
	}

	m := machine{
		tv:      p.TV,
		noDrive: p.NoDrive,
		mapping: p.Mapping,
		log:     p.Log,
	}
	ens, err := m.create()
	if err != nil {
		return err
	}
	defer ens.Shutdown()

	if _, err := attach(ens, p.File, p.Mapping); err != nil {
		return err
	}

	_, err = performance.Check(g.output, profile, ens, duration)
	return err
}

type graphCmd struct {
	Output string `name:"output" short:"o" default:"-" help:"file to write the graph to. - is stdout"`
}

func (c *graphCmd) Run(g *globals) error {
	p, err := preferences.NewVolatilePreferences()
	if err != nil {
		return err
	}
	env, err := environment.NewEnvironment(nil, p)
	if err != nil {
		return err
	}
	ens, err := hardware.NewEnsemble(env)
	if err != nil {
		return err
	}
	defer ens.Shutdown()

	out := g.output
	if c.Output != "-" {
		f, err := os.Create(c.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	memviz.Map(out, ens)
	return nil
}

type versionCmd struct{}

func (v *versionCmd) Run(g *globals) error {
	b := version.Build()
	fmt.Fprintln(g.output, b)
	if b.GoVersion != "" {
		fmt.Fprintf(g.output, "built with %s\n", b.GoVersion)
	}
	return nil
}
