// Command wasd runs the cursor program on a simulated machine with a
// memory-mapped keyboard and text display.
//
// Press w, a, s and d to move the cursor and q to quit.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"
	"strconv"

	"github.com/nf/wasd/cursor"
	"github.com/nf/wasd/platform"
)

func main() {
	log.SetPrefix("wasd: ")
	log.SetFlags(0)

	layout := cursor.DefaultLayout
	var (
		cliFlag   = flag.Bool("cli", false, "read keys from stdin and print the display on exit")
		guiFlag   = flag.Bool("gui", false, "show the display in a window")
		debugFlag = flag.Bool("debug", false, "enable debugger")
		devFlag   = flag.String("dev", "", "replay key `script` and re-run it whenever it changes")
		bellFlag  = flag.Bool("bell", false, "chime when the program halts")

		cpuProfileFlag = flag.String("cpu_profile", "", "write CPU profile to `file`")
	)
	flag.Func("vga", "display buffer `address` (default 0x000b8000)", func(s string) error {
		a, err := parseAddr(s)
		layout.Display = a
		return err
	})
	flag.Func("kbd", "keyboard status register `address`; the value register follows it (default 0x000a0000)", func(s string) error {
		a, err := parseAddr(s)
		layout.Status, layout.Key = a, a+1
		return err
	})

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-cli | -gui | -debug] [-bell]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s -dev <script>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()
	if flag.NArg() != 0 {
		flag.Usage()
	}

	if *devFlag != "" {
		if err := devMode(layout, *devFlag); err != nil {
			log.Fatal(err)
		}
		return
	}

	var cpuProfile io.Closer
	if prof := *cpuProfileFlag; prof != "" {
		f, err := os.Create(prof)
		if err != nil {
			log.Fatalf("creating CPU profile file: %v", err)
		}
		pprof.StartCPUProfile(f)
		cpuProfile = f
	}

	var mode runMode
	switch {
	case *debugFlag:
		mode = debugRun
	case *cliFlag:
		mode = cliRun
	case *guiFlag:
		mode = guiRun
	}
	err := run(layout, mode, *bellFlag)

	if f := cpuProfile; f != nil {
		pprof.StopCPUProfile()
		f.Close()
	}

	if err != nil && !errors.Is(err, cursor.ErrStopped) {
		log.Fatal(err)
	}
}

type runMode int

const (
	termRun runMode = iota
	cliRun
	guiRun
	debugRun
)

func run(l cursor.Layout, mode runMode, bell bool) error {
	m, err := platform.New(l)
	if err != nil {
		return err
	}

	var front platform.Frontend
	switch mode {
	case termRun:
		front, err = newTerminal(m)
	case cliRun:
		front = newStdinHost(m)
	case guiRun:
		front = newGUI(m)
	case debugRun:
		front = newDebugger(m)
	}
	if err != nil {
		return err
	}

	err = platform.NewRunner(m, front).Run()
	if err == nil {
		log.Printf("halted at %v", m.Program.Position())
		if bell {
			chime()
		}
	}
	if mode == cliRun {
		os.Stdout.WriteString(m.Display.Text())
	}
	return err
}

func parseAddr(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q", s)
	}
	return uint32(v), nil
}
