package main

import (
	"flag"
	"fmt"
	"strconv"
)

const programName = "nes-core"

type config struct {
	rom        string
	headless   bool
	frames     int
	scale      int
	trace      string
	png        string
	startPC    uint16
	hasStartPC bool
	testROM    bool
	log        bool
}

func parseConfig(args []string) (config, error) {
	var cfg config
	var startPC string

	flgs := flag.NewFlagSet(programName, flag.ContinueOnError)
	flgs.StringVar(&cfg.rom, "rom", "", "iNES file to load")
	flgs.BoolVar(&cfg.headless, "headless", false, "run without a window and print the console state")
	flgs.IntVar(&cfg.frames, "frames", 60, "number of frames to run in headless mode")
	flgs.IntVar(&cfg.scale, "scale", 2, "window scale")
	flgs.StringVar(&cfg.trace, "trace", "", "write an instruction trace in nestest.log format to file")
	flgs.StringVar(&cfg.png, "png", "", "save the last frame to a PNG file in headless mode")
	flgs.StringVar(&startPC, "start-pc", "", "start execution at this hex address instead of the reset vector")
	flgs.BoolVar(&cfg.testROM, "test", false, "treat the ROM as a test ROM reporting through $6000")
	flgs.BoolVar(&cfg.log, "log", false, "echo log entries to stderr")
	if err := flgs.Parse(args); err != nil {
		return config{}, err
	}

	args = flgs.Args()
	if len(args) == 1 && cfg.rom == "" {
		cfg.rom = args[0]
	} else if len(args) > 0 {
		return config{}, fmt.Errorf("too many arguments")
	}
	if cfg.rom == "" {
		return config{}, fmt.Errorf("no ROM file given")
	}

	if startPC != "" {
		pc, err := strconv.ParseUint(startPC, 16, 16)
		if err != nil {
			return config{}, fmt.Errorf("start-pc: %w", err)
		}
		cfg.startPC = uint16(pc)
		cfg.hasStartPC = true
	}

	if cfg.frames < 1 {
		return config{}, fmt.Errorf("frames must be positive")
	}
	if cfg.scale < 1 {
		cfg.scale = 1
	}

	return cfg, nil
}
