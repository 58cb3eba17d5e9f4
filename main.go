package main

import (
	"bufio"
	"fmt"
	"os"

	"nes-core/cartridge"
	"nes-core/logger"
	"nes-core/nes"
)

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", programName, err)
		os.Exit(2)
	}

	if cfg.log {
		logger.SetEcho(os.Stderr)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", programName, err)
		os.Exit(1)
	}
}

func run(cfg config) error {
	cart, err := cartridge.LoadFile(cfg.rom)
	if err != nil {
		return err
	}

	var options []nes.Option
	if cfg.trace != "" {
		f, err := os.Create(cfg.trace)
		if err != nil {
			return fmt.Errorf("trace: %w", err)
		}
		defer f.Close()
		w := bufio.NewWriter(f)
		defer w.Flush()
		options = append(options, nes.WithTrace(w))
	}
	if cfg.hasStartPC {
		options = append(options, nes.WithStartPC(cfg.startPC))
	}

	console, err := nes.New(cart, options...)
	if err != nil {
		return err
	}

	defer func() {
		if err := cart.SaveRAM(cfg.rom); err != nil {
			logger.Logf("main", "saving battery RAM: %v", err)
		}
	}()

	if cfg.headless {
		return runHeadless(os.Stdout, console, cfg)
	}
	return runWindow(console, cfg)
}
