package main

import (
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"nes-core/logger"
	"nes-core/nes"
	"nes-core/ppu"
)

var errTestFailed = errors.New("test ROM failed")

func runHeadless(w io.Writer, console *nes.Console, cfg config) error {
	st := newStyles()

	var verdict string
	var testErr error
	if cfg.testROM {
		r, err := nes.RunTestROM(console, cfg.frames)
		switch {
		case err != nil:
			verdict = st.fail.Render(" " + err.Error() + " ")
			testErr = err
		case r.Passed():
			verdict = st.pass.Render(" " + r.String() + " ")
		default:
			verdict = st.fail.Render(" " + r.String() + " ")
			testErr = errTestFailed
		}
	} else {
		for i := 0; i < cfg.frames; i++ {
			console.StepFrame()
		}
	}

	fmt.Fprintln(w, report(st, filepath.Base(cfg.rom), console.Status(), verdict))
	logger.Tail(w, 10)

	if cfg.png != "" {
		if err := savePNG(cfg.png, console.Frame()); err != nil {
			return err
		}
	}

	return testErr
}

func report(st styles, name string, s nes.Status, verdict string) string {
	row := func(label string, style lipgloss.Style, value string) string {
		return st.label.Render(fmt.Sprintf("%-7s", label)) + style.Render(value)
	}

	scanline := s.PPU.Scanline
	if scanline == ppu.PreRenderScanline {
		scanline = ppu.Scanlines - 1
	}

	lines := []string{
		st.title.Render(name),
		row("CPU", st.cpu, s.CPU.String()),
		row("flags", st.cpu, s.CPU.Flags()),
		row("PPU", st.video, fmt.Sprintf("scanline %d dot %d ctrl %02X mask %02X status %02X", scanline, s.PPU.Dot, s.PPU.Control, s.PPU.Mask, s.PPU.Status)),
		row("frames", st.video, fmt.Sprintf("%d (%d instructions)", s.Frames, s.Instructions)),
		row("hash", st.video, s.Hash),
	}
	if s.CPU.Jammed {
		lines = append(lines, st.fail.Render(" CPU jammed "))
	}
	if verdict != "" {
		lines = append(lines, verdict)
	}

	return st.box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func savePNG(filename string, frame *ppu.Frame) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("png: %w", err)
	}
	if err := png.Encode(f, frame.Image()); err != nil {
		f.Close()
		return fmt.Errorf("png: %w", err)
	}
	return f.Close()
}
