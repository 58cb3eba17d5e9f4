package nes

import (
	"fmt"

	"nes-core/cpu"
	"nes-core/ppu"
)

// Status is a read-only view of the console for diagnostics and test
// harnesses.
type Status struct {
	CPU          cpu.Snapshot
	PPU          ppu.Snapshot
	Instructions uint64
	Frames       uint64
	Hash         string
}

func (c *Console) Status() Status {
	return Status{
		CPU:          c.cpu.Snapshot(),
		PPU:          c.ppu.Snapshot(),
		Instructions: c.instructions,
		Frames:       c.ppu.FrameCount(),
		Hash:         c.ppu.Frame().Hash(),
	}
}

// traceScanline numbers the pre-render line 261, as nestest.log does.
func traceScanline(scanline int) int {
	if scanline == ppu.PreRenderScanline {
		return ppu.Scanlines - 1
	}
	return scanline
}

func (s Status) String() string {
	return fmt.Sprintf("%s PPU:%3d,%3d frame:%d", s.CPU, traceScanline(s.PPU.Scanline), s.PPU.Dot, s.Frames)
}
