package ppu

// Field is a run of Size bits starting at bit Index.
type Field struct {
	Index uint16
	Size  uint16
}

func (f Field) mask() uint16 {
	return (uint16(1)<<f.Size - 1) << f.Index
}

// Register is a PPU register addressed by named bit fields.
type Register uint16

func (r Register) Get(f Field) uint16 {
	return (uint16(r) & f.mask()) >> f.Index
}

// Set stores value in the field, discarding bits that do not fit.
func (r *Register) Set(f Field, value uint16) {
	m := f.mask()
	*r = Register((uint16(*r) &^ m) | ((value << f.Index) & m))
}

func (r Register) Flag(f Field) bool {
	return r.Get(f) != 0
}

func (r *Register) SetFlag(f Field, v bool) {
	if v {
		r.Set(f, 1)
	} else {
		r.Set(f, 0)
	}
}

// PPUSTATUS
var (
	statusSpriteOverflow = Field{5, 1}
	statusSpriteZeroHit  = Field{6, 1}
	statusVerticalBlank  = Field{7, 1}
)

// PPUMASK
var (
	maskGrayscale            = Field{0, 1}
	maskRenderBackgroundLeft = Field{1, 1}
	maskRenderSpritesLeft    = Field{2, 1}
	maskRenderBackground     = Field{3, 1}
	maskRenderSprites        = Field{4, 1}
	// bits 5-7 select colour emphasis, which is not rendered
)

// PPUCTRL
var (
	ctrlNametable         = Field{0, 2}
	ctrlIncrementMode     = Field{2, 1}
	ctrlPatternSprite     = Field{3, 1}
	ctrlPatternBackground = Field{4, 1}
	ctrlSpriteSize        = Field{5, 1}
	ctrlEnableNMI         = Field{7, 1}
)

// internal VRAM address ("loopy") registers
var (
	loopyCoarseX    = Field{0, 5}
	loopyCoarseY    = Field{5, 5}
	loopyNametableX = Field{10, 1}
	loopyNametableY = Field{11, 1}
	loopyNametable  = Field{10, 2}
	loopyFineY      = Field{12, 3}
	loopyUnused     = Field{15, 1}
)
