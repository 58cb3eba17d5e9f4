package ppu

import (
	"crypto/sha1"
	"encoding/hex"
	"image"
	"image/color"
)

// Visible picture size.
const (
	Width  = 256
	Height = 240
)

// Frame is a completed picture as palette indices, row major.
type Frame struct {
	pixels [Width * Height]uint8
}

// At returns the palette index of a pixel.
func (f *Frame) At(x, y int) uint8 {
	return f.pixels[y*Width+x]
}

// Hash is the SHA-1 digest of the frame as a hex string.
func (f *Frame) Hash() string {
	sum := sha1.Sum(f.pixels[:])
	return hex.EncodeToString(sum[:])
}

// Image converts the frame to RGBA.
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	f.Draw(img)
	return img
}

// Draw writes the frame into an existing RGBA image of the frame size.
func (f *Frame) Draw(img *image.RGBA) {
	for i, v := range f.pixels {
		c := Palette[v&0x3F]
		o := i * 4
		img.Pix[o+0] = c.R
		img.Pix[o+1] = c.G
		img.Pix[o+2] = c.B
		img.Pix[o+3] = 0xFF
	}
}

// PatternTable renders one of the two 128x128 pixel pattern tables with
// the given palette.
func (p *PPU) PatternTable(i uint8, palette uint8, cart Cartridge) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 128, 128))
	base := uint16(i&0x01) * 0x1000

	for tileY := uint16(0); tileY < 16; tileY++ {
		for tileX := uint16(0); tileX < 16; tileX++ {
			offset := tileY*256 + tileX*16
			for row := uint16(0); row < 8; row++ {
				tileLsb := p.read(base+offset+row, cart)
				tileMsb := p.read(base+offset+row+8, cart)

				for col := uint16(0); col < 8; col++ {
					pixel := ((tileMsb & 0x01) << 1) | (tileLsb & 0x01)
					tileLsb >>= 1
					tileMsb >>= 1
					img.Set(int(tileX*8+(7-col)), int(tileY*8+row), Palette[p.paletteEntry(palette&0x07, pixel)&0x3F])
				}
			}
		}
	}
	return img
}

// PaletteColour returns the colour of an entry in one of the eight
// palettes.
func (p *PPU) PaletteColour(palette uint8, pixel uint8) color.RGBA {
	v := p.palette[paletteOffset(uint16(palette&0x07)<<2|uint16(pixel&0x03))]
	return Palette[v&0x3F]
}

// Palette is the 2C02 master palette.
var Palette = [64]color.RGBA{
	{0x66, 0x66, 0x66, 0xFF}, {0x00, 0x2A, 0x88, 0xFF}, {0x14, 0x12, 0xA7, 0xFF}, {0x3B, 0x00, 0xA4, 0xFF},
	{0x5C, 0x00, 0x7E, 0xFF}, {0x6E, 0x00, 0x40, 0xFF}, {0x6C, 0x06, 0x00, 0xFF}, {0x56, 0x1D, 0x00, 0xFF},
	{0x33, 0x35, 0x00, 0xFF}, {0x0B, 0x48, 0x00, 0xFF}, {0x00, 0x52, 0x00, 0xFF}, {0x00, 0x4F, 0x08, 0xFF},
	{0x00, 0x40, 0x4D, 0xFF}, {0x00, 0x00, 0x00, 0xFF}, {0x00, 0x00, 0x00, 0xFF}, {0x00, 0x00, 0x00, 0xFF},
	{0xAD, 0xAD, 0xAD, 0xFF}, {0x15, 0x5F, 0xD9, 0xFF}, {0x42, 0x40, 0xFF, 0xFF}, {0x75, 0x27, 0xFE, 0xFF},
	{0xA0, 0x1A, 0xCC, 0xFF}, {0xB7, 0x1E, 0x7B, 0xFF}, {0xB5, 0x31, 0x20, 0xFF}, {0x99, 0x4E, 0x00, 0xFF},
	{0x6B, 0x6D, 0x00, 0xFF}, {0x38, 0x87, 0x00, 0xFF}, {0x0C, 0x93, 0x00, 0xFF}, {0x00, 0x8F, 0x32, 0xFF},
	{0x00, 0x7C, 0x8D, 0xFF}, {0x00, 0x00, 0x00, 0xFF}, {0x00, 0x00, 0x00, 0xFF}, {0x00, 0x00, 0x00, 0xFF},
	{0xFF, 0xFE, 0xFF, 0xFF}, {0x64, 0xB0, 0xFF, 0xFF}, {0x92, 0x90, 0xFF, 0xFF}, {0xC6, 0x76, 0xFF, 0xFF},
	{0xF3, 0x6A, 0xFF, 0xFF}, {0xFE, 0x6E, 0xCC, 0xFF}, {0xFE, 0x81, 0x70, 0xFF}, {0xEA, 0x9E, 0x22, 0xFF},
	{0xBC, 0xBE, 0x00, 0xFF}, {0x88, 0xD8, 0x00, 0xFF}, {0x5C, 0xE4, 0x30, 0xFF}, {0x45, 0xE0, 0x82, 0xFF},
	{0x48, 0xCD, 0xDE, 0xFF}, {0x4F, 0x4F, 0x4F, 0xFF}, {0x00, 0x00, 0x00, 0xFF}, {0x00, 0x00, 0x00, 0xFF},
	{0xFF, 0xFE, 0xFF, 0xFF}, {0xC0, 0xDF, 0xFF, 0xFF}, {0xD3, 0xD2, 0xFF, 0xFF}, {0xE8, 0xC8, 0xFF, 0xFF},
	{0xFB, 0xC2, 0xFF, 0xFF}, {0xFE, 0xC4, 0xEA, 0xFF}, {0xFE, 0xCC, 0xC5, 0xFF}, {0xF7, 0xD8, 0xA5, 0xFF},
	{0xE4, 0xE5, 0x94, 0xFF}, {0xCF, 0xEF, 0x96, 0xFF}, {0xBD, 0xF4, 0xAB, 0xFF}, {0xB3, 0xF3, 0xCC, 0xFF},
	{0xB5, 0xEB, 0xF2, 0xFF}, {0xB8, 0xB8, 0xB8, 0xFF}, {0x00, 0x00, 0x00, 0xFF}, {0x00, 0x00, 0x00, 0xFF},
}
