package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func readAll(c *Controller, n int) []uint8 {
	bits := make([]uint8, n)
	for i := range bits {
		bits[i] = c.Read()
	}
	return bits
}

func TestShiftOrder(t *testing.T) {
	c := &Controller{}
	c.SetButtons(ButtonA | ButtonStart | ButtonRight)
	c.Write(1)
	c.Write(0)

	assert.Equal(t, []uint8{1, 0, 0, 1, 0, 0, 0, 1, 1, 1}, readAll(c, 10))
}

func TestStrobeHeld(t *testing.T) {
	c := &Controller{}
	c.SetButtons(ButtonA)
	c.Write(1)

	assert.Equal(t, []uint8{1, 1, 1}, readAll(c, 3))

	c.SetButtons(ButtonB)
	assert.Equal(t, uint8(0), c.Read())
}

func TestNoStrobe(t *testing.T) {
	c := &Controller{}
	c.SetButtons(0xFF)

	// nothing latched yet
	assert.Equal(t, uint8(0), c.Peek())
	assert.Equal(t, uint8(0), c.Read())

	c.Write(1)
	c.Write(0)
	c.SetButtons(0)
	assert.Equal(t, uint8(1), c.Peek())
	assert.Equal(t, []uint8{1, 1, 1, 1, 1, 1, 1, 1}, readAll(c, 8))
}
