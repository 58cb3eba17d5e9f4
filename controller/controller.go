// Package controller implements the standard joypad as seen from the CPU
// bus: a parallel-in, serial-out shift register.
package controller

// Buttons in the order they are shifted out.
const (
	ButtonA uint8 = 1 << iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

type Controller struct {
	buttons uint8
	state   uint8
	strobe  bool
	reads   int
}

// SetButtons sets the pressed buttons, one bit per button.
func (c *Controller) SetButtons(buttons uint8) {
	c.buttons = buttons
	if c.strobe {
		c.reload()
	}
}

func (c *Controller) Buttons() uint8 {
	return c.buttons
}

// Write services the strobe bit of $4016. While the strobe is high the shift
// register is continually reloaded.
func (c *Controller) Write(data uint8) {
	c.strobe = data&1 != 0
	if c.strobe {
		c.reload()
	}
}

func (c *Controller) reload() {
	c.state = c.buttons
	c.reads = 0
}

// Read returns the next button bit in bit 0. After all eight buttons have
// been read the register returns 1.
func (c *Controller) Read() uint8 {
	if c.strobe {
		return c.buttons & 1
	}
	if c.reads >= 8 {
		return 1
	}
	data := c.state & 1
	c.state >>= 1
	c.reads++
	return data
}

// Peek returns the bit the next read would return.
func (c *Controller) Peek() uint8 {
	if c.strobe {
		return c.buttons & 1
	}
	if c.reads >= 8 {
		return 1
	}
	return c.state & 1
}
