package nes

import (
	"errors"
	"fmt"
	"strings"

	"nes-core/logger"
)

var (
	// ErrTimeout is returned when a test ROM does not finish in time.
	ErrTimeout = errors.New("test ROM did not finish")

	// ErrNoSignature is returned when a test ROM never announces that it
	// uses the $6000 status protocol.
	ErrNoSignature = errors.New("test ROM has no status signature")
)

// Status protocol of blargg's test ROMs.
const (
	testStatus  = 0x6000
	testMagic   = 0x6001
	testMessage = 0x6004

	testRunning    = 0x80
	testNeedsReset = 0x81

	maxMessage = 4096
)

var testSignature = [3]uint8{0xDE, 0xB0, 0x61}

// frames to wait after a test ROM asks to be reset
const resetDelay = 6

// TestResult is the outcome of a test ROM.
type TestResult struct {
	Code    uint8
	Message string
	Frames  int
}

func (r TestResult) Passed() bool {
	return r.Code == 0
}

func (r TestResult) String() string {
	verdict := "passed"
	if !r.Passed() {
		verdict = fmt.Sprintf("failed (code %d)", r.Code)
	}
	return fmt.Sprintf("%s after %d frames: %s", verdict, r.Frames, strings.TrimSpace(r.Message))
}

func (c *Console) signature() bool {
	for i, v := range testSignature {
		if c.Peek(testMagic+uint16(i)) != v {
			return false
		}
	}
	return true
}

func (c *Console) testMessage() string {
	var b strings.Builder
	for i := uint16(0); i < maxMessage; i++ {
		ch := c.Peek(testMessage + i)
		if ch == 0 {
			break
		}
		b.WriteByte(ch)
	}
	return b.String()
}

// RunTestROM runs a test ROM that reports through $6000 until it finishes,
// for at most maxFrames frames.
func RunTestROM(c *Console, maxFrames int) (TestResult, error) {
	seen := false
	resetAt := -1

	for frame := 1; frame <= maxFrames; frame++ {
		c.StepFrame()

		if !c.signature() {
			continue
		}
		seen = true

		if resetAt >= 0 {
			if frame-resetAt >= resetDelay {
				resetAt = -1
				c.Reset()
			}
			continue
		}

		switch status := c.Peek(testStatus); status {
		case testRunning:
		case testNeedsReset:
			resetAt = frame
		default:
			r := TestResult{Code: status, Message: c.testMessage(), Frames: frame}
			logger.Logf("nes", "test ROM %s", r)
			return r, nil
		}
	}

	if !seen {
		return TestResult{Frames: maxFrames}, ErrNoSignature
	}
	return TestResult{Code: c.Peek(testStatus), Message: c.testMessage(), Frames: maxFrames}, ErrTimeout
}

// end of the automated part of nestest
const nestestEnd = 0xC66E

// NestestResult runs nestest in automated mode until it returns from its
// test routine, and returns the two result bytes. Zero in both means every
// test passed. The console should be built with WithStartPC($C000).
func NestestResult(c *Console, maxInstructions int) (official uint8, unofficial uint8, err error) {
	for i := 0; i < maxInstructions; i++ {
		if c.cpu.PC() == nestestEnd {
			return c.Peek(0x02), c.Peek(0x03), nil
		}
		c.Step()
	}
	return c.Peek(0x02), c.Peek(0x03), ErrTimeout
}
