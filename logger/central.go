package logger

import (
	"fmt"
	"io"
)

// capacity of the shared log
const capacity = 256

var std = newRing(capacity)

// Log adds an entry.
func Log(tag, detail string) {
	std.add(tag, detail)
}

// Logf adds a formatted entry.
func Logf(tag, detail string, args ...interface{}) {
	std.add(tag, fmt.Sprintf(detail, args...))
}

// Tail writes the newest entries. A negative number writes every entry.
func Tail(output io.Writer, number int) {
	dump(output, std.last(number))
}

// SetEcho prints new entries to output as they are made. A nil writer turns
// echoing off.
func SetEcho(output io.Writer) {
	std.setEcho(output)
}
