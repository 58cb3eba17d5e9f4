// Package logger keeps a bounded, in-memory log shared by every package of
// the emulator. Consecutive identical lines are folded into one entry with a
// count.
//
// The folding behaviour and package level API follow the logger of
// Gopher2600 (https://github.com/JetSetIlly/Gopher2600, GPL-3.0).
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Entry is one line of the log.
type Entry struct {
	Timestamp time.Time
	Tag       string
	Detail    string

	// times the line was logged in a row
	count int
}

func (e Entry) String() string {
	if e.count > 1 {
		return fmt.Sprintf("%s: %s (repeat x%d)\n", e.Tag, e.Detail, e.count)
	}
	return fmt.Sprintf("%s: %s\n", e.Tag, e.Detail)
}

func (e Entry) same(tag, detail string) bool {
	return e.Tag == tag && e.Detail == detail
}

type ring struct {
	mu    sync.Mutex
	limit int
	lines []Entry
	echo  io.Writer
}

func newRing(limit int) *ring {
	return &ring{
		limit: limit,
		lines: make([]Entry, 0, limit),
	}
}

func (r *ring) add(tag, detail string) {
	tag = strings.ReplaceAll(tag, "\n", "")
	detail = strings.ReplaceAll(detail, "\n", "")
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.lines)
	if n > 0 && r.lines[n-1].same(tag, detail) {
		r.lines[n-1].count++
		r.lines[n-1].Timestamp = now
	} else {
		if n == r.limit {
			r.lines = append(r.lines[:0], r.lines[1:]...)
		}
		r.lines = append(r.lines, Entry{Timestamp: now, Tag: tag, Detail: detail, count: 1})
	}

	if r.echo != nil {
		io.WriteString(r.echo, r.lines[len(r.lines)-1].String())
	}
}

func (r *ring) reset() {
	r.mu.Lock()
	r.lines = r.lines[:0]
	r.mu.Unlock()
}

// last returns up to n of the newest entries, or all of them when n is
// negative.
func (r *ring) last(n int) []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n < 0 || n > len(r.lines) {
		n = len(r.lines)
	}
	out := make([]Entry, n)
	copy(out, r.lines[len(r.lines)-n:])
	return out
}

func (r *ring) setEcho(w io.Writer) {
	r.mu.Lock()
	r.echo = w
	r.mu.Unlock()
}

func dump(w io.Writer, entries []Entry) {
	for _, e := range entries {
		io.WriteString(w, e.String())
	}
}
