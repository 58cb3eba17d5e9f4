package nes

import (
	"fmt"
	"math/rand"
	"strings"
)

// RAMSize is the size of the internal work RAM. It is mirrored four times
// over $0000-$1FFF.
const RAMSize = 0x0800

type ram struct {
	data [RAMSize]uint8
}

// reset clears the RAM, or fills it from rnd when rnd is not nil.
func (r *ram) reset(rnd *rand.Rand) {
	for i := range r.data {
		if rnd != nil {
			r.data[i] = uint8(rnd.Intn(256))
		} else {
			r.data[i] = 0
		}
	}
}

func (r *ram) read(addr uint16) uint8 {
	return r.data[addr&(RAMSize-1)]
}

func (r *ram) write(addr uint16, data uint8) {
	r.data[addr&(RAMSize-1)] = data
}

// String dumps the RAM sixteen bytes to a line.
func (r *ram) String() string {
	var s strings.Builder
	for i := 0; i < RAMSize; i += 16 {
		s.WriteString(fmt.Sprintf("%04x: % 02x\n", i, r.data[i:i+16]))
	}
	return strings.TrimSuffix(s.String(), "\n")
}
