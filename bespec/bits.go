package bespec

import (
	"fmt"
)

// wordBits is the width of one word of an allocator "limited" bitmask.
const wordBits = 32

// Word is a single 32-bit word of a limited-register bitmask.
type Word uint32

func (v Word) String() string {
	return fmt.Sprintf("0b%032b", uint32(v))
}

// wordCount is the number of bitmask words needed to give each of n
// registers its own bit.
func wordCount(n int) int {
	return (n + wordBits - 1) / wordBits
}
