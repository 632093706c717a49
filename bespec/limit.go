package bespec

import (
	"fmt"
	"strings"
)

// LimitWord describes one word of a limited-register bitmask. When Set is
// true the word holds the register's bit at position Shift, which generated
// code spells in terms of Symbol rather than as a raw number.
type LimitWord struct {
	Index  int
	Set    bool
	Symbol string
	Shift  int
}

func (w LimitWord) String() string {
	switch {
	case !w.Set:
		return "0"
	case w.Index == 0:
		return fmt.Sprintf("(1 << %s)", w.Symbol)
	default:
		// The symbol is the class-relative register index, which only
		// equals the bit position in the first word.
		return fmt.Sprintf("(1 << (%s %% %d))", w.Symbol, wordBits)
	}
}

// LimitBitset is the bitmask restricting an operand to exactly one
// register of its class.
type LimitBitset struct {
	Class    *RegisterClass
	Register *Register
	Words    []LimitWord
}

// NewLimitBitset builds the bitmask for reg within cls. The mask spans
// enough 32-bit words for every register of the class; only the word
// containing reg's index is non-zero.
func NewLimitBitset(cls *RegisterClass, reg *Register) (LimitBitset, error) {
	if cls == nil || reg == nil || reg.Class != cls {
		err := &UnknownRegisterError{}
		if cls != nil {
			err.Class = cls.Name
		}
		if reg != nil {
			err.Register = reg.Name
		}
		return LimitBitset{}, err
	}

	n := wordCount(cls.Len())
	ret := LimitBitset{
		Class:    cls,
		Register: reg,
		Words:    make([]LimitWord, n),
	}
	for b := 0; b < n; b++ {
		ret.Words[b] = LimitWord{Index: b}
		if reg.Index/wordBits == b {
			ret.Words[b].Set = true
			ret.Words[b].Symbol = reg.Const()
			ret.Words[b].Shift = reg.Index % wordBits
		}
	}
	return ret, nil
}

// Mask returns the numeric value of each word.
func (l LimitBitset) Mask() []Word {
	ret := make([]Word, len(l.Words))
	for i, w := range l.Words {
		if w.Set {
			ret[i] = Word(1) << uint(w.Shift)
		}
	}
	return ret
}

// String renders the bitmask as a C array initializer.
func (l LimitBitset) String() string {
	var buf strings.Builder
	buf.WriteString("{ ")
	for i, w := range l.Words {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(w.String())
	}
	buf.WriteString(" }")
	return buf.String()
}
