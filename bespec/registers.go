package bespec

import (
	"strings"
)

// Register is a single physical register. Its Index is its position within
// Class, which is also its bit position in limited-register bitmasks.
type Register struct {
	Name  string
	Class *RegisterClass
	Index int
}

// Const is the class-relative index constant, e.g. REG_GP_SP.
func (r *Register) Const() string {
	return UpperIdent("reg", r.Class.Name, r.Name)
}

// GlobalConst is the architecture-wide index constant, e.g. REG_SP.
func (r *Register) GlobalConst() string {
	return UpperIdent("reg", r.Name)
}

func (r *Register) String() string {
	return r.Class.Name + ":" + r.Name
}

type ClassFlag uint

const (
	// ClassFlagManualRA marks classes whose registers the allocator must
	// not hand out; they are saved and restored by hand.
	ClassFlagManualRA ClassFlag = 1 << iota

	ClassFlagNone ClassFlag = 0
)

var classFlagNames = []struct {
	flag ClassFlag
	name string
}{
	{ClassFlagManualRA, "manual_ra"},
}

func (f ClassFlag) Has(o ClassFlag) bool {
	return f&o == o
}

// Names returns the names of the set flags in a fixed order.
func (f ClassFlag) Names() []string {
	var ret []string
	for _, n := range classFlagNames {
		if f.Has(n.flag) {
			ret = append(ret, n.name)
		}
	}
	return ret
}

func (f ClassFlag) String() string {
	names := f.Names()
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// RegisterClass is a named, ordered set of interchangeable registers.
type RegisterClass struct {
	Name      string
	Mode      Mode
	Flags     ClassFlag
	Registers []*Register

	byName map[string]*Register
}

// NewRegisterClass builds a class from register names given in index order.
// It does not check the class name against other classes; Builder does that.
func NewRegisterClass(name string, mode Mode, registers []string, flags ClassFlag) (*RegisterClass, error) {
	if !isIdent(name) {
		return nil, malformed(name, "name", "register class name must be an identifier")
	}
	if !mode.Valid() {
		return nil, malformed(name, "mode", "unknown mode %q", string(mode))
	}
	if len(registers) == 0 {
		return nil, malformed(name, "registers", "register class has no registers")
	}

	cls := &RegisterClass{
		Name:      name,
		Mode:      mode,
		Flags:     flags,
		Registers: make([]*Register, 0, len(registers)),
		byName:    make(map[string]*Register, len(registers)),
	}
	for i, regName := range registers {
		if !isIdent(regName) {
			return nil, malformed(name, "registers", "register name %q is not an identifier", regName)
		}
		if _, exists := cls.byName[regName]; exists {
			return nil, &DuplicateRegisterError{Class: name, Register: regName}
		}
		reg := &Register{
			Name:  regName,
			Class: cls,
			Index: i,
		}
		cls.Registers = append(cls.Registers, reg)
		cls.byName[regName] = reg
	}
	return cls, nil
}

// Register returns the register with the given name, if the class has one.
func (c *RegisterClass) Register(name string) (*Register, bool) {
	reg, ok := c.byName[name]
	return reg, ok
}

func (c *RegisterClass) Len() int {
	return len(c.Registers)
}

// Const is the class index constant, e.g. CLASS_SPARC_GP.
func (c *RegisterClass) Const(arch string) string {
	return UpperIdent("class", arch, c.Name)
}

// CountConst is the register count constant, e.g. N_SPARC_GP_REGISTERS.
func (c *RegisterClass) CountConst(arch string) string {
	return UpperIdent("n", arch, c.Name, "registers")
}

func (c *RegisterClass) String() string {
	return c.Name
}
