package bespec

import (
	"fmt"
	"strings"
)

// PinState says whether a node may be moved away from the block it was
// built in. The zero value means "inherit from the base".
type PinState int

const (
	pinInherit PinState = iota
	PinFloats
	PinPinned
	PinException
)

func (p PinState) String() string {
	switch p {
	case pinInherit:
		return "inherit"
	case PinFloats:
		return "floats"
	case PinPinned:
		return "yes"
	case PinException:
		return "exception"
	default:
		return fmt.Sprintf("PinState(%d)", int(p))
	}
}

// OpFlag is a property of the IR operation itself.
type OpFlag uint

const (
	OpCFOpcode OpFlag = 1 << iota // ends a basic block
	OpForking                     // has more than one control flow successor
)

var opFlagNames = []struct {
	flag OpFlag
	name string
}{
	{OpCFOpcode, "cfopcode"},
	{OpForking, "forking"},
}

func (f OpFlag) Has(o OpFlag) bool {
	return f&o == o
}

func (f OpFlag) Names() []string {
	var ret []string
	for _, n := range opFlagNames {
		if f.Has(n.flag) {
			ret = append(ret, n.name)
		}
	}
	return ret
}

func (f OpFlag) String() string {
	return joinFlagNames(f.Names())
}

// Ops builds an OpFlag set for use in a Node declaration. Calling it with
// no arguments declares an explicitly empty set.
func Ops(flags ...OpFlag) *OpFlag {
	var ret OpFlag
	for _, f := range flags {
		ret |= f
	}
	return &ret
}

// IrnFlag is a property the backend scheduler and allocator care about.
type IrnFlag uint

const (
	IrnScheduleFirst IrnFlag = 1 << iota
	IrnHasDelaySlot
	IrnRematerializable
	IrnSimpleJump
)

var irnFlagNames = []struct {
	flag IrnFlag
	name string
}{
	{IrnScheduleFirst, "schedule_first"},
	{IrnHasDelaySlot, "has_delay_slot"},
	{IrnRematerializable, "rematerializable"},
	{IrnSimpleJump, "simple_jump"},
}

func (f IrnFlag) Has(o IrnFlag) bool {
	return f&o == o
}

func (f IrnFlag) Names() []string {
	var ret []string
	for _, n := range irnFlagNames {
		if f.Has(n.flag) {
			ret = append(ret, n.name)
		}
	}
	return ret
}

func (f IrnFlag) String() string {
	return joinFlagNames(f.Names())
}

// Irn builds an IrnFlag set for use in a Node declaration.
func Irn(flags ...IrnFlag) *IrnFlag {
	var ret IrnFlag
	for _, f := range flags {
		ret |= f
	}
	return &ret
}

func joinFlagNames(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// Names is an operand or result name list. A variadic list has no names;
// its length is decided when the node is built.
type Names struct {
	List     []string
	Variadic bool
}

func NameList(names ...string) *Names {
	if names == nil {
		names = []string{}
	}
	return &Names{List: names}
}

func VariadicNames() *Names {
	return &Names{Variadic: true}
}

func (n *Names) Len() int {
	if n == nil {
		return 0
	}
	return len(n.List)
}

func (n *Names) String() string {
	if n.Variadic {
		return "..."
	}
	return "[" + strings.Join(n.List, ", ") + "]"
}

// Reqs is a register requirement list, one entry per operand or result.
type Reqs struct {
	List     []*RegisterReq
	Variadic bool
}

func ReqList(reqs ...*RegisterReq) *Reqs {
	if reqs == nil {
		reqs = []*RegisterReq{}
	}
	return &Reqs{List: reqs}
}

func VariadicReqs() *Reqs {
	return &Reqs{Variadic: true}
}

func (r *Reqs) Len() int {
	if r == nil {
		return 0
	}
	return len(r.List)
}

func (r *Reqs) String() string {
	if r.Variadic {
		return "..."
	}
	parts := make([]string, len(r.List))
	for i, req := range r.List {
		parts[i] = req.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Constructor is one way of building a node. An empty Name is the default
// constructor. Attr lists extra C parameters and CustomInit is C code run
// after the node is built.
type Constructor struct {
	Name       string
	Attr       string
	CustomInit string
	InReqs     []*RegisterReq
	Ins        []string
}

// Emit wraps an emission template for a Node declaration.
func Emit(template string) *string {
	return &template
}

// NoEmit declares that a node is never emitted directly.
func NoEmit() *string {
	return Emit("")
}

// Node is a partial opcode declaration. Every zero-valued field (nil
// pointer or slice, empty string, pinInherit) is taken from Base when the
// node is assembled; every other field replaces the base's value
// wholesale.
type Node struct {
	Name string
	Base *Node

	Pinned     PinState
	OpFlags    *OpFlag
	IrnFlags   *IrnFlag
	Mode       Mode
	AttrStruct string
	Attr       string
	InitAttr   string

	Ins     *Names
	Outs    *Names
	InReqs  *Reqs
	OutReqs *Reqs

	Constructors []*Constructor
	Emit         *string
}

// Spec is a fully-assembled opcode. Ins, Outs, InReqs and OutReqs stay nil
// when no level of the base chain declared them.
type Spec struct {
	Name     string
	BareName string
	Abstract bool

	Pinned     PinState
	OpFlags    OpFlag
	IrnFlags   IrnFlag
	Mode       Mode
	AttrStruct string
	Attr       string
	InitAttr   string

	Ins     *Names
	Outs    *Names
	InReqs  *Reqs
	OutReqs *Reqs

	Constructors []*Constructor
	Emit         string
}

// Emitted reports whether the node has an emission template.
func (s *Spec) Emitted() bool {
	return s.Emit != ""
}

func (s *Spec) ScheduleFirst() bool {
	return s.IrnFlags.Has(IrnScheduleFirst)
}

func (s *Spec) HasDelaySlot() bool {
	return s.IrnFlags.Has(IrnHasDelaySlot)
}

func (s *Spec) Rematerializable() bool {
	return s.IrnFlags.Has(IrnRematerializable)
}

func (s *Spec) Forking() bool {
	return s.OpFlags.Has(OpForking)
}

// Constructor returns the constructor with the given name.
func (s *Spec) Constructor(name string) *Constructor {
	for _, c := range s.Constructors {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func (s *Spec) String() string {
	return s.Name
}
