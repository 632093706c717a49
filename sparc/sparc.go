// Package sparc describes the SPARC V8 backend's registers and opcodes.
package sparc

import (
	"fmt"

	"github.com/apparentlymart/firm-be-meta/bespec"
)

const Arch = "sparc"

// Spec declares the SPARC description and finalizes it.
func Spec() (*bespec.Export, error) {
	b := bespec.NewBuilder(Arch)
	Declare(b)
	return b.Finalize()
}

// Declare adds the SPARC register classes and opcodes to b. Any failure is
// recorded in b and reported by b.Finalize.
func Declare(b *bespec.Builder) {
	cls := declareClasses(b)
	if b.Err() != nil {
		return
	}
	declareNodes(b, cls)
}

type classes struct {
	gp, fp, flags, fpflags *bespec.RegisterClass
}

func declareClasses(b *bespec.Builder) *classes {
	var ret classes
	ret.gp, _ = b.DeclareClass("gp", bespec.ModeIu, []string{
		"g0", "g1", "g2", "g3", "g4", "g5", "g6", "g7",
		"o0", "o1", "o2", "o3", "o4", "o5", "sp", "o7",
		"l0", "l1", "l2", "l3", "l4", "l5", "l6", "l7",
		"i0", "i1", "i2", "i3", "i4", "i5", "fp", "i7",
	}, bespec.ClassFlagNone)
	ret.fp, _ = b.DeclareClass("fp", bespec.ModeF, numberedRegs("f", 32), bespec.ClassFlagNone)
	ret.flags, _ = b.DeclareClass("flags", bespec.ModeBu, []string{"flags"}, bespec.ClassFlagManualRA)
	ret.fpflags, _ = b.DeclareClass("fpflags", bespec.ModeBu, []string{"fpflags"}, bespec.ClassFlagManualRA)
	return &ret
}

func numberedRegs(prefix string, n int) []string {
	ret := make([]string, n)
	for i := range ret {
		ret[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return ret
}

func declareNodes(b *bespec.Builder, cls *classes) {
	gp := bespec.Unconstrained(cls.gp)
	// "flags" as a class, not to be confused with a node's flags.
	flagsReq := bespec.Unconstrained(cls.flags)
	fpflagsReq := bespec.Unconstrained(cls.fpflags)
	none := bespec.NoReq()

	spIn, err := bespec.SingleFixed(cls.gp, "sp")
	b.Fail(err)
	spOut, err := bespec.ProduceStack(cls.gp, "sp")
	b.Fail(err)
	if b.Err() != nil {
		return
	}

	sparcBase := b.Abstract(&bespec.Node{
		Name:       "SparcBase",
		AttrStruct: "sparc_attr_t",
	})

	// Graph anchors

	b.Op(&bespec.Node{
		Name:     "Start",
		Base:     sparcBase,
		IrnFlags: bespec.Irn(bespec.IrnScheduleFirst),
		Pinned:   bespec.PinPinned,
		OutReqs:  bespec.VariadicReqs(),
		Ins:      bespec.NameList(),
		Emit:     bespec.NoEmit(),
	})

	// Control flow

	jumpBase := b.Abstract(&bespec.Node{
		Name:    "JumpBase",
		Base:    sparcBase,
		Pinned:  bespec.PinPinned,
		OpFlags: bespec.Ops(bespec.OpCFOpcode),
		OutReqs: bespec.ReqList(none),
		Mode:    bespec.ModeX,
	})

	branchBase := b.Abstract(&bespec.Node{
		Name:       "BranchBase",
		Base:       jumpBase,
		OpFlags:    bespec.Ops(bespec.OpCFOpcode, bespec.OpForking),
		IrnFlags:   bespec.Irn(bespec.IrnHasDelaySlot),
		AttrStruct: "sparc_jmp_cond_attr_t",
		Ins:        bespec.NameList("flags"),
		Outs:       bespec.NameList("false", "true"),
		OutReqs:    bespec.ReqList(none, none),
	})

	b.Op(&bespec.Node{
		Name:     "Ba",
		Base:     jumpBase,
		IrnFlags: bespec.Irn(bespec.IrnSimpleJump),
	})

	b.Op(&bespec.Node{
		Name:     "Return",
		Base:     jumpBase,
		IrnFlags: bespec.Irn(bespec.IrnHasDelaySlot),
		InReqs:   bespec.VariadicReqs(),
		Constructors: []*bespec.Constructor{
			{
				Name:       "imm",
				Attr:       "ir_entity *entity, int32_t offset",
				CustomInit: "sparc_set_attr_imm(res, entity, offset);",
			},
			{Name: "reg"},
		},
	})

	b.Op(&bespec.Node{
		Name:       "Call",
		Base:       jumpBase,
		IrnFlags:   bespec.Irn(bespec.IrnHasDelaySlot),
		Pinned:     bespec.PinException,
		InReqs:     bespec.VariadicReqs(),
		OutReqs:    bespec.VariadicReqs(),
		Outs:       bespec.NameList("M", "stack", "first_result"),
		AttrStruct: "sparc_call_attr_t",
		Constructors: []*bespec.Constructor{
			{
				Name: "imm",
				Attr: "ir_type *call_type, ir_entity *entity, int32_t offset, bool aggregate_return",
				CustomInit: "sparc_set_attr_imm(res, entity, offset);\n" +
					"\tif (aggregate_return) arch_add_irn_flags(res, (arch_irn_flags_t)sparc_arch_irn_flag_aggregate_return);",
			},
			{
				Name:       "reg",
				Attr:       "ir_type *call_type, bool aggregate_return",
				CustomInit: "if (aggregate_return) arch_add_irn_flags(res, (arch_irn_flags_t)sparc_arch_irn_flag_aggregate_return);",
			},
		},
	})

	b.Op(&bespec.Node{
		Name:       "SwitchJmp",
		Base:       branchBase,
		InReqs:     bespec.ReqList(gp),
		OutReqs:    bespec.VariadicReqs(),
		AttrStruct: "sparc_switch_jmp_attr_t",
		Constructors: []*bespec.Constructor{
			{Attr: "const ir_switch_table *table, ir_entity *jump_table"},
		},
	})

	b.Op(&bespec.Node{
		Name:     "Bicc",
		Base:     branchBase,
		Attr:     "ir_relation relation, bool is_unsigned",
		InitAttr: "init_sparc_jmp_cond_attr(res, relation, is_unsigned);",
		InReqs:   bespec.ReqList(flagsReq),
	})

	b.Op(&bespec.Node{
		Name:     "fbfcc",
		Base:     branchBase,
		Attr:     "ir_relation relation",
		InitAttr: "init_sparc_jmp_cond_attr(res, relation, false);",
		InReqs:   bespec.ReqList(fpflagsReq),
	})

	// Arithmetic

	binopConstructors := []*bespec.Constructor{
		{
			Name:       "imm",
			Attr:       "ir_entity *immediate_entity, int32_t immediate_value",
			CustomInit: "sparc_set_attr_imm(res, immediate_entity, immediate_value);",
			InReqs:     []*bespec.RegisterReq{gp},
			Ins:        []string{"left"},
		},
		{
			Name:   "reg",
			InReqs: []*bespec.RegisterReq{gp, gp},
			Ins:    []string{"left", "right"},
		},
	}

	binopBase := b.Abstract(&bespec.Node{
		Name:         "BinopBase",
		Base:         sparcBase,
		IrnFlags:     bespec.Irn(bespec.IrnRematerializable),
		Mode:         cls.gp.Mode,
		OutReqs:      bespec.ReqList(gp),
		Constructors: binopConstructors,
	})

	binopCCBase := b.Abstract(&bespec.Node{
		Name:         "BinopCCBase",
		Base:         sparcBase,
		IrnFlags:     bespec.Irn(bespec.IrnRematerializable),
		Outs:         bespec.NameList("res", "flags"),
		OutReqs:      bespec.ReqList(gp, flagsReq),
		Constructors: binopConstructors,
	})

	binopCCZeroBase := b.Abstract(&bespec.Node{
		Name:         "BinopCCZeroBase",
		Base:         sparcBase,
		IrnFlags:     bespec.Irn(bespec.IrnRematerializable),
		Mode:         cls.flags.Mode,
		OutReqs:      bespec.ReqList(flagsReq),
		Constructors: binopConstructors,
	})

	// Not rematerializable: the spiller can't yet rematerialize nodes
	// that read the carry flag.
	binopXBase := b.Abstract(&bespec.Node{
		Name:    "BinopXBase",
		Base:    sparcBase,
		OutReqs: bespec.ReqList(gp),
		Mode:    cls.gp.Mode,
		Constructors: []*bespec.Constructor{
			{
				Name:       "imm",
				Attr:       "ir_entity *immediate_entity, int32_t immediate_value",
				CustomInit: "sparc_set_attr_imm(res, immediate_entity, immediate_value);",
				InReqs:     []*bespec.RegisterReq{gp, flagsReq},
				Ins:        []string{"left", "carry"},
			},
			{
				Name:   "reg",
				InReqs: []*bespec.RegisterReq{gp, gp, flagsReq},
				Ins:    []string{"left", "right", "carry"},
			},
		},
	})

	binop := func(base *bespec.Node, name, emit string) {
		b.Op(&bespec.Node{
			Name: name,
			Base: base,
			Emit: bespec.Emit(emit),
		})
	}

	binop(binopBase, "Add", "add %S0, %SI1, %D0")
	binop(binopCCBase, "AddCC", "addcc %S0, %SI1, %D0")
	binop(binopCCZeroBase, "AddCCZero", "addcc %S0, %SI1, %%g0")
	binop(binopXBase, "AddX", "addx %S0, %SI1, %D0")

	b.Op(&bespec.Node{
		Name:    "AddSP",
		Base:    sparcBase,
		InReqs:  bespec.ReqList(spIn, gp),
		OutReqs: bespec.ReqList(spOut),
		Ins:     bespec.NameList("stack", "size"),
		Outs:    bespec.NameList("stack"),
		Mode:    cls.gp.Mode,
		Emit:    bespec.Emit("add %S0, %S1, %D0"),
	})

	// TODO: AddCC_t, AddX_t

	binop(binopBase, "Sub", "sub %S0, %SI1, %D0")
	binop(binopCCBase, "SubCC", "subcc %S0, %SI1, %D0")
	binop(binopCCZeroBase, "SubCCZero", "subcc %S0, %SI1, %%g0")
	binop(binopXBase, "SubX", "subx %S0, %SI1, %D0")

	// TODO: SubCC_t, SubX_t

	binop(binopBase, "Sll", "sll %S0, %SI1, %D0")
	binop(binopBase, "Srl", "srl %S0, %SI1, %D0")
	binop(binopBase, "Sra", "sra %S0, %SI1, %D0")
	binop(binopBase, "And", "and %S0, %SI1, %D0")
	binop(binopBase, "AndN", "andn %S0, %SI1, %D0")
}
