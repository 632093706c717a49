package bespec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireMalformed(t *testing.T, err error, name, field string) {
	t.Helper()
	var malformedErr *MalformedSpecError
	require.ErrorAs(t, err, &malformedErr)
	assert.Equal(t, name, malformedErr.Name)
	assert.Equal(t, field, malformedErr.Field)
}

func TestValidateConstructorShape(t *testing.T) {
	cls := newTestClasses(t)
	a := Unconstrained(cls.a)

	good := &Node{
		Name:       "Add",
		AttrStruct: "attr_t",
		Constructors: []*Constructor{
			{Name: "imm", Attr: "int32_t value", InReqs: []*RegisterReq{a}, Ins: []string{"left"}},
			{Name: "reg", InReqs: []*RegisterReq{a, a}, Ins: []string{"left", "right"}},
		},
	}
	_, err := Assemble(good)
	require.NoError(t, err)

	bad := &Node{
		Name:       "Add",
		AttrStruct: "attr_t",
		Constructors: []*Constructor{
			{Name: "imm", InReqs: []*RegisterReq{a, a}, Ins: []string{"left"}},
		},
	}
	_, err = Assemble(bad)
	requireMalformed(t, err, "Add", `constructors["imm"].in_reqs`)
}

func TestValidateFixedArity(t *testing.T) {
	cls := newTestClasses(t)
	a := Unconstrained(cls.a)

	_, err := Assemble(&Node{
		Name:   "AddSP",
		Ins:    NameList("stack", "size"),
		InReqs: ReqList(a),
	})
	requireMalformed(t, err, "AddSP", "in_reqs")

	_, err = Assemble(&Node{
		Name:    "AddCC",
		Outs:    NameList("res", "flags"),
		OutReqs: ReqList(a),
	})
	requireMalformed(t, err, "AddCC", "out_reqs")

	// The mismatch is found after merging, even when the two halves come
	// from different levels.
	base := &Node{Name: "Base", Outs: NameList("res")}
	_, err = Assemble(&Node{Name: "Leaf", Base: base, OutReqs: ReqList(a, a)})
	requireMalformed(t, err, "Leaf", "out_reqs")
}

func TestValidateVariadicIsExempt(t *testing.T) {
	cls := newTestClasses(t)
	a := Unconstrained(cls.a)

	_, err := Assemble(&Node{
		Name:    "Call",
		Ins:     NameList("mem", "stack"),
		InReqs:  VariadicReqs(),
		Outs:    NameList("M", "stack", "first_result"),
		OutReqs: VariadicReqs(),
	})
	require.NoError(t, err)

	_, err = Assemble(&Node{
		Name:   "Return",
		Ins:    VariadicNames(),
		InReqs: ReqList(a, a, a),
	})
	require.NoError(t, err)
}

func TestValidateUndeclaredHalfIsNotCompared(t *testing.T) {
	_, err := Assemble(&Node{
		Name:    "Ba",
		OutReqs: ReqList(NoReq()),
	})
	require.NoError(t, err)
}

func TestValidateAttrStruct(t *testing.T) {
	_, err := Assemble(&Node{Name: "Op", AttrStruct: "not an ident"})
	requireMalformed(t, err, "Op", "attr_struct")

	_, err = Assemble(&Node{Name: "Bicc", Attr: "ir_relation relation"})
	requireMalformed(t, err, "Bicc", "attr_struct")

	_, err = Assemble(&Node{
		Name:         "Return",
		Constructors: []*Constructor{{Name: "imm", CustomInit: "set_imm(res);"}},
	})
	requireMalformed(t, err, "Return", "attr_struct")

	_, err = Assemble(&Node{
		Name:         "Return",
		AttrStruct:   "ret_attr_t",
		Constructors: []*Constructor{{Name: "imm", CustomInit: "set_imm(res);"}},
	})
	require.NoError(t, err)
}

func TestValidateRequirements(t *testing.T) {
	cls := newTestClasses(t)
	b0, _ := cls.b.Register("b0")

	_, err := Assemble(&Node{
		Name:   "Op",
		Ins:    NameList("x"),
		InReqs: ReqList(&RegisterReq{Kind: ReqSingle, Class: cls.a, Register: b0}),
	})
	requireMalformed(t, err, "Op", "in_reqs")

	_, err = Assemble(&Node{
		Name:    "Op",
		OutReqs: ReqList(nil),
	})
	requireMalformed(t, err, "Op", "out_reqs")

	_, err = Assemble(&Node{
		Name:    "Op",
		OutReqs: ReqList(Unconstrained(nil)),
	})
	requireMalformed(t, err, "Op", "out_reqs")
}

func TestValidateDuplicateConstructor(t *testing.T) {
	_, err := Assemble(&Node{
		Name:         "Op",
		Constructors: []*Constructor{{Name: "reg"}, {Name: "reg"}},
	})
	requireMalformed(t, err, "Op", `constructors["reg"]`)
}

func TestValidateName(t *testing.T) {
	_, err := Assemble(&Node{})
	requireMalformed(t, err, `""`, "name")

	_, err = Assemble(&Node{Name: "Bad Name"})
	requireMalformed(t, err, `"Bad Name"`, "name")
}
