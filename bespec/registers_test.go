package bespec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclareClass(t *testing.T) {
	b := NewBuilder("test")
	cls, err := b.DeclareClass("gp", ModeIu, []string{"r0", "r1", "r2"}, ClassFlagNone)
	require.NoError(t, err)

	assert.Equal(t, "gp", cls.Name)
	assert.Equal(t, ModeIu, cls.Mode)
	assert.Equal(t, 3, cls.Len())
	for i, reg := range cls.Registers {
		assert.Equal(t, i, reg.Index)
		assert.Same(t, cls, reg.Class)
	}

	r1, ok := cls.Register("r1")
	require.True(t, ok)
	assert.Equal(t, 1, r1.Index)
	assert.Equal(t, "REG_GP_R1", r1.Const())
	assert.Equal(t, "REG_R1", r1.GlobalConst())
	assert.Equal(t, "CLASS_TEST_GP", cls.Const("test"))
	assert.Equal(t, "N_TEST_GP_REGISTERS", cls.CountConst("test"))

	_, ok = cls.Register("r3")
	assert.False(t, ok)
}

func TestDeclareClassDuplicateClass(t *testing.T) {
	b := NewBuilder("test")
	_, err := b.DeclareClass("gp", ModeIu, []string{"r0"}, ClassFlagNone)
	require.NoError(t, err)

	_, err = b.DeclareClass("gp", ModeF, []string{"f0"}, ClassFlagNone)
	var dup *DuplicateClassError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "gp", dup.Class)

	// The builder stays failed.
	_, err = b.DeclareClass("other", ModeF, []string{"f0"}, ClassFlagNone)
	require.ErrorAs(t, err, &dup)
	_, err = b.Finalize()
	require.ErrorAs(t, err, &dup)
}

func TestDeclareClassDuplicateRegister(t *testing.T) {
	b := NewBuilder("test")
	_, err := b.DeclareClass("gp", ModeIu, []string{"r0", "r1", "r0"}, ClassFlagNone)
	var dup *DuplicateRegisterError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "gp", dup.Class)
	assert.Equal(t, "r0", dup.Register)
	assert.Contains(t, err.Error(), `"r0"`)
}

func TestRegisterNamesAreClassScoped(t *testing.T) {
	b := NewBuilder("test")
	_, err := b.DeclareClass("a", ModeIu, []string{"x", "y"}, ClassFlagNone)
	require.NoError(t, err)
	_, err = b.DeclareClass("b", ModeIu, []string{"x", "y"}, ClassFlagNone)
	require.NoError(t, err)

	exp, err := b.Finalize()
	require.NoError(t, err)
	assert.Len(t, exp.Registers(), 4)
}

func TestDeclareClassMalformed(t *testing.T) {
	tests := map[string]struct {
		name  string
		mode  Mode
		regs  []string
		field string
	}{
		"unknown mode":   {"gp", Mode("mode_Q"), []string{"r0"}, "mode"},
		"no registers":   {"gp", ModeIu, nil, "registers"},
		"bad class name": {"g p", ModeIu, []string{"r0"}, "name"},
		"bad reg name":   {"gp", ModeIu, []string{"r-0"}, "registers"},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewRegisterClass(test.name, test.mode, test.regs, ClassFlagNone)
			var malformedErr *MalformedSpecError
			require.ErrorAs(t, err, &malformedErr)
			assert.Equal(t, test.field, malformedErr.Field)
		})
	}
}

func TestClassFlags(t *testing.T) {
	assert.Equal(t, "none", ClassFlagNone.String())
	assert.Equal(t, "manual_ra", ClassFlagManualRA.String())
	assert.True(t, ClassFlagManualRA.Has(ClassFlagManualRA))
	assert.Empty(t, ClassFlagNone.Names())
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, ModeIu, ParseMode("mode_Iu"))
	assert.Equal(t, ModeX, ParseMode("mode_X"))
	assert.Equal(t, ModeInvalid, ParseMode("mode_Iuu"))
	assert.Equal(t, ModeInvalid, ParseMode(""))
}

func TestUpperIdent(t *testing.T) {
	assert.Equal(t, "REG_GP_SP", UpperIdent("reg", "gp", "sp"))
	assert.Equal(t, "N_SPARC_FP_REGISTERS", UpperIdent("n", "sparc", "fp", "registers"))
	assert.Equal(t, "FIRM_BE_X", UpperIdent("firm-be", "x"))
}
