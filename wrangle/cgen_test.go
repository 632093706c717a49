package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apparentlymart/firm-be-meta/sparc"
)

func TestWriteRegallocHeader(t *testing.T) {
	exp, err := sparc.Spec()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeRegallocHeader(&buf, exp))
	got := buf.String()

	assert.Contains(t, got, "#ifndef FIRM_BE_SPARC_GEN_SPARC_REGALLOC_IF_H\n")
	assert.Contains(t, got, "\tREG_SP,\n")
	assert.Contains(t, got, "\tN_SPARC_REGISTERS\n};")
	assert.Contains(t, got, "\tCLASS_SPARC_FPFLAGS,\n\tN_SPARC_CLASSES\n};")
	assert.Contains(t, got, "enum sparc_gp_indices {\n\tREG_GP_G0,\n")
	assert.Contains(t, got, "\tREG_GP_I7,\n\tN_SPARC_GP_REGISTERS\n};")
}

func TestWriteRegallocTables(t *testing.T) {
	exp, err := sparc.Spec()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeRegallocTables(&buf, exp))
	got := buf.String()

	assert.Contains(t, got, "static const unsigned sparc_limited_gp_sp[] = { (1 << REG_GP_SP) };\n")
	assert.Contains(t, got, "static const unsigned sparc_limited_fp_f31[] = { (1 << REG_FP_F31) };\n")
	assert.Contains(t, got, `{ CLASS_SPARC_GP, "sparc_gp", N_SPARC_GP_REGISTERS, NULL, &sparc_registers[REG_G0], arch_register_class_flag_none },`)
	assert.Contains(t, got, `{ CLASS_SPARC_FLAGS, "sparc_flags", N_SPARC_FLAGS_REGISTERS, NULL, &sparc_registers[REG_FLAGS], arch_register_class_flag_manual_ra },`)
	assert.Contains(t, got, "\tsparc_reg_classes[CLASS_SPARC_FP].mode = mode_F;\n")
}

func TestWriteNodesHeader(t *testing.T) {
	exp, err := sparc.Spec()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeNodesHeader(&buf, exp))
	got := buf.String()

	assert.Contains(t, got, "typedef enum {\n\tiro_sparc_Start,\n\tiro_sparc_Ba,\n")
	assert.Contains(t, got, "\tiro_sparc_AndN,\n\tiro_sparc_last\n} sparc_opcodes;\n")
	assert.Contains(t, got, "ir_node *new_bd_sparc_Add_imm(dbg_info *dbgi, ir_node *block, int arity, ir_node *in[], int n_res, ir_entity *immediate_entity, int32_t immediate_value);\n")
	assert.Contains(t, got, "ir_node *new_bd_sparc_Add_reg(dbg_info *dbgi, ir_node *block, int arity, ir_node *in[], int n_res);\n")
	assert.Contains(t, got, "ir_node *new_bd_sparc_Bicc(dbg_info *dbgi, ir_node *block, int arity, ir_node *in[], int n_res, ir_relation relation, bool is_unsigned);\n")
	assert.Contains(t, got, "\tn_sparc_AddSP_stack,\n\tn_sparc_AddSP_size,\n\tn_sparc_AddSP_max = n_sparc_AddSP_size\n} n_sparc_AddSP;\n")
	assert.Contains(t, got, "\tpn_sparc_Bicc_false,\n\tpn_sparc_Bicc_true,\n")
	assert.NotContains(t, got, "iro_sparc_BinopBase")
}

func TestGenerateCFragments(t *testing.T) {
	exp, err := sparc.Spec()
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, generateCFragments(dir, exp))

	for _, name := range []string{"gen_sparc_regalloc_if.h", "gen_sparc_regalloc_if.c", "gen_sparc_new_nodes.h"} {
		first, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.NotEmpty(t, first, name)
	}

	// Regenerating unchanged input gives byte-identical output.
	before, err := os.ReadFile(filepath.Join(dir, "gen_sparc_new_nodes.h"))
	require.NoError(t, err)
	again, err := sparc.Spec()
	require.NoError(t, err)
	require.NoError(t, generateCFragments(dir, again))
	after, err := os.ReadFile(filepath.Join(dir, "gen_sparc_new_nodes.h"))
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
