package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/apparentlymart/firm-be-meta/bespec"
)

func generateCFragments(dir string, exp *bespec.Export) error {
	err := os.MkdirAll(dir, os.ModePerm)
	if err != nil {
		return err
	}

	files := []struct {
		name  string
		write func(io.Writer, *bespec.Export) error
	}{
		{"gen_%s_regalloc_if.h", writeRegallocHeader},
		{"gen_%s_regalloc_if.c", writeRegallocTables},
		{"gen_%s_new_nodes.h", writeNodesHeader},
	}
	for _, f := range files {
		filename := filepath.Join(dir, fmt.Sprintf(f.name, exp.Arch))
		if err := writeFile(filename, exp, f.write); err != nil {
			return fmt.Errorf("failed to write %s: %s", filename, err)
		}
	}
	return nil
}

func writeFile(filename string, exp *bespec.Export, write func(io.Writer, *bespec.Export) error) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := write(w, exp); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// errWriter remembers the first write error so the writers below can
// print freely and check once at the end.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func writeRegallocHeader(w io.Writer, exp *bespec.Export) error {
	ew := &errWriter{w: w}
	guard := bespec.UpperIdent("firm_be", exp.Arch, "gen", exp.Arch, "regalloc_if_h")
	archUpper := bespec.UpperIdent(exp.Arch)

	ew.printf("/* Warning: automatically generated code */\n")
	ew.printf("#ifndef %s\n#define %s\n\n", guard, guard)
	ew.printf("#include \"bearch.h\"\n#include \"%s_nodes_attr.h\"\n\n", exp.Arch)

	ew.printf("/** global register indices */\n")
	ew.printf("enum %s_reg_indices {\n", exp.Arch)
	for _, reg := range exp.Registers() {
		ew.printf("\t%s,\n", reg.GlobalConst())
	}
	ew.printf("\tN_%s_REGISTERS\n};\n\n", archUpper)

	ew.printf("enum %s_register_classes {\n", exp.Arch)
	for _, cls := range exp.RegisterClasses {
		ew.printf("\t%s,\n", cls.Const(exp.Arch))
	}
	ew.printf("\tN_%s_CLASSES\n};\n", archUpper)

	for _, cls := range exp.RegisterClasses {
		ew.printf("\nenum %s_%s_indices {\n", exp.Arch, cls.Name)
		for _, reg := range cls.Registers {
			ew.printf("\t%s,\n", reg.Const())
		}
		ew.printf("\t%s\n};\n", cls.CountConst(exp.Arch))
	}

	ew.printf("\nextern const arch_register_t %s_registers[N_%s_REGISTERS];\n", exp.Arch, archUpper)
	ew.printf("extern arch_register_class_t %s_reg_classes[N_%s_CLASSES];\n\n", exp.Arch, archUpper)
	ew.printf("void %s_register_init(void);\n\n#endif\n", exp.Arch)
	return ew.err
}

func writeRegallocTables(w io.Writer, exp *bespec.Export) error {
	ew := &errWriter{w: w}

	ew.printf("/* Warning: automatically generated code */\n")
	ew.printf("#include \"gen_%s_regalloc_if.h\"\n\n", exp.Arch)

	ew.printf("arch_register_class_t %s_reg_classes[] = {\n", exp.Arch)
	for _, cls := range exp.RegisterClasses {
		ew.printf("\t{ %s, \"%s_%s\", %s, NULL, &%s_registers[%s], %s },\n",
			cls.Const(exp.Arch), exp.Arch, cls.Name, cls.CountConst(exp.Arch),
			exp.Arch, cls.Registers[0].GlobalConst(), classFlagsExpr(cls.Flags))
	}
	ew.printf("};\n")

	for _, cls := range exp.RegisterClasses {
		for _, reg := range cls.Registers {
			limit, err := exp.LimitBitset(cls, reg)
			if err != nil {
				return err
			}
			ew.printf("\nstatic const unsigned %s_limited_%s_%s[] = %s;\n", exp.Arch, cls.Name, reg.Name, limit)
		}
	}

	ew.printf("\nvoid %s_register_init(void)\n{\n", exp.Arch)
	for _, cls := range exp.RegisterClasses {
		ew.printf("\t%s_reg_classes[%s].mode = %s;\n", exp.Arch, cls.Const(exp.Arch), cls.Mode)
	}
	ew.printf("}\n")
	return ew.err
}

func classFlagsExpr(flags bespec.ClassFlag) string {
	names := flags.Names()
	if len(names) == 0 {
		return "arch_register_class_flag_none"
	}
	for i, name := range names {
		names[i] = "arch_register_class_flag_" + name
	}
	return strings.Join(names, " | ")
}

func writeNodesHeader(w io.Writer, exp *bespec.Export) error {
	ew := &errWriter{w: w}
	guard := bespec.UpperIdent("firm_be", exp.Arch, "gen", exp.Arch, "new_nodes_h")

	ew.printf("/* Warning: automatically generated code */\n")
	ew.printf("#ifndef %s\n#define %s\n\n", guard, guard)

	ew.printf("typedef enum {\n")
	for _, node := range exp.Nodes {
		ew.printf("\tiro_%s,\n", node.Name)
	}
	ew.printf("\tiro_%s_last\n} %s_opcodes;\n", exp.Arch, exp.Arch)

	for _, node := range exp.Nodes {
		ew.printf("\nextern ir_op *op_%s;\n", node.Name)
		for _, c := range node.Constructors {
			ew.printf("ir_node *new_bd_%s(dbg_info *dbgi, ir_node *block, int arity, ir_node *in[], int n_res", constructorName(node, c))
			if attr := constructorAttr(node, c); attr != "" {
				ew.printf(", %s", attr)
			}
			ew.printf(");\n")
		}
		if node.Ins != nil && !node.Ins.Variadic && len(node.Ins.List) > 0 {
			writeOperandEnum(ew, "n", node.Name, node.Ins.List)
		}
		if node.Outs != nil && !node.Outs.Variadic && len(node.Outs.List) > 0 {
			writeOperandEnum(ew, "pn", node.Name, node.Outs.List)
		}
	}

	ew.printf("\n#endif\n")
	return ew.err
}

func writeOperandEnum(ew *errWriter, prefix, node string, names []string) {
	ew.printf("typedef enum {\n")
	for _, name := range names {
		ew.printf("\t%s_%s_%s,\n", prefix, node, name)
	}
	ew.printf("\t%s_%s_max = %s_%s_%s\n} %s_%s;\n", prefix, node, prefix, node, names[len(names)-1], prefix, node)
}

func constructorName(node *bespec.Spec, c *bespec.Constructor) string {
	if c.Name == "" {
		return node.Name
	}
	return node.Name + "_" + c.Name
}

// constructorAttr is the extra parameter list for c. A constructor's own
// parameters take precedence over the node's.
func constructorAttr(node *bespec.Spec, c *bespec.Constructor) string {
	if c.Attr != "" {
		return c.Attr
	}
	return node.Attr
}
