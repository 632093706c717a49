package bespec

import (
	"fmt"
)

type decl struct {
	node     *Node
	abstract bool
}

// Builder collects one architecture's register classes and opcode
// declarations and turns them into an Export.
//
// The first declaration error stops the builder: later declarations are
// ignored and Finalize reports that error.
type Builder struct {
	arch        string
	classes     []*RegisterClass
	classByName map[string]*RegisterClass
	decls       []decl
	err         error
}

func NewBuilder(arch string) *Builder {
	return &Builder{
		arch:        arch,
		classByName: make(map[string]*RegisterClass),
	}
}

func (b *Builder) Arch() string {
	return b.arch
}

// Err returns the first declaration error, if any.
func (b *Builder) Err() error {
	return b.err
}

// DeclareClass declares a register class with registers in index order.
func (b *Builder) DeclareClass(name string, mode Mode, registers []string, flags ClassFlag) (*RegisterClass, error) {
	if b.err != nil {
		return nil, b.err
	}
	if _, exists := b.classByName[name]; exists {
		b.err = &DuplicateClassError{Arch: b.arch, Class: name}
		return nil, b.err
	}
	cls, err := NewRegisterClass(name, mode, registers, flags)
	if err != nil {
		b.err = err
		return nil, err
	}
	b.classes = append(b.classes, cls)
	b.classByName[name] = cls
	return cls, nil
}

// Class returns a previously-declared class.
func (b *Builder) Class(name string) (*RegisterClass, bool) {
	cls, ok := b.classByName[name]
	return cls, ok
}

// Op declares a concrete, emittable opcode. It returns n so that the
// declaration can also serve as a base.
func (b *Builder) Op(n *Node) *Node {
	if b.err == nil {
		b.decls = append(b.decls, decl{node: n})
	}
	return n
}

// Abstract declares a base that is only ever used for composition.
func (b *Builder) Abstract(n *Node) *Node {
	if b.err == nil {
		b.decls = append(b.decls, decl{node: n, abstract: true})
	}
	return n
}

// Fail records err as the builder's error unless one is already recorded,
// for declaration steps that happen outside the builder (such as
// requirement lookups).
func (b *Builder) Fail(err error) {
	if b.err == nil && err != nil {
		b.err = err
	}
}

// Finalize assembles and validates every declaration and qualifies its name
// with the architecture. It does not change the builder, so calling it
// again gives an identical result.
func (b *Builder) Finalize() (*Export, error) {
	if b.err != nil {
		return nil, b.err
	}
	if !isIdent(b.arch) {
		return nil, malformed(fmt.Sprintf("%q", b.arch), "arch", "architecture name must be an identifier")
	}

	ret := &Export{
		Arch:            b.arch,
		RegisterClasses: append([]*RegisterClass(nil), b.classes...),
		byName:          make(map[string]*Spec, len(b.decls)),
	}
	for _, d := range b.decls {
		spec, err := Assemble(d.node)
		if err != nil {
			return nil, err
		}
		if err := b.checkClasses(spec); err != nil {
			return nil, err
		}

		spec.Name = b.arch + "_" + spec.BareName
		spec.Abstract = d.abstract
		if _, dup := ret.byName[spec.Name]; dup {
			return nil, malformed(spec.BareName, "name", "opcode declared more than once")
		}
		ret.byName[spec.Name] = spec

		if d.abstract {
			ret.AbstractNodes = append(ret.AbstractNodes, spec)
			continue
		}
		if len(spec.Constructors) == 0 {
			spec.Constructors = []*Constructor{{}}
		}
		ret.Nodes = append(ret.Nodes, spec)
	}
	return ret, nil
}

// checkClasses makes sure every requirement refers to a class declared with
// this builder, so generated tables never point at a foreign class.
func (b *Builder) checkClasses(s *Spec) error {
	check := func(field string, reqs []*RegisterReq) error {
		for i, req := range reqs {
			if req.Kind == ReqNone {
				continue
			}
			if b.classByName[req.Class.Name] != req.Class {
				return malformed(s.BareName, field, "requirement %d uses register class %s, which is not declared for %s", i, req.Class.Name, b.arch)
			}
		}
		return nil
	}
	if s.InReqs != nil {
		if err := check("in_reqs", s.InReqs.List); err != nil {
			return err
		}
	}
	if s.OutReqs != nil {
		if err := check("out_reqs", s.OutReqs.List); err != nil {
			return err
		}
	}
	for _, c := range s.Constructors {
		if err := check(fmt.Sprintf("constructors[%q].in_reqs", c.Name), c.InReqs); err != nil {
			return err
		}
	}
	return nil
}
