package bespec

// Export is everything a code generator needs to know about one
// architecture. It is read-only once Finalize has returned it.
type Export struct {
	Arch            string
	RegisterClasses []*RegisterClass
	Nodes           []*Spec // concrete opcodes, in declaration order
	AbstractNodes   []*Spec // composition-only bases, in declaration order

	byName map[string]*Spec
}

// Node looks up a concrete or abstract opcode by its qualified name.
func (e *Export) Node(name string) *Spec {
	return e.byName[name]
}

// Class looks up a register class by name.
func (e *Export) Class(name string) *RegisterClass {
	for _, cls := range e.RegisterClasses {
		if cls.Name == name {
			return cls
		}
	}
	return nil
}

// Registers returns all registers in architecture-wide index order: class
// declaration order, then register order within each class.
func (e *Export) Registers() []*Register {
	var ret []*Register
	for _, cls := range e.RegisterClasses {
		ret = append(ret, cls.Registers...)
	}
	return ret
}

// LimitBitset is NewLimitBitset, exposed alongside the tables it is used
// with.
func (e *Export) LimitBitset(cls *RegisterClass, reg *Register) (LimitBitset, error) {
	return NewLimitBitset(cls, reg)
}
