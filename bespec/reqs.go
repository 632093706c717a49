package bespec

import (
	"fmt"
)

type ReqKind int

const (
	// ReqNone is for slots with no register semantics, such as control
	// flow or memory edges.
	ReqNone ReqKind = iota
	// ReqClass allows any register of the class.
	ReqClass
	// ReqSingle allows exactly one register of the class.
	ReqSingle
	// ReqProduceStack is ReqSingle for a result that redefines the stack
	// pointer.
	ReqProduceStack
)

func (k ReqKind) String() string {
	switch k {
	case ReqNone:
		return "none"
	case ReqClass:
		return "class"
	case ReqSingle:
		return "single"
	case ReqProduceStack:
		return "produce_stack"
	default:
		return fmt.Sprintf("ReqKind(%d)", int(k))
	}
}

// RegisterReq constrains which registers one operand or result may occupy.
// Register is set only for ReqSingle and ReqProduceStack.
type RegisterReq struct {
	Kind     ReqKind
	Class    *RegisterClass
	Register *Register
}

var noReq = &RegisterReq{Kind: ReqNone}

// NoReq returns the shared requirement for slots without registers. Every
// call returns the same pointer.
func NoReq() *RegisterReq {
	return noReq
}

func Unconstrained(cls *RegisterClass) *RegisterReq {
	return &RegisterReq{
		Kind:  ReqClass,
		Class: cls,
	}
}

// SingleFixed returns a requirement for the named register of cls.
func SingleFixed(cls *RegisterClass, name string) (*RegisterReq, error) {
	reg, ok := cls.Register(name)
	if !ok {
		return nil, &UnknownRegisterError{Class: cls.Name, Register: name}
	}
	return &RegisterReq{
		Kind:     ReqSingle,
		Class:    cls,
		Register: reg,
	}, nil
}

// ProduceStack is like SingleFixed but also marks the result as the new
// stack pointer value.
func ProduceStack(cls *RegisterClass, name string) (*RegisterReq, error) {
	req, err := SingleFixed(cls, name)
	if err != nil {
		return nil, err
	}
	req.Kind = ReqProduceStack
	return req, nil
}

// Limited reports whether the requirement pins its slot to one register.
func (r *RegisterReq) Limited() bool {
	return r.Kind == ReqSingle || r.Kind == ReqProduceStack
}

// LimitBitset is the bitmask for a limited requirement.
func (r *RegisterReq) LimitBitset() (LimitBitset, error) {
	if !r.Limited() {
		return LimitBitset{}, fmt.Errorf("%s requirement has no limited bitset", r.Kind)
	}
	return NewLimitBitset(r.Class, r.Register)
}

func (r *RegisterReq) String() string {
	switch r.Kind {
	case ReqNone:
		return "none"
	case ReqClass:
		return r.Class.Name
	default:
		return fmt.Sprintf("%s(%s)", r.Kind, r.Register)
	}
}
