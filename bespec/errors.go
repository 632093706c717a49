package bespec

import (
	"fmt"
)

// DuplicateClassError is returned when a register class name is declared
// twice for the same architecture.
type DuplicateClassError struct {
	Arch  string
	Class string
}

func (e *DuplicateClassError) Error() string {
	return fmt.Sprintf("%s: register class %q is already declared", e.Arch, e.Class)
}

// DuplicateRegisterError is returned when one register class lists the same
// register name more than once.
type DuplicateRegisterError struct {
	Class    string
	Register string
}

func (e *DuplicateRegisterError) Error() string {
	return fmt.Sprintf("register class %q lists register %q more than once", e.Class, e.Register)
}

// UnknownRegisterError is returned when a register is looked up by name in a
// class that doesn't contain it.
type UnknownRegisterError struct {
	Class    string
	Register string
}

func (e *UnknownRegisterError) Error() string {
	return fmt.Sprintf("no register named %q in register class %q", e.Register, e.Class)
}

// MalformedSpecError reports an internally-inconsistent declaration. Name is
// the opcode (or class) at fault and Field the declaration field that is
// wrong.
type MalformedSpecError struct {
	Name   string
	Field  string
	Reason string
}

func (e *MalformedSpecError) Error() string {
	return fmt.Sprintf("malformed declaration of %s: %s: %s", e.Name, e.Field, e.Reason)
}

func malformed(name, field, format string, args ...interface{}) error {
	return &MalformedSpecError{
		Name:   name,
		Field:  field,
		Reason: fmt.Sprintf(format, args...),
	}
}
