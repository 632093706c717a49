package bespec

import (
	"fmt"
)

// validate checks an assembled spec for internal consistency.
func validate(s *Spec) error {
	name := s.BareName
	if !isIdent(name) {
		return malformed(fmt.Sprintf("%q", name), "name", "opcode name must be an identifier")
	}
	switch s.Pinned {
	case PinFloats, PinPinned, PinException:
	default:
		return malformed(name, "pinned", "invalid pin state %s", s.Pinned)
	}
	if s.Mode != ModeInvalid && !s.Mode.Valid() {
		return malformed(name, "mode", "unknown mode %q", string(s.Mode))
	}

	if err := checkArity(name, "in_reqs", "inputs", s.Ins, s.InReqs); err != nil {
		return err
	}
	if err := checkArity(name, "out_reqs", "outputs", s.Outs, s.OutReqs); err != nil {
		return err
	}
	if s.InReqs != nil {
		if err := checkReqs(name, "in_reqs", s.InReqs.List); err != nil {
			return err
		}
	}
	if s.OutReqs != nil {
		if err := checkReqs(name, "out_reqs", s.OutReqs.List); err != nil {
			return err
		}
	}

	needsAttrStruct := s.Attr != "" || s.InitAttr != ""
	seen := make(map[string]struct{}, len(s.Constructors))
	for _, c := range s.Constructors {
		field := fmt.Sprintf("constructors[%q]", c.Name)
		if c.Name != "" && !isIdent(c.Name) {
			return malformed(name, field, "constructor name must be an identifier")
		}
		if _, dup := seen[c.Name]; dup {
			return malformed(name, field, "constructor declared more than once")
		}
		seen[c.Name] = struct{}{}

		// Constructors with operands declared locally must give one
		// requirement per operand.
		if len(c.InReqs) != len(c.Ins) {
			return malformed(name, field+".in_reqs", "%d requirements for %d inputs", len(c.InReqs), len(c.Ins))
		}
		if err := checkReqs(name, field+".in_reqs", c.InReqs); err != nil {
			return err
		}
		if c.Attr != "" || c.CustomInit != "" {
			needsAttrStruct = true
		}
	}

	switch {
	case s.AttrStruct != "" && !isIdent(s.AttrStruct):
		return malformed(name, "attr_struct", "%q is not an identifier", s.AttrStruct)
	case s.AttrStruct == "" && needsAttrStruct:
		return malformed(name, "attr_struct", "attribute data declared but no attribute struct to hold it")
	}
	return nil
}

// checkArity compares a name list against its requirement list. The check
// applies only when both were declared and neither is variadic.
func checkArity(node, field, what string, names *Names, reqs *Reqs) error {
	if names == nil || reqs == nil || names.Variadic || reqs.Variadic {
		return nil
	}
	if len(names.List) != len(reqs.List) {
		return malformed(node, field, "%d requirements for %d %s", len(reqs.List), len(names.List), what)
	}
	return nil
}

func checkReqs(node, field string, reqs []*RegisterReq) error {
	for i, req := range reqs {
		switch {
		case req == nil:
			return malformed(node, field, "requirement %d is nil", i)
		case req.Kind == ReqNone:
		case req.Class == nil:
			return malformed(node, field, "requirement %d has no register class", i)
		case req.Limited() && (req.Register == nil || req.Register.Class != req.Class):
			return malformed(node, field, "requirement %d names a register outside class %s", i, req.Class.Name)
		}
	}
	return nil
}
