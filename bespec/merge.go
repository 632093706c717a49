package bespec

// rootSpec is the record at the bottom of every base chain.
func rootSpec() Spec {
	return Spec{
		Pinned: PinFloats,
	}
}

// Merge returns base with every field that n declares replaced by n's
// value. Neither argument is modified.
func Merge(base Spec, n *Node) Spec {
	ret := base
	if n.Name != "" {
		ret.BareName = n.Name
	}
	if n.Pinned != pinInherit {
		ret.Pinned = n.Pinned
	}
	if n.OpFlags != nil {
		ret.OpFlags = *n.OpFlags
	}
	if n.IrnFlags != nil {
		ret.IrnFlags = *n.IrnFlags
	}
	if n.Mode != ModeInvalid {
		ret.Mode = n.Mode
	}
	if n.AttrStruct != "" {
		ret.AttrStruct = n.AttrStruct
	}
	if n.Attr != "" {
		ret.Attr = n.Attr
	}
	if n.InitAttr != "" {
		ret.InitAttr = n.InitAttr
	}
	if n.Ins != nil {
		ret.Ins = n.Ins
	}
	if n.Outs != nil {
		ret.Outs = n.Outs
	}
	if n.InReqs != nil {
		ret.InReqs = n.InReqs
	}
	if n.OutReqs != nil {
		ret.OutReqs = n.OutReqs
	}
	if n.Constructors != nil {
		ret.Constructors = append([]*Constructor(nil), n.Constructors...)
	}
	if n.Emit != nil {
		ret.Emit = *n.Emit
	}
	return ret
}

// Overlay combines two adjacent chain levels into one partial declaration
// that has upper's fields over lower's and extends lower's base. Merging
// the result is the same as merging lower and then upper.
func Overlay(lower, upper *Node) *Node {
	ret := *lower
	if upper.Name != "" {
		ret.Name = upper.Name
	}
	if upper.Pinned != pinInherit {
		ret.Pinned = upper.Pinned
	}
	if upper.OpFlags != nil {
		ret.OpFlags = upper.OpFlags
	}
	if upper.IrnFlags != nil {
		ret.IrnFlags = upper.IrnFlags
	}
	if upper.Mode != ModeInvalid {
		ret.Mode = upper.Mode
	}
	if upper.AttrStruct != "" {
		ret.AttrStruct = upper.AttrStruct
	}
	if upper.Attr != "" {
		ret.Attr = upper.Attr
	}
	if upper.InitAttr != "" {
		ret.InitAttr = upper.InitAttr
	}
	if upper.Ins != nil {
		ret.Ins = upper.Ins
	}
	if upper.Outs != nil {
		ret.Outs = upper.Outs
	}
	if upper.InReqs != nil {
		ret.InReqs = upper.InReqs
	}
	if upper.OutReqs != nil {
		ret.OutReqs = upper.OutReqs
	}
	if upper.Constructors != nil {
		ret.Constructors = upper.Constructors
	}
	if upper.Emit != nil {
		ret.Emit = upper.Emit
	}
	return &ret
}

// chain returns n's base chain ordered from the outermost base down to n.
func chain(n *Node) ([]*Node, error) {
	var ret []*Node
	seen := make(map[*Node]struct{})
	for cur := n; cur != nil; cur = cur.Base {
		if _, ok := seen[cur]; ok {
			return nil, malformed(n.Name, "base", "base chain loops back to %s", cur.Name)
		}
		seen[cur] = struct{}{}
		ret = append(ret, cur)
	}
	for i, j := 0, len(ret)-1; i < j; i, j = i+1, j-1 {
		ret[i], ret[j] = ret[j], ret[i]
	}
	return ret, nil
}

// Assemble merges n's whole base chain onto the root record and validates
// the result. The returned Spec is not yet qualified with an architecture
// prefix.
func Assemble(n *Node) (*Spec, error) {
	levels, err := chain(n)
	if err != nil {
		return nil, err
	}
	spec := rootSpec()
	for _, level := range levels {
		spec = Merge(spec, level)
	}
	// The name is the declaration's own identity, never inherited.
	spec.BareName = n.Name
	if err := validate(&spec); err != nil {
		return nil, err
	}
	return &spec, nil
}
