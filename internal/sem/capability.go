package sem

// Enumerable is the structural capability test for data source types: the
// type must expose an accessible zero-parameter method `iter` whose return
// type in turn exposes an accessible zero-parameter `next`. The builtin
// Seq<T> satisfies the capability by definition. No interface name is
// involved; custom container types qualify purely by shape.
func (m *Model) Enumerable(t *Type) bool {
	if t == nil {
		return false
	}
	if t.Sequence {
		return true
	}
	if t.Builtin {
		return false
	}
	iter := m.lookupMethod(t, "iter")
	if iter == nil {
		return false
	}
	cursor := iter.Type
	if cursor == nil {
		return false
	}
	if cursor.Sequence {
		return true
	}
	return m.lookupMethod(cursor, "next") != nil
}

// DefaultConstructible reports whether the type can be instantiated without
// arguments: either no constructor is declared at all, or a zero-parameter
// one is.
func (m *Model) DefaultConstructible(t *Type) bool {
	if t == nil {
		return false
	}
	if t.Builtin {
		return true
	}
	if !t.HasExplicitCtor() {
		return true
	}
	for _, arity := range t.CtorArity {
		if arity == 0 {
			return true
		}
	}
	return false
}
