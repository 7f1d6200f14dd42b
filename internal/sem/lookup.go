package sem

// kindRank orders member kinds by resolution preference: a data source is
// conventionally a field or property rather than a method sharing the name.
func kindRank(k MemberKind) int {
	switch k {
	case KindField:
		return 0
	case KindProp:
		return 1
	case KindMethod:
		return 2
	}
	return 3
}

// LookupMember resolves a member name inside the declaring type. Declaration
// fragments are walked in source order; inside a fragment, same-named members
// are ranked Field > Property > Method. Returns nil when nothing matches.
func (m *Model) LookupMember(t *Type, name string) *Member {
	if t == nil {
		return nil
	}
	for _, frag := range t.Fragments {
		var best *Member
		for _, member := range frag.Members {
			if member.Name != name {
				continue
			}
			if best == nil || kindRank(member.Kind) < kindRank(best.Kind) {
				best = member
			}
		}
		if best != nil {
			return best
		}
	}
	return nil
}

// AccessibleFrom reports whether the member can be referenced from inside
// the given type. Private members are visible only to their owner.
func (m *Model) AccessibleFrom(member *Member, from *Type) bool {
	if member == nil {
		return false
	}
	return !member.Priv || member.Owner == from
}

// lookupMethod finds a non-private zero-parameter method by name on t.
func (m *Model) lookupMethod(t *Type, name string) *Member {
	if t == nil {
		return nil
	}
	for _, frag := range t.Fragments {
		for _, member := range frag.Members {
			if member.Kind == KindMethod && member.Name == name &&
				!member.Priv && member.ParamCount == 0 {
				return member
			}
		}
	}
	return nil
}
