package datasource

import (
	"casecheck/internal/sem"
)

// resolveMember looks the extracted name up inside the declaring type.
// Constant strings that could never name a member bypass resolution
// entirely; for them the missing-source diagnostic is still accurate.
func resolveMember(host Semantics, ref SourceRef) *sem.Member {
	if !ref.HasName || !isValidIdent(ref.MemberName) {
		return nil
	}
	return host.LookupMember(ref.DeclaringType, ref.MemberName)
}

func isValidIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		b := s[i]
		alpha := b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
		if i == 0 {
			if !alpha {
				return false
			}
			continue
		}
		if !alpha && !(b >= '0' && b <= '9') {
			return false
		}
	}
	return true
}
