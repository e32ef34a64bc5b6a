package utils

import "strings"

const (
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
)

// NormalizeRoles upper-cases, trims and de-duplicates roles. Entries may be
// space or comma separated and may carry a ROLE_ or SCOPE_ prefix.
func NormalizeRoles(raw ...string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, r := range raw {
		for _, f := range strings.FieldsFunc(r, func(c rune) bool { return c == ',' || c == ' ' || c == '\t' }) {
			f = strings.ToUpper(strings.TrimSpace(f))
			f = strings.TrimPrefix(f, "ROLE_")
			f = strings.TrimPrefix(f, "SCOPE_")
			if f == "" || seen[f] {
				continue
			}
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

// HasAnyRole reports whether have contains one of want. Empty want allows all.
func HasAnyRole(have []string, want ...string) bool {
	if len(want) == 0 {
		return true
	}
	for _, w := range NormalizeRoles(want...) {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}
