package domain

// RolePrefix is prepended to the role claim to form a granted authority,
// e.g. role "ADMIN" grants "ROLE_ADMIN".
const RolePrefix = "ROLE_"

// Identity is the authenticated principal attached to a single request by the
// auth middleware. It is derived entirely from token claims and discarded when
// the request completes.
type Identity struct {
	Principal   string
	Authorities []string
}

// HasAuthority reports whether the identity carries the given authority.
func (i Identity) HasAuthority(authority string) bool {
	for _, a := range i.Authorities {
		if a == authority {
			return true
		}
	}
	return false
}
