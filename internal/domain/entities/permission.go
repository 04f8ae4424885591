package entities

// Permission is a named capability carried by an API key.
type Permission string

const (
	PermissionReadContent    Permission = "read:content"
	PermissionWriteContent   Permission = "write:content"
	PermissionReadSite       Permission = "read:site"
	PermissionManageSite     Permission = "manage:site"
	PermissionManageWebhooks Permission = "manage:webhooks"
)

var knownPermissions = map[Permission]struct{}{
	PermissionReadContent:    {},
	PermissionWriteContent:   {},
	PermissionReadSite:       {},
	PermissionManageSite:     {},
	PermissionManageWebhooks: {},
}

// IsValidPermission reports whether name is a known permission.
func IsValidPermission(name string) bool {
	_, ok := knownPermissions[Permission(name)]
	return ok
}

// PermissionSet is the resolved permission scope of an API key. A nil or
// empty set grants nothing.
type PermissionSet map[Permission]struct{}

// NewPermissionSet builds a set from stored permission names. Unknown names
// are dropped so a typo can never widen the scope.
func NewPermissionSet(names []string) PermissionSet {
	set := make(PermissionSet, len(names))
	for _, name := range names {
		if IsValidPermission(name) {
			set[Permission(name)] = struct{}{}
		}
	}
	return set
}

// Has reports whether the set includes the permission. Fails closed on a
// nil set.
func (s PermissionSet) Has(p Permission) bool {
	if s == nil {
		return false
	}
	_, ok := s[p]
	return ok
}

// Strings returns the permission names in the set.
func (s PermissionSet) Strings() []string {
	names := make([]string, 0, len(s))
	for p := range s {
		names = append(names, string(p))
	}
	return names
}
