package entities

import "github.com/google/uuid"

// SiteScope narrows which sites an API key may operate on. The zero value is
// unrestricted: a key with no allow-list may reach every site in its
// organization. The restriction is an explicit tagged variant rather than an
// empty-slice sentinel so "empty list" can never be misread as "no access".
type SiteScope struct {
	restricted bool
	siteIDs    map[uuid.UUID]struct{}
}

// UnrestrictedScope allows every site in the key's organization.
func UnrestrictedScope() SiteScope {
	return SiteScope{}
}

// RestrictedScope limits access to the given site ids. An empty list
// degrades to the unrestricted scope.
func RestrictedScope(ids []uuid.UUID) SiteScope {
	if len(ids) == 0 {
		return UnrestrictedScope()
	}
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return SiteScope{restricted: true, siteIDs: set}
}

// IsRestricted reports whether the scope carries an allow-list.
func (s SiteScope) IsRestricted() bool {
	return s.restricted
}

// Allows reports whether the scope permits the given site id. Organization
// ownership is checked separately; this only evaluates the allow-list.
func (s SiteScope) Allows(siteID uuid.UUID) bool {
	if !s.restricted {
		return true
	}
	_, ok := s.siteIDs[siteID]
	return ok
}

// SiteIDs returns the allow-listed site ids, nil when unrestricted.
func (s SiteScope) SiteIDs() []uuid.UUID {
	if !s.restricted {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(s.siteIDs))
	for id := range s.siteIDs {
		ids = append(ids, id)
	}
	return ids
}
