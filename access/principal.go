// Package access decides who is calling and which rows they may see.
package access

import (
	"slices"

	"folio/models"

	"github.com/google/uuid"
)

// Kind identifies how a request authenticated.
type Kind int

const (
	KindAdminSession Kind = iota + 1
	KindAPIKey
)

func (k Kind) String() string {
	switch k {
	case KindAdminSession:
		return "session"
	case KindAPIKey:
		return "api_key"
	default:
		return "unknown"
	}
}

// Principal is the identity resolved for a request. Exactly one of
// UserID (admin session) or KeyID (API key) is set.
type Principal struct {
	Kind        Kind
	UserID      string
	KeyID       uuid.UUID
	Permissions []string
}

func AdminSession(userID string) Principal {
	return Principal{Kind: KindAdminSession, UserID: userID}
}

func APIKeyPrincipal(key *models.APIKey) Principal {
	return Principal{
		Kind:        KindAPIKey,
		KeyID:       key.ID,
		Permissions: slices.Clone(key.Permissions),
	}
}

func (p Principal) IsAdmin() bool {
	return p.Kind == KindAdminSession
}

func (p Principal) IsAPIKey() bool {
	return p.Kind == KindAPIKey
}

// HasPermission reports whether the key carries perm. Admin sessions
// hold every permission.
func (p Principal) HasPermission(perm string) bool {
	if p.IsAdmin() {
		return true
	}
	return slices.Contains(p.Permissions, perm)
}
