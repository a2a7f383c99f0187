package policy

import (
	"strconv"
	"strings"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/models"
)

// CanonicalID normalizes an identifier to its canonical string form.
// Identifiers may arrive as differently formatted representations of the
// same value (path params, token claims, stored references), so both sides
// of an ownership comparison must go through this first.
func CanonicalID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// IsOwner reports whether the requesting user is the owner of a resource.
// Both ids are compared in canonical form; empty ids never match.
func IsOwner(resourceOwnerUserID, requestingUserID string) bool {
	owner := CanonicalID(resourceOwnerUserID)
	requester := CanonicalID(requestingUserID)
	if owner == "" || requester == "" {
		return false
	}
	return owner == requester
}

// IsOwnerID is the numeric-id convenience form of IsOwner
func IsOwnerID(resourceOwnerUserID, requestingUserID int64) bool {
	return IsOwner(
		strconv.FormatInt(resourceOwnerUserID, 10),
		strconv.FormatInt(requestingUserID, 10),
	)
}

// IsPrivileged reports whether the role is in the allowed set
func IsPrivileged(role models.RoleType, allowedRoles ...models.RoleType) bool {
	for _, allowed := range allowedRoles {
		if role == allowed {
			return true
		}
	}
	return false
}
