package services

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Requester identifies the authenticated user behind a request. The zero
// value is an anonymous requester and is denied everything.
type Requester struct {
	ID    uuid.UUID
	Staff bool
}

// RequesterFromContext reads the identity that AuthMiddleware stored on
// the gin context.
func RequesterFromContext(c *gin.Context) (Requester, bool) {
	userIDInterface, exists := c.Get("userID")
	if !exists {
		return Requester{}, false
	}
	userID, ok := userIDInterface.(uuid.UUID)
	if !ok {
		return Requester{}, false
	}

	staff := false
	if staffInterface, exists := c.Get("isStaff"); exists {
		staff, _ = staffInterface.(bool)
	}

	return Requester{ID: userID, Staff: staff}, true
}

// CanModify is the object-level authorization rule applied to every
// mutating operation: the requester must own the resource or hold staff
// privilege.
func CanModify(r Requester, ownerID uuid.UUID) bool {
	return r.Staff || r.ID == ownerID
}

// IsOwner is the stricter rule for personal-organization features (pin,
// reorder) where staff privilege does not apply.
func IsOwner(r Requester, ownerID uuid.UUID) bool {
	return r.ID == ownerID
}
