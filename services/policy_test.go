package services

import (
	"net/http/httptest"
	"testing"

	"notable-notes/notable/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanModify(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	assert.True(t, CanModify(Requester{ID: owner}, owner))
	assert.False(t, CanModify(Requester{ID: stranger}, owner))
	assert.True(t, CanModify(Requester{ID: stranger, Staff: true}, owner))
}

func TestIsOwner(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	assert.True(t, IsOwner(Requester{ID: owner}, owner))
	assert.False(t, IsOwner(Requester{ID: stranger}, owner))
	// Staff privilege does not make someone an owner.
	assert.False(t, IsOwner(Requester{ID: stranger, Staff: true}, owner))
}

func TestRequesterFromContext(t *testing.T) {
	w := httptest.NewRecorder()
	c := testutils.GetTestGinContext(w, httptest.NewRequest("GET", "/", nil))

	_, ok := RequesterFromContext(c)
	assert.False(t, ok)

	userID := uuid.New()
	c.Set("userID", userID)
	c.Set("isStaff", true)

	r, ok := RequesterFromContext(c)
	assert.True(t, ok)
	assert.Equal(t, userID, r.ID)
	assert.True(t, r.Staff)
}
