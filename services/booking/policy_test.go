package booking

import (
	"testing"

	"servicehub/models"

	"github.com/stretchr/testify/assert"
)

func TestPolicies(t *testing.T) {
	b := &models.Booking{UserID: "u1", ProviderID: "p1"}
	prov := &models.Provider{ID: "p1", UserID: "prov-user"}

	owner := accessContext{principal: models.Principal{UserID: "u1", Role: models.RoleUser}, booking: b, provider: prov}
	adminAC := accessContext{principal: models.Principal{UserID: "a", Role: models.RoleAdmin}, booking: b, provider: prov}
	booked := accessContext{principal: models.Principal{UserID: "prov-user", Role: models.RoleProvider}, booking: b, provider: prov}
	noProvider := accessContext{principal: models.Principal{UserID: "prov-user", Role: models.RoleProvider}, booking: b}
	anonymous := accessContext{principal: models.Principal{}, booking: &models.Booking{}}

	assert.True(t, payPolicy(owner))
	assert.False(t, payPolicy(adminAC))
	assert.False(t, payPolicy(booked))

	assert.True(t, completePolicy(owner))
	assert.True(t, completePolicy(adminAC))
	assert.True(t, completePolicy(booked))
	assert.False(t, completePolicy(noProvider))

	assert.True(t, cancelPolicy(owner))
	assert.True(t, cancelPolicy(adminAC))
	assert.False(t, cancelPolicy(booked))

	// empty user ids never match each other
	assert.False(t, payPolicy(anonymous))
}
