package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"socialnetwork/internal/models"
)

func TestAllow(t *testing.T) {
	post := &models.Post{PostID: "post-1", UserID: "owner"}
	profile := &models.Profile{ProfileID: "profile-1", UserID: "owner"}

	owner := models.Caller{UserID: "owner"}
	stranger := models.Caller{UserID: "stranger"}
	admin := models.Caller{UserID: "admin", IsStaff: true}
	anonymous := models.Caller{}

	tests := []struct {
		name     string
		caller   models.Caller
		verb     Verb
		expected bool
	}{
		{"owner reads", owner, Read, true},
		{"owner writes", owner, Write, true},
		{"owner deletes", owner, Delete, true},
		{"stranger reads", stranger, Read, true},
		{"stranger cannot write", stranger, Write, false},
		{"stranger cannot delete", stranger, Delete, false},
		{"admin reads", admin, Read, true},
		{"admin cannot write", admin, Write, false},
		{"admin deletes", admin, Delete, true},
		{"anonymous cannot read", anonymous, Read, false},
		{"anonymous cannot delete", anonymous, Delete, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Allow(tt.caller, Post(post), tt.verb))
			assert.Equal(t, tt.expected, Allow(tt.caller, Profile(profile), tt.verb))
		})
	}
}
