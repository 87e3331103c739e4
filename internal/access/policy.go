// Package access decides whether a caller may act on a profile or post.
package access

import "socialnetwork/internal/models"

type Verb int

const (
	Read Verb = iota
	Write
	Delete
)

// Resource is anything owned by exactly one user identity.
type Resource interface {
	OwnerID() string
}

// Allow is the whole policy: anyone authenticated reads, the owner writes,
// the owner or staff deletes. Staff can never edit someone else's content.
func Allow(caller models.Caller, resource Resource, verb Verb) bool {
	if caller.UserID == "" {
		return false
	}

	isOwner := resource.OwnerID() == caller.UserID

	switch verb {
	case Read:
		return true
	case Delete:
		return isOwner || caller.IsStaff
	default:
		return isOwner
	}
}

type ownedProfile struct{ p *models.Profile }

func (o ownedProfile) OwnerID() string { return o.p.UserID }

type ownedPost struct{ p *models.Post }

func (o ownedPost) OwnerID() string { return o.p.UserID }

func Profile(p *models.Profile) Resource { return ownedProfile{p} }

func Post(p *models.Post) Resource { return ownedPost{p} }
