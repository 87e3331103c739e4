package models

import (
	"strings"
	"time"
)

type User struct {
	UserID                 string     `json:"userId" db:"user_id"`
	Email                  string     `json:"email" db:"email"`
	PasswordHash           string     `json:"-" db:"password_hash"`
	FirstName              string     `json:"firstName" db:"first_name"`
	LastName               string     `json:"lastName" db:"last_name"`
	IsStaff                bool       `json:"isStaff" db:"is_staff"`
	RefreshToken           *string    `json:"-" db:"refresh_token"`
	RefreshTokenExpiryTime *time.Time `json:"-" db:"refresh_token_expiry_time"`
	CreatedAt              time.Time  `json:"createdAt" db:"created_at"`
}

func (u *User) FullName() string {
	return FullName(u.FirstName, u.LastName)
}

// Caller is the authenticated identity a request acts on behalf of.
type Caller struct {
	UserID  string
	Email   string
	IsStaff bool
}

// Profile is joined with its user's names and the derived follow counts on read.
type Profile struct {
	ProfileID      string    `db:"profile_id"`
	UserID         string    `db:"user_id"`
	Bio            string    `db:"bio"`
	Country        string    `db:"country"`
	City           string    `db:"city"`
	ImageURL       *string   `db:"image_url"`
	CreatedAt      time.Time `db:"created_at"`
	FirstName      string    `db:"first_name"`
	LastName       string    `db:"last_name"`
	FollowersCount int       `db:"followers_count"`
	FollowingCount int       `db:"following_count"`
}

func (p *Profile) FullName() string {
	return FullName(p.FirstName, p.LastName)
}

// Follow is a directed edge: FollowerID follows FollowingID.
type Follow struct {
	FollowerID  string    `db:"follower_id"`
	FollowingID string    `db:"following_id"`
	CreatedAt   time.Time `db:"created_at"`
}

// FollowEdge is a follow edge projected onto the profile on the other end.
type FollowEdge struct {
	ProfileID string    `db:"profile_id"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	CreatedAt time.Time `db:"created_at"`
}

func (e *FollowEdge) FullName() string {
	return FullName(e.FirstName, e.LastName)
}

// Post carries its owner's user ID and names so ownership checks need no extra lookup.
type Post struct {
	PostID    string    `db:"post_id"`
	ProfileID string    `db:"profile_id"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	MediaURL  *string   `db:"media_url"`
	CreatedAt time.Time `db:"created_at"`
	UserID    string    `db:"user_id"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
}

func (p *Post) FullName() string {
	return FullName(p.FirstName, p.LastName)
}

func FullName(firstName, lastName string) string {
	return strings.TrimSpace(firstName + " " + lastName)
}
