package handlers

import (
	"time"

	"socialnetwork/internal/models"
)

// ProfileAction names a profile operation. Each action has exactly one response shape.
type ProfileAction int

const (
	ProfileList ProfileAction = iota
	ProfileRetrieve
	ProfileCreate
	ProfileUpdate
	ProfileMe
)

type ProfileListItem struct {
	ID       string  `json:"id"`
	FullName string  `json:"full_name"`
	Country  string  `json:"country"`
	City     string  `json:"city"`
	Image    *string `json:"image"`
}

type ProfileDetail struct {
	ID             string  `json:"id"`
	User           string  `json:"user"`
	FullName       string  `json:"full_name"`
	Bio            string  `json:"bio"`
	Country        string  `json:"country"`
	City           string  `json:"city"`
	Image          *string `json:"image"`
	FollowersCount int     `json:"followers_count"`
	FollowingCount int     `json:"following_count"`
}

func renderProfile(action ProfileAction, p *models.Profile) any {
	switch action {
	case ProfileList:
		return ProfileListItem{
			ID:       p.ProfileID,
			FullName: p.FullName(),
			Country:  p.Country,
			City:     p.City,
			Image:    p.ImageURL,
		}
	case ProfileRetrieve, ProfileCreate, ProfileUpdate, ProfileMe:
		return ProfileDetail{
			ID:             p.ProfileID,
			User:           p.UserID,
			FullName:       p.FullName(),
			Bio:            p.Bio,
			Country:        p.Country,
			City:           p.City,
			Image:          p.ImageURL,
			FollowersCount: p.FollowersCount,
			FollowingCount: p.FollowingCount,
		}
	default:
		panic("unknown profile action")
	}
}

func renderProfiles(action ProfileAction, profiles []models.Profile) []any {
	out := make([]any, 0, len(profiles))
	for i := range profiles {
		out = append(out, renderProfile(action, &profiles[i]))
	}
	return out
}

// FollowEdgeResponse describes the profile on the other end of a follow edge.
type FollowEdgeResponse struct {
	ID         string    `json:"id"`
	FullName   string    `json:"full_name"`
	FollowedAt time.Time `json:"followed_at"`
}

func renderEdges(edges []models.FollowEdge) []FollowEdgeResponse {
	out := make([]FollowEdgeResponse, 0, len(edges))
	for i := range edges {
		out = append(out, FollowEdgeResponse{
			ID:         edges[i].ProfileID,
			FullName:   edges[i].FullName(),
			FollowedAt: edges[i].CreatedAt,
		})
	}
	return out
}

type PostAction int

const (
	PostList PostAction = iota
	PostMine
	PostFeed
	PostRetrieve
	PostCreate
	PostUpdate
)

type PostListItem struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Media     *string   `json:"media"`
	CreatedAt time.Time `json:"created_at"`
}

type PostDetail struct {
	ID        string    `json:"id"`
	Profile   string    `json:"profile"`
	FullName  string    `json:"full_name"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Media     *string   `json:"media"`
	CreatedAt time.Time `json:"created_at"`
}

func renderPost(action PostAction, p *models.Post) any {
	switch action {
	case PostList, PostMine, PostFeed:
		return PostListItem{
			ID:        p.PostID,
			FullName:  p.FullName(),
			Title:     p.Title,
			Content:   p.Content,
			Media:     p.MediaURL,
			CreatedAt: p.CreatedAt,
		}
	case PostRetrieve, PostCreate, PostUpdate:
		return PostDetail{
			ID:        p.PostID,
			Profile:   p.ProfileID,
			FullName:  p.FullName(),
			Title:     p.Title,
			Content:   p.Content,
			Media:     p.MediaURL,
			CreatedAt: p.CreatedAt,
		}
	default:
		panic("unknown post action")
	}
}

func renderPosts(action PostAction, posts []models.Post) []any {
	out := make([]any, 0, len(posts))
	for i := range posts {
		out = append(out, renderPost(action, &posts[i]))
	}
	return out
}
