package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"socialnetwork/internal/models"
)

type FollowRepositoryImpl struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) *FollowRepositoryImpl {
	return &FollowRepositoryImpl{db: db}
}

// Create inserts the edge follower -> following. An existing edge yields ErrDuplicate,
// so two racing follows of the same pair cannot both succeed.
func (r *FollowRepositoryImpl) Create(ctx context.Context, followerID, followingID string) error {
	query := `
		INSERT INTO follows (follower_id, following_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (follower_id, following_id) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query, followerID, followingID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to create follow: %w", translateError(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check inserted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("follow %s -> %s: %w", followerID, followingID, ErrDuplicate)
	}

	return nil
}

// Delete removes the edge follower -> following, ErrNotFound if there was none.
func (r *FollowRepositoryImpl) Delete(ctx context.Context, followerID, followingID string) error {
	query := `DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`

	result, err := r.db.ExecContext(ctx, query, followerID, followingID)
	if err != nil {
		return fmt.Errorf("failed to delete follow: %w", translateError(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("follow %s -> %s: %w", followerID, followingID, ErrNotFound)
	}

	return nil
}

// Followers lists the profiles following profileID, newest edge first.
func (r *FollowRepositoryImpl) Followers(ctx context.Context, profileID string) ([]models.FollowEdge, error) {
	query := `
		SELECT f.follower_id AS profile_id, u.first_name, u.last_name, f.created_at
		FROM follows f
		JOIN profiles p ON p.profile_id = f.follower_id
		JOIN users u ON u.user_id = p.user_id
		WHERE f.following_id = $1
		ORDER BY f.created_at DESC
	`

	return r.selectEdges(ctx, query, profileID)
}

// Following lists the profiles profileID follows, newest edge first.
func (r *FollowRepositoryImpl) Following(ctx context.Context, profileID string) ([]models.FollowEdge, error) {
	query := `
		SELECT f.following_id AS profile_id, u.first_name, u.last_name, f.created_at
		FROM follows f
		JOIN profiles p ON p.profile_id = f.following_id
		JOIN users u ON u.user_id = p.user_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC
	`

	return r.selectEdges(ctx, query, profileID)
}

func (r *FollowRepositoryImpl) selectEdges(ctx context.Context, query, profileID string) ([]models.FollowEdge, error) {
	edges := []models.FollowEdge{}
	if err := r.db.SelectContext(ctx, &edges, query, profileID); err != nil {
		return nil, fmt.Errorf("failed to list follows of %s: %w", profileID, translateError(err))
	}
	return edges, nil
}
