package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"socialnetwork/internal/filter"
	"socialnetwork/internal/models"
)

type PostRepositoryImpl struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

// postSelect carries the owner's user ID so access checks need no second query.
const postSelect = `
	SELECT p.post_id, p.profile_id, p.title, p.content, p.media_url, p.created_at,
		pr.user_id, u.first_name, u.last_name
	FROM posts p
	JOIN profiles pr ON pr.profile_id = p.profile_id
	JOIN users u ON u.user_id = pr.user_id`

const newestFirst = " ORDER BY p.created_at DESC, p.post_id"

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (post_id, profile_id, title, content, media_url, created_at)
		VALUES (:post_id, :profile_id, :title, :content, :media_url, :created_at)
	`

	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}
	post.CreatedAt = time.Now()

	if _, err := r.db.NamedExecContext(ctx, query, post); err != nil {
		return fmt.Errorf("failed to create post: %w", translateError(err))
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	where, args := filter.Conditions{}.And("p.post_id = ?", postID).Where()
	query := r.db.Rebind(postSelect + where)

	var post models.Post
	if err := r.db.GetContext(ctx, &post, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post %s: %w", postID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get post: %w", translateError(err))
	}

	return &post, nil
}

func (r *PostRepositoryImpl) List(ctx context.Context, f filter.PostFilter) ([]models.Post, error) {
	return r.selectPosts(ctx, f.Conditions())
}

func (r *PostRepositoryImpl) ListByProfile(ctx context.Context, profileID string, f filter.PostFilter) ([]models.Post, error) {
	c := filter.Conditions{}.And("p.profile_id = ?", profileID)
	return r.selectPosts(ctx, c.Merge(f.Conditions()))
}

// Feed returns posts authored by every profile followerID follows.
func (r *PostRepositoryImpl) Feed(ctx context.Context, followerID string, f filter.PostFilter) ([]models.Post, error) {
	c := filter.Conditions{}.And(
		"p.profile_id IN (SELECT f.following_id FROM follows f WHERE f.follower_id = ?)",
		followerID,
	)
	return r.selectPosts(ctx, c.Merge(f.Conditions()))
}

func (r *PostRepositoryImpl) selectPosts(ctx context.Context, c filter.Conditions) ([]models.Post, error) {
	where, args := c.Where()
	query := r.db.Rebind(postSelect + where + newestFirst)

	posts := []models.Post{}
	if err := r.db.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) MediaURLsByProfile(ctx context.Context, profileID string) ([]string, error) {
	query := `SELECT media_url FROM posts WHERE profile_id = $1 AND media_url IS NOT NULL`

	urls := []string{}
	if err := r.db.SelectContext(ctx, &urls, query, profileID); err != nil {
		return nil, fmt.Errorf("failed to list post media: %w", err)
	}

	return urls, nil
}

// Update never moves a post to another profile.
func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts SET
			title = :title,
			content = :content,
			media_url = :media_url
		WHERE post_id = :post_id
	`

	result, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", translateError(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post %s: %w", post.PostID, ErrNotFound)
	}

	return nil
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, postID string) error {
	query := `DELETE FROM posts WHERE post_id = $1`

	result, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", translateError(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post %s: %w", postID, ErrNotFound)
	}

	return nil
}
