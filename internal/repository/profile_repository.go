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

type ProfileRepositoryImpl struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepositoryImpl {
	return &ProfileRepositoryImpl{db: db}
}

// profileSelect joins the owner's names and derives both follow counts.
const profileSelect = `
	SELECT p.profile_id, p.user_id, p.bio, p.country, p.city, p.image_url, p.created_at,
		u.first_name, u.last_name,
		(SELECT COUNT(*) FROM follows f WHERE f.following_id = p.profile_id) AS followers_count,
		(SELECT COUNT(*) FROM follows f WHERE f.follower_id = p.profile_id) AS following_count
	FROM profiles p
	JOIN users u ON u.user_id = p.user_id`

func (r *ProfileRepositoryImpl) Create(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (profile_id, user_id, bio, country, city, image_url, created_at)
		VALUES (:profile_id, :user_id, :bio, :country, :city, :image_url, :created_at)
	`

	if profile.ProfileID == "" {
		profile.ProfileID = uuid.New().String()
	}
	profile.CreatedAt = time.Now()

	if _, err := r.db.NamedExecContext(ctx, query, profile); err != nil {
		return fmt.Errorf("failed to create profile: %w", translateError(err))
	}

	return nil
}

func (r *ProfileRepositoryImpl) getOne(ctx context.Context, c filter.Conditions) (*models.Profile, error) {
	where, args := c.Where()
	query := r.db.Rebind(profileSelect + where)

	var profile models.Profile
	if err := r.db.GetContext(ctx, &profile, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", translateError(err))
	}

	return &profile, nil
}

func (r *ProfileRepositoryImpl) GetByID(ctx context.Context, profileID string) (*models.Profile, error) {
	profile, err := r.getOne(ctx, filter.Conditions{}.And("p.profile_id = ?", profileID))
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", profileID, err)
	}
	return profile, nil
}

func (r *ProfileRepositoryImpl) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	profile, err := r.getOne(ctx, filter.Conditions{}.And("p.user_id = ?", userID))
	if err != nil {
		return nil, fmt.Errorf("profile of user %s: %w", userID, err)
	}
	return profile, nil
}

func (r *ProfileRepositoryImpl) List(ctx context.Context, f filter.ProfileFilter) ([]models.Profile, error) {
	where, args := f.Conditions().Where()
	query := r.db.Rebind(profileSelect + where + " ORDER BY p.created_at")

	profiles := []models.Profile{}
	if err := r.db.SelectContext(ctx, &profiles, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	return profiles, nil
}

// Update never touches user_id: the owner binding is fixed at creation.
func (r *ProfileRepositoryImpl) Update(ctx context.Context, profile *models.Profile) error {
	query := `
		UPDATE profiles SET
			bio = :bio,
			country = :country,
			city = :city,
			image_url = :image_url
		WHERE profile_id = :profile_id
	`

	result, err := r.db.NamedExecContext(ctx, query, profile)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", translateError(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("profile %s: %w", profile.ProfileID, ErrNotFound)
	}

	return nil
}

// Delete relies on ON DELETE CASCADE to drop the profile's posts and follow edges.
func (r *ProfileRepositoryImpl) Delete(ctx context.Context, profileID string) error {
	query := `DELETE FROM profiles WHERE profile_id = $1`

	result, err := r.db.ExecContext(ctx, query, profileID)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", translateError(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("profile %s: %w", profileID, ErrNotFound)
	}

	return nil
}
