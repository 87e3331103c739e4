package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"socialnetwork/internal/filter"
	"socialnetwork/internal/models"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrDuplicate  = errors.New("record already exists")
	ErrReference  = errors.New("referenced record does not exist")
	ErrConstraint = errors.New("constraint violated")
)

// PostgreSQL SQLSTATE codes.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
	pqInvalidText         = "22P02"
)

// translateError maps driver constraint errors onto the package sentinels.
// A malformed UUID key cannot match any row, so it reads as ErrNotFound.
// Anything else is returned unchanged.
func translateError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case pqUniqueViolation:
		return ErrDuplicate
	case pqForeignKeyViolation:
		return ErrReference
	case pqCheckViolation:
		return ErrConstraint
	case pqInvalidText:
		return ErrNotFound
	default:
		return err
	}
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error
	GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error)
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, profileID string) (*models.Profile, error)
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	List(ctx context.Context, f filter.ProfileFilter) ([]models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
	Delete(ctx context.Context, profileID string) error
}

type FollowRepository interface {
	Create(ctx context.Context, followerID, followingID string) error
	Delete(ctx context.Context, followerID, followingID string) error
	Followers(ctx context.Context, profileID string) ([]models.FollowEdge, error)
	Following(ctx context.Context, profileID string) ([]models.FollowEdge, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	List(ctx context.Context, f filter.PostFilter) ([]models.Post, error)
	ListByProfile(ctx context.Context, profileID string, f filter.PostFilter) ([]models.Post, error)
	Feed(ctx context.Context, followerID string, f filter.PostFilter) ([]models.Post, error)
	MediaURLsByProfile(ctx context.Context, profileID string) ([]string, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, postID string) error
}

type TablesRepository interface {
	CountTablesDB(ctx context.Context) (int, error)
}

type Repository struct {
	User    UserRepository
	Profile ProfileRepository
	Follow  FollowRepository
	Post    PostRepository
	Tables  TablesRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:    NewUserRepository(db),
		Profile: NewProfileRepository(db),
		Follow:  NewFollowRepository(db),
		Post:    NewPostRepository(db),
		Tables:  NewTablesRepository(db),
	}
}
