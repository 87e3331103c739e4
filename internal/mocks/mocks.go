// Package mocks provides testify mocks of the repository and storage interfaces.
// Only _test.go files import it.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"socialnetwork/internal/filter"
	"socialnetwork/internal/models"
	"socialnetwork/internal/repository"
	"socialnetwork/internal/storage"
)

var (
	_ repository.UserRepository    = (*UserRepository)(nil)
	_ repository.ProfileRepository = (*ProfileRepository)(nil)
	_ repository.FollowRepository  = (*FollowRepository)(nil)
	_ repository.PostRepository    = (*PostRepository)(nil)
	_ repository.TablesRepository  = (*TablesRepository)(nil)
	_ storage.Storage              = (*Storage)(nil)
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	args := m.Called(ctx, user, password)
	return args.Error(0)
}

func (m *UserRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepository) UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshToken, expiryTime)
	return args.Error(0)
}

func (m *UserRepository) GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type ProfileRepository struct {
	mock.Mock
}

func (m *ProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *ProfileRepository) GetByID(ctx context.Context, profileID string) (*models.Profile, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *ProfileRepository) List(ctx context.Context, f filter.ProfileFilter) ([]models.Profile, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Profile), args.Error(1)
}

func (m *ProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *ProfileRepository) Delete(ctx context.Context, profileID string) error {
	args := m.Called(ctx, profileID)
	return args.Error(0)
}

type FollowRepository struct {
	mock.Mock
}

func (m *FollowRepository) Create(ctx context.Context, followerID, followingID string) error {
	args := m.Called(ctx, followerID, followingID)
	return args.Error(0)
}

func (m *FollowRepository) Delete(ctx context.Context, followerID, followingID string) error {
	args := m.Called(ctx, followerID, followingID)
	return args.Error(0)
}

func (m *FollowRepository) Followers(ctx context.Context, profileID string) ([]models.FollowEdge, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FollowEdge), args.Error(1)
}

func (m *FollowRepository) Following(ctx context.Context, profileID string) ([]models.FollowEdge, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FollowEdge), args.Error(1)
}

type PostRepository struct {
	mock.Mock
}

func (m *PostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *PostRepository) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *PostRepository) List(ctx context.Context, f filter.PostFilter) ([]models.Post, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *PostRepository) ListByProfile(ctx context.Context, profileID string, f filter.PostFilter) ([]models.Post, error) {
	args := m.Called(ctx, profileID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *PostRepository) Feed(ctx context.Context, followerID string, f filter.PostFilter) ([]models.Post, error) {
	args := m.Called(ctx, followerID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *PostRepository) MediaURLsByProfile(ctx context.Context, profileID string) ([]string, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *PostRepository) Update(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *PostRepository) Delete(ctx context.Context, postID string) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

type TablesRepository struct {
	mock.Mock
}

func (m *TablesRepository) CountTablesDB(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type Storage struct {
	mock.Mock
}

func (m *Storage) UploadProfileImage(ctx context.Context, fullName string, upload storage.Upload) (*storage.Object, error) {
	args := m.Called(ctx, fullName, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Object), args.Error(1)
}

func (m *Storage) UploadPostMedia(ctx context.Context, title string, upload storage.Upload) (*storage.Object, error) {
	args := m.Called(ctx, title, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Object), args.Error(1)
}

func (m *Storage) DeleteByURL(ctx context.Context, objectURL string) error {
	args := m.Called(ctx, objectURL)
	return args.Error(0)
}

// Repository bundles fresh mocks behind a *repository.Repository.
type Repository struct {
	User    *UserRepository
	Profile *ProfileRepository
	Follow  *FollowRepository
	Post    *PostRepository
	Tables  *TablesRepository
}

func NewRepository() *Repository {
	return &Repository{
		User:    &UserRepository{},
		Profile: &ProfileRepository{},
		Follow:  &FollowRepository{},
		Post:    &PostRepository{},
		Tables:  &TablesRepository{},
	}
}

func (r *Repository) Repository() *repository.Repository {
	return &repository.Repository{
		User:    r.User,
		Profile: r.Profile,
		Follow:  r.Follow,
		Post:    r.Post,
		Tables:  r.Tables,
	}
}
