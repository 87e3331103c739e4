package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"socialnetwork/internal/apperror"
	"socialnetwork/internal/mocks"
	"socialnetwork/internal/models"
	"socialnetwork/internal/repository"
)

func targetProfile() *models.Profile {
	return &models.Profile{ProfileID: "profile-2", UserID: stranger.UserID, FirstName: "Bob", LastName: "Stone"}
}

func TestFollowService_Follow(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		targetID  string
		setup     func(profiles *mocks.ProfileRepository, follows *mocks.FollowRepository)
		wantKind  apperror.Kind
		wantMsg   string
		wantError bool
	}{
		{
			name:     "follows another profile",
			targetID: "profile-2",
			setup: func(profiles *mocks.ProfileRepository, follows *mocks.FollowRepository) {
				profiles.On("GetByID", ctx, "profile-2").Return(targetProfile(), nil)
				profiles.On("GetByUserID", ctx, owner.UserID).Return(ownerProfile(), nil)
				follows.On("Create", ctx, "profile-1", "profile-2").Return(nil)
			},
			wantMsg: "You following Bob Stone",
		},
		{
			name:     "unknown target",
			targetID: "missing",
			setup: func(profiles *mocks.ProfileRepository, follows *mocks.FollowRepository) {
				profiles.On("GetByID", ctx, "missing").Return(nil, notFound("profile"))
			},
			wantError: true,
			wantKind:  apperror.KindNotFound,
			wantMsg:   "Profile not found",
		},
		{
			name:     "caller without a profile",
			targetID: "profile-2",
			setup: func(profiles *mocks.ProfileRepository, follows *mocks.FollowRepository) {
				profiles.On("GetByID", ctx, "profile-2").Return(targetProfile(), nil)
				profiles.On("GetByUserID", ctx, owner.UserID).Return(nil, notFound("profile"))
			},
			wantError: true,
			wantKind:  apperror.KindValidation,
			wantMsg:   "You have to create a profile first",
		},
		{
			name:     "self follow",
			targetID: "profile-1",
			setup: func(profiles *mocks.ProfileRepository, follows *mocks.FollowRepository) {
				profiles.On("GetByID", ctx, "profile-1").Return(ownerProfile(), nil)
				profiles.On("GetByUserID", ctx, owner.UserID).Return(ownerProfile(), nil)
			},
			wantError: true,
			wantKind:  apperror.KindValidation,
			wantMsg:   "You can't follow yourself",
		},
		{
			name:     "already following",
			targetID: "profile-2",
			setup: func(profiles *mocks.ProfileRepository, follows *mocks.FollowRepository) {
				profiles.On("GetByID", ctx, "profile-2").Return(targetProfile(), nil)
				profiles.On("GetByUserID", ctx, owner.UserID).Return(ownerProfile(), nil)
				follows.On("Create", ctx, "profile-1", "profile-2").
					Return(fmt.Errorf("follow: %w", repository.ErrDuplicate))
			},
			wantError: true,
			wantKind:  apperror.KindValidation,
			wantMsg:   "You already follow Bob Stone",
		},
		{
			name:     "target deleted meanwhile",
			targetID: "profile-2",
			setup: func(profiles *mocks.ProfileRepository, follows *mocks.FollowRepository) {
				profiles.On("GetByID", ctx, "profile-2").Return(targetProfile(), nil)
				profiles.On("GetByUserID", ctx, owner.UserID).Return(ownerProfile(), nil)
				follows.On("Create", ctx, "profile-1", "profile-2").
					Return(fmt.Errorf("follow: %w", repository.ErrReference))
			},
			wantError: true,
			wantKind:  apperror.KindNotFound,
		},
		{
			name:     "nameless target",
			targetID: "profile-3",
			setup: func(profiles *mocks.ProfileRepository, follows *mocks.FollowRepository) {
				profiles.On("GetByID", ctx, "profile-3").Return(&models.Profile{ProfileID: "profile-3", UserID: "user-3"}, nil)
				profiles.On("GetByUserID", ctx, owner.UserID).Return(ownerProfile(), nil)
				follows.On("Create", ctx, "profile-1", "profile-3").Return(nil)
			},
			wantMsg: "You following this profile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profiles := &mocks.ProfileRepository{}
			follows := &mocks.FollowRepository{}
			tt.setup(profiles, follows)

			svc := NewFollowService(profiles, follows)
			msg, err := svc.Follow(ctx, owner, tt.targetID)

			if tt.wantError {
				assertAppError(t, err, tt.wantKind, tt.wantMsg)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantMsg, msg)
			follows.AssertExpectations(t)
		})
	}
}

func TestFollowService_Unfollow(t *testing.T) {
	ctx := context.Background()

	setup := func() (*mocks.ProfileRepository, *mocks.FollowRepository, FollowService) {
		profiles := &mocks.ProfileRepository{}
		follows := &mocks.FollowRepository{}
		profiles.On("GetByID", ctx, "profile-2").Return(targetProfile(), nil)
		profiles.On("GetByUserID", ctx, owner.UserID).Return(ownerProfile(), nil)
		return profiles, follows, NewFollowService(profiles, follows)
	}

	t.Run("removes the edge", func(t *testing.T) {
		_, follows, svc := setup()
		follows.On("Delete", ctx, "profile-1", "profile-2").Return(nil)

		require.NoError(t, svc.Unfollow(ctx, owner, "profile-2"))
		follows.AssertExpectations(t)
	})

	t.Run("rejection is stable across retries", func(t *testing.T) {
		_, follows, svc := setup()
		follows.On("Delete", ctx, "profile-1", "profile-2").
			Return(fmt.Errorf("follow: %w", repository.ErrNotFound))

		for i := 0; i < 3; i++ {
			err := svc.Unfollow(ctx, owner, "profile-2")
			assertAppError(t, err, apperror.KindValidation, "You don't follow Bob Stone")
		}
	})

	t.Run("caller without a profile", func(t *testing.T) {
		profiles := &mocks.ProfileRepository{}
		follows := &mocks.FollowRepository{}
		profiles.On("GetByID", ctx, "profile-2").Return(targetProfile(), nil)
		profiles.On("GetByUserID", ctx, admin.UserID).Return(nil, notFound("profile"))

		err := NewFollowService(profiles, follows).Unfollow(ctx, admin, "profile-2")

		assertAppError(t, err, apperror.KindValidation, "You have to create a profile first")
		follows.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestFollowService_Edges(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	profiles := &mocks.ProfileRepository{}
	follows := &mocks.FollowRepository{}
	svc := NewFollowService(profiles, follows)

	profiles.On("GetByID", ctx, "profile-2").Return(targetProfile(), nil)
	profiles.On("GetByID", ctx, "missing").Return(nil, notFound("profile"))
	follows.On("Followers", ctx, "profile-2").Return([]models.FollowEdge{
		{ProfileID: "profile-1", FirstName: "Ann", LastName: "Lee", CreatedAt: now},
	}, nil)
	follows.On("Following", ctx, "profile-2").Return([]models.FollowEdge{}, nil)

	followers, err := svc.Followers(ctx, owner, "profile-2")
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, "Ann Lee", followers[0].FullName())

	following, err := svc.Following(ctx, owner, "profile-2")
	require.NoError(t, err)
	assert.Empty(t, following)

	_, err = svc.Followers(ctx, owner, "missing")
	assertAppError(t, err, apperror.KindNotFound, "Profile not found")
}
