package service

import (
	"context"
	"errors"
	"fmt"

	"socialnetwork/internal/apperror"
	"socialnetwork/internal/models"
	"socialnetwork/internal/monitoring"
	"socialnetwork/internal/repository"
)

const msgCreateProfileFirst = "You have to create a profile first"

type FollowService interface {
	// Follow returns the confirmation message shown to the caller.
	Follow(ctx context.Context, caller models.Caller, targetID string) (string, error)
	Unfollow(ctx context.Context, caller models.Caller, targetID string) error
	Followers(ctx context.Context, caller models.Caller, profileID string) ([]models.FollowEdge, error)
	Following(ctx context.Context, caller models.Caller, profileID string) ([]models.FollowEdge, error)
}

type followService struct {
	profileRepo repository.ProfileRepository
	followRepo  repository.FollowRepository
}

func NewFollowService(profileRepo repository.ProfileRepository, followRepo repository.FollowRepository) FollowService {
	return &followService{
		profileRepo: profileRepo,
		followRepo:  followRepo,
	}
}

// displayName is used in follow messages; profiles whose owner has no names
// read as "this profile".
func displayName(p *models.Profile) string {
	if name := p.FullName(); name != "" {
		return name
	}
	return "this profile"
}

// parties resolves the target first, then the caller's own profile.
func (s *followService) parties(ctx context.Context, caller models.Caller, targetID string) (*models.Profile, *models.Profile, error) {
	if err := requireCaller(caller); err != nil {
		return nil, nil, err
	}

	target, err := s.profileRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, nil, lookupError(err, msgProfileNotFound)
	}

	own, err := s.profileRepo.GetByUserID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, apperror.Validation(msgCreateProfileFirst)
		}
		return nil, nil, apperror.Internal("failed to load caller profile", err)
	}

	return own, target, nil
}

func (s *followService) Follow(ctx context.Context, caller models.Caller, targetID string) (string, error) {
	own, target, err := s.parties(ctx, caller, targetID)
	if err != nil {
		return "", err
	}

	if own.ProfileID == target.ProfileID {
		return "", apperror.Validation("You can't follow yourself")
	}

	if err := s.followRepo.Create(ctx, own.ProfileID, target.ProfileID); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return "", apperror.Validation(fmt.Sprintf("You already follow %s", displayName(target)))
		case errors.Is(err, repository.ErrReference):
			// target was deleted after it was resolved
			return "", apperror.NotFound(msgProfileNotFound)
		case errors.Is(err, repository.ErrConstraint):
			return "", apperror.Validation("You can't follow yourself")
		default:
			return "", apperror.Internal("failed to follow profile", err)
		}
	}

	monitoring.FollowActions.WithLabelValues("follow").Inc()

	return fmt.Sprintf("You following %s", displayName(target)), nil
}

func (s *followService) Unfollow(ctx context.Context, caller models.Caller, targetID string) error {
	own, target, err := s.parties(ctx, caller, targetID)
	if err != nil {
		return err
	}

	if err := s.followRepo.Delete(ctx, own.ProfileID, target.ProfileID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.Validation(fmt.Sprintf("You don't follow %s", displayName(target)))
		}
		return apperror.Internal("failed to unfollow profile", err)
	}

	monitoring.FollowActions.WithLabelValues("unfollow").Inc()

	return nil
}

func (s *followService) Followers(ctx context.Context, caller models.Caller, profileID string) ([]models.FollowEdge, error) {
	return s.edges(ctx, caller, profileID, s.followRepo.Followers)
}

func (s *followService) Following(ctx context.Context, caller models.Caller, profileID string) ([]models.FollowEdge, error) {
	return s.edges(ctx, caller, profileID, s.followRepo.Following)
}

func (s *followService) edges(
	ctx context.Context,
	caller models.Caller,
	profileID string,
	list func(context.Context, string) ([]models.FollowEdge, error),
) ([]models.FollowEdge, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}

	if _, err := s.profileRepo.GetByID(ctx, profileID); err != nil {
		return nil, lookupError(err, msgProfileNotFound)
	}

	edges, err := list(ctx, profileID)
	if err != nil {
		return nil, apperror.Internal("failed to list follows", err)
	}

	return edges, nil
}
