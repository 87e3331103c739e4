package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"socialnetwork/internal/access"
	"socialnetwork/internal/apperror"
	"socialnetwork/internal/filter"
	"socialnetwork/internal/models"
	"socialnetwork/internal/monitoring"
	"socialnetwork/internal/repository"
	"socialnetwork/internal/storage"
)

const (
	msgProfileNotFound     = "Profile not found"
	msgProfileExists       = "You already have a profile"
	msgProfileWriteDenied  = "You do not have permission to modify this profile"
	msgProfileDeleteDenied = "You do not have permission to delete this profile"
)

// ProfileChanges holds the editable profile fields; nil leaves a field as is.
type ProfileChanges struct {
	Bio     *string
	Country *string
	City    *string
}

func (c ProfileChanges) apply(p *models.Profile) {
	if c.Bio != nil {
		p.Bio = *c.Bio
	}
	if c.Country != nil {
		p.Country = *c.Country
	}
	if c.City != nil {
		p.City = *c.City
	}
}

type ProfileService interface {
	Create(ctx context.Context, caller models.Caller, changes ProfileChanges) (*models.Profile, error)
	List(ctx context.Context, caller models.Caller, f filter.ProfileFilter) ([]models.Profile, error)
	Get(ctx context.Context, caller models.Caller, profileID string) (*models.Profile, error)
	Me(ctx context.Context, caller models.Caller) (*models.Profile, error)
	Update(ctx context.Context, caller models.Caller, profileID string, changes ProfileChanges) (*models.Profile, error)
	UpdateMe(ctx context.Context, caller models.Caller, changes ProfileChanges) (*models.Profile, error)
	Delete(ctx context.Context, caller models.Caller, profileID string) error
	SetImage(ctx context.Context, caller models.Caller, upload storage.Upload) (*models.Profile, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
	postRepo    repository.PostRepository
	storage     storage.Storage
}

func NewProfileService(profileRepo repository.ProfileRepository, postRepo repository.PostRepository, storage storage.Storage) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		postRepo:    postRepo,
		storage:     storage,
	}
}

func (s *profileService) Create(ctx context.Context, caller models.Caller, changes ProfileChanges) (*models.Profile, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}

	if _, err := s.profileRepo.GetByUserID(ctx, caller.UserID); err == nil {
		return nil, apperror.Validation(msgProfileExists)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.Internal("failed to check existing profile", err)
	}

	profile := &models.Profile{UserID: caller.UserID}
	changes.apply(profile)

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		// the unique user_id constraint catches a concurrent create
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Validation(msgProfileExists)
		}
		// the owning user was deleted after the token was checked
		if errors.Is(err, repository.ErrReference) {
			return nil, apperror.Unauthenticated("User not found")
		}
		return nil, apperror.Internal("failed to create profile", err)
	}

	monitoring.ProfilesCreated.Inc()

	created, err := s.profileRepo.GetByID(ctx, profile.ProfileID)
	if err != nil {
		return nil, lookupError(err, msgProfileNotFound)
	}

	return created, nil
}

func (s *profileService) List(ctx context.Context, caller models.Caller, f filter.ProfileFilter) ([]models.Profile, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}

	profiles, err := s.profileRepo.List(ctx, f)
	if err != nil {
		return nil, apperror.Internal("failed to list profiles", err)
	}

	return profiles, nil
}

func (s *profileService) Get(ctx context.Context, caller models.Caller, profileID string) (*models.Profile, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, lookupError(err, msgProfileNotFound)
	}

	return profile, nil
}

// Me never creates a profile on demand: a caller without one gets NotFound.
func (s *profileService) Me(ctx context.Context, caller models.Caller) (*models.Profile, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, lookupError(err, msgProfileNotFound)
	}

	return profile, nil
}

func (s *profileService) Update(ctx context.Context, caller models.Caller, profileID string, changes ProfileChanges) (*models.Profile, error) {
	profile, err := s.Get(ctx, caller, profileID)
	if err != nil {
		return nil, err
	}

	return s.update(ctx, caller, profile, changes)
}

func (s *profileService) UpdateMe(ctx context.Context, caller models.Caller, changes ProfileChanges) (*models.Profile, error) {
	profile, err := s.Me(ctx, caller)
	if err != nil {
		return nil, err
	}

	return s.update(ctx, caller, profile, changes)
}

func (s *profileService) update(ctx context.Context, caller models.Caller, profile *models.Profile, changes ProfileChanges) (*models.Profile, error) {
	if !access.Allow(caller, access.Profile(profile), access.Write) {
		return nil, apperror.Forbidden(msgProfileWriteDenied)
	}

	changes.apply(profile)

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, lookupError(err, msgProfileNotFound)
	}

	return profile, nil
}

// Delete removes the profile row, which cascades to its posts and follow edges,
// then drops the profile's stored files.
func (s *profileService) Delete(ctx context.Context, caller models.Caller, profileID string) error {
	profile, err := s.Get(ctx, caller, profileID)
	if err != nil {
		return err
	}

	if !access.Allow(caller, access.Profile(profile), access.Delete) {
		return apperror.Forbidden(msgProfileDeleteDenied)
	}

	mediaURLs, err := s.postRepo.MediaURLsByProfile(ctx, profile.ProfileID)
	if err != nil {
		return apperror.Internal("failed to collect post media", err)
	}
	if profile.ImageURL != nil {
		mediaURLs = append(mediaURLs, *profile.ImageURL)
	}

	if err := s.profileRepo.Delete(ctx, profile.ProfileID); err != nil {
		return lookupError(err, msgProfileNotFound)
	}

	for _, url := range mediaURLs {
		s.removeObject(ctx, url)
	}

	return nil
}

func (s *profileService) SetImage(ctx context.Context, caller models.Caller, upload storage.Upload) (*models.Profile, error) {
	profile, err := s.Me(ctx, caller)
	if err != nil {
		return nil, err
	}

	if s.storage == nil {
		return nil, apperror.Internal("failed to store image", errNoStorage)
	}

	object, err := s.storage.UploadProfileImage(ctx, profile.FullName(), upload)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedType) {
			return nil, apperror.Validation("Upload a valid image: jpeg, png, gif or webp")
		}
		return nil, apperror.Internal("failed to store image", err)
	}

	previous := profile.ImageURL
	profile.ImageURL = &object.URL

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		s.removeObject(ctx, object.URL)
		return nil, lookupError(err, msgProfileNotFound)
	}

	if previous != nil {
		s.removeObject(ctx, *previous)
	}

	return profile, nil
}

// removeObject is best effort: a leftover file never fails the request.
func (s *profileService) removeObject(ctx context.Context, url string) {
	if s.storage == nil {
		return
	}
	if err := s.storage.DeleteByURL(ctx, url); err != nil {
		logrus.WithError(err).WithField("url", url).Warn("Failed to delete stored file")
	}
}
