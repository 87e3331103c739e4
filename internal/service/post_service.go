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
	msgPostNotFound     = "Post not found"
	msgPostWriteDenied  = "You do not have permission to modify this post"
	msgPostDeleteDenied = "You do not have permission to delete this post"
)

// PostChanges holds the editable post fields; nil leaves a field as is.
type PostChanges struct {
	Title   *string
	Content *string
}

type PostService interface {
	Create(ctx context.Context, caller models.Caller, title, content string) (*models.Post, error)
	Get(ctx context.Context, caller models.Caller, postID string) (*models.Post, error)
	List(ctx context.Context, caller models.Caller, f filter.PostFilter) ([]models.Post, error)
	Mine(ctx context.Context, caller models.Caller, f filter.PostFilter) ([]models.Post, error)
	Feed(ctx context.Context, caller models.Caller, f filter.PostFilter) ([]models.Post, error)
	Update(ctx context.Context, caller models.Caller, postID string, changes PostChanges) (*models.Post, error)
	Delete(ctx context.Context, caller models.Caller, postID string) error
	AttachMedia(ctx context.Context, caller models.Caller, postID string, upload storage.Upload) (*models.Post, error)
}

type postService struct {
	postRepo    repository.PostRepository
	profileRepo repository.ProfileRepository
	storage     storage.Storage
}

func NewPostService(postRepo repository.PostRepository, profileRepo repository.ProfileRepository, storage storage.Storage) PostService {
	return &postService{
		postRepo:    postRepo,
		profileRepo: profileRepo,
		storage:     storage,
	}
}

func (s *postService) ownProfile(ctx context.Context, caller models.Caller) (*models.Profile, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, lookupError(err, msgProfileNotFound)
	}

	return profile, nil
}

// Create always binds the post to the caller's own profile.
func (s *postService) Create(ctx context.Context, caller models.Caller, title, content string) (*models.Post, error) {
	profile, err := s.ownProfile(ctx, caller)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		ProfileID: profile.ProfileID,
		Title:     title,
		Content:   content,
		UserID:    profile.UserID,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		if errors.Is(err, repository.ErrReference) {
			return nil, apperror.NotFound(msgProfileNotFound)
		}
		return nil, apperror.Internal("failed to create post", err)
	}

	monitoring.PostsCreated.Inc()

	return post, nil
}

func (s *postService) Get(ctx context.Context, caller models.Caller, postID string) (*models.Post, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, lookupError(err, msgPostNotFound)
	}

	return post, nil
}

func (s *postService) List(ctx context.Context, caller models.Caller, f filter.PostFilter) ([]models.Post, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}

	posts, err := s.postRepo.List(ctx, f)
	if err != nil {
		return nil, apperror.Internal("failed to list posts", err)
	}

	return posts, nil
}

func (s *postService) Mine(ctx context.Context, caller models.Caller, f filter.PostFilter) ([]models.Post, error) {
	profile, err := s.ownProfile(ctx, caller)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ListByProfile(ctx, profile.ProfileID, f)
	if err != nil {
		return nil, apperror.Internal("failed to list posts", err)
	}

	return posts, nil
}

// Feed returns posts of the profiles the caller follows. Following nobody
// yields an empty feed.
func (s *postService) Feed(ctx context.Context, caller models.Caller, f filter.PostFilter) ([]models.Post, error) {
	profile, err := s.ownProfile(ctx, caller)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.Feed(ctx, profile.ProfileID, f)
	if err != nil {
		return nil, apperror.Internal("failed to build feed", err)
	}

	return posts, nil
}

func (s *postService) Update(ctx context.Context, caller models.Caller, postID string, changes PostChanges) (*models.Post, error) {
	post, err := s.Get(ctx, caller, postID)
	if err != nil {
		return nil, err
	}

	if !access.Allow(caller, access.Post(post), access.Write) {
		return nil, apperror.Forbidden(msgPostWriteDenied)
	}

	if changes.Title != nil {
		post.Title = *changes.Title
	}
	if changes.Content != nil {
		post.Content = *changes.Content
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, lookupError(err, msgPostNotFound)
	}

	return post, nil
}

func (s *postService) Delete(ctx context.Context, caller models.Caller, postID string) error {
	post, err := s.Get(ctx, caller, postID)
	if err != nil {
		return err
	}

	if !access.Allow(caller, access.Post(post), access.Delete) {
		return apperror.Forbidden(msgPostDeleteDenied)
	}

	if err := s.postRepo.Delete(ctx, post.PostID); err != nil {
		return lookupError(err, msgPostNotFound)
	}

	if post.MediaURL != nil {
		s.removeObject(ctx, *post.MediaURL)
	}

	return nil
}

func (s *postService) AttachMedia(ctx context.Context, caller models.Caller, postID string, upload storage.Upload) (*models.Post, error) {
	post, err := s.Get(ctx, caller, postID)
	if err != nil {
		return nil, err
	}

	if !access.Allow(caller, access.Post(post), access.Write) {
		return nil, apperror.Forbidden(msgPostWriteDenied)
	}

	if s.storage == nil {
		return nil, apperror.Internal("failed to store media", errNoStorage)
	}

	object, err := s.storage.UploadPostMedia(ctx, post.Title, upload)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedType) {
			return nil, apperror.Validation("Upload a valid image or video: jpeg, png, gif, webp, mp4 or webm")
		}
		return nil, apperror.Internal("failed to store media", err)
	}

	previous := post.MediaURL
	post.MediaURL = &object.URL

	if err := s.postRepo.Update(ctx, post); err != nil {
		s.removeObject(ctx, object.URL)
		return nil, lookupError(err, msgPostNotFound)
	}

	if previous != nil {
		s.removeObject(ctx, *previous)
	}

	return post, nil
}

func (s *postService) removeObject(ctx context.Context, url string) {
	if s.storage == nil {
		return
	}
	if err := s.storage.DeleteByURL(ctx, url); err != nil {
		logrus.WithError(err).WithField("url", url).Warn("Failed to delete stored file")
	}
}
