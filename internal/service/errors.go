package service

import (
	"errors"

	"socialnetwork/internal/apperror"
	"socialnetwork/internal/models"
	"socialnetwork/internal/repository"
)

var errNoStorage = errors.New("media storage is not configured")

func requireCaller(caller models.Caller) error {
	if caller.UserID == "" {
		return apperror.Unauthenticated("Authentication credentials were not provided")
	}
	return nil
}

// lookupError turns a repository miss into a NotFound with message and wraps anything else.
func lookupError(err error, message string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NotFound(message)
	}
	return apperror.Internal("failed to load record", err)
}
