package service

import (
	"socialnetwork/internal/config"
	"socialnetwork/internal/repository"
	"socialnetwork/internal/storage"
)

type Service struct {
	Auth    AuthService
	Profile ProfileService
	Follow  FollowService
	Post    PostService
	Tables  TablesService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		Auth:    NewAuthService(rep.User, cfg),
		Profile: NewProfileService(rep.Profile, rep.Post, storage),
		Follow:  NewFollowService(rep.Profile, rep.Follow),
		Post:    NewPostService(rep.Post, rep.Profile, storage),
		Tables:  NewTablesService(rep.Tables),
	}
}
