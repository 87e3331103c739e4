package service

import (
	"context"
	"fmt"

	"socialnetwork/internal/repository"
)

type TablesService interface {
	CountTables(ctx context.Context) (int, error)
	// Healthy reports an error unless every application table exists.
	Healthy(ctx context.Context) error
}

type tablesService struct {
	tablesRepo repository.TablesRepository
}

func NewTablesService(tablesRepo repository.TablesRepository) TablesService {
	return &tablesService{tablesRepo: tablesRepo}
}

func (s *tablesService) CountTables(ctx context.Context) (int, error) {
	return s.tablesRepo.CountTablesDB(ctx)
}

func (s *tablesService) Healthy(ctx context.Context) error {
	count, err := s.tablesRepo.CountTablesDB(ctx)
	if err != nil {
		return err
	}

	if want := len(repository.ApplicationTables); count != want {
		return fmt.Errorf("found %d of %d application tables, run migrations", count, want)
	}

	return nil
}
