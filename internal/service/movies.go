package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/iliyamo/cinema-records/internal/model"
	"github.com/iliyamo/cinema-records/internal/repository"
)

// MoviesService owns the movies collection.  Reads are open to every
// known user; mutations need an admin.
type MoviesService struct {
	repo  *repository.MovieRepo
	guard *AdminGuard
}

func NewMoviesService(repo *repository.MovieRepo, guard *AdminGuard) *MoviesService {
	return &MoviesService{repo: repo, guard: guard}
}

func (s *MoviesService) List(ctx context.Context, caller string) ([]model.Movie, error) {
	if err := s.guard.Verify(ctx, caller); err != nil {
		return nil, err
	}
	return s.repo.List(), nil
}

func (s *MoviesService) MovieByID(ctx context.Context, caller, id string) (model.Movie, error) {
	if err := s.guard.Verify(ctx, caller); err != nil {
		return model.Movie{}, err
	}
	return s.repo.GetByID(id)
}

func (s *MoviesService) MovieByTitle(ctx context.Context, caller, title string) (model.Movie, error) {
	if err := s.guard.Verify(ctx, caller); err != nil {
		return model.Movie{}, err
	}
	if strings.TrimSpace(title) == "" {
		return model.Movie{}, fmt.Errorf("%w: title is required", ErrBadRequest)
	}
	return s.repo.GetByTitle(title)
}

func (s *MoviesService) Create(ctx context.Context, caller string, m model.Movie) (model.Movie, error) {
	if err := s.guard.RequireAdmin(ctx, caller); err != nil {
		return model.Movie{}, err
	}
	if strings.TrimSpace(m.ID) == "" || strings.TrimSpace(m.Title) == "" {
		return model.Movie{}, fmt.Errorf("%w: id and title are required", ErrBadRequest)
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return model.Movie{}, err
	}
	return m, nil
}

func (s *MoviesService) UpdateRating(ctx context.Context, caller, id string, rating float64) (model.Movie, error) {
	if err := s.guard.RequireAdmin(ctx, caller); err != nil {
		return model.Movie{}, err
	}
	return s.repo.UpdateRating(ctx, id, rating)
}

func (s *MoviesService) Delete(ctx context.Context, caller, id string) (model.Movie, error) {
	if err := s.guard.RequireAdmin(ctx, caller); err != nil {
		return model.Movie{}, err
	}
	return s.repo.Delete(ctx, id)
}
