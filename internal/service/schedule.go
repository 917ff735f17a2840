package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/iliyamo/cinema-records/internal/model"
	"github.com/iliyamo/cinema-records/internal/repository"
)

// Outcomes of AddMovieToDate.
const (
	OutcomeScheduleMovieAdded = "movie_added"
	OutcomeScheduleDateAdded  = "date_created"
)

// ScheduleResult is returned by AddMovieToDate.
type ScheduleResult struct {
	Outcome string              `json:"outcome"`
	Entry   model.ScheduleEntry `json:"schedule"`
}

// ScheduleService owns the date → movies schedule.
type ScheduleService struct {
	repo   *repository.ScheduleRepo
	guard  *AdminGuard
	movies MovieClient
}

func NewScheduleService(repo *repository.ScheduleRepo, guard *AdminGuard, movies MovieClient) *ScheduleService {
	return &ScheduleService{repo: repo, guard: guard, movies: movies}
}

func (s *ScheduleService) List(ctx context.Context, caller string) ([]model.ScheduleEntry, error) {
	if err := s.guard.Verify(ctx, caller); err != nil {
		return nil, err
	}
	return s.repo.List(), nil
}

func (s *ScheduleService) MoviesOnDate(ctx context.Context, caller, date string) ([]string, error) {
	if err := s.guard.Verify(ctx, caller); err != nil {
		return nil, err
	}
	return s.repo.MoviesOnDate(date)
}

// DateDetails expands every movie scheduled on date.
func (s *ScheduleService) DateDetails(ctx context.Context, caller, date string) (model.DateDetails, error) {
	if err := s.guard.Verify(ctx, caller); err != nil {
		return model.DateDetails{}, err
	}
	ids, err := s.repo.MoviesOnDate(date)
	if err != nil {
		return model.DateDetails{}, err
	}
	return model.DateDetails{Date: date, Movies: expandMovies(ctx, s.movies, caller, ids)}, nil
}

func (s *ScheduleService) DatesForMovie(ctx context.Context, caller, movieID string) (model.MovieDates, error) {
	if err := s.guard.Verify(ctx, caller); err != nil {
		return model.MovieDates{}, err
	}
	if strings.TrimSpace(movieID) == "" {
		return model.MovieDates{}, fmt.Errorf("%w: movie id is required", ErrBadRequest)
	}
	dates, err := s.repo.DatesForMovie(movieID)
	if err != nil {
		return model.MovieDates{}, err
	}
	return model.MovieDates{MovieID: movieID, Dates: dates}, nil
}

func (s *ScheduleService) AddDate(ctx context.Context, caller, date string, movies []string) (model.ScheduleEntry, error) {
	if err := s.guard.RequireAdmin(ctx, caller); err != nil {
		return model.ScheduleEntry{}, err
	}
	if strings.TrimSpace(date) == "" {
		return model.ScheduleEntry{}, fmt.Errorf("%w: date is required", ErrBadRequest)
	}
	return s.repo.AddDate(ctx, date, movies)
}

// AddMovieToDate schedules movieID on date, creating the date if needed.
func (s *ScheduleService) AddMovieToDate(ctx context.Context, caller, date, movieID string) (ScheduleResult, error) {
	if err := s.guard.RequireAdmin(ctx, caller); err != nil {
		return ScheduleResult{}, err
	}
	if strings.TrimSpace(date) == "" || strings.TrimSpace(movieID) == "" {
		return ScheduleResult{}, fmt.Errorf("%w: date and movie id are required", ErrBadRequest)
	}
	entry, created, err := s.repo.AddMovie(ctx, date, movieID)
	if err != nil {
		return ScheduleResult{}, err
	}
	res := ScheduleResult{Outcome: OutcomeScheduleMovieAdded, Entry: entry}
	if created {
		res.Outcome = OutcomeScheduleDateAdded
	}
	return res, nil
}

func (s *ScheduleService) RemoveDate(ctx context.Context, caller, date string) error {
	if err := s.guard.RequireAdmin(ctx, caller); err != nil {
		return err
	}
	return s.repo.RemoveDate(ctx, date)
}

func (s *ScheduleService) RemoveMovieFromDate(ctx context.Context, caller, date, movieID string) error {
	if err := s.guard.RequireAdmin(ctx, caller); err != nil {
		return err
	}
	return s.repo.RemoveMovie(ctx, date, movieID)
}

// RemoveMovieEverywhere returns how many dates lost movieID.
func (s *ScheduleService) RemoveMovieEverywhere(ctx context.Context, caller, movieID string) (int, error) {
	if err := s.guard.RequireAdmin(ctx, caller); err != nil {
		return 0, err
	}
	return s.repo.RemoveMovieEverywhere(ctx, movieID)
}
