package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/iliyamo/cinema-records/internal/model"
	"github.com/iliyamo/cinema-records/internal/repository"
)

// UsersService owns the users collection and answers the is_admin
// lookups every other service's guard depends on.
type UsersService struct {
	repo     *repository.UserRepo
	guard    *AdminGuard
	bookings BookingsClient
}

func NewUsersService(repo *repository.UserRepo, guard *AdminGuard, bookings BookingsClient) *UsersService {
	return &UsersService{repo: repo, guard: guard, bookings: bookings}
}

// LocalAdminLookup answers is_admin from the users collection itself so
// the users service does not call itself over the network.
type LocalAdminLookup struct {
	Repo *repository.UserRepo
}

func (l LocalAdminLookup) IsAdmin(_ context.Context, userID string) (bool, error) {
	u, err := l.Repo.GetByID(userID)
	if err != nil {
		return false, err
	}
	return u.IsAdmin, nil
}

// IsAdminLookup is the unguarded internal lookup.
func (s *UsersService) IsAdminLookup(id string) (model.AdminStatus, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return model.AdminStatus{}, err
	}
	return model.AdminStatus{ID: u.ID, IsAdmin: u.IsAdmin}, nil
}

// UserByID is the unguarded internal lookup used by the bookings
// detail view.
func (s *UsersService) UserByID(id string) (model.User, error) {
	return s.repo.GetByID(id)
}

func (s *UsersService) List(ctx context.Context, caller string) ([]model.User, error) {
	if err := s.guard.RequireAdmin(ctx, caller); err != nil {
		return nil, err
	}
	return s.repo.List(), nil
}

func (s *UsersService) Get(ctx context.Context, caller, id string) (model.User, error) {
	if err := s.guard.RequireAdmin(ctx, caller); err != nil {
		return model.User{}, err
	}
	return s.repo.GetByID(id)
}

func (s *UsersService) GetByName(ctx context.Context, caller, name string) (model.User, error) {
	if err := s.guard.RequireAdmin(ctx, caller); err != nil {
		return model.User{}, err
	}
	if strings.TrimSpace(name) == "" {
		return model.User{}, fmt.Errorf("%w: name is required", ErrBadRequest)
	}
	return s.repo.GetByName(name)
}

// Create adds u.  The id is mandatory and must be unused.
func (s *UsersService) Create(ctx context.Context, caller string, u model.User) (model.User, error) {
	if err := s.guard.RequireAdmin(ctx, caller); err != nil {
		return model.User{}, err
	}
	if strings.TrimSpace(u.ID) == "" {
		return model.User{}, fmt.Errorf("%w: id is required", ErrBadRequest)
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return model.User{}, err
	}
	return u, nil
}

func (s *UsersService) UpdateName(ctx context.Context, caller, id, name string) (model.User, error) {
	if err := s.guard.RequireAdmin(ctx, caller); err != nil {
		return model.User{}, err
	}
	if strings.TrimSpace(name) == "" {
		return model.User{}, fmt.Errorf("%w: name is required", ErrBadRequest)
	}
	return s.repo.UpdateName(ctx, id, name)
}

func (s *UsersService) Delete(ctx context.Context, caller, id string) (model.User, error) {
	if err := s.guard.RequireAdmin(ctx, caller); err != nil {
		return model.User{}, err
	}
	return s.repo.Delete(ctx, id)
}

// UsersWhoBooked returns the names of the users holding a booking for
// movieID on date, in booking order.  A booking that references a user
// missing from the local collection aborts the call with ErrIntegrity.
func (s *UsersService) UsersWhoBooked(ctx context.Context, caller, date, movieID string) ([]string, error) {
	if err := s.guard.RequireAdmin(ctx, caller); err != nil {
		return nil, err
	}
	if date == "" || movieID == "" {
		return nil, fmt.Errorf("%w: date and movie are required", ErrBadRequest)
	}
	bookings, err := s.bookings.UserBookings(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	var ids []string
	for _, b := range bookings {
		if b.Has(date, movieID) {
			ids = append(ids, b.UserID)
		}
	}
	names, err := s.repo.Names(ids)
	if err != nil {
		return nil, err
	}
	return names, nil
}
