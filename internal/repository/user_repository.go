package repository

import (
	"context"
	"fmt"

	"github.com/iliyamo/cinema-records/internal/database"
	"github.com/iliyamo/cinema-records/internal/model"
)

// UserRepo wraps the users collection.
type UserRepo struct {
	store *database.RecordStore[model.User]
}

func NewUserRepo(store *database.RecordStore[model.User]) *UserRepo {
	return &UserRepo{store: store}
}

// NewUserStore builds the record store backing UserRepo.
func NewUserStore(doc database.Document) *database.RecordStore[model.User] {
	return database.NewRecordStore[model.User]("users", doc, nil)
}

// List returns every user in insertion order.
func (r *UserRepo) List() []model.User {
	return r.store.All()
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(id string) (model.User, error) {
	u, ok := r.store.FindFirst(func(u model.User) bool { return u.ID == id })
	if !ok {
		return model.User{}, NotFound(LevelUser, id)
	}
	return u, nil
}

// GetByName fetches the first user with the given name.
func (r *UserRepo) GetByName(name string) (model.User, error) {
	u, ok := r.store.FindFirst(func(u model.User) bool { return u.Name == name })
	if !ok {
		return model.User{}, NotFound(LevelUser, name)
	}
	return u, nil
}

// Names resolves ids to names, in order.  Any unknown id fails the
// whole call with ErrIntegrity.
func (r *UserRepo) Names(ids []string) ([]string, error) {
	byID := make(map[string]string, r.store.Len())
	for _, u := range r.store.All() {
		byID[u.ID] = u.Name
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		name, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: booking references unknown user %q", ErrIntegrity, id)
		}
		names = append(names, name)
	}
	return names, nil
}

// Create appends a user.  Duplicate ids are rejected with ErrConflict.
func (r *UserRepo) Create(ctx context.Context, u model.User) error {
	return r.store.Update(ctx, func(users []model.User) ([]model.User, error) {
		for _, existing := range users {
			if existing.ID == u.ID {
				return nil, fmt.Errorf("%w: user id %q already exists", ErrConflict, u.ID)
			}
		}
		return append(users, u), nil
	})
}

// UpdateName renames a user and returns the updated record.
func (r *UserRepo) UpdateName(ctx context.Context, id, name string) (model.User, error) {
	var updated model.User
	err := r.store.Update(ctx, func(users []model.User) ([]model.User, error) {
		for i := range users {
			if users[i].ID == id {
				users[i].Name = name
				updated = users[i]
				return users, nil
			}
		}
		return nil, NotFound(LevelUser, id)
	})
	return updated, err
}

// Delete removes a user and returns the removed record.
func (r *UserRepo) Delete(ctx context.Context, id string) (model.User, error) {
	var removed model.User
	err := r.store.Update(ctx, func(users []model.User) ([]model.User, error) {
		for i := range users {
			if users[i].ID == id {
				removed = users[i]
				return append(users[:i], users[i+1:]...), nil
			}
		}
		return nil, NotFound(LevelUser, id)
	})
	return removed, err
}
