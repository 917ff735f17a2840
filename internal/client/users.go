package client

import (
	"context"

	"github.com/iliyamo/cinema-records/internal/model"
	"github.com/iliyamo/cinema-records/internal/repository"
	"github.com/iliyamo/cinema-records/internal/utils"
)

// Users talks to the users service.  It serves as the AdminLookup of
// every other service's guard and as the bookings service's UsersClient.
type Users struct{ p *peer }

func NewUsers(baseURL string, opts Options) *Users {
	return &Users{p: newPeer("users", baseURL, opts)}
}

// IsAdmin calls GET /users/:id/is_admin.
func (c *Users) IsAdmin(ctx context.Context, userID string) (bool, error) {
	var st model.AdminStatus
	err := c.p.get(ctx, "is_admin", "/users/"+seg(userID)+"/is_admin", c.p.self, utils.RoleService,
		repository.NotFoundError{Level: repository.LevelUser, Key: userID}, &st)
	if err != nil {
		return false, err
	}
	return st.IsAdmin, nil
}

// UserByID calls GET /users/:id.
func (c *Users) UserByID(ctx context.Context, userID string) (model.User, error) {
	var u model.User
	err := c.p.get(ctx, "user_by_id", "/users/"+seg(userID), c.p.self, utils.RoleService,
		repository.NotFoundError{Level: repository.LevelUser, Key: userID}, &u)
	return u, err
}
