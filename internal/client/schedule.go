package client

import (
	"context"

	"github.com/iliyamo/cinema-records/internal/model"
	"github.com/iliyamo/cinema-records/internal/repository"
	"github.com/iliyamo/cinema-records/internal/utils"
)

// Schedule talks to the schedule service.
type Schedule struct{ p *peer }

func NewSchedule(baseURL string, opts Options) *Schedule {
	return &Schedule{p: newPeer("schedule", baseURL, opts)}
}

// MoviesOnDate calls GET /:caller/schedule/:date.
func (c *Schedule) MoviesOnDate(ctx context.Context, caller, date string) ([]string, error) {
	var e model.ScheduleEntry
	err := c.p.get(ctx, "movies_on_date", "/"+seg(caller)+"/schedule/"+seg(date), caller, utils.RoleCaller,
		repository.NotFoundError{Level: repository.LevelDate, Key: date}, &e)
	if err != nil {
		return nil, err
	}
	return e.Movies, nil
}
