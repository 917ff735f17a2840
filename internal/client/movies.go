package client

import (
	"context"

	"github.com/iliyamo/cinema-records/internal/model"
	"github.com/iliyamo/cinema-records/internal/repository"
	"github.com/iliyamo/cinema-records/internal/utils"
)

// Movies talks to the movies service.
type Movies struct{ p *peer }

func NewMovies(baseURL string, opts Options) *Movies {
	return &Movies{p: newPeer("movies", baseURL, opts)}
}

// MovieByID calls GET /:caller/movies/:id.
func (c *Movies) MovieByID(ctx context.Context, caller, movieID string) (model.Movie, error) {
	var m model.Movie
	err := c.p.get(ctx, "movie_by_id", "/"+seg(caller)+"/movies/"+seg(movieID), caller, utils.RoleCaller,
		repository.NotFoundError{Level: repository.LevelMovie, Key: movieID}, &m)
	return m, err
}
