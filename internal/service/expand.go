package service

import (
	"context"
	"errors"

	"github.com/iliyamo/cinema-records/internal/logging"
	"github.com/iliyamo/cinema-records/internal/model"
	"github.com/iliyamo/cinema-records/internal/repository"
)

// Placeholder reasons used when a movie cannot be expanded.
const (
	ReasonMovieNotFound    = "movie not found"
	ReasonMovieDenied      = "movie lookup denied"
	ReasonMovieUnreachable = "movie service unreachable"
)

// expandMovies resolves ids one by one in order.  A failed lookup
// yields a placeholder for that id and never aborts the rest.
func expandMovies(ctx context.Context, movies MovieClient, caller string, ids []string) []model.MovieDetail {
	out := make([]model.MovieDetail, 0, len(ids))
	for _, id := range ids {
		m, err := movies.MovieByID(ctx, caller, id)
		switch {
		case err == nil:
			out = append(out, model.DetailFromMovie(m))
		case errors.Is(err, repository.ErrNotFound):
			out = append(out, model.MovieDetailError(id, ReasonMovieNotFound))
		case errors.Is(err, ErrForbidden), errors.Is(err, ErrUnknownCaller):
			out = append(out, model.MovieDetailError(id, ReasonMovieDenied))
		default:
			logging.FromContext(ctx).WithError(err).WithField("movie_id", id).
				Warn("movie expansion failed")
			out = append(out, model.MovieDetailError(id, ReasonMovieUnreachable))
		}
	}
	return out
}
