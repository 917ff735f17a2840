package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-records/internal/database"
	"github.com/iliyamo/cinema-records/internal/repository"
	"github.com/iliyamo/cinema-records/internal/service"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("x: %w", service.ErrForbidden), http.StatusForbidden, "forbidden"},
		{service.ErrUnknownCaller, http.StatusUnauthorized, "unknown_caller"},
		{service.ErrUnverifiable, http.StatusServiceUnavailable, "unverifiable"},
		{repository.NotFound(repository.LevelDate, "20151201"), http.StatusNotFound, "not_found"},
		{fmt.Errorf("%w: dup", repository.ErrConflict), http.StatusConflict, "conflict"},
		{fmt.Errorf("%w: empty id", service.ErrBadRequest), http.StatusBadRequest, "bad_request"},
		{fmt.Errorf("list bookings: %w", repository.ErrIntegrity), http.StatusInternalServerError, "integrity"},
		{fmt.Errorf("%w: movies down", service.ErrUnavailable), http.StatusServiceUnavailable, "unavailable"},
		{fmt.Errorf("%w: disk", database.ErrWriteFailed), http.StatusInternalServerError, "write_failed"},
		{errors.New("boom"), http.StatusInternalServerError, "internal"},
	}
	for _, tc := range cases {
		status, code := classify(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.code, code, tc.err.Error())
	}
}

func TestWriteErrorReportsNotFoundLevel(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, writeError(c, fmt.Errorf("check schedule: %w", repository.NotFound(repository.LevelDate, "20151201"))))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not_found", body.Code)
	assert.Equal(t, repository.LevelDate, body.Level)
}

type adminSet map[string]bool

func (a adminSet) IsAdmin(_ context.Context, id string) (bool, error) {
	admin, ok := a[id]
	if !ok {
		return false, repository.NotFound(repository.LevelUser, id)
	}
	return admin, nil
}

type nopDoc struct{}

func (nopDoc) Read(context.Context) ([]byte, error) {
	return []byte(`{"movies":[{"id":"m1","title":"Heat","rating":8.3,"director":"Mann"}]}`), nil
}
func (nopDoc) Write(context.Context, []byte) error { return nil }

func moviesEcho(t *testing.T) *echo.Echo {
	t.Helper()
	store := repository.NewMovieStore(nopDoc{})
	require.NoError(t, store.Load(context.Background()))
	guard := service.NewAdminGuard(adminSet{"a1": true, "u1": false}, time.Minute, 0)
	h := &MoviesHandler{Svc: service.NewMoviesService(repository.NewMovieRepo(store), guard)}

	e := echo.New()
	g := e.Group("/:caller")
	g.GET("/movies", h.List)
	g.GET("/movies/:id", h.Get)
	g.POST("/movies", h.Create)
	g.PUT("/movies/:id/rating", h.UpdateRating)
	return e
}

func serve(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestMoviesHandler(t *testing.T) {
	e := moviesEcho(t)

	rec := serve(e, http.MethodGet, "/u1/movies", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Heat"`)

	rec = serve(e, http.MethodGet, "/u1/movies/m9", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, repository.LevelMovie, body.Level)

	assert.Equal(t, http.StatusForbidden,
		serve(e, http.MethodPost, "/u1/movies", `{"id":"m2","title":"Ran"}`).Code)
	assert.Equal(t, http.StatusCreated,
		serve(e, http.MethodPost, "/a1/movies", `{"id":"m2","title":"Ran","rating":8.2}`).Code)
	assert.Equal(t, http.StatusConflict,
		serve(e, http.MethodPost, "/a1/movies", `{"id":"m2","title":"Ran"}`).Code)
	assert.Equal(t, http.StatusBadRequest,
		serve(e, http.MethodPut, "/a1/movies/m1/rating", `{}`).Code)

	rec = serve(e, http.MethodPut, "/a1/movies/m1/rating", `{"rating":9}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"rating":9`)
}

func TestHealthReportsRecords(t *testing.T) {
	e := echo.New()
	e.GET("/healthz", Health("movies", func() int { return 3 }))
	rec := serve(e, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","service":"movies","records":3}`, rec.Body.String())
}
