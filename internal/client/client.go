// Package client implements the service package's peer interfaces over
// HTTP/JSON.  Every call carries the inbound context, the correlation id,
// trace headers and, when a secret is configured, a freshly minted token.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/iliyamo/cinema-records/internal/logging"
	"github.com/iliyamo/cinema-records/internal/metrics"
	"github.com/iliyamo/cinema-records/internal/repository"
	"github.com/iliyamo/cinema-records/internal/service"
	"github.com/iliyamo/cinema-records/internal/utils"
)

var (
	_ service.AdminLookup    = (*Users)(nil)
	_ service.UsersClient    = (*Users)(nil)
	_ service.MovieClient    = (*Movies)(nil)
	_ service.ScheduleClient = (*Schedule)(nil)
	_ service.BookingsClient = (*Bookings)(nil)
)

// Options configures a peer client.
type Options struct {
	Timeout   time.Duration // per-call deadline; 0 means 5s
	JWTSecret string        // when set, requests carry a bearer token
	Service   string        // name of the calling service, used as token subject for internal lookups
}

type peer struct {
	name   string
	base   string
	hc     *http.Client
	secret string
	self   string
}

func newPeer(name, baseURL string, opts Options) *peer {
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	return &peer{
		name: name,
		base: strings.TrimRight(baseURL, "/"),
		hc: &http.Client{
			Timeout:   opts.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		secret: opts.JWTSecret,
		self:   opts.Service,
	}
}

// errorBody mirrors the JSON error envelope written by the handlers.
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Level string `json:"level"`
}

// get issues GET base+path and decodes a 200 answer into out.  subject
// and role select the token minted for the call.  notFound supplies the
// level and key reported when the peer answers 404 without a level.
func (p *peer) get(ctx context.Context, op, path, subject, role string, notFound repository.NotFoundError, out interface{}) (err error) {
	start := time.Now()
	defer func() {
		metrics.RemoteCallDuration.WithLabelValues(p.name, op, callOutcome(err)).
			Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.base+path, nil)
	if err != nil {
		return fmt.Errorf("%s %s: build request: %w", p.name, op, err)
	}
	req.Header.Set("Accept", "application/json")
	if id := logging.CorrelationIDFromContext(ctx); id != "" {
		req.Header.Set(logging.CorrelationHeader, id)
	}
	if p.secret != "" {
		tok, err := utils.NewToken(p.secret, subject, role, utils.DefaultTokenTTL)
		if err != nil {
			return fmt.Errorf("%s %s: mint token: %w", p.name, op, err)
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := p.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", service.ErrUnavailable, p.name, op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("%w: %s %s: read body: %v", service.ErrUnavailable, p.name, op, err)
	}
	if resp.StatusCode == http.StatusOK {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("%w: %s %s: decode: %v", service.ErrUnavailable, p.name, op, err)
		}
		return nil
	}

	var eb errorBody
	_ = json.Unmarshal(body, &eb)
	switch resp.StatusCode {
	case http.StatusNotFound:
		if eb.Code != "not_found" {
			// A route miss: the peer URL points at the wrong service.
			return fmt.Errorf("%w: %s %s: no such route", service.ErrUnavailable, p.name, op)
		}
		level := notFound.Level
		if eb.Level != "" {
			level = eb.Level
		}
		return repository.NotFound(level, notFound.Key)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s %s: %s", service.ErrUnknownCaller, p.name, op, eb.Error)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s %s: %s", service.ErrForbidden, p.name, op, eb.Error)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s %s: %s", service.ErrBadRequest, p.name, op, eb.Error)
	default:
		return fmt.Errorf("%w: %s %s: status %d: %s", service.ErrUnavailable, p.name, op, resp.StatusCode, eb.Error)
	}
}

func callOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case repository.NotFoundLevel(err) != "":
		return "not_found"
	default:
		return "error"
	}
}

func seg(s string) string { return url.PathEscape(s) }
