// Package httpapi is the REST boundary of the task tracker: it authenticates
// requests, decodes and validates payloads, calls the services and maps
// their errors to HTTP statuses.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/services"
)

type UserService interface {
	Register(ctx context.Context, name, email, password string) (*services.Session, error)
	Login(ctx context.Context, email, password string) (*services.Session, error)
	Verify(ctx context.Context, token string) (string, error)
	Me(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, patch models.ProfilePatch) (*models.User, error)
}

type TaskService interface {
	List(ctx context.Context, userID string) ([]*models.Task, error)
	Create(ctx context.Context, userID, title, description string) (*models.Task, error)
	Update(ctx context.Context, userID, taskID string, patch models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, userID, taskID string) error
}

type Options struct {
	RateLimitRPS    float64
	RateLimitBurst  int
	TrustedOrigins  []string
	ShutdownTimeout time.Duration
}

type HTTPServer struct {
	address string
	logger  logging.Logger
	users   UserService
	tasks   TaskService
	db      dbx.Pinger
	opts    Options
	limiter *ipLimiter
	started time.Time
	now     func() time.Time
}

func NewHTTPServer(address string, l logging.Logger, us UserService, ts TaskService, db dbx.Pinger, opts Options) *HTTPServer {
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	return &HTTPServer{
		address: address,
		logger:  l.With("module", "http_server"),
		users:   us,
		tasks:   ts,
		db:      db,
		opts:    opts,
		limiter: newIPLimiter(opts.RateLimitRPS, opts.RateLimitBurst),
		started: time.Now(),
		now:     time.Now,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       time.Minute,
	}

	go s.limiter.sweepEvery(ctx, time.Minute, 3*time.Minute)

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		shutdownErr <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listener.Addr().String())

	if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-shutdownErr
}
