package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/client/client"
	"github.com/dmitrijs2005/tasktracker/internal/client/config"
	"github.com/dmitrijs2005/tasktracker/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/tasktracker/internal/client/session"
	"github.com/dmitrijs2005/tasktracker/internal/client/tasks"
	"github.com/dmitrijs2005/tasktracker/internal/logging"
)

type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	api     client.Client
	session *session.Session
	store   *tasks.Store
	closer  io.Closer
	reader  *bufio.Reader

	outMu sync.Mutex
	out   io.Writer

	modeMu sync.Mutex
	mode   Mode

	// listed holds the ids shown by the last list, so commands can refer
	// to tasks by their number.
	listed []string

	tracking sync.WaitGroup
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	db, err := client.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	logger := logging.NewText(os.Stderr, c.LogLevel)
	api := client.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout)
	tokens := metadata.NewTokenStore(metadata.NewSQLiteRepository(db))

	return newApp(c, logger, api, tokens, db, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, l logging.Logger, api client.Client, tokens session.TokenStore, closer io.Closer, in io.Reader, out io.Writer) *App {
	sess := session.New(api, tokens, l)
	store := tasks.NewStore(api, l)
	sess.OnSignOut(store.Clear)

	return &App{
		config:  c,
		logger:  l,
		api:     api,
		session: sess,
		store:   store,
		closer:  closer,
		reader:  bufio.NewReader(in),
		out:     out,
	}
}

// Run restores a saved session, then serves the REPL until the user quits
// or input ends. Requests still in flight are given RequestTimeout to settle.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.println("Welcome to the task tracker CLI (type 'help' for commands)")
	a.restore(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)

	a.shutdown()
}

func (a *App) restore(ctx context.Context) {
	if err := a.session.Restore(ctx); err != nil {
		a.println("Could not restore the saved session:", describe(err))
		return
	}
	if u, ok := a.session.User(); ok {
		a.println("Welcome back,", u.Name)
		_ = a.Reload(ctx)
	}
}

func (a *App) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), a.config.RequestTimeout)
	defer cancel()

	if err := a.store.Settle(ctx); err != nil {
		a.println("Some changes were not confirmed by the server")
	}
	a.tracking.Wait()

	if a.closer != nil {
		if err := a.closer.Close(); err != nil {
			a.logger.Error(ctx, "failed to close local database", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.State() == session.Authenticated
}

func (a *App) getStatus() string {
	s := ""
	if u, ok := a.session.User(); ok {
		s = u.Email + " "
	}
	s += string(a.getMode())
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) getMode() Mode {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.logger.Info(context.Background(), "connectivity changed", "mode", string(mode))
	}
}

// StartOnlineStatusWatcher probes the server every interval until ctx ends.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	probe := func() {
		ctx, cancel := context.WithTimeout(ctx, interval)
		defer cancel()
		if err := a.api.Ping(ctx); err != nil {
			a.setMode(ModeOffline)
		} else {
			a.setMode(ModeOnline)
		}
	}

	probe()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probe()
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) println(args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintf(a.out, format, args...)
}

// track reports a failed background request once it settles.
func (a *App) track(ctx context.Context, p *tasks.Pending, what string) {
	a.tracking.Add(1)
	go func() {
		defer a.tracking.Done()
		<-p.Done()
		if err := p.Wait(ctx); err != nil {
			a.printf("Could not %s: %s (change undone)\n", what, describe(err))
		}
	}()
}
