package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/rentadmin/internal/client/client"
	"github.com/dmitrijs2005/rentadmin/internal/client/config"
	"github.com/dmitrijs2005/rentadmin/internal/client/dialog"
	"github.com/dmitrijs2005/rentadmin/internal/client/files"
	"github.com/dmitrijs2005/rentadmin/internal/client/screens"
	"github.com/dmitrijs2005/rentadmin/internal/client/services"
	"github.com/dmitrijs2005/rentadmin/internal/client/session"
	"github.com/dmitrijs2005/rentadmin/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	session *session.Store

	authService      services.AuthService
	dashboardService services.DashboardService

	users        *screens.UsersScreen
	properties   *screens.PropertiesScreen
	verification *screens.VerificationScreen
	reports      *screens.ReportsScreen

	reader *bufio.Reader
	outMu  sync.Mutex
	out    io.Writer

	expired     atomic.Bool
	unsubscribe func()
	db          *sql.DB
}

// NewApp opens the session database and builds the API client, services
// and screens from c.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.SessionDBPath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	sess := session.NewStore(session.NewMetadataTokenStore(db), logger)

	api, err := client.NewHTTPClient(c.APIBaseURL, sess, c.RequestTimeout, client.WithLogger(logger))
	if err != nil {
		db.Close()
		return nil, err
	}

	resolver, err := files.NewResolver(c.UploadsBaseURL, files.S3Config{
		Region:       c.S3Region,
		BaseEndpoint: c.S3BaseEndpoint,
		AccessKey:    c.S3AccessKey,
		SecretKey:    c.S3SecretKey,
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("uploads base: %w", err)
	}
	downloader := files.NewDownloader(resolver, &http.Client{Timeout: c.RequestTimeout}, sess.Token)

	a := newApp(c, logger, sess, api, downloader, os.Stdin, os.Stdout)
	a.db = db
	return a, nil
}

func newApp(c *config.Config, logger logging.Logger, sess *session.Store, api client.Client, fetcher screens.DocumentFetcher, in io.Reader, out io.Writer) *App {
	a := &App{
		config:           c,
		logger:           logger,
		session:          sess,
		authService:      services.NewAuthService(api, sess),
		dashboardService: services.NewDashboardService(api),
		users:            screens.NewUsersScreen(services.NewUserService(api), c.SearchDebounce, logger),
		properties:       screens.NewPropertiesScreen(services.NewPropertyService(api), c.SearchDebounce, logger),
		verification:     screens.NewVerificationScreen(services.NewVerificationService(api), fetcher, logger),
		reports:          screens.NewReportsScreen(services.NewReportService(api), logger),
		reader:           bufio.NewReader(in),
		out:              out,
	}
	a.unsubscribe = sess.Subscribe(func(ev session.Event) {
		if ev.Reason == session.ReasonUnauthorized {
			a.expired.Store(true)
		}
		if !ev.Authenticated {
			a.reports.SetVisible(false)
		}
	})
	return a
}

// Run restores the session, starts the reports poller and blocks in the
// REPL until the user exits or ctx is canceled.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	a.users.Close()
	a.properties.Close()
	a.verification.Close()
	a.reports.Close()
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn(context.Background(), "close session database", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.Authenticated()
}

// sessionExpired reports, once, that the server rejected the session.
func (a *App) sessionExpired() bool {
	return a.expired.Swap(false)
}

// printf and println may be called from the reports poller as well.
func (a *App) printf(format string, args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintln(a.out, args...)
}

// confirm renders a confirmation dialog as a y/N prompt on the REPL input.
func (a *App) confirm(ctx context.Context, opts dialog.Options) (bool, error) {
	p := dialog.Prompter{
		Ask: func(prompt string) (string, error) {
			fmt.Fprint(a.out, prompt)
			return readLine(a.reader)
		},
		Out: a.out,
	}
	return p.Run(ctx, dialog.New(), opts)
}
