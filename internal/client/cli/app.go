package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/creatorlink/creatorlink/internal/client/api"
	"github.com/creatorlink/creatorlink/internal/client/config"
	"github.com/creatorlink/creatorlink/internal/client/session"
	"github.com/creatorlink/creatorlink/internal/client/tokenstore"
	"github.com/creatorlink/creatorlink/internal/logging"
)

// App wires the gateway, token store, and session controller together and
// drives them from an interactive prompt. It is the Navigator: redirects
// decided by the session layer become screen changes here.
type App struct {
	config     *config.Config
	controller *session.Controller
	db         *sql.DB

	reader *bufio.Reader
	out    io.Writer

	// currentPath is the REPL's stand-in for the browser location.
	currentPath string
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	db, err := tokenstore.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("initializing local database: %w", err)
	}

	gateway := api.NewHTTPGateway(c.BaseURL)
	gateway.SetTimeout(c.RequestTimeout)

	app := &App{
		config:      c,
		db:          db,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		currentPath: session.PathDashboard,
	}

	logger := logging.NewTextLogger(os.Stderr)
	store := tokenstore.NewSQLiteStore(db)
	app.controller = session.NewController(gateway, store, session.NavigatorFunc(app.navigate), logger)

	return app, nil
}

// navigate records the forced redirect and tells the user where they landed.
func (a *App) navigate(path string) {
	a.currentPath = path
	fmt.Fprintf(a.out, "You are now at %s\n", path)
}

func (a *App) isLoggedIn() bool {
	user, _ := a.controller.Snapshot()
	return user != nil
}

// getStatus renders the prompt suffix: email and location of the session.
func (a *App) getStatus() string {
	user, loading := a.controller.Snapshot()
	if loading {
		return "(resolving...)"
	}
	if user == nil {
		return ""
	}
	return fmt.Sprintf("(%s %s)", user.Email, a.currentPath)
}

func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	a.controller.Resolve(ctx, a.currentPath)
	a.Root(ctx)
}
