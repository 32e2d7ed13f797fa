package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/taskboard/internal/client/config"
	"github.com/dmitrijs2005/taskboard/internal/client/gateway"
	"github.com/dmitrijs2005/taskboard/internal/client/hooks"
	"github.com/dmitrijs2005/taskboard/internal/client/localdb"
	"github.com/dmitrijs2005/taskboard/internal/client/query"
	"github.com/dmitrijs2005/taskboard/internal/client/services"
	"github.com/dmitrijs2005/taskboard/internal/client/session"
	"github.com/dmitrijs2005/taskboard/internal/client/tokenstore"
	"github.com/dmitrijs2005/taskboard/internal/cryptox"
	"github.com/dmitrijs2005/taskboard/internal/filex"
	"github.com/dmitrijs2005/taskboard/internal/logging"
	"golang.org/x/term"
)

type View string

const (
	ViewLogin View = "login"
	ViewMain  View = "main"
)

const expiredNotice = "Your session has expired. Please log in again."

type App struct {
	config   *config.Config
	db       *sql.DB
	log      logging.Logger
	session  *session.Manager
	users    services.UserService
	projects *hooks.Projects
	tasks    *hooks.Tasks

	reader *bufio.Reader
	out    io.Writer
	// interactive reports whether stdin is a terminal; passwords are read
	// without echo only then.
	interactive bool

	mu   sync.Mutex
	view View
}

// NewApp opens the local database at c.DBPath and wires the client against
// c.APIBaseURL using the process stdin and stdout.
func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	if err := filex.EnsureParentDir(c.DBPath); err != nil {
		return nil, err
	}
	db, err := localdb.Open(ctx, c.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	log := logging.NewTextLogger(os.Stderr, c.LogLevel)
	a, err := newApp(c, tokenstore.NewSQLiteStore(db), log, os.Stdin, os.Stdout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	a.db = db
	a.interactive = term.IsTerminal(int(os.Stdin.Fd()))
	return a, nil
}

func newApp(c *config.Config, tokens tokenstore.Store, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	gw, err := gateway.New(gateway.Options{BaseURL: c.APIBaseURL, Tokens: tokens, Logger: log})
	if err != nil {
		return nil, err
	}
	cipher := cryptox.NewFieldCipher(c.EncryptionKey)
	if c.EncryptionKey != "" && !cipher.Enabled() {
		log.Warn(context.Background(), "encryption key rejected, emails are shown as received")
	}

	a := &App{
		config: c,
		log:    log,
		reader: bufio.NewReader(in),
		out:    out,
		view:   ViewLogin,
	}

	cache := query.NewClient(c.StaleTime, log)
	notifier := &printNotifier{out: out}
	a.users = services.NewUserService(gw, cipher)
	a.projects = hooks.NewProjects(cache, services.NewProjectService(gw), notifier)
	a.tasks = hooks.NewTasks(cache, services.NewTaskService(gw), notifier)
	a.session = session.NewManager(services.NewAuthService(gw, cipher), a.users, tokens, cache, log)
	a.session.OnExpired(a.sessionExpired)
	gw.SetExpiryHandler(a.session)

	return a, nil
}

// Run restores a stored session if there is one and runs the REPL until
// the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "Welcome to taskboard (type 'help' for commands)")

	u, err := a.session.Restore(ctx)
	switch {
	case errors.Is(err, session.ErrSessionExpired):
		fmt.Fprintln(a.out, expiredNotice)
	case err != nil:
		a.log.Debug(ctx, "no session restored", "error", err)
	case u != nil:
		a.setView(ViewMain)
		fmt.Fprintf(a.out, "Welcome back, %s!\n", u.Name)
	}

	runREPL(ctx, a, a.status, a.reader, a.out)
}

// Close releases the local database.
func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
		a.db = nil
	}
}

func (a *App) currentView() View {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view
}

func (a *App) setView(v View) {
	a.mu.Lock()
	a.view = v
	a.mu.Unlock()
}

func (a *App) loggedIn() bool {
	return a.currentView() == ViewMain
}

func (a *App) status() string {
	if u := a.session.Current(); u != nil && a.loggedIn() {
		return fmt.Sprintf("(%s)", u.Name)
	}
	return ""
}

// sessionExpired runs after the gateway has seen a 401. On the login view a
// 401 is a failed login, not an expiry, so no notice is shown there.
func (a *App) sessionExpired(context.Context) {
	if a.currentView() == ViewLogin {
		return
	}
	fmt.Fprintln(a.out, expiredNotice)
	a.setView(ViewLogin)
}

type printNotifier struct {
	out io.Writer
}

func (n *printNotifier) Success(msg string) {
	fmt.Fprintln(n.out, msg)
}

// Error prints msg with the error detail. Authentication-expired failures
// are skipped: the expiry notice covers them.
func (n *printNotifier) Error(msg string, err error) {
	if errors.Is(err, gateway.ErrAuthExpired) {
		return
	}
	if detail := gateway.Message(err); detail != "" && detail != msg {
		fmt.Fprintf(n.out, "%s: %s\n", msg, detail)
		return
	}
	fmt.Fprintln(n.out, msg)
}
