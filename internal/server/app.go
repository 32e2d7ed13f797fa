// Package server assembles the stub backend: an in-memory REST API that
// speaks the taskboard wire format (Mongo-style "_id"/"__v" documents,
// encrypted emails, cookie or bearer session tokens). It exists for local
// runs of the terminal client and for end-to-end tests.
package server

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/taskboard/internal/cryptox"
	"github.com/dmitrijs2005/taskboard/internal/logging"
	"github.com/dmitrijs2005/taskboard/internal/server/config"
	"github.com/dmitrijs2005/taskboard/internal/server/httpapi"
	"github.com/dmitrijs2005/taskboard/internal/server/projects"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskboard/internal/server/tasks"
	"github.com/dmitrijs2005/taskboard/internal/server/users"
	"github.com/sirupsen/logrus"
)

type App struct {
	config *config.Config
	logger logging.Logger
	http   *httpapi.Server
}

// NewApp wires repositories, services and the HTTP layer. Logs go to out.
func NewApp(c *config.Config, out io.Writer) (*App, error) {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
	logger := logging.NewLogrusLogger(l)

	cipher := cryptox.NewFieldCipher(c.EncryptionKey)
	if c.EncryptionKey != "" && !cipher.Enabled() {
		logger.Warn(context.Background(), "encryption key rejected, emails are stored in plaintext")
	}

	rm := repomanager.NewInMemoryRepositoryManager()
	us := users.NewService(rm.Users(), cipher, c)
	ps := projects.NewService(rm.Projects(), rm.Tasks())
	ts := tasks.NewService(rm.Tasks(), rm.Projects())

	hs := httpapi.NewServer(c.Addr, logger, us, ps, ts, c.TokenValidityDuration)

	return &App{config: c, logger: logger, http: hs}, nil
}

// Handler returns the router, for mounting under httptest.
func (app *App) Handler() http.Handler {
	return app.http.Handler()
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	return app.http.Run(ctx)
}
