package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/amanda-parkwaylabs/task-manager/internal/client/api"
	"github.com/amanda-parkwaylabs/task-manager/internal/client/config"
	"github.com/amanda-parkwaylabs/task-manager/internal/client/models"
	"github.com/amanda-parkwaylabs/task-manager/internal/common"
)

// apiClient is the subset of api.Client the commands use.
type apiClient interface {
	Register(ctx context.Context, username, email, password, role string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	CreateTask(ctx context.Context, token string, t models.NewTask) (*models.Task, error)
	ListTasks(ctx context.Context, token string) ([]models.Task, error)
	UpdateTask(ctx context.Context, token, id string, p models.TaskPatch) (*models.Task, error)
	DeleteTask(ctx context.Context, token, id string) (string, error)
}

var errNotLoggedIn = errors.New("not logged in")

type App struct {
	config *config.Config
	api    apiClient
	reader *bufio.Reader
	out    io.Writer
	token  string
	email  string
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		api:    api.New(c.ServerURL, c.RequestTimeout),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

// Run blocks in the REPL until the user exits or ctx is canceled.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintf(a.out, "Task manager CLI, server %s (type 'help' for commands)\n", a.config.ServerURL)
	runREPL(ctx, a, a.status, a.reader)
	a.token = ""
}

func (a *App) isLoggedIn() bool {
	return a.token != ""
}

func (a *App) status() string {
	if !a.isLoggedIn() {
		return "(not logged in)"
	}
	return a.email
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format+"\n", args...)
}

// report prints err for the user. A rejected token ends the session, since
// every later call would fail the same way.
func (a *App) report(action string, err error) error {
	switch {
	case errors.Is(err, errNotLoggedIn):
		a.printf("Please log in first")
	case errors.Is(err, api.ErrUnavailable):
		a.printf("%s failed: server unavailable", action)
	case errors.Is(err, common.ErrorUnauthorized) && a.isLoggedIn():
		a.token, a.email = "", ""
		a.printf("%s failed: session expired, please log in again", action)
	default:
		a.printf("%s failed: %v", action, err)
	}
	return err
}

func (a *App) requireLogin() error {
	if !a.isLoggedIn() {
		return a.report("", errNotLoggedIn)
	}
	return nil
}
