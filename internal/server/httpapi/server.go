// Package httpapi exposes the task manager as a JSON HTTP API. Protected
// routes run behind the authentication guard and the policy-driven
// authorization guard before reaching the services.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/amanda-parkwaylabs/task-manager/internal/logging"
	"github.com/amanda-parkwaylabs/task-manager/internal/server/auth"
	"github.com/amanda-parkwaylabs/task-manager/internal/server/config"
	"github.com/amanda-parkwaylabs/task-manager/internal/server/models"
	"github.com/amanda-parkwaylabs/task-manager/internal/server/services"
)

type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	TokenTTL() time.Duration
}

type TaskService interface {
	Create(ctx context.Context, id auth.Identity, in services.TaskInput) (*models.Task, error)
	List(ctx context.Context, id auth.Identity) ([]*models.Task, error)
	Update(ctx context.Context, id auth.Identity, taskID string, patch models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, id auth.Identity, taskID string) error
}

type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// Deps are the collaborators the handlers call into. Health is optional;
// when set, /healthz reports its error as 503.
type Deps struct {
	Users  UserService
	Tasks  TaskService
	Tokens TokenVerifier
	Policy auth.Policy
	Health func(ctx context.Context) error
	Logger logging.Logger
}

type Server struct {
	httpServer *http.Server
	logger     logging.Logger
}

func New(cfg *config.Config, deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = logging.NewDiscardLogger()
	}
	logger := deps.Logger.With("module", "http")
	deps.Logger = logger

	return &Server{
		logger: logger,
		httpServer: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      NewHandler(deps),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
	}
}

// Run serves on the configured address until Shutdown is called.
func (s *Server) Run() error {
	l, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(l)
}

// Serve accepts connections on l. It returns nil after a graceful Shutdown.
func (s *Server) Serve(l net.Listener) error {
	s.logger.Info(context.Background(), "http server listening", "addr", l.Addr().String())
	if err := s.httpServer.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// NewHandler builds the routed handler wrapped in request logging.
func NewHandler(deps Deps) http.Handler {
	if deps.Logger == nil {
		deps.Logger = logging.NewDiscardLogger()
	}
	h := &handlers{deps: deps, log: deps.Logger}

	authn := authenticate(deps.Tokens, deps.Logger)
	guard := func(op auth.Operation, next http.HandlerFunc) http.Handler {
		return authn(requireRole(deps.Policy, op, deps.Logger)(next))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.health)
	mux.HandleFunc("POST /register", h.register)
	mux.HandleFunc("POST /login", h.login)
	mux.Handle("POST /tasks", guard(auth.OpTaskCreate, h.createTask))
	mux.Handle("GET /tasks", guard(auth.OpTaskList, h.listTasks))
	mux.Handle("PATCH /tasks/{id}", guard(auth.OpTaskUpdate, h.updateTask))
	mux.Handle("DELETE /tasks/{id}", guard(auth.OpTaskDelete, h.deleteTask))

	return loggingMiddleware(deps.Logger, mux)
}
