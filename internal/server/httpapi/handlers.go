package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/amanda-parkwaylabs/task-manager/internal/logging"
	"github.com/amanda-parkwaylabs/task-manager/internal/server/auth"
	"github.com/amanda-parkwaylabs/task-manager/internal/server/models"
	"github.com/amanda-parkwaylabs/task-manager/internal/server/services"
)

const maxBodyBytes = 1 << 20

type handlers struct {
	deps Deps
	log  logging.Logger
}

type registerRequest struct {
	UserName string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// createTaskRequest has no id or createdBy: both are assigned server-side and
// silently dropped if a client sends them.
type createTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Status      string     `json:"status"`
}

type updateTaskRequest struct {
	Title       nullable[string]    `json:"title"`
	Description nullable[string]    `json:"description"`
	DueDate     nullable[time.Time] `json:"dueDate"`
	Status      nullable[string]    `json:"status"`
}

// patch maps explicit nulls onto the patch: a null dueDate clears it and a
// null string field becomes empty, which title and status then reject.
func (req updateTaskRequest) patch() models.TaskPatch {
	return models.TaskPatch{
		Title:        req.Title.orZero(),
		Description:  req.Description.orZero(),
		DueDate:      req.DueDate.Value,
		ClearDueDate: req.DueDate.Set && req.DueDate.Value == nil,
		Status:       req.Status.orZero(),
	}
}

// nullable tells an absent JSON field (Set false) from an explicit null
// (Set true, Value nil).
type nullable[T any] struct {
	Set   bool
	Value *T
}

func (n *nullable[T]) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

func (n nullable[T]) orZero() *T {
	if !n.Set {
		return nil
	}
	if n.Value == nil {
		var zero T
		return &zero
	}
	return n.Value
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, msgBadBody)
		return false
	}
	return true
}

func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFromError(err)
	if status >= http.StatusInternalServerError {
		h.log.Error(r.Context(), "request failed", "request_id", requestIDFromContext(r.Context()), "error", err)
	}
	writeError(w, status, msg)
}

func (h *handlers) identity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		h.log.Error(r.Context(), "handler reached without identity", "path", r.URL.Path)
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
	return id, ok
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	if h.deps.Health != nil {
		if err := h.deps.Health(r.Context()); err != nil {
			h.log.Warn(r.Context(), "health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	_, err := h.deps.Users.Register(r.Context(), services.RegisterInput{
		UserName: req.UserName,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeMessage(w, http.StatusCreated, "User registered successfully")
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	token, err := h.deps.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{
		Token:     token,
		ExpiresIn: int64(h.deps.Users.TokenTTL() / time.Second),
	})
}

func (h *handlers) createTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	var req createTaskRequest
	if !decodeBody(w, r, &req) {
		return
	}
	task, err := h.deps.Tasks.Create(r.Context(), id, services.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      req.Status,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (h *handlers) listTasks(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	tasks, err := h.deps.Tasks.List(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if tasks == nil {
		tasks = []*models.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *handlers) updateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	var req updateTaskRequest
	if !decodeBody(w, r, &req) {
		return
	}
	task, err := h.deps.Tasks.Update(r.Context(), id, r.PathValue("id"), req.patch())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *handlers) deleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	if err := h.deps.Tasks.Delete(r.Context(), id, r.PathValue("id")); err != nil {
		h.fail(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Task deleted successfully")
}
