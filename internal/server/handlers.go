package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"task-manager/internal/api"
	"task-manager/internal/domain"
	"task-manager/internal/errors"
)

const (
	msgBadJSON  = "request body must be a JSON task object"
	msgInternal = "internal server error"
	healthBody  = "API is running"
)

type handlers struct {
	tasks  api.API
	logger *slog.Logger
}

// taskRequest is the body accepted by POST, PUT and DELETE. PUT and DELETE
// only need the name.
type taskRequest struct {
	Name      string `json:"name"`
	DueDate   string `json:"dueDate"`
	Completed bool   `json:"completed"`
}

func (h *handlers) decode(w http.ResponseWriter, r *http.Request) (taskRequest, bool) {
	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, msgBadJSON)
		return req, false
	}
	return req, true
}

// fail writes err as a response. 4xx responses carry the error message; 5xx
// responses are generic and the detail only goes to the log. Client mistakes
// are logged at debug level, system failures at error level.
func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)

	level := slog.LevelDebug
	if errors.ShouldLogError(err) {
		level = slog.LevelError
	}
	h.logger.Log(r.Context(), level, "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", requestIDFrom(r.Context()),
		"status", status,
		"code", errors.GetErrorCode(err),
		"error", err,
	)

	if status >= http.StatusInternalServerError {
		writeJSONError(w, status, msgInternal)
		return
	}
	writeJSONError(w, status, errors.GetUserMessage(err))
}

func (h *handlers) listTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.ListTasks(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *handlers) createTask(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	task, err := h.tasks.CreateTask(r.Context(), req.Name, req.DueDate)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (h *handlers) updateTask(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	task, err := h.tasks.UpdateTask(r.Context(), req.Name, req.Completed)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *handlers) deleteTask(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	task, err := h.tasks.DeleteTask(r.Context(), req.Name)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthBody)
}
