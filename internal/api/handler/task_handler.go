package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"taskreg/internal/api/middleware"
	"taskreg/internal/app/service"
	"taskreg/internal/common"
	"taskreg/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type TaskHandler struct {
	taskService *service.TaskService
}

func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listTasks)
	r.Get("/filter/{filter}", h.listTasksByFilter)
	r.Get("/{id}", h.getTask)
	r.Post("/", h.createTask)
	r.Put("/{id}", h.updateTask)
	r.Delete("/{id}", h.deleteTask)
}

type TaskListResponse struct {
	Success bool         `json:"success"`
	Data    []model.Task `json:"data"`
	Count   int          `json:"count"`
	Filter  string       `json:"filter,omitempty"`
}

type TaskResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    *model.Task `json:"data"`
}

func (h *TaskHandler) listTasks(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	req := service.ListTasksRequest{Filter: r.URL.Query().Get("filter")}
	if v := r.URL.Query().Get("user_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			req.UserID = &id
		}
	}
	if v := r.URL.Query().Get("type_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			req.TypeID = &id
		}
	}
	if v := r.URL.Query().Get("completed"); v != "" {
		completed := v == "true"
		req.Completed = &completed
	}

	tasks, err := h.taskService.List(r.Context(), *identity, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	filter := req.Filter
	if filter == "" {
		filter = "all"
	}
	common.RespondWithJSON(w, http.StatusOK, TaskListResponse{
		Success: true,
		Data:    tasks,
		Count:   len(tasks),
		Filter:  filter,
	})
}

func (h *TaskHandler) listTasksByFilter(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	filter := chi.URLParam(r, "filter")
	tasks, err := h.taskService.List(r.Context(), *identity, service.ListTasksRequest{Filter: filter})
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	common.RespondWithJSON(w, http.StatusOK, TaskListResponse{
		Success: true,
		Data:    tasks,
		Count:   len(tasks),
		Filter:  filter,
	})
}

func (h *TaskHandler) getTask(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "ID must be a positive number")
		return
	}

	task, err := h.taskService.Get(r.Context(), *identity, id)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, TaskResponse{Success: true, Data: task})
}

func (h *TaskHandler) createTask(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req service.TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	task, err := h.taskService.Create(r.Context(), *identity, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, TaskResponse{
		Success: true,
		Message: "Task created successfully",
		Data:    task,
	})
}

func (h *TaskHandler) updateTask(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "ID must be a positive number")
		return
	}

	var req service.TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	task, err := h.taskService.Update(r.Context(), *identity, id, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, TaskResponse{
		Success: true,
		Message: "Task updated successfully",
		Data:    task,
	})
}

func (h *TaskHandler) deleteTask(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "ID must be a positive number")
		return
	}

	if err := h.taskService.Delete(r.Context(), *identity, id); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Task deleted successfully",
	})
}

func parseIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, common.ErrBadRequest
	}
	return id, nil
}
