package handler

import (
	"encoding/json"
	"net/http"

	"taskreg/internal/api/middleware"
	"taskreg/internal/app/authz"
	"taskreg/internal/app/service"
	"taskreg/internal/common"
	"taskreg/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type TaskTypeHandler struct {
	typeService *service.TaskTypeService
}

func NewTaskTypeHandler(typeService *service.TaskTypeService) *TaskTypeHandler {
	return &TaskTypeHandler{typeService: typeService}
}

func (h *TaskTypeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listTypes)
	r.Get("/{id}", h.getType)

	r.Group(func(managed chi.Router) {
		managed.Use(middleware.RequireTier(authz.AdminOrManager))
		managed.Post("/", h.createType)
		managed.Put("/{id}", h.updateType)
		managed.Delete("/{id}", h.deleteType)
	})
}

type TaskTypeRequest struct {
	Name string `json:"name"`
}

type TaskTypeListResponse struct {
	Success bool             `json:"success"`
	Data    []model.TaskType `json:"data"`
	Count   int              `json:"count"`
}

type TaskTypeResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    *model.TaskType `json:"data"`
}

func (h *TaskTypeHandler) listTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.typeService.List(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, TaskTypeListResponse{
		Success: true,
		Data:    types,
		Count:   len(types),
	})
}

func (h *TaskTypeHandler) getType(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "ID must be a positive number")
		return
	}

	taskType, err := h.typeService.Get(r.Context(), id)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, TaskTypeResponse{Success: true, Data: taskType})
}

func (h *TaskTypeHandler) createType(w http.ResponseWriter, r *http.Request) {
	var req TaskTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	taskType, err := h.typeService.Create(r.Context(), req.Name)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, TaskTypeResponse{
		Success: true,
		Message: "Task type created successfully",
		Data:    taskType,
	})
}

func (h *TaskTypeHandler) updateType(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "ID must be a positive number")
		return
	}

	var req TaskTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	taskType, err := h.typeService.Update(r.Context(), id, req.Name)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, TaskTypeResponse{
		Success: true,
		Message: "Task type updated successfully",
		Data:    taskType,
	})
}

func (h *TaskTypeHandler) deleteType(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "ID must be a positive number")
		return
	}

	if err := h.typeService.Delete(r.Context(), id); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Task type deleted successfully",
	})
}
