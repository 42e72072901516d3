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

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listUsers)
	r.Get("/active", h.listActiveUsers)
	r.Get("/{id}", h.getUser)

	r.Group(func(managed chi.Router) {
		managed.Use(middleware.RequireTier(authz.AdminOrManager))
		managed.Post("/", h.createUser)
		managed.Put("/{id}", h.updateUser)
		managed.Delete("/{id}", h.deleteUser)
	})
}

type UserListResponse struct {
	Success bool         `json:"success"`
	Data    []model.User `json:"data"`
	Count   int          `json:"count"`
}

type UserResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    *model.User `json:"data"`
}

func (h *UserHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, UserListResponse{
		Success: true,
		Data:    users,
		Count:   len(users),
	})
}

func (h *UserHandler) listActiveUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListActive(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, UserListResponse{
		Success: true,
		Data:    users,
		Count:   len(users),
	})
}

func (h *UserHandler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "ID must be a positive number")
		return
	}

	user, err := h.userService.Get(r.Context(), id)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, UserResponse{Success: true, Data: user})
}

func (h *UserHandler) createUser(w http.ResponseWriter, r *http.Request) {
	var req service.UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := h.userService.Create(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, UserResponse{
		Success: true,
		Message: "User created successfully",
		Data:    user,
	})
}

func (h *UserHandler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "ID must be a positive number")
		return
	}

	var req service.UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := h.userService.Update(r.Context(), id, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, UserResponse{
		Success: true,
		Message: "User updated successfully",
		Data:    user,
	})
}

func (h *UserHandler) deleteUser(w http.ResponseWriter, r *http.Request) {
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

	if err := h.userService.Delete(r.Context(), *identity, id); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "User deleted successfully",
	})
}
