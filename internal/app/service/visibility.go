package service

import (
	"taskreg/internal/domain/model"
	"taskreg/internal/domain/repository"
)

// VisibilityScope returns the row-level restriction for task queries.
// Administrators and managers see everything (nil scope). A regular user is
// limited to tasks they are assigned to OR created — an OR, so a task they
// created for someone else stays visible to them, and a task someone else
// assigned to them does too.
func VisibilityScope(identity model.Identity) *repository.OwnershipScope {
	if identity.Role == model.RoleUser {
		return &repository.OwnershipScope{UserID: identity.ID}
	}
	return nil
}

// CanMutateTask applies the same ownership predicate to edits and deletes.
// Administrators and managers bypass it. The completed-task delete guard is
// separate and applies to every role.
func CanMutateTask(identity model.Identity, task *model.Task) bool {
	if identity.Role != model.RoleUser {
		return true
	}
	return task.UserID == identity.ID || task.CreatedBy == identity.ID
}
