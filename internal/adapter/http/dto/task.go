package dto

import "github.com/Theternos/TaskFlow-sub001/internal/core/domain"

// Task bodies round-trip the persisted document shape, so the domain
// structs (already JSON-tagged for that shape) serve as the wire DTOs.

type CreateTaskRequest struct {
	Title       string   `json:"title" binding:"required,max=255"`
	Description string   `json:"description" binding:"omitempty,max=65535"`
	Tags        []string `json:"tags"`
	// Clients send assignedTo as either a string or a bare user id
	// number; it is normalized to a string before reaching the core.
	AssignedTo    any     `json:"assignedTo" binding:"required"`
	DueDate       string  `json:"dueDate" binding:"required,datetime=2006-01-02"`
	Priority      *string `json:"priority" binding:"omitempty,oneof=Low Medium High"`
	ReferenceLink string  `json:"referenceLink"`
}

type UpdateTaskRequest struct {
	Title             *string                   `json:"title"`
	Description       *string                   `json:"description"`
	ReferenceLink     *string                   `json:"referenceLink"`
	Tags              []string                  `json:"tags"`
	CompletionDetails *domain.CompletionDetails `json:"completionDetails"`
}

type CompleteTaskRequest struct {
	CompletedBy string `json:"completedBy"`
}

type ReworkRequest struct {
	Comment     string `json:"comment" binding:"required"`
	Deadline    string `json:"deadline" binding:"required"`
	RequestedBy string `json:"requestedBy"`
}

type ExtensionRequestBody struct {
	Reason      string `json:"reason" binding:"required"`
	RequestedBy string `json:"requestedBy"`
}

type ApproveExtensionRequest struct {
	ApprovedDueDate string `json:"approvedDueDate" binding:"required"`
	ResponseComment string `json:"responseComment"`
}

type DeclineRequestBody struct {
	Feedback string `json:"feedback"`
}

type CancellationRequestBody struct {
	Reason      string `json:"reason" binding:"required"`
	RequestedBy string `json:"requestedBy"`
}

type AddTagRequest struct {
	Tag string `json:"tag" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type PrioritizeRequest struct {
	Tasks []domain.Task `json:"tasks" binding:"required"`
	Users []domain.User `json:"users"`
}

// TaskResponse reports notification outcome separately from the
// mutation outcome: the task saved even when delivery failed.
type TaskResponse struct {
	Task     domain.Task `json:"task"`
	Notified *bool       `json:"notificationSent,omitempty"`
}
