package mapper

import (
	"strconv"

	"github.com/Theternos/TaskFlow-sub001/internal/adapter/http/dto"
	"github.com/Theternos/TaskFlow-sub001/internal/core/domain"
)

func ToCreateTaskInput(req dto.CreateTaskRequest) domain.CreateTaskInput {
	priority := domain.TaskPriority("")
	if req.Priority != nil {
		priority = domain.TaskPriority(*req.Priority)
	}

	return domain.CreateTaskInput{
		Title:         req.Title,
		Description:   req.Description,
		Tags:          req.Tags,
		AssignedTo:    NormalizeAssignee(req.AssignedTo),
		DueDate:       req.DueDate,
		Priority:      priority,
		ReferenceLink: req.ReferenceLink,
	}
}

// NormalizeAssignee flattens the assignedTo field to a string whether
// the client sent "2" or 2.
func NormalizeAssignee(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}

func ToUpdateTaskInput(req dto.UpdateTaskRequest) domain.UpdateTaskInput {
	return domain.UpdateTaskInput{
		Title:             req.Title,
		Description:       req.Description,
		ReferenceLink:     req.ReferenceLink,
		Tags:              req.Tags,
		CompletionDetails: req.CompletionDetails,
	}
}

func ToSanitizedUsers(users []domain.User) []domain.User {
	out := make([]domain.User, 0, len(users))
	for _, user := range users {
		out = append(out, user.Sanitized())
	}
	return out
}
