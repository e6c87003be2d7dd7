package tests

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/Theternos/TaskFlow-sub001/internal/core/domain"
	"github.com/Theternos/TaskFlow-sub001/internal/core/ports"
)

type taskServiceMock struct {
	mock.Mock
}

var _ ports.TaskService = (*taskServiceMock)(nil)

func (m *taskServiceMock) taskResult(args mock.Arguments) (domain.Task, error) {
	var task domain.Task
	if value := args.Get(0); value != nil {
		task = value.(domain.Task)
	}
	return task, args.Error(1)
}

func (m *taskServiceMock) tasksResult(args mock.Arguments) ([]domain.Task, error) {
	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskServiceMock) tagsResult(args mock.Arguments) ([]string, error) {
	var tags []string
	if value := args.Get(0); value != nil {
		tags = value.([]string)
	}
	return tags, args.Error(1)
}

func (m *taskServiceMock) ListTasks(ctx context.Context) ([]domain.Task, error) {
	return m.tasksResult(m.Called(ctx))
}

func (m *taskServiceMock) GetTask(ctx context.Context, id int) (domain.Task, error) {
	return m.taskResult(m.Called(ctx, id))
}

func (m *taskServiceMock) CreateTask(ctx context.Context, input domain.CreateTaskInput) (ports.CreateTaskResult, error) {
	args := m.Called(ctx, input)
	var result ports.CreateTaskResult
	if value := args.Get(0); value != nil {
		result = value.(ports.CreateTaskResult)
	}
	return result, args.Error(1)
}

func (m *taskServiceMock) SubmitWork(ctx context.Context, id int, updates domain.UpdateTaskInput) (domain.Task, error) {
	return m.taskResult(m.Called(ctx, id, updates))
}

func (m *taskServiceMock) SubmitWorkWithFile(ctx context.Context, id int, updates domain.UpdateTaskInput, originalName string, file io.Reader) (domain.Task, error) {
	return m.taskResult(m.Called(ctx, id, updates, originalName, file))
}

func (m *taskServiceMock) ReturnToPending(ctx context.Context, id int, updates domain.UpdateTaskInput) (domain.Task, error) {
	return m.taskResult(m.Called(ctx, id, updates))
}

func (m *taskServiceMock) MarkComplete(ctx context.Context, id int, completedBy string) (domain.Task, error) {
	return m.taskResult(m.Called(ctx, id, completedBy))
}

func (m *taskServiceMock) RequestRework(ctx context.Context, id int, comment, deadline, requestedBy string) (domain.Task, bool, error) {
	args := m.Called(ctx, id, comment, deadline, requestedBy)
	var task domain.Task
	if value := args.Get(0); value != nil {
		task = value.(domain.Task)
	}
	return task, args.Bool(1), args.Error(2)
}

func (m *taskServiceMock) DeleteTask(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *taskServiceMock) ResetReminder(ctx context.Context, id int) (domain.Task, error) {
	return m.taskResult(m.Called(ctx, id))
}

func (m *taskServiceMock) FileExtensionRequest(ctx context.Context, id int, reason, requestedBy string, attachment *domain.FileMeta) (domain.Task, error) {
	return m.taskResult(m.Called(ctx, id, reason, requestedBy, attachment))
}

func (m *taskServiceMock) ApproveExtension(ctx context.Context, id int, approvedDueDate, responseComment string) (domain.Task, error) {
	return m.taskResult(m.Called(ctx, id, approvedDueDate, responseComment))
}

func (m *taskServiceMock) DeclineExtension(ctx context.Context, id int, feedback, declinedBy string) (domain.Task, error) {
	return m.taskResult(m.Called(ctx, id, feedback, declinedBy))
}

func (m *taskServiceMock) ListExtensionRequests(ctx context.Context) ([]domain.Task, error) {
	return m.tasksResult(m.Called(ctx))
}

func (m *taskServiceMock) FileCancellationRequest(ctx context.Context, id int, reason, requestedBy string, attachment *domain.FileMeta) (domain.Task, error) {
	return m.taskResult(m.Called(ctx, id, reason, requestedBy, attachment))
}

func (m *taskServiceMock) ApproveCancellation(ctx context.Context, id int) (domain.Task, error) {
	return m.taskResult(m.Called(ctx, id))
}

func (m *taskServiceMock) DeclineCancellation(ctx context.Context, id int, feedback string) (domain.Task, error) {
	return m.taskResult(m.Called(ctx, id, feedback))
}

func (m *taskServiceMock) ListCancellationRequests(ctx context.Context) ([]domain.Task, error) {
	return m.tasksResult(m.Called(ctx))
}

func (m *taskServiceMock) ListTags(ctx context.Context) ([]string, error) {
	return m.tagsResult(m.Called(ctx))
}

func (m *taskServiceMock) AddTag(ctx context.Context, tag string) ([]string, error) {
	return m.tagsResult(m.Called(ctx, tag))
}

func (m *taskServiceMock) RemoveTag(ctx context.Context, tag string) ([]string, error) {
	return m.tagsResult(m.Called(ctx, tag))
}

func (m *taskServiceMock) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	var users []domain.User
	if value := args.Get(0); value != nil {
		users = value.([]domain.User)
	}
	return users, args.Error(1)
}

func (m *taskServiceMock) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	args := m.Called(ctx, username)
	var user domain.User
	if value := args.Get(0); value != nil {
		user = value.(domain.User)
	}
	return user, args.Error(1)
}

func (m *taskServiceMock) CheckAndSendReminders(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
