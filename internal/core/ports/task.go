package ports

import (
	"context"
	"io"
	"time"

	"github.com/Theternos/TaskFlow-sub001/internal/core/domain"
)

// Store persists the whole document. Save replaces the previous
// document; writes are idempotent full overwrites.
type Store interface {
	Load(ctx context.Context) (domain.Snapshot, error)
	Save(ctx context.Context, snap domain.Snapshot) error
}

// Notifier delivers task notifications through whatever channels the
// user opted into. Implementations never panic across this boundary;
// a returned error means delivery failed and is non-fatal to callers.
type Notifier interface {
	NotifyNewTask(ctx context.Context, task domain.Task, user domain.User) error
	NotifyRework(ctx context.Context, task domain.Task, comment, deadline string, user domain.User) error
	NotifyReminder(ctx context.Context, task domain.Task, user domain.User) error
}

// FileStore owns uploaded attachment bytes.
type FileStore interface {
	Store(ctx context.Context, originalName string, r io.Reader) (domain.FileMeta, error)
	Delete(ctx context.Context, path string) error
}

// Clock is injectable time, so deadline arithmetic is testable.
type Clock interface {
	Now() time.Time
}

// CalendarSync mirrors task deadlines into a user's calendar.
type CalendarSync interface {
	UpsertEvent(ctx context.Context, userID int, task domain.Task) (string, error)
	DeleteEvent(ctx context.Context, userID int, eventID string) error
}

// CreateTaskResult reports the mutation outcome separately from the
// notification outcome: a failed notification never fails the create.
type CreateTaskResult struct {
	Task     domain.Task
	Notified bool
}

type TaskService interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
	GetTask(ctx context.Context, id int) (domain.Task, error)
	CreateTask(ctx context.Context, input domain.CreateTaskInput) (CreateTaskResult, error)
	SubmitWork(ctx context.Context, id int, updates domain.UpdateTaskInput) (domain.Task, error)
	SubmitWorkWithFile(ctx context.Context, id int, updates domain.UpdateTaskInput, originalName string, file io.Reader) (domain.Task, error)
	ReturnToPending(ctx context.Context, id int, updates domain.UpdateTaskInput) (domain.Task, error)
	MarkComplete(ctx context.Context, id int, completedBy string) (domain.Task, error)
	RequestRework(ctx context.Context, id int, comment, deadline, requestedBy string) (domain.Task, bool, error)
	DeleteTask(ctx context.Context, id int) error
	ResetReminder(ctx context.Context, id int) (domain.Task, error)

	FileExtensionRequest(ctx context.Context, id int, reason, requestedBy string, attachment *domain.FileMeta) (domain.Task, error)
	ApproveExtension(ctx context.Context, id int, approvedDueDate, responseComment string) (domain.Task, error)
	DeclineExtension(ctx context.Context, id int, feedback, declinedBy string) (domain.Task, error)
	ListExtensionRequests(ctx context.Context) ([]domain.Task, error)

	FileCancellationRequest(ctx context.Context, id int, reason, requestedBy string, attachment *domain.FileMeta) (domain.Task, error)
	ApproveCancellation(ctx context.Context, id int) (domain.Task, error)
	DeclineCancellation(ctx context.Context, id int, feedback string) (domain.Task, error)
	ListCancellationRequests(ctx context.Context) ([]domain.Task, error)

	ListTags(ctx context.Context) ([]string, error)
	AddTag(ctx context.Context, tag string) ([]string, error)
	RemoveTag(ctx context.Context, tag string) ([]string, error)

	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	CheckAndSendReminders(ctx context.Context) (int, error)
}
