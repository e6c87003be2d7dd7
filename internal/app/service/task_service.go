package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Theternos/TaskFlow-sub001/internal/core/domain"
	"github.com/Theternos/TaskFlow-sub001/internal/core/ports"
)

const dateLayout = "2006-01-02"

// TaskService owns the task lifecycle state machine. Every mutating
// operation serializes through one mutex and rewrites the persisted
// document wholesale, so concurrent requests cannot lose updates.
type TaskService struct {
	mu            sync.Mutex
	store         ports.Store
	files         ports.FileStore
	notifier      ports.Notifier
	calendar      ports.CalendarSync
	clock         ports.Clock
	notifyTimeout time.Duration
}

func NewTaskService(
	store ports.Store,
	files ports.FileStore,
	notifier ports.Notifier,
	calendar ports.CalendarSync,
	clock ports.Clock,
	notifyTimeout time.Duration,
) *TaskService {
	if notifyTimeout <= 0 {
		notifyTimeout = 10 * time.Second
	}
	return &TaskService{
		store:         store,
		files:         files,
		notifier:      notifier,
		calendar:      calendar,
		clock:         clock,
		notifyTimeout: notifyTimeout,
	}
}

var _ ports.TaskService = (*TaskService)(nil)

func (s *TaskService) now() time.Time {
	return s.clock.Now()
}

func (s *TaskService) timestamp() string {
	return s.now().Format(time.RFC3339)
}

// mutate loads the document, applies fn and saves the result, all under
// the single-writer lock.
func (s *TaskService) mutate(ctx context.Context, fn func(snap *domain.Snapshot) error) (domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.store.Load(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	if err := fn(&snap); err != nil {
		return domain.Snapshot{}, err
	}
	if err := s.store.Save(ctx, snap); err != nil {
		return domain.Snapshot{}, err
	}
	return snap, nil
}

// mutateTask resolves the task, applies fn and persists. The returned
// task is a copy of the saved state.
func (s *TaskService) mutateTask(ctx context.Context, id int, fn func(snap *domain.Snapshot, task *domain.Task) error) (domain.Task, error) {
	var result domain.Task
	_, err := s.mutate(ctx, func(snap *domain.Snapshot) error {
		task := snap.TaskByID(id)
		if task == nil {
			return domain.ErrTaskNotFound
		}
		if err := fn(snap, task); err != nil {
			return err
		}
		result = *task
		return nil
	})
	if err != nil {
		return domain.Task{}, err
	}
	return result, nil
}

func (s *TaskService) snapshot(ctx context.Context) (domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Load(ctx)
}

func (s *TaskService) ListTasks(ctx context.Context) ([]domain.Task, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Tasks, nil
}

func (s *TaskService) GetTask(ctx context.Context, id int) (domain.Task, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return domain.Task{}, err
	}
	task := snap.TaskByID(id)
	if task == nil {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return *task, nil
}

func (s *TaskService) CreateTask(ctx context.Context, input domain.CreateTaskInput) (ports.CreateTaskResult, error) {
	if strings.TrimSpace(input.Title) == "" {
		return ports.CreateTaskResult{}, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if strings.TrimSpace(input.AssignedTo) == "" {
		return ports.CreateTaskResult{}, fmt.Errorf("%w: assignedTo is required", domain.ErrValidation)
	}
	if strings.TrimSpace(input.DueDate) == "" {
		return ports.CreateTaskResult{}, fmt.Errorf("%w: dueDate is required", domain.ErrValidation)
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	var created domain.Task
	snap, err := s.mutate(ctx, func(snap *domain.Snapshot) error {
		created = domain.Task{
			ID:            snap.NextTaskID(),
			Title:         strings.TrimSpace(input.Title),
			Description:   input.Description,
			Tags:          append([]string(nil), input.Tags...),
			AssignedTo:    strings.TrimSpace(input.AssignedTo),
			DueDate:       input.DueDate,
			Priority:      priority,
			Status:        domain.TaskStatusPending,
			ReferenceLink: input.ReferenceLink,
			CreatedAt:     s.timestamp(),
		}
		snap.Tasks = append(snap.Tasks, created)
		return nil
	})
	if err != nil {
		return ports.CreateTaskResult{}, err
	}

	// Notification and calendar sync run after the document is durably
	// written; their failure never rolls the create back.
	notified := s.notifyNewTask(ctx, created, snap)
	s.syncCalendar(ctx, created, snap)

	return ports.CreateTaskResult{Task: created, Notified: notified}, nil
}

func (s *TaskService) notifyNewTask(ctx context.Context, task domain.Task, snap domain.Snapshot) bool {
	user, ok := assigneeOf(task, snap)
	if !ok {
		zap.L().Warn("new task assignee not found", zap.Int("task_id", task.ID), zap.String("assigned_to", task.AssignedTo))
		return false
	}

	nctx, cancel := context.WithTimeout(ctx, s.notifyTimeout)
	defer cancel()
	if err := s.notifier.NotifyNewTask(nctx, task, user); err != nil {
		zap.L().Warn("new task notification failed", zap.Int("task_id", task.ID), zap.Error(err))
		return false
	}
	return true
}

func (s *TaskService) syncCalendar(ctx context.Context, task domain.Task, snap domain.Snapshot) {
	if s.calendar == nil {
		return
	}
	user, ok := assigneeOf(task, snap)
	if !ok || !user.Integrations.Calendar {
		return
	}

	cctx, cancel := context.WithTimeout(ctx, s.notifyTimeout)
	defer cancel()
	eventID, err := s.calendar.UpsertEvent(cctx, user.ID, task)
	if err != nil {
		zap.L().Warn("calendar sync failed", zap.Int("task_id", task.ID), zap.Error(err))
		return
	}
	if eventID == "" {
		return
	}

	if _, err := s.mutateTask(ctx, task.ID, func(_ *domain.Snapshot, t *domain.Task) error {
		t.CalendarEventID = eventID
		return nil
	}); err != nil {
		zap.L().Warn("failed to record calendar event id", zap.Int("task_id", task.ID), zap.Error(err))
	}
}

func assigneeOf(task domain.Task, snap domain.Snapshot) (domain.User, bool) {
	id, err := strconv.Atoi(task.AssignedTo)
	if err != nil {
		return domain.User{}, false
	}
	user := snap.UserByID(id)
	if user == nil {
		return domain.User{}, false
	}
	return *user, true
}

// applyWorkUpdate implements the shared rework-vs-normal branching of
// the two update paths. When the task is in Rework the submission lands
// on the last rework entry; otherwise updates merge into the task
// itself. The destination status is set last.
func applyWorkUpdate(task *domain.Task, updates domain.UpdateTaskInput, dest domain.TaskStatus, preserveRef bool) error {
	originalRef := task.ReferenceLink

	if task.Status == domain.TaskStatusRework {
		if len(task.ReworkDetails) == 0 {
			return fmt.Errorf("%w: task in rework has no rework entry", domain.ErrNoPendingRequest)
		}
		last := &task.ReworkDetails[len(task.ReworkDetails)-1]
		if updates.CompletionDetails != nil {
			last.CompletionDetails = mergeCompletion(last.CompletionDetails, *updates.CompletionDetails)
		}
	} else {
		if updates.Title != nil && strings.TrimSpace(*updates.Title) != "" {
			task.Title = strings.TrimSpace(*updates.Title)
		}
		if updates.Description != nil {
			task.Description = *updates.Description
		}
		if updates.ReferenceLink != nil {
			task.ReferenceLink = *updates.ReferenceLink
		}
		if updates.Tags != nil {
			task.Tags = append([]string(nil), updates.Tags...)
		}
		if updates.CompletionDetails != nil {
			task.CompletionDetails = mergeCompletion(task.CompletionDetails, *updates.CompletionDetails)
		}
	}

	if preserveRef && task.ReferenceLink == "" {
		task.ReferenceLink = originalRef
	}

	task.Status = dest
	return nil
}

func mergeCompletion(existing *domain.CompletionDetails, update domain.CompletionDetails) *domain.CompletionDetails {
	merged := domain.CompletionDetails{}
	if existing != nil {
		merged = *existing
	}
	if update.CompletedDate != "" {
		merged.CompletedDate = update.CompletedDate
	}
	if update.CompletedBy != "" {
		merged.CompletedBy = update.CompletedBy
	}
	if update.Notes != "" {
		merged.Notes = update.Notes
	}
	return &merged
}

func (s *TaskService) SubmitWork(ctx context.Context, id int, updates domain.UpdateTaskInput) (domain.Task, error) {
	return s.mutateTask(ctx, id, func(_ *domain.Snapshot, task *domain.Task) error {
		if task.Status.IsTerminal() {
			return fmt.Errorf("%w: task is %s", domain.ErrValidation, task.Status)
		}
		return applyWorkUpdate(task, updates, domain.TaskStatusProgress, false)
	})
}

func (s *TaskService) SubmitWorkWithFile(ctx context.Context, id int, updates domain.UpdateTaskInput, originalName string, file io.Reader) (domain.Task, error) {
	meta, err := s.files.Store(ctx, originalName, file)
	if err != nil {
		return domain.Task{}, err
	}

	task, err := s.mutateTask(ctx, id, func(_ *domain.Snapshot, task *domain.Task) error {
		if task.Status.IsTerminal() {
			return fmt.Errorf("%w: task is %s", domain.ErrValidation, task.Status)
		}
		inRework := task.Status == domain.TaskStatusRework
		if err := applyWorkUpdate(task, updates, domain.TaskStatusProgress, false); err != nil {
			return err
		}
		if inRework {
			task.ReworkDetails[len(task.ReworkDetails)-1].AttachmentFile = &meta
		} else {
			task.AttachmentFile = &meta
		}
		return nil
	})
	if err != nil {
		// Do not leave the just-stored upload orphaned.
		s.deleteFileQuietly(ctx, meta.Path)
		return domain.Task{}, err
	}
	return task, nil
}

func (s *TaskService) ReturnToPending(ctx context.Context, id int, updates domain.UpdateTaskInput) (domain.Task, error) {
	return s.mutateTask(ctx, id, func(_ *domain.Snapshot, task *domain.Task) error {
		if task.Status.IsTerminal() {
			return fmt.Errorf("%w: task is %s", domain.ErrValidation, task.Status)
		}
		return applyWorkUpdate(task, updates, domain.TaskStatusPending, true)
	})
}

func (s *TaskService) MarkComplete(ctx context.Context, id int, completedBy string) (domain.Task, error) {
	return s.mutateTask(ctx, id, func(_ *domain.Snapshot, task *domain.Task) error {
		if task.Status.IsTerminal() {
			return fmt.Errorf("%w: task is %s", domain.ErrValidation, task.Status)
		}
		task.CompletionDetails = mergeCompletion(task.CompletionDetails, domain.CompletionDetails{
			CompletedDate: s.timestamp(),
			CompletedBy:   completedBy,
		})
		task.Status = domain.TaskStatusCompleted
		return nil
	})
}

func (s *TaskService) RequestRework(ctx context.Context, id int, comment, deadline, requestedBy string) (domain.Task, bool, error) {
	if strings.TrimSpace(comment) == "" {
		return domain.Task{}, false, fmt.Errorf("%w: comment is required", domain.ErrValidation)
	}
	if strings.TrimSpace(deadline) == "" {
		return domain.Task{}, false, fmt.Errorf("%w: deadline is required", domain.ErrValidation)
	}

	task, err := s.mutateTask(ctx, id, func(_ *domain.Snapshot, task *domain.Task) error {
		if task.Status != domain.TaskStatusPending && task.Status != domain.TaskStatusProgress {
			return fmt.Errorf("%w: rework can only be requested from Pending or Progress", domain.ErrValidation)
		}
		task.ReworkDetails = append(task.ReworkDetails, domain.ReworkEntry{
			Comment:     strings.TrimSpace(comment),
			Deadline:    deadline,
			Date:        s.timestamp(),
			RequestedBy: requestedBy,
		})
		task.Status = domain.TaskStatusRework
		return nil
	})
	if err != nil {
		return domain.Task{}, false, err
	}

	notified := s.notifyRework(ctx, task, comment, deadline)
	return task, notified, nil
}

func (s *TaskService) notifyRework(ctx context.Context, task domain.Task, comment, deadline string) bool {
	snap, err := s.snapshot(ctx)
	if err != nil {
		zap.L().Warn("rework notification skipped", zap.Int("task_id", task.ID), zap.Error(err))
		return false
	}
	user, ok := assigneeOf(task, snap)
	if !ok {
		return false
	}

	nctx, cancel := context.WithTimeout(ctx, s.notifyTimeout)
	defer cancel()
	if err := s.notifier.NotifyRework(nctx, task, comment, deadline, user); err != nil {
		zap.L().Warn("rework notification failed", zap.Int("task_id", task.ID), zap.Error(err))
		return false
	}
	return true
}

func (s *TaskService) DeleteTask(ctx context.Context, id int) error {
	var removed domain.Task
	_, err := s.mutate(ctx, func(snap *domain.Snapshot) error {
		for i := range snap.Tasks {
			if snap.Tasks[i].ID == id {
				removed = snap.Tasks[i]
				snap.Tasks = append(snap.Tasks[:i], snap.Tasks[i+1:]...)
				return nil
			}
		}
		return domain.ErrTaskNotFound
	})
	if err != nil {
		return err
	}

	s.cleanupCalendarEvent(ctx, removed)
	s.cleanupTaskFiles(ctx, removed)
	return nil
}

func (s *TaskService) cleanupCalendarEvent(ctx context.Context, task domain.Task) {
	if s.calendar == nil || task.CalendarEventID == "" {
		return
	}
	id, err := strconv.Atoi(task.AssignedTo)
	if err != nil {
		return
	}
	cctx, cancel := context.WithTimeout(ctx, s.notifyTimeout)
	defer cancel()
	if err := s.calendar.DeleteEvent(cctx, id, task.CalendarEventID); err != nil {
		zap.L().Warn("calendar event cleanup failed", zap.Int("task_id", task.ID), zap.Error(err))
	}
}

func (s *TaskService) cleanupTaskFiles(ctx context.Context, task domain.Task) {
	paths := make([]string, 0, 4)
	if task.File != nil {
		paths = append(paths, task.File.Path)
	}
	if task.AttachmentFile != nil {
		paths = append(paths, task.AttachmentFile.Path)
	}
	for _, entry := range task.ReworkDetails {
		if entry.AttachmentFile != nil {
			paths = append(paths, entry.AttachmentFile.Path)
		}
	}
	for _, req := range task.ExtensionRequests {
		if req.AttachmentFile != nil {
			paths = append(paths, req.AttachmentFile.Path)
		}
	}
	for _, req := range task.CancellationRequests {
		if req.AttachmentFile != nil {
			paths = append(paths, req.AttachmentFile.Path)
		}
	}
	for _, path := range paths {
		s.deleteFileQuietly(ctx, path)
	}
}

func (s *TaskService) deleteFileQuietly(ctx context.Context, path string) {
	if s.files == nil || path == "" {
		return
	}
	if err := s.files.Delete(ctx, path); err != nil {
		zap.L().Warn("file cleanup failed", zap.String("path", path), zap.Error(err))
	}
}

func (s *TaskService) ResetReminder(ctx context.Context, id int) (domain.Task, error) {
	return s.mutateTask(ctx, id, func(_ *domain.Snapshot, task *domain.Task) error {
		task.ReminderSent = false
		for i := range task.ReworkDetails {
			task.ReworkDetails[i].ReminderSent = false
		}
		return nil
	})
}

func (s *TaskService) FileExtensionRequest(ctx context.Context, id int, reason, requestedBy string, attachment *domain.FileMeta) (domain.Task, error) {
	if strings.TrimSpace(reason) == "" {
		return domain.Task{}, fmt.Errorf("%w: reason is required", domain.ErrValidation)
	}

	return s.mutateTask(ctx, id, func(_ *domain.Snapshot, task *domain.Task) error {
		if task.Status.IsTerminal() {
			return fmt.Errorf("%w: task is %s", domain.ErrValidation, task.Status)
		}
		if task.PendingExtensionIndex() >= 0 {
			return fmt.Errorf("%w: extension request", domain.ErrRequestPending)
		}
		task.ExtensionRequests = append(task.ExtensionRequests, domain.ExtensionRequest{
			Reason:         strings.TrimSpace(reason),
			RequestDate:    s.timestamp(),
			RequestedBy:    requestedBy,
			Status:         domain.RequestStatusPending,
			AttachmentFile: attachment,
		})
		return nil
	})
}

func (s *TaskService) ApproveExtension(ctx context.Context, id int, approvedDueDate, responseComment string) (domain.Task, error) {
	if strings.TrimSpace(approvedDueDate) == "" {
		return domain.Task{}, fmt.Errorf("%w: approvedDueDate is required", domain.ErrValidation)
	}

	return s.mutateTask(ctx, id, func(_ *domain.Snapshot, task *domain.Task) error {
		idx := task.PendingExtensionIndex()
		if idx < 0 {
			return fmt.Errorf("%w: extension request", domain.ErrNoPendingRequest)
		}
		req := &task.ExtensionRequests[idx]
		req.Status = domain.RequestStatusApproved
		req.ResponseComment = responseComment
		req.ResponseDate = s.timestamp()

		// The approved date lands on whichever deadline currently
		// governs the task.
		if len(task.ReworkDetails) > 0 {
			task.ReworkDetails[len(task.ReworkDetails)-1].Deadline = approvedDueDate
		} else {
			task.DueDate = approvedDueDate
		}
		return nil
	})
}

func (s *TaskService) DeclineExtension(ctx context.Context, id int, feedback, declinedBy string) (domain.Task, error) {
	if strings.TrimSpace(feedback) == "" {
		return domain.Task{}, fmt.Errorf("%w: feedback is required", domain.ErrValidation)
	}

	return s.mutateTask(ctx, id, func(_ *domain.Snapshot, task *domain.Task) error {
		idx := task.PendingExtensionIndex()
		if idx < 0 {
			return fmt.Errorf("%w: extension request", domain.ErrNoPendingRequest)
		}
		req := &task.ExtensionRequests[idx]
		req.Status = domain.RequestStatusDeclined
		req.DeclinedBy = declinedBy
		req.DeclinedDate = s.timestamp()
		req.Feedback = strings.TrimSpace(feedback)
		return nil
	})
}

func (s *TaskService) ListExtensionRequests(ctx context.Context) ([]domain.Task, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	tasks := make([]domain.Task, 0)
	for _, task := range snap.Tasks {
		if len(task.ExtensionRequests) > 0 {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func (s *TaskService) FileCancellationRequest(ctx context.Context, id int, reason, requestedBy string, attachment *domain.FileMeta) (domain.Task, error) {
	if strings.TrimSpace(reason) == "" {
		return domain.Task{}, fmt.Errorf("%w: reason is required", domain.ErrValidation)
	}

	return s.mutateTask(ctx, id, func(_ *domain.Snapshot, task *domain.Task) error {
		if task.Status.IsTerminal() {
			return fmt.Errorf("%w: task is %s", domain.ErrValidation, task.Status)
		}
		if task.PendingCancellationIndex() >= 0 {
			return fmt.Errorf("%w: cancellation request", domain.ErrRequestPending)
		}
		task.CancellationRequests = append(task.CancellationRequests, domain.CancellationRequest{
			Reason:         strings.TrimSpace(reason),
			RequestedBy:    requestedBy,
			RequestDate:    s.timestamp(),
			Status:         domain.RequestStatusPending,
			AttachmentFile: attachment,
		})
		return nil
	})
}

func (s *TaskService) ApproveCancellation(ctx context.Context, id int) (domain.Task, error) {
	return s.mutateTask(ctx, id, func(_ *domain.Snapshot, task *domain.Task) error {
		idx := task.PendingCancellationIndex()
		if idx < 0 {
			return fmt.Errorf("%w: cancellation request", domain.ErrNoPendingRequest)
		}
		now := s.timestamp()
		req := &task.CancellationRequests[idx]
		req.Status = domain.RequestStatusApproved
		req.ApprovedDate = now

		// A cancelled task cannot keep an extension request open.
		if extIdx := task.PendingExtensionIndex(); extIdx >= 0 {
			ext := &task.ExtensionRequests[extIdx]
			ext.Status = domain.RequestStatusDeclined
			ext.DeclinedDate = now
			ext.Feedback = "Task cancellation approved"
		}

		task.Status = domain.TaskStatusCancelled
		return nil
	})
}

func (s *TaskService) DeclineCancellation(ctx context.Context, id int, feedback string) (domain.Task, error) {
	if strings.TrimSpace(feedback) == "" {
		return domain.Task{}, fmt.Errorf("%w: feedback is required", domain.ErrValidation)
	}

	return s.mutateTask(ctx, id, func(_ *domain.Snapshot, task *domain.Task) error {
		idx := task.PendingCancellationIndex()
		if idx < 0 {
			return fmt.Errorf("%w: cancellation request", domain.ErrNoPendingRequest)
		}
		req := &task.CancellationRequests[idx]
		req.Status = domain.RequestStatusDeclined
		req.DeclinedDate = s.timestamp()
		req.Feedback = strings.TrimSpace(feedback)
		return nil
	})
}

func (s *TaskService) ListCancellationRequests(ctx context.Context) ([]domain.Task, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	tasks := make([]domain.Task, 0)
	for _, task := range snap.Tasks {
		if len(task.CancellationRequests) > 0 {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func (s *TaskService) ListTags(ctx context.Context) ([]string, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if snap.Tags == nil {
		return []string{}, nil
	}
	return snap.Tags, nil
}

func (s *TaskService) AddTag(ctx context.Context, tag string) ([]string, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil, fmt.Errorf("%w: tag is required", domain.ErrValidation)
	}

	var tags []string
	_, err := s.mutate(ctx, func(snap *domain.Snapshot) error {
		for _, existing := range snap.Tags {
			if strings.EqualFold(existing, tag) {
				return domain.ErrTagExists
			}
		}
		snap.Tags = append(snap.Tags, tag)
		tags = snap.Tags
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *TaskService) RemoveTag(ctx context.Context, tag string) ([]string, error) {
	var tags []string
	_, err := s.mutate(ctx, func(snap *domain.Snapshot) error {
		for i, existing := range snap.Tags {
			if strings.EqualFold(existing, tag) {
				snap.Tags = append(snap.Tags[:i], snap.Tags[i+1:]...)
				tags = snap.Tags
				return nil
			}
		}
		return domain.ErrTagNotFound
	})
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}

func (s *TaskService) ListUsers(ctx context.Context) ([]domain.User, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(snap.Users))
	for _, user := range snap.Users {
		// Mail can never be switched off, whatever the stored doc says.
		user.Integrations.Mail = true
		users = append(users, user)
	}
	return users, nil
}

func (s *TaskService) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return domain.User{}, err
	}
	for _, user := range snap.Users {
		if strings.EqualFold(user.Username, username) {
			user.Integrations.Mail = true
			return user, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}
