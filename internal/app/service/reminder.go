package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Theternos/TaskFlow-sub001/internal/core/domain"
)

// CheckAndSendReminders scans non-terminal tasks whose effective
// deadline falls tomorrow and notifies their assignees once. The
// reminderSent flag (on the task, or on the latest rework entry while
// the task is in Rework) makes repeated sweeps within the same day
// idempotent. Returns the number of reminders delivered.
func (s *TaskService) CheckAndSendReminders(ctx context.Context) (int, error) {
	tomorrow := s.now().AddDate(0, 0, 1).Format(dateLayout)

	type pending struct {
		task domain.Task
		user domain.User
	}

	var due []pending
	snap, err := s.snapshot(ctx)
	if err != nil {
		return 0, err
	}
	for _, task := range snap.Tasks {
		if task.Status.IsTerminal() {
			continue
		}
		if deadlineDate(task.EffectiveDeadline()) != tomorrow {
			continue
		}
		if reminderAlreadySent(task) {
			continue
		}
		user, ok := assigneeOf(task, snap)
		if !ok {
			zap.L().Warn("reminder skipped, assignee not found",
				zap.Int("task_id", task.ID), zap.String("assigned_to", task.AssignedTo))
			continue
		}
		due = append(due, pending{task: task, user: user})
	}

	sent := 0
	for _, item := range due {
		nctx, cancel := context.WithTimeout(ctx, s.notifyTimeout)
		err := s.notifier.NotifyReminder(nctx, item.task, item.user)
		cancel()
		if err != nil {
			// Leave the flag unset so the next sweep retries.
			zap.L().Warn("reminder notification failed", zap.Int("task_id", item.task.ID), zap.Error(err))
			continue
		}

		if _, err := s.mutateTask(ctx, item.task.ID, func(_ *domain.Snapshot, task *domain.Task) error {
			markReminderSent(task)
			return nil
		}); err != nil {
			zap.L().Error("failed to record reminder flag", zap.Int("task_id", item.task.ID), zap.Error(err))
			continue
		}
		sent++
	}

	return sent, nil
}

// deadlineDate reduces a stored deadline to its calendar date. Stored
// values are either plain dates or RFC3339 timestamps.
func deadlineDate(value string) string {
	if value == "" {
		return ""
	}
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t.Format(dateLayout)
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.Format(dateLayout)
	}
	if len(value) >= len(dateLayout) {
		return value[:len(dateLayout)]
	}
	return value
}

func reminderAlreadySent(task domain.Task) bool {
	if task.Status == domain.TaskStatusRework && len(task.ReworkDetails) > 0 {
		return task.ReworkDetails[len(task.ReworkDetails)-1].ReminderSent
	}
	return task.ReminderSent
}

func markReminderSent(task *domain.Task) {
	if task.Status == domain.TaskStatusRework && len(task.ReworkDetails) > 0 {
		task.ReworkDetails[len(task.ReworkDetails)-1].ReminderSent = true
		return
	}
	task.ReminderSent = true
}
