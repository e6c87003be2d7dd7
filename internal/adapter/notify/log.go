package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/Theternos/TaskFlow-sub001/internal/core/domain"
	"github.com/Theternos/TaskFlow-sub001/internal/core/ports"
)

// LogNotifier is the default Notifier: it records what would have been
// sent and on which channels. Real provider glue (SMTP, SMS, WhatsApp,
// voice) plugs in behind the same port.
type LogNotifier struct {
	logger *zap.Logger
}

var _ ports.Notifier = (*LogNotifier)(nil)

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.L()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) NotifyNewTask(_ context.Context, task domain.Task, user domain.User) error {
	n.logger.Info("notify: new task",
		zap.Int("task_id", task.ID),
		zap.String("title", task.Title),
		zap.String("assignee", user.Email),
		zap.Bools("channels", channelFlags(user)),
	)
	return nil
}

func (n *LogNotifier) NotifyRework(_ context.Context, task domain.Task, comment, deadline string, user domain.User) error {
	n.logger.Info("notify: rework requested",
		zap.Int("task_id", task.ID),
		zap.String("assignee", user.Email),
		zap.String("comment", comment),
		zap.String("deadline", deadline),
	)
	return nil
}

func (n *LogNotifier) NotifyReminder(_ context.Context, task domain.Task, user domain.User) error {
	n.logger.Info("notify: deadline reminder",
		zap.Int("task_id", task.ID),
		zap.String("assignee", user.Email),
		zap.String("deadline", task.EffectiveDeadline()),
	)
	return nil
}

func channelFlags(user domain.User) []bool {
	i := user.Integrations
	return []bool{i.Mail, i.Message, i.WhatsApp, i.VoiceCall}
}
