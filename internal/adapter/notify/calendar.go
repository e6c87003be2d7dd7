package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Theternos/TaskFlow-sub001/internal/core/domain"
	"github.com/Theternos/TaskFlow-sub001/internal/core/ports"
)

// LogCalendarSync stands in for the Google Calendar integration. Event
// ids are synthesized so delete-on-task-removal can be exercised.
type LogCalendarSync struct {
	logger *zap.Logger
}

var _ ports.CalendarSync = (*LogCalendarSync)(nil)

func NewLogCalendarSync(logger *zap.Logger) *LogCalendarSync {
	if logger == nil {
		logger = zap.L()
	}
	return &LogCalendarSync{logger: logger}
}

func (c *LogCalendarSync) UpsertEvent(_ context.Context, userID int, task domain.Task) (string, error) {
	eventID := fmt.Sprintf("local-%d-%d", userID, task.ID)
	c.logger.Info("calendar: upsert event",
		zap.Int("user_id", userID),
		zap.Int("task_id", task.ID),
		zap.String("event_id", eventID),
		zap.String("deadline", task.EffectiveDeadline()),
	)
	return eventID, nil
}

func (c *LogCalendarSync) DeleteEvent(_ context.Context, userID int, eventID string) error {
	c.logger.Info("calendar: delete event",
		zap.Int("user_id", userID),
		zap.String("event_id", eventID),
	)
	return nil
}
