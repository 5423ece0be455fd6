// Package notify publishes task events for out-of-process delivery.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/yukikurage/time-management-api/internal/models"
)

type EventType string

const (
	EventTaskAssigned      EventType = "task_assigned"
	EventTaskStatusChanged EventType = "task_status_changed"
)

// TaskEvent describes a change to a task that its assignee should hear about.
type TaskEvent struct {
	ID           string            `json:"id"`
	Type         EventType         `json:"type"`
	TaskID       uint64            `json:"task_id"`
	TaskName     string            `json:"task_name"`
	Project      string            `json:"project"`
	AssigneeID   *uint64           `json:"assignee_id,omitempty"`
	AssigneeName string            `json:"assignee_name,omitempty"`
	ActorID      uint64            `json:"actor_id"`
	OldStatus    models.TaskStatus `json:"old_status,omitempty"`
	NewStatus    models.TaskStatus `json:"new_status"`
	Timestamp    time.Time         `json:"timestamp"`
}

// NewTaskEvent fills the id, timestamp and task fields of an event.
func NewTaskEvent(typ EventType, task *models.Task, actorID uint64) TaskEvent {
	return TaskEvent{
		ID:         uuid.NewString(),
		Type:       typ,
		TaskID:     task.ID,
		TaskName:   task.Name,
		Project:    task.Project,
		AssigneeID: task.AssignedTo,
		ActorID:    actorID,
		NewStatus:  task.Status,
		Timestamp:  time.Now().UTC(),
	}
}

// Notifier delivers task events.
type Notifier interface {
	TaskAssigned(ctx context.Context, event TaskEvent) error
	TaskStatusChanged(ctx context.Context, event TaskEvent) error
}

// RedisNotifier publishes events as JSON on a pub/sub channel.
type RedisNotifier struct {
	client  *redis.Client
	channel string
}

// NewRedisNotifier creates a notifier publishing on channel.
func NewRedisNotifier(client *redis.Client, channel string) *RedisNotifier {
	return &RedisNotifier{client: client, channel: channel}
}

func (n *RedisNotifier) TaskAssigned(ctx context.Context, event TaskEvent) error {
	event.Type = EventTaskAssigned
	return n.publish(ctx, event)
}

func (n *RedisNotifier) TaskStatusChanged(ctx context.Context, event TaskEvent) error {
	event.Type = EventTaskStatusChanged
	return n.publish(ctx, event)
}

func (n *RedisNotifier) publish(ctx context.Context, event TaskEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", event.Type, err)
	}
	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}
	return nil
}

// LogNotifier writes events to the log. Used when redis is not configured.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) TaskAssigned(_ context.Context, event TaskEvent) error {
	event.Type = EventTaskAssigned
	n.log(event)
	return nil
}

func (n *LogNotifier) TaskStatusChanged(_ context.Context, event TaskEvent) error {
	event.Type = EventTaskStatusChanged
	n.log(event)
	return nil
}

func (n *LogNotifier) log(event TaskEvent) {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("type", string(event.Type)),
		zap.Uint64("task_id", event.TaskID),
		zap.String("task", event.TaskName),
		zap.Uint64("actor_id", event.ActorID),
		zap.String("new_status", string(event.NewStatus)),
	}
	if event.AssigneeID != nil {
		fields = append(fields, zap.Uint64("assignee_id", *event.AssigneeID))
	}
	if event.OldStatus != "" {
		fields = append(fields, zap.String("old_status", string(event.OldStatus)))
	}
	n.logger.Info("task notification", fields...)
}
