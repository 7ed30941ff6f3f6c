package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"event-manager/internal/shared"

	"github.com/hibiken/asynq"
)

// TaskClient enqueues background work for the worker process
type TaskClient struct {
	client *asynq.Client
}

func NewTaskClient(redisAddr, password string, db int) *TaskClient {
	return &TaskClient{
		client: asynq.NewClient(RedisOpt(redisAddr, password, db)),
	}
}

// RedisOpt is the connection used by both producer and worker
func RedisOpt(addr, password string, db int) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{Addr: addr, Password: password, DB: db}
}

// NewDeleteImageTask builds the task removing one uploaded event image
func NewDeleteImageTask(imageURL string) (*asynq.Task, error) {
	payload, err := json.Marshal(shared.DeleteImagePayload{ImageURL: imageURL})
	if err != nil {
		return nil, fmt.Errorf("marshal delete image payload: %w", err)
	}
	return asynq.NewTask(
		shared.TypeDeleteEventImage,
		payload,
		asynq.Queue(shared.QueueMedia),
		asynq.MaxRetry(5),
		asynq.Timeout(time.Minute),
	), nil
}

// EnqueueDeleteImage schedules removal of an image no event references anymore
func (c *TaskClient) EnqueueDeleteImage(ctx context.Context, imageURL string) error {
	task, err := NewDeleteImageTask(imageURL)
	if err != nil {
		return err
	}
	if _, err := c.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue %s: %w", task.Type(), err)
	}
	return nil
}

func (c *TaskClient) Close() error {
	return c.client.Close()
}
