package queue

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
)

// HandlePublishPostTask publishes the post named in the task payload. A
// failed publish is final for that post (it is marked failed by the
// publisher), so the task is never returned to asynq for retry.
func (q *Queue) HandlePublishPostTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishPostPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	post, err := q.posts.GetByID(ctx, payload.PostID)
	if err != nil {
		slog.Error("error fetching post for publish task", "post_id", payload.PostID, "error", err.Error())
		return nil
	}
	if post == nil {
		slog.Info("post for publish task no longer exists", "post_id", payload.PostID)
		return nil
	}

	result := q.publisher.Publish(ctx, post)
	if !result.Success {
		slog.Error("failed to publish post", "post_id", post.ID, "error", result.Error)
		return nil
	}

	slog.Info("successfully published post", "post_id", post.ID, "instagram_id", result.InstagramID)
	return nil
}
