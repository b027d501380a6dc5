package queue

import (
	"github.com/maheshrc27/autogram/internal/repository"
	"github.com/maheshrc27/autogram/internal/service"
)

type Queue struct {
	posts     repository.PostRepository
	publisher service.Publisher
}

func NewQueue(posts repository.PostRepository, publisher service.Publisher) *Queue {
	return &Queue{
		posts:     posts,
		publisher: publisher,
	}
}

const TaskTypePublishPost = "publish:post"

type PublishPostPayload struct {
	PostID int64 `json:"post_id"`
}
