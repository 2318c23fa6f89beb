package events

import "time"

// Domain constants
const (
	CommentDomain   = "comment"
	CommentExchange = "guestbook.comment"
)

// Event names
const (
	CommentCreatedEvent = "comment.created"
	CommentDeletedEvent = "comment.deleted"
)

// Event versions
const (
	EventVersionV1 = "v1"
)

// CommentCreatedPayload represents the payload for comment.created event
type CommentCreatedPayload struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Msg       string    `json:"msg"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentDeletedPayload represents the payload for comment.deleted event
type CommentDeletedPayload struct {
	ID        int64     `json:"id"`
	DeletedAt time.Time `json:"deletedAt"`
}
