package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"guestbook/domain"
	"guestbook/pkg/events"
	"guestbook/pkg/httperror"
)

type CreateCommentHandler struct {
	repository     Repository
	eventPublisher events.Publisher
}

func NewCreateCommentHandler(repository Repository, eventPublisher events.Publisher) *CreateCommentHandler {
	return &CreateCommentHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
	}
}

// Message may arrive as "msg" or "message"; the body is JSON or form-encoded.
type CreateCommentRequest struct {
	Name    string `json:"name" form:"name"`
	Msg     string `json:"msg" form:"msg"`
	Message string `json:"message" form:"message"`
}

type CreateCommentResponse struct {
	domain.CommentDTO
}

func (CreateCommentResponse) HTTPStatus() int {
	return 201
}

func (h *CreateCommentHandler) Handle(ctx context.Context, req *CreateCommentRequest) (*CreateCommentResponse, error) {
	name := normalizeName(req.Name)
	if name == "" {
		name = domain.AnonymousName
	}

	raw := req.Msg
	if raw == "" {
		raw = req.Message
	}

	msg := normalizeMessage(raw)
	if msg == "" {
		return nil, httperror.BadRequest("empty_message", "")
	}

	comment, err := h.repository.CreateComment(ctx, name, msg, time.Now().UTC())
	if err != nil {
		zap.L().Error("Failed to create comment", zap.Error(err))
		return nil, httperror.InternalServerError("")
	}

	h.publishEvent(ctx, comment)

	return &CreateCommentResponse{CommentDTO: comment.ToDTO()}, nil
}

func (h *CreateCommentHandler) publishEvent(ctx context.Context, comment domain.Comment) {
	if h.eventPublisher == nil {
		return
	}

	eventPayload := events.CommentCreatedPayload{
		ID:        comment.ID,
		Name:      comment.Name,
		Msg:       comment.Msg,
		Approved:  comment.Approved,
		CreatedAt: comment.TS,
	}

	headers := events.Headers{
		TraceID:       events.GenerateTraceID(),
		CorrelationID: events.GenerateCorrelationID(),
		Service:       "guestbook",
	}

	event := events.NewEvent(
		events.CommentCreatedEvent,
		events.EventVersionV1,
		eventPayload,
		headers,
	)

	if err := h.eventPublisher.Publish(ctx, events.CommentExchange, event, headers); err != nil {
		zap.L().Error("Failed to publish comment.created event",
			zap.Int64("commentId", comment.ID),
			zap.Error(err),
		)
	}
}
