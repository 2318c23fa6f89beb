package app

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"guestbook/domain"
	"guestbook/pkg/events"
	"guestbook/pkg/httperror"
)

type DeleteCommentHandler struct {
	repository     Repository
	adminKey       string
	eventPublisher events.Publisher
}

// NewDeleteCommentHandler wires the admin secret at construction time. An
// empty secret disables deletion entirely: every request fails closed with
// forbidden, never falling back to open access.
func NewDeleteCommentHandler(repository Repository, adminKey string, eventPublisher events.Publisher) *DeleteCommentHandler {
	return &DeleteCommentHandler{
		repository:     repository,
		adminKey:       adminKey,
		eventPublisher: eventPublisher,
	}
}

type DeleteCommentRequest struct {
	ID        int64  `params:"id" validate:"required,gt=0"`
	HeaderKey string `reqHeader:"X-Admin-Key"`
	QueryKey  string `query:"admin_key"`
}

type DeleteCommentResponse struct {
	OK bool `json:"ok"`
}

func (h *DeleteCommentHandler) Handle(ctx context.Context, req *DeleteCommentRequest) (*DeleteCommentResponse, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(req); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			return nil, httperror.BadRequest("invalid_comment_id", ve.Error())
		}

		return nil, httperror.InternalServerError("")
	}

	key := req.HeaderKey
	if key == "" {
		key = req.QueryKey
	}

	if h.adminKey == "" || key != h.adminKey {
		return nil, httperror.Forbidden()
	}

	comment, err := h.repository.GetComment(ctx, req.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound()
		}

		zap.L().Error("Failed to load comment", zap.Int64("commentId", req.ID), zap.Error(err))
		return nil, httperror.InternalServerError("")
	}

	if err := h.repository.DeleteComment(ctx, req.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound()
		}

		zap.L().Error("Failed to delete comment", zap.Int64("commentId", req.ID), zap.Error(err))
		return nil, httperror.InternalServerError("")
	}

	h.publishEvent(ctx, comment)

	return &DeleteCommentResponse{OK: true}, nil
}

func (h *DeleteCommentHandler) publishEvent(ctx context.Context, comment domain.Comment) {
	if h.eventPublisher == nil {
		return
	}

	eventPayload := events.CommentDeletedPayload{
		ID:        comment.ID,
		DeletedAt: time.Now().UTC(),
	}

	headers := events.Headers{
		TraceID:       events.GenerateTraceID(),
		CorrelationID: events.GenerateCorrelationID(),
		Service:       "guestbook",
	}

	event := events.NewEvent(
		events.CommentDeletedEvent,
		events.EventVersionV1,
		eventPayload,
		headers,
	)

	if err := h.eventPublisher.Publish(ctx, events.CommentExchange, event, headers); err != nil {
		zap.L().Error("Failed to publish comment.deleted event",
			zap.Int64("commentId", comment.ID),
			zap.Error(err),
		)
	}
}
