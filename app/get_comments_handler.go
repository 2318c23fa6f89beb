package app

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"guestbook/domain"
	"guestbook/pkg/httperror"
)

const (
	defaultLimit = 100
	maxLimit     = 200
)

type GetCommentsHandler struct {
	repository Repository
}

func NewGetCommentsHandler(repository Repository) *GetCommentsHandler {
	return &GetCommentsHandler{
		repository: repository,
	}
}

// Limit and Offset stay untyped here so that a malformed value maps to the
// pagination error instead of a generic query-parse failure.
type GetCommentsRequest struct {
	Limit  string `query:"limit"`
	Offset string `query:"offset"`
}

type GetCommentsResponse []domain.CommentDTO

func (h *GetCommentsHandler) Handle(ctx context.Context, req *GetCommentsRequest) (*GetCommentsResponse, error) {
	limit, offset, err := parsePagination(req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}

	comments, err := h.repository.ListApprovedComments(ctx, limit, offset)
	if err != nil {
		zap.L().Error("Failed to list comments", zap.Error(err))
		return nil, httperror.InternalServerError("")
	}

	res := make(GetCommentsResponse, 0, len(comments))
	for _, comment := range comments {
		res = append(res, comment.ToDTO())
	}

	return &res, nil
}

func parsePagination(rawLimit, rawOffset string) (limit, offset int, err error) {
	limit = defaultLimit
	if rawLimit != "" {
		limit, err = strconv.Atoi(rawLimit)
		if err != nil {
			return 0, 0, httperror.BadRequest("invalid_pagination", "")
		}
	}

	offset = 0
	if rawOffset != "" {
		offset, err = strconv.Atoi(rawOffset)
		if err != nil {
			return 0, 0, httperror.BadRequest("invalid_pagination", "")
		}
	}

	limit = min(max(limit, 0), maxLimit)
	offset = max(offset, 0)

	return limit, offset, nil
}
