package app

import (
	"context"
	"time"

	"guestbook/domain"
)

type Repository interface {
	Close() error
	CreateComment(ctx context.Context, name, msg string, ts time.Time) (domain.Comment, error)
	ListApprovedComments(ctx context.Context, limit, offset int) ([]domain.Comment, error)
	GetComment(ctx context.Context, id int64) (domain.Comment, error)
	DeleteComment(ctx context.Context, id int64) error
}
