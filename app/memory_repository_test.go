package app

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	"guestbook/domain"
)

// memoryRepository is an in-memory Repository for handler tests.
type memoryRepository struct {
	nextID   int64
	comments map[int64]domain.Comment
	failWith error
	creates  int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		nextID:   1,
		comments: make(map[int64]domain.Comment),
	}
}

func (m *memoryRepository) Close() error { return nil }

func (m *memoryRepository) CreateComment(ctx context.Context, name, msg string, ts time.Time) (domain.Comment, error) {
	if m.failWith != nil {
		return domain.Comment{}, m.failWith
	}

	m.creates++
	c := domain.Comment{
		ID:       m.nextID,
		Name:     name,
		Msg:      msg,
		TS:       ts,
		Approved: true,
	}
	m.comments[c.ID] = c
	m.nextID++
	return c, nil
}

func (m *memoryRepository) ListApprovedComments(ctx context.Context, limit, offset int) ([]domain.Comment, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}

	all := make([]domain.Comment, 0, len(m.comments))
	for _, c := range m.comments {
		if c.Approved {
			all = append(all, c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].TS.After(all[j].TS) })

	if offset >= len(all) {
		return []domain.Comment{}, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *memoryRepository) GetComment(ctx context.Context, id int64) (domain.Comment, error) {
	c, ok := m.comments[id]
	if !ok {
		return domain.Comment{}, sql.ErrNoRows
	}
	return c, nil
}

func (m *memoryRepository) DeleteComment(ctx context.Context, id int64) error {
	if _, ok := m.comments[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.comments, id)
	return nil
}

var errStorageDown = errors.New("storage unavailable")
