package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(":memory:")
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestCreateAndGetComment(t *testing.T) {
	repo := newTestRepository(t)
	now := time.Now().UTC()

	created, err := repo.CreateComment(context.Background(), "Ann", "hi", now)
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if created.Name != "Ann" || created.Msg != "hi" || !created.Approved {
		t.Errorf("unexpected comment: %+v", created)
	}
	if created.TS.UnixMilli() != now.UnixMilli() {
		t.Errorf("TS = %v, want %v (ms precision)", created.TS, now)
	}

	got, err := repo.GetComment(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetComment: %v", err)
	}
	if got.ID != created.ID || got.Msg != created.Msg {
		t.Errorf("round-trip mismatch: %+v vs %+v", got, created)
	}
}

func TestIDsMonotonic(t *testing.T) {
	repo := newTestRepository(t)

	var last int64
	for i := 0; i < 5; i++ {
		c, err := repo.CreateComment(context.Background(), "Ann", fmt.Sprintf("m%d", i), time.Now().UTC())
		if err != nil {
			t.Fatalf("CreateComment: %v", err)
		}
		if c.ID <= last {
			t.Fatalf("id %d not greater than previous %d", c.ID, last)
		}
		last = c.ID
	}
}

func TestIDsNotReusedAfterDelete(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first, err := repo.CreateComment(ctx, "Ann", "first", time.Now().UTC())
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	if err := repo.DeleteComment(ctx, first.ID); err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}

	second, err := repo.CreateComment(ctx, "Ann", "second", time.Now().UTC())
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	if second.ID <= first.ID {
		t.Fatalf("id %d reused after delete of %d", second.ID, first.ID)
	}
}

func TestListApprovedCommentsOrderAndPaging(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)

	for i := 0; i < 10; i++ {
		_, err := repo.CreateComment(ctx, "Ann", fmt.Sprintf("m%d", i), base.Add(time.Duration(i)*time.Minute))
		if err != nil {
			t.Fatalf("CreateComment: %v", err)
		}
	}

	comments, err := repo.ListApprovedComments(ctx, 3, 2)
	if err != nil {
		t.Fatalf("ListApprovedComments: %v", err)
	}
	if len(comments) != 3 {
		t.Fatalf("got %d comments, want 3", len(comments))
	}
	// Newest first, two newest skipped.
	if comments[0].Msg != "m7" || comments[1].Msg != "m6" || comments[2].Msg != "m5" {
		t.Errorf("unexpected page: %q %q %q", comments[0].Msg, comments[1].Msg, comments[2].Msg)
	}

	empty, err := repo.ListApprovedComments(ctx, 5, 100)
	if err != nil {
		t.Fatalf("ListApprovedComments: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("offset beyond data should return nothing, got %d", len(empty))
	}
}

func TestListFiltersUnapproved(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	c, err := repo.CreateComment(ctx, "Ann", "visible", time.Now().UTC())
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	// No code path flips approved; simulate a future moderation state directly.
	if _, err := repo.db.ExecContext(ctx, `UPDATE comments SET approved = FALSE WHERE id = ?`, c.ID); err != nil {
		t.Fatalf("update: %v", err)
	}

	comments, err := repo.ListApprovedComments(ctx, 100, 0)
	if err != nil {
		t.Fatalf("ListApprovedComments: %v", err)
	}
	if len(comments) != 0 {
		t.Fatalf("unapproved comment leaked into listing: %+v", comments)
	}
}

func TestDeleteComment(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	c, err := repo.CreateComment(ctx, "Ann", "hi", time.Now().UTC())
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	if err := repo.DeleteComment(ctx, c.ID); err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}

	if _, err := repo.GetComment(ctx, c.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("GetComment after delete: err = %v, want sql.ErrNoRows", err)
	}

	if err := repo.DeleteComment(ctx, c.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("double delete: err = %v, want sql.ErrNoRows", err)
	}
}

func TestGetCommentNotFound(t *testing.T) {
	repo := newTestRepository(t)

	if _, err := repo.GetComment(context.Background(), 12345); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("err = %v, want sql.ErrNoRows", err)
	}
}
