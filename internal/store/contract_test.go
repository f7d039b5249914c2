package store

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/models"
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/voting"
	"github.com/google/uuid"
)

// runReportStoreContract exercises the behaviour every ReportStore must share.
func runReportStoreContract(t *testing.T, newStore func(t *testing.T) ReportStore) {
	ctx := context.Background()

	seed := func(t *testing.T, s ReportStore, author string) *models.Report {
		t.Helper()
		r := &models.Report{
			AuthorID:   author,
			AuthorName: "Anonymous User #0001",
			Title:      "Stalled bus",
			Location:   "Dadar TT",
			Category:   "accident",
		}
		if err := s.Create(ctx, r); err != nil {
			t.Fatalf("Create: %v", err)
		}
		return r
	}

	vote := func(t *testing.T, s ReportStore, id uuid.UUID, user string, dir voting.Direction) *models.Report {
		t.Helper()
		r, err := s.Vote(ctx, id, user, dir)
		if err != nil {
			t.Fatalf("Vote(%s, %s): %v", user, dir, err)
		}
		return r
	}

	t.Run("create assigns id and zero score", func(t *testing.T) {
		s := newStore(t)
		r := seed(t, s, "author")
		if r.ID == uuid.Nil {
			t.Fatal("expected id to be assigned")
		}
		got, err := s.Get(ctx, r.ID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got.NetScore != 0 || len(got.Upvoters) != 0 || len(got.Downvoters) != 0 {
			t.Errorf("fresh report = %+v", got)
		}
	})

	t.Run("first upvote", func(t *testing.T) {
		s := newStore(t)
		r := seed(t, s, "author")
		got := vote(t, s, r.ID, "u1", voting.Up)
		if got.NetScore != 1 || !slices.Contains(got.Upvoters, "u1") {
			t.Errorf("after upvote: score=%d up=%v", got.NetScore, got.Upvoters)
		}
	})

	t.Run("upvote twice undoes", func(t *testing.T) {
		s := newStore(t)
		r := seed(t, s, "author")
		vote(t, s, r.ID, "u1", voting.Up)
		got := vote(t, s, r.ID, "u1", voting.Up)
		if got.NetScore != 0 || slices.Contains(got.Upvoters, "u1") {
			t.Errorf("after undo: score=%d up=%v", got.NetScore, got.Upvoters)
		}
	})

	t.Run("switch downvote to upvote", func(t *testing.T) {
		s := newStore(t)
		r := seed(t, s, "author")
		vote(t, s, r.ID, "u1", voting.Down)
		got := vote(t, s, r.ID, "u1", voting.Up)
		if got.NetScore != 1 {
			t.Errorf("score = %d, want 1", got.NetScore)
		}
		if !slices.Contains(got.Upvoters, "u1") || slices.Contains(got.Downvoters, "u1") {
			t.Errorf("up=%v down=%v", got.Upvoters, got.Downvoters)
		}
	})

	t.Run("self vote rejected", func(t *testing.T) {
		s := newStore(t)
		r := seed(t, s, "author")
		vote(t, s, r.ID, "u1", voting.Down)
		if _, err := s.Vote(ctx, r.ID, "author", voting.Up); !errors.Is(err, voting.ErrSelfVote) {
			t.Fatalf("err = %v, want ErrSelfVote", err)
		}
		got, _ := s.Get(ctx, r.ID)
		if got.NetScore != -1 || len(got.Upvoters) != 0 || !slices.Equal(got.Downvoters, []string{"u1"}) {
			t.Errorf("self vote mutated report: %+v", got)
		}
	})

	t.Run("score accumulates across users", func(t *testing.T) {
		s := newStore(t)
		r := seed(t, s, "author")
		for _, u := range []string{"u1", "u2", "u3"} {
			vote(t, s, r.ID, u, voting.Up)
		}
		got, _ := s.Get(ctx, r.ID)
		if got.NetScore != 3 {
			t.Errorf("score = %d, want 3", got.NetScore)
		}
		vote(t, s, r.ID, "u4", voting.Down)
		vote(t, s, r.ID, "u2", voting.Down)
		got, _ = s.Get(ctx, r.ID)
		if got.NetScore != 0 {
			t.Errorf("score = %d, want 0 (u1,u3 up; u2,u4 down)", got.NetScore)
		}
		if got.NetScore != len(got.Upvoters)-len(got.Downvoters) {
			t.Errorf("score %d does not match sets up=%v down=%v", got.NetScore, got.Upvoters, got.Downvoters)
		}
	})

	t.Run("unknown report", func(t *testing.T) {
		s := newStore(t)
		if _, err := s.Vote(ctx, uuid.New(), "u1", voting.Up); !errors.Is(err, ErrReportNotFound) {
			t.Errorf("Vote err = %v, want ErrReportNotFound", err)
		}
		if _, err := s.Get(ctx, uuid.New()); !errors.Is(err, ErrReportNotFound) {
			t.Errorf("Get err = %v, want ErrReportNotFound", err)
		}
	})

	t.Run("list orders by score", func(t *testing.T) {
		s := newStore(t)
		low := seed(t, s, "a1")
		high := seed(t, s, "a2")
		mid := seed(t, s, "a3")
		vote(t, s, low.ID, "u1", voting.Down)
		vote(t, s, high.ID, "u1", voting.Up)
		vote(t, s, high.ID, "u2", voting.Up)
		vote(t, s, mid.ID, "u1", voting.Up)

		list, err := s.ListByScore(ctx, 0)
		if err != nil {
			t.Fatalf("ListByScore: %v", err)
		}
		var ids []uuid.UUID
		for _, r := range list {
			ids = append(ids, r.ID)
		}
		want := []uuid.UUID{high.ID, mid.ID, low.ID}
		if !slices.Equal(ids, want) {
			t.Errorf("order = %v, want %v", ids, want)
		}

		limited, _ := s.ListByScore(ctx, 2)
		if len(limited) != 2 {
			t.Errorf("limit 2 returned %d", len(limited))
		}
	})

	t.Run("list recent filters before ordering", func(t *testing.T) {
		s := newStore(t)
		now := time.Now().UTC().Truncate(time.Second)

		create := func(author string, age time.Duration) *models.Report {
			t.Helper()
			r := &models.Report{AuthorID: author, Title: "Jam", Location: "Sion", Category: "congestion", CreatedAt: now.Add(-age)}
			if err := s.Create(ctx, r); err != nil {
				t.Fatalf("Create: %v", err)
			}
			return r
		}
		stale := create("a", 48*time.Hour)
		vote(t, s, stale.ID, "u1", voting.Up)
		fresh := create("a", time.Hour)
		vote(t, s, fresh.ID, "u1", voting.Up)
		fresher := create("a", time.Minute)
		sunk := create("a", time.Minute)
		vote(t, s, sunk.ID, "u1", voting.Down)

		got, err := s.ListRecent(ctx, now.Add(-24*time.Hour), 0)
		if err != nil {
			t.Fatalf("ListRecent: %v", err)
		}
		var ids []uuid.UUID
		for _, r := range got {
			ids = append(ids, r.ID)
		}
		want := []uuid.UUID{fresh.ID, fresher.ID}
		if !slices.Equal(ids, want) {
			t.Errorf("ListRecent = %v, want %v", ids, want)
		}
	})

	t.Run("delete only by author", func(t *testing.T) {
		s := newStore(t)
		r := seed(t, s, "author")
		vote(t, s, r.ID, "u1", voting.Up)
		if err := s.Delete(ctx, r.ID, "u1"); !errors.Is(err, ErrNotAuthor) {
			t.Fatalf("Delete by other err = %v, want ErrNotAuthor", err)
		}
		if err := s.Delete(ctx, r.ID, "author"); err != nil {
			t.Fatalf("Delete by author: %v", err)
		}
		if _, err := s.Get(ctx, r.ID); !errors.Is(err, ErrReportNotFound) {
			t.Errorf("Get after delete err = %v", err)
		}
		if err := s.Delete(ctx, r.ID, "author"); !errors.Is(err, ErrReportNotFound) {
			t.Errorf("second Delete err = %v, want ErrReportNotFound", err)
		}
	})
}
