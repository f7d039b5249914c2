package voting

import (
	"errors"
	"slices"
	"testing"
)

func TestToggleTransitions(t *testing.T) {
	tests := []struct {
		name      string
		current   Direction
		requested Direction
		next      Direction
		delta     int
	}{
		{"upvote fresh", None, Up, Up, 1},
		{"undo upvote", Up, Up, None, -1},
		{"switch down to up", Down, Up, Up, 2},
		{"downvote fresh", None, Down, Down, -1},
		{"undo downvote", Down, Down, None, 1},
		{"switch up to down", Up, Down, Down, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := Toggle(tt.current, tt.requested)
			if err != nil {
				t.Fatalf("Toggle: %v", err)
			}
			if tr.Next != tt.next || tr.Delta != tt.delta || tr.Previous != tt.current {
				t.Errorf("Toggle(%q, %q) = %+v, want next=%q delta=%d", tt.current, tt.requested, tr, tt.next, tt.delta)
			}
		})
	}
}

func TestToggleRejectsInvalidDirection(t *testing.T) {
	if _, err := Toggle(None, Direction("sideways")); !errors.Is(err, ErrInvalidDirection) {
		t.Fatalf("err = %v, want ErrInvalidDirection", err)
	}
}

func TestTallyFirstUpvote(t *testing.T) {
	tally := NewTally("author")
	if _, err := tally.ToggleUpvote("u1"); err != nil {
		t.Fatalf("ToggleUpvote: %v", err)
	}
	if tally.NetScore() != 1 {
		t.Errorf("NetScore = %d, want 1", tally.NetScore())
	}
	if !slices.Contains(tally.Upvoters(), "u1") {
		t.Errorf("Upvoters = %v, want u1 present", tally.Upvoters())
	}
}

func TestTallyUpvoteTwiceRestores(t *testing.T) {
	tally := NewTally("author")
	tally.ToggleUpvote("u1")
	tally.ToggleUpvote("u1")
	if tally.NetScore() != 0 {
		t.Errorf("NetScore = %d, want 0", tally.NetScore())
	}
	if slices.Contains(tally.Upvoters(), "u1") {
		t.Errorf("u1 still upvoting: %v", tally.Upvoters())
	}
}

func TestTallySwitchDownToUp(t *testing.T) {
	tally := NewTally("author")
	tally.ToggleDownvote("u1")
	if tally.NetScore() != -1 {
		t.Fatalf("NetScore after downvote = %d, want -1", tally.NetScore())
	}
	tally.ToggleUpvote("u1")

	if tally.NetScore() != 1 {
		t.Errorf("NetScore = %d, want 1", tally.NetScore())
	}
	if !slices.Contains(tally.Upvoters(), "u1") || slices.Contains(tally.Downvoters(), "u1") {
		t.Errorf("upvoters=%v downvoters=%v", tally.Upvoters(), tally.Downvoters())
	}
	if !tally.Consistent() {
		t.Error("tally inconsistent after switch")
	}
}

func TestTallyRejectsSelfVote(t *testing.T) {
	tally := NewTally("author")
	tally.ToggleUpvote("u1")

	for _, dir := range []Direction{Up, Down} {
		if _, err := tally.Toggle("author", dir); !errors.Is(err, ErrSelfVote) {
			t.Fatalf("Toggle(author, %q) err = %v, want ErrSelfVote", dir, err)
		}
	}
	if tally.NetScore() != 1 || len(tally.Upvoters()) != 1 || len(tally.Downvoters()) != 0 {
		t.Errorf("self vote changed tally: score=%d up=%v down=%v", tally.NetScore(), tally.Upvoters(), tally.Downvoters())
	}
}

func TestTallyAccumulatesAcrossUsers(t *testing.T) {
	tally := NewTally("author")
	for _, u := range []string{"u1", "u2", "u3"} {
		if _, err := tally.ToggleUpvote(u); err != nil {
			t.Fatalf("ToggleUpvote(%s): %v", u, err)
		}
	}
	if tally.NetScore() != 3 {
		t.Errorf("NetScore = %d, want 3", tally.NetScore())
	}
}

func TestTallyStaysConsistent(t *testing.T) {
	tally := NewTally("author")
	ops := []struct {
		user string
		dir  Direction
	}{
		{"a", Up}, {"b", Down}, {"a", Down}, {"c", Up}, {"b", Down},
		{"c", Up}, {"d", Down}, {"a", Up}, {"d", Up}, {"b", Up},
	}
	for i, op := range ops {
		if _, err := tally.Toggle(op.user, op.dir); err != nil {
			t.Fatalf("op %d: %v", i, err)
		}
		if !tally.Consistent() {
			t.Fatalf("inconsistent after op %d: score=%d up=%v down=%v", i, tally.NetScore(), tally.Upvoters(), tally.Downvoters())
		}
	}
	// a: up, b: up, c: none, d: up
	if tally.NetScore() != 3 {
		t.Errorf("NetScore = %d, want 3", tally.NetScore())
	}
}
