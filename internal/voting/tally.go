package voting

import "sort"

// Tally is the in-memory form of a report's vote state: two disjoint voter
// sets and the derived net score.
type Tally struct {
	Author     string
	upvoters   map[string]struct{}
	downvoters map[string]struct{}
	netScore   int
}

func NewTally(author string) *Tally {
	return &Tally{
		Author:     author,
		upvoters:   make(map[string]struct{}),
		downvoters: make(map[string]struct{}),
	}
}

func (t *Tally) ToggleUpvote(user string) (Transition, error) {
	return t.Toggle(user, Up)
}

func (t *Tally) ToggleDownvote(user string) (Transition, error) {
	return t.Toggle(user, Down)
}

// Toggle applies a vote request. Self votes are rejected before any state
// is touched.
func (t *Tally) Toggle(user string, requested Direction) (Transition, error) {
	if user == "" {
		return Transition{}, ErrMissingVoter
	}
	if user == t.Author {
		return Transition{}, ErrSelfVote
	}
	tr, err := Toggle(t.Current(user), requested)
	if err != nil {
		return Transition{}, err
	}

	delete(t.upvoters, user)
	delete(t.downvoters, user)
	switch tr.Next {
	case Up:
		t.upvoters[user] = struct{}{}
	case Down:
		t.downvoters[user] = struct{}{}
	}
	t.netScore += tr.Delta
	return tr, nil
}

func (t *Tally) Current(user string) Direction {
	if _, ok := t.upvoters[user]; ok {
		return Up
	}
	if _, ok := t.downvoters[user]; ok {
		return Down
	}
	return None
}

func (t *Tally) NetScore() int { return t.netScore }

func (t *Tally) Upvoters() []string { return sortedKeys(t.upvoters) }

func (t *Tally) Downvoters() []string { return sortedKeys(t.downvoters) }

// Consistent reports whether the sets are disjoint and the score equals
// |upvoters| - |downvoters|.
func (t *Tally) Consistent() bool {
	for u := range t.upvoters {
		if _, ok := t.downvoters[u]; ok {
			return false
		}
	}
	return t.netScore == len(t.upvoters)-len(t.downvoters)
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
