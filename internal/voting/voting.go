// Package voting implements toggle semantics for up/down votes on a report.
//
// A user holds at most one of Up or Down on a report. Requesting the
// direction already held withdraws it; requesting the other direction
// switches it. The score delta of every transition is the difference of the
// weights of the new and old directions, so callers apply it as an increment
// against the stored score.
package voting

import "errors"

var (
	ErrSelfVote         = errors.New("you cannot vote on your own report")
	ErrInvalidDirection = errors.New("vote direction must be up or down")
	ErrMissingVoter     = errors.New("voter identity is required")
)

type Direction string

const (
	None Direction = ""
	Up   Direction = "up"
	Down Direction = "down"
)

func (d Direction) Valid() bool {
	return d == Up || d == Down
}

func (d Direction) weight() int {
	switch d {
	case Up:
		return 1
	case Down:
		return -1
	}
	return 0
}

// Transition describes how a single toggle changes a user's vote.
type Transition struct {
	Previous Direction
	Next     Direction
	Delta    int
}

// Toggle computes the transition for a user currently holding current who
// requests requested.
func Toggle(current, requested Direction) (Transition, error) {
	if !requested.Valid() {
		return Transition{}, ErrInvalidDirection
	}
	next := requested
	if current == requested {
		next = None
	}
	return Transition{
		Previous: current,
		Next:     next,
		Delta:    next.weight() - current.weight(),
	}, nil
}
