// Package match assigns Secret Santa recipients via randomized backtracking.
// The search looks for a derangement of the participant list (nobody gives
// to themselves) that avoids every forbidden pair and, optionally, mutual
// A<->B assignments. Randomness only affects which valid solution is
// sampled; the search itself is exhaustive, so a nil result means the
// constraint set admits no solution at all.
package match

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrUnsatisfiable is returned when the backtracking search exhausts every
// possibility without finding a valid assignment. Retrying with a different
// seed cannot help: the search is complete, so the constraints themselves
// are the problem.
var ErrUnsatisfiable = errors.New("unsatisfiable constraints: no valid assignment exists")

// ErrTooFewParticipants is returned for fewer than 2 participants.
var ErrTooFewParticipants = errors.New("need at least 2 participants")

// ErrDuplicateParticipant is returned when the participant list repeats a name.
var ErrDuplicateParticipant = errors.New("duplicate participant name")

// ErrUnknownParticipant is returned when a forbidden pair names someone
// outside the participant list.
var ErrUnknownParticipant = errors.New("forbidden pair references unknown participant")

// Match finds a giver->recipient mapping over participants such that no one
// gives to themselves, no assignment crosses a forbidden pair, and (when
// allowReciprocal is false) no two participants are assigned to each other.
//
// The giver order and each giver's candidate order are shuffled with rng so
// repeated runs sample different solutions. A single call performs one full
// exhaustive backtracking search and returns ErrUnsatisfiable if it finds
// nothing.
func Match(participants []string, forbidden PairSet, allowReciprocal bool, rng *rand.Rand) (map[string]string, error) {
	if err := checkInputs(participants, forbidden); err != nil {
		return nil, err
	}

	givers := shuffled(participants, rng)
	pool := shuffled(participants, rng)

	s := &search{
		givers:          givers,
		forbidden:       forbidden,
		allowReciprocal: allowReciprocal,
		rng:             rng,
		assigned:        make(map[string]string, len(givers)),
	}
	if !s.assign(0, pool) {
		return nil, fmt.Errorf("%w (participants=%d, forbidden_pairs=%d, allow_reciprocal=%v)",
			ErrUnsatisfiable, len(participants), forbidden.Len(), allowReciprocal)
	}
	return s.assigned, nil
}

type search struct {
	givers          []string
	forbidden       PairSet
	allowReciprocal bool
	rng             *rand.Rand

	assigned map[string]string
}

// assign places a recipient for givers[index] and recurses. pool holds the
// recipients not yet taken by earlier givers.
func (s *search) assign(index int, pool []string) bool {
	if index == len(s.givers) {
		return true
	}
	giver := s.givers[index]

	candidates := make([]string, 0, len(pool))
	for _, r := range pool {
		if r == giver || s.forbidden.Contains(giver, r) {
			continue
		}
		if !s.allowReciprocal && s.assigned[r] == giver {
			continue
		}
		candidates = append(candidates, r)
	}
	s.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	for _, recipient := range candidates {
		s.assigned[giver] = recipient

		next := make([]string, 0, len(pool)-1)
		for _, r := range pool {
			if r != recipient {
				next = append(next, r)
			}
		}
		if s.assign(index+1, next) {
			return true
		}

		delete(s.assigned, giver)
	}
	return false
}

func checkInputs(participants []string, forbidden PairSet) error {
	if len(participants) < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewParticipants, len(participants))
	}
	known := make(map[string]bool, len(participants))
	for _, p := range participants {
		if known[p] {
			return fmt.Errorf("%w: %q", ErrDuplicateParticipant, p)
		}
		known[p] = true
	}
	for _, name := range forbidden.Names() {
		if !known[name] {
			return fmt.Errorf("%w: %q", ErrUnknownParticipant, name)
		}
	}
	return nil
}

func shuffled(names []string, rng *rand.Rand) []string {
	out := make([]string, len(names))
	copy(out, names)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
