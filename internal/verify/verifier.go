// Package verify is the standalone correctness oracle for a Secret Santa
// mapping. It re-checks every invariant from scratch so it can certify a
// mapping regardless of where it came from; it never assumes the mapping
// was produced by this program's matcher.
package verify

import (
	"fmt"
	"strings"

	"secretsanta/internal/match"
)

// Kind identifies which verification check failed.
type Kind string

const (
	KindGiver          Kind = "giver"           // missing, duplicate, or unknown giver
	KindRecipient      Kind = "recipient"       // missing or duplicate recipient
	KindSelfAssignment Kind = "self_assignment" // giver == recipient
	KindForbiddenPair  Kind = "forbidden_pair"  // assignment crosses a forbidden pair
	KindReciprocal     Kind = "reciprocal"      // mutual A<->B while disallowed
)

// Error reports a failed check with the participant(s) that triggered it.
type Error struct {
	Kind         Kind
	Participants []string
	Detail       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("verification failed (%s): %s [%s]",
		e.Kind, e.Detail, strings.Join(e.Participants, ", "))
}

// Options carries the constraints a mapping must satisfy beyond being a
// derangement of the participant set.
type Options struct {
	Forbidden       match.PairSet
	AllowReciprocal bool
}

// Verify confirms mapping is a bijection over participants with no
// self-assignments and no constraint violations. Checks run in a fixed
// order and the first failure is returned with a precise diagnostic.
func Verify(mapping map[string]string, participants []string, opts Options) error {
	want := make(map[string]bool, len(participants))
	for _, p := range participants {
		want[p] = true
	}

	// Check 1: every participant is a giver exactly once. Map keys are
	// unique, so duplicates can only show up as unknown or missing givers.
	for giver := range mapping {
		if !want[giver] {
			return &Error{Kind: KindGiver, Participants: []string{giver},
				Detail: "giver is not a participant"}
		}
	}
	for _, p := range participants {
		if _, ok := mapping[p]; !ok {
			return &Error{Kind: KindGiver, Participants: []string{p},
				Detail: "participant never gives"}
		}
	}

	// Check 2: every participant receives exactly once.
	counts := make(map[string]int, len(participants))
	for _, recipient := range mapping {
		counts[recipient]++
	}
	for recipient, n := range counts {
		if !want[recipient] {
			return &Error{Kind: KindRecipient, Participants: []string{recipient},
				Detail: "recipient is not a participant"}
		}
		if n > 1 {
			return &Error{Kind: KindRecipient, Participants: []string{recipient},
				Detail: fmt.Sprintf("receives %d times", n)}
		}
	}
	for _, p := range participants {
		if counts[p] == 0 {
			return &Error{Kind: KindRecipient, Participants: []string{p},
				Detail: "participant never receives"}
		}
	}

	// Check 3: no fixed points.
	for giver, recipient := range mapping {
		if giver == recipient {
			return &Error{Kind: KindSelfAssignment, Participants: []string{giver},
				Detail: "participant assigned to themselves"}
		}
	}

	// Check 4: no forbidden pair in either direction.
	for giver, recipient := range mapping {
		if opts.Forbidden.Contains(giver, recipient) {
			return &Error{Kind: KindForbiddenPair, Participants: []string{giver, recipient},
				Detail: "assignment crosses a forbidden pair"}
		}
	}

	// Check 5: no mutual assignment when reciprocity is disallowed.
	if !opts.AllowReciprocal {
		for giver, recipient := range mapping {
			if mapping[recipient] == giver {
				return &Error{Kind: KindReciprocal, Participants: []string{giver, recipient},
					Detail: "mutual assignment while reciprocity is disallowed"}
			}
		}
	}

	return nil
}

// Summary describes a verified mapping for console reporting.
type Summary struct {
	Givers     int
	Recipients int
}

// Summarize counts distinct givers and recipients in a mapping. It does not
// validate anything; call Verify first.
func Summarize(mapping map[string]string) Summary {
	recipients := make(map[string]bool, len(mapping))
	for _, r := range mapping {
		recipients[r] = true
	}
	return Summary{Givers: len(mapping), Recipients: len(recipients)}
}
