package verify

import (
	"errors"
	"testing"

	"secretsanta/internal/match"
)

func TestVerify_ValidMapping(t *testing.T) {
	participants := []string{"A", "B", "C"}
	mapping := map[string]string{"A": "B", "B": "C", "C": "A"}

	if err := Verify(mapping, participants, Options{AllowReciprocal: true}); err != nil {
		t.Fatalf("Verify failed on valid mapping: %v", err)
	}
}

func TestVerify_FailureKinds(t *testing.T) {
	participants := []string{"A", "B", "C"}

	cases := []struct {
		name     string
		mapping  map[string]string
		opts     Options
		wantKind Kind
	}{
		{
			name:     "missing_giver",
			mapping:  map[string]string{"A": "B", "B": "A"},
			wantKind: KindGiver,
		},
		{
			name:     "unknown_giver",
			mapping:  map[string]string{"A": "B", "B": "C", "C": "A", "X": "B"},
			wantKind: KindGiver,
		},
		{
			name:     "duplicate_recipient",
			mapping:  map[string]string{"A": "C", "B": "C", "C": "A"},
			wantKind: KindRecipient,
		},
		{
			name:     "unknown_recipient",
			mapping:  map[string]string{"A": "B", "B": "X", "C": "A"},
			wantKind: KindRecipient,
		},
		{
			name:     "self_assignment",
			mapping:  map[string]string{"A": "A", "B": "C", "C": "B"},
			wantKind: KindSelfAssignment,
		},
		{
			name:    "forbidden_pair",
			mapping: map[string]string{"A": "B", "B": "C", "C": "A"},
			opts: Options{
				Forbidden: match.NewPairSet([][2]string{{"B", "A"}}),
			},
			wantKind: KindForbiddenPair,
		},
		{
			name:     "reciprocal_disallowed",
			mapping:  map[string]string{"A": "B", "B": "A", "C": "C"},
			opts:     Options{AllowReciprocal: false},
			wantKind: KindSelfAssignment, // C->C trips first; ordering is fixed
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Verify(tc.mapping, participants, tc.opts)
			if err == nil {
				t.Fatal("Verify succeeded, want failure")
			}
			var verr *Error
			if !errors.As(err, &verr) {
				t.Fatalf("error type %T, want *Error", err)
			}
			if verr.Kind != tc.wantKind {
				t.Fatalf("Kind = %s, want %s (err: %v)", verr.Kind, tc.wantKind, verr)
			}
		})
	}
}

func TestVerify_ReciprocalPair(t *testing.T) {
	participants := []string{"A", "B", "C", "D"}
	mapping := map[string]string{"A": "B", "B": "A", "C": "D", "D": "C"}

	if err := Verify(mapping, participants, Options{AllowReciprocal: true}); err != nil {
		t.Fatalf("reciprocity allowed, Verify failed: %v", err)
	}

	err := Verify(mapping, participants, Options{AllowReciprocal: false})
	var verr *Error
	if !errors.As(err, &verr) || verr.Kind != KindReciprocal {
		t.Fatalf("err = %v, want KindReciprocal", err)
	}
}

func TestVerify_ForbiddenBothDirections(t *testing.T) {
	participants := []string{"A", "B", "C"}
	forbidden := match.NewPairSet([][2]string{{"A", "B"}})

	// A->B forbidden.
	err := Verify(map[string]string{"A": "B", "B": "C", "C": "A"}, participants,
		Options{Forbidden: forbidden, AllowReciprocal: true})
	var verr *Error
	if !errors.As(err, &verr) || verr.Kind != KindForbiddenPair {
		t.Fatalf("A->B: err = %v, want KindForbiddenPair", err)
	}

	// B->A equally forbidden.
	err = Verify(map[string]string{"A": "C", "B": "A", "C": "B"}, participants,
		Options{Forbidden: forbidden, AllowReciprocal: true})
	if !errors.As(err, &verr) || verr.Kind != KindForbiddenPair {
		t.Fatalf("B->A: err = %v, want KindForbiddenPair", err)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(map[string]string{"A": "B", "B": "C", "C": "A"})
	if s.Givers != 3 || s.Recipients != 3 {
		t.Fatalf("Summarize = %+v, want 3 givers and 3 recipients", s)
	}
}
