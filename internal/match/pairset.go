package match

// PairSet holds unordered participant pairs. A pair {A, B} forbids both
// A->B and B->A, so lookups are symmetric.
type PairSet struct {
	pairs map[pairKey]struct{}
}

type pairKey struct {
	lo, hi string
}

func keyFor(a, b string) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// NewPairSet builds a PairSet from raw two-element tuples.
func NewPairSet(pairs [][2]string) PairSet {
	set := PairSet{pairs: make(map[pairKey]struct{}, len(pairs))}
	for _, p := range pairs {
		set.pairs[keyFor(p[0], p[1])] = struct{}{}
	}
	return set
}

// Contains reports whether {a, b} is in the set, in either order.
func (s PairSet) Contains(a, b string) bool {
	_, ok := s.pairs[keyFor(a, b)]
	return ok
}

// Len returns the number of distinct pairs.
func (s PairSet) Len() int {
	return len(s.pairs)
}

// Names returns every participant name mentioned by at least one pair.
func (s PairSet) Names() []string {
	seen := make(map[string]struct{}, len(s.pairs)*2)
	var names []string
	for k := range s.pairs {
		if _, ok := seen[k.lo]; !ok {
			seen[k.lo] = struct{}{}
			names = append(names, k.lo)
		}
		if _, ok := seen[k.hi]; !ok {
			seen[k.hi] = struct{}{}
			names = append(names, k.hi)
		}
	}
	return names
}
