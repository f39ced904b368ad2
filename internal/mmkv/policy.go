package mmkv

import "encoding/json"

// Policy ranks candidates during selection. Score returns a candidate's
// rank; negative means reject. Injectable so the selection rule can be
// swapped (for example for a true offset-order last-write-wins policy)
// once the container's append ordering is fully understood.
type Policy interface {
	Score(c Candidate) int
}

// LongestList scores candidates by decoded element count: in an append-only
// container the most complete version of a value is typically also the
// largest. This is a recovery heuristic, not a guarantee of recency.
//
// A candidate is rejected unless it decoded, every element is a JSON
// object, at least one element carries one of the recognized Fields, and
// the list is non-empty.
type LongestList struct {
	// Fields are the recognized element field names, at least one of
	// which must appear somewhere in the list.
	Fields []string
}

func (p LongestList) Score(c Candidate) int {
	if !c.Decoded || len(c.Elems) == 0 {
		return -1
	}

	recognized := false

	for _, elem := range c.Elems {
		var obj map[string]json.RawMessage
		if json.Unmarshal(elem, &obj) != nil {
			return -1
		}

		if recognized {
			continue
		}

		for _, field := range p.Fields {
			if _, ok := obj[field]; ok {
				recognized = true

				break
			}
		}
	}

	if !recognized {
		return -1
	}

	return len(c.Elems)
}

// SelectAuthoritative picks the single authoritative candidate: highest
// score wins, ties broken by earliest offset for determinism. Returns
// false when every candidate is rejected.
func SelectAuthoritative(cands []Candidate, policy Policy) (Candidate, bool) {
	best := -1

	var bestCand Candidate

	for _, cand := range cands {
		score := policy.Score(cand)
		if score > best {
			best = score
			bestCand = cand
		}
	}

	return bestCand, best >= 0
}
