package progress

import "sort"

// SolvedSet is a set of problem keys. Judge-solved sets hold contest id and
// index keys, manual sets hold problem titles.
type SolvedSet map[string]struct{}

func NewSolvedSet(keys ...string) SolvedSet {
	s := make(SolvedSet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

func (s SolvedSet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

func (s SolvedSet) Add(key string) { s[key] = struct{}{} }

func (s SolvedSet) Remove(key string) { delete(s, key) }

func (s SolvedSet) Len() int { return len(s) }

// Keys returns the members in sorted order.
func (s SolvedSet) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
