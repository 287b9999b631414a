package project

import (
	"encoding/json"
	"sort"
)

// StringSet is a deletion-id set that serializes as a sorted JSON array, the
// shape the storage endpoints exchange.
type StringSet map[string]struct{}

// NewStringSet builds a set from the given ids.
func NewStringSet(ids ...string) StringSet {
	s := make(StringSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports membership. Safe on a nil set.
func (s StringSet) Has(id string) bool {
	if s == nil {
		return false
	}
	_, ok := s[id]
	return ok
}

// HasAny reports whether any of the candidate ids is a member.
func (s StringSet) HasAny(ids ...string) bool {
	for _, id := range ids {
		if s.Has(id) {
			return true
		}
	}
	return false
}

// Add inserts id into the set.
func (s StringSet) Add(id string) {
	s[id] = struct{}{}
}

// Remove deletes id from the set; unknown ids are no-ops.
func (s StringSet) Remove(id string) {
	delete(s, id)
}

// Values returns the members sorted for deterministic output.
func (s StringSet) Values() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON encodes the set as a sorted array.
func (s StringSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

// UnmarshalJSON accepts an array of ids.
func (s *StringSet) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewStringSet(ids...)
	return nil
}
