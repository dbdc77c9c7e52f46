package property

import "fmt"

// Entry is a single named property value.
type Entry struct {
	Name  string
	Value string
}

// Store is an immutable, ordered set of properties with unique names.
// It is populated once by NewStore and never mutated afterwards, so it is
// safe for concurrent readers without locking.
type Store struct {
	values map[string]string
	names  []string
}

// NewStore builds a Store from entries. A repeated name keeps its first
// position but takes the value of its last occurrence.
func NewStore(entries ...Entry) (*Store, error) {
	s := &Store{
		values: make(map[string]string, len(entries)),
		names:  make([]string, 0, len(entries)),
	}
	for idx, entry := range entries {
		if entry.Name == "" {
			return nil, fmt.Errorf("entry %d: %w", idx, ErrEmptyName)
		}
		if _, exists := s.values[entry.Name]; !exists {
			s.names = append(s.names, entry.Name)
		}
		s.values[entry.Name] = entry.Value
	}
	return s, nil
}

// FromMap builds a Store from a plain map.
func FromMap(values map[string]string) (*Store, error) {
	entries := make([]Entry, 0, len(values))
	for name, value := range values {
		entries = append(entries, Entry{Name: name, Value: value})
	}
	return NewStore(entries...)
}

// Get returns the value stored under the exact name.
func (s *Store) Get(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	value, ok := s.values[name]
	return value, ok
}

// Keys returns a copy of every stored name. Callers must not depend on the order.
func (s *Store) Keys() []string {
	if s == nil || len(s.names) == 0 {
		return []string{}
	}
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len reports the number of stored properties.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}
