package provider

import "github.com/eugenenazirov/messaging-config/internal/property"

// Default ordinals, higher wins.
const (
	DefaultFileOrdinal  = 100
	DefaultRedisOrdinal = 200
	DefaultEnvOrdinal   = 300
)

// Source is one layer of configuration reported by Provider.ConfigSources.
type Source interface {
	Name() string
	Ordinal() int
	Value(name string) (string, bool)
	PropertyNames() []string
}

// MapSource is a Source backed by a frozen property.Store.
type MapSource struct {
	name    string
	ordinal int
	store   *property.Store
}

var _ Source = (*MapSource)(nil)

// NewMapSource wraps store as a named source.
func NewMapSource(name string, ordinal int, store *property.Store) *MapSource {
	return &MapSource{name: name, ordinal: ordinal, store: store}
}

func (s *MapSource) Name() string { return s.name }

func (s *MapSource) Ordinal() int { return s.ordinal }

func (s *MapSource) Value(name string) (string, bool) {
	return s.store.Get(name)
}

func (s *MapSource) PropertyNames() []string {
	return s.store.Keys()
}
