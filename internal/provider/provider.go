package provider

import (
	"cmp"
	"iter"
	"slices"

	"github.com/eugenenazirov/messaging-config/internal/property"
)

// Provider is the configuration contract consumed by the channel wiring engine.
// The pointer passed as target selects the requested type.
//
// Both accessors first check their arguments: a nil or non-pointer target
// fails with ErrInvalidTarget and an empty name with property.ErrEmptyName.
// These are caller errors and are reported before any lookup.
type Provider interface {
	// GetValue fails with a *NotFoundError when name is absent and with a
	// *TypeMismatchError when the value cannot be converted.
	GetValue(name string, target any) error
	// GetOptionalValue reports false without error when name is absent.
	// A present value that cannot be converted fails with a
	// *TypeMismatchError. Apart from the argument checks above, that is the
	// only error it returns.
	GetOptionalValue(name string, target any) (bool, error)
	PropertyNames() iter.Seq[string]
	ConfigSources() []Source
}

type backend interface {
	lookup(name string) (string, bool)
	names() []string
}

// Config is the Provider implementation shared by every backend.
// It holds no mutable state and is safe for concurrent use.
type Config struct {
	backend  backend
	sources  []Source
	coercion Coercion
}

var _ Provider = (*Config)(nil)

// Option configures a Config.
type Option func(*Config)

// WithCoercion overrides the default Parse coercion policy.
func WithCoercion(policy Coercion) Option {
	return func(c *Config) {
		c.coercion = policy
	}
}

// New serves properties straight from store. It reports no config sources.
func New(store *property.Store, opts ...Option) *Config {
	return newConfig(storeBackend{store: store}, nil, opts)
}

// NewComposite layers sources by ordinal, highest first. Sources with equal
// ordinals keep their argument order. The first source holding a name wins.
func NewComposite(sources []Source, opts ...Option) *Config {
	ordered := slices.Clone(sources)
	slices.SortStableFunc(ordered, func(a, b Source) int {
		return cmp.Compare(b.Ordinal(), a.Ordinal())
	})
	return newConfig(composite{sources: ordered}, ordered, opts)
}

func newConfig(b backend, sources []Source, opts []Option) *Config {
	c := &Config{
		backend:  b,
		sources:  sources,
		coercion: Parse,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Config) GetValue(name string, target any) error {
	elem, err := checkTarget(target)
	if err != nil {
		return err
	}
	if name == "" {
		return property.ErrEmptyName
	}

	raw, ok := c.backend.lookup(name)
	if !ok {
		return &NotFoundError{Name: name}
	}
	if err := convert(raw, elem, c.coercion); err != nil {
		return &TypeMismatchError{Name: name, Type: elem.Type(), Err: err}
	}
	return nil
}

func (c *Config) GetOptionalValue(name string, target any) (bool, error) {
	elem, err := checkTarget(target)
	if err != nil {
		return false, err
	}
	if name == "" {
		return false, property.ErrEmptyName
	}

	raw, ok := c.backend.lookup(name)
	if !ok {
		return false, nil
	}
	if err := convert(raw, elem, c.coercion); err != nil {
		return false, &TypeMismatchError{Name: name, Type: elem.Type(), Err: err}
	}
	return true, nil
}

// PropertyNames yields every known name once, in no particular order.
func (c *Config) PropertyNames() iter.Seq[string] {
	return slices.Values(c.backend.names())
}

// ConfigSources returns the contributing sources, most specific first.
func (c *Config) ConfigSources() []Source {
	if len(c.sources) == 0 {
		return []Source{}
	}
	return slices.Clone(c.sources)
}

// Value is the generic form of Provider.GetValue.
func Value[T any](p Provider, name string) (T, error) {
	var v T
	if err := p.GetValue(name, &v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// OptionalValue is the generic form of Provider.GetOptionalValue.
func OptionalValue[T any](p Provider, name string) (T, bool, error) {
	var v T
	ok, err := p.GetOptionalValue(name, &v)
	if err != nil || !ok {
		var zero T
		return zero, false, err
	}
	return v, true, nil
}

type storeBackend struct {
	store *property.Store
}

func (b storeBackend) lookup(name string) (string, bool) {
	return b.store.Get(name)
}

func (b storeBackend) names() []string {
	return b.store.Keys()
}

type composite struct {
	sources []Source
}

func (c composite) lookup(name string) (string, bool) {
	for _, src := range c.sources {
		if value, ok := src.Value(name); ok {
			return value, true
		}
	}
	return "", false
}

func (c composite) names() []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, src := range c.sources {
		for _, name := range src.PropertyNames() {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}
