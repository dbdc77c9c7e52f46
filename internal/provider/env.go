package provider

import (
	"strings"

	"github.com/eugenenazirov/messaging-config/internal/property"
)

// envPrefix is property.Prefix in environment variable form.
const envPrefix = "MP_MESSAGING_"

// EnvSource snapshots the messaging variables of an environment. Only
// variables named mp.messaging.* or mapping to MP_MESSAGING_* are kept, so
// unrelated process settings are never served as properties.
//
// A dotted property name is looked up as-is, then with every non-alphanumeric
// character replaced by '_', then upper-cased, so mp.messaging.incoming.orders.topic
// also matches MP_MESSAGING_INCOMING_ORDERS_TOPIC.
type EnvSource struct {
	ordinal int
	store   *property.Store
	names   []string
}

var _ Source = (*EnvSource)(nil)

// NewEnvSource parses KEY=VALUE pairs such as those returned by os.Environ.
// Malformed pairs, empty keys and non-messaging variables are skipped.
func NewEnvSource(environ []string, ordinal int) *EnvSource {
	entries := make([]property.Entry, 0, len(environ))
	names := make([]string, 0, len(environ))
	seen := make(map[string]struct{})
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !isMessagingVar(key) {
			continue
		}
		entries = append(entries, property.Entry{Name: key, Value: value})
		name := DottedName(key)
		if _, dup := seen[name]; !dup {
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	// entry names are non-empty, NewStore cannot fail
	store, _ := property.NewStore(entries...)
	return &EnvSource{ordinal: ordinal, store: store, names: names}
}

func (s *EnvSource) Name() string { return "env" }

func (s *EnvSource) Ordinal() int { return s.ordinal }

func (s *EnvSource) Value(name string) (string, bool) {
	if value, ok := s.store.Get(name); ok {
		return value, true
	}
	sanitized := EnvName(name)
	if value, ok := s.store.Get(sanitized); ok {
		return value, true
	}
	return s.store.Get(strings.ToUpper(sanitized))
}

// PropertyNames reports each variable under its dotted name when one can be
// recovered, see DottedName.
func (s *EnvSource) PropertyNames() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// EnvName replaces every character outside [A-Za-z0-9_] with '_'.
func EnvName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}

// DottedName recovers the mp.messaging.* name of an environment variable.
// MP_MESSAGING_INCOMING_MY_ORDERS_TOPIC becomes
// mp.messaging.incoming.my_orders.topic: the last segment is the attribute
// and everything between scope and attribute is the channel or connector.
// Dashes and dots inside channel names cannot be told apart from '_', so the
// recovered name always maps back to the same variable but may not match the
// spelling used by other sources. Names that do not fit the grammar are
// returned unchanged.
func DottedName(key string) string {
	if strings.HasPrefix(key, property.Prefix) {
		return key
	}
	rest, ok := strings.CutPrefix(strings.ToUpper(EnvName(key)), envPrefix)
	if !ok {
		return key
	}
	scope, rest, ok := strings.Cut(rest, "_")
	if !ok {
		return key
	}
	switch scope {
	case "INCOMING", "OUTGOING", "CONNECTOR":
	default:
		return key
	}
	i := strings.LastIndexByte(rest, '_')
	if i <= 0 || i == len(rest)-1 {
		return key
	}
	return property.Prefix + strings.ToLower(scope) + "." + strings.ToLower(rest[:i]) + "." + strings.ToLower(rest[i+1:])
}

func isMessagingVar(key string) bool {
	if key == "" {
		return false
	}
	return strings.HasPrefix(key, property.Prefix) || strings.HasPrefix(strings.ToUpper(EnvName(key)), envPrefix)
}
