package property

import "strings"

// Prefix is the namespace shared by every messaging property.
const Prefix = "mp.messaging."

const connectorSegment = "connector"

// Direction is the flow of a channel relative to the application.
type Direction string

const (
	Incoming Direction = "incoming"
	Outgoing Direction = "outgoing"
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == Incoming || d == Outgoing
}

// Scope tells whether a key addresses a channel or a connector.
type Scope int

const (
	ChannelScope Scope = iota + 1
	ConnectorScope
)

// Key is the parsed form of a messaging property name.
type Key struct {
	Scope     Scope
	Direction Direction // empty for connector keys
	Target    string    // channel or connector id
	Attribute string
}

// String renders the key back into its dotted form.
func (k Key) String() string {
	if k.Scope == ConnectorScope {
		return ConnectorKey(k.Target, k.Attribute)
	}
	return ChannelKey(k.Direction, k.Target, k.Attribute)
}

// ChannelKey builds mp.messaging.<direction>.<channel>.<attribute>.
func ChannelKey(dir Direction, channel, attribute string) string {
	return Prefix + string(dir) + "." + channel + "." + attribute
}

// ConnectorKey builds mp.messaging.connector.<connector>.<attribute>.
func ConnectorKey(connector, attribute string) string {
	return Prefix + connectorSegment + "." + connector + "." + attribute
}

// ParseKey splits a messaging property name into its parts. Names outside the
// mp.messaging namespace, or missing a target or attribute, are rejected.
// The attribute keeps any further dots.
func ParseKey(name string) (Key, bool) {
	rest, ok := strings.CutPrefix(name, Prefix)
	if !ok {
		return Key{}, false
	}
	parts := strings.SplitN(rest, ".", 3)
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		return Key{}, false
	}

	if parts[0] == connectorSegment {
		return Key{Scope: ConnectorScope, Target: parts[1], Attribute: parts[2]}, true
	}
	dir := Direction(parts[0])
	if !dir.Valid() {
		return Key{}, false
	}
	return Key{Scope: ChannelScope, Direction: dir, Target: parts[1], Attribute: parts[2]}, true
}
