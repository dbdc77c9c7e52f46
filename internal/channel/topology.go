package channel

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/eugenenazirov/messaging-config/internal/property"
	"github.com/eugenenazirov/messaging-config/internal/provider"
)

// ConnectorAttribute names the channel attribute that selects its connector.
const ConnectorAttribute = "connector"

// Channel is a directional conduit declared through property names.
type Channel struct {
	Name       string
	Direction  property.Direction
	Connector  string
	Attributes []string
}

// Connector groups the common attributes shared by every channel using it.
type Connector struct {
	Name       string
	Attributes []string
}

// Topology is the set of channels and connectors known to a provider.
type Topology struct {
	Channels   []Channel
	Connectors []Connector

	provider provider.Provider
}

type channelID struct {
	dir  property.Direction
	name string
}

// Discover groups the provider's property names into channels and connectors.
// Names outside the mp.messaging namespace are ignored.
func Discover(p provider.Provider) (*Topology, error) {
	channels := make(map[channelID]*Channel)
	connectors := make(map[string]*Connector)

	for name := range p.PropertyNames() {
		key, ok := property.ParseKey(name)
		if !ok {
			continue
		}
		switch key.Scope {
		case property.ConnectorScope:
			conn, exists := connectors[key.Target]
			if !exists {
				conn = &Connector{Name: key.Target}
				connectors[key.Target] = conn
			}
			conn.Attributes = append(conn.Attributes, key.Attribute)
		case property.ChannelScope:
			id := channelID{dir: key.Direction, name: key.Target}
			ch, exists := channels[id]
			if !exists {
				ch = &Channel{Name: key.Target, Direction: key.Direction}
				channels[id] = ch
			}
			ch.Attributes = append(ch.Attributes, key.Attribute)
		}
	}

	t := &Topology{
		Channels:   make([]Channel, 0, len(channels)),
		Connectors: make([]Connector, 0, len(connectors)),
		provider:   p,
	}
	for _, ch := range channels {
		connector, _, err := provider.OptionalValue[string](p, property.ChannelKey(ch.Direction, ch.Name, ConnectorAttribute))
		if err != nil {
			return nil, fmt.Errorf("resolve connector of %s channel %s: %w", ch.Direction, ch.Name, err)
		}
		ch.Connector = connector
		slices.Sort(ch.Attributes)
		t.Channels = append(t.Channels, *ch)
	}
	for _, conn := range connectors {
		slices.Sort(conn.Attributes)
		t.Connectors = append(t.Connectors, *conn)
	}

	slices.SortFunc(t.Channels, func(a, b Channel) int {
		return cmp.Or(cmp.Compare(a.Direction, b.Direction), cmp.Compare(a.Name, b.Name))
	})
	slices.SortFunc(t.Connectors, func(a, b Connector) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return t, nil
}

// Channel finds a channel by direction and name.
func (t *Topology) Channel(dir property.Direction, name string) (Channel, bool) {
	for _, ch := range t.Channels {
		if ch.Direction == dir && ch.Name == name {
			return ch, true
		}
	}
	return Channel{}, false
}

// Connector finds a connector by name.
func (t *Topology) Connector(name string) (Connector, bool) {
	for _, conn := range t.Connectors {
		if conn.Name == name {
			return conn, true
		}
	}
	return Connector{}, false
}

// Config returns the attribute view of ch.
func (t *Topology) Config(ch Channel) *Config {
	conn, _ := t.Connector(ch.Connector)
	return &Config{provider: t.provider, channel: ch, connector: conn}
}

// Validate reports every wiring problem found, joined into one error.
func (t *Topology) Validate() error {
	var problems []error
	directions := make(map[string]property.Direction)
	for _, ch := range t.Channels {
		if ch.Connector == "" {
			problems = append(problems, fmt.Errorf("%s channel %s: %w", ch.Direction, ch.Name, ErrMissingConnector))
		}
		if prev, seen := directions[ch.Name]; seen && prev != ch.Direction {
			problems = append(problems, fmt.Errorf("channel %s: %w", ch.Name, ErrDirectionConflict))
		}
		directions[ch.Name] = ch.Direction
	}
	return errors.Join(problems...)
}
