// Package fixture provides the Dummy connector configuration used by
// conformance tests of the messaging runtime:
//
//	mp.messaging.connector.Dummy.common-A=Value-A
//	mp.messaging.connector.Dummy.common-B=Value-B
//	mp.messaging.incoming.dummy-source.connector=Dummy
//	mp.messaging.incoming.dummy-source.attribute=value
//	mp.messaging.incoming.dummy-source.items=a,b,c,d,e,f,g,h,i,j
//	mp.messaging.incoming.dummy-source-2.connector=Dummy
//	mp.messaging.incoming.dummy-source-2.attribute=value-2
//	mp.messaging.incoming.dummy-source-2.items=
//	mp.messaging.outgoing.dummy-sink.connector=Dummy
//	mp.messaging.outgoing.dummy-sink.attribute=value
package fixture

import (
	"github.com/eugenenazirov/messaging-config/internal/property"
	"github.com/eugenenazirov/messaging-config/internal/provider"
)

// Connector is the id of the fixture connector.
const Connector = "Dummy"

// Channel ids declared by the fixture.
const (
	Source  = "dummy-source"
	Source2 = "dummy-source-2"
	Sink    = "dummy-sink"
)

// Entries returns a fresh copy of the fixture properties.
func Entries() []property.Entry {
	return []property.Entry{
		{Name: property.ConnectorKey(Connector, "common-A"), Value: "Value-A"},
		{Name: property.ConnectorKey(Connector, "common-B"), Value: "Value-B"},

		{Name: property.ChannelKey(property.Incoming, Source, "connector"), Value: Connector},
		{Name: property.ChannelKey(property.Incoming, Source, "attribute"), Value: "value"},
		{Name: property.ChannelKey(property.Incoming, Source, "items"), Value: "a,b,c,d,e,f,g,h,i,j"},

		{Name: property.ChannelKey(property.Incoming, Source2, "connector"), Value: Connector},
		{Name: property.ChannelKey(property.Incoming, Source2, "attribute"), Value: "value-2"},
		{Name: property.ChannelKey(property.Incoming, Source2, "items"), Value: ""},

		{Name: property.ChannelKey(property.Outgoing, Sink, "connector"), Value: Connector},
		{Name: property.ChannelKey(property.Outgoing, Sink, "attribute"), Value: "value"},
	}
}

// Store returns the fixture as a frozen property store.
func Store() *property.Store {
	store, err := property.NewStore(Entries()...)
	if err != nil {
		panic(err)
	}
	return store
}

// Provider returns a provider serving the fixture with no config sources.
func Provider(opts ...provider.Option) *provider.Config {
	return provider.New(Store(), opts...)
}
