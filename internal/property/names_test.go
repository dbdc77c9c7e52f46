package property

import "testing"

func TestParseKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		want   Key
		wantOK bool
	}{
		{
			name:   "IncomingChannel",
			input:  "mp.messaging.incoming.dummy-source.attribute",
			want:   Key{Scope: ChannelScope, Direction: Incoming, Target: "dummy-source", Attribute: "attribute"},
			wantOK: true,
		},
		{
			name:   "OutgoingChannel",
			input:  "mp.messaging.outgoing.dummy-sink.connector",
			want:   Key{Scope: ChannelScope, Direction: Outgoing, Target: "dummy-sink", Attribute: "connector"},
			wantOK: true,
		},
		{
			name:   "Connector",
			input:  "mp.messaging.connector.Dummy.common-A",
			want:   Key{Scope: ConnectorScope, Target: "Dummy", Attribute: "common-A"},
			wantOK: true,
		},
		{
			name:   "DottedAttribute",
			input:  "mp.messaging.incoming.orders.kafka.group.id",
			want:   Key{Scope: ChannelScope, Direction: Incoming, Target: "orders", Attribute: "kafka.group.id"},
			wantOK: true,
		},
		{name: "OtherNamespace", input: "quarkus.http.port"},
		{name: "UnknownDirection", input: "mp.messaging.sideways.x.attribute"},
		{name: "MissingAttribute", input: "mp.messaging.incoming.dummy-source"},
		{name: "EmptyTarget", input: "mp.messaging.incoming..attribute"},
		{name: "EmptyAttribute", input: "mp.messaging.connector.Dummy."},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseKey(tc.input)
			if ok != tc.wantOK {
				t.Fatalf("expected ok=%v, got %v", tc.wantOK, ok)
			}
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
			if ok && got.String() != tc.input {
				t.Fatalf("expected round trip to %q, got %q", tc.input, got.String())
			}
		})
	}
}

func TestKeyBuilders(t *testing.T) {
	t.Parallel()

	if got := ChannelKey(Incoming, "dummy-source", "items"); got != "mp.messaging.incoming.dummy-source.items" {
		t.Fatalf("unexpected channel key %q", got)
	}
	if got := ConnectorKey("Dummy", "common-B"); got != "mp.messaging.connector.Dummy.common-B" {
		t.Fatalf("unexpected connector key %q", got)
	}
	if Direction("both").Valid() {
		t.Fatalf("expected unknown direction to be invalid")
	}
}
