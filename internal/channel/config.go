package channel

import (
	"iter"
	"slices"

	"github.com/eugenenazirov/messaging-config/internal/property"
	"github.com/eugenenazirov/messaging-config/internal/provider"
)

// Config exposes the attributes of one channel by their short names. A lookup
// checks mp.messaging.<direction>.<channel>.<attribute> first and then
// mp.messaging.connector.<connector>.<attribute>, so overriding an attribute
// on one channel never changes what another channel sees.
type Config struct {
	provider  provider.Provider
	channel   Channel
	connector Connector
}

var _ provider.Provider = (*Config)(nil)

// Channel returns the channel this view resolves attributes for.
func (c *Config) Channel() Channel {
	return c.channel
}

func (c *Config) GetValue(attribute string, target any) error {
	ok, err := c.GetOptionalValue(attribute, target)
	if err != nil {
		return err
	}
	if !ok {
		return &provider.NotFoundError{Name: property.ChannelKey(c.channel.Direction, c.channel.Name, attribute)}
	}
	return nil
}

func (c *Config) GetOptionalValue(attribute string, target any) (bool, error) {
	if attribute == "" {
		return false, property.ErrEmptyName
	}
	ok, err := c.provider.GetOptionalValue(property.ChannelKey(c.channel.Direction, c.channel.Name, attribute), target)
	if err != nil || ok {
		return ok, err
	}
	if c.channel.Connector == "" {
		return false, nil
	}
	return c.provider.GetOptionalValue(property.ConnectorKey(c.channel.Connector, attribute), target)
}

// PropertyNames yields the short attribute names visible to the channel.
func (c *Config) PropertyNames() iter.Seq[string] {
	names := slices.Concat(c.channel.Attributes, c.connector.Attributes)
	slices.Sort(names)
	return slices.Values(slices.Compact(names))
}

func (c *Config) ConfigSources() []provider.Source {
	return c.provider.ConfigSources()
}
