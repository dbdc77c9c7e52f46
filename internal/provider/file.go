package provider

import (
	"fmt"
	"os"

	"github.com/magiconair/properties"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/messaging-config/internal/property"
)

// LoadYAMLFile reads a YAML document and flattens nested mappings into dotted
// names. Scalar sequences become comma separated lists; a null value is kept
// as an empty string.
func LoadYAMLFile(path string, ordinal int) (*MapSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	entries, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("parse YAML %s: %w", path, err)
	}
	store, err := property.NewStore(entries...)
	if err != nil {
		return nil, fmt.Errorf("build store from %s: %w", path, err)
	}
	return NewMapSource("yaml:"+path, ordinal, store), nil
}

// ParseYAML flattens a YAML document into property entries in document order.
func ParseYAML(data []byte) ([]property.Entry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	var entries []property.Entry
	if err := flattenYAML(&doc, "", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func flattenYAML(node *yaml.Node, prefix string, out *[]property.Entry) error {
	switch node.Kind {
	case 0:
		return nil
	case yaml.DocumentNode:
		for _, child := range node.Content {
			if err := flattenYAML(child, prefix, out); err != nil {
				return err
			}
		}
	case yaml.AliasNode:
		return flattenYAML(node.Alias, prefix, out)
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			if prefix != "" {
				key = prefix + "." + key
			}
			if err := flattenYAML(node.Content[i+1], key, out); err != nil {
				return err
			}
		}
	case yaml.SequenceNode:
		items := make([]string, 0, len(node.Content))
		for _, child := range node.Content {
			if child.Kind == yaml.AliasNode {
				child = child.Alias
			}
			if child.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: %q: sequences may only hold scalars", child.Line, prefix)
			}
			items = append(items, scalarValue(child))
		}
		*out = append(*out, property.Entry{Name: prefix, Value: JoinList(items)})
	case yaml.ScalarNode:
		if prefix == "" {
			return fmt.Errorf("line %d: top-level scalar is not a property", node.Line)
		}
		*out = append(*out, property.Entry{Name: prefix, Value: scalarValue(node)})
	}
	return nil
}

func scalarValue(node *yaml.Node) string {
	if node.Tag == "!!null" {
		return ""
	}
	return node.Value
}

// LoadPropertiesFile reads a Java style .properties file. ${} references are
// kept verbatim.
func LoadPropertiesFile(path string, ordinal int) (*MapSource, error) {
	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	props, err := loader.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load properties: %w", err)
	}

	keys := props.Keys()
	entries := make([]property.Entry, 0, len(keys))
	for _, key := range keys {
		value, _ := props.Get(key)
		entries = append(entries, property.Entry{Name: key, Value: value})
	}
	store, err := property.NewStore(entries...)
	if err != nil {
		return nil, fmt.Errorf("build store from %s: %w", path, err)
	}
	return NewMapSource("properties:"+path, ordinal, store), nil
}
