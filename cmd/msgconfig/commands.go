package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/eugenenazirov/messaging-config/internal/channel"
	"github.com/eugenenazirov/messaging-config/internal/provider"
)

var valueTypes = map[string]func() any{
	"string":   func() any { return new(string) },
	"bool":     func() any { return new(bool) },
	"int":      func() any { return new(int64) },
	"float":    func() any { return new(float64) },
	"duration": func() any { return new(time.Duration) },
	"list":     func() any { return new([]string) },
}

func valueTypeNames() []string {
	return slices.Sorted(maps.Keys(valueTypes))
}

func runGet(w io.Writer, p provider.Provider, name, typeName string, optional bool) error {
	newTarget, ok := valueTypes[typeName]
	if !ok {
		return fmt.Errorf("unknown value type %q", typeName)
	}
	target := newTarget()

	if optional {
		found, err := p.GetOptionalValue(name, target)
		if err != nil || !found {
			return err
		}
	} else if err := p.GetValue(name, target); err != nil {
		return err
	}

	switch v := target.(type) {
	case *string:
		_, err := fmt.Fprintln(w, *v)
		return err
	case *bool:
		_, err := fmt.Fprintln(w, *v)
		return err
	case *int64:
		_, err := fmt.Fprintln(w, *v)
		return err
	case *float64:
		_, err := fmt.Fprintln(w, *v)
		return err
	case *time.Duration:
		_, err := fmt.Fprintln(w, v.String())
		return err
	case *[]string:
		for _, item := range *v {
			if _, err := fmt.Fprintln(w, item); err != nil {
				return err
			}
		}
	}
	return nil
}

func runList(w io.Writer, p provider.Provider) error {
	for _, name := range slices.Sorted(p.PropertyNames()) {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}

func runSources(w io.Writer, p provider.Provider) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tORDINAL\tPROPERTIES")
	for _, src := range p.ConfigSources() {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", src.Name(), src.Ordinal(), len(src.PropertyNames()))
	}
	return tw.Flush()
}

// runChannels prints each channel with its resolved attributes and returns
// the validation result.
func runChannels(w io.Writer, p provider.Provider) error {
	topo, err := channel.Discover(p)
	if err != nil {
		return err
	}

	for _, ch := range topo.Channels {
		fmt.Fprintf(w, "%s %s (connector: %s)\n", ch.Direction, ch.Name, orNone(ch.Connector))
		cfg := topo.Config(ch)
		for attr := range cfg.PropertyNames() {
			value, _, err := provider.OptionalValue[string](cfg, attr)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "  %s=%s\n", attr, value)
		}
	}
	return topo.Validate()
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
