// internal/toolsets/toolsets.go
// Package toolsets builds the travel tool groups: each group binds one provider
// client to its descriptors, argument handling and formatter.
package toolsets

import (
	"fmt"

	"github.com/mwiater/travvy/internal/appconfig"
	"github.com/mwiater/travvy/internal/tools"
)

// Group returns the tools of one toolset, wired to the providers in cfg.
type Group func(cfg appconfig.Config) []tools.Tool

var groups = map[string]Group{
	appconfig.ToolsetWeather:       Weather,
	appconfig.ToolsetFlights:       Flights,
	appconfig.ToolsetAccommodation: Accommodation,
	appconfig.ToolsetTrains:        Trains,
	appconfig.ToolsetMaps:          Maps,
}

// Summary names a toolset and the tools it contributes.
type Summary struct {
	Name  string   `json:"name"`
	Tools []string `json:"tools"`
}

// Registry registers every enabled toolset in cfg, in the canonical toolset order.
func Registry(cfg appconfig.Config) (*tools.Registry, error) {
	b := tools.NewBuilder()
	for _, name := range cfg.Toolsets() {
		group, ok := groups[name]
		if !ok {
			return nil, fmt.Errorf("unknown toolset %q", name)
		}
		b.AddAll(group(cfg))
	}
	return b.Build()
}

// Catalog describes the enabled toolsets without contacting any provider.
func Catalog(cfg appconfig.Config) []Summary {
	var out []Summary
	for _, name := range cfg.Toolsets() {
		group, ok := groups[name]
		if !ok {
			continue
		}
		s := Summary{Name: name}
		for _, t := range group(cfg) {
			s.Tools = append(s.Tools, t.Descriptor.Name)
		}
		out = append(out, s)
	}
	return out
}
