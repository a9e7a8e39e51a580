// Package parasite contributes the built-in parasite cleanse protocol dataset.
package parasite

import (
	"fmt"

	"protocolkb/pkg/protocolapi"
)

// Plugin registers the static parasite cleanse protocols.
type Plugin struct{}

// New constructs a parasite plugin instance.
func New() Plugin {
	return Plugin{}
}

// Name returns the plugin identifier.
func (Plugin) Name() string { return "parasite" }

// Version returns the dataset semantic version.
func (Plugin) Version() string { return "1.0.0" }

// Register hands every protocol record to the registry. Records are rebuilt
// on each call so registries never share backing arrays.
func (Plugin) Register(registry protocolapi.Registry) error {
	if registry == nil {
		return fmt.Errorf("parasite: nil registry")
	}
	for _, p := range Protocols() {
		registry.RegisterProtocol(p)
	}
	return nil
}
