// Package presets contains named sets of defaults for the verifier config.
package presets

import (
	"fmt"
	"sort"

	"github.com/hexmobile/mobile-verifier/config"
)

var presets = map[string]config.Config{}

func register(name string, preset config.Config) {
	if _, exists := presets[name]; exists {
		panic(fmt.Sprintf("preset %s already registered", name))
	}
	presets[name] = preset
}

// Options returns names of registered presets.
func Options() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns a copy of the named preset.
func Get(name string) (config.Config, error) {
	preset, exists := presets[name]
	if !exists {
		return config.Config{}, fmt.Errorf("preset %s is not registered. options: %v", name, Options())
	}
	return preset, nil
}
