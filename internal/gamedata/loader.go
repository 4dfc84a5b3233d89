// Package gamedata loads the embedded game content (classes, party, enemies,
// world, quests and combat actions) and provides lookup registries over it.
package gamedata

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/samdwyer/starblade/data"
)

// Load reads and unmarshals a YAML file from the embedded content.
func Load[T any](filename string) (T, error) {
	var result T

	content, err := data.FS().ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("failed to read embedded file %s: %w", filename, err)
	}

	if err := yaml.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("failed to parse YAML from %s: %w", filename, err)
	}

	return result, nil
}

// MustLoad reads and unmarshals a YAML file, panicking on error.
// Use this for data that must be present for the game to function.
func MustLoad[T any](filename string) T {
	result, err := Load[T](filename)
	if err != nil {
		panic(err)
	}
	return result
}
