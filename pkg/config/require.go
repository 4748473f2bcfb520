package config

import (
	"fmt"
	"log"
	"slices"
)

func MustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}

// OneOf reports an error when value is not one of the allowed settings for envName.
func OneOf(value, envName string, allowed ...string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return fmt.Errorf("env %s: %q is not one of %v", envName, value, allowed)
}
