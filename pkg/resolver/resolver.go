// Package resolver looks up a dependency in the manifest by its name, version and stack.
package resolver

import (
	"errors"

	"github.com/keenbytes/depfilter/pkg/manifest"
)

var (
	ErrNoDependencyMatch = errors.New("no dependency matched name, version and stack")
)

// Resolve returns the first dependency with exactly the same name and version that is available for the
// stack. Versions are compared as strings.
func Resolve(name, version, stack string, dependencies []*manifest.Dependency) (*manifest.Dependency, error) {
	for _, dependency := range dependencies {
		if dependency.Name != name || dependency.Version != version {
			continue
		}

		if !dependency.HasStack(stack) {
			continue
		}

		return dependency, nil
	}

	return nil, ErrNoDependencyMatch
}

// ResolveURI is like Resolve but returns the dependency URI only.
func ResolveURI(name, version, stack string, dependencies []*manifest.Dependency) (string, error) {
	dependency, err := Resolve(name, version, stack, dependencies)
	if err != nil {
		return "", err
	}

	return dependency.URI, nil
}
