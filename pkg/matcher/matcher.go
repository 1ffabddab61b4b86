// Package matcher finds the dependency a download URL refers to, using the manifest's match rules.
package matcher

import (
	"errors"
	"fmt"

	"github.com/keenbytes/depfilter/pkg/manifest"
)

var (
	ErrNoPatternMatch = errors.New("no pattern matched the url")
	ErrTemplate       = errors.New("error expanding template")
)

// Result is the result of matching a URL against the rules.
type Result struct {
	// Name of the dependency.
	Name string
	// Version of the dependency.
	Version string
	// Rule is the index of the matching rule.
	Rule int
	// Captures are texts of the pattern capture groups, starting from $1.
	Captures []string
}

// Match searches for each rule's pattern in the URL in the order the rules are declared. The first rule
// that matches is used, even when the dependency it points to does not exist.
func Match(url string, rules []*manifest.MatchRule) (*Result, error) {
	for i, rule := range rules {
		captures, found := rule.Pattern.Find(url)
		if !found {
			continue
		}

		name, err := rule.Name.Expand(captures)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %d name: %w", ErrTemplate, i, err)
		}

		version, err := rule.Version.Expand(captures)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %d version: %w", ErrTemplate, i, err)
		}

		return &Result{
			Name:     name,
			Version:  version,
			Rule:     i,
			Captures: captures,
		}, nil
	}

	return nil, ErrNoPatternMatch
}
