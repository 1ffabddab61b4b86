// Package filter turns a dependency download URL into the location the dependency should be fetched from:
// either the URI found in the manifest or a file in the local cache directory.
package filter

import (
	"fmt"
	"log/slog"

	"github.com/keenbytes/depfilter/internal/remotetolocal"
	"github.com/keenbytes/depfilter/pkg/manifest"
	"github.com/keenbytes/depfilter/pkg/matcher"
	"github.com/keenbytes/depfilter/pkg/redact"
	"github.com/keenbytes/depfilter/pkg/resolver"
)

// Filter represents functionality for resolving URLs against a manifest.
type Filter struct {
	// Manifest contains match rules and dependencies. It is only read.
	Manifest *manifest.Manifest
	// Stack is the platform stack the dependency must be available for, eg. cflinuxfs2.
	Stack string
	// CacheDir is the directory with cached dependencies. Empty string means there is no cache.
	CacheDir string
}

// NewFilter returns new Filter instance.
func NewFilter(m *manifest.Manifest, stack, cacheDir string) *Filter {
	filter := &Filter{
		Manifest: m,
		Stack:    stack,
		CacheDir: cacheDir,
	}

	return filter
}

// Filter finds the dependency the URL refers to and returns where to get it from. Error wraps
// matcher.ErrNoPatternMatch or resolver.ErrNoDependencyMatch when the dependency cannot be found.
func (f *Filter) Filter(url string) (string, error) {
	match, err := matcher.Match(url, f.Manifest.Rules)
	if err != nil {
		return "", fmt.Errorf("%s: %w", redact.URL(url), err)
	}

	slog.Debug(
		"url matched",
		slog.String("url", redact.URL(url)),
		slog.Int("rule", match.Rule),
		slog.String("name", match.Name),
		slog.String("version", match.Version),
	)

	uri, err := resolver.ResolveURI(match.Name, match.Version, f.Stack, f.Manifest.Dependencies)
	if err != nil {
		return "", fmt.Errorf("%s@%s on stack %q: %w", match.Name, match.Version, f.Stack, err)
	}

	slog.Debug(
		"dependency resolved",
		slog.String("name", match.Name),
		slog.String("version", match.Version),
		slog.String("stack", f.Stack),
		slog.String("uri", redact.URL(uri)),
		slog.Bool("credentials", redact.HasCredentials(uri)),
	)

	return Format(uri, f.CacheDir), nil
}

// Format returns the URI unchanged when there is no cache directory. Otherwise it returns a file:// URL of
// the dependency in the cache directory, with credentials redacted.
//
// Credentials are redacted only in the cache form.
func Format(uri, cacheDir string) string {
	if cacheDir == "" {
		return uri
	}

	return remotetolocal.New(cacheDir, uri).Local
}
