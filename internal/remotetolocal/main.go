// Package remotetolocal contains a struct used to define mapping of a remote dependency URI to a file in
// a local cache directory.
package remotetolocal

import (
	"path/filepath"
	"strings"

	"github.com/keenbytes/depfilter/pkg/redact"
)

const (
	fileScheme = "file://"
)

var fileNameReplacer = strings.NewReplacer("/", "_", ":", "_")

// RemoteToLocal represents a mapping from a remote dependency to a cached one.
type RemoteToLocal struct {
	// Remote is the dependency URI from the manifest, credentials included.
	Remote string

	// Local is a file:// URL of the dependency in the cache directory. It never contains credentials.
	Local string
}

// New returns the mapping of a remote URI to a file in cacheDir.
func New(cacheDir, remote string) *RemoteToLocal {
	local := filepath.ToSlash(filepath.Join(cacheDir, FileName(redact.URL(remote))))

	return &RemoteToLocal{
		Remote: remote,
		Local:  fileScheme + local,
	}
}

// FileName flattens the URI into a file name by replacing every '/' and ':' with '_'. Other characters,
// including the ones in query and fragment, are kept.
func FileName(uri string) string {
	return fileNameReplacer.Replace(uri)
}
