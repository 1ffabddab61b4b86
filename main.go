package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/keenbytes/broccli/v3"
	"github.com/keenbytes/depfilter/pkg/filter"
	"github.com/keenbytes/depfilter/pkg/manifest"
	"github.com/keenbytes/depfilter/pkg/matcher"
	"github.com/keenbytes/depfilter/pkg/redact"
	"github.com/keenbytes/depfilter/pkg/resolver"
)

const (
	exitOK             = 0
	exitNoMatch        = 1
	exitManifestError  = 2
	envStack           = "CF_STACK"
	defaultManifest    = "manifest.yml"
	defaultCacheSubdir = "dependencies"
)

type filterOptions struct {
	url          string
	buildpackDir string
	manifestPath string
	cacheDir     string
	stack        string
}

func main() {
	cli := broccli.NewBroccli("depfilter", "Resolve dependency URLs using a buildpack manifest", "Mikolaj Gasior <m@gasior.dev>")

	cmd := cli.Command("filter", "Print the location to download a dependency from", filterHandler)
	cmd.Arg("url", "URL", "Original dependency URL", broccli.TypeString, broccli.IsRequired)
	cmd.Flag("buildpack-dir", "b", "DIR", "Buildpack directory, defaults to current directory", broccli.TypePathFile, broccli.IsDirectory|broccli.IsExistent)
	cmd.Flag("manifest", "m", "FILE", "Manifest file (.yml or .hcl), defaults to manifest.yml in buildpack dir", broccli.TypePathFile, broccli.IsRegularFile|broccli.IsExistent)
	cmd.Flag("cache-dir", "c", "DIR", "Cache directory, defaults to dependencies in buildpack dir, used only if it exists", broccli.TypePathFile, 0)
	cmd.Flag("stack", "s", "STACK", "Platform stack, defaults to "+envStack+" environment variable", broccli.TypeString, 0)
	cmd.Flag("log-level", "l", "LEVEL", "Log level: debug, info, warn or error", broccli.TypeString, 0)

	cmd = cli.Command("redact", "Print URL with credentials redacted", redactHandler)
	cmd.Arg("url", "URL", "URL to redact", broccli.TypeString, broccli.IsRequired)

	os.Exit(cli.Run(context.Background()))
}

func filterHandler(_ context.Context, cli *broccli.Broccli) int {
	setupLogger(cli.Flag("log-level"))

	stack := cli.Flag("stack")
	if stack == "" {
		stack = os.Getenv(envStack)
	}

	opts := &filterOptions{
		url:          cli.Arg("url"),
		buildpackDir: cli.Flag("buildpack-dir"),
		manifestPath: cli.Flag("manifest"),
		cacheDir:     cli.Flag("cache-dir"),
		stack:        stack,
	}

	return runFilter(os.Stdout, opts)
}

func redactHandler(_ context.Context, cli *broccli.Broccli) int {
	fmt.Fprintln(os.Stdout, redact.URL(cli.Arg("url")))

	return exitOK
}

// runFilter writes the filtered URL to w and returns the exit code. Nothing is written on failure.
func runFilter(w io.Writer, opts *filterOptions) int {
	buildpackDir := opts.buildpackDir
	if buildpackDir == "" {
		buildpackDir = "."
	}

	manifestPath := opts.manifestPath
	if manifestPath == "" {
		manifestPath = filepath.Join(buildpackDir, defaultManifest)
	}

	depManifest := &manifest.Manifest{}

	err := depManifest.ReadFromFile(manifestPath)
	if err != nil {
		slog.Error("error loading manifest", slog.String("path", manifestPath), slog.String("error", err.Error()))

		return exitManifestError
	}

	cacheDir := opts.cacheDir
	if cacheDir == "" {
		cacheDir = filepath.Join(buildpackDir, defaultCacheSubdir)
	}

	cacheDir = existingDir(cacheDir)

	depFilter := filter.NewFilter(depManifest, opts.stack, cacheDir)

	filtered, err := depFilter.Filter(opts.url)
	if err != nil {
		reason := "error filtering url"

		switch {
		case errors.Is(err, matcher.ErrNoPatternMatch):
			reason = "no pattern matched"
		case errors.Is(err, resolver.ErrNoDependencyMatch):
			reason = "no dependency matched"
		}

		slog.Info(reason, slog.String("url", redact.URL(opts.url)), slog.String("error", err.Error()))

		return exitNoMatch
	}

	fmt.Fprintln(w, filtered)

	return exitOK
}

// existingDir returns absolute path of dir if it is an existing directory, and an empty string otherwise.
func existingDir(dir string) string {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		slog.Debug("cache directory not used", slog.String("path", dir))

		return ""
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}

	return absDir
}
